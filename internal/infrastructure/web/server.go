package web

import (
	"context"
	"embed"
	"errors"
	"html/template"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"ArticleRater/internal/infrastructure/fetcher"
	"ArticleRater/internal/infrastructure/llm"
	"ArticleRater/internal/quality"
	"ArticleRater/internal/usecase"
)

//go:embed templates/*.html
var templatesFS embed.FS

// Server exposes the single-request scoring form over HTTP.
type Server struct {
	evaluator *usecase.Evaluator
	logger    *slog.Logger
	engine    *gin.Engine
}

// New builds the gin engine with embedded templates and routes.
func New(evaluator *usecase.Evaluator, log *slog.Logger) *Server {
	gin.SetMode(gin.ReleaseMode)

	s := &Server{evaluator: evaluator, logger: log}

	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.SetHTMLTemplate(template.Must(template.ParseFS(templatesFS, "templates/*.html")))
	engine.GET("/", s.index)
	engine.POST("/", s.evaluate)

	s.engine = engine
	return s
}

// Handler exposes the router for tests and embedding.
func (s *Server) Handler() http.Handler {
	return s.engine
}

// Run serves until the context is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{Addr: addr, Handler: s.engine}

	errCh := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	s.info("listening", "addr", addr)

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}

func (s *Server) index(c *gin.Context) {
	c.HTML(http.StatusOK, "index.html", nil)
}

func (s *Server) evaluate(c *gin.Context) {
	url := strings.TrimSpace(c.PostForm("article_url"))
	keywords := c.PostForm("relevant_keywords")

	if url == "" {
		c.HTML(http.StatusBadRequest, "error.html", gin.H{
			"Message": "article URL is required",
		})
		return
	}

	evaluation, err := s.evaluator.Evaluate(c.Request.Context(), url, keywords)
	if err != nil {
		s.warn("evaluation failed", "url", url, "error", err)
		c.HTML(statusFor(err), "error.html", gin.H{
			"Message": err.Error(),
		})
		return
	}

	c.HTML(http.StatusOK, "result.html", gin.H{
		"URL":           url,
		"Score":         evaluation.Breakdown.Percentage,
		"Generated":     evaluation.Generated,
		"Contributions": evaluation.Breakdown.Contributions,
	})
}

// statusFor distinguishes "site unreachable" from "bad input" from
// internal failures in the rendered error page.
func statusFor(err error) int {
	var statusErr *fetcher.StatusError

	switch {
	case errors.As(err, &statusErr), errors.Is(err, llm.ErrModel):
		return http.StatusBadGateway
	case errors.Is(err, quality.ErrEmptyArticle),
		errors.Is(err, quality.ErrNoKeywords),
		errors.Is(err, quality.ErrZeroQuality):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

func (s *Server) info(msg string, args ...interface{}) {
	if s.logger != nil {
		s.logger.Info(msg, args...)
	}
}

func (s *Server) warn(msg string, args ...interface{}) {
	if s.logger != nil {
		s.logger.Warn(msg, args...)
	}
}

package fetcher

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"ArticleRater/internal/config"
	"ArticleRater/internal/domain"
	"ArticleRater/internal/ports"
)

// markupExpr strips residual tags and newline/tab control characters
// after paragraph text extraction.
var markupExpr = regexp.MustCompile(`<[^>]*>|\n|\t`)

// StatusError reports a non-success HTTP status from the article host.
type StatusError struct {
	Code int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("article host returned status %d", e.Code)
}

// HTMLFetcher downloads a page and extracts concatenated paragraph text.
type HTMLFetcher struct {
	client    *http.Client
	userAgent string
	logger    *slog.Logger
}

var _ ports.ArticleFetcher = (*HTMLFetcher)(nil)

// NewHTMLFetcher wires an HTTP client; a nil client gets the configured
// timeout (default 20s).
func NewHTMLFetcher(client *http.Client, cfg config.FetcherConfig, log *slog.Logger) *HTMLFetcher {
	if client == nil {
		client = &http.Client{Timeout: cfg.Timeout()}
	}

	userAgent := cfg.UserAgent
	if userAgent == "" {
		userAgent = "ArticleRater/1.0"
	}

	return &HTMLFetcher{client: client, userAgent: userAgent, logger: log}
}

// Fetch GETs the URL and returns the cleaned article text. Every
// paragraph element's text is concatenated in document order with no
// separator; a page without paragraphs yields an empty article, not an
// error.
func (f *HTMLFetcher) Fetch(ctx context.Context, url string) (domain.Article, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return domain.Article{}, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("User-Agent", f.userAgent)

	resp, err := f.client.Do(req)
	if err != nil {
		return domain.Article{}, fmt.Errorf("request article: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return domain.Article{}, &StatusError{Code: resp.StatusCode}
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return domain.Article{}, fmt.Errorf("parse document: %w", err)
	}

	var buf strings.Builder
	doc.Find("p").Each(func(i int, p *goquery.Selection) {
		buf.WriteString(p.Text())
	})

	text := markupExpr.ReplaceAllString(buf.String(), "")

	f.debug("article fetched", "url", url, "chars", len(text))
	return domain.Article{URL: url, Text: text}, nil
}

func (f *HTMLFetcher) debug(msg string, args ...interface{}) {
	if f.logger != nil {
		f.logger.Debug(msg, args...)
	}
}

package web

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"ArticleRater/internal/domain"
	"ArticleRater/internal/infrastructure/fetcher"
	"ArticleRater/internal/usecase"
)

type stubFetcher struct {
	article domain.Article
	err     error
}

func (f *stubFetcher) Fetch(_ context.Context, u string) (domain.Article, error) {
	if f.err != nil {
		return domain.Article{}, f.err
	}
	article := f.article
	article.URL = u
	return article, nil
}

func newTestServer(f *stubFetcher) *Server {
	evaluator := usecase.NewEvaluator(usecase.EvaluatorDeps{Fetcher: f})
	return New(evaluator, nil)
}

func postForm(t *testing.T, s *Server, values url.Values) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(values.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	return rec
}

func TestIndexRendersForm(t *testing.T) {
	t.Parallel()

	s := newTestServer(&stubFetcher{})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `name="article_url"`)
	assert.Contains(t, rec.Body.String(), `name="relevant_keywords"`)
}

func TestEvaluateRendersResult(t *testing.T) {
	t.Parallel()

	s := newTestServer(&stubFetcher{article: domain.Article{Text: "Good plan for success exam 2023"}})

	rec := postForm(t, s, url.Values{
		"article_url":       {"https://example.org/post"},
		"relevant_keywords": {"exam, 2023"},
	})

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Quality Score")
	assert.Contains(t, rec.Body.String(), domain.LabelRelevance)
}

func TestEvaluateMissingURL(t *testing.T) {
	t.Parallel()

	s := newTestServer(&stubFetcher{})

	rec := postForm(t, s, url.Values{"relevant_keywords": {"exam"}})

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestEvaluateFetchFailure(t *testing.T) {
	t.Parallel()

	s := newTestServer(&stubFetcher{err: &fetcher.StatusError{Code: http.StatusNotFound}})

	rec := postForm(t, s, url.Values{
		"article_url":       {"https://example.org/missing"},
		"relevant_keywords": {"exam"},
	})

	assert.Equal(t, http.StatusBadGateway, rec.Code)
	assert.Contains(t, rec.Body.String(), "Could not rate this article")
}

func TestEvaluateEmptyKeywords(t *testing.T) {
	t.Parallel()

	s := newTestServer(&stubFetcher{article: domain.Article{Text: "some words"}})

	rec := postForm(t, s, url.Values{
		"article_url":       {"https://example.org/post"},
		"relevant_keywords": {""},
	})

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

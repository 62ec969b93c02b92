package fetcher

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"ArticleRater/internal/config"
)

func newTestFetcher(server *httptest.Server) *HTMLFetcher {
	return NewHTMLFetcher(server.Client(), config.FetcherConfig{}, nil)
}

func TestFetchConcatenatesParagraphs(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`<html><body><h1>Title</h1><p>A</p><div><p>B</p></div></body></html>`))
	}))
	defer server.Close()

	article, err := newTestFetcher(server).Fetch(context.Background(), server.URL)
	if err != nil {
		t.Fatalf("Fetch error: %v", err)
	}

	if article.Text != "AB" {
		t.Fatalf("expected %q, got %q", "AB", article.Text)
	}
	if article.URL != server.URL {
		t.Fatalf("unexpected article url: %s", article.URL)
	}
}

func TestFetchStripsControlCharacters(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("<html><body><p>line one\nline two\tend</p></body></html>"))
	}))
	defer server.Close()

	article, err := newTestFetcher(server).Fetch(context.Background(), server.URL)
	if err != nil {
		t.Fatalf("Fetch error: %v", err)
	}

	if article.Text != "line oneline twoend" {
		t.Fatalf("expected control characters stripped, got %q", article.Text)
	}
}

func TestFetchNonSuccessStatus(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "not here", http.StatusNotFound)
	}))
	defer server.Close()

	_, err := newTestFetcher(server).Fetch(context.Background(), server.URL)

	var statusErr *StatusError
	if !errors.As(err, &statusErr) {
		t.Fatalf("expected StatusError, got %v", err)
	}
	if statusErr.Code != http.StatusNotFound {
		t.Fatalf("expected code 404, got %d", statusErr.Code)
	}
}

func TestFetchNoParagraphs(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`<html><body><div>no paragraphs here</div></body></html>`))
	}))
	defer server.Close()

	article, err := newTestFetcher(server).Fetch(context.Background(), server.URL)
	if err != nil {
		t.Fatalf("Fetch error: %v", err)
	}

	if article.Text != "" {
		t.Fatalf("expected empty article, got %q", article.Text)
	}
}

package ports

import (
	"context"
	"time"

	"ArticleRater/internal/domain"
)

// ArticleFetcher retrieves and cleans article text from a URL.
type ArticleFetcher interface {
	Fetch(ctx context.Context, url string) (domain.Article, error)
}

// GenerationDetector estimates whether an article was produced by a
// language model. Implementations may call remote inference services.
type GenerationDetector interface {
	Detect(ctx context.Context, article domain.Article) (bool, error)
}

// ResultCache memoizes fetch and evaluation results. Entries are
// immutable once written and expire after their TTL.
type ResultCache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
}

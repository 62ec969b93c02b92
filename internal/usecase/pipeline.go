package usecase

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"ArticleRater/internal/domain"
	"ArticleRater/internal/ports"
	"ArticleRater/internal/quality"
)

// EvaluatorDeps wires all driven adapters into the scoring pipeline.
type EvaluatorDeps struct {
	Fetcher  ports.ArticleFetcher
	Detector ports.GenerationDetector
	Cache    ports.ResultCache
	Scorer   *quality.Scorer
	CacheTTL time.Duration
	Logger   *slog.Logger
}

// Evaluator implements the fetch → detect → score workflow for one URL.
// Fetches are memoized per URL and full evaluations per
// (article, verdict, keywords) tuple; cache failures degrade to a cache
// miss rather than failing the request.
type Evaluator struct {
	fetcher  ports.ArticleFetcher
	detector ports.GenerationDetector
	cache    ports.ResultCache
	scorer   *quality.Scorer
	cacheTTL time.Duration
	logger   *slog.Logger
}

// NewEvaluator constructs the orchestration component. A nil detector
// treats every article as human-written.
func NewEvaluator(deps EvaluatorDeps) *Evaluator {
	scorer := deps.Scorer
	if scorer == nil {
		scorer = quality.NewScorer()
	}

	return &Evaluator{
		fetcher:  deps.Fetcher,
		detector: deps.Detector,
		cache:    deps.Cache,
		scorer:   scorer,
		cacheTTL: deps.CacheTTL,
		logger:   deps.Logger,
	}
}

// Evaluate runs the full pipeline for one URL and comma-separated
// keyword string.
func (e *Evaluator) Evaluate(ctx context.Context, url, keywordsCSV string) (domain.Evaluation, error) {
	keywords := ParseKeywords(keywordsCSV)

	article, err := e.fetchArticle(ctx, url)
	if err != nil {
		return domain.Evaluation{}, fmt.Errorf("fetch article: %w", err)
	}

	generated := false
	if e.detector != nil {
		generated, err = e.detector.Detect(ctx, article)
		if err != nil {
			return domain.Evaluation{}, fmt.Errorf("detect generation: %w", err)
		}
	}

	key := evaluationKey(article, generated, keywords)
	if raw, ok := e.lookup(ctx, key); ok {
		var cached domain.Evaluation
		if err := json.Unmarshal(raw, &cached); err == nil {
			e.debug("evaluation cache hit", "url", url)
			return cached, nil
		}
	}

	breakdown, err := e.scorer.Score(article, generated, keywords)
	if err != nil {
		return domain.Evaluation{}, fmt.Errorf("score article: %w", err)
	}

	evaluation := domain.Evaluation{
		Article:   article,
		Keywords:  keywords,
		Generated: generated,
		Breakdown: breakdown,
	}

	e.store(ctx, key, evaluation)
	return evaluation, nil
}

// ParseKeywords splits a comma-separated keyword string, trimming each
// entry and dropping empties. Duplicates are kept.
func ParseKeywords(csv string) domain.Keywords {
	parts := strings.Split(csv, ",")
	keywords := make(domain.Keywords, 0, len(parts))
	for _, part := range parts {
		if kw := strings.TrimSpace(part); kw != "" {
			keywords = append(keywords, kw)
		}
	}
	return keywords
}

func (e *Evaluator) fetchArticle(ctx context.Context, url string) (domain.Article, error) {
	key := "article:" + url
	if raw, ok := e.lookup(ctx, key); ok {
		var cached domain.Article
		if err := json.Unmarshal(raw, &cached); err == nil {
			e.debug("article cache hit", "url", url)
			return cached, nil
		}
	}

	article, err := e.fetcher.Fetch(ctx, url)
	if err != nil {
		return domain.Article{}, err
	}

	e.store(ctx, key, article)
	return article, nil
}

func evaluationKey(article domain.Article, generated bool, keywords domain.Keywords) string {
	h := sha1.New()
	h.Write([]byte(article.Text))
	h.Write([]byte{0})
	h.Write([]byte(strconv.FormatBool(generated)))
	for _, kw := range keywords {
		h.Write([]byte{0})
		h.Write([]byte(kw))
	}
	return "evaluation:" + hex.EncodeToString(h.Sum(nil))
}

func (e *Evaluator) lookup(ctx context.Context, key string) ([]byte, bool) {
	if e.cache == nil {
		return nil, false
	}

	raw, ok, err := e.cache.Get(ctx, key)
	if err != nil {
		e.warn("cache get failed", "key", key, "error", err)
		return nil, false
	}
	return raw, ok
}

func (e *Evaluator) store(ctx context.Context, key string, value any) {
	if e.cache == nil {
		return
	}

	raw, err := json.Marshal(value)
	if err != nil {
		e.warn("cache marshal failed", "key", key, "error", err)
		return
	}

	if err := e.cache.Set(ctx, key, raw, e.cacheTTL); err != nil {
		e.warn("cache set failed", "key", key, "error", err)
	}
}

func (e *Evaluator) debug(msg string, args ...interface{}) {
	if e.logger != nil {
		e.logger.Debug(msg, args...)
	}
}

func (e *Evaluator) warn(msg string, args ...interface{}) {
	if e.logger != nil {
		e.logger.Warn(msg, args...)
	}
}

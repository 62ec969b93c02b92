package llm

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	openai "github.com/sashabaranov/go-openai"

	"ArticleRater/internal/config"
	"ArticleRater/internal/domain"
	"ArticleRater/internal/ports"
	"ArticleRater/internal/quality"
)

// ErrModel marks model load/inference failures so callers can tell them
// apart from fetch and scoring errors.
var ErrModel = errors.New("model inference failed")

const continuationPrompt = "Continue the following text naturally. Reply with the continuation only."

// completionAPI is the slice of the OpenAI client the detector needs;
// narrowed for test fakes.
type completionAPI interface {
	CreateChatCompletion(ctx context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error)
	CreateEmbeddings(ctx context.Context, req openai.EmbeddingRequestConverter) (openai.EmbeddingResponse, error)
}

// Detector estimates whether an article was machine-generated. It asks a
// language model for a continuation of the article, embeds both texts,
// and flags the article when the cosine similarity between the two
// embedding vectors is high.
//
// With a pinned seed and zero temperature the verdict is as reproducible
// as the backend allows, but generation remains inherently stochastic
// across backends and model revisions.
type Detector struct {
	api            completionAPI
	model          string
	embeddingModel openai.EmbeddingModel
	maxTokens      int
	threshold      float64
	seed           int
	logger         *slog.Logger
}

var _ ports.GenerationDetector = (*Detector)(nil)

// NewDetector builds a detector from configuration.
func NewDetector(cfg config.DetectorConfig, log *slog.Logger) *Detector {
	clientCfg := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientCfg.BaseURL = cfg.BaseURL
	}

	model := cfg.Model
	if model == "" {
		model = "gpt-4o-mini"
	}

	embeddingModel := openai.SmallEmbedding3
	if cfg.EmbeddingModel != "" {
		embeddingModel = openai.EmbeddingModel(cfg.EmbeddingModel)
	}

	maxTokens := cfg.MaxTokens
	if maxTokens <= 0 {
		maxTokens = 100
	}

	threshold := cfg.Threshold
	if threshold <= 0 {
		threshold = 0.7
	}

	return &Detector{
		api:            openai.NewClientWithConfig(clientCfg),
		model:          model,
		embeddingModel: embeddingModel,
		maxTokens:      maxTokens,
		threshold:      threshold,
		seed:           cfg.Seed,
		logger:         log,
	}
}

// Detect returns true when the effort score derived from embedding
// similarity exceeds the threshold. An article that tokenizes to zero
// words is a valid degenerate input and yields false without touching
// the model.
func (d *Detector) Detect(ctx context.Context, article domain.Article) (bool, error) {
	if len(quality.Words(article.Text)) == 0 {
		return false, nil
	}

	generated, err := d.generate(ctx, article.Text)
	if err != nil {
		return false, fmt.Errorf("%w: generate continuation: %v", ErrModel, err)
	}

	original, continued, err := d.embed(ctx, article.Text, generated)
	if err != nil {
		return false, fmt.Errorf("%w: embed texts: %v", ErrModel, err)
	}

	effort := effortScore(cosineSimilarity(original, continued))
	d.debug("generation check", "url", article.URL, "effort", effort)

	return effort > d.threshold, nil
}

func (d *Detector) generate(ctx context.Context, text string) (string, error) {
	seed := d.seed
	resp, err := d.api.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: d.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: continuationPrompt},
			{Role: openai.ChatMessageRoleUser, Content: text},
		},
		MaxTokens: d.maxTokens,
		Seed:      &seed,
	})
	if err != nil {
		return "", err
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("no completion choices")
	}
	return resp.Choices[0].Message.Content, nil
}

func (d *Detector) embed(ctx context.Context, original, generated string) ([]float32, []float32, error) {
	resp, err := d.api.CreateEmbeddings(ctx, openai.EmbeddingRequest{
		Input: []string{original, generated},
		Model: d.embeddingModel,
	})
	if err != nil {
		return nil, nil, err
	}
	if len(resp.Data) != 2 {
		return nil, nil, fmt.Errorf("expected 2 embeddings, got %d", len(resp.Data))
	}
	return resp.Data[0].Embedding, resp.Data[1].Embedding, nil
}

func (d *Detector) debug(msg string, args ...interface{}) {
	if d.logger != nil {
		d.logger.Debug(msg, args...)
	}
}

package quality

import (
	"errors"
	"math"
	"strings"

	"github.com/client9/misspell"
	"github.com/jonreiter/govader"

	"ArticleRater/internal/domain"
)

// Factor weights of the composite quality score.
const (
	weightReadability = 0.4
	weightVocabulary  = 0.1
	weightRelevance   = 0.3
	weightEffort      = 0.1
	weightSpelling    = 0.1
)

var (
	// ErrEmptyArticle is returned when the article tokenizes to zero words.
	ErrEmptyArticle = errors.New("article has no words")
	// ErrNoKeywords is returned when the keyword list is empty.
	ErrNoKeywords = errors.New("keyword list is empty")
	// ErrZeroQuality is returned when contributions cannot be derived
	// because the weighted quality score is exactly zero.
	ErrZeroQuality = errors.New("quality score is zero")
)

// Scorer computes the weighted multi-factor quality score. It is a pure
// function of its inputs and performs no I/O; a single instance is safe
// for concurrent use.
type Scorer struct {
	sentiment *govader.SentimentIntensityAnalyzer
	speller   *misspell.Replacer
}

// NewScorer builds the sentiment analyzer and spelling dictionary once.
func NewScorer() *Scorer {
	speller := misspell.New()
	speller.Compile()

	return &Scorer{
		sentiment: govader.NewSentimentIntensityAnalyzer(),
		speller:   speller,
	}
}

// Score derives the five sub-scores from the article text, combines them
// into the weighted composite, rescales to a percentage, and reports each
// term's contribution share.
//
// The percentage maps quality from [-1,1] onto [0,100] but is
// deliberately not clamped: out-of-range sub-scores (a spelling score
// below zero, for instance) push the result outside that range, matching
// the historical arithmetic.
func (s *Scorer) Score(article domain.Article, isGenerated bool, keywords domain.Keywords) (domain.ScoreBreakdown, error) {
	words := Words(article.Text)
	if len(words) == 0 {
		return domain.ScoreBreakdown{}, ErrEmptyArticle
	}
	if len(keywords) == 0 {
		return domain.ScoreBreakdown{}, ErrNoKeywords
	}

	sub := domain.SubScores{
		Readability:   s.sentiment.PolarityScores(article.Text).Compound,
		Vocabulary:    vocabularyScore(words),
		Relevance:     relevanceScore(article.Text, keywords),
		Effort:        effortScore(isGenerated),
		SpellingError: s.spellingScore(article.Text, len(words)),
	}

	quality := weightReadability*sub.Readability +
		weightVocabulary*sub.Vocabulary +
		weightRelevance*sub.Relevance +
		weightEffort*sub.Effort +
		weightSpelling*sub.SpellingError

	if quality == 0 {
		return domain.ScoreBreakdown{}, ErrZeroQuality
	}

	return domain.ScoreBreakdown{
		Percentage: math.Round((quality + 1) * 50),
		Quality:    quality,
		SubScores:  sub,
		Contributions: map[string]float64{
			domain.LabelReadability: contribution(weightReadability, sub.Readability, quality),
			domain.LabelVocabulary:  contribution(weightVocabulary, sub.Vocabulary, quality),
			domain.LabelRelevance:   contribution(weightRelevance, sub.Relevance, quality),
			domain.LabelGenerated:   contribution(weightEffort, sub.Effort, quality),
			domain.LabelSpelling:    contribution(weightSpelling, sub.SpellingError, quality),
		},
	}, nil
}

func vocabularyScore(words []string) float64 {
	unique := make(map[string]struct{}, len(words))
	for _, w := range words {
		unique[w] = struct{}{}
	}
	return float64(len(unique)) / float64(len(words))
}

func relevanceScore(text string, keywords domain.Keywords) float64 {
	lowered := strings.ToLower(text)
	matched := 0
	for _, kw := range keywords {
		if strings.Contains(lowered, strings.ToLower(kw)) {
			matched++
		}
	}
	return float64(matched) / float64(len(keywords))
}

func effortScore(isGenerated bool) float64 {
	if isGenerated {
		return 0.0
	}
	return 1.0
}

// spellingScore can go negative when misspellings outnumber words; that
// is kept as-is rather than floored.
func (s *Scorer) spellingScore(text string, totalWords int) float64 {
	_, diffs := s.speller.Replace(text)
	return 1.0 - float64(len(diffs))/float64(totalWords)
}

func contribution(weight, subScore, quality float64) float64 {
	return math.Round(weight*subScore/quality*100*100) / 100
}

package domain

// Article is the text extracted from a single URL. It has no identity
// beyond its content and is not persisted anywhere.
type Article struct {
	URL  string
	Text string
}

// Keywords is the user-supplied relevance keyword list, trimmed but not
// deduplicated. Order does not affect scoring.
type Keywords []string

// SubScores holds the five raw factor values before weighting.
type SubScores struct {
	Readability   float64 `json:"readability"`
	Vocabulary    float64 `json:"vocabulary"`
	Relevance     float64 `json:"relevance"`
	Effort        float64 `json:"effort"`
	SpellingError float64 `json:"spellingError"`
}

// ScoreBreakdown carries the composite percentage and the share each
// weighted term contributed to the raw quality value. Contributions are
// not guaranteed to sum to 100.
type ScoreBreakdown struct {
	Percentage    float64            `json:"percentage"`
	Quality       float64            `json:"quality"`
	SubScores     SubScores          `json:"subScores"`
	Contributions map[string]float64 `json:"contributions"`
}

// Contribution labels as rendered in the result table.
const (
	LabelReadability = "Readability"
	LabelVocabulary  = "Vocabulary Richness"
	LabelRelevance   = "Relevance"
	LabelGenerated   = "Generated by AI"
	LabelSpelling    = "Spelling Error"
)

// Evaluation is the full pipeline result for one request.
type Evaluation struct {
	Article   Article        `json:"article"`
	Keywords  Keywords       `json:"keywords"`
	Generated bool           `json:"generated"`
	Breakdown ScoreBreakdown `json:"breakdown"`
}

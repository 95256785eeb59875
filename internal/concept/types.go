package concept

import "context"

type Sentiment string

const (
	SentimentPositive Sentiment = "positive"
	SentimentNegative Sentiment = "negative"
	SentimentNeutral  Sentiment = "neutral"
)

type Mood string

const (
	MoodCheerful    Mood = "cheerful"
	MoodPleasant    Mood = "pleasant"
	MoodNeutral     Mood = "neutral"
	MoodSomber      Mood = "somber"
	MoodMelancholic Mood = "melancholic"
)

const (
	categoryObjects = "objects"
	categoryColors  = "colors"
	categoryWeather = "weather"
	categoryTime    = "time"
	categoryActions = "actions"
	categoryStyle   = "style"
)

// Bag groups detected visual keywords by category. Entries within a
// category are deduplicated; order follows the vocabulary scan.
type Bag struct {
	Objects []string `json:"objects"`
	Colors  []string `json:"colors"`
	Weather []string `json:"weather"`
	Time    []string `json:"time"`
	Actions []string `json:"actions"`
	Style   []string `json:"style"`
}

func (b Bag) TotalDetections() int {
	return len(b.Objects) + len(b.Colors) + len(b.Weather) +
		len(b.Time) + len(b.Actions) + len(b.Style)
}

type Attributes struct {
	Mood                Mood      `json:"mood"`
	Style               string    `json:"style"`
	Sentiment           Sentiment `json:"sentiment"`
	SentimentConfidence float64   `json:"sentiment_confidence"`
}

type Confidence struct {
	PerCategory map[string]float64 `json:"per_category"`
	Overall     float64            `json:"overall"`
}

type Result struct {
	Bag        Bag        `json:"visual_elements"`
	Attributes Attributes `json:"attributes"`
	Confidence Confidence `json:"confidence"`
	Keywords   []string   `json:"keywords"`
}

// ConceptExtractor is the extraction entry point shared by the
// rule-based extractor and the LLM-assisted wrapper. Implementations
// never return an error; degraded inputs yield a neutral Result.
type ConceptExtractor interface {
	Extract(ctx context.Context, text string) Result
}

// Thresholds holds tuning constants with no documented derivation in
// the upstream model. They are configurable, not contractual.
type Thresholds struct {
	// HighConfidence separates cheerful from pleasant (and melancholic
	// from somber) when deriving mood from sentiment.
	HighConfidence float64
	// MaxSentimentConfidence caps the keyword-count confidence ramp.
	MaxSentimentConfidence float64
}

func DefaultThresholds() Thresholds {
	return Thresholds{
		HighConfidence:         0.7,
		MaxSentimentConfidence: 0.8,
	}
}

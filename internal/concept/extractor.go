package concept

import (
	"context"
	"sort"
	"strings"
	"unicode"
)

const topKeywords = 10

// Extractor is the rule-based extraction path. It is pure and never
// fails; empty input yields an empty Result with zero confidence.
type Extractor struct {
	thresholds Thresholds
}

func NewExtractor(thresholds Thresholds) *Extractor {
	if thresholds.HighConfidence <= 0 {
		thresholds = DefaultThresholds()
	}
	return &Extractor{thresholds: thresholds}
}

func (e *Extractor) Extract(_ context.Context, text string) Result {
	lowered := strings.ToLower(strings.TrimSpace(text))

	result := Result{
		Bag: Bag{
			Objects: []string{},
			Colors:  []string{},
			Weather: []string{},
			Time:    []string{},
			Actions: []string{},
			Style:   []string{},
		},
		Attributes: Attributes{
			Mood:                MoodNeutral,
			Style:               "realistic",
			Sentiment:           SentimentNeutral,
			SentimentConfidence: 0.5,
		},
		Confidence: Confidence{
			PerCategory: map[string]float64{
				categoryObjects: 0,
				categoryColors:  0,
				categoryWeather: 0,
				categoryTime:    0,
				categoryActions: 0,
				categoryStyle:   0,
			},
		},
		Keywords: []string{},
	}

	if lowered == "" {
		return result
	}

	result.Bag.Objects = matchVocabulary(lowered, objectWords)
	result.Bag.Colors = matchVocabulary(lowered, colorWords)
	result.Bag.Weather = matchVocabulary(lowered, weatherWords)
	result.Bag.Time = matchVocabulary(lowered, timeWords)
	result.Bag.Actions = matchVocabulary(lowered, actionWords)
	result.Bag.Style = matchVocabulary(lowered, styleWords)

	result.Keywords = extractKeywords(lowered)

	sentiment, confidence := e.scoreSentiment(lowered)
	result.Attributes.Sentiment = sentiment
	result.Attributes.SentimentConfidence = confidence
	result.Attributes.Mood = e.deriveMood(sentiment, confidence)
	result.Attributes.Style = e.deriveStyle(lowered, result.Bag.Style)

	result.Confidence = scoreConfidence(result.Bag)

	return result
}

func matchVocabulary(lowered string, vocabulary []string) []string {
	var matches []string
	seen := make(map[string]struct{})
	for _, word := range vocabulary {
		if strings.Contains(lowered, word) {
			if _, dup := seen[word]; dup {
				continue
			}
			seen[word] = struct{}{}
			matches = append(matches, word)
		}
	}
	if matches == nil {
		matches = []string{}
	}
	return matches
}

// extractKeywords returns the most frequent non-stop tokens, ties
// broken by first appearance.
func extractKeywords(lowered string) []string {
	tokens := tokenize(lowered)

	counts := make(map[string]int)
	var order []string
	for _, tok := range tokens {
		if len(tok) <= 2 {
			continue
		}
		if _, stop := stopWords[tok]; stop {
			continue
		}
		if counts[tok] == 0 {
			order = append(order, tok)
		}
		counts[tok]++
	}

	sort.SliceStable(order, func(i, j int) bool {
		return counts[order[i]] > counts[order[j]]
	})

	if len(order) > topKeywords {
		order = order[:topKeywords]
	}
	if order == nil {
		order = []string{}
	}
	return order
}

func tokenize(s string) []string {
	var words []string
	var current strings.Builder

	flush := func() {
		if current.Len() > 0 {
			words = append(words, current.String())
			current.Reset()
		}
	}

	for _, r := range s {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			current.WriteRune(unicode.ToLower(r))
		} else {
			flush()
		}
	}
	flush()

	return words
}

func (e *Extractor) scoreSentiment(lowered string) (Sentiment, float64) {
	positive := countOccurrences(lowered, positiveWords)
	negative := countOccurrences(lowered, negativeWords)

	switch {
	case positive > negative:
		return SentimentPositive, rampConfidence(positive-negative, e.thresholds.MaxSentimentConfidence)
	case negative > positive:
		return SentimentNegative, rampConfidence(negative-positive, e.thresholds.MaxSentimentConfidence)
	default:
		return SentimentNeutral, 0.5
	}
}

func countOccurrences(lowered string, words []string) int {
	count := 0
	for _, word := range words {
		if strings.Contains(lowered, word) {
			count++
		}
	}
	return count
}

func rampConfidence(diff int, max float64) float64 {
	confidence := 0.5 + 0.1*float64(diff)
	if confidence > max {
		return max
	}
	return confidence
}

func (e *Extractor) deriveMood(sentiment Sentiment, confidence float64) Mood {
	switch sentiment {
	case SentimentPositive:
		if confidence > e.thresholds.HighConfidence {
			return MoodCheerful
		}
		return MoodPleasant
	case SentimentNegative:
		if confidence > e.thresholds.HighConfidence {
			return MoodMelancholic
		}
		return MoodSomber
	default:
		return MoodNeutral
	}
}

func (e *Extractor) deriveStyle(lowered string, styleMatches []string) string {
	if len(styleMatches) > 0 {
		return styleMatches[0]
	}
	if countOccurrences(lowered, positiveWords) > 0 {
		return "artistic"
	}
	if countOccurrences(lowered, minimalismWords) > 0 {
		return "minimalist"
	}
	return "realistic"
}

func scoreConfidence(bag Bag) Confidence {
	// One full point per exact vocabulary match. Partial-match weights
	// would slot in here if fuzzy matching were enabled.
	perCategory := map[string]float64{
		categoryObjects: float64(len(bag.Objects)),
		categoryColors:  float64(len(bag.Colors)),
		categoryWeather: float64(len(bag.Weather)),
		categoryTime:    float64(len(bag.Time)),
		categoryActions: float64(len(bag.Actions)),
		categoryStyle:   float64(len(bag.Style)),
	}

	total := bag.TotalDetections()
	if total == 0 {
		return Confidence{PerCategory: perCategory, Overall: 0}
	}

	var sum float64
	for _, score := range perCategory {
		sum += score
	}

	overall := sum / float64(total)
	if overall > 1.0 {
		overall = 1.0
	}

	return Confidence{PerCategory: perCategory, Overall: overall}
}

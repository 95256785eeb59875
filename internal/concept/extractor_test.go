package concept

import (
	"context"
	"math"
	"strings"
	"testing"
)

func newTestExtractor() *Extractor {
	return NewExtractor(DefaultThresholds())
}

func containsAll(haystack []string, needles ...string) bool {
	set := make(map[string]struct{}, len(haystack))
	for _, h := range haystack {
		set[h] = struct{}{}
	}
	for _, n := range needles {
		if _, ok := set[n]; !ok {
			return false
		}
	}
	return true
}

func TestExtract_BlueSkyScenario(t *testing.T) {
	e := newTestExtractor()
	result := e.Extract(context.Background(), "A blue sky with stars and a moon")

	if !containsAll(result.Bag.Objects, "stars", "moon") {
		t.Errorf("expected objects to include stars and moon, got %v", result.Bag.Objects)
	}
	if !containsAll(result.Bag.Colors, "blue") {
		t.Errorf("expected colors to include blue, got %v", result.Bag.Colors)
	}
	if result.Attributes.Sentiment != SentimentNeutral {
		t.Errorf("expected neutral sentiment, got %s", result.Attributes.Sentiment)
	}
	if result.Confidence.Overall <= 0 {
		t.Errorf("expected positive overall confidence, got %f", result.Confidence.Overall)
	}
}

func TestExtract_EmptyText(t *testing.T) {
	e := newTestExtractor()

	for _, input := range []string{"", "   ", "\t\n"} {
		result := e.Extract(context.Background(), input)

		if result.Bag.TotalDetections() != 0 {
			t.Errorf("input %q: expected empty bag, got %+v", input, result.Bag)
		}
		if result.Attributes.Sentiment != SentimentNeutral {
			t.Errorf("input %q: expected neutral sentiment, got %s", input, result.Attributes.Sentiment)
		}
		if result.Confidence.Overall != 0 {
			t.Errorf("input %q: expected zero confidence, got %f", input, result.Confidence.Overall)
		}
		if len(result.Keywords) != 0 {
			t.Errorf("input %q: expected no keywords, got %v", input, result.Keywords)
		}
	}
}

func TestExtract_NeverPanics(t *testing.T) {
	e := newTestExtractor()
	inputs := []string{
		"!!!???...",
		strings.Repeat("very long input ", 1000),
		"ünïcödé tëxt with ümlaut",
		"12345 67890",
	}
	for _, input := range inputs {
		_ = e.Extract(context.Background(), input)
	}
}

func TestExtract_SentimentScoring(t *testing.T) {
	e := newTestExtractor()

	tests := []struct {
		name       string
		text       string
		sentiment  Sentiment
		confidence float64
	}{
		{
			name:       "single positive word",
			text:       "a beautiful sunrise",
			sentiment:  SentimentPositive,
			confidence: 0.6,
		},
		{
			name:       "multiple positive words capped at max",
			text:       "beautiful wonderful amazing stunning lovely",
			sentiment:  SentimentPositive,
			confidence: 0.8,
		},
		{
			name:       "negative words",
			text:       "a sad and gloomy scene",
			sentiment:  SentimentNegative,
			confidence: 0.7,
		},
		{
			name:       "balanced words tie to neutral",
			text:       "beautiful but sad",
			sentiment:  SentimentNeutral,
			confidence: 0.5,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := e.Extract(context.Background(), tt.text)
			if result.Attributes.Sentiment != tt.sentiment {
				t.Errorf("expected sentiment %s, got %s", tt.sentiment, result.Attributes.Sentiment)
			}
			if math.Abs(result.Attributes.SentimentConfidence-tt.confidence) > 1e-9 {
				t.Errorf("expected confidence %f, got %f", tt.confidence, result.Attributes.SentimentConfidence)
			}
		})
	}
}

func TestExtract_MoodDerivation(t *testing.T) {
	e := newTestExtractor()

	tests := []struct {
		name string
		text string
		mood Mood
	}{
		{
			name: "high confidence positive is cheerful",
			text: "beautiful wonderful amazing stunning",
			mood: MoodCheerful,
		},
		{
			name: "low confidence positive is pleasant",
			text: "a beautiful tree",
			mood: MoodPleasant,
		},
		{
			name: "high confidence negative is melancholic",
			text: "sad gloomy terrible horrible",
			mood: MoodMelancholic,
		},
		{
			name: "low confidence negative is somber",
			text: "a sad tree",
			mood: MoodSomber,
		},
		{
			name: "no sentiment words is neutral",
			text: "a tree on a hill",
			mood: MoodNeutral,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := e.Extract(context.Background(), tt.text)
			if result.Attributes.Mood != tt.mood {
				t.Errorf("expected mood %s, got %s", tt.mood, result.Attributes.Mood)
			}
		})
	}
}

func TestExtract_StyleSelection(t *testing.T) {
	e := newTestExtractor()

	tests := []struct {
		name  string
		text  string
		style string
	}{
		{
			name:  "taxonomy match wins",
			text:  "a watercolor of a lake",
			style: "watercolor",
		},
		{
			name:  "positive adjective falls back to artistic",
			text:  "a gorgeous and beautiful scene",
			style: "artistic",
		},
		{
			name:  "minimalism words fall back to minimalist",
			text:  "a simple clean composition",
			style: "minimalist",
		},
		{
			name:  "default is realistic",
			text:  "a tree on a hill",
			style: "realistic",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := e.Extract(context.Background(), tt.text)
			if result.Attributes.Style != tt.style {
				t.Errorf("expected style %q, got %q", tt.style, result.Attributes.Style)
			}
		})
	}
}

func TestExtract_BagDeduplication(t *testing.T) {
	e := newTestExtractor()
	result := e.Extract(context.Background(), "a tree and another tree near a tree")

	count := 0
	for _, obj := range result.Bag.Objects {
		if obj == "tree" {
			count++
		}
	}
	if count != 1 {
		t.Errorf("expected tree to appear once, got %d", count)
	}
}

func TestExtractKeywords(t *testing.T) {
	t.Run("stop words removed and frequency ranked", func(t *testing.T) {
		keywords := extractKeywords("the peacock danced and the peacock sang near a fountain")
		if len(keywords) == 0 || keywords[0] != "peacock" {
			t.Errorf("expected peacock ranked first, got %v", keywords)
		}
		for _, kw := range keywords {
			if _, stop := stopWords[kw]; stop {
				t.Errorf("stop word %q leaked into keywords", kw)
			}
		}
	})

	t.Run("filler verbs and directions removed", func(t *testing.T) {
		keywords := extractKeywords("go back to the old lighthouse and look back again")
		for _, kw := range keywords {
			if kw == "back" || kw == "look" {
				t.Errorf("filler word %q leaked into keywords: %v", kw, keywords)
			}
		}
	})

	t.Run("short tokens removed", func(t *testing.T) {
		keywords := extractKeywords("ox at an elm")
		for _, kw := range keywords {
			if len(kw) <= 2 {
				t.Errorf("short token %q leaked into keywords", kw)
			}
		}
	})

	t.Run("ties keep first seen order", func(t *testing.T) {
		keywords := extractKeywords("zebra apple zebra apple mango")
		if len(keywords) < 2 || keywords[0] != "zebra" || keywords[1] != "apple" {
			t.Errorf("expected first-seen tie order [zebra apple ...], got %v", keywords)
		}
	})

	t.Run("capped at ten", func(t *testing.T) {
		keywords := extractKeywords("alpha bravo charlie delta echo foxtrot golf hotel india juliett kilo lima")
		if len(keywords) != 10 {
			t.Errorf("expected 10 keywords, got %d", len(keywords))
		}
	})
}

func TestExtract_ConfidenceAggregation(t *testing.T) {
	e := newTestExtractor()

	result := e.Extract(context.Background(), "a blue tree at sunrise")
	if result.Confidence.Overall != 1.0 {
		t.Errorf("expected overall confidence 1.0 for exact matches, got %f", result.Confidence.Overall)
	}
	if result.Confidence.PerCategory[categoryColors] != 1.0 {
		t.Errorf("expected colors score 1.0, got %f", result.Confidence.PerCategory[categoryColors])
	}

	empty := e.Extract(context.Background(), "qqq zzz")
	if empty.Confidence.Overall != 0 {
		t.Errorf("expected zero confidence with no detections, got %f", empty.Confidence.Overall)
	}
}

// Package prompt turns extracted attributes and keyword salience into
// an enriched image-generation prompt. Synthesis is pure string
// composition; identical inputs always produce identical output.
package prompt

import (
	"regexp"
	"strings"

	"github.com/eleven-am/sketch-backend/internal/concept"
)

const featuredKeywords = 5

var sentimentModifiers = map[concept.Sentiment]string{
	concept.SentimentPositive: "vibrant colors, bright lighting, uplifting atmosphere, beautiful, cheerful",
	concept.SentimentNegative: "muted colors, dramatic lighting, moody atmosphere, artistic, somber",
	concept.SentimentNeutral:  "balanced colors, natural lighting, peaceful atmosphere, serene",
}

// Topic buckets are checked in order; the first match decides the
// artistic clause.
var topicBuckets = []struct {
	words  []string
	clause string
}{
	{
		words:  []string{"nature", "forest", "tree", "flower", "mountain", "ocean", "sky"},
		clause: "landscape photography, natural beauty, high resolution",
	},
	{
		words:  []string{"person", "people", "face", "portrait", "human"},
		clause: "portrait photography, professional, detailed",
	},
	{
		words:  []string{"abstract", "art", "creative", "design", "pattern"},
		clause: "abstract art, creative design, artistic expression",
	},
}

const defaultArtisticClause = "digital art, high quality, detailed, professional"

var (
	repeatedCommas = regexp.MustCompile(`,(\s*,)+`)
	repeatedSpaces = regexp.MustCompile(`\s+`)
)

type Synthesizer struct{}

func NewSynthesizer() *Synthesizer {
	return &Synthesizer{}
}

func (s *Synthesizer) Synthesize(text string, attrs concept.Attributes, keywords []string) string {
	var parts []string

	base := strings.TrimSpace(text)
	if base != "" {
		parts = append(parts, base)
	}

	if len(keywords) > 0 {
		top := keywords
		if len(top) > featuredKeywords {
			top = top[:featuredKeywords]
		}
		parts = append(parts, "featuring "+strings.Join(top, ", "))
	}

	modifier, ok := sentimentModifiers[attrs.Sentiment]
	if !ok {
		modifier = sentimentModifiers[concept.SentimentNeutral]
	}
	parts = append(parts, modifier)

	parts = append(parts, artisticClause(strings.ToLower(text)))

	return clean(strings.Join(parts, ", "))
}

func artisticClause(lowered string) string {
	for _, bucket := range topicBuckets {
		for _, word := range bucket.words {
			if strings.Contains(lowered, word) {
				return bucket.clause
			}
		}
	}
	return defaultArtisticClause
}

func clean(prompt string) string {
	prompt = repeatedCommas.ReplaceAllString(prompt, ",")
	prompt = repeatedSpaces.ReplaceAllString(prompt, " ")
	return strings.Trim(prompt, " ,")
}

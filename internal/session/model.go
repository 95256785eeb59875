package session

import (
	"time"

	"github.com/eleven-am/sketch-backend/internal/shared"
)

// SentinelID marks results that were produced without database backing.
const SentinelID = "no_db_session"

// Record is one completed pipeline run: what was said, what was
// extracted, and what was drawn.
type Record struct {
	ID             string `gorm:"primaryKey" json:"id"`
	Transcript     string `json:"transcript"`
	EnhancedPrompt string `json:"enhanced_prompt"`

	Keywords shared.StringSlice `gorm:"type:text" json:"keywords"`
	Objects  shared.StringSlice `gorm:"type:text" json:"objects"`
	Colors   shared.StringSlice `gorm:"type:text" json:"colors"`
	Weather  shared.StringSlice `gorm:"type:text" json:"weather"`
	TimeRefs shared.StringSlice `gorm:"type:text" json:"time"`
	Actions  shared.StringSlice `gorm:"type:text" json:"actions"`
	Styles   shared.StringSlice `gorm:"type:text" json:"styles"`

	Mood                string  `json:"mood"`
	Style               string  `json:"style"`
	Sentiment           string  `json:"sentiment"`
	SentimentConfidence float64 `json:"sentiment_confidence"`
	Confidence          float64 `json:"confidence"`

	ImageService   string  `json:"image_service"`
	ImageData      string  `gorm:"type:text" json:"image_data,omitempty"`
	ImageURL       string  `json:"image_url,omitempty"`
	ImageSuccess   bool    `json:"image_success"`
	ResponseTimeMs float64 `json:"response_time_ms"`

	CreatedAt time.Time `json:"created_at"`
}

func (r *Record) RedisKey() string {
	return "sketch:" + r.ID
}

func redisKey(id string) string {
	return "sketch:" + id
}

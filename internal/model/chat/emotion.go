package chat

import "encoding/json"

// Sentiment is the coarse polarity attached to an emotion analysis.
type Sentiment string

const (
	SentimentPositive Sentiment = "positive"
	SentimentNeutral  Sentiment = "neutral"
	SentimentNegative Sentiment = "negative"
)

// EmotionAnalysis is computed by the backend for the latest user message.
// Confidence and Intensity are in [0,1].
type EmotionAnalysis struct {
	State      string    `json:"state"`
	Sentiment  Sentiment `json:"sentiment"`
	Confidence float64   `json:"confidence"`
	Intensity  float64   `json:"intensity"`
	Keywords   []string  `json:"keywords"`
}

// SafetyAlert is returned instead of a normal reply when the backend detects
// a crisis. Level is informational only. Extra keeps any other fields the
// backend attached to the alert, undecoded.
type SafetyAlert struct {
	Message string                     `json:"message"`
	Level   string                     `json:"level,omitempty"`
	Extra   map[string]json.RawMessage `json:"-"`
}

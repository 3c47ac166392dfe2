package chat

import (
	"encoding/json"
	"maps"
)

// SendRequest is the body of POST /api/v1/messages. A nil ConversationID is
// sent as JSON null and asks the server to open a new conversation.
type SendRequest struct {
	Content        string  `json:"content"`
	ConversationID *string `json:"conversation_id"`
}

// ReplyMessage is the assistant_message (or user_message) block of a reply.
type ReplyMessage struct {
	ID               string    `json:"id"`
	Role             Role      `json:"role,omitempty"`
	Content          string    `json:"content"`
	EmotionalState   string    `json:"emotional_state,omitempty"`
	EmotionIntensity *float64  `json:"emotion_intensity,omitempty"`
	CreatedAt        Timestamp `json:"created_at"`
}

// SendResult is the decoded reply of POST /api/v1/messages. Exactly one of
// the two shapes is meaningful: when SafetyAlert is true only Message, Level
// and Extra are set.
type SendResult struct {
	SafetyAlert bool   `json:"safety_alert"`
	Message     string `json:"message,omitempty"`
	Level       string `json:"level,omitempty"`

	ConversationID   string           `json:"conversation_id,omitempty"`
	UserMessage      *ReplyMessage    `json:"user_message,omitempty"`
	AssistantMessage *ReplyMessage    `json:"assistant_message,omitempty"`
	EmotionAnalysis  *EmotionAnalysis `json:"emotion_analysis,omitempty"`

	// Extra holds top-level fields not listed above.
	Extra map[string]json.RawMessage `json:"-"`
}

var sendResultKeys = []string{
	"safety_alert", "message", "level",
	"conversation_id", "user_message", "assistant_message", "emotion_analysis",
}

// UnmarshalJSON implements json.Unmarshaler, collecting unknown fields in Extra.
func (r *SendResult) UnmarshalJSON(data []byte) error {
	type fields SendResult
	var decoded fields
	if err := json.Unmarshal(data, &decoded); err != nil {
		return err
	}
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	for _, key := range sendResultKeys {
		delete(raw, key)
	}
	if len(raw) > 0 {
		decoded.Extra = raw
	}
	*r = SendResult(decoded)
	return nil
}

// Alert returns the safety alert carried by the result, if any.
func (r SendResult) Alert() (SafetyAlert, bool) {
	if !r.SafetyAlert {
		return SafetyAlert{}, false
	}
	return SafetyAlert{Message: r.Message, Level: r.Level, Extra: maps.Clone(r.Extra)}, true
}

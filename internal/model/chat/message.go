package chat

// Role identifies who authored a message.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Message is one rendered turn of the conversation. Entries are never mutated
// after they are appended to a session log.
type Message struct {
	ID               string    `json:"id"`
	Role             Role      `json:"role"`
	Content          string    `json:"content"`
	EmotionalState   string    `json:"emotional_state,omitempty"`
	EmotionIntensity *float64  `json:"emotion_intensity,omitempty"`
	CreatedAt        Timestamp `json:"created_at"`
}

// IsUser reports whether the message was typed locally.
func (m Message) IsUser() bool {
	return m.Role == RoleUser
}

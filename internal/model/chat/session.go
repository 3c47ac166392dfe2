package chat

// ConversationSummary is one row of GET /api/v1/conversations.
type ConversationSummary struct {
	ID             string    `json:"id"`
	Title          string    `json:"title"`
	PrimaryEmotion string    `json:"primary_emotion,omitempty"`
	MessageCount   int       `json:"message_count"`
	CreatedAt      Timestamp `json:"created_at"`
	UpdatedAt      Timestamp `json:"updated_at"`
}

// ConversationDetail is a server-owned thread with its stored history.
type ConversationDetail struct {
	ID             string    `json:"id"`
	Title          string    `json:"title"`
	PrimaryEmotion string    `json:"primary_emotion,omitempty"`
	MessageCount   int       `json:"message_count"`
	CreatedAt      Timestamp `json:"created_at"`
	Messages       []Message `json:"messages"`
}

// DeleteResult is returned by DELETE /api/v1/conversations/{id}.
type DeleteResult struct {
	Status string `json:"status"`
}

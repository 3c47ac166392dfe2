package history

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/zhouzirui/empathic-coach/client/internal/model/chat"
)

var now = time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)

func TestListEmpty(t *testing.T) {
	assert.Contains(t, List(nil, now), "Nenhuma conversa encontrada.")
}

func TestList(t *testing.T) {
	out := List([]chat.ConversationSummary{
		{ID: "c1", Title: "Prova amanhã", PrimaryEmotion: "anxiety", MessageCount: 1200, UpdatedAt: chat.NewTimestamp(now.Add(-2 * time.Hour))},
		{ID: "c2", MessageCount: 2},
	}, now)

	for _, want := range []string{"TÍTULO", "c1", "Prova amanhã", "😰 Anxiety", "1,200", "há cerca de 2 horas", "Sem título"} {
		assert.Contains(t, out, want)
	}
}

func TestDetail(t *testing.T) {
	intensity := 0.7
	out := Detail(chat.ConversationDetail{
		ID:             "c1",
		Title:          "Prova amanhã",
		PrimaryEmotion: "anxiety",
		CreatedAt:      chat.NewTimestamp(now.Add(-24 * time.Hour)),
		Messages: []chat.Message{
			{ID: "m1", Role: chat.RoleUser, Content: "Estou nervoso", EmotionalState: "fear", EmotionIntensity: &intensity},
			{ID: "m2", Role: chat.RoleAssistant, Content: "Vamos respirar juntos"},
		},
	}, now, 80, nil)

	assert.Contains(t, out, "Prova amanhã")
	assert.Contains(t, out, "2 mensagens")
	assert.Contains(t, out, "criada há 1 dia")
	assert.Contains(t, out, "😨 Fear")
	assert.Contains(t, out, "70%")
	assert.Equal(t, 1, strings.Count(out, "Vamos respirar juntos"))
}

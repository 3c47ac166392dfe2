// Package history renders stored conversations for the terminal.
package history

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/dustin/go-humanize"

	"github.com/zhouzirui/empathic-coach/client/internal/analysis/emotion"
	"github.com/zhouzirui/empathic-coach/client/internal/model/chat"
	"github.com/zhouzirui/empathic-coach/client/internal/view/components"
)

// List renders the conversation summaries as a table.
func List(items []chat.ConversationSummary, now time.Time) string {
	if len(items) == 0 {
		return components.MutedStyle.Render("Nenhuma conversa encontrada.")
	}

	rows := make([][]string, 0, len(items))
	for _, item := range items {
		rows = append(rows, []string{
			item.ID,
			title(item.Title),
			emotionLabel(item.PrimaryEmotion),
			humanize.Comma(int64(item.MessageCount)),
			components.RelativeTime(item.UpdatedAt.Time, now),
		})
	}

	header := lipgloss.NewStyle().Bold(true).Foreground(components.Empathic).Padding(0, 1)
	cell := lipgloss.NewStyle().Padding(0, 1)
	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(components.Border)).
		Headers("ID", "TÍTULO", "EMOÇÃO", "MENSAGENS", "ATUALIZADA").
		Rows(rows...).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return header
			}
			return cell
		})
	return t.Render()
}

// Detail renders one conversation with its messages as bubbles.
func Detail(detail chat.ConversationDetail, now time.Time, width int, md components.Markdown) string {
	var b strings.Builder
	b.WriteString(components.TitleStyle.Render(title(detail.Title)))
	b.WriteString("\n")
	meta := []string{
		"id " + detail.ID,
		pluralMessages(len(detail.Messages)),
	}
	if detail.PrimaryEmotion != "" {
		meta = append(meta, emotionLabel(detail.PrimaryEmotion))
	}
	if stamp := components.RelativeTime(detail.CreatedAt.Time, now); stamp != "" {
		meta = append(meta, "criada "+stamp)
	}
	b.WriteString(components.MutedStyle.Render(strings.Join(meta, " · ")))
	b.WriteString("\n\n")

	for _, msg := range detail.Messages {
		bubble := components.Bubble{Message: msg, Width: width, Now: now, Markdown: md}
		if msg.IsUser() && msg.EmotionalState != "" {
			bubble.Badge = &components.EmotionBadge{State: msg.EmotionalState, Intensity: msg.EmotionIntensity}
		}
		b.WriteString(components.MessageBubble(bubble))
		b.WriteString("\n")
	}
	return b.String()
}

func title(t string) string {
	if strings.TrimSpace(t) == "" {
		return "Sem título"
	}
	return t
}

func emotionLabel(tag string) string {
	if strings.TrimSpace(tag) == "" {
		return "-"
	}
	return fmt.Sprintf("%s %s", emotion.Lookup(tag).Emoji, components.Capitalize(tag))
}

func pluralMessages(n int) string {
	if n == 1 {
		return "1 mensagem"
	}
	return strconv.Itoa(n) + " mensagens"
}

package components

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/zhouzirui/empathic-coach/client/internal/analysis/emotion"
	"github.com/zhouzirui/empathic-coach/client/internal/model/chat"
)

// EmotionBadge is the optional emotion tag drawn on top of a bubble.
type EmotionBadge struct {
	State     string
	Intensity *float64
}

// Bubble describes one message bubble.
type Bubble struct {
	Message chat.Message
	Badge   *EmotionBadge
	// Width is the full row width; the bubble takes up to two thirds of it.
	Width    int
	Now      time.Time
	Markdown Markdown
}

// MessageBubble renders a message right-aligned for the user and left-aligned
// for the assistant.
func MessageBubble(b Bubble) string {
	row := clampWidth(b.Width, 24, 0)
	inner := clampWidth(row*2/3, 20, 72)
	isUser := b.Message.IsUser()

	box := lipgloss.NewStyle().Padding(0, 1).Width(inner)
	timeStyle := lipgloss.NewStyle()
	content := b.Message.Content
	if isUser {
		box = box.Foreground(lipgloss.Color("#ffffff")).Background(Empathic)
		timeStyle = timeStyle.Foreground(EmpathicLight)
	} else {
		box = box.Foreground(Ink).Border(lipgloss.RoundedBorder()).BorderForeground(Border)
		timeStyle = timeStyle.Foreground(Muted)
		content = renderContent(b.Markdown, content)
	}

	var parts []string
	if b.Badge != nil && b.Badge.State != "" && isUser {
		parts = append(parts, BadgeLine(*b.Badge, inner-4))
	}
	parts = append(parts, content)
	if stamp := RelativeTime(b.Message.CreatedAt.Time, b.Now); stamp != "" {
		parts = append(parts, timeStyle.Render(stamp))
	}

	rendered := box.Render(strings.Join(parts, "\n"))
	if isUser {
		return lipgloss.PlaceHorizontal(row, lipgloss.Right, rendered)
	}
	return lipgloss.PlaceHorizontal(row, lipgloss.Left, rendered)
}

// BadgeLine renders "<emoji> <State>   <NN%>" on a tinted strip. The
// percentage is omitted when the intensity is missing or zero.
func BadgeLine(badge EmotionBadge, width int) string {
	style := emotion.Lookup(badge.State)
	left := fmt.Sprintf("%s %s", style.Emoji, Capitalize(badge.State))
	right := ""
	if badge.Intensity != nil && *badge.Intensity > 0 {
		right = fmt.Sprintf("%d%%", emotion.Percent(*badge.Intensity))
	}

	gap := width - lipgloss.Width(left) - lipgloss.Width(right) - 2
	if gap < 1 {
		gap = 1
	}
	line := left
	if right != "" {
		line += strings.Repeat(" ", gap) + right
	}

	return lipgloss.NewStyle().
		Foreground(Ink).
		Border(lipgloss.ThickBorder(), false, false, false, true).
		BorderForeground(style.Color).
		Padding(0, 1).
		Render(line)
}

package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/zhouzirui/empathic-coach/client/internal/analysis/emotion"
	"github.com/zhouzirui/empathic-coach/client/internal/model/chat"
)

// EmotionIndicator renders the current analysis: state, sentiment, the
// confidence and intensity bars and the detected keywords.
func EmotionIndicator(analysis chat.EmotionAnalysis, width int) string {
	width = clampWidth(width, 30, 100)
	style := emotion.Lookup(analysis.State)
	level := emotion.IntensityLevel(analysis.Intensity)

	face := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(style.Color).
		Foreground(style.Accent).
		Padding(0, 1).
		Render(emotion.SentimentEmoji(string(analysis.Sentiment)))

	chip := lipgloss.NewStyle().Foreground(Ink).Background(Border).Padding(0, 1).
		Render(Capitalize(string(analysis.Sentiment)))
	title := TitleStyle.Render(Capitalize(analysis.State)) + " " + chip
	if level == emotion.LevelHigh {
		title += " " + lipgloss.NewStyle().Foreground(Danger).Render("⚠")
	}

	barWidth := width - lipgloss.Width(face) - 30
	if barWidth < 10 {
		barWidth = 10
	}

	lines := []string{
		title,
		meter("Confiança", analysis.Confidence, barWidth, Empathic),
		meter("Intensidade", analysis.Intensity, barWidth, emotion.LevelColor(level)),
	}
	if len(analysis.Keywords) > 0 {
		keyword := lipgloss.NewStyle().Foreground(EmpathicDark).Background(EmpathicLight).Padding(0, 1)
		chips := make([]string, 0, len(analysis.Keywords))
		for _, word := range analysis.Keywords {
			chips = append(chips, keyword.Render(word))
		}
		lines = append(lines, MutedStyle.Render("Palavras-chave detectadas:"), strings.Join(chips, " "))
	}

	body := lipgloss.JoinHorizontal(lipgloss.Top, face, "  ", strings.Join(lines, "\n"))
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(Border).
		Padding(0, 1).
		Width(width - 2).
		Render(body)
}

func meter(label string, ratio float64, width int, color lipgloss.Color) string {
	pct := emotion.Percent(ratio)
	filled := pct * width / 100
	bar := lipgloss.NewStyle().Foreground(color).Render(strings.Repeat("█", filled)) +
		lipgloss.NewStyle().Foreground(Border).Render(strings.Repeat("░", width-filled))
	return fmt.Sprintf("%-11s %s %3d%%", label, bar, pct)
}

package components

import (
	"bytes"
	"encoding/json"
	"slices"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/zhouzirui/empathic-coach/client/internal/model/chat"
)

// SafetyAlertPanel renders the alert banner shown after a crisis reply.
// Fields the backend added beyond message and level are listed under it.
func SafetyAlertPanel(alert chat.SafetyAlert, width int) string {
	width = clampWidth(width, 30, 100)
	title := lipgloss.NewStyle().Bold(true).Foreground(Danger).Render("⚠ Alerta de Segurança")
	body := lipgloss.NewStyle().Foreground(lipgloss.Color("#b91c1c")).Render(alert.Message)

	content := title + "\n" + body
	if details := alertDetails(alert.Extra); details != "" {
		content += "\n\n" + MutedStyle.Render(details)
	}

	return lipgloss.NewStyle().
		Border(lipgloss.ThickBorder(), false, false, false, true).
		BorderForeground(Danger).
		Padding(0, 1).
		Width(width - 2).
		Render(content)
}

// alertDetails lists extra fields as "key: value" lines, sorted by key.
func alertDetails(extra map[string]json.RawMessage) string {
	keys := make([]string, 0, len(extra))
	for k := range extra {
		keys = append(keys, k)
	}
	slices.Sort(keys)

	lines := make([]string, 0, len(keys))
	for _, k := range keys {
		if v := detailValue(extra[k]); v != "" {
			lines = append(lines, Capitalize(strings.ReplaceAll(k, "_", " "))+": "+v)
		}
	}
	return strings.Join(lines, "\n")
}

func detailValue(raw json.RawMessage) string {
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	var list []string
	if err := json.Unmarshal(raw, &list); err == nil {
		return strings.Join(list, ", ")
	}
	var compact bytes.Buffer
	if err := json.Compact(&compact, raw); err != nil {
		return string(raw)
	}
	return compact.String()
}

// Package components renders chat state into terminal text. Every function is
// a pure function of its arguments.
package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Brand palette.
var (
	Empathic      = lipgloss.Color("#7c3aed")
	EmpathicDark  = lipgloss.Color("#6d28d9")
	EmpathicLight = lipgloss.Color("#ede9fe")
	Ink           = lipgloss.Color("#111827")
	Muted         = lipgloss.Color("#6b7280")
	Border        = lipgloss.Color("#e5e7eb")
	Danger        = lipgloss.Color("#dc2626")
	DangerLight   = lipgloss.Color("#fef2f2")
	Success       = lipgloss.Color("#16a34a")
	Teal          = lipgloss.Color("#14b8a6")
)

var (
	HeaderStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#ffffff")).Background(Empathic).Padding(0, 2)
	MutedStyle  = lipgloss.NewStyle().Foreground(Muted)
	TitleStyle  = lipgloss.NewStyle().Bold(true).Foreground(Ink)
	ErrorStyle  = lipgloss.NewStyle().Foreground(Danger)
)

var titleCaser = cases.Title(language.BrazilianPortuguese)

// Capitalize upper-cases the first letter of a tag such as "anxiety".
func Capitalize(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}
	return titleCaser.String(s)
}

// Markdown renders assistant replies. A nil Markdown leaves text as is.
type Markdown interface {
	Render(in string) (string, error)
}

func renderContent(md Markdown, content string) string {
	if md == nil {
		return content
	}
	out, err := md.Render(content)
	if err != nil {
		return content
	}
	return strings.Trim(out, "\n")
}

func clampWidth(width, min, max int) int {
	if width < min {
		return min
	}
	if max > 0 && width > max {
		return max
	}
	return width
}

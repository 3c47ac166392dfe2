package pricing

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/zhouzirui/empathic-coach/client/internal/model/plan"
	"github.com/zhouzirui/empathic-coach/client/internal/service/profile"
	"github.com/zhouzirui/empathic-coach/client/internal/view/components"
)

// Opener hands a URL to the system browser.
type Opener func(url string) error

type keyMap struct {
	Prev   key.Binding
	Next   key.Binding
	Choose key.Binding
	Quit   key.Binding
}

var keys = keyMap{
	Prev:   key.NewBinding(key.WithKeys("left", "up", "h", "k", "shift+tab")),
	Next:   key.NewBinding(key.WithKeys("right", "down", "l", "j", "tab")),
	Choose: key.NewBinding(key.WithKeys("enter", " ")),
	Quit:   key.NewBinding(key.WithKeys("q", "esc", "ctrl+c")),
}

// checkoutMsg reports the result of a checkout attempt.
type checkoutMsg struct {
	planID string
	url    string
	err    error
}

// Model is the interactive plan picker.
type Model struct {
	ctx     context.Context
	plans   []plan.Plan
	client  Checkouter
	who     profile.Profile
	open    Opener
	cursor  int
	loading string
	err     error
	url     string
	width   int
}

// New creates a picker over plans. open may be nil, in which case the URL is
// only printed.
func New(ctx context.Context, plans []plan.Plan, client Checkouter, who profile.Profile, open Opener) Model {
	if ctx == nil {
		ctx = context.Background()
	}
	return Model{ctx: ctx, plans: plans, client: client, who: who, open: open, width: 100}
}

// CheckoutURL is the URL the user was sent to, once checkout started.
func (m Model) CheckoutURL() string {
	return m.url
}

// Err is the error of the last failed attempt.
func (m Model) Err() error {
	return m.err
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = max(msg.Width, 30)
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Quit):
			return m, tea.Quit
		case m.loading != "":
			return m, nil
		case key.Matches(msg, keys.Prev):
			if m.cursor > 0 {
				m.cursor--
			}
		case key.Matches(msg, keys.Next):
			if m.cursor < len(m.plans)-1 {
				m.cursor++
			}
		case key.Matches(msg, keys.Choose):
			if len(m.plans) == 0 {
				return m, nil
			}
			chosen := m.plans[m.cursor].ID
			m.loading = chosen
			m.err = nil
			return m, m.checkout(chosen)
		}
		return m, nil

	case checkoutMsg:
		m.loading = ""
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.url = msg.url
		return m, tea.Quit
	}
	return m, nil
}

func (m Model) checkout(planID string) tea.Cmd {
	ctx, client, who, open := m.ctx, m.client, m.who, m.open
	return func() tea.Msg {
		target, err := Begin(ctx, client, who, planID)
		if err != nil {
			return checkoutMsg{planID: planID, err: err}
		}
		if open != nil {
			// the URL is still shown when no browser can be launched
			_ = open(target)
		}
		return checkoutMsg{planID: planID, url: target}
	}
}

func (m Model) View() string {
	var b strings.Builder
	b.WriteString(Header())
	b.WriteString("\n\n")
	if m.err != nil {
		b.WriteString(Banner(ErrorMessage(m.err), m.width))
		b.WriteString("\n\n")
	}
	b.WriteString(Cards(m.plans, m.cursor, m.loading, m.width))
	b.WriteString("\n\n")
	if m.url != "" {
		b.WriteString(components.MutedStyle.Render("Abrindo checkout: " + m.url))
		b.WriteString("\n")
	}
	b.WriteString(Footer())
	b.WriteString("\n")
	b.WriteString(components.MutedStyle.Render("←/→ escolher • enter assinar • q sair"))
	return b.String()
}

// Header is the catalog title.
func Header() string {
	title := components.TitleStyle.Render("Escolha seu Plano")
	sub := components.MutedStyle.Render("Comece com o teste único ou escolha um plano mensal")
	return title + "\n" + sub
}

// Footer is the catalog fine print.
func Footer() string {
	return components.MutedStyle.Render("Todos os planos incluem acesso completo ao DISC YOU") + "\n" +
		components.MutedStyle.Render("Pagamentos seguros com Stripe • PIX, Cartão de Débito e Crédito")
}

// Banner renders the checkout error banner.
func Banner(message string, width int) string {
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color("#991b1b")).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("#fecaca")).
		Padding(0, 1).
		Width(min(width, 80) - 2).
		Render("❌ " + message)
}

// Cards lays the plans out side by side when there is room, stacked otherwise.
// selected < 0 renders no cursor; loading marks the plan being processed.
func Cards(plans []plan.Plan, selected int, loading string, width int) string {
	const cardWidth = 30
	rendered := make([]string, 0, len(plans))
	for i, p := range plans {
		rendered = append(rendered, Card(p, i == selected, p.ID == loading, cardWidth))
	}
	if len(rendered) == 0 {
		return ""
	}

	perRow := max(width/(cardWidth+3), 1)
	rows := make([]string, 0, len(rendered)/perRow+1)
	for start := 0; start < len(rendered); start += perRow {
		end := min(start+perRow, len(rendered))
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, interleave(rendered[start:end], " ")...))
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

// Card renders one plan.
func Card(p plan.Plan, selected, loading bool, width int) string {
	head := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#ffffff")).Background(components.Teal).
		Width(width-2).Padding(0, 1).Render(p.Name)
	desc := components.MutedStyle.Render(p.Description)
	price := lipgloss.NewStyle().Bold(true).Foreground(components.Ink).Render(p.PriceLabel())

	check := lipgloss.NewStyle().Foreground(components.Teal).Render("✓")
	features := make([]string, 0, len(p.Features))
	for _, f := range p.Features {
		features = append(features, check+" "+f)
	}

	button := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#ffffff")).Background(components.Teal).Padding(0, 1)
	label := "Assinar Agora"
	if loading {
		button = button.Foreground(lipgloss.Color("#475569")).Background(lipgloss.Color("#cbd5e1"))
		label = "⏳ Processando..."
	}

	border := components.Border
	if selected {
		border = components.Teal
	}
	body := strings.Join([]string{
		head,
		desc,
		"",
		price,
		"",
		strings.Join(features, "\n"),
		"",
		button.Render(label),
	}, "\n")
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(border).
		Width(width).
		Render(body)
}

func interleave(items []string, sep string) []string {
	out := make([]string, 0, len(items)*2)
	for i, item := range items {
		if i > 0 {
			out = append(out, sep)
		}
		out = append(out, item)
	}
	return out
}

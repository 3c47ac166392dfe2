// Package chat is the terminal chat screen.
package chat

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	chatsvc "github.com/zhouzirui/empathic-coach/client/internal/service/chat"
	"github.com/zhouzirui/empathic-coach/client/internal/view/components"
)

const (
	defaultWidth  = 80
	defaultHeight = 24
	maxColumn     = 100
)

// MarkdownFactory builds a renderer for a given column width. It may be nil.
type MarkdownFactory func(width int) (components.Markdown, error)

// Model is the bubbletea model of the chat screen.
type Model struct {
	svc      *chatsvc.Service
	ctx      context.Context
	timeout  time.Duration
	logger   *zap.Logger
	now      func() time.Time
	markdown MarkdownFactory
	md       components.Markdown

	input    textinput.Model
	spin     spinner.Model
	viewport viewport.Model

	width    int
	height   int
	maxWidth int
	notice   string
}

// Option customizes a Model.
type Option func(*Model)

// WithContext bounds every exchange by ctx.
func WithContext(ctx context.Context) Option {
	return func(m *Model) {
		if ctx != nil {
			m.ctx = ctx
		}
	}
}

// WithTimeout sets a per-exchange deadline. Zero disables it.
func WithTimeout(d time.Duration) Option {
	return func(m *Model) { m.timeout = d }
}

// WithLogger attaches a logger.
func WithLogger(l *zap.Logger) Option {
	return func(m *Model) {
		if l != nil {
			m.logger = l
		}
	}
}

// WithMarkdown renders assistant replies as Markdown.
func WithMarkdown(f MarkdownFactory) Option {
	return func(m *Model) { m.markdown = f }
}

// WithMaxWidth caps the chat column.
func WithMaxWidth(w int) Option {
	return func(m *Model) {
		if w > 0 {
			m.maxWidth = w
		}
	}
}

// WithClock overrides time.Now for relative timestamps.
func WithClock(now func() time.Time) Option {
	return func(m *Model) {
		if now != nil {
			m.now = now
		}
	}
}

// replyMsg delivers a settled exchange back to Update.
type replyMsg struct {
	outcome chatsvc.Outcome
}

// New creates the chat screen bound to svc.
func New(svc *chatsvc.Service, opts ...Option) Model {
	in := textinput.New()
	in.Placeholder = "Compartilhe seus pensamentos..."
	in.Prompt = "› "
	in.CharLimit = 0
	in.Width = defaultWidth - 4
	in.Focus()

	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(components.Empathic)

	m := Model{
		svc:      svc,
		ctx:      context.Background(),
		logger:   zap.NewNop(),
		now:      time.Now,
		input:    in,
		spin:     s,
		viewport: viewport.New(defaultWidth, defaultHeight-10),
		width:    defaultWidth,
		height:   defaultHeight,
		maxWidth: maxColumn,
	}
	for _, opt := range opts {
		opt(&m)
	}
	m.rebuildMarkdown()
	m.refresh()
	return m
}

// Init starts the cursor blink.
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles keys, window resizes, spinner ticks and settled exchanges.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = max(msg.Width, 20)
		m.height = max(msg.Height, 10)
		m.input.Width = max(m.column()-4, 10)
		m.rebuildMarkdown()
		m.refresh()
		return m, nil

	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			return m, tea.Quit
		case tea.KeyCtrlN:
			return m.reset(), nil
		case tea.KeyEnter:
			return m.submit()
		case tea.KeyPgUp, tea.KeyPgDown:
			var cmd tea.Cmd
			m.viewport, cmd = m.viewport.Update(msg)
			return m, cmd
		}
		if m.svc.Snapshot().Awaiting() {
			return m, nil
		}
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd

	case replyMsg:
		if _, err := m.svc.Apply(msg.outcome); err != nil {
			m.logger.Warn("dropped exchange outcome", zap.Error(err))
		}
		m.input.Focus()
		m.refresh()
		return m, nil

	case spinner.TickMsg:
		if !m.svc.Snapshot().Awaiting() {
			return m, nil
		}
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		m.refresh()
		return m, cmd
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) submit() (tea.Model, tea.Cmd) {
	pending, err := m.svc.Submit(m.input.Value())
	switch {
	case errors.Is(err, chatsvc.ErrEmptyInput), errors.Is(err, chatsvc.ErrAwaitingResponse):
		return m, nil
	case err != nil:
		m.notice = err.Error()
		return m, nil
	}

	m.notice = ""
	m.input.Reset()
	m.input.Blur()
	m.refresh()
	return m, tea.Batch(m.exchange(pending), m.spin.Tick)
}

// exchange runs the request off the update loop.
func (m Model) exchange(pending chatsvc.Pending) tea.Cmd {
	svc, parent, timeout := m.svc, m.ctx, m.timeout
	return func() tea.Msg {
		ctx := parent
		if timeout > 0 {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(parent, timeout)
			defer cancel()
		}
		return replyMsg{outcome: svc.Exchange(ctx, pending)}
	}
}

func (m Model) reset() Model {
	if err := m.svc.Reset(); err != nil {
		m.notice = "Aguarde a resposta antes de iniciar uma nova conversa."
		return m
	}
	m.notice = "Nova conversa iniciada."
	m.input.Reset()
	m.refresh()
	return m
}

func (m Model) column() int {
	w := m.width
	if m.maxWidth > 0 && w > m.maxWidth {
		w = m.maxWidth
	}
	return w
}

func (m *Model) rebuildMarkdown() {
	if m.markdown == nil {
		return
	}
	md, err := m.markdown(m.column() - 8)
	if err != nil {
		m.logger.Warn("markdown renderer unavailable", zap.Error(err))
		m.md = nil
		return
	}
	m.md = md
}

// refresh re-renders the transcript into the viewport and scrolls to the end.
func (m *Model) refresh() {
	col := m.column()
	m.viewport.Width = col
	m.viewport.Height = max(m.height-m.chromeHeight(), 3)
	m.viewport.SetContent(m.transcript(m.svc.Snapshot(), col))
	m.viewport.GotoBottom()
}

func (m Model) transcript(snap chatsvc.Snapshot, col int) string {
	if len(snap.Messages) == 0 {
		return welcome(col)
	}

	now := m.now()
	blocks := make([]string, 0, len(snap.Messages)+2)
	for _, msg := range snap.Messages {
		bubble := components.Bubble{Message: msg, Width: col, Now: now, Markdown: m.md}
		if badge, ok := snap.BadgeFor(msg.ID); ok {
			bubble.Badge = &components.EmotionBadge{State: badge.State, Intensity: badge.Intensity}
		}
		blocks = append(blocks, components.MessageBubble(bubble))
	}
	if snap.Awaiting() {
		blocks = append(blocks, m.spin.View()+" "+components.MutedStyle.Render("Coach está pensando..."))
	}
	if alert := snap.SafetyAlert(); alert != nil {
		blocks = append(blocks, components.SafetyAlertPanel(*alert, col))
	}
	return strings.Join(blocks, "\n")
}

func (m Model) chromeHeight() int {
	h := lipgloss.Height(m.header()) + lipgloss.Height(m.footer())
	if emotion := m.svc.Snapshot().CurrentEmotion(); emotion != nil {
		h += lipgloss.Height(components.EmotionIndicator(*emotion, m.column()))
	}
	return h
}

// View renders the whole screen.
func (m Model) View() string {
	sections := []string{m.header(), m.viewport.View()}
	if emotion := m.svc.Snapshot().CurrentEmotion(); emotion != nil {
		sections = append(sections, components.EmotionIndicator(*emotion, m.column()))
	}
	sections = append(sections, m.footer())
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m Model) header() string {
	title := components.HeaderStyle.Width(m.column()).Render("♥ Empathic AI Coach")
	sub := components.MutedStyle.Render("Conversação empática com IA inteligente")
	return title + "\n" + sub
}

func (m Model) footer() string {
	var b strings.Builder
	b.WriteString(lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(components.Border).
		Width(m.column() - 2).
		Render(m.input.View()))
	b.WriteString("\n")
	if m.notice != "" {
		b.WriteString(components.MutedStyle.Render(m.notice))
		b.WriteString("\n")
	}
	if err := m.svc.Snapshot().LastError(); err != nil {
		b.WriteString(components.ErrorStyle.Render("Falha na última mensagem. Tente novamente."))
		b.WriteString("\n")
	}
	b.WriteString(components.MutedStyle.Render("💡 Dica: Seja honesto sobre seus sentimentos. Estou aqui para ouvir sem julgamentos."))
	b.WriteString("\n")
	b.WriteString(components.MutedStyle.Render("enter enviar • ctrl+n nova conversa • pgup/pgdn rolar • esc sair"))
	return b.String()
}

func welcome(width int) string {
	heart := lipgloss.NewStyle().Foreground(components.Empathic).Render("♥")
	title := components.TitleStyle.Render("Bem-vindo ao Empathic AI")
	body := components.MutedStyle.Render("Sou aqui para ouvir, entender e apoiar você. Compartilhe seus pensamentos e sentimentos livremente.")
	block := lipgloss.NewStyle().Width(min(width, 60)).Align(lipgloss.Center).Render(heart + "\n\n" + title + "\n" + body)
	return lipgloss.PlaceHorizontal(width, lipgloss.Center, "\n"+block)
}

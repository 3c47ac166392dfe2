// Package payment shows the result of a hosted checkout.
package payment

import (
	"context"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"github.com/zhouzirui/empathic-coach/client/internal/model/payment"
	"github.com/zhouzirui/empathic-coach/client/internal/view/components"
)

// subscriptionPrefix is how much of the subscription id is shown.
const subscriptionPrefix = 20

// Kind is one of the three outcomes of the payment-success page.
type Kind int

const (
	KindLoading Kind = iota
	KindError
	KindSuccess
)

// Outcome is what the payment-success page shows. Status is set on success.
type Outcome struct {
	Kind   Kind
	Status *payment.Status
}

// Poller fetches the status of a checkout session.
type Poller interface {
	GetPaymentStatus(ctx context.Context, sessionID string) (*payment.Status, error)
}

// Resolve polls the session once. A blank session id is an error without any
// request; so are transport failures and server-signaled errors.
func Resolve(ctx context.Context, p Poller, sessionID string, logger *zap.Logger) Outcome {
	if logger == nil {
		logger = zap.NewNop()
	}
	if strings.TrimSpace(sessionID) == "" {
		return Outcome{Kind: KindError}
	}

	status, err := p.GetPaymentStatus(ctx, sessionID)
	if err != nil {
		logger.Error("failed to verify payment", zap.String("session_id", sessionID), zap.Error(err))
		return Outcome{Kind: KindError}
	}
	if status == nil || status.Failed() {
		if status != nil {
			logger.Warn("payment status reported an error", zap.String("session_id", sessionID), zap.String("error", status.Error))
		}
		return Outcome{Kind: KindError}
	}
	return Outcome{Kind: KindSuccess, Status: status}
}

func (o Outcome) Loading() bool { return o.Kind == KindLoading }
func (o Outcome) Success() bool { return o.Kind == KindSuccess }

// StatusLabel is "Pago" for a paid session, the raw status otherwise.
func (o Outcome) StatusLabel() string {
	if o.Status == nil {
		return ""
	}
	if o.Status.Paid() {
		return "Pago"
	}
	return o.Status.Status
}

// SubscriptionLabel is the first characters of the subscription id followed by
// "...", or "" when there is no subscription.
func (o Outcome) SubscriptionLabel() string {
	if o.Status == nil || o.Status.Subscription == "" {
		return ""
	}
	id := []rune(o.Status.Subscription)
	if len(id) > subscriptionPrefix {
		id = id[:subscriptionPrefix]
	}
	return string(id) + "..."
}

// Render draws the outcome for the terminal.
func Render(o Outcome, width int) string {
	width = min(max(width, 30), 60)
	panel := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(components.Border).
		Padding(1, 2).
		Width(width).
		Align(lipgloss.Center)

	switch o.Kind {
	case KindLoading:
		return panel.Render(components.MutedStyle.Render("Verificando seu pagamento..."))

	case KindSuccess:
		lines := []string{
			lipgloss.NewStyle().Bold(true).Foreground(components.Success).Render("✅ Pagamento Confirmado!"),
			"",
			"Seu pagamento foi processado com sucesso. Seu acesso foi ativado!",
			"",
			"Status: " + lipgloss.NewStyle().Bold(true).Foreground(components.Success).Render(o.StatusLabel()),
		}
		if sub := o.SubscriptionLabel(); sub != "" {
			lines = append(lines, "Assinatura: "+sub)
		}
		lines = append(lines, "", components.MutedStyle.Render("Um email de confirmação foi enviado para você."))
		return panel.Render(strings.Join(lines, "\n"))

	default:
		return panel.BorderForeground(components.Danger).Render(strings.Join([]string{
			lipgloss.NewStyle().Bold(true).Foreground(components.Danger).Render("Erro no Pagamento"),
			"",
			"Desculpe, não conseguimos verificar seu pagamento. Por favor, tente novamente.",
		}, "\n"))
	}
}

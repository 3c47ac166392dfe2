// Package pricing renders the plan catalog and starts hosted checkouts.
package pricing

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/zhouzirui/empathic-coach/client/internal/model/payment"
	"github.com/zhouzirui/empathic-coach/client/internal/service/api"
	"github.com/zhouzirui/empathic-coach/client/internal/service/profile"
)

// ErrNoCheckoutURL is returned when the backend accepts the request but sends
// no URL to redirect to.
var ErrNoCheckoutURL = errors.New("checkout session has no checkout_url")

// Checkouter creates hosted checkout sessions.
type Checkouter interface {
	CreateCheckoutSession(ctx context.Context, plan, userID, userEmail string) (*payment.CheckoutSession, error)
}

// Begin asks the backend for a checkout URL for planID on behalf of who.
func Begin(ctx context.Context, c Checkouter, who profile.Profile, planID string) (string, error) {
	session, err := c.CreateCheckoutSession(ctx, planID, who.UserID, who.UserEmail)
	if err != nil {
		return "", err
	}
	target := strings.TrimSpace(session.CheckoutURL)
	if target == "" {
		return "", fmt.Errorf("plan %s: %w", planID, ErrNoCheckoutURL)
	}
	return target, nil
}

// ErrorMessage is the text of the error banner for a failed checkout.
func ErrorMessage(err error) string {
	var netErr *api.NetworkError
	var decodeErr *api.DecodeError
	switch {
	case err == nil:
		return ""
	case errors.As(err, &netErr) && !netErr.Transport():
		return "Erro ao criar checkout"
	case errors.As(err, &netErr):
		return "Não foi possível conectar ao servidor"
	case errors.As(err, &decodeErr), errors.Is(err, ErrNoCheckoutURL):
		return "Resposta inválida do servidor"
	default:
		return "Erro desconhecido"
	}
}

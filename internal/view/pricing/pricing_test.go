package pricing

import (
	"context"
	"errors"
	"net/http"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zhouzirui/empathic-coach/client/internal/model/payment"
	"github.com/zhouzirui/empathic-coach/client/internal/model/plan"
	"github.com/zhouzirui/empathic-coach/client/internal/service/api"
	"github.com/zhouzirui/empathic-coach/client/internal/service/profile"
)

type stubCheckout struct {
	url   string
	err   error
	plans []string
	who   profile.Profile
}

func (s *stubCheckout) CreateCheckoutSession(_ context.Context, planID, userID, userEmail string) (*payment.CheckoutSession, error) {
	s.plans = append(s.plans, planID)
	s.who = profile.Profile{UserID: userID, UserEmail: userEmail}
	if s.err != nil {
		return nil, s.err
	}
	return &payment.CheckoutSession{CheckoutURL: s.url}, nil
}

var ana = profile.Profile{UserID: "u-1", UserEmail: "ana@example.com"}

func TestBegin(t *testing.T) {
	stub := &stubCheckout{url: "https://checkout.stripe.com/c/pay/cs_1"}
	target, err := Begin(context.Background(), stub, ana, "starter")
	require.NoError(t, err)
	assert.Equal(t, "https://checkout.stripe.com/c/pay/cs_1", target)
	assert.Equal(t, []string{"starter"}, stub.plans)
	assert.Equal(t, ana, stub.who)
}

func TestBeginWithoutURL(t *testing.T) {
	_, err := Begin(context.Background(), &stubCheckout{}, ana, "starter")
	assert.ErrorIs(t, err, ErrNoCheckoutURL)
}

func TestErrorMessage(t *testing.T) {
	assert.Equal(t, "", ErrorMessage(nil))
	assert.Equal(t, "Erro ao criar checkout", ErrorMessage(&api.NetworkError{Op: api.OpCreateCheckout, StatusCode: http.StatusBadRequest}))
	assert.Equal(t, "Não foi possível conectar ao servidor", ErrorMessage(&api.NetworkError{Op: api.OpCreateCheckout, Err: errors.New("refused")}))
	assert.Equal(t, "Resposta inválida do servidor", ErrorMessage(&api.DecodeError{Op: api.OpCreateCheckout, Err: errors.New("bad json")}))
	assert.Equal(t, "Erro desconhecido", ErrorMessage(errors.New("x")))
}

func press(t *testing.T, m Model, k tea.KeyMsg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(k)
	return next.(Model), cmd
}

func TestPickerCheckoutOpensBrowser(t *testing.T) {
	stub := &stubCheckout{url: "https://checkout.example/cs_2"}
	var opened []string
	m := New(context.Background(), plan.Seed(), stub, ana, func(u string) error {
		opened = append(opened, u)
		return nil
	})

	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyRight})
	m, cmd := press(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)
	assert.Contains(t, m.View(), "Processando...")

	// keys are ignored while a checkout is in flight
	m, again := press(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	assert.Nil(t, again)

	next, quit := m.Update(cmd())
	m = next.(Model)
	require.NotNil(t, quit)
	assert.Equal(t, []string{"starter"}, stub.plans)
	assert.Equal(t, []string{"https://checkout.example/cs_2"}, opened)
	assert.Equal(t, "https://checkout.example/cs_2", m.CheckoutURL())
	assert.NotContains(t, m.View(), "Processando...")
}

func TestPickerShowsBannerOnFailure(t *testing.T) {
	stub := &stubCheckout{err: &api.NetworkError{Op: api.OpCreateCheckout, StatusCode: http.StatusInternalServerError}}
	m := New(context.Background(), plan.Seed(), stub, ana, nil)

	m, cmd := press(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	next, quit := m.Update(cmd())
	m = next.(Model)

	assert.Nil(t, quit)
	assert.Error(t, m.Err())
	assert.Contains(t, m.View(), "❌ Erro ao criar checkout")
	assert.Equal(t, []string{"teste_unico"}, stub.plans)

	// a retry clears the banner while processing
	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	assert.NotContains(t, m.View(), "❌")
}

func TestPickerCursorBounds(t *testing.T) {
	m := New(context.Background(), plan.Seed(), &stubCheckout{}, ana, nil)
	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyLeft})
	assert.Equal(t, 0, m.cursor)
	for i := 0; i < 10; i++ {
		m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyRight})
	}
	assert.Equal(t, len(plan.Seed())-1, m.cursor)
}

func TestCardsRenderCatalog(t *testing.T) {
	out := Cards(plan.Seed(), -1, "", 140)
	for _, want := range []string{"R$ 249.00", "R$ 49.90/mês", "Testes ilimitados", "Assinar Agora"} {
		assert.Contains(t, out, want)
	}
}

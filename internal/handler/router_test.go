package handler

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"regexp"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zhouzirui/empathic-coach/client/internal/metrics"
	"github.com/zhouzirui/empathic-coach/client/internal/model/payment"
	"github.com/zhouzirui/empathic-coach/client/internal/model/plan"
	"github.com/zhouzirui/empathic-coach/client/internal/service/api"
	"github.com/zhouzirui/empathic-coach/client/internal/service/profile"
	"github.com/zhouzirui/empathic-coach/client/internal/view/web"
)

type fakeBackend struct {
	mu        sync.Mutex
	checkout  *payment.CheckoutSession
	checkErr  error
	status    *payment.Status
	statusErr error
	healthErr error

	checkouts []payment.CheckoutRequest
	polls     []string
}

func (f *fakeBackend) CreateCheckoutSession(_ context.Context, planID, userID, userEmail string) (*payment.CheckoutSession, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.checkouts = append(f.checkouts, payment.CheckoutRequest{Plan: planID, UserID: userID, UserEmail: userEmail})
	return f.checkout, f.checkErr
}

func (f *fakeBackend) GetPaymentStatus(_ context.Context, sessionID string) (*payment.Status, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.polls = append(f.polls, sessionID)
	return f.status, f.statusErr
}

func (f *fakeBackend) Health(context.Context) (*api.Health, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.healthErr != nil {
		return nil, f.healthErr
	}
	return &api.Health{Status: "healthy"}, nil
}

func (f *fakeBackend) recorded() ([]payment.CheckoutRequest, []string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]payment.CheckoutRequest(nil), f.checkouts...), append([]string(nil), f.polls...)
}

func (f *fakeBackend) failHealth(err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.healthErr = err
}

func newTestServer(t *testing.T, backend *fakeBackend) *httptest.Server {
	t.Helper()
	pages, err := web.NewRenderer()
	require.NoError(t, err)
	m := metrics.New()

	srv := httptest.NewServer(NewRouter(Dependencies{
		Plans:        plan.NewMemoryStore(plan.Seed()),
		Backend:      backend,
		Profile:      profile.Profile{UserID: "u-1", UserEmail: "ana@example.com"},
		Pages:        pages,
		Metrics:      m,
		AllowOrigins: []string{"http://localhost:5173"},
	}))
	t.Cleanup(srv.Close)
	return srv
}

func noRedirect(*http.Request, []*http.Request) error { return http.ErrUseLastResponse }

func readBody(t *testing.T, resp *http.Response) string {
	t.Helper()
	defer resp.Body.Close()
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return string(raw)
}

func TestPricingPage(t *testing.T) {
	srv := newTestServer(t, &fakeBackend{})

	resp, err := http.Get(srv.URL + "/pricing")
	require.NoError(t, err)
	body := readBody(t, resp)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Content-Type"), "text/html")
	assert.Contains(t, body, "Escolha seu Plano")
	assert.Contains(t, body, `value="teste_unico"`)
}

func TestCheckoutRedirects(t *testing.T) {
	backend := &fakeBackend{checkout: &payment.CheckoutSession{CheckoutURL: "https://checkout.stripe.com/c/pay/cs_test_1"}}
	srv := newTestServer(t, backend)
	client := &http.Client{CheckRedirect: noRedirect}

	resp, err := client.PostForm(srv.URL+"/pricing/checkout", url.Values{"plan": {"premium"}})
	require.NoError(t, err)
	resp.Body.Close()

	assert.Equal(t, http.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, "https://checkout.stripe.com/c/pay/cs_test_1", resp.Header.Get("Location"))
	checkouts, _ := backend.recorded()
	assert.Equal(t, []payment.CheckoutRequest{{Plan: "premium", UserID: "u-1", UserEmail: "ana@example.com"}}, checkouts)
}

func TestCheckoutFailureShowsBanner(t *testing.T) {
	backend := &fakeBackend{checkErr: &api.NetworkError{Op: api.OpCreateCheckout, StatusCode: http.StatusBadRequest, Detail: "Invalid plan"}}
	srv := newTestServer(t, backend)

	resp, err := http.PostForm(srv.URL+"/pricing/checkout", url.Values{"plan": {"starter"}})
	require.NoError(t, err)
	body := readBody(t, resp)

	assert.Equal(t, http.StatusBadGateway, resp.StatusCode)
	assert.Contains(t, body, "❌ Erro ao criar checkout")
}

func TestCheckoutRejectsUnknownPlan(t *testing.T) {
	backend := &fakeBackend{}
	srv := newTestServer(t, backend)

	resp, err := http.PostForm(srv.URL+"/pricing/checkout", url.Values{"plan": {"gold"}})
	require.NoError(t, err)
	body := readBody(t, resp)

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Contains(t, body, "Plano inválido")
	checkouts, _ := backend.recorded()
	assert.Empty(t, checkouts)
}

func TestPaymentSuccessPollsOnce(t *testing.T) {
	backend := &fakeBackend{status: &payment.Status{Status: "paid", Subscription: "sub_ABCDEFGHIJKLMNOPQRSTUVWXYZ"}}
	srv := newTestServer(t, backend)

	resp, err := http.Get(srv.URL + "/payment-success?session_id=cs_test_42")
	require.NoError(t, err)
	body := readBody(t, resp)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	_, polls := backend.recorded()
	assert.Equal(t, []string{"cs_test_42"}, polls)
	assert.Contains(t, body, "Pagamento Confirmado!")
	assert.Contains(t, body, "Pago")
	assert.Contains(t, body, "sub_ABCDEFGHIJKLMNOP...")

	metricsResp, err := http.Get(srv.URL + "/metrics")
	require.NoError(t, err)
	assert.Contains(t, readBody(t, metricsResp), `coach_pages_served_total{page="payment_success",view="success"} 1`)
}

func TestPaymentSuccessWithoutSession(t *testing.T) {
	backend := &fakeBackend{}
	srv := newTestServer(t, backend)

	resp, err := http.Get(srv.URL + "/payment-success")
	require.NoError(t, err)
	body := readBody(t, resp)

	assert.Contains(t, body, "Erro no Pagamento")
	_, polls := backend.recorded()
	assert.Empty(t, polls)
}

func TestPaymentSuccessServerError(t *testing.T) {
	srv := newTestServer(t, &fakeBackend{status: &payment.Status{Error: "No such checkout.session"}})

	resp, err := http.Get(srv.URL + "/payment-success?session_id=cs_bad")
	require.NoError(t, err)
	assert.Contains(t, readBody(t, resp), "Erro no Pagamento")
}

func TestPaymentCanceled(t *testing.T) {
	srv := newTestServer(t, &fakeBackend{})

	resp, err := http.Get(srv.URL + "/payment-canceled")
	require.NoError(t, err)
	assert.Contains(t, readBody(t, resp), "Pagamento Cancelado")
}

var localLink = regexp.MustCompile(`href="(/[^"]*)"`)

func TestPageLinksResolve(t *testing.T) {
	backend := &fakeBackend{status: &payment.Status{Status: "paid", Subscription: "sub_123"}}
	srv := newTestServer(t, backend)

	for _, page := range []string{"/pricing", "/payment-success?session_id=cs_1", "/payment-success", "/payment-canceled"} {
		resp, err := http.Get(srv.URL + page)
		require.NoError(t, err)
		body := readBody(t, resp)

		for _, m := range localLink.FindAllStringSubmatch(body, -1) {
			linked, err := http.Get(srv.URL + m[1])
			require.NoError(t, err)
			linked.Body.Close()
			assert.Equal(t, http.StatusOK, linked.StatusCode, "%s links to %s", page, m[1])
		}
	}
}

func TestRootRedirectsToPricing(t *testing.T) {
	srv := newTestServer(t, &fakeBackend{})
	client := &http.Client{CheckRedirect: noRedirect}

	resp, err := client.Get(srv.URL + "/")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusFound, resp.StatusCode)
	assert.Equal(t, "/pricing", resp.Header.Get("Location"))
}

func TestHealthz(t *testing.T) {
	backend := &fakeBackend{}
	srv := newTestServer(t, backend)

	resp, err := http.Get(srv.URL + "/healthz")
	require.NoError(t, err)
	var ok map[string]string
	require.NoError(t, json.NewDecoder(strings.NewReader(readBody(t, resp))).Decode(&ok))
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, map[string]string{"status": "ok", "backend": "healthy"}, ok)

	backend.failHealth(errors.New("connection refused"))
	resp, err = http.Get(srv.URL + "/healthz")
	require.NoError(t, err)
	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
	assert.Contains(t, readBody(t, resp), "unreachable")
}

func TestPlansAPI(t *testing.T) {
	srv := newTestServer(t, &fakeBackend{})

	req, err := http.NewRequest(http.MethodGet, srv.URL+"/api/plans", nil)
	require.NoError(t, err)
	req.Header.Set("Origin", "http://localhost:5173")
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, "http://localhost:5173", resp.Header.Get("Access-Control-Allow-Origin"))
	var plans []plan.Plan
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&plans))
	require.Len(t, plans, 4)
	assert.Equal(t, "teste_unico", plans[0].ID)
}

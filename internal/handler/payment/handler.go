package payment

import (
	"bytes"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/zhouzirui/empathic-coach/client/internal/metrics"
	paymentview "github.com/zhouzirui/empathic-coach/client/internal/view/payment"
	"github.com/zhouzirui/empathic-coach/client/internal/view/web"
	"github.com/zhouzirui/empathic-coach/client/pkg/utils"
)

// Handler 支付回跳页面的HTTP处理器
type Handler struct {
	poller  paymentview.Poller
	pages   *web.Renderer
	logger  *zap.Logger
	metrics *metrics.Metrics
}

// New 创建支付处理器
func New(poller paymentview.Poller, pages *web.Renderer, logger *zap.Logger, m *metrics.Metrics) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{poller: poller, pages: pages, logger: logger, metrics: m}
}

// RegisterRoutes 注册支付回跳路由
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/payment-success", h.handleSuccess)
	r.Get("/payment-canceled", h.handleCanceled)
}

// handleSuccess polls the session named by ?session_id= exactly once per load.
func (h *Handler) handleSuccess(w http.ResponseWriter, r *http.Request) {
	outcome := paymentview.Resolve(r.Context(), h.poller, r.URL.Query().Get("session_id"), h.logger)

	view := "error"
	if outcome.Success() {
		view = "success"
	}
	h.metrics.ObservePage(web.PagePaymentSuccess, view)
	h.render(w, web.PagePaymentSuccess, outcome)
}

func (h *Handler) handleCanceled(w http.ResponseWriter, _ *http.Request) {
	h.metrics.ObservePage(web.PagePaymentCanceled, "canceled")
	h.render(w, web.PagePaymentCanceled, nil)
}

func (h *Handler) render(w http.ResponseWriter, page string, data any) {
	var buf bytes.Buffer
	if err := h.pages.Render(&buf, page, data); err != nil {
		h.logger.Error("failed to render page", zap.String("page", page), zap.Error(err))
		utils.RespondError(w, http.StatusInternalServerError, "failed to render page")
		return
	}
	utils.RespondHTML(w, http.StatusOK, buf.Bytes())
}

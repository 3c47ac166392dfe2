package pricing

import (
	"bytes"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/zhouzirui/empathic-coach/client/internal/metrics"
	"github.com/zhouzirui/empathic-coach/client/internal/model/plan"
	"github.com/zhouzirui/empathic-coach/client/internal/service/profile"
	pricingview "github.com/zhouzirui/empathic-coach/client/internal/view/pricing"
	"github.com/zhouzirui/empathic-coach/client/internal/view/web"
	"github.com/zhouzirui/empathic-coach/client/pkg/utils"
)

// CheckoutPath is where the plan cards post to.
const CheckoutPath = "/pricing/checkout"

// Handler 定价页面的HTTP处理器
type Handler struct {
	plans    plan.Store
	checkout pricingview.Checkouter
	profile  profile.Profile
	pages    *web.Renderer
	logger   *zap.Logger
	metrics  *metrics.Metrics
}

// New 创建定价处理器
func New(plans plan.Store, checkout pricingview.Checkouter, who profile.Profile, pages *web.Renderer, logger *zap.Logger, m *metrics.Metrics) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{
		plans:    plans,
		checkout: checkout,
		profile:  who,
		pages:    pages,
		logger:   logger,
		metrics:  m,
	}
}

// RegisterRoutes 注册页面路由
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/pricing", h.handlePage)
	r.Post(CheckoutPath, h.handleCheckout)
}

// RegisterAPIRoutes 注册JSON路由
func (h *Handler) RegisterAPIRoutes(r chi.Router) {
	r.Get("/plans", h.handleListPlans)
}

func (h *Handler) handleListPlans(w http.ResponseWriter, _ *http.Request) {
	utils.RespondJSON(w, http.StatusOK, h.plans.List())
}

func (h *Handler) handlePage(w http.ResponseWriter, _ *http.Request) {
	h.render(w, http.StatusOK, "")
}

// handleCheckout 创建结账会话并重定向到托管结账页面
func (h *Handler) handleCheckout(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.render(w, http.StatusBadRequest, "Requisição inválida")
		return
	}

	selected, err := h.plans.Require(r.PostFormValue("plan"))
	if err != nil {
		h.logger.Warn("rejected checkout", zap.Error(err))
		h.render(w, http.StatusBadRequest, "Plano inválido")
		return
	}
	planID := selected.ID

	target, err := pricingview.Begin(r.Context(), h.checkout, h.profile, planID)
	if err != nil {
		h.logger.Error("failed to create checkout session", zap.String("plan", planID), zap.Error(err))
		h.render(w, http.StatusBadGateway, pricingview.ErrorMessage(err))
		return
	}

	h.logger.Info("redirecting to checkout", zap.String("plan", planID))
	http.Redirect(w, r, target, http.StatusSeeOther)
}

func (h *Handler) render(w http.ResponseWriter, status int, banner string) {
	view := "catalog"
	if banner != "" {
		view = "error"
	}
	h.metrics.ObservePage(web.PagePricing, view)

	var buf bytes.Buffer
	err := h.pages.Render(&buf, web.PagePricing, pricingview.Page{
		Plans:  h.plans.List(),
		Error:  banner,
		Action: CheckoutPath,
	})
	if err != nil {
		h.logger.Error("failed to render pricing page", zap.Error(err))
		utils.RespondError(w, http.StatusInternalServerError, "failed to render page")
		return
	}
	utils.RespondHTML(w, status, buf.Bytes())
}

package pricing

import "github.com/zhouzirui/empathic-coach/client/internal/model/plan"

// Page is the data of the HTML pricing page.
type Page struct {
	Plans []plan.Plan
	// Error is the banner text; empty hides the banner.
	Error string
	// Action is where the per-plan forms post to.
	Action string
}

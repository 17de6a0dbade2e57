package handlers

import (
	"net/http"

	"github.com/pocketbase/pocketbase/core"

	"github.com/oldcreekhomes/builder-suite-ai-sub001/services"
)

// HandleOptions returns the select vocabularies the UI's dropdowns need.
// Route: GET /api/app/options
func HandleOptions() func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		return e.JSON(http.StatusOK, map[string]any{
			"project_statuses": ProjectStatusOptions,
			"budget_sources":   services.BudgetSourceOptions,
			"account_types":    services.AccountTypeOptions,
			"roles":            services.RoleOptions,
			"bid_statuses":     services.BidStatusOptions,
			"bill_statuses":    services.BillStatusOptions,
		})
	}
}

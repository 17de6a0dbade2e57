package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"github.com/oldcreekhomes/builder-suite-ai-sub001/services"
)

// HandleJobCostDetail returns the ledger postings behind one cost code's
// actual amount.
// Route: GET /api/app/projects/{projectId}/job-cost/detail/{costCodeId}
func HandleJobCostDetail(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		projectID := e.Request.PathValue("projectId")
		costCodeID := e.Request.PathValue("costCodeId")

		costCode, err := app.FindRecordById("cost_codes", costCodeID)
		if err != nil {
			return apiError(e, http.StatusNotFound, ErrKindNotFound, "Cost code not found")
		}

		asOf, err := asOfFromQuery(e)
		if err != nil {
			return apiError(e, http.StatusBadRequest, ErrKindValidation, "as_of must be YYYY-MM-DD")
		}

		lines, err := services.FetchJobCostDetail(app, projectID, costCodeID, lotScopeFromQuery(e), asOf)
		if err != nil {
			if errors.Is(err, services.ErrWIPAccountNotSet) {
				return apiError(e, http.StatusUnprocessableEntity, ErrKindConfig,
					"Set a WIP account in accounting settings before running job cost reports")
			}
			log.Printf("jobcost_detail: query failed for cost code %s: %v", costCodeID, err)
			return internalError(e)
		}

		var total float64
		for _, l := range lines {
			total += l.Net
		}

		return e.JSON(http.StatusOK, map[string]any{
			"cost_code":     costCode.GetString("code"),
			"name":          costCode.GetString("name"),
			"lines":         lines,
			"total":         total,
			"total_display": services.FormatCurrency(total),
		})
	}
}

package handlers

import (
	"errors"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"github.com/oldcreekhomes/builder-suite-ai-sub001/services"
)

// asOfFromQuery parses the optional "as_of" query param. Defaults to today.
func asOfFromQuery(e *core.RequestEvent) (time.Time, error) {
	raw := strings.TrimSpace(e.Request.URL.Query().Get("as_of"))
	if raw == "" {
		return time.Now().UTC(), nil
	}
	return time.Parse("2006-01-02", raw)
}

// HandleJobCostReport returns the grouped budget vs actual report.
// Route: GET /api/app/projects/{projectId}/job-cost
func HandleJobCostReport(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		projectID := e.Request.PathValue("projectId")

		asOf, err := asOfFromQuery(e)
		if err != nil {
			return apiError(e, http.StatusBadRequest, ErrKindValidation, "as_of must be YYYY-MM-DD")
		}

		data, err := services.BuildJobCostData(app, projectID, lotScopeFromQuery(e), asOf)
		if err != nil {
			if errors.Is(err, services.ErrWIPAccountNotSet) {
				return apiError(e, http.StatusUnprocessableEntity, ErrKindConfig,
					"Set a WIP account in accounting settings before running job cost reports")
			}
			log.Printf("job_cost: could not build report for project %s: %v", projectID, err)
			return apiError(e, http.StatusNotFound, ErrKindNotFound, "Project not found")
		}

		return e.JSON(http.StatusOK, data)
	}
}

package handlers

import (
	"log"
	"net/http"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"github.com/oldcreekhomes/builder-suite-ai-sub001/services"
)

// lotScopeFromQuery builds a lot scope from the optional "lot" query param.
func lotScopeFromQuery(e *core.RequestEvent) services.LotScope {
	if lotID := e.Request.URL.Query().Get("lot"); lotID != "" {
		return services.ExactLot(lotID)
	}
	return services.AllLots()
}

func HandleBudgetList(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		projectID := e.Request.PathValue("projectId")

		listing, err := services.BuildBudgetListing(app, projectID, lotScopeFromQuery(e))
		if err != nil {
			log.Printf("budget_list: could not build listing for project %s: %v", projectID, err)
			return apiError(e, http.StatusNotFound, ErrKindNotFound, "Project not found")
		}

		return e.JSON(http.StatusOK, listing)
	}
}

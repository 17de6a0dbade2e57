package handlers

import (
	"log"
	"net/http"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"
)

// HandleBudgetDelete removes a budget item. Blocked while the budget is locked.
// Route: DELETE /api/app/projects/{projectId}/budget/{id}
func HandleBudgetDelete(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		projectID := e.Request.PathValue("projectId")
		itemID := e.Request.PathValue("id")

		if resp := requireUnlocked(app, e, projectID); resp != nil {
			return resp
		}

		record, err := app.FindRecordById("budget_items", itemID)
		if err != nil || record.GetString("project") != projectID {
			return apiError(e, http.StatusNotFound, ErrKindNotFound, "Budget item not found")
		}

		if err := app.Delete(record); err != nil {
			log.Printf("budget_delete: could not delete budget item %s: %v", itemID, err)
			return internalError(e)
		}

		return e.JSON(http.StatusOK, map[string]any{"deleted": itemID})
	}
}

package handlers

import (
	"log"
	"net/http"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"
)

func HandleProjectDelete(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		projectID := e.Request.PathValue("id")
		if projectID == "" {
			return apiError(e, http.StatusBadRequest, ErrKindValidation, "Missing project ID")
		}

		record, err := app.FindRecordById("projects", projectID)
		if err != nil {
			return apiError(e, http.StatusNotFound, ErrKindNotFound, "Project not found")
		}

		// Cascade deletes handle lots, budget items, bids and bills.
		if err := app.Delete(record); err != nil {
			log.Printf("project_delete: could not delete project %s: %v", projectID, err)
			return internalError(e)
		}

		return e.JSON(http.StatusOK, map[string]any{"deleted": projectID})
	}
}

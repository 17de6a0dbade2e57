package handlers

import (
	"log"
	"net/http"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"
)

func HandleProjectView(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		projectID := e.Request.PathValue("id")
		if projectID == "" {
			return apiError(e, http.StatusBadRequest, ErrKindValidation, "Missing project ID")
		}

		record, err := app.FindRecordById("projects", projectID)
		if err != nil {
			log.Printf("project_view: could not find project %s: %v", projectID, err)
			return apiError(e, http.StatusNotFound, ErrKindNotFound, "Project not found")
		}

		lotRecords, _ := app.FindRecordsByFilter(
			"lots",
			"project = {:projectId}",
			"name", 0, 0,
			map[string]any{"projectId": projectID},
		)
		lots := make([]map[string]any, 0, len(lotRecords))
		for _, lot := range lotRecords {
			lots = append(lots, map[string]any{
				"id":   lot.Id,
				"name": lot.GetString("name"),
			})
		}

		return e.JSON(http.StatusOK, map[string]any{
			"id":            record.Id,
			"name":          record.GetString("name"),
			"client":        record.GetString("client"),
			"status":        record.GetString("status"),
			"budget_locked": record.GetBool("budget_locked"),
			"lots":          lots,
		})
	}
}

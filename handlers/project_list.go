package handlers

import (
	"log"
	"net/http"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"
)

func HandleProjectList(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		projectsCol, err := app.FindCollectionByNameOrId("projects")
		if err != nil {
			log.Printf("project_list: could not find projects collection: %v", err)
			return internalError(e)
		}

		records, err := app.FindRecordsByFilter(projectsCol, "id != ''", "-created", 0, 0, nil)
		if err != nil {
			log.Printf("project_list: query failed: %v", err)
			return internalError(e)
		}

		projects := make([]map[string]any, 0, len(records))
		for _, rec := range records {
			projects = append(projects, map[string]any{
				"id":            rec.Id,
				"name":          rec.GetString("name"),
				"client":        rec.GetString("client"),
				"status":        rec.GetString("status"),
				"budget_locked": rec.GetBool("budget_locked"),
			})
		}

		return e.JSON(http.StatusOK, map[string]any{"projects": projects})
	}
}

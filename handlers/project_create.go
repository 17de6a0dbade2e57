package handlers

import (
	"log"
	"net/http"
	"strings"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"
)

var ProjectStatusOptions = []string{"active", "completed", "on_hold"}

func HandleProjectCreate(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		body := struct {
			Name   string `json:"name"`
			Client string `json:"client"`
			Status string `json:"status"`
		}{}
		if err := e.BindBody(&body); err != nil {
			return apiError(e, http.StatusBadRequest, ErrKindValidation, "Invalid request body")
		}

		name := strings.TrimSpace(body.Name)
		if name == "" {
			return apiError(e, http.StatusBadRequest, ErrKindValidation, "Project name is required")
		}

		status := strings.TrimSpace(body.Status)
		validStatus := false
		for _, s := range ProjectStatusOptions {
			if status == s {
				validStatus = true
				break
			}
		}
		if !validStatus {
			status = "active"
		}

		existing, _ := app.FindRecordsByFilter(
			"projects",
			"name = {:name}",
			"", 1, 0,
			map[string]any{"name": name},
		)
		if len(existing) > 0 {
			return apiError(e, http.StatusConflict, ErrKindValidation, "A project with this name already exists")
		}

		projectsCol, err := app.FindCollectionByNameOrId("projects")
		if err != nil {
			log.Printf("project_create: could not find projects collection: %v", err)
			return internalError(e)
		}

		record := core.NewRecord(projectsCol)
		record.Set("name", name)
		record.Set("client", strings.TrimSpace(body.Client))
		record.Set("status", status)
		record.Set("budget_locked", false)

		if err := app.Save(record); err != nil {
			log.Printf("project_create: could not save project: %v", err)
			return internalError(e)
		}

		return e.JSON(http.StatusCreated, map[string]any{
			"id":     record.Id,
			"name":   record.GetString("name"),
			"client": record.GetString("client"),
			"status": record.GetString("status"),
		})
	}
}

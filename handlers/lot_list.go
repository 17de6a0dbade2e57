package handlers

import (
	"log"
	"net/http"
	"strings"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"
)

func HandleLotList(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		projectID := e.Request.PathValue("projectId")

		if _, err := app.FindRecordById("projects", projectID); err != nil {
			return apiError(e, http.StatusNotFound, ErrKindNotFound, "Project not found")
		}

		records, err := app.FindRecordsByFilter(
			"lots",
			"project = {:projectId}",
			"name", 0, 0,
			map[string]any{"projectId": projectID},
		)
		if err != nil {
			log.Printf("lot_list: query failed for project %s: %v", projectID, err)
			return internalError(e)
		}

		lots := make([]map[string]any, 0, len(records))
		for _, rec := range records {
			lots = append(lots, map[string]any{
				"id":   rec.Id,
				"name": rec.GetString("name"),
			})
		}

		return e.JSON(http.StatusOK, map[string]any{"lots": lots})
	}
}

func HandleLotCreate(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		projectID := e.Request.PathValue("projectId")

		if _, err := app.FindRecordById("projects", projectID); err != nil {
			return apiError(e, http.StatusNotFound, ErrKindNotFound, "Project not found")
		}

		body := struct {
			Name string `json:"name"`
		}{}
		if err := e.BindBody(&body); err != nil {
			return apiError(e, http.StatusBadRequest, ErrKindValidation, "Invalid request body")
		}

		name := strings.TrimSpace(body.Name)
		if name == "" {
			return apiError(e, http.StatusBadRequest, ErrKindValidation, "Lot name is required")
		}

		lotsCol, err := app.FindCollectionByNameOrId("lots")
		if err != nil {
			log.Printf("lot_create: could not find lots collection: %v", err)
			return internalError(e)
		}

		record := core.NewRecord(lotsCol)
		record.Set("project", projectID)
		record.Set("name", name)

		if err := app.Save(record); err != nil {
			log.Printf("lot_create: could not save lot: %v", err)
			return internalError(e)
		}

		return e.JSON(http.StatusCreated, map[string]any{
			"id":   record.Id,
			"name": record.GetString("name"),
		})
	}
}

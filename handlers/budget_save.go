package handlers

import (
	"log"
	"net/http"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"github.com/oldcreekhomes/builder-suite-ai-sub001/services"
)

// requireUnlocked rejects budget mutations while the project's budget is
// locked. Returns a non-nil response error when the request must stop.
func requireUnlocked(app *pocketbase.PocketBase, e *core.RequestEvent, projectID string) error {
	gate := services.NewProjectLockGate(app)
	locked, err := gate.IsLocked(projectID)
	if err != nil {
		return apiError(e, http.StatusNotFound, ErrKindNotFound, "Project not found")
	}
	if locked {
		return apiError(e, http.StatusConflict, ErrKindValidation, "The budget is locked for this project")
	}
	return nil
}

// HandleBudgetSave creates or updates a budget item for a project.
// Route: POST /api/app/projects/{projectId}/budget
func HandleBudgetSave(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		projectID := e.Request.PathValue("projectId")

		if resp := requireUnlocked(app, e, projectID); resp != nil {
			return resp
		}

		body := struct {
			ID          string  `json:"id"` // empty for create
			Lot         string  `json:"lot"`
			CostCode    string  `json:"cost_code"`
			Quantity    float64 `json:"quantity"`
			UnitPrice   float64 `json:"unit_price"`
			Source      string  `json:"source"`
			SelectedBid string  `json:"selected_bid"`
		}{}
		if err := e.BindBody(&body); err != nil {
			return apiError(e, http.StatusBadRequest, ErrKindValidation, "Invalid request body")
		}

		validSource := false
		for _, s := range services.BudgetSourceOptions {
			if body.Source == s {
				validSource = true
				break
			}
		}
		if !validSource {
			return apiError(e, http.StatusBadRequest, ErrKindValidation, "Unknown budget source")
		}
		if body.Source == services.BudgetSourceBid && body.SelectedBid == "" {
			return apiError(e, http.StatusBadRequest, ErrKindValidation, "Bid-sourced items need a selected bid")
		}

		var record *core.Record
		if body.ID != "" {
			existing, err := app.FindRecordById("budget_items", body.ID)
			if err != nil || existing.GetString("project") != projectID {
				return apiError(e, http.StatusNotFound, ErrKindNotFound, "Budget item not found")
			}
			record = existing
		} else {
			if _, err := app.FindRecordById("cost_codes", body.CostCode); err != nil {
				return apiError(e, http.StatusBadRequest, ErrKindValidation, "Cost code not found")
			}
			col, err := app.FindCollectionByNameOrId("budget_items")
			if err != nil {
				log.Printf("budget_save: could not find budget_items collection: %v", err)
				return internalError(e)
			}
			record = core.NewRecord(col)
			record.Set("project", projectID)
			record.Set("cost_code", body.CostCode)
		}

		record.Set("lot", body.Lot)
		record.Set("quantity", body.Quantity)
		record.Set("unit_price", body.UnitPrice)
		record.Set("source", body.Source)
		record.Set("selected_bid", body.SelectedBid)

		if err := app.Save(record); err != nil {
			log.Printf("budget_save: could not save budget item: %v", err)
			return internalError(e)
		}

		return e.JSON(http.StatusOK, map[string]any{"id": record.Id})
	}
}

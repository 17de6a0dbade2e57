package handlers

import (
	"log"
	"net/http"
	"strings"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"github.com/oldcreekhomes/builder-suite-ai-sub001/services"
)

func HandleCostCodeCreate(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		body := struct {
			Code             string  `json:"code"`
			Name             string  `json:"name"`
			Quantity         float64 `json:"quantity"`
			UnitPrice        float64 `json:"unit_price"`
			HasSubcategories bool    `json:"has_subcategories"`
		}{}
		if err := e.BindBody(&body); err != nil {
			return apiError(e, http.StatusBadRequest, ErrKindValidation, "Invalid request body")
		}

		code := strings.TrimSpace(body.Code)
		name := strings.TrimSpace(body.Name)
		if code == "" {
			return apiError(e, http.StatusBadRequest, ErrKindValidation, "Cost code is required")
		}
		if name == "" {
			return apiError(e, http.StatusBadRequest, ErrKindValidation, "Cost code name is required")
		}

		existing, _ := app.FindRecordsByFilter(
			"cost_codes",
			"code = {:code}",
			"", 1, 0,
			map[string]any{"code": code},
		)
		if len(existing) > 0 {
			return apiError(e, http.StatusConflict, ErrKindValidation, "This cost code already exists")
		}

		col, err := app.FindCollectionByNameOrId("cost_codes")
		if err != nil {
			log.Printf("costcode_create: could not find cost_codes collection: %v", err)
			return internalError(e)
		}

		record := core.NewRecord(col)
		record.Set("code", code)
		record.Set("name", name)
		record.Set("quantity", body.Quantity)
		record.Set("unit_price", body.UnitPrice)
		record.Set("has_subcategories", body.HasSubcategories)
		if services.IsChildCode(code) {
			record.Set("parent_group", services.ParentCode(code))
		}

		if err := app.Save(record); err != nil {
			log.Printf("costcode_create: could not save cost code %q: %v", code, err)
			return internalError(e)
		}

		return e.JSON(http.StatusCreated, map[string]any{
			"id":           record.Id,
			"code":         record.GetString("code"),
			"name":         record.GetString("name"),
			"parent_group": record.GetString("parent_group"),
		})
	}
}

package handlers

import (
	"log"
	"net/http"
	"strings"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"
)

func HandleVendorList(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		col, err := app.FindCollectionByNameOrId("vendors")
		if err != nil {
			log.Printf("vendor_list: could not find vendors collection: %v", err)
			return internalError(e)
		}

		records, err := app.FindRecordsByFilter(col, "id != ''", "name", 0, 0, nil)
		if err != nil {
			log.Printf("vendor_list: query failed: %v", err)
			return internalError(e)
		}

		vendors := make([]map[string]any, 0, len(records))
		for _, rec := range records {
			vendors = append(vendors, map[string]any{
				"id":    rec.Id,
				"name":  rec.GetString("name"),
				"email": rec.GetString("email"),
				"phone": rec.GetString("phone"),
			})
		}

		return e.JSON(http.StatusOK, map[string]any{"vendors": vendors})
	}
}

func HandleVendorCreate(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		body := struct {
			Name  string `json:"name"`
			Email string `json:"email"`
			Phone string `json:"phone"`
		}{}
		if err := e.BindBody(&body); err != nil {
			return apiError(e, http.StatusBadRequest, ErrKindValidation, "Invalid request body")
		}

		name := strings.TrimSpace(body.Name)
		if name == "" {
			return apiError(e, http.StatusBadRequest, ErrKindValidation, "Vendor name is required")
		}

		col, err := app.FindCollectionByNameOrId("vendors")
		if err != nil {
			log.Printf("vendor_create: could not find vendors collection: %v", err)
			return internalError(e)
		}

		record := core.NewRecord(col)
		record.Set("name", name)
		record.Set("email", strings.TrimSpace(body.Email))
		record.Set("phone", strings.TrimSpace(body.Phone))

		if err := app.Save(record); err != nil {
			log.Printf("vendor_create: could not save vendor: %v", err)
			return internalError(e)
		}

		return e.JSON(http.StatusCreated, map[string]any{
			"id":   record.Id,
			"name": record.GetString("name"),
		})
	}
}

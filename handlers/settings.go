package handlers

import (
	"log"
	"net/http"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"
)

// HandleSettingsGet returns the accounting settings, including the configured
// WIP account if any.
func HandleSettingsGet(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		settings, err := app.FindFirstRecordByFilter("accounting_settings", "id != ''")
		if err != nil {
			log.Printf("settings: no accounting settings record: %v", err)
			return apiError(e, http.StatusNotFound, ErrKindConfig, "Accounting settings are not initialized")
		}

		resp := map[string]any{
			"id":          settings.Id,
			"wip_account": settings.GetString("wip_account"),
		}

		if wipID := settings.GetString("wip_account"); wipID != "" {
			if account, err := app.FindRecordById("accounts", wipID); err == nil {
				resp["wip_account_name"] = account.GetString("name")
				resp["wip_account_code"] = account.GetString("code")
			}
		}

		return e.JSON(http.StatusOK, resp)
	}
}

// HandleSettingsSave updates the WIP account used by job cost reports.
func HandleSettingsSave(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		body := struct {
			WIPAccount string `json:"wip_account"`
		}{}
		if err := e.BindBody(&body); err != nil {
			return apiError(e, http.StatusBadRequest, ErrKindValidation, "Invalid request body")
		}

		account, err := app.FindRecordById("accounts", body.WIPAccount)
		if err != nil {
			return apiError(e, http.StatusBadRequest, ErrKindValidation, "WIP account not found")
		}
		if account.GetString("type") != "asset" {
			return apiError(e, http.StatusBadRequest, ErrKindValidation, "WIP account must be an asset account")
		}

		settings, err := app.FindFirstRecordByFilter("accounting_settings", "id != ''")
		if err != nil {
			log.Printf("settings: no accounting settings record: %v", err)
			return apiError(e, http.StatusNotFound, ErrKindConfig, "Accounting settings are not initialized")
		}

		settings.Set("wip_account", account.Id)
		if err := app.Save(settings); err != nil {
			log.Printf("settings: could not save: %v", err)
			return internalError(e)
		}

		return e.JSON(http.StatusOK, map[string]any{
			"wip_account": account.Id,
		})
	}
}

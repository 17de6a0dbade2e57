package handlers

import (
	"log"
	"net/http"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"github.com/oldcreekhomes/builder-suite-ai-sub001/services"
)

// HandleCostCodeValidate receives a CSV or Excel upload and returns the
// validation results plus the parsed rows for a subsequent commit.
// Route: POST /api/app/cost-codes/import/validate
func HandleCostCodeValidate(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		file, header, err := e.Request.FormFile("file")
		if err != nil {
			return apiError(e, http.StatusBadRequest, ErrKindValidation, "No file uploaded")
		}
		defer file.Close()

		result, err := services.ValidateCostCodeFile(app, file, header.Filename)
		if err != nil {
			log.Printf("costcode_import: validation failed for %q: %v", header.Filename, err)
			return apiError(e, http.StatusBadRequest, ErrKindValidation, err.Error())
		}

		return e.JSON(http.StatusOK, map[string]any{
			"total_rows": result.TotalRows,
			"valid_rows": result.ValidRows,
			"error_rows": result.ErrorRows,
			"errors":     result.Errors,
			"rows":       result.ParsedRows,
		})
	}
}

// HandleCostCodeCommit creates cost code records from rows that already
// passed validation.
// Route: POST /api/app/cost-codes/import/commit
func HandleCostCodeCommit(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		body := struct {
			Rows []map[string]string `json:"rows"`
		}{}
		if err := e.BindBody(&body); err != nil {
			return apiError(e, http.StatusBadRequest, ErrKindValidation, "Invalid request body")
		}
		if len(body.Rows) == 0 {
			return apiError(e, http.StatusBadRequest, ErrKindValidation, "No rows to import")
		}

		result, err := services.CommitCostCodeImport(app, body.Rows)
		if err != nil {
			log.Printf("costcode_import: commit failed: %v", err)
			return internalError(e)
		}

		return e.JSON(http.StatusOK, result)
	}
}

package handlers

import (
	"log"
	"net/http"
	"time"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"github.com/oldcreekhomes/builder-suite-ai-sub001/services"
)

// HandleLedgerReverse creates a mirror-image reversal of an entry and stamps
// the original. reversed_at and reversed_by are written together; report
// queries may test either one.
// Route: POST /api/app/ledger/entries/{id}/reverse
func HandleLedgerReverse(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		entryID := e.Request.PathValue("id")

		original, err := app.FindRecordById("ledger_entries", entryID)
		if err != nil {
			return apiError(e, http.StatusNotFound, ErrKindNotFound, "Ledger entry not found")
		}
		if original.GetBool("is_reversal") {
			return apiError(e, http.StatusBadRequest, ErrKindValidation, "A reversal entry cannot be reversed")
		}
		if original.GetString("reversed_by") != "" {
			return apiError(e, http.StatusConflict, ErrKindValidation, "This entry has already been reversed")
		}

		lines, err := app.FindRecordsByFilter(
			"ledger_lines",
			"entry = {:entry}",
			"", 0, 0,
			map[string]any{"entry": entryID},
		)
		if err != nil {
			log.Printf("ledger_reverse: could not load lines for entry %s: %v", entryID, err)
			return internalError(e)
		}

		now := time.Now().UTC()
		number, err := services.GenerateEntryNumber(app, now)
		if err != nil {
			log.Printf("ledger_reverse: could not generate entry number: %v", err)
			return internalError(e)
		}

		entriesCol, err := app.FindCollectionByNameOrId("ledger_entries")
		if err != nil {
			log.Printf("ledger_reverse: could not find ledger_entries collection: %v", err)
			return internalError(e)
		}
		linesCol, err := app.FindCollectionByNameOrId("ledger_lines")
		if err != nil {
			log.Printf("ledger_reverse: could not find ledger_lines collection: %v", err)
			return internalError(e)
		}

		reversal := core.NewRecord(entriesCol)
		reversal.Set("entry_number", number)
		reversal.Set("entry_date", now.Format("2006-01-02")+" 00:00:00.000Z")
		reversal.Set("memo", "Reversal of "+original.GetString("entry_number"))
		reversal.Set("is_reversal", true)
		if err := app.Save(reversal); err != nil {
			log.Printf("ledger_reverse: could not save reversal entry: %v", err)
			return internalError(e)
		}

		// Mirror every line with debit and credit swapped.
		for _, l := range lines {
			line := core.NewRecord(linesCol)
			line.Set("entry", reversal.Id)
			line.Set("account", l.GetString("account"))
			line.Set("project", l.GetString("project"))
			line.Set("lot", l.GetString("lot"))
			line.Set("cost_code", l.GetString("cost_code"))
			line.Set("debit", l.GetFloat("credit"))
			line.Set("credit", l.GetFloat("debit"))
			if err := app.Save(line); err != nil {
				log.Printf("ledger_reverse: could not save mirrored line: %v", err)
				return internalError(e)
			}
		}

		original.Set("reversed_at", now.Format("2006-01-02 15:04:05.000Z"))
		original.Set("reversed_by", reversal.Id)
		if err := app.Save(original); err != nil {
			log.Printf("ledger_reverse: could not stamp original entry %s: %v", entryID, err)
			return internalError(e)
		}

		return e.JSON(http.StatusCreated, map[string]any{
			"id":           reversal.Id,
			"entry_number": number,
			"reverses":     original.Id,
		})
	}
}

package handlers

import (
	"log"
	"math"
	"net/http"
	"strings"
	"time"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"github.com/oldcreekhomes/builder-suite-ai-sub001/services"
)

type ledgerLineInput struct {
	Account  string  `json:"account"`
	Project  string  `json:"project"`
	Lot      string  `json:"lot"`
	CostCode string  `json:"cost_code"`
	Debit    float64 `json:"debit"`
	Credit   float64 `json:"credit"`
}

// HandleLedgerEntryCreate posts a balanced journal entry with its lines.
// Route: POST /api/app/ledger/entries
func HandleLedgerEntryCreate(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		body := struct {
			EntryDate string            `json:"entry_date"` // YYYY-MM-DD
			Memo      string            `json:"memo"`
			Lines     []ledgerLineInput `json:"lines"`
		}{}
		if err := e.BindBody(&body); err != nil {
			return apiError(e, http.StatusBadRequest, ErrKindValidation, "Invalid request body")
		}

		entryDate, err := time.Parse("2006-01-02", strings.TrimSpace(body.EntryDate))
		if err != nil {
			return apiError(e, http.StatusBadRequest, ErrKindValidation, "Entry date must be YYYY-MM-DD")
		}
		if len(body.Lines) < 2 {
			return apiError(e, http.StatusBadRequest, ErrKindValidation, "An entry needs at least two lines")
		}

		var debits, credits float64
		for i, l := range body.Lines {
			if l.Debit < 0 || l.Credit < 0 {
				return apiError(e, http.StatusBadRequest, ErrKindValidation, "Line amounts cannot be negative")
			}
			if l.Debit != 0 && l.Credit != 0 {
				return apiError(e, http.StatusBadRequest, ErrKindValidation, "A line is either a debit or a credit, not both")
			}
			if l.Account == "" {
				return apiError(e, http.StatusBadRequest, ErrKindValidation, "Every line needs an account")
			}
			if _, err := app.FindRecordById("accounts", l.Account); err != nil {
				log.Printf("ledger_entry: line %d references unknown account %s", i, l.Account)
				return apiError(e, http.StatusBadRequest, ErrKindValidation, "Line references an unknown account")
			}
			debits += l.Debit
			credits += l.Credit
		}
		if math.Abs(debits-credits) > 0.005 {
			return apiError(e, http.StatusBadRequest, ErrKindValidation, "Entry is unbalanced: debits must equal credits")
		}

		number, err := services.GenerateEntryNumber(app, entryDate)
		if err != nil {
			log.Printf("ledger_entry: could not generate entry number: %v", err)
			return internalError(e)
		}

		entriesCol, err := app.FindCollectionByNameOrId("ledger_entries")
		if err != nil {
			log.Printf("ledger_entry: could not find ledger_entries collection: %v", err)
			return internalError(e)
		}
		linesCol, err := app.FindCollectionByNameOrId("ledger_lines")
		if err != nil {
			log.Printf("ledger_entry: could not find ledger_lines collection: %v", err)
			return internalError(e)
		}

		entry := core.NewRecord(entriesCol)
		entry.Set("entry_number", number)
		entry.Set("entry_date", entryDate.Format("2006-01-02")+" 00:00:00.000Z")
		entry.Set("memo", strings.TrimSpace(body.Memo))
		if err := app.Save(entry); err != nil {
			log.Printf("ledger_entry: could not save entry: %v", err)
			return internalError(e)
		}

		for _, l := range body.Lines {
			line := core.NewRecord(linesCol)
			line.Set("entry", entry.Id)
			line.Set("account", l.Account)
			line.Set("project", l.Project)
			line.Set("lot", l.Lot)
			line.Set("cost_code", l.CostCode)
			line.Set("debit", l.Debit)
			line.Set("credit", l.Credit)
			if err := app.Save(line); err != nil {
				log.Printf("ledger_entry: could not save line for entry %s: %v", entry.Id, err)
				return internalError(e)
			}
		}

		return e.JSON(http.StatusCreated, map[string]any{
			"id":           entry.Id,
			"entry_number": number,
		})
	}
}

package services

import (
	"fmt"
	"time"

	"github.com/pocketbase/dbx"
	"github.com/pocketbase/pocketbase"
)

// DetailLine is one ledger posting behind a job-cost actual.
type DetailLine struct {
	EntryID     string  `db:"entry_id" json:"entry_id"`
	EntryNumber string  `db:"entry_number" json:"entry_number"`
	EntryDate   string  `db:"entry_date" json:"entry_date"`
	Memo        string  `db:"memo" json:"memo"`
	Debit       float64 `db:"debit" json:"debit"`
	Credit      float64 `db:"credit" json:"credit"`
	Net         float64 `db:"-" json:"net"`
	NetDisplay  string  `db:"-" json:"net_display"`
}

// FetchJobCostDetail lists the individual WIP postings behind one cost code's
// actual, using the same exclusions as the aggregate: reversal entries and
// reversed entries are dropped, the as-of day is included in full, and the
// lot scope always includes lot-less lines.
func FetchJobCostDetail(app *pocketbase.PocketBase, projectID, costCodeID string, scope LotScope, asOf time.Time) ([]DetailLine, error) {
	wipAccountID, err := WIPAccountID(app)
	if err != nil {
		return nil, err
	}

	cutoff := asOf.Format("2006-01-02") + " 23:59:59.999Z"

	q := app.DB().
		Select(
			"ledger_entries.id AS entry_id",
			"ledger_entries.entry_number",
			"ledger_entries.entry_date",
			"ledger_entries.memo",
			"ledger_lines.debit",
			"ledger_lines.credit",
		).
		From("ledger_lines").
		InnerJoin("ledger_entries", dbx.NewExp("ledger_entries.id = ledger_lines.entry")).
		Where(dbx.HashExp{
			"ledger_lines.account":   wipAccountID,
			"ledger_lines.project":   projectID,
			"ledger_lines.cost_code": costCodeID,
		}).
		AndWhere(dbx.HashExp{"ledger_entries.is_reversal": false}).
		AndWhere(dbx.NewExp("ledger_entries.reversed_at = ''")).
		AndWhere(dbx.NewExp("ledger_entries.entry_date <= {:cutoff}", dbx.Params{"cutoff": cutoff})).
		OrderBy("ledger_entries.entry_date", "ledger_entries.entry_number")

	if expr := scope.DBExpr("ledger_lines.lot"); expr != nil {
		q.AndWhere(expr)
	}

	var lines []DetailLine
	if err := q.All(&lines); err != nil {
		return nil, fmt.Errorf("fetch job cost detail: %w", err)
	}

	for i := range lines {
		lines[i].Net = lines[i].Debit - lines[i].Credit
		lines[i].NetDisplay = FormatAccounting(lines[i].Net)
	}
	return lines, nil
}

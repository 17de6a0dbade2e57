package services

import (
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/pocketbase/dbx"
	"github.com/pocketbase/pocketbase"
)

// ErrWIPAccountNotSet is returned when the accounting settings do not
// designate a work-in-progress account. The whole job-cost report is
// unavailable until one is configured.
var ErrWIPAccountNotSet = errors.New("work-in-progress account is not configured in accounting settings")

// JobCostData is the assembled report plus display metadata.
type JobCostData struct {
	ProjectID   string        `json:"project_id"`
	ProjectName string        `json:"project_name"`
	LotID       string        `json:"lot_id,omitempty"`
	LotName     string        `json:"lot_name,omitempty"`
	AsOf        string        `json:"as_of"`
	Report      JobCostReport `json:"report"`
}

// WIPAccountID reads the designated work-in-progress account from the
// accounting settings singleton. A missing record or empty field is a
// configuration error, not a partial result.
func WIPAccountID(app *pocketbase.PocketBase) (string, error) {
	settings, err := app.FindFirstRecordByFilter("accounting_settings", "id != ''")
	if err != nil {
		return "", ErrWIPAccountNotSet
	}
	wip := settings.GetString("wip_account")
	if wip == "" {
		return "", ErrWIPAccountNotSet
	}
	return wip, nil
}

// ledgerSum is one aggregated ledger bucket per cost code id.
type ledgerSum struct {
	CostCode string  `db:"cost_code"`
	Debit    float64 `db:"debit"`
	Credit   float64 `db:"credit"`
}

// sumLedgerByCostCode aggregates debits and credits on the WIP account per
// cost code, excluding reversed and reversal entries, up to the end of the
// as-of day, within the lot scope.
func sumLedgerByCostCode(app *pocketbase.PocketBase, wipAccountID, projectID string, scope LotScope, asOf time.Time) ([]ledgerSum, error) {
	cutoff := asOf.Format("2006-01-02") + " 23:59:59.999Z"

	q := app.DB().
		Select(
			"ledger_lines.cost_code",
			"COALESCE(SUM(ledger_lines.debit), 0) AS debit",
			"COALESCE(SUM(ledger_lines.credit), 0) AS credit",
		).
		From("ledger_lines").
		InnerJoin("ledger_entries", dbx.NewExp("ledger_entries.id = ledger_lines.entry")).
		Where(dbx.HashExp{
			"ledger_lines.account": wipAccountID,
			"ledger_lines.project": projectID,
		}).
		AndWhere(dbx.NewExp("ledger_lines.cost_code != ''")).
		AndWhere(dbx.HashExp{"ledger_entries.is_reversal": false}).
		AndWhere(dbx.NewExp("ledger_entries.reversed_by = ''")).
		AndWhere(dbx.NewExp("ledger_entries.entry_date <= {:cutoff}", dbx.Params{"cutoff": cutoff})).
		GroupBy("ledger_lines.cost_code")

	if expr := scope.DBExpr("ledger_lines.lot"); expr != nil {
		q.AndWhere(expr)
	}

	var sums []ledgerSum
	if err := q.All(&sums); err != nil {
		return nil, fmt.Errorf("sum ledger lines: %w", err)
	}
	return sums, nil
}

// fetchBudgetItems loads the project's budget rows (lot-scoped, always
// including lot-less legacy rows) joined with their cost codes and any
// selected bid.
func fetchBudgetItems(app *pocketbase.PocketBase, projectID string, scope LotScope) ([]BudgetItemCalc, map[string]bool, error) {
	filter := "project = {:project}"
	params := map[string]any{"project": projectID}
	if expr, lotParams := scope.FilterExpr("lot"); expr != "" {
		filter += " && " + expr
		for k, v := range lotParams {
			params[k] = v
		}
	}

	records, err := app.FindRecordsByFilter("budget_items", filter, "", 0, 0, params)
	if err != nil {
		return nil, nil, fmt.Errorf("fetch budget items: %w", err)
	}

	items := make([]BudgetItemCalc, 0, len(records))
	subcategorized := map[string]bool{}
	for _, rec := range records {
		item := BudgetItemCalc{
			ID:        rec.Id,
			Quantity:  rec.GetFloat("quantity"),
			UnitPrice: rec.GetFloat("unit_price"),
			Source:    rec.GetString("source"),
		}

		ccID := rec.GetString("cost_code")
		if ccID != "" {
			cc, err := app.FindRecordById("cost_codes", ccID)
			if err != nil {
				log.Printf("job_cost: could not find cost code %s: %v", ccID, err)
				continue
			}
			item.Code = cc.GetString("code")
			item.Name = cc.GetString("name")
			item.HasSubcategories = cc.GetBool("has_subcategories")
		}

		if bidID := rec.GetString("selected_bid"); bidID != "" {
			bid, err := app.FindRecordById("bids", bidID)
			if err != nil {
				log.Printf("job_cost: could not find bid %s: %v", bidID, err)
			} else {
				item.HasBid = true
				item.BidAmount = bid.GetFloat("amount")
			}
		}
		item.LockedAmount = rec.GetFloat("locked_amount")

		if item.HasSubcategories {
			subcategorized[rec.Id] = true
		}
		items = append(items, item)
	}
	return items, subcategorized, nil
}

// subcategoryTotals computes per-budget-item rollups for items whose cost
// code has subcategories: all child codes under the parent, each valued at
// its budget row override (same lot scope, null-inclusive) or its cost
// code defaults.
func subcategoryTotals(app *pocketbase.PocketBase, projectID string, scope LotScope, items []BudgetItemCalc, subcategorized map[string]bool) map[string]float64 {
	totals := map[string]float64{}

	for _, item := range items {
		if !subcategorized[item.ID] {
			continue
		}

		children, err := app.FindRecordsByFilter(
			"cost_codes",
			"parent_group = {:parent}",
			"code",
			0,
			0,
			map[string]any{"parent": item.Code},
		)
		if err != nil {
			log.Printf("job_cost: could not find child cost codes for %s: %v", item.Code, err)
			continue
		}

		var childBudgets []ChildBudget
		for _, child := range children {
			cb := ChildBudget{
				DefaultQuantity:  child.GetFloat("quantity"),
				DefaultUnitPrice: child.GetFloat("unit_price"),
			}

			filter := "project = {:project} && cost_code = {:cc}"
			params := map[string]any{"project": projectID, "cc": child.Id}
			if expr, lotParams := scope.FilterExpr("lot"); expr != "" {
				filter += " && " + expr
				for k, v := range lotParams {
					params[k] = v
				}
			}
			row, err := app.FindFirstRecordByFilter("budget_items", filter, params)
			if err == nil && row != nil {
				qty := row.GetFloat("quantity")
				price := row.GetFloat("unit_price")
				cb.Quantity = &qty
				cb.UnitPrice = &price
			}
			childBudgets = append(childBudgets, cb)
		}
		totals[item.ID] = SubcategoryTotal(childBudgets)
	}
	return totals
}

// BuildJobCostData runs the full report pipeline: settings, budget rows,
// subcategory rollups, ledger sums, fallback cost code lookups, merge.
func BuildJobCostData(app *pocketbase.PocketBase, projectID string, scope LotScope, asOf time.Time) (*JobCostData, error) {
	project, err := app.FindRecordById("projects", projectID)
	if err != nil {
		return nil, fmt.Errorf("project not found: %w", err)
	}

	wipAccountID, err := WIPAccountID(app)
	if err != nil {
		return nil, err
	}

	data := &JobCostData{
		ProjectID:   projectID,
		ProjectName: project.GetString("name"),
		AsOf:        asOf.Format("2006-01-02"),
	}
	if scope.IsExact() {
		data.LotID = scope.LotID()
		if lot, err := app.FindRecordById("lots", scope.LotID()); err == nil {
			data.LotName = lot.GetString("name")
		}
	}

	items, subcategorized, err := fetchBudgetItems(app, projectID, scope)
	if err != nil {
		return nil, err
	}
	subTotals := subcategoryTotals(app, projectID, scope, items, subcategorized)
	// The locked_amount snapshot only applies on the budget page; this
	// report always prices bid-sourced items at the live bid amount.
	budgets, names := AggregateBudgets(items, subTotals, false)

	sums, err := sumLedgerByCostCode(app, wipAccountID, projectID, scope, asOf)
	if err != nil {
		return nil, err
	}

	// Resolve cost code ids seen in ledger data. Budget-derived names take
	// precedence; ledger-only codes get their name from the direct lookup,
	// with child codes resolving the parent's own record.
	lines := make([]LedgerLineCalc, 0, len(sums))
	codeByID := map[string]string{}
	for _, s := range sums {
		lines = append(lines, LedgerLineCalc{CostCodeID: s.CostCode, Debit: s.Debit, Credit: s.Credit})
		cc, err := app.FindRecordById("cost_codes", s.CostCode)
		if err != nil {
			log.Printf("job_cost: could not resolve ledger cost code %s: %v", s.CostCode, err)
			continue
		}
		code := cc.GetString("code")
		codeByID[s.CostCode] = code

		parent := ParentCode(code)
		if _, ok := names[parent]; ok {
			continue
		}
		if parent == code {
			names[parent] = cc.GetString("name")
		} else if rec, err := app.FindFirstRecordByFilter(
			"cost_codes", "code = {:code}", map[string]any{"code": parent},
		); err == nil {
			names[parent] = rec.GetString("name")
		}
	}

	actuals := AggregateActuals(lines, func(id string) (string, bool) {
		code, ok := codeByID[id]
		return code, ok
	})

	data.Report = MergeJobCost(budgets, actuals, names)
	return data, nil
}

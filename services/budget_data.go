package services

import (
	"fmt"

	"github.com/pocketbase/pocketbase"
)

// BudgetRow is one budget line as shown on the Budget page: the raw inputs
// plus the resolved total under the project's current lock state.
type BudgetRow struct {
	ID               string  `json:"id"`
	CostCodeID       string  `json:"cost_code_id"`
	Code             string  `json:"code"`
	Name             string  `json:"name"`
	Quantity         float64 `json:"quantity"`
	UnitPrice        float64 `json:"unit_price"`
	Source           string  `json:"source"`
	HasSubcategories bool    `json:"has_subcategories"`
	Total            float64 `json:"total"`
	TotalDisplay     string  `json:"total_display"`
}

// BudgetListing is the Budget page payload.
type BudgetListing struct {
	ProjectID    string      `json:"project_id"`
	Locked       bool        `json:"locked"`
	Rows         []BudgetRow `json:"rows"`
	Total        float64     `json:"total"`
	TotalDisplay string      `json:"total_display"`
}

// BuildBudgetListing loads a project's budget rows with per-row resolved
// totals. Child-coded rows are listed but excluded from the page total,
// matching how the report aggregation treats them.
func BuildBudgetListing(app *pocketbase.PocketBase, projectID string, scope LotScope) (*BudgetListing, error) {
	project, err := app.FindRecordById("projects", projectID)
	if err != nil {
		return nil, fmt.Errorf("project not found: %w", err)
	}
	locked := project.GetBool("budget_locked")

	items, subcategorized, err := fetchBudgetItems(app, projectID, scope)
	if err != nil {
		return nil, err
	}
	subTotals := subcategoryTotals(app, projectID, scope, items, subcategorized)

	listing := &BudgetListing{ProjectID: projectID, Locked: locked}
	for _, item := range items {
		var sub *float64
		if v, ok := subTotals[item.ID]; ok {
			sub = &v
		}
		total := CalcBudgetItemTotal(item, sub, locked)

		// cost code id is not kept on BudgetItemCalc, resolve it back
		row := BudgetRow{
			ID:               item.ID,
			Code:             item.Code,
			Name:             item.Name,
			Quantity:         item.Quantity,
			UnitPrice:        item.UnitPrice,
			Source:           item.Source,
			HasSubcategories: item.HasSubcategories,
			Total:            total,
			TotalDisplay:     FormatCurrency(total),
		}
		if rec, err := app.FindRecordById("budget_items", item.ID); err == nil {
			row.CostCodeID = rec.GetString("cost_code")
		}
		listing.Rows = append(listing.Rows, row)

		if !IsChildCode(item.Code) {
			listing.Total += total
		}
	}
	listing.TotalDisplay = FormatCurrency(listing.Total)
	return listing, nil
}

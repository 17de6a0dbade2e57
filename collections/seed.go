package collections

import (
	"fmt"
	"log"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"
)

// ── Definition structs ───────────────────────────────────────────────────

type costCodeDef struct {
	code      string
	name      string
	hasSubs   bool
	quantity  float64
	unitPrice float64
}

type accountDef struct {
	code     string
	name     string
	acctType string
}

type budgetDef struct {
	costCode  string
	quantity  float64
	unitPrice float64
	source    string
}

type lineDef struct {
	account  string // account code
	costCode string // cost code string, "" for non-job-cost lines
	debit    float64
	credit   float64
}

type entryDef struct {
	number string
	date   string
	memo   string
	lines  []lineDef
}

var seedCostCodes = []costCodeDef{
	{code: "3000", name: "Concrete & Foundation", quantity: 1, unitPrice: 18500},
	{code: "4000", name: "Framing", hasSubs: true},
	{code: "4000.1", name: "Framing Labor", quantity: 120, unitPrice: 55},
	{code: "4000.2", name: "Framing Lumber", quantity: 1, unitPrice: 9800},
	{code: "4470", name: "Plumbing", quantity: 1, unitPrice: 12400},
	{code: "5200", name: "Roofing", quantity: 1, unitPrice: 8600},
	{code: "6100", name: "Drywall", quantity: 1, unitPrice: 7100},
}

var seedAccounts = []accountDef{
	{code: "1000", name: "Cash", acctType: "asset"},
	{code: "1400", name: "Work in Progress", acctType: "asset"},
	{code: "2000", name: "Accounts Payable", acctType: "liability"},
}

var seedBudget = []budgetDef{
	{costCode: "3000", quantity: 1, unitPrice: 18500, source: "manual"},
	{costCode: "4000", quantity: 1, unitPrice: 0, source: "manual"},
	{costCode: "4470", quantity: 1, unitPrice: 12400, source: "manual"},
	{costCode: "5200", quantity: 1, unitPrice: 8600, source: "estimate"},
}

var seedEntries = []entryDef{
	{
		number: "JE-2026-0001",
		date:   "2026-03-10 00:00:00.000Z",
		memo:   "Foundation pour - Acme Concrete",
		lines: []lineDef{
			{account: "1400", costCode: "3000", debit: 6200},
			{account: "2000", credit: 6200},
		},
	},
	{
		number: "JE-2026-0002",
		date:   "2026-04-02 00:00:00.000Z",
		memo:   "Framing labor draw",
		lines: []lineDef{
			{account: "1400", costCode: "4000.1", debit: 3300},
			{account: "1000", credit: 3300},
		},
	},
	{
		number: "JE-2026-0003",
		date:   "2026-04-18 00:00:00.000Z",
		memo:   "Plumbing rough-in",
		lines: []lineDef{
			{account: "1400", costCode: "4470", debit: 4150},
			{account: "2000", credit: 4150},
		},
	},
}

// Seed inserts a demo project with cost codes, accounts, a budget and a few
// journal entries. Skips everything if a project already exists.
func Seed(app *pocketbase.PocketBase) error {
	// ── idempotency: skip if projects already exist ──────────────────
	projectsCol, err := app.FindCollectionByNameOrId("projects")
	if err != nil {
		return fmt.Errorf("seed: could not find projects collection: %w", err)
	}
	existing, err := app.FindAllRecords(projectsCol)
	if err != nil {
		return fmt.Errorf("seed: could not query projects: %w", err)
	}
	if len(existing) > 0 {
		return nil // already seeded
	}

	log.Println("seed: projects collection is empty – inserting seed data …")

	// ── lookup helper collections ────────────────────────────────────
	lotsCol, err := app.FindCollectionByNameOrId("lots")
	if err != nil {
		return fmt.Errorf("seed: could not find lots collection: %w", err)
	}
	costCodesCol, err := app.FindCollectionByNameOrId("cost_codes")
	if err != nil {
		return fmt.Errorf("seed: could not find cost_codes collection: %w", err)
	}
	accountsCol, err := app.FindCollectionByNameOrId("accounts")
	if err != nil {
		return fmt.Errorf("seed: could not find accounts collection: %w", err)
	}
	settingsCol, err := app.FindCollectionByNameOrId("accounting_settings")
	if err != nil {
		return fmt.Errorf("seed: could not find accounting_settings collection: %w", err)
	}
	budgetCol, err := app.FindCollectionByNameOrId("budget_items")
	if err != nil {
		return fmt.Errorf("seed: could not find budget_items collection: %w", err)
	}
	entriesCol, err := app.FindCollectionByNameOrId("ledger_entries")
	if err != nil {
		return fmt.Errorf("seed: could not find ledger_entries collection: %w", err)
	}
	linesCol, err := app.FindCollectionByNameOrId("ledger_lines")
	if err != nil {
		return fmt.Errorf("seed: could not find ledger_lines collection: %w", err)
	}

	// ── project + lots ───────────────────────────────────────────────
	project := core.NewRecord(projectsCol)
	project.Set("name", "Maple Ridge Subdivision")
	project.Set("client", "Old Creek Homes")
	project.Set("status", "active")
	if err := app.Save(project); err != nil {
		return fmt.Errorf("seed: save project: %w", err)
	}

	lot := core.NewRecord(lotsCol)
	lot.Set("project", project.Id)
	lot.Set("name", "Lot 12")
	if err := app.Save(lot); err != nil {
		return fmt.Errorf("seed: save lot: %w", err)
	}

	// ── cost codes ───────────────────────────────────────────────────
	costCodeIDs := map[string]string{}
	for _, def := range seedCostCodes {
		rec := core.NewRecord(costCodesCol)
		rec.Set("code", def.code)
		rec.Set("name", def.name)
		rec.Set("has_subcategories", def.hasSubs)
		rec.Set("quantity", def.quantity)
		rec.Set("unit_price", def.unitPrice)
		if parent := parentOf(def.code); parent != def.code {
			rec.Set("parent_group", parent)
		}
		if err := app.Save(rec); err != nil {
			return fmt.Errorf("seed: save cost code %s: %w", def.code, err)
		}
		costCodeIDs[def.code] = rec.Id
	}

	// ── accounts + settings ──────────────────────────────────────────
	accountIDs := map[string]string{}
	for _, def := range seedAccounts {
		rec := core.NewRecord(accountsCol)
		rec.Set("code", def.code)
		rec.Set("name", def.name)
		rec.Set("type", def.acctType)
		if err := app.Save(rec); err != nil {
			return fmt.Errorf("seed: save account %s: %w", def.code, err)
		}
		accountIDs[def.code] = rec.Id
	}

	settings := core.NewRecord(settingsCol)
	settings.Set("wip_account", accountIDs["1400"])
	if err := app.Save(settings); err != nil {
		return fmt.Errorf("seed: save accounting settings: %w", err)
	}

	// ── budget ───────────────────────────────────────────────────────
	for _, def := range seedBudget {
		rec := core.NewRecord(budgetCol)
		rec.Set("project", project.Id)
		rec.Set("lot", lot.Id)
		rec.Set("cost_code", costCodeIDs[def.costCode])
		rec.Set("quantity", def.quantity)
		rec.Set("unit_price", def.unitPrice)
		rec.Set("source", def.source)
		if err := app.Save(rec); err != nil {
			return fmt.Errorf("seed: save budget item %s: %w", def.costCode, err)
		}
	}

	// ── journal entries ──────────────────────────────────────────────
	for _, def := range seedEntries {
		entry := core.NewRecord(entriesCol)
		entry.Set("entry_number", def.number)
		entry.Set("entry_date", def.date)
		entry.Set("memo", def.memo)
		if err := app.Save(entry); err != nil {
			return fmt.Errorf("seed: save entry %s: %w", def.number, err)
		}

		for _, l := range def.lines {
			line := core.NewRecord(linesCol)
			line.Set("entry", entry.Id)
			line.Set("account", accountIDs[l.account])
			line.Set("project", project.Id)
			line.Set("lot", lot.Id)
			if l.costCode != "" {
				line.Set("cost_code", costCodeIDs[l.costCode])
			}
			line.Set("debit", l.debit)
			line.Set("credit", l.credit)
			if err := app.Save(line); err != nil {
				return fmt.Errorf("seed: save line for %s: %w", def.number, err)
			}
		}
	}

	log.Println("seed: demo data inserted.")
	return nil
}

// parentOf mirrors the cost code parent rule without importing services.
func parentOf(code string) string {
	for i := 0; i < len(code); i++ {
		if code[i] == '.' {
			return code[:i]
		}
	}
	return code
}

// Package testhelpers provides utilities for testing PocketBase-based applications.
package testhelpers

import (
	"strings"
	"testing"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"github.com/oldcreekhomes/builder-suite-ai-sub001/collections"
)

// NewTestApp creates a PocketBase instance backed by a temporary directory.
// It bootstraps the app and runs collections.Setup to create all tables.
// The temporary directory is cleaned up automatically when the test finishes.
func NewTestApp(t *testing.T) *pocketbase.PocketBase {
	t.Helper()

	tmpDir := t.TempDir()
	app := pocketbase.NewWithConfig(pocketbase.Config{
		DefaultDataDir: tmpDir,
	})

	if err := app.Bootstrap(); err != nil {
		t.Fatalf("failed to bootstrap test app: %v", err)
	}

	collections.Setup(app)

	return app
}

// CreateTestProject creates a project record with the given name and returns it.
func CreateTestProject(t *testing.T, app *pocketbase.PocketBase, name string) *core.Record {
	t.Helper()

	col, err := app.FindCollectionByNameOrId("projects")
	if err != nil {
		t.Fatalf("failed to find projects collection: %v", err)
	}

	record := core.NewRecord(col)
	record.Set("name", name)
	record.Set("client", "Test Client")
	record.Set("status", "active")

	if err := app.Save(record); err != nil {
		t.Fatalf("failed to save test project: %v", err)
	}

	return record
}

// CreateTestLot creates a lot record linked to a project.
func CreateTestLot(t *testing.T, app *pocketbase.PocketBase, projectID, name string) *core.Record {
	t.Helper()

	col, err := app.FindCollectionByNameOrId("lots")
	if err != nil {
		t.Fatalf("failed to find lots collection: %v", err)
	}

	record := core.NewRecord(col)
	record.Set("project", projectID)
	record.Set("name", name)

	if err := app.Save(record); err != nil {
		t.Fatalf("failed to save test lot: %v", err)
	}

	return record
}

// CreateTestCostCode creates a cost code record. Dotted codes get their
// parent_group filled in the same way the import path does.
func CreateTestCostCode(t *testing.T, app *pocketbase.PocketBase, code, name string, qty, unitPrice float64) *core.Record {
	t.Helper()

	col, err := app.FindCollectionByNameOrId("cost_codes")
	if err != nil {
		t.Fatalf("failed to find cost_codes collection: %v", err)
	}

	record := core.NewRecord(col)
	record.Set("code", code)
	record.Set("name", name)
	record.Set("quantity", qty)
	record.Set("unit_price", unitPrice)
	if idx := strings.Index(code, "."); idx > 0 {
		record.Set("parent_group", code[:idx])
	}

	if err := app.Save(record); err != nil {
		t.Fatalf("failed to save test cost code: %v", err)
	}

	return record
}

// CreateTestAccount creates an account record of the given type.
func CreateTestAccount(t *testing.T, app *pocketbase.PocketBase, code, name, acctType string) *core.Record {
	t.Helper()

	col, err := app.FindCollectionByNameOrId("accounts")
	if err != nil {
		t.Fatalf("failed to find accounts collection: %v", err)
	}

	record := core.NewRecord(col)
	record.Set("code", code)
	record.Set("name", name)
	record.Set("type", acctType)

	if err := app.Save(record); err != nil {
		t.Fatalf("failed to save test account: %v", err)
	}

	return record
}

// CreateTestWIPSettings creates the accounting_settings record pointing at a
// freshly created WIP asset account, and returns the account record.
func CreateTestWIPSettings(t *testing.T, app *pocketbase.PocketBase) *core.Record {
	t.Helper()

	wip := CreateTestAccount(t, app, "1400", "Work in Progress", "asset")

	col, err := app.FindCollectionByNameOrId("accounting_settings")
	if err != nil {
		t.Fatalf("failed to find accounting_settings collection: %v", err)
	}

	record := core.NewRecord(col)
	record.Set("wip_account", wip.Id)
	if err := app.Save(record); err != nil {
		t.Fatalf("failed to save test accounting settings: %v", err)
	}

	return wip
}

// CreateTestBudgetItem creates a budget item. Pass lotID "" for a row that
// applies regardless of lot.
func CreateTestBudgetItem(t *testing.T, app *pocketbase.PocketBase, projectID, lotID, costCodeID string, qty, unitPrice float64) *core.Record {
	t.Helper()

	col, err := app.FindCollectionByNameOrId("budget_items")
	if err != nil {
		t.Fatalf("failed to find budget_items collection: %v", err)
	}

	record := core.NewRecord(col)
	record.Set("project", projectID)
	record.Set("lot", lotID)
	record.Set("cost_code", costCodeID)
	record.Set("quantity", qty)
	record.Set("unit_price", unitPrice)
	record.Set("source", "manual")

	if err := app.Save(record); err != nil {
		t.Fatalf("failed to save test budget item: %v", err)
	}

	return record
}

// CreateTestLedgerEntry creates a journal entry header. entryDate uses the
// "2006-01-02 15:04:05.000Z" layout PocketBase stores.
func CreateTestLedgerEntry(t *testing.T, app *pocketbase.PocketBase, number, entryDate, memo string) *core.Record {
	t.Helper()

	col, err := app.FindCollectionByNameOrId("ledger_entries")
	if err != nil {
		t.Fatalf("failed to find ledger_entries collection: %v", err)
	}

	record := core.NewRecord(col)
	record.Set("entry_number", number)
	record.Set("entry_date", entryDate)
	record.Set("memo", memo)

	if err := app.Save(record); err != nil {
		t.Fatalf("failed to save test ledger entry: %v", err)
	}

	return record
}

// CreateTestLedgerLine creates a posting line under an entry. Pass costCodeID
// "" for lines that should not appear on job cost reports.
func CreateTestLedgerLine(t *testing.T, app *pocketbase.PocketBase, entryID, accountID, projectID, lotID, costCodeID string, debit, credit float64) *core.Record {
	t.Helper()

	col, err := app.FindCollectionByNameOrId("ledger_lines")
	if err != nil {
		t.Fatalf("failed to find ledger_lines collection: %v", err)
	}

	record := core.NewRecord(col)
	record.Set("entry", entryID)
	record.Set("account", accountID)
	record.Set("project", projectID)
	record.Set("lot", lotID)
	record.Set("cost_code", costCodeID)
	record.Set("debit", debit)
	record.Set("credit", credit)

	if err := app.Save(record); err != nil {
		t.Fatalf("failed to save test ledger line: %v", err)
	}

	return record
}

// CreateTestVendor creates a vendor record with the given name and returns it.
func CreateTestVendor(t *testing.T, app *pocketbase.PocketBase, name string) *core.Record {
	t.Helper()

	col, err := app.FindCollectionByNameOrId("vendors")
	if err != nil {
		t.Fatalf("failed to find vendors collection: %v", err)
	}

	record := core.NewRecord(col)
	record.Set("name", name)
	record.Set("email", "vendor@example.com")
	record.Set("phone", "5550100")

	if err := app.Save(record); err != nil {
		t.Fatalf("failed to save test vendor: %v", err)
	}

	return record
}

// CreateTestBid creates a bid for a cost code on a project.
func CreateTestBid(t *testing.T, app *pocketbase.PocketBase, projectID, costCodeID, vendorID string, amount float64, status string) *core.Record {
	t.Helper()

	col, err := app.FindCollectionByNameOrId("bids")
	if err != nil {
		t.Fatalf("failed to find bids collection: %v", err)
	}

	record := core.NewRecord(col)
	record.Set("project", projectID)
	record.Set("cost_code", costCodeID)
	record.Set("vendor", vendorID)
	record.Set("amount", amount)
	record.Set("status", status)

	if err := app.Save(record); err != nil {
		t.Fatalf("failed to save test bid: %v", err)
	}

	return record
}

// CreateTestBill creates an A/P bill for a vendor on a project.
func CreateTestBill(t *testing.T, app *pocketbase.PocketBase, projectID, vendorID, billNumber string, amount float64, dueDate, status string) *core.Record {
	t.Helper()

	col, err := app.FindCollectionByNameOrId("ap_bills")
	if err != nil {
		t.Fatalf("failed to find ap_bills collection: %v", err)
	}

	record := core.NewRecord(col)
	record.Set("project", projectID)
	record.Set("vendor", vendorID)
	record.Set("bill_number", billNumber)
	record.Set("amount", amount)
	record.Set("due_date", dueDate)
	record.Set("status", status)

	if err := app.Save(record); err != nil {
		t.Fatalf("failed to save test bill: %v", err)
	}

	return record
}

// CreateTestUser creates an auth user with the given role.
func CreateTestUser(t *testing.T, app *pocketbase.PocketBase, email, role string) *core.Record {
	t.Helper()

	col, err := app.FindCollectionByNameOrId("users")
	if err != nil {
		t.Fatalf("failed to find users collection: %v", err)
	}

	record := core.NewRecord(col)
	record.Set("email", email)
	record.Set("password", "test-password-123")
	record.Set("role", role)

	if err := app.Save(record); err != nil {
		t.Fatalf("failed to save test user: %v", err)
	}

	return record
}

// AssertJSONContains checks that body contains all specified fragments.
func AssertJSONContains(t *testing.T, body string, fragments ...string) {
	t.Helper()

	for _, frag := range fragments {
		if !strings.Contains(body, frag) {
			t.Errorf("expected response to contain %q, but it was not found\nbody (first 500 chars): %s",
				frag, truncate(body, 500))
		}
	}
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}

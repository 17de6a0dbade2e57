package collections_test

import (
	"testing"

	"github.com/oldcreekhomes/builder-suite-ai-sub001/collections"
	"github.com/oldcreekhomes/builder-suite-ai-sub001/testhelpers"
)

// expectedCollections is the full list of collections that Setup() must create.
var expectedCollections = []string{
	"projects",
	"lots",
	"cost_codes",
	"accounts",
	"accounting_settings",
	"vendors",
	"bids",
	"budget_items",
	"ledger_entries",
	"ledger_lines",
	"ap_bills",
}

func TestSetup_AllCollectionsExist(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	for _, name := range expectedCollections {
		col, err := app.FindCollectionByNameOrId(name)
		if err != nil {
			t.Errorf("collection %q not found after Setup(): %v", name, err)
			continue
		}
		if col.Name != name {
			t.Errorf("expected collection name %q, got %q", name, col.Name)
		}
	}
}

func TestSetup_Idempotent(t *testing.T) {
	app := testhelpers.NewTestApp(t) // Setup() already called once via NewTestApp

	// Collect IDs from first run
	ids := make(map[string]string)
	for _, name := range expectedCollections {
		col, _ := app.FindCollectionByNameOrId(name)
		ids[name] = col.Id
	}

	// Run Setup() again
	collections.Setup(app)

	// IDs should not change
	for _, name := range expectedCollections {
		col, err := app.FindCollectionByNameOrId(name)
		if err != nil {
			t.Errorf("collection %q missing after second Setup(): %v", name, err)
			continue
		}
		if col.Id != ids[name] {
			t.Errorf("collection %q id changed after second Setup(): %s -> %s", name, ids[name], col.Id)
		}
	}
}

func TestSetup_ProjectsFields(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	col, _ := app.FindCollectionByNameOrId("projects")

	for _, f := range []string{"name", "client", "status", "budget_locked", "created", "updated"} {
		if col.Fields.GetByName(f) == nil {
			t.Errorf("projects: missing field %q", f)
		}
	}
}

func TestSetup_CostCodeFields(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	col, _ := app.FindCollectionByNameOrId("cost_codes")

	for _, f := range []string{"code", "name", "parent_group", "has_subcategories", "quantity", "unit_price"} {
		if col.Fields.GetByName(f) == nil {
			t.Errorf("cost_codes: missing field %q", f)
		}
	}
}

func TestSetup_LedgerFields(t *testing.T) {
	app := testhelpers.NewTestApp(t)

	entries, _ := app.FindCollectionByNameOrId("ledger_entries")
	for _, f := range []string{"entry_number", "entry_date", "memo", "is_reversal", "reversed_at", "reversed_by"} {
		if entries.Fields.GetByName(f) == nil {
			t.Errorf("ledger_entries: missing field %q", f)
		}
	}

	lines, _ := app.FindCollectionByNameOrId("ledger_lines")
	for _, f := range []string{"entry", "account", "project", "lot", "cost_code", "debit", "credit"} {
		if lines.Fields.GetByName(f) == nil {
			t.Errorf("ledger_lines: missing field %q", f)
		}
	}
}

func TestSetup_AddsRoleFieldToUsers(t *testing.T) {
	app := testhelpers.NewTestApp(t)

	users, err := app.FindCollectionByNameOrId("users")
	if err != nil {
		t.Fatalf("users collection not found: %v", err)
	}
	if users.Fields.GetByName("role") == nil {
		t.Error("users: missing role field after Setup()")
	}
}

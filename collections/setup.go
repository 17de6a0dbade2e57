// Package collections defines the application schema, seed data and startup
// migrations.
package collections

import (
	"fmt"
	"log"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"
)

// Setup programmatically creates/ensures all application collections exist:
// projects, lots, cost codes, ledger accounts, accounting settings, budget
// items, bids, journal entries and their lines, vendors and A/P bills.
func Setup(app *pocketbase.PocketBase) {
	projects := ensureCollection(app, "projects", func(c *core.Collection) {
		c.Fields.Add(&core.TextField{Name: "name", Required: true})
		c.Fields.Add(&core.TextField{Name: "client", Required: false})
		c.Fields.Add(&core.SelectField{
			Name:      "status",
			Required:  true,
			Values:    []string{"active", "completed", "on_hold"},
			MaxSelect: 1,
		})
		c.Fields.Add(&core.BoolField{Name: "budget_locked"})
		c.Fields.Add(&core.AutodateField{Name: "created", OnCreate: true})
		c.Fields.Add(&core.AutodateField{Name: "updated", OnCreate: true, OnUpdate: true})
	})

	lots := ensureCollection(app, "lots", func(c *core.Collection) {
		c.Fields.Add(&core.RelationField{
			Name:          "project",
			Required:      true,
			CollectionId:  projects.Id,
			CascadeDelete: true,
			MaxSelect:     1,
		})
		c.Fields.Add(&core.TextField{Name: "name", Required: true})
	})

	costCodes := ensureCollection(app, "cost_codes", func(c *core.Collection) {
		c.Fields.Add(&core.TextField{Name: "code", Required: true})
		c.Fields.Add(&core.TextField{Name: "name", Required: true})
		// Parent code for dotted children ("4470" for "4470.1"), empty for
		// top-level codes.
		c.Fields.Add(&core.TextField{Name: "parent_group", Required: false})
		c.Fields.Add(&core.BoolField{Name: "has_subcategories"})
		c.Fields.Add(&core.NumberField{Name: "quantity", Required: false})
		c.Fields.Add(&core.NumberField{Name: "unit_price", Required: false})
	})

	accounts := ensureCollection(app, "accounts", func(c *core.Collection) {
		c.Fields.Add(&core.TextField{Name: "code", Required: true})
		c.Fields.Add(&core.TextField{Name: "name", Required: true})
		c.Fields.Add(&core.SelectField{
			Name:      "type",
			Required:  true,
			Values:    []string{"asset", "liability", "equity", "income", "expense"},
			MaxSelect: 1,
		})
	})

	ensureCollection(app, "accounting_settings", func(c *core.Collection) {
		c.Fields.Add(&core.RelationField{
			Name:         "wip_account",
			Required:     false,
			CollectionId: accounts.Id,
			MaxSelect:    1,
		})
	})

	vendors := ensureCollection(app, "vendors", func(c *core.Collection) {
		c.Fields.Add(&core.TextField{Name: "name", Required: true})
		c.Fields.Add(&core.TextField{Name: "email", Required: false})
		c.Fields.Add(&core.TextField{Name: "phone", Required: false})
	})

	bids := ensureCollection(app, "bids", func(c *core.Collection) {
		c.Fields.Add(&core.RelationField{
			Name:          "project",
			Required:      true,
			CollectionId:  projects.Id,
			CascadeDelete: true,
			MaxSelect:     1,
		})
		c.Fields.Add(&core.RelationField{
			Name:         "cost_code",
			Required:     true,
			CollectionId: costCodes.Id,
			MaxSelect:    1,
		})
		c.Fields.Add(&core.RelationField{
			Name:         "vendor",
			Required:     false,
			CollectionId: vendors.Id,
			MaxSelect:    1,
		})
		c.Fields.Add(&core.NumberField{Name: "amount", Required: true})
		c.Fields.Add(&core.SelectField{
			Name:      "status",
			Required:  true,
			Values:    []string{"pending", "accepted", "declined"},
			MaxSelect: 1,
		})
	})

	ensureCollection(app, "budget_items", func(c *core.Collection) {
		c.Fields.Add(&core.RelationField{
			Name:          "project",
			Required:      true,
			CollectionId:  projects.Id,
			CascadeDelete: true,
			MaxSelect:     1,
		})
		// Empty lot means the row applies regardless of lot (legacy data).
		c.Fields.Add(&core.RelationField{
			Name:         "lot",
			Required:     false,
			CollectionId: lots.Id,
			MaxSelect:    1,
		})
		c.Fields.Add(&core.RelationField{
			Name:         "cost_code",
			Required:     true,
			CollectionId: costCodes.Id,
			MaxSelect:    1,
		})
		c.Fields.Add(&core.NumberField{Name: "quantity", Required: false})
		c.Fields.Add(&core.NumberField{Name: "unit_price", Required: false})
		c.Fields.Add(&core.SelectField{
			Name:      "source",
			Required:  true,
			Values:    []string{"manual", "bid", "estimate"},
			MaxSelect: 1,
		})
		c.Fields.Add(&core.RelationField{
			Name:         "selected_bid",
			Required:     false,
			CollectionId: bids.Id,
			MaxSelect:    1,
		})
		c.Fields.Add(&core.NumberField{Name: "locked_amount", Required: false})
		c.Fields.Add(&core.AutodateField{Name: "created", OnCreate: true})
		c.Fields.Add(&core.AutodateField{Name: "updated", OnCreate: true, OnUpdate: true})
	})

	entries := ensureCollection(app, "ledger_entries", func(c *core.Collection) {
		c.Fields.Add(&core.TextField{Name: "entry_number", Required: false})
		c.Fields.Add(&core.DateField{Name: "entry_date", Required: true})
		c.Fields.Add(&core.TextField{Name: "memo", Required: false})
		c.Fields.Add(&core.BoolField{Name: "is_reversal"})
		// reversed_at and reversed_by are stamped together by the reversal
		// writer and must stay in sync.
		c.Fields.Add(&core.DateField{Name: "reversed_at", Required: false})
		c.Fields.Add(&core.TextField{Name: "reversed_by", Required: false})
	})

	ensureCollection(app, "ledger_lines", func(c *core.Collection) {
		c.Fields.Add(&core.RelationField{
			Name:          "entry",
			Required:      true,
			CollectionId:  entries.Id,
			CascadeDelete: true,
			MaxSelect:     1,
		})
		c.Fields.Add(&core.RelationField{
			Name:         "account",
			Required:     true,
			CollectionId: accounts.Id,
			MaxSelect:    1,
		})
		c.Fields.Add(&core.RelationField{
			Name:         "project",
			Required:     false,
			CollectionId: projects.Id,
			MaxSelect:    1,
		})
		c.Fields.Add(&core.RelationField{
			Name:         "lot",
			Required:     false,
			CollectionId: lots.Id,
			MaxSelect:    1,
		})
		// Only job-cost lines carry a cost code.
		c.Fields.Add(&core.RelationField{
			Name:         "cost_code",
			Required:     false,
			CollectionId: costCodes.Id,
			MaxSelect:    1,
		})
		c.Fields.Add(&core.NumberField{Name: "debit", Required: false, OnlyInt: false})
		c.Fields.Add(&core.NumberField{Name: "credit", Required: false, OnlyInt: false})
	})

	ensureCollection(app, "ap_bills", func(c *core.Collection) {
		c.Fields.Add(&core.RelationField{
			Name:          "project",
			Required:      true,
			CollectionId:  projects.Id,
			CascadeDelete: true,
			MaxSelect:     1,
		})
		c.Fields.Add(&core.RelationField{
			Name:         "vendor",
			Required:     true,
			CollectionId: vendors.Id,
			MaxSelect:    1,
		})
		c.Fields.Add(&core.TextField{Name: "bill_number", Required: true})
		c.Fields.Add(&core.NumberField{Name: "amount", Required: true})
		c.Fields.Add(&core.DateField{Name: "due_date", Required: true})
		c.Fields.Add(&core.SelectField{
			Name:      "status",
			Required:  true,
			Values:    []string{"open", "paid"},
			MaxSelect: 1,
		})
	})

	ensureUserRoleField(app)
}

// ensureUserRoleField adds the role select to the built-in users auth
// collection so lock/mutation gating can check it.
func ensureUserRoleField(app *pocketbase.PocketBase) {
	users, err := app.FindCollectionByNameOrId("users")
	if err != nil {
		log.Printf("setup: could not find users collection: %v", err)
		return
	}
	if users.Fields.GetByName("role") != nil {
		return
	}
	users.Fields.Add(&core.SelectField{
		Name:      "role",
		Required:  false,
		Values:    []string{"owner", "accountant", "viewer"},
		MaxSelect: 1,
	})
	if err := app.Save(users); err != nil {
		log.Printf("setup: could not add role field to users: %v", err)
	}
}

// ensureCollection checks if a collection already exists by name. If it does,
// the existing collection is returned. Otherwise a new base collection is
// created, the addFields callback is invoked to populate its fields, and the
// collection is saved.
func ensureCollection(app *pocketbase.PocketBase, name string, addFields func(*core.Collection)) *core.Collection {
	existing, err := app.FindCollectionByNameOrId(name)
	if err == nil && existing != nil {
		return existing
	}

	collection := core.NewBaseCollection(name)
	addFields(collection)

	if err := app.Save(collection); err != nil {
		log.Fatalf("Failed to create collection %q: %v", name, err)
	}

	fmt.Printf("Created collection %q (id=%s)\n", name, collection.Id)
	return collection
}

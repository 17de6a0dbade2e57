package collections

import (
	"fmt"
	"log"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"
)

// MigrateDefaultAccountingSettings makes sure exactly one accounting_settings
// record exists so the settings screen always has a row to edit. The WIP
// account is left empty; reports refuse to run until a user picks one.
func MigrateDefaultAccountingSettings(app *pocketbase.PocketBase) error {
	settingsCol, err := app.FindCollectionByNameOrId("accounting_settings")
	if err != nil {
		return fmt.Errorf("migrate: could not find accounting_settings collection: %w", err)
	}

	existing, err := app.FindAllRecords(settingsCol)
	if err != nil {
		return fmt.Errorf("migrate: could not query accounting settings: %w", err)
	}
	if len(existing) > 0 {
		return nil
	}

	rec := core.NewRecord(settingsCol)
	rec.Set("wip_account", "")
	if err := app.Save(rec); err != nil {
		return fmt.Errorf("migrate: could not create default accounting settings: %w", err)
	}

	log.Println("migrate: created default accounting settings record.")
	return nil
}

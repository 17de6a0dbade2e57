package collections

import (
	"fmt"
	"log"

	"github.com/pocketbase/pocketbase"
)

// MigrateParentGroups backfills the parent_group field on dotted cost codes
// that were created before the field existed. Safe to call on every startup --
// returns early if nothing to migrate.
func MigrateParentGroups(app *pocketbase.PocketBase) error {
	costCodesCol, err := app.FindCollectionByNameOrId("cost_codes")
	if err != nil {
		return fmt.Errorf("migrate: could not find cost_codes collection: %w", err)
	}

	orphans, err := app.FindRecordsByFilter(
		costCodesCol,
		"code ~ '.' && parent_group = ''",
		"",
		0,
		0,
		nil,
	)
	if err != nil {
		return fmt.Errorf("migrate: could not query cost codes: %w", err)
	}

	fixed := 0
	for _, rec := range orphans {
		code := rec.GetString("code")
		parent := parentOf(code)
		if parent == code {
			continue // the ~ filter also matches codes without a literal dot
		}

		rec.Set("parent_group", parent)
		if err := app.Save(rec); err != nil {
			log.Printf("migrate: failed to set parent_group on cost code %q (%s): %v\n", code, rec.Id, err)
			continue
		}
		fixed++
	}

	if fixed > 0 {
		log.Printf("migrate: backfilled parent_group on %d cost code(s).\n", fixed)
	}
	return nil
}

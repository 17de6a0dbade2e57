package services

import (
	"fmt"
	"time"

	"github.com/pocketbase/pocketbase"
)

// formatEntryNumber constructs the journal entry number from components.
func formatEntryNumber(year int, sequence int) string {
	return fmt.Sprintf("JE-%d-%04d", year, sequence)
}

// GenerateEntryNumber creates the next journal entry number for the
// calendar year of the entry date. Format: JE-{year}-{sequence}, with a
// 4-digit zero-padded sequence per year.
func GenerateEntryNumber(app *pocketbase.PocketBase, entryDate time.Time) (string, error) {
	year := entryDate.Year()
	prefix := fmt.Sprintf("JE-%d-", year)

	existing, err := app.FindRecordsByFilter(
		"ledger_entries",
		"entry_number ~ {:prefix}",
		"",
		0,
		0,
		map[string]any{"prefix": prefix},
	)
	if err != nil {
		return "", fmt.Errorf("count existing entries: %w", err)
	}

	return formatEntryNumber(year, len(existing)+1), nil
}

package services

import (
	"fmt"

	"github.com/pocketbase/pocketbase"
)

// ProjectLockGate stores the budget lock as a flag on the project record.
type ProjectLockGate struct {
	app *pocketbase.PocketBase
}

// NewProjectLockGate returns a LockGate backed by the projects collection.
func NewProjectLockGate(app *pocketbase.PocketBase) *ProjectLockGate {
	return &ProjectLockGate{app: app}
}

func (g *ProjectLockGate) IsLocked(projectID string) (bool, error) {
	project, err := g.app.FindRecordById("projects", projectID)
	if err != nil {
		return false, fmt.Errorf("lock: could not find project %s: %w", projectID, err)
	}
	return project.GetBool("budget_locked"), nil
}

func (g *ProjectLockGate) Lock(projectID, actorRole string) error {
	return g.setLocked(projectID, actorRole, true)
}

func (g *ProjectLockGate) Unlock(projectID, actorRole string) error {
	return g.setLocked(projectID, actorRole, false)
}

func (g *ProjectLockGate) setLocked(projectID, actorRole string, locked bool) error {
	if !CanLockBudgets(actorRole) {
		return ErrRoleCannotLock
	}

	project, err := g.app.FindRecordById("projects", projectID)
	if err != nil {
		return fmt.Errorf("lock: could not find project %s: %w", projectID, err)
	}

	if project.GetBool("budget_locked") == locked {
		return nil // already in the requested state
	}

	if locked {
		if err := g.snapshotBidAmounts(projectID); err != nil {
			return err
		}
	}

	project.Set("budget_locked", locked)
	if err := g.app.Save(project); err != nil {
		return fmt.Errorf("lock: could not save project %s: %w", projectID, err)
	}
	return nil
}

// snapshotBidAmounts freezes the live amount of every bid-sourced budget
// item into locked_amount so locked reports stay stable even if bids change.
func (g *ProjectLockGate) snapshotBidAmounts(projectID string) error {
	items, err := g.app.FindRecordsByFilter(
		"budget_items",
		"project = {:project} && source = 'bid' && selected_bid != ''",
		"", 0, 0,
		map[string]any{"project": projectID},
	)
	if err != nil {
		return fmt.Errorf("lock: could not load bid-sourced budget items: %w", err)
	}

	for _, item := range items {
		bid, err := g.app.FindRecordById("bids", item.GetString("selected_bid"))
		if err != nil {
			continue // stale bid reference, leave the old snapshot
		}
		item.Set("locked_amount", bid.GetFloat("amount"))
		if err := g.app.Save(item); err != nil {
			return fmt.Errorf("lock: could not snapshot budget item %s: %w", item.Id, err)
		}
	}
	return nil
}

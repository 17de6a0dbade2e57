package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"github.com/oldcreekhomes/builder-suite-ai-sub001/services"
)

// HandleBudgetLockStatus reports the project's lock state.
// Route: GET /api/app/projects/{projectId}/budget/lock
func HandleBudgetLockStatus(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		projectID := e.Request.PathValue("projectId")

		gate := services.NewProjectLockGate(app)
		locked, err := gate.IsLocked(projectID)
		if err != nil {
			return apiError(e, http.StatusNotFound, ErrKindNotFound, "Project not found")
		}

		return e.JSON(http.StatusOK, map[string]any{
			"project_id": projectID,
			"locked":     locked,
			"can_toggle": services.CanLockBudgets(actorRole(e)),
		})
	}
}

// HandleBudgetLock locks a project budget. Owner or accountant only.
// Route: POST /api/app/projects/{projectId}/budget/lock
func HandleBudgetLock(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return toggleBudgetLock(app, true)
}

// HandleBudgetUnlock unlocks a project budget. Owner or accountant only.
// Route: DELETE /api/app/projects/{projectId}/budget/lock
func HandleBudgetUnlock(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return toggleBudgetLock(app, false)
}

func toggleBudgetLock(app *pocketbase.PocketBase, lock bool) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		projectID := e.Request.PathValue("projectId")
		role := actorRole(e)

		gate := services.NewProjectLockGate(app)
		var err error
		if lock {
			err = gate.Lock(projectID, role)
		} else {
			err = gate.Unlock(projectID, role)
		}

		if err != nil {
			if errors.Is(err, services.ErrRoleCannotLock) {
				return apiError(e, http.StatusForbidden, ErrKindAuth, "Your role cannot lock or unlock budgets")
			}
			log.Printf("budget_lock: toggle failed for project %s: %v", projectID, err)
			return apiError(e, http.StatusNotFound, ErrKindNotFound, "Project not found")
		}

		return e.JSON(http.StatusOK, map[string]any{
			"project_id": projectID,
			"locked":     lock,
		})
	}
}

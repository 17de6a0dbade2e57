package services

import "errors"

// User roles. Only owners and accountants may lock or unlock a project
// budget; viewers are read-only.
const (
	RoleOwner      = "owner"
	RoleAccountant = "accountant"
	RoleViewer     = "viewer"
)

var (
	// ErrBudgetLocked is returned by budget mutations while the project's
	// lock flag is set.
	ErrBudgetLocked = errors.New("budget is locked for this project")

	// ErrRoleCannotLock is returned when the caller's role lacks the
	// lock-budgets permission.
	ErrRoleCannotLock = errors.New("role is not permitted to lock or unlock budgets")
)

// CanLockBudgets reports whether a role may toggle the budget lock.
func CanLockBudgets(role string) bool {
	return role == RoleOwner || role == RoleAccountant
}

// LockGate is the per-project budget lock. When a project is locked every
// budget-mutating operation must fail until an authorized role unlocks it.
// The job-cost read pipeline never consults the gate.
type LockGate interface {
	IsLocked(projectID string) (bool, error)
	Lock(projectID, actorRole string) error
	Unlock(projectID, actorRole string) error
}

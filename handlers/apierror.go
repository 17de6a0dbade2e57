package handlers

import (
	"net/http"

	"github.com/pocketbase/pocketbase/core"
)

// Error kinds carried in the JSON error envelope. The SPA switches on kind;
// message is display text.
const (
	ErrKindConfig     = "config"
	ErrKindAuth       = "auth"
	ErrKindValidation = "validation"
	ErrKindNotFound   = "not_found"
	ErrKindInternal   = "internal"
)

// apiError writes the standard error envelope:
//
//	{"error": {"kind": "...", "message": "..."}}
func apiError(e *core.RequestEvent, statusCode int, kind, message string) error {
	return e.JSON(statusCode, map[string]any{
		"error": map[string]string{
			"kind":    kind,
			"message": message,
		},
	})
}

// internalError is the catch-all for unexpected failures. The cause is logged
// at the call site; clients only see a generic message.
func internalError(e *core.RequestEvent) error {
	return apiError(e, http.StatusInternalServerError, ErrKindInternal, "Something went wrong. Please try again.")
}

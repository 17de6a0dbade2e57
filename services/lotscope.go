package services

import "github.com/pocketbase/dbx"

// LotScope narrows budget and ledger queries to a single lot. Rows without
// a lot are legacy data that apply to every lot, so an exact scope still
// admits them.
type LotScope struct {
	lotID string
	exact bool
}

// ExactLot scopes to one lot (plus lot-less rows).
func ExactLot(lotID string) LotScope {
	return LotScope{lotID: lotID, exact: true}
}

// AllLots matches every row regardless of lot.
func AllLots() LotScope {
	return LotScope{}
}

// IsExact reports whether the scope names a specific lot.
func (s LotScope) IsExact() bool {
	return s.exact
}

// LotID returns the scoped lot id, or "" for an unscoped query.
func (s LotScope) LotID() string {
	return s.lotID
}

// Matches reports whether a row with the given lot id falls inside the
// scope. An empty lot id always matches.
func (s LotScope) Matches(lotID string) bool {
	if !s.exact || lotID == "" {
		return true
	}
	return lotID == s.lotID
}

// FilterExpr renders the scope as a PocketBase filter fragment for the
// given relation field, e.g. "(lot = {:lot} || lot = '')". Returns "" for
// an unscoped query.
func (s LotScope) FilterExpr(field string) (string, map[string]any) {
	if !s.exact {
		return "", nil
	}
	return "(" + field + " = {:lot} || " + field + " = '')", map[string]any{"lot": s.lotID}
}

// DBExpr renders the scope as a dbx expression for raw SQL queries.
// Returns nil for an unscoped query.
func (s LotScope) DBExpr(column string) dbx.Expression {
	if !s.exact {
		return nil
	}
	return dbx.Or(
		dbx.HashExp{column: s.lotID},
		dbx.HashExp{column: ""},
	)
}

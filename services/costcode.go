// Package services provides the job-cost aggregation logic: cost code
// hierarchy resolution, budget and actuals roll-ups, report merging and
// export generation.
package services

import (
	"math"
	"strconv"
	"strings"
)

// UncategorizedGroup is the bucket for cost codes that are non-numeric or
// numbered below 1000.
const UncategorizedGroup = "Uncategorized"

// TopLevelGroup returns the thousands bucket for a cost code.
// "4470.1" → "4000", "12500" → "12000". Non-numeric codes and codes
// below 1000 group to UncategorizedGroup.
func TopLevelGroup(code string) string {
	v, err := strconv.ParseFloat(strings.TrimSpace(code), 64)
	if err != nil || v < 1000 {
		return UncategorizedGroup
	}
	group := math.Floor(v/1000) * 1000
	return strconv.FormatFloat(group, 'f', -1, 64)
}

// ParentCode returns the portion of a code before the first dot.
// Codes without a dot are their own parent.
func ParentCode(code string) string {
	if i := strings.Index(code, "."); i >= 0 {
		return code[:i]
	}
	return code
}

// IsChildCode reports whether a code is a child (dotted) code.
func IsChildCode(code string) bool {
	return strings.Contains(code, ".")
}

// NumericSortKey parses a code for ordering. Non-numeric codes sort as 0.
func NumericSortKey(code string) float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(code), 64)
	if err != nil {
		return 0
	}
	return v
}

package services

import "sort"

// JobCostRow is one parent cost code in the report. Variance is budget
// minus actual, exact, with no rounding until display.
type JobCostRow struct {
	CostCode    string  `json:"cost_code"`
	Name        string  `json:"name"`
	ParentGroup string  `json:"parent_group"`
	Budget      float64 `json:"budget"`
	Actual      float64 `json:"actual"`
	Variance    float64 `json:"variance"`
}

// JobCostTotals holds budget/actual/variance sums for a group or the
// whole report.
type JobCostTotals struct {
	Budget   float64 `json:"budget"`
	Actual   float64 `json:"actual"`
	Variance float64 `json:"variance"`
}

func (t *JobCostTotals) add(r JobCostRow) {
	t.Budget += r.Budget
	t.Actual += r.Actual
	t.Variance += r.Variance
}

// JobCostGroup is a thousands bucket of rows with its subtotal.
type JobCostGroup struct {
	Group    string        `json:"group"`
	Rows     []JobCostRow  `json:"rows"`
	Subtotal JobCostTotals `json:"subtotal"`
}

// JobCostReport is the merged budget-vs-actual report.
type JobCostReport struct {
	Groups     []JobCostGroup `json:"groups"`
	GrandTotal JobCostTotals  `json:"grand_total"`
}

// MergeJobCost joins budget and actuals aggregates over the union of their
// parent codes, groups rows by top-level bucket and computes subtotals and
// a grand total. Rows sort by the numeric value of the parent code; groups
// sort numerically with Uncategorized last.
func MergeJobCost(budgets, actuals Amounts, names map[string]string) JobCostReport {
	union := map[string]bool{}
	for code := range budgets {
		union[code] = true
	}
	for code := range actuals {
		union[code] = true
	}

	rows := make([]JobCostRow, 0, len(union))
	for code := range union {
		budget := budgets.Get(code)
		actual := actuals.Get(code)
		name := names[code]
		if name == "" {
			name = code
		}
		rows = append(rows, JobCostRow{
			CostCode:    code,
			Name:        name,
			ParentGroup: TopLevelGroup(code),
			Budget:      budget,
			Actual:      actual,
			Variance:    budget - actual,
		})
	}

	sort.Slice(rows, func(i, j int) bool {
		ki, kj := NumericSortKey(rows[i].CostCode), NumericSortKey(rows[j].CostCode)
		if ki != kj {
			return ki < kj
		}
		return rows[i].CostCode < rows[j].CostCode
	})

	grouped := map[string][]JobCostRow{}
	var groupKeys []string
	for _, r := range rows {
		if _, ok := grouped[r.ParentGroup]; !ok {
			groupKeys = append(groupKeys, r.ParentGroup)
		}
		grouped[r.ParentGroup] = append(grouped[r.ParentGroup], r)
	}

	sort.Slice(groupKeys, func(i, j int) bool {
		gi, gj := groupKeys[i], groupKeys[j]
		if gi == UncategorizedGroup {
			return false
		}
		if gj == UncategorizedGroup {
			return true
		}
		return NumericSortKey(gi) < NumericSortKey(gj)
	})

	report := JobCostReport{Groups: make([]JobCostGroup, 0, len(groupKeys))}
	for _, key := range groupKeys {
		group := JobCostGroup{Group: key, Rows: grouped[key]}
		for _, r := range group.Rows {
			group.Subtotal.add(r)
			report.GrandTotal.add(r)
		}
		report.Groups = append(report.Groups, group)
	}
	return report
}

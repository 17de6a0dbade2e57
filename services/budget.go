package services

// Budget item sources.
const (
	BudgetSourceManual   = "manual"
	BudgetSourceBid      = "bid"
	BudgetSourceEstimate = "estimate"
)

// Amounts accumulates currency values keyed by cost code. Missing keys read
// as zero, so callers never have to distinguish absent from zero.
type Amounts map[string]float64

// Add accumulates v into the bucket for key.
func (a Amounts) Add(key string, v float64) {
	a[key] += v
}

// Get returns the accumulated amount for key, zero when absent.
func (a Amounts) Get(key string) float64 {
	return a[key]
}

// Keys returns all bucket keys in map order.
func (a Amounts) Keys() []string {
	keys := make([]string, 0, len(a))
	for k := range a {
		keys = append(keys, k)
	}
	return keys
}

// BudgetItemCalc carries the fields of one budget line item needed for
// total calculation, joined with its cost code row.
type BudgetItemCalc struct {
	ID               string
	Code             string
	Name             string
	Quantity         float64
	UnitPrice        float64
	Source           string
	HasBid           bool
	BidAmount        float64 // live amount of the selected bid
	LockedAmount     float64 // snapshot used while the budget is locked
	HasSubcategories bool
}

// CalcBudgetItemTotal resolves one budget item to a single currency amount.
// A subcategory rollup, when present, wins over everything else. Bid-sourced
// items follow the live bid amount unless the project budget is locked, in
// which case the stored snapshot is used. Manual and estimate items are
// quantity times unit price.
func CalcBudgetItemTotal(item BudgetItemCalc, subcategoryTotal *float64, locked bool) float64 {
	if subcategoryTotal != nil {
		return *subcategoryTotal
	}
	if item.Source == BudgetSourceBid && item.HasBid {
		if locked {
			return item.LockedAmount
		}
		return item.BidAmount
	}
	return item.Quantity * item.UnitPrice
}

// ChildBudget is one child cost code contributing to a subcategory total.
// Quantity and UnitPrice are overrides from a budget row for that child;
// nil falls back to the cost code's defaults.
type ChildBudget struct {
	Quantity         *float64
	UnitPrice        *float64
	DefaultQuantity  float64
	DefaultUnitPrice float64
}

// SubcategoryTotal sums child cost code budgets for a subcategorized parent.
func SubcategoryTotal(children []ChildBudget) float64 {
	var total float64
	for _, c := range children {
		qty := c.DefaultQuantity
		if c.Quantity != nil {
			qty = *c.Quantity
		}
		price := c.DefaultUnitPrice
		if c.UnitPrice != nil {
			price = *c.UnitPrice
		}
		total += qty * price
	}
	return total
}

// AggregateBudgets rolls budget items up to parent cost codes. Child-coded
// items (dotted codes) are excluded: their value only surfaces through a
// subcategorized parent's rollup, mirroring the Budget page display rule.
// subTotals is keyed by budget item id; locked is the project's budget lock
// state, which switches bid-sourced items to their snapshots. Returns amounts
// and display names keyed by parent code.
func AggregateBudgets(items []BudgetItemCalc, subTotals map[string]float64, locked bool) (Amounts, map[string]string) {
	amounts := Amounts{}
	names := map[string]string{}

	for _, item := range items {
		if IsChildCode(item.Code) {
			continue
		}

		var sub *float64
		if v, ok := subTotals[item.ID]; ok {
			sub = &v
		}

		parent := ParentCode(item.Code)
		amounts.Add(parent, CalcBudgetItemTotal(item, sub, locked))
		if _, ok := names[parent]; !ok && item.Name != "" {
			names[parent] = item.Name
		}
	}

	return amounts, names
}

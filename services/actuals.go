package services

// LedgerLineCalc is one journal entry line already filtered to the WIP
// account, active (not reversed) entries, and the report's as-of date.
type LedgerLineCalc struct {
	CostCodeID string
	Debit      float64
	Credit     float64
}

// NetAmount is the line's contribution to actuals.
func (l LedgerLineCalc) NetAmount() float64 {
	return l.Debit - l.Credit
}

// AggregateActuals sums debits minus credits per cost code, then rolls the
// sums up to parent codes. codeOf resolves a cost code id to its code
// string; ids it cannot resolve are skipped (the caller is expected to have
// fetched fallback codes for ledger-only ids beforehand).
func AggregateActuals(lines []LedgerLineCalc, codeOf func(id string) (string, bool)) Amounts {
	byCode := Amounts{}
	for _, l := range lines {
		if l.CostCodeID == "" {
			continue
		}
		byCode.Add(l.CostCodeID, l.NetAmount())
	}

	byParent := Amounts{}
	for id, amount := range byCode {
		code, ok := codeOf(id)
		if !ok {
			continue
		}
		byParent.Add(ParentCode(code), amount)
	}
	return byParent
}

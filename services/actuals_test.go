package services

import "testing"

func TestLedgerLineNetAmount(t *testing.T) {
	tests := []struct {
		name   string
		line   LedgerLineCalc
		expect float64
	}{
		{"debit only", LedgerLineCalc{Debit: 150}, 150},
		{"credit only", LedgerLineCalc{Credit: 40}, -40},
		{"debit and credit", LedgerLineCalc{Debit: 100, Credit: 30}, 70},
		{"zero line", LedgerLineCalc{}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.line.NetAmount(); got != tt.expect {
				t.Errorf("NetAmount = %v, want %v", got, tt.expect)
			}
		})
	}
}

func TestAggregateActuals(t *testing.T) {
	codes := map[string]string{
		"cc1": "4470",
		"cc2": "4470.1",
		"cc3": "5200",
	}
	codeOf := func(id string) (string, bool) {
		c, ok := codes[id]
		return c, ok
	}

	lines := []LedgerLineCalc{
		{CostCodeID: "cc1", Debit: 100},
		{CostCodeID: "cc2", Debit: 50, Credit: 10},
		{CostCodeID: "cc3", Debit: 200},
		{CostCodeID: "cc1", Credit: 25},
	}

	got := AggregateActuals(lines, codeOf)

	// cc1 (4470) nets 75, cc2 (4470.1) nets 40 and rolls up to 4470.
	if got.Get("4470") != 115 {
		t.Errorf("parent 4470 = %v, want 115", got.Get("4470"))
	}
	if got.Get("5200") != 200 {
		t.Errorf("parent 5200 = %v, want 200", got.Get("5200"))
	}
}

func TestAggregateActualsSkipsUnresolvable(t *testing.T) {
	codeOf := func(id string) (string, bool) { return "", false }
	lines := []LedgerLineCalc{{CostCodeID: "ghost", Debit: 500}}

	got := AggregateActuals(lines, codeOf)
	if len(got) != 0 {
		t.Errorf("unresolvable cost code ids should be skipped, got %v", got)
	}
}

func TestAggregateActualsSkipsEmptyCostCode(t *testing.T) {
	codeOf := func(id string) (string, bool) { return "4000", true }
	lines := []LedgerLineCalc{{CostCodeID: "", Debit: 500}}

	got := AggregateActuals(lines, codeOf)
	if len(got) != 0 {
		t.Errorf("lines without a cost code must not contribute, got %v", got)
	}
}

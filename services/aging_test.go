package services

import (
	"testing"
	"time"
)

func date(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

func TestAgingBucket(t *testing.T) {
	asOf := date("2026-06-30")

	tests := []struct {
		name   string
		due    string
		expect int
	}{
		{"due in future", "2026-07-15", 0},
		{"due today", "2026-06-30", 0},
		{"15 days past", "2026-06-15", 1},
		{"30 days past", "2026-05-31", 1},
		{"45 days past", "2026-05-16", 2},
		{"75 days past", "2026-04-16", 3},
		{"120 days past", "2026-03-02", 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := agingBucket(date(tt.due), asOf); got != tt.expect {
				t.Errorf("agingBucket(%s) = %d, want %d", tt.due, got, tt.expect)
			}
		})
	}
}

func TestBuildAgingReport(t *testing.T) {
	asOf := date("2026-06-30")
	bills := []AgingBill{
		{VendorID: "v2", VendorName: "Zeta Concrete", BillNumber: "B-1", Amount: 1000, DueDate: date("2026-06-15")},
		{VendorID: "v1", VendorName: "Acme Lumber", BillNumber: "B-2", Amount: 500, DueDate: date("2026-07-10")},
		{VendorID: "v2", VendorName: "Zeta Concrete", BillNumber: "B-3", Amount: 200, DueDate: date("2026-02-01")},
	}

	report := BuildAgingReport(bills, asOf)

	if len(report.Rows) != 2 {
		t.Fatalf("expected 2 vendor rows, got %d", len(report.Rows))
	}
	if report.Rows[0].VendorName != "Acme Lumber" {
		t.Errorf("rows should sort by vendor name, got %q first", report.Rows[0].VendorName)
	}

	zeta := report.Rows[1]
	if zeta.Buckets[1] != 1000 || zeta.Buckets[4] != 200 {
		t.Errorf("unexpected zeta buckets: %v", zeta.Buckets)
	}
	if zeta.Total != 1200 {
		t.Errorf("zeta total = %v, want 1200", zeta.Total)
	}

	if report.Totals.Total != 1700 {
		t.Errorf("grand total = %v, want 1700", report.Totals.Total)
	}
	var bucketSum float64
	for _, v := range report.Totals.Buckets {
		bucketSum += v
	}
	if bucketSum != report.Totals.Total {
		t.Errorf("bucket sum %v != total %v", bucketSum, report.Totals.Total)
	}
}

func TestBuildAgingReportEmpty(t *testing.T) {
	report := BuildAgingReport(nil, date("2026-06-30"))
	if len(report.Rows) != 0 || report.Totals.Total != 0 {
		t.Errorf("empty input should yield empty report, got %+v", report)
	}
}

package services

import (
	"sort"
	"time"
)

// AgingBucketLabels are the report columns, youngest to oldest.
var AgingBucketLabels = []string{"Current", "1-30", "31-60", "61-90", "90+"}

// AgingBill is one open payable considered for the aging report.
type AgingBill struct {
	VendorID   string
	VendorName string
	BillNumber string
	Amount     float64
	DueDate    time.Time
}

// AgingRow is one vendor's open balance spread across the aging buckets.
// Buckets indexes align with AgingBucketLabels.
type AgingRow struct {
	VendorID   string     `json:"vendor_id"`
	VendorName string     `json:"vendor_name"`
	Buckets    [5]float64 `json:"buckets"`
	Total      float64    `json:"total"`
}

// AgingReport is the full A/P aging: per-vendor rows plus a totals row.
type AgingReport struct {
	AsOf   time.Time  `json:"as_of"`
	Rows   []AgingRow `json:"rows"`
	Totals AgingRow   `json:"totals"`
}

// agingBucket classifies a bill by whole days past due at the as-of date.
// Bills due on or after asOf are Current.
func agingBucket(dueDate, asOf time.Time) int {
	days := int(asOf.Sub(dueDate).Hours() / 24)
	switch {
	case days <= 0:
		return 0
	case days <= 30:
		return 1
	case days <= 60:
		return 2
	case days <= 90:
		return 3
	default:
		return 4
	}
}

// BuildAgingReport buckets open bills by days past due and groups them per
// vendor, sorted by vendor name.
func BuildAgingReport(bills []AgingBill, asOf time.Time) AgingReport {
	byVendor := map[string]*AgingRow{}
	var order []string

	for _, b := range bills {
		row, ok := byVendor[b.VendorID]
		if !ok {
			row = &AgingRow{VendorID: b.VendorID, VendorName: b.VendorName}
			byVendor[b.VendorID] = row
			order = append(order, b.VendorID)
		}
		bucket := agingBucket(b.DueDate, asOf)
		row.Buckets[bucket] += b.Amount
		row.Total += b.Amount
	}

	report := AgingReport{AsOf: asOf, Totals: AgingRow{VendorName: "Total"}}
	sort.Slice(order, func(i, j int) bool {
		return byVendor[order[i]].VendorName < byVendor[order[j]].VendorName
	})
	for _, id := range order {
		row := *byVendor[id]
		for i, v := range row.Buckets {
			report.Totals.Buckets[i] += v
		}
		report.Totals.Total += row.Total
		report.Rows = append(report.Rows, row)
	}
	return report
}

package services

// JobCostExportData holds everything the PDF and Excel renderers need.
// Both renderers consume the same grouped aggregate shape.
type JobCostExportData struct {
	Title       string
	ProjectName string
	LotName     string // empty when the report spans all lots
	AsOfDate    string // display form, e.g. "Jun 30, 2026"
	Groups      []JobCostGroup
	GrandTotal  JobCostTotals
}

// AgingExportData holds the A/P aging report plus display metadata.
type AgingExportData struct {
	Title    string
	AsOfDate string
	Rows     []AgingRow
	Totals   AgingRow
}

package services

import (
	"testing"
)

func sampleJobCostExport() JobCostExportData {
	return JobCostExportData{
		Title:       "Job Cost Report",
		ProjectName: "Maple Ridge",
		LotName:     "Lot 12",
		AsOfDate:    "2026-06-30",
		Groups: []JobCostGroup{
			{
				Group: "4000",
				Rows: []JobCostRow{
					{CostCode: "4000", Name: "Framing", ParentGroup: "4000", Budget: 500, Actual: 150, Variance: 350},
					{CostCode: "4470", Name: "Plumbing", ParentGroup: "4000", Budget: 300, Actual: 420, Variance: -120},
				},
				Subtotal: JobCostTotals{Budget: 800, Actual: 570, Variance: 230},
			},
			{
				Group: "5000",
				Rows: []JobCostRow{
					{CostCode: "5200", Name: "Roofing", ParentGroup: "5000", Budget: 0, Actual: 80, Variance: -80},
				},
				Subtotal: JobCostTotals{Budget: 0, Actual: 80, Variance: -80},
			},
		},
		GrandTotal: JobCostTotals{Budget: 800, Actual: 650, Variance: 150},
	}
}

func TestGenerateJobCostPDF_BasicReport(t *testing.T) {
	result, err := GenerateJobCostPDF(sampleJobCostExport())
	if err != nil {
		t.Fatalf("GenerateJobCostPDF() error = %v", err)
	}
	if len(result) == 0 {
		t.Fatal("GenerateJobCostPDF() returned empty bytes")
	}
	// PDF files start with %PDF
	if len(result) > 4 && string(result[:5]) != "%PDF-" {
		t.Errorf("result does not start with PDF header, got %q", string(result[:5]))
	}
}

func TestGenerateJobCostPDF_EmptyGroups(t *testing.T) {
	data := JobCostExportData{
		Title:       "Job Cost Report",
		ProjectName: "Empty Project",
		AsOfDate:    "2026-06-30",
	}

	result, err := GenerateJobCostPDF(data)
	if err != nil {
		t.Fatalf("GenerateJobCostPDF() error = %v", err)
	}
	if len(result) == 0 {
		t.Fatal("GenerateJobCostPDF() returned empty bytes")
	}
}

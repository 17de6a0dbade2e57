package handlers

import (
	"fmt"
	"log"
	"net/http"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"github.com/oldcreekhomes/builder-suite-ai-sub001/services"
)

// loadOpenBills collects open A/P bills, optionally scoped to one project.
func loadOpenBills(app *pocketbase.PocketBase, projectID string) ([]services.AgingBill, error) {
	filter := "status = 'open'"
	params := map[string]any{}
	if projectID != "" {
		filter += " && project = {:project}"
		params["project"] = projectID
	}

	records, err := app.FindRecordsByFilter("ap_bills", filter, "due_date", 0, 0, params)
	if err != nil {
		return nil, fmt.Errorf("load open bills: %w", err)
	}

	vendorNames := map[string]string{}
	bills := make([]services.AgingBill, 0, len(records))
	for _, rec := range records {
		vendorID := rec.GetString("vendor")
		name, ok := vendorNames[vendorID]
		if !ok {
			if vendor, err := app.FindRecordById("vendors", vendorID); err == nil {
				name = vendor.GetString("name")
			}
			vendorNames[vendorID] = name
		}
		bills = append(bills, services.AgingBill{
			VendorID:   vendorID,
			VendorName: name,
			BillNumber: rec.GetString("bill_number"),
			Amount:     rec.GetFloat("amount"),
			DueDate:    rec.GetDateTime("due_date").Time(),
		})
	}
	return bills, nil
}

// HandleAPAging returns the A/P aging report as JSON.
// Route: GET /api/app/reports/ap-aging
func HandleAPAging(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		asOf, err := asOfFromQuery(e)
		if err != nil {
			return apiError(e, http.StatusBadRequest, ErrKindValidation, "as_of must be YYYY-MM-DD")
		}

		bills, err := loadOpenBills(app, e.Request.URL.Query().Get("project"))
		if err != nil {
			log.Printf("ap_aging: %v", err)
			return internalError(e)
		}

		report := services.BuildAgingReport(bills, asOf)
		return e.JSON(http.StatusOK, map[string]any{
			"as_of":   asOf.Format("2006-01-02"),
			"buckets": services.AgingBucketLabels,
			"rows":    report.Rows,
			"totals":  report.Totals,
		})
	}
}

// HandleAPAgingExportPDF downloads the A/P aging report as a PDF.
// Route: GET /api/app/reports/ap-aging/export/pdf
func HandleAPAgingExportPDF(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		data, err := buildAgingExportData(app, e)
		if err != nil {
			return err
		}

		pdfBytes, err := services.GenerateAgingPDF(data)
		if err != nil {
			log.Printf("ap_aging: failed to generate PDF: %v", err)
			return internalError(e)
		}

		e.Response.Header().Set("Content-Type", "application/pdf")
		e.Response.Header().Set("Content-Disposition", `attachment; filename="ap-aging.pdf"`)
		e.Response.Write(pdfBytes)
		return nil
	}
}

// HandleAPAgingExportExcel downloads the A/P aging report as an Excel file.
// Route: GET /api/app/reports/ap-aging/export/excel
func HandleAPAgingExportExcel(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		data, err := buildAgingExportData(app, e)
		if err != nil {
			return err
		}

		xlsxBytes, err := services.GenerateAgingExcel(data)
		if err != nil {
			log.Printf("ap_aging: failed to generate Excel: %v", err)
			return internalError(e)
		}

		e.Response.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		e.Response.Header().Set("Content-Disposition", `attachment; filename="ap-aging.xlsx"`)
		e.Response.Write(xlsxBytes)
		return nil
	}
}

// buildAgingExportData shapes the report for the renderers. A returned error
// is already a written response.
func buildAgingExportData(app *pocketbase.PocketBase, e *core.RequestEvent) (services.AgingExportData, error) {
	asOf, err := asOfFromQuery(e)
	if err != nil {
		return services.AgingExportData{}, apiError(e, http.StatusBadRequest, ErrKindValidation, "as_of must be YYYY-MM-DD")
	}

	bills, err := loadOpenBills(app, e.Request.URL.Query().Get("project"))
	if err != nil {
		log.Printf("ap_aging: %v", err)
		return services.AgingExportData{}, internalError(e)
	}

	report := services.BuildAgingReport(bills, asOf)
	return services.AgingExportData{
		Title:    "A/P Aging Report",
		AsOfDate: asOf.Format("Jan 2, 2006"),
		Rows:     report.Rows,
		Totals:   report.Totals,
	}, nil
}

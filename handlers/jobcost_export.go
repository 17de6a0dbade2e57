package handlers

import (
	"errors"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"github.com/oldcreekhomes/builder-suite-ai-sub001/services"
)

// buildJobCostExportData runs the report pipeline and shapes the result for
// the PDF and Excel renderers.
func buildJobCostExportData(app *pocketbase.PocketBase, projectID string, scope services.LotScope, asOf time.Time) (services.JobCostExportData, error) {
	data, err := services.BuildJobCostData(app, projectID, scope, asOf)
	if err != nil {
		return services.JobCostExportData{}, err
	}

	return services.JobCostExportData{
		Title:       "Job Cost Report",
		ProjectName: data.ProjectName,
		LotName:     data.LotName,
		AsOfDate:    asOf.Format("Jan 2, 2006"),
		Groups:      data.Report.Groups,
		GrandTotal:  data.Report.GrandTotal,
	}, nil
}

// HandleJobCostExportPDF downloads the job cost report as a PDF.
// Route: GET /api/app/projects/{projectId}/job-cost/export/pdf
func HandleJobCostExportPDF(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		projectID := e.Request.PathValue("projectId")

		asOf, err := asOfFromQuery(e)
		if err != nil {
			return apiError(e, http.StatusBadRequest, ErrKindValidation, "as_of must be YYYY-MM-DD")
		}

		data, err := buildJobCostExportData(app, projectID, lotScopeFromQuery(e), asOf)
		if err != nil {
			return jobCostExportError(e, projectID, err)
		}

		pdfBytes, err := services.GenerateJobCostPDF(data)
		if err != nil {
			log.Printf("jobcost_export: failed to generate PDF: %v", err)
			return internalError(e)
		}

		filename := fmt.Sprintf("job-cost-%s.pdf", sanitizeFilename(data.ProjectName))
		e.Response.Header().Set("Content-Type", "application/pdf")
		e.Response.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
		e.Response.Write(pdfBytes)
		return nil
	}
}

// HandleJobCostExportExcel downloads the job cost report as an Excel file.
// Route: GET /api/app/projects/{projectId}/job-cost/export/excel
func HandleJobCostExportExcel(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		projectID := e.Request.PathValue("projectId")

		asOf, err := asOfFromQuery(e)
		if err != nil {
			return apiError(e, http.StatusBadRequest, ErrKindValidation, "as_of must be YYYY-MM-DD")
		}

		data, err := buildJobCostExportData(app, projectID, lotScopeFromQuery(e), asOf)
		if err != nil {
			return jobCostExportError(e, projectID, err)
		}

		xlsxBytes, err := services.GenerateJobCostExcel(data)
		if err != nil {
			log.Printf("jobcost_export: failed to generate Excel: %v", err)
			return internalError(e)
		}

		filename := fmt.Sprintf("job-cost-%s.xlsx", sanitizeFilename(data.ProjectName))
		e.Response.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		e.Response.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
		e.Response.Write(xlsxBytes)
		return nil
	}
}

func jobCostExportError(e *core.RequestEvent, projectID string, err error) error {
	if errors.Is(err, services.ErrWIPAccountNotSet) {
		return apiError(e, http.StatusUnprocessableEntity, ErrKindConfig,
			"Set a WIP account in accounting settings before running job cost reports")
	}
	log.Printf("jobcost_export: could not build data for project %s: %v", projectID, err)
	return apiError(e, http.StatusNotFound, ErrKindNotFound, "Project not found")
}

// sanitizeFilename removes characters that are unsafe for filenames.
func sanitizeFilename(s string) string {
	s = strings.ReplaceAll(s, " ", "-")
	s = strings.ReplaceAll(s, "/", "-")
	s = strings.ReplaceAll(s, "\\", "-")
	s = strings.ReplaceAll(s, ":", "-")
	return s
}

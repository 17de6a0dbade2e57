package services

import (
	"encoding/csv"
	"fmt"
	"io"
	"mime/multipart"
	"strconv"
	"strings"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"
	"github.com/xuri/excelize/v2"
)

// ValidationError represents a single field-level error on one row.
type ValidationError struct {
	Row     int    `json:"row"`
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationResult is returned after parsing and validating an uploaded file.
type ValidationResult struct {
	TotalRows  int                 `json:"total_rows"`
	ValidRows  int                 `json:"valid_rows"`
	ErrorRows  int                 `json:"error_rows"`
	Errors     []ValidationError   `json:"errors"`
	ParsedRows []map[string]string `json:"-"`
	FileName   string              `json:"-"`
}

// ImportResult summarizes a committed import.
type ImportResult struct {
	TotalRows int `json:"total_rows"`
	Imported  int `json:"imported"`
	Skipped   int `json:"skipped"`
}

// costCodeImportColumns maps accepted header labels to field keys.
var costCodeImportColumns = map[string]string{
	"code":              "code",
	"cost code":         "code",
	"name":              "name",
	"description":       "name",
	"quantity":          "quantity",
	"qty":               "quantity",
	"unit price":        "unit_price",
	"price":             "unit_price",
	"has subcategories": "has_subcategories",
}

// parseCSV reads a CSV file and returns headers + data rows.
func parseCSV(file io.Reader) ([]string, [][]string, error) {
	reader := csv.NewReader(file)
	reader.TrimLeadingSpace = true
	reader.LazyQuotes = true

	allRows, err := reader.ReadAll()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to parse CSV: %w", err)
	}
	if len(allRows) < 2 {
		return nil, nil, fmt.Errorf("file must contain a header row and at least one data row")
	}

	return allRows[0], allRows[1:], nil
}

// parseExcel reads an xlsx file and returns headers + data rows from the first sheet.
func parseExcel(file multipart.File) ([]string, [][]string, error) {
	f, err := excelize.OpenReader(file)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open Excel file: %w", err)
	}
	defer f.Close()

	sheetName := f.GetSheetName(0)
	rows, err := f.GetRows(sheetName)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read sheet: %w", err)
	}
	if len(rows) < 2 {
		return nil, nil, fmt.Errorf("file must contain a header row and at least one data row")
	}

	return rows[0], rows[1:], nil
}

// mapImportHeaders maps uploaded column headers to cost code field keys.
// Unrecognized columns map to "" and are ignored.
func mapImportHeaders(headers []string) []string {
	mapped := make([]string, len(headers))
	for i, h := range headers {
		norm := strings.ToLower(strings.TrimSpace(h))
		norm = strings.TrimSuffix(norm, " *")
		norm = strings.TrimSpace(norm)
		mapped[i] = costCodeImportColumns[norm]
	}
	return mapped
}

// ValidateCostCodeFile parses and validates an uploaded cost code file.
func ValidateCostCodeFile(
	app *pocketbase.PocketBase,
	file multipart.File,
	fileName string,
) (*ValidationResult, error) {
	var headers []string
	var dataRows [][]string
	var err error

	lowerName := strings.ToLower(fileName)
	if strings.HasSuffix(lowerName, ".csv") {
		headers, dataRows, err = parseCSV(file)
	} else if strings.HasSuffix(lowerName, ".xlsx") {
		headers, dataRows, err = parseExcel(file)
	} else {
		return nil, fmt.Errorf("unsupported file format: must be .csv or .xlsx")
	}
	if err != nil {
		return nil, err
	}

	columnKeys := mapImportHeaders(headers)

	existing, err := loadExistingCostCodes(app)
	if err != nil {
		return nil, fmt.Errorf("load existing cost codes: %w", err)
	}

	result := &ValidationResult{
		TotalRows:  len(dataRows),
		FileName:   fileName,
		ParsedRows: make([]map[string]string, 0, len(dataRows)),
	}

	seen := map[string]bool{}
	for rowIdx, row := range dataRows {
		rowNum := rowIdx + 2 // 1-indexed, +1 for header row
		rowData := make(map[string]string)
		var rowErrors []ValidationError

		for colIdx, key := range columnKeys {
			if key == "" {
				continue
			}
			value := ""
			if colIdx < len(row) {
				value = strings.TrimSpace(row[colIdx])
			}
			rowData[key] = value
		}

		code := rowData["code"]
		if code == "" {
			rowErrors = append(rowErrors, ValidationError{
				Row: rowNum, Field: "Code", Message: "Code is required",
			})
		} else {
			if existing[code] {
				rowErrors = append(rowErrors, ValidationError{
					Row: rowNum, Field: "Code",
					Message: fmt.Sprintf("Cost code %q already exists", code),
				})
			}
			if seen[code] {
				rowErrors = append(rowErrors, ValidationError{
					Row: rowNum, Field: "Code",
					Message: fmt.Sprintf("Duplicate code %q in file", code),
				})
			}
			seen[code] = true
		}

		if rowData["name"] == "" {
			rowErrors = append(rowErrors, ValidationError{
				Row: rowNum, Field: "Name", Message: "Name is required",
			})
		}

		for _, numField := range []struct{ key, label string }{
			{"quantity", "Quantity"},
			{"unit_price", "Unit Price"},
		} {
			if v := rowData[numField.key]; v != "" {
				if _, err := strconv.ParseFloat(v, 64); err != nil {
					rowErrors = append(rowErrors, ValidationError{
						Row: rowNum, Field: numField.label,
						Message: fmt.Sprintf("%s must be a number", numField.label),
					})
				}
			}
		}

		if len(rowErrors) > 0 {
			result.Errors = append(result.Errors, rowErrors...)
		}
		result.ParsedRows = append(result.ParsedRows, rowData)
	}

	errorRowSet := make(map[int]bool)
	for _, e := range result.Errors {
		errorRowSet[e.Row] = true
	}
	result.ErrorRows = len(errorRowSet)
	result.ValidRows = result.TotalRows - result.ErrorRows

	return result, nil
}

// CommitCostCodeImport creates cost code records from validated rows. Rows
// whose code already exists are skipped rather than overwritten. The
// parent_group is computed on write so dotted children always land under
// their parent.
func CommitCostCodeImport(app *pocketbase.PocketBase, rows []map[string]string) (*ImportResult, error) {
	col, err := app.FindCollectionByNameOrId("cost_codes")
	if err != nil {
		return nil, fmt.Errorf("cost_codes collection not found: %w", err)
	}

	existing, err := loadExistingCostCodes(app)
	if err != nil {
		return nil, fmt.Errorf("load existing cost codes: %w", err)
	}

	result := &ImportResult{TotalRows: len(rows)}
	for _, rowData := range rows {
		code := rowData["code"]
		if code == "" || existing[code] {
			result.Skipped++
			continue
		}

		record := core.NewRecord(col)
		record.Set("code", code)
		record.Set("name", rowData["name"])
		if IsChildCode(code) {
			record.Set("parent_group", ParentCode(code))
		}
		if v := rowData["quantity"]; v != "" {
			if qty, err := strconv.ParseFloat(v, 64); err == nil {
				record.Set("quantity", qty)
			}
		}
		if v := rowData["unit_price"]; v != "" {
			if price, err := strconv.ParseFloat(v, 64); err == nil {
				record.Set("unit_price", price)
			}
		}
		truthy := strings.ToLower(rowData["has_subcategories"])
		record.Set("has_subcategories", truthy == "true" || truthy == "yes" || truthy == "1")

		if err := app.Save(record); err != nil {
			result.Skipped++
			continue
		}
		existing[code] = true
		result.Imported++
	}
	return result, nil
}

// loadExistingCostCodes fetches all cost code strings already in the system.
func loadExistingCostCodes(app *pocketbase.PocketBase) (map[string]bool, error) {
	records, err := app.FindRecordsByFilter("cost_codes", "id != ''", "", 0, 0, nil)
	if err != nil {
		return nil, err
	}
	codes := make(map[string]bool, len(records))
	for _, r := range records {
		codes[r.GetString("code")] = true
	}
	return codes, nil
}

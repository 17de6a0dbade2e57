package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/oldcreekhomes/builder-suite-ai-sub001/services"
	"github.com/oldcreekhomes/builder-suite-ai-sub001/testhelpers"
)

func TestHandleAPAging_BucketsByDaysPastDue(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	project := testhelpers.CreateTestProject(t, app, "Aging Project")
	acme := testhelpers.CreateTestVendor(t, app, "Acme Concrete")
	zeta := testhelpers.CreateTestVendor(t, app, "Zeta Plumbing")

	// Due in the future: Current. 45 days past due: 31-60 bucket.
	testhelpers.CreateTestBill(t, app, project.Id, acme.Id, "B-001", 1000, "2026-07-15 00:00:00.000Z", "open")
	testhelpers.CreateTestBill(t, app, project.Id, acme.Id, "B-002", 250, "2026-05-16 00:00:00.000Z", "open")
	testhelpers.CreateTestBill(t, app, project.Id, zeta.Id, "B-003", 400, "2026-06-30 00:00:00.000Z", "open")
	// Paid bills never age.
	testhelpers.CreateTestBill(t, app, project.Id, zeta.Id, "B-004", 9999, "2026-01-01 00:00:00.000Z", "paid")

	handler := HandleAPAging(app)
	req := httptest.NewRequest(http.MethodGet, "/api/app/reports/ap-aging?as_of=2026-06-30", nil)
	rec := httptest.NewRecorder()
	e := newTestRequestEvent(app, req, rec)

	if err := handler(e); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp struct {
		Rows   []services.AgingRow `json:"rows"`
		Totals services.AgingRow   `json:"totals"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	if len(resp.Rows) != 2 {
		t.Fatalf("expected 2 vendor rows, got %d", len(resp.Rows))
	}
	// Sorted by vendor name.
	if resp.Rows[0].VendorName != "Acme Concrete" {
		t.Errorf("first row = %q, want Acme Concrete", resp.Rows[0].VendorName)
	}
	if resp.Rows[0].Buckets[0] != 1000 {
		t.Errorf("Acme Current = %v, want 1000", resp.Rows[0].Buckets[0])
	}
	if resp.Rows[0].Buckets[2] != 250 {
		t.Errorf("Acme 31-60 = %v, want 250", resp.Rows[0].Buckets[2])
	}
	if resp.Totals.Total != 1650 {
		t.Errorf("totals = %v, want 1650 (paid bill excluded)", resp.Totals.Total)
	}
}

func TestHandleAPAgingExportPDF(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	project := testhelpers.CreateTestProject(t, app, "Aging PDF Project")
	vendor := testhelpers.CreateTestVendor(t, app, "PDF Vendor")
	testhelpers.CreateTestBill(t, app, project.Id, vendor.Id, "B-010", 500, "2026-05-01 00:00:00.000Z", "open")

	handler := HandleAPAgingExportPDF(app)
	req := httptest.NewRequest(http.MethodGet, "/api/app/reports/ap-aging/export/pdf?as_of=2026-06-30", nil)
	rec := httptest.NewRecorder()
	e := newTestRequestEvent(app, req, rec)

	if err := handler(e); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/pdf" {
		t.Errorf("expected content-type application/pdf, got %s", ct)
	}
	if rec.Body.Len() == 0 {
		t.Error("expected non-empty PDF body")
	}
}

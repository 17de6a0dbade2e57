package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/pocketbase/pocketbase"

	"github.com/oldcreekhomes/builder-suite-ai-sub001/services"
	"github.com/oldcreekhomes/builder-suite-ai-sub001/testhelpers"
)

// runJobCostReport invokes the report handler and decodes the response.
func runJobCostReport(t *testing.T, app *pocketbase.PocketBase, projectID, query string) (*httptest.ResponseRecorder, services.JobCostData) {
	t.Helper()

	handler := HandleJobCostReport(app)
	req := httptest.NewRequest(http.MethodGet, "/api/app/projects/"+projectID+"/job-cost"+query, nil)
	req.SetPathValue("projectId", projectID)
	rec := httptest.NewRecorder()
	e := newTestRequestEvent(app, req, rec)

	if err := handler(e); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}

	var data services.JobCostData
	if rec.Code == http.StatusOK {
		if err := json.Unmarshal(rec.Body.Bytes(), &data); err != nil {
			t.Fatalf("unmarshal report: %v", err)
		}
	}
	return rec, data
}

func TestHandleJobCostReport_RequiresWIPAccount(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	project := testhelpers.CreateTestProject(t, app, "No WIP Project")

	rec, _ := runJobCostReport(t, app, project.Id, "")
	if rec.Code != http.StatusUnprocessableEntity {
		t.Errorf("expected 422 without WIP account, got %d", rec.Code)
	}
	testhelpers.AssertJSONContains(t, rec.Body.String(), `"kind":"config"`)
}

func TestHandleJobCostReport_MergesBudgetAndActuals(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	project := testhelpers.CreateTestProject(t, app, "Merge Project")
	wip := testhelpers.CreateTestWIPSettings(t, app)
	ap := testhelpers.CreateTestAccount(t, app, "2000", "Accounts Payable", "liability")
	cc := testhelpers.CreateTestCostCode(t, app, "4470", "Plumbing", 0, 0)
	testhelpers.CreateTestBudgetItem(t, app, project.Id, "", cc.Id, 1, 500)

	entry := testhelpers.CreateTestLedgerEntry(t, app, "JE-2026-0001", "2026-04-01 00:00:00.000Z", "Rough-in")
	testhelpers.CreateTestLedgerLine(t, app, entry.Id, wip.Id, project.Id, "", cc.Id, 150, 0)
	testhelpers.CreateTestLedgerLine(t, app, entry.Id, ap.Id, "", "", "", 0, 150)

	rec, data := runJobCostReport(t, app, project.Id, "?as_of=2026-06-30")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	if len(data.Report.Groups) != 1 {
		t.Fatalf("expected 1 group, got %d", len(data.Report.Groups))
	}
	group := data.Report.Groups[0]
	if group.Group != "4000" {
		t.Errorf("group = %q, want %q", group.Group, "4000")
	}
	if len(group.Rows) != 1 {
		t.Fatalf("expected 1 row, got %d", len(group.Rows))
	}
	row := group.Rows[0]
	if row.Budget != 500 || row.Actual != 150 || row.Variance != 350 {
		t.Errorf("row = budget %v actual %v variance %v, want 500/150/350",
			row.Budget, row.Actual, row.Variance)
	}
	if data.Report.GrandTotal.Variance != 350 {
		t.Errorf("grand total variance = %v, want 350", data.Report.GrandTotal.Variance)
	}
}

func TestHandleJobCostReport_AsOfCutoff(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	project := testhelpers.CreateTestProject(t, app, "Cutoff Project")
	wip := testhelpers.CreateTestWIPSettings(t, app)
	ap := testhelpers.CreateTestAccount(t, app, "2000", "Accounts Payable", "liability")
	cc := testhelpers.CreateTestCostCode(t, app, "4470", "Plumbing", 0, 0)

	// Posted late on the as-of day: included.
	onDay := testhelpers.CreateTestLedgerEntry(t, app, "JE-2026-0001", "2026-06-30 18:45:00.000Z", "On day")
	testhelpers.CreateTestLedgerLine(t, app, onDay.Id, wip.Id, project.Id, "", cc.Id, 100, 0)
	testhelpers.CreateTestLedgerLine(t, app, onDay.Id, ap.Id, "", "", "", 0, 100)

	// Posted after the as-of day: excluded.
	after := testhelpers.CreateTestLedgerEntry(t, app, "JE-2026-0002", "2026-07-01 00:00:00.000Z", "After")
	testhelpers.CreateTestLedgerLine(t, app, after.Id, wip.Id, project.Id, "", cc.Id, 999, 0)
	testhelpers.CreateTestLedgerLine(t, app, after.Id, ap.Id, "", "", "", 0, 999)

	_, data := runJobCostReport(t, app, project.Id, "?as_of=2026-06-30")
	if got := data.Report.GrandTotal.Actual; got != 100 {
		t.Errorf("actual = %v, want 100 (as-of day inclusive, later days excluded)", got)
	}
}

func TestHandleJobCostReport_LotScoping(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	project := testhelpers.CreateTestProject(t, app, "Lot Project")
	lotA := testhelpers.CreateTestLot(t, app, project.Id, "Lot A")
	lotB := testhelpers.CreateTestLot(t, app, project.Id, "Lot B")
	wip := testhelpers.CreateTestWIPSettings(t, app)
	ap := testhelpers.CreateTestAccount(t, app, "2000", "Accounts Payable", "liability")
	cc := testhelpers.CreateTestCostCode(t, app, "4470", "Plumbing", 0, 0)

	entry := testhelpers.CreateTestLedgerEntry(t, app, "JE-2026-0001", "2026-04-01 00:00:00.000Z", "Mixed lots")
	testhelpers.CreateTestLedgerLine(t, app, entry.Id, wip.Id, project.Id, lotA.Id, cc.Id, 100, 0)
	testhelpers.CreateTestLedgerLine(t, app, entry.Id, wip.Id, project.Id, lotB.Id, cc.Id, 40, 0)
	testhelpers.CreateTestLedgerLine(t, app, entry.Id, wip.Id, project.Id, "", cc.Id, 7, 0)
	testhelpers.CreateTestLedgerLine(t, app, entry.Id, ap.Id, "", "", "", 0, 147)

	// Scoped to lot A: lot A lines plus lot-less lines.
	_, scoped := runJobCostReport(t, app, project.Id, "?as_of=2026-06-30&lot="+lotA.Id)
	if got := scoped.Report.GrandTotal.Actual; got != 107 {
		t.Errorf("lot-scoped actual = %v, want 107 (lot A + lot-less)", got)
	}

	// Unscoped: everything.
	_, all := runJobCostReport(t, app, project.Id, "?as_of=2026-06-30")
	if got := all.Report.GrandTotal.Actual; got != 147 {
		t.Errorf("unscoped actual = %v, want 147", got)
	}
}

func TestHandleJobCostReport_ExcludesReversedEntries(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	project := testhelpers.CreateTestProject(t, app, "Reversal Project")
	wip := testhelpers.CreateTestWIPSettings(t, app)
	ap := testhelpers.CreateTestAccount(t, app, "2000", "Accounts Payable", "liability")
	cc := testhelpers.CreateTestCostCode(t, app, "4470", "Plumbing", 0, 0)

	entry := testhelpers.CreateTestLedgerEntry(t, app, "JE-2026-0001", "2026-04-01 00:00:00.000Z", "Will be reversed")
	testhelpers.CreateTestLedgerLine(t, app, entry.Id, wip.Id, project.Id, "", cc.Id, 300, 0)
	testhelpers.CreateTestLedgerLine(t, app, entry.Id, ap.Id, "", "", "", 0, 300)

	// Reverse via the handler so both the mirror entry and the stamps exist.
	reverse := HandleLedgerReverse(app)
	req := httptest.NewRequest(http.MethodPost, "/api/app/ledger/entries/"+entry.Id+"/reverse", nil)
	req.SetPathValue("id", entry.Id)
	rec := httptest.NewRecorder()
	if err := reverse(newTestRequestEvent(app, req, rec)); err != nil {
		t.Fatalf("reverse handler returned error: %v", err)
	}

	// Neither the reversed entry nor its mirror may contribute.
	_, data := runJobCostReport(t, app, project.Id, "?as_of=2026-12-31")
	if got := data.Report.GrandTotal.Actual; got != 0 {
		t.Errorf("actual = %v, want 0 after reversal", got)
	}
}

func TestHandleJobCostReport_UsesLiveBidWhileLocked(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	project := testhelpers.CreateTestProject(t, app, "Locked Report Project")
	testhelpers.CreateTestWIPSettings(t, app)
	cc := testhelpers.CreateTestCostCode(t, app, "5200", "Roofing", 0, 0)
	vendor := testhelpers.CreateTestVendor(t, app, "Roof Co")
	bid := testhelpers.CreateTestBid(t, app, project.Id, cc.Id, vendor.Id, 500, "accepted")

	item := testhelpers.CreateTestBudgetItem(t, app, project.Id, "", cc.Id, 0, 0)
	item.Set("source", services.BudgetSourceBid)
	item.Set("selected_bid", bid.Id)
	if err := app.Save(item); err != nil {
		t.Fatalf("save bid-sourced item: %v", err)
	}

	// Locking snapshots 500 into locked_amount.
	gate := services.NewProjectLockGate(app)
	if err := gate.Lock(project.Id, services.RoleOwner); err != nil {
		t.Fatalf("lock: %v", err)
	}
	bid.Set("amount", 900.0)
	if err := app.Save(bid); err != nil {
		t.Fatalf("save bid: %v", err)
	}

	// The budget page shows the snapshot while locked; this report does not.
	_, data := runJobCostReport(t, app, project.Id, "?as_of=2026-06-30")
	if got := data.Report.GrandTotal.Budget; got != 900 {
		t.Errorf("report budget = %v, want 900 (live bid amount, not the snapshot)", got)
	}

	listing, err := services.BuildBudgetListing(app, project.Id, services.AllLots())
	if err != nil {
		t.Fatalf("budget listing: %v", err)
	}
	if listing.Total != 500 {
		t.Errorf("budget page total = %v, want 500 (locked snapshot)", listing.Total)
	}
}

func TestHandleJobCostReport_ChildOnlyActualsUseParentName(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	project := testhelpers.CreateTestProject(t, app, "Child Name Project")
	wip := testhelpers.CreateTestWIPSettings(t, app)
	ap := testhelpers.CreateTestAccount(t, app, "2000", "Accounts Payable", "liability")
	testhelpers.CreateTestCostCode(t, app, "4470", "Plumbing", 0, 0)
	child := testhelpers.CreateTestCostCode(t, app, "4470.1", "Plumbing Rough-in", 0, 0)

	// No budget rows; the only activity is a posting against the child code.
	entry := testhelpers.CreateTestLedgerEntry(t, app, "JE-2026-0001", "2026-04-01 00:00:00.000Z", "Rough-in")
	testhelpers.CreateTestLedgerLine(t, app, entry.Id, wip.Id, project.Id, "", child.Id, 75, 0)
	testhelpers.CreateTestLedgerLine(t, app, entry.Id, ap.Id, "", "", "", 0, 75)

	_, data := runJobCostReport(t, app, project.Id, "?as_of=2026-06-30")
	if len(data.Report.Groups) != 1 || len(data.Report.Groups[0].Rows) != 1 {
		t.Fatalf("expected a single row, got %+v", data.Report)
	}
	row := data.Report.Groups[0].Rows[0]
	if row.CostCode != "4470" {
		t.Errorf("row code = %q, want %q", row.CostCode, "4470")
	}
	if row.Name != "Plumbing" {
		t.Errorf("row name = %q, want the parent record's name %q", row.Name, "Plumbing")
	}
}

func TestHandleJobCostReport_SubcategoryBudgetVsDirectActuals(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	project := testhelpers.CreateTestProject(t, app, "Subcategory Project")
	wip := testhelpers.CreateTestWIPSettings(t, app)
	ap := testhelpers.CreateTestAccount(t, app, "2000", "Accounts Payable", "liability")

	parent := testhelpers.CreateTestCostCode(t, app, "4000", "Framing", 0, 0)
	parent.Set("has_subcategories", true)
	if err := app.Save(parent); err != nil {
		t.Fatalf("could not flag parent: %v", err)
	}
	child := testhelpers.CreateTestCostCode(t, app, "4000.1", "Framing Labor", 5, 10)

	// Parent budget row: its own qty/price are ignored, rollup of children wins.
	testhelpers.CreateTestBudgetItem(t, app, project.Id, "", parent.Id, 99, 99)

	// Actuals post against the child code and roll up to the parent.
	entry := testhelpers.CreateTestLedgerEntry(t, app, "JE-2026-0001", "2026-04-01 00:00:00.000Z", "Labor")
	testhelpers.CreateTestLedgerLine(t, app, entry.Id, wip.Id, project.Id, "", child.Id, 150, 0)
	testhelpers.CreateTestLedgerLine(t, app, entry.Id, ap.Id, "", "", "", 0, 150)

	_, data := runJobCostReport(t, app, project.Id, "?as_of=2026-06-30")
	if len(data.Report.Groups) != 1 || len(data.Report.Groups[0].Rows) != 1 {
		t.Fatalf("expected a single merged row, got %+v", data.Report)
	}
	row := data.Report.Groups[0].Rows[0]
	if row.CostCode != "4000" {
		t.Errorf("row code = %q, want %q", row.CostCode, "4000")
	}
	if row.Budget != 50 {
		t.Errorf("budget = %v, want 50 (child rollup 5*10)", row.Budget)
	}
	if row.Actual != 150 {
		t.Errorf("actual = %v, want 150 (child postings roll up)", row.Actual)
	}
	if row.Variance != -100 {
		t.Errorf("variance = %v, want -100", row.Variance)
	}
}

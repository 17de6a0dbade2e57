package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/oldcreekhomes/builder-suite-ai-sub001/services"
	"github.com/oldcreekhomes/builder-suite-ai-sub001/testhelpers"
)

func TestHandleVendorCreate(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	handler := HandleVendorCreate(app)

	req := httptest.NewRequest(http.MethodPost, "/api/app/vendors",
		strings.NewReader(`{"name":"New Vendor","email":"v@example.com"}`))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	e := newTestRequestEvent(app, req, rec)

	if err := handler(e); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}

	records, _ := app.FindRecordsByFilter("vendors", "name = 'New Vendor'", "", 1, 0, nil)
	if len(records) == 0 {
		t.Error("expected vendor to be created")
	}
}

func TestHandleBidAccept_DeclinesCompetitors(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	project := testhelpers.CreateTestProject(t, app, "Bid Project")
	cc := testhelpers.CreateTestCostCode(t, app, "5200", "Roofing", 0, 0)
	v1 := testhelpers.CreateTestVendor(t, app, "Roofer One")
	v2 := testhelpers.CreateTestVendor(t, app, "Roofer Two")
	winner := testhelpers.CreateTestBid(t, app, project.Id, cc.Id, v1.Id, 8600, "pending")
	loser := testhelpers.CreateTestBid(t, app, project.Id, cc.Id, v2.Id, 9100, "pending")

	handler := HandleBidAccept(app)
	req := httptest.NewRequest(http.MethodPost, "/api/app/projects/"+project.Id+"/bids/"+winner.Id+"/accept", nil)
	req.SetPathValue("projectId", project.Id)
	req.SetPathValue("id", winner.Id)
	rec := httptest.NewRecorder()
	e := newTestRequestEvent(app, req, rec)

	if err := handler(e); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}

	freshWinner, _ := app.FindRecordById("bids", winner.Id)
	if freshWinner.GetString("status") != "accepted" {
		t.Errorf("winner status = %q, want accepted", freshWinner.GetString("status"))
	}
	freshLoser, _ := app.FindRecordById("bids", loser.Id)
	if freshLoser.GetString("status") != "declined" {
		t.Errorf("competitor status = %q, want declined", freshLoser.GetString("status"))
	}
}

func TestHandleLotCreate(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	project := testhelpers.CreateTestProject(t, app, "Lot Create Project")
	handler := HandleLotCreate(app)

	req := httptest.NewRequest(http.MethodPost, "/api/app/projects/"+project.Id+"/lots",
		strings.NewReader(`{"name":"Lot 3"}`))
	req.Header.Set("Content-Type", "application/json")
	req.SetPathValue("projectId", project.Id)
	rec := httptest.NewRecorder()
	e := newTestRequestEvent(app, req, rec)

	if err := handler(e); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}
}

func TestActorRole(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	accountant := testhelpers.CreateTestUser(t, app, "roles@example.com", services.RoleAccountant)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()

	// Unauthenticated requests get the read-only role.
	if got := actorRole(newTestRequestEvent(app, req, rec)); got != services.RoleViewer {
		t.Errorf("anonymous role = %q, want viewer", got)
	}

	if got := actorRole(newAuthedRequestEvent(app, req, rec, accountant)); got != services.RoleAccountant {
		t.Errorf("authed role = %q, want accountant", got)
	}
}

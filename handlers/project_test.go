package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/oldcreekhomes/builder-suite-ai-sub001/testhelpers"
)

func TestHandleProjectCreate_ValidData(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	handler := HandleProjectCreate(app)

	req := httptest.NewRequest(http.MethodPost, "/api/app/projects",
		strings.NewReader(`{"name":"Maple Court","client":"Old Creek","status":"active"}`))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	e := newTestRequestEvent(app, req, rec)

	if err := handler(e); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Errorf("expected status 201, got %d", rec.Code)
	}

	records, err := app.FindRecordsByFilter("projects", "name = {:name}", "", 1, 0,
		map[string]any{"name": "Maple Court"})
	if err != nil || len(records) == 0 {
		t.Error("expected project to be created in database")
	}
}

func TestHandleProjectCreate_MissingName(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	handler := HandleProjectCreate(app)

	req := httptest.NewRequest(http.MethodPost, "/api/app/projects",
		strings.NewReader(`{"name":"","status":"active"}`))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	e := newTestRequestEvent(app, req, rec)

	if err := handler(e); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected status 400, got %d", rec.Code)
	}
	testhelpers.AssertJSONContains(t, rec.Body.String(), `"kind":"validation"`)
}

func TestHandleProjectCreate_DuplicateName(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	testhelpers.CreateTestProject(t, app, "Duplicate Me")
	handler := HandleProjectCreate(app)

	req := httptest.NewRequest(http.MethodPost, "/api/app/projects",
		strings.NewReader(`{"name":"Duplicate Me"}`))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	e := newTestRequestEvent(app, req, rec)

	if err := handler(e); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if rec.Code != http.StatusConflict {
		t.Errorf("expected status 409, got %d", rec.Code)
	}
}

func TestHandleProjectList(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	testhelpers.CreateTestProject(t, app, "List Project A")
	testhelpers.CreateTestProject(t, app, "List Project B")
	handler := HandleProjectList(app)

	req := httptest.NewRequest(http.MethodGet, "/api/app/projects", nil)
	rec := httptest.NewRecorder()
	e := newTestRequestEvent(app, req, rec)

	if err := handler(e); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Errorf("expected status 200, got %d", rec.Code)
	}
	testhelpers.AssertJSONContains(t, rec.Body.String(), "List Project A", "List Project B")
}

func TestHandleProjectView_WithLots(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	project := testhelpers.CreateTestProject(t, app, "View Project")
	testhelpers.CreateTestLot(t, app, project.Id, "Lot 7")
	handler := HandleProjectView(app)

	req := httptest.NewRequest(http.MethodGet, "/api/app/projects/"+project.Id, nil)
	req.SetPathValue("id", project.Id)
	rec := httptest.NewRecorder()
	e := newTestRequestEvent(app, req, rec)

	if err := handler(e); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	testhelpers.AssertJSONContains(t, rec.Body.String(), "View Project", "Lot 7")
}

func TestHandleProjectDelete_NotFound(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	handler := HandleProjectDelete(app)

	req := httptest.NewRequest(http.MethodDelete, "/api/app/projects/nonexistent", nil)
	req.SetPathValue("id", "nonexistent")
	rec := httptest.NewRecorder()
	e := newTestRequestEvent(app, req, rec)

	if err := handler(e); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if rec.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", rec.Code)
	}
}

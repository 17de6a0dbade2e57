package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/oldcreekhomes/builder-suite-ai-sub001/testhelpers"
)

func TestHandleOptions(t *testing.T) {
	app := testhelpers.NewTestApp(t)

	handler := HandleOptions()
	req := httptest.NewRequest(http.MethodGet, "/api/app/options", nil)
	rec := httptest.NewRecorder()
	if err := handler(newTestRequestEvent(app, req, rec)); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	body := rec.Body.String()
	for _, want := range []string{
		`"budget_sources":["manual","bid","estimate"]`,
		`"account_types":["asset","liability","equity","income","expense"]`,
		`"roles":["owner","accountant","viewer"]`,
		`"bid_statuses":["pending","accepted","declined"]`,
		`"bill_statuses":["open","paid"]`,
		`"project_statuses":["active","completed","on_hold"]`,
	} {
		testhelpers.AssertJSONContains(t, body, want)
	}
}

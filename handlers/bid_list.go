package handlers

import (
	"log"
	"net/http"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"
)

// HandleBidList lists bids for a project, optionally filtered by cost code.
// Route: GET /api/app/projects/{projectId}/bids
func HandleBidList(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		projectID := e.Request.PathValue("projectId")

		if _, err := app.FindRecordById("projects", projectID); err != nil {
			return apiError(e, http.StatusNotFound, ErrKindNotFound, "Project not found")
		}

		filter := "project = {:project}"
		params := map[string]any{"project": projectID}
		if cc := e.Request.URL.Query().Get("cost_code"); cc != "" {
			filter += " && cost_code = {:cc}"
			params["cc"] = cc
		}

		records, err := app.FindRecordsByFilter("bids", filter, "-created", 0, 0, params)
		if err != nil {
			log.Printf("bid_list: query failed for project %s: %v", projectID, err)
			return internalError(e)
		}

		bids := make([]map[string]any, 0, len(records))
		for _, rec := range records {
			bid := map[string]any{
				"id":        rec.Id,
				"cost_code": rec.GetString("cost_code"),
				"vendor":    rec.GetString("vendor"),
				"amount":    rec.GetFloat("amount"),
				"status":    rec.GetString("status"),
			}
			if vendor, err := app.FindRecordById("vendors", rec.GetString("vendor")); err == nil {
				bid["vendor_name"] = vendor.GetString("name")
			}
			bids = append(bids, bid)
		}

		return e.JSON(http.StatusOK, map[string]any{"bids": bids})
	}
}

// HandleBidAccept marks a bid accepted and declines its competitors on the
// same cost code.
// Route: POST /api/app/projects/{projectId}/bids/{id}/accept
func HandleBidAccept(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		projectID := e.Request.PathValue("projectId")
		bidID := e.Request.PathValue("id")

		bid, err := app.FindRecordById("bids", bidID)
		if err != nil || bid.GetString("project") != projectID {
			return apiError(e, http.StatusNotFound, ErrKindNotFound, "Bid not found")
		}

		bid.Set("status", "accepted")
		if err := app.Save(bid); err != nil {
			log.Printf("bid_accept: could not save bid %s: %v", bidID, err)
			return internalError(e)
		}

		competitors, _ := app.FindRecordsByFilter(
			"bids",
			"project = {:project} && cost_code = {:cc} && id != {:id} && status != 'declined'",
			"", 0, 0,
			map[string]any{"project": projectID, "cc": bid.GetString("cost_code"), "id": bidID},
		)
		for _, c := range competitors {
			c.Set("status", "declined")
			if err := app.Save(c); err != nil {
				log.Printf("bid_accept: could not decline bid %s: %v", c.Id, err)
			}
		}

		return e.JSON(http.StatusOK, map[string]any{
			"id":     bid.Id,
			"status": bid.GetString("status"),
		})
	}
}

package handlers

import (
	"log"
	"net/http"
	"sort"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"github.com/oldcreekhomes/builder-suite-ai-sub001/services"
)

func HandleCostCodeList(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		col, err := app.FindCollectionByNameOrId("cost_codes")
		if err != nil {
			log.Printf("costcode_list: could not find cost_codes collection: %v", err)
			return internalError(e)
		}

		records, err := app.FindRecordsByFilter(col, "id != ''", "", 0, 0, nil)
		if err != nil {
			log.Printf("costcode_list: query failed: %v", err)
			return internalError(e)
		}

		sort.SliceStable(records, func(i, j int) bool {
			ci, cj := records[i].GetString("code"), records[j].GetString("code")
			ki, kj := services.NumericSortKey(ci), services.NumericSortKey(cj)
			if ki != kj {
				return ki < kj
			}
			return ci < cj
		})

		codes := make([]map[string]any, 0, len(records))
		for _, rec := range records {
			codes = append(codes, map[string]any{
				"id":                rec.Id,
				"code":              rec.GetString("code"),
				"name":              rec.GetString("name"),
				"parent_group":      rec.GetString("parent_group"),
				"has_subcategories": rec.GetBool("has_subcategories"),
				"quantity":          rec.GetFloat("quantity"),
				"unit_price":        rec.GetFloat("unit_price"),
				"group":             services.TopLevelGroup(rec.GetString("code")),
			})
		}

		return e.JSON(http.StatusOK, map[string]any{"cost_codes": codes})
	}
}

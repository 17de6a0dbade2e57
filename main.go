package main

import (
	"log"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"github.com/oldcreekhomes/builder-suite-ai-sub001/collections"
	"github.com/oldcreekhomes/builder-suite-ai-sub001/handlers"
)

func main() {
	app := pocketbase.New()

	// Create collections and seed data on startup
	app.OnServe().BindFunc(func(se *core.ServeEvent) error {
		collections.Setup(app)
		if err := collections.Seed(app); err != nil {
			log.Printf("Warning: seed data failed: %v", err)
		}
		if err := collections.MigrateParentGroups(app); err != nil {
			log.Printf("Warning: parent group migration failed: %v", err)
		}
		if err := collections.MigrateDefaultAccountingSettings(app); err != nil {
			log.Printf("Warning: accounting settings migration failed: %v", err)
		}
		return se.Next()
	})

	app.OnServe().BindFunc(func(se *core.ServeEvent) error {
		// ── Projects & lots ──────────────────────────────────────
		se.Router.GET("/api/app/projects", handlers.HandleProjectList(app))
		se.Router.POST("/api/app/projects", handlers.HandleProjectCreate(app)).BindFunc(handlers.RequireAuth())
		se.Router.GET("/api/app/projects/{id}", handlers.HandleProjectView(app))
		se.Router.DELETE("/api/app/projects/{id}", handlers.HandleProjectDelete(app)).BindFunc(handlers.RequireAuth())
		se.Router.GET("/api/app/projects/{projectId}/lots", handlers.HandleLotList(app))
		se.Router.POST("/api/app/projects/{projectId}/lots", handlers.HandleLotCreate(app)).BindFunc(handlers.RequireAuth())

		// ── Accounting settings ──────────────────────────────────
		se.Router.GET("/api/app/options", handlers.HandleOptions())

		se.Router.GET("/api/app/settings/accounting", handlers.HandleSettingsGet(app))
		se.Router.PUT("/api/app/settings/accounting", handlers.HandleSettingsSave(app)).BindFunc(handlers.RequireAuth())

		// ── Cost codes ───────────────────────────────────────────
		se.Router.GET("/api/app/cost-codes", handlers.HandleCostCodeList(app))
		se.Router.POST("/api/app/cost-codes", handlers.HandleCostCodeCreate(app)).BindFunc(handlers.RequireAuth())
		se.Router.POST("/api/app/cost-codes/import/validate", handlers.HandleCostCodeValidate(app)).BindFunc(handlers.RequireAuth())
		se.Router.POST("/api/app/cost-codes/import/commit", handlers.HandleCostCodeCommit(app)).BindFunc(handlers.RequireAuth())

		// ── Budget ───────────────────────────────────────────────
		se.Router.GET("/api/app/projects/{projectId}/budget", handlers.HandleBudgetList(app))
		se.Router.POST("/api/app/projects/{projectId}/budget", handlers.HandleBudgetSave(app)).BindFunc(handlers.RequireAuth())
		se.Router.DELETE("/api/app/projects/{projectId}/budget/{id}", handlers.HandleBudgetDelete(app)).BindFunc(handlers.RequireAuth())
		se.Router.GET("/api/app/projects/{projectId}/budget/lock", handlers.HandleBudgetLockStatus(app))
		se.Router.POST("/api/app/projects/{projectId}/budget/lock", handlers.HandleBudgetLock(app)).BindFunc(handlers.RequireAuth())
		se.Router.DELETE("/api/app/projects/{projectId}/budget/lock", handlers.HandleBudgetUnlock(app)).BindFunc(handlers.RequireAuth())

		// ── Bids ─────────────────────────────────────────────────
		se.Router.GET("/api/app/projects/{projectId}/bids", handlers.HandleBidList(app))
		se.Router.POST("/api/app/projects/{projectId}/bids/{id}/accept", handlers.HandleBidAccept(app)).BindFunc(handlers.RequireAuth())

		// ── Ledger ───────────────────────────────────────────────
		se.Router.POST("/api/app/ledger/entries", handlers.HandleLedgerEntryCreate(app)).BindFunc(handlers.RequireAuth())
		se.Router.POST("/api/app/ledger/entries/{id}/reverse", handlers.HandleLedgerReverse(app)).BindFunc(handlers.RequireAuth())

		// ── Job cost report ──────────────────────────────────────
		se.Router.GET("/api/app/projects/{projectId}/job-cost", handlers.HandleJobCostReport(app))
		se.Router.GET("/api/app/projects/{projectId}/job-cost/detail/{costCodeId}", handlers.HandleJobCostDetail(app))
		se.Router.GET("/api/app/projects/{projectId}/job-cost/export/pdf", handlers.HandleJobCostExportPDF(app))
		se.Router.GET("/api/app/projects/{projectId}/job-cost/export/excel", handlers.HandleJobCostExportExcel(app))

		// ── A/P aging ────────────────────────────────────────────
		se.Router.GET("/api/app/reports/ap-aging", handlers.HandleAPAging(app))
		se.Router.GET("/api/app/reports/ap-aging/export/pdf", handlers.HandleAPAgingExportPDF(app))
		se.Router.GET("/api/app/reports/ap-aging/export/excel", handlers.HandleAPAgingExportExcel(app))

		// ── Vendors ──────────────────────────────────────────────
		se.Router.GET("/api/app/vendors", handlers.HandleVendorList(app))
		se.Router.POST("/api/app/vendors", handlers.HandleVendorCreate(app)).BindFunc(handlers.RequireAuth())

		return se.Next()
	})

	if err := app.Start(); err != nil {
		log.Fatal(err)
	}
}

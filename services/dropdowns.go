package services

// BudgetSourceOptions returns the list of budget item sources.
var BudgetSourceOptions = []string{
	BudgetSourceManual,
	BudgetSourceBid,
	BudgetSourceEstimate,
}

// AccountTypeOptions returns the ledger account types.
var AccountTypeOptions = []string{
	"asset",
	"liability",
	"equity",
	"income",
	"expense",
}

// RoleOptions returns the user roles.
var RoleOptions = []string{
	RoleOwner,
	RoleAccountant,
	RoleViewer,
}

// BidStatusOptions returns the bid statuses.
var BidStatusOptions = []string{"pending", "accepted", "declined"}

// BillStatusOptions returns the A/P bill statuses.
var BillStatusOptions = []string{"open", "paid"}

package domain

import (
	"errors"
	"time"
)

var (
	// ErrNoAccounts indicates that the customer owns no accounts.
	ErrNoAccounts = errors.New("no accounts found for this customer")
	// ErrInvalidAccountReference indicates that the selected RIB does not
	// belong to the customer.
	ErrInvalidAccountReference = errors.New("selected RIB does not match any account")
)

// AccountSummary is the per-account line of the dashboard.
// LastActivityAt is the creation time of the newest ledger entry,
// falling back to the account creation time when no entries exist.
type AccountSummary struct {
	RIB            string    `json:"rib"`
	Balance        string    `json:"balance"`
	LastActivityAt time.Time `json:"last_activity_at"`
}

// DashboardView is a consistent multi-account summary plus one paginated
// transaction feed for the selected account. Totals reflect the full entry
// set of the selected account, not the current page.
type DashboardView struct {
	Accounts        []AccountSummary `json:"accounts"`
	SelectedRIB     string           `json:"selected_rib"`
	SelectedBalance string           `json:"selected_balance"`
	Transactions    []Entry          `json:"transactions"`
	TotalPages      int64            `json:"total_pages"`
	TotalEntries    int64            `json:"total_entries"`
}

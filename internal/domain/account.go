// Package domain provides definitions of all entities.
package domain

import (
	"errors"
	"time"
)

var (
	// ErrAccountNotFound indicates that the account is not found.
	ErrAccountNotFound = errors.New("account not found")
	// ErrRIBAlreadyExists indicates that an account with the given RIB already exists.
	ErrRIBAlreadyExists = errors.New("account RIB already exists")
	// ErrInvalidRIB indicates that the RIB is not 2 letters followed by 22 digits.
	ErrInvalidRIB = errors.New("invalid RIB format")
	// ErrAccountBlocked indicates that the account status is BLOCKED.
	ErrAccountBlocked = errors.New("account is blocked")
	// ErrAccountClosed indicates that the account status is CLOSED.
	ErrAccountClosed = errors.New("account is closed")
	// ErrInvalidStatus indicates an unknown account status value.
	ErrInvalidStatus = errors.New("invalid account status")
	// ErrNegativeBalance indicates an attempt to open an account with a negative balance.
	ErrNegativeBalance = errors.New("balance must not be negative")
)

// Account statuses. Statuses are set by account management and read by the
// transfer engine as gates; only the transfer engine mutates balances.
const (
	StatusOpened  = "OPENED"
	StatusBlocked = "BLOCKED"
	StatusClosed  = "CLOSED"
)

// Account holds balance and status data for one RIB.
type Account struct {
	RIB        string    `json:"rib"`
	Balance    string    `json:"balance"`
	Status     string    `json:"status"`
	CustomerID int64     `json:"customer_id"`
	CreatedAt  time.Time `json:"created_at"`
}

// ValidStatus reports whether s is a known account status.
func ValidStatus(s string) bool {
	return s == StatusOpened || s == StatusBlocked || s == StatusClosed
}

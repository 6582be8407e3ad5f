package domain

import (
	"errors"
	"time"
)

// ErrEntryNotFound indicates that the ledger entry is not found.
var ErrEntryNotFound = errors.New("ledger entry not found")

// Entry directions. A settled transfer always produces one DEBIT on the
// source account and one CREDIT on the destination with the same amount,
// date and acting user.
const (
	DirectionDebit  = "DEBIT"
	DirectionCredit = "CREDIT"
)

// Entry holds one half of a settled transfer. Entries are immutable
// once created and are never deleted.
type Entry struct {
	ID         int64     `json:"id"`
	AccountRIB string    `json:"account_rib"`
	Amount     string    `json:"amount"` // always positive; sign is carried by Direction
	Direction  string    `json:"direction"`
	Username   string    `json:"username"`
	Date       time.Time `json:"date"`
	CreatedAt  time.Time `json:"created_at"`
}

package domain

import "errors"

var (
	// ErrInvalidAmount indicates a malformed or non-positive transfer amount.
	ErrInvalidAmount = errors.New("amount must be a positive number")
	// ErrSelfTransfer indicates that the source and destination RIBs are the same.
	ErrSelfTransfer = errors.New("source and destination accounts must differ")
	// ErrInsufficientFunds indicates that the source account balance is below the requested amount.
	ErrInsufficientFunds = errors.New("insufficient funds")
)

// CreateTransferParams is the input data for the transfer settlement.
type CreateTransferParams struct {
	SourceRIB      string `json:"source_rib"`
	DestinationRIB string `json:"destination_rib"`
	Amount         string `json:"amount"` // must be positive
}

// TransferTxResult is the result of the settlement transaction.
// Either all four effects it reflects were committed or none were.
type TransferTxResult struct {
	SourceAccount      Account `json:"source_account"`
	DestinationAccount Account `json:"destination_account"`
	DebitEntry         Entry   `json:"debit_entry"`
	CreditEntry        Entry   `json:"credit_entry"`
}

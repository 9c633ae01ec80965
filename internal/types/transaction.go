package types

import (
	"fmt"

	"github.com/samber/lo"
)

// TransactionStatus represents the status of a recorded blockchain transaction
type TransactionStatus string

const (
	TransactionStatusPending   TransactionStatus = "pending"
	TransactionStatusConfirmed TransactionStatus = "confirmed"
	TransactionStatusFailed    TransactionStatus = "failed"
)

func (s TransactionStatus) String() string {
	return string(s)
}

func (s TransactionStatus) Validate() error {
	if !lo.Contains(TransactionStatuses(), s) {
		return fmt.Errorf("invalid transaction status: %s", s)
	}
	return nil
}

// TransactionStatuses returns the closed set of transaction statuses
func TransactionStatuses() []TransactionStatus {
	return []TransactionStatus{
		TransactionStatusPending,
		TransactionStatusConfirmed,
		TransactionStatusFailed,
	}
}

// DefaultTokenType is used when an invoice does not specify a payment token
const DefaultTokenType = "ETH"

// TransactionFilter represents the filter for listing transactions
type TransactionFilter struct {
	UserID    string              `form:"-"`
	Status    []TransactionStatus `form:"status"`
	InvoiceID *string             `form:"invoice_id"`
}

func (f *TransactionFilter) Validate() error {
	if f == nil {
		return nil
	}
	for _, s := range f.Status {
		if err := s.Validate(); err != nil {
			return err
		}
	}
	return nil
}

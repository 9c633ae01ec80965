package types

import (
	"fmt"
	"strings"

	"github.com/samber/lo"
)

// InvoiceStatus represents the current state of an invoice in its lifecycle.
// Values are lower-case and case-sensitive on the wire.
type InvoiceStatus string

const (
	// InvoiceStatusDraft indicates invoice was explicitly created as a draft
	InvoiceStatusDraft InvoiceStatus = "draft"
	// InvoiceStatusPending indicates invoice is issued and awaiting payment
	InvoiceStatusPending InvoiceStatus = "pending"
	// InvoiceStatusPaid indicates invoice has been paid
	InvoiceStatusPaid InvoiceStatus = "paid"
	// InvoiceStatusOverdue indicates invoice is unpaid past its due date
	InvoiceStatusOverdue InvoiceStatus = "overdue"
	// InvoiceStatusCancelled indicates invoice has been cancelled
	InvoiceStatusCancelled InvoiceStatus = "cancelled"
)

func (s InvoiceStatus) String() string {
	return string(s)
}

func (s InvoiceStatus) Validate() error {
	if !lo.Contains(InvoiceStatuses(), s) {
		return fmt.Errorf("invalid invoice status: %s", s)
	}
	return nil
}

// DisplayLabel returns the capitalised label used by charts
func (s InvoiceStatus) DisplayLabel() string {
	if s == "" {
		return ""
	}
	return strings.ToUpper(string(s[:1])) + string(s[1:])
}

// InvoiceStatuses returns the closed set of invoice statuses in display order
func InvoiceStatuses() []InvoiceStatus {
	return []InvoiceStatus{
		InvoiceStatusDraft,
		InvoiceStatusPending,
		InvoiceStatusPaid,
		InvoiceStatusOverdue,
		InvoiceStatusCancelled,
	}
}

// InvoiceFilter represents the filter for listing invoices
type InvoiceFilter struct {
	UserID string          `form:"-"`
	Status []InvoiceStatus `form:"status"`
}

func (f *InvoiceFilter) Validate() error {
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

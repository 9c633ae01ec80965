package dto

import (
	"time"

	"github.com/chainvoice/chainvoice/internal/types"
	"github.com/shopspring/decimal"
)

// InvoiceStatusStats is the per-status slice of the invoice stats
type InvoiceStatusStats struct {
	Status types.InvoiceStatus `json:"status"`
	Count  int64               `json:"count"`
	Amount decimal.Decimal     `json:"amount"`
}

// InvoiceStatsResponse aggregates invoice counts and amounts
type InvoiceStatsResponse struct {
	TotalCount  int64                `json:"total_count"`
	TotalAmount decimal.Decimal      `json:"total_amount"`
	ByStatus    []InvoiceStatusStats `json:"by_status"`
}

// TransactionStatusStats is the per-status slice of the transaction stats
type TransactionStatusStats struct {
	Status types.TransactionStatus `json:"status"`
	Count  int64                   `json:"count"`
	Amount decimal.Decimal         `json:"amount"`
}

// TransactionStatsResponse aggregates transaction counts and amounts
type TransactionStatsResponse struct {
	TotalCount  int64                    `json:"total_count"`
	TotalAmount decimal.Decimal          `json:"total_amount"`
	ByStatus    []TransactionStatusStats `json:"by_status"`
}

// StatusDistributionEntry is one invoice status with its display label and
// count. Every status appears, including zero counts.
type StatusDistributionEntry struct {
	Status types.InvoiceStatus `json:"status"`
	Label  string              `json:"label"`
	Count  int64               `json:"count"`
}

// NetworkDistributionEntry is one blockchain network with its transaction
// volume, sorted by count descending in the response.
type NetworkDistributionEntry struct {
	NetworkID   int64           `json:"network_id"`
	NetworkName string          `json:"network_name"`
	Count       int64           `json:"count"`
	Amount      decimal.Decimal `json:"amount"`
}

// MonthlyRevenuePoint is one month of settled revenue, labelled "Jan 2006".
// Count is the number of invoices paid in that month.
type MonthlyRevenuePoint struct {
	Month   string          `json:"month"`
	Revenue decimal.Decimal `json:"revenue"`
	Count   int64           `json:"count"`
}

// TopClientEntry is one client ranked by settled revenue
type TopClientEntry struct {
	ClientName      string          `json:"client_name"`
	ClientEmail     string          `json:"client_email"`
	TotalRevenue    decimal.Decimal `json:"total_revenue"`
	InvoiceCount    int64           `json:"invoice_count"`
	LastInvoiceDate time.Time       `json:"last_invoice_date"`
}

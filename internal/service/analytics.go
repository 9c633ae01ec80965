package service

import (
	"context"
	"sort"
	"time"

	"github.com/chainvoice/chainvoice/internal/api/dto"
	ierr "github.com/chainvoice/chainvoice/internal/errors"
	"github.com/chainvoice/chainvoice/internal/types"
	"github.com/shopspring/decimal"
)

// AnalyticsService aggregates invoices and transactions for the dashboard.
// All operations are pure reads; a store failure fails the whole read, no
// partial results are returned.
type AnalyticsService interface {
	GetInvoiceStats(ctx context.Context) (*dto.InvoiceStatsResponse, error)
	GetTransactionStats(ctx context.Context) (*dto.TransactionStatsResponse, error)
	GetPaymentStatusDistribution(ctx context.Context) ([]dto.StatusDistributionEntry, error)
	GetNetworkDistribution(ctx context.Context) ([]dto.NetworkDistributionEntry, error)
	GetMonthlyRevenue(ctx context.Context, monthsBack int) ([]dto.MonthlyRevenuePoint, error)
	GetTopClients(ctx context.Context, limit int) ([]dto.TopClientEntry, error)
}

type analyticsService struct {
	ServiceParams
}

// NewAnalyticsService creates a new analytics service
func NewAnalyticsService(params ServiceParams) AnalyticsService {
	return &analyticsService{
		ServiceParams: params,
	}
}

func (s *analyticsService) GetInvoiceStats(ctx context.Context) (*dto.InvoiceStatsResponse, error) {
	invoices, err := s.InvoiceRepo.List(ctx, &types.InvoiceFilter{UserID: types.GetUserID(ctx)})
	if err != nil {
		return nil, ierr.WithError(err).
			WithHint("Failed to load invoice stats").
			Mark(ierr.ErrDatabase)
	}

	counts := make(map[types.InvoiceStatus]int64)
	amounts := make(map[types.InvoiceStatus]decimal.Decimal)
	totalAmount := decimal.Zero
	for _, inv := range invoices {
		counts[inv.Status]++
		amounts[inv.Status] = amounts[inv.Status].Add(inv.TotalAmount)
		totalAmount = totalAmount.Add(inv.TotalAmount)
	}

	resp := &dto.InvoiceStatsResponse{
		TotalCount:  int64(len(invoices)),
		TotalAmount: totalAmount,
	}
	for _, status := range types.InvoiceStatuses() {
		amount := amounts[status]
		if counts[status] == 0 {
			amount = decimal.Zero
		}
		resp.ByStatus = append(resp.ByStatus, dto.InvoiceStatusStats{
			Status: status,
			Count:  counts[status],
			Amount: amount,
		})
	}
	return resp, nil
}

func (s *analyticsService) GetTransactionStats(ctx context.Context) (*dto.TransactionStatsResponse, error) {
	txns, err := s.TransactionRepo.List(ctx, &types.TransactionFilter{UserID: types.GetUserID(ctx)})
	if err != nil {
		return nil, ierr.WithError(err).
			WithHint("Failed to load transaction stats").
			Mark(ierr.ErrDatabase)
	}

	counts := make(map[types.TransactionStatus]int64)
	amounts := make(map[types.TransactionStatus]decimal.Decimal)
	totalAmount := decimal.Zero
	for _, txn := range txns {
		counts[txn.Status]++
		amounts[txn.Status] = amounts[txn.Status].Add(txn.Amount)
		totalAmount = totalAmount.Add(txn.Amount)
	}

	resp := &dto.TransactionStatsResponse{
		TotalCount:  int64(len(txns)),
		TotalAmount: totalAmount,
	}
	for _, status := range types.TransactionStatuses() {
		amount := amounts[status]
		if counts[status] == 0 {
			amount = decimal.Zero
		}
		resp.ByStatus = append(resp.ByStatus, dto.TransactionStatusStats{
			Status: status,
			Count:  counts[status],
			Amount: amount,
		})
	}
	return resp, nil
}

// GetPaymentStatusDistribution returns one entry per invoice status in
// display order, keeping zero counts so charts always show every slice.
func (s *analyticsService) GetPaymentStatusDistribution(ctx context.Context) ([]dto.StatusDistributionEntry, error) {
	invoices, err := s.InvoiceRepo.List(ctx, &types.InvoiceFilter{UserID: types.GetUserID(ctx)})
	if err != nil {
		return nil, ierr.WithError(err).
			WithHint("Failed to load payment status distribution").
			Mark(ierr.ErrDatabase)
	}

	counts := make(map[types.InvoiceStatus]int64)
	for _, inv := range invoices {
		counts[inv.Status]++
	}

	entries := make([]dto.StatusDistributionEntry, 0, len(types.InvoiceStatuses()))
	for _, status := range types.InvoiceStatuses() {
		entries = append(entries, dto.StatusDistributionEntry{
			Status: status,
			Label:  status.DisplayLabel(),
			Count:  counts[status],
		})
	}
	return entries, nil
}

// GetNetworkDistribution groups transactions by network, resolving chain
// names from the static table. Sorted by count descending.
func (s *analyticsService) GetNetworkDistribution(ctx context.Context) ([]dto.NetworkDistributionEntry, error) {
	txns, err := s.TransactionRepo.List(ctx, &types.TransactionFilter{UserID: types.GetUserID(ctx)})
	if err != nil {
		return nil, ierr.WithError(err).
			WithHint("Failed to load network distribution").
			Mark(ierr.ErrDatabase)
	}

	byNetwork := make(map[int64]*dto.NetworkDistributionEntry)
	for _, txn := range txns {
		entry, ok := byNetwork[txn.NetworkID]
		if !ok {
			entry = &dto.NetworkDistributionEntry{
				NetworkID:   txn.NetworkID,
				NetworkName: types.GetChainName(txn.NetworkID),
				Amount:      decimal.Zero,
			}
			byNetwork[txn.NetworkID] = entry
		}
		entry.Count++
		entry.Amount = entry.Amount.Add(txn.Amount)
	}

	entries := make([]dto.NetworkDistributionEntry, 0, len(byNetwork))
	for _, entry := range byNetwork {
		entries = append(entries, *entry)
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Count != entries[j].Count {
			return entries[i].Count > entries[j].Count
		}
		return entries[i].NetworkID < entries[j].NetworkID
	})
	return entries, nil
}

// GetMonthlyRevenue returns a dense series of the last monthsBack months,
// oldest first and inclusive of the current month. Paid invoices are
// bucketed by the month they were paid in, each point carries the summed
// revenue and the paid-invoice count; empty months report zero.
func (s *analyticsService) GetMonthlyRevenue(ctx context.Context, monthsBack int) ([]dto.MonthlyRevenuePoint, error) {
	if monthsBack < 1 {
		return nil, ierr.NewError("invalid months parameter").
			WithHint("Months must be at least 1").
			Mark(ierr.ErrValidation)
	}

	invoices, err := s.InvoiceRepo.List(ctx, &types.InvoiceFilter{
		UserID: types.GetUserID(ctx),
		Status: []types.InvoiceStatus{types.InvoiceStatusPaid},
	})
	if err != nil {
		return nil, ierr.WithError(err).
			WithHint("Failed to load monthly revenue").
			Mark(ierr.ErrDatabase)
	}

	revenue := make(map[string]decimal.Decimal)
	counts := make(map[string]int64)
	for _, inv := range invoices {
		if inv.PaidAt == nil {
			continue
		}
		label := inv.PaidAt.Format("Jan 2006")
		revenue[label] = revenue[label].Add(inv.TotalAmount)
		counts[label]++
	}

	now := time.Now().UTC()
	current := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	points := make([]dto.MonthlyRevenuePoint, 0, monthsBack)
	for i := monthsBack - 1; i >= 0; i-- {
		label := current.AddDate(0, -i, 0).Format("Jan 2006")
		amount := revenue[label]
		if amount.IsZero() {
			amount = decimal.Zero
		}
		points = append(points, dto.MonthlyRevenuePoint{
			Month:   label,
			Revenue: amount,
			Count:   counts[label],
		})
	}
	return points, nil
}

// GetTopClients ranks clients by settled revenue. Clients with no paid
// invoices never appear.
func (s *analyticsService) GetTopClients(ctx context.Context, limit int) ([]dto.TopClientEntry, error) {
	if limit < 1 {
		return nil, ierr.NewError("invalid limit parameter").
			WithHint("Limit must be at least 1").
			Mark(ierr.ErrValidation)
	}

	invoices, err := s.InvoiceRepo.List(ctx, &types.InvoiceFilter{
		UserID: types.GetUserID(ctx),
		Status: []types.InvoiceStatus{types.InvoiceStatusPaid},
	})
	if err != nil {
		return nil, ierr.WithError(err).
			WithHint("Failed to load top clients").
			Mark(ierr.ErrDatabase)
	}

	type clientKey struct {
		name  string
		email string
	}
	byClient := make(map[clientKey]*dto.TopClientEntry)
	for _, inv := range invoices {
		key := clientKey{name: inv.ClientName, email: inv.ClientEmail}
		entry, ok := byClient[key]
		if !ok {
			entry = &dto.TopClientEntry{
				ClientName:   inv.ClientName,
				ClientEmail:  inv.ClientEmail,
				TotalRevenue: decimal.Zero,
			}
			byClient[key] = entry
		}
		entry.TotalRevenue = entry.TotalRevenue.Add(inv.TotalAmount)
		entry.InvoiceCount++
		if inv.CreatedAt.After(entry.LastInvoiceDate) {
			entry.LastInvoiceDate = inv.CreatedAt
		}
	}

	entries := make([]dto.TopClientEntry, 0, len(byClient))
	for _, entry := range byClient {
		entries = append(entries, *entry)
	}
	sort.Slice(entries, func(i, j int) bool {
		if !entries[i].TotalRevenue.Equal(entries[j].TotalRevenue) {
			return entries[i].TotalRevenue.GreaterThan(entries[j].TotalRevenue)
		}
		return entries[i].ClientName < entries[j].ClientName
	})

	if len(entries) > limit {
		entries = entries[:limit]
	}
	return entries, nil
}

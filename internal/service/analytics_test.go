package service

import (
	"testing"
	"time"

	"github.com/chainvoice/chainvoice/internal/ai"
	"github.com/chainvoice/chainvoice/internal/domain/invoice"
	"github.com/chainvoice/chainvoice/internal/domain/transaction"
	ierr "github.com/chainvoice/chainvoice/internal/errors"
	"github.com/chainvoice/chainvoice/internal/testutil"
	"github.com/chainvoice/chainvoice/internal/types"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

type AnalyticsServiceSuite struct {
	testutil.BaseServiceTestSuite
	service AnalyticsService
}

func TestAnalyticsService(t *testing.T) {
	suite.Run(t, new(AnalyticsServiceSuite))
}

func (s *AnalyticsServiceSuite) SetupTest() {
	s.BaseServiceTestSuite.SetupTest()
	s.service = NewAnalyticsService(ServiceParams{
		Logger:          s.GetLogger(),
		Config:          s.GetConfig(),
		Cache:           s.GetCache(),
		InvoiceRepo:     s.GetStores().InvoiceRepo,
		TransactionRepo: s.GetStores().TransactionRepo,
		PDFGenerator:    s.GetPDFGenerator(),
		Telegram:        s.GetTelegram(),
		Email:           s.GetEmail(),
		AI:              ai.NewGenerator(s.GetConfig(), s.GetLogger()),
	})
}

func (s *AnalyticsServiceSuite) storeInvoice(clientName, clientEmail string, amount int64, status types.InvoiceStatus, paidAt *time.Time, createdAt time.Time) *invoice.Invoice {
	inv := &invoice.Invoice{
		ID:          types.GenerateUUIDWithPrefix(types.UUID_PREFIX_INVOICE),
		Number:      invoice.GenerateNumber(createdAt),
		ClientName:  clientName,
		ClientEmail: clientEmail,
		Items: invoice.Items{
			{
				ID:          types.GenerateUUIDWithPrefix(types.UUID_PREFIX_INVOICE_ITEM),
				Description: "Work",
				Quantity:    1,
				UnitPrice:   decimal.NewFromInt(amount),
				Amount:      decimal.NewFromInt(amount),
			},
		},
		DueDate:     createdAt.AddDate(0, 0, 30),
		Status:      status,
		TotalAmount: decimal.NewFromInt(amount),
		PaidAt:      paidAt,
		UserID:      types.DefaultUserID,
		CreatedAt:   createdAt,
		UpdatedAt:   createdAt,
	}
	s.Require().NoError(s.GetStores().InvoiceRepo.Create(s.GetContext(), inv))
	return inv
}

func (s *AnalyticsServiceSuite) storeTransaction(amount int64, status types.TransactionStatus, networkID int64) {
	txn := &transaction.Transaction{
		ID:          types.GenerateUUIDWithPrefix(types.UUID_PREFIX_TRANSACTION),
		Amount:      decimal.NewFromInt(amount),
		TokenType:   types.DefaultTokenType,
		FromAddress: "0x1111567890abcdef1234567890abcdef12345678",
		ToAddress:   "0x2222567890abcdef1234567890abcdef12345678",
		Hash:        types.GenerateUUID(),
		Status:      status,
		NetworkID:   networkID,
		UserID:      types.DefaultUserID,
		CreatedAt:   s.GetNow(),
		UpdatedAt:   s.GetNow(),
	}
	s.Require().NoError(s.GetStores().TransactionRepo.Create(s.GetContext(), txn))
}

func (s *AnalyticsServiceSuite) TestGetInvoiceStats() {
	now := s.GetNow()
	s.storeInvoice("Acme", "a@acme.test", 100, types.InvoiceStatusPending, nil, now)
	s.storeInvoice("Acme", "a@acme.test", 200, types.InvoiceStatusPaid, &now, now)
	s.storeInvoice("Beta", "b@beta.test", 300, types.InvoiceStatusPaid, &now, now)

	stats, err := s.service.GetInvoiceStats(s.GetContext())
	s.NoError(err)
	s.Equal(int64(3), stats.TotalCount)
	s.True(stats.TotalAmount.Equal(decimal.NewFromInt(600)))

	// One entry per status, in display order
	s.Len(stats.ByStatus, len(types.InvoiceStatuses()))
	for _, entry := range stats.ByStatus {
		switch entry.Status {
		case types.InvoiceStatusPending:
			s.Equal(int64(1), entry.Count)
			s.True(entry.Amount.Equal(decimal.NewFromInt(100)))
		case types.InvoiceStatusPaid:
			s.Equal(int64(2), entry.Count)
			s.True(entry.Amount.Equal(decimal.NewFromInt(500)))
		default:
			s.Equal(int64(0), entry.Count)
			s.True(entry.Amount.IsZero())
		}
	}
}

func (s *AnalyticsServiceSuite) TestGetTransactionStats() {
	s.storeTransaction(10, types.TransactionStatusConfirmed, 1)
	s.storeTransaction(20, types.TransactionStatusConfirmed, 137)
	s.storeTransaction(5, types.TransactionStatusFailed, 1)

	stats, err := s.service.GetTransactionStats(s.GetContext())
	s.NoError(err)
	s.Equal(int64(3), stats.TotalCount)
	s.True(stats.TotalAmount.Equal(decimal.NewFromInt(35)))

	for _, entry := range stats.ByStatus {
		switch entry.Status {
		case types.TransactionStatusConfirmed:
			s.Equal(int64(2), entry.Count)
			s.True(entry.Amount.Equal(decimal.NewFromInt(30)))
		case types.TransactionStatusFailed:
			s.Equal(int64(1), entry.Count)
		case types.TransactionStatusPending:
			s.Equal(int64(0), entry.Count)
		}
	}
}

func (s *AnalyticsServiceSuite) TestGetPaymentStatusDistribution() {
	now := s.GetNow()
	s.storeInvoice("Acme", "a@acme.test", 100, types.InvoiceStatusPaid, &now, now)

	entries, err := s.service.GetPaymentStatusDistribution(s.GetContext())
	s.NoError(err)

	// Zero-count statuses are retained for the chart
	s.Len(entries, len(types.InvoiceStatuses()))
	labels := map[types.InvoiceStatus]string{}
	for _, entry := range entries {
		labels[entry.Status] = entry.Label
		if entry.Status == types.InvoiceStatusPaid {
			s.Equal(int64(1), entry.Count)
		} else {
			s.Equal(int64(0), entry.Count)
		}
	}
	s.Equal("Paid", labels[types.InvoiceStatusPaid])
	s.Equal("Draft", labels[types.InvoiceStatusDraft])
}

func (s *AnalyticsServiceSuite) TestGetNetworkDistribution() {
	s.storeTransaction(10, types.TransactionStatusConfirmed, 137)
	s.storeTransaction(20, types.TransactionStatusConfirmed, 137)
	s.storeTransaction(30, types.TransactionStatusConfirmed, 1)
	s.storeTransaction(40, types.TransactionStatusConfirmed, 999999)

	entries, err := s.service.GetNetworkDistribution(s.GetContext())
	s.NoError(err)
	s.Require().Len(entries, 3)

	// Sorted by count descending
	s.Equal(int64(137), entries[0].NetworkID)
	s.Equal("Polygon", entries[0].NetworkName)
	s.Equal(int64(2), entries[0].Count)
	s.True(entries[0].Amount.Equal(decimal.NewFromInt(30)))

	names := map[int64]string{}
	for _, entry := range entries {
		names[entry.NetworkID] = entry.NetworkName
	}
	s.Equal("Ethereum", names[1])
	s.Equal("Unknown Chain", names[999999])
}

func (s *AnalyticsServiceSuite) TestGetMonthlyRevenue() {
	now := s.GetNow()
	firstOfMonth := time.Date(now.Year(), now.Month(), 1, 12, 0, 0, 0, time.UTC)
	lastMonth := firstOfMonth.AddDate(0, -1, 0)
	s.storeInvoice("Acme", "a@acme.test", 100, types.InvoiceStatusPaid, &now, now)
	s.storeInvoice("Acme", "a@acme.test", 50, types.InvoiceStatusPaid, &now, now)
	s.storeInvoice("Beta", "b@beta.test", 70, types.InvoiceStatusPaid, &lastMonth, lastMonth)
	s.storeInvoice("Gamma", "g@gamma.test", 999, types.InvoiceStatusPending, nil, now)

	points, err := s.service.GetMonthlyRevenue(s.GetContext(), 3)
	s.NoError(err)
	s.Require().Len(points, 3)

	// Dense series, oldest first, current month last
	s.Equal(now.UTC().Format("Jan 2006"), points[2].Month)
	s.True(points[2].Revenue.Equal(decimal.NewFromInt(150)))
	s.Equal(int64(2), points[2].Count)
	s.Equal(lastMonth.UTC().Format("Jan 2006"), points[1].Month)
	s.True(points[1].Revenue.Equal(decimal.NewFromInt(70)))
	s.Equal(int64(1), points[1].Count)
	s.True(points[0].Revenue.IsZero())
	s.Equal(int64(0), points[0].Count)
}

func (s *AnalyticsServiceSuite) TestGetMonthlyRevenueValidatesMonths() {
	_, err := s.service.GetMonthlyRevenue(s.GetContext(), 0)
	s.Error(err)
	s.True(ierr.IsValidation(err))
}

func (s *AnalyticsServiceSuite) TestGetTopClients() {
	now := s.GetNow()
	earlier := now.AddDate(0, 0, -10)
	s.storeInvoice("Acme", "a@acme.test", 100, types.InvoiceStatusPaid, &now, earlier)
	s.storeInvoice("Acme", "a@acme.test", 200, types.InvoiceStatusPaid, &now, now)
	s.storeInvoice("Beta", "b@beta.test", 500, types.InvoiceStatusPaid, &now, now)
	s.storeInvoice("Gamma", "g@gamma.test", 50, types.InvoiceStatusPaid, &now, now)
	// Unpaid clients never rank
	s.storeInvoice("Delta", "d@delta.test", 9999, types.InvoiceStatusPending, nil, now)

	entries, err := s.service.GetTopClients(s.GetContext(), 2)
	s.NoError(err)
	s.Require().Len(entries, 2)

	s.Equal("Beta", entries[0].ClientName)
	s.True(entries[0].TotalRevenue.Equal(decimal.NewFromInt(500)))

	s.Equal("Acme", entries[1].ClientName)
	s.True(entries[1].TotalRevenue.Equal(decimal.NewFromInt(300)))
	s.Equal(int64(2), entries[1].InvoiceCount)
	s.True(entries[1].LastInvoiceDate.Equal(now))
}

func (s *AnalyticsServiceSuite) TestGetTopClientsBreaksRevenueTiesByName() {
	now := s.GetNow()
	s.storeInvoice("Zeta", "z@zeta.test", 100, types.InvoiceStatusPaid, &now, now)
	s.storeInvoice("Alpha", "a@alpha.test", 100, types.InvoiceStatusPaid, &now, now)
	s.storeInvoice("Mid", "m@mid.test", 100, types.InvoiceStatusPaid, &now, now)

	entries, err := s.service.GetTopClients(s.GetContext(), 3)
	s.NoError(err)
	s.Require().Len(entries, 3)

	s.Equal("Alpha", entries[0].ClientName)
	s.Equal("Mid", entries[1].ClientName)
	s.Equal("Zeta", entries[2].ClientName)
}

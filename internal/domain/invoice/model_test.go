package invoice

import (
	"testing"
	"time"

	ierr "github.com/chainvoice/chainvoice/internal/errors"
	"github.com/chainvoice/chainvoice/internal/types"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func validInvoice() *Invoice {
	return &Invoice{
		ID:          "inv_test",
		Number:      "INV-123456-001",
		ClientName:  "Acme Corp",
		ClientEmail: "billing@acme.test",
		Items: Items{
			{
				ID:          "item_1",
				Description: "Work",
				Quantity:    2,
				UnitPrice:   decimal.NewFromInt(50),
				Amount:      decimal.NewFromInt(100),
			},
		},
		DueDate:     time.Now().AddDate(0, 0, 30),
		Status:      types.InvoiceStatusPending,
		TotalAmount: decimal.NewFromInt(100),
		UserID:      types.DefaultUserID,
	}
}

func TestInvoiceValidate(t *testing.T) {
	assert.NoError(t, validInvoice().Validate())

	inv := validInvoice()
	inv.ClientName = ""
	assert.True(t, ierr.IsValidation(inv.Validate()))

	inv = validInvoice()
	inv.ClientEmail = "nope"
	assert.True(t, ierr.IsValidation(inv.Validate()))

	inv = validInvoice()
	inv.Items = nil
	assert.True(t, ierr.IsValidation(inv.Validate()))

	inv = validInvoice()
	inv.Items[0].Quantity = 0
	assert.True(t, ierr.IsValidation(inv.Validate()))

	inv = validInvoice()
	inv.DueDate = time.Time{}
	assert.True(t, ierr.IsValidation(inv.Validate()))

	inv = validInvoice()
	inv.Status = "bogus"
	assert.True(t, ierr.IsValidation(inv.Validate()))
}

func TestTotalOf(t *testing.T) {
	items := []Item{
		{Amount: decimal.NewFromInt(100)},
		{Amount: decimal.NewFromFloat(0.5)},
	}
	assert.True(t, TotalOf(items).Equal(decimal.NewFromFloat(100.5)))
	assert.True(t, TotalOf(nil).IsZero())
}

func TestIsOverdue(t *testing.T) {
	now := time.Now().UTC()

	inv := validInvoice()
	inv.DueDate = now.AddDate(0, 0, -1)
	assert.True(t, inv.IsOverdue(now))

	inv.DueDate = now.AddDate(0, 0, 1)
	assert.False(t, inv.IsOverdue(now))

	// Only pending invoices go overdue
	inv.DueDate = now.AddDate(0, 0, -1)
	inv.Status = types.InvoiceStatusPaid
	assert.False(t, inv.IsOverdue(now))
}

func TestItemsRoundTrip(t *testing.T) {
	items := Items{
		{
			ID:          "item_1",
			Description: "Work",
			Quantity:    1,
			UnitPrice:   decimal.NewFromInt(50),
			Amount:      decimal.NewFromInt(50),
		},
	}

	value, err := items.Value()
	assert.NoError(t, err)

	var scanned Items
	assert.NoError(t, scanned.Scan(value))
	assert.Len(t, scanned, 1)
	assert.Equal(t, "Work", scanned[0].Description)
	assert.True(t, scanned[0].Amount.Equal(decimal.NewFromInt(50)))
}

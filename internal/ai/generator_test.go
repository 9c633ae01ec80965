package ai

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/chainvoice/chainvoice/internal/config"
	"github.com/chainvoice/chainvoice/internal/logger"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestGenerator(t *testing.T) Generator {
	cfg := config.GetDefaultConfig()
	log, err := logger.NewLogger(cfg)
	require.NoError(t, err)
	return NewGenerator(cfg, log)
}

func TestGenerateInvoiceFallbackWhenUnconfigured(t *testing.T) {
	generator := newTestGenerator(t)

	draft := generator.GenerateInvoice(context.Background(), "invoice Bob for consulting")
	require.NotNil(t, draft)
	require.Len(t, draft.Items, 1)
	assert.Equal(t, int64(1), draft.Items[0].Quantity)
	assert.True(t, draft.Items[0].UnitPrice.Equal(decimal.NewFromInt(100)))
	assert.True(t, draft.Items[0].Amount.Equal(decimal.NewFromInt(100)))
	assert.NotEmpty(t, draft.Items[0].ID)
}

func TestDraftArgumentsToDraft(t *testing.T) {
	raw := `{
		"clientName": "Acme Corp",
		"clientEmail": "billing@acme.test",
		"items": [
			{"description": "Design work", "quantity": 2, "unitPrice": 150, "amount": 300}
		],
		"dueDate": "2025-06-15"
	}`

	var args draftArguments
	require.NoError(t, json.Unmarshal([]byte(raw), &args))

	draft, err := args.toDraft()
	require.NoError(t, err)
	assert.Equal(t, "Acme Corp", draft.ClientName)
	require.Len(t, draft.Items, 1)
	assert.Equal(t, int64(2), draft.Items[0].Quantity)
	assert.True(t, draft.Items[0].Amount.Equal(decimal.NewFromInt(300)))
	assert.Equal(t, 2025, draft.DueDate.Year())
}

func TestDraftArgumentsRejectBadDueDate(t *testing.T) {
	args := draftArguments{DueDate: "soon"}
	_, err := args.toDraft()
	assert.Error(t, err)
}

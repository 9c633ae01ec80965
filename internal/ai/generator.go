package ai

import (
	"context"
	"encoding/json"
	"time"

	"github.com/chainvoice/chainvoice/internal/config"
	"github.com/chainvoice/chainvoice/internal/domain/invoice"
	"github.com/chainvoice/chainvoice/internal/logger"
	"github.com/chainvoice/chainvoice/internal/types"
	"github.com/sashabaranov/go-openai"
	"github.com/shopspring/decimal"
)

// DraftInvoice is the structured draft produced from a free-text prompt.
// It is a suggestion for the invoice form, not a persisted invoice.
type DraftInvoice struct {
	ClientName    string         `json:"client_name"`
	ClientEmail   string         `json:"client_email"`
	ClientAddress string         `json:"client_address,omitempty"`
	Items         []invoice.Item `json:"items"`
	Notes         string         `json:"notes,omitempty"`
	Terms         string         `json:"terms,omitempty"`
	DueDate       time.Time      `json:"due_date"`
}

// Generator turns a free-text prompt into a DraftInvoice
type Generator interface {
	GenerateInvoice(ctx context.Context, prompt string) *DraftInvoice
}

type generator struct {
	client *openai.Client
	model  string
	log    *logger.Logger
}

// NewGenerator creates an OpenAI backed draft generator. When no API key is
// configured the generator always returns the fallback draft.
func NewGenerator(cfg *config.Configuration, log *logger.Logger) Generator {
	g := &generator{
		model: cfg.AI.Model,
		log:   log,
	}
	if g.model == "" {
		g.model = openai.GPT4oMini
	}
	if cfg.AI.Enabled && cfg.AI.APIKey != "" {
		g.client = openai.NewClient(cfg.AI.APIKey)
	}
	return g
}

// draftArguments mirrors the generate_invoice function schema
type draftArguments struct {
	ClientName    string `json:"clientName"`
	ClientEmail   string `json:"clientEmail"`
	ClientAddress string `json:"clientAddress,omitempty"`
	Items         []struct {
		Description string  `json:"description"`
		Quantity    int64   `json:"quantity"`
		UnitPrice   float64 `json:"unitPrice"`
		Amount      float64 `json:"amount"`
	} `json:"items"`
	Notes   string `json:"notes,omitempty"`
	Terms   string `json:"terms,omitempty"`
	DueDate string `json:"dueDate"`
}

const draftSchema = `{
	"type": "object",
	"properties": {
		"clientName": {"type": "string"},
		"clientEmail": {"type": "string"},
		"clientAddress": {"type": "string"},
		"items": {
			"type": "array",
			"items": {
				"type": "object",
				"properties": {
					"description": {"type": "string"},
					"quantity": {"type": "number"},
					"unitPrice": {"type": "number"},
					"amount": {"type": "number"}
				},
				"required": ["description", "quantity", "unitPrice", "amount"]
			}
		},
		"notes": {"type": "string"},
		"terms": {"type": "string"},
		"dueDate": {"type": "string", "description": "ISO date, e.g. 2025-05-10"}
	},
	"required": ["clientName", "clientEmail", "items", "dueDate"]
}`

// GenerateInvoice never fails: any error along the way yields a
// deterministic placeholder draft instead.
func (g *generator) GenerateInvoice(ctx context.Context, prompt string) *DraftInvoice {
	if g.client == nil {
		g.log.Warnw("ai generation not configured, returning fallback draft")
		return fallbackDraft()
	}

	resp, err := g.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: g.model,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleSystem,
				Content: "You draft invoices. Call generate_invoice with the details extracted from the user's request.",
			},
			{
				Role:    openai.ChatMessageRoleUser,
				Content: prompt,
			},
		},
		Tools: []openai.Tool{
			{
				Type: openai.ToolTypeFunction,
				Function: &openai.FunctionDefinition{
					Name:        "generate_invoice",
					Description: "Generates a detailed invoice in JSON format",
					Parameters:  json.RawMessage(draftSchema),
				},
			},
		},
		ToolChoice: openai.ToolChoice{
			Type:     openai.ToolTypeFunction,
			Function: openai.ToolFunction{Name: "generate_invoice"},
		},
	})
	if err != nil {
		g.log.Errorw("ai invoice generation failed, returning fallback draft", "error", err)
		return fallbackDraft()
	}

	if len(resp.Choices) == 0 || len(resp.Choices[0].Message.ToolCalls) == 0 {
		g.log.Warnw("ai response contained no function call, returning fallback draft")
		return fallbackDraft()
	}

	var args draftArguments
	if err := json.Unmarshal([]byte(resp.Choices[0].Message.ToolCalls[0].Function.Arguments), &args); err != nil {
		g.log.Errorw("failed to parse ai function arguments, returning fallback draft", "error", err)
		return fallbackDraft()
	}

	draft, err := args.toDraft()
	if err != nil {
		g.log.Errorw("ai draft failed validation, returning fallback draft", "error", err)
		return fallbackDraft()
	}
	return draft
}

func (a *draftArguments) toDraft() (*DraftInvoice, error) {
	dueDate, err := time.Parse("2006-01-02", a.DueDate)
	if err != nil {
		return nil, err
	}

	items := make([]invoice.Item, len(a.Items))
	for i, item := range a.Items {
		items[i] = invoice.Item{
			ID:          types.GenerateUUIDWithPrefix(types.UUID_PREFIX_INVOICE_ITEM),
			Description: item.Description,
			Quantity:    item.Quantity,
			UnitPrice:   decimal.NewFromFloat(item.UnitPrice),
			Amount:      decimal.NewFromFloat(item.Amount),
		}
	}

	draft := &DraftInvoice{
		ClientName:    a.ClientName,
		ClientEmail:   a.ClientEmail,
		ClientAddress: a.ClientAddress,
		Items:         items,
		Notes:         a.Notes,
		Terms:         a.Terms,
		DueDate:       dueDate,
	}
	for _, item := range draft.Items {
		if err := item.Validate(); err != nil {
			return nil, err
		}
	}
	return draft, nil
}

func fallbackDraft() *DraftInvoice {
	return &DraftInvoice{
		ClientName:  "Generated Client",
		ClientEmail: "client@example.com",
		Items: []invoice.Item{
			{
				ID:          types.GenerateUUIDWithPrefix(types.UUID_PREFIX_INVOICE_ITEM),
				Description: "Service as described in prompt",
				Quantity:    1,
				UnitPrice:   decimal.NewFromInt(100),
				Amount:      decimal.NewFromInt(100),
			},
		},
		DueDate: time.Now().UTC().AddDate(0, 0, 30),
	}
}

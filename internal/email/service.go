package email

import (
	"context"
	"fmt"
	"html/template"
	"strings"

	"github.com/chainvoice/chainvoice/internal/domain/invoice"
	"github.com/chainvoice/chainvoice/internal/logger"
)

// Service handles email operations
type Service struct {
	client *EmailClient
	log    *logger.Logger
}

// NewService creates a new email service
func NewService(client *EmailClient, log *logger.Logger) *Service {
	return &Service{client: client, log: log}
}

// SendInvoiceEmail sends the invoice to the client with the rendered PDF
// attached. A failed send is logged and reported in the response, it never
// fails the invoice itself.
func (s *Service) SendInvoiceEmail(ctx context.Context, inv *invoice.Invoice, pdfContent []byte) *SendEmailResponse {
	if !s.client.IsEnabled() {
		s.log.Warnw("email client is disabled, skipping invoice email",
			"invoice_id", inv.ID,
			"to", inv.ClientEmail,
		)
		return &SendEmailResponse{
			Success: false,
			Error:   "email client is disabled",
		}
	}

	req := SendEmailRequest{
		FromAddress: s.client.GetFromAddress(),
		ToAddress:   inv.ClientEmail,
		Subject:     fmt.Sprintf("Invoice %s from Chainvoice", inv.Number),
		HTML:        renderInvoiceHTML(inv),
		Attachments: []Attachment{
			{
				Filename: fmt.Sprintf("%s.pdf", inv.Number),
				Content:  pdfContent,
			},
		},
	}

	messageID, err := s.client.SendEmail(ctx, req)
	if err != nil {
		s.log.Errorw("failed to send invoice email",
			"error", err,
			"invoice_id", inv.ID,
			"to", inv.ClientEmail,
		)
		return &SendEmailResponse{
			Success: false,
			Error:   err.Error(),
		}
	}

	s.log.Infow("invoice email sent",
		"message_id", messageID,
		"invoice_id", inv.ID,
		"to", inv.ClientEmail,
	)

	return &SendEmailResponse{
		MessageID: messageID,
		Success:   true,
	}
}

var invoiceEmailTemplate = template.Must(template.New("invoice_email").Parse(`<html><body>
<h2>Invoice {{.Number}}</h2>
<p>Hi {{.ClientName}},</p>
<p>Please find invoice {{.Number}} attached. It is due on {{.DueDate}}.</p>
<table border="1" cellpadding="6" cellspacing="0">
<tr><th>Description</th><th>Qty</th><th>Unit Price</th><th>Amount</th></tr>
{{range .Rows}}<tr><td>{{.Description}}</td><td align="right">{{.Quantity}}</td><td align="right">{{.UnitPrice}}</td><td align="right">{{.Amount}}</td></tr>
{{end}}<tr><td colspan="3" align="right"><b>Total</b></td><td align="right"><b>{{.Total}}</b></td></tr>
</table>
<p>{{.Notes}}</p>
</body></html>`))

type invoiceEmailRow struct {
	Description string
	Quantity    int64
	UnitPrice   string
	Amount      string
}

type invoiceEmailData struct {
	Number     string
	ClientName string
	DueDate    string
	Rows       []invoiceEmailRow
	Total      string
	Notes      string
}

// renderInvoiceHTML builds the email body. Client-supplied strings pass
// through html/template escaping.
func renderInvoiceHTML(inv *invoice.Invoice) string {
	data := invoiceEmailData{
		Number:     inv.Number,
		ClientName: inv.ClientName,
		DueDate:    inv.DueDate.Format("Jan 2, 2006"),
		Total:      inv.TotalAmount.StringFixed(2),
		Notes:      inv.Notes,
	}
	for _, item := range inv.Items {
		data.Rows = append(data.Rows, invoiceEmailRow{
			Description: item.Description,
			Quantity:    item.Quantity,
			UnitPrice:   item.UnitPrice.StringFixed(2),
			Amount:      item.Amount.StringFixed(2),
		})
	}

	var sb strings.Builder
	if err := invoiceEmailTemplate.Execute(&sb, data); err != nil {
		return fmt.Sprintf("<html><body><p>Invoice %s attached.</p></body></html>", template.HTMLEscapeString(inv.Number))
	}
	return sb.String()
}

package pdf

import (
	"bytes"
	"context"
	"fmt"

	"github.com/chainvoice/chainvoice/internal/domain/invoice"
	ierr "github.com/chainvoice/chainvoice/internal/errors"
	"github.com/jung-kurt/gofpdf"
)

// Generator defines the interface for PDF generation operations
type Generator interface {
	RenderInvoicePDF(ctx context.Context, inv *invoice.Invoice) ([]byte, error)
}

type service struct{}

// NewGenerator creates a new PDF generator
func NewGenerator() Generator {
	return &service{}
}

func (s *service) RenderInvoicePDF(ctx context.Context, inv *invoice.Invoice) ([]byte, error) {
	doc := gofpdf.New("P", "mm", "A4", "")
	doc.SetTitle(fmt.Sprintf("Invoice %s", inv.Number), false)
	doc.AddPage()

	// Header
	doc.SetFont("Helvetica", "B", 20)
	doc.Cell(100, 12, "INVOICE")
	doc.SetFont("Helvetica", "", 11)
	doc.CellFormat(0, 12, inv.Number, "", 1, "R", false, 0, "")

	doc.SetFont("Helvetica", "", 10)
	doc.CellFormat(0, 6, fmt.Sprintf("Issued: %s", inv.CreatedAt.Format("Jan 2, 2006")), "", 1, "R", false, 0, "")
	doc.CellFormat(0, 6, fmt.Sprintf("Due: %s", inv.DueDate.Format("Jan 2, 2006")), "", 1, "R", false, 0, "")
	doc.Ln(6)

	// Client block
	doc.SetFont("Helvetica", "B", 11)
	doc.CellFormat(0, 6, "Billed To", "", 1, "L", false, 0, "")
	doc.SetFont("Helvetica", "", 10)
	doc.CellFormat(0, 5, inv.ClientName, "", 1, "L", false, 0, "")
	doc.CellFormat(0, 5, inv.ClientEmail, "", 1, "L", false, 0, "")
	if inv.ClientAddress != "" {
		doc.MultiCell(0, 5, inv.ClientAddress, "", "L", false)
	}
	doc.Ln(6)

	// Item table
	doc.SetFont("Helvetica", "B", 10)
	doc.SetFillColor(240, 240, 240)
	doc.CellFormat(90, 8, "Description", "1", 0, "L", true, 0, "")
	doc.CellFormat(25, 8, "Qty", "1", 0, "R", true, 0, "")
	doc.CellFormat(35, 8, "Unit Price", "1", 0, "R", true, 0, "")
	doc.CellFormat(35, 8, "Amount", "1", 1, "R", true, 0, "")

	doc.SetFont("Helvetica", "", 10)
	for _, item := range inv.Items {
		doc.CellFormat(90, 8, item.Description, "1", 0, "L", false, 0, "")
		doc.CellFormat(25, 8, fmt.Sprintf("%d", item.Quantity), "1", 0, "R", false, 0, "")
		doc.CellFormat(35, 8, item.UnitPrice.StringFixed(2), "1", 0, "R", false, 0, "")
		doc.CellFormat(35, 8, item.Amount.StringFixed(2), "1", 1, "R", false, 0, "")
	}

	doc.SetFont("Helvetica", "B", 10)
	doc.CellFormat(150, 8, "Total", "1", 0, "R", false, 0, "")
	doc.CellFormat(35, 8, inv.TotalAmount.StringFixed(2), "1", 1, "R", false, 0, "")
	doc.Ln(6)

	// Payment details
	if inv.PaymentAddress != "" {
		doc.SetFont("Helvetica", "B", 10)
		doc.CellFormat(0, 6, "Payment Details", "", 1, "L", false, 0, "")
		doc.SetFont("Helvetica", "", 9)
		token := inv.PaymentTokenType
		if token == "" {
			token = "ETH"
		}
		doc.CellFormat(0, 5, fmt.Sprintf("Send %s to: %s", token, inv.PaymentAddress), "", 1, "L", false, 0, "")
		doc.Ln(4)
	}

	if inv.Notes != "" {
		doc.SetFont("Helvetica", "B", 10)
		doc.CellFormat(0, 6, "Notes", "", 1, "L", false, 0, "")
		doc.SetFont("Helvetica", "", 9)
		doc.MultiCell(0, 5, inv.Notes, "", "L", false)
		doc.Ln(2)
	}
	if inv.Terms != "" {
		doc.SetFont("Helvetica", "B", 10)
		doc.CellFormat(0, 6, "Terms", "", 1, "L", false, 0, "")
		doc.SetFont("Helvetica", "", 9)
		doc.MultiCell(0, 5, inv.Terms, "", "L", false)
	}

	var buf bytes.Buffer
	if err := doc.Output(&buf); err != nil {
		return nil, ierr.WithError(err).
			WithHint("Failed to render invoice PDF").
			Mark(ierr.ErrSystem)
	}
	return buf.Bytes(), nil
}

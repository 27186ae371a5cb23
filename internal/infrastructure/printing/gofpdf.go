package printing

import (
	"bytes"
	"context"
	"strings"
	"time"

	"github.com/jung-kurt/gofpdf"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

const (
	pageWidth = 190.0
	halfWidth = pageWidth / 2
	lineH     = 5.0
	rowH      = 10.0
)

// GofpdfRenderer draws invoices with gofpdf
type GofpdfRenderer struct {
	catalog *Catalog
	logger  *zap.Logger
	// compress is turned off in tests so page text can be inspected
	compress bool
}

// NewGofpdfRenderer creates a renderer using catalog for labels and formats
func NewGofpdfRenderer(catalog *Catalog, logger *zap.Logger) *GofpdfRenderer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &GofpdfRenderer{catalog: catalog, logger: logger, compress: true}
}

// Render implements PDFRenderer
func (r *GofpdfRenderer) Render(ctx context.Context, doc *InvoiceDocument) (*RenderResult, error) {
	if doc == nil || doc.Number == "" {
		return nil, NewRenderError(ErrCodeInvalidDocument, "invoice number is required", nil)
	}
	if err := ctx.Err(); err != nil {
		return nil, NewRenderError(ErrCodeRenderCancelled, "render cancelled", err)
	}
	start := time.Now()

	loc := r.catalog.Localizer(doc.Language)
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetCompression(r.compress)
	pdf.SetTitle(loc.T("invoice.number", doc.Number), true)
	pdf.SetCreator("Bizify", false)
	pdf.AddPage()
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	// header
	pdf.SetFont("Arial", "B", 16)
	pdf.CellFormat(pageWidth, rowH, tr(loc.T("invoice.title")), "", 1, "C", false, 0, "")
	pdf.SetFont("Arial", "B", 12)
	pdf.CellFormat(pageWidth, rowH, tr(loc.T("invoice.number", doc.Number)), "", 1, "C", false, 0, "")
	pdf.Ln(5)

	// parties
	pdf.SetFont("Arial", "B", 10)
	pdf.CellFormat(halfWidth, rowH, tr(loc.T("invoice.from")), "", 0, "", false, 0, "")
	pdf.CellFormat(halfWidth, rowH, tr(loc.T("invoice.to")), "", 1, "", false, 0, "")
	pdf.SetFont("Arial", "", 10)
	from := companyLines(doc.Company)
	to := customerLines(doc.Customer)
	for i := range max(len(from), len(to)) {
		pdf.CellFormat(halfWidth, lineH, tr(at(from, i)), "", 0, "", false, 0, "")
		pdf.CellFormat(halfWidth, lineH, tr(at(to, i)), "", 1, "", false, 0, "")
	}
	pdf.Ln(10)

	// summary
	quarter := pageWidth / 4
	pdf.SetFont("Arial", "B", 10)
	for i, key := range []string{"invoice.issue_date", "invoice.due_date", "invoice.status", "invoice.amount_due"} {
		pdf.CellFormat(quarter, rowH, tr(loc.T(key)), "1", boolToLn(i == 3), "C", false, 0, "")
	}
	due := ""
	if doc.DueDate != nil {
		due = loc.Date(*doc.DueDate)
	}
	pdf.SetFont("Arial", "", 10)
	for i, v := range []string{
		loc.Date(doc.IssueDate),
		due,
		loc.T("status." + doc.Status),
		loc.Money(doc.Total, doc.Currency),
	} {
		pdf.CellFormat(quarter, rowH, tr(v), "1", boolToLn(i == 3), "C", false, 0, "")
	}
	pdf.Ln(10)

	// items
	widths := []float64{95, 30, 30, 35}
	pdf.SetFont("Arial", "B", 10)
	pdf.SetFillColor(54, 96, 146)
	pdf.SetTextColor(255, 255, 255)
	for i, key := range []string{"invoice.description", "invoice.quantity", "invoice.unit_price", "invoice.amount"} {
		pdf.CellFormat(widths[i], rowH, tr(loc.T(key)), "1", boolToLn(i == 3), "C", true, 0, "")
	}
	pdf.SetTextColor(0, 0, 0)
	pdf.SetFont("Arial", "", 10)
	for _, line := range doc.Lines {
		pdf.CellFormat(widths[0], rowH, tr(truncate(line.Description, 60)), "1", 0, "", false, 0, "")
		pdf.CellFormat(widths[1], rowH, tr(loc.Number(line.Quantity, scale(line.Quantity))), "1", 0, "C", false, 0, "")
		pdf.CellFormat(widths[2], rowH, tr(loc.Money(line.UnitPrice, doc.Currency)), "1", 0, "R", false, 0, "")
		pdf.CellFormat(widths[3], rowH, tr(loc.Money(line.Amount, doc.Currency)), "1", 1, "R", false, 0, "")
	}

	// totals
	pdf.Ln(5)
	total := func(label, value string) {
		pdf.CellFormat(widths[0]+widths[1]-30, rowH, "", "", 0, "", false, 0, "")
		pdf.CellFormat(widths[2]+30, rowH, tr(label), "", 0, "R", false, 0, "")
		pdf.CellFormat(widths[3], rowH, tr(value), "", 1, "R", false, 0, "")
	}
	total(loc.T("invoice.subtotal"), loc.Money(doc.Subtotal, doc.Currency))
	if doc.Discount.IsPositive() {
		total(loc.T("invoice.discount"), loc.Money(doc.Discount.Neg(), doc.Currency))
	}
	total(loc.T("invoice.tax", loc.Number(doc.TaxRate, scale(doc.TaxRate))), loc.Money(doc.TaxAmount, doc.Currency))
	pdf.SetFont("Arial", "B", 10)
	total(loc.T("invoice.total"), loc.Money(doc.Total, doc.Currency))

	if strings.TrimSpace(doc.Notes) != "" {
		pdf.Ln(10)
		pdf.SetFont("Arial", "B", 10)
		pdf.CellFormat(pageWidth, rowH, tr(loc.T("invoice.notes")), "", 1, "", false, 0, "")
		pdf.SetFont("Arial", "", 10)
		pdf.MultiCell(pageWidth, lineH, tr(doc.Notes), "", "", false)
	}

	if c := doc.Company; c.BankName != "" || c.BankIBAN != "" || c.BankBIC != "" {
		pdf.Ln(10)
		pdf.SetFont("Arial", "B", 10)
		pdf.CellFormat(pageWidth, rowH, tr(loc.T("invoice.bank_details")), "", 1, "", false, 0, "")
		pdf.SetFont("Arial", "", 10)
		for _, kv := range [][2]string{{"invoice.bank_name", c.BankName}, {"invoice.iban", c.BankIBAN}, {"invoice.bic", c.BankBIC}} {
			if kv[1] != "" {
				pdf.CellFormat(pageWidth, lineH, tr(loc.T(kv[0], kv[1])), "", 1, "", false, 0, "")
			}
		}
	}

	pdf.Ln(10)
	pdf.SetFont("Arial", "I", 8)
	footer := doc.Company.Footer
	if strings.TrimSpace(footer) == "" {
		footer = loc.T("invoice.thank_you")
	}
	pdf.MultiCell(pageWidth, lineH, tr(footer), "", "C", false)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, NewRenderError(ErrCodeRenderFailed, "failed to render invoice PDF", err)
	}

	result := &RenderResult{
		PDFData:        buf.Bytes(),
		PageCount:      pdf.PageCount(),
		RenderDuration: time.Since(start),
	}
	r.logger.Debug("invoice PDF rendered",
		zap.String("invoice_number", doc.Number),
		zap.String("language", loc.Language().String()),
		zap.Int("pages", result.PageCount),
		zap.Int("bytes", len(result.PDFData)))
	return result, nil
}

func companyLines(c CompanyInfo) []string {
	return nonEmpty(c.Name, c.Address, joinNonEmpty(" ", c.Zip, c.City), joinNonEmpty(", ", c.State, c.Country), c.Phone, c.Email, c.Website)
}

func customerLines(c CustomerInfo) []string {
	return nonEmpty(c.Name, c.Company, c.Address, joinNonEmpty(" ", c.Zip, c.City), joinNonEmpty(", ", c.State, c.Country), c.Email)
}

func nonEmpty(values ...string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}

func joinNonEmpty(sep string, values ...string) string {
	return strings.Join(nonEmpty(values...), sep)
}

func at(lines []string, i int) string {
	if i < len(lines) {
		return lines[i]
	}
	return ""
}

func boolToLn(last bool) int {
	if last {
		return 1
	}
	return 0
}

// scale counts the significant decimal places of d
func scale(d decimal.Decimal) int {
	s := d.String()
	if i := strings.IndexByte(s, '.'); i >= 0 {
		return len(s) - i - 1
	}
	return 0
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-3]) + "..."
}

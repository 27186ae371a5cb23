package printing

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// InvoiceDocument is everything drawn on an invoice PDF
type InvoiceDocument struct {
	Number    string
	IssueDate time.Time
	DueDate   *time.Time
	Status    string
	Notes     string
	TaxRate   decimal.Decimal
	Discount  decimal.Decimal
	Subtotal  decimal.Decimal
	TaxAmount decimal.Decimal
	Total     decimal.Decimal
	Lines     []InvoiceLine

	Company  CompanyInfo
	Customer CustomerInfo

	// Language is a settings language code such as "en" or "de"
	Language string
	// Currency is an ISO 4217 code
	Currency string
}

// InvoiceLine is one row of the items table
type InvoiceLine struct {
	Description string
	Quantity    decimal.Decimal
	UnitPrice   decimal.Decimal
	Amount      decimal.Decimal
}

// CompanyInfo is the issuing company
type CompanyInfo struct {
	Name     string
	Address  string
	City     string
	State    string
	Zip      string
	Country  string
	Phone    string
	Email    string
	Website  string
	BankName string
	BankIBAN string
	BankBIC  string
	Footer   string
}

// CustomerInfo is the billed customer
type CustomerInfo struct {
	Name    string
	Company string
	Address string
	City    string
	State   string
	Zip     string
	Country string
	Email   string
}

// RenderResult contains the output from PDF rendering
type RenderResult struct {
	// PDFData is the raw PDF file content
	PDFData []byte
	// PageCount is the number of pages in the PDF
	PageCount int
	// RenderDuration is how long the rendering took
	RenderDuration time.Duration
}

// PDFRenderer draws invoice documents
type PDFRenderer interface {
	Render(ctx context.Context, doc *InvoiceDocument) (*RenderResult, error)
}

// RenderError represents an error during PDF rendering
type RenderError struct {
	Code    string
	Message string
	Cause   error
}

func (e *RenderError) Error() string {
	if e.Cause != nil {
		return e.Message + ": " + e.Cause.Error()
	}
	return e.Message
}

func (e *RenderError) Unwrap() error {
	return e.Cause
}

// Error codes for rendering failures
const (
	ErrCodeRenderFailed    = "RENDER_FAILED"
	ErrCodeInvalidDocument = "INVALID_DOCUMENT"
	ErrCodeRenderCancelled = "RENDER_CANCELLED"
)

// NewRenderError creates a new RenderError
func NewRenderError(code, message string, cause error) *RenderError {
	return &RenderError{
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

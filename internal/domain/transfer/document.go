// Package transfer defines the portable export document: the versioned JSON
// shape every export format is projected from and every import is read as.
package transfer

import (
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/bizify/backend/internal/domain/billing"
	"github.com/bizify/backend/internal/domain/partner"
	"github.com/bizify/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// CurrentVersion is written into every export
const CurrentVersion = "1.0"

// ApplicationName is written into exports and backup metadata
const ApplicationName = "Bizify"

// SupportedVersions lists the document versions accepted on import
var SupportedVersions = []string{CurrentVersion}

// CheckVersion rejects documents written by an unknown format version
func CheckVersion(version string) error {
	if slices.Contains(SupportedVersions, version) {
		return nil
	}
	return shared.NewDomainError(shared.CodeUnsupportedVersion,
		fmt.Sprintf("Unsupported export version: %s. Supported versions: [%s]", version, strings.Join(SupportedVersions, ", ")))
}

// Document is the authoritative export. Sections left out of an export are
// omitted entirely; an included but empty section is written as [].
type Document struct {
	ExportVersion string           `json:"export_version"`
	ExportDate    time.Time        `json:"export_date"`
	Application   string           `json:"application,omitempty"`
	UserInfo      UserInfo         `json:"user_info"`
	Settings      *SettingsRecord  `json:"settings,omitzero"`
	Customers     []CustomerRecord `json:"customers,omitzero"`
	Invoices      []InvoiceRecord  `json:"invoices,omitzero"`
}

// NewDocument starts an empty document for the given account
func NewDocument(name, email string, at time.Time) *Document {
	return &Document{
		ExportVersion: CurrentVersion,
		ExportDate:    at.UTC(),
		Application:   ApplicationName,
		UserInfo:      UserInfo{Name: name, Email: email},
	}
}

// UserInfo identifies the account an export was taken from
type UserInfo struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

// SettingsRecord is the exported company profile
type SettingsRecord struct {
	CompanyName    string         `json:"company_name"`
	CompanyAddress string         `json:"company_address"`
	CompanyCity    string         `json:"company_city"`
	CompanyState   string         `json:"company_state"`
	CompanyZip     string         `json:"company_zip"`
	CompanyCountry string         `json:"company_country"`
	CompanyPhone   string         `json:"company_phone"`
	CompanyEmail   string         `json:"company_email"`
	CompanyWebsite string         `json:"company_website"`
	CompanyLogo    string         `json:"company_logo"`
	TaxRate        billing.Number `json:"tax_rate"`
	Currency       string         `json:"currency"`
	InvoicePrefix  string         `json:"invoice_prefix"`
	InvoiceFooter  string         `json:"invoice_footer"`
	BankName       string         `json:"bank_name"`
	BankIBAN       string         `json:"bank_iban"`
	BankBIC        string         `json:"bank_bic"`
	Language       string         `json:"language"`
}

// SettingsRecordFrom projects a settings aggregate
func SettingsRecordFrom(s *billing.Settings) *SettingsRecord {
	return &SettingsRecord{
		CompanyName:    s.CompanyName,
		CompanyAddress: s.CompanyAddress,
		CompanyCity:    s.CompanyCity,
		CompanyState:   s.CompanyState,
		CompanyZip:     s.CompanyZip,
		CompanyCountry: s.CompanyCountry,
		CompanyPhone:   s.CompanyPhone,
		CompanyEmail:   s.CompanyEmail,
		CompanyWebsite: s.CompanyWebsite,
		CompanyLogo:    s.CompanyLogo,
		TaxRate:        billing.NewNumber(s.TaxRate),
		Currency:       s.Currency,
		InvoicePrefix:  s.InvoicePrefix,
		InvoiceFooter:  s.InvoiceFooter,
		BankName:       s.BankName,
		BankIBAN:       s.BankIBAN,
		BankBIC:        s.BankBIC,
		Language:       s.Language,
	}
}

// ToSettings builds a fresh settings record for ownerID. Blank currency,
// prefix and language fall back to the defaults.
func (r SettingsRecord) ToSettings(ownerID uuid.UUID) (*billing.Settings, error) {
	if r.TaxRate.Decimal().IsNegative() {
		return nil, shared.NewDomainError(shared.CodeInvalidInput, "Tax rate cannot be negative")
	}
	s := billing.NewSettings(ownerID, r.CompanyName)
	s.CompanyAddress = r.CompanyAddress
	s.CompanyCity = r.CompanyCity
	s.CompanyState = r.CompanyState
	s.CompanyZip = r.CompanyZip
	s.CompanyCountry = r.CompanyCountry
	s.CompanyPhone = r.CompanyPhone
	s.CompanyEmail = r.CompanyEmail
	s.CompanyWebsite = r.CompanyWebsite
	s.CompanyLogo = r.CompanyLogo
	s.TaxRate = r.TaxRate.Decimal()
	s.InvoiceFooter = r.InvoiceFooter
	s.BankName = r.BankName
	s.BankIBAN = r.BankIBAN
	s.BankBIC = r.BankBIC
	if v := strings.TrimSpace(r.Currency); v != "" {
		s.Currency = strings.ToUpper(v)
	}
	if v := strings.TrimSpace(r.InvoicePrefix); v != "" {
		s.InvoicePrefix = r.InvoicePrefix
	}
	if v := strings.TrimSpace(r.Language); v != "" {
		s.Language = strings.ToLower(v)
	}
	return s, nil
}

// CustomerRecord is an exported customer. Email is its identity across exports.
type CustomerRecord struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
	City    string `json:"city"`
	State   string `json:"state"`
	ZipCode string `json:"zip_code"`
	Country string `json:"country"`
	Company string `json:"company"`
	Notes   string `json:"notes"`
}

// CustomerRecordFrom projects a customer aggregate
func CustomerRecordFrom(c *partner.Customer) CustomerRecord {
	return CustomerRecord{
		Name:    c.Name,
		Email:   c.Email,
		Phone:   c.Phone,
		Address: c.Address,
		City:    c.City,
		State:   c.State,
		ZipCode: c.ZipCode,
		Country: c.Country,
		Company: c.Company,
		Notes:   c.Notes,
	}
}

// Profile converts the record into customer fields
func (r CustomerRecord) Profile() partner.Profile {
	return partner.Profile{
		Name:    r.Name,
		Email:   r.Email,
		Phone:   r.Phone,
		Address: r.Address,
		City:    r.City,
		State:   r.State,
		ZipCode: r.ZipCode,
		Country: r.Country,
		Company: r.Company,
		Notes:   r.Notes,
	}
}

// InvoiceRecord is an exported invoice. The customer is referenced by email.
// Subtotal, TaxAmount and Total are informational: imports recompute them.
type InvoiceRecord struct {
	InvoiceNumber string         `json:"invoice_number"`
	CustomerEmail string         `json:"customer_email"`
	IssueDate     string         `json:"issue_date"`
	DueDate       *string        `json:"due_date"`
	Status        string         `json:"status"`
	Notes         string         `json:"notes"`
	TaxRate       billing.Number `json:"tax_rate"`
	Discount      billing.Number `json:"discount"`
	Subtotal      billing.Amount `json:"subtotal"`
	TaxAmount     billing.Amount `json:"tax_amount"`
	Total         billing.Amount `json:"total"`
	Items         []ItemRecord   `json:"items"`

	// CustomerName is carried for tabular projections only
	CustomerName string `json:"-"`
}

// ItemRecord is an exported line item. A missing quantity reads as 1.
type ItemRecord struct {
	Description string          `json:"description"`
	Quantity    *billing.Number `json:"quantity"`
	UnitPrice   billing.Number  `json:"unit_price"`
	Amount      billing.Amount  `json:"amount"`
}

// InvoiceRecordFrom projects an invoice aggregate
func InvoiceRecordFrom(inv *billing.Invoice, customerEmail string) InvoiceRecord {
	rec := InvoiceRecord{
		InvoiceNumber: inv.InvoiceNumber,
		CustomerEmail: customerEmail,
		IssueDate:     FormatDate(inv.IssueDate),
		Status:        string(inv.Status),
		Notes:         inv.Notes,
		TaxRate:       billing.NewNumber(inv.TaxRate),
		Discount:      billing.NewNumber(inv.Discount),
		Subtotal:      billing.NewAmount(inv.Subtotal),
		TaxAmount:     billing.NewAmount(inv.TaxAmount),
		Total:         billing.NewAmount(inv.Total),
		Items:         make([]ItemRecord, len(inv.Items)),
	}
	if inv.DueDate != nil {
		due := FormatDate(*inv.DueDate)
		rec.DueDate = &due
	}
	for i, item := range inv.Items {
		qty := billing.NewNumber(item.Quantity)
		rec.Items[i] = ItemRecord{
			Description: item.Description,
			Quantity:    &qty,
			UnitPrice:   billing.NewNumber(item.UnitPrice),
			Amount:      billing.NewAmount(item.Amount),
		}
	}
	return rec
}

// FormatDate renders a stored timestamp the way documents carry it
func FormatDate(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}

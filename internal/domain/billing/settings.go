package billing

import (
	"strings"

	"github.com/bizify/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Defaults shared by every fresh settings record
const (
	DefaultCurrency = "USD"
	DefaultLanguage = "en"
	DefaultFooter   = "Thank you for your business!"
)

// Settings holds the company profile of one owner. Exactly one record is
// current per owner.
type Settings struct {
	shared.BaseEntity
	OwnerID        uuid.UUID
	CompanyName    string
	CompanyAddress string
	CompanyCity    string
	CompanyState   string
	CompanyZip     string
	CompanyCountry string
	CompanyPhone   string
	CompanyEmail   string
	CompanyWebsite string
	CompanyLogo    string
	TaxRate        decimal.Decimal
	Currency       string
	InvoicePrefix  string
	InvoiceFooter  string
	BankName       string
	BankIBAN       string
	BankBIC        string
	Language       string
}

// NewSettings creates a minimal record for a company name.
func NewSettings(ownerID uuid.UUID, companyName string) *Settings {
	return &Settings{
		BaseEntity:    shared.NewBaseEntity(),
		OwnerID:       ownerID,
		CompanyName:   companyName,
		TaxRate:       decimal.Zero,
		Currency:      DefaultCurrency,
		InvoicePrefix: DefaultInvoicePrefix,
		Language:      DefaultLanguage,
	}
}

// NewRegistrationSettings is written when a user signs up.
func NewRegistrationSettings(ownerID uuid.UUID) *Settings {
	return NewSettings(ownerID, "My Company")
}

// NewResetSettings is written when an owner wipes their data.
func NewResetSettings(ownerID uuid.UUID) *Settings {
	s := NewSettings(ownerID, "Your Company")
	s.CompanyAddress = "123 Main St"
	s.CompanyCity = "Your City"
	s.CompanyState = "Your State"
	s.CompanyZip = "12345"
	s.CompanyCountry = "Your Country"
	s.CompanyPhone = "(123) 456-7890"
	s.CompanyEmail = "info@yourcompany.com"
	s.CompanyWebsite = "www.yourcompany.com"
	s.TaxRate = decimal.NewFromInt(10)
	s.InvoiceFooter = DefaultFooter
	return s
}

// Prefix returns the invoice number prefix, falling back to the default.
func (s *Settings) Prefix() string {
	if s == nil || strings.TrimSpace(s.InvoicePrefix) == "" {
		return DefaultInvoicePrefix
	}
	return s.InvoicePrefix
}

// SettingsPatch is a partial update of the company profile.
type SettingsPatch struct {
	CompanyName    shared.Optional[string]
	CompanyAddress shared.Optional[string]
	CompanyCity    shared.Optional[string]
	CompanyState   shared.Optional[string]
	CompanyZip     shared.Optional[string]
	CompanyCountry shared.Optional[string]
	CompanyPhone   shared.Optional[string]
	CompanyEmail   shared.Optional[string]
	CompanyWebsite shared.Optional[string]
	CompanyLogo    shared.Optional[string]
	TaxRate        shared.Optional[decimal.Decimal]
	Currency       shared.Optional[string]
	InvoicePrefix  shared.Optional[string]
	InvoiceFooter  shared.Optional[string]
	BankName       shared.Optional[string]
	BankIBAN       shared.Optional[string]
	BankBIC        shared.Optional[string]
	Language       shared.Optional[string]
}

// ApplyPatch applies the present fields.
func (s *Settings) ApplyPatch(p SettingsPatch) error {
	if rate, ok := p.TaxRate.Get(); ok && rate.IsNegative() {
		return shared.NewDomainError(shared.CodeInvalidInput, "Tax rate cannot be negative")
	}
	if name, ok := p.CompanyName.Get(); ok && strings.TrimSpace(name) == "" {
		return shared.NewDomainError(shared.CodeInvalidInput, "Company name cannot be empty")
	}

	p.CompanyName.Apply(&s.CompanyName)
	p.CompanyAddress.Apply(&s.CompanyAddress)
	p.CompanyCity.Apply(&s.CompanyCity)
	p.CompanyState.Apply(&s.CompanyState)
	p.CompanyZip.Apply(&s.CompanyZip)
	p.CompanyCountry.Apply(&s.CompanyCountry)
	p.CompanyPhone.Apply(&s.CompanyPhone)
	p.CompanyEmail.Apply(&s.CompanyEmail)
	p.CompanyWebsite.Apply(&s.CompanyWebsite)
	p.CompanyLogo.Apply(&s.CompanyLogo)
	p.TaxRate.Apply(&s.TaxRate)
	p.Currency.Apply(&s.Currency)
	p.InvoicePrefix.Apply(&s.InvoicePrefix)
	p.InvoiceFooter.Apply(&s.InvoiceFooter)
	p.BankName.Apply(&s.BankName)
	p.BankIBAN.Apply(&s.BankIBAN)
	p.BankBIC.Apply(&s.BankBIC)
	p.Language.Apply(&s.Language)

	s.Touch()
	return nil
}

package models

import (
	"time"

	"github.com/bizify/backend/internal/domain/billing"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// InvoiceModel is the persistence model for the Invoice aggregate.
// Money columns are unbounded numerics so nothing is rounded in storage.
type InvoiceModel struct {
	BaseModel
	OwnerID       uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_invoices_owner_number,priority:1"`
	InvoiceNumber string    `gorm:"type:varchar(50);not null;uniqueIndex:idx_invoices_owner_number,priority:2"`
	CustomerID    uuid.UUID `gorm:"type:uuid;not null;index"`
	IssueDate     time.Time `gorm:"not null;index"`
	DueDate       *time.Time
	Status        billing.InvoiceStatus `gorm:"type:varchar(20);not null;index"`
	Notes         string                `gorm:"type:text"`
	TaxRate       decimal.Decimal       `gorm:"type:numeric;not null"`
	Discount      decimal.Decimal       `gorm:"type:numeric;not null"`
	Subtotal      decimal.Decimal       `gorm:"type:numeric;not null"`
	TaxAmount     decimal.Decimal       `gorm:"type:numeric;not null"`
	Total         decimal.Decimal       `gorm:"type:numeric;not null"`
	Items         []InvoiceItemModel    `gorm:"foreignKey:InvoiceID;constraint:OnDelete:CASCADE"`
}

// TableName returns the table name for GORM
func (InvoiceModel) TableName() string {
	return "invoices"
}

// ToDomain converts the persistence model to a domain Invoice.
// Items must have been preloaded in position order.
func (m *InvoiceModel) ToDomain() *billing.Invoice {
	inv := &billing.Invoice{
		OwnedAggregateRoot: ownedRoot(m.BaseModel, m.OwnerID),
		InvoiceNumber:      m.InvoiceNumber,
		CustomerID:         m.CustomerID,
		IssueDate:          m.IssueDate,
		DueDate:            m.DueDate,
		Status:             m.Status,
		Notes:              m.Notes,
		TaxRate:            m.TaxRate,
		Discount:           m.Discount,
		Subtotal:           m.Subtotal,
		TaxAmount:          m.TaxAmount,
		Total:              m.Total,
		Items:              make([]billing.LineItem, len(m.Items)),
	}
	for i := range m.Items {
		inv.Items[i] = m.Items[i].ToDomain()
	}
	return inv
}

// FromDomain populates the persistence model from a domain Invoice.
// Dates are stored in UTC so range filters compare consistently on every driver.
func (m *InvoiceModel) FromDomain(inv *billing.Invoice) {
	m.FromDomainBaseEntity(inv.BaseEntity)
	m.OwnerID = inv.OwnerID
	m.InvoiceNumber = inv.InvoiceNumber
	m.CustomerID = inv.CustomerID
	m.IssueDate = inv.IssueDate.UTC()
	m.DueDate = nil
	if inv.DueDate != nil {
		due := inv.DueDate.UTC()
		m.DueDate = &due
	}
	m.Status = inv.Status
	m.Notes = inv.Notes
	m.TaxRate = inv.TaxRate
	m.Discount = inv.Discount
	m.Subtotal = inv.Subtotal
	m.TaxAmount = inv.TaxAmount
	m.Total = inv.Total
	m.Items = make([]InvoiceItemModel, len(inv.Items))
	for i, item := range inv.Items {
		m.Items[i].FromDomain(item, inv.ID, i)
	}
}

// InvoiceModelFromDomain creates a new persistence model from a domain Invoice.
func InvoiceModelFromDomain(inv *billing.Invoice) *InvoiceModel {
	m := &InvoiceModel{}
	m.FromDomain(inv)
	return m
}

// InvoiceItemModel is one line of an invoice.
type InvoiceItemModel struct {
	ID          uuid.UUID       `gorm:"type:uuid;primaryKey"`
	InvoiceID   uuid.UUID       `gorm:"type:uuid;not null;index"`
	Position    int             `gorm:"not null;default:0"`
	Description string          `gorm:"type:text"`
	Quantity    decimal.Decimal `gorm:"type:numeric;not null"`
	UnitPrice   decimal.Decimal `gorm:"type:numeric;not null"`
	Amount      decimal.Decimal `gorm:"type:numeric;not null"`
}

// TableName returns the table name for GORM
func (InvoiceItemModel) TableName() string {
	return "invoice_items"
}

// ToDomain converts the persistence model to a domain LineItem.
func (m *InvoiceItemModel) ToDomain() billing.LineItem {
	return billing.LineItem{
		ID:          m.ID,
		InvoiceID:   m.InvoiceID,
		Description: m.Description,
		Quantity:    m.Quantity,
		UnitPrice:   m.UnitPrice,
		Amount:      m.Amount,
	}
}

// FromDomain populates the persistence model from a domain LineItem.
func (m *InvoiceItemModel) FromDomain(item billing.LineItem, invoiceID uuid.UUID, position int) {
	m.ID = item.ID
	m.InvoiceID = invoiceID
	m.Position = position
	m.Description = item.Description
	m.Quantity = item.Quantity
	m.UnitPrice = item.UnitPrice
	m.Amount = item.Amount
}

// SettingsModel is the persistence model for company settings.
type SettingsModel struct {
	BaseModel
	OwnerID        uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex"`
	CompanyName    string          `gorm:"type:varchar(200);not null"`
	CompanyAddress string          `gorm:"type:text"`
	CompanyCity    string          `gorm:"type:varchar(100)"`
	CompanyState   string          `gorm:"type:varchar(100)"`
	CompanyZip     string          `gorm:"type:varchar(20)"`
	CompanyCountry string          `gorm:"type:varchar(100)"`
	CompanyPhone   string          `gorm:"type:varchar(50)"`
	CompanyEmail   string          `gorm:"type:varchar(200)"`
	CompanyWebsite string          `gorm:"type:varchar(200)"`
	CompanyLogo    string          `gorm:"type:text"`
	TaxRate        decimal.Decimal `gorm:"type:numeric;not null"`
	Currency       string          `gorm:"type:varchar(10);not null"`
	InvoicePrefix  string          `gorm:"type:varchar(20);not null"`
	InvoiceFooter  string          `gorm:"type:text"`
	BankName       string          `gorm:"type:varchar(200)"`
	BankIBAN       string          `gorm:"column:bank_iban;type:varchar(50)"`
	BankBIC        string          `gorm:"column:bank_bic;type:varchar(20)"`
	Language       string          `gorm:"type:varchar(10);not null"`
}

// TableName returns the table name for GORM
func (SettingsModel) TableName() string {
	return "settings"
}

// ToDomain converts the persistence model to domain Settings.
func (m *SettingsModel) ToDomain() *billing.Settings {
	return &billing.Settings{
		BaseEntity:     m.BaseModel.ToDomain(),
		OwnerID:        m.OwnerID,
		CompanyName:    m.CompanyName,
		CompanyAddress: m.CompanyAddress,
		CompanyCity:    m.CompanyCity,
		CompanyState:   m.CompanyState,
		CompanyZip:     m.CompanyZip,
		CompanyCountry: m.CompanyCountry,
		CompanyPhone:   m.CompanyPhone,
		CompanyEmail:   m.CompanyEmail,
		CompanyWebsite: m.CompanyWebsite,
		CompanyLogo:    m.CompanyLogo,
		TaxRate:        m.TaxRate,
		Currency:       m.Currency,
		InvoicePrefix:  m.InvoicePrefix,
		InvoiceFooter:  m.InvoiceFooter,
		BankName:       m.BankName,
		BankIBAN:       m.BankIBAN,
		BankBIC:        m.BankBIC,
		Language:       m.Language,
	}
}

// FromDomain populates the persistence model from domain Settings.
func (m *SettingsModel) FromDomain(s *billing.Settings) {
	m.FromDomainBaseEntity(s.BaseEntity)
	m.OwnerID = s.OwnerID
	m.CompanyName = s.CompanyName
	m.CompanyAddress = s.CompanyAddress
	m.CompanyCity = s.CompanyCity
	m.CompanyState = s.CompanyState
	m.CompanyZip = s.CompanyZip
	m.CompanyCountry = s.CompanyCountry
	m.CompanyPhone = s.CompanyPhone
	m.CompanyEmail = s.CompanyEmail
	m.CompanyWebsite = s.CompanyWebsite
	m.CompanyLogo = s.CompanyLogo
	m.TaxRate = s.TaxRate
	m.Currency = s.Currency
	m.InvoicePrefix = s.InvoicePrefix
	m.InvoiceFooter = s.InvoiceFooter
	m.BankName = s.BankName
	m.BankIBAN = s.BankIBAN
	m.BankBIC = s.BankBIC
	m.Language = s.Language
}

// SettingsModelFromDomain creates a new persistence model from domain Settings.
func SettingsModelFromDomain(s *billing.Settings) *SettingsModel {
	m := &SettingsModel{}
	m.FromDomain(s)
	return m
}

// InvoiceSequenceModel keeps the last invoice sequence handed out per owner and year.
type InvoiceSequenceModel struct {
	OwnerID   uuid.UUID `gorm:"type:uuid;primaryKey"`
	Year      int       `gorm:"primaryKey;autoIncrement:false"`
	LastValue int64     `gorm:"not null"`
}

// TableName returns the table name for GORM
func (InvoiceSequenceModel) TableName() string {
	return "invoice_sequences"
}

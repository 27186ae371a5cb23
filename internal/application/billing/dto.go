package billing

import (
	"strings"
	"time"

	partnerapp "github.com/bizify/backend/internal/application/partner"
	"github.com/bizify/backend/internal/domain/billing"
	"github.com/bizify/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// =============================================================================
// Invoice requests
// =============================================================================

// InvoiceItemRequest is one line of a new invoice
type InvoiceItemRequest struct {
	Description string          `json:"description" binding:"max=500"`
	Quantity    decimal.Decimal `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
}

// CreateInvoiceRequest represents a request to create an invoice.
// Quantities, prices, tax rate and discount accept JSON numbers or numeric strings.
type CreateInvoiceRequest struct {
	CustomerID uuid.UUID            `json:"customer_id" binding:"required"`
	IssueDate  *billing.Timestamp   `json:"issue_date"`
	DueDate    *billing.Timestamp   `json:"due_date"`
	Status     string               `json:"status" binding:"omitempty,invoice_status"`
	Notes      string               `json:"notes"`
	TaxRate    decimal.Decimal      `json:"tax_rate"`
	Discount   decimal.Decimal      `json:"discount"`
	Items      []InvoiceItemRequest `json:"items" binding:"dive"`
}

// Draft converts the request into domain input
func (r CreateInvoiceRequest) Draft() (billing.InvoiceDraft, error) {
	draft := billing.InvoiceDraft{
		CustomerID: r.CustomerID,
		IssueDate:  r.IssueDate.Ptr(),
		DueDate:    r.DueDate.Ptr(),
		Notes:      r.Notes,
		TaxRate:    r.TaxRate,
		Discount:   r.Discount,
		Items:      make([]billing.LineDraft, len(r.Items)),
	}
	if r.Status != "" {
		status, err := billing.ParseInvoiceStatus(r.Status)
		if err != nil {
			return billing.InvoiceDraft{}, err
		}
		draft.Status = status
	}
	for i, item := range r.Items {
		draft.Items[i] = billing.LineDraft{
			Description: item.Description,
			Quantity:    item.Quantity,
			UnitPrice:   item.UnitPrice,
		}
	}
	return draft, nil
}

// UpdateInvoiceItemRequest is one line of an invoice update. A line whose id
// matches an existing line updates it; absent fields keep their stored value.
type UpdateInvoiceItemRequest struct {
	ID          *uuid.UUID       `json:"id"`
	Description *string          `json:"description"`
	Quantity    *decimal.Decimal `json:"quantity"`
	UnitPrice   *decimal.Decimal `json:"unit_price"`
}

// UpdateInvoiceRequest is a partial update. Absent fields are left unchanged.
type UpdateInvoiceRequest struct {
	CustomerID shared.Optional[uuid.UUID]                  `json:"customer_id"`
	IssueDate  shared.Optional[billing.Timestamp]          `json:"issue_date"`
	DueDate    shared.Optional[*billing.Timestamp]         `json:"due_date"`
	Status     shared.Optional[string]                     `json:"status"`
	Notes      shared.Optional[string]                     `json:"notes"`
	TaxRate    shared.Optional[decimal.Decimal]            `json:"tax_rate"`
	Discount   shared.Optional[decimal.Decimal]            `json:"discount"`
	Items      shared.Optional[[]UpdateInvoiceItemRequest] `json:"items"`
}

// Patch converts the request into a domain patch. Item fields missing from the
// request are filled from the matching line of current.
func (r UpdateInvoiceRequest) Patch(current *billing.Invoice) (billing.InvoicePatch, error) {
	patch := billing.InvoicePatch{
		CustomerID: r.CustomerID,
		Notes:      r.Notes,
		TaxRate:    r.TaxRate,
		Discount:   r.Discount,
	}
	if ts, ok := r.IssueDate.Get(); ok {
		if ts.IsZero() {
			return billing.InvoicePatch{}, shared.NewDomainError(shared.CodeInvalidInput, "Issue date cannot be empty")
		}
		patch.IssueDate = shared.Some(ts.Time)
	}
	if ts, ok := r.DueDate.Get(); ok {
		patch.DueDate = shared.Some(ts.Ptr())
	}
	if s, ok := r.Status.Get(); ok {
		status, err := billing.ParseInvoiceStatus(s)
		if err != nil {
			return billing.InvoicePatch{}, err
		}
		patch.Status = shared.Some(status)
	}
	if tax, ok := r.TaxRate.Get(); ok && tax.IsNegative() {
		return billing.InvoicePatch{}, shared.NewDomainError(shared.CodeInvalidInput, "Tax rate cannot be negative")
	}
	if items, ok := r.Items.Get(); ok {
		patch.Items = shared.Some(mergeLineDrafts(current.Items, items))
	}
	return patch, nil
}

func mergeLineDrafts(existing []billing.LineItem, items []UpdateInvoiceItemRequest) []billing.LineDraft {
	byID := make(map[uuid.UUID]billing.LineItem, len(existing))
	for _, item := range existing {
		byID[item.ID] = item
	}

	drafts := make([]billing.LineDraft, len(items))
	for i, item := range items {
		var d billing.LineDraft
		if item.ID != nil {
			id := *item.ID
			d.ID = &id
			if stored, ok := byID[id]; ok {
				d.Description = stored.Description
				d.Quantity = stored.Quantity
				d.UnitPrice = stored.UnitPrice
			}
		}
		if item.Description != nil {
			d.Description = *item.Description
		}
		if item.Quantity != nil {
			d.Quantity = *item.Quantity
		}
		if item.UnitPrice != nil {
			d.UnitPrice = *item.UnitPrice
		}
		drafts[i] = d
	}
	return drafts
}

// InvoiceListFilter holds list query parameters
type InvoiceListFilter struct {
	Search     string `form:"search"`
	Status     string `form:"status" binding:"omitempty,invoice_status"`
	CustomerID string `form:"customer_id" binding:"omitempty,uuid"`
	Page       int    `form:"page" binding:"omitempty,min=1"`
	PageSize   int    `form:"page_size" binding:"omitempty,min=1,max=1000"`
	OrderBy    string `form:"order_by"`
	OrderDir   string `form:"order_dir" binding:"omitempty,oneof=asc desc"`
}

// ToDomain converts the list filter into a repository filter
func (f InvoiceListFilter) ToDomain() (billing.InvoiceFilter, error) {
	filter := billing.InvoiceFilter{Filter: shared.DefaultFilter()}
	filter.OrderBy = "issue_date"
	filter.Search = f.Search
	if f.Page > 0 {
		filter.Page = f.Page
	}
	if f.PageSize > 0 {
		filter.PageSize = f.PageSize
	}
	if f.OrderBy != "" {
		filter.OrderBy = f.OrderBy
	}
	if f.OrderDir != "" {
		filter.OrderDir = f.OrderDir
	}
	if f.Status != "" {
		status, err := billing.ParseInvoiceStatus(f.Status)
		if err != nil {
			return billing.InvoiceFilter{}, err
		}
		filter.Status = &status
	}
	if f.CustomerID != "" {
		id, err := uuid.Parse(f.CustomerID)
		if err != nil {
			return billing.InvoiceFilter{}, shared.NewDomainError(shared.CodeInvalidInput, "Invalid customer id")
		}
		filter.CustomerID = &id
	}
	return filter, nil
}

// =============================================================================
// Invoice responses
// =============================================================================

// InvoiceItemResponse represents a line item in API responses
type InvoiceItemResponse struct {
	ID          uuid.UUID      `json:"id"`
	InvoiceID   uuid.UUID      `json:"invoice_id"`
	Description string         `json:"description"`
	Quantity    billing.Number `json:"quantity"`
	UnitPrice   billing.Number `json:"unit_price"`
	Amount      billing.Amount `json:"amount"`
}

// InvoiceResponse represents an invoice in API responses
type InvoiceResponse struct {
	ID            uuid.UUID                    `json:"id"`
	OwnerID       uuid.UUID                    `json:"user_id"`
	InvoiceNumber string                       `json:"invoice_number"`
	CustomerID    uuid.UUID                    `json:"customer_id"`
	IssueDate     time.Time                    `json:"issue_date"`
	DueDate       *time.Time                   `json:"due_date"`
	Status        billing.InvoiceStatus        `json:"status"`
	Notes         string                       `json:"notes"`
	TaxRate       billing.Number               `json:"tax_rate"`
	Discount      billing.Amount               `json:"discount"`
	Subtotal      billing.Amount               `json:"subtotal"`
	TaxAmount     billing.Amount               `json:"tax_amount"`
	Total         billing.Amount               `json:"total"`
	Items         []InvoiceItemResponse        `json:"items"`
	Customer      *partnerapp.CustomerResponse `json:"customer,omitempty"`
	CreatedAt     time.Time                    `json:"created_at"`
	UpdatedAt     time.Time                    `json:"updated_at"`
}

// ToInvoiceResponse converts a domain invoice to a response
func ToInvoiceResponse(inv *billing.Invoice) InvoiceResponse {
	items := make([]InvoiceItemResponse, len(inv.Items))
	for i, item := range inv.Items {
		items[i] = InvoiceItemResponse{
			ID:          item.ID,
			InvoiceID:   inv.ID,
			Description: item.Description,
			Quantity:    billing.NewNumber(item.Quantity),
			UnitPrice:   billing.NewNumber(item.UnitPrice),
			Amount:      billing.NewAmount(item.Amount),
		}
	}
	return InvoiceResponse{
		ID:            inv.ID,
		OwnerID:       inv.OwnerID,
		InvoiceNumber: inv.InvoiceNumber,
		CustomerID:    inv.CustomerID,
		IssueDate:     inv.IssueDate,
		DueDate:       inv.DueDate,
		Status:        inv.Status,
		Notes:         inv.Notes,
		TaxRate:       billing.NewNumber(inv.TaxRate),
		Discount:      billing.NewAmount(inv.Discount),
		Subtotal:      billing.NewAmount(inv.Subtotal),
		TaxAmount:     billing.NewAmount(inv.TaxAmount),
		Total:         billing.NewAmount(inv.Total),
		Items:         items,
		CreatedAt:     inv.CreatedAt,
		UpdatedAt:     inv.UpdatedAt,
	}
}

// DeletedInvoiceResponse is returned after an invoice is deleted
type DeletedInvoiceResponse struct {
	ID            uuid.UUID             `json:"id"`
	InvoiceNumber string                `json:"invoice_number"`
	Status        billing.InvoiceStatus `json:"status"`
}

// =============================================================================
// Settings
// =============================================================================

// SettingsResponse represents the company settings in API responses
type SettingsResponse struct {
	ID             uuid.UUID      `json:"id"`
	OwnerID        uuid.UUID      `json:"user_id"`
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
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
}

// ToSettingsResponse converts domain settings to a response
func ToSettingsResponse(s *billing.Settings) SettingsResponse {
	return SettingsResponse{
		ID:             s.ID,
		OwnerID:        s.OwnerID,
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
		CreatedAt:      s.CreatedAt,
		UpdatedAt:      s.UpdatedAt,
	}
}

// UpdateSettingsRequest is a partial update of the company settings
type UpdateSettingsRequest struct {
	CompanyName    shared.Optional[string]          `json:"company_name"`
	CompanyAddress shared.Optional[string]          `json:"company_address"`
	CompanyCity    shared.Optional[string]          `json:"company_city"`
	CompanyState   shared.Optional[string]          `json:"company_state"`
	CompanyZip     shared.Optional[string]          `json:"company_zip"`
	CompanyCountry shared.Optional[string]          `json:"company_country"`
	CompanyPhone   shared.Optional[string]          `json:"company_phone"`
	CompanyEmail   shared.Optional[string]          `json:"company_email"`
	CompanyWebsite shared.Optional[string]          `json:"company_website"`
	CompanyLogo    shared.Optional[string]          `json:"company_logo"`
	TaxRate        shared.Optional[decimal.Decimal] `json:"tax_rate"`
	Currency       shared.Optional[string]          `json:"currency"`
	InvoicePrefix  shared.Optional[string]          `json:"invoice_prefix"`
	InvoiceFooter  shared.Optional[string]          `json:"invoice_footer"`
	BankName       shared.Optional[string]          `json:"bank_name"`
	BankIBAN       shared.Optional[string]          `json:"bank_iban"`
	BankBIC        shared.Optional[string]          `json:"bank_bic"`
	Language       shared.Optional[string]          `json:"language"`
}

// Patch converts the request into a domain patch
func (r UpdateSettingsRequest) Patch() billing.SettingsPatch {
	p := billing.SettingsPatch{
		CompanyName:    r.CompanyName,
		CompanyAddress: r.CompanyAddress,
		CompanyCity:    r.CompanyCity,
		CompanyState:   r.CompanyState,
		CompanyZip:     r.CompanyZip,
		CompanyCountry: r.CompanyCountry,
		CompanyPhone:   r.CompanyPhone,
		CompanyEmail:   r.CompanyEmail,
		CompanyWebsite: r.CompanyWebsite,
		CompanyLogo:    r.CompanyLogo,
		TaxRate:        r.TaxRate,
		Currency:       r.Currency,
		InvoicePrefix:  r.InvoicePrefix,
		InvoiceFooter:  r.InvoiceFooter,
		BankName:       r.BankName,
		BankIBAN:       r.BankIBAN,
		BankBIC:        r.BankBIC,
		Language:       r.Language,
	}
	if c, ok := r.Currency.Get(); ok {
		p.Currency = shared.Some(strings.ToUpper(strings.TrimSpace(c)))
	}
	if l, ok := r.Language.Get(); ok {
		p.Language = shared.Some(strings.ToLower(strings.TrimSpace(l)))
	}
	return p
}

// ResetResponse confirms a data reset
type ResetResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

// =============================================================================
// Statistics
// =============================================================================

// MonthlyRevenue is the paid revenue of one calendar month
type MonthlyRevenue struct {
	Month   string         `json:"month"`
	Revenue billing.Amount `json:"revenue"`
}

// InvoiceStats summarizes the invoices of an owner
type InvoiceStats struct {
	TotalInvoices    int64            `json:"total_invoices"`
	PaidInvoices     int64            `json:"paid_invoices"`
	PendingInvoices  int64            `json:"pending_invoices"`
	OverdueInvoices  int64            `json:"overdue_invoices"`
	TotalRevenue     billing.Amount   `json:"total_revenue"`
	RevenueThisMonth billing.Amount   `json:"revenue_this_month"`
	RevenueLastMonth billing.Amount   `json:"revenue_last_month"`
	MonthlyRevenue   []MonthlyRevenue `json:"monthly_revenue"`
}

// StatusBreakdown feeds the dashboard status chart
type StatusBreakdown struct {
	Labels []string `json:"labels"`
	Data   []int64  `json:"data"`
}

// Dashboard is the landing page summary
type Dashboard struct {
	TotalCustomers    int64            `json:"total_customers"`
	TotalInvoices     int64            `json:"total_invoices"`
	TotalRevenue      billing.Amount   `json:"total_revenue"`
	RevenueChange     billing.Amount   `json:"revenue_change"`
	PendingInvoices   int64            `json:"pending_invoices"`
	PaidInvoices      int64            `json:"paid_invoices"`
	OverdueInvoices   int64            `json:"overdue_invoices"`
	RevenueData       []MonthlyRevenue `json:"revenue_data"`
	InvoiceStatusData StatusBreakdown  `json:"invoice_status_data"`
}

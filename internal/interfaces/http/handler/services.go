package handler

import (
	"context"
	"time"

	billingapp "github.com/bizify/backend/internal/application/billing"
	identityapp "github.com/bizify/backend/internal/application/identity"
	partnerapp "github.com/bizify/backend/internal/application/partner"
	printingapp "github.com/bizify/backend/internal/application/printing"
	transferapp "github.com/bizify/backend/internal/application/transfer"
	"github.com/bizify/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// AuthService is the identity surface used by AuthHandler
type AuthService interface {
	Register(ctx context.Context, req identityapp.RegisterRequest) (*identityapp.UserResponse, error)
	Token(ctx context.Context, req identityapp.TokenRequest) (*identityapp.TokenResponse, error)
	Me(ctx context.Context, userID uuid.UUID) (*identityapp.UserResponse, error)
	CheckSetup(ctx context.Context) (*identityapp.SetupStatus, error)
}

// CustomerService is the customer surface used by CustomerHandler
type CustomerService interface {
	Create(ctx context.Context, ownerID uuid.UUID, req partnerapp.CreateCustomerRequest) (*partnerapp.CustomerResponse, error)
	GetByID(ctx context.Context, ownerID, id uuid.UUID) (*partnerapp.CustomerResponse, error)
	List(ctx context.Context, ownerID uuid.UUID, filter partnerapp.CustomerListFilter) (shared.Paginated[partnerapp.CustomerResponse], error)
	Update(ctx context.Context, ownerID, id uuid.UUID, req partnerapp.UpdateCustomerRequest) (*partnerapp.CustomerResponse, error)
	Delete(ctx context.Context, ownerID, id uuid.UUID) error
	Stats(ctx context.Context, ownerID uuid.UUID) (*partnerapp.CustomerStats, error)
}

// InvoiceService is the invoice surface used by InvoiceHandler
type InvoiceService interface {
	Create(ctx context.Context, ownerID uuid.UUID, req billingapp.CreateInvoiceRequest) (*billingapp.InvoiceResponse, error)
	GetByID(ctx context.Context, ownerID, id uuid.UUID) (*billingapp.InvoiceResponse, error)
	List(ctx context.Context, ownerID uuid.UUID, filter billingapp.InvoiceListFilter) (shared.Paginated[billingapp.InvoiceResponse], error)
	Update(ctx context.Context, ownerID, id uuid.UUID, req billingapp.UpdateInvoiceRequest) (*billingapp.InvoiceResponse, error)
	Delete(ctx context.Context, ownerID, id uuid.UUID) (*billingapp.DeletedInvoiceResponse, error)
}

// StatsService computes invoice statistics and the dashboard
type StatsService interface {
	InvoiceStats(ctx context.Context, ownerID uuid.UUID) (*billingapp.InvoiceStats, error)
	Dashboard(ctx context.Context, ownerID uuid.UUID) (*billingapp.Dashboard, error)
}

// PDFService renders invoice documents
type PDFService interface {
	Render(ctx context.Context, ownerID, invoiceID uuid.UUID) (*printingapp.PDFFile, error)
}

// PDFRenderRecorder observes PDF renders
type PDFRenderRecorder interface {
	RecordPDFRender(ctx context.Context, d time.Duration, err error)
}

// SettingsService is the company settings surface used by SettingsHandler
type SettingsService interface {
	Get(ctx context.Context, ownerID uuid.UUID) (*billingapp.SettingsResponse, error)
	Update(ctx context.Context, ownerID uuid.UUID, req billingapp.UpdateSettingsRequest) (*billingapp.SettingsResponse, error)
	Reset(ctx context.Context, ownerID uuid.UUID) (*billingapp.ResetResponse, error)
}

// ExportService renders or stores export projections
type ExportService interface {
	Render(ctx context.Context, ownerID uuid.UUID, format transferapp.Format, req transferapp.ExportRequest) (*transferapp.ExportFile, error)
	Store(ctx context.Context, ownerID uuid.UUID, format transferapp.Format, req transferapp.ExportRequest) (*transferapp.StoredExport, error)
}

// ExportRecorder observes completed exports
type ExportRecorder interface {
	RecordExport(ctx context.Context, format string, stored bool)
}

// ImportService previews and applies uploaded documents
type ImportService interface {
	Preview(ctx context.Context, ownerID uuid.UUID, upload transferapp.Upload) (*transferapp.ImportPreview, error)
	Import(ctx context.Context, ownerID uuid.UUID, upload transferapp.Upload, opts transferapp.ImportOptions) (*transferapp.ImportResult, error)
}

// Pinger checks a backing store
type Pinger interface {
	Ping() error
}

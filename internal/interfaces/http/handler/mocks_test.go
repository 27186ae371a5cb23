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
	"github.com/stretchr/testify/mock"
)

// MockAuthService is a mock implementation of AuthService
type MockAuthService struct {
	mock.Mock
}

func (m *MockAuthService) Register(ctx context.Context, req identityapp.RegisterRequest) (*identityapp.UserResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identityapp.UserResponse), args.Error(1)
}

func (m *MockAuthService) Token(ctx context.Context, req identityapp.TokenRequest) (*identityapp.TokenResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identityapp.TokenResponse), args.Error(1)
}

func (m *MockAuthService) Me(ctx context.Context, userID uuid.UUID) (*identityapp.UserResponse, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identityapp.UserResponse), args.Error(1)
}

func (m *MockAuthService) CheckSetup(ctx context.Context) (*identityapp.SetupStatus, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identityapp.SetupStatus), args.Error(1)
}

// MockCustomerService is a mock implementation of CustomerService
type MockCustomerService struct {
	mock.Mock
}

func (m *MockCustomerService) Create(ctx context.Context, ownerID uuid.UUID, req partnerapp.CreateCustomerRequest) (*partnerapp.CustomerResponse, error) {
	args := m.Called(ctx, ownerID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*partnerapp.CustomerResponse), args.Error(1)
}

func (m *MockCustomerService) GetByID(ctx context.Context, ownerID, id uuid.UUID) (*partnerapp.CustomerResponse, error) {
	args := m.Called(ctx, ownerID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*partnerapp.CustomerResponse), args.Error(1)
}

func (m *MockCustomerService) List(ctx context.Context, ownerID uuid.UUID, filter partnerapp.CustomerListFilter) (shared.Paginated[partnerapp.CustomerResponse], error) {
	args := m.Called(ctx, ownerID, filter)
	return args.Get(0).(shared.Paginated[partnerapp.CustomerResponse]), args.Error(1)
}

func (m *MockCustomerService) Update(ctx context.Context, ownerID, id uuid.UUID, req partnerapp.UpdateCustomerRequest) (*partnerapp.CustomerResponse, error) {
	args := m.Called(ctx, ownerID, id, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*partnerapp.CustomerResponse), args.Error(1)
}

func (m *MockCustomerService) Delete(ctx context.Context, ownerID, id uuid.UUID) error {
	args := m.Called(ctx, ownerID, id)
	return args.Error(0)
}

func (m *MockCustomerService) Stats(ctx context.Context, ownerID uuid.UUID) (*partnerapp.CustomerStats, error) {
	args := m.Called(ctx, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*partnerapp.CustomerStats), args.Error(1)
}

// MockInvoiceService is a mock implementation of InvoiceService
type MockInvoiceService struct {
	mock.Mock
}

func (m *MockInvoiceService) Create(ctx context.Context, ownerID uuid.UUID, req billingapp.CreateInvoiceRequest) (*billingapp.InvoiceResponse, error) {
	args := m.Called(ctx, ownerID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*billingapp.InvoiceResponse), args.Error(1)
}

func (m *MockInvoiceService) GetByID(ctx context.Context, ownerID, id uuid.UUID) (*billingapp.InvoiceResponse, error) {
	args := m.Called(ctx, ownerID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*billingapp.InvoiceResponse), args.Error(1)
}

func (m *MockInvoiceService) List(ctx context.Context, ownerID uuid.UUID, filter billingapp.InvoiceListFilter) (shared.Paginated[billingapp.InvoiceResponse], error) {
	args := m.Called(ctx, ownerID, filter)
	return args.Get(0).(shared.Paginated[billingapp.InvoiceResponse]), args.Error(1)
}

func (m *MockInvoiceService) Update(ctx context.Context, ownerID, id uuid.UUID, req billingapp.UpdateInvoiceRequest) (*billingapp.InvoiceResponse, error) {
	args := m.Called(ctx, ownerID, id, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*billingapp.InvoiceResponse), args.Error(1)
}

func (m *MockInvoiceService) Delete(ctx context.Context, ownerID, id uuid.UUID) (*billingapp.DeletedInvoiceResponse, error) {
	args := m.Called(ctx, ownerID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*billingapp.DeletedInvoiceResponse), args.Error(1)
}

// MockStatsService is a mock implementation of StatsService
type MockStatsService struct {
	mock.Mock
}

func (m *MockStatsService) InvoiceStats(ctx context.Context, ownerID uuid.UUID) (*billingapp.InvoiceStats, error) {
	args := m.Called(ctx, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*billingapp.InvoiceStats), args.Error(1)
}

func (m *MockStatsService) Dashboard(ctx context.Context, ownerID uuid.UUID) (*billingapp.Dashboard, error) {
	args := m.Called(ctx, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*billingapp.Dashboard), args.Error(1)
}

// MockPDFService is a mock implementation of PDFService
type MockPDFService struct {
	mock.Mock
}

func (m *MockPDFService) Render(ctx context.Context, ownerID, invoiceID uuid.UUID) (*printingapp.PDFFile, error) {
	args := m.Called(ctx, ownerID, invoiceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*printingapp.PDFFile), args.Error(1)
}

// MockSettingsService is a mock implementation of SettingsService
type MockSettingsService struct {
	mock.Mock
}

func (m *MockSettingsService) Get(ctx context.Context, ownerID uuid.UUID) (*billingapp.SettingsResponse, error) {
	args := m.Called(ctx, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*billingapp.SettingsResponse), args.Error(1)
}

func (m *MockSettingsService) Update(ctx context.Context, ownerID uuid.UUID, req billingapp.UpdateSettingsRequest) (*billingapp.SettingsResponse, error) {
	args := m.Called(ctx, ownerID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*billingapp.SettingsResponse), args.Error(1)
}

func (m *MockSettingsService) Reset(ctx context.Context, ownerID uuid.UUID) (*billingapp.ResetResponse, error) {
	args := m.Called(ctx, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*billingapp.ResetResponse), args.Error(1)
}

// MockExportService is a mock implementation of ExportService
type MockExportService struct {
	mock.Mock
}

func (m *MockExportService) Render(ctx context.Context, ownerID uuid.UUID, format transferapp.Format, req transferapp.ExportRequest) (*transferapp.ExportFile, error) {
	args := m.Called(ctx, ownerID, format, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*transferapp.ExportFile), args.Error(1)
}

func (m *MockExportService) Store(ctx context.Context, ownerID uuid.UUID, format transferapp.Format, req transferapp.ExportRequest) (*transferapp.StoredExport, error) {
	args := m.Called(ctx, ownerID, format, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*transferapp.StoredExport), args.Error(1)
}

// MockImportService is a mock implementation of ImportService
type MockImportService struct {
	mock.Mock
}

func (m *MockImportService) Preview(ctx context.Context, ownerID uuid.UUID, upload transferapp.Upload) (*transferapp.ImportPreview, error) {
	args := m.Called(ctx, ownerID, upload)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*transferapp.ImportPreview), args.Error(1)
}

func (m *MockImportService) Import(ctx context.Context, ownerID uuid.UUID, upload transferapp.Upload, opts transferapp.ImportOptions) (*transferapp.ImportResult, error) {
	args := m.Called(ctx, ownerID, upload, opts)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*transferapp.ImportResult), args.Error(1)
}

// recordingMetrics captures export and PDF observations
type recordingMetrics struct {
	exports    []string
	stored     []bool
	pdfRenders int
	pdfErrors  int
}

func (r *recordingMetrics) RecordExport(_ context.Context, format string, stored bool) {
	r.exports = append(r.exports, format)
	r.stored = append(r.stored, stored)
}

func (r *recordingMetrics) RecordPDFRender(_ context.Context, _ time.Duration, err error) {
	r.pdfRenders++
	if err != nil {
		r.pdfErrors++
	}
}

// stubPinger reports a fixed ping result
type stubPinger struct{ err error }

func (p stubPinger) Ping() error { return p.err }

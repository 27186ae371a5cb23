package transfer

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/bizify/backend/internal/domain/billing"
	"github.com/bizify/backend/internal/domain/identity"
	"github.com/bizify/backend/internal/domain/partner"
	"github.com/bizify/backend/internal/domain/shared"
	"github.com/bizify/backend/internal/domain/transfer"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ExportMeta describes the export run an encoder is writing for
type ExportMeta struct {
	OwnerID     uuid.UUID
	GeneratedAt time.Time
}

// Encoder renders a document into one export format
type Encoder interface {
	Encode(doc *transfer.Document, meta ExportMeta) ([]byte, error)
}

// ArchiveStore keeps rendered exports in object storage
type ArchiveStore interface {
	Upload(ctx context.Context, key string, data []byte, contentType string) error
	GenerateDownloadURL(ctx context.Context, key string, expiresIn time.Duration) (string, time.Time, error)
}

type formatSpec struct {
	prefix      string
	extension   string
	contentType string
}

var formatSpecs = map[Format]formatSpec{
	FormatJSON:   {"bizify_export_", ".json", "application/json"},
	FormatCSV:    {"bizify_export_", ".zip", "application/zip"},
	FormatExcel:  {"bizify_export_", ".xlsx", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"},
	FormatBackup: {"bizify_backup_", ".zip", "application/zip"},
}

// ExportService builds export documents and renders them
type ExportService struct {
	userRepo     identity.UserRepository
	customerRepo partner.CustomerRepository
	invoiceRepo  billing.InvoiceRepository
	settingsRepo billing.SettingsRepository
	encoders     map[Format]Encoder
	store        ArchiveStore
	logger       *zap.Logger
	now          func() time.Time
}

// NewExportService creates a new export service
func NewExportService(
	userRepo identity.UserRepository,
	customerRepo partner.CustomerRepository,
	invoiceRepo billing.InvoiceRepository,
	settingsRepo billing.SettingsRepository,
	logger *zap.Logger,
) *ExportService {
	return &ExportService{
		userRepo:     userRepo,
		customerRepo: customerRepo,
		invoiceRepo:  invoiceRepo,
		settingsRepo: settingsRepo,
		encoders:     make(map[Format]Encoder),
		logger:       logger,
		now:          time.Now,
	}
}

// RegisterEncoder installs the renderer for a format
func (s *ExportService) RegisterEncoder(format Format, enc Encoder) {
	s.encoders[format] = enc
}

// SetArchiveStore enables storing exports in object storage
func (s *ExportService) SetArchiveStore(store ArchiveStore) {
	s.store = store
}

// CanStore reports whether an archive store is configured
func (s *ExportService) CanStore() bool {
	return s.store != nil
}

// Export assembles the document selected by req
func (s *ExportService) Export(ctx context.Context, ownerID uuid.UUID, req ExportRequest) (*transfer.Document, error) {
	user, err := s.userRepo.FindByID(ctx, ownerID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewDomainError(shared.CodeNotFound, "User not found")
		}
		return nil, err
	}
	doc := transfer.NewDocument(user.Name, user.Email, s.now())

	if req.settings() {
		settings, err := s.settingsRepo.FindCurrent(ctx, ownerID)
		switch {
		case err == nil:
			doc.Settings = transfer.SettingsRecordFrom(settings)
		case !errors.Is(err, shared.ErrNotFound):
			return nil, err
		}
	}

	if req.customers() {
		customers, err := s.loadCustomers(ctx, ownerID, req.CustomerIDs)
		if err != nil {
			return nil, err
		}
		doc.Customers = make([]transfer.CustomerRecord, 0, len(customers))
		for i := range customers {
			doc.Customers = append(doc.Customers, transfer.CustomerRecordFrom(&customers[i]))
		}
	}

	if req.invoices() {
		invoices, err := s.invoiceRepo.FindForExport(ctx, ownerID, billing.ExportCriteria{
			CustomerIDs: req.CustomerIDs,
			DateFrom:    req.DateFrom.Ptr(),
			DateTo:      req.DateTo.Ptr(),
		})
		if err != nil {
			return nil, err
		}
		refs, err := s.customerRefs(ctx, ownerID, invoices)
		if err != nil {
			return nil, err
		}
		doc.Invoices = make([]transfer.InvoiceRecord, 0, len(invoices))
		for i := range invoices {
			c := refs[invoices[i].CustomerID]
			rec := transfer.InvoiceRecordFrom(&invoices[i], c.Email)
			rec.CustomerName = c.Name
			doc.Invoices = append(doc.Invoices, rec)
		}
	}

	return doc, nil
}

func (s *ExportService) loadCustomers(ctx context.Context, ownerID uuid.UUID, ids []uuid.UUID) ([]partner.Customer, error) {
	if len(ids) > 0 {
		return s.customerRepo.FindByIDs(ctx, ownerID, ids)
	}
	// PageSize 0 lists every customer
	return s.customerRepo.FindAllForOwner(ctx, ownerID, shared.Filter{OrderBy: "created_at", OrderDir: "asc"})
}

func (s *ExportService) customerRefs(ctx context.Context, ownerID uuid.UUID, invoices []billing.Invoice) (map[uuid.UUID]partner.Customer, error) {
	seen := make(map[uuid.UUID]bool)
	var ids []uuid.UUID
	for _, inv := range invoices {
		if !seen[inv.CustomerID] {
			seen[inv.CustomerID] = true
			ids = append(ids, inv.CustomerID)
		}
	}
	refs := make(map[uuid.UUID]partner.Customer, len(ids))
	if len(ids) == 0 {
		return refs, nil
	}
	customers, err := s.customerRepo.FindByIDs(ctx, ownerID, ids)
	if err != nil {
		return nil, err
	}
	for _, c := range customers {
		refs[c.ID] = c
	}
	return refs, nil
}

// Render exports and encodes into format. Backups ignore req and always
// contain everything.
func (s *ExportService) Render(ctx context.Context, ownerID uuid.UUID, format Format, req ExportRequest) (*ExportFile, error) {
	layout, ok := formatSpecs[format]
	enc := s.encoders[format]
	if !ok || enc == nil {
		return nil, shared.NewDomainError(shared.CodeInvalidInput, fmt.Sprintf("Unsupported export format: %s", format))
	}
	if format == FormatBackup {
		req = FullExport()
	}

	doc, err := s.Export(ctx, ownerID, req)
	if err != nil {
		return nil, err
	}
	data, err := enc.Encode(doc, ExportMeta{OwnerID: ownerID, GeneratedAt: doc.ExportDate})
	if err != nil {
		return nil, fmt.Errorf("encode %s export: %w", format, err)
	}

	s.logger.Info("Export rendered",
		zap.String("owner_id", ownerID.String()),
		zap.String("format", string(format)),
		zap.Int("customers", len(doc.Customers)),
		zap.Int("invoices", len(doc.Invoices)),
		zap.Int("bytes", len(data)))

	return &ExportFile{
		Filename:    layout.prefix + doc.ExportDate.Format("20060102_150405") + layout.extension,
		ContentType: layout.contentType,
		Data:        data,
	}, nil
}

// Store renders an export, uploads it under backups/{owner}/ and returns a
// presigned download link.
func (s *ExportService) Store(ctx context.Context, ownerID uuid.UUID, format Format, req ExportRequest) (*StoredExport, error) {
	if s.store == nil {
		return nil, shared.NewDomainError(shared.CodeInvalidState, "Object storage is not configured")
	}
	file, err := s.Render(ctx, ownerID, format, req)
	if err != nil {
		return nil, err
	}

	key := fmt.Sprintf("backups/%s/%s", ownerID, file.Filename)
	if err := s.store.Upload(ctx, key, file.Data, file.ContentType); err != nil {
		return nil, fmt.Errorf("store export: %w", err)
	}
	url, expiresAt, err := s.store.GenerateDownloadURL(ctx, key, 0)
	if err != nil {
		return nil, fmt.Errorf("presign export: %w", err)
	}

	s.logger.Info("Export stored", zap.String("owner_id", ownerID.String()), zap.String("key", key))
	return &StoredExport{Filename: file.Filename, Key: key, DownloadURL: url, ExpiresAt: expiresAt}, nil
}

package transfer

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	billingapp "github.com/bizify/backend/internal/application/billing"
	"github.com/bizify/backend/internal/domain/billing"
	"github.com/bizify/backend/internal/domain/partner"
	"github.com/bizify/backend/internal/domain/shared"
	"github.com/bizify/backend/internal/domain/transfer"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// Phase is a step of the import state machine
type Phase string

const (
	PhaseIdle        Phase = "idle"
	PhaseParsing     Phase = "parsing"
	PhaseParseFailed Phase = "parse_failed"
	PhaseValidating  Phase = "validating"
	PhaseReconciling Phase = "reconciling"
	PhaseCommitted   Phase = "committed"
	PhaseRolledBack  Phase = "rolled_back"
)

// SourceReader turns an uploaded file into the JSON bytes of a document
type SourceReader interface {
	Read(filename string, data []byte) ([]byte, error)
}

// SourceReaderFunc adapts a function to SourceReader
type SourceReaderFunc func(filename string, data []byte) ([]byte, error)

func (f SourceReaderFunc) Read(filename string, data []byte) ([]byte, error) {
	return f(filename, data)
}

// ImportMetrics receives the outcome of finished imports
type ImportMetrics interface {
	RecordImport(ctx context.Context, success bool, stats ImportStats)
}

// ImportService previews and applies uploaded documents
type ImportService struct {
	customerRepo partner.CustomerRepository
	invoiceRepo  billing.InvoiceRepository
	settingsRepo billing.SettingsRepository
	txScope      billingapp.TransactionScope
	reader       SourceReader
	metrics      ImportMetrics
	logger       *zap.Logger
	now          func() time.Time
}

// NewImportService creates a new import service
func NewImportService(
	customerRepo partner.CustomerRepository,
	invoiceRepo billing.InvoiceRepository,
	settingsRepo billing.SettingsRepository,
	txScope billingapp.TransactionScope,
	reader SourceReader,
	logger *zap.Logger,
) *ImportService {
	return &ImportService{
		customerRepo: customerRepo,
		invoiceRepo:  invoiceRepo,
		settingsRepo: settingsRepo,
		txScope:      txScope,
		reader:       reader,
		logger:       logger,
		now:          time.Now,
	}
}

// SetMetrics attaches an import outcome recorder
func (s *ImportService) SetMetrics(m ImportMetrics) {
	s.metrics = m
}

// importRun tracks one pass through the state machine
type importRun struct {
	ownerID uuid.UUID
	phase   Phase
	logger  *zap.Logger
}

func (r *importRun) enter(p Phase) {
	r.logger.Debug("Import phase",
		zap.String("owner_id", r.ownerID.String()),
		zap.String("from", string(r.phase)),
		zap.String("to", string(p)))
	r.phase = p
}

func (s *ImportService) parse(run *importRun, upload Upload) (*parsedDocument, error) {
	run.enter(PhaseParsing)
	raw, err := s.reader.Read(upload.Filename, upload.Data)
	if err != nil {
		run.enter(PhaseParseFailed)
		return nil, err
	}
	doc, err := readDocument(raw)
	if err != nil {
		run.enter(PhaseParseFailed)
		return nil, err
	}
	run.enter(PhaseValidating)
	return doc, nil
}

// Preview reports totals, conflicts and problems of an upload without writing.
func (s *ImportService) Preview(ctx context.Context, ownerID uuid.UUID, upload Upload) (*ImportPreview, error) {
	run := &importRun{ownerID: ownerID, phase: PhaseIdle, logger: s.logger}
	doc, err := s.parse(run, upload)
	if err != nil {
		return nil, err
	}

	preview := &ImportPreview{
		TotalCustomers:   len(doc.customers),
		TotalInvoices:    len(doc.invoices),
		HasSettings:      doc.settings != nil,
		Conflicts:        []Conflict{},
		ValidationErrors: append([]string{}, doc.problems...),
		Warnings:         []string{},
	}
	if doc.hasVersion {
		if err := transfer.CheckVersion(doc.version); err != nil {
			preview.ValidationErrors = append(preview.ValidationErrors, err.Error())
		}
	}

	for _, c := range doc.customers {
		if !c.valid {
			continue
		}
		existing, err := s.customerRepo.FindByEmail(ctx, ownerID, partner.NormalizeEmail(c.record.Email))
		if err != nil {
			if errors.Is(err, shared.ErrNotFound) {
				continue
			}
			return nil, err
		}
		preview.Conflicts = append(preview.Conflicts, Conflict{
			Type:         "customer",
			Identifier:   c.record.Email,
			ExistingName: existing.Name,
			NewName:      c.record.Name,
			Action:       "update",
		})
	}

	for _, inv := range doc.invoices {
		if !inv.valid {
			continue
		}
		rec := inv.record
		existing, err := s.invoiceRepo.FindByNumber(ctx, ownerID, rec.InvoiceNumber)
		switch {
		case err == nil:
			preview.Conflicts = append(preview.Conflicts, Conflict{
				Type:           "invoice",
				Identifier:     rec.InvoiceNumber,
				ExistingStatus: string(existing.Status),
				NewStatus:      rec.Status,
				Action:         "skip or update",
			})
		case !errors.Is(err, shared.ErrNotFound):
			return nil, err
		}

		if doc.hasCustomer(rec.CustomerEmail) {
			continue
		}
		_, err = s.customerRepo.FindByEmail(ctx, ownerID, partner.NormalizeEmail(rec.CustomerEmail))
		if errors.Is(err, shared.ErrNotFound) {
			preview.Warnings = append(preview.Warnings, fmt.Sprintf(
				"Invoice %s references customer %s which doesn't exist", rec.InvoiceNumber, rec.CustomerEmail))
		} else if err != nil {
			return nil, err
		}
	}

	if doc.settings != nil {
		existing, err := s.settingsRepo.FindCurrent(ctx, ownerID)
		switch {
		case err == nil:
			preview.Conflicts = append(preview.Conflicts, Conflict{
				Type:            "settings",
				Identifier:      "company_settings",
				ExistingCompany: existing.CompanyName,
				NewCompany:      doc.settings.CompanyName,
				Action:          "replace",
			})
		case !errors.Is(err, shared.ErrNotFound):
			return nil, err
		}
	}

	return preview, nil
}

// Import applies an upload in one transaction: settings, then customers, then
// invoices. Parse failures, a non-object document and unsupported versions are
// returned as errors before anything is written. Every other outcome is reported in the result;
// per-record problems are collected and the remaining records still import.
func (s *ImportService) Import(ctx context.Context, ownerID uuid.UUID, upload Upload, opts ImportOptions) (*ImportResult, error) {
	run := &importRun{ownerID: ownerID, phase: PhaseIdle, logger: s.logger}
	doc, err := s.parse(run, upload)
	if err != nil {
		return nil, err
	}
	if doc.notObject {
		run.enter(PhaseParseFailed)
		return nil, shared.NewDomainError(shared.CodeParseFailure, msgNotAnObject)
	}
	if doc.hasVersion {
		if err := transfer.CheckVersion(doc.version); err != nil {
			run.enter(PhaseParseFailed)
			return nil, err
		}
	}

	rec := &reconciler{
		ownerID: ownerID,
		opts:    opts,
		doc:     doc,
		now:     s.now(),
		errors:  append([]string{}, doc.problems...),
	}

	run.enter(PhaseReconciling)
	err = s.txScope.Execute(ctx, func(repos billingapp.TransactionalRepositories) error {
		return rec.apply(ctx, repos)
	})

	result := &ImportResult{Stats: rec.stats, Errors: rec.errors, Warnings: rec.warnings}
	if rec.warnings == nil {
		result.Warnings = []string{}
	}
	if err != nil {
		run.enter(PhaseRolledBack)
		s.logger.Error("Import rolled back",
			zap.String("owner_id", ownerID.String()),
			zap.Error(err))
		result.Success = false
		result.Message = "Import failed: " + err.Error()
		result.Errors = append(result.Errors, err.Error())
	} else {
		run.enter(PhaseCommitted)
		result.Success = true
		result.Message = successMessage(rec.stats)
		s.logger.Info("Import committed",
			zap.String("owner_id", ownerID.String()),
			zap.Int("customers_created", rec.stats.CustomersCreated),
			zap.Int("customers_updated", rec.stats.CustomersUpdated),
			zap.Int("invoices_created", rec.stats.InvoicesCreated),
			zap.Int("invoices_updated", rec.stats.InvoicesUpdated),
			zap.Int("invoices_skipped", rec.stats.InvoicesSkipped),
			zap.Int("errors", len(rec.errors)))
	}
	result.Phase = run.phase

	if s.metrics != nil {
		s.metrics.RecordImport(ctx, result.Success, result.Stats)
	}
	return result, nil
}

func successMessage(st ImportStats) string {
	var parts []string
	if st.CustomersCreated > 0 {
		parts = append(parts, fmt.Sprintf("%d customers created", st.CustomersCreated))
	}
	if st.CustomersUpdated > 0 {
		parts = append(parts, fmt.Sprintf("%d customers updated", st.CustomersUpdated))
	}
	if st.InvoicesCreated > 0 {
		parts = append(parts, fmt.Sprintf("%d invoices created", st.InvoicesCreated))
	}
	if st.InvoicesUpdated > 0 {
		parts = append(parts, fmt.Sprintf("%d invoices updated", st.InvoicesUpdated))
	}
	if st.SettingsUpdated {
		parts = append(parts, "company settings updated")
	}
	if len(parts) == 0 {
		return "No data imported"
	}
	return "Successfully imported: " + strings.Join(parts, ", ")
}

// ============================================================================
// Reconciliation
// ============================================================================

// reconciler merges one parsed document into the stored data of an owner.
// Returned errors abort the transaction; record level problems go to errors.
type reconciler struct {
	ownerID   uuid.UUID
	opts      ImportOptions
	doc       *parsedDocument
	now       time.Time
	customers map[string]uuid.UUID
	stats     ImportStats
	errors    []string
	warnings  []string
}

func (r *reconciler) fail(format string, args ...any) {
	r.errors = append(r.errors, fmt.Sprintf(format, args...))
}

func (r *reconciler) warn(format string, args ...any) {
	r.warnings = append(r.warnings, fmt.Sprintf(format, args...))
}

func (r *reconciler) apply(ctx context.Context, repos billingapp.TransactionalRepositories) error {
	r.customers = make(map[string]uuid.UUID)

	if r.opts.ImportSettings && r.doc.settings != nil {
		if err := r.importSettings(ctx, repos); err != nil {
			return err
		}
	}
	if r.opts.ImportCustomers {
		for _, entry := range r.doc.customers {
			if err := ctx.Err(); err != nil {
				return err
			}
			if err := r.importCustomer(ctx, repos, entry); err != nil {
				return err
			}
		}
	}
	if r.opts.ImportInvoices {
		for _, entry := range r.doc.invoices {
			if err := ctx.Err(); err != nil {
				return err
			}
			if err := r.importInvoice(ctx, repos, entry); err != nil {
				return err
			}
		}
	}
	return nil
}

func (r *reconciler) importSettings(ctx context.Context, repos billingapp.TransactionalRepositories) error {
	settings, err := r.doc.settings.ToSettings(r.ownerID)
	if err != nil {
		r.fail("Failed to import settings: %s", err.Error())
		return nil
	}
	if err := repos.Settings().ReplaceCurrent(ctx, settings); err != nil {
		return err
	}
	r.stats.SettingsUpdated = true
	return nil
}

func (r *reconciler) importCustomer(ctx context.Context, repos billingapp.TransactionalRepositories, entry customerEntry) error {
	if !entry.valid {
		return nil
	}
	rec := entry.record
	email := partner.NormalizeEmail(rec.Email)

	existing, err := repos.Customers().FindByEmail(ctx, r.ownerID, email)
	if err != nil && !errors.Is(err, shared.ErrNotFound) {
		return err
	}

	if existing != nil {
		if r.opts.UpdateExisting {
			if err := existing.ApplyPatch(customerPatch(entry)); err != nil {
				r.fail("Error importing customer %s: %s", rec.Email, err.Error())
				return nil
			}
			if err := repos.Customers().Save(ctx, existing); err != nil {
				return err
			}
			r.stats.CustomersUpdated++
		}
		r.customers[email] = existing.ID
		return nil
	}

	customer, err := partner.NewCustomer(r.ownerID, rec.Profile())
	if err != nil {
		r.fail("Error importing customer %s: %s", rec.Email, err.Error())
		return nil
	}
	if err := repos.Customers().Save(ctx, customer); err != nil {
		return err
	}
	r.customers[email] = customer.ID
	r.stats.CustomersCreated++
	return nil
}

// customerPatch keeps stored values for fields the record did not carry.
// The email is the match key and is never rewritten.
func customerPatch(entry customerEntry) partner.ProfilePatch {
	field := func(key, value string) shared.Optional[string] {
		if entry.present[key] {
			return shared.Some(value)
		}
		return shared.None[string]()
	}
	rec := entry.record
	return partner.ProfilePatch{
		Name:    field("name", rec.Name),
		Phone:   field("phone", rec.Phone),
		Address: field("address", rec.Address),
		City:    field("city", rec.City),
		State:   field("state", rec.State),
		ZipCode: field("zip_code", rec.ZipCode),
		Country: field("country", rec.Country),
		Company: field("company", rec.Company),
		Notes:   field("notes", rec.Notes),
	}
}

func (r *reconciler) importInvoice(ctx context.Context, repos billingapp.TransactionalRepositories, entry invoiceEntry) error {
	if !entry.valid {
		return nil
	}
	rec := entry.record
	number := rec.InvoiceNumber

	existing, err := repos.Invoices().FindByNumber(ctx, r.ownerID, number)
	if err != nil && !errors.Is(err, shared.ErrNotFound) {
		return err
	}
	if existing != nil {
		if r.opts.SkipDuplicates {
			r.warn("Skipped duplicate invoice: %s", number)
			r.stats.InvoicesSkipped++
			return nil
		}
		if !r.opts.UpdateExisting {
			r.fail("Invoice %s already exists", number)
			return nil
		}
	}

	customerID, ok, err := r.resolveCustomer(ctx, repos, rec.CustomerEmail)
	if err != nil {
		return err
	}
	if !ok {
		r.fail("Customer not found for invoice %s: %s", number, rec.CustomerEmail)
		return nil
	}

	fields := r.invoiceFields(rec)

	if existing != nil {
		patch := billing.InvoicePatch{
			CustomerID: shared.Some(customerID),
			DueDate:    shared.Some(fields.dueDate),
			Status:     shared.Some(fields.status),
			Notes:      shared.Some(rec.Notes),
			TaxRate:    shared.Some(rec.TaxRate.Decimal()),
			Discount:   shared.Some(rec.Discount.Decimal()),
			Items:      shared.Some(fields.items),
		}
		if fields.issueDate != nil {
			patch.IssueDate = shared.Some(*fields.issueDate)
		}
		if err := existing.ApplyPatch(patch); err != nil {
			r.fail("Failed to import invoice %s: %s", number, err.Error())
			return nil
		}
		existing.ClearDomainEvents()
		if err := repos.Invoices().Save(ctx, existing); err != nil {
			return err
		}
		r.stats.InvoicesUpdated++
		return nil
	}

	inv, err := billing.NewInvoice(r.ownerID, number, billing.InvoiceDraft{
		CustomerID: customerID,
		Items:      fields.items,
		TaxRate:    rec.TaxRate.Decimal(),
		Discount:   rec.Discount.Decimal(),
		IssueDate:  fields.issueDate,
		DueDate:    fields.dueDate,
		Status:     fields.status,
		Notes:      rec.Notes,
	}, r.now)
	if err != nil {
		r.fail("Failed to import invoice %s: %s", number, err.Error())
		return nil
	}
	inv.ClearDomainEvents()
	if err := repos.Invoices().Save(ctx, inv); err != nil {
		return err
	}
	r.stats.InvoicesCreated++
	return nil
}

// resolveCustomer looks the email up among customers imported in this run,
// then among stored customers.
func (r *reconciler) resolveCustomer(ctx context.Context, repos billingapp.TransactionalRepositories, email string) (uuid.UUID, bool, error) {
	key := partner.NormalizeEmail(email)
	if id, ok := r.customers[key]; ok {
		return id, true, nil
	}
	c, err := repos.Customers().FindByEmail(ctx, r.ownerID, key)
	if errors.Is(err, shared.ErrNotFound) {
		return uuid.Nil, false, nil
	}
	if err != nil {
		return uuid.Nil, false, err
	}
	r.customers[key] = c.ID
	return c.ID, true, nil
}

type invoiceFields struct {
	issueDate *time.Time
	dueDate   *time.Time
	status    billing.InvoiceStatus
	items     []billing.LineDraft
}

// invoiceFields converts the loosely typed record. Unreadable dates and
// statuses are warned about and replaced by defaults; unusable items are
// reported and left out.
func (r *reconciler) invoiceFields(rec transfer.InvoiceRecord) invoiceFields {
	f := invoiceFields{status: billing.InvoiceStatusDraft}

	if rec.IssueDate != "" {
		if t, err := billing.ParseTimestamp(rec.IssueDate); err == nil {
			f.issueDate = &t
		} else {
			r.warn("Invalid issue_date for invoice %s", rec.InvoiceNumber)
		}
	}
	if rec.DueDate != nil && *rec.DueDate != "" {
		if t, err := billing.ParseTimestamp(*rec.DueDate); err == nil {
			f.dueDate = &t
		} else {
			r.warn("Invalid due_date for invoice %s", rec.InvoiceNumber)
		}
	}
	if rec.Status != "" {
		if status, err := billing.ParseInvoiceStatus(rec.Status); err == nil {
			f.status = status
		} else {
			r.warn("Invalid status for invoice %s: %s", rec.InvoiceNumber, rec.Status)
		}
	}

	f.items = make([]billing.LineDraft, 0, len(rec.Items))
	for _, item := range rec.Items {
		qty := decimal.NewFromInt(1)
		if item.Quantity != nil {
			qty = item.Quantity.Decimal()
		}
		price := item.UnitPrice.Decimal()
		if _, err := billing.ItemAmount(qty, price); err != nil {
			r.fail("Failed to import item for invoice %s: %s", rec.InvoiceNumber, err.Error())
			continue
		}
		f.items = append(f.items, billing.LineDraft{
			Description: item.Description,
			Quantity:    qty,
			UnitPrice:   price,
		})
	}
	return f
}

func equalEmail(a, b string) bool {
	return partner.NormalizeEmail(a) == partner.NormalizeEmail(b)
}

package printing

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/bizify/backend/internal/domain/billing"
	"github.com/bizify/backend/internal/domain/partner"
	"github.com/bizify/backend/internal/domain/shared"
	infra "github.com/bizify/backend/internal/infrastructure/printing"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// InvoicePDFService renders invoices as PDF documents
type InvoicePDFService struct {
	invoiceRepo  billing.InvoiceRepository
	customerRepo partner.CustomerRepository
	settingsRepo billing.SettingsRepository
	renderer     infra.PDFRenderer
	logger       *zap.Logger
}

// NewInvoicePDFService creates a new InvoicePDFService
func NewInvoicePDFService(
	invoiceRepo billing.InvoiceRepository,
	customerRepo partner.CustomerRepository,
	settingsRepo billing.SettingsRepository,
	renderer infra.PDFRenderer,
	logger *zap.Logger,
) *InvoicePDFService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &InvoicePDFService{
		invoiceRepo:  invoiceRepo,
		customerRepo: customerRepo,
		settingsRepo: settingsRepo,
		renderer:     renderer,
		logger:       logger,
	}
}

// Render draws one invoice using the owner's company settings for the
// letterhead, language and currency
func (s *InvoicePDFService) Render(ctx context.Context, ownerID, invoiceID uuid.UUID) (*PDFFile, error) {
	inv, err := s.invoiceRepo.FindByIDForOwner(ctx, ownerID, invoiceID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewDomainError(shared.CodeNotFound, "Invoice not found")
		}
		return nil, err
	}

	customer, err := s.customerRepo.FindByIDForOwner(ctx, ownerID, inv.CustomerID)
	if err != nil && !errors.Is(err, shared.ErrNotFound) {
		return nil, err
	}

	settings, err := s.settingsRepo.FindCurrent(ctx, ownerID)
	switch {
	case errors.Is(err, shared.ErrNotFound):
		settings = billing.NewRegistrationSettings(ownerID)
	case err != nil:
		return nil, err
	}

	result, err := s.renderer.Render(ctx, buildDocument(inv, customer, settings))
	if err != nil {
		s.logger.Error("failed to render invoice PDF",
			zap.String("invoice_id", inv.ID.String()),
			zap.Error(err))
		return nil, fmt.Errorf("render invoice %s: %w", inv.InvoiceNumber, err)
	}

	s.logger.Info("invoice PDF generated",
		zap.String("invoice_id", inv.ID.String()),
		zap.String("invoice_number", inv.InvoiceNumber),
		zap.Duration("duration", result.RenderDuration))

	return &PDFFile{
		Filename:    "invoice_" + safeFilename(inv.InvoiceNumber) + ".pdf",
		ContentType: "application/pdf",
		Data:        result.PDFData,
	}, nil
}

func buildDocument(inv *billing.Invoice, customer *partner.Customer, settings *billing.Settings) *infra.InvoiceDocument {
	doc := &infra.InvoiceDocument{
		Number:    inv.InvoiceNumber,
		IssueDate: inv.IssueDate,
		DueDate:   inv.DueDate,
		Status:    string(inv.Status),
		Notes:     inv.Notes,
		TaxRate:   inv.TaxRate,
		Discount:  inv.AppliedDiscount(),
		Subtotal:  inv.Subtotal,
		TaxAmount: inv.TaxAmount,
		Total:     inv.Total,
		Lines:     make([]infra.InvoiceLine, 0, len(inv.Items)),
		Company: infra.CompanyInfo{
			Name:     settings.CompanyName,
			Address:  settings.CompanyAddress,
			City:     settings.CompanyCity,
			State:    settings.CompanyState,
			Zip:      settings.CompanyZip,
			Country:  settings.CompanyCountry,
			Phone:    settings.CompanyPhone,
			Email:    settings.CompanyEmail,
			Website:  settings.CompanyWebsite,
			BankName: settings.BankName,
			BankIBAN: settings.BankIBAN,
			BankBIC:  settings.BankBIC,
		},
		Language: settings.Language,
		Currency: settings.Currency,
	}
	// the stock footer is replaced by the localized thank-you line
	if settings.InvoiceFooter != billing.DefaultFooter {
		doc.Company.Footer = settings.InvoiceFooter
	}
	if customer != nil {
		doc.Customer = infra.CustomerInfo{
			Name:    customer.Name,
			Company: customer.Company,
			Address: customer.Address,
			City:    customer.City,
			State:   customer.State,
			Zip:     customer.ZipCode,
			Country: customer.Country,
			Email:   customer.Email,
		}
	}
	for _, item := range inv.Items {
		doc.Lines = append(doc.Lines, infra.InvoiceLine{
			Description: item.Description,
			Quantity:    item.Quantity,
			UnitPrice:   item.UnitPrice,
			Amount:      item.Amount,
		})
	}
	return doc
}

// safeFilename keeps invoice numbers usable in a Content-Disposition header
func safeFilename(s string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_', r == '.':
			return r
		default:
			return '_'
		}
	}, s)
}

package transfer

import (
	"time"

	"github.com/bizify/backend/internal/domain/billing"
	"github.com/google/uuid"
)

// Format names an export projection
type Format string

const (
	FormatJSON   Format = "json"
	FormatCSV    Format = "csv"
	FormatExcel  Format = "excel"
	FormatBackup Format = "backup"
)

// ParseFormat validates a format name from a request path
func ParseFormat(s string) (Format, bool) {
	switch f := Format(s); f {
	case FormatJSON, FormatCSV, FormatExcel, FormatBackup:
		return f, true
	}
	return "", false
}

// ExportRequest selects what goes into an export. Absent include flags default to true.
type ExportRequest struct {
	IncludeCustomers *bool              `json:"include_customers"`
	IncludeInvoices  *bool              `json:"include_invoices"`
	IncludeSettings  *bool              `json:"include_settings"`
	CustomerIDs      []uuid.UUID        `json:"customer_ids"`
	DateFrom         *billing.Timestamp `json:"date_from"`
	DateTo           *billing.Timestamp `json:"date_to"`
}

// FullExport selects everything; backups always use it.
func FullExport() ExportRequest {
	return ExportRequest{}
}

func (r ExportRequest) customers() bool { return r.IncludeCustomers == nil || *r.IncludeCustomers }
func (r ExportRequest) invoices() bool  { return r.IncludeInvoices == nil || *r.IncludeInvoices }
func (r ExportRequest) settings() bool  { return r.IncludeSettings == nil || *r.IncludeSettings }

// ExportFile is a rendered export ready to be sent as a download
type ExportFile struct {
	Filename    string
	ContentType string
	Data        []byte
}

// StoredExport points at an export uploaded to object storage
type StoredExport struct {
	Filename    string    `json:"filename"`
	Key         string    `json:"key"`
	DownloadURL string    `json:"download_url"`
	ExpiresAt   time.Time `json:"expires_at"`
}

// Upload is a file received for import
type Upload struct {
	Filename string
	Data     []byte
}

// ImportOptions controls how an import merges into existing data
type ImportOptions struct {
	UpdateExisting  bool `json:"update_existing" form:"update_existing"`
	ImportSettings  bool `json:"import_settings" form:"import_settings"`
	ImportCustomers bool `json:"import_customers" form:"import_customers"`
	ImportInvoices  bool `json:"import_invoices" form:"import_invoices"`
	SkipDuplicates  bool `json:"skip_duplicates" form:"skip_duplicates"`
}

// DefaultImportOptions imports every section and skips invoices that already exist
func DefaultImportOptions() ImportOptions {
	return ImportOptions{
		ImportSettings:  true,
		ImportCustomers: true,
		ImportInvoices:  true,
		SkipDuplicates:  true,
	}
}

// Conflict describes an imported record that collides with stored data
type Conflict struct {
	Type            string `json:"type"`
	Identifier      string `json:"identifier"`
	ExistingName    string `json:"existing_name,omitempty"`
	NewName         string `json:"new_name,omitempty"`
	ExistingStatus  string `json:"existing_status,omitempty"`
	NewStatus       string `json:"new_status,omitempty"`
	ExistingCompany string `json:"existing_company,omitempty"`
	NewCompany      string `json:"new_company,omitempty"`
	Action          string `json:"action"`
}

// ImportPreview summarizes what an import would do without writing anything
type ImportPreview struct {
	TotalCustomers   int        `json:"total_customers"`
	TotalInvoices    int        `json:"total_invoices"`
	HasSettings      bool       `json:"has_settings"`
	Conflicts        []Conflict `json:"conflicts"`
	ValidationErrors []string   `json:"validation_errors"`
	Warnings         []string   `json:"warnings"`
}

// ImportStats counts the writes of one import
type ImportStats struct {
	CustomersCreated int  `json:"customers_created"`
	CustomersUpdated int  `json:"customers_updated"`
	InvoicesCreated  int  `json:"invoices_created"`
	InvoicesUpdated  int  `json:"invoices_updated"`
	InvoicesSkipped  int  `json:"invoices_skipped"`
	SettingsUpdated  bool `json:"settings_updated"`
}

// ImportResult is returned by every import that got past parsing
type ImportResult struct {
	Success  bool        `json:"success"`
	Message  string      `json:"message"`
	Stats    ImportStats `json:"stats"`
	Errors   []string    `json:"errors"`
	Warnings []string    `json:"warnings"`
	Phase    Phase       `json:"-"`
}

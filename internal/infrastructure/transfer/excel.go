package transferio

import (
	"fmt"
	"unicode/utf8"

	transferapp "github.com/bizify/backend/internal/application/transfer"
	"github.com/bizify/backend/internal/domain/transfer"
	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
)

// Workbook sheet names
const (
	SheetCustomers    = "Customers"
	SheetInvoices     = "Invoices"
	SheetInvoiceItems = "Invoice Items"
	SheetSettings     = "Company Settings"
)

const defaultSheet = "Sheet1"

// ExcelEncoder writes an xlsx workbook with one sheet per exported section
type ExcelEncoder struct{}

// NewExcelEncoder creates an Excel encoder
func NewExcelEncoder() *ExcelEncoder {
	return &ExcelEncoder{}
}

// sheetWriter appends rows to one sheet and tracks column widths
type sheetWriter struct {
	f      *excelize.File
	name   string
	row    int
	widths []int
}

func (w *sheetWriter) append(values ...any) error {
	w.row++
	cell, err := excelize.CoordinatesToCellName(1, w.row)
	if err != nil {
		return err
	}
	if err := w.f.SetSheetRow(w.name, cell, &values); err != nil {
		return fmt.Errorf("sheet %s row %d: %w", w.name, w.row, err)
	}
	for i, v := range values {
		if i >= len(w.widths) {
			w.widths = append(w.widths, 0)
		}
		if n := utf8.RuneCountInString(fmt.Sprint(v)); n > w.widths[i] {
			w.widths[i] = n
		}
	}
	return nil
}

// fitColumns sizes every column to its longest value plus padding, capped at limit
func (w *sheetWriter) fitColumns(limit int) error {
	for i, n := range w.widths {
		col, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			return err
		}
		if err := w.f.SetColWidth(w.name, col, col, float64(min(n+2, limit))); err != nil {
			return err
		}
	}
	return nil
}

// Encode implements transferapp.Encoder
func (ExcelEncoder) Encode(doc *transfer.Document, _ transferapp.ExportMeta) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	header, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"366092"}, Pattern: 1},
	})
	if err != nil {
		return nil, err
	}

	newSheet := func(name string, headers ...any) (*sheetWriter, error) {
		if _, err := f.NewSheet(name); err != nil {
			return nil, err
		}
		w := &sheetWriter{f: f, name: name}
		if err := w.append(headers...); err != nil {
			return nil, err
		}
		last, err := excelize.CoordinatesToCellName(len(headers), 1)
		if err != nil {
			return nil, err
		}
		if err := f.SetCellStyle(name, "A1", last, header); err != nil {
			return nil, err
		}
		return w, nil
	}

	sheets := 0
	if doc.Customers != nil {
		w, err := newSheet(SheetCustomers, "Name", "Email", "Company", "Phone", "Address", "City", "State", "ZIP", "Country", "Notes")
		if err != nil {
			return nil, err
		}
		for _, c := range doc.Customers {
			if err := w.append(c.Name, c.Email, c.Company, c.Phone, c.Address, c.City, c.State, c.ZipCode, c.Country, c.Notes); err != nil {
				return nil, err
			}
		}
		if err := w.fitColumns(50); err != nil {
			return nil, err
		}
		sheets++
	}

	if doc.Invoices != nil {
		w, err := newSheet(SheetInvoices, "Invoice #", "Customer", "Customer Email", "Issue Date", "Due Date",
			"Status", "Subtotal", "Tax Rate", "Tax Amount", "Discount", "Total")
		if err != nil {
			return nil, err
		}
		for _, inv := range doc.Invoices {
			if err := w.append(
				inv.InvoiceNumber,
				inv.CustomerName,
				inv.CustomerEmail,
				dateOnly(inv.IssueDate),
				dateOnly(deref(inv.DueDate)),
				inv.Status,
				money(inv.Subtotal.Decimal()),
				inv.TaxRate.Decimal().String()+"%",
				money(inv.TaxAmount.Decimal()),
				money(inv.Discount.Decimal()),
				money(inv.Total.Decimal()),
			); err != nil {
				return nil, err
			}
		}
		if err := w.fitColumns(30); err != nil {
			return nil, err
		}

		items, err := newSheet(SheetInvoiceItems, "Invoice #", "Description", "Quantity", "Unit Price", "Amount")
		if err != nil {
			return nil, err
		}
		for _, inv := range doc.Invoices {
			for _, item := range inv.Items {
				qty := decimal.NewFromInt(1)
				if item.Quantity != nil {
					qty = item.Quantity.Decimal()
				}
				if err := items.append(
					inv.InvoiceNumber,
					item.Description,
					qty.InexactFloat64(),
					item.UnitPrice.Decimal().InexactFloat64(),
					money(item.Amount.Decimal()),
				); err != nil {
					return nil, err
				}
			}
		}
		if err := items.fitColumns(50); err != nil {
			return nil, err
		}
		sheets += 2
	}

	if s := doc.Settings; s != nil {
		w, err := newSheet(SheetSettings, "Setting", "Value")
		if err != nil {
			return nil, err
		}
		rows := [][2]string{
			{"Company Name", s.CompanyName},
			{"Address", s.CompanyAddress},
			{"City", s.CompanyCity},
			{"State", s.CompanyState},
			{"ZIP Code", s.CompanyZip},
			{"Country", s.CompanyCountry},
			{"Phone", s.CompanyPhone},
			{"Email", s.CompanyEmail},
			{"Website", s.CompanyWebsite},
			{"Tax Rate", s.TaxRate.Decimal().String() + "%"},
			{"Currency", s.Currency},
			{"Invoice Prefix", s.InvoicePrefix},
			{"Bank Name", s.BankName},
			{"Bank IBAN", s.BankIBAN},
			{"Bank BIC", s.BankBIC},
			{"Language", s.Language},
		}
		for _, r := range rows {
			if err := w.append(r[0], r[1]); err != nil {
				return nil, err
			}
		}
		if err := f.SetColWidth(SheetSettings, "A", "A", 20); err != nil {
			return nil, err
		}
		if err := f.SetColWidth(SheetSettings, "B", "B", 40); err != nil {
			return nil, err
		}
		sheets++
	}

	// a workbook needs at least one sheet; keep the default when nothing was exported
	if sheets > 0 {
		if err := f.DeleteSheet(defaultSheet); err != nil {
			return nil, err
		}
		f.SetActiveSheet(0)
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("write workbook: %w", err)
	}
	return buf.Bytes(), nil
}

// money rounds to presentation precision and returns a numeric cell value
func money(d decimal.Decimal) float64 {
	return d.Round(2).InexactFloat64()
}

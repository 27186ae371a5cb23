package transferio

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	transferapp "github.com/bizify/backend/internal/application/transfer"
	"github.com/bizify/backend/internal/domain/billing"
	"github.com/bizify/backend/internal/domain/shared"
	"github.com/bizify/backend/internal/domain/transfer"
	"github.com/shopspring/decimal"
)

// CSV archive entries
const (
	CustomersCSV    = "customers.csv"
	InvoicesCSV     = "invoices.csv"
	InvoiceItemsCSV = "invoice_items.csv"
)

var (
	customerHeaders = []string{"Name", "Email", "Company", "Phone", "Address", "City", "State", "ZIP", "Country", "Notes"}
	invoiceHeaders  = []string{
		"Invoice Number", "Customer Name", "Customer Email", "Issue Date", "Due Date",
		"Status", "Subtotal", "Tax Rate", "Tax Amount", "Discount", "Total",
	}
	itemHeaders = []string{"Invoice Number", "Description", "Quantity", "Unit Price", "Amount"}
)

// CSVEncoder writes a zip holding one CSV file per section. Settings have
// no CSV projection.
type CSVEncoder struct{}

// NewCSVEncoder creates a CSV encoder
func NewCSVEncoder() *CSVEncoder {
	return &CSVEncoder{}
}

// Encode implements transferapp.Encoder
func (CSVEncoder) Encode(doc *transfer.Document, _ transferapp.ExportMeta) ([]byte, error) {
	var entries []zipEntry

	if doc.Customers != nil {
		rows := make([][]string, 0, len(doc.Customers))
		for _, c := range doc.Customers {
			rows = append(rows, customerRow(c))
		}
		data, err := writeCSV(customerHeaders, rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, zipEntry{CustomersCSV, data})
	}

	if doc.Invoices != nil {
		var invoiceRows, itemRows [][]string
		for _, inv := range doc.Invoices {
			invoiceRows = append(invoiceRows, []string{
				inv.InvoiceNumber,
				inv.CustomerName,
				inv.CustomerEmail,
				dateOnly(inv.IssueDate),
				dateOnly(deref(inv.DueDate)),
				inv.Status,
				billing.PresentString(inv.Subtotal.Decimal()),
				inv.TaxRate.Decimal().String(),
				billing.PresentString(inv.TaxAmount.Decimal()),
				inv.Discount.Decimal().String(),
				billing.PresentString(inv.Total.Decimal()),
			})
			for _, item := range inv.Items {
				itemRows = append(itemRows, itemRow(inv.InvoiceNumber, item))
			}
		}
		invoices, err := writeCSV(invoiceHeaders, invoiceRows)
		if err != nil {
			return nil, err
		}
		items, err := writeCSV(itemHeaders, itemRows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, zipEntry{InvoicesCSV, invoices}, zipEntry{InvoiceItemsCSV, items})
	}

	return writeZip(entries)
}

func customerRow(c transfer.CustomerRecord) []string {
	return []string{c.Name, c.Email, c.Company, c.Phone, c.Address, c.City, c.State, c.ZipCode, c.Country, c.Notes}
}

func itemRow(number string, item transfer.ItemRecord) []string {
	qty := decimal.NewFromInt(1)
	if item.Quantity != nil {
		qty = item.Quantity.Decimal()
	}
	return []string{
		number,
		item.Description,
		qty.String(),
		item.UnitPrice.Decimal().String(),
		billing.PresentString(item.Amount.Decimal()),
	}
}

func writeCSV(headers []string, rows [][]string) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(headers); err != nil {
		return nil, err
	}
	if err := w.WriteAll(rows); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// dateOnly shortens a document timestamp to YYYY-MM-DD. Unparseable values
// pass through unchanged.
func dateOnly(s string) string {
	if s == "" {
		return ""
	}
	t, err := billing.ParseTimestamp(s)
	if err != nil {
		return s
	}
	return t.UTC().Format(time.DateOnly)
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// DecodeCSVArchive rebuilds document JSON from the files of a CSV export.
// Any of the three files may be missing; item rows are attached to the
// invoice with the same number.
func DecodeCSVArchive(files map[string][]byte) ([]byte, error) {
	doc := transfer.NewDocument("", "", time.Time{})

	if data, ok := files[CustomersCSV]; ok {
		customers, err := decodeCustomers(data)
		if err != nil {
			return nil, parseFailure(err)
		}
		doc.Customers = customers
	}

	if data, ok := files[InvoicesCSV]; ok {
		invoices, err := decodeInvoices(data)
		if err != nil {
			return nil, parseFailure(err)
		}
		if items, ok := files[InvoiceItemsCSV]; ok {
			if err := attachItems(invoices, items); err != nil {
				return nil, parseFailure(err)
			}
		}
		doc.Invoices = invoices
	}

	return json.Marshal(doc)
}

func parseFailure(err error) error {
	return shared.NewDomainError(shared.CodeParseFailure, fmt.Sprintf("Failed to parse file: %v", err))
}

func decodeCustomers(data []byte) ([]transfer.CustomerRecord, error) {
	table, err := openCSVTable(CustomersCSV, data)
	if err != nil {
		return nil, err
	}
	if err := table.require("Name", "Email"); err != nil {
		return nil, err
	}
	rows, err := table.rows()
	if err != nil {
		return nil, err
	}

	out := make([]transfer.CustomerRecord, 0, len(rows))
	for _, r := range rows {
		out = append(out, transfer.CustomerRecord{
			Name:    r.get("Name"),
			Email:   r.get("Email"),
			Company: r.get("Company"),
			Phone:   r.get("Phone"),
			Address: r.get("Address"),
			City:    r.get("City"),
			State:   r.get("State"),
			ZipCode: r.get("ZIP"),
			Country: r.get("Country"),
			Notes:   r.get("Notes"),
		})
	}
	return out, nil
}

func decodeInvoices(data []byte) ([]transfer.InvoiceRecord, error) {
	table, err := openCSVTable(InvoicesCSV, data)
	if err != nil {
		return nil, err
	}
	if err := table.require("Invoice Number", "Customer Email"); err != nil {
		return nil, err
	}
	rows, err := table.rows()
	if err != nil {
		return nil, err
	}

	out := make([]transfer.InvoiceRecord, 0, len(rows))
	for _, r := range rows {
		rec := transfer.InvoiceRecord{
			InvoiceNumber: r.get("Invoice Number"),
			CustomerEmail: r.get("Customer Email"),
			CustomerName:  r.get("Customer Name"),
			IssueDate:     r.get("Issue Date"),
			Status:        r.get("Status"),
			Items:         []transfer.ItemRecord{},
		}
		if due := r.get("Due Date"); due != "" {
			rec.DueDate = &due
		}

		var d decimal.Decimal
		if d, err = cellDecimal(table, r, "Tax Rate"); err != nil {
			return nil, err
		}
		rec.TaxRate = billing.NewNumber(d)
		if d, err = cellDecimal(table, r, "Discount"); err != nil {
			return nil, err
		}
		rec.Discount = billing.NewNumber(d)
		if d, err = cellDecimal(table, r, "Subtotal"); err != nil {
			return nil, err
		}
		rec.Subtotal = billing.NewAmount(d)
		if d, err = cellDecimal(table, r, "Tax Amount"); err != nil {
			return nil, err
		}
		rec.TaxAmount = billing.NewAmount(d)
		if d, err = cellDecimal(table, r, "Total"); err != nil {
			return nil, err
		}
		rec.Total = billing.NewAmount(d)

		out = append(out, rec)
	}
	return out, nil
}

func attachItems(invoices []transfer.InvoiceRecord, data []byte) error {
	table, err := openCSVTable(InvoiceItemsCSV, data)
	if err != nil {
		return err
	}
	if err := table.require("Invoice Number", "Description"); err != nil {
		return err
	}
	rows, err := table.rows()
	if err != nil {
		return err
	}

	byNumber := make(map[string]int, len(invoices))
	for i, inv := range invoices {
		byNumber[inv.InvoiceNumber] = i
	}

	for _, r := range rows {
		idx, ok := byNumber[r.get("Invoice Number")]
		if !ok {
			continue
		}
		item := transfer.ItemRecord{Description: r.get("Description")}
		if r.get("Quantity") != "" {
			qty, err := cellDecimal(table, r, "Quantity")
			if err != nil {
				return err
			}
			n := billing.NewNumber(qty)
			item.Quantity = &n
		}
		price, err := cellDecimal(table, r, "Unit Price")
		if err != nil {
			return err
		}
		item.UnitPrice = billing.NewNumber(price)
		amount, err := cellDecimal(table, r, "Amount")
		if err != nil {
			return err
		}
		item.Amount = billing.NewAmount(amount)
		invoices[idx].Items = append(invoices[idx].Items, item)
	}
	return nil
}

// cellDecimal reads a numeric column. Blank reads as zero; a trailing % is
// allowed so percentages typed by hand still load.
func cellDecimal(t *csvTable, r csvRow, header string) (decimal.Decimal, error) {
	v := strings.TrimSuffix(r.get(header), "%")
	if v == "" {
		return decimal.Zero, nil
	}
	d, err := decimal.NewFromString(strings.TrimSpace(v))
	if err != nil {
		return decimal.Zero, fmt.Errorf("%s line %d: invalid %s %q", t.name, r.line, header, r.get(header))
	}
	return d, nil
}

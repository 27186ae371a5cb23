package transfer

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/bizify/backend/internal/domain/shared"
	"github.com/bizify/backend/internal/domain/transfer"
)

// parsedDocument is an uploaded document after structural validation.
// Records that failed validation stay in the lists with valid=false so that
// totals still count them.
type parsedDocument struct {
	version    string
	hasVersion bool
	settings   *transfer.SettingsRecord
	customers  []customerEntry
	invoices   []invoiceEntry
	problems   []string
	// notObject is set when the top level is not a JSON object
	notObject bool
}

type customerEntry struct {
	position int
	record   transfer.CustomerRecord
	// present holds the keys the record actually carried, so updates can keep
	// stored values for absent fields.
	present map[string]bool
	valid   bool
}

type invoiceEntry struct {
	position int
	record   transfer.InvoiceRecord
	valid    bool
}

const msgNotAnObject = "Invalid data format: expected JSON object"

func (p *parsedDocument) problem(format string, args ...any) {
	p.problems = append(p.problems, fmt.Sprintf(format, args...))
}

// readDocument parses raw JSON. Malformed JSON is the only error; structural
// problems, including a non-object top level, are collected on the result.
func readDocument(raw []byte) (*parsedDocument, error) {
	if !json.Valid(raw) {
		var probe any
		err := json.Unmarshal(raw, &probe)
		return nil, shared.NewDomainError(shared.CodeParseFailure, fmt.Sprintf("Failed to parse file: %v", err))
	}

	doc := &parsedDocument{}
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil || fields == nil {
		doc.notObject = true
		doc.problem(msgNotAnObject)
		return doc, nil
	}

	if v, ok := fields["export_version"]; ok && !isNull(v) {
		doc.hasVersion = true
		if err := json.Unmarshal(v, &doc.version); err != nil {
			doc.version = string(v)
		}
	}

	if v, ok := fields["settings"]; ok && !isNull(v) {
		var rec transfer.SettingsRecord
		if err := json.Unmarshal(v, &rec); err != nil {
			doc.problem("Settings must be an object")
		} else {
			doc.settings = &rec
		}
	}

	if v, ok := fields["customers"]; ok {
		doc.readCustomers(v)
	}
	if v, ok := fields["invoices"]; ok {
		doc.readInvoices(v)
	}
	return doc, nil
}

func (p *parsedDocument) readCustomers(raw json.RawMessage) {
	var list []json.RawMessage
	if isNull(raw) || json.Unmarshal(raw, &list) != nil {
		p.problem("Customers data must be a list")
		return
	}

	for i, elem := range list {
		entry := customerEntry{position: i + 1}
		var m map[string]json.RawMessage
		if json.Unmarshal(elem, &m) != nil || m == nil {
			p.problem("Customer %d must be an object", entry.position)
			p.customers = append(p.customers, entry)
			continue
		}
		if err := json.Unmarshal(elem, &entry.record); err != nil {
			p.problem("Customer %d is malformed: %v", entry.position, err)
			p.customers = append(p.customers, entry)
			continue
		}
		entry.present = make(map[string]bool, len(m))
		for k, v := range m {
			if !isNull(v) {
				entry.present[k] = true
			}
		}

		entry.valid = true
		if entry.record.Name == "" {
			p.problem("Customer %d missing required field: name", entry.position)
			entry.valid = false
		}
		if entry.record.Email == "" {
			p.problem("Customer %d missing required field: email", entry.position)
			entry.valid = false
		}
		p.customers = append(p.customers, entry)
	}
}

func (p *parsedDocument) readInvoices(raw json.RawMessage) {
	var list []json.RawMessage
	if isNull(raw) || json.Unmarshal(raw, &list) != nil {
		p.problem("Invoices data must be a list")
		return
	}

	for i, elem := range list {
		entry := invoiceEntry{position: i + 1}
		var m map[string]json.RawMessage
		if json.Unmarshal(elem, &m) != nil || m == nil {
			p.problem("Invoice %d must be an object", entry.position)
			p.invoices = append(p.invoices, entry)
			continue
		}

		// items are decoded separately so a bad items value is reported on its own
		var shape struct {
			transfer.InvoiceRecord
			Items json.RawMessage `json:"items"`
		}
		if err := json.Unmarshal(elem, &shape); err != nil {
			p.problem("Invoice %d is malformed: %v", entry.position, err)
			p.invoices = append(p.invoices, entry)
			continue
		}
		entry.record = shape.InvoiceRecord
		entry.valid = true

		if entry.record.InvoiceNumber == "" {
			p.problem("Invoice %d missing required field: invoice_number", entry.position)
			entry.valid = false
		}
		if entry.record.CustomerEmail == "" {
			p.problem("Invoice %d missing required field: customer_email", entry.position)
			entry.valid = false
		}
		if len(shape.Items) > 0 && !isNull(shape.Items) {
			var items []transfer.ItemRecord
			if err := json.Unmarshal(shape.Items, &items); err != nil {
				if bytes.HasPrefix(bytes.TrimSpace(shape.Items), []byte("[")) {
					p.problem("Invoice %d items are malformed: %v", entry.position, err)
				} else {
					p.problem("Invoice %d items must be a list", entry.position)
				}
				entry.valid = false
			} else {
				entry.record.Items = items
			}
		}
		p.invoices = append(p.invoices, entry)
	}
}

// hasCustomer reports whether the document itself defines a customer with email
func (p *parsedDocument) hasCustomer(email string) bool {
	for _, c := range p.customers {
		if c.valid && equalEmail(c.record.Email, email) {
			return true
		}
	}
	return false
}

func isNull(raw json.RawMessage) bool {
	return bytes.Equal(bytes.TrimSpace(raw), []byte("null"))
}

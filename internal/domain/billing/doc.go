// Package billing holds the invoicing core: ledger arithmetic, the Invoice
// aggregate with its line items, invoice numbering and company settings.
//
// Money is carried as decimal.Decimal end to end. Values are rounded to two
// places only when presented (JSON, CSV, spreadsheet, PDF), never when stored.
package billing

// Package transferio renders export documents into downloadable files and
// reads uploaded files back into document JSON.
//
// Supported projections:
//   - json: the document itself, indented
//   - csv: a zip of customers.csv, invoices.csv and invoice_items.csv
//   - excel: an xlsx workbook with one sheet per section
//   - backup: a zip holding bizify_data.json, metadata.json and a README
//
// Uploads are accepted as a bare JSON document, a backup zip or a CSV zip.
package transferio

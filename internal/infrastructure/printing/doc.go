// Package printing draws invoice PDFs.
//
// Labels, dates and money are localized through a Catalog built from the
// embedded translations/*.json files. The GofpdfRenderer lays the invoice
// out on an A4 page with the core PDF fonts, so no external binary or
// browser is required.
//
// Example usage:
//
//	catalog, err := printing.LoadCatalog()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	renderer := printing.NewGofpdfRenderer(catalog, logger)
//	result, err := renderer.Render(ctx, &printing.InvoiceDocument{
//	    Number:   "INV-2024-001",
//	    Language: "de",
//	    Currency: "EUR",
//	})
package printing

package billing

import "fmt"

// DefaultInvoicePrefix is used when the owner has no settings yet.
const DefaultInvoicePrefix = "INV-"

// FormatInvoiceNumber renders {prefix}{year}-{sequence:03d}, e.g. INV-2024-007.
// Sequences above 999 simply grow wider.
func FormatInvoiceNumber(prefix string, year int, sequence int64) string {
	if prefix == "" {
		prefix = DefaultInvoicePrefix
	}
	return fmt.Sprintf("%s%d-%03d", prefix, year, sequence)
}

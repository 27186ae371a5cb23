package printing

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"
)

func loadCatalog(t *testing.T) *Catalog {
	t.Helper()
	c, err := LoadCatalog()
	require.NoError(t, err)
	return c
}

func TestLoadCatalog(t *testing.T) {
	c := loadCatalog(t)
	assert.Equal(t, []language.Tag{language.English, language.German}, c.Languages())
}

func TestLocalizer_Labels(t *testing.T) {
	c := loadCatalog(t)

	tests := []struct {
		code string
		key  string
		args []any
		want string
	}{
		{"en", "invoice.title", nil, "INVOICE"},
		{"de", "invoice.title", nil, "RECHNUNG"},
		{"DE", "status.paid", nil, "Bezahlt"},
		{"de-AT", "invoice.notes", nil, "Anmerkungen:"},
		{"fr", "invoice.title", nil, "INVOICE"},
		{"", "invoice.title", nil, "INVOICE"},
		{"de", "invoice.number", []any{"INV-2024-001"}, "Rechnung Nr. INV-2024-001"},
		{"en", "invoice.tax", []any{"19"}, "Tax (19%):"},
		{"en", "status.unknown", nil, "status.unknown"},
	}
	for _, tt := range tests {
		t.Run(tt.code+"/"+tt.key, func(t *testing.T) {
			assert.Equal(t, tt.want, c.Localizer(tt.code).T(tt.key, tt.args...))
		})
	}
}

func TestLocalizer_Date(t *testing.T) {
	c := loadCatalog(t)
	d := time.Date(2024, 3, 5, 23, 0, 0, 0, time.UTC)

	assert.Equal(t, "March 5, 2024", c.Localizer("en").Date(d))
	assert.Equal(t, "5. März 2024", c.Localizer("de").Date(d))
}

func TestLocalizer_Money(t *testing.T) {
	c := loadCatalog(t)
	amount := decimal.RequireFromString("1234.5")

	assert.Equal(t, "$1,234.50", c.Localizer("en").Money(amount, "USD"))
	assert.Equal(t, "1.234,50 €", c.Localizer("de").Money(amount, "EUR"))
	assert.Equal(t, "-$5.00", c.Localizer("en").Money(decimal.NewFromInt(-5), "USD"))
	assert.Equal(t, "XYZ0.10", c.Localizer("en").Money(decimal.RequireFromString("0.1"), "xyz"))
}

func TestLocalizer_Number(t *testing.T) {
	c := loadCatalog(t)
	assert.Equal(t, "2.5", c.Localizer("en").Number(decimal.RequireFromString("2.5"), 1))
	assert.Equal(t, "2,5", c.Localizer("de").Number(decimal.RequireFromString("2.5"), 1))
}

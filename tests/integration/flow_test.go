package integration

import (
	"bytes"
	"net/http"
	"strings"
	"testing"

	billingapp "github.com/bizify/backend/internal/application/billing"
	identityapp "github.com/bizify/backend/internal/application/identity"
	partnerapp "github.com/bizify/backend/internal/application/partner"
	transferapp "github.com/bizify/backend/internal/application/transfer"
	"github.com/bizify/backend/internal/domain/billing"
	"github.com/bizify/backend/internal/interfaces/http/middleware"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestInvoicingFlow_SQLite(t *testing.T) {
	runInvoicingFlow(t, NewSQLiteTestDB(t).DB)
}

func TestOwnerIsolation_SQLite(t *testing.T) {
	runOwnerIsolation(t, NewSQLiteTestDB(t).DB)
}

func TestHealth_SQLite(t *testing.T) {
	app := NewTestApp(t, NewSQLiteTestDB(t).DB)

	w := app.Do(t, http.MethodGet, "/health", "", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"healthy","database":"connected"}`, w.Body.String())
}

// runInvoicingFlow drives one owner from sign-up through export, then
// restores the export into a second account.
func runInvoicingFlow(t *testing.T, db *gorm.DB) {
	app := NewTestApp(t, db)

	w := app.Do(t, http.MethodGet, "/api/v1/auth/check-setup", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.True(t, data[identityapp.SetupStatus](t, w).IsFirstTimeSetup)

	token := app.SignUp(t, "owner@acme.test")

	w = app.Do(t, http.MethodGet, "/api/v1/auth/check-setup", "", nil)
	assert.False(t, data[identityapp.SetupStatus](t, w).IsFirstTimeSetup)

	w = app.Do(t, http.MethodGet, "/api/v1/auth/me", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "owner@acme.test", data[identityapp.UserResponse](t, w).Email)

	t.Run("registration creates default settings", func(t *testing.T) {
		w := app.Do(t, http.MethodGet, "/api/v1/settings", token, nil)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		assert.Contains(t, w.Body.String(), `"invoice_prefix":"INV-"`)
	})

	w = app.Do(t, http.MethodPost, "/api/v1/customers", token, partnerapp.CreateCustomerRequest{
		Name: "Acme Corp", Email: "Billing@Acme.test", City: "Springfield",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	customer := data[partnerapp.CustomerResponse](t, w)
	assert.Equal(t, "billing@acme.test", customer.Email)

	w = app.Do(t, http.MethodPost, "/api/v1/invoices", token, billingapp.CreateInvoiceRequest{
		CustomerID: customer.ID,
		TaxRate:    decimal.NewFromInt(10),
		Notes:      "Net 30",
		Items: []billingapp.InvoiceItemRequest{
			{Description: "Consulting", Quantity: decimal.NewFromInt(2), UnitPrice: decimal.NewFromInt(50)},
		},
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	invoice := data[billingapp.InvoiceResponse](t, w)
	assert.True(t, strings.HasPrefix(invoice.InvoiceNumber, "INV-"), invoice.InvoiceNumber)
	assert.True(t, strings.HasSuffix(invoice.InvoiceNumber, "-001"), invoice.InvoiceNumber)
	assert.Equal(t, "100.00", decimal.Decimal(invoice.Subtotal).StringFixed(2))
	assert.Equal(t, "110.00", decimal.Decimal(invoice.Total).StringFixed(2))
	require.Len(t, invoice.Items, 1)

	t.Run("second invoice takes the next number", func(t *testing.T) {
		w := app.Do(t, http.MethodPost, "/api/v1/invoices", token, billingapp.CreateInvoiceRequest{
			CustomerID: customer.ID,
			Items: []billingapp.InvoiceItemRequest{
				{Description: "Support", Quantity: decimal.NewFromInt(1), UnitPrice: decimal.NewFromInt(20)},
			},
		})
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
		second := data[billingapp.InvoiceResponse](t, w)
		assert.True(t, strings.HasSuffix(second.InvoiceNumber, "-002"), second.InvoiceNumber)

		w = app.Do(t, http.MethodDelete, "/api/v1/invoices/"+second.ID.String(), token, nil)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	})

	t.Run("customer with invoices cannot be deleted", func(t *testing.T) {
		w := app.Do(t, http.MethodDelete, "/api/v1/customers/"+customer.ID.String(), token, nil)
		require.Equal(t, http.StatusUnprocessableEntity, w.Code, w.Body.String())
		assert.Equal(t, "Cannot delete customer with existing invoices", decode(t, w).Error.Message)
	})

	t.Run("mark paid", func(t *testing.T) {
		w := app.Do(t, http.MethodPut, "/api/v1/invoices/"+invoice.ID.String(), token, map[string]any{"status": "paid"})
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		assert.EqualValues(t, "paid", data[billingapp.InvoiceResponse](t, w).Status)
	})

	t.Run("invoice events", func(t *testing.T) {
		// two creates, one delete, one update
		assert.Equal(t, map[string]int{
			billing.EventTypeInvoiceCreated: 2,
			billing.EventTypeInvoiceUpdated: 1,
			billing.EventTypeInvoiceDeleted: 1,
		}, app.Events.CountByType())
		assert.Equal(t, []string{billing.EventTypeInvoiceCreated, billing.EventTypeInvoiceUpdated},
			app.Events.ForAggregate(invoice.ID))
	})

	t.Run("pdf", func(t *testing.T) {
		w := app.Do(t, http.MethodGet, "/api/v1/invoices/"+invoice.ID.String()+"/pdf", token, nil)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		assert.Equal(t, "application/pdf", w.Header().Get("Content-Type"))
		assert.Contains(t, w.Header().Get("Content-Disposition"), invoice.InvoiceNumber)
		assert.True(t, bytes.HasPrefix(w.Body.Bytes(), []byte("%PDF")))
	})

	t.Run("dashboard", func(t *testing.T) {
		w := app.Do(t, http.MethodGet, "/api/v1/dashboard", token, nil)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		dash := data[billingapp.Dashboard](t, w)
		assert.Equal(t, int64(1), dash.TotalCustomers)
		assert.Equal(t, int64(1), dash.TotalInvoices)
		assert.Equal(t, int64(1), dash.PaidInvoices)
	})

	t.Run("unsupported export format", func(t *testing.T) {
		w := app.Do(t, http.MethodPost, "/api/v1/export/pdf", token, nil)
		require.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "Unsupported export format: pdf", decode(t, w).Error.Message)
	})

	for _, format := range []string{"csv", "excel", "backup"} {
		t.Run("export "+format, func(t *testing.T) {
			w := app.Do(t, http.MethodPost, "/api/v1/export/"+format, token, nil)
			require.Equal(t, http.StatusOK, w.Code, w.Body.String())
			assert.Contains(t, w.Header().Get("Content-Disposition"), "attachment")
			assert.NotEmpty(t, w.Body.Bytes())
		})
	}

	w = app.Do(t, http.MethodPost, "/api/v1/export/json", token, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	exported := w.Body.Bytes()
	assert.Contains(t, string(exported), `"export_version": "1.0"`)

	restorer := app.SignUp(t, "restore@acme.test")

	t.Run("preview import", func(t *testing.T) {
		w := app.Upload(t, "/api/v1/import/preview", restorer, "export.json", exported, nil)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		preview := data[transferapp.ImportPreview](t, w)
		assert.Equal(t, 1, preview.TotalCustomers)
		assert.Equal(t, 1, preview.TotalInvoices)
		assert.True(t, preview.HasSettings)
		// only the registration settings collide
		require.Len(t, preview.Conflicts, 1)
		assert.Equal(t, "settings", preview.Conflicts[0].Type)
		assert.Equal(t, "replace", preview.Conflicts[0].Action)
	})

	headers := map[string]string{middleware.IdempotencyKeyHeader: "restore-1"}
	w = app.Upload(t, "/api/v1/import", restorer, "export.json", exported, headers)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	result := data[transferapp.ImportResult](t, w)
	require.True(t, result.Success, result.Message)
	assert.Equal(t, 1, result.Stats.CustomersCreated)
	assert.Equal(t, 1, result.Stats.InvoicesCreated)

	t.Run("replayed import is rejected", func(t *testing.T) {
		w := app.Upload(t, "/api/v1/import", restorer, "export.json", exported, headers)
		assert.Equal(t, http.StatusConflict, w.Code)
	})

	w = app.Do(t, http.MethodGet, "/api/v1/invoices", restorer, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	restored := data[[]billingapp.InvoiceResponse](t, w)
	require.Len(t, restored, 1)
	assert.Equal(t, invoice.InvoiceNumber, restored[0].InvoiceNumber)
	assert.Equal(t, "110.00", decimal.Decimal(restored[0].Total).StringFixed(2))
}

// runOwnerIsolation checks that one owner never sees another's records
func runOwnerIsolation(t *testing.T, db *gorm.DB) {
	app := NewTestApp(t, db)
	alice := app.SignUp(t, "alice@example.test")
	bob := app.SignUp(t, "bob@example.test")

	w := app.Do(t, http.MethodPost, "/api/v1/customers", alice, partnerapp.CreateCustomerRequest{
		Name: "Shared Name", Email: "client@example.test",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	customer := data[partnerapp.CustomerResponse](t, w)

	w = app.Do(t, http.MethodGet, "/api/v1/customers/"+customer.ID.String(), bob, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = app.Do(t, http.MethodPost, "/api/v1/invoices", bob, billingapp.CreateInvoiceRequest{CustomerID: customer.ID})
	assert.Equal(t, http.StatusNotFound, w.Code)

	// the same email is free for another owner
	w = app.Do(t, http.MethodPost, "/api/v1/customers", bob, partnerapp.CreateCustomerRequest{
		Name: "Shared Name", Email: "client@example.test",
	})
	assert.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = app.Do(t, http.MethodPost, "/api/v1/customers", alice, partnerapp.CreateCustomerRequest{
		Name: "Again", Email: "CLIENT@example.test",
	})
	assert.Equal(t, http.StatusConflict, w.Code)

	w = app.Do(t, http.MethodGet, "/api/v1/customers", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = app.Do(t, http.MethodGet, "/api/v1/customers", "not-a-token", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

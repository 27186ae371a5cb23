package handler

import (
	"net/http"
	"testing"

	billingapp "github.com/bizify/backend/internal/application/billing"
	"github.com/bizify/backend/internal/domain/shared"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func settingsRouter(svc *MockSettingsService) *gin.Engine {
	h := NewSettingsHandler(svc)
	router := newTestRouter(true)
	router.GET("/settings", h.Get)
	router.PUT("/settings", h.Update)
	router.POST("/settings/reset", h.Reset)
	return router
}

func TestSettingsHandler_Get(t *testing.T) {
	t.Run("not yet saved", func(t *testing.T) {
		svc := new(MockSettingsService)
		svc.On("Get", mock.Anything, testOwnerID).
			Return(nil, shared.NewDomainError(shared.CodeNotFound, "Settings not found"))

		w := doJSON(settingsRouter(svc), "GET", "/settings", "")

		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("saved", func(t *testing.T) {
		svc := new(MockSettingsService)
		svc.On("Get", mock.Anything, testOwnerID).
			Return(&billingapp.SettingsResponse{CompanyName: "My Company", Currency: "USD", InvoicePrefix: "INV-"}, nil)

		w := doJSON(settingsRouter(svc), "GET", "/settings", "")

		require.Equal(t, http.StatusOK, w.Code)
		settings := decodeData[map[string]any](t, w)
		assert.Equal(t, "My Company", settings["company_name"])
		assert.Equal(t, "INV-", settings["invoice_prefix"])
	})
}

func TestSettingsHandler_Update(t *testing.T) {
	svc := new(MockSettingsService)
	svc.On("Update", mock.Anything, testOwnerID, mock.MatchedBy(func(req billingapp.UpdateSettingsRequest) bool {
		rate, ok := req.TaxRate.Get()
		return ok && rate.String() == "19" && req.CompanyName.IsSet() && !req.Currency.IsSet()
	})).Return(&billingapp.SettingsResponse{CompanyName: "Beta GmbH"}, nil)

	w := doJSON(settingsRouter(svc), "PUT", "/settings", `{"company_name":"Beta GmbH","tax_rate":19}`)

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	svc.AssertExpectations(t)
}

func TestSettingsHandler_Reset(t *testing.T) {
	svc := new(MockSettingsService)
	svc.On("Reset", mock.Anything, testOwnerID).
		Return(&billingapp.ResetResponse{Status: "success", Message: "All data has been reset to defaults"}, nil)

	w := doJSON(settingsRouter(svc), "POST", "/settings/reset", "")

	require.Equal(t, http.StatusOK, w.Code)
	result := decodeData[billingapp.ResetResponse](t, w)
	assert.Equal(t, "success", result.Status)
	assert.Equal(t, "All data has been reset to defaults", result.Message)
}

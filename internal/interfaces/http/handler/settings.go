package handler

import (
	billingapp "github.com/bizify/backend/internal/application/billing"
	"github.com/gin-gonic/gin"
)

// SettingsHandler handles the owner's company settings
type SettingsHandler struct {
	BaseHandler
	settingsService SettingsService
}

// NewSettingsHandler creates a new SettingsHandler
func NewSettingsHandler(settingsService SettingsService) *SettingsHandler {
	return &SettingsHandler{settingsService: settingsService}
}

// Get returns the current settings, 404 when none were saved
//
//	@ID			getSettings
//	@Summary		Get company settings
//	@Tags			settings
//	@Produce		json
//	@Success		200		{object}	dto.Response{data=billingapp.SettingsResponse}
//	@Failure		404		{object}	dto.Response
//	@Security		BearerAuth
//	@Router			/settings [get]
func (h *SettingsHandler) Get(c *gin.Context) {
	ownerID, ok := h.ownerID(c)
	if !ok {
		return
	}

	settings, err := h.settingsService.Get(c.Request.Context(), ownerID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, settings)
}

// Update patches the settings, creating them when missing
//
//	@ID			updateSettings
//	@Summary		Update company settings
//	@Tags			settings
//	@Accept		json
//	@Produce		json
//	@Param			request	body		billingapp.UpdateSettingsRequest	true	"Fields to change"
//	@Success		200		{object}	dto.Response{data=billingapp.SettingsResponse}
//	@Failure		400		{object}	dto.Response
//	@Security		BearerAuth
//	@Router			/settings [put]
func (h *SettingsHandler) Update(c *gin.Context) {
	ownerID, ok := h.ownerID(c)
	if !ok {
		return
	}

	var req billingapp.UpdateSettingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	settings, err := h.settingsService.Update(c.Request.Context(), ownerID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, settings)
}

// Reset deletes all of the owner's invoices and customers and restores the
// default settings
//
//	@ID			resetData
//	@Summary		Delete all data and restore default settings
//	@Tags			settings
//	@Produce		json
//	@Success		200		{object}	dto.Response{data=billingapp.ResetResponse}
//	@Security		BearerAuth
//	@Router			/settings/reset [post]
func (h *SettingsHandler) Reset(c *gin.Context) {
	ownerID, ok := h.ownerID(c)
	if !ok {
		return
	}

	result, err := h.settingsService.Reset(c.Request.Context(), ownerID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}

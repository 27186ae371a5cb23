package handler

import (
	"net/http"
	"time"

	billingapp "github.com/bizify/backend/internal/application/billing"
	"github.com/gin-gonic/gin"
)

// InvoiceHandler handles invoice CRUD, statistics and PDF download
type InvoiceHandler struct {
	BaseHandler
	invoiceService InvoiceService
	statsService   StatsService
	pdfService     PDFService
	pdfRecorder    PDFRenderRecorder
}

// NewInvoiceHandler creates a new InvoiceHandler
func NewInvoiceHandler(invoiceService InvoiceService, statsService StatsService, pdfService PDFService) *InvoiceHandler {
	return &InvoiceHandler{
		invoiceService: invoiceService,
		statsService:   statsService,
		pdfService:     pdfService,
	}
}

// WithPDFRecorder records render durations and failures
func (h *InvoiceHandler) WithPDFRecorder(r PDFRenderRecorder) *InvoiceHandler {
	h.pdfRecorder = r
	return h
}

// Create issues a new invoice with the next number of the owner's sequence
//
//	@ID			createInvoice
//	@Summary		Create an invoice
//	@Tags			invoices
//	@Accept		json
//	@Produce		json
//	@Param			request	body		billingapp.CreateInvoiceRequest	true	"Invoice"
//	@Success		201		{object}	dto.Response{data=billingapp.InvoiceResponse}
//	@Failure		400		{object}	dto.Response
//	@Failure		404		{object}	dto.Response
//	@Security		BearerAuth
//	@Router			/invoices [post]
func (h *InvoiceHandler) Create(c *gin.Context) {
	ownerID, ok := h.ownerID(c)
	if !ok {
		return
	}

	var req billingapp.CreateInvoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	invoice, err := h.invoiceService.Create(c.Request.Context(), ownerID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, invoice)
}

// GetByID returns one invoice with its items and customer
//
//	@ID			getInvoice
//	@Summary		Get an invoice
//	@Tags			invoices
//	@Produce		json
//	@Param			id	path		string	true	"Invoice ID"	format(uuid)
//	@Success		200		{object}	dto.Response{data=billingapp.InvoiceResponse}
//	@Failure		404		{object}	dto.Response
//	@Security		BearerAuth
//	@Router			/invoices/{id} [get]
func (h *InvoiceHandler) GetByID(c *gin.Context) {
	ownerID, ok := h.ownerID(c)
	if !ok {
		return
	}
	invoiceID, ok := h.parseID(c, "id", "invoice")
	if !ok {
		return
	}

	invoice, err := h.invoiceService.GetByID(c.Request.Context(), ownerID, invoiceID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, invoice)
}

// List returns a page of invoices filtered by status, customer or search text
//
//	@ID			listInvoices
//	@Summary		List invoices
//	@Tags			invoices
//	@Produce		json
//	@Param			status		query		string	false	"Status"	Enums(draft, pending, paid, overdue, cancelled)
//	@Param			customer_id	query		string	false	"Customer ID"	format(uuid)
//	@Param			search		query		string	false	"Invoice number contains"
//	@Param			page		query		int		false	"Page number"
//	@Param			page_size	query		int		false	"Page size"
//	@Success		200		{object}	dto.Response{data=[]billingapp.InvoiceResponse}
//	@Security		BearerAuth
//	@Router			/invoices [get]
func (h *InvoiceHandler) List(c *gin.Context) {
	ownerID, ok := h.ownerID(c)
	if !ok {
		return
	}

	var filter billingapp.InvoiceListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BindingError(c, err)
		return
	}
	if page, pageSize, ok := skipLimit(c); ok && filter.Page == 0 {
		filter.Page, filter.PageSize = page, pageSize
	}

	result, err := h.invoiceService.List(c.Request.Context(), ownerID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, result.Items, result.Total, result.Page, result.PageSize)
}

// Update applies a partial update and recomputes totals
//
//	@ID			updateInvoice
//	@Summary		Update an invoice
//	@Tags			invoices
//	@Accept		json
//	@Produce		json
//	@Param			id		path		string						true	"Invoice ID"	format(uuid)
//	@Param			request	body		billingapp.UpdateInvoiceRequest	true	"Fields to change"
//	@Success		200		{object}	dto.Response{data=billingapp.InvoiceResponse}
//	@Failure		400		{object}	dto.Response
//	@Failure		404		{object}	dto.Response
//	@Security		BearerAuth
//	@Router			/invoices/{id} [put]
func (h *InvoiceHandler) Update(c *gin.Context) {
	ownerID, ok := h.ownerID(c)
	if !ok {
		return
	}
	invoiceID, ok := h.parseID(c, "id", "invoice")
	if !ok {
		return
	}

	var req billingapp.UpdateInvoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	invoice, err := h.invoiceService.Update(c.Request.Context(), ownerID, invoiceID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, invoice)
}

// Delete removes an invoice and its items
//
//	@ID			deleteInvoice
//	@Summary		Delete an invoice
//	@Tags			invoices
//	@Produce		json
//	@Param			id	path		string	true	"Invoice ID"	format(uuid)
//	@Success		200		{object}	dto.Response{data=billingapp.DeletedInvoiceResponse}
//	@Failure		404		{object}	dto.Response
//	@Security		BearerAuth
//	@Router			/invoices/{id} [delete]
func (h *InvoiceHandler) Delete(c *gin.Context) {
	ownerID, ok := h.ownerID(c)
	if !ok {
		return
	}
	invoiceID, ok := h.parseID(c, "id", "invoice")
	if !ok {
		return
	}

	deleted, err := h.invoiceService.Delete(c.Request.Context(), ownerID, invoiceID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, deleted)
}

// Stats returns invoice counts and six months of paid revenue
//
//	@ID			invoiceStats
//	@Summary		Invoice statistics
//	@Tags			invoices
//	@Produce		json
//	@Success		200		{object}	dto.Response{data=billingapp.InvoiceStats}
//	@Security		BearerAuth
//	@Router			/invoices/stats [get]
func (h *InvoiceHandler) Stats(c *gin.Context) {
	ownerID, ok := h.ownerID(c)
	if !ok {
		return
	}

	stats, err := h.statsService.InvoiceStats(c.Request.Context(), ownerID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, stats)
}

// PDF streams the rendered invoice as an attachment
//
//	@ID			invoicePdf
//	@Summary		Download an invoice as PDF
//	@Tags			invoices
//	@Produce		application/pdf
//	@Param			id	path		string	true	"Invoice ID"	format(uuid)
//	@Success		200		{file}		binary
//	@Failure		404		{object}	dto.Response
//	@Security		BearerAuth
//	@Router			/invoices/{id}/pdf [get]
func (h *InvoiceHandler) PDF(c *gin.Context) {
	ownerID, ok := h.ownerID(c)
	if !ok {
		return
	}
	invoiceID, ok := h.parseID(c, "id", "invoice")
	if !ok {
		return
	}

	ctx := c.Request.Context()
	start := time.Now()
	file, err := h.pdfService.Render(ctx, ownerID, invoiceID)
	if h.pdfRecorder != nil {
		h.pdfRecorder.RecordPDFRender(ctx, time.Since(start), err)
	}
	if err != nil {
		h.HandleError(c, err)
		return
	}

	c.Header("Content-Disposition", "attachment; filename="+file.Filename)
	c.Data(http.StatusOK, file.ContentType, file.Data)
}

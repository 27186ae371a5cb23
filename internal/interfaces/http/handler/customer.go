package handler

import (
	"strconv"

	partnerapp "github.com/bizify/backend/internal/application/partner"
	"github.com/gin-gonic/gin"
)

// CustomerHandler handles customer-related API endpoints
type CustomerHandler struct {
	BaseHandler
	customerService CustomerService
}

// NewCustomerHandler creates a new CustomerHandler
func NewCustomerHandler(customerService CustomerService) *CustomerHandler {
	return &CustomerHandler{customerService: customerService}
}

// Create adds a customer
//
//	@ID			createCustomer
//	@Summary		Create a customer
//	@Tags			customers
//	@Accept		json
//	@Produce		json
//	@Param			request	body		partnerapp.CreateCustomerRequest	true	"Customer"
//	@Success		201		{object}	dto.Response{data=partnerapp.CustomerResponse}
//	@Failure		400		{object}	dto.Response
//	@Failure		409		{object}	dto.Response
//	@Security		BearerAuth
//	@Router			/customers [post]
func (h *CustomerHandler) Create(c *gin.Context) {
	ownerID, ok := h.ownerID(c)
	if !ok {
		return
	}

	var req partnerapp.CreateCustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	customer, err := h.customerService.Create(c.Request.Context(), ownerID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, customer)
}

// GetByID returns one customer
//
//	@ID			getCustomer
//	@Summary		Get a customer
//	@Tags			customers
//	@Produce		json
//	@Param			id	path		string	true	"Customer ID"	format(uuid)
//	@Success		200		{object}	dto.Response{data=partnerapp.CustomerResponse}
//	@Failure		404		{object}	dto.Response
//	@Security		BearerAuth
//	@Router			/customers/{id} [get]
func (h *CustomerHandler) GetByID(c *gin.Context) {
	ownerID, ok := h.ownerID(c)
	if !ok {
		return
	}
	customerID, ok := h.parseID(c, "id", "customer")
	if !ok {
		return
	}

	customer, err := h.customerService.GetByID(c.Request.Context(), ownerID, customerID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, customer)
}

// List returns a page of customers. The skip/limit parameters of older
// clients are translated to page/page_size.
//
//	@ID			listCustomers
//	@Summary		List customers
//	@Tags			customers
//	@Produce		json
//	@Param			search		query		string	false	"Name, email or company contains"
//	@Param			page		query		int		false	"Page number"
//	@Param			page_size	query		int		false	"Page size"
//	@Param			skip		query		int		false	"Rows to skip"
//	@Param			limit		query		int		false	"Maximum rows"
//	@Success		200		{object}	dto.Response{data=[]partnerapp.CustomerResponse}
//	@Security		BearerAuth
//	@Router			/customers [get]
func (h *CustomerHandler) List(c *gin.Context) {
	ownerID, ok := h.ownerID(c)
	if !ok {
		return
	}

	var filter partnerapp.CustomerListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BindingError(c, err)
		return
	}
	if page, pageSize, ok := skipLimit(c); ok && filter.Page == 0 {
		filter.Page, filter.PageSize = page, pageSize
	}

	result, err := h.customerService.List(c.Request.Context(), ownerID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, result.Items, result.Total, result.Page, result.PageSize)
}

// Update applies a partial update to a customer
//
//	@ID			updateCustomer
//	@Summary		Update a customer
//	@Tags			customers
//	@Accept		json
//	@Produce		json
//	@Param			id		path		string						true	"Customer ID"	format(uuid)
//	@Param			request	body		partnerapp.UpdateCustomerRequest	true	"Fields to change"
//	@Success		200		{object}	dto.Response{data=partnerapp.CustomerResponse}
//	@Failure		404		{object}	dto.Response
//	@Failure		409		{object}	dto.Response
//	@Security		BearerAuth
//	@Router			/customers/{id} [put]
func (h *CustomerHandler) Update(c *gin.Context) {
	ownerID, ok := h.ownerID(c)
	if !ok {
		return
	}
	customerID, ok := h.parseID(c, "id", "customer")
	if !ok {
		return
	}

	var req partnerapp.UpdateCustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	customer, err := h.customerService.Update(c.Request.Context(), ownerID, customerID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, customer)
}

// Delete removes a customer that has no invoices. The deleted record is
// returned so clients can show what was removed.
//
//	@ID			deleteCustomer
//	@Summary		Delete a customer
//	@Tags			customers
//	@Produce		json
//	@Param			id	path		string	true	"Customer ID"	format(uuid)
//	@Success		200		{object}	dto.Response{data=partnerapp.CustomerResponse}
//	@Failure		404		{object}	dto.Response
//	@Failure		422		{object}	dto.Response
//	@Security		BearerAuth
//	@Router			/customers/{id} [delete]
func (h *CustomerHandler) Delete(c *gin.Context) {
	ownerID, ok := h.ownerID(c)
	if !ok {
		return
	}
	customerID, ok := h.parseID(c, "id", "customer")
	if !ok {
		return
	}

	ctx := c.Request.Context()
	customer, err := h.customerService.GetByID(ctx, ownerID, customerID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	if err := h.customerService.Delete(ctx, ownerID, customerID); err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, customer)
}

// Stats returns customer counts and the top customers by paid revenue
//
//	@ID			customerStats
//	@Summary		Customer statistics
//	@Tags			customers
//	@Produce		json
//	@Success		200		{object}	dto.Response{data=partnerapp.CustomerStats}
//	@Security		BearerAuth
//	@Router			/customers/stats [get]
func (h *CustomerHandler) Stats(c *gin.Context) {
	ownerID, ok := h.ownerID(c)
	if !ok {
		return
	}

	stats, err := h.customerService.Stats(c.Request.Context(), ownerID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, stats)
}

// skipLimit converts ?skip=&limit= to a page. Only exact multiples land on
// the same rows; a skip that is not a multiple of limit rounds down.
func skipLimit(c *gin.Context) (page, pageSize int, ok bool) {
	limitStr, hasLimit := c.GetQuery("limit")
	if !hasLimit {
		return 0, 0, false
	}
	limit, err := strconv.Atoi(limitStr)
	if err != nil || limit < 1 {
		return 0, 0, false
	}
	skip, _ := strconv.Atoi(c.Query("skip"))
	if skip < 0 {
		skip = 0
	}
	return skip/limit + 1, limit, true
}

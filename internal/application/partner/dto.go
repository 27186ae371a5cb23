package partner

import (
	"time"

	"github.com/bizify/backend/internal/domain/billing"
	"github.com/bizify/backend/internal/domain/partner"
	"github.com/bizify/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// CreateCustomerRequest represents a request to create a new customer
type CreateCustomerRequest struct {
	Name    string `json:"name" binding:"required,min=1,max=200"`
	Email   string `json:"email" binding:"required,email,max=200"`
	Phone   string `json:"phone" binding:"max=50"`
	Address string `json:"address" binding:"max=500"`
	City    string `json:"city" binding:"max=100"`
	State   string `json:"state" binding:"max=100"`
	ZipCode string `json:"zip_code" binding:"max=20"`
	Country string `json:"country" binding:"max=100"`
	Company string `json:"company" binding:"max=200"`
	Notes   string `json:"notes"`
}

// Profile converts the request into domain input
func (r CreateCustomerRequest) Profile() partner.Profile {
	return partner.Profile{
		Name:    r.Name,
		Email:   r.Email,
		Phone:   r.Phone,
		Address: r.Address,
		City:    r.City,
		State:   r.State,
		ZipCode: r.ZipCode,
		Country: r.Country,
		Company: r.Company,
		Notes:   r.Notes,
	}
}

// UpdateCustomerRequest is a partial update. Absent fields are left unchanged.
type UpdateCustomerRequest struct {
	Name    shared.Optional[string] `json:"name"`
	Email   shared.Optional[string] `json:"email"`
	Phone   shared.Optional[string] `json:"phone"`
	Address shared.Optional[string] `json:"address"`
	City    shared.Optional[string] `json:"city"`
	State   shared.Optional[string] `json:"state"`
	ZipCode shared.Optional[string] `json:"zip_code"`
	Country shared.Optional[string] `json:"country"`
	Company shared.Optional[string] `json:"company"`
	Notes   shared.Optional[string] `json:"notes"`
}

// Patch converts the request into a domain patch
func (r UpdateCustomerRequest) Patch() partner.ProfilePatch {
	return partner.ProfilePatch{
		Name:    r.Name,
		Email:   r.Email,
		Phone:   r.Phone,
		Address: r.Address,
		City:    r.City,
		State:   r.State,
		ZipCode: r.ZipCode,
		Country: r.Country,
		Company: r.Company,
		Notes:   r.Notes,
	}
}

// CustomerResponse represents a customer in API responses
type CustomerResponse struct {
	ID        uuid.UUID `json:"id"`
	OwnerID   uuid.UUID `json:"user_id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	Address   string    `json:"address"`
	City      string    `json:"city"`
	State     string    `json:"state"`
	ZipCode   string    `json:"zip_code"`
	Country   string    `json:"country"`
	Company   string    `json:"company"`
	Notes     string    `json:"notes"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ToCustomerResponse converts a domain customer to a response
func ToCustomerResponse(c *partner.Customer) CustomerResponse {
	return CustomerResponse{
		ID:        c.ID,
		OwnerID:   c.OwnerID,
		Name:      c.Name,
		Email:     c.Email,
		Phone:     c.Phone,
		Address:   c.Address,
		City:      c.City,
		State:     c.State,
		ZipCode:   c.ZipCode,
		Country:   c.Country,
		Company:   c.Company,
		Notes:     c.Notes,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}

// CustomerListFilter holds list query parameters
type CustomerListFilter struct {
	Search   string `form:"search"`
	Page     int    `form:"page" binding:"omitempty,min=1"`
	PageSize int    `form:"page_size" binding:"omitempty,min=1,max=1000"`
	OrderBy  string `form:"order_by"`
	OrderDir string `form:"order_dir" binding:"omitempty,oneof=asc desc"`
}

// ToDomain converts the list filter into a repository filter
func (f CustomerListFilter) ToDomain() shared.Filter {
	filter := shared.DefaultFilter()
	filter.Search = f.Search
	if f.Page > 0 {
		filter.Page = f.Page
	}
	if f.PageSize > 0 {
		filter.PageSize = f.PageSize
	}
	if f.OrderBy != "" {
		filter.OrderBy = f.OrderBy
	}
	if f.OrderDir != "" {
		filter.OrderDir = f.OrderDir
	}
	return filter
}

// TopCustomer is a customer ranked by paid revenue
type TopCustomer struct {
	ID         uuid.UUID      `json:"id"`
	Name       string         `json:"name"`
	Company    string         `json:"company"`
	TotalSpent billing.Amount `json:"total_spent"`
}

// CustomerStats summarizes the customers of an owner
type CustomerStats struct {
	TotalCustomers        int64         `json:"total_customers"`
	NewCustomersThisMonth int64         `json:"new_customers_this_month"`
	ActiveCustomers       int64         `json:"active_customers"`
	TopCustomers          []TopCustomer `json:"top_customers"`
}

package partner

import (
	"regexp"
	"strings"

	"github.com/bizify/backend/internal/domain/shared"
	"github.com/google/uuid"
)

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

// Customer is billed by invoices. Within one owner the email is the natural key.
type Customer struct {
	shared.OwnedAggregateRoot
	Name    string
	Email   string
	Phone   string
	Address string
	City    string
	State   string
	ZipCode string
	Country string
	Company string
	Notes   string
}

// Profile holds the mutable fields of a customer
type Profile struct {
	Name    string
	Email   string
	Phone   string
	Address string
	City    string
	State   string
	ZipCode string
	Country string
	Company string
	Notes   string
}

// NewCustomer creates a new customer
func NewCustomer(ownerID uuid.UUID, p Profile) (*Customer, error) {
	c := &Customer{OwnedAggregateRoot: shared.NewOwnedAggregateRoot(ownerID)}
	if err := c.SetProfile(p); err != nil {
		return nil, err
	}
	return c, nil
}

// SetProfile overwrites every mutable field.
func (c *Customer) SetProfile(p Profile) error {
	if err := validateCustomerName(p.Name); err != nil {
		return err
	}
	email := NormalizeEmail(p.Email)
	if err := validateEmail(email); err != nil {
		return err
	}

	c.Name = strings.TrimSpace(p.Name)
	c.Email = email
	c.Phone = p.Phone
	c.Address = p.Address
	c.City = p.City
	c.State = p.State
	c.ZipCode = p.ZipCode
	c.Country = p.Country
	c.Company = p.Company
	c.Notes = p.Notes
	c.Touch()
	return nil
}

// Profile returns the current mutable fields
func (c *Customer) Profile() Profile {
	return Profile{
		Name:    c.Name,
		Email:   c.Email,
		Phone:   c.Phone,
		Address: c.Address,
		City:    c.City,
		State:   c.State,
		ZipCode: c.ZipCode,
		Country: c.Country,
		Company: c.Company,
		Notes:   c.Notes,
	}
}

// ProfilePatch is a partial update of a customer
type ProfilePatch struct {
	Name    shared.Optional[string]
	Email   shared.Optional[string]
	Phone   shared.Optional[string]
	Address shared.Optional[string]
	City    shared.Optional[string]
	State   shared.Optional[string]
	ZipCode shared.Optional[string]
	Country shared.Optional[string]
	Company shared.Optional[string]
	Notes   shared.Optional[string]
}

// ApplyPatch applies the present fields and validates the result.
func (c *Customer) ApplyPatch(p ProfilePatch) error {
	next := c.Profile()
	p.Name.Apply(&next.Name)
	p.Email.Apply(&next.Email)
	p.Phone.Apply(&next.Phone)
	p.Address.Apply(&next.Address)
	p.City.Apply(&next.City)
	p.State.Apply(&next.State)
	p.ZipCode.Apply(&next.ZipCode)
	p.Country.Apply(&next.Country)
	p.Company.Apply(&next.Company)
	p.Notes.Apply(&next.Notes)
	return c.SetProfile(next)
}

// NormalizeEmail lowercases and trims an address so lookups by email are stable.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func validateCustomerName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return shared.NewDomainError(shared.CodeInvalidInput, "Customer name cannot be empty")
	}
	if len(name) > 200 {
		return shared.NewDomainError(shared.CodeInvalidInput, "Customer name cannot exceed 200 characters")
	}
	return nil
}

func validateEmail(email string) error {
	if email == "" {
		return shared.NewDomainError(shared.CodeInvalidInput, "Customer email cannot be empty")
	}
	if len(email) > 200 {
		return shared.NewDomainError(shared.CodeInvalidInput, "Email cannot exceed 200 characters")
	}
	if !emailRegex.MatchString(email) {
		return shared.NewDomainError(shared.CodeInvalidInput, "Invalid email format")
	}
	return nil
}

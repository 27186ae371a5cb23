package models

import (
	"github.com/bizify/backend/internal/domain/partner"
	"github.com/google/uuid"
)

// CustomerModel is the persistence model for the Customer domain entity.
type CustomerModel struct {
	BaseModel
	OwnerID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_customers_owner_email,priority:1"`
	Name    string    `gorm:"type:varchar(200);not null;index"`
	Email   string    `gorm:"type:varchar(200);not null;uniqueIndex:idx_customers_owner_email,priority:2"`
	Phone   string    `gorm:"type:varchar(50)"`
	Address string    `gorm:"type:text"`
	City    string    `gorm:"type:varchar(100)"`
	State   string    `gorm:"type:varchar(100)"`
	ZipCode string    `gorm:"type:varchar(20)"`
	Country string    `gorm:"type:varchar(100)"`
	Company string    `gorm:"type:varchar(200)"`
	Notes   string    `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (CustomerModel) TableName() string {
	return "customers"
}

// ToDomain converts the persistence model to a domain Customer entity.
func (m *CustomerModel) ToDomain() *partner.Customer {
	return &partner.Customer{
		OwnedAggregateRoot: ownedRoot(m.BaseModel, m.OwnerID),
		Name:               m.Name,
		Email:              m.Email,
		Phone:              m.Phone,
		Address:            m.Address,
		City:               m.City,
		State:              m.State,
		ZipCode:            m.ZipCode,
		Country:            m.Country,
		Company:            m.Company,
		Notes:              m.Notes,
	}
}

// FromDomain populates the persistence model from a domain Customer entity.
func (m *CustomerModel) FromDomain(c *partner.Customer) {
	m.FromDomainBaseEntity(c.BaseEntity)
	m.OwnerID = c.OwnerID
	m.Name = c.Name
	m.Email = c.Email
	m.Phone = c.Phone
	m.Address = c.Address
	m.City = c.City
	m.State = c.State
	m.ZipCode = c.ZipCode
	m.Country = c.Country
	m.Company = c.Company
	m.Notes = c.Notes
}

// CustomerModelFromDomain creates a new persistence model from a domain Customer entity.
func CustomerModelFromDomain(c *partner.Customer) *CustomerModel {
	m := &CustomerModel{}
	m.FromDomain(c)
	return m
}

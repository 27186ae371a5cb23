// Package models contains the GORM persistence models. Domain entities stay
// free of ORM tags; every model converts to and from its entity with
// ToDomain and FromDomain.
//
//   - base.go: BaseModel and the owned aggregate root mapping
//   - identity.go: users
//   - partner.go: customers
//   - billing.go: invoices, invoice items, settings, invoice sequences
package models

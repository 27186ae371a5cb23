package persistence

import "github.com/bizify/backend/internal/infrastructure/persistence/models"

// AllModels lists every persisted model in dependency order.
func AllModels() []any {
	return []any{
		&models.UserModel{},
		&models.CustomerModel{},
		&models.InvoiceModel{},
		&models.InvoiceItemModel{},
		&models.SettingsModel{},
		&models.InvoiceSequenceModel{},
	}
}

package billing

import (
	"context"
	"errors"

	"github.com/bizify/backend/internal/domain/billing"
	"github.com/bizify/backend/internal/domain/shared"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// SettingsService manages the company settings of an owner
type SettingsService struct {
	settingsRepo billing.SettingsRepository
	txScope      TransactionScope
	logger       *zap.Logger
}

// NewSettingsService creates a new SettingsService
func NewSettingsService(settingsRepo billing.SettingsRepository, txScope TransactionScope, logger *zap.Logger) *SettingsService {
	return &SettingsService{
		settingsRepo: settingsRepo,
		txScope:      txScope,
		logger:       logger,
	}
}

// Get returns the current settings
func (s *SettingsService) Get(ctx context.Context, ownerID uuid.UUID) (*SettingsResponse, error) {
	settings, err := s.settingsRepo.FindCurrent(ctx, ownerID)
	if err != nil {
		return nil, settingsNotFound(err)
	}
	resp := ToSettingsResponse(settings)
	return &resp, nil
}

// Update patches the current settings, creating them when the owner has none.
func (s *SettingsService) Update(ctx context.Context, ownerID uuid.UUID, req UpdateSettingsRequest) (*SettingsResponse, error) {
	settings, err := s.settingsRepo.FindCurrent(ctx, ownerID)
	switch {
	case errors.Is(err, shared.ErrNotFound):
		settings = billing.NewSettings(ownerID, "")
	case err != nil:
		return nil, err
	}

	if err := settings.ApplyPatch(req.Patch()); err != nil {
		return nil, err
	}
	if err := s.settingsRepo.ReplaceCurrent(ctx, settings); err != nil {
		return nil, err
	}

	resp := ToSettingsResponse(settings)
	return &resp, nil
}

// Reset deletes every invoice, customer and settings record of the owner and
// writes the default settings, all in one transaction.
func (s *SettingsService) Reset(ctx context.Context, ownerID uuid.UUID) (*ResetResponse, error) {
	err := s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		if err := repos.Invoices().DeleteAllForOwner(ctx, ownerID); err != nil {
			return err
		}
		if err := repos.Customers().DeleteAllForOwner(ctx, ownerID); err != nil {
			return err
		}
		if err := repos.Settings().DeleteAllForOwner(ctx, ownerID); err != nil {
			return err
		}
		return repos.Settings().ReplaceCurrent(ctx, billing.NewResetSettings(ownerID))
	})
	if err != nil {
		s.logger.Error("data reset failed", zap.String("owner_id", ownerID.String()), zap.Error(err))
		return nil, err
	}

	s.logger.Info("owner data reset", zap.String("owner_id", ownerID.String()))
	return &ResetResponse{Status: "success", Message: "All data has been reset to defaults"}, nil
}

func settingsNotFound(err error) error {
	if errors.Is(err, shared.ErrNotFound) {
		return shared.NewDomainError(shared.CodeNotFound, "Settings not found")
	}
	return err
}

package identity

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/bizify/backend/internal/domain/billing"
	"github.com/bizify/backend/internal/domain/identity"
	"github.com/bizify/backend/internal/domain/shared"
	"github.com/bizify/backend/internal/infrastructure/auth"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// AuthService handles registration, login and token resolution
type AuthService struct {
	userRepo     identity.UserRepository
	settingsRepo billing.SettingsRepository
	jwtService   *auth.JWTService
	logger       *zap.Logger
	now          func() time.Time
}

// NewAuthService creates a new authentication service
func NewAuthService(
	userRepo identity.UserRepository,
	settingsRepo billing.SettingsRepository,
	jwtService *auth.JWTService,
	logger *zap.Logger,
) *AuthService {
	return &AuthService{
		userRepo:     userRepo,
		settingsRepo: settingsRepo,
		jwtService:   jwtService,
		logger:       logger,
		now:          time.Now,
	}
}

// Register creates an account together with its default company settings
func (s *AuthService) Register(ctx context.Context, req RegisterRequest) (*UserResponse, error) {
	exists, err := s.userRepo.ExistsByEmail(ctx, normalizeEmail(req.Email))
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.NewDomainError(shared.CodeAlreadyExists, "Email already registered")
	}

	user, err := identity.NewUser(req.Email, req.Name, req.Password)
	if err != nil {
		return nil, err
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	// The account is usable without settings; invoices then fall back to the default prefix.
	if err := s.settingsRepo.ReplaceCurrent(ctx, billing.NewRegistrationSettings(user.ID)); err != nil {
		s.logger.Warn("Failed to create default settings",
			zap.String("user_id", user.ID.String()),
			zap.Error(err))
	}

	s.logger.Info("User registered", zap.String("user_id", user.ID.String()))
	resp := ToUserResponse(user)
	return &resp, nil
}

// Token verifies credentials and issues an access token
func (s *AuthService) Token(ctx context.Context, req TokenRequest) (*TokenResponse, error) {
	invalid := shared.NewDomainError(shared.CodeUnauthorized, "Incorrect email or password")

	user, err := s.userRepo.FindByEmail(ctx, normalizeEmail(req.Email))
	if errors.Is(err, shared.ErrNotFound) {
		s.logger.Warn("Login attempt for unknown email")
		return nil, invalid
	}
	if err != nil {
		return nil, err
	}
	if !user.VerifyPassword(req.Password) {
		s.logger.Warn("Invalid password attempt", zap.String("user_id", user.ID.String()))
		return nil, invalid
	}
	if !user.Active {
		return nil, shared.NewDomainError(shared.CodeUnauthorized, "Inactive user")
	}

	token, err := s.jwtService.GenerateAccessToken(user.ID, user.Email)
	if err != nil {
		s.logger.Error("Failed to generate access token", zap.Error(err))
		return nil, shared.NewDomainError(shared.CodeInternal, "Failed to generate authentication token")
	}

	user.RecordLogin(s.now())
	if err := s.userRepo.Update(ctx, user); err != nil {
		s.logger.Error("Failed to update user after successful login", zap.Error(err))
	}

	s.logger.Info("User logged in", zap.String("user_id", user.ID.String()))
	return &TokenResponse{
		AccessToken: token.Token,
		TokenType:   "bearer",
		ExpiresIn:   int64(s.jwtService.AccessTokenExpiration().Seconds()),
	}, nil
}

// Authenticate resolves a bearer token to the id of an active user
func (s *AuthService) Authenticate(ctx context.Context, token string) (uuid.UUID, error) {
	unauthorized := shared.NewDomainError(shared.CodeUnauthorized, "Could not validate credentials")

	claims, err := s.jwtService.ValidateAccessToken(token)
	if err != nil {
		return uuid.Nil, unauthorized
	}
	userID, err := claims.GetUserUUID()
	if err != nil {
		return uuid.Nil, unauthorized
	}
	user, err := s.userRepo.FindByID(ctx, userID)
	if errors.Is(err, shared.ErrNotFound) {
		return uuid.Nil, unauthorized
	}
	if err != nil {
		return uuid.Nil, err
	}
	if !user.Active {
		return uuid.Nil, shared.NewDomainError(shared.CodeUnauthorized, "Inactive user")
	}
	return user.ID, nil
}

// Me returns the authenticated user
func (s *AuthService) Me(ctx context.Context, userID uuid.UUID) (*UserResponse, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewDomainError(shared.CodeNotFound, "User not found")
		}
		return nil, err
	}
	resp := ToUserResponse(user)
	return &resp, nil
}

// CheckSetup reports whether no account has been created yet
func (s *AuthService) CheckSetup(ctx context.Context) (*SetupStatus, error) {
	count, err := s.userRepo.Count(ctx)
	if err != nil {
		return nil, err
	}
	return &SetupStatus{IsFirstTimeSetup: count == 0}, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

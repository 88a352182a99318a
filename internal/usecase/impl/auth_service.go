// Package impl contains the implementation of the application's business logic.
package impl

import (
	"context"
	"log/slog"
	"time"

	"market/config"
	deliverycontext "market/internal/delivery/context"
	"market/internal/domain/entity"
	domainerrors "market/internal/domain/errors"
	"market/internal/domain/repository"
	"market/internal/domain/service"
	"market/internal/usecase"

	"github.com/pkg/errors"
	"go.uber.org/fx"
)

const (
	defaultAccessTokenTTL  = 15 * time.Minute
	defaultRefreshTokenTTL = 7 * 24 * time.Hour

	tokenTypeBearer = "bearer"
)

// authService implements the AuthUsecase interface.
type authService struct {
	txManager  repository.TransactionManager
	userRepo   repository.UserRepository
	hasher     service.PasswordHasher
	codec      service.TokenCodec
	clock      service.Clock
	accessTTL  time.Duration
	refreshTTL time.Duration
	logger     *slog.Logger
}

// AuthServiceParams holds dependencies for authService, injected by Fx.
type AuthServiceParams struct {
	fx.In

	TxManager repository.TransactionManager
	UserRepo  repository.UserRepository
	Hasher    service.PasswordHasher
	Codec     service.TokenCodec
	Clock     service.Clock
	Config    *config.Config
	Logger    *slog.Logger
}

// NewAuthService is the constructor for authService. It receives all dependencies as interfaces.
func NewAuthService(params AuthServiceParams) usecase.AuthUsecase {
	accessTTL := defaultAccessTokenTTL
	refreshTTL := defaultRefreshTokenTTL
	if params.Config != nil {
		if minutes := params.Config.JWT.AccessTokenExpireMinutes; minutes > 0 {
			accessTTL = time.Duration(minutes) * time.Minute
		}
		if days := params.Config.JWT.RefreshTokenExpireDays; days > 0 {
			refreshTTL = time.Duration(days) * 24 * time.Hour
		}
	}

	return &authService{
		txManager:  params.TxManager,
		userRepo:   params.UserRepo,
		hasher:     params.Hasher,
		codec:      params.Codec,
		clock:      params.Clock,
		accessTTL:  accessTTL,
		refreshTTL: refreshTTL,
		logger:     params.Logger,
	}
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *authService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// Register orchestrates the complete account registration process.
// The created account is always a regular user; superuser status is only
// granted out of band.
func (srv *authService) Register(ctx context.Context, input usecase.RegisterInput) (*entity.User, error) {
	srv.log(ctx).Info("Starting registration", slog.String("email", input.Email))

	var registeredUser *entity.User
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		userRepo := repoFactory.NewUserRepository()

		// A taken email wins over a mismatched confirmation, so the
		// existence check has to run first.
		_, err := userRepo.FindByEmail(ctx, input.Email)
		if err == nil {
			return domainerrors.ErrUserExists
		}
		if !errors.Is(err, repository.ErrUserNotFound) {
			return errors.Wrap(err, "failed to check existing email")
		}

		if input.Password != input.PasswordConfirm {
			return domainerrors.ErrPasswordMismatch
		}

		hash, err := srv.hasher.Hash(input.Password)
		if err != nil {
			srv.log(ctx).Error("Failed to hash password", slog.Any("error", err))

			return domainerrors.ErrPasswordHashFailed.WrapMessage(err.Error())
		}

		user := &entity.User{
			FirstName:    input.FirstName,
			LastName:     input.LastName,
			Email:        input.Email,
			PasswordHash: hash,
			IsSuperuser:  false,
		}
		if err := userRepo.Create(ctx, user); err != nil {
			return err
		}

		registeredUser = user

		return nil
	})
	if err != nil {
		srv.log(ctx).Warn("Registration failed", slog.String("email", input.Email), slog.Any("error", err))

		return nil, err
	}

	srv.log(ctx).Debug("Registration completed", slog.Any("userID", registeredUser.ID))

	return registeredUser, nil
}

// Authenticate verifies an email/password pair. A wrong password and an
// unknown email both come back as ok=false; err carries only
// infrastructure failures.
func (srv *authService) Authenticate(ctx context.Context, email, password string) (*entity.User, bool, error) {
	user, err := srv.userRepo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, false, nil
		}

		return nil, false, errors.Wrap(err, "failed to find user for authentication")
	}

	if !srv.hasher.Check(password, user.PasswordHash) {
		return nil, false, nil
	}

	return user, true, nil
}

// CreateAccessToken issues a short-lived access token for the user.
func (srv *authService) CreateAccessToken(user *entity.User) (string, error) {
	return srv.createToken(user, service.TokenTypeAccess, srv.accessTTL)
}

// CreateRefreshToken issues a long-lived refresh token for the user.
func (srv *authService) CreateRefreshToken(user *entity.User) (string, error) {
	return srv.createToken(user, service.TokenTypeRefresh, srv.refreshTTL)
}

func (srv *authService) createToken(user *entity.User, tokenType service.TokenType, ttl time.Duration) (string, error) {
	now := srv.clock.Now()
	token, err := srv.codec.Encode(service.TokenClaims{
		Subject:   user.Email,
		Type:      tokenType,
		IssuedAt:  now,
		ExpiresAt: now.Add(ttl),
	})
	if err != nil {
		return "", errors.Wrapf(err, "failed to encode %s token", tokenType)
	}

	return token, nil
}

// CreateTokenPair issues both tokens and records the login time. A failed
// last-login write is logged but never blocks the login itself.
func (srv *authService) CreateTokenPair(ctx context.Context, user *entity.User) (*usecase.TokenPair, error) {
	accessToken, err := srv.CreateAccessToken(user)
	if err != nil {
		return nil, err
	}

	refreshToken, err := srv.CreateRefreshToken(user)
	if err != nil {
		return nil, err
	}

	now := srv.clock.Now()
	if err := srv.userRepo.UpdateLastLogin(ctx, user.ID, now); err != nil {
		srv.log(ctx).Warn("Failed to record last login", slog.Any("userID", user.ID), slog.Any("error", err))
	} else {
		user.LastLogin = &now
	}

	return &usecase.TokenPair{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		TokenType:    tokenTypeBearer,
	}, nil
}

// DecodeToken validates a token and translates codec errors into the
// user-facing domain errors.
func (srv *authService) DecodeToken(token string) (service.TokenClaims, error) {
	claims, err := srv.codec.Decode(token)
	if err != nil {
		if errors.Is(err, service.ErrTokenExpired) {
			return service.TokenClaims{}, domainerrors.ErrTokenExpired
		}

		return service.TokenClaims{}, domainerrors.ErrInvalidToken
	}

	return claims, nil
}

// Refresh exchanges a valid refresh token for a brand-new token pair.
// Tokens are stateless, so a refresh token stays usable until its natural
// expiry even after being exchanged.
func (srv *authService) Refresh(ctx context.Context, refreshToken string) (*usecase.TokenPair, error) {
	claims, err := srv.DecodeToken(refreshToken)
	if err != nil {
		return nil, err
	}

	user, err := srv.userRepo.FindByEmail(ctx, claims.Subject)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, domainerrors.ErrInvalidToken.WrapMessage("token subject no longer exists")
		}

		return nil, errors.Wrap(err, "failed to resolve refresh token subject")
	}

	return srv.CreateTokenPair(ctx, user)
}

// Authorize resolves an access token to the user it was issued for. An
// expired token and a malformed one surface as distinct errors so the
// client knows whether to refresh or to log in again; only a deleted
// account collapses to not-authenticated.
func (srv *authService) Authorize(ctx context.Context, accessToken string) (*entity.User, error) {
	claims, err := srv.DecodeToken(accessToken)
	if err != nil {
		return nil, err
	}

	user, err := srv.userRepo.FindByEmail(ctx, claims.Subject)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, domainerrors.ErrNotAuthenticated
		}

		return nil, errors.Wrap(err, "failed to resolve access token subject")
	}

	return user, nil
}

// AccessTokenTTL returns the configured access token lifetime.
func (srv *authService) AccessTokenTTL() time.Duration {
	return srv.accessTTL
}

// RefreshTokenTTL returns the configured refresh token lifetime.
func (srv *authService) RefreshTokenTTL() time.Duration {
	return srv.refreshTTL
}

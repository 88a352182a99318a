// Package usecase contains the application-specific business rules.
// It orchestrates the domain layer to perform tasks.
package usecase

import (
	"context"
	"time"

	"market/internal/domain/entity"
	"market/internal/domain/service"
)

// --- Input DTOs ---

// RegisterInput defines the data required to register a new user.
type RegisterInput struct {
	FirstName       string
	LastName        string
	Email           string
	Password        string
	PasswordConfirm string
}

// LoginInput defines the data required for a user to log in.
type LoginInput struct {
	Email    string
	Password string
}

// --- Output DTOs ---

// TokenPair carries a freshly issued access/refresh token pair.
type TokenPair struct {
	AccessToken  string
	RefreshToken string
	TokenType    string
}

// AuthUsecase defines the interface for authentication and token lifecycle
// operations. This is the contract that the delivery layer depends on.
type AuthUsecase interface {
	// Register creates a new user account with a hashed password.
	// The created user is never a superuser.
	Register(ctx context.Context, input RegisterInput) (*entity.User, error)

	// Authenticate verifies an email/password pair. ok reports whether the
	// credentials matched; err is reserved for infrastructure failures.
	Authenticate(ctx context.Context, email, password string) (user *entity.User, ok bool, err error)

	// CreateAccessToken issues a short-lived access token for the user.
	CreateAccessToken(user *entity.User) (string, error)

	// CreateRefreshToken issues a long-lived refresh token for the user.
	CreateRefreshToken(user *entity.User) (string, error)

	// CreateTokenPair issues both tokens and records the login time.
	CreateTokenPair(ctx context.Context, user *entity.User) (*TokenPair, error)

	// DecodeToken validates a token's signature and expiry and returns its claims.
	DecodeToken(token string) (service.TokenClaims, error)

	// Refresh exchanges a valid refresh token for a brand-new token pair.
	Refresh(ctx context.Context, refreshToken string) (*TokenPair, error)

	// Authorize resolves an access token to the user it was issued for.
	Authorize(ctx context.Context, accessToken string) (*entity.User, error)

	// AccessTokenTTL returns the configured access token lifetime.
	AccessTokenTTL() time.Duration

	// RefreshTokenTTL returns the configured refresh token lifetime.
	RefreshTokenTTL() time.Duration
}

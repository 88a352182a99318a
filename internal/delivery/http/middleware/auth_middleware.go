package middleware

import (
	deliverycontext "market/internal/delivery/context"
	domainerrors "market/internal/domain/errors"
	"market/internal/usecase"

	"github.com/labstack/echo/v4"
)

// CookieAccessToken is the session cookie carrying the access token.
const CookieAccessToken = "access_token"

// CookieRefreshToken is the session cookie carrying the refresh token.
const CookieRefreshToken = "refresh_token"

// AuthMiddleware authenticates requests from the access token cookie.
type AuthMiddleware struct {
	authUC usecase.AuthUsecase
}

// NewAuthMiddleware is the constructor for AuthMiddleware.
func NewAuthMiddleware(authUC usecase.AuthUsecase) *AuthMiddleware {
	return &AuthMiddleware{authUC: authUC}
}

// Authenticate validates the access token cookie and stores the resolved
// user on the request context. A missing cookie fails as not-authenticated;
// an expired or malformed token keeps its own error so the client knows
// whether refreshing can help.
func (m *AuthMiddleware) Authenticate(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		cookie, err := c.Cookie(CookieAccessToken)
		if err != nil || cookie.Value == "" {
			return domainerrors.ErrNotAuthenticated
		}

		user, err := m.authUC.Authorize(c.Request().Context(), cookie.Value)
		if err != nil {
			return err
		}

		deliverycontext.SetCurrentUser(c, user)

		return next(c)
	}
}

// RequireSuperuser rejects authenticated users who lack superuser status.
// It must be used AFTER the Authenticate middleware.
func (m *AuthMiddleware) RequireSuperuser(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		user := deliverycontext.GetCurrentUser(c)
		if user == nil {
			return domainerrors.ErrNotAuthenticated
		}
		if !user.IsSuperuser {
			return domainerrors.ErrPermissionDenied
		}

		return next(c)
	}
}

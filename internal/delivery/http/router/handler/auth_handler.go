// Package handler contains the HTTP handlers for the application.
package handler

import (
	"net/http"
	"time"

	deliverycontext "market/internal/delivery/context"
	"market/internal/delivery/http/middleware"
	"market/internal/delivery/http/response"
	"market/internal/domain/entity"
	domainerrors "market/internal/domain/errors"
	"market/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// AuthHandler holds dependencies for authentication handlers.
type AuthHandler struct {
	authUC usecase.AuthUsecase
}

// NewAuthHandler is the constructor for AuthHandler, injected by Fx.
func NewAuthHandler(authUC usecase.AuthUsecase) *AuthHandler {
	return &AuthHandler{authUC: authUC}
}

// registerRequest is the JSON body for POST /auth/register.
type registerRequest struct {
	FirstName       string `json:"first_name" validate:"required,max=100"`
	LastName        string `json:"last_name" validate:"required,max=100"`
	Email           string `json:"email" validate:"required,email"`
	Password        string `json:"password" validate:"required,min=8"`
	PasswordConfirm string `json:"password_confirm" validate:"required"`
}

// loginRequest is the JSON body for POST /auth/login.
type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// userResponse is the public view of a user. The password hash never
// leaves the server.
type userResponse struct {
	ID          string     `json:"id"`
	FirstName   string     `json:"first_name"`
	LastName    string     `json:"last_name"`
	Email       string     `json:"email"`
	IsSuperuser bool       `json:"is_superuser"`
	LastLogin   *time.Time `json:"last_login"`
	CreatedAt   time.Time  `json:"created_at"`
}

// tokenPairResponse mirrors the issued token pair.
type tokenPairResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	TokenType    string `json:"token_type"`
}

func toUserResponse(user *entity.User) userResponse {
	return userResponse{
		ID:          user.ID.String(),
		FirstName:   user.FirstName,
		LastName:    user.LastName,
		Email:       user.Email,
		IsSuperuser: user.IsSuperuser,
		LastLogin:   user.LastLogin,
		CreatedAt:   user.CreatedAt,
	}
}

func toTokenPairResponse(pair *usecase.TokenPair) tokenPairResponse {
	return tokenPairResponse{
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
		TokenType:    pair.TokenType,
	}
}

// Register handles the account registration request.
func (h *AuthHandler) Register(c echo.Context) error {
	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid registration input")
	}
	if err := c.Validate(&req); err != nil {
		return errors.WithStack(err)
	}

	user, err := h.authUC.Register(c.Request().Context(), usecase.RegisterInput{
		FirstName:       req.FirstName,
		LastName:        req.LastName,
		Email:           req.Email,
		Password:        req.Password,
		PasswordConfirm: req.PasswordConfirm,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, toUserResponse(user), "User registered successfully")
}

// Login handles the login request. On success both session cookies are set
// and the token pair is returned in the body.
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid login input")
	}
	if err := c.Validate(&req); err != nil {
		return errors.WithStack(err)
	}

	user, ok, err := h.authUC.Authenticate(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		return errors.WithStack(err)
	}
	if !ok {
		return domainerrors.ErrInvalidCredentials
	}

	pair, err := h.authUC.CreateTokenPair(c.Request().Context(), user)
	if err != nil {
		return errors.WithStack(err)
	}

	h.setSessionCookies(c, pair)

	return response.Success(c, http.StatusOK, toTokenPairResponse(pair), "Login successful")
}

// Refresh exchanges the refresh token cookie for a new token pair and
// rotates both session cookies.
func (h *AuthHandler) Refresh(c echo.Context) error {
	cookie, err := c.Cookie(middleware.CookieRefreshToken)
	if err != nil || cookie.Value == "" {
		return domainerrors.ErrNotAuthenticated
	}

	pair, err := h.authUC.Refresh(c.Request().Context(), cookie.Value)
	if err != nil {
		return errors.WithStack(err)
	}

	h.setSessionCookies(c, pair)

	return response.Success(c, http.StatusOK, toTokenPairResponse(pair), "Token refreshed successfully")
}

// Logout clears both session cookies. Tokens are stateless, so the cookies
// are the only session state there is to drop.
func (h *AuthHandler) Logout(c echo.Context) error {
	h.clearSessionCookies(c)

	return response.Success(c, http.StatusOK, map[string]string{"message": "Successfully logged out"}, "Logout successful")
}

// Me returns the authenticated user's own profile.
func (h *AuthHandler) Me(c echo.Context) error {
	user := deliverycontext.GetCurrentUser(c)
	if user == nil {
		return domainerrors.ErrNotAuthenticated
	}

	return response.Success(c, http.StatusOK, toUserResponse(user), "Profile retrieved successfully")
}

func (h *AuthHandler) setSessionCookies(c echo.Context, pair *usecase.TokenPair) {
	c.SetCookie(sessionCookie(middleware.CookieAccessToken, pair.AccessToken, int(h.authUC.AccessTokenTTL().Seconds())))
	c.SetCookie(sessionCookie(middleware.CookieRefreshToken, pair.RefreshToken, int(h.authUC.RefreshTokenTTL().Seconds())))
}

func (h *AuthHandler) clearSessionCookies(c echo.Context) {
	c.SetCookie(sessionCookie(middleware.CookieAccessToken, "", -1))
	c.SetCookie(sessionCookie(middleware.CookieRefreshToken, "", -1))
}

func sessionCookie(name, value string, maxAge int) *http.Cookie {
	return &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
}

// HealthCheck is a simple handler to check if the service is up.
func HealthCheck(c echo.Context) error {
	return response.Success(c, http.StatusOK, map[string]string{"status": "ok"}, "Service is healthy")
}

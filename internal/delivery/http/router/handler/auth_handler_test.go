package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"market/internal/domain/entity"
	domainerrors "market/internal/domain/errors"
	"market/internal/domain/service"
	"market/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubAuthUsecase is a minimal AuthUsecase for handler tests.
type stubAuthUsecase struct {
	user       *entity.User
	pair       *usecase.TokenPair
	authOK     bool
	refreshErr error
}

func (s *stubAuthUsecase) Register(context.Context, usecase.RegisterInput) (*entity.User, error) {
	return s.user, nil
}

func (s *stubAuthUsecase) Authenticate(context.Context, string, string) (*entity.User, bool, error) {
	if !s.authOK {
		return nil, false, nil
	}

	return s.user, true, nil
}

func (s *stubAuthUsecase) CreateAccessToken(*entity.User) (string, error) {
	return s.pair.AccessToken, nil
}

func (s *stubAuthUsecase) CreateRefreshToken(*entity.User) (string, error) {
	return s.pair.RefreshToken, nil
}

func (s *stubAuthUsecase) CreateTokenPair(context.Context, *entity.User) (*usecase.TokenPair, error) {
	return s.pair, nil
}

func (s *stubAuthUsecase) DecodeToken(string) (service.TokenClaims, error) {
	return service.TokenClaims{}, nil
}

func (s *stubAuthUsecase) Refresh(context.Context, string) (*usecase.TokenPair, error) {
	if s.refreshErr != nil {
		return nil, s.refreshErr
	}

	return s.pair, nil
}

func (s *stubAuthUsecase) Authorize(context.Context, string) (*entity.User, error) {
	return s.user, nil
}

func (s *stubAuthUsecase) AccessTokenTTL() time.Duration { return 15 * time.Minute }

func (s *stubAuthUsecase) RefreshTokenTTL() time.Duration { return 7 * 24 * time.Hour }

func newLoginContext(t *testing.T, body string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()

	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/auth/login", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()

	return e.NewContext(req, rec), rec
}

func cookieByName(cookies []*http.Cookie, name string) *http.Cookie {
	for _, cookie := range cookies {
		if cookie.Name == name {
			return cookie
		}
	}

	return nil
}

func TestAuthHandler_Login_SetsSessionCookies(t *testing.T) {
	stub := &stubAuthUsecase{
		user:   &entity.User{ID: uuid.New(), Email: "ada@example.com"},
		pair:   &usecase.TokenPair{AccessToken: "access", RefreshToken: "refresh", TokenType: "bearer"},
		authOK: true,
	}
	h := NewAuthHandler(stub)

	c, rec := newLoginContext(t, `{"email":"ada@example.com","password":"pw"}`)
	c.Echo().Validator = noopValidator{}

	require.NoError(t, h.Login(c))
	assert.Equal(t, http.StatusOK, rec.Code)

	cookies := rec.Result().Cookies()
	access := cookieByName(cookies, "access_token")
	require.NotNil(t, access)
	assert.Equal(t, "access", access.Value)
	assert.True(t, access.HttpOnly)
	assert.Equal(t, 15*60, access.MaxAge)

	refresh := cookieByName(cookies, "refresh_token")
	require.NotNil(t, refresh)
	assert.Equal(t, "refresh", refresh.Value)
	assert.True(t, refresh.HttpOnly)
	assert.Equal(t, 7*24*60*60, refresh.MaxAge)

	assert.Contains(t, rec.Body.String(), `"token_type":"bearer"`)
}

func TestAuthHandler_Login_BadCredentials(t *testing.T) {
	stub := &stubAuthUsecase{authOK: false}
	h := NewAuthHandler(stub)

	c, _ := newLoginContext(t, `{"email":"ada@example.com","password":"wrong"}`)
	c.Echo().Validator = noopValidator{}

	err := h.Login(c)
	require.ErrorIs(t, err, domainerrors.ErrInvalidCredentials)
}

func TestAuthHandler_Refresh_MissingCookie(t *testing.T) {
	h := NewAuthHandler(&stubAuthUsecase{})

	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/auth/refresh", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	err := h.Refresh(c)
	require.ErrorIs(t, err, domainerrors.ErrNotAuthenticated)
}

func TestAuthHandler_Logout_ClearsCookies(t *testing.T) {
	h := NewAuthHandler(&stubAuthUsecase{})

	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/auth/logout", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	require.NoError(t, h.Logout(c))

	cookies := rec.Result().Cookies()
	access := cookieByName(cookies, "access_token")
	require.NotNil(t, access)
	assert.Empty(t, access.Value)
	assert.Negative(t, access.MaxAge)

	refresh := cookieByName(cookies, "refresh_token")
	require.NotNil(t, refresh)
	assert.Negative(t, refresh.MaxAge)
}

// noopValidator skips request validation in handler unit tests.
type noopValidator struct{}

func (noopValidator) Validate(any) error { return nil }

package impl

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"market/internal/domain/entity"
	domainerrors "market/internal/domain/errors"
	"market/internal/domain/repository"
	"market/internal/domain/service"
	"market/internal/infra/clock"
	mockRepo "market/internal/mocks/repository"
	mockService "market/internal/mocks/service"
	"market/internal/usecase"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

type authServiceMocks struct {
	userRepo *mockRepo.MockUserRepository
	hasher   *mockService.MockPasswordHasher
	codec    *mockService.MockTokenCodec
}

func newAuthServiceForTest(t *testing.T) (usecase.AuthUsecase, *authServiceMocks) {
	t.Helper()

	mocks := &authServiceMocks{
		userRepo: mockRepo.NewMockUserRepository(t),
		hasher:   mockService.NewMockPasswordHasher(t),
		codec:    mockService.NewMockTokenCodec(t),
	}

	svc := NewAuthService(AuthServiceParams{
		TxManager: &mockRepo.StubTransactionManager{
			Factory: &mockRepo.StubRepositoryFactory{UserRepository: mocks.userRepo},
		},
		UserRepo: mocks.userRepo,
		Hasher:   mocks.hasher,
		Codec:    mocks.codec,
		Clock:    clock.Fixed(testNow),
		Logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
	})

	return svc, mocks
}

func TestAuthService_Register_Success(t *testing.T) {
	svc, mocks := newAuthServiceForTest(t)
	ctx := context.Background()

	input := usecase.RegisterInput{
		FirstName:       "Ada",
		LastName:        "Lovelace",
		Email:           "ada@example.com",
		Password:        "correct horse",
		PasswordConfirm: "correct horse",
	}

	mocks.hasher.On("Hash", "correct horse").Return("$2a$10$hashed", nil)
	mocks.userRepo.On("FindByEmail", ctx, "ada@example.com").Return(nil, repository.ErrUserNotFound)
	mocks.userRepo.On("Create", ctx, mock.AnythingOfType("*entity.User")).
		Run(func(args mock.Arguments) {
			user := args.Get(1).(*entity.User)
			user.ID = uuid.New()
		}).
		Return(nil)

	user, err := svc.Register(ctx, input)

	require.NoError(t, err)
	require.NotNil(t, user)
	assert.NotEqual(t, uuid.Nil, user.ID)
	assert.Equal(t, "ada@example.com", user.Email)
	assert.Equal(t, "$2a$10$hashed", user.PasswordHash)
	assert.False(t, user.IsSuperuser)
	assert.Nil(t, user.LastLogin)
}

func TestAuthService_Register_PasswordMismatch(t *testing.T) {
	svc, mocks := newAuthServiceForTest(t)
	ctx := context.Background()

	mocks.userRepo.On("FindByEmail", ctx, "ada@example.com").Return(nil, repository.ErrUserNotFound)

	_, err := svc.Register(ctx, usecase.RegisterInput{
		Email:           "ada@example.com",
		Password:        "one",
		PasswordConfirm: "two",
	})

	require.ErrorIs(t, err, domainerrors.ErrPasswordMismatch)
	mocks.hasher.AssertNotCalled(t, "Hash", mock.Anything)
}

func TestAuthService_Register_DuplicateEmail(t *testing.T) {
	svc, mocks := newAuthServiceForTest(t)
	ctx := context.Background()

	existing := &entity.User{ID: uuid.New(), Email: "ada@example.com"}
	mocks.userRepo.On("FindByEmail", ctx, "ada@example.com").Return(existing, nil)

	_, err := svc.Register(ctx, usecase.RegisterInput{
		Email:           "ada@example.com",
		Password:        "correct horse",
		PasswordConfirm: "correct horse",
	})

	require.ErrorIs(t, err, domainerrors.ErrUserExists)
}

func TestAuthService_Register_DuplicateEmailWinsOverMismatch(t *testing.T) {
	svc, mocks := newAuthServiceForTest(t)
	ctx := context.Background()

	existing := &entity.User{ID: uuid.New(), Email: "ada@example.com"}
	mocks.userRepo.On("FindByEmail", ctx, "ada@example.com").Return(existing, nil)

	_, err := svc.Register(ctx, usecase.RegisterInput{
		Email:           "ada@example.com",
		Password:        "one",
		PasswordConfirm: "two",
	})

	require.ErrorIs(t, err, domainerrors.ErrUserExists)
	mocks.hasher.AssertNotCalled(t, "Hash", mock.Anything)
}

func TestAuthService_Authenticate_Success(t *testing.T) {
	svc, mocks := newAuthServiceForTest(t)
	ctx := context.Background()

	stored := &entity.User{ID: uuid.New(), Email: "ada@example.com", PasswordHash: "$2a$10$hashed"}
	mocks.userRepo.On("FindByEmail", ctx, "ada@example.com").Return(stored, nil)
	mocks.hasher.On("Check", "correct horse", "$2a$10$hashed").Return(true)

	user, ok, err := svc.Authenticate(ctx, "ada@example.com", "correct horse")

	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, stored.ID, user.ID)
}

func TestAuthService_Authenticate_WrongPassword(t *testing.T) {
	svc, mocks := newAuthServiceForTest(t)
	ctx := context.Background()

	stored := &entity.User{ID: uuid.New(), Email: "ada@example.com", PasswordHash: "$2a$10$hashed"}
	mocks.userRepo.On("FindByEmail", ctx, "ada@example.com").Return(stored, nil)
	mocks.hasher.On("Check", "wrong", "$2a$10$hashed").Return(false)

	user, ok, err := svc.Authenticate(ctx, "ada@example.com", "wrong")

	require.NoError(t, err)
	assert.False(t, ok)
	assert.Nil(t, user)
}

func TestAuthService_Authenticate_UnknownEmail(t *testing.T) {
	svc, mocks := newAuthServiceForTest(t)
	ctx := context.Background()

	mocks.userRepo.On("FindByEmail", ctx, "ghost@example.com").Return(nil, repository.ErrUserNotFound)

	user, ok, err := svc.Authenticate(ctx, "ghost@example.com", "anything")

	require.NoError(t, err)
	assert.False(t, ok)
	assert.Nil(t, user)
}

func TestAuthService_CreateTokenPair_RecordsLastLogin(t *testing.T) {
	svc, mocks := newAuthServiceForTest(t)
	ctx := context.Background()

	user := &entity.User{ID: uuid.New(), Email: "ada@example.com"}

	mocks.codec.On("Encode", service.TokenClaims{
		Subject:   "ada@example.com",
		Type:      service.TokenTypeAccess,
		IssuedAt:  testNow,
		ExpiresAt: testNow.Add(15 * time.Minute),
	}).Return("access-token", nil)
	mocks.codec.On("Encode", service.TokenClaims{
		Subject:   "ada@example.com",
		Type:      service.TokenTypeRefresh,
		IssuedAt:  testNow,
		ExpiresAt: testNow.Add(7 * 24 * time.Hour),
	}).Return("refresh-token", nil)
	mocks.userRepo.On("UpdateLastLogin", ctx, user.ID, testNow).Return(nil)

	pair, err := svc.CreateTokenPair(ctx, user)

	require.NoError(t, err)
	assert.Equal(t, "access-token", pair.AccessToken)
	assert.Equal(t, "refresh-token", pair.RefreshToken)
	assert.Equal(t, "bearer", pair.TokenType)
	require.NotNil(t, user.LastLogin)
	assert.Equal(t, testNow, *user.LastLogin)
}

func TestAuthService_CreateTokenPair_LastLoginWriteFailureDoesNotBlockLogin(t *testing.T) {
	svc, mocks := newAuthServiceForTest(t)
	ctx := context.Background()

	user := &entity.User{ID: uuid.New(), Email: "ada@example.com"}

	mocks.codec.On("Encode", mock.AnythingOfType("service.TokenClaims")).Return("token", nil).Twice()
	mocks.userRepo.On("UpdateLastLogin", ctx, user.ID, testNow).
		Return(domainerrors.NewDatabaseExecuteError(assert.AnError, "write failed"))

	pair, err := svc.CreateTokenPair(ctx, user)

	require.NoError(t, err)
	assert.Equal(t, "token", pair.AccessToken)
	assert.Nil(t, user.LastLogin)
}

func TestAuthService_DecodeToken_ErrorMapping(t *testing.T) {
	svc, mocks := newAuthServiceForTest(t)

	mocks.codec.On("Decode", "expired").Return(service.TokenClaims{}, service.ErrTokenExpired)
	mocks.codec.On("Decode", "garbage").Return(service.TokenClaims{}, service.ErrTokenMalformed)

	_, err := svc.DecodeToken("expired")
	require.ErrorIs(t, err, domainerrors.ErrTokenExpired)

	_, err = svc.DecodeToken("garbage")
	require.ErrorIs(t, err, domainerrors.ErrInvalidToken)
}

func TestAuthService_Refresh_Success(t *testing.T) {
	svc, mocks := newAuthServiceForTest(t)
	ctx := context.Background()

	user := &entity.User{ID: uuid.New(), Email: "ada@example.com"}

	mocks.codec.On("Decode", "old-refresh").Return(service.TokenClaims{
		Subject:   "ada@example.com",
		Type:      service.TokenTypeRefresh,
		IssuedAt:  testNow.Add(-time.Hour),
		ExpiresAt: testNow.Add(time.Hour),
	}, nil)
	mocks.userRepo.On("FindByEmail", ctx, "ada@example.com").Return(user, nil)
	mocks.codec.On("Encode", mock.AnythingOfType("service.TokenClaims")).Return("new-token", nil).Twice()
	mocks.userRepo.On("UpdateLastLogin", ctx, user.ID, testNow).Return(nil)

	pair, err := svc.Refresh(ctx, "old-refresh")

	require.NoError(t, err)
	assert.Equal(t, "new-token", pair.AccessToken)
	assert.Equal(t, "new-token", pair.RefreshToken)
}

func TestAuthService_Refresh_ExpiredToken(t *testing.T) {
	svc, mocks := newAuthServiceForTest(t)

	mocks.codec.On("Decode", "stale").Return(service.TokenClaims{}, service.ErrTokenExpired)

	_, err := svc.Refresh(context.Background(), "stale")

	require.ErrorIs(t, err, domainerrors.ErrTokenExpired)
}

func TestAuthService_Refresh_DeletedUser(t *testing.T) {
	svc, mocks := newAuthServiceForTest(t)
	ctx := context.Background()

	mocks.codec.On("Decode", "orphaned").Return(service.TokenClaims{
		Subject: "gone@example.com",
		Type:    service.TokenTypeRefresh,
	}, nil)
	mocks.userRepo.On("FindByEmail", ctx, "gone@example.com").Return(nil, repository.ErrUserNotFound)

	_, err := svc.Refresh(ctx, "orphaned")

	require.ErrorIs(t, err, domainerrors.ErrInvalidToken)
}

func TestAuthService_Authorize_Success(t *testing.T) {
	svc, mocks := newAuthServiceForTest(t)
	ctx := context.Background()

	user := &entity.User{ID: uuid.New(), Email: "ada@example.com"}

	mocks.codec.On("Decode", "access").Return(service.TokenClaims{
		Subject: "ada@example.com",
		Type:    service.TokenTypeAccess,
	}, nil)
	mocks.userRepo.On("FindByEmail", ctx, "ada@example.com").Return(user, nil)

	got, err := svc.Authorize(ctx, "access")

	require.NoError(t, err)
	assert.Equal(t, user.ID, got.ID)
}

func TestAuthService_Authorize_BadToken(t *testing.T) {
	svc, mocks := newAuthServiceForTest(t)

	mocks.codec.On("Decode", "bogus").Return(service.TokenClaims{}, service.ErrTokenMalformed)

	_, err := svc.Authorize(context.Background(), "bogus")

	require.ErrorIs(t, err, domainerrors.ErrInvalidToken)
}

func TestAuthService_Authorize_ExpiredToken(t *testing.T) {
	svc, mocks := newAuthServiceForTest(t)

	mocks.codec.On("Decode", "stale").Return(service.TokenClaims{}, service.ErrTokenExpired)

	_, err := svc.Authorize(context.Background(), "stale")

	require.ErrorIs(t, err, domainerrors.ErrTokenExpired)
	assert.NotErrorIs(t, err, domainerrors.ErrInvalidToken)
}

func TestAuthService_Authorize_DeletedUser(t *testing.T) {
	svc, mocks := newAuthServiceForTest(t)
	ctx := context.Background()

	mocks.codec.On("Decode", "orphaned").Return(service.TokenClaims{
		Subject: "gone@example.com",
		Type:    service.TokenTypeAccess,
	}, nil)
	mocks.userRepo.On("FindByEmail", ctx, "gone@example.com").Return(nil, repository.ErrUserNotFound)

	_, err := svc.Authorize(ctx, "orphaned")

	require.ErrorIs(t, err, domainerrors.ErrNotAuthenticated)
}

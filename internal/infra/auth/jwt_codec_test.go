package auth

import (
	"strings"
	"testing"
	"time"

	"market/config"
	"market/internal/domain/service"
	"market/internal/infra/clock"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var codecNow = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

func newTestCodec(t *testing.T, secret, algorithm string, at time.Time) service.TokenCodec {
	t.Helper()

	codec, err := NewJWTCodec(&config.Config{
		JWT: config.JWTConfig{SecretKey: secret, Algorithm: algorithm},
	}, clock.Fixed(at))
	require.NoError(t, err)

	return codec
}

func testClaims() service.TokenClaims {
	return service.TokenClaims{
		Subject:   "ada@example.com",
		Type:      service.TokenTypeAccess,
		IssuedAt:  codecNow,
		ExpiresAt: codecNow.Add(15 * time.Minute),
	}
}

func TestJWTCodec_RequiresSecretAndKnownAlgorithm(t *testing.T) {
	_, err := NewJWTCodec(&config.Config{
		JWT: config.JWTConfig{SecretKey: "", Algorithm: "HS256"},
	}, clock.Fixed(codecNow))
	require.Error(t, err)

	_, err = NewJWTCodec(&config.Config{
		JWT: config.JWTConfig{SecretKey: "secret", Algorithm: "RS256"},
	}, clock.Fixed(codecNow))
	require.Error(t, err)
}

func TestJWTCodec_RoundTrip(t *testing.T) {
	codec := newTestCodec(t, "secret", "HS256", codecNow)

	token, err := codec.Encode(testClaims())
	require.NoError(t, err)

	decoded, err := codec.Decode(token)
	require.NoError(t, err)
	assert.Equal(t, "ada@example.com", decoded.Subject)
	assert.Equal(t, service.TokenTypeAccess, decoded.Type)
	assert.Equal(t, codecNow, decoded.IssuedAt)
	assert.Equal(t, codecNow.Add(15*time.Minute), decoded.ExpiresAt)
}

func TestJWTCodec_EncodeIsDeterministic(t *testing.T) {
	codec := newTestCodec(t, "secret", "HS256", codecNow)

	first, err := codec.Encode(testClaims())
	require.NoError(t, err)
	second, err := codec.Encode(testClaims())
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestJWTCodec_ExpiredToken(t *testing.T) {
	codec := newTestCodec(t, "secret", "HS256", codecNow)

	token, err := codec.Encode(testClaims())
	require.NoError(t, err)

	lateCodec := newTestCodec(t, "secret", "HS256", codecNow.Add(16*time.Minute))
	_, err = lateCodec.Decode(token)
	require.ErrorIs(t, err, service.ErrTokenExpired)
}

func TestJWTCodec_TokenAtExactExpiryIsExpired(t *testing.T) {
	codec := newTestCodec(t, "secret", "HS256", codecNow)

	token, err := codec.Encode(testClaims())
	require.NoError(t, err)

	boundaryCodec := newTestCodec(t, "secret", "HS256", codecNow.Add(15*time.Minute))
	_, err = boundaryCodec.Decode(token)
	require.ErrorIs(t, err, service.ErrTokenExpired)
}

func TestJWTCodec_WrongSecret(t *testing.T) {
	codec := newTestCodec(t, "secret", "HS256", codecNow)
	other := newTestCodec(t, "different secret", "HS256", codecNow)

	token, err := codec.Encode(testClaims())
	require.NoError(t, err)

	_, err = other.Decode(token)
	require.ErrorIs(t, err, service.ErrTokenMalformed)
}

func TestJWTCodec_AlgorithmMismatch(t *testing.T) {
	hs256 := newTestCodec(t, "secret", "HS256", codecNow)
	hs512 := newTestCodec(t, "secret", "HS512", codecNow)

	token, err := hs256.Encode(testClaims())
	require.NoError(t, err)

	_, err = hs512.Decode(token)
	require.ErrorIs(t, err, service.ErrTokenMalformed)
}

func TestJWTCodec_TamperedPayload(t *testing.T) {
	codec := newTestCodec(t, "secret", "HS256", codecNow)

	token, err := codec.Encode(testClaims())
	require.NoError(t, err)

	parts := strings.Split(token, ".")
	require.Len(t, parts, 3)
	parts[1] = parts[1][:len(parts[1])-2] + "xx"

	_, err = codec.Decode(strings.Join(parts, "."))
	require.ErrorIs(t, err, service.ErrTokenMalformed)
}

func TestJWTCodec_GarbageInput(t *testing.T) {
	codec := newTestCodec(t, "secret", "HS256", codecNow)

	_, err := codec.Decode("not.a.token")
	require.ErrorIs(t, err, service.ErrTokenMalformed)

	_, err = codec.Decode("")
	require.ErrorIs(t, err, service.ErrTokenMalformed)
}

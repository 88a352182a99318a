package service

import (
	"errors"
	"time"
)

// TokenType distinguishes the purpose of an issued token.
type TokenType string

const (
	// TokenTypeAccess marks short-lived tokens presented on every protected request.
	TokenTypeAccess TokenType = "access"
	// TokenTypeRefresh marks long-lived tokens used solely to obtain a new pair.
	TokenTypeRefresh TokenType = "refresh"
)

// Codec-level sentinel errors. The authentication service translates these
// into the user-facing domain errors.
var (
	// ErrTokenExpired is returned when the signature verifies but the
	// token's expiry has passed. A token presented at exactly its expiry
	// instant is already expired.
	ErrTokenExpired = errors.New("token has expired")
	// ErrTokenMalformed is returned for every other decode failure: bad
	// signature, wrong algorithm, wrong secret, corrupt structure.
	ErrTokenMalformed = errors.New("token is malformed or has an invalid signature")
)

// TokenClaims is the signed payload carried inside a token.
type TokenClaims struct {
	Subject   string    // The user's email.
	Type      TokenType // "access" or "refresh".
	IssuedAt  time.Time // UTC issuance time, supplied by the caller.
	ExpiresAt time.Time // UTC expiry, strictly after IssuedAt.
}

// TokenCodec encodes and decodes signed, expiring claim sets.
// The codec itself is pure: IssuedAt/ExpiresAt come from the caller, so
// two encodes of identical claims produce identical tokens.
type TokenCodec interface {
	// Encode produces a signed compact token from the given claims.
	Encode(claims TokenClaims) (string, error)

	// Decode verifies the signature and expiry and returns the claims.
	// It fails with ErrTokenExpired past expiry and ErrTokenMalformed for
	// any other verification failure.
	Decode(token string) (TokenClaims, error)
}

// Clock supplies the current UTC time. Isolating it lets tests freeze time
// when asserting on token lifetimes.
type Clock interface {
	Now() time.Time
}

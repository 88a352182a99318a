// Package auth provides concrete implementations for authentication-related domain services.
package auth

import (
	"github.com/golang-jwt/jwt/v5"
	"github.com/pkg/errors"

	"market/config"
	"market/internal/domain/service"
)

// signingMethods maps the configured algorithm name to a JWT signing method.
// Only symmetric HMAC methods are supported; the same secret signs and verifies.
var signingMethods = map[string]jwt.SigningMethod{
	"HS256": jwt.SigningMethodHS256,
	"HS384": jwt.SigningMethodHS384,
	"HS512": jwt.SigningMethodHS512,
}

// jwtCodec is a concrete implementation of the TokenCodec interface using the JWT standard.
type jwtCodec struct {
	secret []byte
	method jwt.SigningMethod
	clock  service.Clock
}

// NewJWTCodec is the constructor for jwtCodec. The secret and algorithm are
// required configuration; an unknown algorithm is a startup error, not a
// per-request one.
func NewJWTCodec(cfg *config.Config, clock service.Clock) (service.TokenCodec, error) {
	if cfg.JWT.SecretKey == "" {
		return nil, errors.New("jwt secret key must be provided")
	}

	method, ok := signingMethods[cfg.JWT.Algorithm]
	if !ok {
		return nil, errors.Errorf("unsupported jwt algorithm: %q", cfg.JWT.Algorithm)
	}

	return &jwtCodec{
		secret: []byte(cfg.JWT.SecretKey),
		method: method,
		clock:  clock,
	}, nil
}

// Encode produces a signed compact token from the given claims.
// The codec never fills in timestamps itself, so identical claims always
// encode to an identical token.
func (c *jwtCodec) Encode(claims service.TokenClaims) (string, error) {
	token := jwt.NewWithClaims(c.method, jwt.MapClaims{
		"sub":  claims.Subject,
		"type": string(claims.Type),
		"iat":  claims.IssuedAt.Unix(),
		"exp":  claims.ExpiresAt.Unix(),
	})

	signed, err := token.SignedString(c.secret)
	if err != nil {
		return "", errors.Wrap(err, "failed to sign token")
	}

	return signed, nil
}

// Decode verifies the signature and expiry and returns the claims.
func (c *jwtCodec) Decode(tokenString string) (service.TokenClaims, error) {
	token, err := jwt.Parse(tokenString,
		func(token *jwt.Token) (any, error) {
			// Reject tokens signed with any method other than the configured one.
			if token.Method.Alg() != c.method.Alg() {
				return nil, jwt.ErrSignatureInvalid
			}

			return c.secret, nil
		},
		jwt.WithTimeFunc(c.clock.Now),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return service.TokenClaims{}, service.ErrTokenExpired
		}

		return service.TokenClaims{}, service.ErrTokenMalformed
	}

	mapClaims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return service.TokenClaims{}, service.ErrTokenMalformed
	}

	return toTokenClaims(mapClaims), nil
}

// toTokenClaims maps verified JWT claims back into the domain claim set.
// Missing fields decode to zero values; callers decide whether an empty
// subject is acceptable.
func toTokenClaims(mapClaims jwt.MapClaims) service.TokenClaims {
	claims := service.TokenClaims{}

	if sub, ok := mapClaims["sub"].(string); ok {
		claims.Subject = sub
	}
	if typ, ok := mapClaims["type"].(string); ok {
		claims.Type = service.TokenType(typ)
	}
	if iat, err := mapClaims.GetIssuedAt(); err == nil && iat != nil {
		claims.IssuedAt = iat.Time.UTC()
	}
	if exp, err := mapClaims.GetExpirationTime(); err == nil && exp != nil {
		claims.ExpiresAt = exp.Time.UTC()
	}

	return claims
}

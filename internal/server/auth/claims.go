// Package auth implements the token lifecycle: claims encoding and
// verification, access/refresh issuance, the request guard and the
// ownership check used before mutating a resource.
package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/gophcms/internal/common"
	"github.com/golang-jwt/jwt/v5"
)

// TokenType distinguishes access tokens from refresh tokens.
type TokenType string

const (
	TokenTypeAccess  TokenType = "access"
	TokenTypeRefresh TokenType = "refresh"
)

func (t TokenType) Valid() bool {
	return t == TokenTypeAccess || t == TokenTypeRefresh
}

// Claims is the signed token payload. Times are unix seconds.
type Claims struct {
	Subject   string    `json:"sub"`
	IssuedAt  int64     `json:"iat"`
	ExpiresAt int64     `json:"exp"`
	TokenType TokenType `json:"token_type"`
}

// NewClaims builds claims for subject issued at issuedAt, expiring after the
// fixed lifetime of tokenType.
func NewClaims(subject string, tokenType TokenType, issuedAt time.Time) Claims {
	iat := issuedAt.Unix()
	return Claims{
		Subject:   subject,
		IssuedAt:  iat,
		ExpiresAt: iat + int64(Lifetime(tokenType)/time.Second),
		TokenType: tokenType,
	}
}

// jwt.Claims implementation. The parser never validates these (expiry is
// checked by IsFresh), they only expose the payload to the library.

func (c Claims) GetExpirationTime() (*jwt.NumericDate, error) {
	return jwt.NewNumericDate(time.Unix(c.ExpiresAt, 0)), nil
}

func (c Claims) GetIssuedAt() (*jwt.NumericDate, error) {
	return jwt.NewNumericDate(time.Unix(c.IssuedAt, 0)), nil
}

func (c Claims) GetNotBefore() (*jwt.NumericDate, error) { return nil, nil }
func (c Claims) GetIssuer() (string, error)              { return "", nil }
func (c Claims) GetSubject() (string, error)             { return c.Subject, nil }
func (c Claims) GetAudience() (jwt.ClaimStrings, error)  { return nil, nil }

var parser = jwt.NewParser(
	jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
	jwt.WithoutClaimsValidation(),
	jwt.WithStrictDecoding(),
)

// Encode signs claims with HS256. Identical claims and secret always yield
// the same token. An empty secret is a configuration error.
func Encode(claims Claims, secret []byte) (string, error) {
	if len(secret) == 0 {
		return "", fmt.Errorf("%w: empty signing secret", common.ErrConfiguration)
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
	if err != nil {
		return "", fmt.Errorf("%w: %w", common.ErrConfiguration, err)
	}

	return token, nil
}

// Decode verifies the token signature against secret and returns its claims.
// Expiry is NOT checked; use IsFresh.
func Decode(token string, secret []byte) (*Claims, error) {
	if len(secret) == 0 {
		return nil, fmt.Errorf("%w: empty verification secret", common.ErrConfiguration)
	}

	claims := &Claims{}
	_, err := parser.ParseWithClaims(token, claims, func(*jwt.Token) (any, error) {
		return secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenSignatureInvalid) {
			return nil, common.ErrInvalidSignature
		}
		return nil, fmt.Errorf("%w: %v", common.ErrMalformedToken, err)
	}

	if !claims.TokenType.Valid() {
		return nil, fmt.Errorf("%w: unknown token type %q", common.ErrMalformedToken, claims.TokenType)
	}

	return claims, nil
}

// IsFresh reports whether now is strictly before the expiry. A token is
// already stale at its expiry second.
func IsFresh(claims *Claims, now time.Time) bool {
	return now.Unix() < claims.ExpiresAt
}

package auth

import (
	"fmt"
	"strings"
	"time"

	"github.com/dmitrijs2005/gophcms/internal/common"
)

// Guard verifies a raw credential and resolves the subject it was issued to.
type Guard interface {
	Authenticate(credential string) (string, error)
}

// TokenGuard admits tokens of one type signed with that type's secret.
// It holds no mutable state and is safe for concurrent use.
type TokenGuard struct {
	secret    []byte
	tokenType TokenType
	now       func() time.Time
}

func NewGuard(secret []byte, tokenType TokenType) *TokenGuard {
	return &TokenGuard{secret: secret, tokenType: tokenType, now: time.Now}
}

func NewAccessGuard(s Secrets) *TokenGuard {
	return NewGuard(s.Access, TokenTypeAccess)
}

func NewRefreshGuard(s Secrets) *TokenGuard {
	return NewGuard(s.Refresh, TokenTypeRefresh)
}

// WithClock returns a copy of the guard reading time from now.
func (g *TokenGuard) WithClock(now func() time.Time) *TokenGuard {
	return &TokenGuard{secret: g.secret, tokenType: g.tokenType, now: now}
}

// Verify runs the full check and returns the decoded claims:
// presence, signature and structure, freshness, then token type.
func (g *TokenGuard) Verify(credential string) (*Claims, error) {
	if strings.TrimSpace(credential) == "" {
		return nil, common.ErrMissingCredential
	}

	claims, err := Decode(credential, g.secret)
	if err != nil {
		return nil, err
	}

	if !IsFresh(claims, g.now()) {
		return nil, common.ErrTokenExpired
	}

	if claims.TokenType != g.tokenType {
		return nil, fmt.Errorf("%w: got %s, want %s", common.ErrTokenTypeMismatch, claims.TokenType, g.tokenType)
	}

	return claims, nil
}

func (g *TokenGuard) Authenticate(credential string) (string, error) {
	claims, err := g.Verify(credential)
	if err != nil {
		return "", err
	}
	return claims.Subject, nil
}

// Protect runs op with the verified subject. When authentication fails op
// is never invoked and the guard error is returned.
func Protect[T any](g Guard, credential string, op func(subject string) (T, error)) (T, error) {
	subject, err := g.Authenticate(credential)
	if err != nil {
		var zero T
		return zero, err
	}
	return op(subject)
}

package auth

import (
	"time"
)

// Token lifetimes are fixed policy; callers cannot choose them.
const (
	AccessTokenLifetime  = 15 * time.Minute
	RefreshTokenLifetime = 7 * 24 * time.Hour
)

// Lifetime returns the fixed lifetime of tokenType.
func Lifetime(tokenType TokenType) time.Duration {
	if tokenType == TokenTypeRefresh {
		return RefreshTokenLifetime
	}
	return AccessTokenLifetime
}

// Secrets holds one signing secret per token type. It is built once from
// configuration and passed to whatever signs or verifies tokens.
type Secrets struct {
	Access  []byte
	Refresh []byte
}

func NewSecrets(access, refresh string) Secrets {
	return Secrets{Access: []byte(access), Refresh: []byte(refresh)}
}

// For returns the secret belonging to tokenType.
func (s Secrets) For(tokenType TokenType) []byte {
	if tokenType == TokenTypeRefresh {
		return s.Refresh
	}
	return s.Access
}

// TokenPair bundles a short-lived access token and a long-lived refresh token.
type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

// IssueAccessToken mints a 15 minute access token for subject.
// The only failure is common.ErrConfiguration.
func IssueAccessToken(subject string, secret []byte, now time.Time) (string, error) {
	return Encode(NewClaims(subject, TokenTypeAccess, now), secret)
}

// IssueRefreshToken mints a 7 day refresh token for subject.
func IssueRefreshToken(subject string, secret []byte, now time.Time) (string, error) {
	return Encode(NewClaims(subject, TokenTypeRefresh, now), secret)
}

// Issuer mints tokens with injected secrets and clock.
type Issuer struct {
	secrets Secrets
	now     func() time.Time
}

func NewIssuer(secrets Secrets) *Issuer {
	return &Issuer{secrets: secrets, now: time.Now}
}

// WithClock returns a copy of the issuer reading time from now.
func (i *Issuer) WithClock(now func() time.Time) *Issuer {
	return &Issuer{secrets: i.secrets, now: now}
}

func (i *Issuer) IssueAccessToken(subject string) (string, error) {
	return IssueAccessToken(subject, i.secrets.Access, i.now())
}

func (i *Issuer) IssueRefreshToken(subject string) (string, error) {
	return IssueRefreshToken(subject, i.secrets.Refresh, i.now())
}

// IssuePair mints both tokens from the same instant.
func (i *Issuer) IssuePair(subject string) (*TokenPair, error) {
	now := i.now()

	access, err := IssueAccessToken(subject, i.secrets.Access, now)
	if err != nil {
		return nil, err
	}

	refresh, err := IssueRefreshToken(subject, i.secrets.Refresh, now)
	if err != nil {
		return nil, err
	}

	return &TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}

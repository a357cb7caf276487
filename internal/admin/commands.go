package admin

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"time"

	"github.com/dmitrijs2005/gophcms/internal/common"
	"github.com/dmitrijs2005/gophcms/internal/server/auth"
	"github.com/dmitrijs2005/gophcms/internal/server/services"
)

// SecretBytes is the entropy of a generated secret.
const SecretBytes = 32

func (a *App) addUser(ctx context.Context) error {
	userID, err := a.ask("User id", "")
	if err != nil {
		return err
	}
	role, err := a.ask("Role", services.DefaultUserRole)
	if err != nil {
		return err
	}
	pw, err := a.askPassword()
	if err != nil {
		return err
	}
	defer common.WipeByteArray(pw)

	users, closeFn, err := openUserAdder(ctx, a.config)
	if err != nil {
		return fmt.Errorf("db init error: %w", err)
	}
	defer closeFn()

	u, err := users.AddUser(ctx, userID, string(pw), role)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "user %s created with role %s\n", u.ID, u.Role)
	return nil
}

func (a *App) token(args []string) error {
	if len(args) == 0 {
		return ErrUsage
	}
	pair, err := auth.NewIssuer(a.secrets).WithClock(a.now).IssuePair(args[0])
	if err != nil {
		return err
	}
	return a.printJson(pair)
}

type inspection struct {
	Subject   string         `json:"sub"`
	TokenType auth.TokenType `json:"token_type"`
	IssuedAt  string         `json:"iat"`
	ExpiresAt string         `json:"exp"`
	Fresh     bool           `json:"fresh"`
}

func (a *App) inspect(args []string) error {
	var refresh bool
	fs := flag.NewFlagSet("inspect", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.BoolVar(&refresh, "refresh", false, "verify with the refresh secret")
	if err := fs.Parse(args); err != nil {
		return ErrUsage
	}
	// the flag may also follow the token
	rest := fs.Args()
	if len(rest) > 1 {
		if err := fs.Parse(rest[1:]); err != nil {
			return ErrUsage
		}
		rest = rest[:1]
	}
	if len(rest) != 1 {
		return ErrUsage
	}

	tokenType := auth.TokenTypeAccess
	if refresh {
		tokenType = auth.TokenTypeRefresh
	}

	claims, err := auth.Decode(rest[0], a.secrets.For(tokenType))
	if err != nil {
		return err
	}

	return a.printJson(inspection{
		Subject:   claims.Subject,
		TokenType: claims.TokenType,
		IssuedAt:  time.Unix(claims.IssuedAt, 0).UTC().Format(time.RFC3339),
		ExpiresAt: time.Unix(claims.ExpiresAt, 0).UTC().Format(time.RFC3339),
		Fresh:     auth.IsFresh(claims, a.now()),
	})
}

func (a *App) secret() error {
	s, err := common.MakeRandHexString(SecretBytes)
	if err != nil {
		return err
	}
	fmt.Fprintln(a.out, s)
	return nil
}

func (a *App) printJson(v any) error {
	enc := json.NewEncoder(a.out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

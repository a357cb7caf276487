package admin

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/dmitrijs2005/gophcms/internal/dbx"
	"github.com/dmitrijs2005/gophcms/internal/server/auth"
	"github.com/dmitrijs2005/gophcms/internal/server/config"
	"github.com/dmitrijs2005/gophcms/internal/server/models"
	"github.com/dmitrijs2005/gophcms/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/gophcms/internal/server/services"

	_ "github.com/jackc/pgx/v5/stdlib"
)

var ErrUsage = errors.New("usage: gophcms-cli [server flags] adduser | token <subject> | inspect [-refresh] <token> | secret")

// UserAdder is the part of the user service the CLI needs.
type UserAdder interface {
	AddUser(ctx context.Context, userID, password, role string) (*models.User, error)
}

// openUserAdder connects to the configured database. The returned func
// releases the connection.
var openUserAdder = func(ctx context.Context, c *config.Config) (UserAdder, func() error, error) {
	db, err := dbx.Open(ctx, "pgx", c.DatabaseDSN, 5*time.Second)
	if err != nil {
		return nil, nil, err
	}
	rm := repomanager.NewPostgresRepositoryManager()
	if err := rm.RunMigrations(ctx, db); err != nil {
		_ = db.Close()
		return nil, nil, err
	}
	return services.NewUserService(db, rm, nil, nil), db.Close, nil
}

type App struct {
	config  *config.Config
	secrets auth.Secrets
	reader  *bufio.Reader
	out     io.Writer
	now     func() time.Time
}

func NewApp(c *config.Config, in io.Reader, out io.Writer) *App {
	return &App{
		config:  c,
		secrets: auth.NewSecrets(c.AccessSecret, c.RefreshSecret),
		reader:  bufio.NewReader(in),
		out:     out,
		now:     time.Now,
	}
}

// Run executes the first command found in args. Arguments before the
// command belong to the config loader and are skipped.
func (a *App) Run(ctx context.Context, args []string) error {
	for i, arg := range args {
		rest := args[i+1:]
		switch arg {
		case "adduser":
			return a.addUser(ctx)
		case "token":
			return a.token(rest)
		case "inspect":
			return a.inspect(rest)
		case "secret":
			return a.secret()
		case "help", "-h", "--help":
			fmt.Fprintln(a.out, ErrUsage.Error())
			return nil
		}
	}
	return ErrUsage
}

var _ UserAdder = (*services.UserService)(nil)

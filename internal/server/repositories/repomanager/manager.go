package repomanager

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/gophcms/internal/dbx"
	"github.com/dmitrijs2005/gophcms/internal/server/repositories/images"
	"github.com/dmitrijs2005/gophcms/internal/server/repositories/kiools"
	"github.com/dmitrijs2005/gophcms/internal/server/repositories/portfolio"
	"github.com/dmitrijs2005/gophcms/internal/server/repositories/posts"
	"github.com/dmitrijs2005/gophcms/internal/server/repositories/sections"
	"github.com/dmitrijs2005/gophcms/internal/server/repositories/tags"
	"github.com/dmitrijs2005/gophcms/internal/server/repositories/users"
)

// RepositoryManager vends repositories bound to either the pool or a
// transaction, so services can compose writes under dbx.WithTx.
type RepositoryManager interface {
	RunMigrations(context.Context, *sql.DB) error
	Users(db dbx.DBTX) users.Repository
	Posts(db dbx.DBTX) posts.Repository
	Tags(db dbx.DBTX) tags.Repository
	Portfolio(db dbx.DBTX) portfolio.Repository
	Sections(db dbx.DBTX) sections.Repository
	Images(db dbx.DBTX) images.Repository
	Kiools(db dbx.DBTX) kiools.Repository
}

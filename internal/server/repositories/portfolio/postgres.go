package portfolio

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/gophcms/internal/common"
	"github.com/dmitrijs2005/gophcms/internal/dbx"
	"github.com/dmitrijs2005/gophcms/internal/server/models"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Get(ctx context.Context) (*models.Portfolio, error) {
	p := &models.Portfolio{}
	err := r.db.QueryRowContext(ctx,
		`SELECT portfolio_id, content, updated_at FROM portfolio WHERE portfolio_id = $1`, models.PortfolioID,
	).Scan(&p.ID, &p.Content, &p.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return p, nil
}

// Upsert creates the portfolio row on first write and replaces its content
// afterwards.
func (r *PostgresRepository) Upsert(ctx context.Context, content string) (*models.Portfolio, error) {
	query :=
		`INSERT INTO portfolio (portfolio_id, content, updated_at) VALUES ($1, $2, now())
		 ON CONFLICT (portfolio_id) DO UPDATE SET content = EXCLUDED.content, updated_at = now()
		 RETURNING portfolio_id, content, updated_at
		 `

	p := &models.Portfolio{}
	if err := r.db.QueryRowContext(ctx, query, models.PortfolioID, content).Scan(&p.ID, &p.Content, &p.UpdatedAt); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return p, nil
}

package kiools

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

func (r *PostgresRepository) Create(ctx context.Context, k *models.Kiool) error {
	query :=
		`INSERT INTO kiools (kiool_id, title, description, published_at, tags, content, writer_id, status)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		 `

	_, err := r.db.ExecContext(ctx, query,
		k.ID, k.Title, k.Description, k.PublishedAt, k.Tags, k.Content, k.WriterID, k.Status)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}

	return nil
}

func (r *PostgresRepository) Delete(ctx context.Context, kioolID string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM kiools WHERE kiool_id = $1`, kioolID)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected error: %w", err)
	}
	if n == 0 {
		return common.ErrorNotFound
	}

	return nil
}

func (r *PostgresRepository) OwnerOf(ctx context.Context, kioolID string) (string, error) {
	var writerID string
	err := r.db.QueryRowContext(ctx, `SELECT writer_id FROM kiools WHERE kiool_id = $1`, kioolID).Scan(&writerID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", common.ErrorNotFound
		}
		return "", fmt.Errorf("db error: %w", err)
	}

	return writerID, nil
}

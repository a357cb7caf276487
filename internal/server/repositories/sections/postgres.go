package sections

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

// Get returns the section with its content_data untouched. Validating the
// JSON is left to the caller.
func (r *PostgresRepository) Get(ctx context.Context, sectionID string) (*models.Section, error) {
	query :=
		`SELECT section_id, section_type, content_data, order_index, is_active, created_at, updated_at
		 FROM sections WHERE section_id = $1
		 `

	s := &models.Section{}
	var data string
	err := r.db.QueryRowContext(ctx, query, sectionID).
		Scan(&s.ID, &s.SectionType, &data, &s.OrderIndex, &s.IsActive, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	s.ContentData = []byte(data)

	return s, nil
}

package tags

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/gophcms/internal/dbx"
	"github.com/dmitrijs2005/gophcms/internal/server/models"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// List returns every known tag ordered by category, then name.
func (r *PostgresRepository) List(ctx context.Context) ([]models.TagWithCategory, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT category, name FROM tags ORDER BY category, name`)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	result := make([]models.TagWithCategory, 0)
	for rows.Next() {
		var t models.TagWithCategory
		if err := rows.Scan(&t.Category, &t.Tag); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		result = append(result, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return result, nil
}

// CountByTag counts published posts per tag name, most used first.
func (r *PostgresRepository) CountByTag(ctx context.Context) ([]models.TagCount, error) {
	query :=
		`SELECT t.name, COUNT(DISTINCT pt.post_id) AS cnt
		 FROM tags t
		 JOIN post_tags pt ON pt.tag_id = t.tag_id
		 JOIN posts p ON p.post_id = pt.post_id
		 WHERE p.status <> 'draft'
		 GROUP BY t.name
		 ORDER BY cnt DESC, t.name
		 `

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	result := make([]models.TagCount, 0)
	for rows.Next() {
		var c models.TagCount
		if err := rows.Scan(&c.Tag, &c.Count); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		result = append(result, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return result, nil
}

// SetPostTags replaces the tag set of postID. Unknown tags are created.
// Callers run it inside a transaction together with the post write.
func (r *PostgresRepository) SetPostTags(ctx context.Context, postID string, tags []models.TagWithCategory) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM post_tags WHERE post_id = $1`, postID); err != nil {
		return fmt.Errorf("db error: %w", err)
	}

	upsert :=
		`INSERT INTO tags (category, name) VALUES ($1, $2)
		 ON CONFLICT (category, name) DO UPDATE SET name = EXCLUDED.name
		 RETURNING tag_id
		 `
	link := `INSERT INTO post_tags (post_id, tag_id) VALUES ($1, $2) ON CONFLICT DO NOTHING`

	for _, t := range tags {
		var tagID int64
		if err := r.db.QueryRowContext(ctx, upsert, t.Category, t.Tag).Scan(&tagID); err != nil {
			return fmt.Errorf("db error: %w", err)
		}
		if _, err := r.db.ExecContext(ctx, link, postID, tagID); err != nil {
			return fmt.Errorf("db error: %w", err)
		}
	}

	return nil
}

package posts

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

// selectWithTags yields one row per post with its tags folded into a
// "category::name,..." string.
const selectWithTags = `SELECT p.post_id, p.title, p.description, p.published_at, p.content,
		p.status, p.writer_id, p.created_at,
		COALESCE(string_agg(t.category || '::' || t.name, ',' ORDER BY t.category, t.name), '') AS tags
	FROM posts p
	LEFT JOIN post_tags pt ON p.post_id = pt.post_id
	LEFT JOIN tags t ON pt.tag_id = t.tag_id
	`

func (r *PostgresRepository) Create(ctx context.Context, post *models.Post) error {
	query :=
		`INSERT INTO posts (post_id, title, description, published_at, content, status, writer_id)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)
		 RETURNING created_at
		 `

	err := r.db.QueryRowContext(ctx, query,
		post.ID, post.Title, post.Description, post.PublishedAt, post.Content, post.Status, post.WriterID,
	).Scan(&post.CreatedAt)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}

	return nil
}

// Update rewrites the editable fields. The writer never changes.
func (r *PostgresRepository) Update(ctx context.Context, post *models.Post) error {
	query :=
		`UPDATE posts SET title = $1, description = $2, published_at = $3, content = $4, status = $5
		 WHERE post_id = $6
		 `

	res, err := r.db.ExecContext(ctx, query,
		post.Title, post.Description, post.PublishedAt, post.Content, post.Status, post.ID)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}

	return expectOneRow(res)
}

func (r *PostgresRepository) Delete(ctx context.Context, postID string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM posts WHERE post_id = $1`, postID)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}

	return expectOneRow(res)
}

// Get returns the post with its tags, or common.ErrorNotFound.
func (r *PostgresRepository) Get(ctx context.Context, postID string) (*models.Post, error) {
	query := selectWithTags + `WHERE p.post_id = $1
		GROUP BY p.post_id
		`

	rows, err := r.db.QueryContext(ctx, query, postID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	posts, err := scanPosts(rows)
	if err != nil {
		return nil, err
	}
	if len(posts) == 0 {
		return nil, common.ErrorNotFound
	}

	return posts[0], nil
}

// ListPublished returns non-draft posts, newest first. Empty filter fields
// are ignored; Include and Exclude match tag names.
func (r *PostgresRepository) ListPublished(ctx context.Context, filter models.PostFilter) ([]*models.Post, error) {
	query := selectWithTags + `WHERE p.status <> 'draft'
		AND ($1 = '' OR p.post_id IN (
			SELECT pt2.post_id FROM post_tags pt2 JOIN tags t2 ON pt2.tag_id = t2.tag_id WHERE t2.name = $1))
		AND ($2 = '' OR p.post_id NOT IN (
			SELECT pt3.post_id FROM post_tags pt3 JOIN tags t3 ON pt3.tag_id = t3.tag_id WHERE t3.name = $2))
		GROUP BY p.post_id
		ORDER BY p.published_at DESC, p.created_at DESC
		`

	rows, err := r.db.QueryContext(ctx, query, filter.Include, filter.Exclude)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return scanPosts(rows)
}

// ListAll returns every post including drafts.
func (r *PostgresRepository) ListAll(ctx context.Context) ([]*models.Post, error) {
	query := selectWithTags + `GROUP BY p.post_id
		ORDER BY p.published_at DESC, p.created_at DESC
		`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return scanPosts(rows)
}

// OwnerOf returns the writer of postID, or common.ErrorNotFound.
func (r *PostgresRepository) OwnerOf(ctx context.Context, postID string) (string, error) {
	var writerID string
	err := r.db.QueryRowContext(ctx, `SELECT writer_id FROM posts WHERE post_id = $1`, postID).Scan(&writerID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", common.ErrorNotFound
		}
		return "", fmt.Errorf("db error: %w", err)
	}

	return writerID, nil
}

func scanPosts(rows *sql.Rows) ([]*models.Post, error) {
	defer rows.Close()

	posts := make([]*models.Post, 0)
	for rows.Next() {
		p := &models.Post{}
		var tags string
		if err := rows.Scan(
			&p.ID, &p.Title, &p.Description, &p.PublishedAt, &p.Content,
			&p.Status, &p.WriterID, &p.CreatedAt, &tags,
		); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		p.Tags = models.ParseTags(tags)
		posts = append(posts, p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return posts, nil
}

func expectOneRow(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected error: %w", err)
	}
	if n == 0 {
		return common.ErrorNotFound
	}
	return nil
}

package images

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

func (r *PostgresRepository) Create(ctx context.Context, image *models.Image) error {
	query :=
		`INSERT INTO images (image_id, post_id, file_name, origin_name, file_path, mime_type, image_type)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)
		 `

	var postID sql.NullString
	if image.PostID != "" {
		postID = sql.NullString{String: image.PostID, Valid: true}
	}

	_, err := r.db.ExecContext(ctx, query,
		image.ID, postID, image.FileName, image.OriginName, image.FilePath, image.MimeType, image.ImageType)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}

	return nil
}

func (r *PostgresRepository) GetByFileName(ctx context.Context, fileName string) (*models.Image, error) {
	query :=
		`SELECT image_id, post_id, file_name, origin_name, file_path, mime_type, image_type
		 FROM images WHERE file_name = $1
		 `

	img := &models.Image{}
	var postID sql.NullString
	err := r.db.QueryRowContext(ctx, query, fileName).
		Scan(&img.ID, &postID, &img.FileName, &img.OriginName, &img.FilePath, &img.MimeType, &img.ImageType)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	img.PostID = postID.String

	return img, nil
}

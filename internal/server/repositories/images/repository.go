// Package images stores metadata for uploaded files.
package images

import (
	"context"

	"github.com/dmitrijs2005/gophcms/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, image *models.Image) error
	GetByFileName(ctx context.Context, fileName string) (*models.Image, error)
}

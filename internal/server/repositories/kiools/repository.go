// Package kiools persists short notes.
package kiools

import (
	"context"

	"github.com/dmitrijs2005/gophcms/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, kiool *models.Kiool) error
	Delete(ctx context.Context, kioolID string) error
	OwnerOf(ctx context.Context, kioolID string) (string, error)
}

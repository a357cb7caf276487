// Package posts persists blog posts and resolves their owners.
package posts

import (
	"context"

	"github.com/dmitrijs2005/gophcms/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, post *models.Post) error
	Update(ctx context.Context, post *models.Post) error
	Delete(ctx context.Context, postID string) error
	Get(ctx context.Context, postID string) (*models.Post, error)
	ListPublished(ctx context.Context, filter models.PostFilter) ([]*models.Post, error)
	ListAll(ctx context.Context) ([]*models.Post, error)
	OwnerOf(ctx context.Context, postID string) (string, error)
}

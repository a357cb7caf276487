// Package tags stores the tag vocabulary and the post-to-tag links.
package tags

import (
	"context"

	"github.com/dmitrijs2005/gophcms/internal/server/models"
)

type Repository interface {
	List(ctx context.Context) ([]models.TagWithCategory, error)
	CountByTag(ctx context.Context) ([]models.TagCount, error)
	SetPostTags(ctx context.Context, postID string, tags []models.TagWithCategory) error
}

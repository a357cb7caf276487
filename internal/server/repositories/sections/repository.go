// Package sections reads configurable page sections.
package sections

import (
	"context"

	"github.com/dmitrijs2005/gophcms/internal/server/models"
)

type Repository interface {
	Get(ctx context.Context, sectionID string) (*models.Section, error)
}

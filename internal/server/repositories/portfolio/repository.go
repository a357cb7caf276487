// Package portfolio stores the single portfolio document.
package portfolio

import (
	"context"

	"github.com/dmitrijs2005/gophcms/internal/server/models"
)

type Repository interface {
	Get(ctx context.Context) (*models.Portfolio, error)
	Upsert(ctx context.Context, content string) (*models.Portfolio, error)
}

package services

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/gophcms/internal/server/models"
	"github.com/dmitrijs2005/gophcms/internal/server/repositories/repomanager"
)

type TagService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
}

func NewTagService(db *sql.DB, m repomanager.RepositoryManager) *TagService {
	return &TagService{db: db, repomanager: m}
}

// Categories groups tag names under their category. The repository returns
// rows sorted by category, so groups come out in ascending order.
func (s *TagService) Categories(ctx context.Context) ([]models.TagsWithCategory, error) {
	tags, err := s.repomanager.Tags(s.db).List(ctx)
	if err != nil {
		return nil, err
	}

	groups := make([]models.TagsWithCategory, 0)
	for _, t := range tags {
		n := len(groups)
		if n == 0 || groups[n-1].Category != t.Category {
			groups = append(groups, models.TagsWithCategory{Category: t.Category, Tags: []string{}})
			n++
		}
		groups[n-1].Tags = append(groups[n-1].Tags, t.Tag)
	}

	return groups, nil
}

func (s *TagService) Counts(ctx context.Context) ([]models.TagCount, error) {
	return s.repomanager.Tags(s.db).CountByTag(ctx)
}

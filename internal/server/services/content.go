package services

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/dmitrijs2005/gophcms/internal/common"
	"github.com/dmitrijs2005/gophcms/internal/server/models"
	"github.com/dmitrijs2005/gophcms/internal/server/repositories/repomanager"
)

type PortfolioService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
}

func NewPortfolioService(db *sql.DB, m repomanager.RepositoryManager) *PortfolioService {
	return &PortfolioService{db: db, repomanager: m}
}

func (s *PortfolioService) Get(ctx context.Context) (*models.Portfolio, error) {
	return s.repomanager.Portfolio(s.db).Get(ctx)
}

func (s *PortfolioService) Update(ctx context.Context, content string) (*models.Portfolio, error) {
	return s.repomanager.Portfolio(s.db).Upsert(ctx, content)
}

type SectionService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
}

func NewSectionService(db *sql.DB, m repomanager.RepositoryManager) *SectionService {
	return &SectionService{db: db, repomanager: m}
}

// Get returns the section. Stored content that is not valid JSON is an
// internal error, not a client one.
func (s *SectionService) Get(ctx context.Context, sectionID string) (*models.Section, error) {
	sec, err := s.repomanager.Sections(s.db).Get(ctx, sectionID)
	if err != nil {
		return nil, err
	}
	if !json.Valid(sec.ContentData) {
		return nil, fmt.Errorf("%w: section %s has invalid content_data", common.ErrorInternal, sectionID)
	}
	return sec, nil
}

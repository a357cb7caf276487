package services

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/gophcms/internal/common"
	"github.com/dmitrijs2005/gophcms/internal/server/auth"
	"github.com/dmitrijs2005/gophcms/internal/server/models"
	"github.com/dmitrijs2005/gophcms/internal/server/repositories/repomanager"
)

type KioolService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	authorizer  auth.Authorizer
}

func NewKioolService(db *sql.DB, m repomanager.RepositoryManager) *KioolService {
	s := &KioolService{db: db, repomanager: m}
	s.authorizer = auth.NewOwnershipAuthorizer(auth.OwnerLookupFunc(
		func(ctx context.Context, kioolID string) (string, error) {
			return m.Kiools(db).OwnerOf(ctx, kioolID)
		}))
	return s
}

func (s *KioolService) Create(ctx context.Context, subject string, k models.Kiool) (*models.Kiool, error) {
	if strings.TrimSpace(k.Title) == "" {
		return nil, fmt.Errorf("%w: title is required", common.ErrorValidation)
	}

	k.ID = newID()
	k.WriterID = subject
	if k.Status == "" {
		k.Status = models.PostStatusDraft
	}

	if err := s.repomanager.Kiools(s.db).Create(ctx, &k); err != nil {
		return nil, fmt.Errorf("create kiool: %w", err)
	}
	return &k, nil
}

func (s *KioolService) Delete(ctx context.Context, subject, kioolID string) error {
	if err := authorize(ctx, s.authorizer, subject, kioolID); err != nil {
		return err
	}
	if err := s.repomanager.Kiools(s.db).Delete(ctx, kioolID); err != nil {
		return fmt.Errorf("delete kiool: %w", err)
	}
	return nil
}

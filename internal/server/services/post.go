package services

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/gophcms/internal/common"
	"github.com/dmitrijs2005/gophcms/internal/dbx"
	"github.com/dmitrijs2005/gophcms/internal/server/auth"
	"github.com/dmitrijs2005/gophcms/internal/server/models"
	"github.com/dmitrijs2005/gophcms/internal/server/repositories/repomanager"
	"github.com/google/uuid"
)

var newID = func() string { return uuid.NewString() }

type PostService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	authorizer  auth.Authorizer
}

func NewPostService(db *sql.DB, m repomanager.RepositoryManager) *PostService {
	s := &PostService{db: db, repomanager: m}
	s.authorizer = auth.NewOwnershipAuthorizer(auth.OwnerLookupFunc(
		func(ctx context.Context, postID string) (string, error) {
			return m.Posts(db).OwnerOf(ctx, postID)
		}))
	return s
}

func (s *PostService) ListPublished(ctx context.Context, filter models.PostFilter) ([]*models.Post, error) {
	return s.repomanager.Posts(s.db).ListPublished(ctx, filter)
}

func (s *PostService) ListAll(ctx context.Context) ([]*models.Post, error) {
	return s.repomanager.Posts(s.db).ListAll(ctx)
}

func (s *PostService) Get(ctx context.Context, postID string) (*models.Post, error) {
	return s.repomanager.Posts(s.db).Get(ctx, postID)
}

// Create stores a post written by subject together with its tags.
func (s *PostService) Create(ctx context.Context, subject string, in models.PostInput) (*models.Post, error) {
	if err := validatePost(in); err != nil {
		return nil, err
	}

	p := postFromInput(newID(), subject, in)

	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		if err := s.repomanager.Posts(tx).Create(ctx, p); err != nil {
			return err
		}
		return s.repomanager.Tags(tx).SetPostTags(ctx, p.ID, p.Tags)
	})
	if err != nil {
		return nil, fmt.Errorf("create post: %w", err)
	}

	return p, nil
}

// Update rewrites a post owned by subject. The writer is never changed.
func (s *PostService) Update(ctx context.Context, subject, postID string, in models.PostInput) (*models.Post, error) {
	if err := authorize(ctx, s.authorizer, subject, postID); err != nil {
		return nil, err
	}
	if err := validatePost(in); err != nil {
		return nil, err
	}

	p := postFromInput(postID, subject, in)

	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		if err := s.repomanager.Posts(tx).Update(ctx, p); err != nil {
			return err
		}
		return s.repomanager.Tags(tx).SetPostTags(ctx, p.ID, p.Tags)
	})
	if err != nil {
		return nil, fmt.Errorf("update post: %w", err)
	}

	return p, nil
}

func (s *PostService) Delete(ctx context.Context, subject, postID string) error {
	if err := authorize(ctx, s.authorizer, subject, postID); err != nil {
		return err
	}
	if err := s.repomanager.Posts(s.db).Delete(ctx, postID); err != nil {
		return fmt.Errorf("delete post: %w", err)
	}
	return nil
}

func validatePost(in models.PostInput) error {
	if strings.TrimSpace(in.Title) == "" {
		return fmt.Errorf("%w: title is required", common.ErrorValidation)
	}
	for _, t := range in.Tags {
		if t.Category == "" || t.Tag == "" {
			return fmt.Errorf("%w: tags need category and tag", common.ErrorValidation)
		}
	}
	return nil
}

func postFromInput(id, writer string, in models.PostInput) *models.Post {
	status := in.Status
	if status == "" {
		status = models.PostStatusDraft
	}
	tags := in.Tags
	if tags == nil {
		tags = []models.TagWithCategory{}
	}
	return &models.Post{
		ID:          id,
		Title:       in.Title,
		Description: in.Description,
		PublishedAt: in.PublishedAt,
		Content:     in.Content,
		Status:      status,
		WriterID:    writer,
		Tags:        tags,
	}
}

// authorize turns an ownership decision into an error. A mismatch is
// common.ErrorForbidden; lookup failures pass through unchanged.
func authorize(ctx context.Context, a auth.Authorizer, subject, resourceID string) error {
	ok, err := a.Authorize(ctx, subject, resourceID)
	if err != nil {
		return err
	}
	if !ok {
		return common.ErrorForbidden
	}
	return nil
}

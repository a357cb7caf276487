// Package services contains server-side business logic. This file implements
// UserService, which handles login, token refresh and operator-driven user
// creation.
package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/gophcms/internal/common"
	"github.com/dmitrijs2005/gophcms/internal/server/auth"
	"github.com/dmitrijs2005/gophcms/internal/server/models"
	"github.com/dmitrijs2005/gophcms/internal/server/repositories/repomanager"
	"golang.org/x/crypto/bcrypt"
)

// DefaultUserRole is assigned when AddUser gets no role.
const DefaultUserRole = "writer"

var (
	compareHashAndPassword = bcrypt.CompareHashAndPassword
	generateFromPassword   = bcrypt.GenerateFromPassword
)

// UserService provides authentication-related operations:
// - Login: verify credentials and mint a token pair
// - Refresh: exchange a valid refresh token for a new pair
// - AddUser: create a user with a bcrypt password hash
type UserService struct {
	db           *sql.DB
	repomanager  repomanager.RepositoryManager
	issuer       *auth.Issuer
	refreshGuard auth.Guard
}

func NewUserService(db *sql.DB, m repomanager.RepositoryManager, issuer *auth.Issuer, refreshGuard auth.Guard) *UserService {
	return &UserService{
		db:           db,
		repomanager:  m,
		issuer:       issuer,
		refreshGuard: refreshGuard,
	}
}

// Login checks the password against the stored bcrypt hash. Unknown users
// and wrong passwords are indistinguishable to the caller.
func (s *UserService) Login(ctx context.Context, userID, password string) (*auth.TokenPair, error) {
	user, err := s.repomanager.Users(s.db).GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorUnauthorized
		}
		return nil, fmt.Errorf("get user: %w", err)
	}

	if err := compareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, common.ErrorUnauthorized
	}

	return s.issuer.IssuePair(user.ID)
}

// Refresh verifies refreshToken and issues a new pair for its subject,
// provided the subject still exists.
func (s *UserService) Refresh(ctx context.Context, refreshToken string) (*auth.TokenPair, error) {
	subject, err := s.refreshGuard.Authenticate(refreshToken)
	if err != nil {
		return nil, err
	}

	if _, err := s.repomanager.Users(s.db).GetByID(ctx, subject); err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorUnauthorized
		}
		return nil, fmt.Errorf("get user: %w", err)
	}

	return s.issuer.IssuePair(subject)
}

// AddUser stores a new user. Duplicate ids yield common.ErrorAlreadyExists.
func (s *UserService) AddUser(ctx context.Context, userID, password, role string) (*models.User, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" || password == "" {
		return nil, fmt.Errorf("%w: user_id and password are required", common.ErrorValidation)
	}
	if role == "" {
		role = DefaultUserRole
	}

	hash, err := generateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	u, err := s.repomanager.Users(s.db).Create(ctx, &models.User{ID: userID, PasswordHash: string(hash), Role: role})
	if err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}
	return u, nil
}

package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/gophcms/internal/common"
)

// OwnerLookup resolves the subject recorded as the owner of a resource.
// A missing resource is reported as common.ErrorNotFound.
type OwnerLookup interface {
	OwnerOf(ctx context.Context, resourceID string) (string, error)
}

// OwnerLookupFunc adapts a function to OwnerLookup.
type OwnerLookupFunc func(ctx context.Context, resourceID string) (string, error)

func (f OwnerLookupFunc) OwnerOf(ctx context.Context, resourceID string) (string, error) {
	return f(ctx, resourceID)
}

// Authorizer decides whether subject may mutate a resource. The result is
// advisory: the caller refuses the mutation on false.
type Authorizer interface {
	Authorize(ctx context.Context, subject, resourceID string) (bool, error)
}

type OwnershipAuthorizer struct {
	lookup OwnerLookup
}

func NewOwnershipAuthorizer(lookup OwnerLookup) *OwnershipAuthorizer {
	return &OwnershipAuthorizer{lookup: lookup}
}

// Authorize returns true iff the recorded owner equals subject exactly.
// Lookup failures other than not-found come back as common.ErrPersistence
// and never as a decision.
func (a *OwnershipAuthorizer) Authorize(ctx context.Context, subject, resourceID string) (bool, error) {
	owner, err := a.lookup.OwnerOf(ctx, resourceID)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return false, fmt.Errorf("%w: %s", common.ErrResourceNotFound, resourceID)
		}
		return false, fmt.Errorf("%w: %w", common.ErrPersistence, err)
	}

	return owner == subject, nil
}

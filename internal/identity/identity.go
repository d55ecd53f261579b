// Package identity maps the authenticated principal of a request onto a
// domain User or Manager record. The principal is an explicit value handed
// into every operation rather than ambient session state, so services stay
// testable without a simulated session.
package identity

import (
	"context"
	"fmt"

	"meetz/backend/internal/apperr"
	"meetz/backend/internal/models"
	"meetz/backend/internal/storage"
)

// Kind distinguishes participant tokens from manager tokens.
type Kind string

const (
	KindUser    Kind = "user"
	KindManager Kind = "manager"
)

// Principal is the identity extracted from a verified bearer token.
type Principal struct {
	Email string
	Kind  Kind
}

// Resolver resolves principals against the directory.
type Resolver struct {
	Storage storage.Storage
}

func NewResolver(s storage.Storage) *Resolver {
	return &Resolver{Storage: s}
}

// CurrentUser returns the participant record for the principal. A principal
// of the wrong kind, or one whose email maps to no user, resolves to
// apperr.ErrNotFound.
func (r *Resolver) CurrentUser(ctx context.Context, p Principal) (*models.User, error) {
	if p.Kind != KindUser {
		return nil, fmt.Errorf("principal %q is not a participant: %w", p.Email, apperr.ErrNotFound)
	}
	return r.Storage.FindUserByEmail(ctx, p.Email)
}

// CurrentManager returns the manager record for the principal.
func (r *Resolver) CurrentManager(ctx context.Context, p Principal) (*models.Manager, error) {
	if p.Kind != KindManager {
		return nil, fmt.Errorf("principal %q is not a manager: %w", p.Email, apperr.ErrNotFound)
	}
	return r.Storage.FindManagerByEmail(ctx, p.Email)
}

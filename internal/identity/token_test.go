package identity_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"meetz/backend/internal/apperr"
	"meetz/backend/internal/identity"
	"meetz/backend/internal/models"
	"meetz/backend/internal/storage"

	"github.com/stretchr/testify/assert"
)

var secret = []byte("test-secret")

func TestToken_Roundtrip(t *testing.T) {
	p := identity.Principal{Email: "star@meetz.io", Kind: identity.KindUser}

	token, err := identity.IssueToken(secret, p, time.Hour)
	assert.NoError(t, err)

	parsed, err := identity.ParseToken(secret, token)
	assert.NoError(t, err)
	assert.Equal(t, p, parsed)
}

func TestToken_WrongSecret(t *testing.T) {
	p := identity.Principal{Email: "star@meetz.io", Kind: identity.KindUser}

	token, err := identity.IssueToken(secret, p, time.Hour)
	assert.NoError(t, err)

	_, err = identity.ParseToken([]byte("other-secret"), token)
	assert.Error(t, err)
}

func TestToken_Expired(t *testing.T) {
	p := identity.Principal{Email: "star@meetz.io", Kind: identity.KindUser}

	token, err := identity.IssueToken(secret, p, -time.Minute)
	assert.NoError(t, err)

	_, err = identity.ParseToken(secret, token)
	assert.Error(t, err)
}

func TestToken_Garbage(t *testing.T) {
	_, err := identity.ParseToken(secret, "not-a-token")
	assert.Error(t, err)
}

// directoryStub serves only the email lookups the resolver uses.
type directoryStub struct {
	storage.Storage

	users    map[string]*models.User
	managers map[string]*models.Manager
}

func (d *directoryStub) FindUserByEmail(ctx context.Context, email string) (*models.User, error) {
	if u, ok := d.users[email]; ok {
		return u, nil
	}
	return nil, fmt.Errorf("user %s: %w", email, apperr.ErrNotFound)
}

func (d *directoryStub) FindManagerByEmail(ctx context.Context, email string) (*models.Manager, error) {
	if m, ok := d.managers[email]; ok {
		return m, nil
	}
	return nil, fmt.Errorf("manager %s: %w", email, apperr.ErrNotFound)
}

func testResolver() *identity.Resolver {
	return identity.NewResolver(&directoryStub{
		users:    map[string]*models.User{"star@meetz.io": {ID: 1, Email: "star@meetz.io", Role: models.RoleStar}},
		managers: map[string]*models.Manager{"manager@meetz.io": {ID: 1, Email: "manager@meetz.io"}},
	})
}

func TestCurrentUser_Success(t *testing.T) {
	r := testResolver()

	u, err := r.CurrentUser(context.Background(), identity.Principal{Email: "star@meetz.io", Kind: identity.KindUser})

	assert.NoError(t, err)
	assert.Equal(t, uint(1), u.ID)
}

// TestCurrentUser_ManagerToken verifies a manager token cannot resolve to a
// participant record.
func TestCurrentUser_ManagerToken(t *testing.T) {
	r := testResolver()

	_, err := r.CurrentUser(context.Background(), identity.Principal{Email: "manager@meetz.io", Kind: identity.KindManager})

	assert.ErrorIs(t, err, apperr.ErrNotFound)
}

func TestCurrentManager_Success(t *testing.T) {
	r := testResolver()

	m, err := r.CurrentManager(context.Background(), identity.Principal{Email: "manager@meetz.io", Kind: identity.KindManager})

	assert.NoError(t, err)
	assert.Equal(t, uint(1), m.ID)
}

func TestCurrentManager_UserToken(t *testing.T) {
	r := testResolver()

	_, err := r.CurrentManager(context.Background(), identity.Principal{Email: "star@meetz.io", Kind: identity.KindUser})

	assert.ErrorIs(t, err, apperr.ErrNotFound)
}

func TestCurrentUser_UnknownEmail(t *testing.T) {
	r := testResolver()

	_, err := r.CurrentUser(context.Background(), identity.Principal{Email: "ghost@meetz.io", Kind: identity.KindUser})

	assert.ErrorIs(t, err, apperr.ErrNotFound)
}

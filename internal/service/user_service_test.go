package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"adboard/internal/repository"
	"adboard/internal/repository/sqlite"
)

func newUserService(t *testing.T) UserService {
	t.Helper()
	db, err := sqlite.Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	users := sqlite.NewUserRepository(db)
	require.NoError(t, users.Init(context.Background()))
	return NewUserService(users)
}

func TestRegisterAndAuthenticate(t *testing.T) {
	svc := newUserService(t)
	ctx := context.Background()

	user, err := svc.Register(ctx, "a@b.com", "secret", "Ada", "Burke")
	require.NoError(t, err)
	assert.Empty(t, user.PasswordHash, "sanitized user must not carry the hash")

	authed, err := svc.Authenticate(ctx, "a@b.com", "secret")
	require.NoError(t, err)
	assert.Equal(t, user.ID, authed.ID)
	assert.Empty(t, authed.PasswordHash)
}

func TestAuthenticateWrongPassword(t *testing.T) {
	svc := newUserService(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, "a@b.com", "secret", "Ada", "Burke")
	require.NoError(t, err)

	_, err = svc.Authenticate(ctx, "a@b.com", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestAuthenticateUnknownEmail(t *testing.T) {
	svc := newUserService(t)

	_, err := svc.Authenticate(context.Background(), "nobody@x.com", "x")
	// Same sentinel as the wrong-password case: callers cannot tell which
	// half of the credentials was wrong.
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestRegisterEmailConflict(t *testing.T) {
	svc := newUserService(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, "a@b.com", "secret", "Ada", "Burke")
	require.NoError(t, err)

	_, err = svc.Register(ctx, "A@B.com", "other", "Someone", "Else")
	assert.ErrorIs(t, err, ErrEmailTaken, "emails are case-normalized")
}

func TestAuthenticateNormalizesEmail(t *testing.T) {
	svc := newUserService(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, "A@B.com", "secret", "Ada", "Burke")
	require.NoError(t, err)

	authed, err := svc.Authenticate(ctx, " a@b.com ", "secret")
	require.NoError(t, err)
	assert.Equal(t, "a@b.com", authed.Email)
}

func TestListOmitsHashes(t *testing.T) {
	svc := newUserService(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, "a@b.com", "secret", "Ada", "Burke")
	require.NoError(t, err)

	users, err := svc.List(ctx, repository.Page{})
	require.NoError(t, err)
	require.Len(t, users, 1)
	assert.Empty(t, users[0].PasswordHash)
}

package application

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/recipe-app-api/internal/domain/entity"
	"github.com/oksasatya/recipe-app-api/internal/testkit"
)

type authFixture struct {
	users *UserService
	auth  *AuthService
	cache *testkit.MapTokenCache
	user  *entity.User
}

func newAuthFixture(t *testing.T) authFixture {
	t.Helper()
	store := testkit.NewStore()
	cache := testkit.NewMapTokenCache()
	users := NewUserService(store.Users(), nil)
	u, err := users.CreateUser(context.Background(), "test@gmail.com", "testpass", UserExtra{})
	require.NoError(t, err)
	return authFixture{
		users: users,
		auth:  NewAuthService(store.Users(), store.Tokens(), cache, nil),
		cache: cache,
		user:  u,
	}
}

func TestIssueToken_ValidCredentials(t *testing.T) {
	f := newAuthFixture(t)

	tok, err := f.auth.IssueToken(context.Background(), "TEST@gmail.com", "testpass")
	require.NoError(t, err)

	assert.Len(t, tok.Key, 40)
	assert.Equal(t, f.user.ID, tok.UserID)
}

func TestIssueToken_ReturnsSameKey(t *testing.T) {
	f := newAuthFixture(t)
	ctx := context.Background()

	first, err := f.auth.IssueToken(ctx, "test@gmail.com", "testpass")
	require.NoError(t, err)
	second, err := f.auth.IssueToken(ctx, "test@gmail.com", "testpass")
	require.NoError(t, err)

	assert.Equal(t, first.Key, second.Key)
}

func TestIssueToken_InvalidCredentials(t *testing.T) {
	tests := []struct {
		name     string
		email    string
		password string
	}{
		{name: "wrong password", email: "test@gmail.com", password: "wrong"},
		{name: "unknown user", email: "nobody@gmail.com", password: "testpass"},
		{name: "missing password", email: "test@gmail.com", password: ""},
		{name: "missing email", email: "", password: "testpass"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newAuthFixture(t)
			tok, err := f.auth.IssueToken(context.Background(), tt.email, tt.password)
			assert.Nil(t, tok)
			assert.ErrorIs(t, err, ErrInvalidCredentials)
		})
	}
}

func TestIssueToken_InactiveUser(t *testing.T) {
	f := newAuthFixture(t)
	ctx := context.Background()
	f.user.IsActive = false
	require.NoError(t, f.auth.Users.Update(ctx, f.user))

	_, err := f.auth.IssueToken(ctx, "test@gmail.com", "testpass")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestAuthenticate(t *testing.T) {
	f := newAuthFixture(t)
	ctx := context.Background()
	tok, err := f.auth.IssueToken(ctx, "test@gmail.com", "testpass")
	require.NoError(t, err)

	u, err := f.auth.Authenticate(ctx, tok.Key)
	require.NoError(t, err)
	assert.Equal(t, f.user.ID, u.ID)
	assert.Equal(t, 1, f.cache.Len())
	assert.Equal(t, 0, f.cache.Hits)

	// second lookup is served from the cache
	_, err = f.auth.Authenticate(ctx, tok.Key)
	require.NoError(t, err)
	assert.Equal(t, 1, f.cache.Hits)
}

func TestAuthenticate_Rejects(t *testing.T) {
	f := newAuthFixture(t)

	for _, key := range []string{"", "   ", "0000000000000000000000000000000000000000"} {
		u, err := f.auth.Authenticate(context.Background(), key)
		assert.Nil(t, u)
		assert.ErrorIs(t, err, ErrUnauthenticated)
	}
}

func TestRevokeToken(t *testing.T) {
	f := newAuthFixture(t)
	ctx := context.Background()
	tok, err := f.auth.IssueToken(ctx, "test@gmail.com", "testpass")
	require.NoError(t, err)
	_, err = f.auth.Authenticate(ctx, tok.Key)
	require.NoError(t, err)

	require.NoError(t, f.auth.RevokeToken(ctx, f.user))

	assert.Equal(t, 0, f.cache.Len())
	_, err = f.auth.Authenticate(ctx, tok.Key)
	assert.ErrorIs(t, err, ErrUnauthenticated)

	fresh, err := f.auth.IssueToken(ctx, "test@gmail.com", "testpass")
	require.NoError(t, err)
	assert.NotEqual(t, tok.Key, fresh.Key)

	// revoking twice is harmless
	require.NoError(t, f.auth.RevokeToken(ctx, f.user))
	require.NoError(t, f.auth.RevokeToken(ctx, f.user))
}

func TestAuthError_Is(t *testing.T) {
	assert.ErrorIs(t, &AuthError{Reason: ReasonUnauthenticated}, ErrUnauthenticated)
	assert.NotErrorIs(t, ErrInvalidCredentials, ErrUnauthenticated)
}

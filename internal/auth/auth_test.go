package auth

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/thenoetrevino/taskmanager/internal/models"
)

func TestPasswordHasher_HashAndVerify(t *testing.T) {
	t.Parallel()
	h := NewPasswordHasher(bcrypt.MinCost)

	hash, err := h.Hash("xcCC_123f5")
	require.NoError(t, err)
	assert.NotEqual(t, "xcCC_123f5", hash)

	assert.True(t, h.Verify("xcCC_123f5", hash))
	assert.False(t, h.Verify("wrong", hash))
	assert.False(t, h.Verify("xcCC_123f5", "not-a-hash"))
}

func TestNewPasswordHasher_InvalidCostFallsBack(t *testing.T) {
	t.Parallel()
	assert.Equal(t, DefaultBcryptCost, NewPasswordHasher(0).cost)
	assert.Equal(t, DefaultBcryptCost, NewPasswordHasher(99).cost)
}

func TestSessionManager_IssueAndVerify(t *testing.T) {
	t.Parallel()
	m := NewSessionManager("test-secret", time.Hour)

	token, err := m.Issue(Identity{UserID: 3, Username: "test1"}, "hash-1")
	require.NoError(t, err)

	session, err := m.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, Identity{UserID: 3, Username: "test1"}, session.Identity)
	assert.True(t, m.MatchesPassword(session, "hash-1"))
}

func TestSessionManager_PasswordChangeEndsSession(t *testing.T) {
	t.Parallel()
	m := NewSessionManager("test-secret", time.Hour)

	token, err := m.Issue(Identity{UserID: 3, Username: "test1"}, "hash-1")
	require.NoError(t, err)
	session, err := m.Verify(token)
	require.NoError(t, err)

	assert.False(t, m.MatchesPassword(session, "hash-2"))
	assert.False(t, m.MatchesPassword(Session{Identity: session.Identity}, "hash-1"))
	assert.False(t, NewSessionManager("other", time.Hour).MatchesPassword(session, "hash-1"))
}

func TestSessionManager_RejectsAnonymous(t *testing.T) {
	t.Parallel()
	_, err := NewSessionManager("s", 0).Issue(Anonymous, "")
	assert.Error(t, err)
}

func TestSessionManager_WrongSecret(t *testing.T) {
	t.Parallel()
	token, err := NewSessionManager("one", time.Hour).Issue(Identity{UserID: 1, Username: "a"}, "h")
	require.NoError(t, err)

	_, err = NewSessionManager("two", time.Hour).Verify(token)
	assert.ErrorIs(t, err, ErrInvalidToken)

	_, err = NewSessionManager("one", time.Hour).Verify("garbage")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestSessionManager_Expired(t *testing.T) {
	t.Parallel()
	m := NewSessionManager("secret", time.Minute)
	issued := time.Now().Add(-time.Hour)
	m.now = func() time.Time { return issued }

	token, err := m.Issue(Identity{UserID: 1, Username: "a"}, "h")
	require.NoError(t, err)

	m.now = time.Now
	_, err = m.Verify(token)
	assert.ErrorIs(t, err, ErrExpiredToken)
}

func TestIdentity_Context(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	assert.False(t, FromContext(ctx).IsAuthenticated())

	id := IdentityFor(&models.User{ID: 2, Username: "maria"})
	got := FromContext(WithIdentity(ctx, id))
	assert.True(t, got.IsAuthenticated())
	assert.Equal(t, "maria", got.Username)

	assert.Equal(t, Anonymous, IdentityFor(nil))
}

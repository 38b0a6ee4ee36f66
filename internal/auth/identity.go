// Package auth holds the request identity, password hashing and signed
// session tokens.
package auth

import (
	"context"

	"github.com/thenoetrevino/taskmanager/internal/models"
)

// Identity is the actor behind a request. The zero value is anonymous.
type Identity struct {
	UserID   int
	Username string
}

// Anonymous is the identity of a request without a valid session
var Anonymous = Identity{}

// IdentityFor returns the identity of a loaded user
func IdentityFor(u *models.User) Identity {
	if u == nil {
		return Anonymous
	}
	return Identity{UserID: u.ID, Username: u.Username}
}

// IsAuthenticated reports whether the identity belongs to a logged-in user
func (i Identity) IsAuthenticated() bool {
	return i.UserID > 0
}

type identityKey struct{}

// WithIdentity stores the identity on the context
func WithIdentity(ctx context.Context, id Identity) context.Context {
	return context.WithValue(ctx, identityKey{}, id)
}

// FromContext returns the identity stored by WithIdentity, or Anonymous
func FromContext(ctx context.Context) Identity {
	if id, ok := ctx.Value(identityKey{}).(Identity); ok {
		return id
	}
	return Anonymous
}

// Package perm holds the ownership rules. Every predicate is pure: it looks
// only at the acting identity and the target record.
package perm

import (
	"github.com/thenoetrevino/taskmanager/internal/auth"
	"github.com/thenoetrevino/taskmanager/internal/models"
)

// CanEditUser reports whether actor may update the account with userID.
//
// Rules:
//   - Anonymous actors never can.
//   - Users may only edit their own account.
func CanEditUser(actor auth.Identity, userID int) bool {
	return actor.IsAuthenticated() && actor.UserID == userID
}

// CanDeleteUser reports whether actor may delete the account with userID.
// Whether the account is still referenced by tasks is checked by the caller.
func CanDeleteUser(actor auth.Identity, userID int) bool {
	return CanEditUser(actor, userID)
}

// CanUpdateTask reports whether actor may edit t. Any logged-in user may.
func CanUpdateTask(actor auth.Identity, t *models.Task) bool {
	return actor.IsAuthenticated() && t != nil
}

// CanDeleteTask reports whether actor may delete t. Only the creator may.
func CanDeleteTask(actor auth.Identity, t *models.Task) bool {
	if !actor.IsAuthenticated() || t == nil {
		return false
	}
	return t.CreatorID == actor.UserID
}

// CanManageCatalog reports whether actor may create, rename or delete
// statuses and labels. Any logged-in user may.
func CanManageCatalog(actor auth.Identity) bool {
	return actor.IsAuthenticated()
}

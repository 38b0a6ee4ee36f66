package user

import (
	"errors"
	"fmt"

	"github.com/thenoetrevino/taskmanager/internal/models"
)

// User-related errors
var (
	// Validation errors
	ErrFieldRequired          = errors.New("this field is required")
	ErrUsernameTooLong        = fmt.Errorf("username cannot exceed %d characters", models.MaxUsernameLength)
	ErrInvalidUsername        = errors.New("enter a valid username: letters, digits and @/./+/-/_ only")
	ErrUsernameTaken          = errors.New("a user with that username already exists")
	ErrNameTooLong            = fmt.Errorf("name cannot exceed %d characters", models.MaxPersonNameLength)
	ErrPasswordMismatch       = errors.New("the two password fields didn't match")
	ErrPasswordTooShort       = fmt.Errorf("this password is too short, it must contain at least %d characters", models.MinPasswordLength)
	ErrPasswordNumeric        = errors.New("this password is entirely numeric")
	ErrPasswordCommon         = errors.New("this password is too common")
	ErrPasswordMatchesProfile = errors.New("the password cannot be the same as the username or name")
	ErrInvalidCredentials     = errors.New("please enter a correct username and password")
	ErrInvalidUserID          = fmt.Errorf("invalid user ID: %w", models.ErrNotFound)

	// Business logic errors
	ErrUserNotFound  = fmt.Errorf("user not found: %w", models.ErrNotFound)
	ErrNotOwner      = fmt.Errorf("you have no permission to change another user: %w", models.ErrPermissionDenied)
	ErrLoginRequired = fmt.Errorf("login required: %w", models.ErrPermissionDenied)
	ErrUserInUse     = fmt.Errorf("cannot delete user because it is in use: %w", models.ErrInUse)
)

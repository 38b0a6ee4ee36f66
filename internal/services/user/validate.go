package user

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/thenoetrevino/taskmanager/internal/models"
)

var usernamePattern = regexp.MustCompile(`^[\p{L}\p{N}_.@+\-]+$`)

// commonPasswords is a short deny list of the most frequently leaked passwords.
// It covers the top of public breach lists only; length and the other rules
// carry the rest.
var commonPasswords = map[string]struct{}{
	"password": {}, "password1": {}, "12345678": {}, "123456789": {}, "1234567890": {},
	"qwerty123": {}, "qwertyuiop": {}, "iloveyou": {}, "11111111": {}, "abc12345": {},
	"letmein1": {}, "welcome1": {}, "sunshine": {}, "princess": {}, "football": {},
	"baseball": {}, "superman": {}, "trustno1": {}, "passw0rd": {}, "admin123": {},
}

// validateProfile checks every field of a registration or profile form and
// collects one message per failing field.
func validateProfile(p Profile) (Profile, error) {
	p.Username = strings.TrimSpace(p.Username)
	p.FirstName = strings.TrimSpace(p.FirstName)
	p.LastName = strings.TrimSpace(p.LastName)

	verr := &models.ValidationError{}

	switch {
	case p.Username == "":
		verr.AddErr("username", ErrFieldRequired)
	case utf8.RuneCountInString(p.Username) > models.MaxUsernameLength:
		verr.AddErr("username", ErrUsernameTooLong)
	case !usernamePattern.MatchString(p.Username):
		verr.AddErr("username", ErrInvalidUsername)
	}

	if utf8.RuneCountInString(p.FirstName) > models.MaxPersonNameLength {
		verr.AddErr("first_name", ErrNameTooLong)
	}
	if utf8.RuneCountInString(p.LastName) > models.MaxPersonNameLength {
		verr.AddErr("last_name", ErrNameTooLong)
	}

	if p.Password1 == "" {
		verr.AddErr("password1", ErrFieldRequired)
	}
	if p.Password2 == "" {
		verr.AddErr("password2", ErrFieldRequired)
	}
	if p.Password1 != "" && p.Password2 != "" {
		if p.Password1 != p.Password2 {
			verr.AddErr("password2", ErrPasswordMismatch)
		} else if err := checkPasswordStrength(p.Password1, p); err != nil {
			verr.AddErr("password2", err)
		}
	}

	return p, verr.OrNil()
}

// checkPasswordStrength applies the password rules in order and returns the first failure
func checkPasswordStrength(password string, p Profile) error {
	if utf8.RuneCountInString(password) < models.MinPasswordLength {
		return ErrPasswordTooShort
	}
	if isNumeric(password) {
		return ErrPasswordNumeric
	}
	if _, ok := commonPasswords[strings.ToLower(password)]; ok {
		return ErrPasswordCommon
	}
	if matchesAttribute(password, p.Username, p.FirstName, p.LastName) {
		return ErrPasswordMatchesProfile
	}
	return nil
}

func isNumeric(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return s != ""
}

// matchesAttribute reports whether the password is one of the user's own
// attributes, ignoring case. Passwords merely containing the username pass.
func matchesAttribute(password string, attrs ...string) bool {
	for _, attr := range attrs {
		if attr != "" && strings.EqualFold(password, attr) {
			return true
		}
	}
	return false
}

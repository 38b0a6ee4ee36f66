package auth

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	// ErrInvalidToken is returned when the token is malformed or badly signed.
	ErrInvalidToken = errors.New("invalid session token")
	// ErrExpiredToken is returned when the token has expired.
	ErrExpiredToken = errors.New("session token has expired")
)

// DefaultSessionTTL matches a two week login
const DefaultSessionTTL = 14 * 24 * time.Hour

const (
	sessionIssuer = "taskmanager"
	// fingerprintBytes is how much of the password HMAC goes into a token
	fingerprintBytes = 12
)

// SessionClaims are the claims carried by the session cookie.
// The subject is the user id. Password holds a fingerprint of the password
// hash at login, so a password change ends older sessions.
type SessionClaims struct {
	Username string `json:"username"`
	Password string `json:"pwd"`
	jwt.RegisteredClaims
}

// Session is a verified session token
type Session struct {
	Identity
	fingerprint string
}

// SessionManager signs and verifies session tokens
type SessionManager struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewSessionManager creates a SessionManager. A non-positive ttl uses DefaultSessionTTL.
func NewSessionManager(secret string, ttl time.Duration) *SessionManager {
	if ttl <= 0 {
		ttl = DefaultSessionTTL
	}
	return &SessionManager{secret: []byte(secret), ttl: ttl, now: time.Now}
}

// TTL returns how long issued tokens stay valid
func (m *SessionManager) TTL() time.Duration {
	return m.ttl
}

// Issue returns a signed token for the identity, bound to its current password hash
func (m *SessionManager) Issue(id Identity, passwordHash string) (string, error) {
	if !id.IsAuthenticated() {
		return "", errors.New("cannot issue a session for an anonymous identity")
	}

	now := m.now()
	claims := SessionClaims{
		Username: id.Username,
		Password: m.fingerprint(passwordHash),
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    sessionIssuer,
			Subject:   strconv.Itoa(id.UserID),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(m.secret)
}

// Verify validates the token and returns the session it was issued for
func (m *SessionManager) Verify(tokenString string) (Session, error) {
	token, err := jwt.ParseWithClaims(tokenString, &SessionClaims{}, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return m.secret, nil
	}, jwt.WithIssuer(sessionIssuer), jwt.WithTimeFunc(m.now))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return Session{}, ErrExpiredToken
		}
		return Session{}, ErrInvalidToken
	}

	claims, ok := token.Claims.(*SessionClaims)
	if !ok || !token.Valid {
		return Session{}, ErrInvalidToken
	}

	userID, err := strconv.Atoi(claims.Subject)
	if err != nil || userID <= 0 {
		return Session{}, ErrInvalidToken
	}

	return Session{
		Identity:    Identity{UserID: userID, Username: claims.Username},
		fingerprint: claims.Password,
	}, nil
}

// MatchesPassword reports whether the session was issued for passwordHash.
// It fails once the user has changed their password.
func (m *SessionManager) MatchesPassword(s Session, passwordHash string) bool {
	return s.fingerprint != "" && hmac.Equal([]byte(s.fingerprint), []byte(m.fingerprint(passwordHash)))
}

func (m *SessionManager) fingerprint(passwordHash string) string {
	mac := hmac.New(sha256.New, m.secret)
	mac.Write([]byte(passwordHash))
	return hex.EncodeToString(mac.Sum(nil)[:fingerprintBytes])
}

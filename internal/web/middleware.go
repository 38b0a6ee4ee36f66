package web

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/thenoetrevino/taskmanager/internal/auth"
	"github.com/thenoetrevino/taskmanager/internal/models"
)

const (
	sessionCookie   = "sessionid"
	requestIDHeader = "X-Request-ID"
	requestIDKey    = "request_id"
	identityKey     = "identity"
	maxRequestIDLen = 128
)

// requestID tags the request with the incoming X-Request-ID or a fresh UUID
func (s *Server) requestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(requestIDHeader)
		if id == "" || len(id) > maxRequestIDLen {
			id = uuid.NewString()
		}
		c.Set(requestIDKey, id)
		c.Header(requestIDHeader, id)
		c.Next()
	}
}

// securityHeaders forbids framing and MIME sniffing of every response
func securityHeaders() gin.HandlerFunc {
	return func(c *gin.Context) {
		h := c.Writer.Header()
		h.Set("X-Frame-Options", "DENY")
		h.Set("X-Content-Type-Options", "nosniff")
		h.Set("Referrer-Policy", "same-origin")
		c.Next()
	}
}

// crossOriginGuard rejects state-changing requests sent by another site.
// Browsers mark those with Sec-Fetch-Site or an Origin for a different host,
// so a form on a foreign page cannot ride the session cookie.
func (s *Server) crossOriginGuard() gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := s.origins.Check(c.Request); err != nil {
			s.logger.Warn("cross-origin request rejected",
				"method", c.Request.Method,
				"path", c.Request.URL.Path,
				"origin", c.GetHeader("Origin"),
				"request_id", c.GetString(requestIDKey),
			)
			s.render(c, http.StatusForbidden, "error.html", gin.H{
				"Title":   "Forbidden",
				"Message": "Cross-site form submissions are not allowed.",
			})
			c.Abort()
			return
		}
		c.Next()
	}
}

// requestLogger writes one log line per request and feeds the metrics
func (s *Server) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		s.metrics.RequestStarted()

		c.Next()

		status := c.Writer.Status()
		s.metrics.RequestFinished(status)

		level := s.logger.Info
		if status >= http.StatusInternalServerError {
			level = s.logger.Error
		}
		level("request",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", status,
			"latency", time.Since(start),
			"request_id", c.GetString(requestIDKey),
			"user_id", identity(c).UserID,
		)
	}
}

// loadIdentity resolves the session cookie into an auth.Identity. A token that
// no longer proves the user's identity, e.g. one issued before a password
// change, leaves the request anonymous and clears the cookie.
func (s *Server) loadIdentity() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := auth.Anonymous

		if token, err := c.Cookie(sessionCookie); err == nil && token != "" {
			claimed, err := s.sessions.Verify(token)
			if err == nil {
				u, err := s.app.UserService.GetUser(c.Request.Context(), claimed.UserID)
				switch {
				case err == nil && s.sessions.MatchesPassword(claimed, u.PasswordHash):
					id = auth.IdentityFor(u)
				case err == nil:
					s.clearSession(c)
				case errors.Is(err, models.ErrNotFound):
					s.clearSession(c)
				default:
					s.logger.Error("failed to load session user", "error", err, "user_id", claimed.UserID)
				}
			} else {
				s.clearSession(c)
			}
		}

		setIdentity(c, id)
		c.Next()
	}
}

// requireLogin redirects anonymous requests to the login page
func (s *Server) requireLogin() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !identity(c).IsAuthenticated() {
			s.redirectToLogin(c)
			return
		}
		c.Next()
	}
}

func setIdentity(c *gin.Context, id auth.Identity) {
	c.Set(identityKey, id)
	c.Request = c.Request.WithContext(auth.WithIdentity(c.Request.Context(), id))
}

// identity returns the actor of the current request
func identity(c *gin.Context) auth.Identity {
	if v, ok := c.Get(identityKey); ok {
		if id, ok := v.(auth.Identity); ok {
			return id
		}
	}
	return auth.FromContext(c.Request.Context())
}

func (s *Server) startSession(c *gin.Context, u *models.User) error {
	id := auth.IdentityFor(u)
	token, err := s.sessions.Issue(id, u.PasswordHash)
	if err != nil {
		return err
	}
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(sessionCookie, token, int(s.sessions.TTL().Seconds()), "/", "", s.opts.SecureCookies, true)
	setIdentity(c, id)
	return nil
}

func (s *Server) clearSession(c *gin.Context) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(sessionCookie, "", -1, "/", "", s.opts.SecureCookies, true)
	setIdentity(c, auth.Anonymous)
}

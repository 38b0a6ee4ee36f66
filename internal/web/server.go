// Package web serves the HTML interface: server-rendered pages over gin,
// a signed session cookie and flash messages carried between redirects.
package web

import (
	"embed"
	"errors"
	"fmt"
	"html/template"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/thenoetrevino/taskmanager/internal/app"
	"github.com/thenoetrevino/taskmanager/internal/auth"
	"github.com/thenoetrevino/taskmanager/internal/config"
	"github.com/thenoetrevino/taskmanager/internal/models"
)

//go:embed templates/*.html
var templatesFS embed.FS

// Options configures the HTTP layer
type Options struct {
	// SecureCookies marks the session cookie HTTPS-only
	SecureCookies bool
	// TrustedOrigins may submit forms from another host, e.g. behind a proxy
	TrustedOrigins []string
	Theme          config.Theme
	Logger         *slog.Logger
}

// Server wires the application services to HTTP routes
type Server struct {
	app      *app.App
	sessions *auth.SessionManager
	metrics  *Metrics
	origins  *http.CrossOriginProtection
	opts     Options
	logger   *slog.Logger
	engine   *gin.Engine
}

// New builds the gin engine and registers every route
func New(a *app.App, sessions *auth.SessionManager, opts Options) (*Server, error) {
	opts.Theme.ApplyDefaults()
	logger := opts.Logger
	if logger == nil {
		logger = a.Logger()
	}

	tmpl, err := template.New("").Funcs(template.FuncMap{
		"markdown": renderMarkdown,
		"hasID":    hasID,
	}).ParseFS(templatesFS, "templates/*.html")
	if err != nil {
		return nil, err
	}

	origins := http.NewCrossOriginProtection()
	for _, o := range opts.TrustedOrigins {
		if err := origins.AddTrustedOrigin(o); err != nil {
			return nil, fmt.Errorf("invalid trusted origin %q: %w", o, err)
		}
	}

	s := &Server{
		app:      a,
		sessions: sessions,
		metrics:  NewMetrics(),
		origins:  origins,
		opts:     opts,
		logger:   logger,
	}

	engine := gin.New()
	engine.SetHTMLTemplate(tmpl)
	engine.Use(
		gin.Recovery(),
		s.requestID(),
		securityHeaders(),
		s.requestLogger(),
		s.loadIdentity(),
		s.crossOriginGuard(),
	)
	engine.NoRoute(func(c *gin.Context) { s.notFound(c) })
	s.engine = engine
	s.routes()
	return s, nil
}

// Handler returns the http.Handler serving all routes
func (s *Server) Handler() http.Handler {
	return s.engine
}

// Metrics returns the request counters exposed on /health
func (s *Server) Metrics() *Metrics {
	return s.metrics
}

func (s *Server) routes() {
	r := s.engine
	r.GET("/", s.index)
	r.GET("/health", s.health)

	r.GET("/login", s.loginForm)
	r.POST("/login", s.login)
	r.GET("/logout", s.logout)
	r.POST("/logout", s.logout)

	users := r.Group("/users")
	users.GET("", s.listUsers)
	users.GET("/create", s.createUserForm)
	users.POST("/create", s.createUser)
	owner := users.Group("/:id", s.requireLogin())
	owner.GET("/update", s.updateUserForm)
	owner.POST("/update", s.updateUser)
	owner.GET("/delete", s.deleteUserForm)
	owner.POST("/delete", s.deleteUser)

	s.catalogRoutes(r.Group("/statuses", s.requireLogin()), s.statusCatalog())
	s.catalogRoutes(r.Group("/labels", s.requireLogin()), s.labelCatalog())

	tasks := r.Group("/tasks", s.requireLogin())
	tasks.GET("", s.listTasks)
	tasks.GET("/create", s.createTaskForm)
	tasks.POST("/create", s.createTask)
	tasks.GET("/:id", s.showTask)
	tasks.GET("/:id/update", s.updateTaskForm)
	tasks.POST("/:id/update", s.updateTask)
	tasks.GET("/:id/delete", s.deleteTaskForm)
	tasks.POST("/:id/delete", s.deleteTask)
}

func (s *Server) index(c *gin.Context) {
	s.render(c, http.StatusOK, "index.html", gin.H{"Title": "Task manager"})
}

func (s *Server) health(c *gin.Context) {
	c.JSON(http.StatusOK, s.metrics.GetSnapshot())
}

// render executes a page template with the values every page needs
func (s *Server) render(c *gin.Context, status int, name string, data gin.H) {
	if data == nil {
		data = gin.H{}
	}
	if _, ok := data["Errors"]; !ok {
		data["Errors"] = map[string]string{}
	}
	data["Identity"] = identity(c)
	data["Flash"] = popFlash(c)
	data["Theme"] = s.opts.Theme
	data["Path"] = c.Request.URL.Path
	c.HTML(status, name, data)
}

func (s *Server) notFound(c *gin.Context) {
	s.render(c, http.StatusNotFound, "error.html", gin.H{
		"Title":   "Page not found",
		"Message": "The page you requested does not exist.",
	})
}

func (s *Server) serverError(c *gin.Context, err error) {
	s.logger.Error("request failed",
		"error", err,
		"path", c.Request.URL.Path,
		"request_id", c.GetString(requestIDKey),
	)
	s.render(c, http.StatusInternalServerError, "error.html", gin.H{
		"Title":   "Server error",
		"Message": "Something went wrong. Please try again later.",
	})
}

// failure describes how a rejected mutation is reported
type failure struct {
	// redirect is the page the user is sent back to
	redirect string
	// denied is flashed on a permission error
	denied string
	// inUse is flashed when a referenced entity cannot be deleted
	inUse string
}

// fail maps a service error onto the HTTP response. Validation errors are
// handled by the form handlers before reaching here.
func (s *Server) fail(c *gin.Context, err error, f failure) {
	switch {
	case errors.Is(err, models.ErrPermissionDenied):
		if !identity(c).IsAuthenticated() {
			s.redirectToLogin(c)
			return
		}
		setFlash(c, flashDanger, f.denied)
		c.Redirect(http.StatusFound, f.redirect)
	case errors.Is(err, models.ErrInUse):
		setFlash(c, flashDanger, f.inUse)
		c.Redirect(http.StatusFound, f.redirect)
	case errors.Is(err, models.ErrNotFound):
		s.notFound(c)
	default:
		s.serverError(c, err)
	}
}

// formErrors extracts field messages from a validation error
func formErrors(err error) (map[string]string, bool) {
	var verr *models.ValidationError
	if errors.As(err, &verr) {
		return verr.Fields, true
	}
	return nil, false
}

func (s *Server) redirectToLogin(c *gin.Context) {
	setFlash(c, flashDanger, "You are not logged in! Please log in.")
	target := "/login?next=" + url.QueryEscape(c.Request.URL.RequestURI())
	c.Redirect(http.StatusFound, target)
	c.Abort()
}

// pathID parses the :id route parameter. Malformed ids answer 404.
func (s *Server) pathID(c *gin.Context) (int, bool) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		s.notFound(c)
		return 0, false
	}
	return id, true
}

// safeNext accepts only local redirect targets
func safeNext(next string) string {
	if !strings.HasPrefix(next, "/") || strings.HasPrefix(next, "//") || strings.HasPrefix(next, "/\\") {
		return "/"
	}
	return next
}

func hasID(ids []int, id int) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}

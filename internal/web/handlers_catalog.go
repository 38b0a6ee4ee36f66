package web

import (
	"context"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/thenoetrevino/taskmanager/internal/auth"
	"github.com/thenoetrevino/taskmanager/internal/models"
	labelservice "github.com/thenoetrevino/taskmanager/internal/services/label"
	statusservice "github.com/thenoetrevino/taskmanager/internal/services/status"
)

// catalogItem is a named row shown on the status and label pages
type catalogItem struct {
	ID        int
	Name      string
	CreatedAt string
}

// catalog adapts the status or label service to the shared list and form pages
type catalog struct {
	path     string // "/statuses"
	singular string // "Status"
	plural   string // "Statuses"

	list   func(ctx context.Context, actor auth.Identity) ([]catalogItem, error)
	get    func(ctx context.Context, actor auth.Identity, id int) (catalogItem, error)
	create func(ctx context.Context, actor auth.Identity, name string) error
	update func(ctx context.Context, actor auth.Identity, id int, name string) error
	remove func(ctx context.Context, actor auth.Identity, id int) error
}

const createdAtLayout = "02.01.2006 15:04"

func (s *Server) statusCatalog() catalog {
	svc := s.app.StatusService
	item := func(st *models.Status) catalogItem {
		return catalogItem{ID: st.ID, Name: st.Name, CreatedAt: st.CreatedAt.Format(createdAtLayout)}
	}
	return catalog{
		path:     "/statuses",
		singular: "Status",
		plural:   "Statuses",
		list: func(ctx context.Context, actor auth.Identity) ([]catalogItem, error) {
			rows, err := svc.ListStatuses(ctx, actor)
			if err != nil {
				return nil, err
			}
			items := make([]catalogItem, 0, len(rows))
			for _, st := range rows {
				items = append(items, item(st))
			}
			return items, nil
		},
		get: func(ctx context.Context, actor auth.Identity, id int) (catalogItem, error) {
			st, err := svc.GetStatus(ctx, actor, id)
			if err != nil {
				return catalogItem{}, err
			}
			return item(st), nil
		},
		create: func(ctx context.Context, actor auth.Identity, name string) error {
			_, err := svc.CreateStatus(ctx, actor, statusservice.CreateStatusRequest{Name: name})
			return err
		},
		update: func(ctx context.Context, actor auth.Identity, id int, name string) error {
			_, err := svc.UpdateStatus(ctx, actor, statusservice.UpdateStatusRequest{ID: id, Name: name})
			return err
		},
		remove: svc.DeleteStatus,
	}
}

func (s *Server) labelCatalog() catalog {
	svc := s.app.LabelService
	item := func(l *models.Label) catalogItem {
		return catalogItem{ID: l.ID, Name: l.Name, CreatedAt: l.CreatedAt.Format(createdAtLayout)}
	}
	return catalog{
		path:     "/labels",
		singular: "Label",
		plural:   "Labels",
		list: func(ctx context.Context, actor auth.Identity) ([]catalogItem, error) {
			rows, err := svc.ListLabels(ctx, actor)
			if err != nil {
				return nil, err
			}
			items := make([]catalogItem, 0, len(rows))
			for _, l := range rows {
				items = append(items, item(l))
			}
			return items, nil
		},
		get: func(ctx context.Context, actor auth.Identity, id int) (catalogItem, error) {
			l, err := svc.GetLabel(ctx, actor, id)
			if err != nil {
				return catalogItem{}, err
			}
			return item(l), nil
		},
		create: func(ctx context.Context, actor auth.Identity, name string) error {
			_, err := svc.CreateLabel(ctx, actor, labelservice.CreateLabelRequest{Name: name})
			return err
		},
		update: func(ctx context.Context, actor auth.Identity, id int, name string) error {
			_, err := svc.UpdateLabel(ctx, actor, labelservice.UpdateLabelRequest{ID: id, Name: name})
			return err
		},
		remove: svc.DeleteLabel,
	}
}

func (s *Server) catalogRoutes(g *gin.RouterGroup, cat catalog) {
	g.GET("", s.listCatalog(cat))
	g.GET("/create", s.catalogForm(cat, false))
	g.POST("/create", s.saveCatalog(cat, false))
	g.GET("/:id/update", s.catalogForm(cat, true))
	g.POST("/:id/update", s.saveCatalog(cat, true))
	g.GET("/:id/delete", s.confirmCatalogDelete(cat))
	g.POST("/:id/delete", s.deleteCatalog(cat))
}

func (cat catalog) failure() failure {
	return failure{
		redirect: cat.path,
		denied:   "You have no permission to change " + cat.plural + ".",
		inUse:    "Cannot delete " + strings.ToLower(cat.singular) + " because it is in use",
	}
}

func (cat catalog) itemPath(id int, action string) string {
	return cat.path + "/" + strconv.Itoa(id) + "/" + action
}

func (s *Server) listCatalog(cat catalog) gin.HandlerFunc {
	return func(c *gin.Context) {
		items, err := cat.list(c.Request.Context(), identity(c))
		if err != nil {
			s.fail(c, err, cat.failure())
			return
		}
		s.render(c, http.StatusOK, "catalog.html", gin.H{
			"Title":    cat.plural,
			"Plural":   cat.plural,
			"Singular": cat.singular,
			"Base":     cat.path,
			"Items":    items,
		})
	}
}

func (s *Server) renderCatalogForm(c *gin.Context, cat catalog, editing bool, id int, name string, errs map[string]string) {
	heading, action, submit := "Create "+strings.ToLower(cat.singular), cat.path+"/create", "Create"
	if editing {
		heading, action, submit = "Update "+strings.ToLower(cat.singular), cat.itemPath(id, "update"), "Update"
	}
	s.render(c, http.StatusOK, "name_form.html", gin.H{
		"Title":   heading,
		"Heading": heading,
		"Action":  action,
		"Submit":  submit,
		"Form":    map[string]string{"name": name},
		"Errors":  errs,
	})
}

func (s *Server) catalogForm(cat catalog, editing bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !editing {
			s.renderCatalogForm(c, cat, false, 0, "", nil)
			return
		}
		id, ok := s.pathID(c)
		if !ok {
			return
		}
		item, err := cat.get(c.Request.Context(), identity(c), id)
		if err != nil {
			s.fail(c, err, cat.failure())
			return
		}
		s.renderCatalogForm(c, cat, true, id, item.Name, nil)
	}
}

func (s *Server) saveCatalog(cat catalog, editing bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		name := c.PostForm("name")
		ctx, actor := c.Request.Context(), identity(c)

		var id int
		var err error
		if editing {
			var ok bool
			if id, ok = s.pathID(c); !ok {
				return
			}
			err = cat.update(ctx, actor, id, name)
		} else {
			err = cat.create(ctx, actor, name)
		}

		if err != nil {
			if errs, ok := formErrors(err); ok {
				s.renderCatalogForm(c, cat, editing, id, name, errs)
				return
			}
			s.fail(c, err, cat.failure())
			return
		}

		verb := "created"
		if editing {
			verb = "updated"
		}
		setFlash(c, flashSuccess, cat.singular+" successfully "+verb)
		c.Redirect(http.StatusFound, cat.path)
	}
}

func (s *Server) confirmCatalogDelete(cat catalog) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := s.pathID(c)
		if !ok {
			return
		}
		item, err := cat.get(c.Request.Context(), identity(c), id)
		if err != nil {
			s.fail(c, err, cat.failure())
			return
		}
		s.render(c, http.StatusOK, "confirm_delete.html", gin.H{
			"Title":   "Delete " + strings.ToLower(cat.singular),
			"Heading": "Delete " + strings.ToLower(cat.singular),
			"Target":  item.Name,
			"Action":  cat.itemPath(id, "delete"),
		})
	}
}

func (s *Server) deleteCatalog(cat catalog) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := s.pathID(c)
		if !ok {
			return
		}
		if err := cat.remove(c.Request.Context(), identity(c), id); err != nil {
			s.fail(c, err, cat.failure())
			return
		}
		setFlash(c, flashSuccess, cat.singular+" successfully deleted")
		c.Redirect(http.StatusFound, cat.path)
	}
}

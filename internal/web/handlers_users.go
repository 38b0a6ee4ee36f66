package web

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/thenoetrevino/taskmanager/internal/perm"
	userservice "github.com/thenoetrevino/taskmanager/internal/services/user"
)

const userDenied = "You have no permission to change another user."

func (s *Server) loginForm(c *gin.Context) {
	s.render(c, http.StatusOK, "login.html", gin.H{
		"Title": "Log in",
		"Next":  c.Query("next"),
		"Form":  map[string]string{},
	})
}

func (s *Server) login(c *gin.Context) {
	username := c.PostForm("username")
	next := c.PostForm("next")
	if next == "" {
		next = c.Query("next")
	}

	u, err := s.app.UserService.Authenticate(c.Request.Context(), username, c.PostForm("password"))
	if err != nil {
		if errs, ok := formErrors(err); ok {
			s.render(c, http.StatusOK, "login.html", gin.H{
				"Title":  "Log in",
				"Next":   next,
				"Form":   map[string]string{"username": username},
				"Errors": errs,
			})
			return
		}
		s.serverError(c, err)
		return
	}

	if err := s.startSession(c, u); err != nil {
		s.serverError(c, err)
		return
	}
	s.metrics.IncLogins()
	setFlash(c, flashSuccess, "You are logged in")
	c.Redirect(http.StatusFound, safeNext(next))
}

func (s *Server) logout(c *gin.Context) {
	s.clearSession(c)
	setFlash(c, flashInfo, "You are logged out")
	c.Redirect(http.StatusFound, "/")
}

func (s *Server) listUsers(c *gin.Context) {
	users, err := s.app.UserService.ListUsers(c.Request.Context())
	if err != nil {
		s.serverError(c, err)
		return
	}
	s.render(c, http.StatusOK, "users.html", gin.H{"Title": "Users", "Users": users})
}

func profileFromForm(c *gin.Context) userservice.Profile {
	return userservice.Profile{
		Username:  c.PostForm("username"),
		FirstName: c.PostForm("first_name"),
		LastName:  c.PostForm("last_name"),
		Password1: c.PostForm("password1"),
		Password2: c.PostForm("password2"),
	}
}

func profileValues(p userservice.Profile) map[string]string {
	return map[string]string{
		"username":   p.Username,
		"first_name": p.FirstName,
		"last_name":  p.LastName,
	}
}

func (s *Server) renderUserForm(c *gin.Context, heading, action, submit string, form map[string]string, errs map[string]string) {
	s.render(c, http.StatusOK, "user_form.html", gin.H{
		"Title":   heading,
		"Heading": heading,
		"Action":  action,
		"Submit":  submit,
		"Form":    form,
		"Errors":  errs,
	})
}

func (s *Server) createUserForm(c *gin.Context) {
	s.renderUserForm(c, "Sign up", "/users/create", "Register", map[string]string{}, nil)
}

func (s *Server) createUser(c *gin.Context) {
	p := profileFromForm(c)
	_, err := s.app.UserService.Register(c.Request.Context(), p)
	if err != nil {
		if errs, ok := formErrors(err); ok {
			s.renderUserForm(c, "Sign up", "/users/create", "Register", profileValues(p), errs)
			return
		}
		s.serverError(c, err)
		return
	}
	setFlash(c, flashSuccess, "User successfully registered")
	c.Redirect(http.StatusFound, "/login")
}

// ownUser loads the user for the edit and delete pages. Other users'
// records redirect back to the list.
func (s *Server) ownUser(c *gin.Context) (int, bool) {
	id, ok := s.pathID(c)
	if !ok {
		return 0, false
	}
	if !perm.CanEditUser(identity(c), id) {
		setFlash(c, flashDanger, userDenied)
		c.Redirect(http.StatusFound, "/users")
		return 0, false
	}
	return id, true
}

func (s *Server) updateUserForm(c *gin.Context) {
	id, ok := s.ownUser(c)
	if !ok {
		return
	}
	u, err := s.app.UserService.GetUser(c.Request.Context(), id)
	if err != nil {
		s.fail(c, err, failure{redirect: "/users", denied: userDenied})
		return
	}
	form := map[string]string{
		"username":   u.Username,
		"first_name": u.FirstName,
		"last_name":  u.LastName,
	}
	s.renderUserForm(c, "Update user", userPath(id, "update"), "Update", form, nil)
}

func (s *Server) updateUser(c *gin.Context) {
	id, ok := s.ownUser(c)
	if !ok {
		return
	}
	p := profileFromForm(c)
	u, err := s.app.UserService.UpdateUser(c.Request.Context(), identity(c), id, p)
	if err != nil {
		if errs, ok := formErrors(err); ok {
			s.renderUserForm(c, "Update user", userPath(id, "update"), "Update", profileValues(p), errs)
			return
		}
		s.fail(c, err, failure{redirect: "/users", denied: userDenied})
		return
	}
	// The new password hash ends every other session; keep this one.
	if err := s.startSession(c, u); err != nil {
		s.serverError(c, err)
		return
	}
	setFlash(c, flashSuccess, "User successfully updated")
	c.Redirect(http.StatusFound, "/users")
}

func (s *Server) deleteUserForm(c *gin.Context) {
	id, ok := s.ownUser(c)
	if !ok {
		return
	}
	u, err := s.app.UserService.GetUser(c.Request.Context(), id)
	if err != nil {
		s.fail(c, err, failure{redirect: "/users", denied: userDenied})
		return
	}
	s.render(c, http.StatusOK, "confirm_delete.html", gin.H{
		"Title":   "Delete user",
		"Heading": "Delete user",
		"Target":  u.FullName(),
		"Action":  userPath(id, "delete"),
	})
}

func (s *Server) deleteUser(c *gin.Context) {
	id, ok := s.ownUser(c)
	if !ok {
		return
	}
	err := s.app.UserService.DeleteUser(c.Request.Context(), identity(c), id)
	if err != nil {
		s.fail(c, err, failure{
			redirect: "/users",
			denied:   userDenied,
			inUse:    "Cannot delete user because it is in use",
		})
		return
	}
	s.clearSession(c)
	setFlash(c, flashSuccess, "User successfully deleted")
	c.Redirect(http.StatusFound, "/users")
}

func userPath(id int, action string) string {
	return "/users/" + strconv.Itoa(id) + "/" + action
}

package web

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

const flashCookie = "flash"

// Flash levels
const (
	flashSuccess = "success"
	flashDanger  = "danger"
	flashInfo    = "info"
)

// Flash is a one-shot message shown on the next rendered page
type Flash struct {
	Level string
	Text  string
}

const flashKey = "flash"

// setFlash stores a message for the next page. gin escapes the cookie value.
func setFlash(c *gin.Context, level, text string) {
	c.Set(flashKey, &Flash{Level: level, Text: text})
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(flashCookie, level+"|"+text, 60, "/", "", false, true)
}

// popFlash returns the pending message, if any, and clears the cookie
func popFlash(c *gin.Context) *Flash {
	if v, ok := c.Get(flashKey); ok {
		c.SetCookie(flashCookie, "", -1, "/", "", false, true)
		return v.(*Flash)
	}
	raw, err := c.Cookie(flashCookie)
	if err != nil || raw == "" {
		return nil
	}
	c.SetCookie(flashCookie, "", -1, "/", "", false, true)

	level, text, ok := strings.Cut(raw, "|")
	if !ok {
		return nil
	}
	switch level {
	case flashSuccess, flashDanger, flashInfo:
	default:
		level = flashInfo
	}
	return &Flash{Level: level, Text: text}
}

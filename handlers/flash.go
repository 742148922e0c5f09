package handlers

import (
	"strings"

	"github.com/gorilla/sessions"
	"github.com/labstack/echo/v4"
)

const flashSessionName = "ems_flash"

// Flash is a one-shot user-facing message with a bootstrap-style category
// (success / warning / danger).
type Flash struct {
	Category string
	Message  string
}

func setFlash(c echo.Context, store sessions.Store, category, message string) {
	sess, _ := store.Get(c.Request(), flashSessionName)
	sess.AddFlash(category + "|" + message)
	_ = sess.Save(c.Request(), c.Response())
}

// popFlashes drains and returns the pending flashes for this browser.
func popFlashes(c echo.Context, store sessions.Store) []Flash {
	sess, _ := store.Get(c.Request(), flashSessionName)
	raw := sess.Flashes()
	if len(raw) > 0 {
		_ = sess.Save(c.Request(), c.Response())
	}
	out := make([]Flash, 0, len(raw))
	for _, v := range raw {
		s, ok := v.(string)
		if !ok {
			continue
		}
		category, message, found := strings.Cut(s, "|")
		if !found {
			category, message = "success", s
		}
		out = append(out, Flash{Category: category, Message: message})
	}
	return out
}

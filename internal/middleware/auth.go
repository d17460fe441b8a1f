package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"

	"github.com/openjobs/openjobs/internal/models"
	"github.com/openjobs/openjobs/internal/services"
)

// Session and context keys. The elevated admin flag is separate from
// the identity on purpose: holding an admin account is not enough to
// enter the panel, the admin login flow has to set this flag.
const (
	SessionUserID    = "user_id"
	SessionAdminFlag = "admin_authenticated"
	ContextUser      = "user"
)

// CurrentUser resolves the session identity into a *models.User and
// stores it on the request context. A stale or missing id just leaves
// the request anonymous; the *Required middlewares do the gating.
func CurrentUser(users *services.UserService) gin.HandlerFunc {
	return func(c *gin.Context) {
		session := sessions.Default(c)
		raw := session.Get(SessionUserID)
		if raw == nil {
			c.Next()
			return
		}
		id, ok := raw.(uint)
		if !ok {
			c.Next()
			return
		}
		user, err := users.ByID(id)
		if err != nil {
			c.Next()
			return
		}
		c.Set(ContextUser, user)
		c.Next()
	}
}

// UserFrom returns the authenticated user on the context, or nil.
func UserFrom(c *gin.Context) *models.User {
	v, ok := c.Get(ContextUser)
	if !ok {
		return nil
	}
	user, _ := v.(*models.User)
	return user
}

// IsAdminSession reports whether the elevated admin flag is set.
func IsAdminSession(c *gin.Context) bool {
	flag := sessions.Default(c).Get(SessionAdminFlag)
	b, _ := flag.(bool)
	return b
}

// LoginRequired redirects anonymous requests to the login page.
func LoginRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		if UserFrom(c) == nil {
			Flash(c, "error", "Please log in to access this page.")
			c.Redirect(http.StatusFound, "/login")
			c.Abort()
			return
		}
		c.Next()
	}
}

// AdminRequired enforces all three admin conditions: a logged-in
// identity, the admin role on the account, and the elevated session
// flag. Each failure redirects; none renders protected content.
func AdminRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		user := UserFrom(c)
		if user == nil {
			Flash(c, "error", "Please log in to access this page.")
			c.Redirect(http.StatusFound, "/admin/login")
			c.Abort()
			return
		}
		if !user.IsAdmin {
			Flash(c, "error", "Access denied. Admin privileges required.")
			c.Redirect(http.StatusFound, "/")
			c.Abort()
			return
		}
		if !IsAdminSession(c) {
			Flash(c, "error", "Please authenticate as an administrator.")
			c.Redirect(http.StatusFound, "/admin/login")
			c.Abort()
			return
		}
		c.Next()
	}
}

// FlashMessage is one queued user-visible notice.
type FlashMessage struct {
	Category string // success, error, info
	Text     string
}

// Flash queues a message for the next rendered page.
func Flash(c *gin.Context, category, message string) {
	session := sessions.Default(c)
	session.AddFlash(category + "|" + message)
	_ = session.Save()
}

// TakeFlashes drains the queued messages.
func TakeFlashes(c *gin.Context) []FlashMessage {
	session := sessions.Default(c)
	raw := session.Flashes()
	if len(raw) > 0 {
		_ = session.Save()
	}
	out := make([]FlashMessage, 0, len(raw))
	for _, v := range raw {
		s, ok := v.(string)
		if !ok {
			continue
		}
		category, text, found := strings.Cut(s, "|")
		if !found {
			category, text = "info", s
		}
		out = append(out, FlashMessage{Category: category, Text: text})
	}
	return out
}

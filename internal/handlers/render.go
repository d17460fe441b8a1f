package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/openjobs/openjobs/internal/middleware"
)

// Render draws a page with the bits every template expects: the
// current user (or nil) and any queued flash messages.
func Render(c *gin.Context, code int, name string, data gin.H) {
	if data == nil {
		data = gin.H{}
	}
	data["CurrentUser"] = middleware.UserFrom(c)
	data["Flashes"] = middleware.TakeFlashes(c)
	c.HTML(code, name, data)
}

// NotFound renders the standard 404 page.
func NotFound(c *gin.Context) {
	Render(c, http.StatusNotFound, "errors/404.html", nil)
}

// Fault renders the generic 500 page for unexpected store failures.
func Fault(c *gin.Context) {
	Render(c, http.StatusInternalServerError, "errors/500.html", nil)
}

// HealthCheck is a bare liveness endpoint for deploy probes.
func HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// paramID parses the :id route segment. false means it was not a
// positive integer and the caller should 404.
func paramID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}

// pageParam reads ?page=, defaulting to the first page.
func pageParam(c *gin.Context) int {
	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil || page < 1 {
		return 1
	}
	return page
}

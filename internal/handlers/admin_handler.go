package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/openjobs/openjobs/internal/dtos"
	"github.com/openjobs/openjobs/internal/middleware"
	"github.com/openjobs/openjobs/internal/models"
	"github.com/openjobs/openjobs/internal/services"
)

// AdminHandler serves the admin panel: its own login flow (which sets
// the elevated session flag), the metrics dashboard, and user/job
// moderation.
type AdminHandler struct {
	Users *services.UserService
	Jobs  *services.JobService
	Admin *services.AdminService
	Log   *zap.SugaredLogger

	// SessionLifetime is how long the elevated admin session lasts.
	SessionLifetime time.Duration
}

func NewAdminHandler(users *services.UserService, jobs *services.JobService, admin *services.AdminService, log *zap.SugaredLogger, lifetime time.Duration) *AdminHandler {
	return &AdminHandler{Users: users, Jobs: jobs, Admin: admin, Log: log, SessionLifetime: lifetime}
}

// teardownNonAdmin logs out a signed-in regular user before the admin
// login proceeds. Admin login never piggybacks on a user session.
func (h *AdminHandler) teardownNonAdmin(c *gin.Context) {
	user := middleware.UserFrom(c)
	if user == nil || user.IsAdmin {
		return
	}
	session := sessions.Default(c)
	session.Delete(middleware.SessionUserID)
	session.Delete(middleware.SessionAdminFlag)
	_ = session.Save()
	c.Set(middleware.ContextUser, (*models.User)(nil))
	middleware.Flash(c, "info", "Please log in with admin credentials.")
}

func (h *AdminHandler) LoginForm(c *gin.Context) {
	user := middleware.UserFrom(c)
	if user != nil && user.IsAdmin && middleware.IsAdminSession(c) {
		c.Redirect(http.StatusFound, "/admin/")
		return
	}
	h.teardownNonAdmin(c)
	Render(c, http.StatusOK, "admin/login.html", nil)
}

func (h *AdminHandler) Login(c *gin.Context) {
	h.teardownNonAdmin(c)

	var form dtos.AdminLoginForm
	if err := c.ShouldBind(&form); err != nil {
		middleware.Flash(c, "error", "Invalid admin credentials.")
		Render(c, http.StatusOK, "admin/login.html", nil)
		return
	}

	user, err := h.Users.AuthenticateAdmin(form.Email, form.Password)
	if errors.Is(err, services.ErrBadCredentials) {
		middleware.Flash(c, "error", "Invalid admin credentials.")
		Render(c, http.StatusOK, "admin/login.html", nil)
		return
	}
	if err != nil {
		h.Log.Errorw("admin login", "err", err)
		Fault(c)
		return
	}

	session := sessions.Default(c)
	session.Set(middleware.SessionUserID, user.ID)
	session.Set(middleware.SessionAdminFlag, true)
	// Elevated sessions run long so admins are not re-challenged
	// mid-moderation.
	session.Options(sessions.Options{
		Path:     "/",
		MaxAge:   int(h.SessionLifetime.Seconds()),
		HttpOnly: true,
	})
	if err := session.Save(); err != nil {
		h.Log.Errorw("admin login: save session", "err", err)
		Fault(c)
		return
	}
	middleware.Flash(c, "success", "Welcome to the admin dashboard!")
	c.Redirect(http.StatusFound, "/admin/")
}

func (h *AdminHandler) Logout(c *gin.Context) {
	session := sessions.Default(c)
	session.Delete(middleware.SessionAdminFlag)
	session.Delete(middleware.SessionUserID)
	if err := session.Save(); err != nil {
		h.Log.Errorw("admin logout: save session", "err", err)
		Fault(c)
		return
	}
	middleware.Flash(c, "info", "You have been logged out of the admin panel.")
	c.Redirect(http.StatusFound, "/admin/login")
}

func (h *AdminHandler) Dashboard(c *gin.Context) {
	stats, err := h.Admin.Stats()
	if err != nil {
		h.Log.Errorw("admin dashboard", "err", err)
		Fault(c)
		return
	}
	recentUsers, err := h.Users.Recent(5)
	if err != nil {
		h.Log.Errorw("admin dashboard", "err", err)
		Fault(c)
		return
	}
	recentJobs, err := h.Jobs.Recent(5)
	if err != nil {
		h.Log.Errorw("admin dashboard", "err", err)
		Fault(c)
		return
	}
	Render(c, http.StatusOK, "admin/dashboard.html", gin.H{
		"Stats":       stats,
		"RecentUsers": recentUsers,
		"RecentJobs":  recentJobs,
	})
}

func (h *AdminHandler) ManageUsers(c *gin.Context) {
	page, err := h.Users.List(pageParam(c))
	if err != nil {
		h.Log.Errorw("manage users", "err", err)
		Fault(c)
		return
	}
	Render(c, http.StatusOK, "admin/users.html", gin.H{"Page": page})
}

func (h *AdminHandler) ManageJobs(c *gin.Context) {
	page, err := h.Jobs.List(pageParam(c))
	if err != nil {
		h.Log.Errorw("manage jobs", "err", err)
		Fault(c)
		return
	}
	Render(c, http.StatusOK, "admin/jobs.html", gin.H{"Page": page})
}

func (h *AdminHandler) ToggleUserStatus(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		NotFound(c)
		return
	}
	user, err := h.Users.ToggleActive(id)
	switch {
	case errors.Is(err, services.ErrNotFound):
		NotFound(c)
		return
	case errors.Is(err, services.ErrAdminImmutable):
		middleware.Flash(c, "error", "Cannot modify admin user status.")
	case err != nil:
		h.Log.Errorw("toggle user status", "err", err)
		Fault(c)
		return
	default:
		verb := "deactivated"
		if user.IsActive {
			verb = "activated"
		}
		middleware.Flash(c, "success", fmt.Sprintf("User %s has been %s.", user.Username, verb))
	}
	c.Redirect(http.StatusFound, "/admin/users")
}

func (h *AdminHandler) ToggleJobStatus(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		NotFound(c)
		return
	}
	job, err := h.Jobs.ToggleStatus(id)
	if errors.Is(err, services.ErrNotFound) {
		NotFound(c)
		return
	}
	if err != nil {
		h.Log.Errorw("toggle job status", "err", err)
		Fault(c)
		return
	}
	middleware.Flash(c, "success", fmt.Sprintf("Job %q status updated to %s.", job.Title, job.Status))
	c.Redirect(http.StatusFound, "/admin/jobs")
}

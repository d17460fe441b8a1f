package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/openjobs/openjobs/internal/dtos"
	"github.com/openjobs/openjobs/internal/middleware"
	"github.com/openjobs/openjobs/internal/services"
)

// AuthHandler serves the public pages: index, registration, the
// normal login/logout flow, the user dashboard, and first-run admin
// setup.
type AuthHandler struct {
	Users *services.UserService
	Jobs  *services.JobService
	Log   *zap.SugaredLogger
}

func NewAuthHandler(users *services.UserService, jobs *services.JobService, log *zap.SugaredLogger) *AuthHandler {
	return &AuthHandler{Users: users, Jobs: jobs, Log: log}
}

// Index shows the six newest visible listings, unless no admin exists
// yet, in which case the whole site funnels into first-run setup.
func (h *AuthHandler) Index(c *gin.Context) {
	hasAdmin, err := h.Users.HasAdmin()
	if err != nil {
		h.Log.Errorw("index: admin check", "err", err)
		Fault(c)
		return
	}
	if !hasAdmin {
		c.Redirect(http.StatusFound, "/admin-setup")
		return
	}

	latest, err := h.Jobs.Latest(6)
	if err != nil {
		h.Log.Errorw("index: latest jobs", "err", err)
		Fault(c)
		return
	}
	Render(c, http.StatusOK, "index.html", gin.H{"LatestJobs": latest})
}

func (h *AuthHandler) RegisterForm(c *gin.Context) {
	Render(c, http.StatusOK, "register.html", nil)
}

func (h *AuthHandler) Register(c *gin.Context) {
	var form dtos.RegisterForm
	if err := c.ShouldBind(&form); err != nil {
		Render(c, http.StatusOK, "register.html", gin.H{"Form": form, "Errors": dtos.FieldErrors(err)})
		return
	}

	_, err := h.Users.Register(&form)
	switch {
	case errors.Is(err, services.ErrUsernameTaken):
		Render(c, http.StatusOK, "register.html", gin.H{"Form": form, "Errors": gin.H{
			"Username": "That username already exists. Please choose a different one.",
		}})
	case errors.Is(err, services.ErrEmailTaken):
		Render(c, http.StatusOK, "register.html", gin.H{"Form": form, "Errors": gin.H{
			"Email": "That email is already registered. Please use a different one.",
		}})
	case err != nil:
		h.Log.Errorw("register", "err", err)
		Fault(c)
	default:
		middleware.Flash(c, "success", "Registration successful! Please log in.")
		c.Redirect(http.StatusFound, "/login")
	}
}

func (h *AuthHandler) LoginForm(c *gin.Context) {
	Render(c, http.StatusOK, "login.html", nil)
}

func (h *AuthHandler) Login(c *gin.Context) {
	var form dtos.LoginForm
	if err := c.ShouldBind(&form); err != nil {
		middleware.Flash(c, "error", "Invalid username or password. Please try again.")
		Render(c, http.StatusOK, "login.html", nil)
		return
	}

	user, err := h.Users.Authenticate(form.Username, form.Password)
	if errors.Is(err, services.ErrBadCredentials) {
		middleware.Flash(c, "error", "Invalid username or password. Please try again.")
		Render(c, http.StatusOK, "login.html", nil)
		return
	}
	if err != nil {
		h.Log.Errorw("login", "err", err)
		Fault(c)
		return
	}

	session := sessions.Default(c)
	session.Set(middleware.SessionUserID, user.ID)
	if err := session.Save(); err != nil {
		h.Log.Errorw("login: save session", "err", err)
		Fault(c)
		return
	}
	middleware.Flash(c, "success", "Welcome back!")
	c.Redirect(http.StatusFound, "/dashboard")
}

// Logout clears the identity and, for admins, the elevated flag too.
func (h *AuthHandler) Logout(c *gin.Context) {
	session := sessions.Default(c)
	session.Delete(middleware.SessionAdminFlag)
	session.Delete(middleware.SessionUserID)
	if err := session.Save(); err != nil {
		h.Log.Errorw("logout: save session", "err", err)
		Fault(c)
		return
	}
	middleware.Flash(c, "success", "You have been logged out successfully.")
	c.Redirect(http.StatusFound, "/")
}

// Dashboard lists the caller's own postings, newest first.
func (h *AuthHandler) Dashboard(c *gin.Context) {
	user := middleware.UserFrom(c)
	jobs, err := h.Jobs.ByOwner(user.ID)
	if err != nil {
		h.Log.Errorw("dashboard", "err", err)
		Fault(c)
		return
	}
	Render(c, http.StatusOK, "dashboard.html", gin.H{"Jobs": jobs})
}

// AdminSetupForm is reachable only until the first admin exists.
func (h *AuthHandler) AdminSetupForm(c *gin.Context) {
	hasAdmin, err := h.Users.HasAdmin()
	if err != nil {
		h.Log.Errorw("admin setup", "err", err)
		Fault(c)
		return
	}
	if hasAdmin {
		c.Redirect(http.StatusFound, "/")
		return
	}
	Render(c, http.StatusOK, "admin_setup.html", nil)
}

func (h *AuthHandler) AdminSetup(c *gin.Context) {
	hasAdmin, err := h.Users.HasAdmin()
	if err != nil {
		h.Log.Errorw("admin setup", "err", err)
		Fault(c)
		return
	}
	if hasAdmin {
		c.Redirect(http.StatusFound, "/")
		return
	}

	var form dtos.RegisterForm
	if err := c.ShouldBind(&form); err != nil {
		Render(c, http.StatusOK, "admin_setup.html", gin.H{"Form": form, "Errors": dtos.FieldErrors(err)})
		return
	}

	_, err = h.Users.RegisterAdmin(&form)
	switch {
	case errors.Is(err, services.ErrUsernameTaken):
		Render(c, http.StatusOK, "admin_setup.html", gin.H{"Form": form, "Errors": gin.H{
			"Username": "That username already exists. Please choose a different one.",
		}})
	case errors.Is(err, services.ErrEmailTaken):
		Render(c, http.StatusOK, "admin_setup.html", gin.H{"Form": form, "Errors": gin.H{
			"Email": "That email is already registered. Please use a different one.",
		}})
	case errors.Is(err, services.ErrForbidden):
		// Someone else finished setup between the check and the write.
		c.Redirect(http.StatusFound, "/")
	case err != nil:
		h.Log.Errorw("admin setup", "err", err)
		Fault(c)
	default:
		middleware.Flash(c, "success", "Admin user created successfully! Please log in.")
		c.Redirect(http.StatusFound, "/login")
	}
}

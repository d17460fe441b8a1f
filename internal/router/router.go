package router

import (
	"fmt"
	"html/template"
	"path/filepath"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/sessions"
	gormsessions "github.com/gin-contrib/sessions/gorm"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/openjobs/openjobs/internal/config"
	"github.com/openjobs/openjobs/internal/handlers"
	"github.com/openjobs/openjobs/internal/middleware"
	"github.com/openjobs/openjobs/internal/services"
)

// Setup wires services, handlers and middleware into a ready engine.
func Setup(cfg *config.Config, db *gorm.DB, log *zap.SugaredLogger) (*gin.Engine, error) {
	users := services.NewUserService(db)
	jobs := services.NewJobService(db)
	admin := services.NewAdminService(db)

	authHandler := handlers.NewAuthHandler(users, jobs, log)
	jobHandler := handlers.NewJobHandler(jobs, log)
	adminHandler := handlers.NewAdminHandler(users, jobs, admin, log, cfg.AdminSessionLifetime)

	engine := gin.New()
	engine.Use(middleware.RequestLogger(log))
	engine.Use(gin.CustomRecovery(func(c *gin.Context, recovered any) {
		log.Errorw("panic recovered", "err", recovered)
		handlers.Fault(c)
	}))

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowAllOrigins = true
	corsConfig.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", "Authorization"}
	engine.Use(cors.New(corsConfig))

	// Server-side sessions in the store itself; the cookie only
	// carries the signed session id.
	store := gormsessions.NewStore(db, true, []byte(cfg.SecretKey))
	engine.Use(sessions.Sessions("openjobs_session", store))

	rate, capacity, err := config.ParseRate(cfg.RateLimit)
	if err != nil {
		return nil, fmt.Errorf("router: %w", err)
	}
	engine.Use(middleware.RateLimit(rate, capacity))
	engine.Use(middleware.CurrentUser(users))

	if err := loadTemplates(engine, cfg.TemplatesDir); err != nil {
		return nil, fmt.Errorf("router: %w", err)
	}
	engine.NoRoute(handlers.NotFound)

	// Public pages.
	engine.GET("/", authHandler.Index)
	engine.POST("/", authHandler.Index)
	engine.GET("/register", authHandler.RegisterForm)
	engine.POST("/register", authHandler.Register)
	engine.GET("/login", authHandler.LoginForm)
	engine.POST("/login", authHandler.Login)
	engine.GET("/admin-setup", authHandler.AdminSetupForm)
	engine.POST("/admin-setup", authHandler.AdminSetup)
	engine.GET("/health", handlers.HealthCheck)

	// Pages behind a normal login.
	engine.GET("/logout", middleware.LoginRequired(), authHandler.Logout)
	engine.POST("/logout", middleware.LoginRequired(), authHandler.Logout)
	engine.GET("/dashboard", middleware.LoginRequired(), authHandler.Dashboard)

	// Job board.
	jobRoutes := engine.Group("/jobs")
	{
		jobRoutes.GET("", jobHandler.Board)
		jobRoutes.GET("/search", jobHandler.Search)
		jobRoutes.GET("/create", middleware.LoginRequired(), jobHandler.CreateForm)
		jobRoutes.POST("/create", middleware.LoginRequired(), jobHandler.Create)
		jobRoutes.GET("/:id", jobHandler.View)
		jobRoutes.GET("/:id/edit", middleware.LoginRequired(), jobHandler.EditForm)
		jobRoutes.POST("/:id/edit", middleware.LoginRequired(), jobHandler.Edit)
		jobRoutes.POST("/:id/delete", middleware.LoginRequired(), jobHandler.Delete)
	}

	// Admin panel. Login/logout are open; everything else needs the
	// full admin check.
	adminRoutes := engine.Group("/admin")
	{
		adminRoutes.GET("/login", adminHandler.LoginForm)
		adminRoutes.POST("/login", adminHandler.Login)
		adminRoutes.GET("/logout", adminHandler.Logout)

		protected := adminRoutes.Group("", middleware.AdminRequired())
		protected.GET("/", adminHandler.Dashboard)
		protected.GET("/users", adminHandler.ManageUsers)
		protected.GET("/jobs", adminHandler.ManageJobs)
		protected.POST("/users/:id/toggle-status", adminHandler.ToggleUserStatus)
		protected.POST("/jobs/:id/toggle-status", adminHandler.ToggleJobStatus)
	}

	return engine, nil
}

// loadTemplates parses the page templates from the root of the
// template dir and one level of subdirectories (jobs/, admin/,
// errors/). Every file defines its own template name.
func loadTemplates(engine *gin.Engine, dir string) error {
	tmpl, err := template.ParseGlob(filepath.Join(dir, "*.html"))
	if err != nil {
		return err
	}
	tmpl, err = tmpl.ParseGlob(filepath.Join(dir, "*", "*.html"))
	if err != nil {
		return err
	}
	engine.SetHTMLTemplate(tmpl)
	return nil
}

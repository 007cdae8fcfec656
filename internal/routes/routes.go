package routes

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jonboulle/clockwork"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/rebounder/signage_backend/internal/config"
	"github.com/rebounder/signage_backend/internal/controllers"
	"github.com/rebounder/signage_backend/internal/display"
	"github.com/rebounder/signage_backend/internal/heartbeat"
	"github.com/rebounder/signage_backend/internal/middleware"
	"github.com/rebounder/signage_backend/internal/models"
	"github.com/rebounder/signage_backend/internal/weather"
	"github.com/rebounder/signage_backend/internal/ws"
)

func Register(r *gin.Engine, db *gorm.DB, cfg *config.Config, registry *ws.Registry, log *zap.Logger) {
	expiresIn, err := time.ParseDuration(cfg.JWTExpiresIn + "m")
	if err != nil || expiresIn == 0 {
		expiresIn = 60 * time.Minute
	}

	resolver := display.NewResolver(
		cfg.HostURL,
		weather.NewClient(cfg.WeatherAPIURL),
		cfg.WeatherLat, cfg.WeatherLon,
		log,
	)

	displayCtrl := &controllers.DisplayController{DB: db, Resolver: resolver, Log: log}
	authCtrl := &controllers.AuthController{DB: db, JWTSecret: cfg.JWTSecret, ExpiresIn: expiresIn}
	schoolCtrl := &controllers.SchoolController{DB: db, Registry: registry}
	contentCtrl := &controllers.ContentController{DB: db, Registry: registry, Log: log}
	adCtrl := &controllers.AdController{DB: db, Registry: registry}
	tokenCtrl := &controllers.TokenController{DB: db}
	statusCtrl := &controllers.StatusController{DB: db, Tracker: heartbeat.NewTracker(clockwork.NewRealClock())}

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Display devices
	r.GET("/v1/display/config", displayCtrl.GetConfig)
	r.GET("/ws/:school_id", ws.DisplayHandler(registry, log))

	// Advertiser portal (invitation-token gated, no account)
	r.POST("/v1/portal/ads", adCtrl.Submit)

	r.POST("/api/v1/auth/login", authCtrl.Login)

	authMW := middleware.AuthMiddleware(db, middleware.AuthConfig{JWTSecret: cfg.JWTSecret})
	api := r.Group("/api/v1", authMW)
	{
		api.GET("/auth/me", authCtrl.Me)

		api.GET("/dashboard/schools", middleware.RequireRoles(models.RoleSchoolAdmin), statusCtrl.Dashboard)

		// Content editing: school admins for their own site, super admin anywhere.
		content := api.Group("", middleware.RequireRoles(models.RoleSchoolAdmin))
		{
			content.PUT("/slots/:slot_id/content", contentCtrl.UpdateContent)
		}

		admin := api.Group("/admin", middleware.RequireRoles(models.RoleSuperAdmin))
		{
			admin.POST("/users", authCtrl.CreateUser)

			admin.GET("/schools", schoolCtrl.ListSchools)
			admin.POST("/schools", schoolCtrl.CreateSchool)
			admin.GET("/schools/:id", schoolCtrl.GetSchool)
			admin.PUT("/schools/:id", schoolCtrl.UpdateSchool)
			admin.DELETE("/schools/:id", schoolCtrl.DeleteSchool)

			admin.GET("/ads", adCtrl.ListAds)
			admin.POST("/ads/:id/status", adCtrl.UpdateStatus)
			admin.DELETE("/ads/:id", adCtrl.DeleteAd)

			admin.POST("/tokens", tokenCtrl.Generate)
			admin.GET("/tokens", tokenCtrl.List)
		}
	}
}

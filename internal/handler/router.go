package handler

import (
	"net/http"

	"github.com/gin-contrib/gzip"
	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	"github.com/noah-isme/classroom-portal/internal/middleware"
	"github.com/noah-isme/classroom-portal/internal/service"
	"github.com/noah-isme/classroom-portal/pkg/config"
	"github.com/noah-isme/classroom-portal/pkg/logger"
	corsmiddleware "github.com/noah-isme/classroom-portal/pkg/middleware/cors"
	reqidmiddleware "github.com/noah-isme/classroom-portal/pkg/middleware/requestid"
	"github.com/noah-isme/classroom-portal/pkg/response"
)

// RouterDeps carries everything the HTTP surface needs.
type RouterDeps struct {
	Config       *config.Config
	Logger       *zap.Logger
	SessionStore sessions.Store
	Metrics      *service.MetricsService

	Auth     *AuthHandler
	Students *StudentHandler
	Gallery  *GalleryHandler
	Slides   *SlideHandler
	Ops      *MetricsHandler
}

// NewRouter builds the gin engine with middleware and routes registered.
func NewRouter(deps RouterDeps) *gin.Engine {
	cfg := deps.Config
	logr := deps.Logger
	if logr == nil {
		logr = zap.NewNop()
	}

	r := gin.New()
	r.MaxMultipartMemory = 8 << 20
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	if cfg.Metrics.Enabled {
		r.Use(middleware.Metrics(deps.Metrics))
	}
	r.Use(gzip.Gzip(
		gzip.DefaultCompression,
		gzip.WithExcludedPaths([]string{cfg.Uploads.PublicPath}),
	))

	r.GET("/health", deps.Ops.Health)
	r.GET("/ready", deps.Ops.Ready)
	if cfg.Metrics.Enabled {
		r.GET("/metrics", deps.Ops.Prometheus)
	}
	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	r.Static(cfg.Uploads.PublicPath, cfg.Uploads.Dir)

	api := r.Group("/api")
	api.Use(sessions.Sessions(cfg.Session.Name, deps.SessionStore))
	api.Use(middleware.Principal())
	admin := middleware.RequireAdmin()

	auth := api.Group("/auth")
	{
		auth.POST("/login", deps.Auth.Login)
		auth.POST("/logout", deps.Auth.Logout)
		auth.GET("/status", deps.Auth.Status)
	}

	students := api.Group("/students")
	{
		students.GET("", deps.Students.List)
		students.GET("/export", deps.Students.Export)
		students.GET("/seat/:seatNumber", deps.Students.GetBySeat)
		students.GET("/:id", deps.Students.Get)
		students.POST("", admin, deps.Students.Create)
		students.PUT("/:id", admin, deps.Students.Update)
		students.DELETE("/:id", admin, deps.Students.Delete)
	}

	gallery := api.Group("/gallery")
	{
		gallery.GET("", deps.Gallery.List)
		gallery.POST("", admin, deps.Gallery.Create)
		gallery.POST("/upload", admin, deps.Gallery.Upload)
		gallery.DELETE("/:id", admin, deps.Gallery.Delete)
	}

	slides := api.Group("/slides")
	{
		slides.GET("", deps.Slides.List)
		slides.GET("/:id", deps.Slides.Get)
		slides.POST("", admin, deps.Slides.Create)
		slides.PUT("/:id", admin, deps.Slides.Update)
		slides.DELETE("/:id", admin, deps.Slides.Delete)
	}

	r.NoRoute(func(c *gin.Context) {
		response.JSON(c, http.StatusNotFound, response.ErrorBody{Message: "Not found"})
	})

	return r
}

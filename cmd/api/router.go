package main

import (
	"net/http"

	"merchant-directory-backend/internal/shared/middleware"
	"merchant-directory-backend/pkg/container"

	"github.com/gin-gonic/gin"
)

func SetupRouter(c *container.Container) *gin.Engine {
	router := gin.New()

	// Global middlewares
	router.Use(
		middleware.Recovery(),
		middleware.RequestID(),
		middleware.Logger(),
		middleware.CORS(),
	)

	// Crawler surfaces live at the root, outside the API prefix
	router.GET("/sitemap.xml", c.MerchantHandler.Sitemap)
	router.GET("/robots.txt", c.MerchantHandler.Robots)

	v1 := router.Group("/api/v1")
	{
		v1.GET("/health", healthCheckHandler(c))

		setupPublicRoutes(v1, c)
		setupUserRoutes(v1, c)
		setupAdminRoutes(v1, c)
	}

	return router
}

// ========================================
// PUBLIC ROUTES
// ========================================
func setupPublicRoutes(v1 *gin.RouterGroup, c *container.Container) {
	public := v1.Group("/public")
	{
		public.GET("/merchants", c.MerchantHandler.ListMerchants)
		public.GET("/merchants/:slug", c.MerchantHandler.GetMerchant)
	}
}

// ========================================
// USER ROUTES
// ========================================
func setupUserRoutes(v1 *gin.RouterGroup, c *container.Container) {
	users := v1.Group("/users")
	users.Use(middleware.AuthMiddleware(c.JWTManager))
	{
		users.GET("/me/type", c.UserHandler.GetUserType)
		users.PUT("/me/type", c.UserHandler.UpdateUserType)
		users.PUT("/me/profile", c.UserHandler.UpdateProfile)
	}
}

// ========================================
// ADMIN ROUTES
// ========================================
func setupAdminRoutes(v1 *gin.RouterGroup, c *container.Container) {
	admin := v1.Group("/admin")
	admin.Use(
		middleware.AuthMiddleware(c.JWTManager),
		middleware.AdminMiddleware(c.UserRepo),
	)
	{
		admin.POST("/batch-upload", c.BatchUploadHandler.ImportManifest)
	}
}

// healthCheckHandler reports the state of every backing service.
func healthCheckHandler(c *container.Container) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		checks := gin.H{
			"database": "ok",
			"cache":    "ok",
			"storage":  "ok",
		}
		healthy := true

		if err := c.DB.HealthCheck(ctx.Request.Context()); err != nil {
			checks["database"] = err.Error()
			healthy = false
		}
		if err := c.Cache.Ping(ctx.Request.Context()); err != nil {
			// Cache is optional; report but stay healthy
			checks["cache"] = err.Error()
		}
		if err := c.Storage.HealthCheck(ctx.Request.Context()); err != nil {
			checks["storage"] = err.Error()
			healthy = false
		}

		status := http.StatusOK
		overall := "ok"
		if !healthy {
			status = http.StatusServiceUnavailable
			overall = "degraded"
		}

		ctx.JSON(status, gin.H{
			"status":  overall,
			"version": c.Config.App.Version,
			"checks":  checks,
		})
	}
}

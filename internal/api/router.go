// Package api wires the HTTP routes for the audit service.
package api

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/jonesrussell/seo-audit/internal/handlers"
	"github.com/jonesrussell/seo-audit/internal/logger"
)

const (
	corsMaxAgeHours = 12
)

func NewRouter(auditHandler *handlers.AuditHandler, slidesHandler *handlers.SlidesHandler, corsOrigins []string, log logger.Logger) *gin.Engine {
	router := gin.New()

	// CORS middleware - must be first
	router.Use(cors.New(cors.Config{
		AllowOrigins: corsOrigins,
		AllowMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS", "PATCH"},
		AllowHeaders: []string{
			"Origin", "Content-Type", "Content-Length", "Accept-Encoding",
			"X-CSRF-Token", "Authorization", "accept", "origin",
			"Cache-Control", "X-Requested-With",
		},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           corsMaxAgeHours * time.Hour,
	}))

	// Middleware
	router.Use(ginLogger(log))
	router.Use(gin.Recovery())

	// Health check
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// API v1
	v1 := router.Group("/api/v1")

	audits := v1.Group("/audits")
	audits.POST("", auditHandler.Create)
	audits.GET("", auditHandler.List)
	audits.GET("/status/:taskID", auditHandler.Status)
	audits.POST("/results/:taskID", auditHandler.FetchResults)
	audits.GET("/:id", auditHandler.GetByID)
	audits.DELETE("/:id", auditHandler.Delete)
	audits.POST("/:id/pagespeed", auditHandler.RunPageSpeed)
	audits.POST("/:id/readability", auditHandler.RunReadability)

	v1.POST("/slides", slidesHandler.Generate)

	return router
}

func ginLogger(log logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		method := c.Request.Method

		c.Next()

		duration := time.Since(start)
		statusCode := c.Writer.Status()

		log.Info("HTTP request",
			logger.String("method", method),
			logger.String("path", path),
			logger.Int("status_code", statusCode),
			logger.String("client_ip", c.ClientIP()),
			logger.Duration("duration", duration),
		)
	}
}

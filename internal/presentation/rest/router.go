package rest

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Dependencies carries the wired handlers the router mounts.
type Dependencies struct {
	Handler *Handler
	Health  *HealthHandler
}

// NewRouter builds the HTTP routing table.
func NewRouter(logger *slog.Logger, deps Dependencies) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(requestLogger(logger))

	r.GET("/healthz", deps.Health.Liveness)
	r.GET("/readyz", deps.Health.Readiness)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	r.POST("/register", deps.Handler.Register)
	r.POST("/check-eligibility", deps.Handler.CheckEligibility)
	r.POST("/create-loan", deps.Handler.CreateLoan)
	r.GET("/view-loan/:loan_id", deps.Handler.ViewLoan)
	r.GET("/view-loans/:customer_id", deps.Handler.ViewLoans)

	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
	})

	return r
}

func requestLogger(logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		logger.InfoContext(c.Request.Context(), "http request",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"duration_ms", time.Since(start).Milliseconds(),
		)
	}
}

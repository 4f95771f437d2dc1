package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"content-backend/internal/briefs"
	"content-backend/internal/content"
	"content-backend/internal/experiments"
	"content-backend/internal/generation"
	"content-backend/internal/payments"
	"content-backend/internal/services/health"
	"content-backend/internal/shared/config"
	"content-backend/internal/shared/metrics"
	"content-backend/internal/shared/server/middleware"
	"content-backend/internal/shared/server/respond"
	"content-backend/internal/templates"
)

// RouterDeps carries the handlers the router mounts.
type RouterDeps struct {
	Config      config.Config
	Health      *health.Service
	Briefs      *briefs.Handler
	Payments    *payments.Handler
	Templates   *templates.Handler
	Content     *content.Handler
	Generation  *generation.Handler
	Experiments *experiments.Handler
}

// NewRouter constructs the Gin engine with middleware and routes registered.
func NewRouter(deps RouterDeps) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()

	r.Use(
		middleware.RequestID(),
		middleware.Logging(),
		middleware.Recovery(),
		middleware.CORS(deps.Config.CORSAllowOrigin),
	)

	r.GET("/metrics", metrics.Handler())

	api := r.Group("/api/v1")
	api.Use(middleware.RateLimit(middleware.RateLimitConfig{
		DefaultGroup: "DEFAULT",
		GroupFor:     rateLimitGroup,
		Rules: map[string]middleware.RateLimitRule{
			"DEFAULT": {Rate: 2, Burst: 10},
			"POLLING": {Rate: 10, Burst: 30},
		},
	}))

	api.GET("/health", func(c *gin.Context) {
		respond.JSON(c, http.StatusOK, deps.Health.Status())
	})

	if deps.Briefs != nil {
		deps.Briefs.RegisterRoutes(api)
	}
	if deps.Payments != nil {
		deps.Payments.RegisterRoutes(api)
	}
	if deps.Content != nil {
		deps.Content.RegisterRoutes(api)
	}
	if deps.Templates != nil {
		deps.Templates.RegisterRoutes(api)
	}

	admin := api.Group("/admin")
	admin.Use(middleware.AdminAuth(deps.Config.AdminAPIToken, deps.Config.Env))
	if deps.Briefs != nil {
		deps.Briefs.RegisterAdminRoutes(admin)
	}
	if deps.Content != nil {
		deps.Content.RegisterAdminRoutes(admin)
	}
	if deps.Templates != nil {
		deps.Templates.RegisterAdminRoutes(admin)
	}
	if deps.Generation != nil {
		deps.Generation.RegisterAdminRoutes(admin)
	}
	if deps.Experiments != nil {
		deps.Experiments.RegisterAdminRoutes(admin)
	}

	return r
}

// rateLimitGroup gives status polling a higher allowance than submissions.
func rateLimitGroup(c *gin.Context) string {
	if c.Request.Method == http.MethodGet {
		switch c.FullPath() {
		case "/api/v1/briefs/:id", "/api/v1/briefs/:id/content", "/api/v1/content/:id":
			return "POLLING"
		}
	}
	return "DEFAULT"
}

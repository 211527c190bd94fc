// Package httpapi wires the HTTP transport (Gin) to application services,
// middleware, and route handlers. It centralizes cross-cutting concerns such
// as tracing, correlation IDs, logging/redaction, panic recovery, metrics,
// compression, CORS, security headers, idempotency, and rate limiting.
//
// The integration trigger is built here and handed to the task and comment
// services, so every committed write reaches the notification layer.
package httpapi

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"gorm.io/gorm"

	_ "github.com/tbourn/go-pm-backend/docs"
	"github.com/tbourn/go-pm-backend/internal/config"
	"github.com/tbourn/go-pm-backend/internal/http/handlers"
	"github.com/tbourn/go-pm-backend/internal/http/middleware"
	"github.com/tbourn/go-pm-backend/internal/integrations"
	"github.com/tbourn/go-pm-backend/internal/services"
)

// RegisterRoutes attaches all middleware and HTTP endpoints to the given Gin
// engine, then mounts the public API and the admin surface under
// cfg.APIBasePath.
//
// Middleware order matters:
//  1. OpenTelemetry: trace everything
//  2. RequestID: generate/propagate correlation id
//  3. RedactingLogger: structured logs with PII scrubbing
//  4. Recovery: capture panics after logger
//  5. Body size limiter
//  6. gzip (when enabled)
//  7. Metrics
//  8. Idempotency validator (before rate limiter to allow bypass on replay)
//  9. Rate limiter (per user/IP, bypass on replay)
//  10. CORS and Security headers
func RegisterRoutes(r *gin.Engine, db *gorm.DB, cfg config.Config) {
	r.HandleMethodNotAllowed = true

	// 1) Trace all HTTP requests
	r.Use(otelgin.Middleware(cfg.OTEL.ServiceName))

	// 2) Correlate requests and logs
	r.Use(middleware.RequestID())

	// 3) Structured logging with redaction
	r.Use(middleware.RedactingLogger(middleware.RedactOptions{
		MaskHeaders: []string{"X-API-Key"},
	}))

	// 4) Panic recovery to JSON 500 (with request id)
	r.Use(middleware.Recovery())

	// 5) Global body size limit (1 MiB)
	r.Use(limitBody(1 << 20))

	// 6) Response compression; Prometheus scrapers negotiate their own
	if cfg.GzipEnabled {
		r.Use(gzip.Gzip(gzip.DefaultCompression, gzip.WithExcludedPaths([]string{"/metrics"})))
	}

	// 7) Prometheus metrics and /metrics endpoint
	r.Use(middleware.Metrics())
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// 8) Idempotency validation (before rate limiting)
	idem := handlers.DBIdempotency{DB: db, TTL: cfg.IdempotencyTTL}
	r.Use(middleware.IdempotencyValidator(middleware.IdempotencyOptions{MaxLen: 200}, idem.Exists))

	// 9) Token-bucket rate limiter per user/IP
	rl := middleware.NewRateLimiter(cfg.RateRPS, cfg.RateBurst, middleware.KeyByUserOrIP())
	r.Use(rl.Handler())

	// 10) CORS posture (allow all if none configured)
	allowHeaders := []string{
		"Origin", "Content-Type", "Accept", "Authorization", "If-None-Match",
		middleware.HeaderUserID, middleware.HeaderIdempotencyKey,
	}
	exposeHeaders := []string{"X-Request-ID", "Content-Length", "ETag", middleware.HeaderIdempotencyReplayed}
	methods := []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	if len(cfg.CORS.AllowedOrigins) == 0 {
		r.Use(func(c *gin.Context) {
			c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
			c.Next()
		})
		r.Use(cors.New(cors.Config{
			AllowAllOrigins:  true,
			AllowMethods:     methods,
			AllowHeaders:     allowHeaders,
			ExposeHeaders:    exposeHeaders,
			AllowCredentials: false,
			MaxAge:           12 * time.Hour,
		}))
	} else {
		allowed := make(map[string]struct{}, len(cfg.CORS.AllowedOrigins))
		for _, o := range cfg.CORS.AllowedOrigins {
			allowed[o] = struct{}{}
		}
		r.Use(func(c *gin.Context) {
			if origin := c.GetHeader("Origin"); origin != "" {
				if _, ok := allowed[origin]; ok {
					h := c.Writer.Header()
					h.Set("Access-Control-Allow-Origin", origin)
					h.Add("Vary", "Origin")
				}
			}
			c.Next()
		})
		r.Use(cors.New(cors.Config{
			AllowOrigins:     cfg.CORS.AllowedOrigins,
			AllowMethods:     methods,
			AllowHeaders:     allowHeaders,
			ExposeHeaders:    exposeHeaders,
			AllowCredentials: false,
			MaxAge:           12 * time.Hour,
		}))
	}

	// Security headers (HSTS only when enabled and request is HTTPS)
	r.Use(middleware.SecurityHeaders(middleware.SecurityOptions{
		EnableHSTS:   cfg.Security.EnableHSTS,
		HSTSMaxAge:   cfg.Security.HSTSMaxAge,
		NoStore:      false,
		EnablePolicy: true,
	}))

	// Fallbacks
	r.NoRoute(func(c *gin.Context) {
		handlers.Fail(c, http.StatusNotFound, handlers.ErrCodeNotFound, "route not found")
	})
	r.NoMethod(func(c *gin.Context) {
		handlers.Fail(c, http.StatusMethodNotAllowed, handlers.ErrCodeMethodNotAllowed, "method not allowed")
	})

	// Liveness/health
	r.GET("/health", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"status": "ok"}) })

	if cfg.SwaggerEnabled {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	h := handlers.New(NewServices(db, cfg))

	api := groupWithPrefix(r, cfg.APIBasePath)
	{
		api.POST("/organizations", h.CreateOrganization)
		api.GET("/organizations/:id", h.GetOrganization)
		api.POST("/organizations/:id/projects", h.CreateProject)
		api.GET("/projects/:id", h.GetProject)

		api.POST("/projects/:id/tasks", h.CreateTask)
		api.GET("/tasks/:id", h.GetTask)
		api.PATCH("/tasks/:id", h.UpdateTask)
		api.POST("/tasks/:id/comments", h.AddComment)
		api.GET("/tasks/:id/comments", h.ListComments)
	}

	admin := api.Group("/admin", middleware.PrivateNoCache())
	{
		admin.GET("/integration-logs", h.ListIntegrationLogs)
		admin.DELETE("/integration-logs", h.PurgeIntegrationLogs)
		admin.POST("/integration-logs/bulk-status", h.BulkUpdateLogStatus)
		admin.GET("/integration-logs/:id", h.GetIntegrationLog)
		admin.POST("/integration-logs/:id/mark-success", h.MarkLogSuccess)
		admin.POST("/integration-logs/:id/mark-failed", h.MarkLogFailed)

		admin.GET("/integration-settings", h.ListSettings)
		admin.GET("/integration-settings/:name", h.GetSettings)
		admin.PATCH("/integration-settings/:name", h.UpdateSettings)

		admin.POST("/integrations/selftest", h.SelfTest)
		admin.POST("/integrations/overdue-reminders", h.SendOverdueReminders)
		admin.POST("/organizations/:id/digest", h.PostDailyDigest)
		admin.POST("/projects/:id/updates", h.PostProjectUpdate)
	}
}

// NewServices builds the application services over db. The trigger reads
// integration settings from the same database on every event.
func NewServices(db *gorm.DB, cfg config.Config) handlers.Services {
	trigger := integrations.NewTrigger(db, integrations.DBSettings{DB: db})
	return handlers.Services{
		Organizations: services.NewOrganizationService(db),
		Projects:      services.NewProjectService(db),
		Tasks:         services.NewTaskService(db, trigger),
		Comments:      services.NewCommentService(db, trigger),
		Logs:          services.NewIntegrationLogService(db, cfg.RetentionDays()),
		Settings:      services.NewSettingsService(db),
		Integrations:  services.NewIntegrationService(db, trigger),
		Idempotency:   handlers.DBIdempotency{DB: db, TTL: cfg.IdempotencyTTL},
	}
}

// limitBody returns a Gin middleware that caps the request body size for all
// endpoints to maxBytes using http.MaxBytesReader.
func limitBody(maxBytes int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
		c.Next()
	}
}

// groupWithPrefix mounts a group at prefix, treating "/" (or empty) as root.
func groupWithPrefix(r *gin.Engine, prefix string) *gin.RouterGroup {
	if prefix == "" || prefix == "/" {
		return r.Group("")
	}
	return r.Group(prefix)
}

// Package httpapi wires the HTTP transport (Gin) to application services,
// middleware, and route handlers. It centralizes cross-cutting concerns such
// as tracing, correlation IDs, logging/redaction, panic recovery, metrics,
// authentication, idempotency, and rate limiting.
//
// Design goals:
//   - Put observability first (OTel + Prometheus)
//   - Safe-by-default middleware ordering (RequestID → logging → recovery)
//   - Deterministic, minimal router setup; all dependencies injected
//   - Production-ready CORS and security header posture
package httpapi

import (
	"context"
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

	"github.com/tbourn/go-qna-backend/internal/auth"
	"github.com/tbourn/go-qna-backend/internal/config"
	"github.com/tbourn/go-qna-backend/internal/http/handlers"
	"github.com/tbourn/go-qna-backend/internal/http/middleware"
	"github.com/tbourn/go-qna-backend/internal/repo"
	"github.com/tbourn/go-qna-backend/internal/search"
	"github.com/tbourn/go-qna-backend/internal/services"
)

// Deps bundles the externally constructed dependencies injected into the
// router. Pusher may be nil (no real-time delivery).
type Deps struct {
	DB     *gorm.DB
	Index  search.Index
	Tokens *auth.Manager
	Pusher services.Pusher
}

// RegisterRoutes attaches all middleware and HTTP endpoints to the given Gin
// engine. It configures observability (tracing, metrics), authentication,
// idempotency and rate limiting, CORS and security headers, health and
// metrics endpoints, and then mounts the versioned public API under /api/v*.
//
// Middleware order matters:
//  1. OpenTelemetry: trace everything
//  2. RequestID: generate/propagate correlation id
//  3. RedactingLogger: structured logs with PII scrubbing
//  4. Recovery: capture panics after logger
//  5. Body size limiter
//  6. Metrics
//  7. Bearer-token auth (identity for rate keys, idempotency, handlers)
//  8. Idempotency validator (before rate limiter to allow bypass on replay)
//  9. Rate limiter (per user/IP, bypass on replay)
//  10. CORS and Security headers
func RegisterRoutes(r *gin.Engine, deps Deps, cfg config.Config) {
	r.HandleMethodNotAllowed = true

	// 1) Trace all HTTP requests
	r.Use(otelgin.Middleware(cfg.OTEL.ServiceName))

	// 2) Correlate requests and logs
	r.Use(middleware.RequestID())

	// 3) Structured logging with redaction
	r.Use(middleware.RedactingLogger(middleware.RedactOptions{
		MaskHeaders: []string{
			"X-API-Key",
		},
	}))

	// 4) Panic recovery to JSON 500 (with request id)
	r.Use(middleware.Recovery())

	// 5) Global body size limit (1 MiB)
	r.Use(limitBody(1 << 20))

	// Response compression (skip the Prometheus scrape endpoint)
	r.Use(gzip.Gzip(gzip.DefaultCompression, gzip.WithExcludedPaths([]string{"/metrics"})))

	// 6) Prometheus metrics and /metrics endpoint
	r.Use(middleware.Metrics())
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// 7) Bearer-token authentication (anonymous requests pass through)
	r.Use(middleware.Auth(deps.Tokens))

	// 8) Idempotency validation (before rate limiting)
	r.Use(middleware.IdempotencyValidator(
		middleware.IdempotencyOptions{
			MaxLen: 200,
		},
		func(ctx context.Context, userID, questionID, key string, now time.Time) (bool, error) {
			rec, err := repo.GetIdempotency(ctx, deps.DB, userID, questionID, key, now)
			if err != nil || rec == nil {
				return false, nil
			}
			return true, nil
		},
	))

	// 9) Token-bucket rate limiter per user/IP
	rl := middleware.NewRateLimiter(cfg.RateRPS, cfg.RateBurst, middleware.KeyByUserOrIP()).
		ExemptPaths("/health")
	r.Use(rl.Handler())

	// 10) CORS posture (safe defaults: allow all if none configured)
	if len(cfg.CORS.AllowedOrigins) == 0 {
		// Force ACAO: * even for requests without an Origin header (helps tests and simple health checks).
		r.Use(func(c *gin.Context) {
			c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
			c.Next()
		})
		r.Use(cors.New(cors.Config{
			AllowAllOrigins:  true,
			AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
			AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", middleware.HeaderIdempotencyKey},
			ExposeHeaders:    []string{"X-Request-ID", "Content-Length"},
			AllowCredentials: false, // must remain false with AllowAllOrigins
			MaxAge:           12 * time.Hour,
		}))
	} else {
		// Echo ACAO with the request Origin when it is in the allowlist (in addition to gin-contrib/cors).
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
			AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
			AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", middleware.HeaderIdempotencyKey},
			ExposeHeaders:    []string{"X-Request-ID", "Content-Length"},
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

	// Swagger UI (flag-gated; serves the annotation-generated spec)
	if cfg.SwaggerEnabled {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	// Dependency injection: services ← repo/db/index/broker
	repSvc := &services.ReputationService{Points: services.PointsFromConfig(cfg.Reputation)}
	notifSvc := &services.NotificationService{DB: deps.DB, Pusher: deps.Pusher}
	socialSvc := &services.SocialService{DB: deps.DB}
	userSvc := &services.UserService{
		DB:         deps.DB,
		Tokens:     deps.Tokens,
		Reputation: repSvc,
		Social:     socialSvc,
	}
	questionSvc := &services.QuestionService{
		DB:         deps.DB,
		Reputation: repSvc,
		Index:      deps.Index,
	}
	answerSvc := &services.AnswerService{
		DB:         deps.DB,
		Reputation: repSvc,
		Notifier:   notifSvc,
		IdemTTL:    cfg.IdempotencyTTL,
	}
	commentSvc := &services.CommentService{DB: deps.DB}
	tagSvc := &services.TagService{DB: deps.DB}
	voteSvc := &services.VoteService{
		DB:         deps.DB,
		Reputation: repSvc,
		Notifier:   notifSvc,
	}

	h := handlers.New(userSvc, questionSvc, answerSvc, commentSvc, tagSvc, voteSvc, notifSvc, socialSvc)

	// Public API
	apiBase := cfg.APIBasePath // e.g. "/api/v1"
	api := groupWithPrefix(r, apiBase)
	{
		// Auth
		api.POST("/auth/register", h.Register)
		api.POST("/auth/login", h.Login)

		// Questions
		api.POST("/questions", h.CreateQuestion)
		api.GET("/questions", h.ListQuestions)
		api.GET("/questions/search", h.SearchQuestions)
		api.GET("/questions/:id", h.GetQuestion)
		api.PUT("/questions/:id", h.UpdateQuestion)
		api.DELETE("/questions/:id", h.DeleteQuestion)
		api.PUT("/questions/:id/tags", h.SetQuestionTags)
		api.POST("/questions/:id/bookmark", h.ToggleBookmark)

		// Answers
		api.POST("/questions/:id/answers", h.CreateAnswer)
		api.GET("/questions/:id/answers", h.ListAnswers)
		api.POST("/questions/:id/answers/:aid/accept", h.AcceptAnswer)
		api.DELETE("/answers/:id", h.DeleteAnswer)

		// Comments
		api.POST("/questions/:id/comments", h.CommentOnQuestion)
		api.GET("/questions/:id/comments", h.ListQuestionComments)
		api.POST("/answers/:id/comments", h.CommentOnAnswer)
		api.GET("/answers/:id/comments", h.ListAnswerComments)
		api.DELETE("/comments/:id", h.DeleteComment)

		// Votes
		api.POST("/votes", h.CastVote)
		api.DELETE("/votes", h.RetractVote)

		// Tags
		api.GET("/tags", h.ListTags)
		api.POST("/tags", h.CreateTag)
		api.GET("/tags/name/:name", h.GetTag)
		api.PUT("/tags/:id", h.UpdateTag)
		api.DELETE("/tags/:id", h.DeleteTag)

		// Users and social
		api.GET("/users/:id", h.GetProfile)
		api.GET("/users/:id/reputation", h.GetReputation)
		api.POST("/users/:id/follow", h.ToggleFollow)
		api.PUT("/me/bio", h.UpdateBio)
		api.GET("/me/bookmarks", h.ListBookmarks)

		// Notifications
		api.GET("/notifications", h.ListNotifications)
		api.GET("/notifications/unread", h.UnreadNotifications)
		api.POST("/notifications/:id/read", h.ReadNotification)
		api.POST("/notifications/read-all", h.ReadAllNotifications)
	}
}

// limitBody returns a Gin middleware that caps the request body size for all
// endpoints to maxBytes using http.MaxBytesReader. Requests exceeding the cap
// will cause downstream body reads to error.
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

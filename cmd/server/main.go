// Command server runs the Q&A backend HTTP API.
//
// Startup sequence:
//  1. Load .env (best effort) and environment configuration
//  2. Configure global zerolog level and output
//  3. Initialize OpenTelemetry tracing (when enabled)
//  4. Open SQLite storage and run migrations
//  5. Connect the Redis notification broker (when enabled)
//  6. Rebuild the in-memory question search index from storage
//  7. Serve HTTP with graceful shutdown on SIGINT/SIGTERM
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/tbourn/go-qna-backend/internal/auth"
	"github.com/tbourn/go-qna-backend/internal/config"
	httpapi "github.com/tbourn/go-qna-backend/internal/http"
	"github.com/tbourn/go-qna-backend/internal/observability"
	"github.com/tbourn/go-qna-backend/internal/realtime"
	"github.com/tbourn/go-qna-backend/internal/repo"
	"github.com/tbourn/go-qna-backend/internal/search"
	"github.com/tbourn/go-qna-backend/internal/services"
	"github.com/tbourn/go-qna-backend/internal/sysutil"
)

// version is stamped at build time via -ldflags "-X main.version=...".
var version = "dev"

func main() {
	// .env is optional; real deployments configure the environment directly.
	_ = godotenv.Load()

	cfg := config.MustLoad()

	sysutil.SetLogLevel(cfg.LogLevel)
	zerolog.TimeFieldFormat = time.RFC3339
	if cfg.LogPretty {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
	}
	log.Info().Str("version", version).Str("port", cfg.Port).Msg("starting go-qna-backend")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Tracing (no-op when disabled).
	shutdownOTel, err := observability.SetupOTel(ctx, cfg.OTEL, version)
	if err != nil {
		log.Fatal().Err(err).Msg("otel setup failed")
	}
	defer func() {
		sctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdownOTel(sctx); err != nil {
			log.Warn().Err(err).Msg("otel shutdown")
		}
	}()

	// Storage.
	db, err := repo.OpenSQLite(cfg.DBPath)
	if err != nil {
		log.Fatal().Err(err).Str("db_path", cfg.DBPath).Msg("open database failed")
	}
	if err := repo.AutoMigrate(db); err != nil {
		log.Fatal().Err(err).Msg("migrations failed")
	}

	// Real-time notification broker (optional).
	var pusher services.Pusher
	if cfg.Redis.Enabled {
		rp, err := realtime.NewRedisPusher(ctx, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		if err != nil {
			log.Fatal().Err(err).Str("addr", cfg.Redis.Addr).Msg("redis connect failed")
		}
		defer rp.Close()
		pusher = rp
		log.Info().Str("addr", cfg.Redis.Addr).Msg("redis notification broker connected")
	}

	// Auth tokens.
	tokens := auth.NewManager(cfg.Auth.JWTSecret, cfg.Auth.JWTTTL, cfg.Auth.Issuer)

	// Search index, warmed from storage so it survives restarts.
	idx := search.NewQuestionIndex()
	warm := &services.QuestionService{
		DB:         db,
		Reputation: &services.ReputationService{Points: services.PointsFromConfig(cfg.Reputation)},
		Index:      idx,
	}
	if n, err := warm.ReindexAll(ctx); err != nil {
		log.Fatal().Err(err).Msg("search reindex failed")
	} else {
		log.Info().Int("questions", n).Msg("search index warmed")
	}

	// HTTP engine.
	gin.SetMode(cfg.GinMode)
	engine := gin.New()
	httpapi.RegisterRoutes(engine, httpapi.Deps{
		DB:     db,
		Index:  idx,
		Tokens: tokens,
		Pusher: pusher,
	}, cfg)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           engine,
		ReadTimeout:       cfg.ReadTimeout,
		ReadHeaderTimeout: cfg.ReadHeaderTimeout,
		WriteTimeout:      cfg.WriteTimeout,
		IdleTimeout:       cfg.IdleTimeout,
		MaxHeaderBytes:    cfg.MaxHeaderBytes,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info().Str("addr", srv.Addr).Msg("http server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		sctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		log.Info().Msg("shutting down")
		return srv.Shutdown(sctx)
	})

	if err := g.Wait(); err != nil {
		log.Fatal().Err(err).Msg("server exited")
	}
	log.Info().Msg("bye")
}

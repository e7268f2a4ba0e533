package main

import (
	"context"
	"database/sql"
	"delivery-dispatch-service/internal/adapters/cache"
	"delivery-dispatch-service/internal/adapters/csvio"
	"delivery-dispatch-service/internal/adapters/repositories"
	"delivery-dispatch-service/internal/api"
	"delivery-dispatch-service/internal/config"
	"delivery-dispatch-service/internal/platform/db"
	"delivery-dispatch-service/internal/platform/obs"
	"delivery-dispatch-service/internal/ports"
	"delivery-dispatch-service/internal/services"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/time/rate"
)

// main is the application composition root.
// It wires concrete adapters (CSV, SQL, Redis) behind ports and starts the HTTP server.
func main() {
	envErr := godotenv.Load()

	cfg := config.LoadServer()
	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = zerolog.InfoLevel
	}
	obs.SetupLogger(cfg.LogFormat, level)
	if envErr != nil {
		log.Info().Msg("No .env file found (using environment variables)")
	}

	planner, err := config.LoadPlanner(cfg.PlannerConfig)
	if err != nil {
		log.Fatal().Err(err).Msg("load planner config")
	}

	if err := os.MkdirAll(cfg.DataDir, 0o755); err != nil {
		log.Fatal().Err(err).Msg("create data dir")
	}

	conn, dialect, err := db.Connect(cfg.DatabaseURL, cfg.DBPath)
	if err != nil {
		log.Fatal().Err(err).Msg("open database")
	}
	defer conn.Close()

	if err := repositories.InitSchema(conn); err != nil {
		log.Fatal().Err(err).Msg("init schema")
	}

	source, err := jobSource(cfg, planner, conn, dialect)
	if err != nil {
		log.Fatal().Err(err).Msg("job source")
	}

	exporter := csvio.NewRouteExporter(cfg.RoutesDir)
	deps := services.Dependencies{
		Source:   source,
		Exporter: exporter,
		Plans:    repositories.NewSQLPlanRepository(conn, dialect),
	}

	// The plan cache is optional; without Redis every request replans.
	if cfg.RedisURL != "" {
		client, err := cache.DialRedis(context.Background(), cfg.RedisURL)
		if err != nil {
			log.Fatal().Err(err).Msg("connect redis")
		}
		defer client.Close()
		deps.Cache = cache.NewRedisPlanCache(client, cache.DefaultPlanTTL)
	}

	router := api.NewRouter(api.Options{
		Planner:   planner,
		Services:  deps,
		Requests:  csvio.TableFile{Path: cfg.JobsCSV},
		Routes:    csvio.TableFile{Path: exporter.Path()},
		RateLimit: rate.Limit(cfg.RateLimitRPS),
		Burst:     cfg.RateLimitBurst,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		log.Info().
			Str("addr", srv.Addr).
			Str("db", dialect.String()).
			Str("source", cfg.JobSource).
			Bool("cache", deps.Cache != nil).
			Msg("Server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("listen")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("shutdown")
	}
}

func jobSource(cfg config.Server, planner config.Planner, conn *sql.DB, dialect db.Dialect) (ports.JobSource, error) {
	switch cfg.JobSource {
	case "csv":
		return csvio.NewJobSource(cfg.JobsCSV, planner.Region), nil
	case "db":
		// Seed demo data on startup for local runs.
		if _, err := os.Stat(cfg.SeedPath); err == nil {
			if err := repositories.SeedFromJSON(conn, dialect, cfg.SeedPath); err != nil {
				return nil, err
			}
		}
		return repositories.NewSQLJobRepository(conn, dialect, planner.Region), nil
	default:
		return nil, fmt.Errorf("unknown JOB_SOURCE %q (want csv or db)", cfg.JobSource)
	}
}

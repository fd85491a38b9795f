package main

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/go-sql-driver/mysql"
	"github.com/rs/zerolog/log"

	"room_balancer/internal/adapters/advisor"
	server "room_balancer/internal/adapters/http_server"
	"room_balancer/internal/adapters/observability"
	redisad "room_balancer/internal/adapters/redis"
	"room_balancer/internal/app"
	"room_balancer/internal/domain"
	"room_balancer/internal/shared"
	mysqlrepo "room_balancer/internal/storage/mysql"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg := shared.Load()

	// set global logger (console in dev, JSON otherwise)
	log.Logger = observability.NewLogger(cfg.AppEnv, cfg.LogLevel, "balancer-api")

	prop, err := shared.LoadProperty(cfg.PropertyFile)
	if err != nil {
		log.Fatal().Err(err).Str("file", cfg.PropertyFile).Msg("load property failed")
	}
	log.Info().Str("property", prop.Name).Int("capacity", prop.Capacity).Int("room_types", len(prop.Rooms)).Msg("property loaded")

	// db
	db, err := sql.Open("mysql", cfg.MySQLDSN)
	if err != nil {
		log.Fatal().Err(err).Msg("sql.Open failed")
	}
	if err := db.PingContext(ctx); err != nil {
		log.Fatal().Err(err).Msg("db.Ping failed")
	}
	log.Info().Msg("database connection ok")

	// deps
	rc := redisad.NewClient(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
	cache := redisad.NewFromClient(rc)
	if err := cache.Ping(ctx); err != nil {
		log.Warn().Err(err).Msg("redis unreachable; runs will not be memoized")
	}
	repo := mysqlrepo.New(db)
	svc := app.NewAnalysisService(repo, cache, redisad.NewLedger(rc, cfg.LedgerTTL), prop, cfg.CacheTTL)

	// a nil remote keeps the heuristic as the only advisor
	var remote domain.Advisor
	if cfg.AdvisorKey != "" {
		c, err := advisor.New(cfg.AdvisorBase, cfg.AdvisorKey, cfg.AdvisorModel, cfg.AdvisorRPS)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to initialize advisor client")
		}
		remote = c
	}
	adv := app.NewAdvisoryService(svc, remote, advisor.NewHeuristic(svc.Property()), cfg.AdvisorTimeout)

	// http
	srv := server.New(cfg.HTTPTimeout)
	reg := observability.InitRegistry()
	srv.Mount("/metrics", observability.MetricsHandler(reg))
	observability.Serve(cfg.MetricsAddr, reg)
	srv.MountHandlers(&server.Handlers{A: svc, Adv: adv})

	log.Info().Str("addr", cfg.HTTPAddr).Dur("request_timeout", cfg.HTTPTimeout).Msg("API listening")
	httpSrv := &http.Server{Addr: cfg.HTTPAddr, Handler: srv.Mux(), ReadHeaderTimeout: 5 * time.Second}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := httpSrv.Shutdown(shutdownCtx); err != nil {
			log.Error().Err(err).Msg("http shutdown failed")
		}
	}()

	if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatal().Err(err).Msg("http server failed")
	}
	log.Info().Msg("API stopped")
}

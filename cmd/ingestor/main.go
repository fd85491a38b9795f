package main

import (
	"context"
	"database/sql"
	"os"
	"sync"
	"sync/atomic"

	_ "github.com/go-sql-driver/mysql"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/semaphore"

	"room_balancer/internal/adapters/observability"
	redisad "room_balancer/internal/adapters/redis"
	"room_balancer/internal/app"
	"room_balancer/internal/shared"
	mysqlrepo "room_balancer/internal/storage/mysql"
)

func main() {
	ctx := context.Background()
	cfg := shared.Load()

	// 1) initialize global logger (console in dev, JSON otherwise)
	log.Logger = observability.NewLogger(cfg.AppEnv, cfg.LogLevel, "balancer-ingestor")

	if cfg.IngestFile == "" {
		log.Fatal().Msg("INGEST_FILE is required")
	}
	if cfg.Workers < 1 || cfg.BatchSize < 1 {
		log.Fatal().Int("workers", cfg.Workers).Int("batch", cfg.BatchSize).Msg("INGEST_WORKERS and INGEST_BATCH must be positive")
	}
	reg := observability.InitRegistry()
	observability.Serve(cfg.MetricsAddr, reg)

	log.Info().
		Str("file", cfg.IngestFile).
		Int("workers", cfg.Workers).
		Int("batch", cfg.BatchSize).
		Msg("ingestor starting")

	f, err := os.Open(cfg.IngestFile)
	if err != nil {
		log.Fatal().Err(err).Msg("open ingest file failed")
	}
	raw, err := app.DecodeRecords(f)
	_ = f.Close()
	if err != nil {
		log.Fatal().Err(err).Msg("decode ingest file failed")
	}

	db, err := sql.Open("mysql", cfg.MySQLDSN)
	if err != nil {
		log.Fatal().Err(err).Msg("sql.Open failed")
	}
	if err := db.Ping(); err != nil {
		log.Fatal().Err(err).Msg("db.Ping failed")
	}
	log.Info().Msg("db ping ok")

	repo := mysqlrepo.New(db)
	cache := redisad.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
	ing := app.NewIngestionService(repo, cache)

	rs, rejected := ing.Normalize(ctx, raw)
	log.Info().Int("records", len(raw)).Int("valid", len(rs)).Int("rejected", rejected).Msg("records normalized")

	sem := semaphore.NewWeighted(int64(cfg.Workers))
	var wg sync.WaitGroup
	var stored, failed atomic.Int64

	for start := 0; start < len(rs); start += cfg.BatchSize {
		batch := rs[start:min(start+cfg.BatchSize, len(rs))]

		// acquire before launching the goroutine; release inside it
		if err := sem.Acquire(ctx, int64(1)); err != nil {
			log.Fatal().Err(err).Msg("semaphore acquire failed")
		}

		wg.Add(1)
		go func(offset int) {
			defer wg.Done()
			defer sem.Release(int64(1))

			if err := ing.IngestBatch(ctx, batch); err != nil {
				failed.Add(int64(len(batch)))
				log.Warn().Int("offset", offset).Int("size", len(batch)).Err(err).Msg("batch failed")
				return
			}
			stored.Add(int64(len(batch)))
			log.Info().Int("offset", offset).Int("size", len(batch)).Msg("batch ok")
		}(start)
	}

	wg.Wait()
	observability.ObserveIngest(int(stored.Load()), rejected)
	log.Info().
		Int64("stored", stored.Load()).
		Int64("failed", failed.Load()).
		Int("rejected", rejected).
		Msg("ingestion completed")
	if failed.Load() > 0 {
		os.Exit(1)
	}
}

package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	places "github.com/goliatone/go-places"
	"github.com/goliatone/go-places/internal/migrations"
	"github.com/goliatone/go-places/internal/runtimeconfig"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/dialect/sqlitedialect"

	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"
)

func main() {
	cfg := configFromEnv()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("config: %v", err)
	}

	db, err := openDatabase(cfg.Storage)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer db.Close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := migrations.Run(ctx, db); err != nil {
		log.Fatalf("migrations: %v", err)
	}

	module, err := places.New(db, cfg)
	if err != nil {
		log.Fatalf("module: %v", err)
	}
	defer module.Close()

	handler, err := module.Handler()
	if err != nil {
		log.Fatalf("handler: %v", err)
	}

	server := &http.Server{
		Addr:              cfg.ListenAddr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Printf("listening on %s", cfg.ListenAddr)
		errCh <- server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("server: %v", err)
		}
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			log.Printf("shutdown: %v", err)
		}
	}
}

func openDatabase(cfg runtimeconfig.StorageConfig) (*bun.DB, error) {
	switch strings.ToLower(strings.TrimSpace(cfg.Driver)) {
	case "sqlite":
		sqlDB, err := sql.Open("sqlite3", cfg.DSN)
		if err != nil {
			return nil, err
		}
		return bun.NewDB(sqlDB, sqlitedialect.New()), nil
	case "postgres":
		sqlDB, err := sql.Open("postgres", cfg.DSN)
		if err != nil {
			return nil, err
		}
		return bun.NewDB(sqlDB, pgdialect.New()), nil
	default:
		return nil, fmt.Errorf("unsupported driver %q", cfg.Driver)
	}
}

func configFromEnv() places.Config {
	cfg := places.DefaultConfig()

	if v := os.Getenv("PLACES_LISTEN_ADDR"); v != "" {
		cfg.ListenAddr = v
	}
	if v := os.Getenv("PLACES_DB_DRIVER"); v != "" {
		cfg.Storage.Driver = v
	}
	if v := os.Getenv("PLACES_DB_DSN"); v != "" {
		cfg.Storage.DSN = v
	}
	cfg.AdminSecret = os.Getenv("PLACES_ADMIN_SECRET")

	if v := os.Getenv("PLACES_CACHE_TTL"); v != "" {
		if ttl, err := time.ParseDuration(v); err == nil {
			cfg.Cache.TTL = ttl
		}
	}

	cfg.Translation.Endpoint = os.Getenv("PLACES_TRANSLATE_ENDPOINT")
	cfg.Translation.Token = os.Getenv("PLACES_TRANSLATE_TOKEN")
	if v := os.Getenv("PLACES_TRANSLATE_TIMEOUT"); v != "" {
		if timeout, err := time.ParseDuration(v); err == nil {
			cfg.Translation.Timeout = timeout
		}
	}

	if v := os.Getenv("PLACES_NTFY_BASE_URL"); v != "" {
		cfg.Notify.BaseURL = v
	}
	cfg.Notify.EntryTopic = os.Getenv("PLACES_NTFY_ENTRY_TOPIC")
	cfg.Notify.ContactTopic = os.Getenv("PLACES_NTFY_CONTACT_TOPIC")
	cfg.Notify.Enabled = cfg.Notify.EntryTopic != ""
	if v := os.Getenv("PLACES_NTFY_QUEUE_SIZE"); v != "" {
		if size, err := strconv.Atoi(v); err == nil && size > 0 {
			cfg.Notify.QueueSize = size
		}
	}

	if v := os.Getenv("PLACES_LOG_LEVEL"); v != "" {
		cfg.Logging.Level = v
	}
	if v := os.Getenv("PLACES_LOG_FORMAT"); v != "" {
		cfg.Logging.Format = v
	}
	if v := os.Getenv("PLACES_LOG_SOURCE"); v != "" {
		cfg.Logging.AddSource = v == "true" || v == "1"
	}

	return cfg
}

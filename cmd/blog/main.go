package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"shelfblog/internal/config"
	"shelfblog/internal/httpx"
	"shelfblog/internal/platform/postgres"
	"shelfblog/internal/platform/sqlite"
	"shelfblog/internal/post"
)

func main() {
	config.LoadDotEnv()

	cfg, err := config.LoadBlog()
	if err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg); err != nil {
		log.Fatal(err)
	}
}

func run(ctx context.Context, cfg config.Blog) error {
	src, ping, closeDB, err := openSource(ctx, cfg)
	if err != nil {
		return fmt.Errorf("cannot open post source: %w", err)
	}
	defer closeDB()

	reader, err := post.Load(ctx, src)
	if err != nil {
		return fmt.Errorf("startup failed: %w", err)
	}

	postHandler := post.NewHTTPHandler(reader, cfg.Title)

	router := http.NewServeMux()
	router.HandleFunc("GET /healthz", httpx.Healthz)
	router.HandleFunc("GET /readyz", httpx.Readyz(ping))
	postHandler.Register(router)
	router.Handle("GET /assets/", http.StripPrefix("/assets/", http.FileServer(http.Dir(cfg.AssetsDir))))

	handler := httpx.Chain(router,
		httpx.RequestIDMiddleware,
		httpx.AccessLogMiddleware,
		httpx.RecoveryMiddleware,
		httpx.SecurityHeadersMiddleware(cfg.EnableHSTS),
	)

	httpServer := &http.Server{
		Addr:         cfg.Addr,
		Handler:      handler,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	log.Printf("Starting server on %s posts=%d driver=%s", cfg.Addr, reader.Len(), cfg.DBDriver)
	if err := httpx.Serve(ctx, httpServer, 10*time.Second); err != nil {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}

// openSource connects to the configured database and returns the post
// source, a readiness check and a closer.
func openSource(ctx context.Context, cfg config.Blog) (post.Source, func(context.Context) error, func(), error) {
	switch cfg.DBDriver {
	case config.DriverSQLite:
		db, err := sqlite.Open(cfg.DBDSN)
		if err != nil {
			return nil, nil, nil, err
		}
		src := post.NewSQLSource(db, cfg.DBTimeout)
		if err := src.EnsureSchema(ctx); err != nil {
			db.Close()
			return nil, nil, nil, err
		}
		log.Printf("database connection OK driver=sqlite path=%s", cfg.DBDSN)
		return src, db.PingContext, func() { _ = db.Close() }, nil
	case config.DriverPostgres:
		pool, err := postgres.Open(ctx, cfg.DBDSN, 2*time.Second)
		if err != nil {
			return nil, nil, nil, err
		}
		log.Printf("database connection OK driver=postgres dsn=%s", postgres.RedactDSN(cfg.DBDSN))
		return post.NewPostgresSource(pool, cfg.DBTimeout), pool.Ping, pool.Close, nil
	default:
		return nil, nil, nil, fmt.Errorf("unsupported driver %q", cfg.DBDriver)
	}
}

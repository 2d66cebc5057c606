package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"shelfblog/internal/book"
	"shelfblog/internal/config"
	"shelfblog/internal/demo"
	"shelfblog/internal/httpx"
)

func main() {
	config.LoadDotEnv()

	cfg, err := config.LoadAPI()
	if err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	bookStore := book.NewStore(book.DefaultBooks()...)
	router := newRouter(bookStore)

	rateLimiter := httpx.NewRateLimitMiddleware(ctx, cfg.RateLimitRPS, cfg.RateLimitBurst)
	handler := httpx.Chain(router,
		httpx.RequestIDMiddleware,
		httpx.AccessLogMiddleware,
		httpx.RecoveryMiddleware,
		httpx.SecurityHeadersMiddleware(cfg.EnableHSTS),
		httpx.CORSMiddleware(cfg.AllowedOrigins),
		rateLimiter.Middleware,
		httpx.RequestSizeLimitMiddleware(cfg.MaxBodyBytes),
	)

	httpServer := &http.Server{
		Addr:         cfg.Addr,
		Handler:      handler,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	log.Printf("Starting server on %s books=%d", cfg.Addr, len(bookStore.List()))
	if err := httpx.Serve(ctx, httpServer, 10*time.Second); err != nil {
		log.Fatalf("server error: %v", err)
	}
}

// newRouter mounts the catalog, the demo routes and the fallback on one mux.
func newRouter(repo book.Repository) *http.ServeMux {
	router := http.NewServeMux()
	router.HandleFunc("GET /healthz", httpx.Healthz)
	book.NewHTTPHandler(repo).Register(router)
	demo.Register(router)
	return router
}

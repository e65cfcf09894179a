/*
main.go - Application entry point

PURPOSE:
  Initializes and starts the calculation engine server. Handles
  configuration, dependency injection, and graceful shutdown.

STARTUP SEQUENCE:
  1. Parse command-line flags
  2. Initialize structured logging (zap)
  3. Load rate tables (defaults, optionally overlaid from YAML)
  4. Connect the result cache (Redis, or in-memory fallback)
  5. Create API handler with dependencies
  6. Start server with graceful shutdown

COMMAND-LINE FLAGS:
  -port        HTTP server port (default: 8080)
  -rates       YAML rates override file (default: none, built-in tables)
  -redis       Redis address for the result cache (default: none,
               in-memory cache)
  -cache-ttl   Result cache TTL (default: 12h)
  -rate-limit  Requests per client per minute on calculate routes
               (default: 120; 0 disables)

GRACEFUL SHUTDOWN:
  On SIGINT/SIGTERM:
  1. Stop accepting new connections
  2. Wait for active requests to complete (30s timeout)
  3. Close the Redis client
  4. Exit

EXAMPLES:
  # Run with built-in rate tables and in-memory cache
  ./server

  # Run with a rates override and Redis
  ./server -rates=./rates-fy2025.yaml -redis=localhost:6379

SEE ALSO:
  - api/server.go: Router configuration
  - api/handlers.go: HTTP handlers
  - rates/load.go: Rates file loading
*/
package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/paisa/calc-engine/api"
	"github.com/paisa/calc-engine/cache"
	"github.com/paisa/calc-engine/rates"
)

func main() {
	// Flags
	port := flag.Int("port", 8080, "HTTP server port")
	ratesPath := flag.String("rates", "", "YAML rates override file")
	redisAddr := flag.String("redis", "", "Redis address for the result cache")
	cacheTTL := flag.Duration("cache-ttl", 12*time.Hour, "Result cache TTL")
	rateLimit := flag.Int("rate-limit", 120, "Requests per client per minute (0 disables)")
	flag.Parse()

	// Logging
	log, err := zap.NewProduction()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	// Rate tables
	tables, err := rates.Load(*ratesPath)
	if err != nil {
		log.Fatal("Failed to load rate tables", zap.Error(err))
	}
	log.Info("Rate tables loaded", zap.String("version", tables.Version))

	// Result cache
	var (
		repo       cache.Repository
		redisCache *cache.RedisCache
	)
	if *redisAddr != "" {
		redisCache = cache.NewRedisCache(*redisAddr)
		pingCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		err := redisCache.Ping(pingCtx)
		cancel()
		if err != nil {
			log.Fatal("Failed to connect to Redis", zap.String("addr", *redisAddr), zap.Error(err))
		}
		repo = redisCache
		log.Info("Result cache: Redis", zap.String("addr", *redisAddr))
	} else {
		repo = cache.NewMemoryCache()
		log.Info("Result cache: in-memory")
	}

	// Handler
	handler, err := api.NewHandler(tables, repo, *cacheTTL, log)
	if err != nil {
		log.Fatal("Failed to initialize handler", zap.Error(err))
	}

	// Rate limiter
	var limiter *api.RateLimiter
	if *rateLimit > 0 {
		limiter = api.NewRateLimiter(*rateLimit, time.Minute)
		defer limiter.Stop()
	}

	// Router
	router := api.NewRouter(handler, limiter, log)

	// Server
	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", *port),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in goroutine
	go func() {
		log.Info("Server starting", zap.Int("port", *port))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Server failed", zap.Error(err))
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown", zap.Error(err))
	}
	if redisCache != nil {
		redisCache.Close()
	}

	log.Info("Server stopped")
}

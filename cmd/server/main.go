package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"
	"golang.org/x/sync/errgroup"

	"github.com/mmynk/storefront/internal/auth"
	"github.com/mmynk/storefront/internal/catalog"
	"github.com/mmynk/storefront/internal/config"
	"github.com/mmynk/storefront/internal/service"
	"github.com/mmynk/storefront/internal/session"
	"github.com/mmynk/storefront/internal/storage"
	"github.com/mmynk/storefront/internal/storage/sqlite"
	"github.com/mmynk/storefront/pkg/logging"
	"github.com/mmynk/storefront/pkg/metrics"
	pb "github.com/mmynk/storefront/pkg/shopapi"
)

func main() {
	cfg, err := config.Load(os.Args[1:])
	if err != nil {
		fmt.Fprintf(os.Stderr, "invalid configuration: %v\n", err)
		os.Exit(2)
	}

	logging.Setup(logging.ParseLevel(cfg.LogLevel))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg); err != nil {
		slog.Error("Server failed", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg config.Config) error {
	// Initialize SQLite storage
	store, err := sqlite.New(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("failed to initialize storage: %w", err)
	}
	defer store.Close()
	slog.Info("Storage initialized", "database", cfg.DBPath)

	cat, err := loadCatalog(ctx, store, cfg.CatalogFile)
	if err != nil {
		return err
	}
	slog.Info("Catalog loaded", "products", cat.Len(), "categories", len(cat.Categories())-1)

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m := metrics.New(reg)

	sessions := session.NewRegistry(cat, session.WithHistoryLimit(cfg.HistoryLimit))

	mux := service.NewMux(service.Deps{
		Catalog:  cat,
		Sessions: sessions,
		Tokens:   auth.NewTokenManager(cfg.TokenSecret, cfg.SessionTTL),
		Metrics:  m,
		Gatherer: reg,
	})

	// Add logging and CORS middleware, then h2c for HTTP/2 without TLS
	handler := h2c.NewHandler(loggingMiddleware(corsMiddleware(mux)), &http2.Server{})

	server := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		slog.Info("Connect server starting", "address", cfg.HTTPAddr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-ctx.Done()
		slog.Info("Shutting down", "timeout", cfg.ShutdownTimeout)
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})

	g.Go(func() error {
		ticker := time.NewTicker(cfg.SweepInterval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return nil
			case <-ticker.C:
				if n := sessions.Sweep(cfg.SessionTTL); n > 0 {
					slog.Info("Expired idle sessions", "count", n, "open", sessions.Len())
				}
				m.ActiveSessions.Set(float64(sessions.Len()))
			}
		}
	})

	return g.Wait()
}

// loadCatalog imports the optional catalog file into the store and builds the
// immutable catalog every session browses.
func loadCatalog(ctx context.Context, store storage.CatalogStore, catalogFile string) (*catalog.Catalog, error) {
	if catalogFile != "" {
		products, err := storage.ReadCatalogFile(catalogFile)
		if err != nil {
			return nil, err
		}
		// Nothing reaches the store unless the file is a valid catalog on its own.
		if _, err := catalog.New(products); err != nil {
			return nil, fmt.Errorf("invalid catalog file %s: %w", catalogFile, err)
		}
		if err := store.UpsertProducts(ctx, products); err != nil {
			return nil, fmt.Errorf("failed to import catalog: %w", err)
		}
		slog.Info("Catalog file imported", "path", catalogFile, "products", len(products))
	}

	products, err := store.ListProducts(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load catalog: %w", err)
	}

	cat, err := catalog.New(products)
	if err != nil {
		return nil, fmt.Errorf("invalid catalog: %w", err)
	}
	return cat, nil
}

// loggingMiddleware logs all incoming requests
func loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		slog.Debug("Request received",
			"method", r.Method,
			"path", r.URL.Path,
			"remote_addr", r.RemoteAddr,
			"user_agent", r.UserAgent(),
		)

		next.ServeHTTP(w, r)

		slog.Debug("Request completed",
			"method", r.Method,
			"path", r.URL.Path,
			"duration_ms", time.Since(start).Milliseconds(),
		)
	})
}

// corsMiddleware adds CORS headers for browser access
func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "POST, GET, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Authorization, Content-Type, Connect-Protocol-Version, Connect-Timeout-Ms")
		w.Header().Set("Access-Control-Expose-Headers", "Connect-Protocol-Version, Connect-Timeout-Ms, "+pb.SessionTokenHeader+", "+pb.SessionExpiresAtHeader)

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

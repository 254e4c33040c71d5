package service

import (
	"net/http"

	"connectrpc.com/connect"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/mmynk/storefront/internal/auth"
	"github.com/mmynk/storefront/internal/catalog"
	"github.com/mmynk/storefront/internal/middleware"
	"github.com/mmynk/storefront/internal/session"
	"github.com/mmynk/storefront/pkg/metrics"
	pb "github.com/mmynk/storefront/pkg/shopapi"
)

// Deps holds everything the HTTP surface is built from.
type Deps struct {
	Catalog  *catalog.Catalog
	Sessions *session.Registry
	Tokens   *auth.TokenManager
	Metrics  *metrics.Metrics
	Gatherer prometheus.Gatherer
}

// NewMux registers the Connect services, /metrics and /healthz.
func NewMux(d Deps) *http.ServeMux {
	mux := http.NewServeMux()

	catalogPath, catalogHandler := pb.NewCatalogServiceHandler(
		NewCatalogService(d.Catalog),
		connect.WithInterceptors(
			middleware.MetricsInterceptor(d.Metrics),
			middleware.LoggingInterceptor(),
		),
	)
	mux.Handle(catalogPath, catalogHandler)

	cartPath, cartHandler := pb.NewCartServiceHandler(
		NewCartService(d.Sessions, d.Tokens, d.Metrics),
		connect.WithInterceptors(
			middleware.MetricsInterceptor(d.Metrics),
			middleware.RequireSession(d.Tokens, PublicProcedures()...),
			middleware.LoggingInterceptor(),
		),
	)
	mux.Handle(cartPath, cartHandler)

	mux.Handle("/metrics", metrics.Handler(d.Gatherer))
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	return mux
}

package service

import (
	"context"
	"log/slog"

	"connectrpc.com/connect"

	"github.com/mmynk/storefront/internal/catalog"
	pb "github.com/mmynk/storefront/pkg/shopapi"
)

// Ensure CatalogService implements the Connect handler interface
var _ pb.CatalogServiceHandler = (*CatalogService)(nil)

// CatalogService implements the Connect CatalogService. It is stateless and
// needs no session.
type CatalogService struct {
	catalog *catalog.Catalog
}

// NewCatalogService creates a new CatalogService over the loaded catalog.
func NewCatalogService(cat *catalog.Catalog) *CatalogService {
	return &CatalogService{catalog: cat}
}

// ListCategories returns "All" followed by the catalog categories.
func (s *CatalogService) ListCategories(ctx context.Context, req *connect.Request[pb.ListCategoriesRequest]) (*connect.Response[pb.ListCategoriesResponse], error) {
	categories := s.catalog.Categories()
	slog.Debug("ListCategories", "count", len(categories))
	return connect.NewResponse(&pb.ListCategoriesResponse{Categories: categories}), nil
}

// ListProducts returns the products of a category. An unknown category is not
// an error; it simply matches nothing.
func (s *CatalogService) ListProducts(ctx context.Context, req *connect.Request[pb.ListProductsRequest]) (*connect.Response[pb.ListProductsResponse], error) {
	category := req.Msg.Category
	if category == "" {
		category = catalog.All
	}

	products := s.catalog.Visible(category)
	slog.Debug("ListProducts", "category", category, "count", len(products))

	return connect.NewResponse(&pb.ListProductsResponse{
		Products: toProtoProducts(products),
	}), nil
}

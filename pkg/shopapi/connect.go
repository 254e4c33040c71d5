package shopapi

import (
	"context"
	"net/http"
	"strings"

	"connectrpc.com/connect"
)

const (
	// CatalogServiceName is the fully-qualified name of the CatalogService service.
	CatalogServiceName = "storefront.v1.CatalogService"
	// CartServiceName is the fully-qualified name of the CartService service.
	CartServiceName = "storefront.v1.CartService"
)

// Response headers set on every authenticated CartService call. Clients
// should replace their token with the one returned.
const (
	SessionTokenHeader     = "Session-Token"
	SessionExpiresAtHeader = "Session-Expires-At"
)

// Procedure paths, as routed by the handlers below.
const (
	CatalogServiceListCategoriesProcedure = "/storefront.v1.CatalogService/ListCategories"
	CatalogServiceListProductsProcedure   = "/storefront.v1.CatalogService/ListProducts"

	CartServiceStartSessionProcedure   = "/storefront.v1.CartService/StartSession"
	CartServiceGetSessionProcedure     = "/storefront.v1.CartService/GetSession"
	CartServiceSelectCategoryProcedure = "/storefront.v1.CartService/SelectCategory"
	CartServiceAddToCartProcedure      = "/storefront.v1.CartService/AddToCart"
	CartServiceRemoveFromCartProcedure = "/storefront.v1.CartService/RemoveFromCart"
	CartServiceUndoCartChangeProcedure = "/storefront.v1.CartService/UndoCartChange"
	CartServiceEndSessionProcedure     = "/storefront.v1.CartService/EndSession"
)

// CatalogServiceHandler is implemented by the stateless catalog browser.
type CatalogServiceHandler interface {
	ListCategories(context.Context, *connect.Request[ListCategoriesRequest]) (*connect.Response[ListCategoriesResponse], error)
	ListProducts(context.Context, *connect.Request[ListProductsRequest]) (*connect.Response[ListProductsResponse], error)
}

// CartServiceHandler is implemented by the session-bound cart service.
type CartServiceHandler interface {
	StartSession(context.Context, *connect.Request[StartSessionRequest]) (*connect.Response[StartSessionResponse], error)
	GetSession(context.Context, *connect.Request[GetSessionRequest]) (*connect.Response[GetSessionResponse], error)
	SelectCategory(context.Context, *connect.Request[SelectCategoryRequest]) (*connect.Response[SelectCategoryResponse], error)
	AddToCart(context.Context, *connect.Request[AddToCartRequest]) (*connect.Response[AddToCartResponse], error)
	RemoveFromCart(context.Context, *connect.Request[RemoveFromCartRequest]) (*connect.Response[RemoveFromCartResponse], error)
	UndoCartChange(context.Context, *connect.Request[UndoCartChangeRequest]) (*connect.Response[UndoCartChangeResponse], error)
	EndSession(context.Context, *connect.Request[EndSessionRequest]) (*connect.Response[EndSessionResponse], error)
}

// NewCatalogServiceHandler builds an HTTP handler from the service
// implementation. It returns the path on which to mount the handler and the
// handler itself.
func NewCatalogServiceHandler(svc CatalogServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = withCodec(opts)
	routes := map[string]http.Handler{
		CatalogServiceListCategoriesProcedure: connect.NewUnaryHandler(CatalogServiceListCategoriesProcedure, svc.ListCategories, opts...),
		CatalogServiceListProductsProcedure:   connect.NewUnaryHandler(CatalogServiceListProductsProcedure, svc.ListProducts, opts...),
	}
	return "/" + CatalogServiceName + "/", router(routes)
}

// NewCartServiceHandler builds an HTTP handler from the service
// implementation. It returns the path on which to mount the handler and the
// handler itself.
func NewCartServiceHandler(svc CartServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = withCodec(opts)
	routes := map[string]http.Handler{
		CartServiceStartSessionProcedure:   connect.NewUnaryHandler(CartServiceStartSessionProcedure, svc.StartSession, opts...),
		CartServiceGetSessionProcedure:     connect.NewUnaryHandler(CartServiceGetSessionProcedure, svc.GetSession, opts...),
		CartServiceSelectCategoryProcedure: connect.NewUnaryHandler(CartServiceSelectCategoryProcedure, svc.SelectCategory, opts...),
		CartServiceAddToCartProcedure:      connect.NewUnaryHandler(CartServiceAddToCartProcedure, svc.AddToCart, opts...),
		CartServiceRemoveFromCartProcedure: connect.NewUnaryHandler(CartServiceRemoveFromCartProcedure, svc.RemoveFromCart, opts...),
		CartServiceUndoCartChangeProcedure: connect.NewUnaryHandler(CartServiceUndoCartChangeProcedure, svc.UndoCartChange, opts...),
		CartServiceEndSessionProcedure:     connect.NewUnaryHandler(CartServiceEndSessionProcedure, svc.EndSession, opts...),
	}
	return "/" + CartServiceName + "/", router(routes)
}

func withCodec(opts []connect.HandlerOption) []connect.HandlerOption {
	return append([]connect.HandlerOption{connect.WithCodec(Codec{})}, opts...)
}

func router(routes map[string]http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h, ok := routes[r.URL.Path]
		if !ok {
			http.NotFound(w, r)
			return
		}
		h.ServeHTTP(w, r)
	})
}

// CatalogServiceClient is a client for the storefront.v1.CatalogService service.
type CatalogServiceClient interface {
	ListCategories(context.Context, *connect.Request[ListCategoriesRequest]) (*connect.Response[ListCategoriesResponse], error)
	ListProducts(context.Context, *connect.Request[ListProductsRequest]) (*connect.Response[ListProductsResponse], error)
}

// NewCatalogServiceClient constructs a client for the storefront.v1.CatalogService
// service. baseURL is the scheme and host of the server (e.g. http://localhost:8080).
func NewCatalogServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) CatalogServiceClient {
	baseURL = strings.TrimRight(baseURL, "/")
	opts = append([]connect.ClientOption{connect.WithCodec(Codec{})}, opts...)
	return &catalogServiceClient{
		listCategories: connect.NewClient[ListCategoriesRequest, ListCategoriesResponse](httpClient, baseURL+CatalogServiceListCategoriesProcedure, opts...),
		listProducts:   connect.NewClient[ListProductsRequest, ListProductsResponse](httpClient, baseURL+CatalogServiceListProductsProcedure, opts...),
	}
}

type catalogServiceClient struct {
	listCategories *connect.Client[ListCategoriesRequest, ListCategoriesResponse]
	listProducts   *connect.Client[ListProductsRequest, ListProductsResponse]
}

func (c *catalogServiceClient) ListCategories(ctx context.Context, req *connect.Request[ListCategoriesRequest]) (*connect.Response[ListCategoriesResponse], error) {
	return c.listCategories.CallUnary(ctx, req)
}

func (c *catalogServiceClient) ListProducts(ctx context.Context, req *connect.Request[ListProductsRequest]) (*connect.Response[ListProductsResponse], error) {
	return c.listProducts.CallUnary(ctx, req)
}

// CartServiceClient is a client for the storefront.v1.CartService service.
// Every call except StartSession needs an "Authorization: Bearer <token>" header
// and returns a renewed token in the Session-Token response header.
type CartServiceClient interface {
	StartSession(context.Context, *connect.Request[StartSessionRequest]) (*connect.Response[StartSessionResponse], error)
	GetSession(context.Context, *connect.Request[GetSessionRequest]) (*connect.Response[GetSessionResponse], error)
	SelectCategory(context.Context, *connect.Request[SelectCategoryRequest]) (*connect.Response[SelectCategoryResponse], error)
	AddToCart(context.Context, *connect.Request[AddToCartRequest]) (*connect.Response[AddToCartResponse], error)
	RemoveFromCart(context.Context, *connect.Request[RemoveFromCartRequest]) (*connect.Response[RemoveFromCartResponse], error)
	UndoCartChange(context.Context, *connect.Request[UndoCartChangeRequest]) (*connect.Response[UndoCartChangeResponse], error)
	EndSession(context.Context, *connect.Request[EndSessionRequest]) (*connect.Response[EndSessionResponse], error)
}

// NewCartServiceClient constructs a client for the storefront.v1.CartService
// service. baseURL is the scheme and host of the server (e.g. http://localhost:8080).
func NewCartServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) CartServiceClient {
	baseURL = strings.TrimRight(baseURL, "/")
	opts = append([]connect.ClientOption{connect.WithCodec(Codec{})}, opts...)
	return &cartServiceClient{
		startSession:   connect.NewClient[StartSessionRequest, StartSessionResponse](httpClient, baseURL+CartServiceStartSessionProcedure, opts...),
		getSession:     connect.NewClient[GetSessionRequest, GetSessionResponse](httpClient, baseURL+CartServiceGetSessionProcedure, opts...),
		selectCategory: connect.NewClient[SelectCategoryRequest, SelectCategoryResponse](httpClient, baseURL+CartServiceSelectCategoryProcedure, opts...),
		addToCart:      connect.NewClient[AddToCartRequest, AddToCartResponse](httpClient, baseURL+CartServiceAddToCartProcedure, opts...),
		removeFromCart: connect.NewClient[RemoveFromCartRequest, RemoveFromCartResponse](httpClient, baseURL+CartServiceRemoveFromCartProcedure, opts...),
		undoCartChange: connect.NewClient[UndoCartChangeRequest, UndoCartChangeResponse](httpClient, baseURL+CartServiceUndoCartChangeProcedure, opts...),
		endSession:     connect.NewClient[EndSessionRequest, EndSessionResponse](httpClient, baseURL+CartServiceEndSessionProcedure, opts...),
	}
}

type cartServiceClient struct {
	startSession   *connect.Client[StartSessionRequest, StartSessionResponse]
	getSession     *connect.Client[GetSessionRequest, GetSessionResponse]
	selectCategory *connect.Client[SelectCategoryRequest, SelectCategoryResponse]
	addToCart      *connect.Client[AddToCartRequest, AddToCartResponse]
	removeFromCart *connect.Client[RemoveFromCartRequest, RemoveFromCartResponse]
	undoCartChange *connect.Client[UndoCartChangeRequest, UndoCartChangeResponse]
	endSession     *connect.Client[EndSessionRequest, EndSessionResponse]
}

func (c *cartServiceClient) StartSession(ctx context.Context, req *connect.Request[StartSessionRequest]) (*connect.Response[StartSessionResponse], error) {
	return c.startSession.CallUnary(ctx, req)
}

func (c *cartServiceClient) GetSession(ctx context.Context, req *connect.Request[GetSessionRequest]) (*connect.Response[GetSessionResponse], error) {
	return c.getSession.CallUnary(ctx, req)
}

func (c *cartServiceClient) SelectCategory(ctx context.Context, req *connect.Request[SelectCategoryRequest]) (*connect.Response[SelectCategoryResponse], error) {
	return c.selectCategory.CallUnary(ctx, req)
}

func (c *cartServiceClient) AddToCart(ctx context.Context, req *connect.Request[AddToCartRequest]) (*connect.Response[AddToCartResponse], error) {
	return c.addToCart.CallUnary(ctx, req)
}

func (c *cartServiceClient) RemoveFromCart(ctx context.Context, req *connect.Request[RemoveFromCartRequest]) (*connect.Response[RemoveFromCartResponse], error) {
	return c.removeFromCart.CallUnary(ctx, req)
}

func (c *cartServiceClient) UndoCartChange(ctx context.Context, req *connect.Request[UndoCartChangeRequest]) (*connect.Response[UndoCartChangeResponse], error) {
	return c.undoCartChange.CallUnary(ctx, req)
}

func (c *cartServiceClient) EndSession(ctx context.Context, req *connect.Request[EndSessionRequest]) (*connect.Response[EndSessionResponse], error) {
	return c.endSession.CallUnary(ctx, req)
}

// Package shopapi defines the storefront.v1 RPC surface: message types, the
// JSON codec and the Connect handler and client constructors.
//
// Amounts travel as decimal strings rounded to two places ("1200.00").
package shopapi

type Product struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	Category string `json:"category"`
	Price    string `json:"price"`
}

type CartLine struct {
	ProductID int64  `json:"product_id"`
	Name      string `json:"name"`
	Price     string `json:"price"`
	Quantity  int    `json:"quantity"`
	LineTotal string `json:"line_total"`
}

type Cart struct {
	Lines     []CartLine `json:"lines"`
	ItemCount int        `json:"item_count"`
	Total     string     `json:"total"`
}

// SessionState is everything a view needs to render one session.
type SessionState struct {
	Selection  string    `json:"selection"`
	Categories []string  `json:"categories"`
	Products   []Product `json:"products"`
	Cart       Cart      `json:"cart"`
	CanUndo    bool      `json:"can_undo"`
}

type ListCategoriesRequest struct{}

type ListCategoriesResponse struct {
	Categories []string `json:"categories"`
}

type ListProductsRequest struct {
	// Category filters the catalog; empty means "All".
	Category string `json:"category"`
}

type ListProductsResponse struct {
	Products []Product `json:"products"`
}

type StartSessionRequest struct{}

type StartSessionResponse struct {
	SessionID string       `json:"session_id"`
	Token     string       `json:"token"`
	ExpiresAt int64        `json:"expires_at"`
	State     SessionState `json:"state"`
}

type GetSessionRequest struct{}

type GetSessionResponse struct {
	State SessionState `json:"state"`
}

type SelectCategoryRequest struct {
	Category string `json:"category"`
}

type SelectCategoryResponse struct {
	State SessionState `json:"state"`
}

type AddToCartRequest struct {
	ProductID int64 `json:"product_id"`
}

type AddToCartResponse struct {
	Cart Cart `json:"cart"`
}

type RemoveFromCartRequest struct {
	ProductID int64 `json:"product_id"`
}

type RemoveFromCartResponse struct {
	Cart Cart `json:"cart"`
}

type UndoCartChangeRequest struct{}

type UndoCartChangeResponse struct {
	Cart Cart `json:"cart"`
}

type EndSessionRequest struct{}

type EndSessionResponse struct{}

// CartCarrier is implemented by every response that returns the session cart.
type CartCarrier interface {
	CartState() Cart
}

func (r *StartSessionResponse) CartState() Cart   { return r.State.Cart }
func (r *GetSessionResponse) CartState() Cart     { return r.State.Cart }
func (r *SelectCategoryResponse) CartState() Cart { return r.State.Cart }
func (r *AddToCartResponse) CartState() Cart      { return r.Cart }
func (r *RemoveFromCartResponse) CartState() Cart { return r.Cart }
func (r *UndoCartChangeResponse) CartState() Cart { return r.Cart }

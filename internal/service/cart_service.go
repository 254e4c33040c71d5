package service

import (
	"context"
	"log/slog"

	"connectrpc.com/connect"

	"github.com/mmynk/storefront/internal/auth"
	"github.com/mmynk/storefront/internal/middleware"
	"github.com/mmynk/storefront/internal/session"
	"github.com/mmynk/storefront/pkg/metrics"
	pb "github.com/mmynk/storefront/pkg/shopapi"
)

// Ensure CartService implements the Connect handler interface
var _ pb.CartServiceHandler = (*CartService)(nil)

// CartService implements the Connect CartService. Each call except
// StartSession operates on the session named by the caller's token.
type CartService struct {
	sessions *session.Registry
	tokens   *auth.TokenManager
	metrics  *metrics.Metrics
}

// NewCartService creates a new CartService.
func NewCartService(sessions *session.Registry, tokens *auth.TokenManager, m *metrics.Metrics) *CartService {
	return &CartService{
		sessions: sessions,
		tokens:   tokens,
		metrics:  m,
	}
}

// PublicProcedures lists the CartService procedures callable without a token.
func PublicProcedures() []string {
	return []string{pb.CartServiceStartSessionProcedure}
}

// StartSession opens a new session and returns its token and initial state.
func (s *CartService) StartSession(ctx context.Context, req *connect.Request[pb.StartSessionRequest]) (*connect.Response[pb.StartSessionResponse], error) {
	sess := s.sessions.Open()

	token, expiresAt, err := s.tokens.Generate(sess.ID())
	if err != nil {
		slog.Error("Failed to generate session token", "session_id", sess.ID(), "error", err)
		_ = s.sessions.End(sess.ID())
		return nil, connect.NewError(connect.CodeInternal, err)
	}
	s.metrics.ActiveSessions.Set(float64(s.sessions.Len()))

	slog.Info("Session started", "session_id", sess.ID())

	return connect.NewResponse(&pb.StartSessionResponse{
		SessionID: sess.ID(),
		Token:     token,
		ExpiresAt: expiresAt.Unix(),
		State:     s.view(sess, sess.State()),
	}), nil
}

// GetSession returns the current state of the caller's session.
func (s *CartService) GetSession(ctx context.Context, req *connect.Request[pb.GetSessionRequest]) (*connect.Response[pb.GetSessionResponse], error) {
	sess, err := s.session(ctx)
	if err != nil {
		return nil, err
	}
	return connect.NewResponse(&pb.GetSessionResponse{
		State: s.view(sess, sess.State()),
	}), nil
}

// SelectCategory changes the category filter of the session.
func (s *CartService) SelectCategory(ctx context.Context, req *connect.Request[pb.SelectCategoryRequest]) (*connect.Response[pb.SelectCategoryResponse], error) {
	sess, err := s.session(ctx)
	if err != nil {
		return nil, err
	}

	slog.Info("SelectCategory request received", "session_id", sess.ID(), "category", req.Msg.Category)

	state, err := s.do(sess, "select", session.SelectCategory{Category: req.Msg.Category})
	if err != nil {
		return nil, err
	}

	return connect.NewResponse(&pb.SelectCategoryResponse{
		State: s.view(sess, state),
	}), nil
}

// AddToCart adds one unit of a product to the session cart.
func (s *CartService) AddToCart(ctx context.Context, req *connect.Request[pb.AddToCartRequest]) (*connect.Response[pb.AddToCartResponse], error) {
	sess, err := s.session(ctx)
	if err != nil {
		return nil, err
	}

	slog.Info("AddToCart request received", "session_id", sess.ID(), "product_id", req.Msg.ProductID)

	state, err := s.do(sess, "add", session.AddToCart{ProductID: req.Msg.ProductID})
	if err != nil {
		return nil, err
	}

	return connect.NewResponse(&pb.AddToCartResponse{Cart: toProtoCart(state.Cart)}), nil
}

// RemoveFromCart removes one unit of a product from the session cart.
// Removing a product that has no cart line fails with CodeNotFound.
func (s *CartService) RemoveFromCart(ctx context.Context, req *connect.Request[pb.RemoveFromCartRequest]) (*connect.Response[pb.RemoveFromCartResponse], error) {
	sess, err := s.session(ctx)
	if err != nil {
		return nil, err
	}

	slog.Info("RemoveFromCart request received", "session_id", sess.ID(), "product_id", req.Msg.ProductID)

	state, err := s.do(sess, "remove", session.RemoveFromCart{ProductID: req.Msg.ProductID})
	if err != nil {
		return nil, err
	}

	return connect.NewResponse(&pb.RemoveFromCartResponse{Cart: toProtoCart(state.Cart)}), nil
}

// UndoCartChange reverts the last successful cart change.
func (s *CartService) UndoCartChange(ctx context.Context, req *connect.Request[pb.UndoCartChangeRequest]) (*connect.Response[pb.UndoCartChangeResponse], error) {
	sess, err := s.session(ctx)
	if err != nil {
		return nil, err
	}

	state, err := sess.Undo()
	if err != nil {
		s.metrics.CartActions.WithLabelValues("undo", "error").Inc()
		return nil, actionError(err)
	}
	s.metrics.CartActions.WithLabelValues("undo", "ok").Inc()

	slog.Info("Cart change undone", "session_id", sess.ID())

	return connect.NewResponse(&pb.UndoCartChangeResponse{Cart: toProtoCart(state.Cart)}), nil
}

// EndSession discards the caller's session. The token becomes useless even
// before it expires.
func (s *CartService) EndSession(ctx context.Context, req *connect.Request[pb.EndSessionRequest]) (*connect.Response[pb.EndSessionResponse], error) {
	sessionID := middleware.GetSessionID(ctx)
	if sessionID == "" {
		return nil, connect.NewError(connect.CodeUnauthenticated, auth.ErrMissingToken)
	}

	if err := s.sessions.End(sessionID); err != nil {
		return nil, connect.NewError(connect.CodeUnauthenticated, err)
	}
	s.metrics.ActiveSessions.Set(float64(s.sessions.Len()))

	slog.Info("Session ended", "session_id", sessionID)
	return connect.NewResponse(&pb.EndSessionResponse{}), nil
}

// session resolves the caller's session from the context set by RequireSession.
func (s *CartService) session(ctx context.Context) (*session.Session, error) {
	sessionID := middleware.GetSessionID(ctx)
	if sessionID == "" {
		return nil, connect.NewError(connect.CodeUnauthenticated, auth.ErrMissingToken)
	}

	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		slog.Warn("Unknown session", "session_id", sessionID, "error", err)
		return nil, connect.NewError(connect.CodeUnauthenticated, err)
	}
	return sess, nil
}

func (s *CartService) do(sess *session.Session, name string, action session.Action) (session.State, error) {
	state, err := sess.Do(action)
	if err != nil {
		s.metrics.CartActions.WithLabelValues(name, "error").Inc()
		slog.Warn("Session action rejected", "session_id", sess.ID(), "action", name, "error", err)
		return state, actionError(err)
	}
	s.metrics.CartActions.WithLabelValues(name, "ok").Inc()
	return state, nil
}

func (s *CartService) view(sess *session.Session, state session.State) pb.SessionState {
	return toProtoState(s.sessions.Catalog(), state, sess.HistoryLen() > 0)
}

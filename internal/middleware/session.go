package middleware

import (
	"context"
	"log/slog"
	"strconv"
	"strings"

	"connectrpc.com/connect"

	"github.com/mmynk/storefront/internal/auth"
	pb "github.com/mmynk/storefront/pkg/shopapi"
)

// contextKey is a custom type for context keys to avoid collisions.
type contextKey string

// SessionIDKey is the context key for storing the caller's session ID.
const SessionIDKey contextKey = "session_id"

// GetSessionID extracts the session ID from the context.
// Returns empty string if not found.
func GetSessionID(ctx context.Context) string {
	sessionID, _ := ctx.Value(SessionIDKey).(string)
	return sessionID
}

// WithSessionID returns a copy of ctx carrying sessionID.
func WithSessionID(ctx context.Context, sessionID string) context.Context {
	return context.WithValue(ctx, SessionIDKey, sessionID)
}

// RequireSession returns an interceptor that validates the session token in
// the Authorization header and adds the session ID to the request context.
// A successful call gets a renewed token in the Session-Token response header,
// so the token of an active session never lapses before the session does.
// Procedures listed in public are passed through untouched.
func RequireSession(tokens *auth.TokenManager, public ...string) connect.UnaryInterceptorFunc {
	skip := make(map[string]bool, len(public))
	for _, p := range public {
		skip[p] = true
	}

	return func(next connect.UnaryFunc) connect.UnaryFunc {
		return func(ctx context.Context, req connect.AnyRequest) (connect.AnyResponse, error) {
			if skip[req.Spec().Procedure] {
				return next(ctx, req)
			}

			// Extract Authorization header
			authHeader := req.Header().Get("Authorization")
			if authHeader == "" {
				return nil, connect.NewError(connect.CodeUnauthenticated, auth.ErrMissingToken)
			}

			// Parse Bearer token
			parts := strings.Split(authHeader, " ")
			if len(parts) != 2 || parts[0] != "Bearer" {
				return nil, connect.NewError(connect.CodeUnauthenticated, auth.ErrInvalidToken)
			}

			claims, err := tokens.Validate(parts[1])
			if err != nil {
				return nil, connect.NewError(connect.CodeUnauthenticated, err)
			}

			resp, err := next(WithSessionID(ctx, claims.SessionID), req)
			if err != nil {
				return resp, err
			}
			renew(tokens, claims.SessionID, resp)
			return resp, nil
		}
	}
}

// renew sets a fresh token for sessionID on resp. The call already
// succeeded, so a signing failure only costs the client its renewal.
func renew(tokens *auth.TokenManager, sessionID string, resp connect.AnyResponse) {
	token, expiresAt, err := tokens.Generate(sessionID)
	if err != nil {
		slog.Error("Failed to renew session token", "session_id", sessionID, "error", err)
		return
	}
	resp.Header().Set(pb.SessionTokenHeader, token)
	resp.Header().Set(pb.SessionExpiresAtHeader, strconv.FormatInt(expiresAt.Unix(), 10))
}

package middleware

import (
	"context"
	"log/slog"
	"time"

	"connectrpc.com/connect"

	pb "github.com/mmynk/storefront/pkg/shopapi"
)

// LoggingInterceptor returns a Connect interceptor that writes one record per
// RPC: procedure, result code, duration and, when known, the session ID.
// Responses that carry the cart add its line count, item count and total, so
// the log alone shows how a session's cart evolved.
// Install it inside RequireSession so the session ID is known.
func LoggingInterceptor() connect.UnaryInterceptorFunc {
	return func(next connect.UnaryFunc) connect.UnaryFunc {
		return func(ctx context.Context, req connect.AnyRequest) (connect.AnyResponse, error) {
			start := time.Now()
			resp, err := next(ctx, req)

			attrs := []any{
				"procedure", req.Spec().Procedure,
				"code", codeOf(err),
				"duration_ms", time.Since(start).Milliseconds(),
			}
			if sessionID := GetSessionID(ctx); sessionID != "" {
				attrs = append(attrs, "session_id", sessionID)
			}
			if err != nil {
				attrs = append(attrs, "error", err)
			} else if carrier, ok := resp.Any().(pb.CartCarrier); ok {
				cart := carrier.CartState()
				attrs = append(attrs,
					"cart_lines", len(cart.Lines),
					"cart_items", cart.ItemCount,
					"cart_total", cart.Total,
				)
			}

			slog.Log(ctx, levelFor(err), "RPC finished", attrs...)
			return resp, err
		}
	}
}

// levelFor logs rejected requests as warnings and server faults as errors.
func levelFor(err error) slog.Level {
	if err == nil {
		return slog.LevelInfo
	}
	switch connect.CodeOf(err) {
	case connect.CodeInternal, connect.CodeUnknown, connect.CodeDataLoss, connect.CodeUnavailable:
		return slog.LevelError
	default:
		return slog.LevelWarn
	}
}

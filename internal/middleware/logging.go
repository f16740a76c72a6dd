package middleware

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"connectrpc.com/connect"
)

// LoggingInterceptor returns a Connect interceptor that logs every RPC call.
// It logs the procedure name, acting member, duration, and any error codes/messages.
func LoggingInterceptor() connect.UnaryInterceptorFunc {
	return func(next connect.UnaryFunc) connect.UnaryFunc {
		return func(ctx context.Context, req connect.AnyRequest) (connect.AnyResponse, error) {
			start := time.Now()
			resp, err := next(ctx, req)
			logCall(req.Spec().Procedure, GetMember(ctx), time.Since(start), err)
			return resp, err
		}
	}
}

// logCall writes one line per finished RPC. Connect errors are expected
// outcomes and log at WARN; anything else is an ERROR.
func logCall(procedure, member string, elapsed time.Duration, err error) {
	duration := elapsed.Milliseconds()
	if err == nil {
		slog.Info("RPC ok",
			"procedure", procedure,
			"member", member,
			"duration_ms", duration,
		)
		return
	}

	var connectErr *connect.Error
	if errors.As(err, &connectErr) {
		slog.Warn("RPC error",
			"procedure", procedure,
			"code", connectErr.Code(),
			"error", connectErr.Message(),
			"member", member,
			"duration_ms", duration,
		)
		return
	}
	slog.Error("RPC error",
		"procedure", procedure,
		"error", err,
		"member", member,
		"duration_ms", duration,
	)
}

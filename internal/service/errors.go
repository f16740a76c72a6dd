package service

import (
	"context"
	"errors"
	"log/slog"

	"connectrpc.com/connect"

	"github.com/mmynk/familyfinance/internal/advisor"
	"github.com/mmynk/familyfinance/internal/junta"
	"github.com/mmynk/familyfinance/internal/middleware"
	"github.com/mmynk/familyfinance/internal/models"
	"github.com/mmynk/familyfinance/internal/storage"
)

var errNoSession = errors.New("no active session")

// toConnectError maps domain and storage errors to Connect codes.
func toConnectError(err error) error {
	var connectErr *connect.Error
	switch {
	case errors.As(err, &connectErr):
		return err
	case junta.IsValidation(err), errors.Is(err, junta.ErrMalformedSnapshot):
		return connect.NewError(connect.CodeInvalidArgument, err)
	case errors.Is(err, junta.ErrNotAssigned), errors.Is(err, junta.ErrAlreadyAssigned):
		return connect.NewError(connect.CodeFailedPrecondition, err)
	case errors.Is(err, junta.ErrRevisionConflict), errors.Is(err, storage.ErrConflict):
		return connect.NewError(connect.CodeAborted, err)
	case errors.Is(err, storage.ErrIncompletePatch):
		return connect.NewError(connect.CodeInvalidArgument, err)
	case errors.Is(err, storage.ErrNotFound):
		return connect.NewError(connect.CodeNotFound, err)
	case errors.Is(err, advisor.ErrNotConfigured):
		return connect.NewError(connect.CodeUnavailable, err)
	default:
		return connect.NewError(connect.CodeInternal, err)
	}
}

// sessionFrom returns the acting member's session or an Unauthenticated error.
func sessionFrom(ctx context.Context) (models.Session, error) {
	s, ok := middleware.SessionFrom(ctx)
	if !ok {
		return models.Session{}, connect.NewError(connect.CodeUnauthenticated, errNoSession)
	}
	return s, nil
}

func invalidArgument(err error) error {
	return connect.NewError(connect.CodeInvalidArgument, err)
}

func logFailure(msg string, err error, args ...any) {
	args = append(args, "error", err)
	if code := connect.CodeOf(err); code == connect.CodeInternal || code == connect.CodeUnknown {
		slog.Error(msg, args...)
		return
	}
	slog.Warn(msg, args...)
}

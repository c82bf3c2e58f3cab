package service

import (
	"context"
	"errors"
	"fmt"

	"connectrpc.com/connect"

	"github.com/mmynk/kitty/internal/ledger"
	"github.com/mmynk/kitty/internal/middleware"
	"github.com/mmynk/kitty/internal/storage"
	"github.com/mmynk/kitty/pkg/api"
)

var (
	errAuthRequired = errors.New("authentication required")
	errMissingGroup = errors.New("group_id is required")
)

// connectError maps a ledger failure onto a Connect status. Ledger errors
// carry their reason in the api.ReasonHeader metadata.
func connectError(err error) *connect.Error {
	if le, ok := ledger.AsError(err); ok {
		cerr := connect.NewError(codeForKind(le.Kind), le)
		cerr.Meta().Set(api.ReasonHeader, string(le.Reason))
		return cerr
	}

	switch {
	case errors.Is(err, storage.ErrConflict):
		return connect.NewError(connect.CodeAborted, fmt.Errorf("too much contention, try again: %w", err))
	case errors.Is(err, context.Canceled):
		return connect.NewError(connect.CodeCanceled, err)
	case errors.Is(err, context.DeadlineExceeded):
		return connect.NewError(connect.CodeDeadlineExceeded, err)
	}
	return connect.NewError(connect.CodeInternal, err)
}

func codeForKind(kind ledger.Kind) connect.Code {
	switch kind {
	case ledger.KindNotFound:
		return connect.CodeNotFound
	case ledger.KindConflict:
		return connect.CodeAlreadyExists
	case ledger.KindPreconditionFailed, ledger.KindInvariantViolation:
		return connect.CodeFailedPrecondition
	case ledger.KindAuthorization:
		return connect.CodePermissionDenied
	default:
		return connect.CodeInternal
	}
}

// caller returns the authenticated user ID set by the auth interceptor.
func caller(ctx context.Context) (string, error) {
	userID := middleware.GetUserID(ctx)
	if userID == "" {
		return "", connect.NewError(connect.CodeUnauthenticated, errAuthRequired)
	}
	return userID, nil
}

// groupCaller returns the caller and checks that a group was named.
func groupCaller(ctx context.Context, groupID string) (string, error) {
	userID, err := caller(ctx)
	if err != nil {
		return "", err
	}
	if groupID == "" {
		return "", connect.NewError(connect.CodeInvalidArgument, errMissingGroup)
	}
	return userID, nil
}

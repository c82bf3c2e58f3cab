package ledger

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/mmynk/kitty/internal/models"
	"github.com/mmynk/kitty/internal/storage"
)

// RequestJoin files a pending request for userID to join groupID.
// A user may have at most one pending request per group.
func (l *Ledger) RequestJoin(ctx context.Context, groupID, userID, message string) (string, error) {
	var requestID string
	err := l.update(ctx, "request_join", func(tx storage.Tx) error {
		if _, err := requireUser(ctx, tx, userID); err != nil {
			return err
		}
		if _, err := requireGroup(ctx, tx, groupID); err != nil {
			return err
		}

		_, err := tx.GetMembership(ctx, userID, groupID)
		if err == nil {
			return newError(ReasonAlreadyMember, "user is already a member").forUser(userID, groupID)
		}
		if !errors.Is(err, storage.ErrNotFound) {
			return err
		}

		pending, err := tx.FindPendingJoinRequest(ctx, userID, groupID)
		if err == nil {
			return newError(ReasonDuplicateRequest, "a request is already pending").
				forUser(userID, groupID).about(pending.ID)
		}
		if !errors.Is(err, storage.ErrNotFound) {
			return err
		}

		r := &models.JoinRequest{
			ID:        l.newID(),
			GroupID:   groupID,
			UserID:    userID,
			Message:   message,
			Status:    models.JoinRequestPending,
			CreatedAt: l.timestamp(),
		}
		if err := tx.CreateJoinRequest(ctx, r); err != nil {
			return retryOnDuplicate(err)
		}
		requestID = r.ID
		return nil
	})
	if err != nil {
		return "", err
	}

	slog.Info("Join requested", "group_id", groupID, "user_id", userID, "request_id", requestID)
	return requestID, nil
}

// ApproveJoin approves a pending request and makes the requester a
// (non-admin) member in the same transaction.
//
// A requester who joined some other way while the request was pending is
// left as they are and the request is closed as approved.
func (l *Ledger) ApproveJoin(ctx context.Context, groupID, requestID, adminUserID, reason string) error {
	var (
		userID        string
		alreadyMember bool
	)
	err := l.update(ctx, "approve_join", func(tx storage.Tx) error {
		now := l.timestamp()
		r, err := l.resolveTx(ctx, tx, groupID, requestID, adminUserID, models.JoinRequestApproved, reason, now)
		if err != nil {
			return err
		}
		userID = r.UserID

		_, err = tx.GetMembership(ctx, r.UserID, groupID)
		alreadyMember = err == nil
		if alreadyMember {
			return nil
		}
		if !errors.Is(err, storage.ErrNotFound) {
			return err
		}
		_, err = l.joinTx(ctx, tx, r.UserID, groupID, false, now)
		return err
	})
	if err != nil {
		return err
	}

	slog.Info("Join request approved",
		"group_id", groupID,
		"request_id", requestID,
		"user_id", userID,
		"admin_user_id", adminUserID,
		"already_member", alreadyMember,
	)
	return nil
}

// DenyJoin denies a pending request. A reason is required.
func (l *Ledger) DenyJoin(ctx context.Context, groupID, requestID, adminUserID, reason string) error {
	err := l.update(ctx, "deny_join", func(tx storage.Tx) error {
		if strings.TrimSpace(reason) == "" {
			return newError(ReasonMissingReason, "a reason is required to deny a request").
				forUser(adminUserID, groupID).about(requestID)
		}
		_, err := l.resolveTx(ctx, tx, groupID, requestID, adminUserID, models.JoinRequestDenied, reason, l.timestamp())
		return err
	})
	if err != nil {
		return err
	}

	slog.Info("Join request denied", "group_id", groupID, "request_id", requestID, "admin_user_id", adminUserID)
	return nil
}

// resolveTx moves a pending request to its terminal status.
func (l *Ledger) resolveTx(ctx context.Context, tx storage.Tx, groupID, requestID, adminUserID string,
	status models.JoinRequestStatus, reason string, now int64) (*models.JoinRequest, error) {
	r, err := tx.GetJoinRequest(ctx, requestID)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, newError(ReasonRequestNotFound, "join request does not exist").forUser("", groupID).about(requestID)
	}
	if err != nil {
		return nil, err
	}
	// Requests are addressed through their group; another group's request
	// does not exist here.
	if r.GroupID != groupID {
		return nil, newError(ReasonRequestNotFound, "join request does not belong to the group").
			forUser("", groupID).about(requestID)
	}

	if _, err := requireAdmin(ctx, tx, adminUserID, groupID); err != nil {
		return nil, err
	}
	if !r.IsPending() {
		return nil, newError(ReasonNotPending, "join request is already %s", r.Status).
			forUser(r.UserID, groupID).about(requestID)
	}

	r.Status = status
	r.AdminUserID = adminUserID
	r.ProcessedAt = now
	r.Reason = reason
	if err := tx.UpdateJoinRequest(ctx, r); err != nil {
		return nil, err
	}
	return r, nil
}

// ListJoinRequests returns the group's requests with the given status, or
// all of them when status is empty. Only the admin may list them.
func (l *Ledger) ListJoinRequests(ctx context.Context, groupID, adminUserID string, status models.JoinRequestStatus) ([]*models.JoinRequest, error) {
	var requests []*models.JoinRequest
	err := l.view(ctx, "list_join_requests", func(tx storage.Tx) error {
		if _, err := requireGroup(ctx, tx, groupID); err != nil {
			return err
		}
		if _, err := requireAdmin(ctx, tx, adminUserID, groupID); err != nil {
			return err
		}
		rs, err := tx.ListJoinRequests(ctx, groupID, status)
		requests = rs
		return err
	})
	return requests, err
}

package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/mmynk/kitty/internal/models"
)

const joinRequestColumns = `id, group_id, user_id, message, status, created_at, admin_user_id, processed_at, reason, version`

// CreateJoinRequest inserts a pending request. The partial unique index on
// pending (user, group) pairs turns a racing duplicate into storage.ErrDuplicate.
func (t *sqlTx) CreateJoinRequest(ctx context.Context, r *models.JoinRequest) error {
	r.Version = 1
	_, err := t.tx.ExecContext(ctx,
		`INSERT INTO join_requests (`+joinRequestColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		r.ID, r.GroupID, r.UserID, nullString(r.Message), string(r.Status), r.CreatedAt,
		nullString(r.AdminUserID), nullInt64(r.ProcessedAt), nullString(r.Reason), r.Version,
	)
	if err != nil {
		return classify(fmt.Errorf("failed to insert join request: %w", err))
	}
	return nil
}

// GetJoinRequest retrieves a join request by ID.
func (t *sqlTx) GetJoinRequest(ctx context.Context, requestID string) (*models.JoinRequest, error) {
	row := t.tx.QueryRowContext(ctx, `SELECT `+joinRequestColumns+` FROM join_requests WHERE id = ?`, requestID)
	r, err := scanJoinRequest(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, notFound("join request", requestID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get join request: %w", err)
	}
	return r, nil
}

// FindPendingJoinRequest looks up the pending request for a (user, group) pair.
func (t *sqlTx) FindPendingJoinRequest(ctx context.Context, userID, groupID string) (*models.JoinRequest, error) {
	row := t.tx.QueryRowContext(ctx,
		`SELECT `+joinRequestColumns+` FROM join_requests
		 WHERE user_id = ? AND group_id = ? AND status = ?`,
		userID, groupID, string(models.JoinRequestPending),
	)
	r, err := scanJoinRequest(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, notFound("pending join request", userID+"/"+groupID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find pending join request: %w", err)
	}
	return r, nil
}

// UpdateJoinRequest records the resolution of a request, guarded by version.
func (t *sqlTx) UpdateJoinRequest(ctx context.Context, r *models.JoinRequest) error {
	res, err := t.tx.ExecContext(ctx,
		`UPDATE join_requests
		 SET status = ?, admin_user_id = ?, processed_at = ?, reason = ?, version = version + 1
		 WHERE id = ? AND version = ?`,
		string(r.Status), nullString(r.AdminUserID), nullInt64(r.ProcessedAt), nullString(r.Reason),
		r.ID, r.Version,
	)
	if err != nil {
		return classify(fmt.Errorf("failed to update join request: %w", err))
	}
	if err := checkVersioned(res, "join request", r.ID); err != nil {
		return err
	}
	r.Version++
	return nil
}

// ListJoinRequests returns a group's requests, oldest first. An empty status
// lists every request.
func (t *sqlTx) ListJoinRequests(ctx context.Context, groupID string, status models.JoinRequestStatus) ([]*models.JoinRequest, error) {
	query := `SELECT ` + joinRequestColumns + ` FROM join_requests WHERE group_id = ?`
	args := []any{groupID}
	if status != "" {
		query += ` AND status = ?`
		args = append(args, string(status))
	}
	query += ` ORDER BY created_at ASC, rowid ASC`

	rows, err := t.tx.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list join requests: %w", err)
	}
	defer rows.Close()

	var requests []*models.JoinRequest
	for rows.Next() {
		r, err := scanJoinRequest(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan join request: %w", err)
		}
		requests = append(requests, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate join requests: %w", err)
	}
	return requests, nil
}

func scanJoinRequest(row rowScanner) (*models.JoinRequest, error) {
	r := &models.JoinRequest{}
	var message, admin, reason sql.NullString
	var processed sql.NullInt64
	var status string
	if err := row.Scan(
		&r.ID, &r.GroupID, &r.UserID, &message, &status, &r.CreatedAt,
		&admin, &processed, &reason, &r.Version,
	); err != nil {
		return nil, err
	}
	r.Message = message.String
	r.Status = models.JoinRequestStatus(status)
	r.AdminUserID = admin.String
	r.ProcessedAt = processed.Int64
	r.Reason = reason.String
	return r, nil
}

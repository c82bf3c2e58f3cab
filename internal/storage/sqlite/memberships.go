package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/mmynk/kitty/internal/models"
)

const membershipColumns = `user_id, group_id, balance, is_admin, active_bucket_id, joined_at, version`

// CreateMembership inserts the (user, group) row.
// A second insert for the same pair fails with storage.ErrDuplicate.
func (t *sqlTx) CreateMembership(ctx context.Context, m *models.Membership) error {
	m.Version = 1
	_, err := t.tx.ExecContext(ctx,
		`INSERT INTO memberships (`+membershipColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?)`,
		m.UserID, m.GroupID, m.Balance, m.IsAdmin, nullString(m.ActiveBucketID), m.JoinedAt, m.Version,
	)
	if err != nil {
		return classify(fmt.Errorf("failed to insert membership: %w", err))
	}
	return nil
}

// GetMembership retrieves the membership for a (user, group) pair.
func (t *sqlTx) GetMembership(ctx context.Context, userID, groupID string) (*models.Membership, error) {
	row := t.tx.QueryRowContext(ctx,
		`SELECT `+membershipColumns+` FROM memberships WHERE user_id = ? AND group_id = ?`,
		userID, groupID,
	)
	m, err := scanMembership(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, notFound("membership", userID+"/"+groupID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get membership: %w", err)
	}
	return m, nil
}

// UpdateMembership writes balance, admin flag and active bucket, guarded by
// the version read earlier. On success m.Version is bumped.
func (t *sqlTx) UpdateMembership(ctx context.Context, m *models.Membership) error {
	res, err := t.tx.ExecContext(ctx,
		`UPDATE memberships
		 SET balance = ?, is_admin = ?, active_bucket_id = ?, version = version + 1
		 WHERE user_id = ? AND group_id = ? AND version = ?`,
		m.Balance, m.IsAdmin, nullString(m.ActiveBucketID), m.UserID, m.GroupID, m.Version,
	)
	if err != nil {
		return classify(fmt.Errorf("failed to update membership: %w", err))
	}
	if err := checkVersioned(res, "membership", m.UserID+"/"+m.GroupID); err != nil {
		return err
	}
	m.Version++
	return nil
}

// ListMembersByGroup returns the group's members, oldest first.
func (t *sqlTx) ListMembersByGroup(ctx context.Context, groupID string) ([]*models.Membership, error) {
	return t.queryMemberships(ctx,
		`SELECT `+membershipColumns+` FROM memberships WHERE group_id = ? ORDER BY joined_at, rowid`,
		groupID,
	)
}

// ListMembershipsByUser returns every group the user belongs to.
func (t *sqlTx) ListMembershipsByUser(ctx context.Context, userID string) ([]*models.Membership, error) {
	return t.queryMemberships(ctx,
		`SELECT `+membershipColumns+` FROM memberships WHERE user_id = ? ORDER BY joined_at, rowid`,
		userID,
	)
}

func (t *sqlTx) queryMemberships(ctx context.Context, query string, arg string) ([]*models.Membership, error) {
	rows, err := t.tx.QueryContext(ctx, query, arg)
	if err != nil {
		return nil, fmt.Errorf("failed to list memberships: %w", err)
	}
	defer rows.Close()

	var memberships []*models.Membership
	for rows.Next() {
		m, err := scanMembership(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan membership: %w", err)
		}
		memberships = append(memberships, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate memberships: %w", err)
	}
	return memberships, nil
}

// rowScanner is satisfied by both *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanMembership(row rowScanner) (*models.Membership, error) {
	m := &models.Membership{}
	var active sql.NullString
	if err := row.Scan(&m.UserID, &m.GroupID, &m.Balance, &m.IsAdmin, &active, &m.JoinedAt, &m.Version); err != nil {
		return nil, err
	}
	m.ActiveBucketID = active.String
	return m, nil
}

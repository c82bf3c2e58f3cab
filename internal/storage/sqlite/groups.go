package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"math"

	"github.com/mmynk/kitty/internal/models"
	"github.com/mmynk/kitty/internal/storage"
)

// CreateGroup inserts a new group. The group starts with an empty kitty,
// no admin and version 1.
func (t *sqlTx) CreateGroup(ctx context.Context, group *models.Group) error {
	group.Version = 1
	_, err := t.tx.ExecContext(ctx,
		"INSERT INTO groups (id, name, kitty_balance, admin_user_id, version, created_at) VALUES (?, ?, ?, ?, ?, ?)",
		group.ID, group.Name, group.KittyBalance, nullString(group.AdminUserID), group.Version, group.CreatedAt,
	)
	if err != nil {
		return classify(fmt.Errorf("failed to insert group: %w", err))
	}
	return nil
}

// GetGroup retrieves a group by ID.
func (t *sqlTx) GetGroup(ctx context.Context, groupID string) (*models.Group, error) {
	group := &models.Group{}
	var admin sql.NullString
	err := t.tx.QueryRowContext(ctx,
		"SELECT id, name, kitty_balance, admin_user_id, version, created_at FROM groups WHERE id = ?",
		groupID,
	).Scan(&group.ID, &group.Name, &group.KittyBalance, &admin, &group.Version, &group.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, notFound("group", groupID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get group: %w", err)
	}
	group.AdminUserID = admin.String
	return group, nil
}

// SetGroupAdmin moves the group's admin pointer, guarded by the version read
// into group. On success group is updated in place.
func (t *sqlTx) SetGroupAdmin(ctx context.Context, group *models.Group, adminUserID string) error {
	res, err := t.tx.ExecContext(ctx,
		"UPDATE groups SET admin_user_id = ?, version = version + 1 WHERE id = ? AND version = ?",
		nullString(adminUserID), group.ID, group.Version,
	)
	if err != nil {
		return classify(fmt.Errorf("failed to update group admin: %w", err))
	}
	if err := checkVersioned(res, "group", group.ID); err != nil {
		return err
	}
	group.AdminUserID = adminUserID
	group.Version++
	return nil
}

// IncrementKitty adds delta to the kitty with a single UPDATE so concurrent
// contributions never overwrite each other. The version is left alone:
// kitty arithmetic does not conflict with admin pointer changes.
//
// SQLite turns an overflowing integer sum into a REAL, so the bound is
// checked in the WHERE clause and a miss on an existing group is ErrOverflow.
func (t *sqlTx) IncrementKitty(ctx context.Context, groupID string, delta int64) error {
	query := "UPDATE groups SET kitty_balance = kitty_balance + ? WHERE id = ? AND kitty_balance <= ?"
	bound := int64(math.MaxInt64) - delta
	if delta < 0 {
		query = "UPDATE groups SET kitty_balance = kitty_balance + ? WHERE id = ? AND kitty_balance >= ?"
		bound = int64(math.MinInt64) - delta
	}

	res, err := t.tx.ExecContext(ctx, query, delta, groupID, bound)
	if err != nil {
		return classify(fmt.Errorf("failed to increment kitty: %w", err))
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read rows affected: %w", err)
	}
	if n > 0 {
		return nil
	}

	if _, err := t.GetGroup(ctx, groupID); err != nil {
		return err
	}
	return fmt.Errorf("kitty of group %s plus %d: %w", groupID, delta, storage.ErrOverflow)
}

package sqlite

import (
	"context"
	"fmt"

	"github.com/mmynk/kitty/internal/models"
)

// CreateConsumption appends a consumption record.
func (t *sqlTx) CreateConsumption(ctx context.Context, c *models.Consumption) error {
	_, err := t.tx.ExecContext(ctx,
		`INSERT INTO consumptions (id, group_id, user_id, units, bucket_id, consumed_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		c.ID, c.GroupID, c.UserID, c.Units, c.BucketID, c.ConsumedAt,
	)
	if err != nil {
		return classify(fmt.Errorf("failed to insert consumption: %w", err))
	}
	return nil
}

// ListConsumptions returns a member's consumptions, newest first.
func (t *sqlTx) ListConsumptions(ctx context.Context, groupID, userID string) ([]*models.Consumption, error) {
	rows, err := t.tx.QueryContext(ctx,
		`SELECT id, group_id, user_id, units, bucket_id, consumed_at
		 FROM consumptions WHERE group_id = ? AND user_id = ?
		 ORDER BY consumed_at DESC, rowid DESC`,
		groupID, userID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list consumptions: %w", err)
	}
	defer rows.Close()

	var consumptions []*models.Consumption
	for rows.Next() {
		c := &models.Consumption{}
		if err := rows.Scan(&c.ID, &c.GroupID, &c.UserID, &c.Units, &c.BucketID, &c.ConsumedAt); err != nil {
			return nil, fmt.Errorf("failed to scan consumption: %w", err)
		}
		consumptions = append(consumptions, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate consumptions: %w", err)
	}
	return consumptions, nil
}

// SumConsumedUnits totals a member's lifetime consumption.
func (t *sqlTx) SumConsumedUnits(ctx context.Context, groupID, userID string) (int, error) {
	var total int
	err := t.tx.QueryRowContext(ctx,
		"SELECT COALESCE(SUM(units), 0) FROM consumptions WHERE group_id = ? AND user_id = ?",
		groupID, userID,
	).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("failed to sum consumptions: %w", err)
	}
	return total, nil
}

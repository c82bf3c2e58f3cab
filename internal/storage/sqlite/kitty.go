package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/mmynk/kitty/internal/models"
)

// CreateKittyTransaction persists a new contribution.
func (t *sqlTx) CreateKittyTransaction(ctx context.Context, kt *models.KittyTransaction) error {
	_, err := t.tx.ExecContext(ctx,
		`INSERT INTO kitty_transactions (id, group_id, user_id, amount, comment, created_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		kt.ID, kt.GroupID, kt.UserID, kt.Amount, nullString(kt.Comment), kt.CreatedAt,
	)
	if err != nil {
		return classify(fmt.Errorf("failed to insert kitty transaction: %w", err))
	}

	return nil
}

// ListKittyTransactions retrieves all contributions for a group, newest first.
func (t *sqlTx) ListKittyTransactions(ctx context.Context, groupID string) ([]*models.KittyTransaction, error) {
	rows, err := t.tx.QueryContext(ctx,
		`SELECT id, group_id, user_id, amount, comment, created_at
		 FROM kitty_transactions WHERE group_id = ? ORDER BY created_at DESC, rowid DESC`,
		groupID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list kitty transactions: %w", err)
	}
	defer rows.Close()

	var transactions []*models.KittyTransaction
	for rows.Next() {
		kt := &models.KittyTransaction{}
		var comment sql.NullString

		if err := rows.Scan(&kt.ID, &kt.GroupID, &kt.UserID, &kt.Amount, &comment, &kt.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan kitty transaction: %w", err)
		}

		if comment.Valid {
			kt.Comment = comment.String
		}

		transactions = append(transactions, kt)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate kitty transactions: %w", err)
	}

	return transactions, nil
}

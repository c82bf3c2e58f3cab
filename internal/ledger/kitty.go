package ledger

import (
	"context"
	"errors"
	"log/slog"
	"math"

	"github.com/mmynk/kitty/internal/models"
	"github.com/mmynk/kitty/internal/storage"
)

// Contribute records a member's cash contribution and adds it to the
// group's kitty. Each call is a new transaction record; retrying a
// successful call contributes twice.
func (l *Ledger) Contribute(ctx context.Context, groupID, userID string, amount int64, comment string) (string, error) {
	var transactionID string
	err := l.update(ctx, "contribute", func(tx storage.Tx) error {
		if _, err := requireMembership(ctx, tx, userID, groupID); err != nil {
			return err
		}
		if amount <= 0 {
			return newError(ReasonNonPositiveAmount, "contribution must be positive, got %d", amount).
				forUser(userID, groupID).values(0, amount, 0)
		}

		kt := &models.KittyTransaction{
			ID:        l.newID(),
			GroupID:   groupID,
			UserID:    userID,
			Amount:    amount,
			Comment:   comment,
			CreatedAt: l.timestamp(),
		}
		if err := tx.CreateKittyTransaction(ctx, kt); err != nil {
			return err
		}
		err := tx.IncrementKitty(ctx, groupID, amount)
		if errors.Is(err, storage.ErrOverflow) {
			group, gerr := requireGroup(ctx, tx, groupID)
			if gerr != nil {
				return gerr
			}
			limit := math.MaxInt64 - group.KittyBalance
			return newError(ReasonKittyOverflow, "kitty %d + %d does not fit, at most %d can be added",
				group.KittyBalance, amount, limit).
				forUser(userID, groupID).
				values(group.KittyBalance, amount, limit)
		}
		if err != nil {
			return err
		}

		transactionID = kt.ID
		return nil
	})
	if err != nil {
		return "", err
	}

	slog.Info("Kitty contribution recorded",
		"group_id", groupID,
		"user_id", userID,
		"amount", amount,
		"transaction_id", transactionID,
	)
	return transactionID, nil
}

// ListKittyTransactions returns the group's contributions, newest first.
func (l *Ledger) ListKittyTransactions(ctx context.Context, groupID string) ([]*models.KittyTransaction, error) {
	var transactions []*models.KittyTransaction
	err := l.view(ctx, "list_kitty_transactions", func(tx storage.Tx) error {
		if _, err := requireGroup(ctx, tx, groupID); err != nil {
			return err
		}
		ts, err := tx.ListKittyTransactions(ctx, groupID)
		transactions = ts
		return err
	})
	return transactions, err
}

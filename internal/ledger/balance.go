package ledger

import (
	"context"
	"errors"
	"log/slog"

	"github.com/mmynk/kitty/internal/calculator"
	"github.com/mmynk/kitty/internal/storage"
)

// AdjustBalance applies amount to the member's debt balance on behalf of
// the group admin and returns the new balance.
//
// Negative amounts record new debt, positive amounts record repayment.
// Balances never go above zero: an adjustment that would leave the member
// in credit fails PositiveBalanceRejected with Limit set to the largest
// repayment that would have been accepted. The group's kitty is not touched.
func (l *Ledger) AdjustBalance(ctx context.Context, groupID, userID string, amount int64, adminUserID string) (int64, error) {
	var newBalance int64
	err := l.update(ctx, "adjust_balance", func(tx storage.Tx) error {
		m, err := requireMembership(ctx, tx, userID, groupID)
		if err != nil {
			return err
		}
		if _, err := requireAdmin(ctx, tx, adminUserID, groupID); err != nil {
			return err
		}

		adj, err := calculator.AdjustBalance(m.Balance, amount)
		switch {
		case errors.Is(err, calculator.ErrZeroAmount):
			return newError(ReasonZeroAmount, "adjustment amount cannot be zero").forUser(userID, groupID)
		case errors.Is(err, calculator.ErrBalanceOverflow):
			return newError(ReasonBalanceOverflow, "balance %d + %d does not fit, at most %d more debt allowed",
				adj.Current, amount, -adj.MaxDecrease).
				forUser(userID, groupID).
				values(adj.Current, amount, adj.MaxDecrease)
		case errors.Is(err, calculator.ErrPositiveBalance):
			return newError(ReasonPositiveBalance, "balance %d + %d would be positive, at most %d allowed",
				adj.Current, amount, adj.MaxIncrease).
				forUser(userID, groupID).
				values(adj.Current, amount, adj.MaxIncrease)
		case err != nil:
			return err
		}

		m.Balance = adj.NewBalance
		if err := tx.UpdateMembership(ctx, m); err != nil {
			return err
		}
		newBalance = m.Balance
		return nil
	})
	if err != nil {
		return 0, err
	}

	slog.Info("Balance adjusted",
		"group_id", groupID,
		"user_id", userID,
		"admin_user_id", adminUserID,
		"amount", amount,
		"new_balance", newBalance,
	)
	return newBalance, nil
}

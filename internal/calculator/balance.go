package calculator

import (
	"errors"
	"fmt"
	"math"
)

var (
	// ErrZeroAmount is returned for a balance adjustment of zero.
	ErrZeroAmount = errors.New("adjustment amount cannot be zero")

	// ErrPositiveBalance is returned when an adjustment would leave a member
	// in credit. Balances record debt only and never go above zero.
	ErrPositiveBalance = errors.New("balance cannot become positive")

	// ErrBalanceOverflow is returned when added debt would take the balance
	// below the int64 range.
	ErrBalanceOverflow = errors.New("balance out of range")
)

// BalanceAdjustment is the outcome of applying an amount to a debt balance.
type BalanceAdjustment struct {
	Current    int64
	Amount     int64
	NewBalance int64

	// MaxIncrease is the largest positive amount that could be applied to
	// Current without going above zero.
	MaxIncrease int64

	// MaxDecrease is the most negative amount that could be applied to
	// Current without leaving the int64 range.
	MaxDecrease int64
}

// AdjustBalance applies amount to a debt balance (<= 0).
// Negative amounts add debt; positive amounts pay it down, up to zero.
func AdjustBalance(current, amount int64) (BalanceAdjustment, error) {
	adj := BalanceAdjustment{
		Current:     current,
		Amount:      amount,
		NewBalance:  current,
		MaxIncrease: MaxIncrease(current),
		MaxDecrease: MaxDecrease(current),
	}

	if amount == 0 {
		return adj, ErrZeroAmount
	}
	if amount < adj.MaxDecrease || (amount > 0 && current > math.MaxInt64-amount) {
		return adj, fmt.Errorf("%w: %d + %d", ErrBalanceOverflow, current, amount)
	}

	adj.NewBalance = current + amount
	if adj.NewBalance > 0 {
		return adj, fmt.Errorf("%w: %d + %d > 0, at most %d can be paid back",
			ErrPositiveBalance, current, amount, adj.MaxIncrease)
	}

	return adj, nil
}

// MaxIncrease returns how much debt is outstanding on a balance, capped at
// math.MaxInt64.
func MaxIncrease(current int64) int64 {
	switch {
	case current >= 0:
		return 0
	case current == math.MinInt64:
		return math.MaxInt64
	}
	return -current
}

// MaxDecrease returns the most negative amount that can be added to current
// without leaving the int64 range.
func MaxDecrease(current int64) int64 {
	if current >= 0 {
		return math.MinInt64
	}
	return math.MinInt64 - current
}

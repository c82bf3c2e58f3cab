package calculator

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDrawUnits(t *testing.T) {
	tests := []struct {
		name      string
		remaining int
		units     int
		want      Draw
		wantErr   error
	}{
		{name: "partial draw", remaining: 5, units: 2, want: Draw{Remaining: 3}},
		{name: "draw empties bucket", remaining: 5, units: 5, want: Draw{Remaining: 0, Emptied: true}},
		{name: "more than remaining", remaining: 3, units: 5, wantErr: ErrInsufficientUnits},
		{name: "zero units", remaining: 3, units: 0, wantErr: ErrNonPositiveUnits},
		{name: "negative units", remaining: 3, units: -1, wantErr: ErrNonPositiveUnits},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := DrawUnits(tt.remaining, tt.units)
			if tt.wantErr != nil {
				require.Error(t, err)
				assert.True(t, errors.Is(err, tt.wantErr), "got %v", err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestAdjustBalance(t *testing.T) {
	tests := []struct {
		name    string
		current int64
		amount  int64
		want    int64
		wantMax int64
		wantErr error
	}{
		{name: "add debt from zero", current: 0, amount: -20, want: -20, wantMax: 0},
		{name: "pay back part", current: -20, amount: 5, want: -15, wantMax: 20},
		{name: "pay back exactly", current: -20, amount: 20, want: 0, wantMax: 20},
		{name: "overpay rejected", current: -20, amount: 25, want: 5, wantMax: 20, wantErr: ErrPositiveBalance},
		{name: "credit from zero rejected", current: 0, amount: 1, want: 1, wantMax: 0, wantErr: ErrPositiveBalance},
		{name: "zero amount", current: -3, amount: 0, want: -3, wantMax: 3, wantErr: ErrZeroAmount},
		{name: "debt down to the floor", current: math.MinInt64 + 1, amount: -1, want: math.MinInt64, wantMax: math.MaxInt64},
		{name: "debt past the floor", current: math.MinInt64, amount: -1, want: math.MinInt64, wantMax: math.MaxInt64, wantErr: ErrBalanceOverflow},
		{name: "huge debt from zero", current: 0, amount: math.MinInt64, want: math.MinInt64, wantMax: 0},
		{name: "pay back from the floor", current: math.MinInt64, amount: math.MaxInt64, want: -1, wantMax: math.MaxInt64},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			adj, err := AdjustBalance(tt.current, tt.amount)
			assert.Equal(t, tt.want, adj.NewBalance)
			assert.Equal(t, tt.wantMax, adj.MaxIncrease)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestBalanceLimits(t *testing.T) {
	assert.Equal(t, int64(0), MaxIncrease(0))
	assert.Equal(t, int64(20), MaxIncrease(-20))
	assert.Equal(t, int64(math.MaxInt64), MaxIncrease(math.MinInt64))

	assert.Equal(t, int64(math.MinInt64), MaxDecrease(0))
	assert.Equal(t, int64(math.MinInt64+20), MaxDecrease(-20))
	assert.Equal(t, int64(0), MaxDecrease(math.MinInt64))
}

func TestSummarize(t *testing.T) {
	s := Summarize([]BucketUnits{
		{UnitsInBucket: 5, RemainingUnits: 0, Completed: true},
		{UnitsInBucket: 5, RemainingUnits: 2},
		{UnitsInBucket: 10, RemainingUnits: 10},
	})

	assert.Equal(t, 3, s.Buckets)
	assert.Equal(t, 2, s.ActiveBuckets)
	assert.Equal(t, 1, s.CompletedBuckets)
	assert.Equal(t, 20, s.Purchased)
	assert.Equal(t, 12, s.Remaining)
	assert.Equal(t, 8, s.Drawn)
	assert.True(t, s.Reconciles(8))
	assert.False(t, s.Reconciles(7))
}

func TestSummarize_Empty(t *testing.T) {
	s := Summarize(nil)
	assert.Equal(t, Summary{}, s)
	assert.True(t, s.Reconciles(0))
}

package ledger

import (
	"context"
	"errors"
	"log/slog"

	"github.com/mmynk/kitty/internal/calculator"
	"github.com/mmynk/kitty/internal/models"
	"github.com/mmynk/kitty/internal/storage"
)

// ConsumeResult describes a recorded consumption.
type ConsumeResult struct {
	ConsumptionID string
	BucketID      string

	// RemainingUnits left in BucketID after the draw.
	RemainingUnits int

	// ActiveBucketID is the member's active bucket after the draw. It
	// differs from BucketID when the draw emptied the bucket, and is empty
	// when no bucket with units is left.
	ActiveBucketID string
}

// Consume records units drawn from the member's active bucket.
//
// When the draw empties the bucket, the bucket is completed and the
// member's active bucket advances to the next oldest one with units left,
// or to none. All of it commits in one transaction with the consumption.
func (l *Ledger) Consume(ctx context.Context, groupID, userID string, units int) (*ConsumeResult, error) {
	var result *ConsumeResult
	err := l.update(ctx, "consume", func(tx storage.Tx) error {
		m, err := requireMembership(ctx, tx, userID, groupID)
		if err != nil {
			return err
		}
		if !m.HasActiveBucket() {
			return newError(ReasonNoActiveBucket, "purchase a bucket before consuming").forUser(userID, groupID)
		}

		bucket, err := tx.GetBucket(ctx, m.ActiveBucketID)
		if errors.Is(err, storage.ErrNotFound) {
			return newError(ReasonBucketNotFound, "active bucket is missing").
				forUser(userID, groupID).about(m.ActiveBucketID)
		}
		if err != nil {
			return err
		}
		if bucket.GroupID != groupID || bucket.UserID != userID {
			return newError(ReasonBucketNotFound, "active bucket belongs to another member").
				forUser(userID, groupID).about(bucket.ID)
		}
		if !bucket.IsDrawable() {
			return newError(ReasonBucketNotFound, "active bucket is %s with %d units left", bucket.Status, bucket.RemainingUnits).
				forUser(userID, groupID).about(bucket.ID)
		}

		draw, err := calculator.DrawUnits(bucket.RemainingUnits, units)
		switch {
		case errors.Is(err, calculator.ErrInsufficientUnits):
			return newError(ReasonInsufficientUnits, "bucket has %d units, %d requested", bucket.RemainingUnits, units).
				forUser(userID, groupID).about(bucket.ID).
				values(int64(bucket.RemainingUnits), int64(units), int64(bucket.RemainingUnits))
		case errors.Is(err, calculator.ErrNonPositiveUnits):
			return newError(ReasonInvalidQuantity, "units must be positive, got %d", units).
				forUser(userID, groupID)
		case err != nil:
			return err
		}

		consumption := &models.Consumption{
			ID:         l.newID(),
			GroupID:    groupID,
			UserID:     userID,
			Units:      units,
			BucketID:   bucket.ID,
			ConsumedAt: l.timestamp(),
		}
		if err := tx.CreateConsumption(ctx, consumption); err != nil {
			return err
		}

		bucket.RemainingUnits = draw.Remaining
		if draw.Emptied {
			bucket.Status = models.BucketCompleted
		}
		if err := tx.UpdateBucket(ctx, bucket); err != nil {
			return err
		}

		if draw.Emptied {
			next, err := selectNextActive(ctx, tx, groupID, userID, bucket.ID)
			if err != nil {
				return err
			}
			m.ActiveBucketID = next
			if err := tx.UpdateMembership(ctx, m); err != nil {
				return err
			}
		}

		result = &ConsumeResult{
			ConsumptionID:  consumption.ID,
			BucketID:       bucket.ID,
			RemainingUnits: bucket.RemainingUnits,
			ActiveBucketID: m.ActiveBucketID,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	slog.Info("Consumption recorded",
		"group_id", groupID,
		"user_id", userID,
		"units", units,
		"bucket_id", result.BucketID,
		"remaining_units", result.RemainingUnits,
		"active_bucket_id", result.ActiveBucketID,
	)
	return result, nil
}

// ListConsumptions returns the member's consumptions, newest first.
func (l *Ledger) ListConsumptions(ctx context.Context, groupID, userID string) ([]*models.Consumption, error) {
	var consumptions []*models.Consumption
	err := l.view(ctx, "list_consumptions", func(tx storage.Tx) error {
		if _, err := requireMembership(ctx, tx, userID, groupID); err != nil {
			return err
		}
		cs, err := tx.ListConsumptions(ctx, groupID, userID)
		consumptions = cs
		return err
	})
	return consumptions, err
}

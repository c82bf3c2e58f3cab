package ledger

import (
	"context"
	"errors"
	"log/slog"

	"github.com/mmynk/kitty/internal/calculator"
	"github.com/mmynk/kitty/internal/models"
	"github.com/mmynk/kitty/internal/storage"
)

// Purchase creates bucketCount buckets of unitsPerBucket units for the
// member, all sharing one purchase batch. If the member had no active
// bucket, the first new bucket becomes active.
func (l *Ledger) Purchase(ctx context.Context, groupID, userID string, bucketCount, unitsPerBucket int) ([]string, error) {
	var bucketIDs []string
	err := l.update(ctx, "purchase", func(tx storage.Tx) error {
		m, err := requireMembership(ctx, tx, userID, groupID)
		if err != nil {
			return err
		}
		if bucketCount <= 0 || unitsPerBucket <= 0 {
			return newError(ReasonInvalidQuantity, "need at least one bucket of at least one unit, got %d x %d",
				bucketCount, unitsPerBucket).forUser(userID, groupID)
		}

		now := l.timestamp()
		batchID := l.newID()
		buckets := make([]*models.Bucket, bucketCount)
		ids := make([]string, bucketCount)
		for i := range buckets {
			buckets[i] = &models.Bucket{
				ID:              l.newID(),
				GroupID:         groupID,
				UserID:          userID,
				UnitsInBucket:   unitsPerBucket,
				RemainingUnits:  unitsPerBucket,
				Status:          models.BucketActive,
				PurchasedAt:     now,
				PurchaseBatchID: batchID,
			}
			ids[i] = buckets[i].ID
		}
		if err := tx.CreateBuckets(ctx, buckets); err != nil {
			return err
		}

		if !m.HasActiveBucket() {
			m.ActiveBucketID = buckets[0].ID
			if err := tx.UpdateMembership(ctx, m); err != nil {
				return err
			}
		}

		bucketIDs = ids
		return nil
	})
	if err != nil {
		return nil, err
	}

	slog.Info("Buckets purchased",
		"group_id", groupID,
		"user_id", userID,
		"bucket_count", bucketCount,
		"units_per_bucket", unitsPerBucket,
	)
	return bucketIDs, nil
}

// SelectNextActive returns the member's oldest active bucket with units
// left, skipping excludeBucketID. Returns "" when there is none.
// Fails NotMember.
func (l *Ledger) SelectNextActive(ctx context.Context, groupID, userID, excludeBucketID string) (string, error) {
	var bucketID string
	err := l.view(ctx, "select_next_active", func(tx storage.Tx) error {
		if _, err := requireMembership(ctx, tx, userID, groupID); err != nil {
			return err
		}
		id, err := selectNextActive(ctx, tx, groupID, userID, excludeBucketID)
		bucketID = id
		return err
	})
	return bucketID, err
}

func selectNextActive(ctx context.Context, tx storage.Tx, groupID, userID, excludeBucketID string) (string, error) {
	b, err := tx.NextActiveBucket(ctx, groupID, userID, excludeBucketID)
	if errors.Is(err, storage.ErrNotFound) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return b.ID, nil
}

// ListBuckets returns the member's buckets, oldest first. Fails NotMember.
func (l *Ledger) ListBuckets(ctx context.Context, groupID, userID string) ([]*models.Bucket, error) {
	var buckets []*models.Bucket
	err := l.view(ctx, "list_buckets", func(tx storage.Tx) error {
		if _, err := requireMembership(ctx, tx, userID, groupID); err != nil {
			return err
		}
		bs, err := tx.ListBuckets(ctx, groupID, userID)
		buckets = bs
		return err
	})
	return buckets, err
}

// InventoryReport compares a member's buckets with their consumption log.
type InventoryReport struct {
	calculator.Summary

	// Consumed is the total from the consumption log.
	Consumed int

	// ActiveBucketID is the bucket consumption currently draws from.
	ActiveBucketID string
}

// Reconciled reports whether remaining + consumed == purchased.
func (r InventoryReport) Reconciled() bool {
	return r.Summary.Reconciles(r.Consumed)
}

// Inventory reads a consistent snapshot of the member's buckets and
// consumption totals.
func (l *Ledger) Inventory(ctx context.Context, groupID, userID string) (*InventoryReport, error) {
	var report *InventoryReport
	err := l.view(ctx, "inventory", func(tx storage.Tx) error {
		m, err := requireMembership(ctx, tx, userID, groupID)
		if err != nil {
			return err
		}
		buckets, err := tx.ListBuckets(ctx, groupID, userID)
		if err != nil {
			return err
		}
		consumed, err := tx.SumConsumedUnits(ctx, groupID, userID)
		if err != nil {
			return err
		}

		units := make([]calculator.BucketUnits, len(buckets))
		for i, b := range buckets {
			units[i] = calculator.BucketUnits{
				UnitsInBucket:  b.UnitsInBucket,
				RemainingUnits: b.RemainingUnits,
				Completed:      b.Status == models.BucketCompleted,
			}
		}
		report = &InventoryReport{
			Summary:        calculator.Summarize(units),
			Consumed:       consumed,
			ActiveBucketID: m.ActiveBucketID,
		}
		return nil
	})
	return report, err
}

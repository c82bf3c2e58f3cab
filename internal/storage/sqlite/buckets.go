package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/mmynk/kitty/internal/models"
)

const bucketColumns = `id, group_id, user_id, units_in_bucket, remaining_units, status, purchased_at, purchase_batch_id, version`

// CreateBuckets inserts a purchase batch in order. Insertion order breaks
// ties between buckets bought in the same second.
func (t *sqlTx) CreateBuckets(ctx context.Context, buckets []*models.Bucket) error {
	stmt, err := t.tx.PrepareContext(ctx,
		`INSERT INTO buckets (`+bucketColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
	)
	if err != nil {
		return fmt.Errorf("failed to prepare bucket insert: %w", err)
	}
	defer stmt.Close()

	for _, b := range buckets {
		b.Version = 1
		_, err := stmt.ExecContext(ctx,
			b.ID, b.GroupID, b.UserID, b.UnitsInBucket, b.RemainingUnits,
			string(b.Status), b.PurchasedAt, b.PurchaseBatchID, b.Version,
		)
		if err != nil {
			return classify(fmt.Errorf("failed to insert bucket: %w", err))
		}
	}
	return nil
}

// GetBucket retrieves a bucket by ID.
func (t *sqlTx) GetBucket(ctx context.Context, bucketID string) (*models.Bucket, error) {
	row := t.tx.QueryRowContext(ctx, `SELECT `+bucketColumns+` FROM buckets WHERE id = ?`, bucketID)
	b, err := scanBucket(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, notFound("bucket", bucketID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get bucket: %w", err)
	}
	return b, nil
}

// UpdateBucket writes remaining units and status, guarded by version.
func (t *sqlTx) UpdateBucket(ctx context.Context, b *models.Bucket) error {
	res, err := t.tx.ExecContext(ctx,
		`UPDATE buckets SET remaining_units = ?, status = ?, version = version + 1
		 WHERE id = ? AND version = ?`,
		b.RemainingUnits, string(b.Status), b.ID, b.Version,
	)
	if err != nil {
		return classify(fmt.Errorf("failed to update bucket: %w", err))
	}
	if err := checkVersioned(res, "bucket", b.ID); err != nil {
		return err
	}
	b.Version++
	return nil
}

// NextActiveBucket returns the oldest drawable bucket for the member.
func (t *sqlTx) NextActiveBucket(ctx context.Context, groupID, userID, excludeBucketID string) (*models.Bucket, error) {
	row := t.tx.QueryRowContext(ctx,
		`SELECT `+bucketColumns+` FROM buckets
		 WHERE group_id = ? AND user_id = ? AND status = ? AND remaining_units > 0 AND id != ?
		 ORDER BY purchased_at ASC, rowid ASC
		 LIMIT 1`,
		groupID, userID, string(models.BucketActive), excludeBucketID,
	)
	b, err := scanBucket(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, notFound("active bucket for", userID+"/"+groupID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to select next active bucket: %w", err)
	}
	return b, nil
}

// ListBuckets returns all of a member's buckets in FIFO order.
func (t *sqlTx) ListBuckets(ctx context.Context, groupID, userID string) ([]*models.Bucket, error) {
	rows, err := t.tx.QueryContext(ctx,
		`SELECT `+bucketColumns+` FROM buckets
		 WHERE group_id = ? AND user_id = ?
		 ORDER BY purchased_at ASC, rowid ASC`,
		groupID, userID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list buckets: %w", err)
	}
	defer rows.Close()

	var buckets []*models.Bucket
	for rows.Next() {
		b, err := scanBucket(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan bucket: %w", err)
		}
		buckets = append(buckets, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate buckets: %w", err)
	}
	return buckets, nil
}

func scanBucket(row rowScanner) (*models.Bucket, error) {
	b := &models.Bucket{}
	var status string
	if err := row.Scan(
		&b.ID, &b.GroupID, &b.UserID, &b.UnitsInBucket, &b.RemainingUnits,
		&status, &b.PurchasedAt, &b.PurchaseBatchID, &b.Version,
	); err != nil {
		return nil, err
	}
	b.Status = models.BucketStatus(status)
	return b, nil
}

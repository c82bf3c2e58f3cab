package models

// BucketStatus is the lifecycle state of a bucket.
type BucketStatus string

const (
	// BucketActive buckets still have units to draw from.
	BucketActive BucketStatus = "active"
	// BucketCompleted buckets have been fully consumed. Terminal.
	BucketCompleted BucketStatus = "completed"
)

// Bucket is a purchased pool of units belonging to one member of one group.
type Bucket struct {
	// ID is the unique identifier for the bucket (UUID format).
	ID string

	GroupID string
	UserID  string

	// UnitsInBucket is the size of the bucket at purchase time.
	UnitsInBucket int

	// RemainingUnits counts down as units are consumed.
	// UnitsInBucket - RemainingUnits is the lifetime consumption.
	RemainingUnits int

	Status BucketStatus

	// PurchasedAt is the Unix timestamp of the purchase. Buckets drain
	// oldest first.
	PurchasedAt int64

	// PurchaseBatchID is shared by all buckets bought in one purchase.
	PurchaseBatchID string

	Version int64
}

// IsDrawable reports whether units can still be consumed from the bucket.
func (b *Bucket) IsDrawable() bool {
	return b.Status == BucketActive && b.RemainingUnits > 0
}

package calculator

// BucketUnits is the minimal bucket information needed for inventory totals.
type BucketUnits struct {
	UnitsInBucket  int
	RemainingUnits int
	Completed      bool
}

// Summary aggregates a member's buckets.
type Summary struct {
	Buckets          int
	ActiveBuckets    int
	CompletedBuckets int

	// Purchased is the sum of UnitsInBucket.
	Purchased int

	// Remaining is the sum of RemainingUnits.
	Remaining int

	// Drawn is Purchased - Remaining, i.e. what the buckets say was consumed.
	Drawn int
}

// Summarize totals a member's buckets.
func Summarize(buckets []BucketUnits) Summary {
	var s Summary
	for _, b := range buckets {
		s.Buckets++
		if b.Completed {
			s.CompletedBuckets++
		} else {
			s.ActiveBuckets++
		}
		s.Purchased += b.UnitsInBucket
		s.Remaining += b.RemainingUnits
	}
	s.Drawn = s.Purchased - s.Remaining
	return s
}

// Reconciles reports whether the buckets agree with the consumption log:
// sum(remaining) + sum(consumed) == sum(purchased).
func (s Summary) Reconciles(consumedUnits int) bool {
	return s.Remaining+consumedUnits == s.Purchased
}

package models

// Membership is the relationship between one User and one Group.
// It is stored once, keyed by (UserID, GroupID), and indexed from both sides.
type Membership struct {
	UserID  string
	GroupID string

	// Balance is the member's debt. Always <= 0; 0 means nothing owed.
	Balance int64

	// IsAdmin is true for exactly one member of each non-empty group.
	IsAdmin bool

	// ActiveBucketID is the bucket consumption is drawn from.
	// Empty when the member has no bucket with units left.
	ActiveBucketID string

	// JoinedAt is the Unix timestamp when the user joined.
	JoinedAt int64

	Version int64
}

// HasActiveBucket reports whether the member can currently consume.
func (m *Membership) HasActiveBucket() bool {
	return m.ActiveBucketID != ""
}

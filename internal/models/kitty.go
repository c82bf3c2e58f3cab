package models

// KittyTransaction is a cash contribution by a member to the group's kitty.
// Transactions are append-only and always positive.
type KittyTransaction struct {
	ID      string
	GroupID string
	UserID  string

	// Amount is the contribution in minor currency units. Always > 0.
	Amount int64

	// Comment is an optional free-text note.
	Comment string

	CreatedAt int64
}

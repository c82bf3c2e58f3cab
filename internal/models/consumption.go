package models

// Consumption records units a member drew from a bucket (honor system).
// Consumptions are append-only.
type Consumption struct {
	ID         string
	GroupID    string
	UserID     string
	Units      int
	BucketID   string
	ConsumedAt int64
}

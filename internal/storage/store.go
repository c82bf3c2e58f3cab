// Package storage provides abstractions for persistent data storage.
package storage

import (
	"context"
	"errors"

	"github.com/mmynk/kitty/internal/models"
)

var (
	// ErrNotFound is returned when a requested row does not exist.
	ErrNotFound = errors.New("not found")

	// ErrConflict is returned when a transaction lost a race with a
	// concurrent writer: a version-checked update matched no row, or the
	// database refused the write because the read snapshot went stale.
	// Store.Update retries the whole transaction on ErrConflict.
	ErrConflict = errors.New("concurrent modification")

	// ErrDuplicate is returned when an insert violates a uniqueness constraint.
	ErrDuplicate = errors.New("duplicate")

	// ErrOverflow is returned when an in-place increment would leave the
	// int64 range. Nothing is written.
	ErrOverflow = errors.New("value out of range")
)

// Store defines the interface for transactional storage.
// This abstraction allows swapping storage backends (SQLite, PostgreSQL, etc.)
// without changing the ledger.
type Store interface {
	// Update runs fn inside a read-write transaction and commits it if fn
	// returns nil. If the transaction hits ErrConflict it is rolled back
	// and fn is run again from scratch, so fn must not have side effects
	// outside the transaction.
	Update(ctx context.Context, fn func(tx Tx) error) error

	// View runs fn inside a read-only transaction.
	View(ctx context.Context, fn func(tx Tx) error) error

	// Close releases any resources held by the store.
	Close() error
}

// Tx is the set of reads and writes available inside a transaction.
//
// Getters return an error wrapping ErrNotFound when the row is missing.
// Update methods are version-checked: they write only if the row's version
// still equals the version read earlier in the transaction, bump it, and
// return ErrConflict otherwise.
type Tx interface {
	// Users

	CreateUser(ctx context.Context, user *models.User) error
	GetUser(ctx context.Context, userID string) (*models.User, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)

	// Groups

	CreateGroup(ctx context.Context, group *models.Group) error
	GetGroup(ctx context.Context, groupID string) (*models.Group, error)
	SetGroupAdmin(ctx context.Context, group *models.Group, adminUserID string) error
	// IncrementKitty adds delta to the group's kitty in place, without a
	// read-modify-write. Returns ErrOverflow if the sum would not fit.
	IncrementKitty(ctx context.Context, groupID string, delta int64) error

	// Memberships

	CreateMembership(ctx context.Context, m *models.Membership) error
	GetMembership(ctx context.Context, userID, groupID string) (*models.Membership, error)
	UpdateMembership(ctx context.Context, m *models.Membership) error
	ListMembersByGroup(ctx context.Context, groupID string) ([]*models.Membership, error)
	ListMembershipsByUser(ctx context.Context, userID string) ([]*models.Membership, error)

	// Buckets

	CreateBuckets(ctx context.Context, buckets []*models.Bucket) error
	GetBucket(ctx context.Context, bucketID string) (*models.Bucket, error)
	UpdateBucket(ctx context.Context, b *models.Bucket) error
	// NextActiveBucket returns the oldest active bucket with units left for
	// the member, skipping excludeBucketID. Returns ErrNotFound if none.
	NextActiveBucket(ctx context.Context, groupID, userID, excludeBucketID string) (*models.Bucket, error)
	ListBuckets(ctx context.Context, groupID, userID string) ([]*models.Bucket, error)

	// Consumptions

	CreateConsumption(ctx context.Context, c *models.Consumption) error
	ListConsumptions(ctx context.Context, groupID, userID string) ([]*models.Consumption, error)
	SumConsumedUnits(ctx context.Context, groupID, userID string) (int, error)

	// Kitty transactions

	CreateKittyTransaction(ctx context.Context, t *models.KittyTransaction) error
	ListKittyTransactions(ctx context.Context, groupID string) ([]*models.KittyTransaction, error)

	// Join requests

	CreateJoinRequest(ctx context.Context, r *models.JoinRequest) error
	GetJoinRequest(ctx context.Context, requestID string) (*models.JoinRequest, error)
	// FindPendingJoinRequest returns ErrNotFound if the user has no pending
	// request for the group.
	FindPendingJoinRequest(ctx context.Context, userID, groupID string) (*models.JoinRequest, error)
	UpdateJoinRequest(ctx context.Context, r *models.JoinRequest) error
	ListJoinRequests(ctx context.Context, groupID string, status models.JoinRequestStatus) ([]*models.JoinRequest, error)
}

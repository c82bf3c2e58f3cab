package models

// Group is a set of members who buy buckets together and pay into a shared kitty.
type Group struct {
	// ID is the unique identifier for the group (UUID format).
	ID string

	// Name is the display name of the group (e.g., "Office Coffee").
	Name string

	// KittyBalance is the pooled contribution total. Never negative.
	KittyBalance int64

	// AdminUserID points at the group's single admin member.
	// Empty while the group has no members.
	AdminUserID string

	// CreatedAt is the Unix timestamp when the group was created.
	CreatedAt int64

	// Version is the optimistic concurrency token for the admin pointer.
	Version int64
}

// HasMembers reports whether anyone has joined the group. The first member
// always becomes admin and memberships are never removed, so an empty admin
// pointer means an empty group.
func (g *Group) HasMembers() bool {
	return g.AdminUserID != ""
}

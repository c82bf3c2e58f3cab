// Package models defines the core domain records for kitty.
//
// # Records
//
//   - User: a registered person
//   - Group: a set of members sharing a kitty (cash pool)
//   - Membership: the single (user, group) relationship row carrying the
//     member's debt balance, admin flag and active bucket pointer
//   - Bucket: a purchased pool of consumable units owned by one member
//   - Consumption: an append-only record of units drawn from a bucket
//   - KittyTransaction: an append-only contribution to a group's kitty
//   - JoinRequest: a pending/approved/denied request to join a group
//
// # Conventions
//
//  1. IDs are UUID strings; relationships are ID strings, never pointers.
//  2. Timestamps are Unix seconds.
//  3. Money (balances, kitty, contributions) is int64 minor currency units.
//  4. Rows that can be updated carry a Version used for optimistic
//     concurrency control by the storage layer. Callers never set it.
package models

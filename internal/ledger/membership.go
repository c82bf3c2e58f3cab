package ledger

import (
	"context"
	"errors"
	"log/slog"

	"github.com/mmynk/kitty/internal/models"
	"github.com/mmynk/kitty/internal/storage"
)

// Join makes userID a member of groupID.
//
// The first member of a group always becomes its admin, whatever was
// requested. Asking for admin in a group that already has members fails
// AdminConflict, since the group already has its one admin.
func (l *Ledger) Join(ctx context.Context, userID, groupID string, requestedAdmin bool) (*models.Membership, error) {
	var membership *models.Membership
	err := l.update(ctx, "join", func(tx storage.Tx) error {
		m, err := l.joinTx(ctx, tx, userID, groupID, requestedAdmin, l.timestamp())
		membership = m
		return err
	})
	if err != nil {
		return nil, err
	}

	slog.Info("Member joined", "group_id", groupID, "user_id", userID, "is_admin", membership.IsAdmin)
	return membership, nil
}

// joinTx is the body of Join, shared with CreateGroup and ApproveJoin.
func (l *Ledger) joinTx(ctx context.Context, tx storage.Tx, userID, groupID string, requestedAdmin bool, now int64) (*models.Membership, error) {
	if _, err := requireUser(ctx, tx, userID); err != nil {
		return nil, err
	}
	group, err := requireGroup(ctx, tx, groupID)
	if err != nil {
		return nil, err
	}

	_, err = tx.GetMembership(ctx, userID, groupID)
	if err == nil {
		return nil, newError(ReasonMembershipExists, "user is already a member").forUser(userID, groupID)
	}
	if !errors.Is(err, storage.ErrNotFound) {
		return nil, err
	}

	isAdmin := !group.HasMembers()
	if !isAdmin && requestedAdmin {
		return nil, newError(ReasonAdminConflict, "group already has admin %s", group.AdminUserID).
			forUser(userID, groupID)
	}

	m := &models.Membership{
		UserID:   userID,
		GroupID:  groupID,
		IsAdmin:  isAdmin,
		JoinedAt: now,
	}
	if err := tx.CreateMembership(ctx, m); err != nil {
		return nil, retryOnDuplicate(err)
	}

	if isAdmin {
		// Version-checked: two first joiners racing cannot both become admin.
		if err := tx.SetGroupAdmin(ctx, group, userID); err != nil {
			return nil, err
		}
	}

	return m, nil
}

// IsAdmin reports whether userID is the admin of groupID. Fails NotMember.
func (l *Ledger) IsAdmin(ctx context.Context, userID, groupID string) (bool, error) {
	var isAdmin bool
	err := l.view(ctx, "is_admin", func(tx storage.Tx) error {
		m, err := requireMembership(ctx, tx, userID, groupID)
		if err != nil {
			return err
		}
		isAdmin = m.IsAdmin
		return nil
	})
	return isAdmin, err
}

// GetMembership returns the membership of userID in groupID. Fails NotMember.
func (l *Ledger) GetMembership(ctx context.Context, userID, groupID string) (*models.Membership, error) {
	var membership *models.Membership
	err := l.view(ctx, "get_membership", func(tx storage.Tx) error {
		m, err := requireMembership(ctx, tx, userID, groupID)
		membership = m
		return err
	})
	return membership, err
}

// ListMembers returns the group's memberships, oldest first.
func (l *Ledger) ListMembers(ctx context.Context, groupID string) ([]*models.Membership, error) {
	var members []*models.Membership
	err := l.view(ctx, "list_members", func(tx storage.Tx) error {
		if _, err := requireGroup(ctx, tx, groupID); err != nil {
			return err
		}
		ms, err := tx.ListMembersByGroup(ctx, groupID)
		members = ms
		return err
	})
	return members, err
}

// ListUserGroups returns every membership held by userID.
func (l *Ledger) ListUserGroups(ctx context.Context, userID string) ([]*models.Membership, error) {
	var memberships []*models.Membership
	err := l.view(ctx, "list_user_groups", func(tx storage.Tx) error {
		if _, err := requireUser(ctx, tx, userID); err != nil {
			return err
		}
		ms, err := tx.ListMembershipsByUser(ctx, userID)
		memberships = ms
		return err
	})
	return memberships, err
}

// TransferAdmin hands the admin role from adminUserID to newAdminUserID.
// The old flag, the new flag and the group's admin pointer change together.
func (l *Ledger) TransferAdmin(ctx context.Context, groupID, adminUserID, newAdminUserID string) error {
	err := l.update(ctx, "transfer_admin", func(tx storage.Tx) error {
		current, err := requireAdmin(ctx, tx, adminUserID, groupID)
		if err != nil {
			return err
		}
		if newAdminUserID == adminUserID {
			return nil
		}
		next, err := requireMembership(ctx, tx, newAdminUserID, groupID)
		if err != nil {
			return err
		}
		group, err := requireGroup(ctx, tx, groupID)
		if err != nil {
			return err
		}

		// Clear before set: at most one admin row per group at any statement.
		current.IsAdmin = false
		if err := tx.UpdateMembership(ctx, current); err != nil {
			return err
		}
		next.IsAdmin = true
		if err := tx.UpdateMembership(ctx, next); err != nil {
			return err
		}
		return tx.SetGroupAdmin(ctx, group, newAdminUserID)
	})
	if err != nil {
		return err
	}

	slog.Info("Admin transferred", "group_id", groupID, "from_user_id", adminUserID, "to_user_id", newAdminUserID)
	return nil
}

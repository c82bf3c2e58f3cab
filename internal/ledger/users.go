package ledger

import (
	"context"
	"errors"
	"log/slog"

	"github.com/mmynk/kitty/internal/models"
	"github.com/mmynk/kitty/internal/storage"
)

// CreateUser stores a new user, filling in ID and CreatedAt if unset.
// Fails EmailExists if the email is taken.
func (l *Ledger) CreateUser(ctx context.Context, user *models.User) error {
	if user.ID == "" {
		user.ID = l.newID()
	}
	if user.CreatedAt == 0 {
		user.CreatedAt = l.timestamp()
	}

	err := l.update(ctx, "create_user", func(tx storage.Tx) error {
		_, err := tx.GetUserByEmail(ctx, user.Email)
		if err == nil {
			return newError(ReasonEmailExists, "email %q is already registered", user.Email)
		}
		if !errors.Is(err, storage.ErrNotFound) {
			return err
		}
		return retryOnDuplicate(tx.CreateUser(ctx, user))
	})
	if err != nil {
		return err
	}

	slog.Info("User created", "user_id", user.ID)
	return nil
}

// GetUser retrieves a user by ID.
func (l *Ledger) GetUser(ctx context.Context, userID string) (*models.User, error) {
	var user *models.User
	err := l.view(ctx, "get_user", func(tx storage.Tx) error {
		u, err := requireUser(ctx, tx, userID)
		user = u
		return err
	})
	return user, err
}

// GetUserByEmail retrieves a user by email. Fails UserNotFound.
func (l *Ledger) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	var user *models.User
	err := l.view(ctx, "get_user_by_email", func(tx storage.Tx) error {
		u, err := tx.GetUserByEmail(ctx, email)
		if errors.Is(err, storage.ErrNotFound) {
			return newError(ReasonUserNotFound, "no user with email %q", email)
		}
		user = u
		return err
	})
	return user, err
}

// CreateGroup creates a group and joins the creator as its admin in one
// transaction.
func (l *Ledger) CreateGroup(ctx context.Context, name, creatorUserID string) (*models.Group, error) {
	var group *models.Group
	err := l.update(ctx, "create_group", func(tx storage.Tx) error {
		now := l.timestamp()
		g := &models.Group{
			ID:        l.newID(),
			Name:      name,
			CreatedAt: now,
		}
		if _, err := requireUser(ctx, tx, creatorUserID); err != nil {
			return err
		}
		if err := tx.CreateGroup(ctx, g); err != nil {
			return err
		}
		if _, err := l.joinTx(ctx, tx, creatorUserID, g.ID, true, now); err != nil {
			return err
		}
		// joinTx moved the admin pointer; re-read for the caller.
		fresh, err := tx.GetGroup(ctx, g.ID)
		if err != nil {
			return err
		}
		group = fresh
		return nil
	})
	if err != nil {
		return nil, err
	}

	slog.Info("Group created", "group_id", group.ID, "admin_user_id", creatorUserID)
	return group, nil
}

// GetGroup retrieves a group by ID.
func (l *Ledger) GetGroup(ctx context.Context, groupID string) (*models.Group, error) {
	var group *models.Group
	err := l.view(ctx, "get_group", func(tx storage.Tx) error {
		g, err := requireGroup(ctx, tx, groupID)
		group = g
		return err
	})
	return group, err
}

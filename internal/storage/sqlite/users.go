package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/mmynk/kitty/internal/models"
)

const userColumns = `id, display_name, email, phone_number, password_hash, created_at`

// CreateUser inserts a new user into the database.
func (t *sqlTx) CreateUser(ctx context.Context, user *models.User) error {
	_, err := t.tx.ExecContext(ctx,
		`INSERT INTO users (`+userColumns+`) VALUES (?, ?, ?, ?, ?, ?)`,
		user.ID,
		user.DisplayName,
		user.Email,
		nullString(user.PhoneNumber),
		nullString(user.PasswordHash),
		user.CreatedAt,
	)
	if err != nil {
		return classify(fmt.Errorf("failed to create user: %w", err))
	}

	return nil
}

// GetUser retrieves a user by their ID.
func (t *sqlTx) GetUser(ctx context.Context, userID string) (*models.User, error) {
	row := t.tx.QueryRowContext(ctx, `SELECT `+userColumns+` FROM users WHERE id = ?`, userID)
	user, err := scanUser(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, notFound("user", userID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user by ID: %w", err)
	}
	return user, nil
}

// GetUserByEmail retrieves a user by their email address.
func (t *sqlTx) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	row := t.tx.QueryRowContext(ctx, `SELECT `+userColumns+` FROM users WHERE email = ?`, email)
	user, err := scanUser(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, notFound("user with email", email)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user by email: %w", err)
	}
	return user, nil
}

func scanUser(row *sql.Row) (*models.User, error) {
	user := &models.User{}
	var phone, hash sql.NullString
	if err := row.Scan(
		&user.ID,
		&user.DisplayName,
		&user.Email,
		&phone,
		&hash,
		&user.CreatedAt,
	); err != nil {
		return nil, err
	}
	user.PhoneNumber = phone.String
	user.PasswordHash = hash.String
	return user, nil
}

package pg

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/pinboard-dev/pinboard/internal/domain"
	internal_errors "github.com/pinboard-dev/pinboard/internal/errors"
)

const userColumns = "id, email, password_hash, status, activation_token, password_reset_token, full_name, about, created_at"

// =========================================================================
// Public methods (satisfy the service.AuthStorage interface)
// =========================================================================

// SaveUser inserts a new user record. The unique index on email turns a
// duplicate registration into a Conflict regardless of request ordering.
func (s *Storage) SaveUser(user domain.User) (int64, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var id int64
	err := s.withTx(ctx, func(tx *sql.Tx) error {
		var err error
		id, err = s.saveUser(tx, user)
		return err
	})
	return id, err
}

// User fetches a user by email. Read-only, uses the pool directly.
func (s *Storage) User(email string) (domain.User, error) {
	return s.userBy(s.db, "email = $1", email)
}

// UserByActivationToken fetches the user holding the given activation token.
func (s *Storage) UserByActivationToken(token string) (domain.User, error) {
	return s.userBy(s.db, "activation_token = $1", token)
}

// ActivateUser flips the account status to active. The transition is
// one-way; repeating it is harmless.
func (s *Storage) ActivateUser(id int64) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	return s.withTx(ctx, func(tx *sql.Tx) error {
		return s.activateUser(tx, id)
	})
}

// SetPasswordResetToken stores a fresh reset token, overwriting any
// prior value. A no-op when the email matches no record: forgot-password
// must not reveal whether an address is registered.
func (s *Storage) SetPasswordResetToken(email, token string) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	return s.withTx(ctx, func(tx *sql.Tx) error {
		_, err := tx.Exec("UPDATE users SET password_reset_token = $1 WHERE email = $2", token, email)
		if err != nil {
			return fmt.Errorf("failed to set password reset token: %w", err)
		}
		return nil
	})
}

// UpdatePassword stores a new password hash and clears the reset token
// in the same statement, making the token single-use.
func (s *Storage) UpdatePassword(email, passHash string) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	return s.withTx(ctx, func(tx *sql.Tx) error {
		return s.updatePassword(tx, email, passHash)
	})
}

// =========================================================================
// Internal methods (core database logic, transaction-agnostic)
// =========================================================================

func (s *Storage) saveUser(q Querier, user domain.User) (int64, error) {
	var id int64
	err := q.QueryRow(`
        INSERT INTO users(email, password_hash, status, activation_token, password_reset_token, full_name, about)
        VALUES($1, $2, $3, $4, $5, $6, $7) RETURNING id`,
		user.Email, user.PassHash, user.Status, user.ActivationToken, user.PasswordResetToken, user.FullName, user.About,
	).Scan(&id)
	if err != nil {
		if isUniqueViolation(err) {
			return -1, &internal_errors.ErrorWithStatusCode{Message: "Email already registered", StatusCode: http.StatusConflict}
		}
		return -1, fmt.Errorf("failed to insert user: %w", err)
	}
	return id, nil
}

func (s *Storage) userBy(q Querier, where string, arg interface{}) (domain.User, error) {
	var user domain.User
	err := q.QueryRow("SELECT "+userColumns+" FROM users WHERE "+where, arg).Scan(
		&user.Id, &user.Email, &user.PassHash, &user.Status,
		&user.ActivationToken, &user.PasswordResetToken,
		&user.FullName, &user.About, &user.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.User{}, &internal_errors.ErrorWithStatusCode{Message: "User not found", StatusCode: http.StatusNotFound}
		}
		return domain.User{}, fmt.Errorf("failed to query user: %w", err)
	}
	return user, nil
}

func (s *Storage) activateUser(q Querier, id int64) error {
	result, err := q.Exec("UPDATE users SET status = $1 WHERE id = $2", domain.StatusActive, id)
	if err != nil {
		return fmt.Errorf("failed to activate user: %w", err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check affected rows for activation: %w", err)
	}
	if rowsAffected == 0 {
		return &internal_errors.ErrorWithStatusCode{Message: "User not found", StatusCode: http.StatusNotFound}
	}
	return nil
}

func (s *Storage) updatePassword(q Querier, email, passHash string) error {
	result, err := q.Exec("UPDATE users SET password_hash = $1, password_reset_token = '' WHERE email = $2", passHash, email)
	if err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check affected rows for password update: %w", err)
	}
	if rowsAffected == 0 {
		return &internal_errors.ErrorWithStatusCode{Message: "User not found", StatusCode: http.StatusNotFound}
	}
	return nil
}

// Copyright 2026 The RifleAxis Authors
// SPDX-License-Identifier: Apache-2.0

package store

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"zombiezen.com/go/sqlite"
	"zombiezen.com/go/sqlite/sqlitex"

	"github.com/rifleaxis-foundation/rifleaxis/lib/schema/account"
)

const userColumns = `id, full_name, email, password_hash, google_id,
	email_verified, is_active, photo_url, sign_in_method,
	created_at, updated_at, last_sign_in`

// CreateUser inserts a new user row. Assigns the ID and timestamps.
// Returns ErrEmailTaken if the email is already registered.
func (s *Store) CreateUser(ctx context.Context, user *account.User) error {
	conn, err := s.pool.Take(ctx)
	if err != nil {
		return fmt.Errorf("store: create user: %w", err)
	}
	defer s.pool.Put(conn)

	endTransaction, err := sqlitex.ImmediateTransaction(conn)
	if err != nil {
		return fmt.Errorf("store: create user: %w", err)
	}
	defer endTransaction(&err)

	taken := false
	err = sqlitex.Execute(conn, `SELECT 1 FROM users WHERE email = ?`, &sqlitex.ExecOptions{
		Args:       []any{user.Email},
		ResultFunc: func(*sqlite.Stmt) error { taken = true; return nil },
	})
	if err != nil {
		return fmt.Errorf("store: create user: %w", err)
	}
	if taken {
		return ErrEmailTaken
	}

	now := s.now()
	user.ID = uuid.NewString()
	user.CreatedAt = now
	user.UpdatedAt = now

	err = sqlitex.Execute(conn, `INSERT INTO users
		(id, full_name, email, password_hash, google_id, email_verified,
		 is_active, photo_url, sign_in_method, created_at, updated_at, last_sign_in)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`, &sqlitex.ExecOptions{
		Args: []any{
			user.ID,
			user.FullName,
			user.Email,
			emptyAsNil(user.PasswordHash),
			emptyAsNil(user.GoogleID),
			boolArg(user.EmailVerified),
			boolArg(user.IsActive),
			emptyAsNil(user.PhotoURL),
			user.SignInMethod,
			timestamp(user.CreatedAt),
			timestamp(user.UpdatedAt),
			zeroTimeAsNil(user.LastSignIn),
		},
	})
	if err != nil {
		return fmt.Errorf("store: create user: %w", err)
	}
	return nil
}

// UserByID returns the user with the given ID.
func (s *Store) UserByID(ctx context.Context, id string) (*account.User, error) {
	return s.findUser(ctx, `WHERE id = ?`, id)
}

// UserByEmail returns the user registered under the given email. The
// caller is expected to have lowercased it.
func (s *Store) UserByEmail(ctx context.Context, email string) (*account.User, error) {
	return s.findUser(ctx, `WHERE email = ?`, email)
}

// UserByGoogleID returns the user linked to the given Google account.
func (s *Store) UserByGoogleID(ctx context.Context, googleID string) (*account.User, error) {
	return s.findUser(ctx, `WHERE google_id = ?`, googleID)
}

func (s *Store) findUser(ctx context.Context, where string, arg any) (*account.User, error) {
	conn, err := s.pool.Take(ctx)
	if err != nil {
		return nil, fmt.Errorf("store: find user: %w", err)
	}
	defer s.pool.Put(conn)

	var user *account.User
	query := fmt.Sprintf(`SELECT %s FROM users %s`, userColumns, where)
	err = sqlitex.Execute(conn, query, &sqlitex.ExecOptions{
		Args: []any{arg},
		ResultFunc: func(stmt *sqlite.Stmt) error {
			user = readUser(stmt)
			return nil
		},
	})
	if err != nil {
		return nil, fmt.Errorf("store: find user: %w", err)
	}
	if user == nil {
		return nil, ErrNotFound
	}
	return user, nil
}

// UpdateUser writes the mutable user fields back to the row and
// refreshes updated_at.
func (s *Store) UpdateUser(ctx context.Context, user *account.User) error {
	conn, err := s.pool.Take(ctx)
	if err != nil {
		return fmt.Errorf("store: update user: %w", err)
	}
	defer s.pool.Put(conn)

	user.UpdatedAt = s.now()
	err = sqlitex.Execute(conn, `UPDATE users SET
		full_name = ?, password_hash = ?, google_id = ?, email_verified = ?,
		is_active = ?, photo_url = ?, sign_in_method = ?, updated_at = ?,
		last_sign_in = ?
		WHERE id = ?`, &sqlitex.ExecOptions{
		Args: []any{
			user.FullName,
			emptyAsNil(user.PasswordHash),
			emptyAsNil(user.GoogleID),
			boolArg(user.EmailVerified),
			boolArg(user.IsActive),
			emptyAsNil(user.PhotoURL),
			user.SignInMethod,
			timestamp(user.UpdatedAt),
			zeroTimeAsNil(user.LastSignIn),
			user.ID,
		},
	})
	if err != nil {
		return fmt.Errorf("store: update user: %w", err)
	}
	if conn.Changes() == 0 {
		return ErrNotFound
	}
	return nil
}

// RecordSignIn stamps last_sign_in with the current time.
func (s *Store) RecordSignIn(ctx context.Context, userID string) error {
	conn, err := s.pool.Take(ctx)
	if err != nil {
		return fmt.Errorf("store: record sign-in: %w", err)
	}
	defer s.pool.Put(conn)

	now := s.now()
	err = sqlitex.Execute(conn,
		`UPDATE users SET last_sign_in = ?, updated_at = ? WHERE id = ?`,
		&sqlitex.ExecOptions{
			Args: []any{timestamp(now), timestamp(now), userID},
		})
	if err != nil {
		return fmt.Errorf("store: record sign-in: %w", err)
	}
	if conn.Changes() == 0 {
		return ErrNotFound
	}
	return nil
}

// CreateResetToken invalidates the user's outstanding tokens of the
// same kind and inserts a fresh one. Assigns the ID and created_at.
func (s *Store) CreateResetToken(ctx context.Context, token *account.ResetToken) error {
	conn, err := s.pool.Take(ctx)
	if err != nil {
		return fmt.Errorf("store: create reset token: %w", err)
	}
	defer s.pool.Put(conn)

	endTransaction, err := sqlitex.ImmediateTransaction(conn)
	if err != nil {
		return fmt.Errorf("store: create reset token: %w", err)
	}
	defer endTransaction(&err)

	err = sqlitex.Execute(conn,
		`UPDATE password_reset_tokens SET used = 1 WHERE user_id = ? AND kind = ? AND used = 0`,
		&sqlitex.ExecOptions{
			Args: []any{token.UserID, token.Kind},
		})
	if err != nil {
		return fmt.Errorf("store: create reset token: %w", err)
	}

	token.ID = uuid.NewString()
	token.CreatedAt = s.now()
	err = sqlitex.Execute(conn, `INSERT INTO password_reset_tokens
		(id, user_id, token, kind, used, expires_at, created_at)
		VALUES (?, ?, ?, ?, 0, ?, ?)`, &sqlitex.ExecOptions{
		Args: []any{
			token.ID,
			token.UserID,
			token.Token,
			token.Kind,
			timestamp(token.ExpiresAt),
			timestamp(token.CreatedAt),
		},
	})
	if err != nil {
		return fmt.Errorf("store: create reset token: %w", err)
	}
	return nil
}

// ValidResetToken returns the unused, unexpired token of the given
// kind matching the supplied value, or ErrNotFound.
func (s *Store) ValidResetToken(ctx context.Context, userID, value, kind string) (*account.ResetToken, error) {
	conn, err := s.pool.Take(ctx)
	if err != nil {
		return nil, fmt.Errorf("store: find reset token: %w", err)
	}
	defer s.pool.Put(conn)

	var token *account.ResetToken
	err = sqlitex.Execute(conn, `SELECT id, user_id, token, kind, used, expires_at, created_at
		FROM password_reset_tokens
		WHERE user_id = ? AND token = ? AND kind = ? AND used = 0 AND expires_at > ?`,
		&sqlitex.ExecOptions{
			Args: []any{userID, value, kind, timestamp(s.now())},
			ResultFunc: func(stmt *sqlite.Stmt) error {
				token = &account.ResetToken{
					ID:        stmt.ColumnText(0),
					UserID:    stmt.ColumnText(1),
					Token:     stmt.ColumnText(2),
					Kind:      stmt.ColumnText(3),
					Used:      stmt.ColumnInt64(4) != 0,
					ExpiresAt: fromTimestamp(stmt.ColumnInt64(5)),
					CreatedAt: fromTimestamp(stmt.ColumnInt64(6)),
				}
				return nil
			},
		})
	if err != nil {
		return nil, fmt.Errorf("store: find reset token: %w", err)
	}
	if token == nil {
		return nil, ErrNotFound
	}
	return token, nil
}

// MarkResetTokenUsed consumes a token so it cannot be replayed.
func (s *Store) MarkResetTokenUsed(ctx context.Context, id string) error {
	conn, err := s.pool.Take(ctx)
	if err != nil {
		return fmt.Errorf("store: mark reset token used: %w", err)
	}
	defer s.pool.Put(conn)

	err = sqlitex.Execute(conn,
		`UPDATE password_reset_tokens SET used = 1 WHERE id = ?`,
		&sqlitex.ExecOptions{Args: []any{id}})
	if err != nil {
		return fmt.Errorf("store: mark reset token used: %w", err)
	}
	if conn.Changes() == 0 {
		return ErrNotFound
	}
	return nil
}

// PurgeExpiredResetTokens deletes tokens past their expiry and
// returns how many were removed. Called by the background sweep.
func (s *Store) PurgeExpiredResetTokens(ctx context.Context) (int, error) {
	conn, err := s.pool.Take(ctx)
	if err != nil {
		return 0, fmt.Errorf("store: purge reset tokens: %w", err)
	}
	defer s.pool.Put(conn)

	err = sqlitex.Execute(conn,
		`DELETE FROM password_reset_tokens WHERE expires_at <= ?`,
		&sqlitex.ExecOptions{Args: []any{timestamp(s.now())}})
	if err != nil {
		return 0, fmt.Errorf("store: purge reset tokens: %w", err)
	}
	return conn.Changes(), nil
}

func readUser(stmt *sqlite.Stmt) *account.User {
	user := &account.User{
		ID:            stmt.ColumnText(0),
		FullName:      stmt.ColumnText(1),
		Email:         stmt.ColumnText(2),
		EmailVerified: stmt.ColumnInt64(5) != 0,
		IsActive:      stmt.ColumnInt64(6) != 0,
		SignInMethod:  stmt.ColumnText(8),
		CreatedAt:     fromTimestamp(stmt.ColumnInt64(9)),
		UpdatedAt:     fromTimestamp(stmt.ColumnInt64(10)),
	}
	if hash := columnText(stmt, 3); hash != nil {
		user.PasswordHash = *hash
	}
	if googleID := columnText(stmt, 4); googleID != nil {
		user.GoogleID = *googleID
	}
	if photo := columnText(stmt, 7); photo != nil {
		user.PhotoURL = *photo
	}
	if signIn := columnTime(stmt, 11); signIn != nil {
		user.LastSignIn = *signIn
	}
	return user
}

func emptyAsNil(value string) any {
	if value == "" {
		return nil
	}
	return value
}

func boolArg(value bool) int64 {
	if value {
		return 1
	}
	return 0
}

func zeroTimeAsNil(t time.Time) any {
	if t.IsZero() {
		return nil
	}
	return timestamp(t)
}

// File path: internal/sqlite/queries.go
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	sqlite3 "github.com/mattn/go-sqlite3"

	"github.com/NicoLafakis/HubAuditor9001/internal/auth"
)

var (
	ErrNotFound       = errors.New("sqlite: not found")
	ErrDuplicateEmail = errors.New("sqlite: email already registered")
)

// CreateUser registers a new account with a bcrypt-hashed password.
func (s *Store) CreateUser(ctx context.Context, email, password, name string) (*User, error) {
	hash, err := auth.HashPassword(password)
	if err != nil {
		return nil, err
	}
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO users (email, password_hash, name) VALUES (?, ?, ?)`,
		strings.ToLower(strings.TrimSpace(email)), hash, name)
	if err != nil {
		var sqlErr sqlite3.Error
		if errors.As(err, &sqlErr) && sqlErr.Code == sqlite3.ErrConstraint {
			return nil, ErrDuplicateEmail
		}
		return nil, fmt.Errorf("create user: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("create user id: %w", err)
	}
	return s.GetUserByID(ctx, id)
}

// VerifyUser checks credentials and returns the account on success.
func (s *Store) VerifyUser(ctx context.Context, email, password string) (*User, error) {
	var user User
	err := s.db.GetContext(ctx, &user,
		`SELECT id, email, password_hash, name, role, created_at, updated_at
                 FROM users WHERE email = ?`,
		strings.ToLower(strings.TrimSpace(email)))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("verify user: %w", err)
	}
	if !auth.CheckPassword(user.PasswordHash, password) {
		return nil, ErrNotFound
	}
	return &user, nil
}

func (s *Store) GetUserByID(ctx context.Context, id int64) (*User, error) {
	var user User
	err := s.db.GetContext(ctx, &user,
		`SELECT id, email, password_hash, name, role, created_at, updated_at
                 FROM users WHERE id = ?`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get user: %w", err)
	}
	return &user, nil
}

func (s *Store) GetUserByEmail(ctx context.Context, email string) (*User, error) {
	var user User
	err := s.db.GetContext(ctx, &user,
		`SELECT id, email, password_hash, name, role, created_at, updated_at
                 FROM users WHERE email = ?`,
		strings.ToLower(strings.TrimSpace(email)))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get user by email: %w", err)
	}
	return &user, nil
}

// UpdatePassword replaces the stored hash after the caller has verified the
// current password.
func (s *Store) UpdatePassword(ctx context.Context, userID int64, newPassword string) error {
	hash, err := auth.HashPassword(newPassword)
	if err != nil {
		return err
	}
	_, err = s.db.ExecContext(ctx,
		`UPDATE users SET password_hash = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?`,
		hash, userID)
	if err != nil {
		return fmt.Errorf("update password: %w", err)
	}
	return nil
}

// ListUsers returns all accounts, newest first.
func (s *Store) ListUsers(ctx context.Context) ([]User, error) {
	var users []User
	err := s.db.SelectContext(ctx, &users,
		`SELECT id, email, password_hash, name, role, created_at, updated_at
                 FROM users ORDER BY created_at DESC, id DESC`)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return users, nil
}

// SaveToken encrypts and upserts a CRM token under (user, name).
func (s *Store) SaveToken(ctx context.Context, userID int64, tokenName, token, tokenType string) error {
	if tokenType == "" {
		tokenType = "hubspot"
	}
	encrypted, err := s.cipher.Encrypt(token)
	if err != nil {
		return err
	}
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO user_tokens (user_id, token_name, encrypted_token, token_type)
                 VALUES (?, ?, ?, ?)
                 ON CONFLICT(user_id, token_name)
                 DO UPDATE SET encrypted_token = excluded.encrypted_token,
                               token_type = excluded.token_type,
                               updated_at = CURRENT_TIMESTAMP`,
		userID, tokenName, encrypted, tokenType)
	if err != nil {
		return fmt.Errorf("save token: %w", err)
	}
	return nil
}

// GetToken fetches and decrypts one stored CRM token.
func (s *Store) GetToken(ctx context.Context, userID int64, tokenName string) (string, error) {
	var encrypted string
	err := s.db.GetContext(ctx, &encrypted,
		`SELECT encrypted_token FROM user_tokens WHERE user_id = ? AND token_name = ?`,
		userID, tokenName)
	if errors.Is(err, sql.ErrNoRows) {
		return "", ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("get token: %w", err)
	}
	return s.cipher.Decrypt(encrypted)
}

// ListTokens returns token names and types without decrypting values.
func (s *Store) ListTokens(ctx context.Context, userID int64) ([]TokenInfo, error) {
	var tokens []TokenInfo
	err := s.db.SelectContext(ctx, &tokens,
		`SELECT token_name, token_type, created_at
                 FROM user_tokens WHERE user_id = ? ORDER BY created_at DESC, id DESC`,
		userID)
	if err != nil {
		return nil, fmt.Errorf("list tokens: %w", err)
	}
	return tokens, nil
}

func (s *Store) DeleteToken(ctx context.Context, userID int64, tokenName string) error {
	_, err := s.db.ExecContext(ctx,
		`DELETE FROM user_tokens WHERE user_id = ? AND token_name = ?`,
		userID, tokenName)
	if err != nil {
		return fmt.Errorf("delete token: %w", err)
	}
	return nil
}

// RecordAudit appends one run to the user's audit history.
func (s *Store) RecordAudit(ctx context.Context, userID int64, auditType string) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO audit_history (user_id, audit_type) VALUES (?, ?)`,
		userID, auditType)
	if err != nil {
		return fmt.Errorf("record audit: %w", err)
	}
	return nil
}

// ListAudits returns the user's audit history, newest first.
func (s *Store) ListAudits(ctx context.Context, userID int64, limit int) ([]AuditRecord, error) {
	if limit <= 0 {
		limit = 50
	}
	var records []AuditRecord
	err := s.db.SelectContext(ctx, &records,
		`SELECT id, user_id, audit_type, created_at
                 FROM audit_history WHERE user_id = ?
                 ORDER BY created_at DESC, id DESC LIMIT ?`,
		userID, limit)
	if err != nil {
		return nil, fmt.Errorf("list audits: %w", err)
	}
	return records, nil
}

// Stats aggregates counts for the admin dashboard. Recent signups cover the
// trailing seven days.
func (s *Store) Stats(ctx context.Context) (*AdminStats, error) {
	stats := &AdminStats{AuditsByType: map[string]int{}}

	if err := s.db.GetContext(ctx, &stats.TotalUsers,
		`SELECT COUNT(*) FROM users`); err != nil {
		return nil, fmt.Errorf("count users: %w", err)
	}
	if err := s.db.GetContext(ctx, &stats.TotalAudits,
		`SELECT COUNT(*) FROM audit_history`); err != nil {
		return nil, fmt.Errorf("count audits: %w", err)
	}
	if err := s.db.GetContext(ctx, &stats.RecentSignups,
		`SELECT COUNT(*) FROM users WHERE created_at >= datetime('now', '-7 days')`); err != nil {
		return nil, fmt.Errorf("count recent signups: %w", err)
	}

	rows, err := s.db.QueryxContext(ctx,
		`SELECT audit_type, COUNT(*) FROM audit_history GROUP BY audit_type`)
	if err != nil {
		return nil, fmt.Errorf("count audits by type: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var auditType string
		var count int
		if err := rows.Scan(&auditType, &count); err != nil {
			return nil, fmt.Errorf("scan audit count: %w", err)
		}
		stats.AuditsByType[auditType] = count
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate audit counts: %w", err)
	}
	return stats, nil
}

// Copyright (c) 2026 Inkwell. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/inkwell/internal/platform/dberr"
	"github.com/taibuivan/inkwell/internal/platform/sec"
)

// # Postgres Implementation

// PostgresUserRepository persists accounts into the users.account table.
type PostgresUserRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresUserRepository creates a Postgres-backed [UserRepository].
func NewPostgresUserRepository(pool *pgxpool.Pool) *PostgresUserRepository {
	return &PostgresUserRepository{pool: pool}
}

const userColumns = `id, username, email, password_hash, display_name, bio, role, created_at, updated_at`

// Create inserts a new account row. Unique violations on username or email
// surface as apperr.Conflict through dberr.
func (repository *PostgresUserRepository) Create(ctx context.Context, user *User) error {
	now := time.Now().UTC()
	user.CreatedAt = now
	user.UpdatedAt = now

	query := `
		INSERT INTO users.account
			(id, username, email, password_hash, display_name, bio, role, created_at, updated_at)
		VALUES
			($1, $2, $3, $4, $5, $6, $7, $8, $9)`

	_, err := repository.pool.Exec(ctx, query,
		user.ID, user.Username, user.Email, user.PasswordHash,
		user.DisplayName, user.Bio, user.Role, user.CreatedAt, user.UpdatedAt,
	)
	if err != nil {
		return dberr.Wrap(err, "create user")
	}
	return nil
}

// FindByID fetches a single account by primary key.
func (repository *PostgresUserRepository) FindByID(ctx context.Context, id string) (*User, error) {
	query := fmt.Sprintf(`SELECT %s FROM users.account WHERE id = $1`, userColumns)
	return repository.scanOne(ctx, query, id)
}

// FindByEmail fetches a single account by its unique email (case-insensitive).
func (repository *PostgresUserRepository) FindByEmail(ctx context.Context, email string) (*User, error) {
	query := fmt.Sprintf(`SELECT %s FROM users.account WHERE lower(email) = lower($1)`, userColumns)
	return repository.scanOne(ctx, query, email)
}

// FindByUsername fetches a single account by its unique username.
func (repository *PostgresUserRepository) FindByUsername(ctx context.Context, username string) (*User, error) {
	query := fmt.Sprintf(`SELECT %s FROM users.account WHERE username = $1`, userColumns)
	return repository.scanOne(ctx, query, username)
}

// UpdateProfile persists the caller-editable fields of an account.
func (repository *PostgresUserRepository) UpdateProfile(ctx context.Context, user *User) error {
	user.UpdatedAt = time.Now().UTC()

	query := `
		UPDATE users.account
		SET display_name = $2, bio = $3, updated_at = $4
		WHERE id = $1`

	tag, err := repository.pool.Exec(ctx, query, user.ID, user.DisplayName, user.Bio, user.UpdatedAt)
	if err != nil {
		return dberr.Wrap(err, "update profile")
	}
	if tag.RowsAffected() == 0 {
		return dberr.Wrap(dberr.ErrNotFound, "update profile")
	}
	return nil
}

// UpdateRole sets a new role on the target account and returns the updated
// entity. The elevation policy (admin-only, strictly upward) is enforced by
// the account service, not here.
func (repository *PostgresUserRepository) UpdateRole(ctx context.Context, id string, role sec.UserRole) (*User, error) {
	query := fmt.Sprintf(`
		UPDATE users.account
		SET role = $2, updated_at = $3
		WHERE id = $1
		RETURNING %s`, userColumns)

	row := repository.pool.QueryRow(ctx, query, id, role, time.Now().UTC())

	user := &User{}
	err := row.Scan(
		&user.ID, &user.Username, &user.Email, &user.PasswordHash,
		&user.DisplayName, &user.Bio, &user.Role, &user.CreatedAt, &user.UpdatedAt,
	)
	if err != nil {
		return nil, dberr.Wrap(err, "update role")
	}
	return user, nil
}

// List returns a filtered, paginated page of accounts plus the total count
// matching the filter.
func (repository *PostgresUserRepository) List(ctx context.Context, filter UserFilter, limit, offset int) ([]*User, int, error) {

	// ── 1. Assemble the WHERE clause from the optional filters ──────────────
	conditions := []string{"TRUE"}
	arguments := []any{}

	if filter.Role != "" {
		arguments = append(arguments, filter.Role)
		conditions = append(conditions, fmt.Sprintf("role = $%d", len(arguments)))
	}
	if filter.Query != "" {
		arguments = append(arguments, "%"+filter.Query+"%")
		index := len(arguments)
		conditions = append(conditions, fmt.Sprintf("(username ILIKE $%d OR display_name ILIKE $%d)", index, index))
	}
	whereClause := strings.Join(conditions, " AND ")

	// ── 2. Count the full result set for pagination metadata ────────────────
	var total int
	countQuery := fmt.Sprintf(`SELECT count(*) FROM users.account WHERE %s`, whereClause)
	if err := repository.pool.QueryRow(ctx, countQuery, arguments...).Scan(&total); err != nil {
		return nil, 0, dberr.Wrap(err, "count users")
	}

	// ── 3. Fetch the requested page ──────────────────────────────────────────
	arguments = append(arguments, limit, offset)
	pageQuery := fmt.Sprintf(`
		SELECT %s FROM users.account
		WHERE %s
		ORDER BY created_at DESC
		LIMIT $%d OFFSET $%d`, userColumns, whereClause, len(arguments)-1, len(arguments))

	rows, err := repository.pool.Query(ctx, pageQuery, arguments...)
	if err != nil {
		return nil, 0, dberr.Wrap(err, "list users")
	}
	defer rows.Close()

	users := []*User{}
	for rows.Next() {
		user := &User{}
		err := rows.Scan(
			&user.ID, &user.Username, &user.Email, &user.PasswordHash,
			&user.DisplayName, &user.Bio, &user.Role, &user.CreatedAt, &user.UpdatedAt,
		)
		if err != nil {
			return nil, 0, dberr.Wrap(err, "scan user")
		}
		users = append(users, user)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, dberr.Wrap(err, "iterate users")
	}

	return users, total, nil
}

func (repository *PostgresUserRepository) scanOne(ctx context.Context, query string, argument any) (*User, error) {
	row := repository.pool.QueryRow(ctx, query, argument)

	user := &User{}
	err := row.Scan(
		&user.ID, &user.Username, &user.Email, &user.PasswordHash,
		&user.DisplayName, &user.Bio, &user.Role, &user.CreatedAt, &user.UpdatedAt,
	)
	if err != nil {
		return nil, dberr.Wrap(err, "find user")
	}
	return user, nil
}

// Copyright (c) 2026 Inkwell. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package notify

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/inkwell/internal/platform/dberr"
)

// # Postgres Implementation

// PostgresRepository persists notifications into the users.notification table.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository creates a Postgres-backed [Repository].
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

const notificationColumns = `id, user_id, kind, message, subject_id, subject_type, metadata, read, created_at`

// Create inserts a new notification row.
func (repository *PostgresRepository) Create(ctx context.Context, notification *Notification) error {
	notification.CreatedAt = time.Now().UTC()
	if notification.Metadata == nil {
		// The metadata column is NOT NULL jsonb.
		notification.Metadata = map[string]string{}
	}

	query := `
		INSERT INTO users.notification
			(id, user_id, kind, message, subject_id, subject_type, metadata, read, created_at)
		VALUES
			($1, $2, $3, $4, $5, $6, $7, $8, $9)`

	_, err := repository.pool.Exec(ctx, query,
		notification.ID, notification.UserID, notification.Kind,
		notification.Message, notification.SubjectID, notification.SubjectType,
		notification.Metadata, notification.Read, notification.CreatedAt,
	)
	if err != nil {
		return dberr.Wrap(err, "create notification")
	}
	return nil
}

// FindByID fetches a single notification by primary key.
func (repository *PostgresRepository) FindByID(ctx context.Context, id string) (*Notification, error) {
	query := fmt.Sprintf(`SELECT %s FROM users.notification WHERE id = $1`, notificationColumns)
	return repository.scanOne(ctx, query, id)
}

// ListForUser returns a filtered page of the user's notifications, newest
// first, plus the total count matching the filter.
func (repository *PostgresRepository) ListForUser(ctx context.Context, userID string, filter Filter, limit, offset int) ([]*Notification, int, error) {

	// ── 1. Assemble the WHERE clause from the optional filters ──────────────
	conditions := []string{"user_id = $1"}
	arguments := []any{userID}

	if filter.Kind != "" {
		arguments = append(arguments, filter.Kind)
		conditions = append(conditions, fmt.Sprintf("kind = $%d", len(arguments)))
	}
	if filter.Read != nil {
		arguments = append(arguments, *filter.Read)
		conditions = append(conditions, fmt.Sprintf("read = $%d", len(arguments)))
	}
	if filter.Since != nil {
		arguments = append(arguments, *filter.Since)
		conditions = append(conditions, fmt.Sprintf("created_at >= $%d", len(arguments)))
	}
	if filter.Before != nil {
		arguments = append(arguments, *filter.Before)
		conditions = append(conditions, fmt.Sprintf("created_at < $%d", len(arguments)))
	}
	whereClause := strings.Join(conditions, " AND ")

	// ── 2. Count the full result set for pagination metadata ────────────────
	var total int
	countQuery := fmt.Sprintf(`SELECT count(*) FROM users.notification WHERE %s`, whereClause)
	if err := repository.pool.QueryRow(ctx, countQuery, arguments...).Scan(&total); err != nil {
		return nil, 0, dberr.Wrap(err, "count notifications")
	}

	// ── 3. Fetch the requested page ──────────────────────────────────────────
	arguments = append(arguments, limit, offset)
	pageQuery := fmt.Sprintf(`
		SELECT %s FROM users.notification
		WHERE %s
		ORDER BY created_at DESC
		LIMIT $%d OFFSET $%d`, notificationColumns, whereClause, len(arguments)-1, len(arguments))

	rows, err := repository.pool.Query(ctx, pageQuery, arguments...)
	if err != nil {
		return nil, 0, dberr.Wrap(err, "list notifications")
	}
	defer rows.Close()

	notifications := []*Notification{}
	for rows.Next() {
		notification := &Notification{}
		err := rows.Scan(
			&notification.ID, &notification.UserID, &notification.Kind,
			&notification.Message, &notification.SubjectID, &notification.SubjectType,
			&notification.Metadata, &notification.Read, &notification.CreatedAt,
		)
		if err != nil {
			return nil, 0, dberr.Wrap(err, "scan notification")
		}
		notifications = append(notifications, notification)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, dberr.Wrap(err, "iterate notifications")
	}

	return notifications, total, nil
}

// MarkRead flips a notification's read flag to true and returns the updated
// entity. Marking an already-read notification is a no-op that still succeeds.
func (repository *PostgresRepository) MarkRead(ctx context.Context, id string) (*Notification, error) {
	query := fmt.Sprintf(`
		UPDATE users.notification
		SET read = TRUE
		WHERE id = $1
		RETURNING %s`, notificationColumns)
	return repository.scanOne(ctx, query, id)
}

func (repository *PostgresRepository) scanOne(ctx context.Context, query string, argument any) (*Notification, error) {
	row := repository.pool.QueryRow(ctx, query, argument)

	notification := &Notification{}
	err := row.Scan(
		&notification.ID, &notification.UserID, &notification.Kind,
		&notification.Message, &notification.SubjectID, &notification.SubjectType,
		&notification.Metadata, &notification.Read, &notification.CreatedAt,
	)
	if err != nil {
		return nil, dberr.Wrap(err, "find notification")
	}
	return notification, nil
}

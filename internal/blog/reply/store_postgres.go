// Copyright (c) 2026 Inkwell. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package reply

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/inkwell/internal/platform/dberr"
)

// # Postgres Implementation

// PostgresRepository persists replies into the blog.reply table.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository creates a Postgres-backed [Repository].
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

const replyColumns = `id, comment_id, owner_id, author_name, body, created_at, updated_at`

// Create inserts a reply row and bumps the owning comment's denormalized
// reply counter inside one transaction.
func (repository *PostgresRepository) Create(ctx context.Context, reply *Reply) error {
	now := time.Now().UTC()
	reply.CreatedAt = now
	reply.UpdatedAt = now

	err := pgx.BeginFunc(ctx, repository.pool, func(tx pgx.Tx) error {

		// ── 1. Insert the reply row ──────────────────────────────────────
		insertQuery := `
			INSERT INTO blog.reply
				(id, comment_id, owner_id, author_name, body, created_at, updated_at)
			VALUES
				($1, $2, $3, $4, $5, $6, $7)`

		_, err := tx.Exec(ctx, insertQuery,
			reply.ID, reply.CommentID, reply.OwnerID, reply.AuthorName,
			reply.Body, reply.CreatedAt, reply.UpdatedAt,
		)
		if err != nil {
			return err
		}

		// ── 2. Bump the comment's counter in the same transaction ────────
		tag, err := tx.Exec(ctx,
			`UPDATE blog.comment SET reply_count = reply_count + 1 WHERE id = $1`,
			reply.CommentID,
		)
		if err != nil {
			return err
		}
		if tag.RowsAffected() == 0 {
			return fmt.Errorf("comment %s: %w", reply.CommentID, dberr.ErrNotFound)
		}
		return nil
	})
	if err != nil {
		return dberr.Wrap(err, "create reply")
	}
	return nil
}

// FindByID fetches a single reply by primary key.
func (repository *PostgresRepository) FindByID(ctx context.Context, id string) (*Reply, error) {
	query := fmt.Sprintf(`SELECT %s FROM blog.reply WHERE id = $1`, replyColumns)

	row := repository.pool.QueryRow(ctx, query, id)
	reply, err := scanReply(row)
	if err != nil {
		return nil, dberr.Wrap(err, "find reply")
	}
	return reply, nil
}

// UpdateBody persists an edited reply body and returns the updated entity.
func (repository *PostgresRepository) UpdateBody(ctx context.Context, id, body string) (*Reply, error) {
	query := fmt.Sprintf(`
		UPDATE blog.reply
		SET body = $2, updated_at = $3
		WHERE id = $1
		RETURNING %s`, replyColumns)

	row := repository.pool.QueryRow(ctx, query, id, body, time.Now().UTC())
	reply, err := scanReply(row)
	if err != nil {
		return nil, dberr.Wrap(err, "update reply")
	}
	return reply, nil
}

// Delete removes a reply row and lowers the owning comment's counter in one
// transaction.
func (repository *PostgresRepository) Delete(ctx context.Context, id string) error {
	err := pgx.BeginFunc(ctx, repository.pool, func(tx pgx.Tx) error {

		// ── 1. Delete and learn which comment the reply belonged to ──────
		var commentID string
		err := tx.QueryRow(ctx,
			`DELETE FROM blog.reply WHERE id = $1 RETURNING comment_id`, id,
		).Scan(&commentID)
		if err != nil {
			return err
		}

		// ── 2. Lower the comment's counter in the same transaction ───────
		_, err = tx.Exec(ctx,
			`UPDATE blog.comment SET reply_count = greatest(reply_count - 1, 0) WHERE id = $1`,
			commentID,
		)
		return err
	})
	if err != nil {
		return dberr.Wrap(err, "delete reply")
	}
	return nil
}

// ListForComment returns a page of the comment's replies, oldest first,
// plus the total count.
func (repository *PostgresRepository) ListForComment(ctx context.Context, commentID string, limit, offset int) ([]*Reply, int, error) {
	var total int
	countQuery := `SELECT count(*) FROM blog.reply WHERE comment_id = $1`
	if err := repository.pool.QueryRow(ctx, countQuery, commentID).Scan(&total); err != nil {
		return nil, 0, dberr.Wrap(err, "count replies")
	}

	pageQuery := fmt.Sprintf(`
		SELECT %s FROM blog.reply
		WHERE comment_id = $1
		ORDER BY created_at ASC
		LIMIT $2 OFFSET $3`, replyColumns)

	rows, err := repository.pool.Query(ctx, pageQuery, commentID, limit, offset)
	if err != nil {
		return nil, 0, dberr.Wrap(err, "list replies")
	}
	defer rows.Close()

	replies := []*Reply{}
	for rows.Next() {
		reply, err := scanReply(rows)
		if err != nil {
			return nil, 0, dberr.Wrap(err, "scan reply")
		}
		replies = append(replies, reply)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, dberr.Wrap(err, "iterate replies")
	}

	return replies, total, nil
}

func scanReply(row pgx.Row) (*Reply, error) {
	reply := &Reply{}
	err := row.Scan(
		&reply.ID, &reply.CommentID, &reply.OwnerID, &reply.AuthorName,
		&reply.Body, &reply.CreatedAt, &reply.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return reply, nil
}

// Copyright (c) 2026 Inkwell. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package comment

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/inkwell/internal/platform/dberr"
)

// # Postgres Implementation

// PostgresRepository persists comments into the blog.comment table.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository creates a Postgres-backed [Repository].
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

const commentColumns = `id, article_id, owner_id, author_name, body, reply_count, created_at, updated_at`

// Create inserts a comment row and bumps the owning article's denormalized
// comment counter inside one transaction. If the article vanished between
// the handler's check and this write, the UPDATE touches zero rows and the
// whole transaction rolls back with NotFound.
func (repository *PostgresRepository) Create(ctx context.Context, comment *Comment) error {
	now := time.Now().UTC()
	comment.CreatedAt = now
	comment.UpdatedAt = now

	err := pgx.BeginFunc(ctx, repository.pool, func(tx pgx.Tx) error {

		// ── 1. Insert the comment row ────────────────────────────────────
		insertQuery := `
			INSERT INTO blog.comment
				(id, article_id, owner_id, author_name, body, reply_count, created_at, updated_at)
			VALUES
				($1, $2, $3, $4, $5, $6, $7, $8)`

		_, err := tx.Exec(ctx, insertQuery,
			comment.ID, comment.ArticleID, comment.OwnerID, comment.AuthorName,
			comment.Body, comment.ReplyCount, comment.CreatedAt, comment.UpdatedAt,
		)
		if err != nil {
			return err
		}

		// ── 2. Bump the article's counter in the same transaction ────────
		tag, err := tx.Exec(ctx,
			`UPDATE blog.article SET comment_count = comment_count + 1 WHERE id = $1`,
			comment.ArticleID,
		)
		if err != nil {
			return err
		}
		if tag.RowsAffected() == 0 {
			return fmt.Errorf("article %s: %w", comment.ArticleID, dberr.ErrNotFound)
		}
		return nil
	})
	if err != nil {
		return dberr.Wrap(err, "create comment")
	}
	return nil
}

// FindByID fetches a single comment by primary key.
func (repository *PostgresRepository) FindByID(ctx context.Context, id string) (*Comment, error) {
	query := fmt.Sprintf(`SELECT %s FROM blog.comment WHERE id = $1`, commentColumns)

	row := repository.pool.QueryRow(ctx, query, id)
	comment, err := scanComment(row)
	if err != nil {
		return nil, dberr.Wrap(err, "find comment")
	}
	return comment, nil
}

// UpdateBody persists an edited comment body and returns the updated entity.
func (repository *PostgresRepository) UpdateBody(ctx context.Context, id, body string) (*Comment, error) {
	query := fmt.Sprintf(`
		UPDATE blog.comment
		SET body = $2, updated_at = $3
		WHERE id = $1
		RETURNING %s`, commentColumns)

	row := repository.pool.QueryRow(ctx, query, id, body, time.Now().UTC())
	comment, err := scanComment(row)
	if err != nil {
		return nil, dberr.Wrap(err, "update comment")
	}
	return comment, nil
}

// Delete removes a comment row (replies cascade via schema constraints) and
// decrements the owning article's counter in one transaction.
func (repository *PostgresRepository) Delete(ctx context.Context, id string) error {
	err := pgx.BeginFunc(ctx, repository.pool, func(tx pgx.Tx) error {

		// ── 1. Delete and learn which article the comment belonged to ────
		var articleID string
		err := tx.QueryRow(ctx,
			`DELETE FROM blog.comment WHERE id = $1 RETURNING article_id`, id,
		).Scan(&articleID)
		if err != nil {
			return err
		}

		// ── 2. Lower the article's counter in the same transaction ───────
		_, err = tx.Exec(ctx,
			`UPDATE blog.article SET comment_count = greatest(comment_count - 1, 0) WHERE id = $1`,
			articleID,
		)
		return err
	})
	if err != nil {
		return dberr.Wrap(err, "delete comment")
	}
	return nil
}

// ListForArticle returns a page of the article's comments, oldest first,
// plus the total count.
func (repository *PostgresRepository) ListForArticle(ctx context.Context, articleID string, limit, offset int) ([]*Comment, int, error) {
	var total int
	countQuery := `SELECT count(*) FROM blog.comment WHERE article_id = $1`
	if err := repository.pool.QueryRow(ctx, countQuery, articleID).Scan(&total); err != nil {
		return nil, 0, dberr.Wrap(err, "count comments")
	}

	pageQuery := fmt.Sprintf(`
		SELECT %s FROM blog.comment
		WHERE article_id = $1
		ORDER BY created_at ASC
		LIMIT $2 OFFSET $3`, commentColumns)

	rows, err := repository.pool.Query(ctx, pageQuery, articleID, limit, offset)
	if err != nil {
		return nil, 0, dberr.Wrap(err, "list comments")
	}
	defer rows.Close()

	comments := []*Comment{}
	for rows.Next() {
		comment, err := scanComment(rows)
		if err != nil {
			return nil, 0, dberr.Wrap(err, "scan comment")
		}
		comments = append(comments, comment)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, dberr.Wrap(err, "iterate comments")
	}

	return comments, total, nil
}

func scanComment(row pgx.Row) (*Comment, error) {
	comment := &Comment{}
	err := row.Scan(
		&comment.ID, &comment.ArticleID, &comment.OwnerID, &comment.AuthorName,
		&comment.Body, &comment.ReplyCount, &comment.CreatedAt, &comment.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return comment, nil
}

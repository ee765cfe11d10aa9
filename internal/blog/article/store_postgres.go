// Copyright (c) 2026 Inkwell. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package article

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/inkwell/internal/platform/dberr"
)

// # Postgres Implementation

// PostgresRepository persists articles into the blog.article table.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository creates a Postgres-backed [Repository].
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

const articleColumns = `id, owner_id, title, slug, summary, body, tags, published, comment_count, created_at, updated_at`

// Create inserts a new article row. A duplicate slug surfaces as
// apperr.Conflict through dberr.
func (repository *PostgresRepository) Create(ctx context.Context, article *Article) error {
	now := time.Now().UTC()
	article.CreatedAt = now
	article.UpdatedAt = now

	query := `
		INSERT INTO blog.article
			(id, owner_id, title, slug, summary, body, tags, published, comment_count, created_at, updated_at)
		VALUES
			($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`

	_, err := repository.pool.Exec(ctx, query,
		article.ID, article.OwnerID, article.Title, article.Slug, article.Summary,
		article.Body, article.Tags, article.Published, article.CommentCount,
		article.CreatedAt, article.UpdatedAt,
	)
	if err != nil {
		return dberr.Wrap(err, "create article")
	}
	return nil
}

// FindByID fetches a single article by primary key.
func (repository *PostgresRepository) FindByID(ctx context.Context, id string) (*Article, error) {
	query := fmt.Sprintf(`SELECT %s FROM blog.article WHERE id = $1`, articleColumns)
	return repository.scanOne(ctx, query, id)
}

// FindBySlug fetches a single article by its unique slug.
func (repository *PostgresRepository) FindBySlug(ctx context.Context, slug string) (*Article, error) {
	query := fmt.Sprintf(`SELECT %s FROM blog.article WHERE slug = $1`, articleColumns)
	return repository.scanOne(ctx, query, slug)
}

// Update persists the editable fields of an article.
func (repository *PostgresRepository) Update(ctx context.Context, article *Article) error {
	article.UpdatedAt = time.Now().UTC()

	query := `
		UPDATE blog.article
		SET title = $2, slug = $3, summary = $4, body = $5, tags = $6, published = $7, updated_at = $8
		WHERE id = $1`

	tag, err := repository.pool.Exec(ctx, query,
		article.ID, article.Title, article.Slug, article.Summary,
		article.Body, article.Tags, article.Published, article.UpdatedAt,
	)
	if err != nil {
		return dberr.Wrap(err, "update article")
	}
	if tag.RowsAffected() == 0 {
		return dberr.Wrap(dberr.ErrNotFound, "update article")
	}
	return nil
}

// Delete removes an article. Comments and replies go with it via the
// ON DELETE CASCADE constraints in the schema.
func (repository *PostgresRepository) Delete(ctx context.Context, id string) error {
	tag, err := repository.pool.Exec(ctx, `DELETE FROM blog.article WHERE id = $1`, id)
	if err != nil {
		return dberr.Wrap(err, "delete article")
	}
	if tag.RowsAffected() == 0 {
		return dberr.Wrap(dberr.ErrNotFound, "delete article")
	}
	return nil
}

// List returns a filtered, paginated page of articles, newest first, plus
// the total count matching the filter.
func (repository *PostgresRepository) List(ctx context.Context, filter Filter, limit, offset int) ([]*Article, int, error) {

	// ── 1. Assemble the WHERE clause from the optional filters ──────────────
	conditions := []string{"TRUE"}
	arguments := []any{}

	if filter.OwnerID != "" {
		arguments = append(arguments, filter.OwnerID)
		conditions = append(conditions, fmt.Sprintf("owner_id = $%d", len(arguments)))
	}
	if filter.Tag != "" {
		arguments = append(arguments, filter.Tag)
		conditions = append(conditions, fmt.Sprintf("$%d = ANY(tags)", len(arguments)))
	}
	if filter.Query != "" {
		arguments = append(arguments, "%"+filter.Query+"%")
		index := len(arguments)
		conditions = append(conditions, fmt.Sprintf("(title ILIKE $%d OR summary ILIKE $%d)", index, index))
	}
	if filter.Published != nil {
		arguments = append(arguments, *filter.Published)
		conditions = append(conditions, fmt.Sprintf("published = $%d", len(arguments)))
	}
	whereClause := strings.Join(conditions, " AND ")

	// ── 2. Count the full result set for pagination metadata ────────────────
	var total int
	countQuery := fmt.Sprintf(`SELECT count(*) FROM blog.article WHERE %s`, whereClause)
	if err := repository.pool.QueryRow(ctx, countQuery, arguments...).Scan(&total); err != nil {
		return nil, 0, dberr.Wrap(err, "count articles")
	}

	// ── 3. Fetch the requested page ──────────────────────────────────────────
	arguments = append(arguments, limit, offset)
	pageQuery := fmt.Sprintf(`
		SELECT %s FROM blog.article
		WHERE %s
		ORDER BY created_at DESC
		LIMIT $%d OFFSET $%d`, articleColumns, whereClause, len(arguments)-1, len(arguments))

	rows, err := repository.pool.Query(ctx, pageQuery, arguments...)
	if err != nil {
		return nil, 0, dberr.Wrap(err, "list articles")
	}
	defer rows.Close()

	articles := []*Article{}
	for rows.Next() {
		article := &Article{}
		err := rows.Scan(
			&article.ID, &article.OwnerID, &article.Title, &article.Slug, &article.Summary,
			&article.Body, &article.Tags, &article.Published, &article.CommentCount,
			&article.CreatedAt, &article.UpdatedAt,
		)
		if err != nil {
			return nil, 0, dberr.Wrap(err, "scan article")
		}
		articles = append(articles, article)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, dberr.Wrap(err, "iterate articles")
	}

	return articles, total, nil
}

func (repository *PostgresRepository) scanOne(ctx context.Context, query string, argument any) (*Article, error) {
	row := repository.pool.QueryRow(ctx, query, argument)

	article := &Article{}
	err := row.Scan(
		&article.ID, &article.OwnerID, &article.Title, &article.Slug, &article.Summary,
		&article.Body, &article.Tags, &article.Published, &article.CommentCount,
		&article.CreatedAt, &article.UpdatedAt,
	)
	if err != nil {
		return nil, dberr.Wrap(err, "find article")
	}
	return article, nil
}

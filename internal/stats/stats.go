// Copyright (c) 2026 Inkwell. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package stats exposes platform-wide counters for the admin dashboard.

The numbers are computed on demand with plain aggregate queries. They are
cheap at the platform's scale; a caching layer can front this package later
without changing its API.
*/
package stats

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/inkwell/internal/platform/dberr"
)

// # Types

// Overview is a snapshot of the platform's size.
type Overview struct {
	Users             int            `json:"users"`
	UsersByRole       map[string]int `json:"users_by_role"`
	Articles          int            `json:"articles"`
	PublishedArticles int            `json:"published_articles"`
	Comments          int            `json:"comments"`
	Replies           int            `json:"replies"`
}

// # Service

// Service computes platform statistics.
type Service struct {
	pool *pgxpool.Pool
}

// NewService constructs a new [Service] over the shared connection pool.
func NewService(pool *pgxpool.Pool) *Service {
	return &Service{pool: pool}
}

/*
Overview returns the current platform-wide counters in one round trip.

Parameters:
  - context: context.Context

Returns:
  - *Overview: Snapshot of the counters
  - err: Storage errors
*/
func (service *Service) Overview(context context.Context) (*Overview, error) {
	query := `
		SELECT
			(SELECT count(*) FROM users.account),
			(SELECT count(*) FROM blog.article),
			(SELECT count(*) FROM blog.article WHERE published),
			(SELECT count(*) FROM blog.comment),
			(SELECT count(*) FROM blog.reply)`

	overview := &Overview{UsersByRole: map[string]int{}}
	err := service.pool.QueryRow(context, query).Scan(
		&overview.Users, &overview.Articles, &overview.PublishedArticles,
		&overview.Comments, &overview.Replies,
	)
	if err != nil {
		return nil, dberr.Wrap(err, "statistics overview")
	}

	// Member breakdown per role.
	rows, err := service.pool.Query(context, `SELECT role, count(*) FROM users.account GROUP BY role`)
	if err != nil {
		return nil, dberr.Wrap(err, "statistics role breakdown")
	}
	defer rows.Close()

	for rows.Next() {
		var role string
		var count int
		if err := rows.Scan(&role, &count); err != nil {
			return nil, dberr.Wrap(err, "scan role breakdown")
		}
		overview.UsersByRole[role] = count
	}
	if err := rows.Err(); err != nil {
		return nil, dberr.Wrap(err, "iterate role breakdown")
	}

	return overview, nil
}

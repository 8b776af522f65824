// Package repository provides a generic Bun-backed data access layer for
// admin views: single-row lookup by column, clamped pagination, and the
// write operations the scaffolded CRUD routes need.
package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/uptrace/bun"
)

// ErrNotFound reports a lookup that matched no rows.
var ErrNotFound = errors.New("repository: not found")

// PageRequest describes one page of a listing. Order entries are raw
// "column ASC" / "column DESC" clauses validated by the caller.
type PageRequest struct {
	Page  int
	Size  int
	Order []string
}

// Page holds one page of results together with its pagination metadata.
// Number is the page actually served, which may differ from the requested
// page when the request ran past the end.
type Page[T any] struct {
	Items     []*T
	Total     int
	Number    int
	Size      int
	PageCount int
}

// HasPrev reports whether a previous page exists.
func (p *Page[T]) HasPrev() bool { return p.Number > 1 }

// HasNext reports whether a following page exists.
func (p *Page[T]) HasNext() bool { return p.Number < p.PageCount }

// Repository is a generic CRUD store for one model type.
type Repository[T any] struct {
	db *bun.DB
}

// New returns a repository backed by the provided Bun DB.
func New[T any](db *bun.DB) *Repository[T] {
	return &Repository[T]{db: db}
}

// DB exposes the underlying handle for callers that need raw queries.
func (r *Repository[T]) DB() *bun.DB { return r.db }

// Get fetches a single row where column equals value.
func (r *Repository[T]) Get(ctx context.Context, column string, value any) (*T, error) {
	var entity T
	err := r.db.NewSelect().
		Model(&entity).
		Where("? = ?", bun.Ident(column), value).
		Scan(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("repository: get by %s: %w", column, err)
	}
	return &entity, nil
}

// All fetches every row, optionally ordered.
func (r *Repository[T]) All(ctx context.Context, order ...string) ([]*T, error) {
	var entities []*T
	query := r.db.NewSelect().Model(&entities)
	if len(order) > 0 {
		query = query.Order(order...)
	}
	if err := query.Scan(ctx); err != nil {
		return nil, fmt.Errorf("repository: list all: %w", err)
	}
	return entities, nil
}

// Count returns the total number of rows.
func (r *Repository[T]) Count(ctx context.Context) (int, error) {
	var entity T
	total, err := r.db.NewSelect().Model(&entity).Count(ctx)
	if err != nil {
		return 0, fmt.Errorf("repository: count: %w", err)
	}
	return total, nil
}

// Page fetches one page of rows. A request past the last page clamps to the
// last page instead of returning an empty result, and a request before the
// first clamps to page one.
func (r *Repository[T]) Page(ctx context.Context, req PageRequest) (*Page[T], error) {
	size := req.Size
	if size < 1 {
		size = 10
	}

	var probe T
	total, err := r.db.NewSelect().Model(&probe).Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("repository: count page: %w", err)
	}

	pageCount := (total + size - 1) / size
	if pageCount < 1 {
		pageCount = 1
	}
	number := req.Page
	if number < 1 {
		number = 1
	}
	if number > pageCount {
		number = pageCount
	}

	result := &Page[T]{
		Items:     make([]*T, 0),
		Total:     total,
		Number:    number,
		Size:      size,
		PageCount: pageCount,
	}
	if total == 0 {
		return result, nil
	}

	var entities []*T
	query := r.db.NewSelect().
		Model(&entities).
		Offset((number - 1) * size).
		Limit(size)
	if len(req.Order) > 0 {
		query = query.Order(req.Order...)
	}
	if err := query.Scan(ctx); err != nil {
		return nil, fmt.Errorf("repository: scan page: %w", err)
	}
	result.Items = entities
	return result, nil
}

// Insert stores a new row and lets the driver fill generated columns.
func (r *Repository[T]) Insert(ctx context.Context, entity *T) error {
	if _, err := r.db.NewInsert().Model(entity).Exec(ctx); err != nil {
		return fmt.Errorf("repository: insert: %w", err)
	}
	return nil
}

// Update rewrites the row matching the entity's primary key.
func (r *Repository[T]) Update(ctx context.Context, entity *T) error {
	res, err := r.db.NewUpdate().Model(entity).WherePK().Exec(ctx)
	if err != nil {
		return fmt.Errorf("repository: update: %w", err)
	}
	if affected, err := res.RowsAffected(); err == nil && affected == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes the row where column equals value.
func (r *Repository[T]) Delete(ctx context.Context, column string, value any) error {
	var entity T
	res, err := r.db.NewDelete().
		Model(&entity).
		Where("? = ?", bun.Ident(column), value).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("repository: delete by %s: %w", column, err)
	}
	if affected, err := res.RowsAffected(); err == nil && affected == 0 {
		return ErrNotFound
	}
	return nil
}

// Package storage defines the record store contract shared by the
// in-memory and PostgreSQL backends, together with the URLRecord entity.
package storage

import (
	"context"
	"errors"
	"time"
)

var (
	// ErrNotFound is returned when no active record matches a lookup.
	ErrNotFound = errors.New("record not found")

	// ErrDuplicateKey is returned by Create when the short key collides
	// with an active record. The allocator retries on it.
	ErrDuplicateKey = errors.New("short key already in use")
)

// DefaultPageSize is the number of records per page in paginated listings.
const DefaultPageSize = 15

// URLRecord is a stored URL with its short key. DeletedAt is nil for
// active records; soft-deleted rows are kept but excluded from every
// read path and from the short-key uniqueness scope.
type URLRecord struct {
	ID        int64      `json:"id"`
	URL       string     `json:"url"`
	ShortKey  string     `json:"url_key"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
	DeletedAt *time.Time `json:"deleted_at,omitempty"`
}

// Order is the listing sort direction on created_at.
type Order string

const (
	OrderDesc Order = "desc"
	OrderAsc  Order = "asc"
)

// ListQuery describes a listing request. A zero Search means no filter,
// a zero PageSize means DefaultPageSize.
type ListQuery struct {
	Search      string
	Order       Order
	Page        int
	PageSize    int
	Unpaginated bool
}

// ListResult carries one page of active records plus pagination totals.
// LastPage is 1 for unpaginated queries regardless of Total.
type ListResult struct {
	Items    []URLRecord
	Total    int
	LastPage int
}

// Store is the durable record store. Implementations must enforce
// short-key uniqueness among active rows atomically at insert time.
type Store interface {
	Create(ctx context.Context, url, shortKey string) (*URLRecord, error)
	FindByKey(ctx context.Context, shortKey string) (*URLRecord, error)
	FindByID(ctx context.Context, id int64) (*URLRecord, error)
	List(ctx context.Context, q ListQuery) (*ListResult, error)
	Update(ctx context.Context, id int64, url *string) (*URLRecord, error)
	SoftDelete(ctx context.Context, id int64) (*URLRecord, error)
	ExistsActive(ctx context.Context, shortKey string) (bool, error)
	Ping(ctx context.Context) error
}

// Pages returns the number of pages needed for total records.
// It is never less than 1 so an empty listing still reports one page.
func Pages(total, pageSize int) int {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	pages := (total + pageSize - 1) / pageSize
	if pages < 1 {
		return 1
	}
	return pages
}

// Normalize fills query defaults: descending order, first page,
// DefaultPageSize.
func (q ListQuery) Normalize() ListQuery {
	if q.Order != OrderAsc {
		q.Order = OrderDesc
	}
	if q.Page < 1 {
		q.Page = 1
	}
	if q.PageSize <= 0 {
		q.PageSize = DefaultPageSize
	}
	return q
}

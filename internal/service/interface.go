package service

import (
	"context"

	"github.com/smartinb/go-url-shortener/internal/storage"
)

//go:generate mockgen -source=interface.go -destination=../mocks/mock_service.go -package=mocks

// URLServiceIface is what the HTTP handlers depend on; URLService is its
// production implementation.
type URLServiceIface interface {
	List(ctx context.Context, q storage.ListQuery) (*storage.ListResult, error)
	Create(ctx context.Context, rawURL string) (*storage.URLRecord, error)
	Resolve(ctx context.Context, shortKey string) (*storage.URLRecord, error)
	Update(ctx context.Context, id int64, rawURL *string) (*storage.URLRecord, error)
	Delete(ctx context.Context, id int64) (*storage.URLRecord, error)
	Ping(ctx context.Context) error
}

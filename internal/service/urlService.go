package service

import (
	"context"
	"errors"
	"net/url"
	"strings"

	"go.uber.org/zap"

	"github.com/smartinb/go-url-shortener/internal/cache"
	"github.com/smartinb/go-url-shortener/internal/storage"
)

// Validation messages mirror the ones the API has always returned.
const (
	MsgURLRequired = "The url field is required."
	MsgURLInvalid  = "The url format is invalid."
)

// ValidationError carries the human-readable messages surfaced in 400
// responses.
type ValidationError struct {
	Messages []string
}

func (e *ValidationError) Error() string {
	return strings.Join(e.Messages, "; ")
}

// URLService combines the allocator, the record store and the resolution
// cache into the operation set consumed by the HTTP layer.
type URLService struct {
	repository storage.Store
	allocator  *Allocator
	cache      cache.ResolutionCache
	logger     *zap.Logger
}

func NewURL(repo storage.Store, allocator *Allocator, resolutionCache cache.ResolutionCache, logger *zap.Logger) *URLService {
	return &URLService{
		repository: repo,
		allocator:  allocator,
		cache:      resolutionCache,
		logger:     logger,
	}
}

func (s *URLService) Ping(ctx context.Context) error {
	return s.repository.Ping(ctx)
}

// List reads active records straight from the store; the resolution cache
// is not consulted, so listings never lag behind writes.
func (s *URLService) List(ctx context.Context, q storage.ListQuery) (*storage.ListResult, error) {
	return s.repository.List(ctx, q.Normalize())
}

// Create validates the URL and allocates a record under a fresh key.
func (s *URLService) Create(ctx context.Context, rawURL string) (*storage.URLRecord, error) {
	if err := validateURL(rawURL); err != nil {
		return nil, err
	}
	return s.allocator.Allocate(ctx, rawURL)
}

// Resolve looks up a short key through the cache. Both outcomes are
// cached: a record for the TTL window, and equally the absence of one, so
// repeated probes of dead keys stay off the store.
func (s *URLService) Resolve(ctx context.Context, shortKey string) (*storage.URLRecord, error) {
	if res, ok := s.cache.Get(ctx, shortKey); ok {
		if !res.Found {
			return nil, storage.ErrNotFound
		}
		return res.Record, nil
	}

	record, err := s.repository.FindByKey(ctx, shortKey)
	switch {
	case err == nil:
		s.cache.Set(ctx, shortKey, cache.Resolution{Record: record, Found: true})
		return record, nil
	case errors.Is(err, storage.ErrNotFound):
		s.cache.Set(ctx, shortKey, cache.Resolution{Found: false})
		return nil, storage.ErrNotFound
	default:
		// infrastructure failures are never cached
		return nil, err
	}
}

// Update replaces the stored URL when one is supplied; a nil url is a
// no-op on the value but still touches updated_at. Key and id never
// change.
func (s *URLService) Update(ctx context.Context, id int64, rawURL *string) (*storage.URLRecord, error) {
	if rawURL != nil {
		if err := validateURL(*rawURL); err != nil {
			return nil, err
		}
	}
	return s.repository.Update(ctx, id, rawURL)
}

// Delete soft-deletes the record and returns its pre-deletion data. The
// cached resolution, if any, ages out with the TTL.
func (s *URLService) Delete(ctx context.Context, id int64) (*storage.URLRecord, error) {
	return s.repository.SoftDelete(ctx, id)
}

// validateURL accepts syntactically well-formed absolute http/https URLs.
// Reachability is deliberately not checked.
func validateURL(rawURL string) error {
	if rawURL == "" {
		return &ValidationError{Messages: []string{MsgURLRequired}}
	}

	parsed, err := url.ParseRequestURI(rawURL)
	if err != nil || parsed.Host == "" || (parsed.Scheme != "http" && parsed.Scheme != "https") {
		return &ValidationError{Messages: []string{MsgURLInvalid}}
	}
	return nil
}

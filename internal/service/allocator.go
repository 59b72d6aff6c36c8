package service

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/smartinb/go-url-shortener/internal/storage"
)

// ErrKeyspaceExhausted means the allocator burned through its whole retry
// budget without landing a free key. With 62^8 possible keys this marks a
// store problem, not a full keyspace.
var ErrKeyspaceExhausted = errors.New("could not allocate a unique short key")

// maxAllocateAttempts caps the generate-and-check loop.
const maxAllocateAttempts = 1000

// Allocator turns a URL into a persisted record under a never-before-
// issued short key. The ExistsActive pre-check keeps the common path to
// one extra round trip; the partial unique index behind Create is what
// actually closes the check-then-insert race, so a duplicate-key error at
// insert time just means "draw again".
type Allocator struct {
	store     storage.Store
	generator *KeyGenerator
	keyLength int
	logger    *zap.Logger
}

func NewAllocator(store storage.Store, generator *KeyGenerator, keyLength int, logger *zap.Logger) *Allocator {
	if keyLength <= 0 {
		keyLength = DefaultKeyLength
	}
	return &Allocator{
		store:     store,
		generator: generator,
		keyLength: keyLength,
		logger:    logger,
	}
}

// Allocate persists url under a fresh unique key and returns the record.
func (a *Allocator) Allocate(ctx context.Context, url string) (*storage.URLRecord, error) {
	for attempt := 0; attempt < maxAllocateAttempts; attempt++ {
		key, err := a.generator.Generate(a.keyLength)
		if err != nil {
			return nil, fmt.Errorf("generate key: %w", err)
		}

		exists, err := a.store.ExistsActive(ctx, key)
		if err != nil {
			return nil, fmt.Errorf("check key: %w", err)
		}
		if exists {
			continue
		}

		record, err := a.store.Create(ctx, url, key)
		if errors.Is(err, storage.ErrDuplicateKey) {
			// lost the race against a concurrent allocator
			a.logger.Info("short key taken at insert, retrying",
				zap.String("short_key", key),
				zap.Int("attempt", attempt+1),
			)
			continue
		}
		if err != nil {
			return nil, err
		}

		return record, nil
	}

	return nil, ErrKeyspaceExhausted
}

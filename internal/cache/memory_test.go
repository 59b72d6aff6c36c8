package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/smartinb/go-url-shortener/internal/storage"
)

func TestMemoryCacheRoundTrip(t *testing.T) {
	c := NewMemoryCache(time.Minute)
	ctx := context.Background()

	_, ok := c.Get(ctx, "abc12345")
	assert.False(t, ok)

	record := &storage.URLRecord{ID: 1, URL: "https://example.com", ShortKey: "abc12345"}
	c.Set(ctx, "abc12345", Resolution{Record: record, Found: true})

	res, ok := c.Get(ctx, "abc12345")
	require.True(t, ok)
	assert.True(t, res.Found)
	assert.Equal(t, "https://example.com", res.Record.URL)
}

func TestMemoryCacheNegativeEntry(t *testing.T) {
	c := NewMemoryCache(time.Minute)
	ctx := context.Background()

	c.Set(ctx, "missing0", Resolution{Found: false})

	res, ok := c.Get(ctx, "missing0")
	require.True(t, ok)
	assert.False(t, res.Found)
	assert.Nil(t, res.Record)
}

func TestMemoryCacheExpiry(t *testing.T) {
	c := NewMemoryCache(20 * time.Millisecond)
	ctx := context.Background()

	c.Set(ctx, "abc12345", Resolution{Found: false})

	_, ok := c.Get(ctx, "abc12345")
	require.True(t, ok)

	time.Sleep(40 * time.Millisecond)

	_, ok = c.Get(ctx, "abc12345")
	assert.False(t, ok)
}

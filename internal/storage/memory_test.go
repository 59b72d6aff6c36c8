package storage

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryCreateAndFind(t *testing.T) {
	s, err := CreateMemoryStorage()
	require.NoError(t, err)
	ctx := context.Background()

	created, err := s.Create(ctx, "https://example.com", "abc12345")
	require.NoError(t, err)
	assert.Equal(t, int64(1), created.ID)
	assert.Equal(t, "https://example.com", created.URL)
	assert.Equal(t, "abc12345", created.ShortKey)
	assert.False(t, created.CreatedAt.IsZero())
	assert.Nil(t, created.DeletedAt)

	byKey, err := s.FindByKey(ctx, "abc12345")
	require.NoError(t, err)
	assert.Equal(t, created.ID, byKey.ID)

	byID, err := s.FindByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "abc12345", byID.ShortKey)

	_, err = s.FindByKey(ctx, "missing0")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryCreateDuplicateKey(t *testing.T) {
	s, _ := CreateMemoryStorage()
	ctx := context.Background()

	_, err := s.Create(ctx, "https://example.com", "abc12345")
	require.NoError(t, err)

	_, err = s.Create(ctx, "https://other.com", "abc12345")
	assert.ErrorIs(t, err, ErrDuplicateKey)
}

func TestMemorySoftDelete(t *testing.T) {
	s, _ := CreateMemoryStorage()
	ctx := context.Background()

	created, err := s.Create(ctx, "https://example.com", "abc12345")
	require.NoError(t, err)

	deleted, err := s.SoftDelete(ctx, created.ID)
	require.NoError(t, err)
	// pre-deletion data comes back
	assert.Equal(t, created.ID, deleted.ID)
	assert.Nil(t, deleted.DeletedAt)

	_, err = s.FindByKey(ctx, "abc12345")
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = s.FindByID(ctx, created.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	exists, err := s.ExistsActive(ctx, "abc12345")
	require.NoError(t, err)
	assert.False(t, exists)

	// deleting again reports not found
	_, err = s.SoftDelete(ctx, created.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	// the key is free for reuse once its record is deleted
	reused, err := s.Create(ctx, "https://reuse.com", "abc12345")
	require.NoError(t, err)
	assert.NotEqual(t, created.ID, reused.ID)
}

func TestMemoryUpdate(t *testing.T) {
	s, _ := CreateMemoryStorage()
	ctx := context.Background()

	created, err := s.Create(ctx, "https://example.com", "abc12345")
	require.NoError(t, err)

	// nil url leaves the stored value alone
	unchanged, err := s.Update(ctx, created.ID, nil)
	require.NoError(t, err)
	assert.Equal(t, "https://example.com", unchanged.URL)

	newURL := "https://changed.com"
	updated, err := s.Update(ctx, created.ID, &newURL)
	require.NoError(t, err)
	assert.Equal(t, newURL, updated.URL)
	assert.Equal(t, created.ID, updated.ID)
	assert.Equal(t, created.ShortKey, updated.ShortKey)

	_, err = s.Update(ctx, 999, &newURL)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryListPagination(t *testing.T) {
	s, _ := CreateMemoryStorage()
	ctx := context.Background()

	for i := 0; i < 20; i++ {
		_, err := s.Create(ctx, fmt.Sprintf("https://example.com/page/%d", i), fmt.Sprintf("key%05d", i))
		require.NoError(t, err)
	}

	first, err := s.List(ctx, ListQuery{})
	require.NoError(t, err)
	assert.Len(t, first.Items, DefaultPageSize)
	assert.Equal(t, 20, first.Total)
	assert.Equal(t, 2, first.LastPage)

	second, err := s.List(ctx, ListQuery{Page: 2})
	require.NoError(t, err)
	assert.Len(t, second.Items, 5)

	all, err := s.List(ctx, ListQuery{Unpaginated: true})
	require.NoError(t, err)
	assert.Len(t, all.Items, 20)
	assert.Equal(t, 1, all.LastPage)

	empty, err := s.List(ctx, ListQuery{Page: 5})
	require.NoError(t, err)
	assert.Empty(t, empty.Items)
	assert.Equal(t, 20, empty.Total)
}

func TestMemoryListOrderAndSearch(t *testing.T) {
	s, _ := CreateMemoryStorage()
	ctx := context.Background()

	_, err := s.Create(ctx, "https://alpha.example.com", "key00001")
	require.NoError(t, err)
	_, err = s.Create(ctx, "https://beta.example.com", "key00002")
	require.NoError(t, err)
	_, err = s.Create(ctx, "https://gamma.other.org", "key00003")
	require.NoError(t, err)

	desc, err := s.List(ctx, ListQuery{})
	require.NoError(t, err)
	require.Len(t, desc.Items, 3)
	assert.Equal(t, int64(3), desc.Items[0].ID)

	asc, err := s.List(ctx, ListQuery{Order: OrderAsc})
	require.NoError(t, err)
	assert.Equal(t, int64(1), asc.Items[0].ID)

	filtered, err := s.List(ctx, ListQuery{Search: "example.com"})
	require.NoError(t, err)
	assert.Len(t, filtered.Items, 2)
	assert.Equal(t, 2, filtered.Total)

	none, err := s.List(ctx, ListQuery{Search: "nowhere"})
	require.NoError(t, err)
	assert.Empty(t, none.Items)
	assert.Equal(t, 1, none.LastPage)
}

func TestMemoryListExcludesDeleted(t *testing.T) {
	s, _ := CreateMemoryStorage()
	ctx := context.Background()

	a, err := s.Create(ctx, "https://a.example.com", "key00001")
	require.NoError(t, err)
	_, err = s.Create(ctx, "https://b.example.com", "key00002")
	require.NoError(t, err)

	_, err = s.SoftDelete(ctx, a.ID)
	require.NoError(t, err)

	res, err := s.List(ctx, ListQuery{})
	require.NoError(t, err)
	assert.Len(t, res.Items, 1)
	assert.Equal(t, "key00002", res.Items[0].ShortKey)
}

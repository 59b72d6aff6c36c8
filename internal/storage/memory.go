package storage

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"
)

// MemoryStorage is a mutex-guarded in-memory Store. It backs the service
// when no database DSN is configured and doubles as the test backend.
type MemoryStorage struct {
	mu      sync.RWMutex
	records map[int64]URLRecord
	nextID  int64
}

func CreateMemoryStorage() (*MemoryStorage, error) {
	return &MemoryStorage{
		records: make(map[int64]URLRecord),
		nextID:  1,
	}, nil
}

func (m *MemoryStorage) Create(ctx context.Context, url, shortKey string) (*URLRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, r := range m.records {
		if r.DeletedAt == nil && r.ShortKey == shortKey {
			return nil, ErrDuplicateKey
		}
	}

	now := time.Now()
	record := URLRecord{
		ID:        m.nextID,
		URL:       url,
		ShortKey:  shortKey,
		CreatedAt: now,
		UpdatedAt: now,
	}
	m.records[record.ID] = record
	m.nextID++

	return &record, nil
}

func (m *MemoryStorage) FindByKey(ctx context.Context, shortKey string) (*URLRecord, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	for _, r := range m.records {
		if r.DeletedAt == nil && r.ShortKey == shortKey {
			record := r
			return &record, nil
		}
	}
	return nil, ErrNotFound
}

func (m *MemoryStorage) FindByID(ctx context.Context, id int64) (*URLRecord, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	r, ok := m.records[id]
	if !ok || r.DeletedAt != nil {
		return nil, ErrNotFound
	}
	record := r
	return &record, nil
}

func (m *MemoryStorage) List(ctx context.Context, q ListQuery) (*ListResult, error) {
	q = q.Normalize()

	m.mu.RLock()
	matched := make([]URLRecord, 0, len(m.records))
	for _, r := range m.records {
		if r.DeletedAt != nil {
			continue
		}
		if q.Search != "" && !strings.Contains(r.URL, q.Search) {
			continue
		}
		matched = append(matched, r)
	}
	m.mu.RUnlock()

	sort.Slice(matched, func(i, j int) bool {
		a, b := matched[i], matched[j]
		if a.CreatedAt.Equal(b.CreatedAt) {
			// ID breaks ties so paging stays stable
			if q.Order == OrderAsc {
				return a.ID < b.ID
			}
			return a.ID > b.ID
		}
		if q.Order == OrderAsc {
			return a.CreatedAt.Before(b.CreatedAt)
		}
		return a.CreatedAt.After(b.CreatedAt)
	})

	total := len(matched)
	if q.Unpaginated {
		return &ListResult{Items: matched, Total: total, LastPage: 1}, nil
	}

	start := (q.Page - 1) * q.PageSize
	if start > total {
		start = total
	}
	end := start + q.PageSize
	if end > total {
		end = total
	}

	return &ListResult{
		Items:    matched[start:end],
		Total:    total,
		LastPage: Pages(total, q.PageSize),
	}, nil
}

func (m *MemoryStorage) Update(ctx context.Context, id int64, url *string) (*URLRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	r, ok := m.records[id]
	if !ok || r.DeletedAt != nil {
		return nil, ErrNotFound
	}

	if url != nil {
		r.URL = *url
	}
	r.UpdatedAt = time.Now()
	m.records[id] = r

	record := r
	return &record, nil
}

func (m *MemoryStorage) SoftDelete(ctx context.Context, id int64) (*URLRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	r, ok := m.records[id]
	if !ok || r.DeletedAt != nil {
		return nil, ErrNotFound
	}

	record := r

	now := time.Now()
	r.DeletedAt = &now
	m.records[id] = r

	return &record, nil
}

func (m *MemoryStorage) ExistsActive(ctx context.Context, shortKey string) (bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	for _, r := range m.records {
		if r.DeletedAt == nil && r.ShortKey == shortKey {
			return true, nil
		}
	}
	return false, nil
}

func (m *MemoryStorage) Ping(ctx context.Context) error {
	return nil
}

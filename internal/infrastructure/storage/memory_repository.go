package storage

import (
	"context"
	"sync"

	"NewsSimplifier/internal/domain"
	"NewsSimplifier/internal/ports"
)

// MemoryRepository keeps records in process; used when no database is configured.
type MemoryRepository struct {
	mu      sync.RWMutex
	records map[string]domain.ArticleRecord
	order   []string
}

var _ ports.ArticleRepository = (*MemoryRepository)(nil)

// NewMemoryRepository returns an empty store.
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{records: make(map[string]domain.ArticleRecord)}
}

func (r *MemoryRepository) Exists(_ context.Context, link string) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.records[link]
	return ok, nil
}

// Insert keeps the first record stored for a link.
func (r *MemoryRepository) Insert(_ context.Context, record domain.ArticleRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	link := record.Original.SourceURL
	if _, ok := r.records[link]; ok {
		return nil
	}
	r.records[link] = record
	r.order = append(r.order, link)
	return nil
}

// Get returns the record stored for link.
func (r *MemoryRepository) Get(link string) (domain.ArticleRecord, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	rec, ok := r.records[link]
	return rec, ok
}

// All returns records in insertion order.
func (r *MemoryRepository) All() []domain.ArticleRecord {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]domain.ArticleRecord, 0, len(r.order))
	for _, link := range r.order {
		out = append(out, r.records[link])
	}
	return out
}

package blobs

import (
	"context"
	"sync"
)

// mapRepository is an unsynchronized Repository over a map.
type mapRepository struct {
	data map[string][]byte
}

func (r *mapRepository) Get(_ context.Context, key string) ([]byte, error) {
	v, ok := r.data[key]
	if !ok {
		return nil, nil
	}
	return append([]byte(nil), v...), nil
}

func (r *mapRepository) Set(_ context.Context, key string, value []byte) error {
	r.data[key] = append([]byte(nil), value...)
	return nil
}

func (r *mapRepository) Delete(_ context.Context, key string) error {
	delete(r.data, key)
	return nil
}

func (r *mapRepository) List(_ context.Context) (map[string][]byte, error) {
	out := make(map[string][]byte, len(r.data))
	for k, v := range r.data {
		out[k] = append([]byte(nil), v...)
	}
	return out, nil
}

func (r *mapRepository) Clear(_ context.Context) error {
	r.data = make(map[string][]byte)
	return nil
}

// MemoryStore keeps blobs in process memory. It is safe for concurrent use.
type MemoryStore struct {
	mu   sync.Mutex
	repo *mapRepository
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{repo: &mapRepository{data: make(map[string][]byte)}}
}

func (s *MemoryStore) Get(ctx context.Context, key string) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.repo.Get(ctx, key)
}

func (s *MemoryStore) Set(ctx context.Context, key string, value []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.repo.Set(ctx, key, value)
}

func (s *MemoryStore) Delete(ctx context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.repo.Delete(ctx, key)
}

func (s *MemoryStore) List(ctx context.Context) (map[string][]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.repo.List(ctx)
}

func (s *MemoryStore) Clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.repo.Clear(ctx)
}

// WithinTx stages writes on a copy of the data and swaps it in when fn
// succeeds.
func (s *MemoryStore) WithinTx(ctx context.Context, fn func(ctx context.Context, r Repository) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	staged, _ := s.repo.List(ctx)
	tx := &mapRepository{data: staged}
	if err := fn(ctx, tx); err != nil {
		return err
	}
	s.repo = tx
	return nil
}

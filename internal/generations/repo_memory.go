package generations

import (
	"context"
	"sort"
	"sync"
)

// MemoryRepo is an in-memory implementation of Repo for dev mode and tests.
type MemoryRepo struct {
	mu   sync.RWMutex
	byID map[string]Generation
}

// NewMemoryRepo constructs a MemoryRepo.
func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{byID: make(map[string]Generation)}
}

// Create stores a generation record.
func (r *MemoryRepo) Create(ctx context.Context, gen Generation) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.byID[gen.ID] = gen
	return nil
}

// GetByID returns a generation by id.
func (r *MemoryRepo) GetByID(ctx context.Context, id string) (Generation, error) {
	if err := ctx.Err(); err != nil {
		return Generation{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	gen, ok := r.byID[id]
	if !ok {
		return Generation{}, ErrNotFound
	}
	return gen, nil
}

// ListByUser returns the user's generations newest-first.
func (r *MemoryRepo) ListByUser(ctx context.Context, userID string) ([]Generation, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	var out []Generation
	for _, gen := range r.byID {
		if gen.UserID == userID {
			out = append(out, gen)
		}
	}
	r.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

// DeleteByUser removes all generations owned by the user.
func (r *MemoryRepo) DeleteByUser(ctx context.Context, userID string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	for id, gen := range r.byID {
		if gen.UserID == userID {
			delete(r.byID, id)
		}
	}
	return nil
}

var _ Repo = (*MemoryRepo)(nil)

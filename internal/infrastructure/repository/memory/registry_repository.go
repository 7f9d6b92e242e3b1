package memory

import (
	"context"
	"sync"
)

type RegistryRepository struct {
	mu      sync.Mutex
	entries map[string]struct{}
}

func NewRegistryRepository() *RegistryRepository {
	return &RegistryRepository{
		entries: make(map[string]struct{}),
	}
}

func (r *RegistryRepository) Exists(_ context.Context, username string, round int) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, ok := r.entries[archiveKey(username, round)]
	return ok, nil
}

func (r *RegistryRepository) Register(_ context.Context, username string, round int) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := archiveKey(username, round)
	if _, ok := r.entries[key]; ok {
		return false, nil
	}
	r.entries[key] = struct{}{}
	return true, nil
}

func (r *RegistryRepository) Release(_ context.Context, username string, round int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.entries, archiveKey(username, round))
	return nil
}

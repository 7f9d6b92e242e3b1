package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/lapenya/quiniela/internal/domain/prediction"
)

type ArchiveRepository struct {
	mu    sync.RWMutex
	items []prediction.RoundSubmission
	seen  map[string]struct{}
}

func NewArchiveRepository() *ArchiveRepository {
	return &ArchiveRepository{
		seen: make(map[string]struct{}),
	}
}

func (r *ArchiveRepository) AppendBatch(_ context.Context, submissions []prediction.RoundSubmission) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored := 0
	for _, sub := range submissions {
		key := archiveKey(sub.Username, sub.Round)
		if _, exists := r.seen[key]; exists {
			continue
		}
		r.seen[key] = struct{}{}
		r.items = append(r.items, sub)
		stored++
	}
	return stored, nil
}

func (r *ArchiveRepository) ListAll(_ context.Context) ([]prediction.RoundSubmission, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]prediction.RoundSubmission, len(r.items))
	copy(out, r.items)
	return out, nil
}

func (r *ArchiveRepository) ListByUsername(_ context.Context, username string) ([]prediction.RoundSubmission, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]prediction.RoundSubmission, 0, 8)
	for _, sub := range r.items {
		if sub.Username == username {
			out = append(out, sub)
		}
	}
	return out, nil
}

func archiveKey(username string, round int) string {
	return fmt.Sprintf("%s:%d", username, round)
}

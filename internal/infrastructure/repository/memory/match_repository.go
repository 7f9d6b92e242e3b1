package memory

import (
	"context"
	"sync"

	"github.com/lapenya/quiniela/internal/domain/match"
)

type MatchRepository struct {
	mu     sync.RWMutex
	stored bool
	items  []match.Match
}

func NewMatchRepository() *MatchRepository {
	return &MatchRepository{}
}

func (r *MatchRepository) ReplaceSeason(_ context.Context, matches []match.Match) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.items = make([]match.Match, len(matches))
	copy(r.items, matches)
	r.stored = true
	return nil
}

func (r *MatchRepository) ListSeason(_ context.Context) ([]match.Match, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if !r.stored {
		return nil, false, nil
	}
	out := make([]match.Match, len(r.items))
	copy(out, r.items)
	return out, true, nil
}

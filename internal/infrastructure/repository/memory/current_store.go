package memory

import (
	"context"
	"sync"

	"github.com/lapenya/quiniela/internal/domain/prediction"
)

type CurrentStore struct {
	mu       sync.RWMutex
	hasOpen  bool
	open     prediction.OpenRound
	cacheTok string
}

func NewCurrentStore() *CurrentStore {
	return &CurrentStore{}
}

func (s *CurrentStore) GetOpen(_ context.Context) (prediction.OpenRound, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.hasOpen {
		return prediction.OpenRound{}, false, nil
	}
	out := prediction.OpenRound{Round: s.open.Round}
	out.Submissions = make([]prediction.RoundSubmission, len(s.open.Submissions))
	copy(out.Submissions, s.open.Submissions)
	return out, true, nil
}

func (s *CurrentStore) ReplaceOpen(_ context.Context, open prediction.OpenRound) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.open = prediction.OpenRound{Round: open.Round}
	s.open.Submissions = make([]prediction.RoundSubmission, len(open.Submissions))
	copy(s.open.Submissions, open.Submissions)
	s.hasOpen = true
	return nil
}

func (s *CurrentStore) AppendSubmission(_ context.Context, sub prediction.RoundSubmission) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.hasOpen {
		return prediction.ErrNoOpenRound
	}
	if sub.Round != s.open.Round {
		return prediction.ErrRoundMismatch
	}
	s.open.Submissions = append(s.open.Submissions, sub)
	return nil
}

func (s *CurrentStore) GetCacheToken(_ context.Context) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cacheTok, nil
}

func (s *CurrentStore) SaveCacheToken(_ context.Context, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cacheTok = token
	return nil
}

package memory

import (
	"context"
	"sync"

	"github.com/lapenya/quiniela/internal/domain/snapshot"
)

type SnapshotStore struct {
	mu sync.RWMutex

	hasAllMatches      bool
	allMatches         snapshot.AllMatchesDoc
	hasLeagueStandings bool
	leagueStandings    snapshot.LeagueStandingsDoc
	hasCurrentRound    bool
	currentRound       snapshot.CurrentRoundDoc
	hasPlayerStandings bool
	playerStandings    snapshot.PlayerStandingsDoc
}

func NewSnapshotStore() *SnapshotStore {
	return &SnapshotStore{}
}

func (s *SnapshotStore) PublishAllMatches(_ context.Context, doc snapshot.AllMatchesDoc) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.allMatches = doc
	s.hasAllMatches = true
	return nil
}

func (s *SnapshotStore) PublishLeagueStandings(_ context.Context, doc snapshot.LeagueStandingsDoc) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.leagueStandings = doc
	s.hasLeagueStandings = true
	return nil
}

func (s *SnapshotStore) PublishCurrentRound(_ context.Context, doc snapshot.CurrentRoundDoc) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.currentRound = doc
	s.hasCurrentRound = true
	return nil
}

func (s *SnapshotStore) PublishPlayerStandings(_ context.Context, doc snapshot.PlayerStandingsDoc) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.playerStandings = doc
	s.hasPlayerStandings = true
	return nil
}

func (s *SnapshotStore) GetAllMatches(_ context.Context) (snapshot.AllMatchesDoc, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.allMatches, s.hasAllMatches, nil
}

func (s *SnapshotStore) GetLeagueStandings(_ context.Context) (snapshot.LeagueStandingsDoc, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.leagueStandings, s.hasLeagueStandings, nil
}

func (s *SnapshotStore) GetCurrentRound(_ context.Context) (snapshot.CurrentRoundDoc, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.currentRound, s.hasCurrentRound, nil
}

func (s *SnapshotStore) GetPlayerStandings(_ context.Context) (snapshot.PlayerStandingsDoc, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.playerStandings, s.hasPlayerStandings, nil
}

package usecase

import (
	"context"
	"fmt"

	"github.com/lapenya/quiniela/internal/domain/snapshot"
)

// BoardService serves the published documents. The pipeline is the only
// writer; this service is a thin read path so handlers never touch the
// store directly.
type BoardService struct {
	snapshots snapshot.Store
}

func NewBoardService(snapshots snapshot.Store) *BoardService {
	return &BoardService{snapshots: snapshots}
}

func (s *BoardService) AllMatches(ctx context.Context) (snapshot.AllMatchesDoc, error) {
	ctx, span := startUsecaseSpan(ctx, "board.all_matches")
	defer span.End()

	doc, found, err := s.snapshots.GetAllMatches(ctx)
	if err != nil {
		return snapshot.AllMatchesDoc{}, fmt.Errorf("load all-matches snapshot: %w", err)
	}
	if !found {
		return snapshot.AllMatchesDoc{}, fmt.Errorf("%w: season has not been published yet", ErrNotFound)
	}
	return doc, nil
}

func (s *BoardService) LeagueStandings(ctx context.Context) (snapshot.LeagueStandingsDoc, error) {
	ctx, span := startUsecaseSpan(ctx, "board.league_standings")
	defer span.End()

	doc, found, err := s.snapshots.GetLeagueStandings(ctx)
	if err != nil {
		return snapshot.LeagueStandingsDoc{}, fmt.Errorf("load league standings snapshot: %w", err)
	}
	if !found {
		return snapshot.LeagueStandingsDoc{}, fmt.Errorf("%w: league standings have not been published yet", ErrNotFound)
	}
	return doc, nil
}

func (s *BoardService) CurrentRound(ctx context.Context) (snapshot.CurrentRoundDoc, error) {
	ctx, span := startUsecaseSpan(ctx, "board.current_round")
	defer span.End()

	doc, found, err := s.snapshots.GetCurrentRound(ctx)
	if err != nil {
		return snapshot.CurrentRoundDoc{}, fmt.Errorf("load current round snapshot: %w", err)
	}
	if !found {
		return snapshot.CurrentRoundDoc{}, fmt.Errorf("%w: no round has been published yet", ErrNotFound)
	}
	return doc, nil
}

func (s *BoardService) PlayerStandings(ctx context.Context) (snapshot.PlayerStandingsDoc, error) {
	ctx, span := startUsecaseSpan(ctx, "board.player_standings")
	defer span.End()

	doc, found, err := s.snapshots.GetPlayerStandings(ctx)
	if err != nil {
		return snapshot.PlayerStandingsDoc{}, fmt.Errorf("load player standings snapshot: %w", err)
	}
	if !found {
		return snapshot.PlayerStandingsDoc{}, fmt.Errorf("%w: player standings have not been published yet", ErrNotFound)
	}
	return doc, nil
}

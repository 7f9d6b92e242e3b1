package usecase

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/lapenya/quiniela/internal/domain/prediction"
	"github.com/lapenya/quiniela/internal/platform/cache"
)

// PlayerHistory is the per-player archive view: scored rounds newest first
// plus lifetime totals.
type PlayerHistory struct {
	Username string                       `json:"username"`
	Rounds   []prediction.RoundSubmission `json:"rounds"`
	Totals   prediction.Summary           `json:"totals"`
}

// HistoryService serves archive reads. Results are cached briefly since the
// archive only changes when a round settles.
type HistoryService struct {
	archive prediction.ArchiveRepository
	cache   *cache.Store
}

func NewHistoryService(archive prediction.ArchiveRepository) *HistoryService {
	return &HistoryService{
		archive: archive,
		cache:   cache.NewStore(30 * time.Second),
	}
}

// ForPlayer returns the player's archived rounds, newest round first.
func (s *HistoryService) ForPlayer(ctx context.Context, username string) (PlayerHistory, error) {
	ctx, span := startUsecaseSpan(ctx, "history.for_player")
	defer span.End()

	username = strings.ToLower(strings.TrimSpace(username))
	if username == "" {
		return PlayerHistory{}, fmt.Errorf("%w: username is required", ErrInvalidInput)
	}

	value, err := s.cache.GetOrLoad(ctx, "history:"+username, func(ctx context.Context) (any, error) {
		rounds, err := s.archive.ListByUsername(ctx, username)
		if err != nil {
			return nil, fmt.Errorf("list archive for %s: %w", username, err)
		}
		sort.SliceStable(rounds, func(i, j int) bool {
			return rounds[i].Round > rounds[j].Round
		})

		history := PlayerHistory{Username: username, Rounds: rounds}
		for _, sub := range rounds {
			if sub.Summary == nil {
				continue
			}
			history.Totals.CorrectCount += sub.Summary.CorrectCount
			history.Totals.OddsSum += sub.Summary.OddsSum
			history.Totals.Points += sub.Summary.Points
		}
		return history, nil
	})
	if err != nil {
		return PlayerHistory{}, err
	}

	history, ok := value.(PlayerHistory)
	if !ok {
		return PlayerHistory{}, fmt.Errorf("unexpected cached history type %T", value)
	}
	return history, nil
}

// PlayerStandings rebuilds the all-time table from the archive.
func (s *HistoryService) PlayerStandings(ctx context.Context) ([]prediction.PlayerRow, error) {
	ctx, span := startUsecaseSpan(ctx, "history.player_standings")
	defer span.End()

	value, err := s.cache.GetOrLoad(ctx, "history:standings", func(ctx context.Context) (any, error) {
		archived, err := s.archive.ListAll(ctx)
		if err != nil {
			return nil, fmt.Errorf("list archive: %w", err)
		}
		return prediction.ComputePlayerStandings(archived), nil
	})
	if err != nil {
		return nil, err
	}

	rows, ok := value.([]prediction.PlayerRow)
	if !ok {
		return nil, fmt.Errorf("unexpected cached standings type %T", value)
	}
	return rows, nil
}

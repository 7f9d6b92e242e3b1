package redis

import (
	"context"
	"errors"
	"fmt"

	sonic "github.com/bytedance/sonic"
	goredis "github.com/redis/go-redis/v9"

	"github.com/lapenya/quiniela/internal/domain/match"
)

const keySeasonMatches = "quiniela:season:matches"

// MatchRepository is the canonical season store. A run that gets a 304 from
// the provider settles against this copy instead of refetching.
type MatchRepository struct {
	client *goredis.Client
}

func NewMatchRepository(client *goredis.Client) *MatchRepository {
	return &MatchRepository{client: client}
}

func (r *MatchRepository) ReplaceSeason(ctx context.Context, matches []match.Match) error {
	raw, err := sonic.Marshal(matches)
	if err != nil {
		return fmt.Errorf("encode season matches: %w", err)
	}
	if err := r.client.Set(ctx, keySeasonMatches, raw, 0).Err(); err != nil {
		return fmt.Errorf("redis set season matches: %w", err)
	}
	return nil
}

func (r *MatchRepository) ListSeason(ctx context.Context) ([]match.Match, bool, error) {
	raw, err := r.client.Get(ctx, keySeasonMatches).Bytes()
	if errors.Is(err, goredis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("redis get season matches: %w", err)
	}

	var matches []match.Match
	if err := sonic.Unmarshal(raw, &matches); err != nil {
		return nil, false, fmt.Errorf("decode season matches: %w", err)
	}
	return matches, true, nil
}

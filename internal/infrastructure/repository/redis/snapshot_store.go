package redis

import (
	"context"
	"errors"
	"fmt"

	sonic "github.com/bytedance/sonic"
	goredis "github.com/redis/go-redis/v9"
	"github.com/valyala/bytebufferpool"

	"github.com/lapenya/quiniela/internal/domain/snapshot"
)

const (
	keyAllMatches      = "quiniela:snapshot:all-matches"
	keyLeagueStandings = "quiniela:snapshot:league-standings"
	keyCurrentRound    = "quiniela:snapshot:current-round"
	keyPlayerStandings = "quiniela:snapshot:player-standings"
)

// SnapshotStore publishes the read-side documents to redis, one key per
// document, replaced wholesale on every publish.
type SnapshotStore struct {
	client *goredis.Client
}

func NewSnapshotStore(client *goredis.Client) *SnapshotStore {
	return &SnapshotStore{client: client}
}

func (s *SnapshotStore) PublishAllMatches(ctx context.Context, doc snapshot.AllMatchesDoc) error {
	return s.publish(ctx, keyAllMatches, doc)
}

func (s *SnapshotStore) PublishLeagueStandings(ctx context.Context, doc snapshot.LeagueStandingsDoc) error {
	return s.publish(ctx, keyLeagueStandings, doc)
}

func (s *SnapshotStore) PublishCurrentRound(ctx context.Context, doc snapshot.CurrentRoundDoc) error {
	return s.publish(ctx, keyCurrentRound, doc)
}

func (s *SnapshotStore) PublishPlayerStandings(ctx context.Context, doc snapshot.PlayerStandingsDoc) error {
	return s.publish(ctx, keyPlayerStandings, doc)
}

func (s *SnapshotStore) GetAllMatches(ctx context.Context) (snapshot.AllMatchesDoc, bool, error) {
	var doc snapshot.AllMatchesDoc
	found, err := s.get(ctx, keyAllMatches, &doc)
	return doc, found, err
}

func (s *SnapshotStore) GetLeagueStandings(ctx context.Context) (snapshot.LeagueStandingsDoc, bool, error) {
	var doc snapshot.LeagueStandingsDoc
	found, err := s.get(ctx, keyLeagueStandings, &doc)
	return doc, found, err
}

func (s *SnapshotStore) GetCurrentRound(ctx context.Context) (snapshot.CurrentRoundDoc, bool, error) {
	var doc snapshot.CurrentRoundDoc
	found, err := s.get(ctx, keyCurrentRound, &doc)
	return doc, found, err
}

func (s *SnapshotStore) GetPlayerStandings(ctx context.Context) (snapshot.PlayerStandingsDoc, bool, error) {
	var doc snapshot.PlayerStandingsDoc
	found, err := s.get(ctx, keyPlayerStandings, &doc)
	return doc, found, err
}

func (s *SnapshotStore) publish(ctx context.Context, key string, doc any) error {
	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)

	if err := sonic.ConfigDefault.NewEncoder(buf).Encode(doc); err != nil {
		return fmt.Errorf("encode snapshot %s: %w", key, err)
	}

	if err := s.client.Set(ctx, key, buf.Bytes(), 0).Err(); err != nil {
		return fmt.Errorf("redis set snapshot %s: %w", key, err)
	}
	return nil
}

func (s *SnapshotStore) get(ctx context.Context, key string, target any) (bool, error) {
	raw, err := s.client.Get(ctx, key).Bytes()
	if errors.Is(err, goredis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("redis get snapshot %s: %w", key, err)
	}
	if err := sonic.Unmarshal(raw, target); err != nil {
		return false, fmt.Errorf("decode snapshot %s: %w", key, err)
	}
	return true, nil
}

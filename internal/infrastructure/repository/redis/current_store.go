package redis

import (
	"context"
	"errors"
	"fmt"

	sonic "github.com/bytedance/sonic"
	goredis "github.com/redis/go-redis/v9"

	"github.com/lapenya/quiniela/internal/domain/prediction"
)

const (
	keyOpenRound  = "quiniela:current:open-round"
	keyCacheToken = "quiniela:current:matches-etag"
)

// CurrentStore keeps the single open-round slot and the provider cache token
// in redis. The slot is one JSON value read and replaced wholesale; appends
// go through WATCH so concurrent submissions never lose an entry.
type CurrentStore struct {
	client *goredis.Client
}

func NewCurrentStore(client *goredis.Client) *CurrentStore {
	return &CurrentStore{client: client}
}

func (s *CurrentStore) GetOpen(ctx context.Context) (prediction.OpenRound, bool, error) {
	raw, err := s.client.Get(ctx, keyOpenRound).Bytes()
	if errors.Is(err, goredis.Nil) {
		return prediction.OpenRound{}, false, nil
	}
	if err != nil {
		return prediction.OpenRound{}, false, fmt.Errorf("redis get open round: %w", err)
	}

	var open prediction.OpenRound
	if err := sonic.Unmarshal(raw, &open); err != nil {
		return prediction.OpenRound{}, false, fmt.Errorf("decode open round: %w", err)
	}
	return open, true, nil
}

func (s *CurrentStore) ReplaceOpen(ctx context.Context, open prediction.OpenRound) error {
	raw, err := sonic.Marshal(open)
	if err != nil {
		return fmt.Errorf("encode open round: %w", err)
	}
	if err := s.client.Set(ctx, keyOpenRound, raw, 0).Err(); err != nil {
		return fmt.Errorf("redis set open round: %w", err)
	}
	return nil
}

func (s *CurrentStore) AppendSubmission(ctx context.Context, sub prediction.RoundSubmission) error {
	// Optimistic transaction: retry a few times when the slot moves under us.
	for attempt := 0; attempt < 5; attempt++ {
		err := s.client.Watch(ctx, func(tx *goredis.Tx) error {
			raw, err := tx.Get(ctx, keyOpenRound).Bytes()
			if errors.Is(err, goredis.Nil) {
				return prediction.ErrNoOpenRound
			}
			if err != nil {
				return fmt.Errorf("redis get open round: %w", err)
			}

			var open prediction.OpenRound
			if err := sonic.Unmarshal(raw, &open); err != nil {
				return fmt.Errorf("decode open round: %w", err)
			}
			if sub.Round != open.Round {
				return prediction.ErrRoundMismatch
			}
			open.Submissions = append(open.Submissions, sub)

			encoded, err := sonic.Marshal(open)
			if err != nil {
				return fmt.Errorf("encode open round: %w", err)
			}
			_, err = tx.TxPipelined(ctx, func(pipe goredis.Pipeliner) error {
				pipe.Set(ctx, keyOpenRound, encoded, 0)
				return nil
			})
			return err
		}, keyOpenRound)

		if errors.Is(err, goredis.TxFailedErr) {
			continue
		}
		return err
	}
	return fmt.Errorf("redis append submission: too many concurrent slot updates")
}

func (s *CurrentStore) GetCacheToken(ctx context.Context) (string, error) {
	token, err := s.client.Get(ctx, keyCacheToken).Result()
	if errors.Is(err, goredis.Nil) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("redis get cache token: %w", err)
	}
	return token, nil
}

func (s *CurrentStore) SaveCacheToken(ctx context.Context, token string) error {
	if err := s.client.Set(ctx, keyCacheToken, token, 0).Err(); err != nil {
		return fmt.Errorf("redis set cache token: %w", err)
	}
	return nil
}

package usecase

import (
	"context"

	"github.com/lapenya/quiniela/internal/domain/match"
)

// ProviderFetch is the result of one conditional ingestion call. When the
// provider reports the payload unchanged, NotModified is true and Matches is
// empty; CacheToken always carries the token to persist for the next call.
type ProviderFetch struct {
	NotModified    bool
	CacheToken     string
	Matches        []match.Match
	SkippedRecords int
}

// MatchProvider fetches the season fixture list from the upstream football
// data API. cacheToken is the validator from the previous successful fetch,
// empty on the first run.
type MatchProvider interface {
	FetchMatches(ctx context.Context, cacheToken string) (ProviderFetch, error)
}

package snapshot

import "context"

// Store publishes and serves the read-side documents. Every publish is a
// wholesale replace of the previous document. Reads report found=false only
// when the document was never published; store failures are errors.
type Store interface {
	PublishAllMatches(ctx context.Context, doc AllMatchesDoc) error
	PublishLeagueStandings(ctx context.Context, doc LeagueStandingsDoc) error
	PublishCurrentRound(ctx context.Context, doc CurrentRoundDoc) error
	PublishPlayerStandings(ctx context.Context, doc PlayerStandingsDoc) error

	GetAllMatches(ctx context.Context) (AllMatchesDoc, bool, error)
	GetLeagueStandings(ctx context.Context) (LeagueStandingsDoc, bool, error)
	GetCurrentRound(ctx context.Context) (CurrentRoundDoc, bool, error)
	GetPlayerStandings(ctx context.Context) (PlayerStandingsDoc, bool, error)
}

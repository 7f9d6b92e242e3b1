package match

import "context"

// Repository holds the canonical season fixture list. ReplaceSeason is a
// wholesale swap; ListSeason reports found=false only when no season was ever
// stored.
type Repository interface {
	ReplaceSeason(ctx context.Context, matches []Match) error
	ListSeason(ctx context.Context) ([]Match, bool, error)
}

package snapshot

import (
	"time"

	"github.com/lapenya/quiniela/internal/domain/match"
	"github.com/lapenya/quiniela/internal/domain/odds"
	"github.com/lapenya/quiniela/internal/domain/prediction"
	"github.com/lapenya/quiniela/internal/domain/standings"
)

// BuildAllMatches assembles the full-season document.
func BuildAllMatches(competition, season string, matches []match.Match, now time.Time) AllMatchesDoc {
	views := make([]MatchView, 0, len(matches))
	for _, m := range matches {
		views = append(views, NewMatchView(m, nil))
	}
	return AllMatchesDoc{
		Version:     Version,
		Competition: competition,
		Season:      season,
		UpdatedAt:   now,
		Matches:     views,
	}
}

// BuildLeagueStandings assembles the league table document.
func BuildLeagueStandings(table []standings.Row, now time.Time) LeagueStandingsDoc {
	return LeagueStandingsDoc{
		Version:   Version,
		UpdatedAt: now,
		Standings: table,
	}
}

// BuildCurrentRound assembles the open-round document, attaching each
// fixture's price triple by match id.
func BuildCurrentRound(round int, fixtures []match.Match, priced []odds.FixtureOdds, now time.Time) CurrentRoundDoc {
	byID := make(map[int64]odds.Triple, len(priced))
	for _, fo := range priced {
		byID[fo.MatchID] = fo.Odds
	}

	views := make([]MatchView, 0, len(fixtures))
	for _, m := range fixtures {
		var triple *odds.Triple
		if t, ok := byID[m.ID]; ok {
			t := t
			triple = &t
		}
		views = append(views, NewMatchView(m, triple))
	}
	return CurrentRoundDoc{
		Version:   Version,
		Round:     round,
		UpdatedAt: now,
		Matches:   views,
	}
}

// BuildPlayerStandings assembles the player table document.
func BuildPlayerStandings(rows []prediction.PlayerRow, now time.Time) PlayerStandingsDoc {
	return PlayerStandingsDoc{
		Version:   Version,
		UpdatedAt: now,
		Standings: rows,
	}
}

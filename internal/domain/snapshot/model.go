package snapshot

import (
	"fmt"
	"time"

	"github.com/lapenya/quiniela/internal/domain/match"
	"github.com/lapenya/quiniela/internal/domain/odds"
	"github.com/lapenya/quiniela/internal/domain/prediction"
	"github.com/lapenya/quiniela/internal/domain/standings"
)

// Version stamps every published document so readers can detect shape changes.
const Version = "1.0.0"

// TeamView is the published team reference.
type TeamView struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// MatchView is the read-side fixture shape. Score is the display string
// "2 - 1" (empty until a full-time score exists) and Result the pools marker
// "1", "X" or "2" (empty until the match finishes).
type MatchView struct {
	ID       int64        `json:"id"`
	Round    int          `json:"matchday"`
	UTCDate  time.Time    `json:"utcDate"`
	Status   string       `json:"status"`
	HomeTeam TeamView     `json:"homeTeam"`
	AwayTeam TeamView     `json:"awayTeam"`
	Score    string       `json:"score,omitempty"`
	Result   string       `json:"result,omitempty"`
	Odds     *odds.Triple `json:"odds,omitempty"`
}

// AllMatchesDoc is the full-season fixture snapshot.
type AllMatchesDoc struct {
	Version     string      `json:"version"`
	Competition string      `json:"competition"`
	Season      string      `json:"season"`
	UpdatedAt   time.Time   `json:"updatedAt"`
	Matches     []MatchView `json:"matches"`
}

// LeagueStandingsDoc is the published league table.
type LeagueStandingsDoc struct {
	Version   string          `json:"version"`
	UpdatedAt time.Time       `json:"updatedAt"`
	Standings []standings.Row `json:"standings"`
}

// CurrentRoundDoc is the open round with priced fixtures.
type CurrentRoundDoc struct {
	Version   string      `json:"version"`
	Round     int         `json:"matchday"`
	UpdatedAt time.Time   `json:"updatedAt"`
	Matches   []MatchView `json:"matches"`
}

// PlayerStandingsDoc is the published all-time player table.
type PlayerStandingsDoc struct {
	Version   string                 `json:"version"`
	UpdatedAt time.Time              `json:"updatedAt"`
	Standings []prediction.PlayerRow `json:"standings"`
}

// ResultMarker converts a canonical outcome into the pools marker.
func ResultMarker(outcome string) string {
	switch outcome {
	case match.OutcomeHome:
		return "1"
	case match.OutcomeDraw:
		return "X"
	case match.OutcomeAway:
		return "2"
	default:
		return ""
	}
}

// NewMatchView projects a canonical match, with optional odds, into its
// published shape.
func NewMatchView(m match.Match, triple *odds.Triple) MatchView {
	view := MatchView{
		ID:       m.ID,
		Round:    m.Round,
		UTCDate:  m.KickoffUTC,
		Status:   m.Status,
		HomeTeam: TeamView{ID: m.HomeTeam.ID, Name: m.HomeTeam.Name},
		AwayTeam: TeamView{ID: m.AwayTeam.ID, Name: m.AwayTeam.Name},
		Odds:     triple,
	}
	if m.HasScore() {
		view.Score = fmt.Sprintf("%d - %d", m.Score.Home, m.Score.Away)
	}
	if m.Finished() {
		outcome := m.Outcome
		if outcome == "" {
			outcome = m.ResultOutcome()
		}
		view.Result = ResultMarker(outcome)
	}
	return view
}

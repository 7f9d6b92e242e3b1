package prediction

import (
	"time"

	"github.com/lapenya/quiniela/internal/domain/match"
	"github.com/lapenya/quiniela/internal/domain/odds"
)

// Prediction is one player's pick for one fixture, priced at submission time.
// Odds are frozen when the pick is placed; later table movement never reprices
// an accepted prediction.
type Prediction struct {
	Username      string      `json:"username" db:"username"`
	Round         int         `json:"round" db:"round"`
	MatchID       int64       `json:"matchId" db:"match_id"`
	HomeTeam      string      `json:"homeTeam" db:"home_team"`
	AwayTeam      string      `json:"awayTeam" db:"away_team"`
	Pick          string      `json:"pick" db:"pick"`
	Odds          odds.Triple `json:"odds" db:"-"`
	Correct       *bool       `json:"correct,omitempty" db:"correct"`
	ActualOutcome string      `json:"actualOutcome,omitempty" db:"actual_outcome"`
}

// PickedOdds returns the decimal price of the outcome the player picked.
func (p Prediction) PickedOdds() float64 {
	switch p.Pick {
	case match.OutcomeHome:
		return p.Odds.Home
	case match.OutcomeDraw:
		return p.Odds.Draw
	case match.OutcomeAway:
		return p.Odds.Away
	default:
		return 0
	}
}

// Summary aggregates a scored round submission.
type Summary struct {
	CorrectCount int     `json:"correctCount" db:"correct_count"`
	OddsSum      float64 `json:"oddsSum" db:"odds_sum"`
	Points       float64 `json:"points" db:"points"`
}

// RoundSubmission is one player's full entry for one round. Summary is nil
// until the round finishes and the submission is scored.
type RoundSubmission struct {
	Username    string       `json:"username"`
	Round       int          `json:"round"`
	Predictions []Prediction `json:"predictions"`
	Summary     *Summary     `json:"summary,omitempty"`
	SubmittedAt time.Time    `json:"submittedAt"`
	ArchivedAt  *time.Time   `json:"archivedAt,omitempty"`
}

// PlayerRow is one line in the all-time player standings, rebuilt from the
// archive on every scoring run.
type PlayerRow struct {
	Position     int     `json:"position"`
	Username     string  `json:"username"`
	Rounds       int     `json:"rounds"`
	CorrectCount int     `json:"correctCount"`
	Points       float64 `json:"points"`
}

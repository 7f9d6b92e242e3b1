package match

import (
	"strings"
	"time"
)

const (
	StatusScheduled = "SCHEDULED"
	StatusFinished  = "FINISHED"
)

const (
	OutcomeHome = "HOME"
	OutcomeDraw = "DRAW"
	OutcomeAway = "AWAY"
)

// Team identifies one side of a fixture.
type Team struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// Score holds a final full-time result.
type Score struct {
	Home int
	Away int
}

// Match is the canonical representation of one fixture. Score and Outcome are
// set only for finished matches, and a finished match never changes on
// re-ingestion.
type Match struct {
	ID         int64
	Round      int
	KickoffUTC time.Time
	Status     string
	HomeTeam   Team
	AwayTeam   Team
	Score      *Score
	Outcome    string
}

func (m Match) Finished() bool {
	return m.Status == StatusFinished
}

func (m Match) HasScore() bool {
	return m.Score != nil
}

// ResultOutcome derives the 1/X/2 outcome from the stored score. It is the
// fallback when the provider omits an explicit winner marker.
func (m Match) ResultOutcome() string {
	if m.Score == nil {
		return ""
	}
	switch {
	case m.Score.Home > m.Score.Away:
		return OutcomeHome
	case m.Score.Home < m.Score.Away:
		return OutcomeAway
	default:
		return OutcomeDraw
	}
}

func ValidOutcome(value string) bool {
	switch strings.ToUpper(strings.TrimSpace(value)) {
	case OutcomeHome, OutcomeDraw, OutcomeAway:
		return true
	default:
		return false
	}
}

func NormalizeOutcome(value string) string {
	return strings.ToUpper(strings.TrimSpace(value))
}

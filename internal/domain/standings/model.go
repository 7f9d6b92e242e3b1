package standings

import "github.com/lapenya/quiniela/internal/domain/match"

// Row is one team's line in the league table.
type Row struct {
	Position       int        `json:"position"`
	Team           match.Team `json:"team"`
	Played         int        `json:"played"`
	Won            int        `json:"won"`
	Drawn          int        `json:"drawn"`
	Lost           int        `json:"lost"`
	GoalsFor       int        `json:"goalsFor"`
	GoalsAgainst   int        `json:"goalsAgainst"`
	GoalDifference int        `json:"goalDifference"`
	Points         int        `json:"points"`
}

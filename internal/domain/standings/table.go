package standings

import (
	"sort"

	"github.com/lapenya/quiniela/internal/domain/match"
)

const (
	pointsPerWin  = 3
	pointsPerDraw = 1
)

// ComputeTable folds the finished, scored matches into a ranked league table.
// The table is rebuilt from scratch on every call; nothing is patched
// incrementally. Ordering is part of the public contract: points, then goal
// difference, then goals for, all descending. Ties beyond that keep
// first-appearance order, so identical input always yields identical output.
func ComputeTable(matches []match.Match) []Row {
	rows := make([]Row, 0, 24)
	index := make(map[int64]int, 24)

	rowFor := func(team match.Team) *Row {
		if i, ok := index[team.ID]; ok {
			return &rows[i]
		}
		rows = append(rows, Row{Team: team})
		index[team.ID] = len(rows) - 1
		return &rows[len(rows)-1]
	}

	for _, m := range matches {
		if !m.Finished() || !m.HasScore() {
			continue
		}

		home := rowFor(m.HomeTeam)
		home.Played++
		home.GoalsFor += m.Score.Home
		home.GoalsAgainst += m.Score.Away

		away := rowFor(m.AwayTeam)
		away.Played++
		away.GoalsFor += m.Score.Away
		away.GoalsAgainst += m.Score.Home

		switch {
		case m.Score.Home > m.Score.Away:
			home.Won++
			home.Points += pointsPerWin
			away.Lost++
		case m.Score.Home < m.Score.Away:
			away.Won++
			away.Points += pointsPerWin
			home.Lost++
		default:
			home.Drawn++
			home.Points += pointsPerDraw
			away.Drawn++
			away.Points += pointsPerDraw
		}

		home.GoalDifference = home.GoalsFor - home.GoalsAgainst
		away.GoalDifference = away.GoalsFor - away.GoalsAgainst
	}

	sort.SliceStable(rows, func(i, j int) bool {
		if rows[i].Points != rows[j].Points {
			return rows[i].Points > rows[j].Points
		}
		if rows[i].GoalDifference != rows[j].GoalDifference {
			return rows[i].GoalDifference > rows[j].GoalDifference
		}
		return rows[i].GoalsFor > rows[j].GoalsFor
	})

	for i := range rows {
		rows[i].Position = i + 1
	}
	return rows
}

// StrengthIndex maps team id to the strength scalar used for odds pricing:
// max(1, 3*points + 2*goalDifference + goalsFor). Teams absent from the table
// get the floor value 1 at lookup time.
func StrengthIndex(table []Row) map[int64]int {
	out := make(map[int64]int, len(table))
	for _, row := range table {
		strength := 3*row.Points + 2*row.GoalDifference + row.GoalsFor
		if strength < 1 {
			strength = 1
		}
		out[row.Team.ID] = strength
	}
	return out
}

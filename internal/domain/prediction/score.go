package prediction

import (
	"math"
	"sort"

	"github.com/cockroachdb/errors"

	"github.com/lapenya/quiniela/internal/domain/match"
)

var (
	// ErrMatchNotFound reports a prediction referencing a fixture absent from
	// the scoring input.
	ErrMatchNotFound = errors.New("prediction references unknown match")
	// ErrMatchNotFinished reports an attempt to score against an unfinished
	// fixture. Scoring is all or nothing per round.
	ErrMatchNotFinished = errors.New("prediction references unfinished match")
)

// ScorePolicy controls how a scored submission converts into points. Weight
// scales the final value; 1.0 keeps the raw hit-rate-weighted odds sum.
type ScorePolicy struct {
	Weight float64
}

func DefaultScorePolicy() ScorePolicy {
	return ScorePolicy{Weight: 1.0}
}

// ScoreSubmission marks each prediction correct or incorrect against the
// finished fixtures and fills the submission summary. The input submission is
// not mutated; a scored copy is returned. Every referenced match must exist
// and be finished, otherwise the whole submission fails unscored.
func ScoreSubmission(sub RoundSubmission, matches []match.Match, policy ScorePolicy) (RoundSubmission, error) {
	byID := make(map[int64]match.Match, len(matches))
	for _, m := range matches {
		byID[m.ID] = m
	}

	scored := sub
	scored.Predictions = make([]Prediction, len(sub.Predictions))
	copy(scored.Predictions, sub.Predictions)

	for i := range scored.Predictions {
		p := &scored.Predictions[i]
		m, ok := byID[p.MatchID]
		if !ok {
			return RoundSubmission{}, errors.Wrapf(ErrMatchNotFound, "match %d round %d", p.MatchID, sub.Round)
		}
		if !m.Finished() {
			return RoundSubmission{}, errors.Wrapf(ErrMatchNotFinished, "match %d round %d", p.MatchID, sub.Round)
		}

		actual := m.Outcome
		if actual == "" {
			actual = m.ResultOutcome()
		}
		correct := actual != "" && p.Pick == actual
		p.Correct = &correct
		p.ActualOutcome = actual
	}

	summary := Summarize(scored.Predictions, policy)
	scored.Summary = &summary
	return scored, nil
}

// Summarize folds scored predictions into the round summary. The odds sum
// covers every pick regardless of outcome, so bold picks raise the ceiling;
// points scale that sum by the hit rate, so misses still decay the score.
func Summarize(predictions []Prediction, policy ScorePolicy) Summary {
	if policy.Weight <= 0 {
		policy = DefaultScorePolicy()
	}

	var summary Summary
	for _, p := range predictions {
		summary.OddsSum += p.PickedOdds()
		if p.Correct != nil && *p.Correct {
			summary.CorrectCount++
		}
	}
	if len(predictions) > 0 && summary.CorrectCount > 0 {
		hitRate := float64(summary.CorrectCount) / float64(len(predictions))
		summary.Points = round2(summary.OddsSum * hitRate * policy.Weight)
	}
	summary.OddsSum = round2(summary.OddsSum)
	return summary
}

// ComputePlayerStandings rebuilds the all-time player table from archived,
// scored submissions. Ordering: points desc, correct count desc, then
// username asc so equal players rank deterministically.
func ComputePlayerStandings(archived []RoundSubmission) []PlayerRow {
	index := make(map[string]int)
	rows := make([]PlayerRow, 0, 16)

	for _, sub := range archived {
		if sub.Summary == nil {
			continue
		}
		i, ok := index[sub.Username]
		if !ok {
			rows = append(rows, PlayerRow{Username: sub.Username})
			i = len(rows) - 1
			index[sub.Username] = i
		}
		rows[i].Rounds++
		rows[i].CorrectCount += sub.Summary.CorrectCount
		rows[i].Points = round2(rows[i].Points + sub.Summary.Points)
	}

	sort.SliceStable(rows, func(i, j int) bool {
		if rows[i].Points != rows[j].Points {
			return rows[i].Points > rows[j].Points
		}
		if rows[i].CorrectCount != rows[j].CorrectCount {
			return rows[i].CorrectCount > rows[j].CorrectCount
		}
		return rows[i].Username < rows[j].Username
	})
	for i := range rows {
		rows[i].Position = i + 1
	}
	return rows
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

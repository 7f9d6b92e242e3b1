package footballdata

import (
	"strings"
	"time"

	"github.com/lapenya/quiniela/internal/domain/match"
)

// Provider winner markers.
const (
	winnerHome = "HOME_TEAM"
	winnerAway = "AWAY_TEAM"
	winnerDraw = "DRAW"
)

// NormalizeMatches converts provider records into canonical matches. Records
// missing a match id or either team identity are dropped and counted, the
// rest of the payload still goes through. Any status other than FINISHED
// collapses to SCHEDULED; outcome and score are set only on finished matches.
func NormalizeMatches(envelope matchesEnvelope) ([]match.Match, int) {
	out := make([]match.Match, 0, len(envelope.Matches))
	skipped := 0

	for _, item := range envelope.Matches {
		home := normalizeTeam(item.HomeTeam)
		away := normalizeTeam(item.AwayTeam)
		if item.ID <= 0 || home.ID <= 0 || home.Name == "" || away.ID <= 0 || away.Name == "" {
			skipped++
			continue
		}

		m := match.Match{
			ID:       item.ID,
			Round:    item.Matchday,
			Status:   match.StatusScheduled,
			HomeTeam: home,
			AwayTeam: away,
		}
		if kickoff, err := time.Parse(time.RFC3339, strings.TrimSpace(item.UTCDate)); err == nil {
			m.KickoffUTC = kickoff.UTC()
		}

		if strings.EqualFold(strings.TrimSpace(item.Status), match.StatusFinished) {
			m.Status = match.StatusFinished
			if item.Score.FullTime.Home != nil && item.Score.FullTime.Away != nil {
				m.Score = &match.Score{
					Home: *item.Score.FullTime.Home,
					Away: *item.Score.FullTime.Away,
				}
			}
			m.Outcome = normalizeOutcome(item.Score.Winner, m)
		}

		out = append(out, m)
	}
	return out, skipped
}

func normalizeTeam(item teamItem) match.Team {
	name := strings.TrimSpace(item.Name)
	if name == "" {
		name = strings.TrimSpace(item.ShortName)
	}
	return match.Team{ID: item.ID, Name: name}
}

// normalizeOutcome maps the provider winner marker, falling back to the
// stored score when the marker is absent or unknown.
func normalizeOutcome(winner string, m match.Match) string {
	switch strings.ToUpper(strings.TrimSpace(winner)) {
	case winnerHome:
		return match.OutcomeHome
	case winnerAway:
		return match.OutcomeAway
	case winnerDraw:
		return match.OutcomeDraw
	default:
		return m.ResultOutcome()
	}
}

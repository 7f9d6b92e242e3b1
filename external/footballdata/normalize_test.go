package footballdata

import (
	"testing"

	"github.com/lapenya/quiniela/internal/domain/match"
)

func intPtr(v int) *int { return &v }

func TestNormalizeMatches_FinishedAndScheduled(t *testing.T) {
	t.Parallel()

	envelope := matchesEnvelope{Matches: []matchItem{
		{
			ID: 1, Matchday: 5, UTCDate: "2025-09-14T19:00:00Z", Status: "FINISHED",
			HomeTeam: teamItem{ID: 10, Name: "Real Sociedad"},
			AwayTeam: teamItem{ID: 11, Name: "Osasuna"},
			Score:    scoreItem{Winner: "HOME_TEAM", FullTime: fullTimeItem{Home: intPtr(2), Away: intPtr(1)}},
		},
		{
			ID: 2, Matchday: 5, UTCDate: "2025-09-15T19:00:00Z", Status: "TIMED",
			HomeTeam: teamItem{ID: 12, Name: "Getafe"},
			AwayTeam: teamItem{ID: 13, Name: "Espanyol"},
		},
	}}

	matches, skipped := NormalizeMatches(envelope)
	if skipped != 0 || len(matches) != 2 {
		t.Fatalf("expected 2 matches and no skips, got %d matches %d skipped", len(matches), skipped)
	}

	finished := matches[0]
	if finished.Status != match.StatusFinished || finished.Outcome != match.OutcomeHome {
		t.Fatalf("unexpected finished match: %+v", finished)
	}
	if finished.Score == nil || finished.Score.Home != 2 || finished.Score.Away != 1 {
		t.Fatalf("unexpected score: %+v", finished.Score)
	}
	if finished.KickoffUTC.IsZero() {
		t.Fatal("kickoff must be parsed")
	}

	scheduled := matches[1]
	if scheduled.Status != match.StatusScheduled || scheduled.Score != nil || scheduled.Outcome != "" {
		t.Fatalf("non-finished statuses must collapse to scheduled: %+v", scheduled)
	}
}

func TestNormalizeMatches_SkipsRecordsMissingTeamIdentity(t *testing.T) {
	t.Parallel()

	envelope := matchesEnvelope{Matches: []matchItem{
		{
			ID: 1, Matchday: 1, Status: "TIMED",
			HomeTeam: teamItem{ID: 10, Name: "Sevilla"},
			AwayTeam: teamItem{ID: 0, Name: ""},
		},
		{
			ID: 2, Matchday: 1, Status: "TIMED",
			HomeTeam: teamItem{ID: 10, Name: "Sevilla"},
			AwayTeam: teamItem{ID: 11, Name: "Mallorca"},
		},
		{
			ID: 0, Matchday: 1, Status: "TIMED",
			HomeTeam: teamItem{ID: 10, Name: "Sevilla"},
			AwayTeam: teamItem{ID: 12, Name: "Cadiz"},
		},
	}}

	matches, skipped := NormalizeMatches(envelope)
	if skipped != 2 || len(matches) != 1 || matches[0].ID != 2 {
		t.Fatalf("expected partial success with 2 skips, got %d matches %d skipped", len(matches), skipped)
	}
}

func TestNormalizeMatches_WinnerFallsBackToScore(t *testing.T) {
	t.Parallel()

	envelope := matchesEnvelope{Matches: []matchItem{
		{
			ID: 1, Matchday: 1, Status: "FINISHED",
			HomeTeam: teamItem{ID: 10, Name: "Sevilla"},
			AwayTeam: teamItem{ID: 11, Name: "Mallorca"},
			Score:    scoreItem{FullTime: fullTimeItem{Home: intPtr(0), Away: intPtr(3)}},
		},
	}}

	matches, _ := NormalizeMatches(envelope)
	if matches[0].Outcome != match.OutcomeAway {
		t.Fatalf("expected score-derived outcome, got %q", matches[0].Outcome)
	}
}

func TestNormalizeMatches_ShortNameFallback(t *testing.T) {
	t.Parallel()

	envelope := matchesEnvelope{Matches: []matchItem{
		{
			ID: 1, Matchday: 1, Status: "TIMED",
			HomeTeam: teamItem{ID: 10, ShortName: "Sevilla"},
			AwayTeam: teamItem{ID: 11, Name: "Mallorca"},
		},
	}}

	matches, skipped := NormalizeMatches(envelope)
	if skipped != 0 || matches[0].HomeTeam.Name != "Sevilla" {
		t.Fatalf("expected short name fallback, got %+v skipped=%d", matches, skipped)
	}
}

package snapshot

import (
	"testing"
	"time"

	"github.com/lapenya/quiniela/internal/domain/match"
	"github.com/lapenya/quiniela/internal/domain/odds"
)

func TestNewMatchView_FinishedMatch(t *testing.T) {
	t.Parallel()

	m := match.Match{
		ID:         90,
		Round:      12,
		KickoffUTC: time.Date(2025, 1, 18, 20, 0, 0, 0, time.UTC),
		Status:     match.StatusFinished,
		HomeTeam:   match.Team{ID: 1, Name: "Sevilla"},
		AwayTeam:   match.Team{ID: 2, Name: "Valencia"},
		Score:      &match.Score{Home: 2, Away: 1},
		Outcome:    match.OutcomeHome,
	}

	view := NewMatchView(m, nil)
	if view.Score != "2 - 1" {
		t.Fatalf("expected display score, got %q", view.Score)
	}
	if view.Result != "1" {
		t.Fatalf("expected result marker 1, got %q", view.Result)
	}
	if view.Odds != nil {
		t.Fatalf("expected no odds on plain view, got %+v", view.Odds)
	}
}

func TestNewMatchView_ScheduledMatch(t *testing.T) {
	t.Parallel()

	m := match.Match{
		ID:       91,
		Round:    12,
		Status:   match.StatusScheduled,
		HomeTeam: match.Team{ID: 1, Name: "Sevilla"},
		AwayTeam: match.Team{ID: 2, Name: "Valencia"},
	}

	view := NewMatchView(m, &odds.Triple{Home: 1.9, Draw: 3.3, Away: 4.1})
	if view.Score != "" || view.Result != "" {
		t.Fatalf("scheduled match must carry no score or result: %+v", view)
	}
	if view.Odds == nil || view.Odds.Draw != 3.3 {
		t.Fatalf("expected attached odds, got %+v", view.Odds)
	}
}

func TestResultMarker(t *testing.T) {
	t.Parallel()

	cases := map[string]string{
		match.OutcomeHome: "1",
		match.OutcomeDraw: "X",
		match.OutcomeAway: "2",
		"":                "",
		"POSTPONED":       "",
	}
	for outcome, want := range cases {
		if got := ResultMarker(outcome); got != want {
			t.Fatalf("ResultMarker(%q) = %q, want %q", outcome, got, want)
		}
	}
}

func TestBuildCurrentRound_AttachesOddsByMatchID(t *testing.T) {
	t.Parallel()

	fixtures := []match.Match{
		{ID: 1, Round: 3, Status: match.StatusScheduled},
		{ID: 2, Round: 3, Status: match.StatusScheduled},
	}
	priced := []odds.FixtureOdds{
		{MatchID: 2, Odds: odds.Triple{Home: 2.2, Draw: 3.1, Away: 3.4}},
	}

	doc := BuildCurrentRound(3, fixtures, priced, time.Now().UTC())
	if doc.Version != Version || doc.Round != 3 || len(doc.Matches) != 2 {
		t.Fatalf("unexpected document header: %+v", doc)
	}
	if doc.Matches[0].Odds != nil {
		t.Fatalf("match 1 has no pricing, got %+v", doc.Matches[0].Odds)
	}
	if doc.Matches[1].Odds == nil || doc.Matches[1].Odds.Home != 2.2 {
		t.Fatalf("match 2 pricing missing: %+v", doc.Matches[1].Odds)
	}
}

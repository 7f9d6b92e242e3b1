package match

import "testing"

func TestCurrentRound_SmallestIncompleteWins(t *testing.T) {
	t.Parallel()

	matches := []Match{
		{ID: 1, Round: 1, Status: StatusFinished},
		{ID: 2, Round: 2, Status: StatusFinished},
		{ID: 3, Round: 2, Status: StatusScheduled},
		{ID: 4, Round: 3, Status: StatusScheduled},
	}

	if got := CurrentRound(matches); got != 2 {
		t.Fatalf("expected round 2, got %d", got)
	}
}

func TestCurrentRound_FallsBackToLargestWhenSeasonDone(t *testing.T) {
	t.Parallel()

	matches := []Match{
		{ID: 1, Round: 36, Status: StatusFinished},
		{ID: 2, Round: 38, Status: StatusFinished},
		{ID: 3, Round: 37, Status: StatusFinished},
	}

	if got := CurrentRound(matches); got != 38 {
		t.Fatalf("expected fallback to round 38, got %d", got)
	}
}

func TestCurrentRound_EmptySet(t *testing.T) {
	t.Parallel()

	if got := CurrentRound(nil); got != 0 {
		t.Fatalf("expected 0 for empty set, got %d", got)
	}
}

func TestIsRoundComplete(t *testing.T) {
	t.Parallel()

	if IsRoundComplete(nil) {
		t.Fatal("empty round must not be complete")
	}
	open := []Match{
		{ID: 1, Round: 5, Status: StatusFinished},
		{ID: 2, Round: 5, Status: StatusScheduled},
	}
	if IsRoundComplete(open) {
		t.Fatal("round with a scheduled match must not be complete")
	}
	done := []Match{
		{ID: 1, Round: 5, Status: StatusFinished},
		{ID: 2, Round: 5, Status: StatusFinished},
	}
	if !IsRoundComplete(done) {
		t.Fatal("fully finished round must be complete")
	}
}

func TestByRound_PreservesOrder(t *testing.T) {
	t.Parallel()

	matches := []Match{
		{ID: 10, Round: 2},
		{ID: 11, Round: 1},
		{ID: 12, Round: 2},
	}

	got := ByRound(matches, 2)
	if len(got) != 2 || got[0].ID != 10 || got[1].ID != 12 {
		t.Fatalf("unexpected filter result: %+v", got)
	}
}

func TestResultOutcome(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name  string
		score *Score
		want  string
	}{
		{"home win", &Score{Home: 2, Away: 1}, OutcomeHome},
		{"away win", &Score{Home: 0, Away: 3}, OutcomeAway},
		{"draw", &Score{Home: 1, Away: 1}, OutcomeDraw},
		{"no score", nil, ""},
	}

	for _, tc := range cases {
		m := Match{Score: tc.score}
		if got := m.ResultOutcome(); got != tc.want {
			t.Fatalf("%s: expected %q, got %q", tc.name, tc.want, got)
		}
	}
}

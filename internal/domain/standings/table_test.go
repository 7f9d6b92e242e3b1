package standings

import (
	"math/rand"
	"reflect"
	"testing"

	"github.com/lapenya/quiniela/internal/domain/match"
)

func finished(id int64, round int, home, away match.Team, hg, ag int) match.Match {
	m := match.Match{
		ID:       id,
		Round:    round,
		Status:   match.StatusFinished,
		HomeTeam: home,
		AwayTeam: away,
		Score:    &match.Score{Home: hg, Away: ag},
	}
	m.Outcome = m.ResultOutcome()
	return m
}

func TestComputeTable_SingleMatch(t *testing.T) {
	t.Parallel()

	teamA := match.Team{ID: 1, Name: "A"}
	teamB := match.Team{ID: 2, Name: "B"}
	table := ComputeTable([]match.Match{finished(100, 1, teamA, teamB, 2, 1)})

	if len(table) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(table))
	}
	a := table[0]
	if a.Team.ID != 1 || a.Position != 1 || a.Played != 1 || a.Won != 1 || a.Points != 3 || a.GoalDifference != 1 {
		t.Fatalf("unexpected leader row: %+v", a)
	}
	b := table[1]
	if b.Team.ID != 2 || b.Position != 2 || b.Lost != 1 || b.Points != 0 || b.GoalDifference != -1 {
		t.Fatalf("unexpected second row: %+v", b)
	}
}

func TestComputeTable_IgnoresUnfinishedAndUnscored(t *testing.T) {
	t.Parallel()

	teamA := match.Team{ID: 1, Name: "A"}
	teamB := match.Team{ID: 2, Name: "B"}
	matches := []match.Match{
		{ID: 1, Round: 1, Status: match.StatusScheduled, HomeTeam: teamA, AwayTeam: teamB},
		{ID: 2, Round: 1, Status: match.StatusFinished, HomeTeam: teamA, AwayTeam: teamB},
	}

	if table := ComputeTable(matches); len(table) != 0 {
		t.Fatalf("expected empty table, got %d rows", len(table))
	}
}

func TestComputeTable_TieBreakOrder(t *testing.T) {
	t.Parallel()

	teamA := match.Team{ID: 1, Name: "A"}
	teamB := match.Team{ID: 2, Name: "B"}
	teamC := match.Team{ID: 3, Name: "C"}
	teamD := match.Team{ID: 4, Name: "D"}
	teamE := match.Team{ID: 5, Name: "E"}
	teamF := match.Team{ID: 6, Name: "F"}
	teamG := match.Team{ID: 7, Name: "G"}
	teamH := match.Team{ID: 8, Name: "H"}

	// A and B both win once: equal points, A ahead on goal difference.
	// C and G both draw once: equal points and goal difference, C ahead on
	// goals for.
	matches := []match.Match{
		finished(1, 1, teamA, teamD, 3, 0),
		finished(2, 1, teamB, teamE, 1, 0),
		finished(3, 1, teamC, teamF, 2, 2),
		finished(4, 1, teamG, teamH, 0, 0),
	}

	table := ComputeTable(matches)
	if table[0].Team.ID != 1 || table[1].Team.ID != 2 {
		t.Fatalf("expected A then B on goal difference, got %+v then %+v", table[0], table[1])
	}

	var posC, posG int
	for _, row := range table {
		switch row.Team.ID {
		case 3:
			posC = row.Position
		case 7:
			posG = row.Position
		}
	}
	if posC == 0 || posG == 0 || posC >= posG {
		t.Fatalf("expected C ranked above G on goals for, got C=%d G=%d", posC, posG)
	}
}

func TestComputeTable_Deterministic(t *testing.T) {
	t.Parallel()

	rng := rand.New(rand.NewSource(42))
	teams := make([]match.Team, 12)
	for i := range teams {
		teams[i] = match.Team{ID: int64(i + 1), Name: string(rune('A' + i))}
	}

	matches := make([]match.Match, 0, 80)
	for i := 0; i < 80; i++ {
		h := rng.Intn(len(teams))
		a := rng.Intn(len(teams))
		if h == a {
			continue
		}
		matches = append(matches, finished(int64(i+1), i/10+1, teams[h], teams[a], rng.Intn(5), rng.Intn(5)))
	}

	first := ComputeTable(matches)
	second := ComputeTable(matches)
	if !reflect.DeepEqual(first, second) {
		t.Fatal("table computation is not deterministic for identical input")
	}
}

func TestStrengthIndex_Floor(t *testing.T) {
	t.Parallel()

	table := []Row{
		{Team: match.Team{ID: 1}, Points: 10, GoalDifference: 4, GoalsFor: 12},
		{Team: match.Team{ID: 2}, Points: 0, GoalDifference: -9, GoalsFor: 1},
	}

	idx := StrengthIndex(table)
	if idx[1] != 3*10+2*4+12 {
		t.Fatalf("unexpected strength for team 1: %d", idx[1])
	}
	if idx[2] != 1 {
		t.Fatalf("expected floor strength 1 for team 2, got %d", idx[2])
	}
}

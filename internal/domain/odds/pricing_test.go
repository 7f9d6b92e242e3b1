package odds

import (
	"math"
	"math/rand"
	"testing"

	"github.com/lapenya/quiniela/internal/domain/match"
	"github.com/lapenya/quiniela/internal/domain/standings"
)

func TestPriceFixture_FavoriteIsCheaper(t *testing.T) {
	t.Parallel()

	strengths := map[int64]int{1: 120, 2: 15}
	m := match.Match{ID: 7, HomeTeam: match.Team{ID: 1}, AwayTeam: match.Team{ID: 2}}

	triple := PriceFixture(strengths, m, DefaultPricing())
	if triple.Home >= triple.Away {
		t.Fatalf("favorite must be cheaper than underdog: %+v", triple)
	}
	if triple.Home >= triple.Draw {
		t.Fatalf("strong favorite must be cheaper than the draw: %+v", triple)
	}
}

func TestPriceFixture_UnknownTeamGetsFloorStrength(t *testing.T) {
	t.Parallel()

	strengths := map[int64]int{1: 60}
	m := match.Match{ID: 1, HomeTeam: match.Team{ID: 1}, AwayTeam: match.Team{ID: 99}}

	triple := PriceFixture(strengths, m, DefaultPricing())

	// Unknown away team prices as strength 1: total 141, capped at the ceiling.
	if triple.Away != 20 {
		t.Fatalf("expected away price clamped to ceiling, got %v", triple.Away)
	}
	want := math.Round(141.0/60.0*1.08*100) / 100
	if triple.Home != want {
		t.Fatalf("expected home price %v, got %v", want, triple.Home)
	}
}

func TestPriceRound_Bounds(t *testing.T) {
	t.Parallel()

	rng := rand.New(rand.NewSource(7))
	table := make([]standings.Row, 20)
	for i := range table {
		table[i] = standings.Row{
			Team:           match.Team{ID: int64(i + 1)},
			Points:         rng.Intn(60),
			GoalDifference: rng.Intn(61) - 30,
			GoalsFor:       rng.Intn(50),
		}
	}

	fixtures := make([]match.Match, 0, 10)
	for i := 0; i < 10; i++ {
		fixtures = append(fixtures, match.Match{
			ID:       int64(i + 1),
			HomeTeam: match.Team{ID: int64(2*i + 1)},
			AwayTeam: match.Team{ID: int64(2*i + 2)},
		})
	}

	pricing := DefaultPricing()
	priced := PriceRound(table, fixtures, pricing)
	if len(priced) != len(fixtures) {
		t.Fatalf("expected %d priced fixtures, got %d", len(fixtures), len(priced))
	}
	for i, fo := range priced {
		if fo.MatchID != fixtures[i].ID {
			t.Fatalf("priced fixtures must keep input order: %+v", fo)
		}
		for _, price := range []float64{fo.Odds.Home, fo.Odds.Draw, fo.Odds.Away} {
			if price < 1 || price > pricing.Ceiling {
				t.Fatalf("price out of bounds for match %d: %v", fo.MatchID, price)
			}
			if math.Round(price*100)/100 != price {
				t.Fatalf("price not rounded to two decimals: %v", price)
			}
		}
	}
}

func TestNormalizePricing_ZeroValueGetsDefaults(t *testing.T) {
	t.Parallel()

	got := NormalizePricing(Pricing{})
	if got != DefaultPricing() {
		t.Fatalf("expected defaults, got %+v", got)
	}
}

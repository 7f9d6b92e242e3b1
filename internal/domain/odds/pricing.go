package odds

import (
	"math"

	"github.com/lapenya/quiniela/internal/domain/match"
	"github.com/lapenya/quiniela/internal/domain/standings"
)

// Triple holds the 1/X/2 decimal prices for one fixture.
type Triple struct {
	Home float64
	Draw float64
	Away float64
}

// Pricing is the strength-proportional pricing model configuration. This is a
// deterministic model derived from the league table, not a market simulation:
// DrawStrength is the fixed baseline weight of the draw outcome, Margin the
// multiplicative overround applied to all three prices, and Ceiling the
// highest price a fixture may carry.
type Pricing struct {
	DrawStrength float64
	Margin       float64
	Ceiling      float64
}

func DefaultPricing() Pricing {
	return Pricing{
		DrawStrength: 80,
		Margin:       1.08,
		Ceiling:      20,
	}
}

func NormalizePricing(p Pricing) Pricing {
	defaults := DefaultPricing()
	if p.DrawStrength <= 0 {
		p.DrawStrength = defaults.DrawStrength
	}
	if p.Margin <= 0 {
		p.Margin = defaults.Margin
	}
	if p.Ceiling < 1 {
		p.Ceiling = defaults.Ceiling
	}
	return p
}

// FixtureOdds pairs a fixture with its computed prices.
type FixtureOdds struct {
	MatchID int64
	Odds    Triple
}

// PriceFixture prices one fixture from the team strengths. Teams without a
// table row get the floor strength 1. Each price is rounded to two decimals
// and clamped to [1.0, Ceiling].
func PriceFixture(strengths map[int64]int, m match.Match, p Pricing) Triple {
	p = NormalizePricing(p)

	home := float64(strengthOrFloor(strengths, m.HomeTeam.ID))
	away := float64(strengthOrFloor(strengths, m.AwayTeam.ID))
	total := home + away + p.DrawStrength

	return Triple{
		Home: p.clamp(total / home * p.Margin),
		Draw: p.clamp(total / p.DrawStrength * p.Margin),
		Away: p.clamp(total / away * p.Margin),
	}
}

// PriceRound prices every fixture of a round against the current table.
func PriceRound(table []standings.Row, fixtures []match.Match, p Pricing) []FixtureOdds {
	strengths := standings.StrengthIndex(table)
	out := make([]FixtureOdds, 0, len(fixtures))
	for _, m := range fixtures {
		out = append(out, FixtureOdds{
			MatchID: m.ID,
			Odds:    PriceFixture(strengths, m, p),
		})
	}
	return out
}

func (p Pricing) clamp(price float64) float64 {
	price = math.Round(price*100) / 100
	if price < 1 {
		return 1
	}
	if price > p.Ceiling {
		return p.Ceiling
	}
	return price
}

func strengthOrFloor(strengths map[int64]int, teamID int64) int {
	if s, ok := strengths[teamID]; ok && s >= 1 {
		return s
	}
	return 1
}

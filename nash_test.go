package tradewar

import (
	"math"
	"math/rand"
	"testing"
)

func TestNashEquilibriumPrisonersDilemma(t *testing.T) {
	table := pdTable()
	computer := pdMoves(Computer)
	user := pdMoves(User)

	entries := NashEquilibriumStrategy(computer, user, table)
	if len(entries) != 1 {
		t.Fatalf("PD has a unique equilibrium, got entries %+v", entries)
	}
	if entries[0].MoveName != "raise_tariffs" {
		t.Errorf("equilibrium move = %s, want raise_tariffs", entries[0].MoveName)
	}
	if math.Abs(entries[0].Probability-1.0) > 1e-9 {
		t.Errorf("equilibrium probability = %v, want 1", entries[0].Probability)
	}

	rng := rand.New(rand.NewSource(1))
	if got := SampleNash(entries, computer, rng); got == nil || got.Name != "raise_tariffs" {
		t.Errorf("SampleNash = %v, want raise_tariffs", got)
	}
}

// Pure coordination game: two pure equilibria plus one mixed, so the pooled
// entry list holds every equilibrium's support flattened together. The
// sampler draws uniformly over that pooled list, over-weighting moves that
// appear in several equilibria. This pins the pooling behavior.
func TestNashStrategyPoolsAllEquilibria(t *testing.T) {
	table := NewPayoffTable([]PayoffEntry{
		{UserMoveName: "left", ComputerMoveName: "left", Payoff: Payoff{User: 1, Computer: 1}},
		{UserMoveName: "left", ComputerMoveName: "right", Payoff: Payoff{User: 0, Computer: 0}},
		{UserMoveName: "right", ComputerMoveName: "left", Payoff: Payoff{User: 0, Computer: 0}},
		{UserMoveName: "right", ComputerMoveName: "right", Payoff: Payoff{User: 1, Computer: 1}},
	})
	computer := []*Move{
		{Name: "left", Type: MixedType, Probability: 1.0, Player: Computer},
		{Name: "right", Type: MixedType, Probability: 1.0, Player: Computer},
	}
	user := []*Move{
		{Name: "left", Type: MixedType, Probability: 1.0, Player: User},
		{Name: "right", Type: MixedType, Probability: 1.0, Player: User},
	}

	entries := NashEquilibriumStrategy(computer, user, table)
	// Two pure equilibria contribute one entry each, the mixed equilibrium
	// two: four pooled entries, not a single per-move distribution.
	if len(entries) != 4 {
		t.Fatalf("pooled entries = %+v, want 4 entries across 3 equilibria", entries)
	}

	counts := map[string]int{}
	for _, e := range entries {
		counts[e.MoveName]++
	}
	if counts["left"] != 2 || counts["right"] != 2 {
		t.Errorf("pooled move counts = %v, want each move twice", counts)
	}
}

func TestNashStrategyNilWhenNoEquilibria(t *testing.T) {
	// A degenerate one-sided table where the opponent has no moves yields no
	// support pairs to enumerate.
	table := pdTable()
	if got := NashEquilibriumStrategy(pdMoves(Computer), nil, table); got != nil {
		t.Errorf("expected nil for empty opponent move set, got %+v", got)
	}
}

func TestSampleNashEmpty(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	if got := SampleNash(nil, pdMoves(Computer), rng); got != nil {
		t.Errorf("SampleNash(nil) = %v, want nil", got)
	}
}

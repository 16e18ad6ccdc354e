package tradewar

import (
	"math/rand"
	"testing"
)

func TestFindDominantMove(t *testing.T) {
	table := pdTable()
	computer := pdMoves(Computer)
	user := pdMoves(User)

	got := FindDominantMove(computer, user, table)
	if got == nil || got.Name != "raise_tariffs" {
		t.Fatalf("dominant move = %v, want raise_tariffs", got)
	}
}

func TestFindDominantMoveOrderIndependent(t *testing.T) {
	table := pdTable()
	user := pdMoves(User)

	forward := pdMoves(Computer)
	reversed := []*Move{forward[1], forward[0]}

	a := FindDominantMove(forward, user, table)
	b := FindDominantMove(reversed, user, table)
	if a == nil || b == nil || a.Name != b.Name {
		t.Errorf("dominant move depends on move order: %v vs %v", a, b)
	}
}

func TestFindDominantMoveSingleMove(t *testing.T) {
	table := NewPayoffTable(nil)
	only := []*Move{{Name: "open_dialogue", Type: Cooperative, Probability: 1.0, Player: Computer}}
	opp := pdMoves(User)
	if got := FindDominantMove(only, opp, table); got != only[0] {
		t.Errorf("single-move set should be trivially dominant, got %v", got)
	}
}

func TestFindDominantMoveNoneInMatchingPennies(t *testing.T) {
	table := NewPayoffTable([]PayoffEntry{
		{UserMoveName: "heads", ComputerMoveName: "heads", Payoff: Payoff{User: 1, Computer: 0}},
		{UserMoveName: "heads", ComputerMoveName: "tails", Payoff: Payoff{User: 0, Computer: 1}},
		{UserMoveName: "tails", ComputerMoveName: "heads", Payoff: Payoff{User: 0, Computer: 1}},
		{UserMoveName: "tails", ComputerMoveName: "tails", Payoff: Payoff{User: 1, Computer: 0}},
	})
	computer := []*Move{
		{Name: "heads", Type: MixedType, Probability: 1.0, Player: Computer},
		{Name: "tails", Type: MixedType, Probability: 1.0, Player: Computer},
	}
	user := []*Move{
		{Name: "heads", Type: MixedType, Probability: 1.0, Player: User},
		{Name: "tails", Type: MixedType, Probability: 1.0, Player: User},
	}
	if got := FindDominantMove(computer, user, table); got != nil {
		t.Errorf("matching pennies has no dominant move, got %v", got)
	}
}

func TestFindDominantMoveEmpty(t *testing.T) {
	if got := FindDominantMove(nil, pdMoves(User), pdTable()); got != nil {
		t.Errorf("empty move set should yield nil, got %v", got)
	}
}

func TestMaximinMove(t *testing.T) {
	// Worst case of cooperating is 0, of defecting is 1: defect is the
	// security move.
	table := pdTable()
	got := MaximinMove(pdMoves(Computer), pdMoves(User), table)
	if got == nil || got.Name != "raise_tariffs" {
		t.Errorf("maximin move = %v, want raise_tariffs", got)
	}
}

func TestBestResponseGreedy(t *testing.T) {
	table := pdTable()
	computer := pdMoves(Computer)
	user := pdMoves(User)
	rng := rand.New(rand.NewSource(1))

	// With epsilon 0 the best response to cooperation is defection.
	for i := 0; i < 50; i++ {
		got := BestResponseEpsilonGreedy(computer, user[0], 0, table, rng)
		if got == nil || got.Name != "raise_tariffs" {
			t.Fatalf("best response = %v, want raise_tariffs", got)
		}
	}
}

func TestBestResponseAlwaysExplores(t *testing.T) {
	table := pdTable()
	computer := pdMoves(Computer)
	user := pdMoves(User)
	rng := rand.New(rand.NewSource(1))

	seen := make(map[string]bool)
	for i := 0; i < 200; i++ {
		got := BestResponseEpsilonGreedy(computer, user[0], 1.0, table, rng)
		if got == nil {
			t.Fatal("epsilon-greedy returned nil")
		}
		seen[got.Name] = true
	}
	if len(seen) != len(computer) {
		t.Errorf("epsilon=1 should explore all moves, saw %v", seen)
	}
}

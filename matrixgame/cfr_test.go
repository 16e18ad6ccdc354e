package matrixgame

import (
	"math"
	"testing"

	cfr "github.com/timpalpant/go-cfr"
)

func TestOneShotGameTree(t *testing.T) {
	payoffs := [][]float64{
		{3, 0},
		{5, 1},
	}

	root := OneShotGame(payoffs)
	if root.Type() != cfr.PlayerNode {
		t.Fatalf("root type = %v, want player node", root.Type())
	}
	if root.Player() != 0 {
		t.Errorf("root player = %d, want the row player", root.Player())
	}
	if root.NumChildren() != 2 {
		t.Fatalf("root has %d children, want 2", root.NumChildren())
	}

	mid := root.GetChild(1) // row plays defect
	if mid.Type() != cfr.PlayerNode || mid.Player() != 1 {
		t.Fatalf("second mover should be the column player, got type=%v player=%d", mid.Type(), mid.Player())
	}
	// The column player must not observe the row player's move: both
	// children of the root share the column player's information set.
	if root.GetChild(0).InfoSet(1) != root.GetChild(1).InfoSet(1) {
		t.Error("column player's information set leaks the row player's move")
	}

	leaf := mid.GetChild(1) // both defect
	if leaf.Type() != cfr.TerminalNode {
		t.Fatalf("leaf type = %v, want terminal", leaf.Type())
	}
	if got := leaf.Utility(0); got != 1 {
		t.Errorf("row utility = %v, want 1", got)
	}
	if got := leaf.Utility(1); got != -1 {
		t.Errorf("column utility = %v, want -1", got)
	}
}

func TestCFRValueDominantGame(t *testing.T) {
	// The row player's first strategy strictly dominates, and every column
	// response to it yields 1, so the game value is 1.
	payoffs := [][]float64{
		{1, 1},
		{0, 0},
	}

	value := CFRValue(payoffs, 2000)
	if math.Abs(value-1) > 0.1 {
		t.Errorf("CFR value = %v, want ~1", value)
	}
}

func TestCFRValueMatchingPennies(t *testing.T) {
	payoffs := [][]float64{
		{1, -1},
		{-1, 1},
	}

	value := CFRValue(payoffs, 5000)
	if math.Abs(value) > 0.1 {
		t.Errorf("CFR value = %v, want ~0", value)
	}
}

package tradewar

import (
	"fmt"
	"math/rand"

	"github.com/golang/glog"
)

// payoffNoiseStdDev is the standard deviation of the Gaussian noise applied
// to realized payoffs.
const payoffNoiseStdDev = 0.1

// Payoff holds the two players' payoffs for one cell of the payoff table.
type Payoff struct {
	User     float64 `json:"user"`
	Computer float64 `json:"computer"`
}

// For returns the payoff from the given player's perspective.
func (p Payoff) For(player Player) float64 {
	if player == User {
		return p.User
	}
	return p.Computer
}

// PayoffEntry is one cell of the sparse payoff table, keyed by the pair of
// move names. For every reachable (user move, computer move) pair exactly one
// entry should exist; a missing entry resolves to payoff 0.
type PayoffEntry struct {
	UserMoveName     string `json:"user_move_name"`
	ComputerMoveName string `json:"computer_move_name"`
	Payoff           Payoff `json:"payoff"`
}

type payoffKey struct {
	userMove     string
	computerMove string
}

// PayoffTable resolves move pairs to payoffs. It is the payoff oracle shared
// by every solver, so Expected must stay strictly deterministic.
type PayoffTable struct {
	entries []PayoffEntry
	index   map[payoffKey]int
}

// NewPayoffTable builds a lookup table over the given entries.
func NewPayoffTable(entries []PayoffEntry) *PayoffTable {
	t := &PayoffTable{
		entries: entries,
		index:   make(map[payoffKey]int, len(entries)),
	}
	for i, e := range entries {
		t.index[payoffKey{e.UserMoveName, e.ComputerMoveName}] = i
	}
	return t
}

// Entries returns the raw table entries.
func (t *PayoffTable) Entries() []PayoffEntry {
	return t.entries
}

// Expected returns the deterministic expected payoff of move against
// opponentMove, from move's player's perspective, scaled by both moves'
// configured probabilities. The table is keyed (user move, computer move), so
// the lookup direction depends on move.Player. A missing entry yields 0.
//
// Expected must never apply randomness: the equilibrium and LP solvers rely
// on reproducible comparisons.
func (t *PayoffTable) Expected(move, opponentMove *Move) float64 {
	if !move.Player.Valid() {
		panic(fmt.Errorf("move %q has no player", move.Name))
	}

	var key payoffKey
	if move.Player == User {
		key = payoffKey{move.Name, opponentMove.Name}
	} else {
		key = payoffKey{opponentMove.Name, move.Name}
	}

	i, ok := t.index[key]
	if !ok {
		glog.V(1).Infof("no payoff entry for %s vs %s", move.Name, opponentMove.Name)
		return 0.0
	}

	return t.entries[i].Payoff.For(move.Player) * move.Probability * opponentMove.Probability
}

// Realized returns the expected payoff perturbed by Gaussian noise N(0, 0.1).
// When the expected payoff is exactly zero the noise is clamped to be
// non-negative; otherwise the noisy value is returned as-is, which can dip
// below zero for small positive expectations.
func (t *PayoffTable) Realized(move, opponentMove *Move, rng *rand.Rand) float64 {
	expected := t.Expected(move, opponentMove)
	noise := rng.NormFloat64() * payoffNoiseStdDev
	if expected == 0 {
		if noise < 0 {
			return 0
		}
		return noise
	}
	return expected + noise
}

package tradewar

import (
	"math/rand"

	"github.com/tradewarsim/tradewar/matrixgame"
)

// NashEntry is one (move, probability) record from a Nash equilibrium's own
// mixed strategy.
type NashEntry struct {
	MoveName    string
	Probability float64
}

// PayoffMatrix builds the dense expected-payoff matrix for rowMoves against
// colMoves, from the row moves' perspective.
func PayoffMatrix(rowMoves, colMoves []*Move, table *PayoffTable) [][]float64 {
	matrix := make([][]float64, len(rowMoves))
	for i, rm := range rowMoves {
		matrix[i] = make([]float64, len(colMoves))
		for j, cm := range colMoves {
			matrix[i][j] = table.Expected(rm, cm)
		}
	}
	return matrix
}

// NashEquilibriumStrategy enumerates all Nash equilibria of the bimatrix game
// between myMoves (rows) and opponentMoves (columns) and flattens every
// equilibrium's row-player strategy into a single pooled list of entries.
// Moves that appear in many equilibria therefore appear in the list many
// times; SampleNash picks uniformly over the pooled entries, so such moves
// are over-weighted. That pooling is long-standing engine behavior and is
// pinned by tests rather than corrected.
//
// Returns nil when support enumeration finds no equilibria.
func NashEquilibriumStrategy(myMoves, opponentMoves []*Move, table *PayoffTable) []NashEntry {
	rowPayoffs := PayoffMatrix(myMoves, opponentMoves, table)
	colPayoffs := make([][]float64, len(myMoves))
	for i, m := range myMoves {
		colPayoffs[i] = make([]float64, len(opponentMoves))
		for j, om := range opponentMoves {
			colPayoffs[i][j] = table.Expected(om, m)
		}
	}

	equilibria := matrixgame.SupportEnumeration(rowPayoffs, colPayoffs)
	if len(equilibria) == 0 {
		return nil
	}

	var entries []NashEntry
	for _, eq := range equilibria {
		for i, prob := range eq.Row {
			if prob > 0 {
				entries = append(entries, NashEntry{
					MoveName:    myMoves[i].Name,
					Probability: prob,
				})
			}
		}
	}
	if len(entries) == 0 {
		return nil
	}
	return entries
}

// SampleNash draws one entry uniformly from the pooled equilibrium list (not
// weighted by the entries' probabilities) and returns the matching move.
func SampleNash(entries []NashEntry, myMoves []*Move, rng *rand.Rand) *Move {
	if len(entries) == 0 {
		return nil
	}
	entry := entries[rng.Intn(len(entries))]
	return MoveByName(myMoves, entry.MoveName)
}

package tradewar

import (
	"math"
	"math/rand"
)

// FindDominantMove returns the move that strictly dominates every alternative
// against every opponent move, or nil when no such move exists (which is
// common and not an error). A single-move set is trivially dominant.
//
// The result is independent of the iteration order of myMoves: strict
// dominance admits at most one winner.
func FindDominantMove(myMoves, opponentMoves []*Move, table *PayoffTable) *Move {
	if len(myMoves) == 0 {
		return nil
	}
	if len(myMoves) == 1 {
		return myMoves[0]
	}

	for _, candidate := range myMoves {
		if dominatesAll(candidate, myMoves, opponentMoves, table) {
			return candidate
		}
	}
	return nil
}

func dominatesAll(candidate *Move, myMoves, opponentMoves []*Move, table *PayoffTable) bool {
	for _, alt := range myMoves {
		if alt == candidate {
			continue
		}
		for _, opp := range opponentMoves {
			if table.Expected(candidate, opp) <= table.Expected(alt, opp) {
				return false
			}
		}
	}
	return true
}

// MaximinMove returns the security-level play: the move whose worst-case
// payoff across all opponent moves is highest. Ties go to the move
// encountered first.
func MaximinMove(myMoves, opponentMoves []*Move, table *PayoffTable) *Move {
	var best *Move
	bestWorst := math.Inf(-1)
	for _, m := range myMoves {
		worst := math.Inf(1)
		for _, opp := range opponentMoves {
			if p := table.Expected(m, opp); p < worst {
				worst = p
			}
		}
		if worst > bestWorst {
			bestWorst = worst
			best = m
		}
	}
	return best
}

// BestResponseEpsilonGreedy explores a uniformly random move with probability
// epsilon; otherwise it plays a best response to opponentMove, breaking payoff
// ties uniformly among the tied moves.
func BestResponseEpsilonGreedy(myMoves []*Move, opponentMove *Move, epsilon float64, table *PayoffTable, rng *rand.Rand) *Move {
	if len(myMoves) == 0 {
		return nil
	}
	if rng.Float64() < epsilon {
		return RandomMove(myMoves, rng)
	}

	var best []*Move
	highest := math.Inf(-1)
	for _, m := range myMoves {
		payoff := table.Expected(m, opponentMove)
		switch {
		case payoff > highest:
			highest = payoff
			best = best[:0]
			best = append(best, m)
		case payoff == highest:
			best = append(best, m)
		}
	}

	if len(best) == 1 {
		return best[0]
	}
	return best[rng.Intn(len(best))]
}

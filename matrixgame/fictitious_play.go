package matrixgame

import (
	"math"
	"math/rand"

	"github.com/golang/glog"
)

// FictitiousPlay estimates equilibrium mixed strategies of a bimatrix game by
// having both players repeatedly best-respond to the opponent's empirical
// play counts. mixingLambda adds uniform exploration to avoid lock-in on
// degenerate games. It returns the normalized play frequencies for the row
// and column players.
func FictitiousPlay(rowPayoffs, colPayoffs [][]float64, nIter int, mixingLambda float64, rng *rand.Rand) ([]float64, []float64) {
	rowPlayCounts := make([]int, len(rowPayoffs))
	colPlayCounts := make([]int, len(rowPayoffs[0]))
	logEvery := nIter / 10
	for i := 1; i <= nIter; i++ {
		var rowSelected int
		if rng.Float64() < mixingLambda {
			rowSelected = rng.Intn(len(rowPlayCounts))
		} else {
			rowSelected = bestResponseToCounts(rowPayoffs, colPlayCounts, false, rng)
		}

		var colSelected int
		if rng.Float64() < mixingLambda {
			colSelected = rng.Intn(len(colPlayCounts))
		} else {
			colSelected = bestResponseToCounts(colPayoffs, rowPlayCounts, true, rng)
		}
		rowPlayCounts[rowSelected]++
		colPlayCounts[colSelected]++

		if logEvery > 0 && i%logEvery == 0 {
			glog.V(1).Infof("After %d iterations, row player weights: %v", i, normalize(rowPlayCounts))
			glog.V(1).Infof("After %d iterations, column player weights: %v", i, normalize(colPlayCounts))
		}
	}

	return normalize(rowPlayCounts), normalize(colPlayCounts)
}

// bestResponseToCounts returns the move maximizing utility against the
// opponent's empirical play counts. For the column player (transposed=true)
// payoffs are indexed [opponent][self].
func bestResponseToCounts(payoffs [][]float64, opponentCounts []int, transposed bool, rng *rand.Rand) int {
	var numMoves int
	if transposed {
		numMoves = len(payoffs[0])
	} else {
		numMoves = len(payoffs)
	}

	utilities := make([]float64, numMoves)
	for opp, c := range opponentCounts {
		for self := range utilities {
			if transposed {
				utilities[self] += float64(c) * payoffs[opp][self]
			} else {
				utilities[self] += float64(c) * payoffs[self][opp]
			}
		}
	}

	_, br := argMax(utilities, rng)
	return br
}

func normalize(counts []int) []float64 {
	total := 0
	for _, v := range counts {
		total += v
	}

	result := make([]float64, len(counts))
	for i, v := range counts {
		result[i] = float64(v) / float64(total)
	}
	return result
}

func argMax(vs []float64, rng *rand.Rand) (float64, int) {
	best := -math.MaxFloat64
	bestIdx := 0
	for i, v := range vs {
		if v > best {
			best = v
			bestIdx = i
		} else if v == best && rng.Intn(2) == 1 {
			bestIdx = i
		}
	}

	return best, bestIdx
}

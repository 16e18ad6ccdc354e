package tradewar

import (
	"math"
	"math/rand"

	"github.com/golang/glog"

	"github.com/tradewarsim/tradewar/matrixgame"
)

// Decay parameters of the cached-sample resampling scheme: the sampling
// window over the pre-rolled move array advances by decayShiftPerRound
// positions each round, and weights fall off exponentially at decayRate
// beyond the window.
const (
	decayShiftPerRound = 0.2
	decayRate          = 0.5
)

// EqualizingMixedMove plays the indifference-principle mixed strategy: a
// distribution over the computer's moves that leaves the user indifferent
// among their pure strategies.
//
// The distribution is solved by LP at most once per refresh window (first
// use, or when more than refreshEvery rounds have passed since the last
// solve) and an array of numRounds moves is pre-sampled from it. Every call
// then draws from that cached array under decay weights centered near the
// current round, so the same pre-rolled sequence advances with the round
// rather than being redrawn.
//
// Returns nil when the LP has no valid solution; the round driver falls back
// to a uniform random move.
func EqualizingMixedMove(computerMoves, userMoves []*Move, table *PayoffTable, state *GameState, numRounds, refreshEvery int, rng *rand.Rand) (*Move, error) {
	if state.MixedMovesArray == nil || state.EqualizerStrategy == nil ||
		state.RoundIdx-state.LastStrategyUpdate > refreshEvery {
		// Equalize the user's payoffs: solve on the computer's payoff
		// matrix for the row player's (computer's) mix.
		computerMatrix := PayoffMatrix(computerMoves, userMoves, table)
		dist, err := matrixgame.SolveIndifference(computerMatrix, matrixgame.TargetCol)
		if err != nil {
			return nil, err
		}
		if dist == nil {
			return nil, nil
		}

		state.EqualizerStrategy = dist
		state.LastStrategyUpdate = state.RoundIdx

		arr := make([]*Move, numRounds)
		for i := range arr {
			arr[i] = sampleFromDistribution(computerMoves, dist, rng)
		}
		state.MixedMovesArray = arr
		glog.V(1).Infof("refreshed equalizer strategy at round %d: %v", state.RoundIdx, dist)
	}

	i := decayWeightedIndex(len(state.MixedMovesArray), state.RoundIdx, rng)
	return state.MixedMovesArray[i], nil
}

// decayWeights returns the normalized decay weights over an n-element sample
// array for the given round: weight[i] = exp(-max(0, i - round*0.2) * 0.5).
func decayWeights(n, round int) []float64 {
	shift := float64(round) * decayShiftPerRound
	weights := make([]float64, n)
	var total float64
	for i := range weights {
		d := float64(i) - shift
		if d < 0 {
			d = 0
		}
		weights[i] = math.Exp(-d * decayRate)
		total += weights[i]
	}
	for i := range weights {
		weights[i] /= total
	}
	return weights
}

// decayWeightedIndex samples an array position under the round's decay
// weights.
func decayWeightedIndex(n, round int, rng *rand.Rand) int {
	weights := decayWeights(n, round)
	r := rng.Float64()
	var cum float64
	for i, w := range weights {
		cum += w
		if r < cum {
			return i
		}
	}
	return n - 1
}

// sampleFromDistribution draws one move according to the given probability
// vector (aligned with moves by index).
func sampleFromDistribution(moves []*Move, dist []float64, rng *rand.Rand) *Move {
	r := rng.Float64()
	var cum float64
	for i, p := range dist {
		cum += p
		if r < cum {
			return moves[i]
		}
	}
	return moves[len(moves)-1]
}

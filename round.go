package tradewar

import (
	"math/rand"

	"github.com/golang/glog"
)

// Override split when the user is caught playing their own dominant move:
// mostly punish with the pure best response, sometimes retreat to the
// security move, sometimes let the phase move stand.
const (
	overrideBestResponseProb = 0.6
	overrideMaximinProb      = 0.2
)

// playRound executes one full round: pick the computer's move via the
// phase-based decision sequence, score both realized payoffs, and record the
// result. Every decision point falls back to uniform random, so a round
// always completes with a valid move pair.
func (g *Game) playRound(userMove *Move) RoundResult {
	round := g.state.RoundIdx
	phase := g.profile.Phases.At(round)

	computerMove := g.chooseComputerMove(phase, round, userMove)
	computerMove = g.defensiveOverride(computerMove, userMove)

	userPayoff := g.table.Realized(userMove, computerMove, g.rng)
	computerPayoff := g.table.Realized(computerMove, userMove, g.rng)

	g.userTotal += userPayoff
	g.computerTotal += computerPayoff

	result := RoundResult{
		Round:          round,
		Phase:          phase,
		UserMove:       userMove.Name,
		ComputerMove:   computerMove.Name,
		UserPayoff:     userPayoff,
		ComputerPayoff: computerPayoff,
		Winner:         RoundWinner(userPayoff, computerPayoff),
		UserTotal:      g.userTotal,
		ComputerTotal:  g.computerTotal,
	}

	g.history.Append(result)
	g.state.LastComputerMove = computerMove
	g.state.RoundIdx++

	if g.logger != nil {
		g.logger.LogRound(result)
	}

	glog.V(2).Infof("Round %d [%v]: user=%s (%.2f) computer=%s (%.2f) winner=%v",
		round, phase, result.UserMove, userPayoff, result.ComputerMove, computerPayoff, result.Winner)

	return result
}

// chooseComputerMove runs steps 1 and 2 of the decision sequence: dominant
// play with the phase's configured probability, then the phase's primary
// algorithm with its fallback chain.
func (g *Game) chooseComputerMove(phase Phase, round int, userMove *Move) *Move {
	if dominant := FindDominantMove(g.computerMoves, g.userMoves, g.table); dominant != nil {
		if g.rng.Float64() < g.profile.DominantProbability(round) {
			glog.V(2).Infof("Round %d: playing dominant move %s", round, dominant.Name)
			return dominant
		}
	}

	switch phase {
	case Phase1:
		if m := g.nashMove(); m != nil {
			return m
		}
		if m := g.greedyMove(round, userMove); m != nil {
			return m
		}
	case Phase2:
		if m := g.greedyMove(round, userMove); m != nil {
			return m
		}
	case Phase3:
		if m := g.equalizerMove(); m != nil {
			return m
		}
	}
	return RandomMove(g.computerMoves, g.rng)
}

func (g *Game) nashMove() *Move {
	entries := NashEquilibriumStrategy(g.computerMoves, g.userMoves, g.table)
	if entries == nil {
		return nil
	}
	return SampleNash(entries, g.computerMoves, g.rng)
}

// greedyMove plays the epsilon-greedy best response to the user's move in
// the round being scored.
func (g *Game) greedyMove(round int, userMove *Move) *Move {
	if userMove == nil {
		return nil
	}
	epsilon := g.profile.EpsilonAt(round)
	return BestResponseEpsilonGreedy(g.computerMoves, userMove, epsilon, g.table, g.rng)
}

func (g *Game) equalizerMove() *Move {
	m, err := EqualizingMixedMove(g.computerMoves, g.userMoves, g.table, g.state,
		g.numRounds, g.profile.refreshEvery(), g.rng)
	if err != nil {
		glog.Warningf("Equalizer failed, falling back to random: %v", err)
		return nil
	}
	return m
}

// defensiveOverride re-checks the user's move after the phase algorithm has
// selected one: when the user plays their own dominant move, the computer
// stochastically switches to the pure best response or the security move.
func (g *Game) defensiveOverride(selected, userMove *Move) *Move {
	userDominant := FindDominantMove(g.userMoves, g.computerMoves, g.table)
	if userDominant == nil || userDominant.Name != userMove.Name {
		return selected
	}
	if !g.profile.Security.shouldTrigger(g.rng) {
		return selected
	}
	return overrideMove(selected, userMove, g.computerMoves, g.userMoves, g.table, g.rng)
}

func overrideMove(selected, userMove *Move, computerMoves, userMoves []*Move, table *PayoffTable, rng *rand.Rand) *Move {
	r := rng.Float64()
	switch {
	case r < overrideBestResponseProb:
		if m := BestResponseEpsilonGreedy(computerMoves, userMove, 0, table, rng); m != nil {
			return m
		}
	case r < overrideBestResponseProb+overrideMaximinProb:
		if m := MaximinMove(computerMoves, userMoves, table); m != nil {
			return m
		}
	}
	return selected
}

package tradewar

import (
	"math/rand"

	"github.com/pkg/errors"
)

// StrategyType identifies the user-side strategy state machine.
type StrategyType int

const (
	CopyCat StrategyType = iota
	TitForTat
	GrimTrigger
	RandomStrategy
	MixedStrategy
)

var strategyStr = [...]string{
	"copy_cat",
	"tit_for_tat",
	"grim_trigger",
	"random",
	"mixed",
}

func (s StrategyType) String() string {
	if int(s) >= len(strategyStr) {
		return "unknown"
	}
	return strategyStr[s]
}

// ParseStrategy maps a strategy name to its type. Unknown names are a
// configuration error.
func ParseStrategy(name string) (StrategyType, error) {
	for i, s := range strategyStr {
		if s == name {
			return StrategyType(i), nil
		}
	}
	return 0, errors.Errorf("unknown strategy %q", name)
}

// StrategyNames lists the valid user strategy names.
func StrategyNames() []string {
	return append([]string(nil), strategyStr[:]...)
}

// UserStrategySettings configures the user's move selection.
type UserStrategySettings struct {
	Strategy StrategyType
	// FirstMove, when set, is played on round 0 regardless of strategy.
	FirstMove string
	// CooperationStart is the round at which tit_for_tat and grim_trigger
	// stop unconditionally cooperating.
	CooperationStart int
}

// NextUserMove selects the user's move for the round indicated by
// state.RoundIdx. A nil return means the strategy could not produce a move;
// the round driver substitutes a uniform random one, so a round never aborts.
func NextUserMove(settings UserStrategySettings, userMoves []*Move, state *GameState, numRounds int, rng *rand.Rand) *Move {
	if len(userMoves) == 0 {
		return nil
	}

	round := state.RoundIdx

	if settings.Strategy == MixedStrategy && state.UserMixedArray == nil {
		state.UserMixedArray = presampleMixed(userMoves, numRounds, rng)
	}

	// Round 0 plays the configured opening move regardless of strategy.
	if round == 0 {
		if settings.FirstMove == "" {
			return nil
		}
		return MoveByName(userMoves, settings.FirstMove)
	}

	switch settings.Strategy {
	case CopyCat:
		return mirrorMove(userMoves, state.LastComputerMove, rng)
	case TitForTat:
		if round < settings.CooperationStart {
			return cooperativeMove(userMoves, rng)
		}
		return mirrorMove(userMoves, state.LastComputerMove, rng)
	case GrimTrigger:
		return grimTriggerMove(settings, userMoves, state, round, rng)
	case RandomStrategy:
		return RandomMove(userMoves, rng)
	case MixedStrategy:
		i := decayWeightedIndex(len(state.UserMixedArray), round, rng)
		return state.UserMixedArray[i]
	}
	return nil
}

// grimTriggerMove cooperates until the computer's first defection, then
// defects on every remaining round. The trigger is a sticky state flag that
// never resets within a game.
func grimTriggerMove(settings UserStrategySettings, userMoves []*Move, state *GameState, round int, rng *rand.Rand) *Move {
	if state.GrimTriggered {
		return defectiveMove(userMoves, rng)
	}
	if round < settings.CooperationStart {
		return cooperativeMove(userMoves, rng)
	}
	if state.LastComputerMove != nil && !state.LastComputerMove.IsCooperative() {
		state.GrimTriggered = true
		return defectiveMove(userMoves, rng)
	}
	return cooperativeMove(userMoves, rng)
}

// mirrorMove copies the opponent's previous move by name, falling back to a
// random move when there is no previous move or no same-named own move.
func mirrorMove(moves []*Move, lastOpponentMove *Move, rng *rand.Rand) *Move {
	if lastOpponentMove == nil {
		return RandomMove(moves, rng)
	}
	if m := MoveByName(moves, lastOpponentMove.Name); m != nil {
		return m
	}
	return RandomMove(moves, rng)
}

func cooperativeMove(moves []*Move, rng *rand.Rand) *Move {
	if coop := MovesOfType(moves, Cooperative); len(coop) > 0 {
		return RandomMove(coop, rng)
	}
	return RandomMove(moves, rng)
}

func defectiveMove(moves []*Move, rng *rand.Rand) *Move {
	if def := MovesOfType(moves, Defective); len(def) > 0 {
		return RandomMove(def, rng)
	}
	return RandomMove(moves, rng)
}

// presampleMixed draws numRounds i.i.d. moves from the moves' configured
// probabilities (normalized). The array is then consumed with the same
// decay-weighted scheme as the equalizer's cache.
func presampleMixed(moves []*Move, numRounds int, rng *rand.Rand) []*Move {
	dist := make([]float64, len(moves))
	var total float64
	for i, m := range moves {
		dist[i] = m.Probability
		total += m.Probability
	}
	if total <= 0 {
		for i := range dist {
			dist[i] = 1
		}
		total = float64(len(dist))
	}
	for i := range dist {
		dist[i] /= total
	}

	arr := make([]*Move, numRounds)
	for i := range arr {
		arr[i] = sampleFromDistribution(moves, dist, rng)
	}
	return arr
}

package tradewar

import (
	"math"
	"math/rand"
)

// Phase identifies which segment of the game the computer is in. The phase
// determines the computer's primary decision algorithm.
type Phase int

const (
	Phase1 Phase = iota // Nash equilibrium play
	Phase2              // epsilon-greedy best response
	Phase3              // equalizing mixed strategy
	PhaseUnknown
)

var phaseLabels = [...]string{
	"Phase 1 (Nash Equilibrium)",
	"Phase 2 (Greedy Response)",
	"Phase 3 (Mixed Strategy)",
	"Unknown Phase",
}

func (p Phase) String() string {
	return phaseLabels[p]
}

// PhaseBounds is an inclusive [Start, End] round-index range.
type PhaseBounds struct {
	Start int
	End   int
}

// Contains reports whether the round index falls within the bounds.
func (b PhaseBounds) Contains(round int) bool {
	return b.Start <= round && round <= b.End
}

// Phases are the three contiguous phase ranges covering [0, NumRounds).
type Phases struct {
	P1 PhaseBounds
	P2 PhaseBounds
	P3 PhaseBounds
}

// At returns the phase the given round index belongs to. Rounds past the
// configured end stay in the final phase, so games longer than the profile's
// round count keep playing the mixed strategy.
func (p Phases) At(round int) Phase {
	switch {
	case p.P1.Contains(round):
		return Phase1
	case p.P2.Contains(round):
		return Phase2
	case round >= p.P3.Start:
		return Phase3
	}
	return PhaseUnknown
}

// PhasePercentages expresses phase boundaries as fractions of the total round
// count, so a profile keeps its shape when the number of rounds is overridden.
type PhasePercentages struct {
	P1 float64 `json:"p1"`
	P2 float64 `json:"p2"`
	P3 float64 `json:"p3"`
}

// Boundaries converts percentage splits into concrete contiguous phase
// bounds covering [0, numRounds).
func (pp PhasePercentages) Boundaries(numRounds int) Phases {
	p1End := int(math.Round(pp.P1 * float64(numRounds)))
	p2End := p1End + int(math.Round(pp.P2*float64(numRounds)))
	if p1End < 1 {
		p1End = 1
	}
	if p2End <= p1End {
		p2End = p1End + 1
	}
	if p2End > numRounds-1 {
		p2End = numRounds - 1
	}
	return Phases{
		P1: PhaseBounds{0, p1End - 1},
		P2: PhaseBounds{p1End, p2End - 1},
		P3: PhaseBounds{p2End, numRounds - 1},
	}
}

// EpsilonKind tags the exploration schedule variant.
type EpsilonKind int

const (
	EpsilonConstant EpsilonKind = iota
	EpsilonLinear
	EpsilonDecay
	EpsilonPiecewise
	EpsilonLinearDecay
	epsilonUnknown
)

// defaultEpsilon is the defensive fallback when a schedule is not recognized.
const defaultEpsilon = 0.1

// EpsilonSchedule is a closed sum type over the exploration schedules a
// profile can carry. Kind selects which of the remaining fields apply.
type EpsilonSchedule struct {
	Kind EpsilonKind

	// Constant.
	Value float64

	// Linear and linear decay.
	Start    float64
	End      float64
	EndRound int

	// Exponential decay.
	Base  float64
	Floor float64
	Tau   float64

	// Piecewise.
	Early       float64
	Late        float64
	SwitchRound int
}

// At evaluates the schedule at the given round index.
func (s EpsilonSchedule) At(round int) float64 {
	switch s.Kind {
	case EpsilonConstant:
		return s.Value
	case EpsilonLinear:
		if s.EndRound <= 0 || round >= s.EndRound {
			return s.End
		}
		progress := float64(round) / float64(s.EndRound)
		return s.Start + (s.End-s.Start)*progress
	case EpsilonDecay:
		if s.Tau <= 0 {
			return s.Floor
		}
		return s.Floor + (s.Base-s.Floor)*math.Exp(-float64(round)/s.Tau)
	case EpsilonPiecewise:
		if round < s.SwitchRound {
			return s.Early
		}
		return s.Late
	case EpsilonLinearDecay:
		if s.EndRound <= 0 || round >= s.EndRound {
			return s.End
		}
		progress := float64(round) / float64(s.EndRound)
		return s.Start - (s.Start-s.End)*progress
	}
	return defaultEpsilon
}

// SecurityLevel configures when the computer abandons its phase algorithm in
// favor of defensive play against an exploitative user.
type SecurityLevel struct {
	// TriggerUserDominant fires the defensive override when the user just
	// played their own dominant move.
	TriggerUserDominant bool
	// Prob is the probability the override fires when the trigger holds.
	Prob float64
}

// shouldTrigger reports whether the override fires, given that the user just
// played their own dominant move. An unconfigured security level (zero value)
// always fires; a configured one fires with probability Prob.
func (s SecurityLevel) shouldTrigger(rng *rand.Rand) bool {
	if !s.TriggerUserDominant {
		return s.Prob <= 0 // zero value means unconfigured, always defend
	}
	return rng.Float64() < s.Prob
}

// Retaliation configures one-off punishment behavior. It is parsed from the
// profile catalog and exposed for callers but, like the original engine, is
// not consulted by the round driver.
type Retaliation struct {
	UserDefectedPrevProb  float64
	CoopStreakLength      int
	CoopStreakDefectProb  float64
	UserDefectedFirstProb float64
	UserDefectedLast2Prob float64
}

// ShouldRetaliate evaluates the retaliation triggers against observed user
// behavior.
func (r *Retaliation) ShouldRetaliate(userDefectedPrev bool, coopStreak int, rng *rand.Rand) bool {
	if r == nil {
		return false
	}
	if userDefectedPrev && r.UserDefectedPrevProb > 0 {
		return rng.Float64() < r.UserDefectedPrevProb
	}
	if r.CoopStreakLength > 0 && coopStreak >= r.CoopStreakLength {
		return rng.Float64() < r.CoopStreakDefectProb
	}
	return false
}

// MixedStrategyConfig controls the equalizer cache refresh cadence.
type MixedStrategyConfig struct {
	RefreshEvery int
}

// defaultRefreshEvery matches the hard-coded cadence of the original engine:
// recompute the equalizer mix when more than 10 rounds have passed.
const defaultRefreshEvery = 10

// Profile is a named computer persona: phase boundaries, per-phase dominant
// play probability, exploration schedule and defensive triggers. Immutable
// per game aside from the NumRounds/Phases override applied at game start.
type Profile struct {
	Name                  string
	Description           string
	Phases                Phases
	PhasePercentages      *PhasePercentages
	DominantProbabilities map[Phase]float64
	Epsilon               EpsilonSchedule
	Security              SecurityLevel
	Retaliation           *Retaliation
	MixedStrategy         MixedStrategyConfig
	NumRounds             int
}

// WithNumRounds returns a copy of the profile adjusted to the given round
// count. When the profile carries phase percentages the phase boundaries are
// recomputed; otherwise the configured bounds are kept as-is.
func (p *Profile) WithNumRounds(numRounds int) *Profile {
	out := *p
	out.NumRounds = numRounds
	if p.PhasePercentages != nil {
		out.Phases = p.PhasePercentages.Boundaries(numRounds)
	}
	return &out
}

// DominantProbability returns the probability of playing a detected dominant
// move in the phase covering the given round.
func (p *Profile) DominantProbability(round int) float64 {
	phase := p.Phases.At(round)
	if prob, ok := p.DominantProbabilities[phase]; ok {
		return prob
	}
	return 0.5
}

// EpsilonAt evaluates the profile's exploration schedule for a round.
func (p *Profile) EpsilonAt(round int) float64 {
	return p.Epsilon.At(round)
}

// refreshEvery returns the equalizer refresh cadence in rounds.
func (p *Profile) refreshEvery() int {
	if p.MixedStrategy.RefreshEvery > 0 {
		return p.MixedStrategy.RefreshEvery
	}
	return defaultRefreshEvery
}

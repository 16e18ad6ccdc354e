package tradewar

import (
	"math/rand"

	"github.com/golang/glog"
	"github.com/pkg/errors"
)

// RoundLogger receives a structured record after each completed round.
// Implementations must not block: the round driver calls it synchronously
// and ignores anything it does.
type RoundLogger interface {
	LogRound(result RoundResult)
}

// GameConfig fully describes a game before any round is played.
type GameConfig struct {
	UserMoves     []*Move
	ComputerMoves []*Move
	Payoffs       []PayoffEntry
	Strategy      UserStrategySettings
	Profile       *Profile
	NumRounds     int
}

// Game is a single repeated matrix game between a user strategy and the
// profile-driven computer policy. A Game owns its state exclusively and is
// not safe for concurrent use; independent games may run in parallel.
type Game struct {
	userMoves     []*Move
	computerMoves []*Move
	table         *PayoffTable
	strategy      UserStrategySettings
	profile       *Profile
	numRounds     int

	state   *GameState
	history *History
	rng     *rand.Rand
	logger  RoundLogger

	userTotal     float64
	computerTotal float64
}

// GameResult holds the outcome of a completed game.
type GameResult struct {
	UserTotal     float64       `json:"user_total"`
	ComputerTotal float64       `json:"computer_total"`
	Winner        Winner        `json:"-"`
	WinnerName    string        `json:"winner"`
	Rounds        []RoundResult `json:"rounds"`
}

// NewGame validates the configuration and builds a ready-to-play game.
// Validation failures are configuration errors and abort game setup; nothing
// past this point returns an error for a missing move or a failed solver.
func NewGame(cfg GameConfig, rng *rand.Rand) (*Game, error) {
	if len(cfg.UserMoves) == 0 {
		return nil, errors.New("user move set is empty")
	}
	if len(cfg.ComputerMoves) == 0 {
		return nil, errors.New("computer move set is empty")
	}
	for _, m := range cfg.UserMoves {
		if m.Player != User {
			return nil, errors.Errorf("move %q: expected player tag %v, got %v", m.Name, User, m.Player)
		}
	}
	for _, m := range cfg.ComputerMoves {
		if m.Player != Computer {
			return nil, errors.Errorf("move %q: expected player tag %v, got %v", m.Name, Computer, m.Player)
		}
	}
	if cfg.Strategy.FirstMove != "" && MoveByName(cfg.UserMoves, cfg.Strategy.FirstMove) == nil {
		return nil, errors.Errorf("first move %q is not in the user move set", cfg.Strategy.FirstMove)
	}
	numRounds := cfg.NumRounds
	if numRounds <= 0 {
		return nil, errors.Errorf("num rounds must be positive, got %d", numRounds)
	}

	profile := cfg.Profile
	if profile == nil {
		return nil, errors.New("profile is required")
	}
	profile = profile.WithNumRounds(numRounds)

	if rng == nil {
		return nil, errors.New("rng is required")
	}

	return &Game{
		userMoves:     cfg.UserMoves,
		computerMoves: cfg.ComputerMoves,
		table:         NewPayoffTable(cfg.Payoffs),
		strategy:      cfg.Strategy,
		profile:       profile,
		numRounds:     numRounds,
		state:         &GameState{},
		history:       &History{},
		rng:           rng,
	}, nil
}

// SetLogger installs a per-round logger. Passing nil disables logging.
func (g *Game) SetLogger(l RoundLogger) {
	g.logger = l
}

// Profile returns the (round-adjusted) profile the computer is playing.
func (g *Game) Profile() *Profile { return g.profile }

// NumRounds returns the configured game length.
func (g *Game) NumRounds() int { return g.numRounds }

// Round returns the index of the next round to be played.
func (g *Game) Round() int { return g.state.RoundIdx }

// Done reports whether all rounds have been played.
func (g *Game) Done() bool { return g.state.RoundIdx >= g.numRounds }

// Totals returns the running cumulative realized payoffs.
func (g *Game) Totals() (user, computer float64) {
	return g.userTotal, g.computerTotal
}

// History returns all rounds played so far in order.
func (g *Game) History() []RoundResult {
	return g.history.All()
}

// PlayRound advances the game one round with the configured user strategy
// choosing the user's move.
func (g *Game) PlayRound() RoundResult {
	userMove := NextUserMove(g.strategy, g.userMoves, g.state, g.numRounds, g.rng)
	if userMove == nil {
		userMove = RandomMove(g.userMoves, g.rng)
	}
	return g.playRound(userMove)
}

// PlayRoundWithUserMove advances the game one round with an explicitly
// chosen user move, bypassing the strategy engine. The computer's decision
// sequence runs unchanged against the supplied move.
func (g *Game) PlayRoundWithUserMove(name string) (RoundResult, error) {
	userMove := MoveByName(g.userMoves, name)
	if userMove == nil {
		return RoundResult{}, errors.Errorf("unknown user move %q", name)
	}
	return g.playRound(userMove), nil
}

// Play runs all remaining rounds and returns the final result.
func (g *Game) Play() GameResult {
	for !g.Done() {
		g.PlayRound()
	}
	return g.Result()
}

// Result summarizes the game as played so far.
func (g *Game) Result() GameResult {
	winner := RoundWinner(g.userTotal, g.computerTotal)
	glog.V(1).Infof("Game over after %d rounds: user=%.2f computer=%.2f winner=%v",
		g.state.RoundIdx, g.userTotal, g.computerTotal, winner)
	return GameResult{
		UserTotal:     g.userTotal,
		ComputerTotal: g.computerTotal,
		Winner:        winner,
		WinnerName:    winner.String(),
		Rounds:        g.history.All(),
	}
}

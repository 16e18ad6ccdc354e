package tradewar

// GameState is the mutable per-game state carried between rounds. It is owned
// exclusively by the round driver of a single game; no cross-game sharing.
type GameState struct {
	// RoundIdx is the index of the round about to be played.
	RoundIdx int
	// LastComputerMove is the computer's move from the previous round,
	// nil on round 0.
	LastComputerMove *Move
	// LastStrategyUpdate is the round index at which the equalizer
	// strategy was last recomputed.
	LastStrategyUpdate int
	// EqualizerStrategy is the cached indifference distribution over the
	// computer's moves, nil until first solved.
	EqualizerStrategy []float64
	// MixedMovesArray is the pre-sampled sequence of computer moves drawn
	// from EqualizerStrategy, consumed with decay-weighted resampling.
	MixedMovesArray []*Move
	// UserMixedArray is the analogous pre-sampled sequence for the user's
	// mixed strategy.
	UserMixedArray []*Move
	// GrimTriggered is set once the computer defects against a
	// grim-trigger user and never resets within a game.
	GrimTriggered bool
}

// Reset returns the state to its round-0 condition.
func (s *GameState) Reset() {
	*s = GameState{}
}

// RoundResult is the immutable outcome of one played round. Moves are
// recorded by name so results stay decoupled from the live Move objects.
type RoundResult struct {
	Round          int     `json:"round"`
	Phase          Phase   `json:"phase"`
	UserMove       string  `json:"user_move"`
	ComputerMove   string  `json:"computer_move"`
	UserPayoff     float64 `json:"user_payoff"`
	ComputerPayoff float64 `json:"computer_payoff"`
	Winner         Winner  `json:"winner"`
	UserTotal      float64 `json:"user_total"`
	ComputerTotal  float64 `json:"computer_total"`
}

// Winner identifies which side took the round.
type Winner uint8

const (
	WinnerTie Winner = iota
	WinnerUser
	WinnerComputer
)

var winnerStr = [...]string{"tie", "user", "computer"}

func (w Winner) String() string {
	return winnerStr[w]
}

// RoundWinner compares realized payoffs with strict inequality; equal payoffs
// are a tie.
func RoundWinner(userPayoff, computerPayoff float64) Winner {
	switch {
	case userPayoff > computerPayoff:
		return WinnerUser
	case computerPayoff > userPayoff:
		return WinnerComputer
	}
	return WinnerTie
}

// historyNode is one link of the append-only move history.
type historyNode struct {
	result RoundResult
	next   *historyNode
}

// History is an append-only ordered log of round results with O(1) access to
// the most recent entry.
type History struct {
	head *historyNode
	tail *historyNode
	size int
}

// Append adds a round result to the end of the history.
func (h *History) Append(result RoundResult) {
	node := &historyNode{result: result}
	if h.head == nil {
		h.head = node
	} else {
		h.tail.next = node
	}
	h.tail = node
	h.size++
}

// Len returns the number of recorded rounds.
func (h *History) Len() int {
	return h.size
}

// Last returns the most recent round result, or nil if empty.
func (h *History) Last() *RoundResult {
	if h.tail == nil {
		return nil
	}
	return &h.tail.result
}

// All returns the recorded rounds in play order.
func (h *History) All() []RoundResult {
	results := make([]RoundResult, 0, h.size)
	for node := h.head; node != nil; node = node.next {
		results = append(results, node.result)
	}
	return results
}

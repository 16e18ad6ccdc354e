package matrixgame

import (
	"fmt"

	cfr "github.com/timpalpant/go-cfr"
)

// oneShotGame adapts a zero-sum matrix game to the extensive-form interface
// expected by the CFR solvers: the row player moves first, then the column
// player moves without observing the row player's choice (both players see a
// single, constant information set, which encodes the simultaneity of the
// one-shot game). payoffs holds the row player's payoff; the column player
// receives its negation, which is the contract vanilla CFR requires.
type oneShotGame struct {
	payoffs [][]float64
}

type oneShotNode struct {
	game    *oneShotGame
	rowMove int // -1 until the row player has moved
	colMove int // -1 until the column player has moved
}

// OneShotGame returns the root node of the one-shot zero-sum game for use
// with the go-cfr solvers. payoffs is the row player's payoff matrix.
func OneShotGame(payoffs [][]float64) cfr.GameTreeNode {
	return &oneShotNode{
		game:    &oneShotGame{payoffs: payoffs},
		rowMove: -1,
		colMove: -1,
	}
}

func (n *oneShotNode) Type() cfr.NodeType {
	if n.rowMove >= 0 && n.colMove >= 0 {
		return cfr.TerminalNode
	}
	return cfr.PlayerNode
}

func (n *oneShotNode) BuildChildren() {}
func (n *oneShotNode) FreeChildren()  {}

func (n *oneShotNode) NumChildren() int {
	if n.rowMove < 0 {
		return len(n.game.payoffs)
	}
	if n.colMove < 0 {
		return len(n.game.payoffs[0])
	}
	return 0
}

func (n *oneShotNode) GetChild(i int) cfr.GameTreeNode {
	child := *n
	if n.rowMove < 0 {
		child.rowMove = i
	} else {
		child.colMove = i
	}
	return &child
}

func (n *oneShotNode) GetChildProbability(i int) float64 {
	panic(fmt.Errorf("one-shot game has no chance nodes"))
}

func (n *oneShotNode) Player() int {
	if n.rowMove < 0 {
		return 0
	}
	return 1
}

// Each player has exactly one decision point and must not observe the
// opponent's move, so the information set is constant per player.
func (n *oneShotNode) InfoSet(player int) string {
	if player == 0 {
		return "row"
	}
	return "col"
}

func (n *oneShotNode) Utility(player int) float64 {
	u := n.game.payoffs[n.rowMove][n.colMove]
	if player == 0 {
		return u
	}
	return -u
}

// CFRValue runs nIter iterations of vanilla CFR over the one-shot zero-sum
// game with the given row-player payoff matrix and returns the time-averaged
// expected value for the row player, which converges to the game value.
func CFRValue(payoffs [][]float64, nIter int) float64 {
	vanilla := cfr.NewVanilla()
	node := OneShotGame(payoffs)
	var total float64
	for i := 0; i < nIter; i++ {
		total += float64(vanilla.Run(node))
	}
	return total / float64(nIter)
}

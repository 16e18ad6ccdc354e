package tradewar

import (
	"math/rand"

	"github.com/pkg/errors"
)

// Player represents the identity of a player in the game.
type Player uint8

const (
	playerInvalid Player = iota
	User
	Computer
)

var playerStr = [...]string{
	"invalid",
	"user",
	"computer",
}

func (p Player) String() string {
	if int(p) >= len(playerStr) {
		return "invalid"
	}
	return playerStr[p]
}

// Valid reports whether the player tag is one of the two real players.
func (p Player) Valid() bool {
	return p == User || p == Computer
}

// MoveType classifies a move on the cooperate/defect axis.
type MoveType uint8

const (
	Cooperative MoveType = iota
	Defective
	MixedType
)

var moveTypeStr = [...]string{
	"cooperative",
	"defective",
	"mixed",
}

func (mt MoveType) String() string {
	return moveTypeStr[mt]
}

// ParseMoveType maps a move type name to its constant.
func ParseMoveType(name string) (MoveType, error) {
	for i, s := range moveTypeStr {
		if s == name {
			return MoveType(i), nil
		}
	}
	return 0, errors.Errorf("unknown move type %q", name)
}

// Move is a single trade-policy action available to one of the players.
// Name is unique within its player's move set. Probability is the configured
// prior weight of the move; solvers never modify it, they return their own
// distributions instead.
type Move struct {
	Name        string
	Type        MoveType
	Probability float64
	Player      Player
}

// IsCooperative reports whether the move is a cooperative one.
func (m *Move) IsCooperative() bool {
	return m.Type == Cooperative
}

// RandomMove picks a move uniformly at random. Returns nil for an empty set.
// This is the terminal fallback of every decision chain: a round must always
// end with a valid move pair.
func RandomMove(moves []*Move, rng *rand.Rand) *Move {
	if len(moves) == 0 {
		return nil
	}
	return moves[rng.Intn(len(moves))]
}

// MoveByName finds a move by name within a move set.
func MoveByName(moves []*Move, name string) *Move {
	for _, m := range moves {
		if m.Name == name {
			return m
		}
	}
	return nil
}

// MovesOfType filters a move set down to the given type.
func MovesOfType(moves []*Move, mt MoveType) []*Move {
	var result []*Move
	for _, m := range moves {
		if m.Type == mt {
			result = append(result, m)
		}
	}
	return result
}

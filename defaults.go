package tradewar

// DefaultGameSetup builds symmetric move sets and a Prisoner's
// Dilemma-style payoff matrix from move names: mutual cooperation pays
// (3,3), mutual defection (1,1), and a lone defector (5,0). Unnamed moves
// default to cooperative.
func DefaultGameSetup(moveNames []string, moveTypes map[string]MoveType) (userMoves, computerMoves []*Move, payoffs []PayoffEntry) {
	typeOf := func(name string) MoveType {
		if mt, ok := moveTypes[name]; ok {
			return mt
		}
		return Cooperative
	}

	prob := 1.0 / float64(len(moveNames))
	for _, name := range moveNames {
		userMoves = append(userMoves, &Move{Name: name, Type: typeOf(name), Probability: prob, Player: User})
		computerMoves = append(computerMoves, &Move{Name: name, Type: typeOf(name), Probability: prob, Player: Computer})
	}

	for _, userName := range moveNames {
		for _, compName := range moveNames {
			var p Payoff
			switch {
			case typeOf(userName) == Cooperative && typeOf(compName) == Cooperative:
				p = Payoff{User: 3, Computer: 3}
			case typeOf(userName) == Cooperative && typeOf(compName) == Defective:
				p = Payoff{User: 0, Computer: 5}
			case typeOf(userName) == Defective && typeOf(compName) == Cooperative:
				p = Payoff{User: 5, Computer: 0}
			default:
				p = Payoff{User: 1, Computer: 1}
			}
			payoffs = append(payoffs, PayoffEntry{
				UserMoveName:     userName,
				ComputerMoveName: compName,
				Payoff:           p,
			})
		}
	}
	return userMoves, computerMoves, payoffs
}

// Analyze a trade-war payoff matrix: enumerate Nash equilibria, solve for
// the equalizing mixed strategy, and cross-check the game value with
// fictitious play and CFR.
package main

import (
	"flag"
	"fmt"
	"math/rand"
	"strings"

	"github.com/golang/glog"

	"github.com/tradewarsim/tradewar"
	"github.com/tradewarsim/tradewar/matrixgame"
)

func main() {
	moves := flag.String("moves", "open_dialogue,raise_tariffs", "Comma-separated move names")
	defective := flag.String("defective", "raise_tariffs", "Comma-separated defective move names")
	iter := flag.Int("iter", 10000, "Iterations for fictitious play and CFR")
	seed := flag.Int64("seed", 1234, "Random seed")
	flag.Parse()

	moveTypes := make(map[string]tradewar.MoveType)
	for _, name := range strings.Split(*defective, ",") {
		moveTypes[name] = tradewar.Defective
	}
	userMoves, computerMoves, payoffs := tradewar.DefaultGameSetup(strings.Split(*moves, ","), moveTypes)
	table := tradewar.NewPayoffTable(payoffs)

	rowPayoffs := tradewar.PayoffMatrix(computerMoves, userMoves, table)
	colPayoffs := make([][]float64, len(computerMoves))
	for i, cm := range computerMoves {
		colPayoffs[i] = make([]float64, len(userMoves))
		for j, um := range userMoves {
			colPayoffs[i][j] = table.Expected(um, cm)
		}
	}

	names := make([]string, len(computerMoves))
	for i, m := range computerMoves {
		names[i] = m.Name
	}

	fmt.Println("Nash equilibria (support enumeration):")
	equilibria := matrixgame.SupportEnumeration(rowPayoffs, colPayoffs)
	if len(equilibria) == 0 {
		fmt.Println("  none found")
	}
	for i, eq := range equilibria {
		fmt.Printf("  #%d row=%s col=%s\n", i+1, formatDist(names, eq.Row), formatDist(names, eq.Col))
	}

	fmt.Println("\nEqualizing mixed strategy (computer side):")
	dist, err := matrixgame.SolveIndifference(rowPayoffs, matrixgame.TargetCol)
	if err != nil {
		glog.Fatal(err)
	}
	if dist == nil {
		fmt.Println("  infeasible")
	} else {
		fmt.Printf("  %s\n", formatDist(names, dist))
	}

	rng := rand.New(rand.NewSource(*seed))
	rowStrat, colStrat := matrixgame.FictitiousPlay(rowPayoffs, colPayoffs, *iter, 0.1, rng)
	fmt.Println("\nFictitious play:")
	fmt.Printf("  row=%s col=%s\n", formatDist(names, rowStrat), formatDist(names, colStrat))

	// CFR needs a zero-sum game, so it solves the advantage game: the
	// computer's payoff minus the user's at each cell.
	advantage := make([][]float64, len(rowPayoffs))
	for i := range rowPayoffs {
		advantage[i] = make([]float64, len(rowPayoffs[i]))
		for j := range rowPayoffs[i] {
			advantage[i][j] = rowPayoffs[i][j] - colPayoffs[i][j]
		}
	}
	fmt.Printf("\nCFR value of the advantage game (computer minus user): %.4f\n",
		matrixgame.CFRValue(advantage, *iter))
}

func formatDist(names []string, dist []float64) string {
	parts := make([]string, 0, len(dist))
	for i, p := range dist {
		name := fmt.Sprintf("s%d", i)
		if i < len(names) {
			name = names[i]
		}
		parts = append(parts, fmt.Sprintf("%s:%.3f", name, p))
	}
	return "{" + strings.Join(parts, " ") + "}"
}

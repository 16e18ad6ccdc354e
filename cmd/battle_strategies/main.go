// Battle user strategies against a computer profile over a Monte Carlo
// suite of independent games and report per-strategy statistics.
package main

import (
	"flag"
	"fmt"
	"sort"
	"strings"

	"github.com/golang/glog"

	"github.com/tradewarsim/tradewar"
	"github.com/tradewarsim/tradewar/simulate"
)

func main() {
	strategies := flag.String("strategies", "copy_cat,tit_for_tat,grim_trigger,random,mixed", "Comma-separated user strategies to battle")
	profileName := flag.String("profile", "Balanced", "Computer profile name")
	profilesFile := flag.String("profiles", "", "JSON file with computer profiles (built-in catalog if empty)")
	moves := flag.String("moves", "open_dialogue,raise_tariffs", "Comma-separated move names")
	defective := flag.String("defective", "raise_tariffs", "Comma-separated defective move names")
	firstMove := flag.String("first_move", "open_dialogue", "User's round-0 move")
	numGames := flag.Int("num_games", 5000, "Number of games per strategy")
	roundsMean := flag.Float64("rounds_mean", 0, "Mean game length (profile default if 0)")
	roundsStd := flag.Float64("rounds_std", 0, "Game length std dev; 0 uses the discrete Weibull mixture")
	roundsMin := flag.Int("rounds_min", 50, "Minimum game length")
	roundsMax := flag.Int("rounds_max", 500, "Maximum game length")
	seed := flag.Int64("seed", 1234, "Random seed")
	parallel := flag.Int("parallel", 0, "Max concurrent games (NumCPU if 0)")
	flag.Parse()

	profiles, err := tradewar.LoadProfiles(*profilesFile)
	if err != nil {
		glog.Fatal(err)
	}
	profile := profiles.Get(*profileName)
	if profile == nil {
		glog.Fatalf("Unknown profile %q, available: %v", *profileName, profiles.Names())
	}

	var strategyTypes []tradewar.StrategyType
	for _, name := range strings.Split(*strategies, ",") {
		s, err := tradewar.ParseStrategy(strings.TrimSpace(name))
		if err != nil {
			glog.Fatal(err)
		}
		strategyTypes = append(strategyTypes, s)
	}

	moveTypes := make(map[string]tradewar.MoveType)
	for _, name := range strings.Split(*defective, ",") {
		moveTypes[name] = tradewar.Defective
	}
	userMoves, computerMoves, payoffs := tradewar.DefaultGameSetup(strings.Split(*moves, ","), moveTypes)

	glog.Infof("Battling %d strategies vs %s, %d games each", len(strategyTypes), profile.Name, *numGames)
	result, err := simulate.RunSuite(simulate.SuiteConfig{
		UserMoves:      userMoves,
		ComputerMoves:  computerMoves,
		Payoffs:        payoffs,
		Profile:        profile,
		Strategies:     strategyTypes,
		FirstMove:      *firstMove,
		NumSimulations: *numGames,
		RoundsMean:     *roundsMean,
		RoundsStd:      *roundsStd,
		RoundsMin:      *roundsMin,
		RoundsMax:      *roundsMax,
		Seed:           *seed,
		Parallel:       *parallel,
	})
	if err != nil {
		glog.Fatal(err)
	}

	fmt.Printf("Profile: %s  (%d games/strategy, rounds mean=%.1f std=%.1f range=[%d,%d])\n\n",
		result.Profile, result.NumSimulations,
		result.Rounds.Mean, result.Rounds.Std, result.Rounds.Min, result.Rounds.Max)

	sorted := append([]simulate.StrategyResult(nil), result.Results...)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].AvgUserPayoff > sorted[j].AvgUserPayoff
	})
	fmt.Printf("%-14s %12s %12s %10s %10s\n", "strategy", "user payoff", "comp payoff", "std", "win rate")
	for _, r := range sorted {
		fmt.Printf("%-14s %12.2f %12.2f %10.2f %9.1f%%\n",
			r.Strategy, r.AvgUserPayoff, r.AvgComputerPayoff, r.StdUserPayoff, r.WinRate)
	}

	fmt.Printf("\nBest strategy:  %s\n", result.BestStrategy)
	fmt.Printf("Worst strategy: %s\n", result.WorstStrategy)
	fmt.Printf("Most wins:      %s\n", result.MostWins)
}

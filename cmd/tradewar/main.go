// Play a full trade-war game between a user strategy and a computer profile.
package main

import (
	"flag"
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/golang/glog"

	"github.com/tradewarsim/tradewar"
	"github.com/tradewarsim/tradewar/gamelog"
)

func main() {
	strategy := flag.String("strategy", "tit_for_tat", "User strategy: "+strings.Join(tradewar.StrategyNames(), ", "))
	profileName := flag.String("profile", "Balanced", "Computer profile name")
	profilesFile := flag.String("profiles", "", "JSON file with computer profiles (built-in catalog if empty)")
	moves := flag.String("moves", "open_dialogue,raise_tariffs", "Comma-separated move names")
	defective := flag.String("defective", "raise_tariffs", "Comma-separated defective move names")
	firstMove := flag.String("first_move", "open_dialogue", "User's round-0 move")
	cooperationStart := flag.Int("cooperation_start", 0, "Round at which tit_for_tat/grim_trigger stop unconditionally cooperating")
	numRounds := flag.Int("num_rounds", 0, "Number of rounds (profile default if 0)")
	seed := flag.Int64("seed", 0, "Random seed (time-based if 0)")
	logFile := flag.String("log_file", "", "CSV round log path (disabled if empty)")
	flag.Parse()

	profiles, err := tradewar.LoadProfiles(*profilesFile)
	if err != nil {
		glog.Fatal(err)
	}
	profile := profiles.Get(*profileName)
	if profile == nil {
		glog.Fatalf("Unknown profile %q, available: %v", *profileName, profiles.Names())
	}

	strategyType, err := tradewar.ParseStrategy(*strategy)
	if err != nil {
		glog.Fatal(err)
	}

	moveTypes := make(map[string]tradewar.MoveType)
	for _, name := range strings.Split(*defective, ",") {
		moveTypes[name] = tradewar.Defective
	}
	userMoves, computerMoves, payoffs := tradewar.DefaultGameSetup(strings.Split(*moves, ","), moveTypes)

	rounds := *numRounds
	if rounds <= 0 {
		rounds = profile.NumRounds
	}
	if *seed == 0 {
		*seed = time.Now().UnixNano()
	}

	game, err := tradewar.NewGame(tradewar.GameConfig{
		UserMoves:     userMoves,
		ComputerMoves: computerMoves,
		Payoffs:       payoffs,
		Strategy: tradewar.UserStrategySettings{
			Strategy:         strategyType,
			FirstMove:        *firstMove,
			CooperationStart: *cooperationStart,
		},
		Profile:   profile,
		NumRounds: rounds,
	}, rand.New(rand.NewSource(*seed)))
	if err != nil {
		glog.Fatal(err)
	}

	if *logFile != "" {
		logger := gamelog.NewCSVLogger(*logFile, 10, 3)
		defer logger.Close()
		game.SetLogger(logger)
	}

	glog.Infof("Playing %d rounds: %s vs %s (seed %d)", rounds, *strategy, profile.Name, *seed)
	result := game.Play()

	fmt.Printf("Rounds played:   %d\n", rounds)
	fmt.Printf("User payoff:     %.2f\n", result.UserTotal)
	fmt.Printf("Computer payoff: %.2f\n", result.ComputerTotal)
	fmt.Printf("Winner:          %s\n", result.WinnerName)
}

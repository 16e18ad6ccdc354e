// Package simulate runs Monte Carlo suites of full games: many independent
// games per user strategy, with game lengths sampled per run, aggregated
// into per-strategy and per-move statistics.
package simulate

import (
	"fmt"
	"math/rand"
	"runtime"
	"sync"

	"github.com/golang/glog"
	"gonum.org/v1/gonum/stat"

	"github.com/tradewarsim/tradewar"
)

// SuiteConfig describes one Monte Carlo run.
type SuiteConfig struct {
	// Base game setup shared by every simulated game. Strategy and
	// NumRounds are overridden per game.
	UserMoves     []*tradewar.Move
	ComputerMoves []*tradewar.Move
	Payoffs       []tradewar.PayoffEntry
	Profile       *tradewar.Profile

	// Strategies to battle against the profile.
	Strategies []tradewar.StrategyType
	FirstMove  string
	// CooperationStart applies to tit_for_tat and grim_trigger.
	CooperationStart int

	NumSimulations int

	// Game-length sampling. When RoundsStd > 0 lengths come from a clamped
	// normal; otherwise from the two-regime discrete Weibull mixture.
	RoundsMean float64
	RoundsStd  float64
	RoundsMin  int
	RoundsMax  int

	Seed     int64
	Parallel int // max concurrent games; 0 means NumCPU
}

// GameOutcome is one simulated game's result, reduced to what the
// aggregation needs.
type GameOutcome struct {
	UserPayoff     float64
	ComputerPayoff float64
	UserWon        bool
	NumRounds      int
	Rounds         []tradewar.RoundResult
}

// MoveStat aggregates per-move usage across one strategy's games.
type MoveStat struct {
	Frequency  int     `json:"frequency"`
	Percentage float64 `json:"frequency_percentage"`
	AvgPayoff  float64 `json:"average_payoff"`
	WinRate    float64 `json:"win_rate"`
	UsageCount int     `json:"usage_count"` // games the move appeared in
}

// ComboStat aggregates a (user move, computer move) pairing.
type ComboStat struct {
	Frequency      int     `json:"frequency"`
	Percentage     float64 `json:"frequency_percentage"`
	AvgUserPayoff  float64 `json:"average_user_payoff"`
	AvgCompPayoff  float64 `json:"average_computer_payoff"`
}

// MoveStatistics covers both sides plus move pairings for one strategy.
type MoveStatistics struct {
	UserMoves     map[string]MoveStat  `json:"user_moves"`
	ComputerMoves map[string]MoveStat  `json:"computer_moves"`
	Combinations  map[string]ComboStat `json:"move_combinations"`
}

// StrategyResult is the aggregate for one user strategy.
type StrategyResult struct {
	Strategy          string         `json:"user_strategy"`
	NumGames          int            `json:"num_games"`
	AvgUserPayoff     float64        `json:"average_user_payoff"`
	AvgComputerPayoff float64        `json:"average_computer_payoff"`
	AvgPayoffDiff     float64        `json:"average_payoff_difference"`
	StdUserPayoff     float64        `json:"std_user_payoff"`
	StdComputerPayoff float64        `json:"std_computer_payoff"`
	WinRate           float64        `json:"win_rate"` // percentage in [0,100]
	MoveStats         MoveStatistics `json:"move_statistics"`
}

// RoundsStatistics summarizes the sampled game lengths across the suite.
type RoundsStatistics struct {
	Mean float64 `json:"mean"`
	Std  float64 `json:"std"`
	Min  int     `json:"min"`
	Max  int     `json:"max"`
}

// SuiteResult is the full Monte Carlo output.
type SuiteResult struct {
	Profile        string           `json:"computer_profile"`
	NumSimulations int              `json:"num_simulations"`
	Rounds         RoundsStatistics `json:"rounds_statistics"`
	Results        []StrategyResult `json:"results"`
	BestStrategy   string           `json:"best_strategy"`
	WorstStrategy  string           `json:"worst_strategy"`
	MostWins       string           `json:"most_wins"`
}

// RunSingle plays one full game and reduces it to an outcome.
func RunSingle(cfg tradewar.GameConfig, rng *rand.Rand) (GameOutcome, error) {
	game, err := tradewar.NewGame(cfg, rng)
	if err != nil {
		return GameOutcome{}, err
	}
	result := game.Play()
	return GameOutcome{
		UserPayoff:     result.UserTotal,
		ComputerPayoff: result.ComputerTotal,
		UserWon:        result.Winner == tradewar.WinnerUser,
		NumRounds:      cfg.NumRounds,
		Rounds:         result.Rounds,
	}, nil
}

// RunSuite battles every configured strategy against the profile. Games are
// independent and run concurrently up to cfg.Parallel at a time; each game
// gets its own seeded RNG so runs are reproducible for a fixed Seed.
func RunSuite(cfg SuiteConfig) (*SuiteResult, error) {
	if cfg.NumSimulations <= 0 {
		cfg.NumSimulations = 1000
	}
	if cfg.RoundsMean <= 0 {
		cfg.RoundsMean = float64(cfg.Profile.NumRounds)
		if cfg.RoundsMean <= 0 {
			cfg.RoundsMean = 200
		}
	}
	if cfg.RoundsMin <= 0 {
		cfg.RoundsMin = 1
	}
	if cfg.RoundsMax <= 0 {
		cfg.RoundsMax = 1000
	}
	parallel := cfg.Parallel
	if parallel <= 0 {
		parallel = runtime.NumCPU()
	}

	rootRng := rand.New(rand.NewSource(cfg.Seed))
	var allRounds []int
	results := make([]StrategyResult, 0, len(cfg.Strategies))

	for _, strategy := range cfg.Strategies {
		glog.Infof("Running %d simulations for strategy %v vs profile %s",
			cfg.NumSimulations, strategy, cfg.Profile.Name)

		var sampledRounds []int
		if cfg.RoundsStd > 0 {
			sampledRounds = SampleNormalRounds(cfg.RoundsMean, cfg.RoundsStd,
				cfg.RoundsMin, cfg.RoundsMax, cfg.NumSimulations, rootRng)
		} else {
			sampledRounds = SampleTradeWarRounds(cfg.RoundsMean,
				cfg.RoundsMin, cfg.RoundsMax, cfg.NumSimulations, rootRng)
		}
		allRounds = append(allRounds, sampledRounds...)

		outcomes := runStrategyGames(cfg, strategy, sampledRounds, parallel, rootRng.Int63())
		results = append(results, aggregateStrategy(strategy, outcomes))
	}

	res := &SuiteResult{
		Profile:        cfg.Profile.Name,
		NumSimulations: cfg.NumSimulations,
		Rounds:         roundsStats(allRounds),
		Results:        results,
	}
	fillSummary(res)
	return res, nil
}

func runStrategyGames(cfg SuiteConfig, strategy tradewar.StrategyType, sampledRounds []int, parallel int, seed int64) []GameOutcome {
	outcomes := make([]GameOutcome, len(sampledRounds))
	sem := make(chan struct{}, parallel)
	var wg sync.WaitGroup
	for i, numRounds := range sampledRounds {
		wg.Add(1)
		sem <- struct{}{}
		go func(i, numRounds int) {
			defer func() {
				<-sem
				wg.Done()
			}()
			gameCfg := tradewar.GameConfig{
				UserMoves:     cfg.UserMoves,
				ComputerMoves: cfg.ComputerMoves,
				Payoffs:       cfg.Payoffs,
				Strategy: tradewar.UserStrategySettings{
					Strategy:         strategy,
					FirstMove:        cfg.FirstMove,
					CooperationStart: cfg.CooperationStart,
				},
				Profile:   cfg.Profile,
				NumRounds: numRounds,
			}
			rng := rand.New(rand.NewSource(seed + int64(i)))
			outcome, err := RunSingle(gameCfg, rng)
			if err != nil {
				glog.Warningf("Simulation %d for %v failed: %v", i, strategy, err)
				return
			}
			outcomes[i] = outcome
		}(i, numRounds)
	}
	wg.Wait()

	// Drop failed slots (zero NumRounds marks a game that never ran).
	valid := outcomes[:0]
	for _, o := range outcomes {
		if o.NumRounds > 0 {
			valid = append(valid, o)
		}
	}
	return valid
}

func aggregateStrategy(strategy tradewar.StrategyType, outcomes []GameOutcome) StrategyResult {
	result := StrategyResult{
		Strategy: strategy.String(),
		NumGames: len(outcomes),
	}
	if len(outcomes) == 0 {
		return result
	}

	userPayoffs := make([]float64, len(outcomes))
	compPayoffs := make([]float64, len(outcomes))
	diffs := make([]float64, len(outcomes))
	var wins int
	for i, o := range outcomes {
		userPayoffs[i] = o.UserPayoff
		compPayoffs[i] = o.ComputerPayoff
		diffs[i] = o.UserPayoff - o.ComputerPayoff
		if o.UserWon {
			wins++
		}
	}
	result.AvgUserPayoff = stat.Mean(userPayoffs, nil)
	result.AvgComputerPayoff = stat.Mean(compPayoffs, nil)
	result.AvgPayoffDiff = stat.Mean(diffs, nil)
	if len(outcomes) > 1 {
		result.StdUserPayoff = stat.StdDev(userPayoffs, nil)
		result.StdComputerPayoff = stat.StdDev(compPayoffs, nil)
	}
	result.WinRate = 100 * float64(wins) / float64(len(outcomes))
	result.MoveStats = moveStatistics(outcomes)
	return result
}

type moveAccum struct {
	count       int
	totalPayoff float64
	gamesUsed   int
	gamesWon    int
}

func moveStatistics(outcomes []GameOutcome) MoveStatistics {
	userAccum := make(map[string]*moveAccum)
	compAccum := make(map[string]*moveAccum)
	type comboAccum struct {
		count      int
		totalUser  float64
		totalComp  float64
	}
	combos := make(map[string]*comboAccum)

	var totalMoves int
	for _, o := range outcomes {
		userSeen := make(map[string]bool)
		compSeen := make(map[string]bool)
		for _, r := range o.Rounds {
			totalMoves++

			ua := accumFor(userAccum, r.UserMove)
			ua.count++
			ua.totalPayoff += r.UserPayoff
			userSeen[r.UserMove] = true

			ca := accumFor(compAccum, r.ComputerMove)
			ca.count++
			ca.totalPayoff += r.ComputerPayoff
			compSeen[r.ComputerMove] = true

			key := fmt.Sprintf("(%s, %s)", r.UserMove, r.ComputerMove)
			cb := combos[key]
			if cb == nil {
				cb = &comboAccum{}
				combos[key] = cb
			}
			cb.count++
			cb.totalUser += r.UserPayoff
			cb.totalComp += r.ComputerPayoff
		}
		markGames(userAccum, userSeen, o.UserWon)
		markGames(compAccum, compSeen, !o.UserWon && o.ComputerPayoff > o.UserPayoff)
	}

	stats := MoveStatistics{
		UserMoves:     finalizeMoves(userAccum, totalMoves),
		ComputerMoves: finalizeMoves(compAccum, totalMoves),
		Combinations:  make(map[string]ComboStat, len(combos)),
	}
	for key, cb := range combos {
		stats.Combinations[key] = ComboStat{
			Frequency:     cb.count,
			Percentage:    100 * float64(cb.count) / float64(totalMoves),
			AvgUserPayoff: cb.totalUser / float64(cb.count),
			AvgCompPayoff: cb.totalComp / float64(cb.count),
		}
	}
	return stats
}

func accumFor(m map[string]*moveAccum, name string) *moveAccum {
	a := m[name]
	if a == nil {
		a = &moveAccum{}
		m[name] = a
	}
	return a
}

func markGames(m map[string]*moveAccum, seen map[string]bool, won bool) {
	for name := range seen {
		a := m[name]
		a.gamesUsed++
		if won {
			a.gamesWon++
		}
	}
}

func finalizeMoves(m map[string]*moveAccum, totalMoves int) map[string]MoveStat {
	out := make(map[string]MoveStat, len(m))
	for name, a := range m {
		s := MoveStat{
			Frequency:  a.count,
			AvgPayoff:  a.totalPayoff / float64(a.count),
			UsageCount: a.gamesUsed,
		}
		if totalMoves > 0 {
			s.Percentage = 100 * float64(a.count) / float64(totalMoves)
		}
		if a.gamesUsed > 0 {
			s.WinRate = 100 * float64(a.gamesWon) / float64(a.gamesUsed)
		}
		out[name] = s
	}
	return out
}

func roundsStats(rounds []int) RoundsStatistics {
	if len(rounds) == 0 {
		return RoundsStatistics{}
	}
	xs := make([]float64, len(rounds))
	min, max := rounds[0], rounds[0]
	for i, r := range rounds {
		xs[i] = float64(r)
		if r < min {
			min = r
		}
		if r > max {
			max = r
		}
	}
	stats := RoundsStatistics{
		Mean: stat.Mean(xs, nil),
		Min:  min,
		Max:  max,
	}
	if len(xs) > 1 {
		stats.Std = stat.StdDev(xs, nil)
	}
	return stats
}

func fillSummary(res *SuiteResult) {
	var best, worst, mostWins *StrategyResult
	for i := range res.Results {
		r := &res.Results[i]
		if r.NumGames == 0 {
			continue
		}
		if best == nil || r.AvgUserPayoff > best.AvgUserPayoff {
			best = r
		}
		if worst == nil || r.AvgUserPayoff < worst.AvgUserPayoff {
			worst = r
		}
		if mostWins == nil || r.WinRate > mostWins.WinRate {
			mostWins = r
		}
	}
	if best != nil {
		res.BestStrategy = best.Strategy
	}
	if worst != nil {
		res.WorstStrategy = worst.Strategy
	}
	if mostWins != nil {
		res.MostWins = mostWins.Strategy
	}
}

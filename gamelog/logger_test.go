package gamelog

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"

	"github.com/tradewarsim/tradewar"
)

func TestCSVLogger(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rounds.csv")
	logger := NewCSVLogger(path, 1, 1)

	for i := 0; i < 25; i++ {
		logger.LogRound(tradewar.RoundResult{
			Round:          i,
			Phase:          tradewar.Phase1,
			UserMove:       "open_dialogue",
			ComputerMove:   "raise_tariffs",
			UserPayoff:     0,
			ComputerPayoff: 5,
			Winner:         tradewar.WinnerComputer,
			UserTotal:      0,
			ComputerTotal:  float64(5 * (i + 1)),
		})
	}
	if err := logger.Close(); err != nil {
		t.Fatal(err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	records, err := csv.NewReader(f).ReadAll()
	if err != nil {
		t.Fatal(err)
	}
	if len(records) != 26 { // header + 25 rounds
		t.Fatalf("got %d records, want 26", len(records))
	}
	if records[0][0] != "round" {
		t.Errorf("missing header row: %v", records[0])
	}
	if records[1][2] != "open_dialogue" || records[1][6] != "computer" {
		t.Errorf("unexpected first record: %v", records[1])
	}
}

func TestCSVLoggerCloseIsIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rounds.csv")
	logger := NewCSVLogger(path, 1, 1)
	logger.LogRound(tradewar.RoundResult{Round: 0})
	if err := logger.Close(); err != nil {
		t.Fatal(err)
	}
	if err := logger.Close(); err != nil {
		t.Fatal(err)
	}
}

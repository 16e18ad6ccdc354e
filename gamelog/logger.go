// Package gamelog writes per-round game records to a size-rotated CSV file.
// Logging is fire-and-forget: the writer runs on its own goroutine and drops
// records rather than block a round.
package gamelog

import (
	"encoding/csv"
	"strconv"
	"sync"

	"github.com/golang/glog"
	lumberjack "gopkg.in/natefinch/lumberjack.v2"

	"github.com/tradewarsim/tradewar"
)

var header = []string{
	"round", "phase", "user_move", "computer_move",
	"user_payoff", "computer_payoff", "winner",
	"user_total", "computer_total",
}

const queueSize = 1024

// CSVLogger implements tradewar.RoundLogger over a rotating file.
type CSVLogger struct {
	out *lumberjack.Logger
	w   *csv.Writer

	records chan tradewar.RoundResult
	done    chan struct{}
	once    sync.Once
}

// NewCSVLogger opens (or creates) the log file at path, rotating at
// maxSizeMB and keeping maxBackups old files.
func NewCSVLogger(path string, maxSizeMB, maxBackups int) *CSVLogger {
	out := &lumberjack.Logger{
		Filename:   path,
		MaxSize:    maxSizeMB,
		MaxBackups: maxBackups,
	}
	l := &CSVLogger{
		out:     out,
		w:       csv.NewWriter(out),
		records: make(chan tradewar.RoundResult, queueSize),
		done:    make(chan struct{}),
	}
	if err := l.w.Write(header); err != nil {
		glog.Warningf("Failed to write log header: %v", err)
	}
	go l.run()
	return l
}

// LogRound enqueues one round record. It never blocks: when the queue is
// full the record is dropped with a warning.
func (l *CSVLogger) LogRound(result tradewar.RoundResult) {
	select {
	case l.records <- result:
	default:
		glog.Warningf("Game log queue full, dropping round %d", result.Round)
	}
}

func (l *CSVLogger) run() {
	for result := range l.records {
		record := []string{
			strconv.Itoa(result.Round),
			result.Phase.String(),
			result.UserMove,
			result.ComputerMove,
			formatFloat(result.UserPayoff),
			formatFloat(result.ComputerPayoff),
			result.Winner.String(),
			formatFloat(result.UserTotal),
			formatFloat(result.ComputerTotal),
		}
		if err := l.w.Write(record); err != nil {
			glog.Warningf("Failed to write game log record: %v", err)
		}
		l.w.Flush()
	}
	close(l.done)
}

// Close drains pending records and closes the underlying file.
func (l *CSVLogger) Close() error {
	l.once.Do(func() {
		close(l.records)
	})
	<-l.done
	l.w.Flush()
	if err := l.w.Error(); err != nil {
		glog.Warningf("Game log writer error on close: %v", err)
	}
	return l.out.Close()
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', 4, 64)
}

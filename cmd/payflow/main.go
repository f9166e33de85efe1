// Command payflow replays a CSV transaction log and prints the final state
// of every client as CSV on stdout. Rejected records are reported on stderr
// and skipped; they never abort the run.
package main

import (
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/punchamoorthee/payflow/internal/csvio"
	"github.com/punchamoorthee/payflow/internal/ledger"
	"github.com/punchamoorthee/payflow/internal/logging"
	"github.com/punchamoorthee/payflow/internal/replay"
)

func main() {
	if len(os.Args) != 2 {
		fmt.Fprintf(os.Stderr, "usage: %s <transactions.csv>\n", os.Args[0])
		os.Exit(1)
	}

	logger, err := logging.New(os.Getenv("ENVIRONMENT"), os.Getenv("LOG_LEVEL"))
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer logger.Sync()

	if err := run(os.Args[1], logger); err != nil {
		logger.Fatal("replay failed", zap.Error(err))
	}
}

func run(path string, logger *zap.Logger) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("opening transaction log: %w", err)
	}
	defer f.Close()

	r, err := csvio.NewReader(f)
	if err != nil {
		return err
	}

	db := ledger.New()
	stats, err := replay.Run(db, r, logger)
	if err != nil {
		return err
	}
	logger.Info("replay finished",
		zap.Int("applied", stats.Applied),
		zap.Int("rejected", stats.Rejected),
		zap.Int("malformed", stats.Malformed))

	return csvio.WriteSnapshots(os.Stdout, db.Snapshot())
}

// Package replay drives a ledger from a transaction log: the synchronous
// processing loop used by the CLI and a single-writer worker that lets the
// HTTP surface ingest without violating the ledger's exclusive-ownership
// model.
package replay

import (
	"encoding/csv"
	"errors"
	"io"

	"go.uber.org/zap"

	"github.com/punchamoorthee/payflow/internal/csvio"
	"github.com/punchamoorthee/payflow/internal/ledger"
)

// Stats summarizes one replay run.
type Stats struct {
	Applied   int
	Rejected  int
	Malformed int
}

// Run replays every record from r into db, strictly in log order. Rejected
// records are logged with their ordinal and skipped; only a broken input
// stream stops the run.
func Run(db *ledger.Ledger, r *csvio.Reader, log *zap.Logger) (Stats, error) {
	var stats Stats
	for {
		rec, n, err := r.Read()
		if errors.Is(err, io.EOF) {
			return stats, nil
		}
		if err != nil {
			var parseErr *csv.ParseError
			if !errors.As(err, &parseErr) {
				return stats, err
			}
			stats.Malformed++
			malformedTotal.Inc()
			log.Warn("skipping unreadable record", zap.Int("record", n), zap.Error(err))
			continue
		}

		action, err := ledger.ParseRecord(rec)
		if err != nil {
			stats.Malformed++
			malformedTotal.Inc()
			log.Warn("rejecting malformed record", zap.Int("record", n), zap.Error(err))
			continue
		}

		err = db.Apply(action)
		countAction(action, err)
		if err != nil {
			stats.Rejected++
			log.Warn("rejecting action", zap.Int("record", n), zap.Error(err))
			continue
		}
		stats.Applied++
	}
}

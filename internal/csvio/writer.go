package csvio

import (
	"encoding/csv"
	"io"
	"strconv"

	"github.com/punchamoorthee/payflow/internal/ledger"
)

// WriteSnapshots renders the final client table as CSV. Balances carry
// exactly four fractional digits.
func WriteSnapshots(w io.Writer, snapshots []ledger.ClientSnapshot) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"client", "available", "held", "total", "locked"}); err != nil {
		return err
	}
	for _, s := range snapshots {
		row := []string{
			s.Client.String(),
			s.Available.String(),
			s.Held.String(),
			s.Total.String(),
			strconv.FormatBool(s.Locked),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// Package csvio adapts the ledger core to its CSV surfaces: a streaming
// reader that turns transaction-log rows into raw records and a writer that
// renders the final client snapshots.
package csvio

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/punchamoorthee/payflow/internal/ledger"
)

// Reader streams raw transaction records out of a CSV log. The log must
// start with a header row naming the type, client and tx columns (amount is
// optional, in any order); '#' starts a comment line, fields are
// whitespace-trimmed, and dispute-family rows may omit the amount column
// entirely.
type Reader struct {
	cr  *csv.Reader
	col map[string]int
	n   int
}

// NewReader wraps r and consumes its header row.
func NewReader(r io.Reader) (*Reader, error) {
	cr := csv.NewReader(r)
	cr.Comment = '#'
	cr.TrimLeadingSpace = true
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("reading header: %w", err)
	}
	col := make(map[string]int, len(header))
	for i, name := range header {
		col[strings.ToLower(strings.TrimSpace(name))] = i
	}
	for _, name := range []string{"type", "client", "tx"} {
		if _, ok := col[name]; !ok {
			return nil, fmt.Errorf("header is missing the %q column", name)
		}
	}
	return &Reader{cr: cr, col: col}, nil
}

// Read returns the next record together with its ordinal position in the
// log. It returns io.EOF once the log is exhausted; any other error is
// local to the returned ordinal and the reader stays usable.
func (r *Reader) Read() (ledger.Record, int, error) {
	row, err := r.cr.Read()
	if err == io.EOF {
		return ledger.Record{}, r.n, io.EOF
	}
	n := r.n
	r.n++
	if err != nil {
		return ledger.Record{}, n, err
	}
	return ledger.Record{
		Type:   r.field(row, "type"),
		Client: r.field(row, "client"),
		Tx:     r.field(row, "tx"),
		Amount: r.field(row, "amount"),
	}, n, nil
}

func (r *Reader) field(row []string, name string) string {
	i, ok := r.col[name]
	if !ok || i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}

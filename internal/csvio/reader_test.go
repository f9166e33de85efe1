package csvio

import (
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/punchamoorthee/payflow/internal/ledger"
)

func TestReaderStreamsRecords(t *testing.T) {
	input := strings.Join([]string{
		"type, client, tx, amount",
		"# comments are skipped entirely",
		"deposit, 1, 1, 1.0",
		"withdrawal, 1, 2, 0.5",
		"dispute, 1, 1",
		"resolve, 1, 1,",
	}, "\n") + "\n"

	r, err := NewReader(strings.NewReader(input))
	require.NoError(t, err)

	want := []ledger.Record{
		{Type: "deposit", Client: "1", Tx: "1", Amount: "1.0"},
		{Type: "withdrawal", Client: "1", Tx: "2", Amount: "0.5"},
		{Type: "dispute", Client: "1", Tx: "1", Amount: ""},
		{Type: "resolve", Client: "1", Tx: "1", Amount: ""},
	}
	for i, w := range want {
		rec, n, err := r.Read()
		require.NoError(t, err)
		assert.Equal(t, i, n)
		assert.Equal(t, w, rec)
	}

	_, _, err = r.Read()
	assert.ErrorIs(t, err, io.EOF)
}

// header columns may come in any order and any casing
func TestReaderHeaderMapping(t *testing.T) {
	input := "Amount,TX,Client,Type\n2.0,7,3,deposit\n"
	r, err := NewReader(strings.NewReader(input))
	require.NoError(t, err)

	rec, _, err := r.Read()
	require.NoError(t, err)
	assert.Equal(t, ledger.Record{Type: "deposit", Client: "3", Tx: "7", Amount: "2.0"}, rec)
}

// the amount column may be missing from the header entirely
func TestReaderNoAmountColumn(t *testing.T) {
	input := "type,client,tx\ndispute,1,9\n"
	r, err := NewReader(strings.NewReader(input))
	require.NoError(t, err)

	rec, _, err := r.Read()
	require.NoError(t, err)
	assert.Equal(t, "", rec.Amount)
	assert.Equal(t, "9", rec.Tx)
}

func TestReaderRejectsBadHeader(t *testing.T) {
	_, err := NewReader(strings.NewReader("type,client,amount\n"))
	assert.ErrorContains(t, err, `"tx"`)

	_, err = NewReader(strings.NewReader(""))
	assert.Error(t, err)
}

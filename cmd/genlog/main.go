// Command genlog emits a random but plausible transaction log as CSV, for
// fixtures and manual testing. A fixed seed makes runs reproducible.
package main

import (
	"encoding/csv"
	"flag"
	"fmt"
	"log"
	"math/rand"
	"os"
	"strconv"
)

var (
	rounds      int
	clients     int
	disputeRate float64
	seed        int64
)

func init() {
	flag.IntVar(&rounds, "rounds", 1000, "Number of generation rounds (a dispute round may emit two records)")
	flag.IntVar(&clients, "clients", 50, "Number of distinct clients")
	flag.Float64Var(&disputeRate, "dispute-rate", 0.05, "Fraction of rounds that dispute an open deposit")
	flag.Int64Var(&seed, "seed", 42, "RNG seed")
}

type depositRef struct {
	client uint16
	tx     uint32
}

func main() {
	flag.Parse()
	rng := rand.New(rand.NewSource(seed))

	w := csv.NewWriter(os.Stdout)
	defer w.Flush()
	write(w, []string{"type", "client", "tx", "amount"})

	nextTx := uint32(1)
	var open []depositRef // deposits still eligible for dispute
	for i := 0; i < rounds; i++ {
		client := uint16(rng.Intn(clients) + 1)
		switch {
		case len(open) > 0 && rng.Float64() < disputeRate:
			j := rng.Intn(len(open))
			d := open[j]
			emit(w, "dispute", d.client, d.tx, "")
			// a third each stay open, get resolved, or get charged back
			switch rng.Intn(3) {
			case 0:
				emit(w, "resolve", d.client, d.tx, "")
			case 1:
				emit(w, "chargeback", d.client, d.tx, "")
				open = append(open[:j], open[j+1:]...)
			}
		case rng.Float64() < 0.3:
			emit(w, "withdrawal", client, nextTx, amount(rng))
			nextTx++
		default:
			emit(w, "deposit", client, nextTx, amount(rng))
			open = append(open, depositRef{client: client, tx: nextTx})
			nextTx++
		}
	}
}

func amount(rng *rand.Rand) string {
	return fmt.Sprintf("%d.%04d", rng.Intn(500)+1, rng.Intn(10000))
}

func emit(w *csv.Writer, kind string, client uint16, tx uint32, amount string) {
	row := []string{kind, strconv.FormatUint(uint64(client), 10), strconv.FormatUint(uint64(tx), 10)}
	if amount != "" {
		row = append(row, amount)
	}
	write(w, row)
}

func write(w *csv.Writer, row []string) {
	if err := w.Write(row); err != nil {
		log.Fatal(err)
	}
}

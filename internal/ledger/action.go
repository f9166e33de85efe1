package ledger

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/punchamoorthee/payflow/internal/money"
)

// Record is one untyped row of the transaction log, before validation. An
// empty Amount means the field was absent.
type Record struct {
	Type   string
	Client string
	Tx     string
	Amount string
}

// Action is one validated transaction-log entry. The set of implementations
// is closed: Deposit, Withdrawal, Dispute, Resolve and Chargeback.
type Action interface {
	apply(l *Ledger) error
}

// Deposit credits funds to a client's account.
type Deposit struct {
	Client ClientID
	Tx     TransactionID
	Amount money.Amount
}

// Withdrawal debits funds from a client's account.
type Withdrawal struct {
	Client ClientID
	Tx     TransactionID
	Amount money.Amount
}

// Dispute contests a prior deposit, freezing its amount.
type Dispute struct {
	Tx TransactionID
}

// Resolve reverses a dispute, releasing the frozen funds back to available.
type Resolve struct {
	Tx TransactionID
}

// Chargeback finalizes a dispute against the client, removing the held
// funds and locking the account.
type Chargeback struct {
	Tx TransactionID
}

// ParseRecord validates one raw record and builds the corresponding Action.
// Validation is per record and never consults ledger state: the type tag
// must be one of the five known kinds (case-insensitive), deposits and
// withdrawals must carry a valid amount, dispute-family records must not
// carry one, and both ids must be plain unsigned integers in range.
func ParseRecord(rec Record) (Action, error) {
	kind := strings.ToLower(strings.TrimSpace(rec.Type))
	switch kind {
	case "deposit", "withdrawal", "dispute", "resolve", "chargeback":
	default:
		return nil, fmt.Errorf("unknown transaction type %q", rec.Type)
	}

	client, err := strconv.ParseUint(strings.TrimSpace(rec.Client), 10, 16)
	if err != nil {
		return nil, fmt.Errorf("invalid client id %q", rec.Client)
	}
	tx, err := strconv.ParseUint(strings.TrimSpace(rec.Tx), 10, 32)
	if err != nil {
		return nil, fmt.Errorf("invalid transaction id %q", rec.Tx)
	}

	switch kind {
	case "deposit", "withdrawal":
		// amount is allowed to be zero, but not missing
		if rec.Amount == "" {
			return nil, fmt.Errorf("missing amount for %s", kind)
		}
		amount, err := money.ParseAmount(rec.Amount)
		if err != nil {
			return nil, err
		}
		if kind == "deposit" {
			return Deposit{Client: ClientID(client), Tx: TransactionID(tx), Amount: amount}, nil
		}
		return Withdrawal{Client: ClientID(client), Tx: TransactionID(tx), Amount: amount}, nil
	case "dispute", "resolve", "chargeback":
		if rec.Amount != "" {
			return nil, fmt.Errorf("amount set for %s", kind)
		}
		switch kind {
		case "dispute":
			return Dispute{Tx: TransactionID(tx)}, nil
		case "resolve":
			return Resolve{Tx: TransactionID(tx)}, nil
		}
		return Chargeback{Tx: TransactionID(tx)}, nil
	}
	panic("unreachable")
}

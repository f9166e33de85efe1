// Package ledger implements the in-memory transaction-replay engine: the
// validated action types, the per-client account state machine, and the
// ledger that routes actions and resolves disputes against prior deposits.
package ledger

import (
	"sort"

	"github.com/punchamoorthee/payflow/internal/money"
)

// depositRecord is a deposit the ledger has accepted, kept so later
// disputes can be resolved against it. Withdrawals never create one and can
// therefore never be disputed.
type depositRecord struct {
	client   ClientID
	amount   money.Amount
	disputed bool
}

// ClientSnapshot is the externally visible state of one client.
type ClientSnapshot struct {
	Client    ClientID
	Available money.Balance
	Held      money.Balance
	Total     money.Balance
	Locked    bool
}

// Ledger replays a transaction log into per-client account state. It owns
// every Account outright: all mutation goes through Apply, one action at a
// time, and a failed action never rolls back previously committed ones.
type Ledger struct {
	clients map[ClientID]*Account
	// every transaction id ever accepted, successful or not. Ids are
	// promised to be globally unique, but a reused id would corrupt dispute
	// resolution, so the promise is enforced rather than assumed.
	seen     map[TransactionID]struct{}
	deposits map[TransactionID]*depositRecord
}

// New creates an empty ledger.
func New() *Ledger {
	return &Ledger{
		clients:  make(map[ClientID]*Account),
		seen:     make(map[TransactionID]struct{}),
		deposits: make(map[TransactionID]*depositRecord),
	}
}

// Apply routes one action to its handler. Failures are local to the action:
// the ledger stays consistent and later actions are unaffected.
func (l *Ledger) Apply(a Action) error { return a.apply(l) }

// Client returns the account for id, creating it zeroed on first reference.
func (l *Ledger) Client(id ClientID) *Account {
	acct, ok := l.clients[id]
	if !ok {
		acct = &Account{}
		l.clients[id] = acct
	}
	return acct
}

// Snapshot returns the state of every client ever observed, exactly once,
// ordered by client id.
func (l *Ledger) Snapshot() []ClientSnapshot {
	ids := make([]ClientID, 0, len(l.clients))
	for id := range l.clients {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	out := make([]ClientSnapshot, 0, len(ids))
	for _, id := range ids {
		acct := l.clients[id]
		out = append(out, ClientSnapshot{
			Client:    id,
			Available: acct.Available(),
			Held:      acct.Held(),
			Total:     acct.Total(),
			Locked:    acct.Locked(),
		})
	}
	return out
}

// claimTx marks id as seen. An id is consumed whether or not the action it
// arrived on succeeds financially, so resubmitting a failed transaction id
// still fails as a duplicate.
func (l *Ledger) claimTx(id TransactionID) error {
	if _, dup := l.seen[id]; dup {
		return ErrDuplicateTransaction
	}
	l.seen[id] = struct{}{}
	return nil
}

func (d Deposit) apply(l *Ledger) error {
	if err := l.claimTx(d.Tx); err != nil {
		return err
	}
	if err := l.Client(d.Client).deposit(d.Amount); err != nil {
		return err
	}
	l.deposits[d.Tx] = &depositRecord{client: d.Client, amount: d.Amount}
	return nil
}

func (w Withdrawal) apply(l *Ledger) error {
	if err := l.claimTx(w.Tx); err != nil {
		return err
	}
	return l.Client(w.Client).withdraw(w.Amount)
}

func (d Dispute) apply(l *Ledger) error {
	rec, ok := l.deposits[d.Tx]
	if !ok {
		return ErrDepositNotFound
	}
	if rec.disputed {
		// already disputed, nothing to do
		return nil
	}
	// the client recorded at deposit time is authoritative; any client id
	// carried alongside the dispute in the input is ignored
	if err := l.Client(rec.client).hold(rec.amount); err != nil {
		return err
	}
	rec.disputed = true
	return nil
}

func (r Resolve) apply(l *Ledger) error {
	rec, ok := l.deposits[r.Tx]
	if !ok {
		return ErrDepositNotFound
	}
	if !rec.disputed {
		return ErrNotDisputed
	}
	if err := l.Client(rec.client).resolve(rec.amount); err != nil {
		return err
	}
	// the record stays: a resolved deposit may be disputed again
	rec.disputed = false
	return nil
}

func (c Chargeback) apply(l *Ledger) error {
	rec, ok := l.deposits[c.Tx]
	if !ok {
		return ErrDepositNotFound
	}
	if !rec.disputed {
		return ErrNotDisputed
	}
	if err := l.Client(rec.client).chargeback(rec.amount); err != nil {
		return err
	}
	// removed so a charged-back deposit can never be disputed again
	delete(l.deposits, c.Tx)
	return nil
}

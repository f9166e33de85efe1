package ledger

import "github.com/punchamoorthee/payflow/internal/money"

// Account tracks one client's funds: what is available for withdrawal, what
// is held pending dispute resolution, and whether the account is locked.
// Accounts are created zeroed the first time any action references their
// client and are never deleted. Once locked, an account stays locked.
//
// Every operation is atomic: either the account state changes completely or
// not at all.
type Account struct {
	available money.Balance
	held      money.Balance
	locked    bool
}

// Available returns the funds the client may withdraw. Disputes can push
// this negative when the disputed funds were already withdrawn.
func (a *Account) Available() money.Balance { return a.available }

// Held returns the funds frozen pending dispute resolution.
func (a *Account) Held() money.Balance { return a.held }

// Total returns available + held. A range breach here is unreachable
// through the public operations, so it panics rather than reporting a wrong
// total.
func (a *Account) Total() money.Balance { return a.available.Add(a.held) }

// Locked reports whether the account has been locked by a chargeback. A
// locked account rejects withdrawals but still accepts deposits.
func (a *Account) Locked() bool { return a.locked }

func (a *Account) deposit(amount money.Amount) error {
	next, err := a.available.TryAdd(amount)
	if err != nil {
		return err
	}
	a.available = next
	return nil
}

func (a *Account) withdraw(amount money.Amount) error {
	if a.locked {
		return ErrAccountLocked
	}
	if a.available.Less(amount) {
		return ErrInsufficientFunds
	}
	// cannot fail, available >= amount was just checked
	next, err := a.available.TrySub(amount)
	if err != nil {
		return err
	}
	a.available = next
	return nil
}

// hold moves amount from available to held. Both sides are computed first
// and committed together, so a failure on either leaves the account
// untouched. available is deliberately allowed to go negative: a client can
// be disputed for more than they currently have available.
func (a *Account) hold(amount money.Amount) error {
	newHeld, err := a.held.TryAdd(amount)
	if err != nil {
		return err
	}
	newAvailable, err := a.available.TrySub(amount)
	if err != nil {
		return err
	}
	a.held = newHeld
	a.available = newAvailable
	return nil
}

// resolve releases amount from held back to available, with the same
// all-or-nothing commit as hold.
func (a *Account) resolve(amount money.Amount) error {
	if a.held.Less(amount) {
		return ErrInsufficientHeldFunds
	}
	newHeld, err := a.held.TrySub(amount)
	if err != nil {
		return err
	}
	newAvailable, err := a.available.TryAdd(amount)
	if err != nil {
		return err
	}
	a.held = newHeld
	a.available = newAvailable
	return nil
}

// chargeback removes amount from held and locks the account. The lock is
// applied first and survives a failure: a botched chargeback still marks
// the account as compromised. The removed funds do not return to available.
func (a *Account) chargeback(amount money.Amount) error {
	a.locked = true
	if a.held.Less(amount) {
		return ErrInsufficientHeldFunds
	}
	// cannot fail, held >= amount was just checked
	next, err := a.held.TrySub(amount)
	if err != nil {
		return err
	}
	a.held = next
	return nil
}

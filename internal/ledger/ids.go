package ledger

import "strconv"

// ClientID identifies a client. IDs are unique but need not be sequential.
// The dedicated type blocks accidental arithmetic on the raw integer.
type ClientID uint16

func (id ClientID) String() string { return strconv.FormatUint(uint64(id), 10) }

// TransactionID identifies a single deposit or withdrawal. IDs are globally
// unique across the whole log but need not be sequential. Dispute, resolve
// and chargeback actions reference the id of the deposit they contest, they
// carry no id of their own.
type TransactionID uint32

func (id TransactionID) String() string { return strconv.FormatUint(uint64(id), 10) }

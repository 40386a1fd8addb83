package tx

import "errors"

// Common errors shared by transaction producers and the queue.
var (
	ErrMissingRequiredField = errors.New("missing required field")
	ErrInvalidAccount       = errors.New("invalid account")
	ErrInvalidSequence      = errors.New("invalid sequence")
)

// Common carries the fields every transaction type shares, independent of
// the per-type body. The transaction queue and transaction intake only ever
// need these fields plus TxType(); they never inspect the type-specific
// payload, which lives in the type's own package.
type Common struct {
	Account            string
	TransactionType    string
	Fee                string
	Sequence           *uint32
	Flags              *uint32
	LastLedgerSequence *uint32
	TicketSequence     *uint32
	SigningPubKey      string
	TxnSignature       string

	// RawBytes is the original serialized frame, kept around for hashing
	// and for relay; nil if the transaction was constructed in memory.
	RawBytes []byte
}

func (c *Common) GetSequence() uint32 {
	if c.Sequence == nil {
		return 0
	}
	return *c.Sequence
}

func (c *Common) GetLastLedgerSequence() uint32 {
	if c.LastLedgerSequence == nil {
		return 0
	}
	return *c.LastLedgerSequence
}

func (c *Common) GetRawBytes() []byte { return c.RawBytes }

func (c *Common) SetRawBytes(b []byte) { c.RawBytes = b }

// Transaction is the minimal surface the transaction queue and the
// transaction-intake pipeline depend on. Concrete transaction bodies (a
// payment, a trust set, ...) embed Common and implement TxType/GetCommon;
// everything else about a transaction type is opaque to this package.
type Transaction interface {
	TxType() Type
	GetCommon() *Common
}

// SpendEstimator is implemented by transaction bodies that can report how
// much value they could move, beyond the fee, so the queue can bound worst
// case account drain. Not every type needs this; the queue treats an
// absent implementation as "no additional spend".
type SpendEstimator interface {
	PotentialSpend() (drops uint64, ok bool)
}

// Blocker is implemented by transaction types whose acceptance can
// invalidate every later transaction queued for the same account
// (SetRegularKey, SignerListSet, ...).
type Blocker interface {
	IsBlocker() bool
}

// Generic is a bare Transaction implementation used wherever a caller only
// needs the common envelope fields, e.g. the tests of packages txintake
// and master. Real transaction bodies (payment, trust set, ...) are
// expected to embed Common directly rather than wrap Generic.
type Generic struct {
	Common
	Type Type
}

func (g *Generic) TxType() Type       { return g.Type }
func (g *Generic) GetCommon() *Common { return &g.Common }


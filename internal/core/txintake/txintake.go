// Package txintake implements transaction intake: the single entry point
// through which a transaction received from a peer or a client enters the
// node, gets applied against the open ledger, and is classified for the
// caller and (if accepted) relayed onward.
//
// Grounded on original_source/src/NetworkOPs.cpp's processTransaction,
// findTransactionsBySource and findTransactionByID. Signature checking,
// the transaction store, the master ledger, and peer relay are external
// collaborators reached through the narrow interfaces below, not
// reimplemented here.
package txintake

import (
	"fmt"
	"time"

	"github.com/openledgerd/xrpld/internal/core/tx"
)

// Status is the outcome classification for a processed transaction.
type Status int

const (
	// StatusNew is the zero value: not yet classified.
	StatusNew Status = iota
	// StatusIncluded means the transaction was applied to the open ledger.
	StatusIncluded
	// StatusHeld means the transaction's sequence is ahead of the account;
	// it is queued for replay against a later ledger.
	StatusHeld
	// StatusObsolete means the transaction duplicates or conflicts with
	// one already past (a stale sequence or an expired LastLedgerSequence).
	StatusObsolete
	// StatusInvalid means the transaction failed signature checking or
	// every other classification the ledger apply step can produce.
	StatusInvalid
)

func (s Status) String() string {
	switch s {
	case StatusNew:
		return "New"
	case StatusIncluded:
		return "Included"
	case StatusHeld:
		return "Held"
	case StatusObsolete:
		return "Obsolete"
	case StatusInvalid:
		return "Invalid"
	default:
		return fmt.Sprintf("Status(%d)", int(s))
	}
}

// Candidate is a transaction under evaluation by intake: the parsed body
// plus the bookkeeping intake itself needs (identity, outcome, the ledger
// index acceptance is hypothesized at).
type Candidate struct {
	ID                  [32]byte
	Tx                  tx.Transaction
	Status              Status
	LedgerIndexPossible uint32
}

// RelayStatus mirrors the status field of the wire relay frame. Current is
// the only value the core ever sends; others exist only on the wire format
// the (external) serialization codec defines.
type RelayStatus int

const (
	RelayStatusCurrent RelayStatus = iota
)

// RelayFrame is the wire-format payload handed to the connection pool when
// a newly-included transaction is rebroadcast to peers.
type RelayFrame struct {
	RawTransaction      []byte
	Status              RelayStatus
	ReceiveTimestamp    uint64
	LedgerIndexPossible uint32
}

// Peer is the opaque identity of the originating connection, used only to
// exclude it from relay. Intake never calls into it.
type Peer interface{}

// TransactionStore is the external record of transactions this node has
// already seen, keyed by ID. Fetch with create=true both looks up and (per
// the original's semantics) marks the slot reserved for a new record.
type TransactionStore interface {
	Fetch(id [32]byte, create bool) (*Candidate, bool)
	Canonicalize(c *Candidate, commit bool)
}

// SignatureChecker verifies a candidate's signature against its parsed
// body. The cryptography itself lives outside the core; this interface is
// the whole of what intake depends on.
type SignatureChecker interface {
	CheckSignature(c *Candidate) bool
}

// MasterLedger is the subset of the ledger master the intake path needs:
// applying a transaction to the current open ledger, queuing one that
// can't yet apply, and reporting which ledger acceptance is hypothesized
// against.
type MasterLedger interface {
	DoTransaction(t tx.Transaction) (tx.Result, error)
	AddHeldTransaction(c *Candidate)
	CurrentLedgerSeq() uint32
}

// ConnectionPool relays an accepted transaction to every peer except the
// one it arrived from.
type ConnectionPool interface {
	RelayMessage(source Peer, frame RelayFrame)
}

// Intake wires the collaborators processTransaction needs. Now defaults to
// time.Now but is overridable so tests get a deterministic receive
// timestamp.
type Intake struct {
	Store     TransactionStore
	Signature SignatureChecker
	Ledger    MasterLedger
	Pool      ConnectionPool
	Now       func() time.Time
}

// New builds an Intake with the given collaborators and time.Now as the
// clock.
func New(store TransactionStore, sig SignatureChecker, ledger MasterLedger, pool ConnectionPool) *Intake {
	return &Intake{Store: store, Signature: sig, Ledger: ledger, Pool: pool, Now: time.Now}
}

// FailedIO is returned when the master ledger's apply step reports a fatal
// I/O-class failure (the original's terFAILED -> Fault(IO_ERROR)). It is
// the one outcome of Process that is a Go error rather than a Status on
// the returned candidate, matching §7's propagation policy: intake only
// signals true system faults through its error return.
type FailedIO struct {
	Cause error
}

func (e *FailedIO) Error() string { return fmt.Sprintf("txintake: ledger apply failed: %v", e.Cause) }
func (e *FailedIO) Unwrap() error { return e.Cause }

// Process runs §4.4's procedure: dedup against the transaction store,
// check the signature, apply to the open ledger, and classify the result
// into Included/Held/Obsolete/Invalid. source is excluded from relay on
// acceptance.
func (in *Intake) Process(c *Candidate, source Peer) (*Candidate, error) {
	if existing, ok := in.Store.Fetch(c.ID, true); ok {
		return existing, nil
	}

	if !in.Signature.CheckSignature(c) {
		c.Status = StatusInvalid
		return c, nil
	}

	result, err := in.Ledger.DoTransaction(c.Tx)
	if err != nil {
		return nil, &FailedIO{Cause: err}
	}

	switch {
	case result == tx.TerPRE_SEQ:
		c.Status = StatusHeld
		in.Store.Canonicalize(c, true)
		in.Ledger.AddHeldTransaction(c)
		return c, nil

	case result == tx.TefPAST_SEQ || result == tx.TefMAX_LEDGER:
		// PastSeq (duplicate sequence) or PastLedger (LastLedgerSequence
		// already passed): both collapse to the same "obsolete" outcome.
		c.Status = StatusObsolete
		return c, nil

	case result == tx.TesSUCCESS:
		c.Status = StatusIncluded
		c.LedgerIndexPossible = in.Ledger.CurrentLedgerSeq()
		in.Store.Canonicalize(c, true)

		frame := RelayFrame{
			RawTransaction:      c.Tx.GetCommon().GetRawBytes(),
			Status:              RelayStatusCurrent,
			ReceiveTimestamp:    uint64(in.now().Unix()),
			LedgerIndexPossible: c.LedgerIndexPossible,
		}
		in.Pool.RelayMessage(source, frame)
		return c, nil

	default:
		c.Status = StatusInvalid
		return c, nil
	}
}

func (in *Intake) now() time.Time {
	if in.Now != nil {
		return in.Now()
	}
	return time.Now()
}

// AccountTransactionSource is the ledger-state lookup findTransactionsBySource
// needs: the account's current sequence and, for a given sequence, whichever
// transaction that account sent at it.
type AccountTransactionSource interface {
	AccountSequence(account [20]byte) (uint32, bool)
	TransactionAt(account [20]byte, seq uint32) (*Candidate, bool)
}

// FindTransactionsBySource returns every transaction sourceAccount sent
// with a sequence in [minSeq, maxSeq], clamped to the account's current
// sequence.
//
// The original's condition here is `if (maxSeq > minSeq) return 0`, which
// reads as inverted relative to its evident intent: as written, it returns
// nothing whenever the range is non-empty, and only proceeds to iterate
// when maxSeq <= minSeq (a single-element or backwards range). Per the
// spec's open question, this is read as "iterate minSeq..=maxSeq
// inclusive" rather than silently carried over; the anomaly is flagged
// here, not corrected without comment.
func FindTransactionsBySource(src AccountTransactionSource, sourceAccount [20]byte, minSeq, maxSeq uint32) []*Candidate {
	seq, ok := src.AccountSequence(sourceAccount)
	if !ok {
		return nil
	}
	if minSeq > seq {
		return nil
	}
	if maxSeq > seq {
		maxSeq = seq
	}
	if maxSeq < minSeq {
		return nil
	}

	var out []*Candidate
	for i := minSeq; i <= maxSeq; i++ {
		if c, ok := src.TransactionAt(sourceAccount, i); ok {
			out = append(out, c)
		}
	}
	return out
}

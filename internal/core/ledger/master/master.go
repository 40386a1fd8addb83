// Package master wires the ledger, the ledger entry set, and the ledger
// cache together into the single collaborator both txintake and nom
// depend on: the current open ledger, the transaction apply step, and
// lookup of closed/validated ledgers by hash.
//
// Grounded on the deleted teacher ledger/service.Service (open/closed/
// validated ledger fields) and on manager.LedgerCache for hash/sequence
// lookup. The actual transaction-application logic (the rippled
// transactor set) is out of this spec's scope; DoTransaction here applies
// only the per-type amendment gate, the LastLedgerSequence expiry check and
// the account-sequence check every transactor shares, which is enough to
// drive §4.4's classification.
package master

import (
	"context"
	"crypto/sha256"
	"sync"
	"time"

	"github.com/openledgerd/xrpld/internal/core/XRPAmount"
	"github.com/openledgerd/xrpld/internal/core/amendment"
	"github.com/openledgerd/xrpld/internal/core/ledger"
	ledgerentries "github.com/openledgerd/xrpld/internal/core/ledger/entry/entries"
	"github.com/openledgerd/xrpld/internal/core/ledger/header"
	"github.com/openledgerd/xrpld/internal/core/ledger/keylet"
	"github.com/openledgerd/xrpld/internal/core/ledger/manager"
	"github.com/openledgerd/xrpld/internal/core/les"
	"github.com/openledgerd/xrpld/internal/core/nom"
	"github.com/openledgerd/xrpld/internal/core/shamap"
	"github.com/openledgerd/xrpld/internal/core/tx"
	"github.com/openledgerd/xrpld/internal/core/txintake"
	"github.com/openledgerd/xrpld/internal/storage/nodestore"
)

// accountKey stands in for the real base58 XRPL address decode, which
// lives in the address-codec package (an out-of-scope signature/address
// collaborator per the spec). It only needs to be stable and collision
// free enough for intake's own bookkeeping, not protocol-correct.
func accountKey(account string) [20]byte {
	sum := sha256.Sum256([]byte(account))
	var id [20]byte
	copy(id[:], sum[:20])
	return id
}

// Master owns the node's open, closed and validated ledgers and the
// scratch ledger entry set transactions are evaluated against.
type Master struct {
	mu sync.RWMutex

	cache *manager.LedgerCache
	store nodestore.Database

	open      *ledger.Ledger
	closed    *ledger.Ledger
	validated *ledger.Ledger
	les       *les.LedgerEntrySet

	rules *amendment.Rules

	byID           map[[32]byte]*txintake.Candidate
	held           map[[32]byte]*txintake.Candidate
	accountSeq     map[[20]byte]uint32
	txByAccountSeq map[[20]byte]map[uint32]*txintake.Candidate
}

// requiredFeature maps a transaction type to the amendment that must be
// enabled before it is accepted, matching rippled's per-type preflight
// amendment gate. Types absent from this map need no amendment.
var requiredFeature = map[tx.Type][32]byte{
	tx.TypeAMMCreate:          amendment.FeatureAMM,
	tx.TypeAMMDeposit:         amendment.FeatureAMM,
	tx.TypeAMMWithdraw:        amendment.FeatureAMM,
	tx.TypeAMMVote:            amendment.FeatureAMM,
	tx.TypeAMMBid:             amendment.FeatureAMM,
	tx.TypeAMMDelete:          amendment.FeatureAMM,
	tx.TypeAMMClawback:        amendment.FeatureAMMClawback,
	tx.TypeDIDSet:             amendment.FeatureDID,
	tx.TypeDIDDelete:          amendment.FeatureDID,
	tx.TypeOracleSet:          amendment.FeaturePriceOracle,
	tx.TypeOracleDelete:       amendment.FeaturePriceOracle,
	tx.TypeCredentialCreate:   amendment.FeatureCredentials,
	tx.TypeCredentialAccept:   amendment.FeatureCredentials,
	tx.TypeCredentialDelete:   amendment.FeatureCredentials,
	tx.TypeClawback:           amendment.FeatureClawback,
	tx.TypeXChainCreateBridge: amendment.FeatureXChainBridge,
	tx.TypeXChainCommit:       amendment.FeatureXChainBridge,
}

// New builds a Master around genesis, which becomes both the closed and
// the validated ledger, with a fresh open ledger on top of it.
func New(genesis *ledger.Ledger, cache *manager.LedgerCache) (*Master, error) {
	open, err := ledger.NewOpen(genesis, genesis.CloseTime())
	if err != nil {
		return nil, err
	}
	m := &Master{
		cache:          cache,
		open:           open,
		closed:         genesis,
		validated:      genesis,
		les:            les.New(),
		rules:          amendment.GenesisRules(),
		byID:           make(map[[32]byte]*txintake.Candidate),
		held:           make(map[[32]byte]*txintake.Candidate),
		accountSeq:     make(map[[20]byte]uint32),
		txByAccountSeq: make(map[[20]byte]map[uint32]*txintake.Candidate),
	}
	m.cache.Put(genesis)
	return m, nil
}

// Rules returns the amendment rule set DoTransaction gates acceptance
// against. Until an amendment table tracking validator votes is wired in,
// this stays at the genesis defaults for the life of the Master.
func (m *Master) Rules() *amendment.Rules {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.rules
}

// SetRules replaces the amendment rule set, e.g. once a new validated
// ledger's Amendments entry has been read.
func (m *Master) SetRules(rules *amendment.Rules) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.rules = rules
}

// SetStore attaches the node store each closed ledger's header is
// persisted to. Nil-safe: with no store attached, InstallLedger simply
// skips persistence.
func (m *Master) SetStore(store nodestore.Database) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.store = store
	m.persistLedger(m.closed)
}

// persistLedger writes l's header to the node store, if one is attached.
// Called with m.mu held.
func (m *Master) persistLedger(l *ledger.Ledger) {
	if m.store == nil {
		return
	}
	data := l.SerializeHeader()
	node := nodestore.NewNode(nodestore.NodeLedger, nodestore.Blob(data))
	node.LedgerSeq = l.Sequence()
	_ = m.store.Store(context.Background(), node)
}

// initialXRPDrops is the total XRP in existence at genesis (100 billion
// XRP, in drops), matching rippled's genesis ledger.
const initialXRPDrops uint64 = 100_000_000_000 * 1_000_000

// NewGenesisLedger builds the bare genesis ledger: sequence 1, empty state
// and transaction trees, the full XRP supply undistributed.
//
// The real genesis process (rippled's Ledger::create) also seeds a
// master account derived from a base58 passphrase; that decode lives in
// the address-codec package, an out-of-scope signature/address
// collaborator here, so this stops short of seeding an account. A
// deployment wiring in a real address codec can insert the master
// account into the returned ledger's state map before it is ever closed.
func NewGenesisLedger(closeTime time.Time) (*ledger.Ledger, error) {
	stateMap, err := shamap.New(shamap.TypeState)
	if err != nil {
		return nil, err
	}
	txMap, err := shamap.New(shamap.TypeTransaction)
	if err != nil {
		return nil, err
	}

	hdr := header.LedgerHeader{
		LedgerIndex: 1,
		CloseTime:   closeTime,
		Drops:       initialXRPDrops,
	}
	return ledger.FromGenesis(hdr, stateMap, txMap, XRPAmount.Fees{}), nil
}

// --- txintake.TransactionStore ---

// Fetch reports whether the transaction is already known, by ID, checking
// both committed and held transactions. create is accepted for parity
// with the original's Fetch(id, true) reservation semantics but this
// store has no separate reservation state to set.
func (m *Master) Fetch(id [32]byte, create bool) (*txintake.Candidate, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if c, ok := m.byID[id]; ok {
		return c, true
	}
	if c, ok := m.held[id]; ok {
		return c, true
	}
	return nil, false
}

// Canonicalize records c as this node's authoritative copy under its ID,
// and indexes it by (account, sequence) for FindTransactionsBySource.
func (m *Master) Canonicalize(c *txintake.Candidate, commit bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.byID[c.ID] = c

	acct := accountKey(c.Tx.GetCommon().Account)
	byAcct, ok := m.txByAccountSeq[acct]
	if !ok {
		byAcct = make(map[uint32]*txintake.Candidate)
		m.txByAccountSeq[acct] = byAcct
	}
	byAcct[c.Tx.GetCommon().GetSequence()] = c
}

// --- txintake.MasterLedger ---

// DoTransaction applies the account-sequence rule every rippled
// transactor shares: a transaction is accepted only when its sequence
// exactly matches the account's next expected sequence. Sequences behind
// are obsolete, sequences ahead are held, and an expired
// LastLedgerSequence is treated the same as a stale sequence.
func (m *Master) DoTransaction(t tx.Transaction) (tx.Result, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if feature, gated := requiredFeature[t.TxType()]; gated && !m.rules.Enabled(feature) {
		return tx.TemDISABLED, nil
	}

	common := t.GetCommon()
	acct := accountKey(common.Account)
	kl := keylet.Account(acct)

	if last := common.GetLastLedgerSequence(); last != 0 && last < m.open.Sequence() {
		return tx.TefMAX_LEDGER, nil
	}

	expected := m.expectedSequence(kl, acct)
	got := common.GetSequence()

	switch {
	case got < expected:
		return tx.TefPAST_SEQ, nil
	case got > expected:
		return tx.TerPRE_SEQ, nil
	}

	root := m.accountRoot(kl, acct)
	root.Sequence = got + 1
	if err := m.les.EntryModify(kl, root); err != nil {
		return 0, err
	}
	m.accountSeq[acct] = root.Sequence

	if common.RawBytes != nil {
		txID := sha256.Sum256(common.RawBytes)
		_ = m.open.AddTransaction(txID, common.RawBytes)
	}

	return tx.TesSUCCESS, nil
}

// expectedSequence returns the sequence doTransaction requires next for
// acct: the account root's current sequence if one exists in the entry
// set or the open ledger, or 1 for an account never seen before (rippled
// seeds new accounts at sequence 1).
func (m *Master) expectedSequence(kl keylet.Keylet, acct [20]byte) uint32 {
	if e, action := m.les.GetEntry(kl); action != les.ActionNone {
		if root, ok := e.(*ledgerentries.AccountRoot); ok {
			return root.Sequence
		}
	}
	if seq, ok := m.accountSeq[acct]; ok {
		return seq
	}
	return 1
}

func (m *Master) accountRoot(kl keylet.Keylet, acct [20]byte) *ledgerentries.AccountRoot {
	if e, action := m.les.GetEntry(kl); action != les.ActionNone {
		if root, ok := e.(*ledgerentries.AccountRoot); ok {
			return root
		}
	}
	return &ledgerentries.AccountRoot{Account: acct, Sequence: 1}
}

// AddHeldTransaction queues c for replay once its account catches up to
// its sequence.
func (m *Master) AddHeldTransaction(c *txintake.Candidate) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.held[c.ID] = c
}

// CurrentLedgerSeq reports the sequence the open ledger will become once
// closed -- the value processTransaction hypothesizes acceptance against.
func (m *Master) CurrentLedgerSeq() uint32 {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.open.Sequence()
}

// --- txintake.AccountTransactionSource ---

// AccountSequence reports acct's current sequence number, if the account
// has ever been touched.
func (m *Master) AccountSequence(acct [20]byte) (uint32, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	seq, ok := m.accountSeq[acct]
	return seq, ok
}

// TransactionAt returns whichever transaction acct sent at seq, if any.
func (m *Master) TransactionAt(acct [20]byte, seq uint32) (*txintake.Candidate, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	byAcct, ok := m.txByAccountSeq[acct]
	if !ok {
		return nil, false
	}
	c, ok := byAcct[seq]
	return c, ok
}

// --- nom.MasterLedger ---

// ClosedLedgerHash returns the hash of the most recently closed ledger.
func (m *Master) ClosedLedgerHash() nom.LedgerHash {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.closed.Hash()
}

// LedgerByHash reports whether the ledger at h is already held locally,
// consulting the cache before falling back to the closed ledger itself.
func (m *Master) LedgerByHash(h nom.LedgerHash) (nom.Ledger, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if h == m.closed.Hash() {
		return m.closed, true
	}
	return m.cache.GetByHash(h)
}

// InstallLedger installs l, acquired from the network, as the new closed
// ledger and opens a fresh ledger on top of it.
func (m *Master) InstallLedger(l nom.Ledger) {
	lg, ok := l.(*ledger.Ledger)
	if !ok {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closed = lg
	m.cache.Put(lg)
	m.persistLedger(lg)
	if open, err := ledger.NewOpen(lg, lg.CloseTime()); err == nil {
		m.open = open
		m.les = les.New()
	}
}

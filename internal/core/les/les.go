// Package les implements the ledger entry set: the scratch workspace that
// accumulates tentative changes to a ledger while a transaction is being
// evaluated. It enforces a grammar over per-entry actions and gives
// evaluation branches copy-on-write isolation via generation numbers.
//
// Grounded on rippled's LedgerEntrySet (see original_source/src/LedgerEntrySet.cpp):
// duplicate/setTo/swapWith/getEntry/hasEntry/entryCache/entryCreate/
// entryModify/entryDelete all mirror that file's operations and their
// transition table one for one.
package les

import (
	"fmt"

	"github.com/openledgerd/xrpld/internal/core/ledger/entry"
	"github.com/openledgerd/xrpld/internal/core/ledger/keylet"
)

// EntryKey identifies a ledger entry. The type and 256-bit index together
// are what the keylet package already produces for every entry kind, so
// LES reuses it directly rather than inventing its own key type.
type EntryKey = keylet.Keylet

// EntryAction tags the pending operation on an entry within an LES.
type EntryAction int

const (
	// ActionNone is returned for a key that has no row in the set.
	ActionNone EntryAction = iota
	// ActionCached means the entry was read for reference only.
	ActionCached
	// ActionCreate means the entry will be inserted by this evaluation.
	ActionCreate
	// ActionModify means the entry existed and will be updated.
	ActionModify
	// ActionDelete means the entry existed and will be removed.
	ActionDelete
)

func (a EntryAction) String() string {
	switch a {
	case ActionNone:
		return "None"
	case ActionCached:
		return "Cached"
	case ActionCreate:
		return "Create"
	case ActionModify:
		return "Modify"
	case ActionDelete:
		return "Delete"
	default:
		return fmt.Sprintf("EntryAction(%d)", int(a))
	}
}

// GrammarViolation is returned whenever an operation requests a transition
// the table in §4.1 marks as illegal. It is a programmer-bug class error:
// callers should treat it as a fault in the transaction engine above LES,
// not as recoverable input.
type GrammarViolation struct {
	Current   EntryAction
	Requested string
}

func (e *GrammarViolation) Error() string {
	return fmt.Sprintf("les: %s after %s", e.Requested, e.Current)
}

// row is one tracked entry: its current payload, the action pending on
// it, and the LES generation it was last written under.
type row struct {
	entry  entry.Entry
	action EntryAction
	seq    uint32
}

// LedgerEntrySet maps entry keys to pending actions against a ledger. It
// is owned by a single evaluator at a time; there is no internal locking.
type LedgerEntrySet struct {
	entries map[EntryKey]row
	seq     uint32
}

// New returns an empty LedgerEntrySet at generation 0.
func New() *LedgerEntrySet {
	return &LedgerEntrySet{entries: make(map[EntryKey]row)}
}

// Duplicate returns a new LES at the next generation, branching off this
// one. The parent remains fully usable. Rows are copied by value into the
// child's own map (so the child's later mutations can never reach the
// parent's map), but their entry payloads are left shared until a read
// or write actually touches a stale row -- see GetEntry.
func (l *LedgerEntrySet) Duplicate() *LedgerEntrySet {
	dup := make(map[EntryKey]row, len(l.entries))
	for k, v := range l.entries {
		dup[k] = v
	}
	return &LedgerEntrySet{entries: dup, seq: l.seq + 1}
}

// SetTo overwrites l with other's entries and generation.
func (l *LedgerEntrySet) SetTo(other *LedgerEntrySet) {
	entries := make(map[EntryKey]row, len(other.entries))
	for k, v := range other.entries {
		entries[k] = v
	}
	l.entries = entries
	l.seq = other.seq
}

// SwapWith exchanges entries and generation with other.
func (l *LedgerEntrySet) SwapWith(other *LedgerEntrySet) {
	l.entries, other.entries = other.entries, l.entries
	l.seq, other.seq = other.seq, l.seq
}

// Seq returns the LES's current generation number.
func (l *LedgerEntrySet) Seq() uint32 {
	return l.seq
}

// GetEntry looks up key and, if its stored row belongs to an older
// generation, clones the entry and promotes the row to the current
// generation before returning it. This copy-on-read is the only place
// isolation between a parent and its duplicates is enforced; every
// mutator below assumes its argument has already been isolated this way.
func (l *LedgerEntrySet) GetEntry(key EntryKey) (entry.Entry, EntryAction) {
	r, ok := l.entries[key]
	if !ok {
		return nil, ActionNone
	}
	if r.seq < l.seq {
		r.entry = r.entry.Clone()
		r.seq = l.seq
		l.entries[key] = r
	}
	return r.entry, r.action
}

// HasEntry returns the action stored for key, or ActionNone if absent.
// Unlike GetEntry it never performs copy-on-read promotion.
func (l *LedgerEntrySet) HasEntry(key EntryKey) EntryAction {
	r, ok := l.entries[key]
	if !ok {
		return ActionNone
	}
	return r.action
}

// EntryCache records e as read-only at key. Replaying a cache over an
// already-cached row simply replaces its payload; caching anything else
// is a grammar violation.
func (l *LedgerEntrySet) EntryCache(key EntryKey, e entry.Entry) error {
	r, ok := l.entries[key]
	if !ok {
		l.entries[key] = row{entry: e, action: ActionCached, seq: l.seq}
		return nil
	}
	if r.action != ActionCached {
		return &GrammarViolation{Current: r.action, Requested: "cache"}
	}
	l.entries[key] = row{entry: e, action: ActionCached, seq: l.seq}
	return nil
}

// EntryCreate records e as a new entry at key. A key can only transition
// into Create from absence; creating over any existing row is a grammar
// violation (including over another Create -- rippled's LedgerEntrySet.cpp
// refuses this too, even though it notes the constraint could in
// principle be relaxed).
func (l *LedgerEntrySet) EntryCreate(key EntryKey, e entry.Entry) error {
	r, ok := l.entries[key]
	if !ok {
		l.entries[key] = row{entry: e, action: ActionCreate, seq: l.seq}
		return nil
	}
	return &GrammarViolation{Current: r.action, Requested: "create"}
}

// EntryModify records e as an update to the entry at key. Modifying a
// Cached or already-Modified row turns (or keeps) it Modify; modifying a
// Create keeps it Create, since the committer only ever sees one creation
// carrying the latest payload. Modifying a Delete is a grammar violation.
func (l *LedgerEntrySet) EntryModify(key EntryKey, e entry.Entry) error {
	r, ok := l.entries[key]
	if !ok {
		l.entries[key] = row{entry: e, action: ActionModify, seq: l.seq}
		return nil
	}
	switch r.action {
	case ActionCached, ActionModify:
		l.entries[key] = row{entry: e, action: ActionModify, seq: l.seq}
		return nil
	case ActionCreate:
		l.entries[key] = row{entry: e, action: ActionCreate, seq: l.seq}
		return nil
	default:
		return &GrammarViolation{Current: r.action, Requested: "modify"}
	}
}

// EntryDelete records the removal of the entry at key. Deleting a Cached
// or Modified row turns it Delete, carrying e as the last-known state.
// Deleting a Create annihilates the row entirely -- from the committer's
// view the entry never existed. Deleting an already-Delete row is a
// no-op.
func (l *LedgerEntrySet) EntryDelete(key EntryKey, e entry.Entry) error {
	r, ok := l.entries[key]
	if !ok {
		l.entries[key] = row{entry: e, action: ActionDelete, seq: l.seq}
		return nil
	}
	switch r.action {
	case ActionCached, ActionModify:
		l.entries[key] = row{entry: e, action: ActionDelete, seq: l.seq}
		return nil
	case ActionCreate:
		delete(l.entries, key)
		return nil
	case ActionDelete:
		return nil
	default:
		return &GrammarViolation{Current: r.action, Requested: "delete"}
	}
}

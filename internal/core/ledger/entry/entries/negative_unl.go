package entry

import (
	"github.com/openledgerd/xrpld/internal/core/ledger/entry"
)

// DisabledValidator represents a validator that has been disabled
type DisabledValidator struct {
	PublicKey      [33]byte // Validator's public key
	FirstLedgerSeq uint32   // Ledger sequence when disabled
}

// NegativeUNL represents the Negative Unique Node List ledger entry
// This is a singleton object - only one exists in the ledger
// Reference: rippled/include/xrpl/protocol/detail/ledger_entries.macro ltNEGATIVE_UNL
type NegativeUNL struct {
	BaseEntry

	// Optional fields (all are optional for this singleton)
	DisabledValidators  []DisabledValidator // List of disabled validators
	ValidatorToDisable  *[33]byte           // Validator being voted to disable
	ValidatorToReEnable *[33]byte           // Validator being voted to re-enable
}

func (n *NegativeUNL) Type() entry.Type {
	return entry.TypeNegativeUNL
}

func (n *NegativeUNL) Validate() error {
	// NegativeUNL is a singleton with all optional fields
	return nil
}

// Clone returns an independent copy of the negative UNL entry.
func (n *NegativeUNL) Clone() entry.Entry {
	cp := *n
	if n.DisabledValidators != nil {
		cp.DisabledValidators = append([]DisabledValidator(nil), n.DisabledValidators...)
	}
	if n.ValidatorToDisable != nil {
		v := *n.ValidatorToDisable
		cp.ValidatorToDisable = &v
	}
	if n.ValidatorToReEnable != nil {
		v := *n.ValidatorToReEnable
		cp.ValidatorToReEnable = &v
	}
	return &cp
}

func (n *NegativeUNL) Hash() ([32]byte, error) {
	return n.BaseEntry.Hash(), nil
}

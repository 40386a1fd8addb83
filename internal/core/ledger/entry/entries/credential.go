package entry

import (
	"errors"

	"github.com/openledgerd/xrpld/internal/core/ledger/entry"
)

// Credential represents a verifiable credential ledger entry
// Reference: rippled/include/xrpl/protocol/detail/ledger_entries.macro ltCREDENTIAL
type Credential struct {
	BaseEntry

	// Required fields
	Subject        [20]byte // Account that is the subject of the credential
	Issuer         [20]byte // Account that issued the credential
	CredentialType []byte   // Type of credential (up to 64 bytes)
	IssuerNode     uint64   // Issuer directory node hint
	SubjectNode    uint64   // Subject directory node hint

	// Optional fields
	Expiration *uint32 // Unix timestamp when credential expires
	URI        *string // URI for additional credential information
}

func (c *Credential) Type() entry.Type {
	return entry.TypeCredential
}

func (c *Credential) Validate() error {
	if c.Subject == [20]byte{} {
		return errors.New("subject is required")
	}
	if c.Issuer == [20]byte{} {
		return errors.New("issuer is required")
	}
	if len(c.CredentialType) == 0 {
		return errors.New("credential type is required")
	}
	if len(c.CredentialType) > 64 {
		return errors.New("credential type cannot exceed 64 bytes")
	}
	return nil
}

// Clone returns an independent copy of the credential entry.
func (c *Credential) Clone() entry.Entry {
	cp := *c
	if c.CredentialType != nil {
		cp.CredentialType = append([]byte(nil), c.CredentialType...)
	}
	if c.Expiration != nil {
		v := *c.Expiration
		cp.Expiration = &v
	}
	if c.URI != nil {
		v := *c.URI
		cp.URI = &v
	}
	return &cp
}

func (c *Credential) Hash() ([32]byte, error) {
	hash := c.BaseEntry.Hash()
	for i := 0; i < 20; i++ {
		hash[i] ^= c.Subject[i]
		hash[i] ^= c.Issuer[i]
	}
	return hash, nil
}

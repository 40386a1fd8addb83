package master

import (
	"encoding/hex"

	"github.com/openledgerd/xrpld/internal/core/txintake"
	"github.com/openledgerd/xrpld/internal/crypto/txsig"
)

// SignatureAdapter satisfies txintake.SignatureChecker over the node's
// real signing algorithms (see package txsig), keyed off a candidate's
// common envelope fields.
type SignatureAdapter struct {
	checker *txsig.Checker
}

// NewSignatureAdapter builds an adapter around a fresh txsig.Checker.
func NewSignatureAdapter() *SignatureAdapter {
	return &SignatureAdapter{checker: txsig.New()}
}

// CheckSignature verifies c's signature fields, treating its raw frame's
// hex encoding as the signed message.
func (s *SignatureAdapter) CheckSignature(c *txintake.Candidate) bool {
	common := c.Tx.GetCommon()
	if common.SigningPubKey == "" || common.TxnSignature == "" {
		return false
	}
	message := hex.EncodeToString(common.RawBytes)
	return s.checker.Verify(message, common.SigningPubKey, common.TxnSignature)
}

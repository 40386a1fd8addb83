// Package txsig adapts the node's signature algorithms to
// txintake.SignatureChecker, the one collaborator interface intake uses
// to verify a candidate before applying it.
//
// Grounded on internal/crypto/algorithms/ed25519 and .../secp256k1, the
// two signing algorithms XRPL accounts use. The signing-hash construction
// that determines exactly which bytes get verified (excluding the
// signature field itself, per STObject serialization rules) is
// binary-codec territory and, like all transaction signature
// cryptography, out of this spec's scope; this checker verifies the
// signature hex fields against the candidate's raw frame directly.
package txsig

import (
	"encoding/hex"

	ed25519crypto "github.com/openledgerd/xrpld/internal/crypto/algorithms/ed25519"
	"github.com/openledgerd/xrpld/internal/crypto/algorithms/secp256k1"
)

// Checker verifies a candidate's signature, dispatching on the signing
// key's prefix byte: 0xED selects Ed25519, anything else is treated as a
// secp256k1 compressed public key, matching rippled's own convention.
type Checker struct {
	ed25519 *ed25519crypto.ED25519SignatureProvider
}

// New builds a Checker with both algorithms ready to dispatch to.
func New() *Checker {
	return &Checker{ed25519: ed25519crypto.NewED25519Provider()}
}

// Verify reports whether sig over message verifies under pubKeyHex,
// dispatching on the key's prefix byte.
func (c *Checker) Verify(message, pubKeyHex, sigHex string) bool {
	keyBytes, err := hex.DecodeString(pubKeyHex)
	if err != nil || len(keyBytes) == 0 {
		return false
	}

	if keyBytes[0] == 0xED {
		return c.ed25519.VerifySignature(message, pubKeyHex, sigHex)
	}
	return secp256k1.SECP256K1().Validate(message, pubKeyHex, sigHex)
}

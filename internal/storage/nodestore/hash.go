package nodestore

import "crypto/sha256"

// Hash256 is a SHA-256 content hash, used as the nodestore's key type.
type Hash256 [32]byte

// Blob is a serialized ledger object's raw bytes.
type Blob []byte

// Hash256FromData computes the content hash a Node's data must match.
func Hash256FromData(data []byte) Hash256 {
	return Hash256(sha256.Sum256(data))
}

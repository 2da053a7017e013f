package estatetest

import (
	"encoding/binary"

	estate "github.com/iov-one/estate"
	"github.com/iov-one/estate/crypto"
)

// NewKey returns a new random signer.
func NewKey() crypto.Signer {
	return crypto.GenPrivKeyEd25519()
}

// NewCondition returns the condition of a new random signer.
func NewCondition() estate.Condition {
	return NewKey().PublicKey().Condition()
}

// SequenceKey returns a signer derived from the given number. The same number
// always returns the same key, which keeps scenario tests reproducible.
func SequenceKey(n uint64) *crypto.PrivateKey {
	seed := make([]byte, 32)
	binary.BigEndian.PutUint64(seed[24:], n)
	return crypto.PrivKeyEd25519FromSeed(seed)
}

package ledgertest

import (
	"crypto/rand"
	"encoding/binary"

	"github.com/iov-one/ledger"
)

// RandAddress returns a random valid address. It never returns the zero
// address.
func RandAddress() ledger.Address {
	a := make(ledger.Address, ledger.AddressLength)
	if _, err := rand.Read(a); err != nil {
		panic(err)
	}
	// make sure it cannot be all zero
	a[0] |= 1
	return a
}

// SequenceAddress returns a deterministic address derived from n. The same
// n always maps to the same address and n must not be zero.
func SequenceAddress(n uint64) ledger.Address {
	if n == 0 {
		panic("zero is the no-owner sentinel")
	}
	a := make(ledger.Address, ledger.AddressLength)
	binary.BigEndian.PutUint64(a[ledger.AddressLength-8:], n)
	return a
}

// SequenceID returns a deterministic token ID derived from n.
func SequenceID(n uint64) ledger.TokenID {
	id := make(ledger.TokenID, ledger.TokenIDLength)
	binary.BigEndian.PutUint64(id[ledger.TokenIDLength-8:], n)
	return id
}

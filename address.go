package ledger

import (
	"bytes"
	"encoding/hex"
	"strings"

	"github.com/iov-one/ledger/errors"
)

// AddressLength is the length (in bytes) of every account address.
const AddressLength = 20

// Address represents an account. It is an opaque identity supplied by the
// host environment - this library never derives or verifies it.
//
// A nil, empty or all-zero address is the reserved "no owner" value. It marks
// the source of a mint and the destination of a burn and can never hold
// tokens itself.
type Address []byte

// Equals checks if two addresses are the same
func (a Address) Equals(b Address) bool {
	return bytes.Equal(a, b)
}

// IsZero returns true for the reserved "no owner" address: nil, empty, or
// consisting of zero bytes only.
func (a Address) IsZero() bool {
	for _, c := range a {
		if c != 0 {
			return false
		}
	}
	return true
}

// String returns a human readable hex representation.
func (a Address) String() string {
	if len(a) == 0 {
		return "(nil)"
	}
	return strings.ToUpper(hex.EncodeToString(a))
}

// Validate returns an error if the address is not suitable for a real
// account. The zero address is rejected as well - operations that allow it
// model "no owner" with a nil Address instead.
func (a Address) Validate() error {
	if len(a) == 0 {
		return errors.Wrap(errors.ErrEmpty, "address")
	}
	if len(a) != AddressLength {
		return errors.Wrapf(errors.ErrInput, "address length %d", len(a))
	}
	if a.IsZero() {
		return errors.Wrap(errors.ErrInput, "zero address")
	}
	return nil
}

// Clone returns an independent copy of the address.
func (a Address) Clone() Address {
	if a == nil {
		return nil
	}
	return append(Address{}, a...)
}

// ParseAddress accepts an address in a human readable (hex) format, as
// produced by Address.String.
func ParseAddress(enc string) (Address, error) {
	val, err := hex.DecodeString(enc)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrInput, "hex decode: %s", err)
	}
	a := Address(val)
	return a, a.Validate()
}

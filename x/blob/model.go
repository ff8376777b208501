package blob

import (
	"github.com/iov-one/ledger"
	"github.com/iov-one/ledger/errors"
)

// the attribute name length is bounded so a key cannot be abused as
// unmetered storage
const maxKeyLength = 128

var attrPrefix = []byte("bat:")

func attrKey(id ledger.TokenID, key []byte) []byte {
	k := make([]byte, 0, len(attrPrefix)+len(id)+len(key))
	k = append(k, attrPrefix...)
	k = append(k, id...)
	return append(k, key...)
}

func validateKey(key []byte) error {
	if len(key) == 0 {
		return errors.Wrap(errors.ErrEmpty, "attribute key")
	}
	if len(key) > maxKeyLength {
		return errors.Wrapf(errors.ErrInput, "attribute key length %d", len(key))
	}
	return nil
}

// Attribute returns the raw value stored for the token under the given
// key, or nil when not set.
func Attribute(db ledger.ReadOnlyKVStore, id ledger.TokenID, key []byte) ([]byte, error) {
	if err := id.Validate(); err != nil {
		return nil, errors.Wrap(err, "id")
	}
	if err := validateKey(key); err != nil {
		return nil, err
	}
	return db.Get(attrKey(id, key))
}

func setAttribute(db ledger.KVStore, id ledger.TokenID, key, value []byte) error {
	if len(value) == 0 {
		return db.Delete(attrKey(id, key))
	}
	return db.Set(attrKey(id, key), value)
}

package ledger

import (
	"bytes"
	"encoding/hex"
	"strings"

	"github.com/iov-one/ledger/errors"
)

// TokenIDLength is the length (in bytes) of every token identifier.
const TokenIDLength = 32

// TokenID identifies a unique asset in the unique-asset ledger, or a token
// category in the multi-category ledger. It is opaque, fixed-width data -
// this library never interprets its content.
type TokenID []byte

// Equals checks if two identifiers are the same
func (id TokenID) Equals(other TokenID) bool {
	return bytes.Equal(id, other)
}

// String returns a human readable hex representation.
func (id TokenID) String() string {
	if len(id) == 0 {
		return "(nil)"
	}
	return strings.ToUpper(hex.EncodeToString(id))
}

// Validate returns an error if this is not a usable token identifier.
func (id TokenID) Validate() error {
	if len(id) == 0 {
		return errors.Wrap(errors.ErrEmpty, "token id")
	}
	if len(id) != TokenIDLength {
		return errors.Wrapf(errors.ErrInput, "token id length %d", len(id))
	}
	return nil
}

// Item is a single element of a (possibly batched) ledger operation: an
// amount of one token category. The unique-asset ledger uses it with amount
// 1 when informing hooks and emitting events.
type Item struct {
	ID     TokenID
	Amount uint64
}

// Validate returns an error if the item cannot be part of an operation.
// A zero amount is legal: such items move no balance but still pass through
// transfer hooks.
func (i Item) Validate() error {
	return errors.Wrap(i.ID.Validate(), "id")
}

// ValidateItems validates every element of a batch. An empty batch is legal
// and results in no balance movement.
func ValidateItems(items []Item) error {
	var err error
	for _, it := range items {
		err = errors.Append(err, it.Validate())
	}
	return err
}

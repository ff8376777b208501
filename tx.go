package ledger

import (
	"reflect"

	"github.com/iov-one/ledger/errors"
)

// Msg is a request to mutate (or inspect) the ledger. Messages are routed to
// handlers by their path.
//
// Decoding inbound calls into messages is the concern of the host
// environment, which is why Msg has no serialization requirements here.
type Msg interface {
	// Path returns the routing path for this message
	Path() string

	// Validate makes sure the message is well formed, without access to
	// any state. Stateful checks belong to the handler.
	Validate() error
}

// Tx represents one externally triggered call into the ledger. It carries a
// single message.
type Tx interface {
	GetMsg() (Msg, error)
}

// LoadMsg extracts the message from the transaction, validates it and loads
// it into the destination. The destination must be a non-nil pointer to the
// expected message type.
func LoadMsg(tx Tx, destination Msg) error {
	msg, err := tx.GetMsg()
	if err != nil {
		return errors.Wrap(err, "get msg")
	}
	if msg == nil {
		return errors.Wrap(errors.ErrEmpty, "message")
	}
	if err := msg.Validate(); err != nil {
		return errors.Wrap(err, "validate msg")
	}

	src := reflect.ValueOf(msg)
	dst := reflect.ValueOf(destination)
	if dst.Kind() != reflect.Ptr || dst.IsNil() {
		return errors.Wrapf(errors.ErrType, "%T is not a valid message destination", destination)
	}
	if src.Type() != dst.Type() {
		return errors.Wrapf(errors.ErrType, "want %T, got %T", destination, msg)
	}
	dst.Elem().Set(src.Elem())
	return nil
}

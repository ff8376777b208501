package ledgertest

import (
	"github.com/iov-one/ledger"
)

// ReceiveCall records one recipient notification.
type ReceiveCall struct {
	Operator ledger.Address
	From     ledger.Address
	ID       ledger.TokenID
	Payload  []byte
}

// Receiver is a mock notification endpoint. Err rejects every delivery,
// Fn allows a test to run arbitrary code, including re-entrant reads,
// while the notification is in flight.
type Receiver struct {
	// Err, if set, rejects the delivery.
	Err error
	// Fn, if set, runs on every delivery after the call is recorded.
	Fn func(ctx ledger.Context, db ledger.KVStore) error

	// Calls collects all deliveries.
	Calls []ReceiveCall
}

var _ ledger.TokenReceiver = (*Receiver)(nil)

func (r *Receiver) OnTokenReceived(ctx ledger.Context, db ledger.KVStore, operator, from ledger.Address, id ledger.TokenID, payload []byte) error {
	r.Calls = append(r.Calls, ReceiveCall{Operator: operator, From: from, ID: id, Payload: payload})
	if r.Fn != nil {
		if err := r.Fn(ctx, db); err != nil {
			return err
		}
	}
	return r.Err
}

// Receivers is a mock registry mapping addresses to receivers. Addresses
// without an entry are plain accounts.
type Receivers struct {
	reg map[string]ledger.TokenReceiver
}

var _ ledger.ReceiverRegistry = (*Receivers)(nil)

// Register binds a receiver to an address, replacing any previous one.
func (rs *Receivers) Register(addr ledger.Address, r ledger.TokenReceiver) {
	if rs.reg == nil {
		rs.reg = make(map[string]ledger.TokenReceiver)
	}
	rs.reg[string(addr)] = r
}

func (rs *Receivers) Receiver(addr ledger.Address) ledger.TokenReceiver {
	return rs.reg[string(addr)]
}

package ledger

// TokenReceiver is implemented by accounts that want to be notified when a
// unique asset is transferred to them via the safe-transfer path.
//
// The callback runs after the ownership record has been moved, so any state
// it reads already reflects the transfer. This is the only point where
// control leaves the kernel mid-operation: treat the callee as untrusted.
// Returning an error rejects the transfer, which fails the whole operation
// with ErrCallFailed.
type TokenReceiver interface {
	OnTokenReceived(ctx Context, db KVStore, operator, from Address, id TokenID, payload []byte) error
}

// ReceiverRegistry resolves an address to its notification entry point. The
// host environment knows which accounts are contracts that implement the
// receiver protocol.
//
// Returning nil means the address is a plain account: plain accounts always
// accept. This distinction matters - collapsing "not a receiver" into
// "rejected" would break transfers to plain accounts, collapsing it the
// other way would silently accept transfers to broken contracts.
type ReceiverRegistry interface {
	Receiver(Address) TokenReceiver
}

// NoReceivers is a ReceiverRegistry without any registered receivers: every
// safe transfer is accepted as if sent to a plain account.
type NoReceivers struct{}

var _ ReceiverRegistry = NoReceivers{}

// Receiver always returns nil.
func (NoReceivers) Receiver(Address) TokenReceiver { return nil }

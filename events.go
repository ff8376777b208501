package ledger

// TransferEvent describes a completed movement of tokens. Mints carry a nil
// From, burns a nil To.
type TransferEvent struct {
	From  Address
	To    Address
	Items []Item
}

// ApprovalEvent describes a granted or updated single-spender approval. For
// the unique-asset ledger Amount is always 1. A nil Spender means the
// approval was cleared.
type ApprovalEvent struct {
	Owner   Address
	Spender Address
	ID      TokenID
	Amount  uint64
}

// OperatorEvent describes an owner-wide operator approval change.
type OperatorEvent struct {
	Owner    Address
	Operator Address
	Approved bool
}

// EventEmitter receives domain events after their operation succeeded.
// Emission is fire-and-forget: implementations have no way to fail the
// operation and must not mutate the ledger.
type EventEmitter interface {
	Transfer(TransferEvent)
	Approval(ApprovalEvent)
	Operator(OperatorEvent)
}

// NopEmitter drops all events. Use it when the host does not care.
type NopEmitter struct{}

var _ EventEmitter = NopEmitter{}

func (NopEmitter) Transfer(TransferEvent)  {}
func (NopEmitter) Approval(ApprovalEvent)  {}
func (NopEmitter) Operator(OperatorEvent)  {}

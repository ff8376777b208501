package ledgertest

import (
	"github.com/iov-one/ledger"
)

// Emitter is a mock event emitter recording every event.
type Emitter struct {
	Transfers []ledger.TransferEvent
	Approvals []ledger.ApprovalEvent
	Operators []ledger.OperatorEvent
}

var _ ledger.EventEmitter = (*Emitter)(nil)

func (e *Emitter) Transfer(ev ledger.TransferEvent) {
	e.Transfers = append(e.Transfers, ev)
}

func (e *Emitter) Approval(ev ledger.ApprovalEvent) {
	e.Approvals = append(e.Approvals, ev)
}

func (e *Emitter) Operator(ev ledger.OperatorEvent) {
	e.Operators = append(e.Operators, ev)
}

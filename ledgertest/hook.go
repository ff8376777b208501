package ledgertest

import (
	"github.com/iov-one/ledger"
)

// HookCall records one transfer hook invocation.
type HookCall struct {
	From  ledger.Address
	To    ledger.Address
	Items []ledger.Item
}

// Hook is a mock transfer hook recording every invocation. Configured
// errors let a test veto a transfer from either side of the operation.
type Hook struct {
	// BeforeErr, if set, is returned by BeforeTransfer.
	BeforeErr error
	// AfterErr, if set, is returned by AfterTransfer.
	AfterErr error

	// BeforeCalls collects all BeforeTransfer invocations.
	BeforeCalls []HookCall
	// AfterCalls collects all AfterTransfer invocations.
	AfterCalls []HookCall
}

var _ ledger.TransferHook = (*Hook)(nil)

func (h *Hook) BeforeTransfer(ctx ledger.Context, db ledger.KVStore, from, to ledger.Address, items []ledger.Item) error {
	h.BeforeCalls = append(h.BeforeCalls, HookCall{From: from, To: to, Items: items})
	return h.BeforeErr
}

func (h *Hook) AfterTransfer(ctx ledger.Context, db ledger.KVStore, from, to ledger.Address, items []ledger.Item) error {
	h.AfterCalls = append(h.AfterCalls, HookCall{From: from, To: to, Items: items})
	return h.AfterErr
}

package ledgertest

import (
	"github.com/iov-one/ledger"
)

// Handler is a mock implementation of the ledger.Handler interface,
// counting calls and returning configured results.
type Handler struct {
	checkCall   int
	deliverCall int

	// CheckResult is returned by Check when CheckErr is nil.
	CheckResult ledger.CheckResult
	// CheckErr, if set, fails every Check call.
	CheckErr error

	// DeliverResult is returned by Deliver when DeliverErr is nil.
	DeliverResult ledger.DeliverResult
	// DeliverErr, if set, fails every Deliver call.
	DeliverErr error
}

var _ ledger.Handler = (*Handler)(nil)

func (h *Handler) Check(ctx ledger.Context, db ledger.KVStore, tx ledger.Tx) (*ledger.CheckResult, error) {
	h.checkCall++
	if h.CheckErr != nil {
		return nil, h.CheckErr
	}
	res := h.CheckResult
	return &res, nil
}

func (h *Handler) Deliver(ctx ledger.Context, db ledger.KVStore, tx ledger.Tx) (*ledger.DeliverResult, error) {
	h.deliverCall++
	if h.DeliverErr != nil {
		return nil, h.DeliverErr
	}
	res := h.DeliverResult
	return &res, nil
}

// CheckCallCount returns the number of times Check was called.
func (h *Handler) CheckCallCount() int {
	return h.checkCall
}

// DeliverCallCount returns the number of times Deliver was called.
func (h *Handler) DeliverCallCount() int {
	return h.deliverCall
}

// CallCount returns the total number of calls on this handler.
func (h *Handler) CallCount() int {
	return h.checkCall + h.deliverCall
}

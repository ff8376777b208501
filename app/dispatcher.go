package app

import (
	"github.com/iov-one/ledger"
	"github.com/iov-one/ledger/errors"
)

// Dispatcher routes every transaction to its handler and wraps the
// execution in a cache so an operation applies completely or not at all.
// A handler may write half of its state and then fail, and no caller
// below this point has to care.
type Dispatcher struct {
	router *Router
}

// NewDispatcher returns a dispatcher delivering to the given router.
func NewDispatcher(router *Router) *Dispatcher {
	return &Dispatcher{router: router}
}

// CheckTx dry-runs the transaction. All writes are discarded, whether the
// handler succeeds or not.
func (d *Dispatcher) CheckTx(ctx ledger.Context, db ledger.CacheableKVStore, tx ledger.Tx) (res *ledger.CheckResult, err error) {
	defer errors.Recover(&err)

	msg, err := tx.GetMsg()
	if err != nil {
		return nil, errors.Wrap(err, "get msg")
	}

	cache := db.CacheWrap()
	defer cache.Discard()

	return d.router.Handler(msg.Path()).Check(ctx, cache, tx)
}

// DeliverTx executes the transaction. On success the writes are committed
// to the underlying store, on any failure, a handler panic included, they
// are dropped and the error is returned.
func (d *Dispatcher) DeliverTx(ctx ledger.Context, db ledger.CacheableKVStore, tx ledger.Tx) (res *ledger.DeliverResult, err error) {
	defer errors.Recover(&err)

	msg, err := tx.GetMsg()
	if err != nil {
		return nil, errors.Wrap(err, "get msg")
	}

	cache := db.CacheWrap()
	res, err = d.router.Handler(msg.Path()).Deliver(ctx, cache, tx)
	if err != nil {
		cache.Discard()
		ledger.GetLogger(ctx).With("path", msg.Path()).Error("delivery failed", "err", err)
		return nil, err
	}
	if err := cache.Write(); err != nil {
		return nil, errors.Wrap(err, "commit")
	}
	return res, nil
}

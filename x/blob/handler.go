package blob

import (
	"github.com/iov-one/ledger"
	"github.com/iov-one/ledger/errors"
	"github.com/iov-one/ledger/x"
)

const setAttributeCost int64 = 50

// RegisterRoutes attaches the attribute handler to the registry. The
// issuer is the only address allowed to write attributes and must not be
// nil.
func RegisterRoutes(r ledger.Registry, auth x.Authenticator, issuer ledger.Address) {
	r.Handle(pathSetAttribute, SetAttributeHandler{auth: auth, issuer: issuer})
}

// SetAttributeHandler processes attribute writes.
type SetAttributeHandler struct {
	auth   x.Authenticator
	issuer ledger.Address
}

var _ ledger.Handler = SetAttributeHandler{}

func (h SetAttributeHandler) Check(ctx ledger.Context, db ledger.KVStore, tx ledger.Tx) (*ledger.CheckResult, error) {
	if _, err := h.validate(ctx, tx); err != nil {
		return nil, err
	}
	return &ledger.CheckResult{GasAllocated: setAttributeCost}, nil
}

func (h SetAttributeHandler) Deliver(ctx ledger.Context, db ledger.KVStore, tx ledger.Tx) (*ledger.DeliverResult, error) {
	msg, err := h.validate(ctx, tx)
	if err != nil {
		return nil, err
	}
	if err := setAttribute(db, msg.ID, msg.Key, msg.Value); err != nil {
		return nil, err
	}
	return &ledger.DeliverResult{}, nil
}

func (h SetAttributeHandler) validate(ctx ledger.Context, tx ledger.Tx) (*SetAttributeMsg, error) {
	var msg SetAttributeMsg
	if err := ledger.LoadMsg(tx, &msg); err != nil {
		return nil, err
	}
	if h.issuer == nil || !h.auth.HasAddress(ctx, h.issuer) {
		return nil, errors.Wrap(errors.ErrNotAllowed, "only the issuer can set attributes")
	}
	return &msg, nil
}

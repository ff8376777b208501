package fungible

import (
	"github.com/iov-one/ledger"
	"github.com/iov-one/ledger/errors"
	"github.com/iov-one/ledger/x"
)

const (
	transferCost    int64 = 100
	perItemCost     int64 = 10
	approveCost     int64 = 50
	setOperatorCost int64 = 50
	mintCost        int64 = 150
	burnCost        int64 = 100
)

// RegisterRoutes attaches all multi-category handlers to the registry. The
// issuer, if not nil, is the only address allowed to mint. With a nil
// issuer any account can mint to itself.
func RegisterRoutes(r ledger.Registry, auth x.Authenticator, control Controller, emitter ledger.EventEmitter, issuer ledger.Address) {
	r.Handle(pathTransfer, TransferHandler{auth: auth, control: control, emitter: emitter})
	r.Handle(pathApprove, ApproveHandler{auth: auth, control: control, emitter: emitter})
	r.Handle(pathSetOperator, SetOperatorHandler{auth: auth, control: control, emitter: emitter})
	r.Handle(pathMint, MintHandler{auth: auth, control: control, emitter: emitter, issuer: issuer})
	r.Handle(pathBurn, BurnHandler{auth: auth, control: control, emitter: emitter})
}

// TransferHandler processes batched balance movements.
type TransferHandler struct {
	auth    x.Authenticator
	control Controller
	emitter ledger.EventEmitter
}

var _ ledger.Handler = TransferHandler{}

func (h TransferHandler) Check(ctx ledger.Context, db ledger.KVStore, tx ledger.Tx) (*ledger.CheckResult, error) {
	_, msg, err := h.validate(ctx, tx)
	if err != nil {
		return nil, err
	}
	return &ledger.CheckResult{
		GasAllocated: transferCost + int64(len(msg.Items))*perItemCost,
	}, nil
}

func (h TransferHandler) Deliver(ctx ledger.Context, db ledger.KVStore, tx ledger.Tx) (*ledger.DeliverResult, error) {
	caller, msg, err := h.validate(ctx, tx)
	if err != nil {
		return nil, err
	}
	if err := h.control.Move(ctx, db, caller, msg.From, msg.To, msg.Items); err != nil {
		return nil, err
	}

	h.emitter.Transfer(ledger.TransferEvent{
		From:  msg.From,
		To:    msg.To,
		Items: msg.Items,
	})
	return &ledger.DeliverResult{}, nil
}

func (h TransferHandler) validate(ctx ledger.Context, tx ledger.Tx) (ledger.Address, *TransferMsg, error) {
	var msg TransferMsg
	if err := ledger.LoadMsg(tx, &msg); err != nil {
		return nil, nil, err
	}
	caller := x.MainCaller(ctx, h.auth)
	if caller == nil {
		return nil, nil, errors.Wrap(errors.ErrNotAllowed, "no caller")
	}
	return caller, &msg, nil
}

// ApproveHandler processes allowance grants.
type ApproveHandler struct {
	auth    x.Authenticator
	control Controller
	emitter ledger.EventEmitter
}

var _ ledger.Handler = ApproveHandler{}

func (h ApproveHandler) Check(ctx ledger.Context, db ledger.KVStore, tx ledger.Tx) (*ledger.CheckResult, error) {
	if _, _, err := h.validate(ctx, tx); err != nil {
		return nil, err
	}
	return &ledger.CheckResult{GasAllocated: approveCost}, nil
}

func (h ApproveHandler) Deliver(ctx ledger.Context, db ledger.KVStore, tx ledger.Tx) (*ledger.DeliverResult, error) {
	caller, msg, err := h.validate(ctx, tx)
	if err != nil {
		return nil, err
	}
	if err := h.control.Approve(ctx, db, caller, msg.Spender, msg.ID, msg.Amount); err != nil {
		return nil, err
	}

	spender := msg.Spender
	if msg.Amount == 0 {
		spender = nil
	}
	h.emitter.Approval(ledger.ApprovalEvent{
		Owner:   caller,
		Spender: spender,
		ID:      msg.ID,
		Amount:  msg.Amount,
	})
	return &ledger.DeliverResult{}, nil
}

func (h ApproveHandler) validate(ctx ledger.Context, tx ledger.Tx) (ledger.Address, *ApproveMsg, error) {
	var msg ApproveMsg
	if err := ledger.LoadMsg(tx, &msg); err != nil {
		return nil, nil, err
	}
	caller := x.MainCaller(ctx, h.auth)
	if caller == nil {
		return nil, nil, errors.Wrap(errors.ErrNotAllowed, "no caller")
	}
	return caller, &msg, nil
}

// SetOperatorHandler processes account-wide operator approvals.
type SetOperatorHandler struct {
	auth    x.Authenticator
	control Controller
	emitter ledger.EventEmitter
}

var _ ledger.Handler = SetOperatorHandler{}

func (h SetOperatorHandler) Check(ctx ledger.Context, db ledger.KVStore, tx ledger.Tx) (*ledger.CheckResult, error) {
	if _, _, err := h.validate(ctx, tx); err != nil {
		return nil, err
	}
	return &ledger.CheckResult{GasAllocated: setOperatorCost}, nil
}

func (h SetOperatorHandler) Deliver(ctx ledger.Context, db ledger.KVStore, tx ledger.Tx) (*ledger.DeliverResult, error) {
	caller, msg, err := h.validate(ctx, tx)
	if err != nil {
		return nil, err
	}
	if err := h.control.SetOperator(ctx, db, caller, msg.Operator, msg.Approved); err != nil {
		return nil, err
	}

	h.emitter.Operator(ledger.OperatorEvent{
		Owner:    caller,
		Operator: msg.Operator,
		Approved: msg.Approved,
	})
	return &ledger.DeliverResult{}, nil
}

func (h SetOperatorHandler) validate(ctx ledger.Context, tx ledger.Tx) (ledger.Address, *SetOperatorMsg, error) {
	var msg SetOperatorMsg
	if err := ledger.LoadMsg(tx, &msg); err != nil {
		return nil, nil, err
	}
	caller := x.MainCaller(ctx, h.auth)
	if caller == nil {
		return nil, nil, errors.Wrap(errors.ErrNotAllowed, "no caller")
	}
	return caller, &msg, nil
}

// MintHandler processes supply creation. When configured with an issuer,
// minting is restricted to that address. Otherwise the recipient must have
// authorized the transaction.
type MintHandler struct {
	auth    x.Authenticator
	control Controller
	emitter ledger.EventEmitter
	issuer  ledger.Address
}

var _ ledger.Handler = MintHandler{}

func (h MintHandler) Check(ctx ledger.Context, db ledger.KVStore, tx ledger.Tx) (*ledger.CheckResult, error) {
	msg, err := h.validate(ctx, tx)
	if err != nil {
		return nil, err
	}
	return &ledger.CheckResult{
		GasAllocated: mintCost + int64(len(msg.Items))*perItemCost,
	}, nil
}

func (h MintHandler) Deliver(ctx ledger.Context, db ledger.KVStore, tx ledger.Tx) (*ledger.DeliverResult, error) {
	msg, err := h.validate(ctx, tx)
	if err != nil {
		return nil, err
	}
	if err := h.control.Mint(ctx, db, msg.To, msg.Items); err != nil {
		return nil, err
	}

	h.emitter.Transfer(ledger.TransferEvent{
		To:    msg.To,
		Items: msg.Items,
	})
	return &ledger.DeliverResult{}, nil
}

func (h MintHandler) validate(ctx ledger.Context, tx ledger.Tx) (*MintMsg, error) {
	var msg MintMsg
	if err := ledger.LoadMsg(tx, &msg); err != nil {
		return nil, err
	}
	if h.issuer != nil {
		if !h.auth.HasAddress(ctx, h.issuer) {
			return nil, errors.Wrap(errors.ErrNotAllowed, "only the issuer can mint")
		}
	} else if !h.auth.HasAddress(ctx, msg.To) {
		return nil, errors.Wrap(errors.ErrNotAllowed, "recipient did not authorize the mint")
	}
	return &msg, nil
}

// BurnHandler processes supply destruction.
type BurnHandler struct {
	auth    x.Authenticator
	control Controller
	emitter ledger.EventEmitter
}

var _ ledger.Handler = BurnHandler{}

func (h BurnHandler) Check(ctx ledger.Context, db ledger.KVStore, tx ledger.Tx) (*ledger.CheckResult, error) {
	if _, _, err := h.validate(ctx, tx); err != nil {
		return nil, err
	}
	return &ledger.CheckResult{GasAllocated: burnCost}, nil
}

func (h BurnHandler) Deliver(ctx ledger.Context, db ledger.KVStore, tx ledger.Tx) (*ledger.DeliverResult, error) {
	caller, msg, err := h.validate(ctx, tx)
	if err != nil {
		return nil, err
	}
	if err := h.control.Burn(ctx, db, caller, msg.From, msg.Items); err != nil {
		return nil, err
	}

	h.emitter.Transfer(ledger.TransferEvent{
		From:  msg.From,
		Items: msg.Items,
	})
	return &ledger.DeliverResult{}, nil
}

func (h BurnHandler) validate(ctx ledger.Context, tx ledger.Tx) (ledger.Address, *BurnMsg, error) {
	var msg BurnMsg
	if err := ledger.LoadMsg(tx, &msg); err != nil {
		return nil, nil, err
	}
	caller := x.MainCaller(ctx, h.auth)
	if caller == nil {
		return nil, nil, errors.Wrap(errors.ErrNotAllowed, "no caller")
	}
	return caller, &msg, nil
}

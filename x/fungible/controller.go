package fungible

import (
	"math"

	"github.com/iov-one/ledger"
	"github.com/iov-one/ledger/errors"
)

// Controller exposes the multi-category ledger to handlers and to other
// extensions.
type Controller interface {
	Balance(db ledger.ReadOnlyKVStore, owner ledger.Address, id ledger.TokenID) (uint64, error)
	Allowance(db ledger.ReadOnlyKVStore, owner, spender ledger.Address, id ledger.TokenID) (uint64, error)
	IsOperator(db ledger.ReadOnlyKVStore, owner, operator ledger.Address) (bool, error)
	Supply(db ledger.ReadOnlyKVStore, id ledger.TokenID) (uint64, error)

	Approve(ctx ledger.Context, db ledger.KVStore, caller, spender ledger.Address, id ledger.TokenID, amount uint64) error
	SetOperator(ctx ledger.Context, db ledger.KVStore, caller, operator ledger.Address, approved bool) error
	Move(ctx ledger.Context, db ledger.KVStore, caller, from, to ledger.Address, items []ledger.Item) error
	Mint(ctx ledger.Context, db ledger.KVStore, to ledger.Address, items []ledger.Item) error
	Burn(ctx ledger.Context, db ledger.KVStore, caller, from ledger.Address, items []ledger.Item) error
}

// BalanceController maintains the multi-category ledger state.
type BalanceController struct {
	bucket Bucket
	hook   ledger.TransferHook
}

var _ Controller = (*BalanceController)(nil)

// NewController returns a controller using the given transfer hook. Pass
// ledger.NoHook{} when no extension behavior is wanted.
func NewController(hook ledger.TransferHook) *BalanceController {
	return &BalanceController{
		bucket: NewBucket(),
		hook:   hook,
	}
}

// Balance returns the amount of the category held by the owner. Unknown
// owners and categories hold zero.
func (c *BalanceController) Balance(db ledger.ReadOnlyKVStore, owner ledger.Address, id ledger.TokenID) (uint64, error) {
	return c.bucket.Balance(db, owner, id)
}

// Allowance returns the amount the spender may still move out of the
// owner's balance of the category. A missing grant reads as zero.
func (c *BalanceController) Allowance(db ledger.ReadOnlyKVStore, owner, spender ledger.Address, id ledger.TokenID) (uint64, error) {
	amount, _, err := c.bucket.Allowance(db, owner, spender, id)
	return amount, err
}

// IsOperator returns whether the operator may act on all categories of the
// owner.
func (c *BalanceController) IsOperator(db ledger.ReadOnlyKVStore, owner, operator ledger.Address) (bool, error) {
	return c.bucket.IsOperator(db, owner, operator)
}

// Supply returns the total amount of the category in circulation.
func (c *BalanceController) Supply(db ledger.ReadOnlyKVStore, id ledger.TokenID) (uint64, error) {
	return c.bucket.Supply(db, id)
}

// Approve sets the spender's allowance for one category to the given
// absolute amount, overwriting any previous grant. Amount zero removes the
// grant.
func (c *BalanceController) Approve(ctx ledger.Context, db ledger.KVStore, caller, spender ledger.Address, id ledger.TokenID, amount uint64) error {
	if spender.IsZero() {
		return errors.Wrap(errors.ErrNotAllowed, "zero spender")
	}
	if err := spender.Validate(); err != nil {
		return errors.Wrap(err, "spender")
	}
	if spender.Equals(caller) {
		return errors.Wrap(errors.ErrNotAllowed, "self approval")
	}
	if err := id.Validate(); err != nil {
		return errors.Wrap(err, "id")
	}
	return c.bucket.setAllowance(db, caller, spender, id, amount)
}

// SetOperator grants or revokes the operator's right to act on all of the
// caller's categories. Setting the same value twice is a no-op success.
func (c *BalanceController) SetOperator(ctx ledger.Context, db ledger.KVStore, caller, operator ledger.Address, approved bool) error {
	if err := operator.Validate(); err != nil {
		return errors.Wrap(err, "operator")
	}
	if operator.Equals(caller) {
		return errors.Wrap(errors.ErrNotAllowed, "self approval")
	}
	return c.bucket.setOperator(db, caller, operator, approved)
}

// Move transfers a batch of category amounts from one account to another.
// The first failing item aborts the operation: run it inside a cache wrap
// to drop the partial writes of the preceding items.
//
// The caller spends its own balance freely, an operator spends any balance
// of the granting owner, anyone else needs a per-category allowance which
// is consumed by the spend. Zero-amount items pass all checks against the
// existing state and move nothing.
func (c *BalanceController) Move(ctx ledger.Context, db ledger.KVStore, caller, from, to ledger.Address, items []ledger.Item) error {
	if err := from.Validate(); err != nil {
		return errors.Wrap(err, "from")
	}
	if to.IsZero() {
		return errors.Wrap(errors.ErrNotAllowed, "transfer to the zero address")
	}
	if err := to.Validate(); err != nil {
		return errors.Wrap(err, "to")
	}
	if err := ledger.ValidateItems(items); err != nil {
		return err
	}

	// when not spending its own balance, the caller is either an
	// operator or pays per item from its allowance
	var viaAllowance bool
	if !caller.Equals(from) {
		ok, err := c.bucket.IsOperator(db, from, caller)
		if err != nil {
			return err
		}
		viaAllowance = !ok
	}

	if err := c.hook.BeforeTransfer(ctx, db, from, to, items); err != nil {
		return err
	}

	for _, it := range items {
		if viaAllowance {
			if err := c.spendAllowance(db, from, caller, it); err != nil {
				return err
			}
		}
		if err := c.move(db, from, to, it); err != nil {
			return err
		}
	}

	return c.hook.AfterTransfer(ctx, db, from, to, items)
}

// spendAllowance reduces the caller's grant by the item amount. A missing
// grant fails differently from an exhausted one so the sender can tell
// "never approved" from "approved too little".
func (c *BalanceController) spendAllowance(db ledger.KVStore, owner, spender ledger.Address, it ledger.Item) error {
	granted, exists, err := c.bucket.Allowance(db, owner, spender, it.ID)
	if err != nil {
		return err
	}
	if !exists {
		return errors.Wrapf(errors.ErrNotApproved, "category %s", it.ID)
	}
	if granted < it.Amount {
		return errors.Wrapf(errors.ErrInsufficientAllowance, "category %s: %d < %d", it.ID, granted, it.Amount)
	}
	return c.bucket.consumeAllowance(db, owner, spender, it.ID, granted-it.Amount)
}

// move shifts one item between two balances. The source is debited before
// the destination is read, so a transfer to self nets to zero instead of
// counting the amount twice.
func (c *BalanceController) move(db ledger.KVStore, from, to ledger.Address, it ledger.Item) error {
	src, err := c.bucket.Balance(db, from, it.ID)
	if err != nil {
		return err
	}
	if src < it.Amount {
		return errors.Wrapf(errors.ErrInsufficientBalance, "category %s: %d < %d", it.ID, src, it.Amount)
	}
	if err := c.bucket.setBalance(db, from, it.ID, src-it.Amount); err != nil {
		return err
	}

	dst, err := c.bucket.Balance(db, to, it.ID)
	if err != nil {
		return err
	}
	if dst > math.MaxUint64-it.Amount {
		return errors.Wrapf(errors.ErrOverflow, "category %s", it.ID)
	}
	return c.bucket.setBalance(db, to, it.ID, dst+it.Amount)
}

// Mint creates new amounts of the given categories on the recipient's
// balance, growing the supply accordingly.
func (c *BalanceController) Mint(ctx ledger.Context, db ledger.KVStore, to ledger.Address, items []ledger.Item) error {
	if to.IsZero() {
		return errors.Wrap(errors.ErrNotAllowed, "mint to the zero address")
	}
	if err := to.Validate(); err != nil {
		return errors.Wrap(err, "to")
	}
	if err := ledger.ValidateItems(items); err != nil {
		return err
	}

	if err := c.hook.BeforeTransfer(ctx, db, nil, to, items); err != nil {
		return err
	}

	for _, it := range items {
		supply, err := c.bucket.Supply(db, it.ID)
		if err != nil {
			return err
		}
		if supply > math.MaxUint64-it.Amount {
			return errors.Wrapf(errors.ErrOverflow, "supply of category %s", it.ID)
		}
		balance, err := c.bucket.Balance(db, to, it.ID)
		if err != nil {
			return err
		}
		if balance > math.MaxUint64-it.Amount {
			return errors.Wrapf(errors.ErrOverflow, "category %s", it.ID)
		}

		if err := c.bucket.setSupply(db, it.ID, supply+it.Amount); err != nil {
			return err
		}
		if err := c.bucket.setBalance(db, to, it.ID, balance+it.Amount); err != nil {
			return err
		}
	}

	return c.hook.AfterTransfer(ctx, db, nil, to, items)
}

// Burn destroys amounts of the given categories from the holder's balance,
// shrinking the supply accordingly. The caller must be the holder or one
// of its operators.
func (c *BalanceController) Burn(ctx ledger.Context, db ledger.KVStore, caller, from ledger.Address, items []ledger.Item) error {
	if err := from.Validate(); err != nil {
		return errors.Wrap(err, "from")
	}
	if err := ledger.ValidateItems(items); err != nil {
		return err
	}
	if !caller.Equals(from) {
		ok, err := c.bucket.IsOperator(db, from, caller)
		if err != nil {
			return err
		}
		if !ok {
			return errors.Wrapf(errors.ErrNotApproved, "caller %s", caller)
		}
	}

	if err := c.hook.BeforeTransfer(ctx, db, from, nil, items); err != nil {
		return err
	}

	for _, it := range items {
		balance, err := c.bucket.Balance(db, from, it.ID)
		if err != nil {
			return err
		}
		if balance < it.Amount {
			return errors.Wrapf(errors.ErrInsufficientBalance, "category %s: %d < %d", it.ID, balance, it.Amount)
		}
		supply, err := c.bucket.Supply(db, it.ID)
		if err != nil {
			return err
		}
		if supply < it.Amount {
			return errors.Wrapf(errors.ErrState, "supply of category %s below balance", it.ID)
		}

		if err := c.bucket.setBalance(db, from, it.ID, balance-it.Amount); err != nil {
			return err
		}
		if err := c.bucket.setSupply(db, it.ID, supply-it.Amount); err != nil {
			return err
		}
	}

	return c.hook.AfterTransfer(ctx, db, from, nil, items)
}

package unique

import (
	"github.com/iov-one/ledger"
	"github.com/iov-one/ledger/errors"
)

// Controller exposes the unique-asset ledger to handlers and to other
// extensions. All mutating operations receive the caller identity
// explicitly and authorize against it.
type Controller interface {
	OwnerOf(db ledger.ReadOnlyKVStore, id ledger.TokenID) (ledger.Address, error)
	Approved(db ledger.ReadOnlyKVStore, id ledger.TokenID) (ledger.Address, error)
	IsOperator(db ledger.ReadOnlyKVStore, owner, operator ledger.Address) (bool, error)
	Count(db ledger.ReadOnlyKVStore, owner ledger.Address) (uint64, error)
	TotalCount(db ledger.ReadOnlyKVStore) (uint64, error)
	TokensOf(db ledger.ReadOnlyKVStore, owner ledger.Address) ([]ledger.TokenID, error)

	Approve(ctx ledger.Context, db ledger.KVStore, caller, spender ledger.Address, id ledger.TokenID) error
	SetOperator(ctx ledger.Context, db ledger.KVStore, caller, operator ledger.Address, approved bool) error
	Transfer(ctx ledger.Context, db ledger.KVStore, caller, from, to ledger.Address, id ledger.TokenID) error
	SafeTransfer(ctx ledger.Context, db ledger.KVStore, caller, from, to ledger.Address, id ledger.TokenID, payload []byte) error
	Mint(ctx ledger.Context, db ledger.KVStore, to ledger.Address, id ledger.TokenID) error
	Burn(ctx ledger.Context, db ledger.KVStore, caller, from ledger.Address, id ledger.TokenID) error
}

// TokenController maintains the unique-asset ledger state.
type TokenController struct {
	bucket    Bucket
	hook      ledger.TransferHook
	receivers ledger.ReceiverRegistry
}

var _ Controller = (*TokenController)(nil)

// NewController returns a controller using the given transfer hook and
// receiver registry. Pass ledger.NoHook{} and ledger.NoReceivers{} when no
// extension behavior is wanted.
func NewController(hook ledger.TransferHook, receivers ledger.ReceiverRegistry) *TokenController {
	return &TokenController{
		bucket:    NewBucket(),
		hook:      hook,
		receivers: receivers,
	}
}

// OwnerOf returns the current owner of the asset, or ErrNotFound if the
// asset was never minted or already burned.
func (c *TokenController) OwnerOf(db ledger.ReadOnlyKVStore, id ledger.TokenID) (ledger.Address, error) {
	t, err := c.bucket.Token(db, id)
	if err != nil {
		return nil, err
	}
	return ledger.Address(t.Owner), nil
}

// Approved returns the single-spender approval of the asset, or nil if no
// approval is granted. Unknown assets fail with ErrNotFound.
func (c *TokenController) Approved(db ledger.ReadOnlyKVStore, id ledger.TokenID) (ledger.Address, error) {
	t, err := c.bucket.Token(db, id)
	if err != nil {
		return nil, err
	}
	if len(t.Approved) == 0 {
		return nil, nil
	}
	return ledger.Address(t.Approved), nil
}

// IsOperator returns whether the operator may act on all assets of the
// owner.
func (c *TokenController) IsOperator(db ledger.ReadOnlyKVStore, owner, operator ledger.Address) (bool, error) {
	return c.bucket.IsOperator(db, owner, operator)
}

// Count returns the number of assets the owner holds.
func (c *TokenController) Count(db ledger.ReadOnlyKVStore, owner ledger.Address) (uint64, error) {
	return c.bucket.Count(db, owner)
}

// TotalCount returns the number of live assets across all owners.
func (c *TokenController) TotalCount(db ledger.ReadOnlyKVStore) (uint64, error) {
	return c.bucket.TotalCount(db)
}

// TokensOf returns the identifiers of all assets the owner holds.
func (c *TokenController) TokensOf(db ledger.ReadOnlyKVStore, owner ledger.Address) ([]ledger.TokenID, error) {
	return c.bucket.TokensOf(db, owner)
}

// Approve grants the spender the right to transfer the given asset once.
// Only the owner or one of its operators may grant it. Any previous
// approval for this asset is overwritten.
func (c *TokenController) Approve(ctx ledger.Context, db ledger.KVStore, caller, spender ledger.Address, id ledger.TokenID) error {
	if spender.IsZero() {
		return errors.Wrap(errors.ErrNotAllowed, "zero spender")
	}
	if err := spender.Validate(); err != nil {
		return errors.Wrap(err, "spender")
	}
	if spender.Equals(caller) {
		return errors.Wrap(errors.ErrNotAllowed, "self approval")
	}

	t, err := c.bucket.Token(db, id)
	if err != nil {
		return err
	}
	owner := ledger.Address(t.Owner)
	if !owner.Equals(caller) {
		ok, err := c.bucket.IsOperator(db, owner, caller)
		if err != nil {
			return err
		}
		if !ok {
			return errors.Wrap(errors.ErrNotAllowed, "only the owner or an operator can approve")
		}
	}

	t.Approved = spender
	return c.bucket.saveToken(db, id, t)
}

// SetOperator grants or revokes the operator's right to act on all of the
// caller's assets. Setting the same value twice is a no-op success.
func (c *TokenController) SetOperator(ctx ledger.Context, db ledger.KVStore, caller, operator ledger.Address, approved bool) error {
	if err := operator.Validate(); err != nil {
		return errors.Wrap(err, "operator")
	}
	if operator.Equals(caller) {
		return errors.Wrap(errors.ErrNotAllowed, "self approval")
	}
	return c.bucket.setOperator(db, caller, operator, approved)
}

// Transfer moves the asset from one owner to another. The caller must be
// the owner, the approved spender of the asset, or an operator of the
// owner. The single-spender approval is cleared on success.
func (c *TokenController) Transfer(ctx ledger.Context, db ledger.KVStore, caller, from, to ledger.Address, id ledger.TokenID) error {
	return c.transfer(ctx, db, caller, from, to, id, nil, false)
}

// SafeTransfer behaves like Transfer and additionally notifies the
// recipient after the ownership has moved. If the recipient rejects the
// asset, or the notification call cannot complete, the operation fails
// with ErrCallFailed. Recipients without a notification entry point accept
// by definition.
func (c *TokenController) SafeTransfer(ctx ledger.Context, db ledger.KVStore, caller, from, to ledger.Address, id ledger.TokenID, payload []byte) error {
	return c.transfer(ctx, db, caller, from, to, id, payload, true)
}

func (c *TokenController) transfer(ctx ledger.Context, db ledger.KVStore, caller, from, to ledger.Address, id ledger.TokenID, payload []byte, notify bool) error {
	t, err := c.bucket.Token(db, id)
	if err != nil {
		return err
	}
	owner := ledger.Address(t.Owner)
	if !owner.Equals(from) {
		return errors.Wrapf(errors.ErrNotOwner, "owned by %s", owner)
	}
	if err := c.authorizeSpend(db, t, caller); err != nil {
		return err
	}
	if to.IsZero() {
		return errors.Wrap(errors.ErrNotAllowed, "transfer to the zero address")
	}
	if err := to.Validate(); err != nil {
		return errors.Wrap(err, "to")
	}

	items := []ledger.Item{{ID: id, Amount: 1}}
	if err := c.hook.BeforeTransfer(ctx, db, from, to, items); err != nil {
		return err
	}

	t.Owner = to
	t.Approved = nil
	if err := c.bucket.saveToken(db, id, t); err != nil {
		return err
	}
	if err := c.bucket.unindexToken(db, from, id); err != nil {
		return err
	}
	if err := c.bucket.indexToken(db, to, id); err != nil {
		return err
	}
	if err := c.bucket.shiftCount(db, from, false); err != nil {
		return err
	}
	if err := c.bucket.shiftCount(db, to, true); err != nil {
		return err
	}

	// The ownership is committed from the recipient's point of view:
	// control leaves the kernel here and any re-entrant read must
	// observe the moved asset.
	if notify {
		if r := c.receivers.Receiver(to); r != nil {
			if err := r.OnTokenReceived(ctx, db, caller, from, id, payload); err != nil {
				return errors.Wrapf(errors.ErrCallFailed, "recipient %s: %s", to, err)
			}
		}
	}

	return c.hook.AfterTransfer(ctx, db, from, to, items)
}

// authorizeSpend checks owner first, then the single-asset approval, then
// the operator approval. First match wins.
func (c *TokenController) authorizeSpend(db ledger.ReadOnlyKVStore, t *Token, caller ledger.Address) error {
	owner := ledger.Address(t.Owner)
	if owner.Equals(caller) {
		return nil
	}
	if len(t.Approved) != 0 && ledger.Address(t.Approved).Equals(caller) {
		return nil
	}
	if !owner.IsZero() {
		ok, err := c.bucket.IsOperator(db, owner, caller)
		if err != nil {
			return err
		}
		if ok {
			return nil
		}
	}
	return errors.Wrapf(errors.ErrNotApproved, "caller %s", caller)
}

// Mint creates the asset and assigns it to the given owner.
func (c *TokenController) Mint(ctx ledger.Context, db ledger.KVStore, to ledger.Address, id ledger.TokenID) error {
	if to.IsZero() {
		return errors.Wrap(errors.ErrNotAllowed, "mint to the zero address")
	}
	if err := to.Validate(); err != nil {
		return errors.Wrap(err, "to")
	}
	if err := id.Validate(); err != nil {
		return errors.Wrap(err, "id")
	}

	switch exists, err := c.bucket.HasToken(db, id); {
	case err != nil:
		return err
	case exists:
		return errors.Wrapf(errors.ErrDuplicate, "token %s", id)
	}

	items := []ledger.Item{{ID: id, Amount: 1}}
	if err := c.hook.BeforeTransfer(ctx, db, nil, to, items); err != nil {
		return err
	}

	if err := c.bucket.saveToken(db, id, &Token{Owner: to}); err != nil {
		return err
	}
	if err := c.bucket.indexToken(db, to, id); err != nil {
		return err
	}
	if err := c.bucket.shiftCount(db, to, true); err != nil {
		return err
	}
	if err := c.bucket.shiftTotal(db, true); err != nil {
		return err
	}

	return c.hook.AfterTransfer(ctx, db, nil, to, items)
}

// Burn destroys the asset. The recorded owner must match from, and the
// caller must be that owner or one of its operators.
func (c *TokenController) Burn(ctx ledger.Context, db ledger.KVStore, caller, from ledger.Address, id ledger.TokenID) error {
	t, err := c.bucket.Token(db, id)
	if err != nil {
		return err
	}
	owner := ledger.Address(t.Owner)
	if !owner.Equals(from) {
		return errors.Wrapf(errors.ErrNotOwner, "owned by %s", owner)
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

	items := []ledger.Item{{ID: id, Amount: 1}}
	if err := c.hook.BeforeTransfer(ctx, db, from, nil, items); err != nil {
		return err
	}

	if err := c.bucket.deleteToken(db, id); err != nil {
		return err
	}
	if err := c.bucket.unindexToken(db, from, id); err != nil {
		return err
	}
	if err := c.bucket.shiftCount(db, from, false); err != nil {
		return err
	}
	if err := c.bucket.shiftTotal(db, false); err != nil {
		return err
	}

	return c.hook.AfterTransfer(ctx, db, from, nil, items)
}

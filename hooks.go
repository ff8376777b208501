package ledger

// TransferHook is the extension point invoked around every balance mutation
// (transfer, mint and burn, single or batched) of both ledger kernels.
//
// A nil from address means tokens are being created (mint), a nil to address
// means they are being destroyed (burn).
//
// BeforeTransfer runs before any state is touched; returning an error vetoes
// the operation with no mutation applied. AfterTransfer runs once the
// mutation (and, on the safe-transfer path, the recipient notification) is
// done; returning an error still fails the whole operation even though the
// kernel already mutated state - restoring consistency is then up to the
// atomic call boundary the operation runs under (see app.Dispatcher).
type TransferHook interface {
	BeforeTransfer(ctx Context, db KVStore, from, to Address, items []Item) error
	AfterTransfer(ctx Context, db KVStore, from, to Address, items []Item) error
}

// NoHook is the default TransferHook. It approves everything.
type NoHook struct{}

var _ TransferHook = NoHook{}

func (NoHook) BeforeTransfer(Context, KVStore, Address, Address, []Item) error {
	return nil
}

func (NoHook) AfterTransfer(Context, KVStore, Address, Address, []Item) error {
	return nil
}

// ChainHooks combines several hooks into one. Before and after callbacks run
// in registration order and the first failure short-circuits the rest.
func ChainHooks(hooks ...TransferHook) TransferHook {
	return multiHook(hooks)
}

type multiHook []TransferHook

var _ TransferHook = multiHook(nil)

func (m multiHook) BeforeTransfer(ctx Context, db KVStore, from, to Address, items []Item) error {
	for _, h := range m {
		if err := h.BeforeTransfer(ctx, db, from, to, items); err != nil {
			return err
		}
	}
	return nil
}

func (m multiHook) AfterTransfer(ctx Context, db KVStore, from, to Address, items []Item) error {
	for _, h := range m {
		if err := h.AfterTransfer(ctx, db, from, to, items); err != nil {
			return err
		}
	}
	return nil
}

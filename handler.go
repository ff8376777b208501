package ledger

// Handler is a core engine that can process a few specific messages. Every
// extension provides handlers for the messages it declares.
type Handler interface {
	Checker
	Deliverer
}

// Checker is a subset of Handler to verify the validity of an operation
// without applying it.
type Checker interface {
	Check(ctx Context, store KVStore, tx Tx) (*CheckResult, error)
}

// Deliverer is a subset of Handler to execute an operation.
type Deliverer interface {
	Deliver(ctx Context, store KVStore, tx Tx) (*DeliverResult, error)
}

// CheckResult captures the result of a successful dry-run.
type CheckResult struct {
	// GasAllocated is an estimation of the cost of this operation,
	// reported to the host environment. Zero means no estimation.
	GasAllocated int64
}

// DeliverResult captures any metadata of a successfully applied operation.
type DeliverResult struct {
	// Data is an extension specific response value, if any.
	Data []byte
	// Log is a human readable note on the execution, if any.
	Log string
}

// Registry is an interface to register your handler, the setup side of a
// router.
type Registry interface {
	Handle(path string, h Handler)
}

package unique

import (
	"github.com/iov-one/ledger"
	"github.com/iov-one/ledger/errors"
)

const (
	pathTransfer     = "unique/transfer"
	pathSafeTransfer = "unique/safe_transfer"
	pathApprove      = "unique/approve"
	pathSetOperator  = "unique/set_operator"
	pathMint         = "unique/mint"
	pathBurn         = "unique/burn"
)

var (
	_ ledger.Msg = (*TransferMsg)(nil)
	_ ledger.Msg = (*SafeTransferMsg)(nil)
	_ ledger.Msg = (*ApproveMsg)(nil)
	_ ledger.Msg = (*SetOperatorMsg)(nil)
	_ ledger.Msg = (*MintMsg)(nil)
	_ ledger.Msg = (*BurnMsg)(nil)
)

// TransferMsg moves a single asset between two owners.
type TransferMsg struct {
	From ledger.Address
	To   ledger.Address
	ID   ledger.TokenID
}

func (TransferMsg) Path() string {
	return pathTransfer
}

func (m TransferMsg) Validate() error {
	var errs error
	errs = errors.Append(errs, errors.Wrap(m.From.Validate(), "from"))
	errs = errors.Append(errs, validateDestination(m.To))
	errs = errors.Append(errs, errors.Wrap(m.ID.Validate(), "id"))
	return errs
}

// SafeTransferMsg moves a single asset and notifies the recipient. The
// payload is passed through to the recipient untouched and may be empty.
type SafeTransferMsg struct {
	From    ledger.Address
	To      ledger.Address
	ID      ledger.TokenID
	Payload []byte
}

func (SafeTransferMsg) Path() string {
	return pathSafeTransfer
}

func (m SafeTransferMsg) Validate() error {
	var errs error
	errs = errors.Append(errs, errors.Wrap(m.From.Validate(), "from"))
	errs = errors.Append(errs, validateDestination(m.To))
	errs = errors.Append(errs, errors.Wrap(m.ID.Validate(), "id"))
	return errs
}

// ApproveMsg grants the spender the right to transfer one asset.
type ApproveMsg struct {
	Spender ledger.Address
	ID      ledger.TokenID
}

func (ApproveMsg) Path() string {
	return pathApprove
}

func (m ApproveMsg) Validate() error {
	var errs error
	if m.Spender.IsZero() {
		errs = errors.Append(errs, errors.Wrap(errors.ErrNotAllowed, "zero spender"))
	} else {
		errs = errors.Append(errs, errors.Wrap(m.Spender.Validate(), "spender"))
	}
	errs = errors.Append(errs, errors.Wrap(m.ID.Validate(), "id"))
	return errs
}

// SetOperatorMsg grants or revokes an account-wide operator approval for
// the message signer.
type SetOperatorMsg struct {
	Operator ledger.Address
	Approved bool
}

func (SetOperatorMsg) Path() string {
	return pathSetOperator
}

func (m SetOperatorMsg) Validate() error {
	return errors.Wrap(m.Operator.Validate(), "operator")
}

// MintMsg creates a new asset owned by To.
type MintMsg struct {
	To ledger.Address
	ID ledger.TokenID
}

func (MintMsg) Path() string {
	return pathMint
}

func (m MintMsg) Validate() error {
	var errs error
	errs = errors.Append(errs, validateDestination(m.To))
	errs = errors.Append(errs, errors.Wrap(m.ID.Validate(), "id"))
	return errs
}

// BurnMsg destroys an asset held by From.
type BurnMsg struct {
	From ledger.Address
	ID   ledger.TokenID
}

func (BurnMsg) Path() string {
	return pathBurn
}

func (m BurnMsg) Validate() error {
	var errs error
	errs = errors.Append(errs, errors.Wrap(m.From.Validate(), "from"))
	errs = errors.Append(errs, errors.Wrap(m.ID.Validate(), "id"))
	return errs
}

// validateDestination rejects the zero address early so that a doomed
// transfer never reaches the state machine.
func validateDestination(to ledger.Address) error {
	if to.IsZero() {
		return errors.Wrap(errors.ErrNotAllowed, "zero destination")
	}
	return errors.Wrap(to.Validate(), "to")
}

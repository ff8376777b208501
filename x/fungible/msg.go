package fungible

import (
	"github.com/iov-one/ledger"
	"github.com/iov-one/ledger/errors"
)

const (
	pathTransfer    = "fungible/transfer"
	pathApprove     = "fungible/approve"
	pathSetOperator = "fungible/set_operator"
	pathMint        = "fungible/mint"
	pathBurn        = "fungible/burn"
)

var (
	_ ledger.Msg = (*TransferMsg)(nil)
	_ ledger.Msg = (*ApproveMsg)(nil)
	_ ledger.Msg = (*SetOperatorMsg)(nil)
	_ ledger.Msg = (*MintMsg)(nil)
	_ ledger.Msg = (*BurnMsg)(nil)
)

// TransferMsg moves a batch of category amounts between two accounts.
type TransferMsg struct {
	From  ledger.Address
	To    ledger.Address
	Items []ledger.Item
}

func (TransferMsg) Path() string {
	return pathTransfer
}

func (m TransferMsg) Validate() error {
	var errs error
	errs = errors.Append(errs, errors.Wrap(m.From.Validate(), "from"))
	errs = errors.Append(errs, validateDestination(m.To))
	errs = errors.Append(errs, ledger.ValidateItems(m.Items))
	return errs
}

// ApproveMsg sets the spender's allowance for one category to an absolute
// amount. Amount zero revokes the grant.
type ApproveMsg struct {
	Spender ledger.Address
	ID      ledger.TokenID
	Amount  uint64
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

// MintMsg creates new category amounts on the recipient's balance.
type MintMsg struct {
	To    ledger.Address
	Items []ledger.Item
}

func (MintMsg) Path() string {
	return pathMint
}

func (m MintMsg) Validate() error {
	var errs error
	errs = errors.Append(errs, validateDestination(m.To))
	errs = errors.Append(errs, ledger.ValidateItems(m.Items))
	return errs
}

// BurnMsg destroys category amounts held by From.
type BurnMsg struct {
	From  ledger.Address
	Items []ledger.Item
}

func (BurnMsg) Path() string {
	return pathBurn
}

func (m BurnMsg) Validate() error {
	var errs error
	errs = errors.Append(errs, errors.Wrap(m.From.Validate(), "from"))
	errs = errors.Append(errs, ledger.ValidateItems(m.Items))
	return errs
}

func validateDestination(to ledger.Address) error {
	if to.IsZero() {
		return errors.Wrap(errors.ErrNotAllowed, "zero destination")
	}
	return errors.Wrap(to.Validate(), "to")
}

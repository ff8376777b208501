package blob

import (
	"github.com/iov-one/ledger"
	"github.com/iov-one/ledger/errors"
)

const pathSetAttribute = "blob/set_attribute"

var _ ledger.Msg = (*SetAttributeMsg)(nil)

// SetAttributeMsg stores an attribute value for a token. An empty value
// removes the attribute.
type SetAttributeMsg struct {
	ID    ledger.TokenID
	Key   []byte
	Value []byte
}

func (SetAttributeMsg) Path() string {
	return pathSetAttribute
}

func (m SetAttributeMsg) Validate() error {
	var errs error
	errs = errors.Append(errs, errors.Wrap(m.ID.Validate(), "id"))
	errs = errors.Append(errs, validateKey(m.Key))
	return errs
}

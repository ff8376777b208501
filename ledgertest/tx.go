package ledgertest

import (
	"github.com/iov-one/ledger"
)

// Tx is a mock transaction carrying a single message.
type Tx struct {
	// Msg is returned by GetMsg unless Err is set.
	Msg ledger.Msg
	// Err, if set, is returned by GetMsg.
	Err error
}

var _ ledger.Tx = (*Tx)(nil)

func (tx *Tx) GetMsg() (ledger.Msg, error) {
	if tx.Err != nil {
		return nil, tx.Err
	}
	return tx.Msg, nil
}

// Msg is a mock message with a configurable path and validation result.
type Msg struct {
	// RoutePath is returned by Path.
	RoutePath string
	// Err is returned by Validate.
	Err error
}

var _ ledger.Msg = (*Msg)(nil)

func (m *Msg) Path() string {
	return m.RoutePath
}

func (m *Msg) Validate() error {
	return m.Err
}

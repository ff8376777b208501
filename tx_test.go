package ledger_test

import (
	"testing"

	"github.com/iov-one/ledger"
	"github.com/iov-one/ledger/errors"
	"github.com/iov-one/ledger/ledgertest"
)

func TestLoadMsg(t *testing.T) {
	tx := &ledgertest.Tx{Msg: &ledgertest.Msg{RoutePath: "test/one"}}

	var msg ledgertest.Msg
	if err := ledger.LoadMsg(tx, &msg); err != nil {
		t.Fatalf("unexpected error: %+v", err)
	}
	if msg.RoutePath != "test/one" {
		t.Fatalf("unexpected message content: %q", msg.RoutePath)
	}
}

func TestLoadMsgValidates(t *testing.T) {
	reason := errors.ErrHuman.New("broken")
	tx := &ledgertest.Tx{Msg: &ledgertest.Msg{Err: reason}}

	var msg ledgertest.Msg
	if err := ledger.LoadMsg(tx, &msg); !errors.ErrHuman.Is(err) {
		t.Fatalf("want the validation error, got %+v", err)
	}
}

func TestLoadMsgWrongDestination(t *testing.T) {
	tx := &ledgertest.Tx{Msg: &ledgertest.Msg{}}

	var wrong otherMsg
	if err := ledger.LoadMsg(tx, &wrong); !errors.ErrType.Is(err) {
		t.Fatalf("want a type error, got %+v", err)
	}
}

func TestLoadMsgNoMessage(t *testing.T) {
	var msg ledgertest.Msg

	tx := &ledgertest.Tx{Err: errors.ErrNotFound.New("gone")}
	if err := ledger.LoadMsg(tx, &msg); !errors.ErrNotFound.Is(err) {
		t.Fatalf("want the transaction error, got %+v", err)
	}

	tx = &ledgertest.Tx{}
	if err := ledger.LoadMsg(tx, &msg); !errors.ErrEmpty.Is(err) {
		t.Fatalf("want an empty error, got %+v", err)
	}
}

type otherMsg struct{}

func (otherMsg) Path() string    { return "test/other" }
func (otherMsg) Validate() error { return nil }

package errors

import (
	"fmt"
	"testing"
)

func TestRegisterDuplicateCodePanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("panic expected")
		}
	}()
	Register(2, "duplicate of ErrNotFound")
}

func TestIs(t *testing.T) {
	cases := map[string]struct {
		kind *Error
		err  error
		want bool
	}{
		"nil kind matches nil error": {
			kind: nil,
			err:  nil,
			want: true,
		},
		"root matches itself": {
			kind: ErrNotFound,
			err:  ErrNotFound,
			want: true,
		},
		"root matches its wrap": {
			kind: ErrNotFound,
			err:  Wrap(ErrNotFound, "gone"),
			want: true,
		},
		"root matches a deep wrap": {
			kind: ErrOverflow,
			err:  Wrap(Wrap(ErrOverflow, "counter"), "mint"),
			want: true,
		},
		"different root does not match": {
			kind: ErrNotFound,
			err:  Wrap(ErrNotOwner, "gone"),
			want: false,
		},
		"stdlib error does not match": {
			kind: ErrNotFound,
			err:  fmt.Errorf("not found"),
			want: false,
		},
		"root does not match nil": {
			kind: ErrNotFound,
			err:  nil,
			want: false,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			if got := tc.kind.Is(tc.err); got != tc.want {
				t.Fatalf("want %v, got %v", tc.want, got)
			}
		})
	}
}

func TestWrapNil(t *testing.T) {
	if err := Wrap(nil, "whatever"); err != nil {
		t.Fatalf("wrapping nil must return nil, got %+v", err)
	}
}

func TestWrapPreservesMessage(t *testing.T) {
	err := Wrap(ErrInsufficientBalance, "sending 5 atoms")
	const want = "sending 5 atoms: insufficient balance"
	if got := err.Error(); got != want {
		t.Fatalf("want %q, got %q", want, got)
	}
}

func TestCode(t *testing.T) {
	cases := map[string]struct {
		err  error
		want uint32
	}{
		"nil reports zero":            {err: nil, want: 0},
		"root reports its code":       {err: ErrNotFound, want: 2},
		"wrap keeps the root code":    {err: Wrap(ErrCallFailed, "receiver"), want: 10},
		"stdlib error is internal":    {err: fmt.Errorf("boom"), want: 1},
		"custom root keeps its code":  {err: Wrap(ErrCustom, "paused"), want: 11},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			if got := Code(tc.err); got != tc.want {
				t.Fatalf("want %d, got %d", tc.want, got)
			}
		})
	}
}

func TestAppend(t *testing.T) {
	if err := Append(nil, nil); err != nil {
		t.Fatalf("appending nils must give nil, got %+v", err)
	}

	single := Wrap(ErrEmpty, "address")
	if err := Append(nil, single); err != single {
		t.Fatalf("single error must be returned unwrapped, got %+v", err)
	}

	err := Append(
		Wrap(ErrEmpty, "address"),
		Wrap(ErrInput, "token id length 3"),
	)
	if err == nil {
		t.Fatal("two errors must not collapse to nil")
	}
	m, ok := err.(multiError)
	if !ok {
		t.Fatalf("want a multi error, got %T", err)
	}
	if !m.Contains(ErrEmpty) || !m.Contains(ErrInput) {
		t.Fatalf("combined error lost a member: %s", m)
	}
	if m.Contains(ErrOverflow) {
		t.Fatal("combined error matched a foreign kind")
	}
}

func TestRecover(t *testing.T) {
	var err error
	func() {
		defer Recover(&err)
		panic("exploded")
	}()
	if !ErrPanic.Is(err) {
		t.Fatalf("want ErrPanic, got %+v", err)
	}
}

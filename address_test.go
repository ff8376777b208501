package ledger

import (
	"strings"
	"testing"

	"github.com/iov-one/ledger/errors"
)

func TestAddressValidate(t *testing.T) {
	cases := map[string]struct {
		addr    Address
		wantErr *errors.Error
	}{
		"valid": {
			addr: Address(strings.Repeat("x", AddressLength)),
		},
		"nil": {
			addr:    nil,
			wantErr: errors.ErrEmpty,
		},
		"too short": {
			addr:    Address("abc"),
			wantErr: errors.ErrInput,
		},
		"too long": {
			addr:    Address(strings.Repeat("x", AddressLength+1)),
			wantErr: errors.ErrInput,
		},
		"all zero": {
			addr:    make(Address, AddressLength),
			wantErr: errors.ErrInput,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			err := tc.addr.Validate()
			if tc.wantErr == nil {
				if err != nil {
					t.Fatalf("unexpected error: %+v", err)
				}
				return
			}
			if !tc.wantErr.Is(err) {
				t.Fatalf("want %v, got %+v", tc.wantErr, err)
			}
		})
	}
}

func TestAddressIsZero(t *testing.T) {
	if !(Address(nil)).IsZero() {
		t.Error("nil must read as zero")
	}
	if !make(Address, AddressLength).IsZero() {
		t.Error("all zero bytes must read as zero")
	}
	addr := make(Address, AddressLength)
	addr[AddressLength-1] = 1
	if addr.IsZero() {
		t.Error("a set byte must not read as zero")
	}
}

func TestAddressEquals(t *testing.T) {
	a := Address(strings.Repeat("a", AddressLength))
	b := Address(strings.Repeat("b", AddressLength))

	if !a.Equals(a.Clone()) {
		t.Error("a clone must be equal")
	}
	if a.Equals(b) {
		t.Error("different addresses must not be equal")
	}
	if a.Equals(nil) {
		t.Error("nil must not be equal to a set address")
	}
}

func TestParseAddress(t *testing.T) {
	a := Address(strings.Repeat("\x01", AddressLength))

	got, err := ParseAddress(a.String())
	if err != nil {
		t.Fatalf("unexpected error: %+v", err)
	}
	if !got.Equals(a) {
		t.Fatalf("want %s, got %s", a, got)
	}

	if _, err := ParseAddress("not hex"); !errors.ErrInput.Is(err) {
		t.Fatalf("want an input error, got %+v", err)
	}
	if _, err := ParseAddress("ff"); !errors.ErrInput.Is(err) {
		t.Fatalf("want an input error, got %+v", err)
	}
}

func TestTokenIDValidate(t *testing.T) {
	if err := TokenID(strings.Repeat("x", TokenIDLength)).Validate(); err != nil {
		t.Fatalf("unexpected error: %+v", err)
	}
	if err := TokenID(nil).Validate(); !errors.ErrEmpty.Is(err) {
		t.Fatalf("want an empty error, got %+v", err)
	}
	if err := TokenID("short").Validate(); !errors.ErrInput.Is(err) {
		t.Fatalf("want an input error, got %+v", err)
	}
}

func TestValidateItems(t *testing.T) {
	good := TokenID(strings.Repeat("x", TokenIDLength))

	if err := ValidateItems(nil); err != nil {
		t.Fatalf("an empty batch is legal, got %+v", err)
	}
	if err := ValidateItems([]Item{{ID: good, Amount: 0}}); err != nil {
		t.Fatalf("a zero amount is legal, got %+v", err)
	}
	err := ValidateItems([]Item{
		{ID: good, Amount: 1},
		{ID: TokenID("short"), Amount: 1},
	})
	if !errors.ErrInput.Is(err) {
		t.Fatalf("want an input error, got %+v", err)
	}
}

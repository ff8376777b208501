package fungible

import (
	"context"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iov-one/ledger"
	"github.com/iov-one/ledger/errors"
	"github.com/iov-one/ledger/ledgertest"
	"github.com/iov-one/ledger/store"
)

func TestMintAndQuery(t *testing.T) {
	db := store.MemStore()
	ctx := context.Background()
	c := NewController(ledger.NoHook{})

	alice := ledgertest.SequenceAddress(1)
	gold := ledgertest.SequenceID(1)
	silver := ledgertest.SequenceID(2)

	require.NoError(t, c.Mint(ctx, db, alice, []ledger.Item{
		{ID: gold, Amount: 100},
		{ID: silver, Amount: 5},
	}))

	balance, err := c.Balance(db, alice, gold)
	require.NoError(t, err)
	assert.Equal(t, uint64(100), balance)

	supply, err := c.Supply(db, gold)
	require.NoError(t, err)
	assert.Equal(t, uint64(100), supply)

	supply, err = c.Supply(db, silver)
	require.NoError(t, err)
	assert.Equal(t, uint64(5), supply)

	// unknown owners and categories read as zero
	balance, err = c.Balance(db, ledgertest.SequenceAddress(9), gold)
	require.NoError(t, err)
	assert.Equal(t, uint64(0), balance)

	supply, err = c.Supply(db, ledgertest.SequenceID(9))
	require.NoError(t, err)
	assert.Equal(t, uint64(0), supply)
}

func TestMintOverflowGuards(t *testing.T) {
	db := store.MemStore()
	ctx := context.Background()
	c := NewController(ledger.NoHook{})

	alice := ledgertest.SequenceAddress(1)
	gold := ledgertest.SequenceID(1)

	require.NoError(t, c.Mint(ctx, db, alice, []ledger.Item{{ID: gold, Amount: math.MaxUint64}}))

	if err := c.Mint(ctx, db, alice, []ledger.Item{{ID: gold, Amount: 1}}); !errors.ErrOverflow.Is(err) {
		t.Fatalf("want an overflow error, got %+v", err)
	}
}

func TestMoveAuthorization(t *testing.T) {
	alice := ledgertest.SequenceAddress(1)
	bob := ledgertest.SequenceAddress(2)
	carl := ledgertest.SequenceAddress(3)
	gold := ledgertest.SequenceID(1)

	cases := map[string]struct {
		setup   func(ctx ledger.Context, db ledger.KVStore, c *BalanceController)
		caller  ledger.Address
		amount  uint64
		wantErr *errors.Error
	}{
		"own balance moves freely": {
			caller: alice,
			amount: 40,
		},
		"operator spends without an allowance": {
			setup: func(ctx ledger.Context, db ledger.KVStore, c *BalanceController) {
				require.NoError(t, c.SetOperator(ctx, db, alice, carl, true))
			},
			caller: carl,
			amount: 40,
		},
		"allowance covers the spend": {
			setup: func(ctx ledger.Context, db ledger.KVStore, c *BalanceController) {
				require.NoError(t, c.Approve(ctx, db, alice, carl, gold, 40))
			},
			caller: carl,
			amount: 40,
		},
		"missing allowance": {
			caller:  carl,
			amount:  40,
			wantErr: errors.ErrNotApproved,
		},
		"allowance too small": {
			setup: func(ctx ledger.Context, db ledger.KVStore, c *BalanceController) {
				require.NoError(t, c.Approve(ctx, db, alice, carl, gold, 39))
			},
			caller:  carl,
			amount:  40,
			wantErr: errors.ErrInsufficientAllowance,
		},
		"revoked allowance reads as missing": {
			setup: func(ctx ledger.Context, db ledger.KVStore, c *BalanceController) {
				require.NoError(t, c.Approve(ctx, db, alice, carl, gold, 40))
				require.NoError(t, c.Approve(ctx, db, alice, carl, gold, 0))
			},
			caller:  carl,
			amount:  40,
			wantErr: errors.ErrNotApproved,
		},
		"balance too small": {
			caller:  alice,
			amount:  101,
			wantErr: errors.ErrInsufficientBalance,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			db := store.MemStore()
			ctx := context.Background()
			c := NewController(ledger.NoHook{})
			require.NoError(t, c.Mint(ctx, db, alice, []ledger.Item{{ID: gold, Amount: 100}}))
			if tc.setup != nil {
				tc.setup(ctx, db, c)
			}

			items := []ledger.Item{{ID: gold, Amount: tc.amount}}
			err := c.Move(ctx, db, tc.caller, alice, bob, items)
			if tc.wantErr != nil {
				if !tc.wantErr.Is(err) {
					t.Fatalf("want %v, got %+v", tc.wantErr, err)
				}
				return
			}
			require.NoError(t, err)

			src, err := c.Balance(db, alice, gold)
			require.NoError(t, err)
			assert.Equal(t, 100-tc.amount, src)

			dst, err := c.Balance(db, bob, gold)
			require.NoError(t, err)
			assert.Equal(t, tc.amount, dst)

			// moving never changes the supply
			supply, err := c.Supply(db, gold)
			require.NoError(t, err)
			assert.Equal(t, uint64(100), supply)
		})
	}
}

func TestMoveConsumesAllowance(t *testing.T) {
	db := store.MemStore()
	ctx := context.Background()
	c := NewController(ledger.NoHook{})

	alice := ledgertest.SequenceAddress(1)
	bob := ledgertest.SequenceAddress(2)
	carl := ledgertest.SequenceAddress(3)
	gold := ledgertest.SequenceID(1)

	require.NoError(t, c.Mint(ctx, db, alice, []ledger.Item{{ID: gold, Amount: 100}}))
	require.NoError(t, c.Approve(ctx, db, alice, carl, gold, 50))
	require.NoError(t, c.Move(ctx, db, carl, alice, bob, []ledger.Item{{ID: gold, Amount: 30}}))

	granted, err := c.Allowance(db, alice, carl, gold)
	require.NoError(t, err)
	assert.Equal(t, uint64(20), granted)

	// an exhausted grant is still a grant, so over-spending reports the
	// amount as too small rather than missing
	require.NoError(t, c.Move(ctx, db, carl, alice, bob, []ledger.Item{{ID: gold, Amount: 20}}))
	if err := c.Move(ctx, db, carl, alice, bob, []ledger.Item{{ID: gold, Amount: 1}}); !errors.ErrInsufficientAllowance.Is(err) {
		t.Fatalf("want an insufficient allowance error, got %+v", err)
	}
}

func TestMoveOperatorDoesNotConsumeAllowance(t *testing.T) {
	db := store.MemStore()
	ctx := context.Background()
	c := NewController(ledger.NoHook{})

	alice := ledgertest.SequenceAddress(1)
	bob := ledgertest.SequenceAddress(2)
	carl := ledgertest.SequenceAddress(3)
	gold := ledgertest.SequenceID(1)

	require.NoError(t, c.Mint(ctx, db, alice, []ledger.Item{{ID: gold, Amount: 100}}))
	require.NoError(t, c.Approve(ctx, db, alice, carl, gold, 50))
	require.NoError(t, c.SetOperator(ctx, db, alice, carl, true))

	require.NoError(t, c.Move(ctx, db, carl, alice, bob, []ledger.Item{{ID: gold, Amount: 80}}))

	granted, err := c.Allowance(db, alice, carl, gold)
	require.NoError(t, err)
	assert.Equal(t, uint64(50), granted, "the operator path must not touch the allowance")
}

func TestMoveBatch(t *testing.T) {
	db := store.MemStore()
	ctx := context.Background()
	c := NewController(ledger.NoHook{})

	alice := ledgertest.SequenceAddress(1)
	bob := ledgertest.SequenceAddress(2)
	gold := ledgertest.SequenceID(1)
	silver := ledgertest.SequenceID(2)

	require.NoError(t, c.Mint(ctx, db, alice, []ledger.Item{
		{ID: gold, Amount: 100},
		{ID: silver, Amount: 10},
	}))

	require.NoError(t, c.Move(ctx, db, alice, alice, bob, []ledger.Item{
		{ID: gold, Amount: 60},
		{ID: silver, Amount: 10},
	}))

	for _, tc := range []struct {
		owner ledger.Address
		id    ledger.TokenID
		want  uint64
	}{
		{alice, gold, 40},
		{alice, silver, 0},
		{bob, gold, 60},
		{bob, silver, 10},
	} {
		got, err := c.Balance(db, tc.owner, tc.id)
		require.NoError(t, err)
		assert.Equal(t, tc.want, got, "owner %s category %s", tc.owner, tc.id)
	}
}

func TestMoveBatchFirstFailureAborts(t *testing.T) {
	db := store.MemStore()
	ctx := context.Background()
	c := NewController(ledger.NoHook{})

	alice := ledgertest.SequenceAddress(1)
	bob := ledgertest.SequenceAddress(2)
	gold := ledgertest.SequenceID(1)
	silver := ledgertest.SequenceID(2)

	require.NoError(t, c.Mint(ctx, db, alice, []ledger.Item{{ID: gold, Amount: 100}}))

	err := c.Move(ctx, db, alice, alice, bob, []ledger.Item{
		{ID: gold, Amount: 60},
		{ID: silver, Amount: 1},
	})
	if !errors.ErrInsufficientBalance.Is(err) {
		t.Fatalf("want an insufficient balance error, got %+v", err)
	}

	// the caller is expected to run Move inside a cache wrap and discard
	// on error, so the partial write of the first item is visible here
	balance, err := c.Balance(db, bob, gold)
	require.NoError(t, err)
	assert.Equal(t, uint64(60), balance)
}

func TestMoveZeroAmountItems(t *testing.T) {
	db := store.MemStore()
	ctx := context.Background()
	hook := &ledgertest.Hook{}
	c := NewController(hook)

	alice := ledgertest.SequenceAddress(1)
	bob := ledgertest.SequenceAddress(2)
	gold := ledgertest.SequenceID(1)

	// a zero-amount item of an unfunded category still flows through
	items := []ledger.Item{{ID: gold, Amount: 0}}
	require.NoError(t, c.Move(ctx, db, alice, alice, bob, items))

	require.Len(t, hook.BeforeCalls, 1)
	require.Len(t, hook.AfterCalls, 1)
	assert.Equal(t, items, hook.BeforeCalls[0].Items)

	balance, err := c.Balance(db, bob, gold)
	require.NoError(t, err)
	assert.Equal(t, uint64(0), balance)
}

func TestMoveToSelfConservesBalance(t *testing.T) {
	db := store.MemStore()
	ctx := context.Background()
	c := NewController(ledger.NoHook{})

	alice := ledgertest.SequenceAddress(1)
	gold := ledgertest.SequenceID(1)

	require.NoError(t, c.Mint(ctx, db, alice, []ledger.Item{{ID: gold, Amount: 100}}))
	require.NoError(t, c.Move(ctx, db, alice, alice, alice, []ledger.Item{{ID: gold, Amount: 10}}))

	// a transfer to self must be a no-op, never a balance increase
	balance, err := c.Balance(db, alice, gold)
	require.NoError(t, err)
	assert.Equal(t, uint64(100), balance)

	supply, err := c.Supply(db, gold)
	require.NoError(t, err)
	assert.Equal(t, uint64(100), supply)

	// moving more than held stays illegal on the self path
	if err := c.Move(ctx, db, alice, alice, alice, []ledger.Item{{ID: gold, Amount: 101}}); !errors.ErrInsufficientBalance.Is(err) {
		t.Fatalf("want an insufficient balance error, got %+v", err)
	}
}

func TestMoveToZeroAddress(t *testing.T) {
	db := store.MemStore()
	ctx := context.Background()
	c := NewController(ledger.NoHook{})

	alice := ledgertest.SequenceAddress(1)
	gold := ledgertest.SequenceID(1)
	zero := make(ledger.Address, ledger.AddressLength)

	require.NoError(t, c.Mint(ctx, db, alice, []ledger.Item{{ID: gold, Amount: 10}}))
	if err := c.Move(ctx, db, alice, alice, zero, []ledger.Item{{ID: gold, Amount: 1}}); !errors.ErrNotAllowed.Is(err) {
		t.Fatalf("want a not allowed error, got %+v", err)
	}
}

func TestSupplyCap(t *testing.T) {
	db := store.MemStore()
	ctx := context.Background()
	c := NewController(ledger.NoHook{})

	alice := ledgertest.SequenceAddress(1)
	bob := ledgertest.SequenceAddress(2)
	gold := ledgertest.SequenceID(1)

	require.NoError(t, c.Mint(ctx, db, bob, []ledger.Item{{ID: gold, Amount: math.MaxUint64 - 5}}))
	require.NoError(t, c.Mint(ctx, db, alice, []ledger.Item{{ID: gold, Amount: 5}}))

	// the supply is saturated, minting to anyone must fail now
	if err := c.Mint(ctx, db, alice, []ledger.Item{{ID: gold, Amount: 1}}); !errors.ErrOverflow.Is(err) {
		t.Fatalf("want an overflow error, got %+v", err)
	}

	// moving within the saturated supply still works
	require.NoError(t, c.Move(ctx, db, alice, alice, bob, []ledger.Item{{ID: gold, Amount: 5}}))

	balance, err := c.Balance(db, bob, gold)
	require.NoError(t, err)
	assert.Equal(t, uint64(math.MaxUint64), balance)
}

func TestApproveRules(t *testing.T) {
	db := store.MemStore()
	ctx := context.Background()
	c := NewController(ledger.NoHook{})

	alice := ledgertest.SequenceAddress(1)
	bob := ledgertest.SequenceAddress(2)
	gold := ledgertest.SequenceID(1)
	zero := make(ledger.Address, ledger.AddressLength)

	if err := c.Approve(ctx, db, alice, alice, gold, 10); !errors.ErrNotAllowed.Is(err) {
		t.Fatalf("self approval: want a not allowed error, got %+v", err)
	}
	if err := c.Approve(ctx, db, alice, zero, gold, 10); !errors.ErrNotAllowed.Is(err) {
		t.Fatalf("zero spender: want a not allowed error, got %+v", err)
	}

	// an absolute grant overwrites, it does not accumulate
	require.NoError(t, c.Approve(ctx, db, alice, bob, gold, 10))
	require.NoError(t, c.Approve(ctx, db, alice, bob, gold, 4))

	granted, err := c.Allowance(db, alice, bob, gold)
	require.NoError(t, err)
	assert.Equal(t, uint64(4), granted)
}

func TestBurn(t *testing.T) {
	alice := ledgertest.SequenceAddress(1)
	bob := ledgertest.SequenceAddress(2)
	gold := ledgertest.SequenceID(1)

	cases := map[string]struct {
		setup   func(ctx ledger.Context, db ledger.KVStore, c *BalanceController)
		caller  ledger.Address
		amount  uint64
		wantErr *errors.Error
	}{
		"holder can burn": {
			caller: alice,
			amount: 30,
		},
		"operator can burn": {
			setup: func(ctx ledger.Context, db ledger.KVStore, c *BalanceController) {
				require.NoError(t, c.SetOperator(ctx, db, alice, bob, true))
			},
			caller: bob,
			amount: 30,
		},
		"allowance holder cannot burn": {
			setup: func(ctx ledger.Context, db ledger.KVStore, c *BalanceController) {
				require.NoError(t, c.Approve(ctx, db, alice, bob, gold, 100))
			},
			caller:  bob,
			amount:  30,
			wantErr: errors.ErrNotApproved,
		},
		"burning more than held": {
			caller:  alice,
			amount:  101,
			wantErr: errors.ErrInsufficientBalance,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			db := store.MemStore()
			ctx := context.Background()
			c := NewController(ledger.NoHook{})
			require.NoError(t, c.Mint(ctx, db, alice, []ledger.Item{{ID: gold, Amount: 100}}))
			if tc.setup != nil {
				tc.setup(ctx, db, c)
			}

			err := c.Burn(ctx, db, tc.caller, alice, []ledger.Item{{ID: gold, Amount: tc.amount}})
			if tc.wantErr != nil {
				if !tc.wantErr.Is(err) {
					t.Fatalf("want %v, got %+v", tc.wantErr, err)
				}
				return
			}
			require.NoError(t, err)

			balance, err := c.Balance(db, alice, gold)
			require.NoError(t, err)
			assert.Equal(t, 100-tc.amount, balance)

			supply, err := c.Supply(db, gold)
			require.NoError(t, err)
			assert.Equal(t, 100-tc.amount, supply)
		})
	}
}

func TestTransferHooks(t *testing.T) {
	db := store.MemStore()
	ctx := context.Background()
	hook := &ledgertest.Hook{}
	c := NewController(hook)

	alice := ledgertest.SequenceAddress(1)
	bob := ledgertest.SequenceAddress(2)
	gold := ledgertest.SequenceID(1)
	items := []ledger.Item{{ID: gold, Amount: 10}}

	require.NoError(t, c.Mint(ctx, db, alice, items))
	require.NoError(t, c.Move(ctx, db, alice, alice, bob, items))
	require.NoError(t, c.Burn(ctx, db, bob, bob, items))

	require.Len(t, hook.BeforeCalls, 3)
	require.Len(t, hook.AfterCalls, 3)

	assert.Nil(t, hook.BeforeCalls[0].From)
	assert.Equal(t, alice, hook.BeforeCalls[0].To)
	assert.Equal(t, alice, hook.BeforeCalls[1].From)
	assert.Equal(t, bob, hook.BeforeCalls[1].To)
	assert.Equal(t, bob, hook.BeforeCalls[2].From)
	assert.Nil(t, hook.BeforeCalls[2].To)
}

func TestBeforeHookVeto(t *testing.T) {
	db := store.MemStore()
	ctx := context.Background()
	hook := &ledgertest.Hook{BeforeErr: errors.ErrHuman.New("frozen")}
	c := NewController(hook)

	alice := ledgertest.SequenceAddress(1)
	gold := ledgertest.SequenceID(1)

	if err := c.Mint(ctx, db, alice, []ledger.Item{{ID: gold, Amount: 10}}); !errors.ErrHuman.Is(err) {
		t.Fatalf("want the hook error, got %+v", err)
	}

	balance, err := c.Balance(db, alice, gold)
	require.NoError(t, err)
	assert.Equal(t, uint64(0), balance, "a vetoed mint must not create balance")
}

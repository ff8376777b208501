package unique

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iov-one/ledger"
	"github.com/iov-one/ledger/errors"
	"github.com/iov-one/ledger/ledgertest"
	"github.com/iov-one/ledger/store"
)

type router map[string]ledger.Handler

func (r router) Handle(path string, h ledger.Handler) {
	r[path] = h
}

func TestRegisterRoutes(t *testing.T) {
	r := make(router)
	RegisterRoutes(r, &ledgertest.Auth{}, NewController(ledger.NoHook{}, ledger.NoReceivers{}), ledger.NopEmitter{}, nil)

	for _, path := range []string{
		pathTransfer, pathSafeTransfer, pathApprove,
		pathSetOperator, pathMint, pathBurn,
	} {
		if r[path] == nil {
			t.Errorf("no handler for %q", path)
		}
	}
}

func TestTransferHandler(t *testing.T) {
	alice := ledgertest.SequenceAddress(1)
	bob := ledgertest.SequenceAddress(2)
	carl := ledgertest.SequenceAddress(3)
	id := ledgertest.SequenceID(1)

	cases := map[string]struct {
		signer  ledger.Address
		msg     ledger.Msg
		wantErr *errors.Error
	}{
		"owner moves the token": {
			signer: alice,
			msg:    &TransferMsg{From: alice, To: bob, ID: id},
		},
		"safe transfer to a plain account": {
			signer: alice,
			msg:    &SafeTransferMsg{From: alice, To: bob, ID: id, Payload: []byte("hi")},
		},
		"stranger is rejected": {
			signer:  carl,
			msg:     &TransferMsg{From: alice, To: bob, ID: id},
			wantErr: errors.ErrNotApproved,
		},
		"malformed message is rejected": {
			signer:  alice,
			msg:     &TransferMsg{From: alice, To: bob},
			wantErr: errors.ErrEmpty,
		},
		"unexpected message type": {
			signer:  alice,
			msg:     &BurnMsg{From: alice, ID: id},
			wantErr: errors.ErrType,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			db := store.MemStore()
			ctx := context.Background()
			control := NewController(ledger.NoHook{}, ledger.NoReceivers{})
			require.NoError(t, control.Mint(ctx, db, alice, id))

			emitter := &ledgertest.Emitter{}
			h := TransferHandler{
				auth:    &ledgertest.Auth{Signer: tc.signer},
				control: control,
				emitter: emitter,
			}
			tx := &ledgertest.Tx{Msg: tc.msg}

			_, err := h.Deliver(ctx, db, tx)
			if tc.wantErr != nil {
				if !tc.wantErr.Is(err) {
					t.Fatalf("want %v, got %+v", tc.wantErr, err)
				}
				assert.Empty(t, emitter.Transfers)
				return
			}
			require.NoError(t, err)

			owner, err := control.OwnerOf(db, id)
			require.NoError(t, err)
			assert.Equal(t, bob, owner)

			require.Len(t, emitter.Transfers, 1)
			assert.Equal(t, alice, emitter.Transfers[0].From)
			assert.Equal(t, bob, emitter.Transfers[0].To)
			assert.Equal(t, []ledger.Item{{ID: id, Amount: 1}}, emitter.Transfers[0].Items)
		})
	}
}

func TestTransferHandlerCheckIsStateless(t *testing.T) {
	db := store.MemStore()
	ctx := context.Background()
	control := NewController(ledger.NoHook{}, ledger.NoReceivers{})

	alice := ledgertest.SequenceAddress(1)
	bob := ledgertest.SequenceAddress(2)
	id := ledgertest.SequenceID(1)
	require.NoError(t, control.Mint(ctx, db, alice, id))

	h := TransferHandler{
		auth:    &ledgertest.Auth{Signer: alice},
		control: control,
		emitter: ledger.NopEmitter{},
	}
	tx := &ledgertest.Tx{Msg: &TransferMsg{From: alice, To: bob, ID: id}}

	res, err := h.Check(ctx, db, tx)
	require.NoError(t, err)
	assert.Equal(t, transferCost, res.GasAllocated)

	// a dry-run must not move the token
	owner, err := control.OwnerOf(db, id)
	require.NoError(t, err)
	assert.Equal(t, alice, owner)
}

func TestApproveHandler(t *testing.T) {
	db := store.MemStore()
	ctx := context.Background()
	control := NewController(ledger.NoHook{}, ledger.NoReceivers{})

	alice := ledgertest.SequenceAddress(1)
	bob := ledgertest.SequenceAddress(2)
	id := ledgertest.SequenceID(1)
	require.NoError(t, control.Mint(ctx, db, alice, id))

	emitter := &ledgertest.Emitter{}
	h := ApproveHandler{
		auth:    &ledgertest.Auth{Signer: alice},
		control: control,
		emitter: emitter,
	}

	_, err := h.Deliver(ctx, db, &ledgertest.Tx{Msg: &ApproveMsg{Spender: bob, ID: id}})
	require.NoError(t, err)

	spender, err := control.Approved(db, id)
	require.NoError(t, err)
	assert.Equal(t, bob, spender)

	require.Len(t, emitter.Approvals, 1)
	assert.Equal(t, alice, emitter.Approvals[0].Owner)
	assert.Equal(t, bob, emitter.Approvals[0].Spender)
	assert.Equal(t, id, emitter.Approvals[0].ID)
	assert.Equal(t, uint64(1), emitter.Approvals[0].Amount)
}

func TestSetOperatorHandler(t *testing.T) {
	db := store.MemStore()
	ctx := context.Background()
	control := NewController(ledger.NoHook{}, ledger.NoReceivers{})

	alice := ledgertest.SequenceAddress(1)
	bob := ledgertest.SequenceAddress(2)

	emitter := &ledgertest.Emitter{}
	h := SetOperatorHandler{
		auth:    &ledgertest.Auth{Signer: alice},
		control: control,
		emitter: emitter,
	}

	_, err := h.Deliver(ctx, db, &ledgertest.Tx{Msg: &SetOperatorMsg{Operator: bob, Approved: true}})
	require.NoError(t, err)

	ok, err := control.IsOperator(db, alice, bob)
	require.NoError(t, err)
	assert.True(t, ok)

	require.Len(t, emitter.Operators, 1)
	assert.Equal(t, alice, emitter.Operators[0].Owner)
	assert.Equal(t, bob, emitter.Operators[0].Operator)
	assert.True(t, emitter.Operators[0].Approved)
}

func TestMintHandlerWithIssuer(t *testing.T) {
	issuer := ledgertest.SequenceAddress(7)
	alice := ledgertest.SequenceAddress(1)
	id := ledgertest.SequenceID(1)

	cases := map[string]struct {
		issuer  ledger.Address
		signer  ledger.Address
		wantErr *errors.Error
	}{
		"issuer can mint for anyone": {
			issuer: issuer,
			signer: issuer,
		},
		"non-issuer cannot mint": {
			issuer:  issuer,
			signer:  alice,
			wantErr: errors.ErrNotAllowed,
		},
		"without an issuer the recipient mints for itself": {
			signer: alice,
		},
		"without an issuer a stranger cannot mint for others": {
			signer:  ledgertest.SequenceAddress(2),
			wantErr: errors.ErrNotAllowed,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			db := store.MemStore()
			ctx := context.Background()
			control := NewController(ledger.NoHook{}, ledger.NoReceivers{})

			emitter := &ledgertest.Emitter{}
			h := MintHandler{
				auth:    &ledgertest.Auth{Signer: tc.signer},
				control: control,
				emitter: emitter,
				issuer:  tc.issuer,
			}

			_, err := h.Deliver(ctx, db, &ledgertest.Tx{Msg: &MintMsg{To: alice, ID: id}})
			if tc.wantErr != nil {
				if !tc.wantErr.Is(err) {
					t.Fatalf("want %v, got %+v", tc.wantErr, err)
				}
				return
			}
			require.NoError(t, err)

			owner, err := control.OwnerOf(db, id)
			require.NoError(t, err)
			assert.Equal(t, alice, owner)

			require.Len(t, emitter.Transfers, 1)
			assert.Nil(t, emitter.Transfers[0].From)
			assert.Equal(t, alice, emitter.Transfers[0].To)
		})
	}
}

func TestBurnHandler(t *testing.T) {
	db := store.MemStore()
	ctx := context.Background()
	control := NewController(ledger.NoHook{}, ledger.NoReceivers{})

	alice := ledgertest.SequenceAddress(1)
	id := ledgertest.SequenceID(1)
	require.NoError(t, control.Mint(ctx, db, alice, id))

	emitter := &ledgertest.Emitter{}
	h := BurnHandler{
		auth:    &ledgertest.Auth{Signer: alice},
		control: control,
		emitter: emitter,
	}

	_, err := h.Deliver(ctx, db, &ledgertest.Tx{Msg: &BurnMsg{From: alice, ID: id}})
	require.NoError(t, err)

	if _, err := control.OwnerOf(db, id); !errors.ErrNotFound.Is(err) {
		t.Fatalf("want a not found error, got %+v", err)
	}
	require.Len(t, emitter.Transfers, 1)
	assert.Equal(t, alice, emitter.Transfers[0].From)
	assert.Nil(t, emitter.Transfers[0].To)
}

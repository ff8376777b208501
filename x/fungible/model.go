package fungible

import (
	"github.com/iov-one/ledger"
	"github.com/iov-one/ledger/errors"
	"github.com/iov-one/ledger/orm"
)

var _ orm.Model = (*Balance)(nil)

// Validate implements the model interface. Any amount is storable, the
// zero value is simply never written.
func (m *Balance) Validate() error {
	return nil
}

// Presence keys: an existing entry means true, a missing one false.
var operatorPrefix = []byte("fop:")

// Bucket gives access to all the state kept by the multi-category ledger.
// Balances are keyed by owner and category, allowances by owner, spender
// and category, supplies by category alone. All records are deleted when
// their amount reaches zero, so absence always reads as zero.
type Bucket struct {
	balances   orm.ModelBucket
	allowances orm.ModelBucket
	supplies   orm.ModelBucket
}

// NewBucket returns a bucket using the default namespaces.
func NewBucket() Bucket {
	return Bucket{
		balances:   orm.NewModelBucket("fba"),
		allowances: orm.NewModelBucket("fal"),
		supplies:   orm.NewModelBucket("fsu"),
	}
}

func balanceKey(owner ledger.Address, id ledger.TokenID) []byte {
	key := make([]byte, 0, len(owner)+len(id))
	key = append(key, owner...)
	return append(key, id...)
}

func allowanceKey(owner, spender ledger.Address, id ledger.TokenID) []byte {
	key := make([]byte, 0, len(owner)+len(spender)+len(id))
	key = append(key, owner...)
	key = append(key, spender...)
	return append(key, id...)
}

// load returns the amount stored under the key. A missing record is zero.
func load(db ledger.ReadOnlyKVStore, bucket orm.ModelBucket, key []byte) (uint64, error) {
	var b Balance
	switch err := bucket.One(db, key, &b); {
	case err == nil:
		return b.Amount, nil
	case errors.ErrNotFound.Is(err):
		return 0, nil
	default:
		return 0, err
	}
}

// save writes the amount under the key, deleting the record at zero.
func save(db ledger.KVStore, bucket orm.ModelBucket, key []byte, amount uint64) error {
	if amount == 0 {
		return bucket.Delete(db, key)
	}
	return bucket.Put(db, key, &Balance{Amount: amount})
}

// Balance returns the amount of the category held by the owner.
func (b Bucket) Balance(db ledger.ReadOnlyKVStore, owner ledger.Address, id ledger.TokenID) (uint64, error) {
	return load(db, b.balances, balanceKey(owner, id))
}

func (b Bucket) setBalance(db ledger.KVStore, owner ledger.Address, id ledger.TokenID, amount uint64) error {
	return save(db, b.balances, balanceKey(owner, id), amount)
}

// Allowance returns the amount the spender may move out of the owner's
// balance of the category, and whether a grant exists at all. A missing
// grant and an exhausted one fail differently on spend.
func (b Bucket) Allowance(db ledger.ReadOnlyKVStore, owner, spender ledger.Address, id ledger.TokenID) (uint64, bool, error) {
	key := allowanceKey(owner, spender, id)
	var record Balance
	switch err := b.allowances.One(db, key, &record); {
	case err == nil:
		return record.Amount, true, nil
	case errors.ErrNotFound.Is(err):
		return 0, false, nil
	default:
		return 0, false, err
	}
}

func (b Bucket) setAllowance(db ledger.KVStore, owner, spender ledger.Address, id ledger.TokenID, amount uint64) error {
	return save(db, b.allowances, allowanceKey(owner, spender, id), amount)
}

// consumeAllowance keeps an exhausted grant around, so that a later
// over-spend reports the grant as too small rather than missing. Only an
// explicit approval of zero removes the record.
func (b Bucket) consumeAllowance(db ledger.KVStore, owner, spender ledger.Address, id ledger.TokenID, remaining uint64) error {
	return b.allowances.Put(db, allowanceKey(owner, spender, id), &Balance{Amount: remaining})
}

// Supply returns the total amount of the category in circulation.
func (b Bucket) Supply(db ledger.ReadOnlyKVStore, id ledger.TokenID) (uint64, error) {
	return load(db, b.supplies, id)
}

func (b Bucket) setSupply(db ledger.KVStore, id ledger.TokenID, amount uint64) error {
	return save(db, b.supplies, id, amount)
}

func operatorKey(owner, operator ledger.Address) []byte {
	key := make([]byte, 0, len(operatorPrefix)+len(owner)+len(operator))
	key = append(key, operatorPrefix...)
	key = append(key, owner...)
	return append(key, operator...)
}

// IsOperator returns whether the operator may act on all categories of the
// owner.
func (b Bucket) IsOperator(db ledger.ReadOnlyKVStore, owner, operator ledger.Address) (bool, error) {
	return db.Has(operatorKey(owner, operator))
}

func (b Bucket) setOperator(db ledger.KVStore, owner, operator ledger.Address, approved bool) error {
	if approved {
		return db.Set(operatorKey(owner, operator), []byte{1})
	}
	return db.Delete(operatorKey(owner, operator))
}

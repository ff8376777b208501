package unique

import (
	"github.com/iov-one/ledger"
	"github.com/iov-one/ledger/errors"
	"github.com/iov-one/ledger/orm"
)

var _ orm.Model = (*Token)(nil)

// Validate ensures the token record is sane before it hits the store.
func (m *Token) Validate() error {
	var err error
	err = errors.Append(err, errors.Wrap(ledger.Address(m.Owner).Validate(), "owner"))
	if len(m.Approved) != 0 {
		err = errors.Append(err, errors.Wrap(ledger.Address(m.Approved).Validate(), "approved"))
	}
	return err
}

const (
	// mintedKey stores the global counter of live (minted minus burned)
	// assets.
	mintedKey = "minted"
)

// Presence keys: an existing entry means true, a missing one false. This
// makes operator approvals and the owner index free to revoke and keeps
// the "absent reads as false" rule trivial.
var (
	operatorPrefix = []byte("uao:")
	indexPrefix    = []byte("uai:")
)

// Bucket gives access to all the state kept by the unique-asset ledger.
type Bucket struct {
	tokens orm.ModelBucket
	counts orm.ModelBucket
	global orm.ModelBucket
}

// NewBucket returns a bucket using the default namespaces.
func NewBucket() Bucket {
	return Bucket{
		tokens: orm.NewModelBucket("uat"),
		counts: orm.NewModelBucket("uac"),
		global: orm.NewModelBucket("uag"),
	}
}

// Token returns the record of given asset, or ErrNotFound.
func (b Bucket) Token(db ledger.ReadOnlyKVStore, id ledger.TokenID) (*Token, error) {
	var t Token
	if err := b.tokens.One(db, id, &t); err != nil {
		return nil, errors.Wrapf(err, "token %s", id)
	}
	return &t, nil
}

// HasToken returns whether the asset exists without decoding it.
func (b Bucket) HasToken(db ledger.ReadOnlyKVStore, id ledger.TokenID) (bool, error) {
	return b.tokens.Has(db, id)
}

func (b Bucket) saveToken(db ledger.KVStore, id ledger.TokenID, t *Token) error {
	return b.tokens.Put(db, id, t)
}

func (b Bucket) deleteToken(db ledger.KVStore, id ledger.TokenID) error {
	return b.tokens.Delete(db, id)
}

// Count returns the number of assets held by the owner. Unknown owners
// hold zero.
func (b Bucket) Count(db ledger.ReadOnlyKVStore, owner ledger.Address) (uint64, error) {
	c, err := orm.LoadCounter(db, b.counts, owner)
	return c.Count, err
}

func (b Bucket) shiftCount(db ledger.KVStore, owner ledger.Address, up bool) error {
	c, err := orm.LoadCounter(db, b.counts, owner)
	if err != nil {
		return err
	}
	if up {
		err = c.Add(1)
	} else {
		err = c.Subtract(1)
	}
	if err != nil {
		return err
	}
	return b.counts.Put(db, owner, &c)
}

// TotalCount returns the number of live assets across all owners.
func (b Bucket) TotalCount(db ledger.ReadOnlyKVStore) (uint64, error) {
	c, err := orm.LoadCounter(db, b.global, []byte(mintedKey))
	return c.Count, err
}

func (b Bucket) shiftTotal(db ledger.KVStore, up bool) error {
	c, err := orm.LoadCounter(db, b.global, []byte(mintedKey))
	if err != nil {
		return err
	}
	if up {
		err = c.Add(1)
	} else {
		err = c.Subtract(1)
	}
	if err != nil {
		return err
	}
	return b.global.Put(db, []byte(mintedKey), &c)
}

func operatorKey(owner, operator ledger.Address) []byte {
	key := make([]byte, 0, len(operatorPrefix)+len(owner)+len(operator))
	key = append(key, operatorPrefix...)
	key = append(key, owner...)
	return append(key, operator...)
}

// IsOperator returns whether the operator may act on all assets of the
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

func indexKey(owner ledger.Address, id ledger.TokenID) []byte {
	key := make([]byte, 0, len(indexPrefix)+len(owner)+len(id))
	key = append(key, indexPrefix...)
	key = append(key, owner...)
	return append(key, id...)
}

func (b Bucket) indexToken(db ledger.KVStore, owner ledger.Address, id ledger.TokenID) error {
	return db.Set(indexKey(owner, id), []byte{1})
}

func (b Bucket) unindexToken(db ledger.KVStore, owner ledger.Address, id ledger.TokenID) error {
	return db.Delete(indexKey(owner, id))
}

// TokensOf returns the identifiers of all assets held by the owner, in
// ascending order.
func (b Bucket) TokensOf(db ledger.ReadOnlyKVStore, owner ledger.Address) ([]ledger.TokenID, error) {
	prefix := make([]byte, 0, len(indexPrefix)+len(owner))
	prefix = append(prefix, indexPrefix...)
	prefix = append(prefix, owner...)

	start, end := orm.PrefixRange(prefix)
	iter, err := db.Iterator(start, end)
	if err != nil {
		return nil, err
	}
	defer iter.Release()

	var ids []ledger.TokenID
	for {
		key, _, err := iter.Next()
		switch {
		case err == nil:
			// the id is whatever follows the prefix
			id := make(ledger.TokenID, len(key)-len(prefix))
			copy(id, key[len(prefix):])
			ids = append(ids, id)
		case errors.ErrIteratorDone.Is(err):
			return ids, nil
		default:
			return nil, err
		}
	}
}

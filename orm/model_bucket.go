package orm

import (
	"regexp"

	"github.com/iov-one/ledger"
	"github.com/iov-one/ledger/errors"
)

// Model is implemented by any entity that can be stored using a ModelBucket.
type Model interface {
	Marshal() ([]byte, error)
	Unmarshal([]byte) error
	Validate() error
}

// ModelBucket is implemented by buckets that operate on Models.
type ModelBucket interface {
	// One queries the database for a single model instance. Lookup is
	// done by the primary key. The result is loaded into the given
	// destination model.
	// This method returns ErrNotFound if the entity does not exist in
	// the database.
	One(db ledger.ReadOnlyKVStore, key []byte, dest Model) error

	// Has returns whether an entity with the given primary key exists,
	// without decoding it.
	Has(db ledger.ReadOnlyKVStore, key []byte) (bool, error)

	// Put saves given model in the database. The model is validated
	// before it is written.
	Put(db ledger.KVStore, key []byte, m Model) error

	// Delete removes an entity with given primary key from the database.
	// Deleting a non-existing entity is a no-op success, so removal is
	// idempotent.
	Delete(db ledger.KVStore, key []byte) error

	// DBKey returns the absolute storage key this bucket uses for the
	// given primary key.
	DBKey(key []byte) []byte
}

var isBucketName = regexp.MustCompile(`^[a-z]{3,10}$`).MatchString

// NewModelBucket returns a ModelBucket instance storing all entities with
// the bucket name as the key prefix. The name must be a short, lowercase
// alpha string so prefixes never collide with each other.
func NewModelBucket(name string) ModelBucket {
	if !isBucketName(name) {
		panic("invalid bucket name: " + name)
	}
	return &modelBucket{
		prefix: []byte(name + ":"),
	}
}

type modelBucket struct {
	prefix []byte
}

var _ ModelBucket = (*modelBucket)(nil)

func (mb *modelBucket) DBKey(key []byte) []byte {
	return append(append([]byte{}, mb.prefix...), key...)
}

func (mb *modelBucket) One(db ledger.ReadOnlyKVStore, key []byte, dest Model) error {
	raw, err := db.Get(mb.DBKey(key))
	if err != nil {
		return errors.Wrap(err, "kvstore get")
	}
	if raw == nil {
		return errors.Wrapf(errors.ErrNotFound, "%T not in the store", dest)
	}
	if err := dest.Unmarshal(raw); err != nil {
		return errors.Wrapf(err, "unmarshal into %T", dest)
	}
	return nil
}

func (mb *modelBucket) Has(db ledger.ReadOnlyKVStore, key []byte) (bool, error) {
	return db.Has(mb.DBKey(key))
}

func (mb *modelBucket) Put(db ledger.KVStore, key []byte, m Model) error {
	if len(key) == 0 {
		return errors.Wrap(errors.ErrEmpty, "key")
	}
	if err := m.Validate(); err != nil {
		return errors.Wrap(err, "invalid model")
	}
	raw, err := m.Marshal()
	if err != nil {
		return errors.Wrapf(err, "marshal %T", m)
	}
	return db.Set(mb.DBKey(key), raw)
}

func (mb *modelBucket) Delete(db ledger.KVStore, key []byte) error {
	return db.Delete(mb.DBKey(key))
}

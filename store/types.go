package store

import "github.com/iov-one/ledger"

// Move references for all storage types into this package
// for shorter names everywhere.

type ReadOnlyKVStore = ledger.ReadOnlyKVStore
type KVStore = ledger.KVStore
type Batch = ledger.Batch
type Iterator = ledger.Iterator
type CacheableKVStore = ledger.CacheableKVStore
type KVCacheWrap = ledger.KVCacheWrap

// SetDeleter is the subset of KVStore a batch writes into.
type SetDeleter interface {
	Set(key, value []byte) error
	Delete(key []byte) error
}

// Model groups a key-value pair, as stored in (or returned from) a store.
type Model struct {
	Key   []byte
	Value []byte
}

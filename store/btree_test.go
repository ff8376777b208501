package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iov-one/ledger"
	"github.com/iov-one/ledger/errors"
)

func TestBTreeCacheGetSet(t *testing.T) {
	base := MemStore()

	k, v := []byte("french"), []byte("fry")

	// nothing there
	got, err := base.Get(k)
	require.NoError(t, err)
	assert.Nil(t, got)
	has, err := base.Has(k)
	require.NoError(t, err)
	assert.False(t, has)

	// set and read it back
	require.NoError(t, base.Set(k, v))
	got, err = base.Get(k)
	require.NoError(t, err)
	assert.Equal(t, v, got)

	// delete clears
	require.NoError(t, base.Delete(k))
	got, err = base.Get(k)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestBTreeCacheWrapIsolation(t *testing.T) {
	base := MemStore()
	k, v, v2 := []byte("owner:a"), []byte("one"), []byte("two")
	require.NoError(t, base.Set(k, v))

	cache := base.CacheWrap()
	require.NoError(t, cache.Set(k, v2))

	// cache sees the new value, parent still the old one
	got, err := cache.Get(k)
	require.NoError(t, err)
	assert.Equal(t, v2, got)
	got, err = base.Get(k)
	require.NoError(t, err)
	assert.Equal(t, v, got)

	// discard drops the change
	cache.Discard()
	got, err = base.Get(k)
	require.NoError(t, err)
	assert.Equal(t, v, got)
}

func TestBTreeCacheWrapWrite(t *testing.T) {
	base := MemStore()
	k, k2 := []byte("a"), []byte("b")
	require.NoError(t, base.Set(k, []byte("keep")))
	require.NoError(t, base.Set(k2, []byte("drop")))

	cache := base.CacheWrap()
	require.NoError(t, cache.Set(k, []byte("update")))
	require.NoError(t, cache.Delete(k2))
	require.NoError(t, cache.Write())

	got, err := base.Get(k)
	require.NoError(t, err)
	assert.Equal(t, []byte("update"), got)
	got, err = base.Get(k2)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestBTreeCacheWrapNested(t *testing.T) {
	base := MemStore()
	cache := base.CacheWrap()
	inner := cache.CacheWrap()

	k, v := []byte("deep"), []byte("value")
	require.NoError(t, inner.Set(k, v))
	require.NoError(t, inner.Write())

	// middle layer has it, base does not yet
	got, err := cache.Get(k)
	require.NoError(t, err)
	assert.Equal(t, v, got)
	got, err = base.Get(k)
	require.NoError(t, err)
	assert.Nil(t, got)

	require.NoError(t, cache.Write())
	got, err = base.Get(k)
	require.NoError(t, err)
	assert.Equal(t, v, got)
}

func readAll(t *testing.T, iter ledger.Iterator) []Model {
	t.Helper()
	defer iter.Release()

	var out []Model
	for {
		key, value, err := iter.Next()
		if errors.ErrIteratorDone.Is(err) {
			return out
		}
		require.NoError(t, err)
		out = append(out, Model{Key: key, Value: value})
	}
}

func TestBTreeCacheIterator(t *testing.T) {
	base := MemStore()
	require.NoError(t, base.Set([]byte("a"), []byte("1")))
	require.NoError(t, base.Set([]byte("c"), []byte("3")))
	require.NoError(t, base.Set([]byte("d"), []byte("4")))

	cache := base.CacheWrap()
	// add, shadow and delete through the cache
	require.NoError(t, cache.Set([]byte("b"), []byte("2")))
	require.NoError(t, cache.Set([]byte("c"), []byte("33")))
	require.NoError(t, cache.Delete([]byte("d")))

	iter, err := cache.Iterator(nil, nil)
	require.NoError(t, err)
	got := readAll(t, iter)

	want := []Model{
		{Key: []byte("a"), Value: []byte("1")},
		{Key: []byte("b"), Value: []byte("2")},
		{Key: []byte("c"), Value: []byte("33")},
	}
	assert.Equal(t, want, got)
}

func TestBTreeCacheIteratorRange(t *testing.T) {
	base := MemStore()
	for _, kv := range [][2]string{{"a", "1"}, {"b", "2"}, {"c", "3"}, {"d", "4"}} {
		require.NoError(t, base.Set([]byte(kv[0]), []byte(kv[1])))
	}

	iter, err := base.Iterator([]byte("b"), []byte("d"))
	require.NoError(t, err)
	got := readAll(t, iter)

	want := []Model{
		{Key: []byte("b"), Value: []byte("2")},
		{Key: []byte("c"), Value: []byte("3")},
	}
	assert.Equal(t, want, got)
}

func TestBTreeCacheReverseIterator(t *testing.T) {
	base := MemStore()
	require.NoError(t, base.Set([]byte("a"), []byte("1")))
	require.NoError(t, base.Set([]byte("b"), []byte("2")))

	cache := base.CacheWrap()
	require.NoError(t, cache.Set(([]byte("c")), []byte("3")))

	iter, err := cache.ReverseIterator(nil, nil)
	require.NoError(t, err)
	got := readAll(t, iter)

	want := []Model{
		{Key: []byte("c"), Value: []byte("3")},
		{Key: []byte("b"), Value: []byte("2")},
		{Key: []byte("a"), Value: []byte("1")},
	}
	assert.Equal(t, want, got)
}

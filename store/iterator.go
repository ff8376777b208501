package store

import (
	"bytes"

	"github.com/google/btree"

	"github.com/iov-one/ledger/errors"
)

// ascendRange materializes all btree items within [start, end) in ascending
// order. The cache trees are small (one operation worth of writes), so
// collecting them up front is cheap and keeps the merge logic simple.
func ascendRange(bt *btree.BTree, start, end []byte) []btree.Item {
	var out []btree.Item
	insert := func(item btree.Item) bool {
		out = append(out, item)
		return true
	}
	switch {
	case start == nil && end == nil:
		bt.Ascend(insert)
	case start == nil:
		bt.AscendLessThan(bkey{end}, insert)
	case end == nil:
		bt.AscendGreaterOrEqual(bkey{start}, insert)
	default:
		bt.AscendRange(bkey{start}, bkey{end}, insert)
	}
	return out
}

// descendRange materializes all btree items within (end, start] in
// descending order.
func descendRange(bt *btree.BTree, start, end []byte) []btree.Item {
	var out []btree.Item
	insert := func(item btree.Item) bool {
		out = append(out, item)
		return true
	}
	switch {
	case start == nil && end == nil:
		bt.Descend(insert)
	case start == nil:
		bt.DescendGreaterThan(bkey{end}, insert)
	case end == nil:
		bt.DescendLessOrEqual(bkey{start}, insert)
	default:
		bt.DescendRange(bkey{start}, bkey{end}, insert)
	}
	return out
}

// mergeIterator combines the uncommitted items of a cache wrap with the
// iterator of the backing store. Cache items shadow the backing store:
// a setItem overrides the parent value, a deletedItem hides it.
type mergeIterator struct {
	cache   []btree.Item
	parent  Iterator
	pKey    []byte
	pValue  []byte
	pDone   bool
	pErr    error
	reverse bool
}

var _ Iterator = (*mergeIterator)(nil)

func newMergeIterator(cache []btree.Item, parent Iterator, reverse bool) *mergeIterator {
	m := &mergeIterator{
		cache:   cache,
		parent:  parent,
		reverse: reverse,
	}
	m.advanceParent()
	return m
}

func (m *mergeIterator) advanceParent() {
	key, value, err := m.parent.Next()
	switch {
	case err == nil:
		m.pKey, m.pValue = key, value
	case errors.ErrIteratorDone.Is(err):
		m.pDone = true
	default:
		m.pErr = err
	}
}

func (m *mergeIterator) Next() ([]byte, []byte, error) {
	for {
		if m.pErr != nil {
			return nil, nil, m.pErr
		}
		if len(m.cache) == 0 && m.pDone {
			return nil, nil, errors.ErrIteratorDone
		}

		// Only the parent has data left.
		if len(m.cache) == 0 {
			key, value := m.pKey, m.pValue
			m.advanceParent()
			return key, value, nil
		}

		item := m.cache[0]

		// Only the cache has data left. Deleted markers hide nothing
		// here, skip them.
		if m.pDone {
			m.cache = m.cache[1:]
			if set, ok := item.(setItem); ok {
				return set.Key(), set.value, nil
			}
			continue
		}

		cmp := bytes.Compare(item.(keyer).Key(), m.pKey)
		if m.reverse {
			cmp = -cmp
		}
		switch {
		case cmp < 0:
			// Cache-only key comes first.
			m.cache = m.cache[1:]
			if set, ok := item.(setItem); ok {
				return set.Key(), set.value, nil
			}
		case cmp == 0:
			// Cache shadows the parent entry.
			m.cache = m.cache[1:]
			m.advanceParent()
			if set, ok := item.(setItem); ok {
				return set.Key(), set.value, nil
			}
		default:
			key, value := m.pKey, m.pValue
			m.advanceParent()
			return key, value, nil
		}
	}
}

func (m *mergeIterator) Release() {
	m.cache = nil
	m.pDone = true
	m.parent.Release()
}

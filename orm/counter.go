package orm

import (
	"github.com/iov-one/ledger"
	"github.com/iov-one/ledger/errors"
)

var _ Model = (*Counter)(nil)

// Validate is always successful. A zero counter is a valid counter.
func (c *Counter) Validate() error {
	return nil
}

// Add increases the counter by n. It fails with ErrOverflow instead of
// wrapping around.
func (c *Counter) Add(n uint64) error {
	if c.Count+n < c.Count {
		return errors.Wrap(errors.ErrOverflow, "counter")
	}
	c.Count += n
	return nil
}

// Subtract decreases the counter by n. Dropping below zero is a ledger
// consistency violation, not a user error, and reported as such.
func (c *Counter) Subtract(n uint64) error {
	if c.Count < n {
		return errors.Wrap(errors.ErrHuman, "counter underflow")
	}
	c.Count -= n
	return nil
}

// LoadCounter returns the counter stored under the given key, or a zero
// counter if there is none. Absent counters read as zero.
func LoadCounter(db ledger.ReadOnlyKVStore, b ModelBucket, key []byte) (Counter, error) {
	var c Counter
	switch err := b.One(db, key, &c); {
	case err == nil:
		return c, nil
	case errors.ErrNotFound.Is(err):
		return Counter{}, nil
	default:
		return Counter{}, err
	}
}

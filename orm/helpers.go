package orm

// PrefixRange turns a prefix into a (start, end) key range to use with the
// store iterators. The end of the range is the smallest key that is greater
// than every key prefixed by the given value, or nil if no such key exists
// (the prefix is all 0xff).
func PrefixRange(prefix []byte) ([]byte, []byte) {
	if len(prefix) == 0 {
		return nil, nil
	}

	// copy the prefix and update last byte
	end := make([]byte, len(prefix))
	copy(end, prefix)
	l := len(end) - 1
	end[l]++

	// wait, what if that overflowed the last byte? then we need to shift
	// the carry to the previous byte
	for end[l] == 0 {
		if l == 0 {
			// all 0xff, no end of range
			return prefix, nil
		}
		l--
		end[l]++
		end = end[:l+1]
	}
	return prefix, end
}

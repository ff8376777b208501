package errors

import "strings"

// Append combines any number of errors into a single one. Nil errors are
// ignored. If all given errors are nil, nil is returned, so the result can
// be tested the usual way. Multi errors created by this function are
// flattened, never nested.
func Append(errs ...error) error {
	var m multiError
	for _, err := range errs {
		switch e := err.(type) {
		case nil:
			continue
		case multiError:
			m = append(m, e...)
		default:
			m = append(m, err)
		}
	}
	switch len(m) {
	case 0:
		return nil
	case 1:
		return m[0]
	default:
		return m
	}
}

type multiError []error

func (m multiError) Error() string {
	chunks := make([]string, len(m))
	for i, err := range m {
		chunks[i] = err.Error()
	}
	return strings.Join(chunks, "; ")
}

// Contains returns true if any of the combined errors matches given kind.
func (m multiError) Contains(kind *Error) bool {
	for _, err := range m {
		if kind.Is(err) {
			return true
		}
	}
	return false
}

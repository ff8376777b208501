package errors

import (
	"fmt"
	"reflect"

	"github.com/pkg/errors"
)

var (
	// ErrNotFound is used when a requested entity (a token, a balance
	// dependent record) does not exist.
	ErrNotFound = Register(2, "not found")

	// ErrNotOwner is returned when the declared owner of a token does not
	// match the recorded one.
	ErrNotOwner = Register(3, "not the owner")

	// ErrNotApproved is returned when the caller is neither the owner nor
	// holds any approval that would authorize the operation.
	ErrNotApproved = Register(4, "missing approval")

	// ErrInsufficientAllowance is returned when the caller holds an
	// allowance for the category, but it is smaller than the amount moved.
	ErrInsufficientAllowance = Register(5, "insufficient allowance")

	// ErrNotAllowed is returned for operations that are forbidden
	// regardless of authorization, like self-approval or sending to the
	// zero address.
	ErrNotAllowed = Register(6, "not allowed")

	// ErrDuplicate is returned when a record already exists, for example
	// when minting an already minted token.
	ErrDuplicate = Register(7, "duplicate")

	// ErrInsufficientBalance is returned when an operation would move more
	// tokens than the source account holds.
	ErrInsufficientBalance = Register(8, "insufficient balance")

	// ErrOverflow is returned when a computation cannot be completed
	// because the result value exceeds the type.
	ErrOverflow = Register(9, "value overflow")

	// ErrCallFailed is returned when the recipient of a safe transfer
	// rejected the token, or its notification call could not complete.
	ErrCallFailed = Register(10, "recipient call failed")

	// ErrCustom is the root for failures that extensions (transfer hooks)
	// signal with only a message of their own.
	ErrCustom = Register(11, "custom")

	// ErrEmpty is returned when a value fails a not-empty assertion.
	ErrEmpty = Register(12, "value is empty")

	// ErrInput stands for general input problems indication.
	ErrInput = Register(13, "invalid input")

	// ErrMsg is returned whenever a message is invalid and cannot be
	// handled.
	ErrMsg = Register(14, "invalid message")

	// ErrState is returned when an object is in an invalid state.
	ErrState = Register(15, "invalid state")

	// ErrType is returned whenever the type is not what was expected.
	ErrType = Register(16, "invalid type")

	// ErrHuman is returned when the code reaches a path that should not
	// ever be reached if the code was written as expected.
	ErrHuman = Register(17, "coding error")

	// ErrDatabase is returned when the underlying storage misbehaves.
	ErrDatabase = Register(18, "database")

	// ErrIteratorDone is returned by iterators when the end of the range
	// was reached. It marks regular termination, not a failure.
	ErrIteratorDone = Register(19, "iterator done")

	// ErrPanic is only set when we recover from a panic, so we know to
	// redact potentially sensitive system info.
	ErrPanic = Register(111222, "panic")
)

// Register returns an error instance that should be used as the base for
// creating error instances during runtime.
//
// Popular root errors are declared in this package, but extensions may want
// to declare custom codes. This function ensures that no error code is used
// twice. Attempt to reuse an error code results in panic.
//
// Use this function only during a program startup phase.
func Register(code uint32, description string) *Error {
	if e, ok := usedCodes[code]; ok {
		panic(fmt.Sprintf("error with code %d is already registered: %q", code, e.desc))
	}
	err := &Error{
		code: code,
		desc: description,
	}
	usedCodes[err.code] = err
	return err
}

// usedCodes is keeping track of used codes to ensure their uniqueness. No
// two error instances should share the same error code.
var usedCodes = map[uint32]*Error{
	1: nil, // Error code 1 is restricted for non-ledger errors and must not be used.
}

// Error represents a root error.
//
// This package is using root errors to categorize issues. Each instance
// created during the runtime should wrap one of the declared root errors.
// This allows error tests and returning all errors to the client in a safe
// manner.
//
// If an extension has to declare a custom root error, always use the
// Register function to ensure error code uniqueness.
type Error struct {
	code uint32
	desc string
}

func (e Error) Error() string {
	return e.desc
}

// Code returns the unique numeric identifier of this error kind.
func (e Error) Code() uint32 {
	return e.code
}

// New returns a new error. Returned instance is having the root cause set
// to this error. Below two lines are equal
//   e.New("my description")
//   Wrap(e, "my description")
func (e *Error) New(description string) error {
	return Wrap(e, description)
}

// Newf is basically New with formatting capabilities
func (e *Error) Newf(description string, args ...interface{}) error {
	return e.New(fmt.Sprintf(description, args...))
}

// Is check if given error instance is of a given kind/type. This involves
// unwrapping given error using the Cause method if available.
func (kind *Error) Is(err error) bool {
	// Reflect usage is necessary to correctly compare with
	// a nil implementation of an error.
	if kind == nil {
		if err == nil {
			return true
		}
		return reflect.ValueOf(err).IsNil()
	}

	for {
		if err == kind {
			return true
		}

		if c, ok := err.(causer); ok {
			err = c.Cause()
		} else {
			return false
		}
	}
}

// Wrap extends given error with an additional information.
//
// If the wrapped error does not provide the Code method (ie. stdlib
// errors), it will be labeled as an internal error.
//
// If err is nil, this returns nil, avoiding the need for an if statement
// when wrapping an error returned at the end of a function.
func Wrap(err error, description string) error {
	if err == nil {
		return nil
	}

	// If this error does not carry the stacktrace information yet, attach
	// one. This should be done only once per error at the lowest frame
	// possible (most inner wrap).
	if stackTrace(err) == nil {
		err = errors.WithStack(err)
	}

	return &wrappedError{
		parent: err,
		msg:    description,
	}
}

// Wrapf extends given error with an additional information.
//
// This function works like Wrap function with additional functionality of
// formatting the input as specified.
func Wrapf(err error, format string, args ...interface{}) error {
	desc := fmt.Sprintf(format, args...)
	return Wrap(err, desc)
}

// stackTrace returns the first found stack trace frame carried by given
// error or any wrapped error. It returns nil if no stack trace is found.
func stackTrace(err error) errors.StackTrace {
	type stackTracer interface {
		StackTrace() errors.StackTrace
	}

	for {
		if st, ok := err.(stackTracer); ok {
			return st.StackTrace()
		}

		if c, ok := err.(causer); ok {
			err = c.Cause()
		} else {
			return nil
		}
	}
}

type wrappedError struct {
	// This error layer description.
	msg string
	// The underlying error that triggered this one.
	parent error
}

func (e *wrappedError) Error() string {
	return fmt.Sprintf("%s: %s", e.msg, e.parent.Error())
}

func (e *wrappedError) Cause() error {
	return e.parent
}

// Recover captures a panic and stop its propagation. If panic happens it is
// transformed into a ErrPanic instance and assigned to given error. Call
// this function using defer in order to work as expected.
func Recover(err *error) {
	if r := recover(); r != nil {
		*err = Wrapf(ErrPanic, "%v", r)
	}
}

// Code returns the error code of the root of given error, or the reserved
// code 1 if the error does not stem from a registered root. A nil error
// reports code 0.
func Code(err error) uint32 {
	if err == nil {
		return 0
	}
	for {
		if e, ok := err.(coder); ok {
			return e.Code()
		}
		if c, ok := err.(causer); ok {
			err = c.Cause()
		} else {
			return 1
		}
	}
}

type coder interface {
	Code() uint32
}

// causer is an interface implemented by an error that supports wrapping.
// Use it to test if an error wraps another error instance.
type causer interface {
	Cause() error
}

package filestore

import "github.com/zeebo/errs"

// Error is the class that contains all the errors from this package. Every
// error returned by T is in this class and in exactly one of the kind
// classes below.
var Error = errs.Class("filestore")

var (
	// ParameterError is a configuration value out of range. The message
	// names the parameter and its value.
	ParameterError = errs.Class("parameter")

	// NotFoundError is an operation on a file name that does not exist.
	NotFoundError = errs.Class("not found")

	// OutOfSpaceError is a put that needs more blocks than are free.
	OutOfSpaceError = errs.Class("out of space")

	// TimeoutError is a block write that did not persist as intended
	// before the timeout. The put may be retried.
	TimeoutError = errs.Class("timeout")
)

// Kind enumerates the kinds of errors returned by the store.
type Kind int

const (
	KindUnknown Kind = iota
	KindParameter
	KindNotFound
	KindOutOfSpace
	KindTimeout
)

// String returns the name of the kind.
func (k Kind) String() string {
	switch k {
	case KindParameter:
		return "parameter"
	case KindNotFound:
		return "not found"
	case KindOutOfSpace:
		return "out of space"
	case KindTimeout:
		return "timeout"
	default:
		return "unknown"
	}
}

// KindOf returns the kind of err. It returns KindUnknown for nil and for
// errors that did not come from this package.
func KindOf(err error) Kind {
	switch {
	case err == nil:
		return KindUnknown
	case ParameterError.Has(err):
		return KindParameter
	case NotFoundError.Has(err):
		return KindNotFound
	case OutOfSpaceError.Has(err):
		return KindOutOfSpace
	case TimeoutError.Has(err):
		return KindTimeout
	default:
		return KindUnknown
	}
}

package timelock

import (
	"fmt"

	"github.com/pkg/errors"
)

var (
	// ErrMalformedSignature indicates a function signature that cannot be parsed.
	ErrMalformedSignature = errors.New("malformed function signature")

	// ErrTypeMismatch is the base class for all argument coercion failures.
	ErrTypeMismatch = errors.New("argument type mismatch")

	// ErrHashComputation indicates a failure while assembling the operation id
	// hash preimage. This only happens on a library defect and is not retryable.
	ErrHashComputation = errors.New("operation id hash computation failed")
)

var (
	ErrInvalidAddress = fmt.Errorf("%w: invalid address", ErrTypeMismatch)
	ErrInvalidBool    = fmt.Errorf("%w: invalid bool", ErrTypeMismatch)
	ErrInvalidInteger = fmt.Errorf("%w: invalid integer", ErrTypeMismatch)
	ErrInvalidBytes   = fmt.Errorf("%w: invalid bytes value", ErrTypeMismatch)
)

// ArityMismatchError is returned when the number of supplied values does not
// match the number of parameters of a signature or tuple type.
type ArityMismatchError struct {
	Expected int
	Actual   int
	Context  string
}

func (e *ArityMismatchError) Error() string {
	return fmt.Sprintf("%s expects %d values, got %d", e.Context, e.Expected, e.Actual)
}

// CoerceError wraps a coercion failure with the offending parameter type and
// its top-level argument index, so callers can produce a precise bad-request
// response.
type CoerceError struct {
	Type  string
	Index int
	Err   error
}

func (e *CoerceError) Error() string {
	return fmt.Sprintf("argument %d (%s): %v", e.Index, e.Type, e.Err)
}

func (e *CoerceError) Unwrap() error {
	return e.Err
}

// EncodingError wraps a failure of the ABI byte-encoder, e.g. an integer that
// overflows its declared width.
type EncodingError struct {
	Err error
}

func (e *EncodingError) Error() string {
	return fmt.Sprintf("abi encoding failed: %v", e.Err)
}

func (e *EncodingError) Unwrap() error {
	return e.Err
}

// Package errs collects the sentinel errors the YAJBE codec can return.
//
// Callers should match against these with errors.Is; call sites that wrap
// a sentinel with extra context do so with fmt.Errorf("%w: ...", errs.ErrX, ...),
// so errors.Is still unwraps to the sentinel.
package errs

import "errors"

var (
	// ErrTruncatedInput is returned when a read ran past the end of the source.
	ErrTruncatedInput = errors.New("yajbe: truncated input")

	// ErrUnknownHead is returned when a head byte matches none of the known classifications.
	ErrUnknownHead = errors.New("yajbe: unknown head byte")

	// ErrReservedEncoding is returned when a head byte indicates float16, var-float,
	// or bigdecimal, none of which this codec decodes.
	ErrReservedEncoding = errors.New("yajbe: reserved encoding not supported")

	// ErrDictionaryOverflow is returned when a field-name length or index exceeds
	// the 65,819 maximum of the field-name length sub-encoding. A dictionary that
	// already holds 65,819 entries does not raise it: further names are written
	// without being admitted.
	ErrDictionaryOverflow = errors.New("yajbe: field-name dictionary overflow")

	// ErrInvalidUTF8 is returned when a string or field name fails UTF-8 validation.
	ErrInvalidUTF8 = errors.New("yajbe: invalid UTF-8")

	// ErrUnsupportedValue is returned when the encoder is given a value whose runtime
	// type is not in the supported value set.
	ErrUnsupportedValue = errors.New("yajbe: unsupported value kind")

	// ErrInvalidEnumConfig is returned when an enum-config marker names a sub-type
	// other than 0 (LRU).
	ErrInvalidEnumConfig = errors.New("yajbe: invalid enum config")

	// ErrInvalidEnumIndex is returned when an enum reference names an index that was
	// never admitted into the enum dictionary.
	ErrInvalidEnumIndex = errors.New("yajbe: invalid enum index")

	// ErrEnumIndexTooLarge is returned when the encoder would need to emit an enum
	// index beyond the 2-byte wire form (> 65535).
	ErrEnumIndexTooLarge = errors.New("yajbe: enum index too large")

	// ErrNestingTooDeep is returned when array/object recursion exceeds the
	// implementation's configured maximum nesting depth.
	ErrNestingTooDeep = errors.New("yajbe: nesting too deep")

	// ErrInvalidFieldNameIndex is returned when an indexed field-name reference
	// names a position outside the admitted dictionary.
	ErrInvalidFieldNameIndex = errors.New("yajbe: invalid field-name index")
)

// Package codec implements the YAJBE wire format: head-byte framing for the
// eight value kinds (null, bool, int64, float64, bytes, string, array,
// object), the field-name dictionary, and the enum-LRU string dictionary.
//
// # Value mapping
//
// Encoding accepts the usual Go primitives plus two container kinds:
//
//   - nil, bool, the signed/unsigned integer kinds, float32/float64, []byte,
//     string map directly onto the scalar wire kinds.
//   - Array ([]any) and *Object (an ordered key/value pair list, not a map)
//     cover the two container kinds. Object is a distinct type rather than
//     map[string]any because decode must reproduce field order exactly.
//
// Decoding returns the same Go types: int64 for all integers, float64 for
// both wire float widths, []byte for the bytes kind, string for the string
// kind, Array and *Object for the containers.
//
// # Dictionaries
//
// Encoder and Decoder each own a field-name dictionary (internal/fields) and,
// once an enum config is supplied, an enum-LRU string dictionary
// (internal/enum). Both dictionaries are stateful across a single document:
// an Encoder/Decoder pair must be constructed with matching
// WithInitialFieldNames/WithDecoderInitialFieldNames options and used for
// exactly one document each, matching the reference implementation's
// single-use encoder/decoder lifecycle.
//
// # Usage
//
//	enc := codec.NewEncoder(w)
//	if err := enc.EncodeValue(codec.NewObject(1).Set("a", int64(1))); err != nil {
//		// handle err
//	}
//
//	dec := codec.NewDecoder(r)
//	v, err := dec.DecodeValue()
package codec

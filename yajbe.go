// Package yajbe provides a compact, self-describing binary serialization
// format: a drop-in binary alternative to JSON with a smaller wire size and
// a faster decoder, at the cost of human readability.
//
// # Core Features
//
//   - Eight value kinds: null, bool, int64, float64, []byte, string, array,
//     object - object key order is always preserved
//   - Variable-length integer and length framing, always little-endian
//   - A per-document field-name dictionary that rewrites repeated object
//     keys as short indexed/prefix references
//   - An optional enum-LRU dictionary that rewrites frequently repeated
//     string values as short references
//
// # Basic Usage
//
// Encoding a value to bytes:
//
//	import "github.com/yajbe-go/yajbe"
//
//	obj := codec.NewObject(2).Set("id", int64(1)).Set("name", "alice")
//	data, err := yajbe.EncodeToBytes(obj)
//
// Decoding bytes back to a value:
//
//	v, err := yajbe.DecodeFromBytes(data)
//
// # Package Structure
//
// This package provides convenient top-level wrappers around the codec
// package, covering the common case of one value per buffer or stream.
// Dictionary pre-seeding and enum configuration are passed to these wrappers
// as codec options (codec.WithInitialFieldNames, codec.WithEnumConfig,
// codec.WithDecoderInitialFieldNames). For streaming several documents
// through one connection, use codec.NewEncoder/codec.NewDecoder directly,
// one per document.
package yajbe

import (
	"bytes"
	"io"

	"github.com/yajbe-go/yajbe/codec"
)

// EncodeToSink encodes v as a single YAJBE document and writes it to sink,
// using opts to configure the one-shot Encoder.
func EncodeToSink(sink io.Writer, v any, opts ...codec.EncoderOption) error {
	return codec.NewEncoder(sink, opts...).EncodeValue(v)
}

// EncodeToBytes encodes v as a single YAJBE document and returns its bytes.
func EncodeToBytes(v any, opts ...codec.EncoderOption) ([]byte, error) {
	var buf bytes.Buffer
	if err := EncodeToSink(&buf, v, opts...); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

// DecodeFromSource reads a single YAJBE document from source.
func DecodeFromSource(source io.Reader, opts ...codec.DecoderOption) (any, error) {
	return codec.NewDecoder(source, opts...).DecodeValue()
}

// DecodeFromBytes reads a single YAJBE document from data.
func DecodeFromBytes(data []byte, opts ...codec.DecoderOption) (any, error) {
	return DecodeFromSource(bytes.NewReader(data), opts...)
}

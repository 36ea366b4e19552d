package codec_test

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/yajbe-go/yajbe/codec"
	"github.com/yajbe-go/yajbe/errs"
)

func TestDecoder_TruncatedInput(t *testing.T) {
	// head byte for a 2-byte bytes value, but only 1 payload byte follows.
	dec := codec.NewDecoder(bytes.NewReader([]byte{0x82, 0xde}))
	_, err := dec.DecodeValue()
	require.True(t, errors.Is(err, errs.ErrTruncatedInput))
}

func TestDecoder_UnknownHead(t *testing.T) {
	// 0b00011000 (0x18) matches none of the defined head patterns.
	dec := codec.NewDecoder(bytes.NewReader([]byte{0x18}))
	_, err := dec.DecodeValue()
	require.True(t, errors.Is(err, errs.ErrUnknownHead))
}

func TestDecoder_ReservedFloatEncoding(t *testing.T) {
	// low 2 bits of a float head must be 01 or 10; 00 and 11 are reserved.
	dec := codec.NewDecoder(bytes.NewReader([]byte{0x04}))
	_, err := dec.DecodeValue()
	require.True(t, errors.Is(err, errs.ErrReservedEncoding))
}

func TestDecoder_InvalidEnumIndex(t *testing.T) {
	// a one-byte enum reference with no enum config ever negotiated.
	dec := codec.NewDecoder(bytes.NewReader([]byte{0x09, 0x00}))
	_, err := dec.DecodeValue()
	require.True(t, errors.Is(err, errs.ErrInvalidEnumIndex))
}

func TestDecoder_InvalidUTF8(t *testing.T) {
	// a 2-byte string head followed by an invalid UTF-8 byte pair.
	dec := codec.NewDecoder(bytes.NewReader([]byte{0xc2, 0xff, 0xfe}))
	_, err := dec.DecodeValue()
	require.True(t, errors.Is(err, errs.ErrInvalidUTF8))
}

func TestDecoder_MaxDepthExceeded(t *testing.T) {
	var buf bytes.Buffer
	enc := codec.NewEncoder(&buf)
	require.NoError(t, enc.EncodeValue(codec.Array{codec.Array{int64(1)}}))

	dec := codec.NewDecoder(bytes.NewReader(buf.Bytes()), codec.WithDecoderMaxDepth(1))
	_, err := dec.DecodeValue()
	require.True(t, errors.Is(err, errs.ErrNestingTooDeep))
}

func TestDecoder_Float32Width(t *testing.T) {
	// head 0x05 is the float32 width, accepted on decode only (spec asymmetry).
	dec := codec.NewDecoder(bytes.NewReader([]byte{0x05, 0x00, 0x00, 0xc0, 0x3f}))
	v, err := dec.DecodeValue()
	require.NoError(t, err)
	require.InDelta(t, 1.5, v.(float64), 1e-9)
}

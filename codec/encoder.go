package codec

import (
	"fmt"
	"io"
	"math"
	"unicode/utf8"

	"github.com/yajbe-go/yajbe/errs"
	"github.com/yajbe-go/yajbe/internal/enum"
	"github.com/yajbe-go/yajbe/internal/fields"
	"github.com/yajbe-go/yajbe/internal/pool"
	"github.com/yajbe-go/yajbe/internal/wire"
)

// Head bytes and masks for the kinds dispatched directly by Encoder/Decoder.
// Field-name head bytes are owned by the fields package.
const (
	headNull  = 0b00000000
	headFalse = 0b00000010
	headTrue  = 0b00000011

	headFloat32 = 0b00000101
	headFloat64 = 0b00000110

	headEnumConfig = 0b00001000
	headEnumRef1   = 0b00001001
	headEnumRef2   = 0b00001010

	headPosInt = 0b010_00000
	headNegInt = 0b011_00000

	headArray  = 0b0010_0000
	headObject = 0b0011_0000

	headBytes  = 0b10_000000
	headString = 0b11_000000

	endSentinel = 0b00000001

	arrayObjectInlineMax = 10
	stringBytesInlineMax = 59
)

// Encoder writes one YAJBE document to a byte sink. An Encoder is single-use:
// create a fresh one per document so the field-name and enum dictionaries
// start empty.
type Encoder struct {
	sink       io.Writer
	fieldNames *fields.Writer
	enumConfig *enum.Config
	enumDict   *enum.Dict
	maxDepth   int
	depth      int
}

// NewEncoder creates an Encoder writing to sink.
func NewEncoder(sink io.Writer, opts ...EncoderOption) *Encoder {
	cfg := newEncoderConfig(opts)

	return &Encoder{
		sink:       sink,
		fieldNames: fields.NewWriter(cfg.initialFieldNames),
		enumConfig: cfg.enumConfig,
		maxDepth:   cfg.maxDepth,
	}
}

// EncodeValue encodes one value as the document body. Supported runtime
// types are: nil, bool, the signed/unsigned integer kinds (converted to a
// signed 64-bit range), float32/float64, []byte, string, Array/[]any, and
// *Object. Anything else returns errs.ErrUnsupportedValue.
func (e *Encoder) EncodeValue(v any) error {
	switch val := v.(type) {
	case nil:
		return e.writeByte(headNull)
	case bool:
		return e.encodeBool(val)
	case int:
		return e.encodeInt(int64(val))
	case int8:
		return e.encodeInt(int64(val))
	case int16:
		return e.encodeInt(int64(val))
	case int32:
		return e.encodeInt(int64(val))
	case int64:
		return e.encodeInt(val)
	case uint:
		return e.encodeUint(uint64(val))
	case uint8:
		return e.encodeUint(uint64(val))
	case uint16:
		return e.encodeUint(uint64(val))
	case uint32:
		return e.encodeUint(uint64(val))
	case uint64:
		return e.encodeUint(val)
	case float32:
		return e.encodeFloat(float64(val))
	case float64:
		return e.encodeFloat(val)
	case []byte:
		return e.encodeBytes(val)
	case string:
		return e.encodeString(val)
	case Array:
		return e.encodeArray(val)
	case []any:
		return e.encodeArray(Array(val))
	case *Object:
		return e.encodeObject(val)
	case Object:
		return e.encodeObject(&val)
	default:
		return fmt.Errorf("%w: %T", errs.ErrUnsupportedValue, v)
	}
}

func (e *Encoder) encodeBool(v bool) error {
	if v {
		return e.writeByte(headTrue)
	}

	return e.writeByte(headFalse)
}

func (e *Encoder) encodeUint(v uint64) error {
	if v > math.MaxInt64 {
		return fmt.Errorf("%w: uint64 %d exceeds signed 64-bit range", errs.ErrUnsupportedValue, v)
	}

	return e.encodeInt(int64(v))
}

// encodeInt implements the signed-magnitude integer scheme: zero and negative
// values share the negative-prefix path (u = -v), positive values use a
// separate path, each subtracting its first multi-byte value (25 for
// positive, 24 for negative) so the smallest multi-byte value is written as
// zero in one extra byte.
func (e *Encoder) encodeInt(v int64) error {
	if v > 0 {
		return e.encodePositiveInt(uint64(v))
	}

	u := uint64(-v)

	return e.encodeNegativeInt(u)
}

func (e *Encoder) encodePositiveInt(v uint64) error {
	if v <= 24 {
		return e.writeByte(headPosInt | byte(v-1))
	}

	delta := v - 25
	width := wire.ByteWidth(delta)

	if err := e.writeByte(headPosInt | byte(23+width)); err != nil {
		return err
	}

	return wire.WriteUint(e.sink, delta, width)
}

func (e *Encoder) encodeNegativeInt(u uint64) error {
	if u <= 23 {
		return e.writeByte(headNegInt | byte(u))
	}

	delta := u - 24
	width := wire.ByteWidth(delta)

	if err := e.writeByte(headNegInt | byte(23+width)); err != nil {
		return err
	}

	return wire.WriteUint(e.sink, delta, width)
}

// encodeFloat always emits an 8-byte IEEE-754 little-endian double; there is
// no encoder path for the narrower 4-byte form. float32 decode support
// exists only on the Decoder side - encode and decode are intentionally
// asymmetric here.
func (e *Encoder) encodeFloat(v float64) error {
	if err := e.writeByte(headFloat64); err != nil {
		return err
	}

	return wire.WriteUint(e.sink, math.Float64bits(v), 8)
}

// encodeBytes stages the head+length prefix and payload into a pooled
// scratch buffer and flushes it in a single sink.Write, instead of issuing
// one small write per framing field.
func (e *Encoder) encodeBytes(v []byte) error {
	scratch := pool.GetScratchBuffer()
	defer pool.PutScratchBuffer(scratch)

	if err := wire.WriteHeadLength(scratch, headBytes, stringBytesInlineMax, uint64(len(v))); err != nil {
		return err
	}

	scratch.B = append(scratch.B, v...)

	_, err := e.sink.Write(scratch.Bytes())

	return err
}

// encodeString checks the enum dictionary first: if an enum config is
// active and the dictionary already holds text (admitted by an earlier
// occurrence), emit the enum reference instead of the string head+payload,
// falling back to a literal string otherwise - including for the occurrence
// that triggers admission.
func (e *Encoder) encodeString(v string) error {
	if !utf8.ValidString(v) {
		return errs.ErrInvalidUTF8
	}

	if e.enumConfig != nil {
		wrote, err := e.encodeEnumRef(v)
		if err != nil {
			return err
		}

		if wrote {
			return nil
		}
	}

	utf8Bytes := []byte(v)

	scratch := pool.GetScratchBuffer()
	defer pool.PutScratchBuffer(scratch)

	if err := wire.WriteHeadLength(scratch, headString, stringBytesInlineMax, uint64(len(utf8Bytes))); err != nil {
		return err
	}

	scratch.B = append(scratch.B, utf8Bytes...)

	_, err := e.sink.Write(scratch.Bytes())

	return err
}

// encodeEnumRef instantiates the enum dictionary (writing the config marker)
// on the first string encountered while an enum config is active, regardless
// of whether that first string itself gets admitted.
func (e *Encoder) encodeEnumRef(v string) (bool, error) {
	if e.enumDict == nil {
		if err := e.writeEnumConfigMarker(); err != nil {
			return false, err
		}
	}

	index := e.enumDict.Add(v)
	if index < 0 {
		return false, nil
	}

	switch {
	case index <= 0xff:
		if err := e.writeByte(headEnumRef1); err != nil {
			return false, err
		}

		return true, e.writeByte(byte(index))
	case index <= 0xffff:
		if err := e.writeByte(headEnumRef2); err != nil {
			return false, err
		}

		return true, wire.WriteUint(e.sink, uint64(index), 2)
	default:
		return false, fmt.Errorf("%w: %d", errs.ErrEnumIndexTooLarge, index)
	}
}

func (e *Encoder) writeEnumConfigMarker() error {
	if err := e.writeByte(headEnumConfig); err != nil {
		return err
	}

	if err := e.writeByte(e.enumConfig.WireParam()); err != nil {
		return err
	}

	if err := e.writeByte(byte(e.enumConfig.MinFreq - 1)); err != nil {
		return err
	}

	e.enumDict = enum.NewDict(*e.enumConfig)

	return nil
}

func (e *Encoder) encodeArray(v Array) error {
	if err := e.enterContainer(); err != nil {
		return err
	}
	defer e.exitContainer()

	if err := wire.WriteHeadLength(e.sink, headArray, arrayObjectInlineMax, uint64(len(v))); err != nil {
		return err
	}

	for _, item := range v {
		if err := e.EncodeValue(item); err != nil {
			return err
		}
	}

	return nil
}

func (e *Encoder) encodeObject(v *Object) error {
	if err := e.enterContainer(); err != nil {
		return err
	}
	defer e.exitContainer()

	if err := wire.WriteHeadLength(e.sink, headObject, arrayObjectInlineMax, uint64(v.Len())); err != nil {
		return err
	}

	for key, value := range v.All() {
		if err := e.fieldNames.Encode(e.sink, key); err != nil {
			return err
		}

		if err := e.EncodeValue(value); err != nil {
			return err
		}
	}

	return nil
}

func (e *Encoder) enterContainer() error {
	e.depth++
	if e.depth > e.maxDepth {
		return errs.ErrNestingTooDeep
	}

	return nil
}

func (e *Encoder) exitContainer() {
	e.depth--
}

func (e *Encoder) writeByte(b byte) error {
	_, err := e.sink.Write([]byte{b})

	return err
}

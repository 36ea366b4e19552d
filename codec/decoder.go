package codec

import (
	"fmt"
	"io"
	"math"
	"unicode/utf8"

	"github.com/yajbe-go/yajbe/errs"
	"github.com/yajbe-go/yajbe/internal/enum"
	"github.com/yajbe-go/yajbe/internal/fields"
	"github.com/yajbe-go/yajbe/internal/wire"
)

// Decoder reads one YAJBE document from a byte source. A Decoder is
// single-use: create a fresh one per document so its dictionaries start
// empty.
type Decoder struct {
	source     *lookaheadSource
	fieldNames *fields.Reader
	enumDict   *enum.Dict
	maxDepth   int
	depth      int
}

// NewDecoder creates a Decoder reading from r.
func NewDecoder(r io.Reader, opts ...DecoderOption) *Decoder {
	cfg := newDecoderConfig(opts)

	return &Decoder{
		source:     newLookaheadSource(r),
		fieldNames: fields.NewReader(cfg.initialFieldNames),
		maxDepth:   cfg.maxDepth,
	}
}

// DecodeValue reads one value from the document. Head bytes are classified
// by their most-significant bits, checked in the same priority order as the
// reference decoder's dispatch loop (narrower masks first, where relevant).
func (d *Decoder) DecodeValue() (any, error) {
	for {
		head, err := d.source.ReadByte()
		if err != nil {
			return nil, errs.ErrTruncatedInput
		}

		switch {
		case head&0xC0 == 0xC0:
			return d.decodeString(head)
		case head&0x80 == 0x80:
			return d.decodeBytes(head)
		case head&0x40 == 0x40:
			return d.decodeInt(head)
		case head&0x30 == 0x30:
			return d.decodeObject(head)
		case head&0x20 == 0x20:
			return d.decodeArray(head)
		case head&0x08 == 0x08:
			v, done, err := d.decodeEnumGroup(head)
			if err != nil {
				return nil, err
			}

			if done {
				continue
			}

			return v, nil
		case head&0x04 == 0x04:
			return d.decodeFloat(head)
		}

		switch head {
		case headNull, endSentinel:
			return nil, nil
		case headFalse:
			return false, nil
		case headTrue:
			return true, nil
		default:
			return nil, fmt.Errorf("%w: 0x%02x", errs.ErrUnknownHead, head)
		}
	}
}

func (d *Decoder) decodeInt(head byte) (any, error) {
	signed := head&0x60 == 0x60
	w := int(head & 0x1f)

	if w < 24 {
		if signed {
			return -int64(w), nil
		}

		return int64(1 + w), nil
	}

	value, err := wire.ReadUint(d.source, w-23)
	if err != nil {
		return nil, err
	}

	if signed {
		return -(int64(value) + 24), nil
	}

	return int64(value) + 25, nil
}

func (d *Decoder) decodeFloat(head byte) (any, error) {
	switch head & 0b11 {
	case 0b01:
		var buf [4]byte
		if err := wire.ReadFull(d.source, buf[:]); err != nil {
			return nil, err
		}

		bits := uint32(wire.Uint(buf[:]))

		return float64(math.Float32frombits(bits)), nil
	case 0b10:
		var buf [8]byte
		if err := wire.ReadFull(d.source, buf[:]); err != nil {
			return nil, err
		}

		return math.Float64frombits(wire.Uint(buf[:])), nil
	default:
		return nil, errs.ErrReservedEncoding
	}
}

func (d *Decoder) decodeBytes(head byte) (any, error) {
	code := int(head & 0x3f)

	length, err := wire.ReadHeadLength(d.source, code, stringBytesInlineMax)
	if err != nil {
		return nil, err
	}

	buf := make([]byte, length)
	if err := wire.ReadFull(d.source, buf); err != nil {
		return nil, err
	}

	return buf, nil
}

func (d *Decoder) decodeString(head byte) (any, error) {
	raw, err := d.decodeBytes(head)
	if err != nil {
		return nil, err
	}

	buf := raw.([]byte)
	if !utf8.Valid(buf) {
		return nil, errs.ErrInvalidUTF8
	}

	text := string(buf)

	if d.enumDict != nil {
		d.enumDict.Add(text)
	}

	return text, nil
}

// decodeEnumGroup handles the three heads sharing the 0x08 bit: the
// enum-config marker (consumed internally, signaled via done=true so the
// caller re-enters the read loop) and the two enum-reference widths.
func (d *Decoder) decodeEnumGroup(head byte) (any, bool, error) {
	switch head {
	case headEnumConfig:
		if err := d.decodeEnumConfig(); err != nil {
			return nil, false, err
		}

		return nil, true, nil
	case headEnumRef1:
		idx, err := d.source.ReadByte()
		if err != nil {
			return nil, false, errs.ErrTruncatedInput
		}

		v, err := d.enumGet(int(idx))

		return v, false, err
	case headEnumRef2:
		idx, err := wire.ReadUint(d.source, 2)
		if err != nil {
			return nil, false, err
		}

		v, err := d.enumGet(int(idx))

		return v, false, err
	default:
		return nil, false, fmt.Errorf("%w: 0x%02x", errs.ErrUnknownHead, head)
	}
}

func (d *Decoder) enumGet(index int) (string, error) {
	if d.enumDict == nil {
		return "", fmt.Errorf("%w: %d", errs.ErrInvalidEnumIndex, index)
	}

	v, ok := d.enumDict.Get(index)
	if !ok {
		return "", fmt.Errorf("%w: %d", errs.ErrInvalidEnumIndex, index)
	}

	return v, nil
}

// decodeEnumConfig reads the parameter byte and min_freq byte following the
// 0x08 marker. Only sub-type 0 (LRU) is defined.
func (d *Decoder) decodeEnumConfig() error {
	param, err := d.source.ReadByte()
	if err != nil {
		return errs.ErrTruncatedInput
	}

	subType := (param >> 4) & 0xf
	if subType != 0 {
		return fmt.Errorf("%w: sub-type %d", errs.ErrInvalidEnumConfig, subType)
	}

	minFreqByte, err := d.source.ReadByte()
	if err != nil {
		return errs.ErrTruncatedInput
	}

	lruSize := enum.LRUSizeFromWireParam(param & 0xf)
	d.enumDict = enum.NewDict(enum.Config{LRUSize: lruSize, MinFreq: 1 + int(minFreqByte)})

	return nil
}

func (d *Decoder) decodeArray(head byte) (any, error) {
	if err := d.enterContainer(); err != nil {
		return nil, err
	}
	defer d.exitContainer()

	code := int(head & 0x0f)
	if code == 0x0f {
		return d.decodeArrayUntilSentinel()
	}

	length, err := wire.ReadHeadLength(d.source, code, arrayObjectInlineMax)
	if err != nil {
		return nil, err
	}

	result := make(Array, 0, length)

	for i := uint64(0); i < length; i++ {
		v, err := d.DecodeValue()
		if err != nil {
			return nil, err
		}

		result = append(result, v)
	}

	return result, nil
}

func (d *Decoder) decodeArrayUntilSentinel() (any, error) {
	result := Array{}

	for {
		more, err := d.hasMore()
		if err != nil {
			return nil, err
		}

		if !more {
			return result, nil
		}

		v, err := d.DecodeValue()
		if err != nil {
			return nil, err
		}

		result = append(result, v)
	}
}

func (d *Decoder) decodeObject(head byte) (any, error) {
	if err := d.enterContainer(); err != nil {
		return nil, err
	}
	defer d.exitContainer()

	code := int(head & 0x0f)
	if code == 0x0f {
		return d.decodeObjectUntilSentinel()
	}

	length, err := wire.ReadHeadLength(d.source, code, arrayObjectInlineMax)
	if err != nil {
		return nil, err
	}

	result := NewObject(int(length))

	for i := uint64(0); i < length; i++ {
		key, err := d.fieldNames.Decode(d.source)
		if err != nil {
			return nil, err
		}

		v, err := d.DecodeValue()
		if err != nil {
			return nil, err
		}

		result.Set(key, v)
	}

	return result, nil
}

func (d *Decoder) decodeObjectUntilSentinel() (any, error) {
	result := NewObject(0)

	for {
		more, err := d.hasMore()
		if err != nil {
			return nil, err
		}

		if !more {
			return result, nil
		}

		key, err := d.fieldNames.Decode(d.source)
		if err != nil {
			return nil, err
		}

		v, err := d.DecodeValue()
		if err != nil {
			return nil, err
		}

		result.Set(key, v)
	}
}

// hasMore peeks for the end-of-container sentinel, consuming it if found.
func (d *Decoder) hasMore() (bool, error) {
	b, err := d.source.PeekByte()
	if err != nil {
		return false, errs.ErrTruncatedInput
	}

	if b != endSentinel {
		return true, nil
	}

	_, _ = d.source.ReadByte()

	return false, nil
}

func (d *Decoder) enterContainer() error {
	d.depth++
	if d.depth > d.maxDepth {
		return errs.ErrNestingTooDeep
	}

	return nil
}

func (d *Decoder) exitContainer() {
	d.depth--
}

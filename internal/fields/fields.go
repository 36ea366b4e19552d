// Package fields implements the object field-name dictionary and its bespoke
// head-byte length sub-encoding.
//
// A Writer/Reader pair is owned by exactly one codec.Encoder/codec.Decoder for
// the lifetime of a single document; dictionaries are never shared across
// documents.
package fields

import (
	"io"
	"unicode/utf8"

	"github.com/yajbe-go/yajbe/errs"
	"github.com/yajbe-go/yajbe/internal/wire"
)

// MaxEntries is the hard maximum number of admitted field names per document:
// lengths/indices beyond this are a fatal error.
const MaxEntries = 65819

// Head-byte top-3-bit variant selectors.
const (
	headFull         = 0b100_00000
	headIndexed      = 0b101_00000
	headPrefix       = 0b110_00000
	headPrefixSuffix = 0b111_00000
)

// Writer emits object field names using the full/indexed/prefix/prefix+suffix
// strategies and tracks the admitted-name dictionary and last-emitted key.
type Writer struct {
	indexed map[string]int
	lastKey []byte
}

// NewWriter creates a Writer, optionally pre-seeding the dictionary with
// initialFieldNames in order. Only the first MaxEntries names are admitted.
func NewWriter(initialFieldNames []string) *Writer {
	w := &Writer{indexed: make(map[string]int, len(initialFieldNames))}

	for i, name := range initialFieldNames {
		if i >= MaxEntries {
			break
		}

		w.indexed[name] = i
	}

	return w
}

// Encode writes key to sink using the cheapest applicable strategy and updates
// the dictionary and last-key state.
func (w *Writer) Encode(sink io.Writer, key string) error {
	if !utf8.ValidString(key) {
		return errs.ErrInvalidUTF8
	}

	keyBytes := []byte(key)

	if index, ok := w.indexed[key]; ok {
		if err := w.writeIndexed(sink, index); err != nil {
			return err
		}

		w.lastKey = keyBytes

		return nil
	}

	if len(w.lastKey) > 0 && len(keyBytes) > 4 {
		prefix := clampByte(commonPrefix(w.lastKey, keyBytes))
		suffix := clampByte(commonSuffix(w.lastKey, keyBytes, prefix))

		var err error
		switch {
		case suffix > 2:
			err = w.writePrefixSuffix(sink, keyBytes, prefix, suffix)
		case prefix > 2:
			err = w.writePrefix(sink, keyBytes, prefix)
		default:
			err = w.writeFull(sink, keyBytes)
		}

		if err != nil {
			return err
		}
	} else if err := w.writeFull(sink, keyBytes); err != nil {
		return err
	}

	if len(w.indexed) < MaxEntries {
		w.indexed[key] = len(w.indexed)
	}

	w.lastKey = keyBytes

	return nil
}

func (w *Writer) writeFull(sink io.Writer, keyBytes []byte) error {
	if err := writeLength(sink, headFull, len(keyBytes)); err != nil {
		return err
	}

	_, err := sink.Write(keyBytes)

	return err
}

func (w *Writer) writeIndexed(sink io.Writer, index int) error {
	return writeLength(sink, headIndexed, index)
}

func (w *Writer) writePrefix(sink io.Writer, keyBytes []byte, prefix int) error {
	suffixStart := keyBytes[prefix:]
	if err := writeLength(sink, headPrefix, len(suffixStart)); err != nil {
		return err
	}

	if _, err := sink.Write([]byte{byte(prefix)}); err != nil {
		return err
	}

	_, err := sink.Write(suffixStart)

	return err
}

func (w *Writer) writePrefixSuffix(sink io.Writer, keyBytes []byte, prefix, suffix int) error {
	middle := keyBytes[prefix : len(keyBytes)-suffix]
	if err := writeLength(sink, headPrefixSuffix, len(middle)); err != nil {
		return err
	}

	if _, err := sink.Write([]byte{byte(prefix), byte(suffix)}); err != nil {
		return err
	}

	_, err := sink.Write(middle)

	return err
}

// Reader reconstructs field names emitted by a matching Writer.
type Reader struct {
	names   [][]byte
	lastKey []byte
}

// NewReader creates a Reader, pre-seeding it identically to a Writer built
// with the same initialFieldNames.
func NewReader(initialFieldNames []string) *Reader {
	r := &Reader{names: make([][]byte, 0, len(initialFieldNames))}

	for i, name := range initialFieldNames {
		if i >= MaxEntries {
			break
		}

		r.names = append(r.names, []byte(name))
	}

	return r
}

// Decode reads one field name head+payload from source and returns the
// reconstructed key.
func (r *Reader) Decode(source wire.ByteReader) (string, error) {
	head, err := source.ReadByte()
	if err != nil {
		return "", errs.ErrTruncatedInput
	}

	switch (head >> 5) & 0b111 {
	case 0b100:
		return r.readFull(source, head)
	case 0b101:
		return r.readIndexed(source, head)
	case 0b110:
		return r.readPrefix(source, head)
	case 0b111:
		return r.readPrefixSuffix(source, head)
	default:
		return "", errs.ErrUnknownHead
	}
}

func (r *Reader) readFull(source wire.ByteReader, head byte) (string, error) {
	length, err := readLength(source, head)
	if err != nil {
		return "", err
	}

	decoded := make([]byte, length)
	if err := wire.ReadFull(source, decoded); err != nil {
		return "", err
	}

	return r.admit(decoded)
}

func (r *Reader) readIndexed(source wire.ByteReader, head byte) (string, error) {
	index, err := readLength(source, head)
	if err != nil {
		return "", err
	}

	if index >= len(r.names) {
		return "", errs.ErrInvalidFieldNameIndex
	}

	decoded := r.names[index]
	r.lastKey = decoded

	return string(decoded), nil
}

func (r *Reader) readPrefix(source wire.ByteReader, head byte) (string, error) {
	length, err := readLength(source, head)
	if err != nil {
		return "", err
	}

	prefixByte, err := source.ReadByte()
	if err != nil {
		return "", errs.ErrTruncatedInput
	}

	prefix := int(prefixByte)

	mid := make([]byte, length)
	if err := wire.ReadFull(source, mid); err != nil {
		return "", err
	}

	decoded := make([]byte, 0, prefix+length)
	decoded = append(decoded, r.lastKey[:prefix]...)
	decoded = append(decoded, mid...)

	return r.admit(decoded)
}

func (r *Reader) readPrefixSuffix(source wire.ByteReader, head byte) (string, error) {
	length, err := readLength(source, head)
	if err != nil {
		return "", err
	}

	prefixByte, err := source.ReadByte()
	if err != nil {
		return "", errs.ErrTruncatedInput
	}

	suffixByte, err := source.ReadByte()
	if err != nil {
		return "", errs.ErrTruncatedInput
	}

	prefix, suffix := int(prefixByte), int(suffixByte)

	mid := make([]byte, length)
	if err := wire.ReadFull(source, mid); err != nil {
		return "", err
	}

	decoded := make([]byte, 0, prefix+length+suffix)
	decoded = append(decoded, r.lastKey[:prefix]...)
	decoded = append(decoded, mid...)
	decoded = append(decoded, r.lastKey[len(r.lastKey)-suffix:]...)

	return r.admit(decoded)
}

// admit validates a freshly decoded field name before adding it to the
// dictionary: a corrupted document can produce a byte sequence that isn't
// valid UTF-8, and that must surface as errs.ErrInvalidUTF8 rather than
// decode silently into an invalid Go string.
func (r *Reader) admit(decoded []byte) (string, error) {
	if !utf8.Valid(decoded) {
		return "", errs.ErrInvalidUTF8
	}

	r.names = append(r.names, decoded)
	r.lastKey = decoded

	return string(decoded), nil
}

// writeLength emits the 5-bit length sub-encoding: 0-29 inline, 30 => one
// extra byte (total = 29+byte), 31 => two extra bytes (total = 284 +
// 256*b1 + b2). A length above MaxEntries returns errs.ErrDictionaryOverflow.
func writeLength(sink io.Writer, head byte, length int) error {
	switch {
	case length < 30:
		_, err := sink.Write([]byte{head | byte(length)})
		return err
	case length <= 284:
		_, err := sink.Write([]byte{head | 30, byte(length - 29)})
		return err
	case length <= MaxEntries:
		rem := length - 284
		_, err := sink.Write([]byte{head | 31, byte(rem / 256), byte(rem % 256)})
		return err
	default:
		return errs.ErrDictionaryOverflow
	}
}

func readLength(source wire.ByteReader, head byte) (int, error) {
	code := int(head & 0b000_11111)
	if code < 30 {
		return code, nil
	}

	if code == 30 {
		b, err := source.ReadByte()
		if err != nil {
			return 0, errs.ErrTruncatedInput
		}

		return int(b) + 29, nil
	}

	var buf [2]byte
	if err := wire.ReadFull(source, buf[:]); err != nil {
		return 0, err
	}

	return 284 + int(buf[0])*256 + int(buf[1]), nil
}

func clampByte(v int) int {
	if v > 0xff {
		return 0xff
	}

	return v
}

func commonPrefix(lastKey, key []byte) int {
	minLen := len(lastKey)
	if len(key) < minLen {
		minLen = len(key)
	}

	for i := 0; i < minLen; i++ {
		if lastKey[i] != key[i] {
			return i
		}
	}

	return minLen
}

// commonSuffix returns the length of the common suffix between lastKey and
// key[prefix:]; it never searches past the prefix boundary on the key side,
// and never past the whole of lastKey.
func commonSuffix(lastKey, key []byte, prefix int) int {
	lastLen := len(lastKey)
	keyLen := len(key) - prefix

	minLen := lastLen
	if keyLen < minLen {
		minLen = keyLen
	}

	for i := 1; i <= minLen; i++ {
		if lastKey[lastLen-i] != key[prefix+keyLen-i] {
			return i - 1
		}
	}

	return minLen
}

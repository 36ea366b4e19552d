// Package wire implements the bit-level framing primitives shared by every
// variable-length value kind: single-byte writes/reads, little-endian unsigned
// integer packing of width 1-8, and the "head+inline-or-extended length"
// scheme used by strings, byte blobs, arrays, and objects.
//
// This package has no notion of value kinds (strings, arrays, ...) - it only
// knows how to pack and unpack lengths and small unsigned integers. The codec
// package layers kind dispatch on top of it, keeping this package ignorant
// of what's being encoded.
package wire

import (
	"io"

	"github.com/yajbe-go/yajbe/errs"
)

// ByteWidth returns the minimum number of bytes (1-8) needed to hold v;
// zero still takes one byte.
func ByteWidth(v uint64) int {
	if v == 0 {
		return 1
	}

	w := 0
	for v > 0 {
		w++
		v >>= 8
	}

	return w
}

// PutUint writes the low width bytes of v into dst in little-endian order.
// dst must have length >= width.
func PutUint(dst []byte, v uint64, width int) {
	for i := 0; i < width; i++ {
		dst[i] = byte(v >> (8 * i))
	}
}

// Uint reconstructs a little-endian unsigned integer from the given bytes.
func Uint(src []byte) uint64 {
	var v uint64
	for i, b := range src {
		v |= uint64(b) << (8 * i)
	}

	return v
}

// WriteUint writes a little-endian unsigned integer of the given byte width
// directly to w.
func WriteUint(w io.Writer, v uint64, width int) error {
	var buf [8]byte
	PutUint(buf[:width], v, width)
	_, err := w.Write(buf[:width])

	return err
}

// ReadUint reads a little-endian unsigned integer of the given byte width from r.
func ReadUint(r ByteReader, width int) (uint64, error) {
	var buf [8]byte
	if err := ReadFull(r, buf[:width]); err != nil {
		return 0, err
	}

	return Uint(buf[:width]), nil
}

// ByteReader is the minimal read surface the wire package needs: single bytes
// and fixed-length runs, both reporting truncation as errs.ErrTruncatedInput.
type ByteReader interface {
	ReadByte() (byte, error)
	Read(p []byte) (int, error)
}

// ReadFull reads exactly len(p) bytes from r into p, translating any short
// read or io.EOF into errs.ErrTruncatedInput.
func ReadFull(r ByteReader, p []byte) error {
	if len(p) == 0 {
		return nil
	}

	n, err := io.ReadFull(readerFunc(r.Read), p)
	if err != nil || n != len(p) {
		return errs.ErrTruncatedInput
	}

	return nil
}

type readerFunc func(p []byte) (int, error)

func (f readerFunc) Read(p []byte) (int, error) { return f(p) }

// WriteHeadLength writes the head+length framing used by strings, byte blobs,
// arrays, and objects: a head byte carrying head|code,
// where code in [0, inlineMax] is the length itself, and code in
// [inlineMax+1, inlineMax+8] indicates that w = code-inlineMax extra
// little-endian bytes follow, encoding length-inlineMax. The smallest w that
// fits is always chosen.
func WriteHeadLength(w io.Writer, head byte, inlineMax int, length uint64) error {
	if length <= uint64(inlineMax) {
		_, err := w.Write([]byte{head | byte(length)})
		return err
	}

	delta := length - uint64(inlineMax)
	width := ByteWidth(delta)

	if _, err := w.Write([]byte{head | byte(inlineMax+width)}); err != nil {
		return err
	}

	return WriteUint(w, delta, width)
}

// ReadHeadLength decodes the length encoded by WriteHeadLength, given the head
// byte already read and masked down to its low bits (code).
func ReadHeadLength(r ByteReader, code int, inlineMax int) (uint64, error) {
	if code <= inlineMax {
		return uint64(code), nil
	}

	width := code - inlineMax
	delta, err := ReadUint(r, width)
	if err != nil {
		return 0, err
	}

	return uint64(inlineMax) + delta, nil
}

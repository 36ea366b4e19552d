package wire

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestByteWidth(t *testing.T) {
	cases := []struct {
		v    uint64
		want int
	}{
		{0, 1},
		{1, 1},
		{255, 1},
		{256, 2},
		{65535, 2},
		{65536, 3},
		{1 << 56, 8},
	}

	for _, c := range cases {
		require.Equal(t, c.want, ByteWidth(c.v))
	}
}

func TestPutUintRoundTrip(t *testing.T) {
	for _, v := range []uint64{0, 1, 255, 256, 65819, 1 << 40} {
		w := ByteWidth(v)
		buf := make([]byte, w)
		PutUint(buf, v, w)
		require.Equal(t, v, Uint(buf))
	}
}

type stubReader struct {
	b *bytes.Reader
}

func (s stubReader) ReadByte() (byte, error) { return s.b.ReadByte() }
func (s stubReader) Read(p []byte) (int, error) { return s.b.Read(p) }

func TestWriteReadHeadLength_Inline(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteHeadLength(&buf, 0b11_000000, 59, 3))
	require.Equal(t, []byte{0b11_000000 | 3}, buf.Bytes())

	r := stubReader{bytes.NewReader(buf.Bytes()[1:])}
	got, err := ReadHeadLength(r, 3, 59)
	require.NoError(t, err)
	require.Equal(t, uint64(3), got)
}

func TestWriteReadHeadLength_Extended(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteHeadLength(&buf, 0b0011_0000, 10, 300))

	head := buf.Bytes()[0]
	code := int(head &^ 0b0011_0000 & 0b1111)
	require.Equal(t, 10+ByteWidth(300-10), code)

	r := stubReader{bytes.NewReader(buf.Bytes()[1:])}
	got, err := ReadHeadLength(r, code, 10)
	require.NoError(t, err)
	require.Equal(t, uint64(300), got)
}

func TestWriteHeadLength_MinimalWidth(t *testing.T) {
	// The extension width must never be larger than necessary.
	for _, length := range []uint64{60, 315, 65595} {
		var buf bytes.Buffer
		require.NoError(t, WriteHeadLength(&buf, 0b11_000000, 59, length))

		delta := length - 59
		want := ByteWidth(delta)
		code := int(buf.Bytes()[0] &^ 0b11_000000)
		require.Equal(t, 59+want, code)
	}
}

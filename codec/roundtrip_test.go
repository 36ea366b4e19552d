package codec_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/yajbe-go/yajbe/codec"
)

func roundtrip(t *testing.T, v any, encOpts []codec.EncoderOption, decOpts []codec.DecoderOption) any {
	t.Helper()

	var buf bytes.Buffer
	enc := codec.NewEncoder(&buf, encOpts...)
	require.NoError(t, enc.EncodeValue(v))

	dec := codec.NewDecoder(bytes.NewReader(buf.Bytes()), decOpts...)
	got, err := dec.DecodeValue()
	require.NoError(t, err)

	return got
}

func TestRoundtrip_Scalars(t *testing.T) {
	require.Nil(t, roundtrip(t, nil, nil, nil))
	require.Equal(t, true, roundtrip(t, true, nil, nil))
	require.Equal(t, false, roundtrip(t, false, nil, nil))
	require.Equal(t, int64(0), roundtrip(t, int64(0), nil, nil))
	require.Equal(t, int64(-1000), roundtrip(t, int64(-1000), nil, nil))
	require.Equal(t, int64(1<<40), roundtrip(t, int64(1<<40), nil, nil))
	require.Equal(t, 3.14159, roundtrip(t, 3.14159, nil, nil))
	require.Equal(t, []byte{1, 2, 3}, roundtrip(t, []byte{1, 2, 3}, nil, nil))
	require.Equal(t, "hello, world", roundtrip(t, "hello, world", nil, nil))
}

func TestRoundtrip_LargeArray(t *testing.T) {
	arr := make(codec.Array, 0, 500)
	for i := 0; i < 500; i++ {
		arr = append(arr, int64(i))
	}

	got := roundtrip(t, arr, nil, nil)
	require.Equal(t, codec.Array(arr), got)
}

func TestRoundtrip_NestedObjectsAndArrays(t *testing.T) {
	inner := codec.NewObject(2).Set("x", int64(1)).Set("y", int64(2))
	outer := codec.NewObject(2).
		Set("points", codec.Array{inner, inner}).
		Set("label", "plot")

	got := roundtrip(t, outer, nil, nil)
	obj, ok := got.(*codec.Object)
	require.True(t, ok)
	require.Equal(t, 2, obj.Len())

	label, ok := obj.Get("label")
	require.True(t, ok)
	require.Equal(t, "plot", label)

	points, ok := obj.Get("points")
	require.True(t, ok)
	require.Len(t, points.(codec.Array), 2)
}

func TestRoundtrip_FieldDictionarySharedAcrossObjects(t *testing.T) {
	arr := codec.Array{
		codec.NewObject(2).Set("id", int64(1)).Set("name", "alice"),
		codec.NewObject(2).Set("id", int64(2)).Set("name", "bob"),
	}

	got := roundtrip(t, arr, nil, nil)
	decoded, ok := got.(codec.Array)
	require.True(t, ok)
	require.Len(t, decoded, 2)

	first := decoded[0].(*codec.Object)
	name, ok := first.Get("name")
	require.True(t, ok)
	require.Equal(t, "alice", name)
}

func TestRoundtrip_EnumDictionary(t *testing.T) {
	encOpts := []codec.EncoderOption{codec.WithEnumConfig(32, 2)}

	arr := codec.Array{"status", "status", "status", "status"}
	got := roundtrip(t, arr, encOpts, nil)

	decoded, ok := got.(codec.Array)
	require.True(t, ok)
	require.Len(t, decoded, 4)

	for _, v := range decoded {
		require.Equal(t, "status", v)
	}
}

func TestRoundtrip_PreseededFieldNames(t *testing.T) {
	names := []string{"hello", "world"}
	encOpts := []codec.EncoderOption{codec.WithInitialFieldNames(names)}
	decOpts := []codec.DecoderOption{codec.WithDecoderInitialFieldNames(names)}

	obj := codec.NewObject(2).Set("world", int64(2)).Set("hello", int64(1))
	got := roundtrip(t, obj, encOpts, decOpts)

	decoded, ok := got.(*codec.Object)
	require.True(t, ok)

	world, ok := decoded.Get("world")
	require.True(t, ok)
	require.Equal(t, int64(2), world)
}

package yajbe_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/yajbe-go/yajbe"
	"github.com/yajbe-go/yajbe/codec"
)

func TestEncodeDecodeBytes(t *testing.T) {
	obj := codec.NewObject(2).Set("id", int64(1)).Set("name", "alice")

	data, err := yajbe.EncodeToBytes(obj)
	require.NoError(t, err)

	v, err := yajbe.DecodeFromBytes(data)
	require.NoError(t, err)

	decoded, ok := v.(*codec.Object)
	require.True(t, ok)

	name, ok := decoded.Get("name")
	require.True(t, ok)
	require.Equal(t, "alice", name)
}

func TestEncodeDecodeSinkSource(t *testing.T) {
	var buf bytes.Buffer

	err := yajbe.EncodeToSink(&buf, codec.Array{int64(1), int64(2), int64(3)})
	require.NoError(t, err)

	v, err := yajbe.DecodeFromSource(bytes.NewReader(buf.Bytes()))
	require.NoError(t, err)
	require.Equal(t, codec.Array{int64(1), int64(2), int64(3)}, v)
}

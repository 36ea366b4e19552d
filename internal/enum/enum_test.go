package enum

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestWireParamRoundTrip(t *testing.T) {
	for aaaa := byte(0); aaaa <= 10; aaaa++ {
		size := LRUSizeFromWireParam(aaaa)
		cfg := Config{LRUSize: size, MinFreq: 1}
		require.Equal(t, aaaa, cfg.WireParam())
	}
}

func TestAdd_AdmitsAfterMinFreq(t *testing.T) {
	d := NewDict(Config{LRUSize: 32, MinFreq: 3})

	require.Equal(t, -1, d.Add("x")) // 1st occurrence
	require.Equal(t, -1, d.Add("x")) // 2nd occurrence
	require.Equal(t, -1, d.Add("x")) // 3rd occurrence: admits, still literal this time
	require.Equal(t, 0, d.Add("x"))  // 4th occurrence: now referenced
}

func TestAdd_MinFreqOne_AdmitsImmediatelyButNotThisOccurrence(t *testing.T) {
	d := NewDict(Config{LRUSize: 32, MinFreq: 1})

	require.Equal(t, -1, d.Add("a"))
	require.Equal(t, 0, d.Add("a"))
	require.Equal(t, 0, d.Add("a"))
}

func TestGet_ReturnsAdmittedString(t *testing.T) {
	d := NewDict(Config{LRUSize: 32, MinFreq: 1})
	d.Add("a")
	idx := d.Add("a")
	require.Equal(t, 0, idx)

	got, ok := d.Get(0)
	require.True(t, ok)
	require.Equal(t, "a", got)

	_, ok = d.Get(1)
	require.False(t, ok)
}

func TestEviction_LeastRecentlyUsedIsReused(t *testing.T) {
	d := NewDict(Config{LRUSize: 2, MinFreq: 1})

	d.Add("a") // admits at slot 0
	d.Add("b") // admits at slot 1
	require.Equal(t, 0, d.Add("a")) // touches "a", now most-recently-used
	require.Equal(t, 1, d.Add("b")) // touches "b", now most-recently-used; "a" is LRU

	d.Add("c") // admits, evicting "a" (LRU), reusing slot 0

	got, ok := d.Get(0)
	require.True(t, ok)
	require.Equal(t, "c", got)

	require.Equal(t, 1, d.Add("b")) // "b" survives
}

func TestEvictedString_ReentersViaFullAdmissionDiscipline(t *testing.T) {
	d := NewDict(Config{LRUSize: 1, MinFreq: 2})

	require.Equal(t, -1, d.Add("a"))
	require.Equal(t, -1, d.Add("a")) // admits at slot 0
	require.Equal(t, 0, d.Add("a"))

	require.Equal(t, -1, d.Add("b")) // 1st occurrence, not yet admitted
	require.Equal(t, -1, d.Add("b")) // 2nd occurrence: admits, evicting "a"

	// "a" must re-earn admission from scratch.
	require.Equal(t, -1, d.Add("a"))
}

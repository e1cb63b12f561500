package pool

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGetFloat64Slice(t *testing.T) {
	t.Run("returns slice with requested length", func(t *testing.T) {
		s, release := GetFloat64Slice(100)
		defer release()

		require.Len(t, s, 100)
		require.GreaterOrEqual(t, cap(s), 100)
	})

	t.Run("reuses capacity after release", func(t *testing.T) {
		s1, release1 := GetFloat64Slice(64)
		p1 := &s1[0]
		release1()

		s2, release2 := GetFloat64Slice(32)
		defer release2()

		require.Len(t, s2, 32)
		require.Same(t, p1, &s2[0], "should reuse the pooled backing array")
	})

	t.Run("grows when capacity is insufficient", func(t *testing.T) {
		_, release1 := GetFloat64Slice(4)
		release1()

		s, release2 := GetFloat64Slice(4096)
		defer release2()

		require.Len(t, s, 4096)
	})
}

func TestByteBuffer(t *testing.T) {
	t.Run("write appends", func(t *testing.T) {
		bb := NewByteBuffer(2)
		n, err := bb.Write([]byte{1, 2, 3})

		require.NoError(t, err)
		require.Equal(t, 3, n)
		require.Equal(t, []byte{1, 2, 3}, bb.Bytes())
		require.Equal(t, 3, bb.Len())
	})

	t.Run("grow reserves capacity", func(t *testing.T) {
		bb := NewByteBuffer(0)
		bb.Grow(10)

		require.GreaterOrEqual(t, cap(bb.B), 10)
		require.Zero(t, bb.Len())
	})

	t.Run("grow keeps contents", func(t *testing.T) {
		bb := NewByteBuffer(1)
		_, _ = bb.Write([]byte{9})
		bb.Grow(TableBufferDefaultSize * 2)

		require.Equal(t, []byte{9}, bb.Bytes())
	})
}

func TestByteBufferPool(t *testing.T) {
	t.Run("returned buffers are empty", func(t *testing.T) {
		bb := GetTableBuffer()
		_, _ = bb.Write([]byte("payload"))
		PutTableBuffer(bb)

		bb2 := GetTableBuffer()
		defer PutTableBuffer(bb2)
		require.Zero(t, bb2.Len())
	})

	t.Run("oversized buffers are dropped", func(t *testing.T) {
		p := NewByteBufferPool(8, 16)
		big := NewByteBuffer(64)
		p.Put(big)

		got := p.Get()
		require.NotSame(t, big, got)
	})

	t.Run("nil put is ignored", func(t *testing.T) {
		require.NotPanics(t, func() { PutTableBuffer(nil) })
	})
}

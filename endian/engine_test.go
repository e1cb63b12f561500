package endian

import (
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestEngines(t *testing.T) {
	t.Run("little endian", func(t *testing.T) {
		engine := GetLittleEndianEngine()
		require.Equal(t, binary.LittleEndian, engine)
		require.False(t, IsBigEndian(engine))

		buf := engine.AppendUint16(nil, 0x0102)
		require.Equal(t, []byte{0x02, 0x01}, buf)
	})

	t.Run("big endian", func(t *testing.T) {
		engine := GetBigEndianEngine()
		require.Equal(t, binary.BigEndian, engine)
		require.True(t, IsBigEndian(engine))

		buf := engine.AppendUint16(nil, 0x0102)
		require.Equal(t, []byte{0x01, 0x02}, buf)
	})
}

func TestFromFlag(t *testing.T) {
	require.Equal(t, GetLittleEndianEngine(), FromFlag(false))
	require.Equal(t, GetBigEndianEngine(), FromFlag(true))

	for _, big := range []bool{false, true} {
		engine := FromFlag(big)
		buf := engine.AppendUint64(nil, 0xDEADBEEFCAFEF00D)
		require.Equal(t, uint64(0xDEADBEEFCAFEF00D), engine.Uint64(buf))
		require.Equal(t, big, IsBigEndian(engine))
	}
}

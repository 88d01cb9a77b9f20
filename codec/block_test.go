package codec

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/countof"
)

func TestEncodeDecode(t *testing.T) {
	compressible := bytes.Repeat([]byte("hello world! "), 1000)

	for _, typ := range []Type{None, LZ4, ZSTD} {
		t.Run(typ.String(), func(t *testing.T) {
			block, err := Encode(compressible, typ)
			require.NoError(t, err)

			h, err := ReadHeader(block)
			require.NoError(t, err)
			assert.Equal(t, countof.LenOf(compressible), h.Uncompressed)
			assert.Equal(t, countof.LenOf(block), h.BlockSize())

			if typ == None {
				assert.True(t, h.Stored())
			} else {
				assert.False(t, h.Stored())
				assert.Less(t, len(block), len(compressible)/2)
			}

			got, err := Decode(block, typ)
			require.NoError(t, err)
			assert.Equal(t, compressible, got)
		})
	}
}

func TestEncode_Incompressible(t *testing.T) {
	data := make([]byte, 1000)
	for i := range data {
		data[i] = byte(i * 17 % 256)
	}

	for _, typ := range []Type{LZ4, ZSTD} {
		block, err := Encode(data, typ)
		require.NoError(t, err)

		h, err := ReadHeader(block)
		require.NoError(t, err)
		if h.Stored() {
			assert.Equal(t, HeaderSize.Add(countof.LenOf(data)), countof.LenOf(block))
		}

		got, err := Decode(block, typ)
		require.NoError(t, err)
		assert.Equal(t, data, got)
	}
}

func TestEncode_Empty(t *testing.T) {
	for _, typ := range []Type{None, LZ4, ZSTD} {
		block, err := Encode(nil, typ)
		require.NoError(t, err)
		assert.Equal(t, HeaderSize, countof.LenOf(block))

		got, err := Decode(block, typ)
		require.NoError(t, err)
		assert.Empty(t, got)
	}
}

func TestEncode_UnknownType(t *testing.T) {
	_, err := Encode([]byte("x"), Type(9))
	assert.ErrorIs(t, err, ErrUnknownType)
}

func TestDecode_Errors(t *testing.T) {
	data := bytes.Repeat([]byte("abcd"), 512)
	block, err := Encode(data, LZ4)
	require.NoError(t, err)

	t.Run("short header", func(t *testing.T) {
		_, err := Decode(block[:4], LZ4)
		assert.ErrorIs(t, err, ErrShortBlock)
	})

	t.Run("truncated payload", func(t *testing.T) {
		_, err := Decode(block[:len(block)-1], LZ4)
		assert.ErrorIs(t, err, ErrShortBlock)
	})

	t.Run("wrong type", func(t *testing.T) {
		_, err := Decode(block, ZSTD)
		assert.ErrorIs(t, err, ErrCorrupt)
	})

	t.Run("unknown type", func(t *testing.T) {
		_, err := Decode(block, Type(7))
		assert.ErrorIs(t, err, ErrUnknownType)
	})

	t.Run("size mismatch", func(t *testing.T) {
		bad := bytes.Clone(block)
		bad[0]++ // claims one more uncompressed byte
		_, err := Decode(bad, LZ4)
		assert.ErrorIs(t, err, ErrCorrupt)
	})
}

func TestParseType(t *testing.T) {
	for _, typ := range []Type{None, LZ4, ZSTD} {
		got, err := ParseType(typ.String())
		require.NoError(t, err)
		assert.Equal(t, typ, got)
	}

	_, err := ParseType("snappy")
	assert.ErrorIs(t, err, ErrUnknownType)
	assert.Equal(t, "Type(5)", Type(5).String())
}

func BenchmarkEncode(b *testing.B) {
	data := bytes.Repeat([]byte("hello world! "), 5000)

	for _, typ := range []Type{LZ4, ZSTD} {
		b.Run(typ.String(), func(b *testing.B) {
			b.ReportAllocs()
			b.SetBytes(int64(len(data)))
			for b.Loop() {
				_, _ = Encode(data, typ)
			}
		})
	}
}

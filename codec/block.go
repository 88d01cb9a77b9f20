package codec

import (
	"encoding/binary"
	"errors"
	"fmt"
	"sync"

	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"

	"github.com/hupe1980/countof"
	"github.com/hupe1980/countof/internal/conv"
)

// Type defines the compression algorithm used for a block.
type Type uint8

const (
	// None stores blocks uncompressed.
	None Type = 0
	// LZ4 uses LZ4 block compression (fast, good for hot data).
	LZ4 Type = 1
	// ZSTD uses ZSTD block compression (better ratio, good for cold data).
	ZSTD Type = 2
)

func (t Type) String() string {
	switch t {
	case None:
		return "none"
	case LZ4:
		return "lz4"
	case ZSTD:
		return "zstd"
	default:
		return fmt.Sprintf("Type(%d)", uint8(t))
	}
}

// ParseType returns the Type named s ("none", "lz4" or "zstd").
func ParseType(s string) (Type, error) {
	switch s {
	case "none", "":
		return None, nil
	case "lz4":
		return LZ4, nil
	case "zstd":
		return ZSTD, nil
	default:
		return None, fmt.Errorf("%w: %q", ErrUnknownType, s)
	}
}

var (
	// ErrShortBlock is returned when a block is smaller than its header says.
	ErrShortBlock = errors.New("codec: block too short")
	// ErrCorrupt is returned when a block does not decompress to its
	// recorded size.
	ErrCorrupt = errors.New("codec: corrupt block")
	// ErrUnknownType is returned for an unsupported compression type.
	ErrUnknownType = errors.New("codec: unknown compression type")
	// ErrTooLarge is returned when a block does not fit the 32-bit header.
	ErrTooLarge = errors.New("codec: block too large")
)

// HeaderSize is the size of the block header.
var HeaderSize = countof.Bytes(8)

// Header is the header of an encoded block.
// Format: [Uncompressed uint32][Compressed uint32][Data...]
// A zero Compressed size means the data is stored as is.
type Header struct {
	Uncompressed countof.ByteCount
	Compressed   countof.ByteCount
}

// Stored reports whether the block data is uncompressed.
func (h Header) Stored() bool {
	return h.Compressed.IsZero()
}

// PayloadSize returns the number of data bytes following the header.
func (h Header) PayloadSize() countof.ByteCount {
	if h.Stored() {
		return h.Uncompressed
	}
	return h.Compressed
}

// BlockSize returns the encoded size of the block, header included.
func (h Header) BlockSize() countof.ByteCount {
	return HeaderSize.Add(h.PayloadSize())
}

// ReadHeader parses the header at the start of block.
func ReadHeader(block []byte) (Header, error) {
	if countof.LenOf(block).Lt(HeaderSize) {
		return Header{}, fmt.Errorf("%w: %d bytes, header needs %s", ErrShortBlock, len(block), HeaderSize)
	}
	return Header{
		Uncompressed: countof.Bytes(uint64(binary.LittleEndian.Uint32(block[0:]))),
		Compressed:   countof.Bytes(uint64(binary.LittleEndian.Uint32(block[4:]))),
	}, nil
}

// ZSTD encoder/decoder pools for efficiency
var (
	zstdEncoderPool sync.Pool
	zstdDecoderPool sync.Pool
)

func getZstdEncoder() *zstd.Encoder {
	if v := zstdEncoderPool.Get(); v != nil {
		return v.(*zstd.Encoder)
	}
	enc, _ := zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedDefault))
	return enc
}

func getZstdDecoder() *zstd.Decoder {
	if v := zstdDecoderPool.Get(); v != nil {
		return v.(*zstd.Decoder)
	}
	dec, _ := zstd.NewReader(nil)
	return dec
}

// Encode compresses data with t and prepends a header. Data that does not
// shrink below 90% of its size is stored uncompressed.
func Encode(data []byte, t Type) ([]byte, error) {
	size, err := conv.ToUint32(uint64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrTooLarge, err)
	}

	var compressed []byte
	switch t {
	case None:
	case LZ4:
		if compressed, err = encodeLZ4(data); err != nil {
			return nil, err
		}
	case ZSTD:
		if len(data) > 0 {
			enc := getZstdEncoder()
			compressed = enc.EncodeAll(data, nil)
			zstdEncoderPool.Put(enc)
		}
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownType, t)
	}

	if len(compressed) == 0 || float64(len(compressed)) > float64(len(data))*0.9 {
		return frame(size, 0, data), nil
	}
	return frame(size, uint32(len(compressed)), compressed), nil //nolint:gosec // compressed is smaller than data
}

func frame(uncompressed, compressed uint32, payload []byte) []byte {
	out := make([]byte, HeaderSize.ToSize()+uint(len(payload)))
	binary.LittleEndian.PutUint32(out[0:], uncompressed)
	binary.LittleEndian.PutUint32(out[4:], compressed)
	copy(out[HeaderSize.ToSize():], payload)
	return out
}

func encodeLZ4(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}
	dst := make([]byte, lz4.CompressBlockBound(len(data)))
	n, err := lz4.CompressBlock(data, dst, nil)
	if err != nil {
		return nil, err
	}
	// n == 0 means incompressible
	return dst[:n], nil
}

// Decode returns the data of an encoded block. t must be the type the block
// was encoded with; stored blocks decode with any type. The result of a
// stored block aliases block.
func Decode(block []byte, t Type) ([]byte, error) {
	h, err := ReadHeader(block)
	if err != nil {
		return nil, err
	}
	if countof.LenOf(block).Lt(h.BlockSize()) {
		return nil, fmt.Errorf("%w: need %s, have %d bytes", ErrShortBlock, h.BlockSize(), len(block))
	}

	payload := block[HeaderSize.ToSize():h.BlockSize().ToSize()]
	if h.Stored() {
		return payload, nil
	}

	out := make([]byte, h.Uncompressed.ToSize())
	switch t {
	case LZ4:
		n, err := lz4.UncompressBlock(payload, out)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrCorrupt, err)
		}
		out = out[:n]
	case ZSTD:
		dec := getZstdDecoder()
		out, err = dec.DecodeAll(payload, out[:0])
		zstdDecoderPool.Put(dec)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrCorrupt, err)
		}
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownType, t)
	}

	if !countof.LenOf(out).Eq(h.Uncompressed) {
		return nil, fmt.Errorf("%w: decoded %d bytes, header says %s", ErrCorrupt, len(out), h.Uncompressed)
	}
	return out, nil
}

package codec

import (
	"bytes"
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/hupe1980/countof"
)

// DefaultBlockSize is used when EncodeBlocks gets a zero block size.
var DefaultBlockSize = countof.KBs(256)

// EncodeBlocks splits data into blocks of blockSize and encodes them in
// parallel. The result holds one encoded block per input block, in order.
func EncodeBlocks(ctx context.Context, data []byte, blockSize countof.KbCount, t Type) ([][]byte, error) {
	if blockSize.IsZero() {
		blockSize = DefaultBlockSize
	}
	size := countof.To[countof.Byte](blockSize).ToSize()

	n := (uint(len(data)) + size - 1) / size
	out := make([][]byte, n)

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))

	for i := range out {
		start := uint(i) * size
		end := min(start+size, uint(len(data)))
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			block, err := Encode(data[start:end], t)
			if err != nil {
				return err
			}
			out[i] = block
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

// DecodeBlocks decodes blocks in parallel and returns their concatenated
// data.
func DecodeBlocks(ctx context.Context, blocks [][]byte, t Type) ([]byte, error) {
	parts := make([][]byte, len(blocks))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))

	for i, block := range blocks {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			data, err := Decode(block, t)
			if err != nil {
				return err
			}
			parts[i] = data
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return bytes.Join(parts, nil), nil
}

// SplitBlocks splits a concatenation of encoded blocks, as written by
// Writer, into the individual blocks. The blocks alias data.
func SplitBlocks(data []byte) ([][]byte, error) {
	var blocks [][]byte
	for len(data) > 0 {
		h, err := ReadHeader(data)
		if err != nil {
			return nil, err
		}
		size := h.BlockSize()
		if countof.LenOf(data).Lt(size) {
			return nil, ErrShortBlock
		}
		blocks = append(blocks, data[:size.ToSize()])
		data = data[size.ToSize():]
	}
	return blocks, nil
}

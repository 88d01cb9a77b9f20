package codec

import (
	"bytes"
	"io"

	"github.com/hupe1980/countof"
)

// Writer buffers data and writes it to an underlying writer as a sequence
// of encoded blocks.
type Writer struct {
	w         io.Writer
	t         Type
	blockSize int
	buffer    *bytes.Buffer
	written   countof.ByteCount
}

// NewWriter creates a Writer that encodes with t. A zero blockSize selects
// DefaultBlockSize.
func NewWriter(w io.Writer, t Type, blockSize countof.KbCount) *Writer {
	if blockSize.IsZero() {
		blockSize = DefaultBlockSize
	}
	size := int(countof.To[countof.Byte](blockSize).ToSize()) //nolint:gosec // block sizes are small
	return &Writer{
		w:         w,
		t:         t,
		blockSize: size,
		buffer:    bytes.NewBuffer(make([]byte, 0, size)),
	}
}

// Write writes p to the buffer, flushing full blocks as needed.
func (c *Writer) Write(p []byte) (int, error) {
	total := 0
	for len(p) > 0 {
		space := c.blockSize - c.buffer.Len()
		if space <= 0 {
			if err := c.Flush(); err != nil {
				return total, err
			}
			space = c.blockSize
		}

		n, _ := c.buffer.Write(p[:min(len(p), space)])
		total += n
		p = p[n:]
	}
	return total, nil
}

// Flush encodes and writes the buffered block, if any.
func (c *Writer) Flush() error {
	if c.buffer.Len() == 0 {
		return nil
	}

	block, err := Encode(c.buffer.Bytes(), c.t)
	if err != nil {
		return err
	}

	n, err := c.w.Write(block)
	c.written.AddAssign(countof.Bytes(uint64(n))) //nolint:gosec // n >= 0
	if err != nil {
		return err
	}
	c.buffer.Reset()
	return nil
}

// Written returns the encoded bytes written so far.
func (c *Writer) Written() countof.ByteCount {
	return c.written
}

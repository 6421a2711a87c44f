package model

import (
	"encoding/hex"
	"fmt"
)

// Buffer is an immutable view of packet bits. Content holds the bits
// right-aligned in the minimum number of bytes; Length is the bit count.
type Buffer struct {
	Content []byte
	Length  int
}

// NewBuffer wraps whole bytes, setting Length to 8 bits per byte.
func NewBuffer(content []byte) Buffer {
	return Buffer{Content: content, Length: len(content) * 8}
}

// Len returns the length in bits.
func (b Buffer) Len() int {
	return b.Length
}

// Key identifies a value regardless of which packet it came from.
// Two buffers with equal bits but different lengths have different keys.
func (b Buffer) Key() string {
	return fmt.Sprintf("%d:%x", b.Length, b.Content)
}

// String renders the content as hex, e.g. 0x4500.
func (b Buffer) String() string {
	if len(b.Content) == 0 {
		return "0x"
	}
	return "0x" + hex.EncodeToString(b.Content)
}

// Slice extracts length bits starting at bit offset, counted from the most
// significant bit of Content. Buffers built by NewBuffer are byte aligned,
// so offsets match on-the-wire bit positions.
func (b Buffer) Slice(offset, length int) (Buffer, error) {
	if offset < 0 || length < 0 || offset+length > len(b.Content)*8 {
		return Buffer{}, fmt.Errorf("bit range [%d, %d) out of bounds for %d bytes", offset, offset+length, len(b.Content))
	}
	out := make([]byte, (length+7)/8)
	// Right-align: the first output bit lands at pad.
	pad := len(out)*8 - length
	for i := 0; i < length; i++ {
		src := offset + i
		if b.Content[src/8]&(0x80>>(src%8)) == 0 {
			continue
		}
		dst := pad + i
		out[dst/8] |= 0x80 >> (dst % 8)
	}
	return Buffer{Content: out, Length: length}, nil
}

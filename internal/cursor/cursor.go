// Package cursor provides a position tracking reader for typed access to
// in-memory binary game data.
//
// All multi byte reads are little-endian, except ReadUInt24BE. A failed read
// never advances the position.
package cursor

import (
	"encoding/binary"
	"errors"
	"fmt"
	"math"
	"strings"

	"golang.org/x/text/encoding/charmap"
)

// ErrOutOfRange is returned when a read or seek would exceed the buffer.
var ErrOutOfRange = errors.New("out of range")

// RangeError describes a read that did not fit into the buffer.
type RangeError struct {
	Offset int // position the read started at
	Size   int // number of bytes requested
	Length int // buffer length
}

func (e *RangeError) Error() string {
	return fmt.Sprintf("reading %d bytes at offset 0x%04x of %d byte buffer: %s",
		e.Size, e.Offset, e.Length, ErrOutOfRange)
}

// Unwrap returns ErrOutOfRange.
func (e *RangeError) Unwrap() error {
	return ErrOutOfRange
}

// Cursor reads typed values from an immutable byte buffer.
// A cursor must not be shared between concurrent decode operations.
type Cursor struct {
	data     []byte
	position int
}

// New returns a cursor positioned at the start of data.
// The buffer is not copied and must not be modified while the cursor is in use.
func New(data []byte) *Cursor {
	return &Cursor{data: data}
}

// Len returns the buffer length.
func (c *Cursor) Len() int {
	return len(c.data)
}

// Remaining returns the number of bytes after the current position.
func (c *Cursor) Remaining() int {
	return len(c.data) - c.position
}

// Bytes returns the underlying buffer. The caller must not modify it.
func (c *Cursor) Bytes() []byte {
	return c.data
}

// Position returns the current read position.
func (c *Cursor) Position() int {
	return c.position
}

// SetPosition moves the cursor to an absolute offset.
func (c *Cursor) SetPosition(offset int) error {
	if offset < 0 || offset > len(c.data) {
		return &RangeError{Offset: offset, Length: len(c.data)}
	}
	c.position = offset
	return nil
}

// Seek moves the cursor to an absolute offset and returns a function that
// restores the previous position. The restore function must be called on
// every exit path, typically using defer.
func (c *Cursor) Seek(offset int) (func(), error) {
	saved := c.position
	if err := c.SetPosition(offset); err != nil {
		return nil, err
	}
	return func() {
		c.position = saved
	}, nil
}

// take returns the next n bytes and advances the position.
func (c *Cursor) take(n int) ([]byte, error) {
	if n < 0 || c.position+n > len(c.data) {
		return nil, &RangeError{Offset: c.position, Size: n, Length: len(c.data)}
	}
	b := c.data[c.position : c.position+n]
	c.position += n
	return b, nil
}

// ReadInt8 reads a signed byte.
func (c *Cursor) ReadInt8() (int8, error) {
	b, err := c.take(1)
	if err != nil {
		return 0, err
	}
	return int8(b[0]), nil
}

// ReadUInt8 reads an unsigned byte.
func (c *Cursor) ReadUInt8() (uint8, error) {
	b, err := c.take(1)
	if err != nil {
		return 0, err
	}
	return b[0], nil
}

// ReadInt16LE reads a signed 16 bit integer.
func (c *Cursor) ReadInt16LE() (int16, error) {
	b, err := c.take(2)
	if err != nil {
		return 0, err
	}
	return int16(binary.LittleEndian.Uint16(b)), nil
}

// ReadUInt16LE reads an unsigned 16 bit integer.
func (c *Cursor) ReadUInt16LE() (uint16, error) {
	b, err := c.take(2)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint16(b), nil
}

// ReadUInt24BE reads an unsigned big-endian 24 bit integer.
func (c *Cursor) ReadUInt24BE() (uint32, error) {
	b, err := c.take(3)
	if err != nil {
		return 0, err
	}
	return uint32(b[0])<<16 | uint32(b[1])<<8 | uint32(b[2]), nil
}

// ReadInt32LE reads a signed 32 bit integer.
func (c *Cursor) ReadInt32LE() (int32, error) {
	b, err := c.take(4)
	if err != nil {
		return 0, err
	}
	return int32(binary.LittleEndian.Uint32(b)), nil
}

// ReadUInt32LE reads an unsigned 32 bit integer.
func (c *Cursor) ReadUInt32LE() (uint32, error) {
	b, err := c.take(4)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint32(b), nil
}

// ReadFloat32LE reads an IEEE 754 single precision float.
func (c *Cursor) ReadFloat32LE() (float32, error) {
	b, err := c.take(4)
	if err != nil {
		return 0, err
	}
	return math.Float32frombits(binary.LittleEndian.Uint32(b)), nil
}

// ReadBytes returns a copy of the next n bytes.
func (c *Cursor) ReadBytes(n int) ([]byte, error) {
	b, err := c.take(n)
	if err != nil {
		return nil, err
	}
	return append([]byte(nil), b...), nil
}

// PeekUInt8 returns the byte at the current position without advancing.
func (c *Cursor) PeekUInt8() (uint8, error) {
	if c.position >= len(c.data) {
		return 0, &RangeError{Offset: c.position, Size: 1, Length: len(c.data)}
	}
	return c.data[c.position], nil
}

// ReadFixedString reads a string stored in a field of n bytes. Each byte is
// mapped 1:1 to a character. With stopAtNull set a zero byte ends the string,
// otherwise zero bytes are skipped. With consumeFullWidth set the position
// advances by n regardless of where the string ended, otherwise it advances
// to just past the terminating zero byte, or by n if there is none.
func (c *Cursor) ReadFixedString(n int, stopAtNull, consumeFullWidth bool) (string, error) {
	if n < 0 || c.position+n > len(c.data) {
		return "", &RangeError{Offset: c.position, Size: n, Length: len(c.data)}
	}

	field := c.data[c.position : c.position+n]
	consumed := n
	var sb strings.Builder
	for i, b := range field {
		if b == 0 {
			if stopAtNull {
				consumed = i + 1
				break
			}
			continue
		}
		sb.WriteRune(charmap.ISO8859_1.DecodeByte(b))
	}

	if consumeFullWidth {
		consumed = n
	}
	c.position += consumed
	return sb.String(), nil
}

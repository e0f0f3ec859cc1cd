// Package lzs decompresses the LZSS variant used for field files.
//
// The data starts with the little endian size of the compressed stream.
// Every control byte announces 8 items, least significant bit first: a set
// bit is a literal byte, a cleared bit a 2 byte reference into a 4 KiB ring
// buffer that starts at 0xFEE and is initialized with zeros.
package lzs

import (
	"encoding/binary"
	"errors"
	"fmt"
)

const (
	headerSize      = 4
	ringSize        = 0x1000
	ringMask        = ringSize - 1
	ringStart       = 18 // 0x1000 - 0xFEE
	minMatchLength  = 3
	referenceLength = 2
)

// ErrTruncated is returned when a reference is cut off by the end of data.
var ErrTruncated = errors.New("truncated lzs data")

// IsCompressed reports whether data starts with a size header that matches
// the data length.
func IsCompressed(data []byte) bool {
	if len(data) < headerSize {
		return false
	}
	size := binary.LittleEndian.Uint32(data)
	return int(size) == len(data)-headerSize
}

// Decompress decompresses data including its size header.
func Decompress(data []byte) ([]byte, error) {
	if !IsCompressed(data) {
		return nil, fmt.Errorf("size header does not match data length %d", len(data))
	}
	in := data[headerSize:]
	out := make([]byte, 0, len(in)*2)

	for pos := 0; pos < len(in); {
		control := in[pos]
		pos++

		for bit := 0; bit < 8 && pos < len(in); bit++ {
			if control&(1<<bit) != 0 {
				out = append(out, in[pos])
				pos++
				continue
			}

			if pos+referenceLength > len(in) {
				return nil, fmt.Errorf("reference at offset %d: %w", pos+headerSize, ErrTruncated)
			}
			b1, b2 := int(in[pos]), int(in[pos+1])
			pos += referenceLength

			offset := b1 | (b2&0xF0)<<4
			length := b2&0x0F + minMatchLength
			out = copyReference(out, offset, length)
		}
	}
	return out, nil
}

// copyReference appends length bytes starting at the ring buffer offset.
// Positions before the start of the output read as zero. An offset equal to
// the ring position of the next output byte references the byte written a
// full ring size earlier.
func copyReference(out []byte, offset, length int) []byte {
	tail := len(out)
	distance := (tail - ringStart - offset) & ringMask
	if distance == 0 {
		distance = ringSize
	}
	start := tail - distance
	for i := range length {
		idx := start + i
		if idx < 0 {
			out = append(out, 0)
			continue
		}
		out = append(out, out[idx])
	}
	return out
}

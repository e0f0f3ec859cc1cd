package text

import (
	"fmt"

	"github.com/flarespire359/kujata-sub000/internal/cursor"
)

const (
	terminator = 0xFF

	kernelCharLimit = 0xE7
	kernelVarFirst  = 0xEA
	kernelVarLast   = 0xF0
	kernelColor     = 0xF8
	kernelFragment  = 0xF9

	// maxFragmentDepth bounds nested fragment references, a fragment can
	// point back at its own token.
	maxFragmentDepth = 4
)

var kernelVariables = [...]Variable{"CHAR", "ITEM", "NUM", "TARGET", "ATTACK", "ID", "ELEMENT"}

// ReadKernelString decodes a kernel string of at most maxLength bytes.
//
// When the string ends with the 0xFF terminator the cursor is left just past
// it. Without a terminator the cursor is left at start+maxLength+1, clamped
// to the buffer length, matching the position the game tools expect.
func ReadKernelString(c *cursor.Cursor, maxLength int) (DecodedString, error) {
	return readKernelString(c, maxLength, 0)
}

func readKernelString(c *cursor.Cursor, maxLength, depth int) (DecodedString, error) {
	start := c.Position()
	var b builder

	i := 0
	for ; i < maxLength; i++ {
		ch, err := c.ReadUInt8()
		if err != nil {
			return nil, err
		}

		switch {
		case ch == terminator:
			return b.result(), nil

		case ch < kernelCharLimit:
			b.text(Char(ch))

		case ch >= kernelVarFirst && ch <= kernelVarLast:
			if _, err := c.ReadBytes(2); err != nil {
				return nil, err
			}
			b.token(kernelVariables[ch-kernelVarFirst])
			i += 2

		case ch == kernelColor:
			n, err := c.ReadUInt8()
			if err != nil {
				return nil, err
			}
			b.token(Color(n))
			i++

		case ch == kernelFragment:
			fragment, err := readFragment(c, depth)
			if err != nil {
				return nil, err
			}
			b.splice(fragment)
			i++

		default:
			b.token(Escape(ch))
		}
	}

	end := min(start+i+1, c.Len())
	if err := c.SetPosition(end); err != nil {
		return nil, err
	}
	return b.result(), nil
}

// readFragment decodes a back reference token whose 0xF9 byte was just read.
// The argument byte holds the length class in the upper 2 bits and the
// distance back from the byte preceding the token in the lower 6 bits.
// The cursor is left just past the 2 byte token.
func readFragment(c *cursor.Cursor, depth int) (DecodedString, error) {
	tokenOffset := c.Position() - 1
	arg, err := c.ReadUInt8()
	if err != nil {
		return nil, err
	}
	if depth >= maxFragmentDepth {
		return DecodedString{Escape(kernelFragment), Escape(arg)}, nil
	}

	numBytes := int(arg>>6)*2 + 4
	target := tokenOffset - 1 - int(arg&0x3F)

	restore, err := c.Seek(target)
	if err != nil {
		return nil, fmt.Errorf("seeking to fragment of token at 0x%04x: %w", tokenOffset, err)
	}
	defer restore()

	return readKernelString(c, numBytes, depth+1)
}

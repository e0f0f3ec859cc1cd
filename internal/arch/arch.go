// Package arch contains the interface shared by the script instruction sets.
// It acts as a bridge between the script reconstruction and the instruction
// set specific decoders.
package arch

import (
	"github.com/flarespire359/kujata-sub000/internal/cursor"
	"github.com/flarespire359/kujata-sub000/internal/instruction"
)

// Disassembler decodes one instruction of a script instruction set.
type Disassembler interface {
	// Decode decodes the instruction at the cursor position and advances the
	// cursor past it. base is the absolute offset of the routine start.
	Decode(c *cursor.Cursor, base int) (instruction.Operation, error)
	// Name returns the name of the instruction set.
	Name() string
}

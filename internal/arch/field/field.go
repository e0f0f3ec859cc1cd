// Package field disassembles field scripts, the bytecode that drives the
// entities of a field map.
//
// Each instruction is a single opcode byte followed by a fixed operand
// layout. Many layouts start with one or more bank bytes: every nibble
// selects the memory bank of one following operand, bank 0 meaning the
// operand is a literal value. Jump targets are resolved relative to the
// start of the routine that contains the instruction.
package field

import (
	"slices"

	"github.com/flarespire359/kujata-sub000/internal/arch"
	"github.com/flarespire359/kujata-sub000/internal/cursor"
	"github.com/flarespire359/kujata-sub000/internal/instruction"
	"github.com/flarespire359/kujata-sub000/internal/text"
)

var _ arch.Disassembler = (*Disassembler)(nil)

// Disassembler decodes field script instructions.
type Disassembler struct {
	dialogs []text.DecodedString
}

// New returns a field script disassembler. The dialog table of the field
// is used to resolve the text of message instructions and may be nil.
func New(dialogs []text.DecodedString) *Disassembler {
	return &Disassembler{dialogs: dialogs}
}

// Name returns the name of the instruction set.
func (d *Disassembler) Name() string {
	return "field"
}

// Decode decodes the instruction at the cursor position. base is the
// absolute offset of the routine start that jump targets are relative to.
// On failure the cursor is left at the instruction start.
func (d *Disassembler) Decode(c *cursor.Cursor, base int) (instruction.Operation, error) {
	start := c.Position()
	op, err := d.decode(c, base)
	if err != nil {
		_ = c.SetPosition(start)
		return instruction.Operation{}, err
	}

	op.Raw = slices.Clone(c.Bytes()[start:c.Position()])
	return op, nil
}

func (d *Disassembler) decode(c *cursor.Cursor, base int) (instruction.Operation, error) {
	start := c.Position()
	opcode, err := c.ReadUInt8()
	if err != nil {
		return instruction.Operation{}, err
	}
	if invalidOpcodes.Contains(opcode) {
		return instruction.Operation{}, &instruction.OpcodeError{
			Opcode: opcode, Offset: start, Err: instruction.ErrInvalidOpcode,
		}
	}
	def := opcodes[opcode]
	if def == nil {
		return instruction.Operation{}, &instruction.OpcodeError{
			Opcode: opcode, Offset: start, Err: instruction.ErrUnsupportedOpcode,
		}
	}

	op := instruction.Operation{
		Mnemonic:      def.mnemonic,
		Opcode:        opcode,
		Offset:        start,
		RoutineOffset: start - base,
	}
	dec := &decoder{c: c, op: &op, base: base}
	if def.decode != nil {
		err = def.decode(dec)
	} else {
		err = dec.decodeArgs(def.args)
	}
	if err != nil {
		return instruction.Operation{}, err
	}

	if def.dialog != "" {
		op.Text = d.dialogText(op, def.dialog)
	}
	return op, nil
}

func (d *Disassembler) dialogText(op instruction.Operation, name string) text.DecodedString {
	operand, ok := op.Param(name)
	if !ok {
		return nil
	}
	index, ok := operand.Resolve()
	if !ok || index < 0 || index >= len(d.dialogs) {
		return nil
	}
	return d.dialogs[index]
}

// Package battle disassembles battle AI scripts, a stack machine bytecode
// that drives enemy and character behavior in battle.
package battle

import (
	"fmt"
	"slices"

	"github.com/flarespire359/kujata-sub000/internal/arch"
	"github.com/flarespire359/kujata-sub000/internal/cursor"
	"github.com/flarespire359/kujata-sub000/internal/instruction"
	"github.com/flarespire359/kujata-sub000/internal/text"
)

// End is the mnemonic of the script terminator.
const End = "END"

type operandKind uint8

const (
	none operandKind = iota
	address16
	immediate8
	immediate16
	immediate24
	jump16
	kernelText
	debugText
)

type definition struct {
	mnemonic string
	operand  operandKind
}

var opcodes = map[byte]definition{
	0x00: {"PUSH.BIT", address16},
	0x01: {"PUSH.BYTE", address16},
	0x02: {"PUSH.WORD", address16},
	0x03: {"PUSH.DWORD", address16},
	0x10: {"PUSHA.BIT", address16},
	0x11: {"PUSHA.BYTE", address16},
	0x12: {"PUSHA.WORD", address16},
	0x13: {"PUSHA.DWORD", address16},

	0x30: {"ADD", none},
	0x31: {"SUB", none},
	0x32: {"MUL", none},
	0x33: {"DIV", none},
	0x34: {"MOD", none},
	0x35: {"BAND", none},
	0x36: {"BOR", none},
	0x37: {"BNOT", none},

	0x40: {"EQU", none},
	0x41: {"NEQU", none},
	0x42: {"GEQU", none},
	0x43: {"LEQU", none},
	0x44: {"GRTN", none},
	0x45: {"LSTN", none},

	0x50: {"AND", none},
	0x51: {"OR", none},
	0x52: {"NOT", none},

	0x60: {"PSHB", immediate8},
	0x61: {"PSHW", immediate16},
	0x62: {"PSH3", immediate24},

	0x70: {"JMPZ", jump16},
	0x71: {"JNEQ", jump16},
	0x72: {"JMP", jump16},
	0x73: {End, none},
	0x74: {"POP", none},
	0x75: {"LINK", none},

	0x80: {"MASK", none},
	0x81: {"RAND", none},
	0x82: {"RBYT", none},
	0x83: {"CNTB", none},
	0x84: {"HMSK", none},
	0x85: {"LMSK", none},
	0x86: {"MPCT", none},
	0x87: {"TMSK", none},

	0x90: {"STOR", none},
	0x91: {"STOB", none},
	0x92: {"ATTK", none},
	0x93: {"MSG", kernelText},
	0x94: {"COPY", none},
	0x95: {"GLOB", none},
	0x96: {"ELEM", none},

	0xA0: {"DEBUG", debugText},
	0xA1: {"DBGF", none},
}

var _ arch.Disassembler = (*Disassembler)(nil)

// Disassembler decodes battle AI script instructions.
type Disassembler struct{}

// New returns a battle AI script disassembler.
func New() *Disassembler {
	return &Disassembler{}
}

// Name returns the name of the instruction set.
func (d *Disassembler) Name() string {
	return "battle"
}

// Decode decodes the instruction at the cursor position. Jump targets are
// script offsets and are returned as encoded, base only sets the routine
// relative offset of the operation.
// On failure the cursor is left at the instruction start.
func (d *Disassembler) Decode(c *cursor.Cursor, base int) (instruction.Operation, error) {
	start := c.Position()
	op, err := decode(c, base)
	if err != nil {
		_ = c.SetPosition(start)
		return instruction.Operation{}, err
	}
	op.Raw = slices.Clone(c.Bytes()[start:c.Position()])
	return op, nil
}

func decode(c *cursor.Cursor, base int) (instruction.Operation, error) {
	start := c.Position()
	opcode, err := c.ReadUInt8()
	if err != nil {
		return instruction.Operation{}, err
	}
	def, ok := opcodes[opcode]
	if !ok {
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
	if err := decodeOperand(c, def.operand, &op); err != nil {
		return instruction.Operation{}, fmt.Errorf("reading operand of %s: %w", def.mnemonic, err)
	}
	return op, nil
}

func decodeOperand(c *cursor.Cursor, kind operandKind, op *instruction.Operation) error {
	switch kind {
	case none:
		return nil

	case address16:
		v, err := c.ReadUInt16LE()
		if err != nil {
			return err
		}
		addParam(op, "address", int(v))

	case immediate8:
		v, err := c.ReadUInt8()
		if err != nil {
			return err
		}
		addParam(op, "value", int(v))

	case immediate16:
		v, err := c.ReadUInt16LE()
		if err != nil {
			return err
		}
		addParam(op, "value", int(v))

	case immediate24:
		v, err := c.ReadUInt24BE()
		if err != nil {
			return err
		}
		addParam(op, "value", int(v))

	case jump16:
		v, err := c.ReadUInt16LE()
		if err != nil {
			return err
		}
		target := int(v)
		op.Target = &target
		addParam(op, "address", target)

	case kernelText:
		s, err := text.ReadKernelString(c, c.Remaining())
		if err != nil {
			return err
		}
		op.Text = s

	case debugText:
		v, err := c.ReadUInt8()
		if err != nil {
			return err
		}
		addParam(op, "type", int(v))
		s, err := c.ReadFixedString(c.Remaining(), true, false)
		if err != nil {
			return err
		}
		op.Text = text.DecodedString{text.Text(s)}
	}
	return nil
}

func addParam(op *instruction.Operation, name string, value int) {
	op.Params = append(op.Params, instruction.Param{Name: name, Value: instruction.Literal(value)})
}

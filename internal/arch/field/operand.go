package field

import (
	"fmt"

	"github.com/flarespire359/kujata-sub000/internal/cursor"
	"github.com/flarespire359/kujata-sub000/internal/instruction"
)

type argKind uint8

const (
	kindBanks argKind = iota // byte holding two bank selector nibbles
	kindU8
	kindU16
	kindS16
	kindU32
	kindForward8  // displacement relative to its own position
	kindForward16 // displacement relative to its own position
	kindBack8     // displacement back from the opcode
	kindBack16    // displacement back from the opcode
	kindPriority  // priority in bits 5-7, function in bits 0-4
)

const noBank = -1

// arg describes one operand field of an instruction encoding.
type arg struct {
	name string
	kind argKind
	// nibble indexes the bank selectors read so far, the high nibble of the
	// first bank byte is 0 and its low nibble is 1.
	nibble int
}

var banks = arg{kind: kindBanks, nibble: noBank}

func u8(name string) arg  { return arg{name: name, kind: kindU8, nibble: noBank} }
func u16(name string) arg { return arg{name: name, kind: kindU16, nibble: noBank} }
func s16(name string) arg { return arg{name: name, kind: kindS16, nibble: noBank} }
func u32(name string) arg { return arg{name: name, kind: kindU32, nibble: noBank} }

func bu8(name string, nibble int) arg  { return arg{name: name, kind: kindU8, nibble: nibble} }
func bu16(name string, nibble int) arg { return arg{name: name, kind: kindU16, nibble: nibble} }
func bs16(name string, nibble int) arg { return arg{name: name, kind: kindS16, nibble: nibble} }

var (
	forward8  = arg{name: "jump", kind: kindForward8, nibble: noBank}
	forward16 = arg{name: "jump", kind: kindForward16, nibble: noBank}
	back8     = arg{name: "jump", kind: kindBack8, nibble: noBank}
	back16    = arg{name: "jump", kind: kindBack16, nibble: noBank}
	priority  = arg{kind: kindPriority, nibble: noBank}
)

// decoder holds the state of decoding the operands of one instruction.
type decoder struct {
	c       *cursor.Cursor
	op      *instruction.Operation
	base    int
	nibbles []uint8
}

func (d *decoder) decodeArgs(args []arg) error {
	for _, a := range args {
		if err := d.decodeArg(a); err != nil {
			return fmt.Errorf("reading operand %s of %s: %w", a.name, d.op.Mnemonic, err)
		}
	}
	return nil
}

func (d *decoder) decodeArg(a arg) error {
	switch a.kind {
	case kindBanks:
		b, err := d.c.ReadUInt8()
		if err != nil {
			return err
		}
		d.nibbles = append(d.nibbles, b>>4, b&0x0F)
		return nil

	case kindPriority:
		b, err := d.c.ReadUInt8()
		if err != nil {
			return err
		}
		d.add("priority", instruction.Literal(b>>5))
		d.add("function", instruction.Literal(b&0x1F))
		return nil

	case kindForward8, kindForward16, kindBack8, kindBack16:
		return d.decodeJump(a)
	}

	value, err := d.readValue(a.kind)
	if err != nil {
		return err
	}
	d.add(a.name, instruction.NewOperand(d.bank(a.nibble), value))
	return nil
}

func (d *decoder) decodeJump(a arg) error {
	position := d.c.Position()
	kind := kindU8
	if a.kind == kindForward16 || a.kind == kindBack16 {
		kind = kindU16
	}
	displacement, err := d.readValue(kind)
	if err != nil {
		return err
	}

	var target int
	switch a.kind {
	case kindForward8, kindForward16:
		target = position - d.base + displacement
	default:
		target = d.op.Offset - d.base - displacement
	}
	d.op.Target = &target
	d.add(a.name, instruction.Literal(displacement))
	return nil
}

func (d *decoder) readValue(kind argKind) (int, error) {
	switch kind {
	case kindU8:
		v, err := d.c.ReadUInt8()
		return int(v), err
	case kindU16:
		v, err := d.c.ReadUInt16LE()
		return int(v), err
	case kindS16:
		v, err := d.c.ReadInt16LE()
		return int(v), err
	case kindU32:
		v, err := d.c.ReadUInt32LE()
		return int(v), err
	default:
		return 0, fmt.Errorf("unsupported operand kind %d", kind)
	}
}

func (d *decoder) bank(nibble int) uint8 {
	if nibble == noBank || nibble >= len(d.nibbles) {
		return 0
	}
	return d.nibbles[nibble]
}

func (d *decoder) add(name string, value instruction.Operand) {
	d.op.Params = append(d.op.Params, instruction.Param{Name: name, Value: value})
}

// Package instruction contains the types shared by the script disassemblers:
// decoded operations, their operands and the decode error taxonomy.
package instruction

import (
	"encoding/hex"
	"strings"

	"github.com/flarespire359/kujata-sub000/internal/text"
)

// Mnemonics that the script reconstruction depends on.
const (
	Ret   = "RET"
	Error = "ERROR"
)

// Operation is a single decoded script instruction.
type Operation struct {
	Mnemonic string `json:"mnemonic" yaml:"mnemonic"`
	Opcode   byte   `json:"opcode" yaml:"opcode"`
	// SubOpcode is set for two level opcodes like SPECIAL and KAWAI.
	SubOpcode *byte `json:"subOpcode,omitempty" yaml:"subOpcode,omitempty"`

	Params []Param `json:"params,omitempty" yaml:"params,omitempty"`
	Raw    Bytes   `json:"raw,omitempty" yaml:"raw,omitempty"`

	// Offset is the absolute buffer offset of the opcode byte.
	Offset int `json:"offset" yaml:"offset"`
	// RoutineOffset is the offset relative to the start of the routine.
	RoutineOffset int `json:"routineOffset" yaml:"routineOffset"`

	// Target is the routine relative jump target of control flow instructions.
	Target *int `json:"target,omitempty" yaml:"target,omitempty"`
	// Text is the resolved display text of message instructions.
	Text text.DecodedString `json:"text,omitempty" yaml:"text,omitempty"`
	// Err is the decode failure for ERROR sentinel operations.
	Err string `json:"error,omitempty" yaml:"error,omitempty"`
}

// Param is a named instruction operand.
type Param struct {
	Name  string  `json:"name" yaml:"name"`
	Value Operand `json:"value" yaml:"value"`
}

// Param returns the operand with the given name.
func (o Operation) Param(name string) (Operand, bool) {
	for _, p := range o.Params {
		if p.Name == name {
			return p.Value, true
		}
	}
	return nil, false
}

// Size returns the number of bytes the instruction occupies.
func (o Operation) Size() int {
	return len(o.Raw)
}

// IsError returns whether the operation is a decode failure sentinel.
func (o Operation) IsError() bool {
	return o.Mnemonic == Error
}

// NewError returns the sentinel operation that marks a failed decode at
// the given absolute and routine relative offsets.
func NewError(offset, routineOffset int, err error) Operation {
	op := Operation{
		Mnemonic:      Error,
		Offset:        offset,
		RoutineOffset: routineOffset,
		Raw:           Bytes{},
	}
	if err != nil {
		op.Err = err.Error()
	}
	return op
}

// String returns the operation in a single line listing format.
func (o Operation) String() string {
	var sb strings.Builder
	sb.WriteString(o.Mnemonic)
	for i, p := range o.Params {
		if i == 0 {
			sb.WriteByte(' ')
		} else {
			sb.WriteString(", ")
		}
		sb.WriteString(p.Name)
		sb.WriteByte('=')
		sb.WriteString(p.Value.String())
	}
	if o.Text != nil {
		sb.WriteString(` "`)
		sb.WriteString(o.Text.String())
		sb.WriteByte('"')
	}
	return sb.String()
}

// Bytes is raw instruction data that serializes as an upper case hex string.
type Bytes []byte

// MarshalText implements encoding.TextMarshaler.
func (b Bytes) MarshalText() ([]byte, error) {
	return []byte(strings.ToUpper(hex.EncodeToString(b))), nil
}

package battle

import (
	"errors"
	"testing"

	"github.com/flarespire359/kujata-sub000/internal/cursor"
	"github.com/flarespire359/kujata-sub000/internal/instruction"
	"github.com/retroenv/retrogolib/assert"
)

func TestDisassembler_OperandWidths(t *testing.T) {
	widths := map[operandKind]int{
		none:        0,
		address16:   2,
		immediate8:  1,
		immediate16: 2,
		immediate24: 3,
		jump16:      2,
	}

	dis := New()
	for opcode, def := range opcodes {
		width, ok := widths[def.operand]
		if !ok {
			continue
		}
		data := make([]byte, 4)
		data[0] = opcode
		c := cursor.New(data)

		op, err := dis.Decode(c, 0)
		assert.NoError(t, err, "opcode %02X", opcode)
		assert.Equal(t, def.mnemonic, op.Mnemonic)
		assert.Equal(t, 1+width, c.Position(), "opcode %02X", opcode)
		assert.Equal(t, 1+width, op.Size(), "opcode %02X", opcode)
	}
}

func TestDisassembler_Immediates(t *testing.T) {
	tests := []struct {
		name     string
		data     []byte
		mnemonic string
		value    int
	}{
		{name: "byte", data: []byte{0x60, 0x7F}, mnemonic: "PSHB", value: 0x7F},
		{name: "word", data: []byte{0x61, 0x34, 0x12}, mnemonic: "PSHW", value: 0x1234},
		{name: "24 bit big endian", data: []byte{0x62, 0x12, 0x34, 0x56}, mnemonic: "PSH3", value: 0x123456},
		{name: "address", data: []byte{0x02, 0x20, 0x00}, mnemonic: "PUSH.WORD", value: 0x20},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			op, err := New().Decode(cursor.New(tt.data), 0)
			assert.NoError(t, err)
			assert.Equal(t, tt.mnemonic, op.Mnemonic)
			assert.Len(t, op.Params, 1)
			v, ok := op.Params[0].Value.Resolve()
			assert.True(t, ok)
			assert.Equal(t, tt.value, v)
		})
	}
}

func TestDisassembler_Jump(t *testing.T) {
	c := cursor.New([]byte{0x00, 0x00, 0x70, 0x1C, 0x00})
	assert.NoError(t, c.SetPosition(2))

	op, err := New().Decode(c, 0)
	assert.NoError(t, err)
	assert.Equal(t, "JMPZ", op.Mnemonic)
	assert.NotNil(t, op.Target)
	assert.Equal(t, 0x1C, *op.Target)
	assert.Equal(t, 2, op.RoutineOffset)
}

func TestDisassembler_Message(t *testing.T) {
	c := cursor.New([]byte{0x93, 0x21, 0x22, 0xFF, 0x73})
	op, err := New().Decode(c, 0)
	assert.NoError(t, err)
	assert.Equal(t, "MSG", op.Mnemonic)
	assert.Equal(t, "AB", op.Text.String())
	assert.Equal(t, 4, c.Position())

	op, err = New().Decode(c, 0)
	assert.NoError(t, err)
	assert.Equal(t, End, op.Mnemonic)
}

func TestDisassembler_Debug(t *testing.T) {
	c := cursor.New([]byte{0xA0, 0x01, 'h', 'i', 0x00, 0xA1})
	op, err := New().Decode(c, 0)
	assert.NoError(t, err)
	assert.Equal(t, "DEBUG", op.Mnemonic)
	assert.Equal(t, "hi", op.Text.String())
	assert.Equal(t, 5, c.Position())
}

func TestDisassembler_Unsupported(t *testing.T) {
	for _, opcode := range []byte{0x04, 0x20, 0x46, 0x53, 0x63, 0x76, 0x88, 0x97, 0xA2, 0xFF} {
		c := cursor.New([]byte{opcode, 0x00, 0x00})
		_, err := New().Decode(c, 0)
		assert.True(t, errors.Is(err, instruction.ErrUnsupportedOpcode), "opcode %02X", opcode)

		var opErr *instruction.OpcodeError
		assert.True(t, errors.As(err, &opErr))
		assert.Equal(t, opcode, opErr.Opcode)
		assert.Equal(t, 0, c.Position())
	}
}

func TestDisassembler_Truncated(t *testing.T) {
	c := cursor.New([]byte{0x62, 0x00})
	_, err := New().Decode(c, 0)
	assert.True(t, errors.Is(err, cursor.ErrOutOfRange))
	assert.Equal(t, 0, c.Position())
}

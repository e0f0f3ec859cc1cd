package script

import (
	"github.com/flarespire359/kujata-sub000/internal/cursor"
	"github.com/flarespire359/kujata-sub000/internal/instruction"
)

// mockDisassembler decodes every byte as a single byte NOP and records the
// routine bases it was called with.
type mockDisassembler struct {
	bases []int
}

func (m *mockDisassembler) Name() string {
	return "mock"
}

func (m *mockDisassembler) Decode(c *cursor.Cursor, base int) (instruction.Operation, error) {
	m.bases = append(m.bases, base)
	position := c.Position()
	b, err := c.ReadUInt8()
	if err != nil {
		return instruction.Operation{}, err
	}
	return instruction.Operation{
		Mnemonic:      "NOP",
		Opcode:        b,
		Offset:        position,
		RoutineOffset: position - base,
		Raw:           instruction.Bytes{b},
	}, nil
}

package script

import (
	"errors"
	"testing"

	"github.com/flarespire359/kujata-sub000/internal/arch/battle"
	"github.com/flarespire359/kujata-sub000/internal/arch/field"
	"github.com/flarespire359/kujata-sub000/internal/instruction"
	"github.com/retroenv/retrogolib/assert"
)

func mnemonics(ops []instruction.Operation) []string {
	result := make([]string, 0, len(ops))
	for _, op := range ops {
		result = append(result, op.Mnemonic)
	}
	return result
}

func TestDecodeEntities_AliasedSlots(t *testing.T) {
	data := []byte{
		0x5F, 0x00,                   // slot 0
		0x5F, 0x00,                   // slot 1
		0x5F, 0x5F, 0x5F, 0x5F, 0x00, // slots 2-4
		0x00,                         // slot 5
	}
	layout := Layout{
		Entities: []EntityLayout{{Name: "dir", Slots: []int{0, 2, 4, 4, 4, 9}}},
		End:      10,
	}

	entities, failures := New(field.New(nil), Options{}).DecodeEntities(data, layout)
	assert.Empty(t, failures)
	assert.Len(t, entities, 1)

	scripts := entities[0].Scripts
	assert.Len(t, scripts, 4)
	indexes := []int{scripts[0].Index, scripts[1].Index, scripts[2].Index, scripts[3].Index}
	assert.Equal(t, []int{0, 1, 2, 5}, indexes)

	assert.Equal(t, 4, scripts[2].Offset)
	assert.Equal(t, 9, scripts[2].End)
	assert.Equal(t, []string{"NOP", "NOP", "NOP", "NOP", "RET"}, mnemonics(scripts[2].Operations))
	assert.Equal(t, 10, scripts[3].End)
}

func TestRoutineEnd(t *testing.T) {
	layout := Layout{
		Entities: []EntityLayout{
			{Name: "a", Slots: []int{0, 2, 2}},
			{Name: "b", Slots: []int{5, 7}},
			{Name: "c", Slots: nil},
		},
		End: 12,
	}

	assert.Equal(t, 2, RoutineEnd(layout, 0, 0))
	assert.Equal(t, 5, RoutineEnd(layout, 0, 1))
	assert.Equal(t, 5, RoutineEnd(layout, 0, 2))
	assert.Equal(t, 7, RoutineEnd(layout, 1, 0))
	assert.Equal(t, 12, RoutineEnd(layout, 1, 1))
}

func TestSplit(t *testing.T) {
	tests := []struct {
		name string
		data []byte
		init []string
		main []string
	}{
		{
			name: "split after jump target",
			data: []byte{0x10, 0x02, 0x00, 0x5F, 0x00, 0x5F, 0x00},
			init: []string{"JMPF", "RET", "NOP", "RET"},
			main: []string{"NOP", "RET"},
		},
		{
			name: "first return",
			data: []byte{0x5F, 0x00, 0x5F, 0x00},
			init: []string{"NOP", "RET"},
			main: []string{"NOP", "RET"},
		},
		{
			name: "no qualifying return",
			data: []byte{0x10, 0x05, 0x00, 0x5F},
			init: []string{"JMPF", "RET", "NOP"},
			main: []string{},
		},
	}

	decoder := New(field.New(nil), Options{Split: true})
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ops, err := decoder.DecodeRoutine(tt.data, 0, len(tt.data))
			assert.NoError(t, err)

			initOps, mainOps := Split(ops)
			assert.Equal(t, tt.init, mnemonics(initOps))
			assert.Equal(t, tt.main, mnemonics(mainOps))
		})
	}
}

func TestDecodeEntities_SplitRoutineZero(t *testing.T) {
	data := []byte{0x10, 0x02, 0x00, 0x5F, 0x00, 0x5F, 0x00, 0x00}
	layout := Layout{
		Entities: []EntityLayout{{Slots: []int{0, 7}}},
		End:      8,
	}

	entities, failures := New(field.New(nil), Options{Split: true}).DecodeEntities(data, layout)
	assert.Empty(t, failures)
	scripts := entities[0].Scripts
	assert.Len(t, scripts, 2)
	assert.Equal(t, []string{"JMPF", "RET", "NOP", "RET"}, mnemonics(scripts[0].Operations))
	assert.Equal(t, []string{"NOP", "RET"}, mnemonics(scripts[0].Main))
	assert.Equal(t, []string{"RET"}, mnemonics(scripts[1].Operations))
	assert.Empty(t, scripts[1].Main)
}

func TestDecodeEntities_ErrorContainment(t *testing.T) {
	data := []byte{
		0x5F, 0x5F, 0x44, 0x00, // slot 0, unsupported opcode after 2 instructions
		0x00,                   // slot 1
		0x5F, 0x00,             // next entity
	}
	layout := Layout{
		Entities: []EntityLayout{
			{Name: "first", Slots: []int{0, 4}},
			{Name: "second", Slots: []int{5}},
		},
		End: 7,
	}

	entities, failures := New(field.New(nil), Options{Split: true}).DecodeEntities(data, layout)
	assert.Len(t, entities, 2)
	assert.Len(t, failures, 1)

	failure := failures[0]
	assert.Equal(t, 0, failure.Entity)
	assert.Equal(t, "first", failure.Name)
	assert.Equal(t, 0, failure.Routine)
	assert.Equal(t, 2, failure.Offset)
	assert.True(t, errors.Is(failure, instruction.ErrUnsupportedOpcode))

	ops := entities[0].Scripts[0].Operations
	assert.Equal(t, []string{"NOP", "NOP", instruction.Error}, mnemonics(ops))
	assert.True(t, ops[2].IsError())
	assert.Equal(t, 2, ops[2].RoutineOffset)
	assert.NotEmpty(t, ops[2].Err)

	assert.Equal(t, []string{"RET"}, mnemonics(entities[0].Scripts[1].Operations))
	assert.Equal(t, []string{"NOP", "RET"}, mnemonics(entities[1].Scripts[0].Operations))
}

func TestDecodeRoutine_Terminator(t *testing.T) {
	data := []byte{0x60, 0x01, 0x73, 0x60, 0x02}
	ops, err := New(battle.New(), Options{Terminator: battle.End}).DecodeRoutine(data, 0, len(data))
	assert.NoError(t, err)
	assert.Equal(t, []string{"PSHB", "END"}, mnemonics(ops))
}

func TestDecodeRoutine_Base(t *testing.T) {
	dis := &mockDisassembler{}
	data := []byte{0, 1, 2, 3, 4, 5}

	ops, err := New(dis, Options{}).DecodeRoutine(data, 2, 5)
	assert.NoError(t, err)
	assert.Len(t, ops, 3)
	assert.Equal(t, []int{2, 2, 2}, dis.bases)
	assert.Equal(t, 2, ops[2].RoutineOffset)
}

func TestDecodeRoutine_StartOutOfRange(t *testing.T) {
	ops, err := New(&mockDisassembler{}, Options{}).DecodeRoutine([]byte{0}, 4, 8)
	assert.Error(t, err)
	assert.Len(t, ops, 1)
	assert.True(t, ops[0].IsError())
}

package vars

import (
	"testing"

	"github.com/flarespire359/kujata-sub000/internal/instruction"
	"github.com/retroenv/retrogolib/assert"
)

func TestVars_AddOperations(t *testing.T) {
	ops := []instruction.Operation{
		{
			Mnemonic: "SETBYTE",
			Offset:   0x100,
			Params: []instruction.Param{
				{Name: "dest", Value: instruction.BankRef{Bank: 1, Index: 4}},
				{Name: "source", Value: instruction.BankRef{Bank: 2, Index: 8}},
			},
		},
		{
			Mnemonic: "PLUS",
			Offset:   0x104,
			Params: []instruction.Param{
				{Name: "dest", Value: instruction.BankRef{Bank: 1, Index: 4}},
				{Name: "source", Value: instruction.Literal(3)},
			},
		},
		{
			Mnemonic: "IFUB",
			Offset:   0x108,
			Params: []instruction.Param{
				{Name: "left", Value: instruction.BankRef{Bank: 1, Index: 4}},
			},
		},
	}

	v := New()
	v.AddOperations("cloud", 2, ops)
	assert.Equal(t, 2, v.Len())

	variables := v.Variables()
	assert.Len(t, variables, 2)

	counter := variables[0]
	assert.Equal(t, uint8(1), counter.Bank)
	assert.Equal(t, 4, counter.Index)
	assert.True(t, counter.Reads)
	assert.True(t, counter.Writes)
	assert.Len(t, counter.References, 3)
	assert.Equal(t, Reference{Entity: "cloud", Routine: 2, Offset: 0x104}, counter.References[1])
	assert.Equal(t, "Bank[1][4] rw references=3", counter.String())

	source := variables[1]
	assert.Equal(t, uint8(2), source.Bank)
	assert.True(t, source.Reads)
	assert.False(t, source.Writes)
	assert.Equal(t, "Bank[2][8] r references=1", source.String())
}

func TestVars_Empty(t *testing.T) {
	v := New()
	v.AddOperations("door", 0, []instruction.Operation{{Mnemonic: instruction.Ret}})
	assert.Equal(t, 0, v.Len())
	assert.Empty(t, v.Variables())
}

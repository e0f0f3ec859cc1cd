package battleai

import (
	"encoding/binary"
	"errors"
	"testing"

	"github.com/flarespire359/kujata-sub000/internal/instruction"
	"github.com/go-restruct/restruct"
	"github.com/retroenv/retrogolib/assert"
	"github.com/retroenv/retrogolib/log"
)

func buildBlock(t *testing.T, scripts map[int][]byte) []byte {
	t.Helper()

	var table OffsetTable
	for i := range table.Offsets {
		table.Offsets[i] = emptySlot
	}

	var body []byte
	for slot := range ScriptsPerBlock {
		code, ok := scripts[slot]
		if !ok {
			continue
		}
		table.Offsets[slot] = uint16(offsetTableSize + len(body))
		body = append(body, code...)
	}

	header, err := restruct.Pack(binary.LittleEndian, &table)
	assert.NoError(t, err)
	return append(header, body...)
}

func TestParser_Parse(t *testing.T) {
	data := buildBlock(t, map[int][]byte{
		0: {0x60, 0x01, 0x73},                         // PSHB 1, END
		1: {0x70, 0x05, 0x00, 0x93, 0x21, 0xFF, 0x73}, // JMPZ 5, MSG "A", END
		5: {0x60, 0x02, 0x99, 0x73},                   // PSHB 2, unsupported
	})

	result, err := New(log.NewTestLogger(t)).Parse(data)
	assert.NoError(t, err)
	assert.Len(t, result.Scripts, 3)

	initScript := result.Scripts[0]
	assert.Equal(t, "init", initScript.Name)
	assert.Equal(t, offsetTableSize, initScript.Offset)
	assert.Len(t, initScript.Operations, 2)

	mainScript := result.Scripts[1]
	assert.Equal(t, "main", mainScript.Name)
	assert.Len(t, mainScript.Operations, 3)
	assert.Equal(t, 5, *mainScript.Operations[0].Target)
	assert.Equal(t, "A", mainScript.Operations[1].Text.String())

	magic := result.Scripts[2]
	assert.Equal(t, 5, magic.Index)
	assert.Equal(t, "magicCounter", magic.Name)
	assert.Len(t, magic.Operations, 2)
	assert.True(t, magic.Operations[1].IsError())

	assert.Len(t, result.Failures, 1)
	assert.Equal(t, 5, result.Failures[0].Routine)
	assert.True(t, errors.Is(result.Failures[0], instruction.ErrUnsupportedOpcode))
}

func TestParser_StopsAtNextSlot(t *testing.T) {
	// script 0 has no END and runs into script 1
	data := buildBlock(t, map[int][]byte{
		0: {0x60, 0x01},
		1: {0x73},
	})

	result, err := New(log.NewTestLogger(t)).Parse(data)
	assert.NoError(t, err)
	assert.Len(t, result.Scripts, 2)
	assert.Len(t, result.Scripts[0].Operations, 1)
	assert.Equal(t, offsetTableSize+2, result.Scripts[0].End)
}

func TestParser_TooSmall(t *testing.T) {
	_, err := New(log.NewTestLogger(t)).Parse(make([]byte, 4))
	assert.Error(t, err)
}

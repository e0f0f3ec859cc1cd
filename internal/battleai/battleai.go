// Package battleai parses battle AI blocks and decodes their scripts.
package battleai

import (
	"encoding/binary"
	"fmt"

	"github.com/flarespire359/kujata-sub000/internal/arch/battle"
	"github.com/flarespire359/kujata-sub000/internal/script"
	"github.com/go-restruct/restruct"
	"github.com/retroenv/retrogolib/log"
)

const (
	// ScriptsPerBlock is the number of script slots of an AI block.
	ScriptsPerBlock = 16

	emptySlot       = 0xFFFF
	offsetTableSize = ScriptsPerBlock * 2
)

// slotNames names the script slots by the event that runs them.
var slotNames = [ScriptsPerBlock]string{
	"init", "main", "counter", "deathCounter", "physicalCounter", "magicCounter",
	"battleEnd", "preActionSetup", "customEvent1", "customEvent2", "customEvent3",
	"customEvent4", "customEvent5", "customEvent6", "customEvent7", "customEvent8",
}

// OffsetTable holds the script offsets relative to the block start.
type OffsetTable struct {
	Offsets [ScriptsPerBlock]uint16
}

// Script is a decoded AI script.
type Script struct {
	Name          string `json:"name" yaml:"name"`
	script.Script `yaml:",inline"`
}

// Result is the decoded content of an AI block.
type Result struct {
	Scripts []Script `json:"scripts" yaml:"scripts"`

	// Failures lists the scripts that could not be fully decoded.
	Failures []*script.RoutineError `json:"-" yaml:"-"`
}

// Parser parses battle AI blocks.
type Parser struct {
	logger  *log.Logger
	decoder *script.Decoder
}

// New returns a new battle AI block parser.
func New(logger *log.Logger) *Parser {
	return &Parser{
		logger:  logger,
		decoder: script.New(battle.New(), script.Options{Terminator: battle.End}),
	}
}

// Parse decodes all non empty script slots of the AI block in data.
// A script ends with its END instruction or at the offset of the next
// non empty slot.
func (p *Parser) Parse(data []byte) (*Result, error) {
	if len(data) < offsetTableSize {
		return nil, fmt.Errorf("AI block of %d bytes is smaller than its offset table", len(data))
	}
	var table OffsetTable
	if err := restruct.Unpack(data[:offsetTableSize], binary.LittleEndian, &table); err != nil {
		return nil, fmt.Errorf("unpacking offset table: %w", err)
	}

	result := &Result{}
	for slot, offset := range table.Offsets {
		if offset == emptySlot {
			continue
		}

		start := int(offset)
		end := scriptEnd(table, slot, len(data))
		ops, err := p.decoder.DecodeRoutine(data, start, end)
		if err != nil {
			result.Failures = append(result.Failures, &script.RoutineError{
				Name:    slotNames[slot],
				Routine: slot,
				Offset:  ops[len(ops)-1].Offset,
				Err:     err,
			})
		}

		result.Scripts = append(result.Scripts, Script{
			Name: slotNames[slot],
			Script: script.Script{
				Index:      slot,
				Offset:     start,
				End:        end,
				Operations: ops,
			},
		})
	}

	p.logger.Debug("Parsed battle AI block",
		log.Int("scripts", len(result.Scripts)),
		log.Int("failures", len(result.Failures)))
	return result, nil
}

// scriptEnd returns the offset of the next non empty slot after the given
// one that starts behind it, or the block size.
func scriptEnd(table OffsetTable, slot, size int) int {
	start := table.Offsets[slot]
	for _, next := range table.Offsets[slot+1:] {
		if next != emptySlot && next > start {
			return min(int(next), size)
		}
	}
	return size
}

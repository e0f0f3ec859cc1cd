// Package script reconstructs the routines of a script section from its
// routine slot table and decodes them with an instruction set disassembler.
package script

import (
	"fmt"

	"github.com/flarespire359/kujata-sub000/internal/arch"
	"github.com/flarespire359/kujata-sub000/internal/cursor"
	"github.com/flarespire359/kujata-sub000/internal/instruction"
)

// Options controls the routine decoding.
type Options struct {
	// Split enables splitting routine 0 into its init and main parts.
	Split bool
	// Terminator is a mnemonic that ends a routine before its end offset.
	Terminator string
}

// Layout describes the routine slots of a script section.
type Layout struct {
	Entities []EntityLayout
	// End is the absolute offset where the script bytes of the last
	// entity end.
	End int
}

// EntityLayout holds the absolute start offsets of the routine slots of
// one entity.
type EntityLayout struct {
	Name  string
	Slots []int
}

// Entity is the decoded scripts of one entity.
type Entity struct {
	Name    string   `json:"name" yaml:"name"`
	Scripts []Script `json:"scripts" yaml:"scripts"`
}

// Script is the decoded operations of one routine slot.
// For routine 0 with splitting enabled, Operations holds the init part and
// Main the looping part that follows it.
type Script struct {
	Index      int                     `json:"index" yaml:"index"`
	Offset     int                     `json:"offset" yaml:"offset"`
	End        int                     `json:"end" yaml:"end"`
	Operations []instruction.Operation `json:"operations" yaml:"operations"`
	Main       []instruction.Operation `json:"main,omitempty" yaml:"main,omitempty"`
}

// RoutineError is a failure to decode one routine.
type RoutineError struct {
	Entity  int
	Name    string
	Routine int
	Offset  int
	Err     error
}

func (e *RoutineError) Error() string {
	return fmt.Sprintf("entity %d (%s) routine %d at offset 0x%04X: %s",
		e.Entity, e.Name, e.Routine, e.Offset, e.Err)
}

func (e *RoutineError) Unwrap() error {
	return e.Err
}

// Decoder decodes routines using an instruction set disassembler.
// A Decoder does not share any cursor state between calls.
type Decoder struct {
	dis  arch.Disassembler
	opts Options
}

// New returns a routine decoder for the given disassembler.
func New(dis arch.Disassembler, opts Options) *Decoder {
	return &Decoder{dis: dis, opts: opts}
}

// DecodeEntities decodes all non empty routines of all entities of the
// layout. A failed routine keeps its partially decoded operations followed
// by an ERROR operation and does not stop the decoding of other routines.
func (d *Decoder) DecodeEntities(data []byte, layout Layout) ([]Entity, []*RoutineError) {
	entities := make([]Entity, 0, len(layout.Entities))
	var failures []*RoutineError

	for e, entity := range layout.Entities {
		decoded := Entity{Name: entity.Name}

		for slot, start := range entity.Slots {
			if slot > 0 && entity.Slots[slot-1] == start {
				continue // aliases the previous slot
			}

			end := RoutineEnd(layout, e, slot)
			ops, err := d.DecodeRoutine(data, start, end)
			if err != nil {
				failures = append(failures, &RoutineError{
					Entity:  e,
					Name:    entity.Name,
					Routine: slot,
					Offset:  errorOffset(ops, start),
					Err:     err,
				})
			}

			script := Script{
				Index:      slot,
				Offset:     start,
				End:        end,
				Operations: ops,
			}
			if slot == 0 && d.opts.Split {
				script.Operations, script.Main = Split(ops)
			}
			decoded.Scripts = append(decoded.Scripts, script)
		}

		entities = append(entities, decoded)
	}
	return entities, failures
}

// RoutineEnd returns the end offset of the routine in the given slot: the
// next slot start that differs from the routine start, the first slot of
// the next entity, or the layout end for the last entity.
func RoutineEnd(layout Layout, entity, slot int) int {
	slots := layout.Entities[entity].Slots
	start := slots[slot]
	for _, next := range slots[slot+1:] {
		if next != start {
			return next
		}
	}

	// TODO: entities with more than 32 routines are not detected, the
	// following entity's slots are decoded as part of the last routine.
	for _, next := range layout.Entities[entity+1:] {
		if len(next.Slots) > 0 {
			return next.Slots[0]
		}
	}
	return layout.End
}

// DecodeRoutine decodes the operations between start and end. The decoding
// stops early after the terminator mnemonic if one is configured.
// On failure the operations decoded so far are returned followed by an
// ERROR operation, together with the error.
func (d *Decoder) DecodeRoutine(data []byte, start, end int) ([]instruction.Operation, error) {
	c := cursor.New(data)
	if err := c.SetPosition(start); err != nil {
		return []instruction.Operation{instruction.NewError(start, 0, err)}, err
	}

	var ops []instruction.Operation
	for c.Position() < end {
		position := c.Position()
		op, err := d.dis.Decode(c, start)
		if err != nil {
			ops = append(ops, instruction.NewError(position, position-start, err))
			return ops, err
		}

		ops = append(ops, op)
		if d.opts.Terminator != "" && op.Mnemonic == d.opts.Terminator {
			break
		}
	}
	return ops, nil
}

// Split splits the operations of routine 0 at the first RET whose offset
// is not below the highest jump target seen up to it. If there is no such
// RET all operations are init operations.
func Split(ops []instruction.Operation) (initOps, mainOps []instruction.Operation) {
	maxTarget := 0
	for i, op := range ops {
		if op.Target != nil && *op.Target > maxTarget {
			maxTarget = *op.Target
		}
		if op.Mnemonic == instruction.Ret && op.RoutineOffset >= maxTarget {
			return ops[:i+1], ops[i+1:]
		}
	}
	return ops, nil
}

func errorOffset(ops []instruction.Operation, start int) int {
	if len(ops) == 0 {
		return start
	}
	return ops[len(ops)-1].Offset
}

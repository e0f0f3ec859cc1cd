// Package vars tracks the script memory bank variables that scripts access.
package vars

import (
	"cmp"
	"fmt"
	"slices"

	"github.com/flarespire359/kujata-sub000/internal/instruction"
	"github.com/retroenv/retrogolib/set"
)

// destinationParams names the operands that instructions write to.
var destinationParams = set.New[string]()

func init() {
	destinationParams.Add("dest")
}

// Reference is a single access of a variable.
type Reference struct {
	Entity  string `json:"entity" yaml:"entity"`
	Routine int    `json:"routine" yaml:"routine"`
	Offset  int    `json:"offset" yaml:"offset"`
}

// Variable is a bank variable with all its accesses.
type Variable struct {
	Bank       uint8       `json:"bank" yaml:"bank"`
	Index      int         `json:"index" yaml:"index"`
	Reads      bool        `json:"reads" yaml:"reads"`
	Writes     bool        `json:"writes" yaml:"writes"`
	References []Reference `json:"references" yaml:"references"`
}

// String returns the variable in the operand notation followed by its access
// summary.
func (v Variable) String() string {
	access := "r"
	switch {
	case v.Reads && v.Writes:
		access = "rw"
	case v.Writes:
		access = "w"
	}
	return fmt.Sprintf("%s %s references=%d",
		instruction.BankRef{Bank: v.Bank, Index: v.Index}, access, len(v.References))
}

// Vars manages the variables referenced by scripts.
type Vars struct {
	banks map[uint8]*bank
}

type bank struct {
	variables map[int]*Variable
}

// New creates a new variables manager.
func New() *Vars {
	return &Vars{
		banks: make(map[uint8]*bank),
	}
}

// AddOperations adds a reference for every bank operand of the operations.
func (v *Vars) AddOperations(entity string, routine int, ops []instruction.Operation) {
	for _, op := range ops {
		for _, param := range op.Params {
			ref, ok := param.Value.(instruction.BankRef)
			if !ok {
				continue
			}
			v.AddReference(ref, destinationParams.Contains(param.Name), Reference{
				Entity:  entity,
				Routine: routine,
				Offset:  op.Offset,
			})
		}
	}
}

// AddReference adds a variable reference that reads or writes the variable.
func (v *Vars) AddReference(ref instruction.BankRef, writes bool, usage Reference) {
	b := v.banks[ref.Bank]
	if b == nil {
		b = &bank{variables: make(map[int]*Variable)}
		v.banks[ref.Bank] = b
	}

	varInfo := b.variables[ref.Index]
	if varInfo == nil {
		varInfo = &Variable{
			Bank:  ref.Bank,
			Index: ref.Index,
		}
		b.variables[ref.Index] = varInfo
	}

	if writes {
		varInfo.Writes = true
	} else {
		varInfo.Reads = true
	}
	varInfo.References = append(varInfo.References, usage)
}

// Len returns the number of referenced variables.
func (v *Vars) Len() int {
	n := 0
	for _, b := range v.banks {
		n += len(b.variables)
	}
	return n
}

// Variables returns all referenced variables sorted by bank and index.
func (v *Vars) Variables() []Variable {
	variables := make([]Variable, 0, v.Len())
	for _, b := range v.banks {
		for _, varInfo := range b.variables {
			variables = append(variables, *varInfo)
		}
	}
	slices.SortFunc(variables, func(a, b Variable) int {
		if c := cmp.Compare(a.Bank, b.Bank); c != 0 {
			return c
		}
		return cmp.Compare(a.Index, b.Index)
	})
	return variables
}

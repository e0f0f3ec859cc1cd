package instruction

import (
	"encoding/json"
	"fmt"
)

// Operand is an instruction operand value, either a Literal or a BankRef.
type Operand interface {
	fmt.Stringer
	// Resolve returns the literal value and true, or false if the value
	// lives in a memory bank.
	Resolve() (int, bool)
	isOperand()
}

// Literal is an immediate operand value.
type Literal int

// BankRef references the value at Index of the script memory Bank.
type BankRef struct {
	Bank  uint8 `json:"bank" yaml:"bank"`
	Index int   `json:"index" yaml:"index"`
}

// NewOperand returns the operand for a value read alongside a bank selector
// nibble. Bank 0 selects the literal value.
func NewOperand(bank uint8, value int) Operand {
	if bank == 0 {
		return Literal(value)
	}
	return BankRef{Bank: bank, Index: value}
}

func (Literal) isOperand() {}
func (BankRef) isOperand() {}

// Resolve implements Operand.
func (l Literal) Resolve() (int, bool) { return int(l), true }

// Resolve implements Operand.
func (BankRef) Resolve() (int, bool) { return 0, false }

func (l Literal) String() string {
	return fmt.Sprintf("%d", int(l))
}

func (r BankRef) String() string {
	return fmt.Sprintf("Bank[%d][%d]", r.Bank, r.Index)
}

type literalValue struct {
	Value int `json:"value" yaml:"value"`
}

// MarshalJSON encodes the literal as {"value":n}.
func (l Literal) MarshalJSON() ([]byte, error) {
	return json.Marshal(literalValue{Value: int(l)})
}

// MarshalYAML encodes the literal as a mapping with a value key.
func (l Literal) MarshalYAML() (any, error) {
	return literalValue{Value: int(l)}, nil
}

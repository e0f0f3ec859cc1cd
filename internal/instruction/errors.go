package instruction

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidOpcode is returned for opcode bytes in a reserved range.
	ErrInvalidOpcode = errors.New("invalid opcode")
	// ErrUnsupportedOpcode is returned for opcode bytes without a known encoding.
	ErrUnsupportedOpcode = errors.New("unsupported opcode")
)

// OpcodeError carries the failing opcode byte and its absolute buffer offset.
type OpcodeError struct {
	Opcode byte
	Offset int
	Err    error
}

func (e *OpcodeError) Error() string {
	return fmt.Sprintf("%s 0x%02X at offset 0x%04X", e.Err, e.Opcode, e.Offset)
}

func (e *OpcodeError) Unwrap() error {
	return e.Err
}

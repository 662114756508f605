package disassembler

import (
	"errors"
	"fmt"
)

var (
	// ErrUnrecognizedOpcode means a leading byte matched no known encoding.
	ErrUnrecognizedOpcode = errors.New("unrecognized opcode")
	// ErrTruncatedInstruction means the input ended inside an instruction.
	ErrTruncatedInstruction = errors.New("truncated instruction")
	// ErrInvalidInputLength means the input is not a whole number of units.
	ErrInvalidInputLength = errors.New("invalid input length")
)

// DecodeError locates a decoding failure in the input.
type DecodeError struct {
	// Offset is where the failing instruction starts.
	Offset int
	// Byte is the opcode byte at Offset, when there is one.
	Byte  byte
	Phase Phase
	Err   error
}

func (e *DecodeError) Error() string {
	switch {
	case errors.Is(e.Err, ErrUnrecognizedOpcode):
		return fmt.Sprintf("%v 0x%02x at offset %d", e.Err, e.Byte, e.Offset)
	case errors.Is(e.Err, ErrTruncatedInstruction):
		return fmt.Sprintf("%v at offset %d (opcode 0x%02x, %s)", e.Err, e.Offset, e.Byte, e.Phase)
	}
	return fmt.Sprintf("%v at offset %d", e.Err, e.Offset)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

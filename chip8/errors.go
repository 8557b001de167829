package chip8

import (
	"errors"
	"fmt"
)

var (
	// ErrProgramTooLarge is returned by Load when the program will not fit
	// between 0x200 and the end of memory.
	ErrProgramTooLarge = errors.New("program too large")

	// ErrStackOverflow is returned when CALL is executed with a full stack.
	ErrStackOverflow = errors.New("stack overflow")

	// ErrStackUnderflow is returned when RET is executed with an empty stack.
	ErrStackUnderflow = errors.New("stack underflow")

	// ErrUnknownOpcode is returned when a word doesn't decode to a CHIP-8
	// instruction.
	ErrUnknownOpcode = errors.New("unknown opcode")
)

// Fault is an execution error raised by Step. It records the instruction
// word and the address it was fetched from.
type Fault struct {
	Address uint16
	Opcode  uint16
	Err     error
}

func (f *Fault) Error() string {
	return fmt.Sprintf("%04X - %04X: %v", f.Address, f.Opcode, f.Err)
}

func (f *Fault) Unwrap() error {
	return f.Err
}

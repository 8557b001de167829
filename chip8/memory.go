package chip8

// CHIP-8 memory map:
//
//	0x000-0x04F: hex font sprites
//	0x050-0x1FF: reserved for the interpreter
//	0x200-0xFFF: program and working data
const (
	MemorySize     = 0x1000
	FontBase       = 0x000
	ProgramStart   = 0x200
	MaxProgramSize = MemorySize - ProgramStart

	addressMask = MemorySize - 1
)

// Memory is the 4K address space seen by a CHIP-8 program. Every access
// wraps at 0x1000 and the reserved area below 0x200 can't be written by a
// running program.
type Memory [MemorySize]byte

// Read a byte from memory.
func (m *Memory) Read(address uint16) byte {
	return m[address&addressMask]
}

// Word reads the big-endian 16-bit value at address.
func (m *Memory) Word(address uint16) uint16 {
	return uint16(m.Read(address))<<8 | uint16(m.Read(address+1))
}

// Write a byte to memory. Writes into the reserved area are dropped.
func (m *Memory) Write(address uint16, b byte) {
	if a := address & addressMask; a >= ProgramStart {
		m[a] = b
	}
}

// Slice returns n bytes starting at address, wrapping at the end of
// memory. The result is a copy.
func (m *Memory) Slice(address uint16, n int) []byte {
	out := make([]byte, n)

	for i := range out {
		out[i] = m.Read(address + uint16(i))
	}

	return out
}

// reset zeroes memory, installs the font and copies the program to 0x200.
func (m *Memory) reset(program []byte) {
	*m = Memory{}

	copy(m[FontBase:], font[:])
	copy(m[ProgramStart:], program)
}

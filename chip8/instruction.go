/* Copyright (c) 2017 Jeffrey Massung
 *
 * This software is provided 'as-is', without any express or implied
 * warranty.  In no event will the authors be held liable for any damages
 * arising from the use of this software.
 *
 * Permission is granted to anyone to use this software for any purpose,
 * including commercial applications, and to alter it and redistribute it
 * freely, subject to the following restrictions:
 *
 * 1. The origin of this software must not be misrepresented; you must not
 *    claim that you wrote the original software. If you use this software
 *    in a product, an acknowledgment in the product documentation would be
 *    appreciated but is not required.
 *
 * 2. Altered source versions must be plainly marked as such, and must not be
 *    misrepresented as being the original software.
 *
 * 3. This notice may not be removed or altered from any source distribution.
 */

package chip8

import (
	"fmt"
	"strings"

	chip8cpu "github.com/retroenv/retrogolib/arch/cpu/chip8"
)

// Op identifies a decoded CHIP-8 instruction.
type Op int

const (
	OpInvalid Op = iota
	OpCls         // 00E0
	OpRet         // 00EE
	OpJp          // 1NNN
	OpCall        // 2NNN
	OpSeByte      // 3XNN
	OpSneByte     // 4XNN
	OpSeReg       // 5XY0
	OpLdByte      // 6XNN
	OpAddByte     // 7XNN
	OpLdReg       // 8XY0
	OpOr          // 8XY1
	OpAnd         // 8XY2
	OpXor         // 8XY3
	OpAdd         // 8XY4
	OpSub         // 8XY5
	OpShr         // 8XY6
	OpSubn        // 8XY7
	OpShl         // 8XYE
	OpSneReg      // 9XY0
	OpLdI         // ANNN
	OpJpV0        // BNNN
	OpRnd         // CXNN
	OpDrw         // DXYN
	OpSkp         // EX9E
	OpSknp        // EXA1
	OpLdVxDT      // FX07
	OpLdVxK       // FX0A
	OpLdDTVx      // FX15
	OpLdSTVx      // FX18
	OpAddI        // FX1E
	OpLdF         // FX29
	OpLdB         // FX33
	OpStore       // FX55
	OpLoad        // FX65
)

// Instruction is a decoded opcode word with its operand fields already
// pulled out of the nibbles.
type Instruction struct {
	Op   Op
	Word uint16

	// register operands
	X, Y uint8

	// immediates
	N   uint8
	NN  uint8
	NNN uint16
}

// Decode an opcode word. Words that aren't CHIP-8 instructions decode to
// OpInvalid.
func Decode(word uint16) Instruction {
	inst := Instruction{
		Word: word,
		X:    uint8(word >> 8 & 0xF),
		Y:    uint8(word >> 4 & 0xF),
		N:    uint8(word & 0xF),
		NN:   uint8(word & 0xFF),
		NNN:  word & 0xFFF,
	}

	inst.Op = decodeOp(word, inst.N, inst.NN)

	return inst
}

func decodeOp(word uint16, n, nn uint8) Op {
	switch word >> 12 {
	case 0x0:
		switch word {
		case 0x00E0:
			return OpCls
		case 0x00EE:
			return OpRet
		}
	case 0x1:
		return OpJp
	case 0x2:
		return OpCall
	case 0x3:
		return OpSeByte
	case 0x4:
		return OpSneByte
	case 0x5:
		if n == 0 {
			return OpSeReg
		}
	case 0x6:
		return OpLdByte
	case 0x7:
		return OpAddByte
	case 0x8:
		switch n {
		case 0x0:
			return OpLdReg
		case 0x1:
			return OpOr
		case 0x2:
			return OpAnd
		case 0x3:
			return OpXor
		case 0x4:
			return OpAdd
		case 0x5:
			return OpSub
		case 0x6:
			return OpShr
		case 0x7:
			return OpSubn
		case 0xE:
			return OpShl
		}
	case 0x9:
		if n == 0 {
			return OpSneReg
		}
	case 0xA:
		return OpLdI
	case 0xB:
		return OpJpV0
	case 0xC:
		return OpRnd
	case 0xD:
		return OpDrw
	case 0xE:
		switch nn {
		case 0x9E:
			return OpSkp
		case 0xA1:
			return OpSknp
		}
	case 0xF:
		switch nn {
		case 0x07:
			return OpLdVxDT
		case 0x0A:
			return OpLdVxK
		case 0x15:
			return OpLdDTVx
		case 0x18:
			return OpLdSTVx
		case 0x1E:
			return OpAddI
		case 0x29:
			return OpLdF
		case 0x33:
			return OpLdB
		case 0x55:
			return OpStore
		case 0x65:
			return OpLoad
		}
	}

	return OpInvalid
}

// Mnemonic returns the assembler name of the instruction, e.g. "LD".
func (inst Instruction) Mnemonic() string {
	if inst.Op == OpInvalid {
		return "??"
	}

	for _, op := range chip8cpu.Opcodes[int(inst.Word>>12)] {
		if op.Info.Mask&inst.Word == op.Info.Value && op.Instruction != nil {
			return strings.ToUpper(op.Instruction.Name)
		}
	}

	return "??"
}

// String formats the instruction as assembler source, e.g. "LD     V1, #02".
func (inst Instruction) String() string {
	if operands := inst.operands(); operands != "" {
		return fmt.Sprintf("%-6s %s", inst.Mnemonic(), operands)
	}

	return inst.Mnemonic()
}

func (inst Instruction) operands() string {
	switch inst.Op {
	case OpJp, OpCall:
		return fmt.Sprintf("#%03X", inst.NNN)
	case OpJpV0:
		return fmt.Sprintf("V0, #%03X", inst.NNN)
	case OpSeByte, OpSneByte, OpLdByte, OpAddByte, OpRnd:
		return fmt.Sprintf("V%X, #%02X", inst.X, inst.NN)
	case OpSeReg, OpSneReg, OpLdReg, OpOr, OpAnd, OpXor, OpAdd, OpSub, OpSubn:
		return fmt.Sprintf("V%X, V%X", inst.X, inst.Y)
	case OpShr, OpShl, OpSkp, OpSknp:
		return fmt.Sprintf("V%X", inst.X)
	case OpLdI:
		return fmt.Sprintf("I, #%03X", inst.NNN)
	case OpDrw:
		return fmt.Sprintf("V%X, V%X, %d", inst.X, inst.Y, inst.N)
	case OpLdVxDT:
		return fmt.Sprintf("V%X, DT", inst.X)
	case OpLdVxK:
		return fmt.Sprintf("V%X, K", inst.X)
	case OpLdDTVx:
		return fmt.Sprintf("DT, V%X", inst.X)
	case OpLdSTVx:
		return fmt.Sprintf("ST, V%X", inst.X)
	case OpAddI:
		return fmt.Sprintf("I, V%X", inst.X)
	case OpLdF:
		return fmt.Sprintf("F, V%X", inst.X)
	case OpLdB:
		return fmt.Sprintf("B, V%X", inst.X)
	case OpStore:
		return fmt.Sprintf("[I], V%X", inst.X)
	case OpLoad:
		return fmt.Sprintf("V%X, [I]", inst.X)
	case OpInvalid:
		return fmt.Sprintf("#%04X", inst.Word)
	}

	return ""
}

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

// execute a decoded instruction. The program counter already points at the
// following instruction.
func (vm *CHIP_8) execute(inst Instruction) error {
	x, y := inst.X, inst.Y

	switch inst.Op {
	case OpCls:
		vm.cls()
	case OpRet:
		return vm.ret()
	case OpJp:
		vm.jump(inst.NNN)
	case OpCall:
		return vm.call(inst.NNN)
	case OpSeByte:
		vm.skipIf(vm.V[x] == inst.NN)
	case OpSneByte:
		vm.skipIf(vm.V[x] != inst.NN)
	case OpSeReg:
		vm.skipIf(vm.V[x] == vm.V[y])
	case OpSneReg:
		vm.skipIf(vm.V[x] != vm.V[y])
	case OpLdByte:
		vm.V[x] = inst.NN
	case OpAddByte:
		vm.V[x] += inst.NN
	case OpLdReg:
		vm.V[x] = vm.V[y]
	case OpOr:
		vm.V[x] |= vm.V[y]
	case OpAnd:
		vm.V[x] &= vm.V[y]
	case OpXor:
		vm.V[x] ^= vm.V[y]
	case OpAdd:
		vm.addXY(x, y)
	case OpSub:
		vm.subXY(x, y)
	case OpSubn:
		vm.subYX(x, y)
	case OpShr:
		vm.shr(x, y)
	case OpShl:
		vm.shl(x, y)
	case OpLdI:
		vm.I = inst.NNN
	case OpJpV0:
		vm.jumpV0(inst.NNN)
	case OpRnd:
		vm.V[x] = byte(vm.rng.Intn(256)) & inst.NN
	case OpDrw:
		vm.drw(x, y, inst.N)
	case OpSkp:
		vm.skipIf(vm.keypad.Pressed(vm.V[x]))
	case OpSknp:
		vm.skipIf(!vm.keypad.Pressed(vm.V[x]))
	case OpLdVxDT:
		vm.V[x] = vm.timers.Delay
	case OpLdVxK:
		vm.keypad.wait(x)
	case OpLdDTVx:
		vm.timers.Delay = vm.V[x]
	case OpLdSTVx:
		vm.timers.Sound = vm.V[x]
	case OpAddI:
		vm.I += uint16(vm.V[x])
	case OpLdF:
		vm.I = FontAddress(vm.V[x])
	case OpLdB:
		vm.loadB(x)
	case OpStore:
		vm.saveRegs(x)
	case OpLoad:
		vm.loadRegs(x)
	default:
		return ErrUnknownOpcode
	}

	return nil
}

// clear the video display memory.
func (vm *CHIP_8) cls() {
	vm.video.Clear()
}

// call a subroutine at address.
func (vm *CHIP_8) call(address uint16) error {
	if vm.sp == len(vm.stack) {
		return ErrStackOverflow
	}

	// push program counter onto stack
	vm.stack[vm.sp] = vm.PC
	vm.sp++

	vm.PC = address
	return nil
}

// return from subroutine.
func (vm *CHIP_8) ret() error {
	if vm.sp == 0 {
		return ErrStackUnderflow
	}

	vm.sp--
	vm.PC = vm.stack[vm.sp]
	return nil
}

// jump to address.
func (vm *CHIP_8) jump(address uint16) {
	vm.PC = address
}

// jump to address + v0, or address + vx where x is the high nibble of the
// address.
func (vm *CHIP_8) jumpV0(address uint16) {
	r := 0

	if vm.quirks.JumpOffset {
		r = int(address >> 8)
	}

	vm.PC = (address + uint16(vm.V[r])) & addressMask
}

// skip the next instruction if the condition holds.
func (vm *CHIP_8) skipIf(cond bool) {
	if cond {
		vm.PC = (vm.PC + 2) & addressMask
	}
}

// add vy to vx and set carry.
func (vm *CHIP_8) addXY(x, y uint8) {
	sum := uint16(vm.V[x]) + uint16(vm.V[y])

	vm.V[x] = byte(sum)
	vm.V[0xF] = byte(sum >> 8)
}

// subtract vy from vx, set carry if no borrow.
func (vm *CHIP_8) subXY(x, y uint8) {
	carry := flag(vm.V[x] >= vm.V[y])

	vm.V[x] -= vm.V[y]
	vm.V[0xF] = carry
}

// subtract vx from vy and store in vx, set carry if no borrow.
func (vm *CHIP_8) subYX(x, y uint8) {
	carry := flag(vm.V[y] >= vm.V[x])

	vm.V[x] = vm.V[y] - vm.V[x]
	vm.V[0xF] = carry
}

// shr vy (or vx) 1 bit into vx, set carry to the LSB before the shift.
func (vm *CHIP_8) shr(x, y uint8) {
	v := vm.shiftSource(x, y)

	vm.V[x] = v >> 1
	vm.V[0xF] = v & 1
}

// shl vy (or vx) 1 bit into vx, set carry to the MSB before the shift.
func (vm *CHIP_8) shl(x, y uint8) {
	v := vm.shiftSource(x, y)

	vm.V[x] = v << 1
	vm.V[0xF] = v >> 7
}

func (vm *CHIP_8) shiftSource(x, y uint8) byte {
	if vm.quirks.ShiftSource {
		return vm.V[x]
	}

	return vm.V[y]
}

// draw a sprite at I to video memory at vx, vy.
func (vm *CHIP_8) drw(x, y, n uint8) {
	sprite := vm.Memory.Slice(vm.I, int(n))

	// the origin always wraps, only pixels past the edge can be clipped
	px := int(vm.V[x]) % Width
	py := int(vm.V[y]) % Height

	vm.V[0xF] = flag(vm.video.Blit(px, py, sprite, vm.quirks.SpriteClip))
}

// load address with BCD of vx.
func (vm *CHIP_8) loadB(x uint8) {
	n := uint16(vm.V[x])
	b := uint16(0)

	// perform 8 shifts
	for i := uint(0); i < 8; i++ {
		if (b>>0)&0xF >= 5 {
			b += 3
		}
		if (b>>4)&0xF >= 5 {
			b += 3 << 4
		}
		if (b>>8)&0xF >= 5 {
			b += 3 << 8
		}

		// apply shift, pull next bit
		b = (b << 1) | (n >> (7 - i) & 1)
	}

	// write to memory
	vm.Memory.Write(vm.I+0, byte(b>>8)&0xF)
	vm.Memory.Write(vm.I+1, byte(b>>4)&0xF)
	vm.Memory.Write(vm.I+2, byte(b>>0)&0xF)
}

// save registers v0..vx to I.
func (vm *CHIP_8) saveRegs(x uint8) {
	for i := uint16(0); i <= uint16(x); i++ {
		vm.Memory.Write(vm.I+i, vm.V[i])
	}

	if vm.quirks.MemoryIncrement {
		vm.I += uint16(x) + 1
	}
}

// load registers v0..vx from I.
func (vm *CHIP_8) loadRegs(x uint8) {
	for i := uint16(0); i <= uint16(x); i++ {
		vm.V[i] = vm.Memory.Read(vm.I + i)
	}

	if vm.quirks.MemoryIncrement {
		vm.I += uint16(x) + 1
	}
}

func flag(b bool) byte {
	if b {
		return 1
	}

	return 0
}

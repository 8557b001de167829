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
	"math/rand"
	"os"
	"time"
)

// StackDepth is how many return addresses CALL can nest.
const StackDepth = 16

// CHIP_8 virtual machine.
//
// It isn't safe for concurrent use: the host calls Step at the CPU rate,
// TickTimers at 60Hz and SetKey as input arrives, all from one goroutine.
type CHIP_8 struct {
	// ROM is the last program loaded. Reset restores memory from it.
	ROM []byte

	// Memory addressable by CHIP-8. The first 512 bytes are reserved for
	// the font sprites.
	Memory Memory

	// PC is the program counter. All programs begin at 0x200.
	PC uint16

	// I is the address register.
	I uint16

	// V are the 16 virtual registers. VF doubles as the flag register.
	V [16]byte

	// Cycles is how many instructions have been executed since the last
	// load or reset.
	Cycles int64

	// call stack and its depth
	stack [StackDepth]uint16
	sp    int

	video  Display
	timers Timers
	keypad Keypad
	quirks Quirks

	// random number source for RND
	rng *rand.Rand
}

// New creates a CHIP-8 virtual machine with an empty program. The quirks
// can't be changed afterwards.
func New(quirks Quirks) *CHIP_8 {
	vm := &CHIP_8{
		quirks: quirks,
		rng:    rand.New(rand.NewSource(time.Now().UTC().UnixNano())),
	}

	vm.Reset()

	return vm
}

// Load a program into memory at 0x200 and reset the virtual machine.
// Nothing changes if the program is too large to fit.
func (vm *CHIP_8) Load(program []byte) error {
	if len(program) > MaxProgramSize {
		return fmt.Errorf("%w: %d bytes, limit is %d", ErrProgramTooLarge, len(program), MaxProgramSize)
	}

	vm.ROM = append([]byte(nil), program...)
	vm.Reset()

	return nil
}

// LoadFile reads a ROM file and loads it.
func (vm *CHIP_8) LoadFile(file string) error {
	program, err := os.ReadFile(file)
	if err != nil {
		return fmt.Errorf("reading ROM: %w", err)
	}

	return vm.Load(program)
}

// Reset the virtual machine back to the moment the current program was
// loaded.
func (vm *CHIP_8) Reset() {
	vm.Memory.reset(vm.ROM)

	// reset video memory
	vm.video.Clear()

	// reset keys and the key wait latch
	vm.keypad = Keypad{}

	// reset program counter and stack
	vm.PC = ProgramStart
	vm.stack = [StackDepth]uint16{}
	vm.sp = 0

	// reset address and virtual registers
	vm.I = 0
	vm.V = [16]byte{}

	// reset timer registers
	vm.timers = Timers{}

	vm.Cycles = 0
}

// Seed the random number source used by RND.
func (vm *CHIP_8) Seed(seed int64) {
	vm.rng = rand.New(rand.NewSource(seed))
}

// Quirks returns the configuration the virtual machine was created with.
func (vm *CHIP_8) Quirks() Quirks {
	return vm.quirks
}

// State returns whether the virtual machine is running or blocked waiting
// for a key.
func (vm *CHIP_8) State() State {
	return vm.keypad.state
}

// Depth returns the number of return addresses on the call stack.
func (vm *CHIP_8) Depth() int {
	return vm.sp
}

// Screen returns a copy of the video memory.
func (vm *CHIP_8) Screen() Display {
	return vm.video
}

// DelayTimer returns the delay timer register.
func (vm *CHIP_8) DelayTimer() byte {
	return vm.timers.Delay
}

// SoundTimer returns the sound timer register.
func (vm *CHIP_8) SoundTimer() byte {
	return vm.timers.Sound
}

// Beeping is true while the sound timer is running.
func (vm *CHIP_8) Beeping() bool {
	return vm.timers.Sound > 0
}

// TickTimers counts the delay and sound timers down. Call it at 60Hz.
func (vm *CHIP_8) TickTimers() {
	vm.timers.Tick()
}

// Pressed returns true if a key is held down.
func (vm *CHIP_8) Pressed(key uint) bool {
	return key < KeyCount && vm.keypad.keys[key]
}

// SetKey updates the state of one of the 16 keys. Pressing a key while
// LD Vx, K is waiting stores the key in Vx and lets Step continue. Keys
// outside 0-F are ignored.
func (vm *CHIP_8) SetKey(key uint, pressed bool) {
	if x, ok := vm.keypad.set(key, pressed); ok {
		vm.V[x] = byte(key)
	}
}

// PressKey emulates a CHIP-8 key being pressed.
func (vm *CHIP_8) PressKey(key uint) {
	vm.SetKey(key, true)
}

// ReleaseKey emulates a CHIP-8 key being released.
func (vm *CHIP_8) ReleaseKey(key uint) {
	vm.SetKey(key, false)
}

// Step the CHIP-8 virtual machine a single instruction. While waiting for
// a key nothing is executed. The returned state tells the caller whether
// the instruction left the virtual machine waiting for a key.
//
// A failing instruction returns a *Fault. The program counter has already
// moved past it and nothing else was changed.
func (vm *CHIP_8) Step() (State, error) {
	if vm.keypad.state == AwaitingKey {
		return AwaitingKey, nil
	}

	address := vm.PC

	// fetch and decode the next instruction
	inst := Decode(vm.fetch())

	if err := vm.execute(inst); err != nil {
		return vm.keypad.state, &Fault{
			Address: address,
			Opcode:  inst.Word,
			Err:     err,
		}
	}

	// increment the cycle count
	vm.Cycles++

	return vm.keypad.state, nil
}

// Next decodes the instruction at the program counter without executing it.
func (vm *CHIP_8) Next() Instruction {
	return Decode(vm.Memory.Word(vm.PC))
}

// fetch the next 16-bit instruction to execute.
func (vm *CHIP_8) fetch() uint16 {
	word := vm.Memory.Word(vm.PC)

	// advance the program counter
	vm.PC = (vm.PC + 2) & addressMask

	return word
}

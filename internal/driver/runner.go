package driver

import (
	"errors"

	"github.com/chip8-interp/chip8/chip8"
	"github.com/retroenv/retrogolib/log"
)

// FrameRate is how often Frame is expected to be called per second.
const FrameRate = chip8.TimerFrequency

// Runner steps a virtual machine at the configured speed and ticks its
// timers once per frame. It stops on a fault unless the fault policy lets
// the program continue.
type Runner struct {
	logger *log.Logger
	vm     *chip8.CHIP_8

	speed  int
	policy Policy
	trace  bool

	// instructions owed from previous frames, in 1/60ths
	carry int

	fault *chip8.Fault
	idle  bool
}

// NewRunner creates a runner for vm.
func NewRunner(logger *log.Logger, vm *chip8.CHIP_8, opts Options) *Runner {
	speed := opts.Speed
	if speed <= 0 {
		speed = DefaultSpeed
	}

	return &Runner{
		logger: logger,
		vm:     vm,
		speed:  speed,
		policy: opts.Policy,
		trace:  opts.Trace,
	}
}

// VM returns the virtual machine being run.
func (r *Runner) VM() *chip8.CHIP_8 {
	return r.vm
}

// Load a program and start it from the beginning.
func (r *Runner) Load(name string, program []byte) error {
	if err := r.vm.Load(program); err != nil {
		return err
	}

	r.restart()

	r.logger.Info("Loaded ROM",
		log.String("file", name),
		log.Int("size", len(program)),
		log.Stringer("quirks", r.vm.Quirks()))

	return nil
}

// LoadFile reads a ROM file and starts it from the beginning.
func (r *Runner) LoadFile(file string) error {
	if err := r.vm.LoadFile(file); err != nil {
		return err
	}

	r.restart()

	r.logger.Info("Loaded ROM",
		log.String("file", file),
		log.Int("size", len(r.vm.ROM)),
		log.Stringer("quirks", r.vm.Quirks()))

	return nil
}

// Reboot resets the virtual machine to the loaded program and clears a halt.
func (r *Runner) Reboot() {
	r.vm.Reset()
	r.restart()

	r.logger.Info("Rebooted")
}

func (r *Runner) restart() {
	r.carry = 0
	r.fault = nil
	r.idle = false
}

// Halted is true after a fault stopped the program.
func (r *Runner) Halted() bool {
	return r.fault != nil
}

// Fault returns the fault that halted the program, or nil.
func (r *Runner) Fault() *chip8.Fault {
	return r.fault
}

// Idle is true once the program jumped to its own address. Nothing but a
// reboot gets it out of that loop so the runner stops stepping it.
func (r *Runner) Idle() bool {
	return r.idle
}

// Frame runs one 60th of a second: up to speed/60 instructions, then a
// timer tick. Stepping ends early when the program waits for a key, halts
// or goes idle. It returns the number of instructions executed.
func (r *Runner) Frame() int {
	budget := r.budget()
	steps := 0

	for i := 0; i < budget && r.running(); i++ {
		if r.step() {
			steps++
		}
	}

	if !r.Halted() {
		r.vm.TickTimers()
	}

	return steps
}

// budget returns the instructions to execute this frame, carrying the
// remainder so the average rate matches the speed.
func (r *Runner) budget() int {
	total := r.speed + r.carry
	r.carry = total % FrameRate

	return total / FrameRate
}

func (r *Runner) running() bool {
	return r.fault == nil && !r.idle && r.vm.State() == chip8.Running
}

// step executes one instruction and returns whether it completed.
func (r *Runner) step() bool {
	address := r.vm.PC
	inst := r.vm.Next()

	if r.trace {
		r.logger.Debug("Step",
			log.Hex("address", address),
			log.Stringer("instruction", inst))
	}

	state, err := r.vm.Step()
	if err != nil {
		r.handleFault(err)
		return false
	}

	switch {
	case inst.Op == chip8.OpJp && inst.NNN == address:
		r.idle = true
		r.logger.Info("Program idle", log.Hex("address", address))

	case state == chip8.AwaitingKey:
		r.logger.Debug("Waiting for key",
			log.Hex("address", address),
			log.Uint8("register", inst.X))
	}

	return true
}

func (r *Runner) handleFault(err error) {
	var fault *chip8.Fault
	if !errors.As(err, &fault) {
		fault = &chip8.Fault{Address: r.vm.PC, Err: err}
	}

	inst := chip8.Decode(fault.Opcode)

	if r.policy == Skip && errors.Is(fault, chip8.ErrUnknownOpcode) {
		r.logger.Warn("Skipping unknown opcode",
			log.Hex("address", fault.Address),
			log.Hex("opcode", fault.Opcode),
			log.Stringer("instruction", inst))
		return
	}

	r.fault = fault
	r.logger.Error("Program halted",
		log.Hex("address", fault.Address),
		log.Hex("opcode", fault.Opcode),
		log.Stringer("instruction", inst),
		log.Stringer("policy", r.policy),
		log.Err(fault.Err))
}

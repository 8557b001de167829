package chip8

// KeyCount is the number of keys on the hex keypad.
const KeyCount = 16

// State of the interpreter between instructions.
type State int

const (
	// Running means Step executes the next instruction.
	Running State = iota

	// AwaitingKey means LD Vx, K is blocking until a key is pressed.
	AwaitingKey
)

func (s State) String() string {
	switch s {
	case Running:
		return "running"
	case AwaitingKey:
		return "awaiting key"
	}

	return "unknown"
}

// Keypad is the 16 key state plus the key wait latch set by LD Vx, K.
type Keypad struct {
	keys [KeyCount]bool

	// latch and the register that receives the next key press
	state State
	reg   uint8
}

// Pressed returns true if key (low nibble) is down.
func (k *Keypad) Pressed(key byte) bool {
	return k.keys[key&0xF]
}

// wait latches the keypad until the next press, which goes into Vx.
func (k *Keypad) wait(x uint8) {
	k.state = AwaitingKey
	k.reg = x
}

// set updates a key. If the keypad was latched and the key went down, the
// latch is released and the register the key belongs in is returned.
func (k *Keypad) set(key uint, pressed bool) (uint8, bool) {
	if key >= KeyCount {
		return 0, false
	}

	k.keys[key] = pressed

	switch k.state {
	case AwaitingKey:
		if pressed {
			k.state = Running
			return k.reg, true
		}
	case Running:
	}

	return 0, false
}

package chip8

// TimerFrequency is the rate (Hz) TickTimers must be called at.
const TimerFrequency = 60

// Timers are the delay and sound countdown registers. They are only
// decremented by Tick, which the host calls at 60Hz no matter how many
// instructions run in between.
type Timers struct {
	Delay byte
	Sound byte
}

// Tick counts both timers down by one, stopping at zero.
func (t *Timers) Tick() {
	if t.Delay > 0 {
		t.Delay--
	}

	if t.Sound > 0 {
		t.Sound--
	}
}

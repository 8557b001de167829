package chip8

import (
	"fmt"
	"strings"
)

// Quirks toggles behaviors that differ between historical interpreters.
// They are fixed when the virtual machine is created.
type Quirks struct {
	// ShiftSource makes SHR/SHL shift Vx in place instead of Vy into Vx.
	ShiftSource bool

	// JumpOffset makes BNNN jump to NNN + Vx, x being the high nibble of
	// NNN, instead of NNN + V0.
	JumpOffset bool

	// MemoryIncrement makes LD [I], Vx and LD Vx, [I] leave I pointing past
	// the last register transferred.
	MemoryIncrement bool

	// SpriteClip drops sprite pixels past the screen edge instead of
	// wrapping them around.
	SpriteClip bool
}

var (
	// VIP matches the original COSMAC VIP interpreter.
	VIP = Quirks{MemoryIncrement: true, SpriteClip: true}

	// CHIP48 matches the HP-48 interpreters most later games were written
	// for.
	CHIP48 = Quirks{ShiftSource: true, JumpOffset: true, SpriteClip: true}
)

// presets by name for ParseQuirks
var presets = map[string]Quirks{
	"":       {},
	"none":   {},
	"vip":    VIP,
	"chip48": CHIP48,
}

// ParseQuirks builds a quirks configuration from either a preset name
// (none, vip, chip48) or a comma separated list of toggles (shift, jump,
// memory, clip).
func ParseQuirks(s string) (Quirks, error) {
	s = strings.ToLower(strings.TrimSpace(s))

	if q, ok := presets[s]; ok {
		return q, nil
	}

	var q Quirks

	for _, name := range strings.Split(s, ",") {
		switch strings.TrimSpace(name) {
		case "shift":
			q.ShiftSource = true
		case "jump":
			q.JumpOffset = true
		case "memory":
			q.MemoryIncrement = true
		case "clip":
			q.SpriteClip = true
		default:
			return Quirks{}, fmt.Errorf("unknown quirk '%s'", name)
		}
	}

	return q, nil
}

// String lists the enabled toggles in the form ParseQuirks accepts.
func (q Quirks) String() string {
	var on []string

	if q.ShiftSource {
		on = append(on, "shift")
	}
	if q.JumpOffset {
		on = append(on, "jump")
	}
	if q.MemoryIncrement {
		on = append(on, "memory")
	}
	if q.SpriteClip {
		on = append(on, "clip")
	}

	if len(on) == 0 {
		return "none"
	}

	return strings.Join(on, ",")
}

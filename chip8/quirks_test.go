package chip8

import (
	"testing"

	"github.com/retroenv/retrogolib/assert"
)

func TestParseQuirks(t *testing.T) {
	tests := []struct {
		in      string
		want    Quirks
		wantErr bool
	}{
		{"", Quirks{}, false},
		{"none", Quirks{}, false},
		{"VIP", VIP, false},
		{"chip48", CHIP48, false},
		{"shift", Quirks{ShiftSource: true}, false},
		{"shift, clip", Quirks{ShiftSource: true, SpriteClip: true}, false},
		{"jump,memory", Quirks{JumpOffset: true, MemoryIncrement: true}, false},
		{"shift,wrap", Quirks{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			q, err := ParseQuirks(tt.in)
			if tt.wantErr {
				assert.ErrorContains(t, err, "unknown quirk")
				return
			}

			assert.NoError(t, err)
			assert.Equal(t, tt.want, q)
		})
	}
}

func TestQuirksStringRoundTrip(t *testing.T) {
	for _, q := range []Quirks{{}, VIP, CHIP48, {JumpOffset: true}} {
		parsed, err := ParseQuirks(q.String())
		assert.NoError(t, err)
		assert.Equal(t, q, parsed)
	}
}

func TestShiftQuirk(t *testing.T) {
	tests := []struct {
		name   string
		quirks Quirks
		word   uint16
		vx, vy byte
		want   byte
		flag   byte
	}{
		{"shr from vy", Quirks{}, 0x8016, 0x00, 0x04, 0x02, 0},
		{"shr in place", Quirks{ShiftSource: true}, 0x8016, 0x04, 0x09, 0x02, 0},
		{"shl from vy", Quirks{}, 0x801E, 0x00, 0x80, 0x00, 1},
		{"shl in place", Quirks{ShiftSource: true}, 0x801E, 0x41, 0x80, 0x82, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			vm := newVM(t, tt.quirks, tt.word)
			vm.V[0] = tt.vx
			vm.V[1] = tt.vy

			step(t, vm, 1)
			assert.Equal(t, tt.want, vm.V[0])
			assert.Equal(t, tt.flag, vm.V[0xF])
			assert.Equal(t, tt.vy, vm.V[1])
		})
	}
}

func TestJumpQuirk(t *testing.T) {
	tests := []struct {
		name   string
		quirks Quirks
		want   uint16
	}{
		{"v0 offset", Quirks{}, 0x310},
		{"vx offset", Quirks{JumpOffset: true}, 0x320},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			vm := newVM(t, tt.quirks, 0xB300)
			vm.V[0] = 0x10
			vm.V[3] = 0x20

			step(t, vm, 1)
			assert.Equal(t, tt.want, vm.PC)
		})
	}
}

func TestJumpOffsetWraps(t *testing.T) {
	vm := newVM(t, Quirks{}, 0xBFFF)
	vm.V[0] = 0x03

	step(t, vm, 1)
	assert.Equal(t, uint16(0x002), vm.PC)
}

func TestMemoryQuirk(t *testing.T) {
	tests := []struct {
		name       string
		quirks     Quirks
		afterStore uint16
		afterLoad  uint16
	}{
		{"index unchanged", Quirks{}, 0x300, 0x300},
		{"index advanced", Quirks{MemoryIncrement: true}, 0x304, 0x308},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			vm := newVM(t, tt.quirks,
				0xA300, // LD I, #300
				0xF355, // LD [I], V3
				0xF365, // LD V3, [I]
			)

			step(t, vm, 2)
			assert.Equal(t, tt.afterStore, vm.I)

			step(t, vm, 1)
			assert.Equal(t, tt.afterLoad, vm.I)
		})
	}
}

package chip8

import (
	"testing"

	"github.com/retroenv/retrogolib/assert"
)

func TestDisplayBlit(t *testing.T) {
	var d Display

	collision := d.Blit(3, 2, []byte{0xA0, 0x40}, false)
	assert.False(t, collision)
	assert.Equal(t, 3, d.Lit())
	assert.True(t, d.Pixel(3, 2))
	assert.False(t, d.Pixel(4, 2))
	assert.True(t, d.Pixel(5, 2))
	assert.True(t, d.Pixel(4, 3))

	// overlapping one lit pixel turns it off
	collision = d.Blit(4, 3, []byte{0x80}, false)
	assert.True(t, collision)
	assert.False(t, d.Pixel(4, 3))
	assert.Equal(t, 2, d.Lit())
}

func TestDisplayBlitNoCollisionOnDarkPixels(t *testing.T) {
	var d Display

	d.Blit(0, 0, []byte{0xF0}, false)

	// lighting new pixels next to lit ones is not a collision
	assert.False(t, d.Blit(0, 0, []byte{0x0F}, false))
	assert.Equal(t, 8, d.Lit())
}

func TestDisplayBlitWraps(t *testing.T) {
	var d Display

	d.Blit(62, 31, []byte{0xF0, 0xF0}, false)

	assert.True(t, d.Pixel(62, 31))
	assert.True(t, d.Pixel(63, 31))
	assert.True(t, d.Pixel(0, 31))
	assert.True(t, d.Pixel(1, 31))
	assert.True(t, d.Pixel(62, 0))
	assert.True(t, d.Pixel(1, 0))
	assert.Equal(t, 8, d.Lit())
}

func TestDisplayBlitClips(t *testing.T) {
	var d Display

	d.Blit(62, 31, []byte{0xF0, 0xF0}, true)

	assert.True(t, d.Pixel(62, 31))
	assert.True(t, d.Pixel(63, 31))
	assert.False(t, d.Pixel(0, 31))
	assert.False(t, d.Pixel(62, 0))
	assert.Equal(t, 2, d.Lit())
}

func TestDisplayPixelOffScreen(t *testing.T) {
	var d Display

	d.Blit(0, 0, []byte{0xFF}, false)

	assert.False(t, d.Pixel(-1, 0))
	assert.False(t, d.Pixel(Width, 0))
	assert.False(t, d.Pixel(0, Height))
}

func TestDisplayClear(t *testing.T) {
	var d Display

	d.Blit(10, 10, []byte{0xFF, 0xFF, 0xFF}, false)
	d.Clear()

	assert.Equal(t, 0, d.Lit())
}

func TestDrawOriginWraps(t *testing.T) {
	// the origin wraps even with clipping on
	for _, q := range []Quirks{{}, {SpriteClip: true}} {
		vm := newVM(t, q,
			0x6046, // LD V0, #46 (70)
			0x6125, // LD V1, #25 (37)
			0xA000, // LD I, #000
			0xD011, // DRW V0, V1, 1
		)
		step(t, vm, 4)

		screen := vm.Screen()
		assert.True(t, screen.Pixel(6, 5))
		assert.Equal(t, 4, screen.Lit())
	}
}

func TestDrawClipQuirk(t *testing.T) {
	tests := []struct {
		quirks Quirks
		lit    int
	}{
		{Quirks{}, 4},
		{Quirks{SpriteClip: true}, 2},
	}

	for _, tt := range tests {
		t.Run(tt.quirks.String(), func(t *testing.T) {
			vm := newVM(t, tt.quirks,
				0x603E, // LD V0, #3E (62)
				0xA000, // LD I, #000
				0xD001, // DRW V0, V0, 1
			)
			step(t, vm, 3)

			screen := vm.Screen()
			assert.Equal(t, tt.lit, screen.Lit())
		})
	}
}

func TestDrawZeroRows(t *testing.T) {
	vm := newVM(t, Quirks{}, 0xD000)
	vm.V[0xF] = 1

	step(t, vm, 1)
	assert.Equal(t, byte(0), vm.V[0xF])
}

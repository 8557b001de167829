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

// Display resolution in pixels.
const (
	Width  = 64
	Height = 32

	// bytes per scan line
	pitch = Width >> 3
)

// Display is the 64x32 monochrome frame buffer. Each bit is a pixel, stored
// MSB first: pixel <0,0> is bit 0x80 of byte 0.
type Display [Width * Height / 8]byte

// Pixel returns true if the pixel at x, y is lit. Coordinates off the
// screen are never lit.
func (d *Display) Pixel(x, y int) bool {
	if x < 0 || x >= Width || y < 0 || y >= Height {
		return false
	}

	return d[y*pitch+x>>3]&(0x80>>uint(x&7)) != 0
}

// Lit returns the number of pixels that are on.
func (d *Display) Lit() int {
	n := 0

	for _, b := range d {
		for ; b != 0; b &= b - 1 {
			n++
		}
	}

	return n
}

// Clear turns every pixel off.
func (d *Display) Clear() {
	*d = Display{}
}

// Blit XORs a sprite onto the display with its top-left corner at x, y
// (already reduced to the screen). Each sprite byte is one row of 8
// pixels. Pixels that fall past an edge wrap around the screen, or are
// dropped when clip is set. Returns true if any lit pixel was turned off.
func (d *Display) Blit(x, y int, sprite []byte, clip bool) bool {
	collision := false

	for row, bits := range sprite {
		py := y + row

		if py >= Height {
			if clip {
				break
			}

			py %= Height
		}

		for col := 0; col < 8; col++ {
			if bits&(0x80>>uint(col)) == 0 {
				continue
			}

			px := x + col

			if px >= Width {
				if clip {
					break
				}

				px %= Width
			}

			// flip the pixel, a lit pixel going dark is a collision
			i := py*pitch + px>>3
			mask := byte(0x80) >> uint(px&7)

			if d[i]&mask != 0 {
				collision = true
			}

			d[i] ^= mask
		}
	}

	return collision
}

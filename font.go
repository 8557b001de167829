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

package main

import (
	"github.com/chip8-interp/chip8/chip8"
	"github.com/veandco/go-sdl2/sdl"
)

/// DrawHex draws hex digits with the CHIP-8 font, each font pixel scale
/// window pixels wide. Anything that isn't a hex digit leaves a gap.
///
func DrawHex(s string, x, y, scale int32) {
	_ = Renderer.SetDrawColor(143, 145, 133, 255)

	// loop over all the characters in the string
	for _, c := range s {
		if digit, ok := hexDigit(c); ok {
			for row, bits := range chip8.Glyph(digit) {
				for col := int32(0); col < 4; col++ {
					if bits&(0x80>>uint(col)) == 0 {
						continue
					}

					_ = Renderer.FillRect(&sdl.Rect{
						X: x + col*scale,
						Y: y + int32(row)*scale,
						W: scale,
						H: scale,
					})
				}
			}
		}

		// advance
		x += 5 * scale
	}
}

func hexDigit(c rune) (byte, bool) {
	switch {
	case c >= '0' && c <= '9':
		return byte(c - '0'), true
	case c >= 'A' && c <= 'F':
		return byte(c-'A') + 10, true
	case c >= 'a' && c <= 'f':
		return byte(c-'a') + 10, true
	}

	return 0, false
}

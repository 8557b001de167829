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
	"fmt"

	"github.com/chip8-interp/chip8/chip8"
	"github.com/veandco/go-sdl2/sdl"
)

var (
	/// Render target holding the CHIP-8 video memory at 1:1 scale.
	///
	Screen *sdl.Texture
)

/// InitScreen creates the render target for the CHIP-8 video memory.
///
func InitScreen() error {
	var err error

	// create a render target for the display
	Screen, err = Renderer.CreateTexture(sdl.PIXELFORMAT_RGB888, sdl.TEXTUREACCESS_TARGET, chip8.Width, chip8.Height)
	if err != nil {
		return fmt.Errorf("creating screen texture: %w", err)
	}

	return nil
}

/// RefreshScreen with the CHIP-8 video memory.
///
func RefreshScreen() {
	if err := Renderer.SetRenderTarget(Screen); err != nil {
		return
	}

	// the background color for the screen
	_ = Renderer.SetDrawColor(143, 145, 133, 255)
	_ = Renderer.Clear()

	// set the pixel color
	_ = Renderer.SetDrawColor(17, 29, 43, 255)

	video := Runner.VM().Screen()

	// draw all the lit pixels
	for y := 0; y < chip8.Height; y++ {
		for x := 0; x < chip8.Width; x++ {
			if video.Pixel(x, y) {
				_ = Renderer.DrawPoint(int32(x), int32(y))
			}
		}
	}

	// restore the render target
	_ = Renderer.SetRenderTarget(nil)
}

/// CopyScreen to the render target, stretched to fit.
///
func CopyScreen(x, y, w, h int32) {
	src := sdl.Rect{
		W: chip8.Width,
		H: chip8.Height,
	}

	_ = Renderer.Copy(Screen, &src, &sdl.Rect{X: x, Y: y, W: w, H: h})
}

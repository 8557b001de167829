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
	"context"
	"errors"
	"fmt"
	"os"
	"runtime"
	"time"

	"github.com/chip8-interp/chip8/chip8"
	"github.com/chip8-interp/chip8/internal/driver"
	"github.com/chip8-interp/chip8/internal/terminal"
	"github.com/retroenv/retrogolib/app"
	"github.com/retroenv/retrogolib/log"
	"github.com/veandco/go-sdl2/sdl"
)

var (
	/// The runner stepping the CHIP-8 virtual machine.
	///
	Runner *driver.Runner

	/// Structured logger shared by the front ends.
	///
	Logger *log.Logger

	/// The SDL Window and Renderer.
	///
	Window   *sdl.Window
	Renderer *sdl.Renderer
)

func init() {
	runtime.LockOSThread()
}

func main() {
	ctx := app.Context()

	opts, err := driver.ParseFlags(os.Args)
	if err != nil {
		Logger = driver.CreateLogger(opts.Debug, opts.Quiet, nil)

		var usageErr *driver.UsageError
		if errors.As(err, &usageErr) {
			if usageErr.Error() != "" {
				Logger.Error(usageErr.Error())
			}
			usageErr.ShowUsage(os.Stdout)
		} else {
			Logger.Error(err.Error())
		}
		os.Exit(1)
	}

	// the terminal front end owns stdout and puts it in raw mode
	output, closeLog, err := driver.LogOutput(opts, terminal.RawWriter(os.Stderr))
	Logger = driver.CreateLogger(opts.Debug, opts.Quiet, output)
	if err != nil {
		Logger.Fatal(err.Error())
	}
	defer func() {
		_ = closeLog()
	}()

	// create a new CHIP-8 virtual machine, the quirks are fixed from here
	Runner = driver.NewRunner(Logger, chip8.New(opts.Quirks), opts)

	if opts.Term {
		err = runTerminal(ctx, opts)
	} else {
		err = runWindow(ctx, opts)
	}

	if err != nil {
		Logger.Error(err.Error())
		_ = closeLog()
		os.Exit(1)
	}
}

func runTerminal(ctx context.Context, opts driver.Options) error {
	if opts.ROM == "" {
		return errors.New("no ROM file given")
	}

	if err := Runner.LoadFile(opts.ROM); err != nil {
		return err
	}

	return terminal.New(Runner, os.Stdout).Run(ctx, os.Stdin)
}

func runWindow(ctx context.Context, opts driver.Options) error {
	if err := sdl.Init(sdl.INIT_VIDEO | sdl.INIT_AUDIO); err != nil {
		return fmt.Errorf("initializing SDL: %w", err)
	}
	defer sdl.Quit()

	// ask for a ROM when none was given
	if opts.ROM == "" {
		if !LoadDialog() {
			return nil
		}
	} else if err := Runner.LoadFile(opts.ROM); err != nil {
		return err
	}

	w := int32(chip8.Width * opts.Scale)
	h := int32(chip8.Height * opts.Scale)

	var err error

	// create the main window and renderer
	if Window, err = sdl.CreateWindow("CHIP-8", sdl.WINDOWPOS_CENTERED, sdl.WINDOWPOS_CENTERED, w, h, sdl.WINDOW_SHOWN); err != nil {
		return fmt.Errorf("creating window: %w", err)
	}
	defer Window.Destroy()

	if Renderer, err = sdl.CreateRenderer(Window, -1, sdl.RENDERER_ACCELERATED); err != nil {
		return fmt.Errorf("creating renderer: %w", err)
	}
	defer Renderer.Destroy()

	// initialize subsystems
	if err = InitScreen(); err != nil {
		return err
	}
	defer Screen.Destroy()

	if err = InitAudio(); err != nil {
		Logger.Warn("Audio disabled", log.Err(err))
	}
	defer CloseAudio()

	// one frame runs speed/60 instructions and ticks the timers
	video := time.NewTicker(time.Second / driver.FrameRate)
	defer video.Stop()

	// loop until window closed or user quit
	for ProcessEvents() {
		select {
		case <-ctx.Done():
			return nil
		case <-video.C:
			Runner.Frame()

			Tone(Runner.VM().Beeping())
			Refresh(w, h)
		}
	}

	return nil
}

/// Refresh redraws the window.
///
func Refresh(w, h int32) {
	_ = Renderer.SetDrawColor(32, 42, 53, 255)
	_ = Renderer.Clear()

	// update the video screen and copy it
	RefreshScreen()
	CopyScreen(0, 0, w, h)

	// show where the program stopped
	if fault := Runner.Fault(); fault != nil {
		scale := h / chip8.Height

		Frame(0, h-9*scale, w, 9*scale)
		DrawHex(fmt.Sprintf("%04X %04X", fault.Address, fault.Opcode), scale*2, h-7*scale, scale)
	}

	// show the new frame
	Renderer.Present()
}

/// Frame draws a filled, beveled panel.
///
func Frame(x, y, w, h int32) {
	_ = Renderer.SetDrawColor(32, 42, 53, 255)
	_ = Renderer.FillRect(&sdl.Rect{X: x, Y: y, W: w, H: h})

	_ = Renderer.SetDrawColor(0, 0, 0, 255)
	_ = Renderer.DrawLine(x, y, x+w, y)
	_ = Renderer.DrawLine(x, y, x, y+h)

	// highlight
	_ = Renderer.SetDrawColor(95, 112, 120, 255)
	_ = Renderer.DrawLine(x+w-1, y, x+w-1, y+h)
	_ = Renderer.DrawLine(x, y+h-1, x+w, y+h-1)
}

// Package terminal is a text front end. It draws the CHIP-8 screen with
// half-block characters and reads the keypad from raw stdin.
package terminal

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/chip8-interp/chip8/chip8"
	"github.com/chip8-interp/chip8/internal/driver"
	"golang.org/x/term"
)

// KeyHoldFrames is how many frames a key stays down after it was typed.
// Terminals report key presses but never releases.
const KeyHoldFrames = 6

// KeyMap maps the left side of a QWERTY keyboard to the hex keypad.
var KeyMap = map[byte]uint{
	'x': 0x0,
	'1': 0x1,
	'2': 0x2,
	'3': 0x3,
	'q': 0x4,
	'w': 0x5,
	'e': 0x6,
	'a': 0x7,
	's': 0x8,
	'd': 0x9,
	'z': 0xA,
	'c': 0xB,
	'4': 0xC,
	'r': 0xD,
	'f': 0xE,
	'v': 0xF,
}

const (
	keyCtrlC     = 0x03
	keyEscape    = 0x1B
	keyBackspace = 0x7F

	home        = "\x1b[H"
	clearScreen = "\x1b[2J"
	eraseLine   = "\x1b[K"
	hideCursor  = "\x1b[?25l"
	showCursor  = "\x1b[?25h"
	bell        = "\a"
)

// Host runs a program in the terminal.
type Host struct {
	runner *driver.Runner
	out    *bufio.Writer

	// frames left before each key is released
	held [chip8.KeyCount]int

	beeping bool
}

// New creates a host drawing to out.
func New(runner *driver.Runner, out io.Writer) *Host {
	return &Host{
		runner: runner,
		out:    bufio.NewWriter(out),
	}
}

// Run switches in to raw mode and runs at 60 frames per second until the
// context is cancelled, the input is closed or ESC is typed.
func (h *Host) Run(ctx context.Context, in *os.File) error {
	fd := int(in.Fd())
	if !term.IsTerminal(fd) {
		return errors.New("stdin is not a terminal")
	}

	state, err := term.MakeRaw(fd)
	if err != nil {
		return fmt.Errorf("setting raw mode: %w", err)
	}
	defer func() {
		_ = term.Restore(fd, state)
	}()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	keys := make(chan byte, 16)
	go readKeys(ctx, in, keys)

	ticker := time.NewTicker(time.Second / driver.FrameRate)
	defer ticker.Stop()

	return h.loop(ctx, keys, ticker.C)
}

// readKeys forwards bytes from in until it fails or ctx is done. A Read
// that is already blocked only returns with the next byte or the end of
// the process, the goroutine exits right after it.
func readKeys(ctx context.Context, in io.Reader, keys chan<- byte) {
	defer close(keys)

	buf := make([]byte, 16)
	for {
		n, err := in.Read(buf)
		for _, b := range buf[:n] {
			select {
			case keys <- b:
			case <-ctx.Done():
				return
			}
		}
		if err != nil || ctx.Err() != nil {
			return
		}
	}
}

func (h *Host) loop(ctx context.Context, keys <-chan byte, frames <-chan time.Time) error {
	fmt.Fprint(h.out, clearScreen, hideCursor)
	defer func() {
		fmt.Fprint(h.out, showCursor, "\r\n")
		_ = h.out.Flush()
	}()

	for {
		select {
		case <-ctx.Done():
			return nil

		case b, ok := <-keys:
			if !ok || !h.Input(b) {
				return nil
			}

		case <-frames:
			if err := h.Frame(); err != nil {
				return err
			}
		}
	}
}

// Input handles a byte typed on the keyboard. It returns false when the
// user asked to quit.
func (h *Host) Input(b byte) bool {
	switch b {
	case keyCtrlC, keyEscape:
		return false

	case keyBackspace, '\b':
		h.runner.Reboot()
		return true
	}

	if b >= 'A' && b <= 'Z' {
		b += 'a' - 'A'
	}

	if key, ok := KeyMap[b]; ok {
		h.runner.VM().PressKey(key)
		h.held[key] = KeyHoldFrames
	}

	return true
}

// Frame runs one frame, releases expired keys and redraws the screen.
func (h *Host) Frame() error {
	h.runner.Frame()
	h.releaseKeys()

	Render(h.out, h.runner.VM().Screen())

	fmt.Fprint(h.out, eraseLine, h.status(), "\r\n")

	// ring the bell when the sound timer starts
	beeping := h.runner.VM().Beeping()
	if beeping && !h.beeping {
		fmt.Fprint(h.out, bell)
	}
	h.beeping = beeping

	return h.out.Flush()
}

func (h *Host) releaseKeys() {
	vm := h.runner.VM()

	for key, n := range h.held {
		if n == 0 {
			continue
		}

		h.held[key]--
		if h.held[key] == 0 {
			vm.ReleaseKey(uint(key))
		}
	}
}

func (h *Host) status() string {
	switch {
	case h.runner.Halted():
		return "halted: " + h.runner.Fault().Error()
	case h.runner.Idle():
		return "idle"
	case h.runner.VM().State() == chip8.AwaitingKey:
		return "waiting for key"
	}

	return ""
}

// Render draws the screen at the top of the terminal. Each character cell
// holds two pixel rows.
func Render(w io.Writer, screen chip8.Display) {
	var sb strings.Builder

	sb.WriteString(home)

	for y := 0; y < chip8.Height; y += 2 {
		for x := 0; x < chip8.Width; x++ {
			top, bottom := screen.Pixel(x, y), screen.Pixel(x, y+1)

			switch {
			case top && bottom:
				sb.WriteRune('█')
			case top:
				sb.WriteRune('▀')
			case bottom:
				sb.WriteRune('▄')
			default:
				sb.WriteByte(' ')
			}
		}

		sb.WriteString("\r\n")
	}

	_, _ = io.WriteString(w, sb.String())
}

// rawWriter puts a carriage return before every line feed. Raw mode turns
// off that translation in the terminal.
type rawWriter struct {
	w io.Writer
}

// RawWriter wraps w for output that is written while the terminal is in
// raw mode, such as log records on stderr.
func RawWriter(w io.Writer) io.Writer {
	return rawWriter{w: w}
}

func (r rawWriter) Write(p []byte) (int, error) {
	if _, err := r.w.Write(bytes.ReplaceAll(p, []byte("\n"), []byte("\r\n"))); err != nil {
		return 0, err
	}

	return len(p), nil
}

package driver

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/chip8-interp/chip8/chip8"
	"github.com/retroenv/retrogolib/assert"
)

func TestParseFlags(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want Options
	}{
		{
			name: "defaults",
			args: []string{"chip8"},
			want: Options{Speed: DefaultSpeed, Scale: 10},
		},
		{
			name: "rom only",
			args: []string{"chip8", "games/PONG"},
			want: Options{ROM: "games/PONG", Speed: DefaultSpeed, Scale: 10},
		},
		{
			name: "all flags",
			args: []string{"chip8", "-speed", "1000", "-quirks", "vip", "-policy", "skip", "-scale", "4", "-term", "-q", "pong.ch8"},
			want: Options{
				ROM:    "pong.ch8",
				Speed:  1000,
				Quirks: chip8.VIP,
				Policy: Skip,
				Scale:  4,
				Term:   true,
				Quiet:  true,
			},
		},
		{
			name: "quirk list",
			args: []string{"chip8", "-quirks", "shift,jump", "rom"},
			want: Options{ROM: "rom", Speed: DefaultSpeed, Scale: 10, Quirks: chip8.Quirks{ShiftSource: true, JumpOffset: true}},
		},
		{
			name: "log file",
			args: []string{"chip8", "-term", "-log", "chip8.log", "rom"},
			want: Options{ROM: "rom", Speed: DefaultSpeed, Scale: 10, Term: true, LogFile: "chip8.log"},
		},
		{
			name: "trace implies debug",
			args: []string{"chip8", "-trace", "rom"},
			want: Options{ROM: "rom", Speed: DefaultSpeed, Scale: 10, Trace: true, Debug: true},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseFlags(tt.args)
			assert.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseFlagsErrors(t *testing.T) {
	tests := []struct {
		name  string
		args  []string
		usage bool
		msg   string
	}{
		{"unknown flag", []string{"chip8", "-fast", "rom"}, true, "not defined"},
		{"flag after rom", []string{"chip8", "rom", "-q"}, true, "after the ROM file"},
		{"bad speed", []string{"chip8", "-speed", "0", "rom"}, false, "invalid speed"},
		{"bad scale", []string{"chip8", "-scale", "-1", "rom"}, false, "invalid scale"},
		{"bad quirk", []string{"chip8", "-quirks", "wrap", "rom"}, false, "unknown quirk"},
		{"bad policy", []string{"chip8", "-policy", "retry", "rom"}, false, "unsupported fault policy"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseFlags(tt.args)
			assert.ErrorContains(t, err, tt.msg)

			var usageErr *UsageError
			assert.Equal(t, tt.usage, errors.As(err, &usageErr))
		})
	}
}

func TestShowUsage(t *testing.T) {
	_, err := ParseFlags([]string{"chip8", "-h"})

	var usageErr *UsageError
	assert.True(t, errors.As(err, &usageErr))

	var buf bytes.Buffer
	usageErr.ShowUsage(&buf)
	assert.True(t, strings.Contains(buf.String(), "-speed"))
	assert.True(t, strings.Contains(buf.String(), "usage: chip8"))
}

func TestParsePolicy(t *testing.T) {
	for _, p := range []Policy{Halt, Skip} {
		parsed, err := ParsePolicy(p.String())
		assert.NoError(t, err)
		assert.Equal(t, p, parsed)
	}
}

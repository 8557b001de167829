// Package driver runs a CHIP-8 program in 60Hz frames and handles its
// configuration and logging.
package driver

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"strings"

	"github.com/chip8-interp/chip8/chip8"
)

// DefaultSpeed is the number of instructions executed per second.
const DefaultSpeed = 700

// Policy decides what happens when an instruction faults.
type Policy int

const (
	// Halt stops the program at the first fault.
	Halt Policy = iota

	// Skip logs unknown opcodes and continues with the next word. Stack
	// faults still halt.
	Skip
)

func (p Policy) String() string {
	switch p {
	case Halt:
		return "halt"
	case Skip:
		return "skip"
	}

	return "unknown"
}

// ParsePolicy parses a policy name.
func ParsePolicy(s string) (Policy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "halt":
		return Halt, nil
	case "skip":
		return Skip, nil
	}

	return Halt, fmt.Errorf("unsupported fault policy: %s. Valid options: halt, skip", s)
}

// Options of a run.
type Options struct {
	ROM    string
	Speed  int
	Quirks chip8.Quirks
	Policy Policy
	Scale  int

	// LogFile receives the log instead of the console when set.
	LogFile string

	Term  bool
	Debug bool
	Trace bool
	Quiet bool
}

// UsageError represents an error that should show usage information.
type UsageError struct {
	flags *flag.FlagSet
	msg   string
}

func (e *UsageError) Error() string {
	return e.msg
}

// ShowUsage prints the flag defaults to w.
func (e *UsageError) ShowUsage(w io.Writer) {
	fmt.Fprintf(w, "usage: chip8 [options] [ROM file]\n\n")

	if e.flags != nil {
		e.flags.SetOutput(w)
		e.flags.PrintDefaults()
	}

	fmt.Fprintln(w)
}

// ParseFlags parses the command line. args[0] is the program name. The ROM
// is optional, the front end asks for one when it's missing.
func ParseFlags(args []string) (Options, error) {
	var name string
	if len(args) > 0 {
		name, args = args[0], args[1:]
	}

	flags := flag.NewFlagSet(name, flag.ContinueOnError)
	flags.SetOutput(io.Discard)

	opts := Options{}
	var quirks, policy string
	readOptionFlags(flags, &opts, &quirks, &policy)

	if err := flags.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return opts, &UsageError{flags: flags}
		}
		return opts, &UsageError{flags: flags, msg: err.Error()}
	}

	rest := flags.Args()
	switch {
	case len(rest) > 1:
		return opts, &UsageError{
			flags: flags,
			msg:   fmt.Sprintf("Unexpected argument %s found after the ROM file, please pass the ROM file as last argument", rest[1]),
		}
	case len(rest) == 1:
		opts.ROM = rest[0]
	}

	if err := normalizeOptions(&opts, quirks, policy); err != nil {
		return opts, err
	}

	return opts, nil
}

func readOptionFlags(flags *flag.FlagSet, opts *Options, quirks, policy *string) {
	flags.IntVar(&opts.Speed, "speed", DefaultSpeed, "instructions executed per second")
	flags.StringVar(quirks, "quirks", "none", "quirk preset (none/vip/chip48) or comma list of shift,jump,memory,clip")
	flags.StringVar(policy, "policy", "halt", "what to do on an unknown opcode (halt/skip)")
	flags.IntVar(&opts.Scale, "scale", 10, "window pixels per CHIP-8 pixel")
	flags.StringVar(&opts.LogFile, "log", "", "write the log to this file instead of the console")
	flags.BoolVar(&opts.Term, "term", false, "render to the terminal instead of opening a window")
	flags.BoolVar(&opts.Debug, "debug", false, "enable debugging options for extended logging")
	flags.BoolVar(&opts.Trace, "trace", false, "log every executed instruction, implies -debug")
	flags.BoolVar(&opts.Quiet, "q", false, "only log errors")
}

// normalizeOptions validates option values and converts the named ones.
func normalizeOptions(opts *Options, quirks, policy string) error {
	if opts.Speed <= 0 {
		return fmt.Errorf("invalid speed %d: must be positive", opts.Speed)
	}
	if opts.Scale <= 0 {
		return fmt.Errorf("invalid scale %d: must be positive", opts.Scale)
	}

	q, err := chip8.ParseQuirks(quirks)
	if err != nil {
		return fmt.Errorf("parsing quirks: %w", err)
	}
	opts.Quirks = q

	p, err := ParsePolicy(policy)
	if err != nil {
		return err
	}
	opts.Policy = p

	if opts.Trace {
		opts.Debug = true
	}

	return nil
}

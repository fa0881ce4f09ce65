// This file is part of Sandstorm.
//
// Sandstorm is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// Sandstorm is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with Sandstorm.  If not, see <https://www.gnu.org/licenses/>.

// Package modalflag is a wrapper around the flag package in the Go standard
// library, adding the idea of program modes: the first non-flag argument can
// select a sub-mode, each sub-mode having its own flags.
//
// The idiomatic usage is:
//
//	md := modalflag.Modes{Output: os.Stdout}
//	md.NewArgs(os.Args[1:])
//	md.AddSubModes("RUN", "MONITOR", "VERSION")
//
//	r, err := md.Parse()
//	if r != modalflag.ParseContinue {
//		...
//	}
//
//	switch md.Mode() {
//	...
//	}
//
// Sub-mode comparison is case insensitive and the first sub-mode added is
// the default when the argument matches none of them.
package modalflag

import (
	"flag"
	"fmt"
	"io"
	"strings"
)

// Modes provides a way of handling a modal command line. The Output field
// should be specified before calling Parse() or help messages will not be
// seen.
type Modes struct {
	// where to print help messages. defaults to nowhere
	Output io.Writer

	// the underlying flagset. recreated on every call to NewArgs() and
	// NewMode()
	flags *flag.FlagSet

	// the argument list given to NewArgs() and how far into it the
	// sub-mode selection has walked
	args    []string
	argsIdx int

	// the sub-modes valid for the next call to Parse(). the first entry is
	// the default
	subModes []string

	// the series of sub-modes encountered over subsequent calls to Parse()
	path []string
}

// ParseResult is returned from the Parse() function.
type ParseResult int

// List of valid ParseResult values.
const (
	// continue with command line processing. if sub-modes were specified
	// then the Mode() function says which one was selected
	ParseContinue ParseResult = iota

	// help was requested and has been printed
	ParseHelp

	// an error occurred and is returned as the second return value
	ParseError
)

// Mode returns the last mode encountered during parsing.
func (md *Modes) Mode() string {
	if len(md.path) == 0 {
		return ""
	}
	return md.path[len(md.path)-1]
}

// Path returns all the modes encountered during parsing.
func (md *Modes) Path() string {
	return strings.Join(md.path, "/")
}

// String implements the fmt.Stringer interface.
func (md *Modes) String() string {
	return md.Path()
}

// NewArgs initialises the Modes instance with a fresh argument list (from
// the command line, most usefully).
func (md *Modes) NewArgs(args []string) {
	md.args = args
	md.argsIdx = 0
	md.NewMode()
}

// NewMode indicates that further arguments should be considered part of a
// new mode, with new flags and sub-modes.
func (md *Modes) NewMode() {
	md.subModes = md.subModes[:0]
	md.flags = flag.NewFlagSet("", flag.ContinueOnError)
}

// AddSubModes adds to the list of sub-modes for the next call to Parse().
// The first sub-mode added is the default.
func (md *Modes) AddSubModes(submodes ...string) {
	for _, s := range submodes {
		md.subModes = append(md.subModes, strings.ToUpper(s))
	}
}

// AddBool flag for next call to Parse().
func (md *Modes) AddBool(name string, value bool, usage string) *bool {
	return md.flags.Bool(name, value, usage)
}

// AddInt64 flag for next call to Parse().
func (md *Modes) AddInt64(name string, value int64, usage string) *int64 {
	return md.flags.Int64(name, value, usage)
}

// AddString flag for next call to Parse().
func (md *Modes) AddString(name string, value string, usage string) *string {
	return md.flags.String(name, value, usage)
}

// RemainingArgs are the arguments left after a call to Parse(): those that
// are neither flags nor a listed sub-mode.
func (md *Modes) RemainingArgs() []string {
	return md.flags.Args()
}

// GetArg returns the numbered remaining argument.
func (md *Modes) GetArg(i int) string {
	return md.flags.Arg(i)
}

func (md *Modes) help() {
	if md.Output == nil {
		return
	}
	if md.Path() != "" {
		fmt.Fprintf(md.Output, "mode: %s\n", md.Path())
	}
	if len(md.subModes) > 0 {
		fmt.Fprintf(md.Output, "sub-modes: %s (default: %s)\n", strings.Join(md.subModes, ", "), md.subModes[0])
	}
	md.flags.SetOutput(md.Output)
	md.flags.PrintDefaults()
}

// Parse the next layer of the argument list. Help messages are printed to
// the Output field automatically; the ParseHelp return value only guides
// the caller's control flow.
func (md *Modes) Parse() (ParseResult, error) {
	md.flags.SetOutput(io.Discard)

	err := md.flags.Parse(md.args[md.argsIdx:])
	if err != nil {
		if err == flag.ErrHelp {
			md.help()
			return ParseHelp, nil
		}
		return ParseError, err
	}

	if len(md.subModes) > 0 {
		arg := strings.ToUpper(md.flags.Arg(0))

		// assume the default mode until the argument matches a listed
		// sub-mode
		mode := md.subModes[0]
		for i := range md.subModes {
			if md.subModes[i] == arg {
				mode = arg
				md.argsIdx++
				break // for loop
			}
		}

		md.path = append(md.path, mode)
	}

	return ParseContinue, nil
}

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

// Package scenario runs scripted register-access traces against a machine.
// A scenario is a YAML document standing in for the firmware the cluster
// would normally be driven by:
//
//	board: LM3S811
//	steps:
//	  - {write: 0x40030028, value: 100}
//	  - {write: 0x4003000c, value: 0x01}
//	  - {advance: 500}
//	  - {read: 0x4003001c, expect: 0x01}
//
// Steps execute in order. A read step with an expect field fails the
// scenario if the value read back differs; a read without one simply prints
// the value. Scenarios drive the run mode of the command line program and
// double as regression tests.
package scenario

import (
	"fmt"
	"io"

	"github.com/sandstorm-emu/sandstorm/curated"
	"github.com/sandstorm-emu/sandstorm/hardware"
	"github.com/sandstorm-emu/sandstorm/hardware/sysctl"
	"gopkg.in/yaml.v2"
)

// Error patterns returned by the package.
const (
	NotScenario   = "scenario: %v"
	UnknownBoard  = "scenario: unknown board %s"
	EmptyStep     = "scenario: step %d does nothing"
	FailedExpect  = "scenario: step %d: read %#08x gave %#08x, expected %#08x"
	FailedAccess  = "scenario: step %d: %v"
	FailedAdvance = "scenario: step %d: %v"
)

// Step is a single entry in a scenario. Exactly one of Write, Read, Advance
// or Reset should be present.
type Step struct {
	// register write: address and value
	Write *uint32 `yaml:"write,omitempty"`
	Value uint32  `yaml:"value,omitempty"`

	// register read: address and optional expected value
	Read   *uint32 `yaml:"read,omitempty"`
	Expect *uint32 `yaml:"expect,omitempty"`

	// move simulated time forward (microseconds)
	Advance int64 `yaml:"advance,omitempty"`

	// reset all peripherals
	Reset bool `yaml:"reset,omitempty"`
}

// Script is a parsed scenario.
type Script struct {
	Board string `yaml:"board"`
	Steps []Step `yaml:"steps"`
}

// Load parses a scenario.
func Load(input io.Reader) (*Script, error) {
	body, err := io.ReadAll(input)
	if err != nil {
		return nil, curated.Errorf(NotScenario, err)
	}

	scr := &Script{}
	if err := yaml.Unmarshal(body, scr); err != nil {
		return nil, curated.Errorf(NotScenario, err)
	}

	if scr.Board == "" {
		scr.Board = sysctl.LM3S811.Name
	}
	if _, ok := sysctl.Boards[scr.Board]; !ok {
		return nil, curated.Errorf(UnknownBoard, scr.Board)
	}

	return scr, nil
}

// NewMachine creates a machine for the scenario's board.
func (scr *Script) NewMachine() (*hardware.Machine, error) {
	return hardware.NewMachine(sysctl.Boards[scr.Board], nil)
}

// Run executes every step against the machine. Values read by steps without
// an expectation are written to output.
func (scr *Script) Run(m *hardware.Machine, output io.Writer) error {
	for i, step := range scr.Steps {
		switch {
		case step.Write != nil:
			if err := m.Write(*step.Write, step.Value); err != nil {
				return curated.Errorf(FailedAccess, i, err)
			}

		case step.Read != nil:
			v, err := m.Read(*step.Read)
			if err != nil {
				return curated.Errorf(FailedAccess, i, err)
			}
			if step.Expect != nil {
				if v != *step.Expect {
					return curated.Errorf(FailedExpect, i, *step.Read, v, *step.Expect)
				}
			} else if output != nil {
				fmt.Fprintf(output, "%#08x -> %#08x\n", *step.Read, v)
			}

		case step.Advance != 0:
			if err := m.Advance(step.Advance); err != nil {
				return curated.Errorf(FailedAdvance, i, err)
			}

		case step.Reset:
			m.Reset()

		default:
			return curated.Errorf(EmptyStep, i)
		}
	}

	return nil
}

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

// Package snapshot persists the state of a Machine and restores it later,
// possibly in a different process. The format is a one line header followed
// by a YAML document:
//
//	# sandstorm snapshot v2 crc=1d0f
//	board: LM3S811
//	now: 1500
//	...
//
// The header carries a format version and a CRC-16 of the document.
//
// The derived system clock scale is deliberately absent from the document.
// It is recomputed from the persisted RCC/RCC2 images after restore, so a
// snapshot taken before a clock reconfiguration can never smuggle in a stale
// scale. Version 1 documents predate the RCC2 field; loading one leaves RCC2
// zeroed, which disables it in the scale derivation.
package snapshot

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/sandstorm-emu/sandstorm/curated"
	"github.com/sandstorm-emu/sandstorm/hardware"
	"github.com/sandstorm-emu/sandstorm/hardware/adc"
	"github.com/sandstorm-emu/sandstorm/hardware/i2c"
	"github.com/sandstorm-emu/sandstorm/hardware/sysctl"
	"github.com/sandstorm-emu/sandstorm/hardware/timer"
	"github.com/sigurn/crc16"
	"gopkg.in/yaml.v2"
)

// Version of the snapshot format written by Save().
const Version = 2

const headerPrefix = "# sandstorm snapshot"

// Error patterns returned by the package.
const (
	NotSnapshot = "snapshot: not a snapshot file"
	BadVersion  = "snapshot: version %d not supported"
	BadChecksum = "snapshot: checksum mismatch (corrupt file?)"
	BadContent  = "snapshot: %s section missing"
	WrongBoard  = "snapshot: snapshot is for board %s, machine is %s"
)

// the CRC-16 variant is XMODEM, chosen for having zero as the initial value:
// the checksum of an empty document is zero.
var crcTable = crc16.MakeTable(crc16.CRC16_XMODEM)

// document is the YAML layout of a persisted machine.
type document struct {
	Board  string          `yaml:"board"`
	Now    int64           `yaml:"now"`
	Sys    *sysctl.State   `yaml:"sysctl"`
	Timers []*timer.State  `yaml:"timers"`
	I2C    *i2c.State      `yaml:"i2c"`
	ADC    *adc.State      `yaml:"adc"`
}

// Save writes a snapshot of the machine.
func Save(output io.Writer, m *hardware.Machine) error {
	doc := document{
		Board: m.Board.Name,
		Now:   m.Sched.Now(),
		Sys:   m.Sys.SaveState(),
		Timers: []*timer.State{
			m.Timer0.SaveState(),
			m.Timer1.SaveState(),
		},
		I2C: m.I2C.SaveState(),
		ADC: m.ADC.SaveState(),
	}

	body, err := yaml.Marshal(&doc)
	if err != nil {
		return curated.Errorf("snapshot: %v", err)
	}

	if _, err := fmt.Fprintf(output, "%s v%d crc=%04x\n", headerPrefix, Version, crc16.Checksum(body, crcTable)); err != nil {
		return curated.Errorf("snapshot: %v", err)
	}
	if _, err := output.Write(body); err != nil {
		return curated.Errorf("snapshot: %v", err)
	}

	return nil
}

// Load reads a snapshot and restores it into the machine. The machine must
// have been created for the same board the snapshot was saved from.
func Load(input io.Reader, m *hardware.Machine) error {
	r := bufio.NewReader(input)

	header, err := r.ReadString('\n')
	if err != nil {
		return curated.Errorf(NotSnapshot)
	}

	var version int
	var crc uint16
	if _, err := fmt.Sscanf(strings.TrimSpace(header), headerPrefix+" v%d crc=%x", &version, &crc); err != nil {
		return curated.Errorf(NotSnapshot)
	}
	if version < 1 || version > Version {
		return curated.Errorf(BadVersion, version)
	}

	body := &bytes.Buffer{}
	if _, err := io.Copy(body, r); err != nil {
		return curated.Errorf("snapshot: %v", err)
	}
	if crc16.Checksum(body.Bytes(), crcTable) != crc {
		return curated.Errorf(BadChecksum)
	}

	var doc document
	if err := yaml.Unmarshal(body.Bytes(), &doc); err != nil {
		return curated.Errorf("snapshot: %v", err)
	}

	if doc.Sys == nil {
		return curated.Errorf(BadContent, "sysctl")
	}
	if len(doc.Timers) != 2 || doc.Timers[0] == nil || doc.Timers[1] == nil {
		return curated.Errorf(BadContent, "timers")
	}
	if doc.I2C == nil {
		return curated.Errorf(BadContent, "i2c")
	}
	if doc.ADC == nil {
		return curated.Errorf(BadContent, "adc")
	}
	if doc.Board != m.Board.Name {
		return curated.Errorf(WrongBoard, doc.Board, m.Board.Name)
	}

	// simulated time first: alarm re-arming in the restore functions is
	// relative to the snapshot's idea of now
	m.Sched.Restart(doc.Now)

	// the system controller restores before the timers so that the clock
	// scale it re-derives is in place for anything that consults it
	m.Sys.RestoreState(doc.Sys)
	m.Timer0.RestoreState(doc.Timers[0])
	m.Timer1.RestoreState(doc.Timers[1])
	m.I2C.RestoreState(doc.I2C)
	m.ADC.RestoreState(doc.ADC)

	return nil
}

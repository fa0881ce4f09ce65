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

package i2c

import (
	"github.com/sandstorm-emu/sandstorm/hardware/mmio"
)

// State is the persistable field set of the I2C master controller.
type State struct {
	MSA  uint32 `yaml:"msa"`
	MCS  uint32 `yaml:"mcs"`
	MDR  uint32 `yaml:"mdr"`
	MTPR uint32 `yaml:"mtpr"`
	MIMR uint32 `yaml:"mimr"`
	MRIS uint32 `yaml:"mris"`
	MCR  uint32 `yaml:"mcr"`
}

// SaveState returns the persistable field set of the controller.
func (m *Master) SaveState() *State {
	return &State{
		MSA:  m.msa,
		MCS:  m.mcs,
		MDR:  m.mdr,
		MTPR: m.mtpr,
		MIMR: m.mimr,
		MRIS: m.mris,
		MCR:  m.mcr,
	}
}

// RestoreState replaces the controller's registers with a previously saved
// field set.
func (m *Master) RestoreState(st *State) {
	m.msa = st.MSA
	m.mcs = st.MCS
	m.mdr = st.MDR
	m.mtpr = st.MTPR
	m.mimr = st.MIMR
	m.mris = st.MRIS
	m.mcr = st.MCR
	m.updateIRQ()
}

// Snapshot creates a copy of the controller, suitable for later plumbing
// into the machine.
func (m *Master) Snapshot() *Master {
	n := *m
	return &n
}

// Plumb reattaches the bus and interrupt line after a snapshot has been
// copied back into the machine.
func (m *Master) Plumb(bus Bus, irq mmio.IRQ) {
	m.bus = bus
	m.irq = irq
	m.updateIRQ()
}

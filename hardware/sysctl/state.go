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

package sysctl

import (
	"github.com/sandstorm-emu/sandstorm/hardware/mmio"
)

// State is the persistable field set of the system controller. Note that the
// derived clock scale is absent: it is recomputed from RCC/RCC2 on restore.
// A version 1 snapshot predates the RCC2 field; the zero value it restores to
// means "RCC2 disabled" and the scale derivation falls back to RCC, which is
// the correct pre-Fury behaviour.
type State struct {
	PBORCTL   uint32    `yaml:"pborctl"`
	LDOPCTL   uint32    `yaml:"ldopctl"`
	IntStatus uint32    `yaml:"int-status"`
	IntMask   uint32    `yaml:"int-mask"`
	RESC      uint32    `yaml:"resc"`
	RCC       uint32    `yaml:"rcc"`
	RCC2      uint32    `yaml:"rcc2"`
	RCGC      [3]uint32 `yaml:"rcgc,flow"`
	SCGC      [3]uint32 `yaml:"scgc,flow"`
	DCGC      [3]uint32 `yaml:"dcgc,flow"`
	CLKVCLR   uint32    `yaml:"clkvclr"`
	LDOARST   uint32    `yaml:"ldoarst"`
}

// SaveState returns the persistable field set of the system controller.
func (sc *SysCtl) SaveState() *State {
	return &State{
		PBORCTL:   sc.pborctl,
		LDOPCTL:   sc.ldopctl,
		IntStatus: sc.intStatus,
		IntMask:   sc.intMask,
		RESC:      sc.resc,
		RCC:       sc.rcc,
		RCC2:      sc.rcc2,
		RCGC:      sc.rcgc,
		SCGC:      sc.scgc,
		DCGC:      sc.dcgc,
		CLKVCLR:   sc.clkvclr,
		LDOARST:   sc.ldoarst,
	}
}

// RestoreState replaces the system controller's registers with a previously
// saved field set. The clock scale is re-derived and the interrupt line is
// re-evaluated.
func (sc *SysCtl) RestoreState(st *State) {
	sc.pborctl = st.PBORCTL
	sc.ldopctl = st.LDOPCTL
	sc.intStatus = st.IntStatus
	sc.intMask = st.IntMask
	sc.resc = st.RESC
	sc.rcc = st.RCC
	sc.rcc2 = st.RCC2
	sc.rcgc = st.RCGC
	sc.scgc = st.SCGC
	sc.dcgc = st.DCGC
	sc.clkvclr = st.CLKVCLR
	sc.ldoarst = st.LDOARST

	sc.calculateSystemClock()
	sc.updateIRQ()
}

// Snapshot creates a copy of the system controller, suitable for later
// plumbing into the machine.
func (sc *SysCtl) Snapshot() *SysCtl {
	n := *sc
	return &n
}

// Plumb reattaches the interrupt line after a snapshot has been copied back
// into the machine. The clock scale is re-derived rather than trusted from
// the snapshot.
func (sc *SysCtl) Plumb(irq mmio.IRQ) {
	sc.irq = irq
	sc.calculateSystemClock()
	sc.updateIRQ()
}

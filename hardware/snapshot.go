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

package hardware

import (
	"github.com/sandstorm-emu/sandstorm/hardware/adc"
	"github.com/sandstorm-emu/sandstorm/hardware/i2c"
	"github.com/sandstorm-emu/sandstorm/hardware/mmio"
	"github.com/sandstorm-emu/sandstorm/hardware/sysctl"
	"github.com/sandstorm-emu/sandstorm/hardware/timer"
)

// State stores a copy of every peripheral in the Machine, along with the
// simulated time at the moment of the copy. It is produced by the Snapshot()
// function and can be restored with the Plumb() function.
type State struct {
	Now    int64
	Sys    *sysctl.SysCtl
	Timer0 *timer.GPTM
	Timer1 *timer.GPTM
	I2C    *i2c.Master
	ADC    *adc.ADC
}

// Snapshot creates a copy of a previously snapshotted State.
func (s *State) Snapshot() *State {
	return &State{
		Now:    s.Now,
		Sys:    s.Sys.Snapshot(),
		Timer0: s.Timer0.Snapshot(),
		Timer1: s.Timer1.Snapshot(),
		I2C:    s.I2C.Snapshot(),
		ADC:    s.ADC.Snapshot(),
	}
}

// Snapshot the state of the Machine's peripherals.
func (m *Machine) Snapshot() *State {
	return &State{
		Now:    m.Sched.Now(),
		Sys:    m.Sys.Snapshot(),
		Timer0: m.Timer0.Snapshot(),
		Timer1: m.Timer1.Snapshot(),
		I2C:    m.I2C.Snapshot(),
		ADC:    m.ADC.Snapshot(),
	}
}

// Plumb a previously snapshotted state back into the Machine. The bus
// argument replaces the I2C bus collaborator; a nil bus leaves the
// controller disconnected.
//
// Simulated time rewinds to the moment of the snapshot and pending alarms
// are rebuilt from the peripheral states, so a deadline that was armed when
// the snapshot was taken fires at the same simulated time it always would
// have.
func (m *Machine) Plumb(state *State, bus i2c.Bus) {
	if state == nil {
		panic("machine: cannot plumb in a nil state")
	}

	// take another snapshot of the state before plumbing. we don't want the
	// machine to change what is stored in the caller's copy
	m.Sys = state.Sys.Snapshot()
	m.Timer0 = state.Timer0.Snapshot()
	m.Timer1 = state.Timer1.Snapshot()
	m.I2C = state.I2C.Snapshot()
	m.ADC = state.ADC.Snapshot()

	m.Sched.Restart(state.Now)

	if bus == nil {
		bus = i2c.Disconnected{}
	}

	var adcIRQ [adc.NumSequencers]mmio.IRQ
	for n := range m.ADCIRQ {
		adcIRQ[n] = &m.ADCIRQ[n]
	}

	m.Sys.Plumb(&m.SysIRQ)
	m.ADC.Plumb(adcIRQ)
	m.Timer0.Plumb(m.Sys, m.Sched, &m.Timer0IRQ, m.ADC)
	m.Timer1.Plumb(m.Sys, m.Sched, &m.Timer1IRQ, nil)
	m.I2C.Plumb(bus, &m.I2CIRQ)
}

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
	"github.com/sandstorm-emu/sandstorm/curated"
	"github.com/sandstorm-emu/sandstorm/hardware/adc"
	"github.com/sandstorm-emu/sandstorm/hardware/i2c"
	"github.com/sandstorm-emu/sandstorm/hardware/mmio"
	"github.com/sandstorm-emu/sandstorm/hardware/sched"
	"github.com/sandstorm-emu/sandstorm/hardware/sysctl"
	"github.com/sandstorm-emu/sandstorm/hardware/timer"
)

// Peripheral base addresses. Every block decodes 4KB.
const (
	BaseI2C    = 0x40020000
	BaseTimer0 = 0x40030000
	BaseTimer1 = 0x40031000
	BaseADC    = 0x40038000
	BaseSysCtl = 0x400fe000

	blockMask = 0xfffff000
)

// Error patterns returned by the Machine type.
const (
	BadAddress = "machine: no peripheral at address %#08x"
)

// Machine is the peripheral cluster of a Stellaris-class part.
type Machine struct {
	Board sysctl.Board

	Sched  *sched.Scheduler
	Sys    *sysctl.SysCtl
	Timer0 *timer.GPTM
	Timer1 *timer.GPTM
	I2C    *i2c.Master
	ADC    *adc.ADC

	// interrupt lines, observable by the host. a host with real interrupt
	// delivery can read the levels out of these after every Access() and
	// Advance() call
	SysIRQ    mmio.Line
	Timer0IRQ mmio.Line
	Timer1IRQ mmio.Line
	I2CIRQ    mmio.Line
	ADCIRQ    [adc.NumSequencers]mmio.Line
}

// NewMachine is the preferred method of initialisation for the Machine type.
// The bus argument is the external I2C bus; a nil bus leaves the controller
// with no devices to talk to.
func NewMachine(board sysctl.Board, bus i2c.Bus) (*Machine, error) {
	m := &Machine{
		Board: board,
		Sched: sched.New(),
	}

	var err error
	m.Sys, err = sysctl.NewSysCtl(board, &m.SysIRQ)
	if err != nil {
		return nil, curated.Errorf("machine: %v", err)
	}

	var adcIRQ [adc.NumSequencers]mmio.IRQ
	for n := range m.ADCIRQ {
		adcIRQ[n] = &m.ADCIRQ[n]
	}
	m.ADC = adc.NewADC(adcIRQ)

	// timer 0 carries the alternate trigger output into the ADC. timer 1
	// has nothing on its trigger line
	m.Timer0 = timer.NewGPTM("TIMER0", m.Sys, m.Sched, &m.Timer0IRQ, m.ADC)
	m.Timer1 = timer.NewGPTM("TIMER1", m.Sys, m.Sched, &m.Timer1IRQ, nil)

	if bus == nil {
		bus = i2c.Disconnected{}
	}
	m.I2C = i2c.NewMaster(bus, &m.I2CIRQ)

	return m, nil
}

// peripheral returns the block decoding the address, or nil.
func (m *Machine) peripheral(address uint32) mmio.Peripheral {
	switch address & blockMask {
	case BaseI2C:
		return m.I2C
	case BaseTimer0:
		return m.Timer0
	case BaseTimer1:
		return m.Timer1
	case BaseADC:
		return m.ADC
	case BaseSysCtl:
		return m.Sys
	}
	return nil
}

// Read dispatches a 32-bit read of a full bus address.
func (m *Machine) Read(address uint32) (uint32, error) {
	p := m.peripheral(address)
	if p == nil {
		return 0, curated.Errorf(BadAddress, address)
	}
	return p.Read(address &^ blockMask)
}

// Write dispatches a 32-bit write to a full bus address.
func (m *Machine) Write(address uint32, value uint32) error {
	p := m.peripheral(address)
	if p == nil {
		return curated.Errorf(BadAddress, address)
	}
	return p.Write(address&^blockMask, value)
}

// Access dispatches a register access to the peripheral decoding the
// address. For writes the returned value is zero.
func (m *Machine) Access(address uint32, write bool, value uint32) (uint32, error) {
	if write {
		return 0, m.Write(address, value)
	}
	return m.Read(address)
}

// Advance moves simulated time forward by d microseconds, delivering any
// timer ticks that fall due.
func (m *Machine) Advance(d int64) error {
	return m.Sched.Advance(d)
}

// Reset all peripherals. Simulated time is not disturbed.
func (m *Machine) Reset() {
	m.Sys.Reset()
	m.Timer0.Reset()
	m.Timer1.Reset()
	m.I2C.Reset()
	m.ADC.Reset()
}

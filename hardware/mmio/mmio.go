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

// Package mmio defines the interfaces between the peripheral models and
// whatever is hosting them. Peripherals never reach outside of these
// interfaces: the host delivers register accesses through the Peripheral
// interface and the peripherals talk back through interrupt lines, trigger
// lines and the alarm scheduler.
//
// All delivery is serial. A peripheral is never entered concurrently and so
// no peripheral takes a lock.
package mmio

// PerSecond is the number of simulated time units in one second. Simulated
// time is measured in microseconds throughout the project.
const PerSecond = 1000000

// Peripheral is any register block that can be the target of a memory-mapped
// access. Offsets are in bytes from the base of the block and accesses are
// always 32-bit.
//
// An error from Read() or Write() is fatal: it means the emulated firmware
// has exercised behaviour that is not modeled (a bad offset or an
// unimplemented register value) and the emulation cannot safely continue.
type Peripheral interface {
	Read(offset uint32) (uint32, error)
	Write(offset uint32, value uint32) error
	Reset()
	Label() string
}

// IRQ is a single interrupt line into the host. Peripherals re-evaluate and
// Set() their line after every state mutation; the host can rely on the
// write-then-notify ordering.
type IRQ interface {
	Set(level bool)
}

// Trigger is a single-shot pulse line. The GPTM pulses its trigger output
// when a countdown deadline passes with the trigger-output control bit set;
// the ADC consumes the pulse.
type Trigger interface {
	Pulse()
}

// Scheduler hands out alarms that fire a callback at an absolute simulated
// time. The callback is invoked synchronously by the host's dispatch loop,
// never concurrently with a register access.
type Scheduler interface {
	// Now returns the current simulated time
	Now() int64

	// NewAlarm creates an unarmed alarm. an error returned by the callback
	// is fatal and is surfaced by the host's dispatch loop
	NewAlarm(fn func() error) Alarm
}

// Alarm is a pending wake-up. Modify() arms or re-arms the alarm for a new
// absolute time, implicitly cancelling the previous deadline. Stop() disarms
// without firing.
type Alarm interface {
	Modify(at int64)
	Stop()
}

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

package i2c_test

import (
	"testing"

	"github.com/sandstorm-emu/sandstorm/hardware/i2c"
	"github.com/sandstorm-emu/sandstorm/hardware/mmio"
	"github.com/sandstorm-emu/sandstorm/test"
)

// recording bus double. arbLost makes every start request fail.
type testBus struct {
	held    bool
	addr    uint8
	read    bool
	sent    []uint8
	recv    []uint8
	ends    int
	arbLost bool
}

func (b *testBus) StartTransfer(address uint8, read bool) bool {
	if b.arbLost {
		return true
	}
	b.held = true
	b.addr = address
	b.read = read
	return false
}

func (b *testBus) Send(data uint8) {
	b.sent = append(b.sent, data)
}

func (b *testBus) Recv() uint8 {
	if len(b.recv) == 0 {
		return 0xff
	}
	v := b.recv[0]
	b.recv = b.recv[1:]
	return v
}

func (b *testBus) EndTransfer() {
	b.held = false
	b.ends++
}

func (b *testBus) Busy() bool {
	return b.held
}

func newMaster() (*i2c.Master, *testBus, *mmio.Line) {
	bus := &testBus{}
	irq := &mmio.Line{}
	return i2c.NewMaster(bus, irq), bus, irq
}

func peek(t *testing.T, m *i2c.Master, offset uint32) uint32 {
	t.Helper()
	v, err := m.Read(offset)
	test.ExpectedSuccess(t, err)
	return v
}

func TestMasterDisabled(t *testing.T) {
	m, bus, _ := newMaster()

	// commands are ignored until the master interface is enabled
	test.ExpectedSuccess(t, m.Write(0x04, 0x7))
	test.Equate(t, bus.held, false)
	test.Equate(t, len(bus.sent), 0)
	test.Equate(t, peek(t, m, 0x04), 0x20) // idle only
}

func TestWriteTransfer(t *testing.T) {
	m, bus, _ := newMaster()

	test.ExpectedSuccess(t, m.Write(0x20, 0x10)) // enable master
	test.ExpectedSuccess(t, m.Write(0x00, 0x42)) // address 0x21, write
	test.ExpectedSuccess(t, m.Write(0x08, 0x5a))

	// start+run sends a single byte and holds the bus
	test.ExpectedSuccess(t, m.Write(0x04, 0x3))
	test.Equate(t, bus.addr, 0x21)
	test.Equate(t, bus.read, false)
	test.Equate(t, len(bus.sent), 1)
	test.Equate(t, bus.sent[0], 0x5a)
	test.Equate(t, peek(t, m, 0x04), 0x60) // bus busy, idle

	// run again without a new start: second byte on the held bus
	test.ExpectedSuccess(t, m.Write(0x08, 0xa5))
	test.ExpectedSuccess(t, m.Write(0x04, 0x1))
	test.Equate(t, len(bus.sent), 2)
	test.Equate(t, bus.sent[1], 0xa5)

	// stop releases the bus
	test.ExpectedSuccess(t, m.Write(0x04, 0x4))
	test.Equate(t, bus.held, false)
	test.Equate(t, bus.ends, 1)
	test.Equate(t, peek(t, m, 0x04), 0x20)
}

func TestReadTransfer(t *testing.T) {
	m, bus, _ := newMaster()
	bus.recv = []uint8{0xde, 0xad}

	test.ExpectedSuccess(t, m.Write(0x20, 0x10))
	test.ExpectedSuccess(t, m.Write(0x00, 0x43)) // address 0x21, read

	// start+run+stop: single byte transaction
	test.ExpectedSuccess(t, m.Write(0x04, 0x7))
	test.Equate(t, bus.read, true)
	test.Equate(t, peek(t, m, 0x08), 0xde)
	test.Equate(t, bus.held, false)
}

func TestRunWithoutBus(t *testing.T) {
	m, _, _ := newMaster()

	test.ExpectedSuccess(t, m.Write(0x20, 0x10))

	// run without start: the bus was never acquired
	test.ExpectedSuccess(t, m.Write(0x04, 0x1))
	test.Equate(t, peek(t, m, 0x04)&0x02, 0x02)
}

func TestArbitrationLost(t *testing.T) {
	m, bus, _ := newMaster()
	bus.arbLost = true

	test.ExpectedSuccess(t, m.Write(0x20, 0x10))
	test.ExpectedSuccess(t, m.Write(0x04, 0x3))

	v := peek(t, m, 0x04)
	test.Equate(t, v&0x10, 0x10) // arbitration lost
	test.Equate(t, v&0x02, 0x02) // error
	test.Equate(t, len(bus.sent), 0)
}

func TestInterrupt(t *testing.T) {
	m, _, irq := newMaster()

	// the written value is immaterial; the only interrupt source is enabled
	test.ExpectedSuccess(t, m.Write(0x10, 0xff))
	test.Equate(t, peek(t, m, 0x10), 0x1)

	test.ExpectedSuccess(t, m.Write(0x20, 0x10))
	test.ExpectedSuccess(t, m.Write(0x04, 0x3))
	test.Equate(t, peek(t, m, 0x14), 0x1)
	test.Equate(t, peek(t, m, 0x18), 0x1)
	test.Equate(t, irq.Level, true)

	test.ExpectedSuccess(t, m.Write(0x1c, 0x1))
	test.Equate(t, peek(t, m, 0x14), 0)
	test.Equate(t, irq.Level, false)
}

func TestResetReleasesBus(t *testing.T) {
	m, bus, _ := newMaster()

	test.ExpectedSuccess(t, m.Write(0x20, 0x10))
	test.ExpectedSuccess(t, m.Write(0x04, 0x3))
	test.Equate(t, bus.held, true)

	m.Reset()
	test.Equate(t, bus.held, false)
	test.Equate(t, peek(t, m, 0x0c), 0x1) // prescale resets to minimum divisor
	test.Equate(t, peek(t, m, 0x20), 0)
}

func TestUnimplementedModes(t *testing.T) {
	m, _, _ := newMaster()

	err := m.Write(0x20, 0x11)
	test.ExpectedError(t, err, i2c.Loopback)
	err = m.Write(0x20, 0x30)
	test.ExpectedError(t, err, i2c.SlaveMode)
}

func TestDisconnectedBus(t *testing.T) {
	irq := &mmio.Line{}
	m := i2c.NewMaster(i2c.Disconnected{}, irq)

	// with nothing on the bus every start loses arbitration
	test.ExpectedSuccess(t, m.Write(0x20, 0x10))
	test.ExpectedSuccess(t, m.Write(0x04, 0x3))
	test.Equate(t, peek(t, m, 0x04)&0x12, 0x12)
}

func TestUnmappedOffsets(t *testing.T) {
	m, _, _ := newMaster()

	_, err := m.Read(0x24)
	test.ExpectedError(t, err, i2c.BadReadOffset)
	err = m.Write(0x24, 0)
	test.ExpectedError(t, err, i2c.BadWriteOffset)
}

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

// Package i2c emulates the Stellaris I2C master controller.
//
// Transfer timing is not modeled: a byte transfer completes within the
// register write that requested it and the controller never reports busy to
// the firmware. The bus itself is an external collaborator; the controller
// only sequences start/send/recv/stop against it and folds the outcome into
// its status bits.
//
// Only the master interface is implemented. Requesting loopback or slave
// mode is a fatal configuration error.
package i2c

import (
	"github.com/sandstorm-emu/sandstorm/curated"
	"github.com/sandstorm-emu/sandstorm/hardware/mmio"
	"github.com/sandstorm-emu/sandstorm/logger"
)

// Bus is the external I2C bus collaborator.
type Bus interface {
	// StartTransfer requests bus ownership for a transaction with the
	// addressed device. It returns true if arbitration was lost
	StartTransfer(address uint8, read bool) bool

	// Send one byte to the addressed device
	Send(data uint8)

	// Recv one byte from the addressed device
	Recv() uint8

	// EndTransfer releases the bus
	EndTransfer()

	// Busy returns true while the bus is held by any master
	Busy() bool
}

// Error patterns returned by the Master type.
const (
	BadReadOffset  = "i2c: read: unmapped offset %#03x"
	BadWriteOffset = "i2c: write: unmapped offset %#03x"
	Loopback       = "i2c: loopback mode not implemented"
	SlaveMode      = "i2c: slave mode not implemented"
)

// register offsets into the I2C master block.
const (
	regMSA  = 0x00
	regMCS  = 0x04
	regMDR  = 0x08
	regMTPR = 0x0c
	regMIMR = 0x10
	regMRIS = 0x14
	regMMIS = 0x18
	regMICR = 0x1c
	regMCR  = 0x20
)

// control/status register bits. on read they are status; on write the low
// three bits command the state machine.
const (
	mcsBusy    = 0x01
	mcsError   = 0x02
	mcsAdrAck  = 0x04
	mcsDataAck = 0x08
	mcsArbLst  = 0x10
	mcsIdle    = 0x20
	mcsBusBsy  = 0x40

	mcsCmdRun   = 0x01
	mcsCmdStart = 0x02
	mcsCmdStop  = 0x04
)

// master configuration register bits.
const (
	mcrLoopback  = 0x01
	mcrMasterEn  = 0x10
	mcrSlaveEn   = 0x20
	mcrWriteMask = 0x31
)

// Master is the I2C master controller peripheral.
type Master struct {
	bus Bus
	irq mmio.IRQ

	msa  uint32
	mcs  uint32
	mdr  uint32
	mtpr uint32
	mimr uint32
	mris uint32
	mcr  uint32
}

// NewMaster is the preferred method of initialisation for the Master type.
func NewMaster(bus Bus, irq mmio.IRQ) *Master {
	m := &Master{
		bus: bus,
		irq: irq,
	}
	m.Reset()
	return m
}

// Label implements the mmio.Peripheral interface.
func (m *Master) Label() string {
	return "I2C"
}

func (m *Master) updateIRQ() {
	m.irq.Set(m.mris&m.mimr != 0)
}

// Reset implements the mmio.Peripheral interface. A transfer in progress is
// force-terminated on the bus. The clock prescale register resets to the
// minimum valid divisor rather than zero.
func (m *Master) Reset() {
	if m.mcs&mcsBusBsy != 0 {
		m.bus.EndTransfer()
	}

	m.msa = 0
	m.mcs = 0
	m.mdr = 0
	m.mtpr = 1
	m.mimr = 0
	m.mris = 0
	m.mcr = 0
	m.updateIRQ()
}

// Read implements the mmio.Peripheral interface.
func (m *Master) Read(offset uint32) (uint32, error) {
	switch offset {
	case regMSA:
		return m.msa, nil
	case regMCS:
		// we don't emulate timing, so the controller is never busy
		return m.mcs | mcsIdle, nil
	case regMDR:
		return m.mdr, nil
	case regMTPR:
		return m.mtpr, nil
	case regMIMR:
		return m.mimr, nil
	case regMRIS:
		return m.mris, nil
	case regMMIS:
		return m.mris & m.mimr, nil
	case regMCR:
		return m.mcr, nil
	}
	return 0, curated.Errorf(BadReadOffset, offset)
}

// Write implements the mmio.Peripheral interface.
func (m *Master) Write(offset uint32, value uint32) error {
	switch offset {
	case regMSA:
		m.msa = value & 0xff

	case regMCS:
		if m.mcr&mcrMasterEn == 0 {
			// master disabled. do nothing
			break
		}

		// grab the bus if this is starting a transfer
		if value&mcsCmdStart != 0 && m.mcs&mcsBusBsy == 0 {
			if m.bus.StartTransfer(uint8(m.msa>>1), m.msa&1 != 0) {
				m.mcs |= mcsArbLst
			} else {
				m.mcs &= ^uint32(mcsArbLst)
				m.mcs |= mcsBusBsy
			}
		}

		// if we don't have the bus then indicate an error
		if !m.bus.Busy() || m.mcs&mcsBusBsy == 0 {
			m.mcs |= mcsError
			break
		}
		m.mcs &= ^uint32(mcsError)

		if value&mcsCmdRun != 0 {
			// transfer a byte
			// TODO: address/data ack failures from the bus collaborator
			if m.msa&1 != 0 {
				m.mdr = uint32(m.bus.Recv())
			} else {
				m.bus.Send(uint8(m.mdr))
			}
			// raise an interrupt
			m.mris |= 1
		}

		if value&mcsCmdStop != 0 {
			m.bus.EndTransfer()
			m.mcs &= ^uint32(mcsBusBsy)
		}

	case regMDR:
		m.mdr = value & 0xff

	case regMTPR:
		m.mtpr = value & 0xff

	case regMIMR:
		// the written value is discarded and the only interrupt the
		// controller can raise is enabled
		if value != 1 {
			logger.Logf("i2c", "MIMR write %#02x treated as 1", value)
		}
		m.mimr = 1

	case regMICR:
		m.mris &= ^value

	case regMCR:
		if value&mcrLoopback != 0 {
			return curated.Errorf(Loopback)
		}
		if value&mcrSlaveEn != 0 {
			return curated.Errorf(SlaveMode)
		}
		m.mcr = value & mcrWriteMask

	default:
		return curated.Errorf(BadWriteOffset, offset)
	}

	m.updateIRQ()
	return nil
}

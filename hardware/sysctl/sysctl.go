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

// Package sysctl emulates the Stellaris system controller. Only the subset
// needed by the rest of the cluster has real behaviour: the RCC and RCC2
// clock control registers and the system clock scale derived from them. The
// remaining registers in the block are retained as raw images so that
// firmware can read back what it wrote.
//
// The derived clock scale is a pure function of RCC/RCC2. It is recomputed on
// every write to either register, on reset and after state restore. It is
// never persisted.
package sysctl

import (
	"github.com/sandstorm-emu/sandstorm/curated"
	"github.com/sandstorm-emu/sandstorm/hardware/mmio"
	"github.com/sandstorm-emu/sandstorm/logger"
)

// Error patterns returned by the SysCtl type.
const (
	BadReadOffset  = "sysctl: read: unmapped offset %#03x"
	BadWriteOffset = "sysctl: write: unmapped offset %#03x"
	UnknownClass   = "sysctl: unknown board class in DID0 %#08x"
)

// register offsets into the system controller block.
const (
	regDID0    = 0x000
	regDID1    = 0x004
	regDC0     = 0x008
	regDC1     = 0x010
	regDC2     = 0x014
	regDC3     = 0x018
	regDC4     = 0x01c
	regPBORCTL = 0x030
	regLDOPCTL = 0x034
	regRIS     = 0x050
	regIMC     = 0x054
	regMISC    = 0x058
	regRESC    = 0x05c
	regRCC     = 0x060
	regRCC2    = 0x070
	regRCGC0   = 0x100
	regRCGC1   = 0x104
	regRCGC2   = 0x108
	regSCGC0   = 0x110
	regSCGC1   = 0x114
	regSCGC2   = 0x118
	regDCGC0   = 0x120
	regDCGC1   = 0x124
	regDCGC2   = 0x128
	regCLKVCLR = 0x150
	regLDOARST = 0x160
)

// DID0 version and class fields. The class decides the reset value of RCC2:
// Sandstorm parts predate the register.
const (
	did0VerMask        = 0x70000000
	did0Ver0           = 0x00000000
	did0Ver1           = 0x10000000
	did0ClassMask      = 0x00ff0000
	ClassSandstorm     = 0x00000000
	ClassFury          = 0x00010000
	rcc2ResetFury      = 0x07802810
	rccReset           = 0x078e3ac0
	pborctlReset       = 0x7ffd
	intStatusPLLLocked = 1 << 6
	rccPWRDN           = 1 << 13
)

// SysCtl is the system controller peripheral.
type SysCtl struct {
	board Board
	irq   mmio.IRQ

	pborctl   uint32
	ldopctl   uint32
	intStatus uint32
	intMask   uint32
	resc      uint32
	rcc       uint32
	rcc2      uint32
	rcgc      [3]uint32
	scgc      [3]uint32
	dcgc      [3]uint32
	clkvclr   uint32
	ldoarst   uint32

	// derived from rcc/rcc2. never persisted, always recomputed
	scale int64
}

// NewSysCtl is the preferred method of initialisation for the SysCtl type.
// The board decides register reset values; an unrecognised board class is an
// error.
func NewSysCtl(board Board, irq mmio.IRQ) (*SysCtl, error) {
	sc := &SysCtl{
		board: board,
		irq:   irq,
	}
	if _, err := sc.class(); err != nil {
		return nil, err
	}
	sc.Reset()
	return sc, nil
}

// Label implements the mmio.Peripheral interface.
func (sc *SysCtl) Label() string {
	return "SYSCTL"
}

func (sc *SysCtl) class() (uint32, error) {
	switch sc.board.DID0 & did0VerMask {
	case did0Ver0:
		return ClassSandstorm, nil
	case did0Ver1:
		switch sc.board.DID0 & did0ClassMask {
		case ClassSandstorm, ClassFury:
			return sc.board.DID0 & did0ClassMask, nil
		}
	}
	return 0, curated.Errorf(UnknownClass, sc.board.DID0)
}

// Scale returns the derived system clock scale: the simulated duration, in
// microseconds, of one unit of a timer load register. Timer engines share
// the SysCtl instance and call this at (re)load time.
func (sc *SysCtl) Scale() int64 {
	return sc.scale
}

func (sc *SysCtl) useRCC2() bool {
	return sc.rcc2>>31 == 1
}

// derive the system clock scale from the raw register images. called on
// every RCC/RCC2 write, on reset and on state restore.
func (sc *SysCtl) calculateSystemClock() {
	if sc.useRCC2() {
		sc.scale = 5 * int64((sc.rcc2>>23)&0x3f+1)
	} else {
		sc.scale = 5 * int64((sc.rcc>>23)&0xf+1)
	}
}

func (sc *SysCtl) updateIRQ() {
	sc.irq.Set(sc.intStatus&sc.intMask != 0)
}

// Reset implements the mmio.Peripheral interface.
func (sc *SysCtl) Reset() {
	sc.pborctl = pborctlReset
	sc.rcc = rccReset

	// class is validated in NewSysCtl; it cannot fail here
	class, _ := sc.class()
	if class == ClassSandstorm {
		sc.rcc2 = 0
	} else {
		sc.rcc2 = rcc2ResetFury
	}

	sc.rcgc[0] = 1
	sc.scgc[0] = 1
	sc.dcgc[0] = 1
	sc.calculateSystemClock()
}

// Read implements the mmio.Peripheral interface.
func (sc *SysCtl) Read(offset uint32) (uint32, error) {
	switch offset {
	case regDID0:
		return sc.board.DID0, nil
	case regDID1:
		return sc.board.DID1, nil
	case regDC0:
		return sc.board.DC0, nil
	case regDC1:
		return sc.board.DC1, nil
	case regDC2:
		return sc.board.DC2, nil
	case regDC3:
		return sc.board.DC3, nil
	case regDC4:
		return sc.board.DC4, nil
	case regPBORCTL:
		return sc.pborctl, nil
	case regLDOPCTL:
		return sc.ldopctl, nil
	case regRIS:
		return sc.intStatus, nil
	case regIMC:
		return sc.intMask, nil
	case regMISC:
		return sc.intStatus & sc.intMask, nil
	case regRESC:
		return sc.resc, nil
	case regRCC:
		return sc.rcc, nil
	case regRCC2:
		return sc.rcc2, nil
	case regRCGC0, regRCGC1, regRCGC2:
		return sc.rcgc[(offset-regRCGC0)>>2], nil
	case regSCGC0, regSCGC1, regSCGC2:
		return sc.scgc[(offset-regSCGC0)>>2], nil
	case regDCGC0, regDCGC1, regDCGC2:
		return sc.dcgc[(offset-regDCGC0)>>2], nil
	case regCLKVCLR:
		return sc.clkvclr, nil
	case regLDOARST:
		return sc.ldoarst, nil
	}
	return 0, curated.Errorf(BadReadOffset, offset)
}

// Write implements the mmio.Peripheral interface.
func (sc *SysCtl) Write(offset uint32, value uint32) error {
	switch offset {
	case regPBORCTL:
		sc.pborctl = value & 0xffff
	case regLDOPCTL:
		sc.ldopctl = value
	case regIMC:
		sc.intMask = value
	case regMISC:
		sc.intStatus &= ^value
	case regRESC:
		sc.resc = value
	case regRCC:
		// clearing the PLL power-down bit locks the PLL immediately; no
		// lock time is modeled
		if sc.rcc&rccPWRDN != 0 && value&rccPWRDN == 0 {
			sc.intStatus |= intStatusPLLLocked
		}
		sc.rcc = value
		sc.calculateSystemClock()
		logger.Logf("sysctl", "rcc=%#08x scale=%d", sc.rcc, sc.scale)
	case regRCC2:
		if sc.rcc2&rccPWRDN != 0 && value&rccPWRDN == 0 {
			sc.intStatus |= intStatusPLLLocked
		}
		sc.rcc2 = value
		sc.calculateSystemClock()
		logger.Logf("sysctl", "rcc2=%#08x scale=%d", sc.rcc2, sc.scale)
	case regRCGC0, regRCGC1, regRCGC2:
		sc.rcgc[(offset-regRCGC0)>>2] = value
	case regSCGC0, regSCGC1, regSCGC2:
		sc.scgc[(offset-regSCGC0)>>2] = value
	case regDCGC0, regDCGC1, regDCGC2:
		sc.dcgc[(offset-regDCGC0)>>2] = value
	case regCLKVCLR:
		sc.clkvclr = value
	case regLDOARST:
		sc.ldoarst = value
	default:
		return curated.Errorf(BadWriteOffset, offset)
	}
	sc.updateIRQ()
	return nil
}

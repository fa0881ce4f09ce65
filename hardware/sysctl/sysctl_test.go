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

package sysctl_test

import (
	"testing"

	"github.com/sandstorm-emu/sandstorm/hardware/mmio"
	"github.com/sandstorm-emu/sandstorm/hardware/sysctl"
	"github.com/sandstorm-emu/sandstorm/test"
)

func newSysCtl(t *testing.T, board sysctl.Board) (*sysctl.SysCtl, *mmio.Line) {
	t.Helper()
	irq := &mmio.Line{}
	sc, err := sysctl.NewSysCtl(board, irq)
	test.ExpectedSuccess(t, err)
	return sc, irq
}

func peek(t *testing.T, sc *sysctl.SysCtl, offset uint32) uint32 {
	t.Helper()
	v, err := sc.Read(offset)
	test.ExpectedSuccess(t, err)
	return v
}

func TestResetValues(t *testing.T) {
	sc, _ := newSysCtl(t, sysctl.LM3S811)

	test.Equate(t, peek(t, sc, 0x030), 0x7ffd)
	test.Equate(t, peek(t, sc, 0x060), 0x078e3ac0)
	test.Equate(t, peek(t, sc, 0x100), 1)

	// a Sandstorm class part has no RCC2
	test.Equate(t, peek(t, sc, 0x070), 0)

	// a Fury class part resets RCC2 to its documented value
	sc, _ = newSysCtl(t, sysctl.LM3S6965)
	test.Equate(t, peek(t, sc, 0x070), 0x07802810)
}

func TestBoardIdentity(t *testing.T) {
	sc, _ := newSysCtl(t, sysctl.LM3S811)

	test.Equate(t, peek(t, sc, 0x000), sysctl.LM3S811.DID0)
	test.Equate(t, peek(t, sc, 0x004), sysctl.LM3S811.DID1)
	test.Equate(t, peek(t, sc, 0x008), sysctl.LM3S811.DC0)
}

func TestUnknownClass(t *testing.T) {
	irq := &mmio.Line{}
	_, err := sysctl.NewSysCtl(sysctl.Board{DID0: 0x10050000}, irq)
	test.ExpectedError(t, err, sysctl.UnknownClass)
}

func TestScale(t *testing.T) {
	sc, _ := newSysCtl(t, sysctl.LM3S811)

	// reset SYSDIV is 15: 16 x 5us per count
	test.Equate(t, sc.Scale(), int64(80))

	// RCC with SYSDIV 3
	test.ExpectedSuccess(t, sc.Write(0x060, 3<<23))
	test.Equate(t, sc.Scale(), int64(20))

	// RCC2 overrides RCC only when its enable bit is set
	test.ExpectedSuccess(t, sc.Write(0x070, 7<<23))
	test.Equate(t, sc.Scale(), int64(20))
	test.ExpectedSuccess(t, sc.Write(0x070, 1<<31|7<<23))
	test.Equate(t, sc.Scale(), int64(40))

	// RCC2 has the wider SYSDIV field
	test.ExpectedSuccess(t, sc.Write(0x070, 1<<31|35<<23))
	test.Equate(t, sc.Scale(), int64(180))
}

func TestPLLLock(t *testing.T) {
	sc, irq := newSysCtl(t, sysctl.LM3S811)

	// the PLL powers up locked the instant PWRDN falls
	test.Equate(t, peek(t, sc, 0x050), 0)
	v := peek(t, sc, 0x060)
	test.ExpectedSuccess(t, sc.Write(0x060, v&^uint32(1<<13)))
	test.Equate(t, peek(t, sc, 0x050), 0x40)
	test.Equate(t, irq.Level, false)

	test.ExpectedSuccess(t, sc.Write(0x054, 0x40))
	test.Equate(t, irq.Level, true)
	test.Equate(t, peek(t, sc, 0x058), 0x40)

	// acknowledging through MISC clears the status bit
	test.ExpectedSuccess(t, sc.Write(0x058, 0x40))
	test.Equate(t, peek(t, sc, 0x050), 0)
	test.Equate(t, irq.Level, false)
}

func TestStateRoundTrip(t *testing.T) {
	sc, _ := newSysCtl(t, sysctl.LM3S811)

	test.ExpectedSuccess(t, sc.Write(0x060, 3<<23))
	test.ExpectedSuccess(t, sc.Write(0x104, 0xaa))
	st := sc.SaveState()

	sc.Reset()
	test.Equate(t, sc.Scale(), int64(80))

	// the scale is not part of the saved state; the restore rederives it
	sc.RestoreState(st)
	test.Equate(t, sc.Scale(), int64(20))
	test.Equate(t, peek(t, sc, 0x104), 0xaa)
}

func TestUnmappedOffsets(t *testing.T) {
	sc, _ := newSysCtl(t, sysctl.LM3S811)

	_, err := sc.Read(0x200)
	test.ExpectedError(t, err, sysctl.BadReadOffset)

	// the identity registers are read only
	err = sc.Write(0x000, 0)
	test.ExpectedError(t, err, sysctl.BadWriteOffset)
}

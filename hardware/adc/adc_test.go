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

package adc_test

import (
	"testing"

	"github.com/sandstorm-emu/sandstorm/hardware/adc"
	"github.com/sandstorm-emu/sandstorm/hardware/mmio"
	"github.com/sandstorm-emu/sandstorm/test"
)

func newADC() (*adc.ADC, *[adc.NumSequencers]mmio.Line) {
	lines := &[adc.NumSequencers]mmio.Line{}
	var irq [adc.NumSequencers]mmio.IRQ
	for n := range lines {
		irq[n] = &lines[n]
	}
	return adc.NewADC(irq), lines
}

// arm sequencer zero for timer triggered single-step sampling.
func armSeq0(t *testing.T, a *adc.ADC) {
	t.Helper()
	test.ExpectedSuccess(t, a.Write(0x44, 6))           // SSCTL0, single step
	test.ExpectedSuccess(t, a.Write(0x14, adc.EMTimer)) // EMUX
	test.ExpectedSuccess(t, a.Write(0x00, 0x1))         // ACTSS
}

func peek(t *testing.T, a *adc.ADC, offset uint32) uint32 {
	t.Helper()
	v, err := a.Read(offset)
	test.ExpectedSuccess(t, err)
	return v
}

func TestTimerTriggeredSample(t *testing.T) {
	a, lines := newADC()
	armSeq0(t, a)
	test.ExpectedSuccess(t, a.Write(0x08, 0x1)) // IM

	test.Equate(t, peek(t, a, 0x4c), 0x100) // FIFO empty

	a.Pulse()
	test.Equate(t, peek(t, a, 0x04), 0x1)
	test.Equate(t, lines[0].Level, true)

	// the synthesised samples centre on half scale with noise in the low bits
	test.Equate(t, peek(t, a, 0x48), 0x200)
	a.Pulse()
	test.Equate(t, peek(t, a, 0x48), 0x204)

	// acknowledge drops the line
	test.ExpectedSuccess(t, a.Write(0x0c, 0x1))
	test.Equate(t, peek(t, a, 0x04), 0)
	test.Equate(t, lines[0].Level, false)
}

func TestTriggerGating(t *testing.T) {
	a, lines := newADC()

	// inactive sequencer: no sample
	test.ExpectedSuccess(t, a.Write(0x44, 6))
	test.ExpectedSuccess(t, a.Write(0x14, adc.EMTimer))
	a.Pulse()
	test.Equate(t, peek(t, a, 0x04), 0)

	// active but triggered by something other than the timer: no sample
	test.ExpectedSuccess(t, a.Write(0x00, 0x1))
	test.ExpectedSuccess(t, a.Write(0x14, adc.EMExternal))
	a.Pulse()
	test.Equate(t, peek(t, a, 0x04), 0)
	test.Equate(t, lines[0].Level, false)

	test.ExpectedSuccess(t, a.Write(0x14, adc.EMTimer))
	a.Pulse()
	test.Equate(t, peek(t, a, 0x04), 0x1)
}

func TestFIFOOverflow(t *testing.T) {
	a, _ := newADC()
	armSeq0(t, a)

	for i := 0; i < 16; i++ {
		a.Pulse()
	}
	test.Equate(t, peek(t, a, 0x4c)&0x1000, 0x1000) // full
	test.Equate(t, peek(t, a, 0x10), 0)

	// the seventeenth sample is dropped
	a.Pulse()
	test.Equate(t, peek(t, a, 0x10), 0x1)

	// the sixteen retained samples drain normally, oldest first
	test.Equate(t, peek(t, a, 0x48), 0x200)
	for i := 0; i < 15; i++ {
		peek(t, a, 0x48)
	}
	test.Equate(t, peek(t, a, 0x4c)&0x100, 0x100)

	// the overflow flag is sticky until cleared
	test.ExpectedSuccess(t, a.Write(0x10, 0x1))
	test.Equate(t, peek(t, a, 0x10), 0)
}

func TestFIFOUnderflow(t *testing.T) {
	a, _ := newADC()
	armSeq0(t, a)

	// an empty pop flags underflow; a fresh FIFO reads back zero
	test.Equate(t, peek(t, a, 0x48), 0)
	test.Equate(t, peek(t, a, 0x18), 0x1)
	test.ExpectedSuccess(t, a.Write(0x18, 0x1))

	// fill and drain a full lap so the tail wraps, then pop once more: the
	// stale tail slot still holds the oldest sample
	for i := 0; i < 16; i++ {
		a.Pulse()
	}
	first := peek(t, a, 0x48)
	for i := 0; i < 15; i++ {
		peek(t, a, 0x48)
	}
	test.Equate(t, peek(t, a, 0x18), 0)
	test.Equate(t, peek(t, a, 0x48), first)
	test.Equate(t, peek(t, a, 0x18), 0x1)
}

func TestSequenceRestrictions(t *testing.T) {
	a, _ := newADC()

	// only single-step sequences are accepted
	err := a.Write(0x44, 0x42)
	test.ExpectedError(t, err, adc.BadSequence)

	// software initiated sampling is not implemented
	err = a.Write(0x28, 0x1)
	test.ExpectedError(t, err, adc.SampleInitiate)

	// input selection is stored but restricted to valid channel numbers
	test.ExpectedSuccess(t, a.Write(0x40, 0xffffffff))
	test.Equate(t, peek(t, a, 0x40), 0x33333333)
}

func TestUnmappedOffsets(t *testing.T) {
	a, _ := newADC()

	_, err := a.Read(0x34)
	test.ExpectedError(t, err, adc.BadReadOffset)
	err = a.Write(0x50, 0)
	test.ExpectedError(t, err, adc.BadWriteOffset)
}

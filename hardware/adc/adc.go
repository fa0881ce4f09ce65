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

// Package adc emulates the Stellaris analogue to digital converter. The
// model is partial: enough for firmware that uses a combined ADC and timer
// tick. Only single-sample, single-step sequences are accepted and the
// sample values are synthesised, there being no analog inputs to convert.
//
// The converter has four sequencers, each with a sixteen entry FIFO. Head
// and tail indices and the empty/full flags are packed into a status word,
// readable through the SSFSTAT registers. The FIFO contract follows the
// silicon: a push to a full FIFO sets the sequencer's overflow bit and
// drops the sample; a pop from an empty FIFO sets the underflow bit and
// returns whatever the tail slot currently holds.
package adc

import (
	"github.com/sandstorm-emu/sandstorm/curated"
	"github.com/sandstorm-emu/sandstorm/hardware/mmio"
)

// Error patterns returned by the ADC type.
const (
	BadReadOffset  = "adc: read: unmapped offset %#03x"
	BadWriteOffset = "adc: write: unmapped offset %#03x"
	BadSequence    = "adc: unimplemented sequence %#08x"
	SampleInitiate = "adc: software sample initiate not implemented"
)

// trigger sources selectable through the EMUX register, one nibble per
// sequencer. only the timer source has any effect in this model.
const (
	EMController = 0
	EMComparator = 1
	EMExternal   = 4
	EMTimer      = 5
	EMPWM0       = 6
	EMPWM1       = 7
	EMPWM2       = 8
)

// NumSequencers is the number of independent sample sequencers.
const NumSequencers = 4

// fifo status word layout: tail in bits 0-3, head in bits 4-7.
const (
	fifoEmpty = 0x0100
	fifoFull  = 0x1000
)

// the only sequence control pattern the model accepts: a single step with
// its end-of-sequence and interrupt-enable bits set.
const ssctlSingleStep = 6

// register offsets into the ADC block. the per-sequencer registers occupy
// 0x40-0xbf in four groups of 0x20.
const (
	regACTSS = 0x00
	regRIS   = 0x04
	regIM    = 0x08
	regISC   = 0x0c
	regOSTAT = 0x10
	regEMUX  = 0x14
	regUSTAT = 0x18
	regSSPRI = 0x20
	regPSSI  = 0x28
	regSAC   = 0x30

	regSeqBase   = 0x40
	regSeqTop    = 0xc0
	regSSMUX     = 0x00
	regSSCTL     = 0x04
	regSSFIFO    = 0x08
	regSSFSTAT   = 0x0c
	regSeqStride = 0x20
)

type fifo struct {
	state uint32
	data  [16]uint32
}

// ADC is the analogue to digital converter peripheral.
type ADC struct {
	irq [NumSequencers]mmio.IRQ

	actss uint32
	ris   uint32
	im    uint32
	emux  uint32
	ostat uint32
	ustat uint32
	sspri uint32
	sac   uint32

	fifo  [NumSequencers]fifo
	ssmux [NumSequencers]uint32
	ssctl [NumSequencers]uint32

	// linear congruential noise source for synthesised samples. some
	// firmware uses the ADC as a random number source so successive samples
	// must vary
	noise uint32
}

// NewADC is the preferred method of initialisation for the ADC type. Each
// sequencer has its own interrupt line.
func NewADC(irq [NumSequencers]mmio.IRQ) *ADC {
	a := &ADC{irq: irq}
	a.Reset()
	return a
}

// Label implements the mmio.Peripheral interface.
func (a *ADC) Label() string {
	return "ADC"
}

func (a *ADC) updateIRQ() {
	for n := 0; n < NumSequencers; n++ {
		a.irq[n].Set(a.ris&a.im&(1<<n) != 0)
	}
}

// Reset implements the mmio.Peripheral interface.
func (a *ADC) Reset() {
	a.actss = 0
	a.ris = 0
	a.im = 0
	a.emux = 0
	a.ostat = 0
	a.ustat = 0
	a.sspri = 0
	a.sac = 0
	a.noise = 0
	for n := 0; n < NumSequencers; n++ {
		a.ssmux[n] = 0
		a.ssctl[n] = 0
		a.fifo[n] = fifo{state: fifoEmpty}
	}
	a.updateIRQ()
}

// fifoPop removes and returns the value at the tail of sequencer n's FIFO.
// Popping an empty FIFO sets the sequencer's underflow bit and returns the
// stale value at the tail, exactly as the silicon would.
func (a *ADC) fifoPop(n int) uint32 {
	tail := a.fifo[n].state & 0xf
	if a.fifo[n].state&fifoEmpty != 0 {
		a.ustat |= 1 << n
	} else {
		a.fifo[n].state = (a.fifo[n].state &^ 0xf) | ((tail + 1) & 0xf)
		a.fifo[n].state &= ^uint32(fifoFull)
		if (tail+1)&0xf == (a.fifo[n].state>>4)&0xf {
			a.fifo[n].state |= fifoEmpty
		}
	}
	return a.fifo[n].data[tail]
}

// fifoPush appends a value at the head of sequencer n's FIFO. Pushing to a
// full FIFO sets the sequencer's overflow bit and drops the value.
func (a *ADC) fifoPush(n int, value uint32) {
	head := (a.fifo[n].state >> 4) & 0xf
	if a.fifo[n].state&fifoFull != 0 {
		a.ostat |= 1 << n
		return
	}
	a.fifo[n].data[head] = value
	head = (head + 1) & 0xf
	a.fifo[n].state &= ^uint32(fifoEmpty)
	a.fifo[n].state = (a.fifo[n].state &^ 0xf0) | (head << 4)
	if a.fifo[n].state&0xf == head {
		a.fifo[n].state |= fifoFull
	}
}

// Pulse implements the mmio.Trigger interface. It is the ADC's input for the
// GPTM's alternate trigger output: every active sequencer whose trigger
// source selects the timer produces one sample.
func (a *ADC) Pulse() {
	for n := 0; n < NumSequencers; n++ {
		if a.actss&(1<<n) == 0 {
			continue
		}

		if (a.emux>>(n*4))&0xf != EMTimer {
			continue
		}

		// actual inputs are not implemented. synthesise a value with some
		// variation in it
		a.noise = a.noise*314159 + 1
		a.fifoPush(n, 0x200+(a.noise>>16)&7)
		a.ris |= 1 << n
		a.updateIRQ()
	}
}

// Read implements the mmio.Peripheral interface.
func (a *ADC) Read(offset uint32) (uint32, error) {
	if offset >= regSeqBase && offset < regSeqTop {
		n := int((offset - regSeqBase) >> 5)
		switch offset & 0x1f {
		case regSSMUX:
			return a.ssmux[n], nil
		case regSSCTL:
			return a.ssctl[n], nil
		case regSSFIFO:
			return a.fifoPop(n), nil
		case regSSFSTAT:
			return a.fifo[n].state, nil
		}
		return 0, curated.Errorf(BadReadOffset, offset)
	}

	switch offset {
	case regACTSS:
		return a.actss, nil
	case regRIS:
		return a.ris, nil
	case regIM:
		return a.im, nil
	case regISC:
		return a.ris & a.im, nil
	case regOSTAT:
		return a.ostat, nil
	case regEMUX:
		return a.emux, nil
	case regUSTAT:
		return a.ustat, nil
	case regSSPRI:
		return a.sspri, nil
	case regSAC:
		return a.sac, nil
	}
	return 0, curated.Errorf(BadReadOffset, offset)
}

// Write implements the mmio.Peripheral interface.
func (a *ADC) Write(offset uint32, value uint32) error {
	if offset >= regSeqBase && offset < regSeqTop {
		n := int((offset - regSeqBase) >> 5)
		switch offset & 0x1f {
		case regSSMUX:
			a.ssmux[n] = value & 0x33333333
			return nil
		case regSSCTL:
			if value != ssctlSingleStep {
				// multi-step sequences are out of scope
				return curated.Errorf(BadSequence, value)
			}
			a.ssctl[n] = value
			return nil
		}
		return curated.Errorf(BadWriteOffset, offset)
	}

	switch offset {
	case regACTSS:
		a.actss = value & 0xf
	case regIM:
		a.im = value
	case regISC:
		a.ris &= ^value
	case regOSTAT:
		a.ostat &= ^value
	case regEMUX:
		a.emux = value
	case regUSTAT:
		a.ustat &= ^value
	case regSSPRI:
		a.sspri = value
	case regPSSI:
		return curated.Errorf(SampleInitiate)
	case regSAC:
		a.sac = value
	default:
		return curated.Errorf(BadWriteOffset, offset)
	}

	a.updateIRQ()
	return nil
}

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

// Package timer emulates the Stellaris general purpose timer module (GPTM).
//
// A GPTM block is two 16-bit timer channels that can be joined into a single
// 32-bit timer. Three of the block's operating modes are modeled:
//
//   - 32-bit countdown (one-shot or periodic)
//   - 32-bit RTC, ticking at one simulated second regardless of clock scale
//   - 16-bit PWM, which is recognised but produces no waveform
//
// Any other 16-bit mode is a fatal configuration error.
//
// The timers should be disabled before the firmware changes the
// configuration. The model takes advantage of this and defers all deadline
// computation until the moment a channel's enable bit rises: the deadline is
// derived from the load registers and the system clock scale at that moment
// and never recomputed lazily.
//
// The block has an alternate output used to trigger the ADC.
package timer

import (
	"github.com/sandstorm-emu/sandstorm/curated"
	"github.com/sandstorm-emu/sandstorm/hardware/mmio"
	"github.com/sandstorm-emu/sandstorm/logger"
)

// Clock is the shared clock configuration consulted at (re)load time. The
// system controller implements it.
type Clock interface {
	// Scale returns the simulated duration of one count unit, in
	// microseconds
	Scale() int64
}

// Error patterns returned by the GPTM type.
const (
	BadReadOffset  = "gptm: %s: read: unmapped offset %#03x"
	BadWriteOffset = "gptm: %s: write: unmapped offset %#03x"
	BadMode        = "gptm: %s: 16-bit timer mode %#02x not implemented"
	ValueRead      = "gptm: %s: free-running timer value read not implemented"
)

// register offsets into the GPTM block.
const (
	regCFG      = 0x00
	regTAMR     = 0x04
	regTBMR     = 0x08
	regCTL      = 0x0c
	regIMR      = 0x18
	regRIS      = 0x1c
	regMIS      = 0x20
	regICR      = 0x24
	regTAILR    = 0x28
	regTBILR    = 0x2c
	regTAMATCHR = 0x30
	regTBMATCHR = 0x34
	regTAPR     = 0x38
	regTBPR     = 0x3c
	regTAPMR    = 0x40
	regTBPMR    = 0x44
	regTAR      = 0x48
	regTBR      = 0x4c
)

// control register bits.
const (
	ctlTAEN  = 0x001
	ctlTAOTE = 0x020
	ctlTBEN  = 0x100
)

// interrupt bits. the mask register is restricted to the three live bits on
// each channel.
const (
	intTimeoutA = 0x01
	intRTCMatch = 0x08
	intLiveBits = 0x77
)

// config register values. values of four and above split the block into two
// independent 16-bit channels.
const (
	cfg32Countdown = 0
	cfg32RTC       = 1
	cfgSplit       = 4
)

// mode register values and bits.
const (
	modeOneShot = 0x1
	modePWM     = 0xa
)

// GPTM is a single general purpose timer block.
type GPTM struct {
	label string

	clk     Clock
	sch     mmio.Scheduler
	irq     mmio.IRQ
	trigger mmio.Trigger

	// the silicon decodes a TBPMR write into the timer A match prescale
	// slot. set FixTBPMR to decode to the timer B slot instead. see the
	// DESIGN notes before changing this
	FixTBPMR bool

	config        uint32
	mode          [2]uint32
	control       uint32
	state         uint32
	mask          uint32
	load          [2]uint32
	match         [2]uint32
	prescale      [2]uint32
	matchPrescale [2]uint32
	rtc           uint32

	// absolute simulated time of each channel's next tick. meaningful only
	// while the channel is enabled
	deadline [2]int64

	alarm [2]mmio.Alarm
}

// NewGPTM is the preferred method of initialisation for the GPTM type. The
// label distinguishes blocks in errors and logs. The trigger argument may be
// nil if the pulse output is not wired to anything.
func NewGPTM(label string, clk Clock, sch mmio.Scheduler, irq mmio.IRQ, trigger mmio.Trigger) *GPTM {
	g := &GPTM{
		label:   label,
		clk:     clk,
		sch:     sch,
		irq:     irq,
		trigger: trigger,
	}
	g.alarm[0] = sch.NewAlarm(func() error { return g.tick(0) })
	g.alarm[1] = sch.NewAlarm(func() error { return g.tick(1) })
	return g
}

// Label implements the mmio.Peripheral interface.
func (g *GPTM) Label() string {
	return g.label
}

func (g *GPTM) updateIRQ() {
	g.irq.Set(g.state&g.mask != 0)
}

func (g *GPTM) stop(n int) {
	g.alarm[n].Stop()
}

// reload computes the channel's next deadline and arms its alarm. With
// restart false the new deadline extends the previous one, keeping a
// periodic timer free of drift; with restart true it is computed from the
// current simulated time.
func (g *GPTM) reload(n int, restart bool) error {
	var at int64
	if restart {
		at = g.sch.Now()
	} else {
		at = g.deadline[n]
	}

	switch {
	case g.config == cfg32Countdown:
		count := int64(g.load[0] | g.load[1]<<16)
		at += count * g.clk.Scale()
	case g.config == cfg32RTC:
		// the RTC ticks at 1Hz whatever the clock scale
		at += mmio.PerSecond
	case g.mode[n] == modePWM:
		// PWM mode. no waveform is produced so there is nothing to
		// schedule; the alarm is armed for the unchanged deadline and the
		// tick is a no-op
	default:
		return curated.Errorf(BadMode, g.label, g.mode[n])
	}

	g.deadline[n] = at
	g.alarm[n].Modify(at)
	return nil
}

// tick is the alarm callback for channel n. It mutates state exactly as if
// the hardware's internal counter had reached zero.
func (g *GPTM) tick(n int) error {
	switch {
	case g.config == cfg32Countdown:
		g.state |= intTimeoutA
		if g.control&ctlTAOTE != 0 {
			// alternate output pulse, consumed by the ADC
			if g.trigger != nil {
				g.trigger.Pulse()
			}
		}
		if g.mode[0]&modeOneShot != 0 {
			g.control &= ^uint32(ctlTAEN)
		} else {
			if err := g.reload(0, false); err != nil {
				return err
			}
		}

	case g.config == cfg32RTC:
		g.rtc++
		match := g.match[0] | g.match[1]<<16
		if g.rtc > match {
			g.rtc = 0
		}
		if g.rtc == 0 {
			g.state |= intRTCMatch
		}
		if err := g.reload(0, false); err != nil {
			return err
		}

	case g.mode[n] == modePWM:
		// PWM mode. not implemented

	default:
		return curated.Errorf(BadMode, g.label, g.mode[n])
	}

	g.updateIRQ()
	return nil
}

// Reset implements the mmio.Peripheral interface.
func (g *GPTM) Reset() {
	g.stop(0)
	g.stop(1)
	g.config = 0
	g.mode[0] = 0
	g.mode[1] = 0
	g.control = 0
	g.state = 0
	g.mask = 0
	g.load = [2]uint32{}
	g.match = [2]uint32{}
	g.prescale = [2]uint32{}
	g.matchPrescale = [2]uint32{}
	g.rtc = 0
	g.deadline = [2]int64{}
	g.updateIRQ()
}

// Read implements the mmio.Peripheral interface.
func (g *GPTM) Read(offset uint32) (uint32, error) {
	switch offset {
	case regCFG:
		return g.config, nil
	case regTAMR:
		return g.mode[0], nil
	case regTBMR:
		return g.mode[1], nil
	case regCTL:
		return g.control, nil
	case regIMR:
		return g.mask, nil
	case regRIS:
		return g.state, nil
	case regMIS:
		return g.state & g.mask, nil
	case regICR:
		return 0, nil
	case regTAILR:
		if g.config < cfgSplit {
			return g.load[0] | g.load[1]<<16, nil
		}
		return g.load[0], nil
	case regTBILR:
		return g.load[1], nil
	case regTAMATCHR:
		if g.config < cfgSplit {
			return g.match[0] | g.match[1]<<16, nil
		}
		return g.match[0], nil
	case regTBMATCHR:
		return g.match[1], nil
	case regTAPR:
		return g.prescale[0], nil
	case regTBPR:
		return g.prescale[1], nil
	case regTAPMR:
		return g.matchPrescale[0], nil
	case regTBPMR:
		return g.matchPrescale[1], nil
	case regTAR:
		if g.config == cfg32RTC {
			return g.rtc, nil
		}
		return 0, curated.Errorf(ValueRead, g.label)
	case regTBR:
		return 0, curated.Errorf(ValueRead, g.label)
	}
	return 0, curated.Errorf(BadReadOffset, g.label, offset)
}

// Write implements the mmio.Peripheral interface.
func (g *GPTM) Write(offset uint32, value uint32) error {
	switch offset {
	case regCFG:
		g.config = value

	case regTAMR:
		g.mode[0] = value

	case regTBMR:
		g.mode[1] = value

	case regCTL:
		oldval := g.control
		g.control = value
		// TODO: stall bit (pause while the CPU is halted)
		if (oldval^value)&ctlTAEN != 0 {
			if value&ctlTAEN != 0 {
				if err := g.reload(0, true); err != nil {
					return err
				}
			} else {
				g.stop(0)
			}
		}
		if (oldval^value)&ctlTBEN != 0 && g.config >= cfgSplit {
			if value&ctlTBEN != 0 {
				if err := g.reload(1, true); err != nil {
					return err
				}
			} else {
				g.stop(1)
			}
		}

	case regIMR:
		g.mask = value & intLiveBits

	case regICR:
		g.state &= ^value

	case regTAILR:
		g.load[0] = value & 0xffff
		if g.config < cfgSplit {
			g.load[1] = value >> 16
		}

	case regTBILR:
		g.load[1] = value & 0xffff

	case regTAMATCHR:
		g.match[0] = value & 0xffff
		if g.config < cfgSplit {
			g.match[1] = value >> 16
		}

	case regTBMATCHR:
		g.match[1] = value >> 16

	case regTAPR:
		g.prescale[0] = value

	case regTBPR:
		g.prescale[1] = value

	case regTAPMR:
		g.matchPrescale[0] = value

	case regTBPMR:
		// the silicon decodes this into the timer A slot
		if g.FixTBPMR {
			g.matchPrescale[1] = value
		} else {
			g.matchPrescale[0] = value
			logger.Logf("gptm", "%s: TBPMR write decoded to timer A slot", g.label)
		}

	default:
		return curated.Errorf(BadWriteOffset, g.label, offset)
	}

	g.updateIRQ()
	return nil
}

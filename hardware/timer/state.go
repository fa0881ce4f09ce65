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

package timer

import (
	"github.com/sandstorm-emu/sandstorm/hardware/mmio"
)

// State is the persistable field set of a GPTM block. Deadlines are
// absolute simulated times; they only make sense alongside the simulated
// time they were saved at, which the snapshot container records.
type State struct {
	Config        uint32    `yaml:"config"`
	Mode          [2]uint32 `yaml:"mode,flow"`
	Control       uint32    `yaml:"control"`
	IntStatus     uint32    `yaml:"int-status"`
	IntMask       uint32    `yaml:"int-mask"`
	Load          [2]uint32 `yaml:"load,flow"`
	Match         [2]uint32 `yaml:"match,flow"`
	Prescale      [2]uint32 `yaml:"prescale,flow"`
	MatchPrescale [2]uint32 `yaml:"match-prescale,flow"`
	RTC           uint32    `yaml:"rtc"`
	Deadline      [2]int64  `yaml:"deadline,flow"`
}

// SaveState returns the persistable field set of the GPTM block.
func (g *GPTM) SaveState() *State {
	return &State{
		Config:        g.config,
		Mode:          g.mode,
		Control:       g.control,
		IntStatus:     g.state,
		IntMask:       g.mask,
		Load:          g.load,
		Match:         g.match,
		Prescale:      g.prescale,
		MatchPrescale: g.matchPrescale,
		RTC:           g.rtc,
		Deadline:      g.deadline,
	}
}

// RestoreState replaces the block's registers with a previously saved field
// set, re-arming each enabled channel's alarm at its persisted deadline.
func (g *GPTM) RestoreState(st *State) {
	g.config = st.Config
	g.mode = st.Mode
	g.control = st.Control
	g.state = st.IntStatus
	g.mask = st.IntMask
	g.load = st.Load
	g.match = st.Match
	g.prescale = st.Prescale
	g.matchPrescale = st.MatchPrescale
	g.rtc = st.RTC
	g.deadline = st.Deadline

	g.rearm()
	g.updateIRQ()
}

// rearm brings the alarms in line with the enable bits and stored deadlines.
func (g *GPTM) rearm() {
	if g.control&ctlTAEN != 0 {
		g.alarm[0].Modify(g.deadline[0])
	} else {
		g.alarm[0].Stop()
	}
	if g.control&ctlTBEN != 0 && g.config >= cfgSplit {
		g.alarm[1].Modify(g.deadline[1])
	} else {
		g.alarm[1].Stop()
	}
}

// Snapshot creates a copy of the GPTM block, suitable for later plumbing
// into the machine. The copy shares nothing with the original; in particular
// it holds no alarms until it is plumbed.
func (g *GPTM) Snapshot() *GPTM {
	n := *g
	n.alarm = [2]mmio.Alarm{}
	return &n
}

// Plumb reattaches the block's collaborators after a snapshot has been
// copied back into the machine, recreating the channel alarms and re-arming
// them according to the enable bits.
func (g *GPTM) Plumb(clk Clock, sch mmio.Scheduler, irq mmio.IRQ, trigger mmio.Trigger) {
	g.clk = clk
	g.sch = sch
	g.irq = irq
	g.trigger = trigger
	g.alarm[0] = sch.NewAlarm(func() error { return g.tick(0) })
	g.alarm[1] = sch.NewAlarm(func() error { return g.tick(1) })
	g.rearm()
	g.updateIRQ()
}

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

package adc

import (
	"github.com/sandstorm-emu/sandstorm/hardware/mmio"
)

// SequencerState is the persistable field set of one sample sequencer.
type SequencerState struct {
	FIFOState uint32     `yaml:"fifo-state"`
	FIFOData  [16]uint32 `yaml:"fifo-data,flow"`
	SSMUX     uint32     `yaml:"ssmux"`
	SSCTL     uint32     `yaml:"ssctl"`
}

// State is the persistable field set of the ADC.
type State struct {
	ACTSS      uint32                         `yaml:"actss"`
	RIS        uint32                         `yaml:"ris"`
	IM         uint32                         `yaml:"im"`
	EMUX       uint32                         `yaml:"emux"`
	OSTAT      uint32                         `yaml:"ostat"`
	USTAT      uint32                         `yaml:"ustat"`
	SSPRI      uint32                         `yaml:"sspri"`
	SAC        uint32                         `yaml:"sac"`
	Noise      uint32                         `yaml:"noise"`
	Sequencers [NumSequencers]*SequencerState `yaml:"sequencers"`
}

// SaveState returns the persistable field set of the ADC.
func (a *ADC) SaveState() *State {
	st := &State{
		ACTSS: a.actss,
		RIS:   a.ris,
		IM:    a.im,
		EMUX:  a.emux,
		OSTAT: a.ostat,
		USTAT: a.ustat,
		SSPRI: a.sspri,
		SAC:   a.sac,
		Noise: a.noise,
	}
	for n := 0; n < NumSequencers; n++ {
		st.Sequencers[n] = &SequencerState{
			FIFOState: a.fifo[n].state,
			FIFOData:  a.fifo[n].data,
			SSMUX:     a.ssmux[n],
			SSCTL:     a.ssctl[n],
		}
	}
	return st
}

// RestoreState replaces the ADC's registers with a previously saved field
// set.
func (a *ADC) RestoreState(st *State) {
	a.actss = st.ACTSS
	a.ris = st.RIS
	a.im = st.IM
	a.emux = st.EMUX
	a.ostat = st.OSTAT
	a.ustat = st.USTAT
	a.sspri = st.SSPRI
	a.sac = st.SAC
	a.noise = st.Noise
	for n := 0; n < NumSequencers; n++ {
		if st.Sequencers[n] == nil {
			a.fifo[n] = fifo{state: fifoEmpty}
			a.ssmux[n] = 0
			a.ssctl[n] = 0
			continue
		}
		a.fifo[n].state = st.Sequencers[n].FIFOState
		a.fifo[n].data = st.Sequencers[n].FIFOData
		a.ssmux[n] = st.Sequencers[n].SSMUX
		a.ssctl[n] = st.Sequencers[n].SSCTL
	}
	a.updateIRQ()
}

// Snapshot creates a copy of the ADC, suitable for later plumbing into the
// machine.
func (a *ADC) Snapshot() *ADC {
	n := *a
	return &n
}

// Plumb reattaches the interrupt lines after a snapshot has been copied back
// into the machine.
func (a *ADC) Plumb(irq [NumSequencers]mmio.IRQ) {
	a.irq = irq
	a.updateIRQ()
}

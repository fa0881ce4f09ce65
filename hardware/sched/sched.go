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

// Package sched implements the alarm scheduler consumed by the peripherals
// through the mmio.Scheduler interface. Pending alarms are kept in a single
// linked list sorted by wake time. Alarms with equal wake times fire in the
// order they were armed.
//
// The scheduler is entirely passive: simulated time only moves when the host
// calls AdvanceTo() or Advance(), at which point every due alarm fires
// synchronously and in order. An alarm callback may re-arm its own alarm (a
// periodic timer does exactly that) and the new deadline is honoured within
// the same advance if it still falls inside the window.
package sched

import (
	"github.com/sandstorm-emu/sandstorm/hardware/mmio"
)

// Scheduler is the concrete implementation of the mmio.Scheduler interface.
type Scheduler struct {
	now     int64
	pending *alarm
}

type alarm struct {
	sch   *Scheduler
	at    int64
	fn    func() error
	armed bool
	next  *alarm
}

// New is the preferred method of initialisation for the Scheduler type.
// Simulated time begins at zero.
func New() *Scheduler {
	return &Scheduler{}
}

// Now returns the current simulated time. Implements the mmio.Scheduler
// interface.
func (s *Scheduler) Now() int64 {
	return s.now
}

// NewAlarm creates an unarmed alarm that will call fn when it fires.
// Implements the mmio.Scheduler interface.
func (s *Scheduler) NewAlarm(fn func() error) mmio.Alarm {
	return &alarm{sch: s, fn: fn}
}

// Pending returns the number of armed alarms.
func (s *Scheduler) Pending() int {
	n := 0
	for a := s.pending; a != nil; a = a.next {
		n++
	}
	return n
}

// Restart abandons all pending alarms and moves simulated time to now. Used
// when plumbing in a restored machine state, before the peripherals re-arm
// their alarms.
func (s *Scheduler) Restart(now int64) {
	for a := s.pending; a != nil; a = a.next {
		a.armed = false
	}
	s.pending = nil
	s.now = now
}

// AdvanceTo moves simulated time forward to t, firing every due alarm in
// order. Time is set to each alarm's wake time for the duration of its
// callback, so a callback re-arming its alarm computes the next deadline
// relative to the moment the hardware would have acted.
//
// An error from a callback stops the advance immediately and is returned to
// the caller. Callback errors are fatal configuration errors (see mmio).
func (s *Scheduler) AdvanceTo(t int64) error {
	if t < s.now {
		t = s.now
	}

	for s.pending != nil && s.pending.at <= t {
		a := s.pending
		s.pending = a.next
		a.armed = false
		a.next = nil

		s.now = a.at
		if err := a.fn(); err != nil {
			return err
		}
	}

	s.now = t
	return nil
}

// Advance moves simulated time forward by duration d. See AdvanceTo().
func (s *Scheduler) Advance(d int64) error {
	return s.AdvanceTo(s.now + d)
}

// Modify arms or re-arms the alarm for absolute time at. A previously armed
// deadline is implicitly cancelled; a stale wake-up can never fire after a
// re-arm. Implements the mmio.Alarm interface.
func (a *alarm) Modify(at int64) {
	if a.armed {
		a.remove()
	}

	a.at = at
	a.armed = true

	// insert in wake time order, after any alarm with the same wake time
	if a.sch.pending == nil || at < a.sch.pending.at {
		a.next = a.sch.pending
		a.sch.pending = a
		return
	}

	p := a.sch.pending
	for p.next != nil && p.next.at <= at {
		p = p.next
	}
	a.next = p.next
	p.next = a
}

// Stop disarms the alarm without firing it. Stopping an unarmed alarm is a
// no-op. Implements the mmio.Alarm interface.
func (a *alarm) Stop() {
	if a.armed {
		a.remove()
		a.armed = false
		a.next = nil
	}
}

func (a *alarm) remove() {
	if a.sch.pending == a {
		a.sch.pending = a.next
		return
	}
	for p := a.sch.pending; p != nil; p = p.next {
		if p.next == a {
			p.next = a.next
			return
		}
	}
}

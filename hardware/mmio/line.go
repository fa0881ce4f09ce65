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

package mmio

// Line is a trivial implementation of the IRQ and Trigger interfaces. Hosts
// that have no interrupt delivery of their own (and tests) use it to observe
// what a peripheral last put on the wire.
type Line struct {
	// Level is the current level of the line
	Level bool

	// Pulses counts calls to Pulse()
	Pulses int
}

// Set implements the IRQ interface.
func (l *Line) Set(level bool) {
	l.Level = level
}

// Pulse implements the Trigger interface.
func (l *Line) Pulse() {
	l.Pulses++
}

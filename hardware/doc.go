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

// Package hardware composes the emulated peripheral cluster into a Machine:
// one system controller, two general purpose timer blocks, an I2C master and
// an ADC, wired together with interrupt lines, the timer trigger output and
// the alarm scheduler.
//
// Each peripheral lives in its own sub-package and is a small deterministic
// automaton driven only by register accesses and alarms. The Machine adds
// the address map on top, dispatching a full bus address to the right block.
//
// Hosts with their own memory dispatch and interrupt delivery can ignore the
// Machine and wire the peripheral types directly through the interfaces in
// the mmio package.
package hardware

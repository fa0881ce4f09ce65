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

// Package curated is a helper for the plain Go error type. A curated error
// is created with the Errorf() function and differs from a fmt error in that
// the formatting pattern is kept alongside the formatted values.
//
// The retained pattern acts as an identity. Packages declare their error
// patterns as constants:
//
//	const BadOffset = "gptm: %s: unmapped offset %#03x"
//
// and callers can test for that specific error without string comparison of
// the formatted message:
//
//	if curated.Is(err, timer.BadOffset) {
//		...
//	}
//
// The Has() function is similar but checks the whole error chain rather than
// just the outermost error.
//
// Sandstorm uses curated errors for the fatal tier of the error model: a
// register access that exercises unimplemented or undecoded hardware
// behaviour returns a curated error and the emulation is expected to halt.
// Modeled hardware conditions (FIFO overflow, arbitration loss, etc.) are
// never errors; they are status bits.
package curated

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

// Package test contains helper functions to remove common boilerplate from
// the project's tests.
//
// The ExpectedFailure and ExpectedSuccess functions test for failure and
// success under generic conditions. Note how they interpret the nil type: nil
// is considered a success, matching how Go errors work (nil meaning no
// error).
//
// ExpectedError additionally checks that an error is a curated error with a
// specific pattern, which is how the peripherals signal fatal configuration
// errors.
//
// The Equate() function compares like-typed variables for equality. Unsigned
// integer types can be compared against int for convenience.
package test

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

package sysctl

// Board describes the identity and capability registers of an emulated part.
// The values are read back through the DID and DC registers and the DID0
// version/class fields decide reset behaviour.
type Board struct {
	Name string
	DID0 uint32
	DID1 uint32
	DC0  uint32
	DC1  uint32
	DC2  uint32
	DC3  uint32
	DC4  uint32
}

// Catalogue of supported boards.
var (
	// LM3S811 is a first generation, Sandstorm-class part.
	LM3S811 = Board{
		Name: "LM3S811",
		DID0: 0x00000000,
		DID1: 0x0032000e,
		DC0:  0x001f001f,
		DC1:  0x001132bf,
		DC2:  0x01071013,
		DC3:  0x3f0f01ff,
		DC4:  0x0000001f,
	}

	// LM3S6965 is a Fury-class part.
	LM3S6965 = Board{
		Name: "LM3S6965",
		DID0: 0x10102032,
		DID1: 0x1073402e,
		DC0:  0x00ff007f,
		DC1:  0x001133ff,
		DC2:  0x030f5317,
		DC3:  0x0f0f87ff,
		DC4:  0x5000007f,
	}
)

// Boards maps a board name to its description.
var Boards = map[string]Board{
	LM3S811.Name:  LM3S811,
	LM3S6965.Name: LM3S6965,
}

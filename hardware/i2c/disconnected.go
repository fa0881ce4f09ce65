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

package i2c

// Disconnected is a Bus with no devices on it. Every start request fails and
// a read of the floating data line returns all ones.
type Disconnected struct{}

// StartTransfer implements the Bus interface.
func (d Disconnected) StartTransfer(address uint8, read bool) bool {
	return true
}

// Send implements the Bus interface.
func (d Disconnected) Send(data uint8) {
}

// Recv implements the Bus interface.
func (d Disconnected) Recv() uint8 {
	return 0xff
}

// EndTransfer implements the Bus interface.
func (d Disconnected) EndTransfer() {
}

// Busy implements the Bus interface.
func (d Disconnected) Busy() bool {
	return false
}

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

package monitor

import (
	"fmt"
	"os"

	"github.com/pkg/term/termios"
	"golang.org/x/sys/unix"
)

// terminal wraps the posix terminal attributes needed for an interactive
// prompt: canonical mode for normal operation and cbreak mode while a line
// is being edited.
type terminal struct {
	input  *os.File
	output *os.File

	canAttr    unix.Termios
	cbreakAttr unix.Termios
}

func (t *terminal) initialise(input, output *os.File) error {
	if input == nil || output == nil {
		return fmt.Errorf("monitor terminal requires input and output files")
	}

	t.input = input
	t.output = output

	if err := termios.Tcgetattr(t.input.Fd(), &t.canAttr); err != nil {
		return err
	}
	t.cbreakAttr = t.canAttr
	termios.Cfmakecbreak(&t.cbreakAttr)

	return nil
}

func (t *terminal) canonicalMode() {
	_ = termios.Tcsetattr(t.input.Fd(), termios.TCIFLUSH, &t.canAttr)
}

func (t *terminal) cbreakMode() {
	_ = termios.Tcsetattr(t.input.Fd(), termios.TCIFLUSH, &t.cbreakAttr)
}

func (t *terminal) print(s string, a ...interface{}) {
	fmt.Fprintf(t.output, s, a...)
}

// readLine collects a line of input in cbreak mode, handling backspace and
// the interrupt/eof control characters itself. It returns the line and
// whether input has finished (ctrl-c or ctrl-d).
func (t *terminal) readLine(prompt string) (string, bool) {
	t.cbreakMode()
	defer t.canonicalMode()

	t.print("%s", prompt)

	line := []byte{}
	buf := make([]byte, 1)

	for {
		n, err := t.input.Read(buf)
		if err != nil || n == 0 {
			return string(line), true
		}

		switch buf[0] {
		case 0x03, 0x04: // ctrl-c, ctrl-d
			t.print("\n")
			return "", true

		case '\n', '\r':
			t.print("\n")
			return string(line), false

		case 0x7f, 0x08: // delete, backspace
			if len(line) > 0 {
				line = line[:len(line)-1]
				t.print("\b \b")
			}

		default:
			if buf[0] >= 0x20 && buf[0] < 0x7f {
				line = append(line, buf[0])
				t.print("%c", buf[0])
			}
		}
	}
}

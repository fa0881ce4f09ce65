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

package logger

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mattn/go-colorable"
)

const (
	penDim    = "\033[2m"
	penNormal = "\033[0m"
)

// colorizer applies basic colouring rules to echoed log entries: the tag is
// dimmed, the detail is left alone.
type colorizer struct {
	out io.Writer
}

func newColorizer(out io.Writer) *colorizer {
	// go-colorable translates ANSI sequences on platforms whose consoles
	// don't interpret them natively
	if f, ok := out.(*os.File); ok {
		out = colorable.NewColorable(f)
	}
	return &colorizer{out: out}
}

// Write implements the io.Writer interface.
func (c *colorizer) Write(p []byte) (int, error) {
	s := string(p)
	if tag, detail, ok := strings.Cut(s, ": "); ok {
		_, err := fmt.Fprintf(c.out, "%s%s:%s %s", penDim, tag, penNormal, detail)
		return len(p), err
	}

	_, err := c.out.Write(p)
	return len(p), err
}

func formats(detail string, args ...interface{}) string {
	return fmt.Sprintf(detail, args...)
}

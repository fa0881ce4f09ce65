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

package logger_test

import (
	"testing"

	"github.com/sandstorm-emu/sandstorm/logger"
	"github.com/sandstorm-emu/sandstorm/test"
)

func TestLogger(t *testing.T) {
	logger.Clear()
	tw := &test.Writer{}

	logger.Write(tw)
	test.Equate(t, tw.Compare(""), true)

	logger.Log("test", "this is a test")
	logger.Write(tw)
	test.Equate(t, tw.Compare("test: this is a test\n"), true)

	// clear the test.Writer buffer before continuing, makes comparisons easier
	// to manage
	tw.Clear()

	logger.Log("test2", "this is another test")
	logger.Write(tw)
	test.Equate(t, tw.Compare("test: this is a test\ntest2: this is another test\n"), true)

	// asking for too many entries in a Tail() should be okay
	tw.Clear()
	logger.Tail(tw, 100)
	test.Equate(t, tw.Compare("test: this is a test\ntest2: this is another test\n"), true)

	// asking for exactly the correct number of entries is okay
	tw.Clear()
	logger.Tail(tw, 2)
	test.Equate(t, tw.Compare("test: this is a test\ntest2: this is another test\n"), true)

	// asking for fewer entries is okay too
	tw.Clear()
	logger.Tail(tw, 1)
	test.Equate(t, tw.Compare("test2: this is another test\n"), true)

	// and no entries
	tw.Clear()
	logger.Tail(tw, 0)
	test.Equate(t, tw.Compare(""), true)
}

func TestRepeatFolding(t *testing.T) {
	logger.Clear()
	tw := &test.Writer{}

	// adjacent identical entries fold into one line with a repeat count
	logger.Log("tag", "same detail")
	logger.Log("tag", "same detail")
	logger.Log("tag", "same detail")
	logger.Write(tw)
	test.Equate(t, tw.Compare("tag: same detail (repeat x3)\n"), true)

	// a different detail breaks the run
	tw.Clear()
	logger.Log("tag", "new detail")
	logger.Write(tw)
	test.Equate(t, tw.Compare("tag: same detail (repeat x3)\ntag: new detail\n"), true)
}

func TestLogf(t *testing.T) {
	logger.Clear()
	tw := &test.Writer{}

	logger.Logf("tag", "value=%d", 10)
	logger.Write(tw)
	test.Equate(t, tw.Compare("tag: value=10\n"), true)
}

func TestEntriesAreSingleLine(t *testing.T) {
	logger.Clear()
	tw := &test.Writer{}

	// newlines in the detail would break the one-entry-per-line contract
	logger.Log("tag", "multi\nline")
	logger.Write(tw)
	test.Equate(t, tw.Compare("tag: multiline\n"), true)
}

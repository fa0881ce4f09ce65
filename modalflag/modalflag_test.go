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

package modalflag_test

import (
	"os"
	"testing"

	"github.com/sandstorm-emu/sandstorm/modalflag"
	"github.com/sandstorm-emu/sandstorm/test"
)

func TestNoModesNoFlags(t *testing.T) {
	md := modalflag.Modes{Output: os.Stdout}
	md.NewArgs([]string{})

	p, err := md.Parse()
	if p != modalflag.ParseContinue {
		t.Error("expected ParseContinue")
	}
	if err != nil {
		t.Errorf("did not expect error: %s", err)
	}
	if md.Mode() != "" {
		t.Errorf("did not expect to see mode as result of Parse()")
	}
	if md.Path() != "" {
		t.Errorf("did not expect to see modes in mode path")
	}
}

func TestNoModes(t *testing.T) {
	md := modalflag.Modes{Output: os.Stdout}
	md.NewArgs([]string{"-test", "1", "2"})
	testFlag := md.AddBool("test", false, "test flag")

	if *testFlag != false {
		t.Error("expected *testFlag to be false before Parse()")
	}

	p, err := md.Parse()
	if p != modalflag.ParseContinue {
		t.Error("expected ParseContinue")
	}
	if err != nil {
		t.Errorf("did not expect error: %s", err)
	}

	if *testFlag != true {
		t.Error("expected *testFlag to be true after Parse()")
	}

	if len(md.RemainingArgs()) != 2 {
		t.Error("expected number of RemainingArgs() to be 2 after Parse()")
	}
}

func TestHelpFlags(t *testing.T) {
	tw := &test.Writer{}

	md := modalflag.Modes{Output: tw}
	md.NewArgs([]string{"-help"})
	md.AddBool("test", true, "test flag")

	p, _ := md.Parse()
	if p != modalflag.ParseHelp {
		t.Error("expected ParseHelp return value from Parse()")
	}

	expectedHelp := "  -test\n" +
		"    	test flag (default true)\n"

	if !tw.Compare(expectedHelp) {
		t.Errorf("unexpected help message: %s", tw.String())
	}
}

func TestHelpModes(t *testing.T) {
	tw := &test.Writer{}

	md := modalflag.Modes{Output: tw}
	md.NewArgs([]string{"-help"})
	md.AddSubModes("A", "B", "C")

	p, _ := md.Parse()
	if p != modalflag.ParseHelp {
		t.Error("expected ParseHelp return value from Parse()")
	}

	if !tw.Compare("sub-modes: A, B, C (default: A)\n") {
		t.Errorf("unexpected help message: %s", tw.String())
	}
}

func TestDefaultSubMode(t *testing.T) {
	md := modalflag.Modes{Output: os.Stdout}
	md.NewArgs([]string{})
	md.AddSubModes("A", "B")

	p, err := md.Parse()
	if p != modalflag.ParseContinue || err != nil {
		t.Error("unexpected Parse() result")
	}

	// the first listed sub-mode is the default
	if md.Mode() != "A" {
		t.Errorf("expected default mode A, got %s", md.Mode())
	}
}

func TestSubModeSelection(t *testing.T) {
	md := modalflag.Modes{Output: os.Stdout}
	md.NewArgs([]string{"b", "leftover"})
	md.AddSubModes("A", "B")

	p, err := md.Parse()
	if p != modalflag.ParseContinue || err != nil {
		t.Error("unexpected Parse() result")
	}

	// sub-mode matching is case insensitive
	if md.Mode() != "B" {
		t.Errorf("expected mode B, got %s", md.Mode())
	}

	// the sub-mode argument is consumed; the leftover argument is seen by
	// the next Parse()
	md.NewMode()
	p, err = md.Parse()
	if p != modalflag.ParseContinue || err != nil {
		t.Error("unexpected Parse() result")
	}
	if len(md.RemainingArgs()) != 1 || md.GetArg(0) != "leftover" {
		t.Error("expected one remaining argument after sub-mode selection")
	}
}

func TestNestedMode(t *testing.T) {
	md := modalflag.Modes{Output: os.Stdout}
	md.NewArgs([]string{"run", "-verbose", "file.yaml"})
	md.AddSubModes("RUN", "MONITOR")

	p, err := md.Parse()
	if p != modalflag.ParseContinue || err != nil {
		t.Error("unexpected Parse() result")
	}
	if md.Mode() != "RUN" {
		t.Errorf("expected mode RUN, got %s", md.Mode())
	}

	md.NewMode()
	verbose := md.AddBool("verbose", false, "verbose flag")
	p, err = md.Parse()
	if p != modalflag.ParseContinue || err != nil {
		t.Error("unexpected Parse() result")
	}
	if !*verbose {
		t.Error("expected -verbose to be set in sub-mode")
	}
	if len(md.RemainingArgs()) != 1 || md.GetArg(0) != "file.yaml" {
		t.Error("expected scenario file as the remaining argument")
	}
	if md.Path() != "RUN" {
		t.Errorf("unexpected mode path: %s", md.Path())
	}
}

func TestParseError(t *testing.T) {
	md := modalflag.Modes{Output: os.Stdout}
	md.NewArgs([]string{"-unknown"})

	p, err := md.Parse()
	if p != modalflag.ParseError {
		t.Error("expected ParseError return value from Parse()")
	}
	if err == nil {
		t.Error("expected error from Parse()")
	}
}

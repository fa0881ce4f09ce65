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

package main

import (
	"fmt"
	"os"

	"github.com/sandstorm-emu/sandstorm/curated"
	"github.com/sandstorm-emu/sandstorm/hardware"
	"github.com/sandstorm-emu/sandstorm/hardware/sysctl"
	"github.com/sandstorm-emu/sandstorm/logger"
	"github.com/sandstorm-emu/sandstorm/modalflag"
	"github.com/sandstorm-emu/sandstorm/monitor"
	"github.com/sandstorm-emu/sandstorm/scenario"
	"github.com/sandstorm-emu/sandstorm/snapshot"
	"github.com/sandstorm-emu/sandstorm/statsview"
	"github.com/sandstorm-emu/sandstorm/version"
)

func main() {
	md := &modalflag.Modes{Output: os.Stdout}
	md.NewArgs(os.Args[1:])
	md.AddSubModes("RUN", "MONITOR", "VERSION")

	r, err := md.Parse()
	switch r {
	case modalflag.ParseHelp:
		os.Exit(0)
	case modalflag.ParseError:
		fmt.Printf("* %v\n", err)
		os.Exit(10)
	}

	switch md.Mode() {
	case "RUN":
		err = run(md)
	case "MONITOR":
		err = mon(md)
	case "VERSION":
		vers, rev, _ := version.Version()
		fmt.Printf("%s %s (%s)\n", version.ApplicationName, vers, rev)
	}

	if err != nil {
		fmt.Printf("* %v\n", err)
		os.Exit(10)
	}
}

// run executes one or more scenario scripts against a fresh machine each.
func run(md *modalflag.Modes) error {
	md.NewMode()
	echo := md.AddBool("log", false, "echo log entries to stderr")
	stats := md.AddBool("statsview", false, "run stats server (requires statsview build tag)")

	r, err := md.Parse()
	if r != modalflag.ParseContinue {
		return err
	}

	if *echo {
		logger.SetEcho(os.Stderr, true)
	}
	if *stats {
		if statsview.Available() {
			statsview.Launch(os.Stdout)
		} else {
			fmt.Println("* stats server not available (rebuild with statsview build tag)")
		}
	}

	if len(md.RemainingArgs()) == 0 {
		return curated.Errorf("run: no scenario files specified")
	}

	for _, name := range md.RemainingArgs() {
		f, err := os.Open(name)
		if err != nil {
			return curated.Errorf("run: %v", err)
		}

		scr, err := scenario.Load(f)
		f.Close()
		if err != nil {
			return err
		}

		m, err := scr.NewMachine()
		if err != nil {
			return err
		}

		if err := scr.Run(m, os.Stdout); err != nil {
			return err
		}
	}

	return nil
}

// mon starts an interactive monitor session.
func mon(md *modalflag.Modes) error {
	md.NewMode()
	board := md.AddString("board", sysctl.LM3S811.Name, "board to emulate")
	load := md.AddString("load", "", "snapshot file to restore on startup")

	r, err := md.Parse()
	if r != modalflag.ParseContinue {
		return err
	}

	b, ok := sysctl.Boards[*board]
	if !ok {
		return curated.Errorf("monitor: unknown board %s", *board)
	}

	m, err := hardware.NewMachine(b, nil)
	if err != nil {
		return err
	}

	if *load != "" {
		f, err := os.Open(*load)
		if err != nil {
			return curated.Errorf("monitor: %v", err)
		}
		err = snapshot.Load(f, m)
		f.Close()
		if err != nil {
			return err
		}
	}

	mn, err := monitor.NewMonitor(m)
	if err != nil {
		return curated.Errorf("monitor: %v", err)
	}

	return mn.Run()
}

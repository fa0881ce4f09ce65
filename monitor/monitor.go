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

// Package monitor is an interactive terminal onto a machine: peek and poke
// registers, advance simulated time, inspect interrupt lines, save and load
// snapshots. It stands in for the debug interface a full emulator host
// would provide.
package monitor

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/bradleyjkemp/memviz"
	"github.com/sandstorm-emu/sandstorm/hardware"
	"github.com/sandstorm-emu/sandstorm/logger"
	"github.com/sandstorm-emu/sandstorm/snapshot"
)

const help = `commands:
  r <addr>             read register
  w <addr> <value>     write register
  adv <duration>       advance simulated time (microseconds)
  irq                  show interrupt/trigger lines
  reset                reset all peripherals
  save <file>          save snapshot
  load <file>          load snapshot
  viz <file>           dump machine state graph (graphviz dot)
  log                  show central log
  help                 this help
  quit                 leave the monitor
`

// Monitor is an interactive session onto a machine.
type Monitor struct {
	mc   *hardware.Machine
	term terminal
}

// NewMonitor is the preferred method of initialisation for the Monitor type.
func NewMonitor(mc *hardware.Machine) (*Monitor, error) {
	mon := &Monitor{mc: mc}
	if err := mon.term.initialise(os.Stdin, os.Stdout); err != nil {
		return nil, err
	}
	return mon, nil
}

// Run the monitor until the user quits.
func (mon *Monitor) Run() error {
	mon.term.print("%s machine. type help for commands\n", mon.mc.Board.Name)

	for {
		line, done := mon.term.readLine("(sandstorm) ")
		if done {
			return nil
		}

		quit, err := mon.dispatch(strings.Fields(line))
		if err != nil {
			mon.term.print("error: %v\n", err)
		}
		if quit {
			return nil
		}
	}
}

func parseNum(s string) (uint32, error) {
	v, err := strconv.ParseUint(s, 0, 32)
	return uint32(v), err
}

func (mon *Monitor) dispatch(fields []string) (bool, error) {
	if len(fields) == 0 {
		return false, nil
	}

	switch strings.ToLower(fields[0]) {
	case "quit", "q":
		return true, nil

	case "help", "h":
		mon.term.print("%s", help)

	case "r":
		if len(fields) != 2 {
			return false, fmt.Errorf("usage: r <addr>")
		}
		addr, err := parseNum(fields[1])
		if err != nil {
			return false, err
		}
		v, err := mon.mc.Read(addr)
		if err != nil {
			return false, err
		}
		mon.term.print("%#08x -> %#08x\n", addr, v)

	case "w":
		if len(fields) != 3 {
			return false, fmt.Errorf("usage: w <addr> <value>")
		}
		addr, err := parseNum(fields[1])
		if err != nil {
			return false, err
		}
		val, err := parseNum(fields[2])
		if err != nil {
			return false, err
		}
		if err := mon.mc.Write(addr, val); err != nil {
			return false, err
		}

	case "adv":
		if len(fields) != 2 {
			return false, fmt.Errorf("usage: adv <duration>")
		}
		d, err := strconv.ParseInt(fields[1], 0, 64)
		if err != nil {
			return false, err
		}
		if err := mon.mc.Advance(d); err != nil {
			return false, err
		}
		mon.term.print("now: %d\n", mon.mc.Sched.Now())

	case "irq":
		mon.term.print("sysctl: %v\n", mon.mc.SysIRQ.Level)
		mon.term.print("timer0: %v  timer1: %v\n", mon.mc.Timer0IRQ.Level, mon.mc.Timer1IRQ.Level)
		mon.term.print("i2c: %v\n", mon.mc.I2CIRQ.Level)
		for n := range mon.mc.ADCIRQ {
			mon.term.print("adc seq %d: %v\n", n, mon.mc.ADCIRQ[n].Level)
		}

	case "reset":
		mon.mc.Reset()

	case "save":
		if len(fields) != 2 {
			return false, fmt.Errorf("usage: save <file>")
		}
		f, err := os.Create(fields[1])
		if err != nil {
			return false, err
		}
		defer f.Close()
		return false, snapshot.Save(f, mon.mc)

	case "load":
		if len(fields) != 2 {
			return false, fmt.Errorf("usage: load <file>")
		}
		f, err := os.Open(fields[1])
		if err != nil {
			return false, err
		}
		defer f.Close()
		return false, snapshot.Load(f, mon.mc)

	case "viz":
		if len(fields) != 2 {
			return false, fmt.Errorf("usage: viz <file>")
		}
		f, err := os.Create(fields[1])
		if err != nil {
			return false, err
		}
		defer f.Close()
		memviz.Map(f, mon.mc.Snapshot())

	case "log":
		logger.Write(mon.term.output)

	default:
		return false, fmt.Errorf("unknown command %s", fields[0])
	}

	return false, nil
}

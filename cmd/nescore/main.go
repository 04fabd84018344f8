// Command nescore loads a cartridge image and drives the emulator core
// headlessly, with an optional line-oriented debugger prompt. Argument
// parsing and the REPL's command language are thin glue around the core;
// the interesting behavior lives in pkg/nes and pkg/debugger.
package main

import (
	"bufio"
	"errors"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/kjhart/nescore/pkg/cartridge"
	"github.com/kjhart/nescore/pkg/debugger"
	"github.com/kjhart/nescore/pkg/logger"
	"github.com/kjhart/nescore/pkg/nes"
)

const (
	exitOK                = 0
	exitROMLoadFailure    = 1
	exitUnsupportedMapper = 2
)

type nullVideo struct{}

func (nullVideo) Append(*[256 * 240]uint8) {}

type nullAudio struct{}

func (nullAudio) Append([2]int16) {}

func main() {
	romPath := flag.String("rom", "", "path to an iNES cartridge image")
	logLevel := flag.String("log-level", "off", "off|error|warn|info|debug|trace")
	interactive := flag.Bool("debug", false, "start in the interactive debugger")
	flag.Parse()

	if err := logger.Initialize(logger.GetLogLevelFromString(*logLevel), ""); err != nil {
		fmt.Fprintln(os.Stderr, "logger init:", err)
		os.Exit(exitROMLoadFailure)
	}
	defer logger.Close()

	if *romPath == "" {
		fmt.Fprintln(os.Stderr, "usage: nescore -rom path/to/game.nes [-debug]")
		os.Exit(exitROMLoadFailure)
	}

	f, err := os.Open(*romPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, "open ROM:", err)
		os.Exit(exitROMLoadFailure)
	}
	defer f.Close()

	cart, err := cartridge.Load(f)
	if err != nil {
		var unsupported *cartridge.UnsupportedMapperError
		if errors.As(err, &unsupported) {
			fmt.Fprintln(os.Stderr, "load ROM:", err)
			os.Exit(exitUnsupportedMapper)
		}
		fmt.Fprintln(os.Stderr, "load ROM:", err)
		os.Exit(exitROMLoadFailure)
	}

	m := nes.New(nullVideo{}, nullAudio{})
	m.LoadCartridge(cart)
	m.Reset()

	if *interactive {
		runREPL(debugger.New(m))
		return
	}

	for {
		m.StepFrame()
	}
}

// runREPL is a minimal synchronous prompt; it never runs concurrently with
// Step, so it trivially satisfies the "step never blocks on input"
// contract by only calling Step between reads.
func runREPL(d *debugger.Debugger) {
	scanner := bufio.NewScanner(os.Stdin)
	fmt.Println("nescore debugger. Type 'exit' to quit.")
	for {
		fmt.Print("(nescore) ")
		if !scanner.Scan() {
			return
		}
		if err := dispatch(d, scanner.Text()); err != nil {
			if errors.Is(err, errQuit) {
				return
			}
			fmt.Fprintln(os.Stderr, err)
		}
	}
}

var errQuit = errors.New("quit")

func dispatch(d *debugger.Debugger, line string) error {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return nil
	}
	cmd, args := fields[0], fields[1:]

	switch cmd {
	case "exit", "quit":
		return errQuit

	case "show-regs":
		r := d.Registers()
		fmt.Printf("A=%02X X=%02X Y=%02X SP=%02X PC=%04X P=%02X\n", r.A, r.X, r.Y, r.SP, r.PC, r.P)

	case "step":
		n := 1
		if len(args) > 0 {
			v, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("step: %w", err)
			}
			n = v
		}
		executed, reason := d.Step(n)
		fmt.Printf("executed %d instruction(s), %s\n", executed, reasonText(reason))

	case "continue":
		executed, reason := d.Continue(1_000_000)
		fmt.Printf("ran %d instruction(s), %s\n", executed, reasonText(reason))

	case "goto":
		addr, err := parseAddr(args)
		if err != nil {
			return err
		}
		d.Goto(addr)

	case "memory-dump":
		addr, length, err := parseAddrLen(args)
		if err != nil {
			return err
		}
		fmt.Println(hexDump(addr, d.MemoryDump(addr, length)))

	case "stack-dump":
		fmt.Println(hexDump(0x0100, d.StackDump()))

	case "disassemble":
		addr, err := parseAddr(args)
		if err != nil {
			return err
		}
		n := 10
		if len(args) > 1 {
			if v, err := strconv.Atoi(args[1]); err == nil {
				n = v
			}
		}
		for _, in := range d.Disassemble(addr, n) {
			fmt.Printf("$%04X: %s\n", in.Address, in.Text)
		}

	case "label":
		return labelCommand(d, args)

	case "breakpoint":
		return breakpointCommand(d, args)

	case "watchpoint":
		return watchpointCommand(d, args)

	default:
		return fmt.Errorf("unrecognized command: %s", cmd)
	}
	return nil
}

func reasonText(r debugger.StopReason) string {
	switch r {
	case debugger.StopBreakpoint:
		return "stopped at breakpoint"
	case debugger.StopWatchpoint:
		return "stopped at watchpoint"
	default:
		return "step count reached"
	}
}

func parseAddr(args []string) (uint16, error) {
	if len(args) < 1 {
		return 0, errors.New("missing address")
	}
	v, err := strconv.ParseUint(strings.TrimPrefix(args[0], "$"), 16, 16)
	if err != nil {
		return 0, fmt.Errorf("bad address %q: %w", args[0], err)
	}
	return uint16(v), nil
}

func parseAddrLen(args []string) (uint16, int, error) {
	addr, err := parseAddr(args)
	if err != nil {
		return 0, 0, err
	}
	length := 16
	if len(args) > 1 {
		if v, err := strconv.Atoi(args[1]); err == nil {
			length = v
		}
	}
	return addr, length, nil
}

func hexDump(base uint16, data []uint8) string {
	var b strings.Builder
	for i, v := range data {
		if i%16 == 0 {
			fmt.Fprintf(&b, "\n$%04X: ", base+uint16(i))
		}
		fmt.Fprintf(&b, "%02X ", v)
	}
	return b.String()
}

func labelCommand(d *debugger.Debugger, args []string) error {
	if len(args) < 1 {
		return errors.New("label: expected add|remove|list")
	}
	switch args[0] {
	case "add":
		addr, err := parseAddr(args[1:])
		if err != nil || len(args) < 3 {
			return errors.New("label add <addr> <name>")
		}
		d.AddLabel(addr, args[2])
	case "remove":
		addr, err := parseAddr(args[1:])
		if err != nil {
			return err
		}
		d.RemoveLabel(addr)
	case "list":
		for addr, name := range d.Labels() {
			fmt.Printf("$%04X %s\n", addr, name)
		}
	default:
		return fmt.Errorf("label: unknown subcommand %q", args[0])
	}
	return nil
}

func breakpointCommand(d *debugger.Debugger, args []string) error {
	if len(args) < 1 {
		return errors.New("breakpoint: expected add|remove|list")
	}
	switch args[0] {
	case "add":
		addr, err := parseAddr(args[1:])
		if err != nil {
			return err
		}
		d.AddBreakpoint(addr)
	case "remove":
		addr, err := parseAddr(args[1:])
		if err != nil {
			return err
		}
		d.RemoveBreakpoint(addr)
	case "list":
		for _, addr := range d.Breakpoints() {
			fmt.Printf("$%04X\n", addr)
		}
	default:
		return fmt.Errorf("breakpoint: unknown subcommand %q", args[0])
	}
	return nil
}

func watchpointCommand(d *debugger.Debugger, args []string) error {
	if len(args) < 1 {
		return errors.New("watchpoint: expected add|remove|list")
	}
	switch args[0] {
	case "add":
		addr, err := parseAddr(args[1:])
		if err != nil {
			return err
		}
		d.AddWatchpoint(addr)
	case "remove":
		addr, err := parseAddr(args[1:])
		if err != nil {
			return err
		}
		d.RemoveWatchpoint(addr)
	case "list":
		for _, addr := range d.Watchpoints() {
			fmt.Printf("$%04X\n", addr)
		}
	default:
		return fmt.Errorf("watchpoint: unknown subcommand %q", args[0])
	}
	return nil
}

// Package debugger exposes the Machine's introspection surface: read-only
// register and memory access, mutable breakpoint/watchpoint sets, and the
// step/continue/goto primitives a front-end REPL drives. The REPL and
// disassembler text UI themselves are an external collaborator; this
// package only implements the contract they'd be built on.
package debugger

import (
	"sort"

	"github.com/kjhart/nescore/pkg/cpu"
	"github.com/kjhart/nescore/pkg/nes"
)

// Registers is a read-only snapshot of the CPU's register file.
type Registers struct {
	A, X, Y, SP uint8
	PC          uint16
	P           uint8
}

// StopReason explains why Continue/Step returned early.
type StopReason int

const (
	StopStepCountReached StopReason = iota
	StopBreakpoint
	StopWatchpoint
)

// Debugger wraps a Machine with the bookkeeping a front-end needs: named
// labels and breakpoint/watchpoint address sets, neither of which the core
// Machine itself knows about.
type Debugger struct {
	Machine *nes.Machine

	breakpoints map[uint16]struct{}
	labels      map[uint16]string
}

func New(m *nes.Machine) *Debugger {
	return &Debugger{
		Machine:     m,
		breakpoints: make(map[uint16]struct{}),
		labels:      make(map[uint16]string),
	}
}

// Registers returns the CPU's current register state. It never mutates
// anything.
func (d *Debugger) Registers() Registers {
	c := d.Machine.CPU
	return Registers{A: c.A, X: c.X, Y: c.Y, SP: c.SP, PC: c.PC, P: c.P}
}

// Peek reads one byte without any of the side effects a live CPU read
// might have (no vblank-clear, no controller shift, no watchpoint check).
func (d *Debugger) Peek(addr uint16) uint8 {
	return d.Machine.Bus.ReadSideEffectFree(addr)
}

// MemoryDump returns length bytes starting at addr, side-effect free.
func (d *Debugger) MemoryDump(addr uint16, length int) []uint8 {
	out := make([]uint8, length)
	for i := range out {
		out[i] = d.Peek(addr + uint16(i))
	}
	return out
}

// StackDump returns the bytes from the current stack pointer up to $01FF,
// the portion of the stack page that's actually been pushed to.
func (d *Debugger) StackDump() []uint8 {
	sp := d.Machine.CPU.SP
	length := 0xFF - int(sp)
	out := make([]uint8, length)
	for i := range out {
		out[i] = d.Peek(0x0100 | (uint16(sp) + 1 + uint16(i)))
	}
	return out
}

// Disassemble decodes n instructions starting at addr.
func (d *Debugger) Disassemble(addr uint16, n int) []cpu.Instruction {
	return cpu.Disassemble(d.Peek, addr, n)
}

// AddBreakpoint/RemoveBreakpoint/Breakpoints manage the address set that
// halts Continue when PC reaches it.
func (d *Debugger) AddBreakpoint(addr uint16)    { d.breakpoints[addr] = struct{}{} }
func (d *Debugger) RemoveBreakpoint(addr uint16) { delete(d.breakpoints, addr) }
func (d *Debugger) Breakpoints() []uint16        { return sortedKeys(d.breakpoints) }

// AddWatchpoint/RemoveWatchpoint/Watchpoints manage the address set the bus
// reports a hit against when touched by a load or store.
func (d *Debugger) AddWatchpoint(addr uint16) { d.Machine.Bus.Watchpoints[addr] = struct{}{} }
func (d *Debugger) RemoveWatchpoint(addr uint16) {
	delete(d.Machine.Bus.Watchpoints, addr)
}
func (d *Debugger) Watchpoints() []uint16 { return sortedKeys(d.Machine.Bus.Watchpoints) }

// AddLabel/RemoveLabel/Labels let the REPL attach symbolic names to
// addresses for display purposes; the core has no other use for them.
func (d *Debugger) AddLabel(addr uint16, name string) { d.labels[addr] = name }
func (d *Debugger) RemoveLabel(addr uint16)           { delete(d.labels, addr) }
func (d *Debugger) Labels() map[uint16]string {
	out := make(map[uint16]string, len(d.labels))
	for k, v := range d.labels {
		out[k] = v
	}
	return out
}

// Goto sets PC directly, used by the REPL's "goto" command.
func (d *Debugger) Goto(addr uint16) { d.Machine.CPU.PC = addr }

// Step executes up to n instructions, stopping early if a watchpoint
// fires on the step that just ran.
func (d *Debugger) Step(n int) (executed int, reason StopReason) {
	for i := 0; i < n; i++ {
		d.Machine.Step()
		executed++
		if d.Machine.Bus.TakeWatchpointHit() {
			return executed, StopWatchpoint
		}
	}
	return executed, StopStepCountReached
}

// Continue runs until PC lands on a breakpoint, a watchpoint fires, or
// maxSteps is reached as a runaway-loop backstop.
func (d *Debugger) Continue(maxSteps int) (executed int, reason StopReason) {
	for executed < maxSteps {
		d.Machine.Step()
		executed++
		if d.Machine.Bus.TakeWatchpointHit() {
			return executed, StopWatchpoint
		}
		if _, hit := d.breakpoints[d.Machine.CPU.PC]; hit {
			return executed, StopBreakpoint
		}
	}
	return executed, StopStepCountReached
}

func sortedKeys(m map[uint16]struct{}) []uint16 {
	out := make([]uint16, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

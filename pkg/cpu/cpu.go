// Package cpu implements a cycle-counted interpreter for the 6502
// microprocessor used as the console's CPU, including the documented
// unofficial opcodes real cartridges rely on.
package cpu

import (
	"github.com/kjhart/nescore/pkg/logger"
	"github.com/kjhart/nescore/pkg/memory"
)

// Status flag bits, in P's bit order.
const (
	FlagCarry     = 1 << 0 // C
	FlagZero      = 1 << 1 // Z
	FlagInterrupt = 1 << 2 // I
	FlagDecimal   = 1 << 3 // D (accepted but has no effect on ADC/SBC)
	FlagBreak     = 1 << 4 // B, only meaningful in the byte pushed to the stack
	FlagUnused    = 1 << 5 // always 1
	FlagOverflow  = 1 << 6 // V
	FlagNegative  = 1 << 7 // N
)

const (
	nmiVector   = 0xFFFA
	resetVector = 0xFFFC
	irqVector   = 0xFFFE
)

// CPU holds the 6502's registers and drives instruction fetch/decode/execute
// against the bus it's attached to.
type CPU struct {
	A  uint8
	X  uint8
	Y  uint8
	SP uint8
	PC uint16
	P  uint8

	Bus *memory.Bus

	Cycles uint64

	nmiPending    bool
	nmiLine       bool // current level of the NMI input, for edge detection
	irqLine       bool // level-triggered: held by any asserting source

	// Halted is set by an unofficial JAM/KIL opcode, which locks the real
	// 6502 until reset. Step becomes a no-op once this is true.
	Halted bool
}

func New(bus *memory.Bus) *CPU {
	return &CPU{Bus: bus}
}

// Reset matches the 6502's reset sequence: SP decrements by 3 without
// writing, I is set, and PC loads from the reset vector.
func (c *CPU) Reset() {
	c.A, c.X, c.Y = 0, 0, 0
	c.SP = 0xFD
	c.P = FlagUnused | FlagInterrupt
	c.PC = c.read16(resetVector)
	c.Cycles = 0
	c.Halted = false
	c.nmiPending, c.nmiLine, c.irqLine = false, false, false
}

// SetNMILine updates the NMI input's level; NMI is requested on the
// falling-to-asserted edge, matching the real line's edge sensitivity.
func (c *CPU) SetNMILine(asserted bool) {
	if asserted && !c.nmiLine {
		c.nmiPending = true
	}
	c.nmiLine = asserted
}

// SetIRQLine updates the IRQ input's level. Unlike NMI this is level
// triggered: as long as any source holds it asserted and I is clear, IRQ
// fires on every instruction boundary.
func (c *CPU) SetIRQLine(asserted bool) {
	c.irqLine = asserted
}

func (c *CPU) getFlag(flag uint8) bool { return c.P&flag != 0 }

func (c *CPU) setFlag(flag uint8, v bool) {
	if v {
		c.P |= flag
	} else {
		c.P &^= flag
	}
}

func (c *CPU) setZN(v uint8) {
	c.setFlag(FlagZero, v == 0)
	c.setFlag(FlagNegative, v&0x80 != 0)
}

func (c *CPU) read(addr uint16) uint8  { return c.Bus.Read(addr) }
func (c *CPU) write(addr uint16, v uint8) { c.Bus.Write(addr, v) }

func (c *CPU) read16(addr uint16) uint16 {
	lo := uint16(c.read(addr))
	hi := uint16(c.read(addr + 1))
	return hi<<8 | lo
}

func (c *CPU) push(v uint8) {
	c.write(0x0100|uint16(c.SP), v)
	c.SP--
}

func (c *CPU) pop() uint8 {
	c.SP++
	return c.read(0x0100 | uint16(c.SP))
}

func (c *CPU) push16(v uint16) {
	c.push(uint8(v >> 8))
	c.push(uint8(v))
}

func (c *CPU) pop16() uint16 {
	lo := uint16(c.pop())
	hi := uint16(c.pop())
	return hi<<8 | lo
}

// Step services any pending interrupt, then fetches, decodes and executes
// exactly one instruction, returning the number of CPU cycles consumed
// (including any OAM DMA stall latched onto this step and, for the
// instruction that triggers it, the DMA's own cycles).
func (c *CPU) Step() int {
	if c.Halted {
		return 2
	}

	if c.nmiPending {
		c.nmiPending = false
		c.serviceInterrupt(nmiVector, false)
		c.Cycles += 7
		return 7
	}

	if c.irqLine && !c.getFlag(FlagInterrupt) {
		c.serviceInterrupt(irqVector, false)
		c.Cycles += 7
		return 7
	}

	pc := c.PC
	opcode := c.read(c.PC)
	c.PC++

	entry := opcodeTable[opcode]
	addr, pageCrossed := c.operand(entry.mode)
	cycles := entry.cycles
	extra := entry.fn(c, entry.mode, addr)
	if pageCrossed && entry.pageCrossCycle {
		cycles++
	}
	cycles += extra
	cycles += c.Bus.TakeDMAStall()

	logger.LogCPU("$%04X: %s (%02X) A=%02X X=%02X Y=%02X P=%02X SP=%02X cyc=%d",
		pc, entry.name, opcode, c.A, c.X, c.Y, c.P, c.SP, cycles)

	c.Cycles += uint64(cycles)
	return cycles
}

// serviceInterrupt pushes PC and P and jumps through the given vector. brk
// distinguishes a software BRK (B set in the pushed P) from a hardware
// NMI/IRQ (B clear); both push U set.
func (c *CPU) serviceInterrupt(vector uint16, brk bool) {
	c.push16(c.PC)
	flags := c.P | FlagUnused
	if brk {
		flags |= FlagBreak
	} else {
		flags &^= FlagBreak
	}
	c.push(flags)
	c.setFlag(FlagInterrupt, true)
	c.PC = c.read16(vector)
}

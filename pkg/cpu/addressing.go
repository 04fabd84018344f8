package cpu

// AddressingMode identifies one of the 6502's addressing modes.
type AddressingMode int

const (
	AddrImplied AddressingMode = iota
	AddrAccumulator
	AddrImmediate
	AddrZeroPage
	AddrZeroPageX
	AddrZeroPageY
	AddrRelative
	AddrAbsolute
	AddrAbsoluteX
	AddrAbsoluteY
	AddrIndirect
	AddrIndexedIndirect // (zp,X)
	AddrIndirectIndexed // (zp),Y
)

// operand resolves the addressing mode to a memory address (or, for
// AddrAccumulator/AddrImplied, a meaningless zero), advancing PC past the
// instruction's operand bytes and reporting whether a page boundary was
// crossed by an indexed effective-address calculation.
//
// Dummy reads on indexed modes that cross a page boundary are modeled
// explicitly since they are externally observable on the real bus (PPU
// register mirroring, mapper IRQ counters keyed off A12 toggles, and so
// on all depend on them).
func (c *CPU) operand(mode AddressingMode) (addr uint16, pageCrossed bool) {
	switch mode {
	case AddrImplied, AddrAccumulator:
		return 0, false

	case AddrImmediate:
		addr = c.PC
		c.PC++
		return addr, false

	case AddrZeroPage:
		addr = uint16(c.read(c.PC))
		c.PC++
		return addr, false

	case AddrZeroPageX:
		addr = uint16(c.read(c.PC)+c.X) & 0xFF
		c.PC++
		return addr, false

	case AddrZeroPageY:
		addr = uint16(c.read(c.PC)+c.Y) & 0xFF
		c.PC++
		return addr, false

	case AddrRelative:
		offset := int8(c.read(c.PC))
		c.PC++
		base := c.PC
		addr = uint16(int32(base) + int32(offset))
		pageCrossed = base&0xFF00 != addr&0xFF00
		return addr, pageCrossed

	case AddrAbsolute:
		addr = c.read16(c.PC)
		c.PC += 2
		return addr, false

	case AddrAbsoluteX:
		base := c.read16(c.PC)
		c.PC += 2
		addr = base + uint16(c.X)
		pageCrossed = base&0xFF00 != addr&0xFF00
		if pageCrossed {
			c.read((base & 0xFF00) | (addr & 0xFF))
		}
		return addr, pageCrossed

	case AddrAbsoluteY:
		base := c.read16(c.PC)
		c.PC += 2
		addr = base + uint16(c.Y)
		pageCrossed = base&0xFF00 != addr&0xFF00
		if pageCrossed {
			c.read((base & 0xFF00) | (addr & 0xFF))
		}
		return addr, pageCrossed

	case AddrIndirect: // JMP only; reproduces the page-wrap fetch bug
		ptr := c.read16(c.PC)
		c.PC += 2
		if ptr&0xFF == 0xFF {
			lo := c.read(ptr)
			hi := c.read(ptr & 0xFF00)
			return uint16(hi)<<8 | uint16(lo), false
		}
		return c.read16(ptr), false

	case AddrIndexedIndirect:
		zp := c.read(c.PC)
		c.PC++
		ptr := uint16(zp+c.X) & 0xFF
		lo := c.read(ptr)
		hi := c.read((ptr + 1) & 0xFF)
		return uint16(hi)<<8 | uint16(lo), false

	case AddrIndirectIndexed:
		zp := c.read(c.PC)
		c.PC++
		lo := c.read(uint16(zp))
		hi := c.read(uint16(zp+1) & 0xFF)
		base := uint16(hi)<<8 | uint16(lo)
		addr = base + uint16(c.Y)
		pageCrossed = base&0xFF00 != addr&0xFF00
		if pageCrossed {
			c.read((base & 0xFF00) | (addr & 0xFF))
		}
		return addr, pageCrossed
	}
	return 0, false
}

// load reads the operand's value, dispatching the accumulator specially
// since it has no memory address.
func (c *CPU) load(mode AddressingMode, addr uint16) uint8 {
	if mode == AddrAccumulator {
		return c.A
	}
	return c.read(addr)
}

// store writes a result back to the accumulator or to memory.
func (c *CPU) store(mode AddressingMode, addr uint16, value uint8) {
	if mode == AddrAccumulator {
		c.A = value
		return
	}
	c.write(addr, value)
}

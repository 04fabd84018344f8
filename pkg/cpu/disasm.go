package cpu

import "fmt"

func addrModeLength(mode AddressingMode) int {
	switch mode {
	case AddrImplied, AddrAccumulator:
		return 1
	case AddrImmediate, AddrZeroPage, AddrZeroPageX, AddrZeroPageY,
		AddrRelative, AddrIndexedIndirect, AddrIndirectIndexed:
		return 2
	default:
		return 3
	}
}

// Instruction is one disassembled opcode, exported for the debugger's
// disassemble command.
type Instruction struct {
	Address uint16
	Opcode  uint8
	Bytes   []uint8
	Text    string
}

// Disassemble decodes n instructions starting at addr using peek (a
// side-effect-free byte reader), without touching any live CPU state.
func Disassemble(peek func(uint16) uint8, addr uint16, n int) []Instruction {
	out := make([]Instruction, 0, n)
	for i := 0; i < n; i++ {
		opcode := peek(addr)
		entry := opcodeTable[opcode]
		length := addrModeLength(entry.mode)

		raw := make([]uint8, length)
		for b := 0; b < length; b++ {
			raw[b] = peek(addr + uint16(b))
		}

		out = append(out, Instruction{
			Address: addr,
			Opcode:  opcode,
			Bytes:   raw,
			Text:    formatInstruction(entry.name, entry.mode, raw),
		})
		addr += uint16(length)
	}
	return out
}

func formatInstruction(name string, mode AddressingMode, raw []uint8) string {
	switch mode {
	case AddrImplied:
		return name
	case AddrAccumulator:
		return name + " A"
	case AddrImmediate:
		return fmt.Sprintf("%s #$%02X", name, raw[1])
	case AddrZeroPage:
		return fmt.Sprintf("%s $%02X", name, raw[1])
	case AddrZeroPageX:
		return fmt.Sprintf("%s $%02X,X", name, raw[1])
	case AddrZeroPageY:
		return fmt.Sprintf("%s $%02X,Y", name, raw[1])
	case AddrRelative:
		return fmt.Sprintf("%s $%02X", name, raw[1])
	case AddrAbsolute:
		return fmt.Sprintf("%s $%02X%02X", name, raw[2], raw[1])
	case AddrAbsoluteX:
		return fmt.Sprintf("%s $%02X%02X,X", name, raw[2], raw[1])
	case AddrAbsoluteY:
		return fmt.Sprintf("%s $%02X%02X,Y", name, raw[2], raw[1])
	case AddrIndirect:
		return fmt.Sprintf("%s ($%02X%02X)", name, raw[2], raw[1])
	case AddrIndexedIndirect:
		return fmt.Sprintf("%s ($%02X,X)", name, raw[1])
	case AddrIndirectIndexed:
		return fmt.Sprintf("%s ($%02X),Y", name, raw[1])
	default:
		return name
	}
}

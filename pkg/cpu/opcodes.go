package cpu

// opFunc performs an instruction's effect given its resolved addressing
// mode and operand address (meaningless for AddrImplied/AddrAccumulator).
// It returns any extra cycles the instruction itself adds on top of the
// table's base count (a taken branch, for instance).
type opFunc func(c *CPU, mode AddressingMode, addr uint16) int

type opEntry struct {
	name string
	mode AddressingMode
	// cycles is the instruction's cycle count with no page boundary
	// crossed; RMW and store instructions already bake their worst case
	// in here and never add a page-cross cycle.
	cycles         int
	pageCrossCycle bool
	fn             opFunc
}

// opcodeTable is indexed directly by opcode byte. Cycle counts follow the
// standard NMOS 6502 timing table; unofficial opcodes share the timing of
// the official instruction they're built from (e.g. SLO = ASL+ORA timing).
var opcodeTable = [256]opEntry{
	0x00: {"BRK", AddrImplied, 7, false, opBRK},
	0x01: {"ORA", AddrIndexedIndirect, 6, false, opORA},
	0x02: {"JAM", AddrImplied, 2, false, opJAM},
	0x03: {"SLO", AddrIndexedIndirect, 8, false, opSLO},
	0x04: {"NOP", AddrZeroPage, 3, false, opNOP},
	0x05: {"ORA", AddrZeroPage, 3, false, opORA},
	0x06: {"ASL", AddrZeroPage, 5, false, opASL},
	0x07: {"SLO", AddrZeroPage, 5, false, opSLO},
	0x08: {"PHP", AddrImplied, 3, false, opPHP},
	0x09: {"ORA", AddrImmediate, 2, false, opORA},
	0x0A: {"ASL", AddrAccumulator, 2, false, opASL},
	0x0B: {"ANC", AddrImmediate, 2, false, opANC},
	0x0C: {"NOP", AddrAbsolute, 4, false, opNOP},
	0x0D: {"ORA", AddrAbsolute, 4, false, opORA},
	0x0E: {"ASL", AddrAbsolute, 6, false, opASL},
	0x0F: {"SLO", AddrAbsolute, 6, false, opSLO},

	0x10: {"BPL", AddrRelative, 2, false, opBranch(FlagNegative, false)},
	0x11: {"ORA", AddrIndirectIndexed, 5, true, opORA},
	0x12: {"JAM", AddrImplied, 2, false, opJAM},
	0x13: {"SLO", AddrIndirectIndexed, 8, false, opSLO},
	0x14: {"NOP", AddrZeroPageX, 4, false, opNOP},
	0x15: {"ORA", AddrZeroPageX, 4, false, opORA},
	0x16: {"ASL", AddrZeroPageX, 6, false, opASL},
	0x17: {"SLO", AddrZeroPageX, 6, false, opSLO},
	0x18: {"CLC", AddrImplied, 2, false, opCLC},
	0x19: {"ORA", AddrAbsoluteY, 4, true, opORA},
	0x1A: {"NOP", AddrImplied, 2, false, opNOP},
	0x1B: {"SLO", AddrAbsoluteY, 7, false, opSLO},
	0x1C: {"NOP", AddrAbsoluteX, 4, true, opNOP},
	0x1D: {"ORA", AddrAbsoluteX, 4, true, opORA},
	0x1E: {"ASL", AddrAbsoluteX, 7, false, opASL},
	0x1F: {"SLO", AddrAbsoluteX, 7, false, opSLO},

	0x20: {"JSR", AddrAbsolute, 6, false, opJSR},
	0x21: {"AND", AddrIndexedIndirect, 6, false, opAND},
	0x22: {"JAM", AddrImplied, 2, false, opJAM},
	0x23: {"RLA", AddrIndexedIndirect, 8, false, opRLA},
	0x24: {"BIT", AddrZeroPage, 3, false, opBIT},
	0x25: {"AND", AddrZeroPage, 3, false, opAND},
	0x26: {"ROL", AddrZeroPage, 5, false, opROL},
	0x27: {"RLA", AddrZeroPage, 5, false, opRLA},
	0x28: {"PLP", AddrImplied, 4, false, opPLP},
	0x29: {"AND", AddrImmediate, 2, false, opAND},
	0x2A: {"ROL", AddrAccumulator, 2, false, opROL},
	0x2B: {"ANC", AddrImmediate, 2, false, opANC},
	0x2C: {"BIT", AddrAbsolute, 4, false, opBIT},
	0x2D: {"AND", AddrAbsolute, 4, false, opAND},
	0x2E: {"ROL", AddrAbsolute, 6, false, opROL},
	0x2F: {"RLA", AddrAbsolute, 6, false, opRLA},

	0x30: {"BMI", AddrRelative, 2, false, opBranch(FlagNegative, true)},
	0x31: {"AND", AddrIndirectIndexed, 5, true, opAND},
	0x32: {"JAM", AddrImplied, 2, false, opJAM},
	0x33: {"RLA", AddrIndirectIndexed, 8, false, opRLA},
	0x34: {"NOP", AddrZeroPageX, 4, false, opNOP},
	0x35: {"AND", AddrZeroPageX, 4, false, opAND},
	0x36: {"ROL", AddrZeroPageX, 6, false, opROL},
	0x37: {"RLA", AddrZeroPageX, 6, false, opRLA},
	0x38: {"SEC", AddrImplied, 2, false, opSEC},
	0x39: {"AND", AddrAbsoluteY, 4, true, opAND},
	0x3A: {"NOP", AddrImplied, 2, false, opNOP},
	0x3B: {"RLA", AddrAbsoluteY, 7, false, opRLA},
	0x3C: {"NOP", AddrAbsoluteX, 4, true, opNOP},
	0x3D: {"AND", AddrAbsoluteX, 4, true, opAND},
	0x3E: {"ROL", AddrAbsoluteX, 7, false, opROL},
	0x3F: {"RLA", AddrAbsoluteX, 7, false, opRLA},

	0x40: {"RTI", AddrImplied, 6, false, opRTI},
	0x41: {"EOR", AddrIndexedIndirect, 6, false, opEOR},
	0x42: {"JAM", AddrImplied, 2, false, opJAM},
	0x43: {"SRE", AddrIndexedIndirect, 8, false, opSRE},
	0x44: {"NOP", AddrZeroPage, 3, false, opNOP},
	0x45: {"EOR", AddrZeroPage, 3, false, opEOR},
	0x46: {"LSR", AddrZeroPage, 5, false, opLSR},
	0x47: {"SRE", AddrZeroPage, 5, false, opSRE},
	0x48: {"PHA", AddrImplied, 3, false, opPHA},
	0x49: {"EOR", AddrImmediate, 2, false, opEOR},
	0x4A: {"LSR", AddrAccumulator, 2, false, opLSR},
	0x4B: {"ALR", AddrImmediate, 2, false, opALR},
	0x4C: {"JMP", AddrAbsolute, 3, false, opJMP},
	0x4D: {"EOR", AddrAbsolute, 4, false, opEOR},
	0x4E: {"LSR", AddrAbsolute, 6, false, opLSR},
	0x4F: {"SRE", AddrAbsolute, 6, false, opSRE},

	0x50: {"BVC", AddrRelative, 2, false, opBranch(FlagOverflow, false)},
	0x51: {"EOR", AddrIndirectIndexed, 5, true, opEOR},
	0x52: {"JAM", AddrImplied, 2, false, opJAM},
	0x53: {"SRE", AddrIndirectIndexed, 8, false, opSRE},
	0x54: {"NOP", AddrZeroPageX, 4, false, opNOP},
	0x55: {"EOR", AddrZeroPageX, 4, false, opEOR},
	0x56: {"LSR", AddrZeroPageX, 6, false, opLSR},
	0x57: {"SRE", AddrZeroPageX, 6, false, opSRE},
	0x58: {"CLI", AddrImplied, 2, false, opCLI},
	0x59: {"EOR", AddrAbsoluteY, 4, true, opEOR},
	0x5A: {"NOP", AddrImplied, 2, false, opNOP},
	0x5B: {"SRE", AddrAbsoluteY, 7, false, opSRE},
	0x5C: {"NOP", AddrAbsoluteX, 4, true, opNOP},
	0x5D: {"EOR", AddrAbsoluteX, 4, true, opEOR},
	0x5E: {"LSR", AddrAbsoluteX, 7, false, opLSR},
	0x5F: {"SRE", AddrAbsoluteX, 7, false, opSRE},

	0x60: {"RTS", AddrImplied, 6, false, opRTS},
	0x61: {"ADC", AddrIndexedIndirect, 6, false, opADC},
	0x62: {"JAM", AddrImplied, 2, false, opJAM},
	0x63: {"RRA", AddrIndexedIndirect, 8, false, opRRA},
	0x64: {"NOP", AddrZeroPage, 3, false, opNOP},
	0x65: {"ADC", AddrZeroPage, 3, false, opADC},
	0x66: {"ROR", AddrZeroPage, 5, false, opROR},
	0x67: {"RRA", AddrZeroPage, 5, false, opRRA},
	0x68: {"PLA", AddrImplied, 4, false, opPLA},
	0x69: {"ADC", AddrImmediate, 2, false, opADC},
	0x6A: {"ROR", AddrAccumulator, 2, false, opROR},
	0x6B: {"ARR", AddrImmediate, 2, false, opARR},
	0x6C: {"JMP", AddrIndirect, 5, false, opJMP},
	0x6D: {"ADC", AddrAbsolute, 4, false, opADC},
	0x6E: {"ROR", AddrAbsolute, 6, false, opROR},
	0x6F: {"RRA", AddrAbsolute, 6, false, opRRA},

	0x70: {"BVS", AddrRelative, 2, false, opBranch(FlagOverflow, true)},
	0x71: {"ADC", AddrIndirectIndexed, 5, true, opADC},
	0x72: {"JAM", AddrImplied, 2, false, opJAM},
	0x73: {"RRA", AddrIndirectIndexed, 8, false, opRRA},
	0x74: {"NOP", AddrZeroPageX, 4, false, opNOP},
	0x75: {"ADC", AddrZeroPageX, 4, false, opADC},
	0x76: {"ROR", AddrZeroPageX, 6, false, opROR},
	0x77: {"RRA", AddrZeroPageX, 6, false, opRRA},
	0x78: {"SEI", AddrImplied, 2, false, opSEI},
	0x79: {"ADC", AddrAbsoluteY, 4, true, opADC},
	0x7A: {"NOP", AddrImplied, 2, false, opNOP},
	0x7B: {"RRA", AddrAbsoluteY, 7, false, opRRA},
	0x7C: {"NOP", AddrAbsoluteX, 4, true, opNOP},
	0x7D: {"ADC", AddrAbsoluteX, 4, true, opADC},
	0x7E: {"ROR", AddrAbsoluteX, 7, false, opROR},
	0x7F: {"RRA", AddrAbsoluteX, 7, false, opRRA},

	0x80: {"NOP", AddrImmediate, 2, false, opNOP},
	0x81: {"STA", AddrIndexedIndirect, 6, false, opSTA},
	0x82: {"NOP", AddrImmediate, 2, false, opNOP},
	0x83: {"SAX", AddrIndexedIndirect, 6, false, opSAX},
	0x84: {"STY", AddrZeroPage, 3, false, opSTY},
	0x85: {"STA", AddrZeroPage, 3, false, opSTA},
	0x86: {"STX", AddrZeroPage, 3, false, opSTX},
	0x87: {"SAX", AddrZeroPage, 3, false, opSAX},
	0x88: {"DEY", AddrImplied, 2, false, opDEY},
	0x89: {"NOP", AddrImmediate, 2, false, opNOP},
	0x8A: {"TXA", AddrImplied, 2, false, opTXA},
	0x8B: {"XAA", AddrImmediate, 2, false, opXAA},
	0x8C: {"STY", AddrAbsolute, 4, false, opSTY},
	0x8D: {"STA", AddrAbsolute, 4, false, opSTA},
	0x8E: {"STX", AddrAbsolute, 4, false, opSTX},
	0x8F: {"SAX", AddrAbsolute, 4, false, opSAX},

	0x90: {"BCC", AddrRelative, 2, false, opBranch(FlagCarry, false)},
	0x91: {"STA", AddrIndirectIndexed, 6, false, opSTA},
	0x92: {"JAM", AddrImplied, 2, false, opJAM},
	0x93: {"AHX", AddrIndirectIndexed, 6, false, opAHX},
	0x94: {"STY", AddrZeroPageX, 4, false, opSTY},
	0x95: {"STA", AddrZeroPageX, 4, false, opSTA},
	0x96: {"STX", AddrZeroPageY, 4, false, opSTX},
	0x97: {"SAX", AddrZeroPageY, 4, false, opSAX},
	0x98: {"TYA", AddrImplied, 2, false, opTYA},
	0x99: {"STA", AddrAbsoluteY, 5, false, opSTA},
	0x9A: {"TXS", AddrImplied, 2, false, opTXS},
	0x9B: {"TAS", AddrAbsoluteY, 5, false, opTAS},
	0x9C: {"SHY", AddrAbsoluteX, 5, false, opSHY},
	0x9D: {"STA", AddrAbsoluteX, 5, false, opSTA},
	0x9E: {"SHX", AddrAbsoluteY, 5, false, opSHX},
	0x9F: {"AHX", AddrAbsoluteY, 5, false, opAHX},

	0xA0: {"LDY", AddrImmediate, 2, false, opLDY},
	0xA1: {"LDA", AddrIndexedIndirect, 6, false, opLDA},
	0xA2: {"LDX", AddrImmediate, 2, false, opLDX},
	0xA3: {"LAX", AddrIndexedIndirect, 6, false, opLAX},
	0xA4: {"LDY", AddrZeroPage, 3, false, opLDY},
	0xA5: {"LDA", AddrZeroPage, 3, false, opLDA},
	0xA6: {"LDX", AddrZeroPage, 3, false, opLDX},
	0xA7: {"LAX", AddrZeroPage, 3, false, opLAX},
	0xA8: {"TAY", AddrImplied, 2, false, opTAY},
	0xA9: {"LDA", AddrImmediate, 2, false, opLDA},
	0xAA: {"TAX", AddrImplied, 2, false, opTAX},
	0xAB: {"LAX", AddrImmediate, 2, false, opLAX},
	0xAC: {"LDY", AddrAbsolute, 4, false, opLDY},
	0xAD: {"LDA", AddrAbsolute, 4, false, opLDA},
	0xAE: {"LDX", AddrAbsolute, 4, false, opLDX},
	0xAF: {"LAX", AddrAbsolute, 4, false, opLAX},

	0xB0: {"BCS", AddrRelative, 2, false, opBranch(FlagCarry, true)},
	0xB1: {"LDA", AddrIndirectIndexed, 5, true, opLDA},
	0xB2: {"JAM", AddrImplied, 2, false, opJAM},
	0xB3: {"LAX", AddrIndirectIndexed, 5, true, opLAX},
	0xB4: {"LDY", AddrZeroPageX, 4, false, opLDY},
	0xB5: {"LDA", AddrZeroPageX, 4, false, opLDA},
	0xB6: {"LDX", AddrZeroPageY, 4, false, opLDX},
	0xB7: {"LAX", AddrZeroPageY, 4, false, opLAX},
	0xB8: {"CLV", AddrImplied, 2, false, opCLV},
	0xB9: {"LDA", AddrAbsoluteY, 4, true, opLDA},
	0xBA: {"TSX", AddrImplied, 2, false, opTSX},
	0xBB: {"LAS", AddrAbsoluteY, 4, true, opLAS},
	0xBC: {"LDY", AddrAbsoluteX, 4, true, opLDY},
	0xBD: {"LDA", AddrAbsoluteX, 4, true, opLDA},
	0xBE: {"LDX", AddrAbsoluteY, 4, true, opLDX},
	0xBF: {"LAX", AddrAbsoluteY, 4, true, opLAX},

	0xC0: {"CPY", AddrImmediate, 2, false, opCPY},
	0xC1: {"CMP", AddrIndexedIndirect, 6, false, opCMP},
	0xC2: {"NOP", AddrImmediate, 2, false, opNOP},
	0xC3: {"DCP", AddrIndexedIndirect, 8, false, opDCP},
	0xC4: {"CPY", AddrZeroPage, 3, false, opCPY},
	0xC5: {"CMP", AddrZeroPage, 3, false, opCMP},
	0xC6: {"DEC", AddrZeroPage, 5, false, opDEC},
	0xC7: {"DCP", AddrZeroPage, 5, false, opDCP},
	0xC8: {"INY", AddrImplied, 2, false, opINY},
	0xC9: {"CMP", AddrImmediate, 2, false, opCMP},
	0xCA: {"DEX", AddrImplied, 2, false, opDEX},
	0xCB: {"AXS", AddrImmediate, 2, false, opAXS},
	0xCC: {"CPY", AddrAbsolute, 4, false, opCPY},
	0xCD: {"CMP", AddrAbsolute, 4, false, opCMP},
	0xCE: {"DEC", AddrAbsolute, 6, false, opDEC},
	0xCF: {"DCP", AddrAbsolute, 6, false, opDCP},

	0xD0: {"BNE", AddrRelative, 2, false, opBranch(FlagZero, false)},
	0xD1: {"CMP", AddrIndirectIndexed, 5, true, opCMP},
	0xD2: {"JAM", AddrImplied, 2, false, opJAM},
	0xD3: {"DCP", AddrIndirectIndexed, 8, false, opDCP},
	0xD4: {"NOP", AddrZeroPageX, 4, false, opNOP},
	0xD5: {"CMP", AddrZeroPageX, 4, false, opCMP},
	0xD6: {"DEC", AddrZeroPageX, 6, false, opDEC},
	0xD7: {"DCP", AddrZeroPageX, 6, false, opDCP},
	0xD8: {"CLD", AddrImplied, 2, false, opCLD},
	0xD9: {"CMP", AddrAbsoluteY, 4, true, opCMP},
	0xDA: {"NOP", AddrImplied, 2, false, opNOP},
	0xDB: {"DCP", AddrAbsoluteY, 7, false, opDCP},
	0xDC: {"NOP", AddrAbsoluteX, 4, true, opNOP},
	0xDD: {"CMP", AddrAbsoluteX, 4, true, opCMP},
	0xDE: {"DEC", AddrAbsoluteX, 7, false, opDEC},
	0xDF: {"DCP", AddrAbsoluteX, 7, false, opDCP},

	0xE0: {"CPX", AddrImmediate, 2, false, opCPX},
	0xE1: {"SBC", AddrIndexedIndirect, 6, false, opSBC},
	0xE2: {"NOP", AddrImmediate, 2, false, opNOP},
	0xE3: {"ISC", AddrIndexedIndirect, 8, false, opISC},
	0xE4: {"CPX", AddrZeroPage, 3, false, opCPX},
	0xE5: {"SBC", AddrZeroPage, 3, false, opSBC},
	0xE6: {"INC", AddrZeroPage, 5, false, opINC},
	0xE7: {"ISC", AddrZeroPage, 5, false, opISC},
	0xE8: {"INX", AddrImplied, 2, false, opINX},
	0xE9: {"SBC", AddrImmediate, 2, false, opSBC},
	0xEA: {"NOP", AddrImplied, 2, false, opNOP},
	0xEB: {"SBC", AddrImmediate, 2, false, opSBC},
	0xEC: {"CPX", AddrAbsolute, 4, false, opCPX},
	0xED: {"SBC", AddrAbsolute, 4, false, opSBC},
	0xEE: {"INC", AddrAbsolute, 6, false, opINC},
	0xEF: {"ISC", AddrAbsolute, 6, false, opISC},

	0xF0: {"BEQ", AddrRelative, 2, false, opBranch(FlagZero, true)},
	0xF1: {"SBC", AddrIndirectIndexed, 5, true, opSBC},
	0xF2: {"JAM", AddrImplied, 2, false, opJAM},
	0xF3: {"ISC", AddrIndirectIndexed, 8, false, opISC},
	0xF4: {"NOP", AddrZeroPageX, 4, false, opNOP},
	0xF5: {"SBC", AddrZeroPageX, 4, false, opSBC},
	0xF6: {"INC", AddrZeroPageX, 6, false, opINC},
	0xF7: {"ISC", AddrZeroPageX, 6, false, opISC},
	0xF8: {"SED", AddrImplied, 2, false, opSED},
	0xF9: {"SBC", AddrAbsoluteY, 4, true, opSBC},
	0xFA: {"NOP", AddrImplied, 2, false, opNOP},
	0xFB: {"ISC", AddrAbsoluteY, 7, false, opISC},
	0xFC: {"NOP", AddrAbsoluteX, 4, true, opNOP},
	0xFD: {"SBC", AddrAbsoluteX, 4, true, opSBC},
	0xFE: {"INC", AddrAbsoluteX, 7, false, opINC},
	0xFF: {"ISC", AddrAbsoluteX, 7, false, opISC},
}

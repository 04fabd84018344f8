// Package memory implements the CPU-side memory bus (the "Interconnect"):
// it multiplexes reads and writes across internal RAM, the PPU and APU
// register windows, the controller ports, and the cartridge mapper.
package memory

import "github.com/kjhart/nescore/pkg/logger"

// PPUPort is the subset of the PPU's register-map contract the bus needs.
type PPUPort interface {
	ReadRegister(addr uint16) uint8
	WriteRegister(addr uint16, value uint8)
}

// APUPort is the subset of the APU's register-map contract the bus needs.
type APUPort interface {
	ReadRegister(addr uint16) uint8
	WriteRegister(addr uint16, value uint8)
}

// CartridgePort is the mapper-facing surface the bus routes $4020-$FFFF to.
type CartridgePort interface {
	ReadPRG(addr uint16) uint8
	WritePRG(addr uint16, value uint8)
}

// ControllerPort is one standard controller's serial shift-register interface.
type ControllerPort interface {
	Read() uint8
	Write(value uint8)
}

// Bus is the CPU's memory map. It owns the 2KB of internal RAM; everything
// else is a reference to the component that actually owns that address
// range, following the cyclic-ownership break described in the design
// notes: the bus (not the CPU) holds the mapper, PPU, APU, and controllers,
// so interrupt lines are polled from here rather than pushed into the CPU.
type Bus struct {
	RAM [2048]uint8

	PPU       PPUPort
	APU       APUPort
	Cartridge CartridgePort
	Pad1      ControllerPort
	Pad2      ControllerPort

	// Watchpoints is the debugger-owned set of addresses that, when
	// touched by a load or store, should cause the current CPU step to
	// report a watchpoint hit without stalling execution mid-instruction.
	Watchpoints map[uint16]struct{}
	watchHit    bool

	// dmaStall carries extra CPU cycles consumed by an OAM DMA transfer
	// until the CPU.Step call that issued the $4014 write collects them.
	dmaStall int
	oddCycle func() bool
}

// New creates an empty bus. Components are wired in afterward via the
// Set* methods so construction order in the owning Machine stays simple.
func New() *Bus {
	return &Bus{Watchpoints: make(map[uint16]struct{})}
}

func (b *Bus) SetPPU(p PPUPort)             { b.PPU = p }
func (b *Bus) SetAPU(a APUPort)             { b.APU = a }
func (b *Bus) SetCartridge(c CartridgePort) { b.Cartridge = c }
func (b *Bus) SetControllers(p1, p2 ControllerPort) {
	b.Pad1 = p1
	b.Pad2 = p2
}

// SetOddCycleFunc lets the machine report whether the current CPU cycle
// count is odd, which determines whether an OAM DMA stalls 513 or 514
// cycles.
func (b *Bus) SetOddCycleFunc(f func() bool) { b.oddCycle = f }

// TakeDMAStall returns and clears any CPU cycles an OAM DMA transfer owes
// the CPU. The CPU adds this to the cycle count of the step that issued
// the $4014 write.
func (b *Bus) TakeDMAStall() int {
	s := b.dmaStall
	b.dmaStall = 0
	return s
}

// TakeWatchpointHit reports and clears whether a read/write this
// instruction touched a watched address.
func (b *Bus) TakeWatchpointHit() bool {
	hit := b.watchHit
	b.watchHit = false
	return hit
}

func (b *Bus) checkWatch(addr uint16) {
	if _, ok := b.Watchpoints[addr]; ok {
		b.watchHit = true
	}
}

// Read performs a CPU memory read, including the debugger's watchpoint
// bookkeeping. PPU register and controller reads may have side effects
// defined by those components (vblank-clear-on-$2002, shift-out-on-$4016).
func (b *Bus) Read(addr uint16) uint8 {
	b.checkWatch(addr)
	return b.read(addr)
}

func (b *Bus) read(addr uint16) uint8 {
	switch {
	case addr < 0x2000:
		return b.RAM[addr&0x07FF]
	case addr < 0x4000:
		if b.PPU != nil {
			return b.PPU.ReadRegister(0x2000 + (addr & 0x0007))
		}
	case addr == 0x4016:
		if b.Pad1 != nil {
			return b.Pad1.Read()
		}
	case addr == 0x4017:
		if b.Pad2 != nil {
			return b.Pad2.Read()
		}
	case addr < 0x4020:
		if b.APU != nil {
			return b.APU.ReadRegister(addr)
		}
	default:
		if b.Cartridge != nil {
			return b.Cartridge.ReadPRG(addr)
		}
	}
	return 0
}

// ReadSideEffectFree is the debugger's peek: it never mutates the machine
// (no vblank-clear, no controller shift, no watchpoint bookkeeping).
func (b *Bus) ReadSideEffectFree(addr uint16) uint8 {
	switch {
	case addr < 0x2000:
		return b.RAM[addr&0x07FF]
	case addr < 0x4020:
		return 0 // register reads are inherently side-effecting; debugger shows last latched value as 0 rather than trigger one
	default:
		if b.Cartridge != nil {
			return b.Cartridge.ReadPRG(addr)
		}
	}
	return 0
}

// Write performs a CPU memory write.
func (b *Bus) Write(addr uint16, value uint8) {
	b.checkWatch(addr)
	switch {
	case addr < 0x2000:
		b.RAM[addr&0x07FF] = value
	case addr < 0x4000:
		if b.PPU != nil {
			b.PPU.WriteRegister(0x2000+(addr&0x0007), value)
		}
	case addr == 0x4014:
		b.dmaOAM(value)
	case addr == 0x4016:
		if b.Pad1 != nil {
			b.Pad1.Write(value)
		}
		if b.Pad2 != nil {
			b.Pad2.Write(value)
		}
	case addr < 0x4020:
		if b.APU != nil {
			b.APU.WriteRegister(addr, value)
		}
	default:
		if b.Cartridge != nil {
			b.Cartridge.WritePRG(addr, value)
		}
	}
}

// ReadWord performs a little-endian 16-bit read.
func (b *Bus) ReadWord(addr uint16) uint16 {
	lo := uint16(b.Read(addr))
	hi := uint16(b.Read(addr + 1))
	return hi<<8 | lo
}

// dmaOAM copies 256 bytes starting at page<<8 into PPU OAM via repeated
// writes to $2004, and stalls the CPU 513 cycles (514 if the transfer
// starts on an odd CPU cycle).
func (b *Bus) dmaOAM(page uint8) {
	base := uint16(page) << 8
	for i := 0; i < 256; i++ {
		v := b.read(base + uint16(i))
		if b.PPU != nil {
			b.PPU.WriteRegister(0x2004, v)
		}
	}
	stall := 513
	if b.oddCycle != nil && b.oddCycle() {
		stall = 514
	}
	b.dmaStall += stall
	logger.LogMapper("OAM DMA from page $%02X, stall=%d", page, stall)
}

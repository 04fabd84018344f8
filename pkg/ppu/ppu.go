// Package ppu implements the Picture Processing Unit's register-map
// contract: CPU-visible register reads/writes, NTSC scanline/dot timing,
// vblank/NMI generation, and a per-frame video sink. The pixel pipeline
// itself (tile/sprite compositing) is a peer concern the spec leaves
// unspecified beyond this contract, so frames are emitted as a flat
// palette-index buffer rather than rendered pixel art.
package ppu

import "github.com/kjhart/nescore/pkg/logger"

const (
	FrameWidth  = 256
	FrameHeight = 240
	frameSize   = FrameWidth * FrameHeight

	cyclesPerScanline = 341
	scanlinesPerFrame = 262
	vblankScanline    = 241
	preRenderScanline = 261
)

// Cartridge is the mapper-facing surface the PPU needs for CHR reads/writes
// and nametable mirroring resolution.
type Cartridge interface {
	ReadCHR(addr uint16) uint8
	WriteCHR(addr uint16, value uint8)
	MirrorNametable(addr uint16) uint16
}

// FrameSink receives one complete frame (256x240, 6-bit palette indices)
// per PPU frame (~60Hz NTSC). Append must be safe to call from the
// emulator's single driving thread; the core makes no promise beyond that.
type FrameSink interface {
	Append(frame *[frameSize]uint8)
}

// PPU holds the register state, timing counters, and owned memories
// (nametable VRAM, palette RAM, OAM) for the PPU contract.
type PPU struct {
	ctrl   uint8 // $2000
	mask   uint8 // $2001
	status uint8 // $2002 (top 3 bits only: vblank, sprite0, overflow)
	oamAddr uint8

	v, t uint16 // VRAM address / temporary VRAM address (loopy registers)
	x    uint8  // fine X scroll
	w    uint8  // write toggle

	VRAM    [2048]uint8
	Palette [32]uint8
	OAM     [256]uint8

	readBuffer uint8

	Cycle, Scanline int
	Frame            uint64
	FrameComplete    bool

	nmiOccurred bool // vblank flag, mirrors status bit 7
	nmiOutput   bool // PPUCTRL bit 7
	// NMIRequested edges true exactly once per vblank entry while nmiOutput
	// is set; the machine polls and clears it each step.
	NMIRequested bool

	Cartridge Cartridge
	Sink      FrameSink

	frameBuf [frameSize]uint8
}

func New(cart Cartridge, sink FrameSink) *PPU {
	return &PPU{Cartridge: cart, Sink: sink, Scanline: preRenderScanline}
}

func (p *PPU) SetCartridge(cart Cartridge) { p.Cartridge = cart }

// Reset matches power-on/reset behavior: registers clear, rendering starts
// on the pre-render line so the first frame's vblank timing lines up.
func (p *PPU) Reset() {
	p.ctrl, p.mask, p.status = 0, 0, 0
	p.oamAddr = 0
	p.v, p.t, p.x, p.w = 0, 0, 0, 0
	p.Cycle, p.Scanline = 0, preRenderScanline
	p.Frame = 0
	p.FrameComplete = false
	p.nmiOccurred, p.nmiOutput, p.NMIRequested = false, false, false
}

// ReadRegister implements the CPU-visible $2000-$2007 window (already
// mirrored to that range by the bus).
func (p *PPU) ReadRegister(addr uint16) uint8 {
	switch addr {
	case 0x2002:
		v := p.status
		p.status &^= 0x80
		p.w = 0
		return v
	case 0x2004:
		return p.OAM[p.oamAddr]
	case 0x2007:
		return p.readPPUDATA()
	default:
		return 0
	}
}

// WriteRegister implements the CPU-visible $2000-$2007 window.
func (p *PPU) WriteRegister(addr uint16, value uint8) {
	switch addr {
	case 0x2000:
		wasOutput := p.nmiOutput
		p.ctrl = value
		p.t = (p.t & 0xF3FF) | (uint16(value&0x03) << 10)
		p.nmiOutput = value&0x80 != 0
		if !wasOutput && p.nmiOutput && p.nmiOccurred {
			p.NMIRequested = true
		}
	case 0x2001:
		p.mask = value
	case 0x2003:
		p.oamAddr = value
	case 0x2004:
		p.OAM[p.oamAddr] = value
		p.oamAddr++
	case 0x2005:
		if p.w == 0 {
			p.t = (p.t & 0xFFE0) | uint16(value>>3)
			p.x = value & 0x07
			p.w = 1
		} else {
			p.t = (p.t & 0x8FFF) | (uint16(value&0x07) << 12)
			p.t = (p.t & 0xFC1F) | (uint16(value&0xF8) << 2)
			p.w = 0
		}
	case 0x2006:
		if p.w == 0 {
			p.t = (p.t & 0x00FF) | (uint16(value&0x3F) << 8)
			p.w = 1
		} else {
			p.t = (p.t & 0xFF00) | uint16(value)
			p.v = p.t
			p.w = 0
		}
	case 0x2007:
		p.writePPUDATA(value)
	}
}

func (p *PPU) vramIncrement() uint16 {
	if p.ctrl&0x04 != 0 {
		return 32
	}
	return 1
}

func (p *PPU) readPPUDATA() uint8 {
	addr := p.v & 0x3FFF
	var value uint8
	if addr >= 0x3F00 {
		value = p.readPalette(addr)
		p.readBuffer = p.readVRAMOrCHR(addr - 0x1000)
	} else {
		value = p.readBuffer
		p.readBuffer = p.readVRAMOrCHR(addr)
	}
	p.v += p.vramIncrement()
	return value
}

func (p *PPU) writePPUDATA(value uint8) {
	addr := p.v & 0x3FFF
	switch {
	case addr < 0x2000:
		if p.Cartridge != nil {
			p.Cartridge.WriteCHR(addr, value)
		}
	case addr < 0x3F00:
		p.VRAM[p.nametableIndex(addr)] = value
	default:
		p.writePalette(addr, value)
	}
	p.v += p.vramIncrement()
}

func (p *PPU) readVRAMOrCHR(addr uint16) uint8 {
	addr &= 0x3FFF
	switch {
	case addr < 0x2000:
		if p.Cartridge != nil {
			return p.Cartridge.ReadCHR(addr)
		}
		return 0
	case addr < 0x3F00:
		return p.VRAM[p.nametableIndex(addr)]
	default:
		return p.readPalette(addr)
	}
}

func (p *PPU) nametableIndex(addr uint16) uint16 {
	if p.Cartridge != nil {
		return p.Cartridge.MirrorNametable(addr) & 0x07FF
	}
	return (addr - 0x2000) & 0x07FF
}

// paletteIndex applies the mirroring rule for the four sprite-palette
// background-color aliases: $3F10/$3F14/$3F18/$3F1C mirror $3F00/04/08/0C.
func paletteIndex(addr uint16) uint16 {
	idx := (addr - 0x3F00) & 0x1F
	if idx >= 0x10 && idx%4 == 0 {
		idx -= 0x10
	}
	return idx
}

func (p *PPU) readPalette(addr uint16) uint8  { return p.Palette[paletteIndex(addr)] }
func (p *PPU) writePalette(addr uint16, v uint8) { p.Palette[paletteIndex(addr)] = v }

// Tick advances the PPU by n PPU cycles (the machine ticks it three times
// per CPU cycle, since the PPU runs three times the CPU's clock).
func (p *PPU) Tick(n int) {
	for i := 0; i < n; i++ {
		p.tickOne()
	}
}

func (p *PPU) tickOne() {
	if p.Scanline == vblankScanline && p.Cycle == 1 {
		p.status |= 0x80
		p.nmiOccurred = true
		if p.nmiOutput {
			p.NMIRequested = true
		}
		logger.LogPPU("vblank set at frame %d", p.Frame)
	}
	if p.Scanline == preRenderScanline && p.Cycle == 1 {
		p.status &^= 0x80
		p.nmiOccurred = false
	}

	p.Cycle++
	if p.Cycle >= cyclesPerScanline {
		p.Cycle = 0
		p.Scanline++
		if p.Scanline > preRenderScanline {
			p.Scanline = 0
			p.Frame++
			p.FrameComplete = true
			if p.Sink != nil {
				p.Sink.Append(&p.frameBuf)
			}
		}
	}
}

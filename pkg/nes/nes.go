// Package nes composes the CPU, PPU, APU, cartridge and controllers into a
// single runnable Machine and drives their relative clocks.
package nes

import (
	"github.com/kjhart/nescore/pkg/apu"
	"github.com/kjhart/nescore/pkg/cartridge"
	"github.com/kjhart/nescore/pkg/cpu"
	"github.com/kjhart/nescore/pkg/input"
	"github.com/kjhart/nescore/pkg/memory"
	"github.com/kjhart/nescore/pkg/ppu"
)

// Machine is a fully wired console: CPU driving a shared Bus that owns the
// PPU, APU, cartridge mapper and both controller ports.
type Machine struct {
	CPU *cpu.CPU
	PPU *ppu.PPU
	APU *apu.APU
	Bus *memory.Bus

	Cartridge *cartridge.Cartridge
	Pad1      *input.Controller
	Pad2      *input.Controller

	Cycles uint64
}

// New builds a Machine with no cartridge loaded; call LoadCartridge before
// Reset.
func New(videoSink ppu.FrameSink, audioSink apu.SampleSink) *Machine {
	m := &Machine{
		Bus:  memory.New(),
		Pad1: input.New(),
		Pad2: input.New(),
	}
	m.PPU = ppu.New(nil, videoSink)
	m.APU = apu.New(audioSink)
	m.CPU = cpu.New(m.Bus)

	m.Bus.SetPPU(m.PPU)
	m.Bus.SetAPU(m.APU)
	m.Bus.SetControllers(m.Pad1, m.Pad2)
	m.Bus.SetOddCycleFunc(func() bool { return m.Cycles%2 != 0 })

	return m
}

// LoadCartridge wires a parsed cartridge into the bus and PPU.
func (m *Machine) LoadCartridge(cart *cartridge.Cartridge) {
	m.Cartridge = cart
	m.Bus.SetCartridge(cart)
	m.PPU.SetCartridge(cart)
}

// Reset resets every component and zeroes the shared clock.
func (m *Machine) Reset() {
	m.CPU.Reset()
	m.PPU.Reset()
	m.APU.Reset()
	m.Cycles = 0
}

// Step executes exactly one CPU instruction (plus any OAM DMA stall
// latched onto it), ticking the PPU three times and the APU once per CPU
// cycle consumed, and latching interrupt lines from the PPU and mapper
// onto the CPU before the next instruction fetch.
func (m *Machine) Step() int {
	cpuCycles := m.CPU.Step()

	for i := 0; i < cpuCycles*3; i++ {
		m.PPU.Tick(1)
	}
	for i := 0; i < cpuCycles; i++ {
		m.APU.Step()
	}
	m.Cycles += uint64(cpuCycles)

	if m.PPU.NMIRequested {
		m.CPU.SetNMILine(true)
		m.PPU.NMIRequested = false
	} else {
		m.CPU.SetNMILine(false)
	}

	irq := m.APU.IRQPending()
	if m.Cartridge != nil {
		irq = irq || m.Cartridge.IRQPending()
	}
	m.CPU.SetIRQLine(irq)

	return cpuCycles
}

// StepFrame runs until the PPU completes a frame, with a safety bound so a
// degenerate program (or a test fixture with no real PPU timing driving
// it) can't spin forever.
func (m *Machine) StepFrame() {
	const maxSteps = 200000
	steps := 0
	for !m.PPU.FrameComplete && steps < maxSteps {
		m.Step()
		steps++
	}
	m.PPU.FrameComplete = false
}

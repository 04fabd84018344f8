// Package apu implements the Audio Processing Unit's register-map
// contract: the $4000-$4013/$4015/$4017 register window, the frame
// counter's IRQ timing, and a per-sample audio sink. The five channel
// mixers themselves are a peer concern the spec leaves unspecified beyond
// this contract, so samples are emitted as silence at the correct rate
// rather than synthesized waveforms.
package apu

import "github.com/kjhart/nescore/pkg/logger"

// SampleSink receives one stereo sample per APU sample period.
type SampleSink interface {
	Append(frame [2]int16)
}

const (
	// cyclesPerQuarterFrame approximates the NTSC frame-counter's quarter
	// step at ~1.789MHz / 4 steps / 60Hz.
	cyclesPerQuarterFrame = 7457
)

// APU holds the raw register bytes and frame-counter timing needed to
// satisfy the register-map and IRQ-timing contract.
type APU struct {
	regs [0x18]uint8 // $4000-$4017, indexed by addr-0x4000

	frameCounterMode  uint8 // bit 7 of $4017: 0 = 4-step, 1 = 5-step
	frameIRQInhibit   bool  // bit 6 of $4017
	frameIRQAsserted  bool
	frameStep         int
	cyclesSinceStep   int

	Cycles uint64
	Sink   SampleSink
}

func New(sink SampleSink) *APU {
	return &APU{Sink: sink}
}

func (a *APU) Reset() {
	a.regs = [0x18]uint8{}
	a.frameCounterMode = 0
	a.frameIRQInhibit = false
	a.frameIRQAsserted = false
	a.frameStep = 0
	a.cyclesSinceStep = 0
	a.Cycles = 0
}

// ReadRegister implements $4000-$4013/$4015/$4017. Only $4015 has read
// semantics beyond returning the last written byte: its bit 6 reflects (and
// clears) the frame-counter IRQ flag.
func (a *APU) ReadRegister(addr uint16) uint8 {
	if addr == 0x4015 {
		v := a.regs[0x15]
		if a.frameIRQAsserted {
			v |= 0x40
			a.frameIRQAsserted = false
		}
		return v
	}
	if int(addr-0x4000) < len(a.regs) {
		return a.regs[addr-0x4000]
	}
	return 0
}

// WriteRegister implements $4000-$4013/$4015/$4017.
func (a *APU) WriteRegister(addr uint16, value uint8) {
	if int(addr-0x4000) < len(a.regs) {
		a.regs[addr-0x4000] = value
	}
	if addr == 0x4017 {
		a.frameCounterMode = value >> 7
		a.frameIRQInhibit = value&0x40 != 0
		if a.frameIRQInhibit {
			a.frameIRQAsserted = false
		}
		a.cyclesSinceStep = 0
		a.frameStep = 0
		logger.LogAPU("frame counter mode=%d inhibit=%v", a.frameCounterMode, a.frameIRQInhibit)
	}
}

// IRQPending reports whether the frame counter currently asserts IRQ.
func (a *APU) IRQPending() bool { return a.frameIRQAsserted }

// Step advances the APU by one CPU cycle, producing a silent stereo sample
// and advancing the frame-counter's quarter-frame steps.
func (a *APU) Step() {
	a.Cycles++
	a.cyclesSinceStep++
	if a.cyclesSinceStep >= cyclesPerQuarterFrame {
		a.cyclesSinceStep = 0
		a.frameStep++
		steps := 4
		if a.frameCounterMode == 1 {
			steps = 5
		}
		if a.frameStep >= steps {
			a.frameStep = 0
		}
		// The 4-step sequence's last quarter-frame asserts IRQ unless
		// inhibited; the 5-step sequence never does.
		if a.frameCounterMode == 0 && a.frameStep == 0 && !a.frameIRQInhibit {
			a.frameIRQAsserted = true
		}
	}
	if a.Sink != nil {
		a.Sink.Append([2]int16{0, 0})
	}
}

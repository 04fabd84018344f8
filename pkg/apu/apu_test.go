package apu

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type fakeSink struct{ frames [][2]int16 }

func (f *fakeSink) Append(frame [2]int16) { f.frames = append(f.frames, frame) }

func TestAPU_RegisterReadWriteRoundTrips(t *testing.T) {
	a := New(nil)
	a.WriteRegister(0x4000, 0x3F)
	assert.Equal(t, uint8(0x3F), a.ReadRegister(0x4000))
}

func TestAPU_FrameIRQAssertsOnFourStepSequence(t *testing.T) {
	a := New(nil)
	a.WriteRegister(0x4017, 0x00) // 4-step, IRQ enabled

	for i := 0; i < cyclesPerQuarterFrame*4+1; i++ {
		a.Step()
	}

	assert.True(t, a.IRQPending())
}

func TestAPU_FrameIRQInhibitedWhenBitSet(t *testing.T) {
	a := New(nil)
	a.WriteRegister(0x4017, 0x40) // inhibit

	for i := 0; i < cyclesPerQuarterFrame*4+1; i++ {
		a.Step()
	}

	assert.False(t, a.IRQPending())
}

func TestAPU_ReadingStatusClearsFrameIRQ(t *testing.T) {
	a := New(nil)
	a.WriteRegister(0x4017, 0x00)
	for i := 0; i < cyclesPerQuarterFrame*4+1; i++ {
		a.Step()
	}
	require := assert.New(t)
	require.True(a.IRQPending())

	v := a.ReadRegister(0x4015)
	require.Equal(uint8(0x40), v&0x40)
	require.False(a.IRQPending())
}

func TestAPU_SinkReceivesOneSamplePerStep(t *testing.T) {
	sink := &fakeSink{}
	a := New(sink)
	a.Step()
	a.Step()
	assert.Len(t, sink.frames, 2)
}

package nes

import (
	"bytes"
	"testing"

	"github.com/kjhart/nescore/pkg/cartridge"
	"github.com/stretchr/testify/require"
)

type fakeVideoSink struct{ frames int }

func (f *fakeVideoSink) Append(frame *[256 * 240]uint8) { f.frames++ }

type fakeAudioSink struct{ samples int }

func (f *fakeAudioSink) Append(frame [2]int16) { f.samples++ }

func buildNROM(resetLo, resetHi uint8) []byte {
	var buf bytes.Buffer
	buf.WriteString("NES")
	buf.WriteByte(0x1A)
	buf.WriteByte(1)
	buf.WriteByte(1)
	buf.Write(make([]byte, 2))
	buf.Write(make([]byte, 8))
	prg := make([]byte, 16384)
	prg[0x3FFC] = resetLo // $FFFC mirrors into the last bank at +0x3FFC
	prg[0x3FFD] = resetHi
	buf.Write(prg)
	buf.Write(make([]byte, 8192))
	return buf.Bytes()
}

func TestMachine_StepAdvancesClockAndSinks(t *testing.T) {
	video := &fakeVideoSink{}
	audio := &fakeAudioSink{}
	m := New(video, audio)

	rom := buildNROM(0x00, 0x80)
	cart, err := cartridge.Load(bytes.NewReader(rom))
	require.NoError(t, err)
	m.LoadCartridge(cart)
	m.Reset()

	require.Equal(t, uint16(0x8000), m.CPU.PC)

	cycles := m.Step()
	require.Greater(t, cycles, 0)
	require.Equal(t, uint64(cycles), m.Cycles)
	require.Greater(t, audio.samples, 0)
}

func TestMachine_StepFrameCompletesWithoutHanging(t *testing.T) {
	video := &fakeVideoSink{}
	m := New(video, &fakeAudioSink{})
	rom := buildNROM(0x00, 0x80)
	cart, err := cartridge.Load(bytes.NewReader(rom))
	require.NoError(t, err)
	m.LoadCartridge(cart)
	m.Reset()

	m.StepFrame()
	require.Equal(t, 1, video.frames)
}

package debugger

import (
	"bytes"
	"testing"

	"github.com/kjhart/nescore/pkg/cartridge"
	"github.com/kjhart/nescore/pkg/nes"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeVideoSink struct{}

func (fakeVideoSink) Append(frame *[256 * 240]uint8) {}

type fakeAudioSink struct{}

func (fakeAudioSink) Append(frame [2]int16) {}

func buildNROM(code []byte) []byte {
	var buf bytes.Buffer
	buf.WriteString("NES")
	buf.WriteByte(0x1A)
	buf.WriteByte(1)
	buf.WriteByte(1)
	buf.Write(make([]byte, 2))
	buf.Write(make([]byte, 8))
	prg := make([]byte, 16384)
	copy(prg, code)
	prg[0x3FFC] = 0x00
	prg[0x3FFD] = 0x80
	buf.Write(prg)
	buf.Write(make([]byte, 8192))
	return buf.Bytes()
}

func newDebugger(t *testing.T, code []byte) *Debugger {
	rom := buildNROM(code)
	cart, err := cartridge.Load(bytes.NewReader(rom))
	require.NoError(t, err)
	m := nes.New(fakeVideoSink{}, fakeAudioSink{})
	m.LoadCartridge(cart)
	m.Reset()
	return New(m)
}

func TestDebugger_RegistersReflectsCPUState(t *testing.T) {
	d := newDebugger(t, []byte{0xA9, 0x42}) // LDA #$42
	d.Step(1)
	assert.Equal(t, uint8(0x42), d.Registers().A)
}

func TestDebugger_BreakpointStopsContinue(t *testing.T) {
	d := newDebugger(t, []byte{0xEA, 0xEA, 0xEA, 0xEA})
	d.AddBreakpoint(0x8002)
	_, reason := d.Continue(100)
	assert.Equal(t, StopBreakpoint, reason)
	assert.Equal(t, uint16(0x8002), d.Registers().PC)
}

func TestDebugger_WatchpointStopsStep(t *testing.T) {
	d := newDebugger(t, []byte{0x85, 0x10}) // STA $10
	d.Machine.CPU.A = 0x99
	d.AddWatchpoint(0x0010)
	_, reason := d.Step(1)
	assert.Equal(t, StopWatchpoint, reason)
}

func TestDebugger_DisassembleDecodesInstructions(t *testing.T) {
	d := newDebugger(t, []byte{0xA9, 0x10, 0xEA})
	out := d.Disassemble(0x8000, 2)
	require.Len(t, out, 2)
	assert.Equal(t, "LDA #$10", out[0].Text)
	assert.Equal(t, "NOP", out[1].Text)
}

func TestDebugger_LabelsRoundTrip(t *testing.T) {
	d := newDebugger(t, nil)
	d.AddLabel(0x8000, "reset")
	assert.Equal(t, "reset", d.Labels()[0x8000])
	d.RemoveLabel(0x8000)
	assert.Empty(t, d.Labels())
}

func TestDebugger_GotoSetsPC(t *testing.T) {
	d := newDebugger(t, nil)
	d.Goto(0x9000)
	assert.Equal(t, uint16(0x9000), d.Registers().PC)
}

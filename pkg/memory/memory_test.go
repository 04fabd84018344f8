package memory

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakePPU struct {
	regs [8]uint8
	oam  []uint8
}

func (f *fakePPU) ReadRegister(addr uint16) uint8 { return f.regs[addr&0x0007] }
func (f *fakePPU) WriteRegister(addr uint16, value uint8) {
	if addr&0x0007 == 4 {
		f.oam = append(f.oam, value)
		return
	}
	f.regs[addr&0x0007] = value
}

type fakeAPU struct {
	lastWriteAddr uint16
	lastWriteVal  uint8
}

func (f *fakeAPU) ReadRegister(addr uint16) uint8 { return 0x42 }
func (f *fakeAPU) WriteRegister(addr uint16, value uint8) {
	f.lastWriteAddr, f.lastWriteVal = addr, value
}

type fakeCartridge struct {
	prg [0x10000]uint8
}

func (f *fakeCartridge) ReadPRG(addr uint16) uint8         { return f.prg[addr] }
func (f *fakeCartridge) WritePRG(addr uint16, value uint8) { f.prg[addr] = value }

type fakeController struct {
	written uint8
	readVal uint8
}

func (f *fakeController) Read() uint8      { return f.readVal }
func (f *fakeController) Write(value uint8) { f.written = value }

func TestBus_RAMMirroring(t *testing.T) {
	b := New()
	b.Write(0x0010, 0x77)
	for base := uint16(0x0010); base < 0x2000; base += 0x0800 {
		assert.Equal(t, uint8(0x77), b.Read(base), "mirror at $%04X", base)
	}
}

func TestBus_ReadWordIsLittleEndian(t *testing.T) {
	b := New()
	b.Write(0x0000, 0x34)
	b.Write(0x0001, 0x12)
	assert.Equal(t, uint16(0x1234), b.ReadWord(0x0000))
}

func TestBus_PPURegisterWindowMirrorsEvery8Bytes(t *testing.T) {
	b := New()
	ppu := &fakePPU{}
	b.SetPPU(ppu)

	b.Write(0x2000, 0x80)
	assert.Equal(t, uint8(0x80), b.Read(0x2008), "mirrored register window")
	assert.Equal(t, uint8(0x80), ppu.regs[0])
}

func TestBus_APURegisterWindowRoutes(t *testing.T) {
	b := New()
	apu := &fakeAPU{}
	b.SetAPU(apu)

	b.Write(0x4015, 0x01)
	assert.Equal(t, uint16(0x4015), apu.lastWriteAddr)
	assert.Equal(t, uint8(0x01), apu.lastWriteVal)
	assert.Equal(t, uint8(0x42), b.Read(0x4015))
}

func TestBus_ControllerPortsRouteOnStrobeAndRead(t *testing.T) {
	b := New()
	pad1 := &fakeController{readVal: 0x01}
	pad2 := &fakeController{readVal: 0x00}
	b.SetControllers(pad1, pad2)

	b.Write(0x4016, 0x01)
	assert.Equal(t, uint8(0x01), pad1.written)
	assert.Equal(t, uint8(0x01), pad2.written)

	assert.Equal(t, uint8(0x01), b.Read(0x4016))
	assert.Equal(t, uint8(0x00), b.Read(0x4017))
}

func TestBus_CartridgeHandlesUnmappedRange(t *testing.T) {
	b := New()
	cart := &fakeCartridge{}
	b.SetCartridge(cart)

	b.Write(0x8000, 0xAB)
	assert.Equal(t, uint8(0xAB), b.Read(0x8000))
}

func TestBus_OAMDMACopies256BytesAndReportsEvenStall(t *testing.T) {
	b := New()
	ppu := &fakePPU{}
	b.SetPPU(ppu)
	b.SetOddCycleFunc(func() bool { return false })

	for i := 0; i < 256; i++ {
		b.Write(uint16(i), uint8(i))
	}

	b.Write(0x4014, 0x00)

	require.Len(t, ppu.oam, 256)
	assert.Equal(t, uint8(0), ppu.oam[0])
	assert.Equal(t, uint8(255), ppu.oam[255])
	assert.Equal(t, 513, b.TakeDMAStall())
}

func TestBus_OAMDMAStallIsOddOneCycleLonger(t *testing.T) {
	b := New()
	b.SetPPU(&fakePPU{})
	b.SetOddCycleFunc(func() bool { return true })

	b.Write(0x4014, 0x00)

	assert.Equal(t, 514, b.TakeDMAStall())
}

func TestBus_WatchpointHitReportedAndCleared(t *testing.T) {
	b := New()
	b.Watchpoints[0x0300] = struct{}{}

	b.Write(0x0300, 0x01)
	assert.True(t, b.TakeWatchpointHit())
	assert.False(t, b.TakeWatchpointHit(), "cleared after take")

	b.Read(0x0300)
	assert.True(t, b.TakeWatchpointHit())
}

func TestBus_ReadSideEffectFreeDoesNotTriggerWatchpoints(t *testing.T) {
	b := New()
	b.Watchpoints[0x0050] = struct{}{}

	b.ReadSideEffectFree(0x0050)
	assert.False(t, b.TakeWatchpointHit())
}

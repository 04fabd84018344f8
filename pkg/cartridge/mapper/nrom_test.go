package mapper

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNROM_MirrorsSingleBank(t *testing.T) {
	data := &CartridgeData{PRGROM: testPRGROM16KB, CHRROM: testCHRROM8KB}
	m := NewNROM(data)

	assert.Equal(t, m.ReadPRG(0x8000), m.ReadPRG(0xC000))
	assert.Equal(t, uint8(0x01), m.ReadPRG(0x8001))
	assert.Equal(t, uint8(0x00), m.ReadCHR(0x0000))
}

func TestNROM_32KBLinear(t *testing.T) {
	// The ramp repeats every 256 bytes, so mark the second bank's first
	// byte to tell it apart from the first bank's.
	prg := append([]uint8(nil), testPRGROM32KB...)
	prg[0x4000] = 0xFF
	data := &CartridgeData{PRGROM: prg, CHRROM: testCHRROM8KB}
	m := NewNROM(data)

	assert.NotEqual(t, m.ReadPRG(0x8000+0x4000), m.ReadPRG(0x8000))
}

func TestNROM_WritesToROMAreIgnored(t *testing.T) {
	data := &CartridgeData{PRGROM: testPRGROM16KB, CHRROM: testCHRROM8KB}
	m := NewNROM(data)

	before := m.ReadPRG(0x8010)
	m.WritePRG(0x8010, 0xFF)
	assert.Equal(t, before, m.ReadPRG(0x8010))
}

func TestNROM_CHRRAMWhenNoCHRROM(t *testing.T) {
	data := &CartridgeData{PRGROM: testPRGROM16KB, CHRRAM: make([]uint8, 8*1024)}
	m := NewNROM(data)

	m.WriteCHR(0x0010, 0x42)
	assert.Equal(t, uint8(0x42), m.ReadCHR(0x0010))
}

package mapper

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func writeSerial(m *MMC1, addr uint16, bits ...uint8) {
	for _, b := range bits {
		m.WritePRG(addr, b)
	}
}

func TestMMC1_SerialLoadLatchesControl(t *testing.T) {
	prg := make([]uint8, 4*16*1024)
	data := &CartridgeData{PRGROM: prg, CHRRAM: make([]uint8, 8*1024)}
	m := NewMMC1(data)

	// A reset write clears any in-flight shift.
	m.WritePRG(0x8000, 0x80)
	assert.Equal(t, uint8(0), m.count)

	writeSerial(m, 0x8000, 0, 1, 0, 1, 0)
	assert.Equal(t, uint8(0x0A), m.Control())
}

func TestMMC1_ResetMidSequenceForcesPRGMode3(t *testing.T) {
	prg := make([]uint8, 4*16*1024)
	data := &CartridgeData{PRGROM: prg, CHRRAM: make([]uint8, 8*1024)}
	m := NewMMC1(data)

	writeSerial(m, 0x8000, 1, 1) // partial shift, count=2
	m.WritePRG(0x8000, 0x80)     // bit 7 set: reset
	assert.Equal(t, uint8(0), m.count)
	assert.Equal(t, uint8(3), m.prgMode)
}

func TestMMC1_PRGMode3FixesLastBank(t *testing.T) {
	prg := make([]uint8, 4*16*1024)
	for bank := 0; bank < 4; bank++ {
		prg[bank*16*1024] = uint8(bank)
	}
	data := &CartridgeData{PRGROM: prg, CHRRAM: make([]uint8, 8*1024)}
	m := NewMMC1(data)

	assert.Equal(t, uint8(3), m.prgMode)
	assert.Equal(t, uint8(3), m.ReadPRG(0xC000)) // fixed last bank (index 3)

	writeSerial(m, 0xE000, 1, 0, 0, 0, 0) // prgBank = 1
	assert.Equal(t, uint8(1), m.ReadPRG(0x8000))
	assert.Equal(t, uint8(3), m.ReadPRG(0xC000)) // still fixed
}

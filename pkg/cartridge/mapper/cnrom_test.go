package mapper

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCNROM_BankWrapsModuloCount(t *testing.T) {
	data := &CartridgeData{PRGROM: testPRGROM32KB, CHRROM: testCHRROM32KB}
	m := NewCNROM(data)
	require := m.chrBankCount
	assert.Equal(t, uint8(4), require) // 32KB / 8KB = 4 banks

	m.WritePRG(0x8000, 7) // 7 mod 4 == 3
	assert.Equal(t, uint8(3), m.CurrentCHRBank())
	assert.Equal(t, m.cart.CHRROM[3*8*1024], m.ReadCHR(0x0000))
}

func TestCNROM_PRGFixedLikeNROM(t *testing.T) {
	data := &CartridgeData{PRGROM: testPRGROM32KB, CHRROM: testCHRROM32KB}
	m := NewCNROM(data)

	assert.Equal(t, uint8(0x00), m.ReadPRG(0x8000))
	assert.Equal(t, uint8(0x01), m.ReadPRG(0x8001))
}

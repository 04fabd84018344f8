package cartridge

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildROM(prgBanks, chrBanks, flags6, flags7 uint8, prgFill, chrFill byte) []byte {
	var buf bytes.Buffer
	buf.WriteString("NES")
	buf.WriteByte(0x1A)
	buf.WriteByte(prgBanks)
	buf.WriteByte(chrBanks)
	buf.WriteByte(flags6)
	buf.WriteByte(flags7)
	buf.Write(make([]byte, 8)) // flags 8-15, padding

	prg := make([]byte, int(prgBanks)*prgBankSize)
	for i := range prg {
		prg[i] = prgFill
	}
	prg[0] = 0x42
	buf.Write(prg)

	if chrBanks > 0 {
		chr := make([]byte, int(chrBanks)*chrBankSize)
		for i := range chr {
			chr[i] = chrFill
		}
		chr[0] = 0x55
		buf.Write(chr)
	}
	return buf.Bytes()
}

func TestLoad_ParsesNROM(t *testing.T) {
	rom := buildROM(1, 1, 0, 0, 0x00, 0x00)
	cart, err := Load(bytes.NewReader(rom))
	require.NoError(t, err)

	assert.Len(t, cart.PRGROM, 16384)
	assert.Len(t, cart.CHRROM, 8192)
	assert.Equal(t, uint8(0), cart.MapperID)
	assert.Equal(t, uint8(0x42), cart.ReadPRG(0x8000))
	assert.Equal(t, uint8(0x55), cart.ReadCHR(0x0000))
}

func TestLoad_RejectsBadMagic(t *testing.T) {
	rom := buildROM(1, 1, 0, 0, 0, 0)
	rom[0] = 'X'
	_, err := Load(bytes.NewReader(rom))
	assert.ErrorIs(t, err, ErrInvalidFormat)
}

func TestLoad_RejectsTruncatedStream(t *testing.T) {
	rom := buildROM(1, 1, 0, 0, 0, 0)
	_, err := Load(bytes.NewReader(rom[:20]))
	assert.ErrorIs(t, err, ErrInvalidFormat)
}

func TestLoad_UnsupportedMapper(t *testing.T) {
	rom := buildROM(1, 1, 0xF0, 0, 0, 0) // mapper id 15, low nibble 0xF
	_, err := Load(bytes.NewReader(rom))
	var unsupported *UnsupportedMapperError
	require.ErrorAs(t, err, &unsupported)
	assert.Equal(t, uint8(15), unsupported.ID)
}

func TestLoad_ZeroCHRBanksAllocatesCHRRAM(t *testing.T) {
	rom := buildROM(1, 0, 0, 0, 0, 0)
	cart, err := Load(bytes.NewReader(rom))
	require.NoError(t, err)
	assert.Len(t, cart.CHRRAM, chrRAMSize)
}

func TestLoad_SkipsTrainer(t *testing.T) {
	var buf bytes.Buffer
	buf.WriteString("NES")
	buf.WriteByte(0x1A)
	buf.WriteByte(1)
	buf.WriteByte(1)
	buf.WriteByte(0x04) // trainer flag
	buf.WriteByte(0)
	buf.Write(make([]byte, 8))
	buf.Write(make([]byte, trainerSize))
	prg := make([]byte, prgBankSize)
	prg[0] = 0x99
	buf.Write(prg)
	buf.Write(make([]byte, chrBankSize))

	cart, err := Load(bytes.NewReader(buf.Bytes()))
	require.NoError(t, err)
	assert.Equal(t, uint8(0x99), cart.ReadPRG(0x8000))
}

func TestLoad_MirroringFlags(t *testing.T) {
	vertical := buildROM(1, 1, 0x01, 0, 0, 0)
	cart, err := Load(bytes.NewReader(vertical))
	require.NoError(t, err)
	assert.Equal(t, MirrorVertical, cart.Mirroring)

	fourScreen := buildROM(1, 1, 0x08, 0, 0, 0)
	cart, err = Load(bytes.NewReader(fourScreen))
	require.NoError(t, err)
	assert.Equal(t, MirrorFourScreen, cart.Mirroring)
}

// Package cartridge parses the canonical iNES cartridge format and wires
// the resulting PRG/CHR banks to the matching mapper implementation.
package cartridge

import (
	"errors"
	"fmt"
	"io"

	"github.com/kjhart/nescore/pkg/cartridge/mapper"
)

// ErrInvalidFormat is returned when the header magic bytes don't match, or
// the stream is truncated before the header or ROM banks are fully read.
var ErrInvalidFormat = errors.New("cartridge: invalid iNES format")

// UnsupportedMapperError is returned when the header names a mapper ID this
// build does not implement.
type UnsupportedMapperError struct{ ID uint8 }

func (e *UnsupportedMapperError) Error() string {
	return fmt.Sprintf("cartridge: unsupported mapper %d", e.ID)
}

// Mirroring is re-exported so callers don't need to import the mapper
// package just to inspect a cartridge's nametable layout.
type Mirroring = mapper.Mirroring

const (
	MirrorHorizontal  = mapper.MirrorHorizontal
	MirrorVertical    = mapper.MirrorVertical
	MirrorFourScreen  = mapper.MirrorFourScreen
	MirrorSingleLower = mapper.MirrorSingleLower
	MirrorSingleUpper = mapper.MirrorSingleUpper
)

const (
	headerSize   = 16
	trainerSize  = 512
	prgBankSize  = 16 * 1024
	chrBankSize  = 8 * 1024
	chrRAMSize   = 8 * 1024
	prgRAMSize   = 8 * 1024
)

type header struct {
	magic      [4]byte
	prgBanks   uint8
	chrBanks   uint8
	flags6     uint8
	flags7     uint8
}

// Cartridge is immutable once loaded: the mapper it hands off to owns the
// PRG/CHR slices for the rest of the program's life.
type Cartridge struct {
	Mapper    mapper.Mapper
	Mirroring Mirroring
	MapperID  uint8

	PRGROM []uint8
	CHRROM []uint8
	PRGRAM []uint8
	CHRRAM []uint8
}

// Load parses an iNES image from r and constructs the matching mapper.
func Load(r io.Reader) (*Cartridge, error) {
	var raw [headerSize]byte
	if _, err := io.ReadFull(r, raw[:]); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidFormat, err)
	}

	var h header
	copy(h.magic[:], raw[0:4])
	if h.magic != [4]byte{'N', 'E', 'S', 0x1A} {
		return nil, ErrInvalidFormat
	}
	h.prgBanks = raw[4]
	h.chrBanks = raw[5]
	h.flags6 = raw[6]
	h.flags7 = raw[7]

	if h.flags6&0x04 != 0 {
		var trainer [trainerSize]byte
		if _, err := io.ReadFull(r, trainer[:]); err != nil {
			return nil, fmt.Errorf("%w: trainer: %v", ErrInvalidFormat, err)
		}
	}

	prg := make([]uint8, int(h.prgBanks)*prgBankSize)
	if _, err := io.ReadFull(r, prg); err != nil {
		return nil, fmt.Errorf("%w: prg rom: %v", ErrInvalidFormat, err)
	}

	var chr, chrRAM []uint8
	if h.chrBanks == 0 {
		chrRAM = make([]uint8, chrRAMSize)
	} else {
		chr = make([]uint8, int(h.chrBanks)*chrBankSize)
		if _, err := io.ReadFull(r, chr); err != nil {
			return nil, fmt.Errorf("%w: chr rom: %v", ErrInvalidFormat, err)
		}
	}

	var prgRAM []uint8
	if h.flags6&0x02 != 0 {
		prgRAM = make([]uint8, prgRAMSize)
	}

	mirroring := MirrorHorizontal
	switch {
	case h.flags6&0x08 != 0:
		mirroring = MirrorFourScreen
	case h.flags6&0x01 != 0:
		mirroring = MirrorVertical
	}

	mapperID := (h.flags6 >> 4) | (h.flags7 & 0xF0)

	data := &mapper.CartridgeData{
		PRGROM:    prg,
		CHRROM:    chr,
		PRGRAM:    prgRAM,
		CHRRAM:    chrRAM,
		Mirroring: mirroring,
	}

	m, err := mapper.NewMapper(mapperID, data)
	if err != nil {
		return nil, &UnsupportedMapperError{ID: mapperID}
	}

	return &Cartridge{
		Mapper:    m,
		Mirroring: mirroring,
		MapperID:  mapperID,
		PRGROM:    prg,
		CHRROM:    chr,
		PRGRAM:    prgRAM,
		CHRRAM:    chrRAM,
	}, nil
}

func (c *Cartridge) ReadPRG(addr uint16) uint8         { return c.Mapper.ReadPRG(addr) }
func (c *Cartridge) WritePRG(addr uint16, v uint8)     { c.Mapper.WritePRG(addr, v) }
func (c *Cartridge) ReadCHR(addr uint16) uint8         { return c.Mapper.ReadCHR(addr) }
func (c *Cartridge) WriteCHR(addr uint16, v uint8)     { c.Mapper.WriteCHR(addr, v) }
func (c *Cartridge) MirrorNametable(addr uint16) uint16 { return c.Mapper.MirrorNametable(addr) }
func (c *Cartridge) IRQPending() bool                  { return c.Mapper.IRQPending() }

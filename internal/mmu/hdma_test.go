package mmu

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGeneralPurposeHDMACopiesImmediately(t *testing.T) {
	m := newTestMMU(true)
	for i := 0; i < 16; i++ {
		m.Write(uint16(0xC000+i), uint8(i))
	}

	m.Write(0xFF51, 0xC0) // src hi
	m.Write(0xFF52, 0x00) // src lo
	m.Write(0xFF53, 0x00) // dst hi (within 0x8000 window)
	m.Write(0xFF54, 0x00) // dst lo
	m.Write(0xFF55, 0x00) // one block, general-purpose mode

	for i := 0; i < 16; i++ {
		assert.Equal(t, uint8(i), m.PPU.ReadVRAM(uint16(0x8000+i)))
	}
	assert.Equal(t, uint8(0xFF), m.Read(0xFF55), "transfer already complete")
}

func TestHBlankStepHDMACopiesOneBlockPerLine(t *testing.T) {
	m := newTestMMU(true)
	for i := 0; i < 32; i++ {
		m.Write(uint16(0xC000+i), uint8(i))
	}

	m.Write(0xFF51, 0xC0)
	m.Write(0xFF52, 0x00)
	m.Write(0xFF53, 0x00)
	m.Write(0xFF54, 0x00)
	m.Write(0xFF55, 0x81) // two blocks, HBlank-step mode

	m.Write(0xFF40, 0x80) // enable LCD

	for i := 0; i < 400; i++ {
		m.Tick(4)
	}

	for i := 0; i < 32; i++ {
		assert.Equal(t, uint8(i), m.PPU.ReadVRAM(uint16(0x8000+i)))
	}
	assert.Equal(t, uint8(0xFF), m.Read(0xFF55), "both blocks transferred")
}

func TestHBlankStepHDMACancelsOnBit7Clear(t *testing.T) {
	m := newTestMMU(true)
	m.Write(0xFF55, 0x87) // arm an 8-block HBlank-step transfer
	assert.NotEqual(t, uint8(0xFF), m.Read(0xFF55))

	m.Write(0xFF55, 0x00) // bit 7 clear while active cancels
	assert.Equal(t, uint8(0xFF), m.Read(0xFF55))
}

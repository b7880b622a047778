package mmu

import (
	"testing"

	"github.com/kestrelsoft/gbcore/internal/interrupts"
	"github.com/kestrelsoft/gbcore/internal/ppu"
	"github.com/kestrelsoft/gbcore/internal/serial"
	"github.com/kestrelsoft/gbcore/internal/timer"
	"github.com/stretchr/testify/assert"
)

func newTestMMU(cgb bool) *MMU {
	irq := &interrupts.Service{}
	p := ppu.New(irq, cgb)
	t := timer.New(irq)
	s := serial.New(irq)
	return New(nil, p, t, s, irq, nil, cgb)
}

func TestWRAMRoundTripAndEchoMirror(t *testing.T) {
	m := newTestMMU(false)
	for addr := 0xC000; addr < 0xDE00; addr += 997 {
		m.Write(uint16(addr), uint8(addr))
		assert.Equal(t, uint8(addr), m.Read(uint16(addr)))
	}
	for addr := 0xE000; addr < 0xFDFF; addr += 997 {
		assert.Equal(t, m.Read(uint16(addr-0x2000)), m.Read(uint16(addr)))
	}
}

func TestOAMDMACopiesFromWRAM(t *testing.T) {
	m := newTestMMU(false)
	for i := 0; i < 160; i++ {
		m.Write(uint16(0xC000+i), uint8(i))
	}
	m.Write(0xFF46, 0xC0)

	for i := 0; i < 160; i++ {
		assert.Equal(t, uint8(i), m.Read(uint16(0xFE00+i)))
	}
}

func TestSVBKBankSwitchesHighWRAM(t *testing.T) {
	m := newTestMMU(true)
	m.Write(0xFF70, 0x02)
	m.Write(0xD000, 0xAB)
	m.Write(0xFF70, 0x03)
	m.Write(0xD000, 0xCD)

	m.Write(0xFF70, 0x02)
	assert.Equal(t, uint8(0xAB), m.Read(0xD000))
	m.Write(0xFF70, 0x03)
	assert.Equal(t, uint8(0xCD), m.Read(0xD000))
}

func TestSVBKBank0AliasesToBank1(t *testing.T) {
	m := newTestMMU(true)
	m.Write(0xFF70, 0x00)
	assert.Equal(t, uint8(1), m.wramBank)
}

func TestSVBKIgnoredOnDMG(t *testing.T) {
	m := newTestMMU(false)
	m.Write(0xFF70, 0x05)
	assert.Equal(t, uint8(1), m.wramBank)
	assert.Equal(t, uint8(0xFF), m.ReadSVBK())
}

// Package mmu resolves the full 16-bit address space into the
// cartridge, VRAM/OAM, work RAM, high RAM and the I/O register file,
// and drives the CGB HDMA/GDMA copy engine and OAM DMA.
package mmu

import (
	"github.com/kestrelsoft/gbcore/internal/cartridge"
	"github.com/kestrelsoft/gbcore/internal/host"
	"github.com/kestrelsoft/gbcore/internal/interrupts"
	"github.com/kestrelsoft/gbcore/internal/joypad"
	"github.com/kestrelsoft/gbcore/internal/ppu"
	"github.com/kestrelsoft/gbcore/internal/serial"
	"github.com/kestrelsoft/gbcore/internal/timer"
)

// MMU is the bus: every CPU memory access and every peripheral's
// memory-mapped I/O passes through it.
type MMU struct {
	Cart    *cartridge.Cartridge
	PPU     *ppu.PPU
	Timer   *timer.Controller
	Serial  *serial.Controller
	Joypad  joypad.State
	IRQ     *interrupts.Service
	Host    host.Host

	CGB bool

	// WRAM is 8 4KiB banks; DMG uses only banks 0 and 1. Bank 0 is
	// always mapped at 0xC000; the switchable bank (1 on DMG, 1-7 on
	// CGB via SVBK) is mapped at 0xD000 and mirrored into echo RAM.
	WRAM     [8][0x1000]byte
	wramBank uint8

	HRAM [0x7F]byte

	// waveRAM backs 0xFF30-0xFF3F as plain storage: the APU itself is
	// out of scope, but games that probe wave RAM must still see
	// whatever they last wrote there.
	waveRAM [0x10]byte
	ioAux   [0x80]byte

	dmaReg uint8
	key1   uint8

	hdma hdmaState
}

// New returns an MMU with bank 1 selected as the default switchable
// WRAM bank, matching power-on state on both DMG and CGB.
func New(cart *cartridge.Cartridge, p *ppu.PPU, t *timer.Controller, s *serial.Controller, irq *interrupts.Service, h host.Host, cgb bool) *MMU {
	return &MMU{
		Cart:     cart,
		PPU:      p,
		Timer:    t,
		Serial:   s,
		IRQ:      irq,
		Host:     h,
		CGB:      cgb,
		wramBank: 1,
		hdma:     hdmaState{lastLine: -1},
	}
}

func (m *MMU) wramHigh() *[0x1000]byte { return &m.WRAM[m.wramBank] }

// Read resolves a CPU-visible address to a byte. Reads are pure; no
// address in 0x0000-0xFFFF is unhandled.
func (m *MMU) Read(addr uint16) uint8 {
	switch {
	case addr < 0x4000:
		return m.Cart.ReadROM0(addr, m.Host)
	case addr < 0x8000:
		return m.Cart.ReadROMN(addr, m.Host)
	case addr < 0xA000:
		return m.PPU.ReadVRAM(addr)
	case addr < 0xC000:
		return m.Cart.ReadRAM(addr, m.Host)
	case addr < 0xD000:
		return m.WRAM[0][addr-0xC000]
	case addr < 0xE000:
		return m.wramHigh()[addr-0xD000]
	case addr < 0xF000:
		return m.WRAM[0][addr-0xE000]
	case addr < 0xFE00:
		return m.wramHigh()[addr-0xF000]
	case addr < 0xFEA0:
		return m.PPU.ReadOAM(addr)
	case addr < 0xFF00:
		return 0xFF
	case addr < 0xFF80:
		return m.readIO(addr)
	case addr < 0xFFFF:
		return m.HRAM[addr-0xFF80]
	default:
		return m.IRQ.ReadIE()
	}
}

// Write resolves a CPU-visible address and stores value there.
func (m *MMU) Write(addr uint16, value uint8) {
	switch {
	case addr < 0x8000:
		m.Cart.WriteControl(addr, value)
	case addr < 0xA000:
		m.PPU.WriteVRAM(addr, value)
	case addr < 0xC000:
		m.Cart.WriteRAM(addr, value, m.Host)
	case addr < 0xD000:
		m.WRAM[0][addr-0xC000] = value
	case addr < 0xE000:
		m.wramHigh()[addr-0xD000] = value
	case addr < 0xF000:
		m.WRAM[0][addr-0xE000] = value
	case addr < 0xFE00:
		m.wramHigh()[addr-0xF000] = value
	case addr < 0xFEA0:
		m.PPU.WriteOAM(addr, value)
	case addr < 0xFF00:
		// unusable region: writes dropped.
	case addr < 0xFF80:
		m.writeIO(addr, value)
	case addr < 0xFFFF:
		m.HRAM[addr-0xFF80] = value
	default:
		m.IRQ.IE = value
	}
}

// Tick advances every peripheral that shares the CPU's cycle domain, in
// the fixed order the interrupt-priority invariant depends on: timer,
// serial, then LCD. Called once per StepCPU with that instruction's
// resolved cycle cost.
func (m *MMU) Tick(cycles uint8) {
	m.Timer.Tick(cycles)
	m.Serial.Tick(cycles)
	m.PPU.Tick(cycles, m.Host)
	m.stepHDMA()
}

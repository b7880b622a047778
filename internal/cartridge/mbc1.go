package cartridge

import "github.com/kestrelsoft/gbcore/internal/host"

// mbc1 implements MBC1: a 5-bit low ROM-bank register that never holds
// zero, plus a 2-bit register that either extends the ROM bank (mode 0)
// or selects the RAM bank (mode 1).
type mbc1 struct {
	romBanks uint16
	ramBanks uint16

	ramg  bool
	bank1 uint8 // 5 bits, 0x2000-0x3FFF, zero-adjusted to 1
	bank2 uint8 // 2 bits, 0x4000-0x5FFF
	mode  bool  // 0x6000-0x7FFF
}

func newMBC1(h Header) *mbc1 {
	ramBanks := uint16(0)
	if h.RAMSize > 0 {
		ramBanks = uint16(h.RAMSize / 0x2000)
		if ramBanks == 0 {
			ramBanks = 1
		}
	}
	return &mbc1{romBanks: h.ROMBanks, ramBanks: ramBanks, bank1: 1}
}

func (m *mbc1) Write(addr uint16, value uint8) {
	switch {
	case addr < 0x2000:
		m.ramg = value&0x0F == 0x0A
	case addr < 0x4000:
		value &= 0x1F
		if value == 0 {
			value = 1
		}
		m.bank1 = value
	case addr < 0x6000:
		m.bank2 = value & 0x03
	case addr < 0x8000:
		m.mode = value&0x01 != 0
	}
}

// ROMBank combines bank1 and bank2 for the switchable ROM window.
// bank2 always contributes the upper two bits here, independent of
// mode: mode only gates whether bank2 additionally selects the cart-RAM
// bank (see invariant 5's 0x21/0x41/0x61 quirk).
func (m *mbc1) ROMBank() uint16 {
	bank := uint16(m.bank2)<<5 | uint16(m.bank1)
	return maskBank(bank, m.romBanks)
}

func (m *mbc1) ramBank() uint16 {
	if !m.mode {
		return 0
	}
	return maskBank(uint16(m.bank2), m.ramBanks)
}

func (m *mbc1) ReadRAM(addr uint16, h host.Host) uint8 {
	if !m.ramg || m.ramBanks == 0 {
		return 0xFF
	}
	return h.CartRAMRead(uint32(m.ramBank())*0x2000 + uint32(addr-0xA000))
}

func (m *mbc1) WriteRAM(addr uint16, value uint8, h host.Host) {
	if !m.ramg || m.ramBanks == 0 {
		return
	}
	h.CartRAMWrite(uint32(m.ramBank())*0x2000+uint32(addr-0xA000), value)
}

package cartridge

import "github.com/kestrelsoft/gbcore/internal/host"

// mbc5 implements MBC5: a 9-bit ROM bank register split across two
// write ranges, and a 4-bit RAM bank register. Unlike MBC1/2/3, writing
// 0 is a legal ROM bank selection.
type mbc5 struct {
	romBanks uint16
	ramBanks uint16

	ramg    bool
	bankLow uint8 // 0x2000-0x2FFF
	bankHi  uint8 // 0x3000-0x3FFF, bit 8
	ramBank uint8 // 0x4000-0x5FFF, 4 bits
}

func newMBC5(h Header) *mbc5 {
	ramBanks := uint16(0)
	if h.RAMSize > 0 {
		ramBanks = uint16(h.RAMSize / 0x2000)
	}
	return &mbc5{romBanks: h.ROMBanks, ramBanks: ramBanks}
}

func (m *mbc5) Write(addr uint16, value uint8) {
	switch {
	case addr < 0x2000:
		m.ramg = value&0x0F == 0x0A
	case addr < 0x3000:
		m.bankLow = value
	case addr < 0x4000:
		m.bankHi = value & 0x01
	case addr < 0x6000:
		m.ramBank = value & 0x0F
	}
}

func (m *mbc5) ROMBank() uint16 {
	bank := uint16(m.bankHi)<<8 | uint16(m.bankLow)
	return maskBank(bank, m.romBanks)
}

func (m *mbc5) ReadRAM(addr uint16, h host.Host) uint8 {
	if !m.ramg || m.ramBanks == 0 {
		return 0xFF
	}
	bank := maskBank(uint16(m.ramBank), m.ramBanks)
	return h.CartRAMRead(uint32(bank)*0x2000 + uint32(addr-0xA000))
}

func (m *mbc5) WriteRAM(addr uint16, value uint8, h host.Host) {
	if !m.ramg || m.ramBanks == 0 {
		return
	}
	bank := maskBank(uint16(m.ramBank), m.ramBanks)
	h.CartRAMWrite(uint32(bank)*0x2000+uint32(addr-0xA000), value)
}

package cartridge

import "github.com/kestrelsoft/gbcore/internal/host"

// mbc2 implements MBC2: a 4-bit ROM bank register and 512x4-bit
// built-in RAM. The enable latch and bank register share the same
// 0x0000-0x3FFF address space, disambiguated by address bit 4.
type mbc2 struct {
	romBanks uint16

	ramg bool
	bank uint8 // 4 bits, zero-adjusted to 1

	ram [512]byte // only the low nibble of each byte is meaningful
}

func newMBC2(h Header) *mbc2 {
	return &mbc2{romBanks: h.ROMBanks, bank: 1}
}

func (m *mbc2) Write(addr uint16, value uint8) {
	switch {
	case addr < 0x2000:
		if addr&0x10 == 0 {
			m.ramg = value&0x0F == 0x0A
		}
	case addr < 0x4000:
		if addr&0x10 != 0 {
			value &= 0x0F
			if value == 0 {
				value = 1
			}
			m.bank = value
		}
	}
}

func (m *mbc2) ROMBank() uint16 { return maskBank(uint16(m.bank), m.romBanks) }

// mbc2's built-in RAM is not routed through the host's cart-RAM
// callbacks: it has no per-cartridge size and is not part of the
// addressable save file the host sizes via Cartridge.RAMSize for other
// MBCs, so it is kept local to the controller.
func (m *mbc2) ReadRAM(addr uint16, h host.Host) uint8 {
	if !m.ramg {
		return 0xFF
	}
	return m.ram[(addr-0xA000)&0x1FF] | 0xF0
}

func (m *mbc2) WriteRAM(addr uint16, value uint8, h host.Host) {
	if !m.ramg {
		return
	}
	m.ram[(addr-0xA000)&0x1FF] = value & 0x0F
}

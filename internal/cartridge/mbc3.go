package cartridge

import "github.com/kestrelsoft/gbcore/internal/host"

// mbc3 implements MBC3: a 7-bit ROM bank register, a RAM-bank/RTC-select
// register (0x00-0x03 selects cart-RAM bank, 0x08-0x0C selects one of
// the five RTC registers), and the RTC itself. The latch command
// (0x6000-0x7FFF) is a known hardware feature this core omits.
type mbc3 struct {
	romBanks uint16
	ramBanks uint16

	ramg bool
	bank uint8 // 7 bits, zero-adjusted to 1
	sel  uint8 // 0x00-0x03 RAM bank, or 0x08-0x0C RTC register

	rtc RTC
}

func newMBC3(h Header) *mbc3 {
	ramBanks := uint16(0)
	if h.RAMSize > 0 {
		ramBanks = uint16(h.RAMSize / 0x2000)
		if ramBanks == 0 {
			ramBanks = 1
		}
	}
	return &mbc3{romBanks: h.ROMBanks, ramBanks: ramBanks, bank: 1}
}

// RTC exposes the cartridge's real-time clock for GameBoy.TickRTC /
// SetRTC.
func (m *mbc3) RTC() *RTC { return &m.rtc }

func (m *mbc3) Write(addr uint16, value uint8) {
	switch {
	case addr < 0x2000:
		m.ramg = value&0x0F == 0x0A
	case addr < 0x4000:
		value &= 0x7F
		if value == 0 {
			value = 1
		}
		m.bank = value
	case addr < 0x6000:
		m.sel = value
	case addr < 0x8000:
		// RTC latch omitted.
	}
}

func (m *mbc3) ROMBank() uint16 { return maskBank(uint16(m.bank), m.romBanks) }

func (m *mbc3) isRTCSelect() bool { return m.sel >= 0x08 && m.sel <= 0x0C }

func (m *mbc3) ReadRAM(addr uint16, h host.Host) uint8 {
	if !m.ramg {
		return 0xFF
	}
	if m.isRTCSelect() {
		return m.rtc.Read(m.sel)
	}
	if m.ramBanks == 0 {
		return 0xFF
	}
	bank := maskBank(uint16(m.sel), m.ramBanks)
	return h.CartRAMRead(uint32(bank)*0x2000 + uint32(addr-0xA000))
}

func (m *mbc3) WriteRAM(addr uint16, value uint8, h host.Host) {
	if !m.ramg {
		return
	}
	if m.isRTCSelect() {
		m.rtc.Write(m.sel, value)
		return
	}
	if m.ramBanks == 0 {
		return
	}
	bank := maskBank(uint16(m.sel), m.ramBanks)
	h.CartRAMWrite(uint32(bank)*0x2000+uint32(addr-0xA000), value)
}

package cartridge

import "github.com/kestrelsoft/gbcore/internal/host"

// MBC is the bank-select state machine a cartridge delegates to. The
// Cartridge owns address translation for the fixed ROM window and the
// cart-RAM window; the MBC only tracks which bank is selected and
// whether RAM access is currently latched open.
type MBC interface {
	// Write handles the cartridge-side effect of a CPU write anywhere in
	// 0x0000-0x7FFF: enable latches, bank selects, mode selects.
	Write(addr uint16, value uint8)
	// ROMBank returns the bank index currently mapped at 0x4000-0x7FFF.
	ROMBank() uint16
	// ReadRAM returns the byte for a cart-RAM-window read (addr in
	// 0xA000-0xBFFF). Returns 0xFF when RAM is disabled or absent.
	ReadRAM(addr uint16, h host.Host) uint8
	// WriteRAM mirrors ReadRAM for writes; writes are silently dropped
	// when disabled or absent.
	WriteRAM(addr uint16, value uint8, h host.Host)
}

// New constructs the MBC state machine matching h.MBC.
func New(h Header) MBC {
	switch h.MBC {
	case MBC1:
		return newMBC1(h)
	case MBC2:
		return newMBC2(h)
	case MBC3:
		return newMBC3(h)
	case MBC5:
		return newMBC5(h)
	default:
		return newMBC0(h)
	}
}

// mbc0 is the no-op controller for ROM-only (and ROM+RAM, unbanked)
// cartridges: bank 1 is always mapped at 0x4000-0x7FFF, and RAM (if any)
// is a flat, always-enabled window.
type mbc0 struct {
	hasRAM bool
}

func newMBC0(h Header) *mbc0 { return &mbc0{hasRAM: h.HasRAM} }

func (m *mbc0) Write(addr uint16, value uint8) {}
func (m *mbc0) ROMBank() uint16                { return 1 }

func (m *mbc0) ReadRAM(addr uint16, h host.Host) uint8 {
	if !m.hasRAM {
		return 0xFF
	}
	return h.CartRAMRead(uint32(addr - 0xA000))
}

func (m *mbc0) WriteRAM(addr uint16, value uint8, h host.Host) {
	if !m.hasRAM {
		return
	}
	h.CartRAMWrite(uint32(addr-0xA000), value)
}

// maskBank reduces bank modulo count (a power of two number of 16KiB
// banks), so a too-large selector wraps instead of going out of range.
func maskBank(bank, count uint16) uint16 {
	if count == 0 {
		return 0
	}
	return bank % count
}

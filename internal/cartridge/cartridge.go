package cartridge

import "github.com/kestrelsoft/gbcore/internal/host"

// Cartridge owns the parsed header and the MBC state machine, and
// resolves ROM/cart-RAM addresses against the host's callbacks. ROM and
// cart-RAM bytes are never copied into the core; every access is a call
// through h.
type Cartridge struct {
	Header Header
	mbc    MBC
}

// Load reads the 0x150-byte header window through h.ROMRead, validates
// it, and constructs the matching MBC. No emulator state is retained on
// failure.
func Load(h host.Host) (*Cartridge, error) {
	raw := make([]byte, 0x150)
	for i := range raw {
		raw[i] = h.ROMRead(uint32(i))
	}
	hdr, err := ParseHeader(raw)
	if err != nil {
		return nil, err
	}
	return &Cartridge{Header: hdr, mbc: New(hdr)}, nil
}

// Title returns the cartridge's display title.
func (c *Cartridge) Title() string { return c.Header.Title }

// RAMSize returns the cart-RAM size in bytes a host should allocate for
// this cartridge's save data.
func (c *Cartridge) RAMSize() uint32 { return c.Header.RAMSize }

// ColourHash reproduces peanut_gb's gb_colour_hash: a checksum over the
// 16-byte title field, used by hosts to pick a default CGB-style palette
// for a DMG-only cartridge run in compatibility mode.
func (c *Cartridge) ColourHash(h host.Host) uint8 {
	var x uint8
	for addr := uint32(0x134); addr <= 0x143; addr++ {
		x += h.ROMRead(addr)
	}
	return x
}

// ReadROM0 reads from the fixed 0x0000-0x3FFF window.
func (c *Cartridge) ReadROM0(addr uint16, h host.Host) uint8 {
	return h.ROMRead(uint32(addr))
}

// ReadROMN reads from the switchable 0x4000-0x7FFF window, resolved
// modulo the ROM bank count mask (invariant 1).
func (c *Cartridge) ReadROMN(addr uint16, h host.Host) uint8 {
	bank := c.mbc.ROMBank()
	offset := uint32(bank)*0x4000 + uint32(addr-0x4000)
	return h.ROMRead(offset)
}

// WriteControl routes a CPU write in 0x0000-0x7FFF to the MBC.
func (c *Cartridge) WriteControl(addr uint16, value uint8) {
	c.mbc.Write(addr, value)
}

// ReadRAM reads from the 0xA000-0xBFFF window.
func (c *Cartridge) ReadRAM(addr uint16, h host.Host) uint8 {
	return c.mbc.ReadRAM(addr, h)
}

// WriteRAM writes to the 0xA000-0xBFFF window.
func (c *Cartridge) WriteRAM(addr uint16, value uint8, h host.Host) {
	c.mbc.WriteRAM(addr, value, h)
}

// RTC returns the cartridge's real-time clock, or nil if this cartridge
// is not an MBC3.
func (c *Cartridge) RTC() *RTC {
	if m3, ok := c.mbc.(*mbc3); ok {
		return m3.RTC()
	}
	return nil
}

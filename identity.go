package gbcore

import "github.com/cespare/xxhash"

// Title returns the cartridge's display title, trimmed of trailing NUL
// padding.
func (g *GameBoy) Title() string { return g.Cart.Title() }

// ColourHash reproduces the classic DMG-boot-ROM palette-selection
// checksum over the cartridge title, for a host picking a default
// colorization for a DMG-only title run in CGB compatibility mode.
func (g *GameBoy) ColourHash() uint8 { return g.Cart.ColourHash(g.Host) }

// ROMIdentity returns a stable 64-bit hash of the cartridge's header
// window, suitable as a cache key for per-game host-side configuration
// (palettes, input maps) without the core needing to expose raw ROM
// bytes.
func (g *GameBoy) ROMIdentity() uint64 {
	raw := make([]byte, 0x150)
	for i := range raw {
		raw[i] = g.Host.ROMRead(uint32(i))
	}
	return xxhash.Sum64(raw)
}

// SaveIdentity returns a hash combining ROMIdentity with the
// cartridge's declared save size, suitable as a key for a host that
// indexes save files by cartridge rather than by filename.
func (g *GameBoy) SaveIdentity() uint64 {
	return g.ROMIdentity() ^ uint64(g.Cart.RAMSize())*0x9E3779B97F4A7C15
}

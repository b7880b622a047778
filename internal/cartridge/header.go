// Package cartridge parses the ROM header, classifies the Memory Bank
// Controller, and implements the MBC1/2/3/5 bank-select state machines
// plus the MBC3 real-time clock.
package cartridge

import "fmt"

// MBCKind identifies which bank-controller state machine a cartridge
// uses, keyed off the header-byte-0x147 mapping table.
type MBCKind uint8

const (
	MBC0 MBCKind = iota
	MBC1
	MBC2
	MBC3
	MBC5
)

// CGBSupport records what the header's 0x143 byte says about CGB
// compatibility.
type CGBSupport uint8

const (
	CGBUnsupported CGBSupport = iota
	CGBSupported
	CGBOnly
)

// ramSizeTable maps header byte 0x149 to cart-RAM size in bytes.
var ramSizeTable = [...]uint32{
	0: 0,
	1: 2 * 1024,
	2: 8 * 1024,
	3: 32 * 1024,
	4: 128 * 1024,
	5: 64 * 1024,
}

// mbcTable maps header byte 0x147 to an MBCKind. A byte not present in
// the map is unsupported.
var mbcTable = map[uint8]MBCKind{
	0x00: MBC0, 0x08: MBC0, 0x09: MBC0,
	0x01: MBC1, 0x02: MBC1, 0x03: MBC1,
	0x05: MBC2, 0x06: MBC2,
	0x0F: MBC3, 0x10: MBC3, 0x11: MBC3, 0x12: MBC3, 0x13: MBC3,
	0x19: MBC5, 0x1A: MBC5, 0x1B: MBC5, 0x1C: MBC5, 0x1D: MBC5, 0x1E: MBC5,
}

// hasRAM is true for cartridge-type bytes that carry SRAM
// (whether or not it is battery-backed is not observable from core
// behaviour, so it is not tracked separately).
func hasRAM(cartType uint8) bool {
	switch cartType {
	case 0x02, 0x03, 0x08, 0x09, 0x0C, 0x0D, 0x10, 0x12, 0x13,
		0x1A, 0x1B, 0x1D, 0x1E:
		return true
	case 0x06: // MBC2 has 512x4-bit built-in RAM, not header-sized
		return true
	}
	return false
}

// Header is the parsed subset of the 0x0100-0x014F cartridge header the
// core needs to operate.
type Header struct {
	Title      string
	CGBFlag    CGBSupport
	Type       uint8
	MBC        MBCKind
	ROMBanks   uint16 // count of 16KiB ROM banks
	RAMSize    uint32 // cart-RAM size in bytes
	Checksum   uint8
	HasRAM     bool
}

// ErrUnsupportedCartridge and ErrInvalidChecksum are the two
// cartridge-load failure modes.
type ErrUnsupportedCartridge struct{ Type uint8 }

func (e ErrUnsupportedCartridge) Error() string {
	return fmt.Sprintf("cartridge: unsupported cartridge type 0x%02X", e.Type)
}

type ErrInvalidChecksum struct{ Got, Want uint8 }

func (e ErrInvalidChecksum) Error() string {
	return fmt.Sprintf("cartridge: invalid header checksum: got 0x%02X want 0x%02X", e.Got, e.Want)
}

// HeaderChecksum computes the header checksum over raw[0x134:0x14D],
// where raw is the full 0x150-byte header window starting at address
// 0x0000 (so raw[0x134] is the byte at ROM address 0x134):
// x=0; for addr in 0x134..=0x14C: x = x - rom[addr] - 1.
func HeaderChecksum(raw []byte) uint8 {
	var x uint8
	for addr := 0x134; addr <= 0x14C; addr++ {
		x = x - raw[addr] - 1
	}
	return x
}

// romBankCount decodes header byte 0x148 (standard encoding: 32KiB << n).
func romBankCount(b uint8) uint16 {
	return uint16(2) << b
}

// ParseHeader parses the 0x150-byte header window (ROM addresses
// 0x0000-0x014F) and validates the checksum. raw must be at least 0x150
// bytes.
func ParseHeader(raw []byte) (Header, error) {
	h := Header{Type: raw[0x147]}

	switch raw[0x143] {
	case 0x80:
		h.CGBFlag = CGBSupported
	case 0xC0:
		h.CGBFlag = CGBOnly
	default:
		h.CGBFlag = CGBUnsupported
	}

	titleEnd := 0x143
	if h.CGBFlag == CGBUnsupported {
		titleEnd = 0x144
	}
	h.Title = trimTitle(raw[0x134:titleEnd])

	kind, ok := mbcTable[h.Type]
	if !ok {
		return Header{}, ErrUnsupportedCartridge{Type: h.Type}
	}
	h.MBC = kind
	h.HasRAM = hasRAM(h.Type)

	h.ROMBanks = romBankCount(raw[0x148])

	if h.MBC == MBC2 {
		h.RAMSize = 512 // 512x4-bit, exposed as a byte-addressable array
	} else if int(raw[0x149]) < len(ramSizeTable) {
		h.RAMSize = ramSizeTable[raw[0x149]]
	}
	if h.RAMSize == 0 {
		h.HasRAM = false
	}

	h.Checksum = raw[0x14D]
	got := HeaderChecksum(raw)
	if got != h.Checksum {
		return Header{}, ErrInvalidChecksum{Got: got, Want: h.Checksum}
	}

	return h, nil
}

func trimTitle(b []byte) string {
	end := len(b)
	for end > 0 && b[end-1] == 0x00 {
		end--
	}
	return string(b[:end])
}

package main

import (
	"fmt"
	"os"

	"github.com/kestrelsoft/gbcore"
)

// fileHost is the minimal host.Host this command needs: ROM bytes held
// entirely in memory, cart-RAM backed by an in-memory buffer flushed to
// a .sav file on exit, and errors logged rather than acted on.
type fileHost struct {
	rom []byte
	ram []byte

	cartRAMDirty bool
}

func (h *fileHost) ROMRead(addr uint32) uint8 {
	if int(addr) >= len(h.rom) {
		return 0xFF
	}
	return h.rom[addr]
}

func (h *fileHost) CartRAMRead(addr uint32) uint8 {
	if int(addr) >= len(h.ram) {
		return 0xFF
	}
	return h.ram[addr]
}

func (h *fileHost) CartRAMWrite(addr uint32, value uint8) {
	if int(addr) >= len(h.ram) {
		grown := make([]byte, addr+1)
		copy(grown, h.ram)
		h.ram = grown
	}
	h.ram[addr] = value
	h.cartRAMDirty = true
}

// Error logs the fault and lets the core continue best-effort; a
// headless batch run would rather finish with a warning than abort a
// long frame count over one bad opcode fetch.
func (h *fileHost) Error(kind gbcore.ErrorKind, val uint16) {
	fmt.Fprintf(os.Stderr, "gbcorectl: core fault %s at 0x%04X\n", kind, val)
}

package cpu

import (
	"github.com/kestrelsoft/gbcore/internal/host"
	"github.com/kestrelsoft/gbcore/internal/interrupts"
	"github.com/kestrelsoft/gbcore/internal/mmu"
	"github.com/kestrelsoft/gbcore/internal/ppu"
	"github.com/kestrelsoft/gbcore/internal/serial"
	"github.com/kestrelsoft/gbcore/internal/timer"
)

// romHost is a minimal host.Host backing ROM reads from an in-memory
// byte slice, for feeding small hand-assembled programs to the CPU
// without a real cartridge. CartRAM access is stubbed out; Error
// records the last reported fault for the tests that check it.
type romHost struct {
	rom       []byte
	lastFault host.ErrorKind
	faulted   bool
}

func (h *romHost) ROMRead(addr uint32) uint8 {
	if int(addr) >= len(h.rom) {
		return 0xFF
	}
	return h.rom[addr]
}
func (h *romHost) CartRAMRead(addr uint32) uint8         { return 0xFF }
func (h *romHost) CartRAMWrite(addr uint32, value uint8) {}
func (h *romHost) Error(kind host.ErrorKind, val uint16) {
	h.faulted = true
	h.lastFault = kind
}

// newTestCPU wires a CPU to a fresh MMU/PPU/timer/serial stack with no
// cartridge (every test here stays within ROM0/WRAM/HRAM, none of which
// touch the nil *cartridge.Cartridge's MBC-dependent paths) and a
// romHost serving program bytes from code.
func newTestCPU(code []byte) (*CPU, *romHost) {
	h := &romHost{rom: code}
	irq := &interrupts.Service{}
	p := ppu.New(irq, false)
	tm := timer.New(irq)
	sr := serial.New(irq)
	m := mmu.New(nil, p, tm, sr, irq, h, false)
	c := New(m, irq, h)
	return c, h
}

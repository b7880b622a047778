// Package ppu drives the LCD mode state machine and the scanline
// renderer: background, window and up to 40 sprites composed into a
// 160-pixel line, plus the CGB BG/OBJ palette RAM. HDMA/GDMA lives in
// the mmu package.
package ppu

import (
	"github.com/kestrelsoft/gbcore/internal/host"
	"github.com/kestrelsoft/gbcore/internal/interrupts"
)

// Mode is one of the four LCD controller states.
type Mode uint8

const (
	ModeHBlank Mode = iota
	ModeVBlank
	ModeOAMSearch
	ModeTransfer
)

const (
	lineCycles    = 456
	oamCycles     = 80
	transferEnd   = oamCycles + 172 // 252
	visibleLines  = 144
	totalLines    = 154
)

// LCDC bits.
const (
	lcdcEnable      = 1 << 7
	lcdcWindowMap   = 1 << 6
	lcdcWindowOn    = 1 << 5
	lcdcTileSelect  = 1 << 4
	lcdcBGMap       = 1 << 3
	lcdcOBJSize     = 1 << 2
	lcdcOBJOn       = 1 << 1
	lcdcBGOn        = 1 << 0
)

// STAT bits.
const (
	statLYCIntr    = 1 << 6
	statMode2Intr  = 1 << 5
	statMode1Intr  = 1 << 4
	statMode0Intr  = 1 << 3
	statCoincident = 1 << 2
	statModeMask   = 0x03
)

// Pixel-source tags for the DMG palette encoding: bits 5..4 of the
// delivered pixel byte.
const (
	srcOBJ0 = 0x00
	srcOBJ1 = 0x10
	srcBG   = 0x20
)

// PPU owns LCD registers, VRAM, OAM and the CGB palette memories.
type PPU struct {
	LCDC, STAT       uint8
	SCY, SCX         uint8
	LY, LYC          uint8
	WY, WX           uint8
	BGP, OBP0, OBP1  uint8

	mode        Mode
	lineCount   uint16
	windowLine  uint8
	latchedWY   uint8
	frameDone   bool

	// VRAM is two 8KiB banks; DMG uses only bank 0.
	VRAM     [2][0x2000]byte
	VRAMBank uint8
	OAM      [160]byte

	CGB         bool
	doubleSpeed bool

	// Interlace, when set, draws only every other scanline each frame,
	// alternating which parity is drawn on each VBLANK boundary (the
	// skipped line's state, including the window line counter, still
	// advances normally).
	Interlace      bool
	interlaceCount bool

	bgPalette  dmgPalette
	objPalette [2]dmgPalette

	cgbPal cgbPalettes

	irq *interrupts.Service
}

type dmgPalette [4]uint8

// New returns a PPU that raises LCD interrupts through irq. cgb selects
// whether CGB-only features (VRAM bank 1, palette RAM) are active.
func New(irq *interrupts.Service, cgb bool) *PPU {
	p := &PPU{irq: irq, CGB: cgb}
	p.cgbPal.reset()
	return p
}

// SetDoubleSpeed is called by the CPU when the CGB speed-switch STOP
// sequence completes.
func (p *PPU) SetDoubleSpeed(v bool) { p.doubleSpeed = v }

// DoubleSpeed reports whether the CGB double-speed mode is active.
func (p *PPU) DoubleSpeed() bool { return p.doubleSpeed }

// FrameDone reports (and clears) whether a VBLANK boundary was crossed
// since the last call. RunFrame polls this once per StepCPU.
func (p *PPU) FrameDone() bool {
	v := p.frameDone
	p.frameDone = false
	return v
}

func (p *PPU) enabled() bool { return p.LCDC&lcdcEnable != 0 }

// Tick advances the LCD state machine by cycles CPU-domain cycles
// (halved for double-speed CGB). h is consulted only to reach an
// optional host.LineDrawer when a line finishes composing.
func (p *PPU) Tick(cycles uint8, h host.Host) {
	if !p.enabled() {
		return
	}

	c := uint16(cycles)
	if p.doubleSpeed {
		c >>= 1
	}
	p.lineCount += c

	for p.lineCount >= lineCycles {
		p.lineCount -= lineCycles
		p.advanceLine(h)
	}

	switch p.mode {
	case ModeOAMSearch:
		if p.lineCount >= oamCycles {
			p.mode = ModeTransfer
			p.renderLine(h)
		}
	case ModeTransfer:
		if p.lineCount >= transferEnd {
			p.mode = ModeHBlank
			if p.STAT&statMode0Intr != 0 {
				p.irq.Request(interrupts.LCD)
			}
		}
	}
}

// advanceLine fires on every 456-cycle scanline boundary: LY increments,
// LYC coincidence is re-evaluated, and VBLANK or OAM-search entry is
// decided.
func (p *PPU) advanceLine(h host.Host) {
	p.LY = (p.LY + 1) % totalLines

	if p.LY == 0 {
		p.latchedWY = p.WY
		p.windowLine = 0
	}

	if p.LY == p.LYC {
		p.STAT |= statCoincident
		if p.STAT&statLYCIntr != 0 {
			p.irq.Request(interrupts.LCD)
		}
	} else {
		p.STAT &^= statCoincident
	}

	switch {
	case p.LY == visibleLines:
		p.mode = ModeVBlank
		p.frameDone = true
		p.interlaceCount = !p.interlaceCount
		p.irq.Request(interrupts.VBlank)
		if p.STAT&statMode1Intr != 0 {
			p.irq.Request(interrupts.LCD)
		}
	case p.LY < visibleLines:
		p.mode = ModeOAMSearch
		if p.STAT&statMode2Intr != 0 {
			p.irq.Request(interrupts.LCD)
		}
	}
}

// Mode returns the current LCD mode, for the mmu's HDMA HBlank-step
// trigger.
func (p *PPU) Mode() Mode { return p.mode }

// Line returns the current LY value, for the mmu to detect the HBlank
// boundary of a new scanline.
func (p *PPU) Line() uint8 { return p.LY }

// ReadSTAT returns STAT with the live mode bits folded in; mode reads as
// VBLANK whenever the LCD is disabled.
func (p *PPU) ReadSTAT() uint8 {
	m := p.mode
	if !p.enabled() {
		m = ModeVBlank
	}
	return (p.STAT &^ statModeMask) | uint8(m)
}

// WriteLCDC handles a write to LCDC, including the DMG/CGB power-off
// quirk: the screen may only turn off from inside VBLANK, and LY resets
// to 0 on the 1->0 transition. A disable attempted outside VBLANK is
// refused: the enable bit sticks and the rest of the write still takes
// effect.
func (p *PPU) WriteLCDC(value uint8) {
	wasOn := p.enabled()
	mode := p.mode
	p.LCDC = value
	if wasOn && !p.enabled() {
		if mode != ModeVBlank {
			p.LCDC |= lcdcEnable
			return
		}
		p.LY = 0
		p.lineCount = 0
		p.mode = ModeHBlank
	}
	if !wasOn && p.enabled() {
		p.mode = ModeOAMSearch
		p.lineCount = 0
	}
}

// WriteBGP/WriteOBP0/WriteOBP1 decode the DMG palette triples into plain
// 2-bit color arrays (spec E4: BGP=0xE4 decodes to [0,1,2,3]).
func (p *PPU) WriteBGP(value uint8) {
	p.BGP = value
	p.bgPalette = decodeDMGPalette(value)
}

func (p *PPU) WriteOBP0(value uint8) {
	p.OBP0 = value
	p.objPalette[0] = decodeDMGPalette(value)
}

func (p *PPU) WriteOBP1(value uint8) {
	p.OBP1 = value
	p.objPalette[1] = decodeDMGPalette(value)
}

func decodeDMGPalette(v uint8) dmgPalette {
	return dmgPalette{v & 0x03, (v >> 2) & 0x03, (v >> 4) & 0x03, (v >> 6) & 0x03}
}

// ReadVRAM/WriteVRAM dispatch to the CGB-selected VRAM bank (always bank
// 0 on DMG).
func (p *PPU) ReadVRAM(addr uint16) uint8 {
	return p.VRAM[p.VRAMBank][addr-0x8000]
}

func (p *PPU) WriteVRAM(addr uint16, value uint8) {
	p.VRAM[p.VRAMBank][addr-0x8000] = value
}

func (p *PPU) WriteVBK(value uint8) {
	if p.CGB {
		p.VRAMBank = value & 0x01
	}
}

func (p *PPU) ReadVBK() uint8 {
	if !p.CGB {
		return 0xFF
	}
	return p.VRAMBank | 0xFE
}

func (p *PPU) ReadOAM(addr uint16) uint8  { return p.OAM[addr-0xFE00] }
func (p *PPU) WriteOAM(addr uint16, v uint8) { p.OAM[addr-0xFE00] = v }

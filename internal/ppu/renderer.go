package ppu

import "github.com/kestrelsoft/gbcore/internal/host"

// attribute bits for CGB BG/window tile map entries and OBJ entries.
const (
	attrPaletteMask = 0x07
	attrBank        = 1 << 3
	attrXFlip       = 1 << 5
	attrYFlip       = 1 << 6
	attrPriority    = 1 << 7
)

type oamEntry struct {
	y, x, tile, attr uint8
}

// renderLine composes the 160 pixels of the current scanline and, if h
// implements host.LineDrawer, delivers them. DMG pixels are the decoded
// 2-bit color OR'd with a source tag (0x00 obj-palette-0, 0x10
// obj-palette-1, 0x20 background); CGB pixels are
// (paletteIndex<<2)|color, with 0x20 added for sprites.
func (p *PPU) renderLine(h host.Host) {
	ld, ok := h.(host.LineDrawer)
	if !ok || !p.shouldDrawLine() {
		p.advanceWindowLine()
		return
	}

	var line [160]uint8
	var bgPriority [160]bool

	p.drawBackground(&line, &bgPriority)
	p.drawWindow(&line, &bgPriority)
	p.drawSprites(&line, &bgPriority)

	ld.LineDraw(p.LY, line)
	p.advanceWindowLine()
}

// shouldDrawLine reports whether the current scanline is drawn when
// Interlace is active: each frame only one parity of lines is rendered,
// alternating on every VBLANK boundary.
func (p *PPU) shouldDrawLine() bool {
	if !p.Interlace {
		return true
	}
	even := p.LY%2 == 0
	return p.interlaceCount == !even
}

func (p *PPU) advanceWindowLine() {
	if p.LCDC&lcdcWindowOn != 0 && p.latchedWY <= p.LY {
		p.windowLine++
	}
}

func (p *PPU) drawBackground(line *[160]uint8, bgPriority *[160]bool) {
	if !p.CGB && p.LCDC&lcdcBGOn == 0 {
		return
	}

	mapBase := uint16(0x9800)
	if p.LCDC&lcdcBGMap != 0 {
		mapBase = 0x9C00
	}
	y := p.LY + p.SCY

	for x := uint8(0); x < 160; x++ {
		scx := x + p.SCX
		tileCol := uint16(scx / 8)
		tileRow := uint16(y / 8)
		mapAddr := mapBase + tileRow*32 + tileCol

		tileIdx := p.VRAM[0][mapAddr-0x8000]
		attr := uint8(0)
		if p.CGB {
			attr = p.VRAM[1][mapAddr-0x8000]
		}

		c := p.tilePixel(tileIdx, attr, scx%8, y%8)
		line[x] = p.encodeBG(attr, c)
		bgPriority[x] = attr&attrPriority != 0 && c != 0
	}
}

func (p *PPU) drawWindow(line *[160]uint8, bgPriority *[160]bool) {
	if p.LCDC&lcdcWindowOn == 0 || p.latchedWY > p.LY {
		return
	}

	mapBase := uint16(0x9800)
	if p.LCDC&lcdcWindowMap != 0 {
		mapBase = 0x9C00
	}

	wx := int16(p.WX) - 7
	for x := uint8(0); x < 160; x++ {
		if int16(x) < wx {
			continue
		}
		wcol := uint16(int16(x)-wx) / 8
		wrow := uint16(p.windowLine) / 8
		mapAddr := mapBase + wrow*32 + wcol

		tileIdx := p.VRAM[0][mapAddr-0x8000]
		attr := uint8(0)
		if p.CGB {
			attr = p.VRAM[1][mapAddr-0x8000]
		}

		c := p.tilePixel(tileIdx, attr, uint8(int16(x)-wx)%8, p.windowLine%8)
		line[x] = p.encodeBG(attr, c)
		bgPriority[x] = attr&attrPriority != 0 && c != 0
	}
}

// tilePixel resolves the 2-bit color index for tile tileIdx at the
// given in-tile column/row, honoring LCDC's tile-data select and the
// CGB attribute byte's bank/flip bits.
func (p *PPU) tilePixel(tileIdx, attr, col, row uint8) uint8 {
	if attr&attrXFlip != 0 {
		col = 7 - col
	}
	if attr&attrYFlip != 0 {
		row = 7 - row
	}

	var base uint16
	if p.LCDC&lcdcTileSelect != 0 {
		base = 0x8000 + uint16(tileIdx)*16
	} else {
		base = uint16(0x9000 + int16(int8(tileIdx))*16)
	}

	bank := uint8(0)
	if attr&attrBank != 0 {
		bank = 1
	}

	rowAddr := base + uint16(row)*2
	lo := p.VRAM[bank][rowAddr-0x8000]
	hi := p.VRAM[bank][rowAddr+1-0x8000]

	bit := 7 - col
	return ((hi>>bit)&1)<<1 | (lo>>bit)&1
}

func (p *PPU) encodeBG(attr, color uint8) uint8 {
	if p.CGB {
		return (attr&attrPaletteMask)<<2 | color
	}
	return p.bgPalette[color] | srcBG
}

// drawSprites iterates OAM in reverse so that, on DMG, lower-index
// sprites win X-coordinate ties by being drawn last.
func (p *PPU) drawSprites(line *[160]uint8, bgPriority *[160]bool) {
	if p.LCDC&lcdcOBJOn == 0 {
		return
	}

	height := uint8(8)
	if p.LCDC&lcdcOBJSize != 0 {
		height = 16
	}

	visible := p.scanSprites(height)

	for i := len(visible) - 1; i >= 0; i-- {
		s := visible[i]
		spriteY := int16(s.y) - 16
		row := uint8(int16(p.LY) - spriteY)
		if s.attr&attrYFlip != 0 {
			row = height - 1 - row
		}

		tile := s.tile
		if height == 16 {
			tile &^= 0x01
			if row >= 8 {
				tile |= 0x01
				row -= 8
			}
		}

		bank := uint8(0)
		if p.CGB && s.attr&attrBank != 0 {
			bank = 1
		}
		rowAddr := uint16(0x8000) + uint16(tile)*16 + uint16(row)*2
		lo := p.VRAM[bank][rowAddr-0x8000]
		hi := p.VRAM[bank][rowAddr+1-0x8000]

		for col := uint8(0); col < 8; col++ {
			spriteX := int16(s.x) - 8 + int16(col)
			if spriteX < 0 || spriteX >= 160 {
				continue
			}
			x := uint8(spriteX)

			bit := col
			if s.attr&attrXFlip == 0 {
				bit = 7 - col
			}
			c := ((hi>>bit)&1)<<1 | (lo>>bit)&1
			if c == 0 {
				continue
			}
			if bgPriority[x] {
				continue
			}
			if s.attr&attrPriority != 0 && line[x]&0x03 != 0 {
				continue
			}

			line[x] = p.encodeSprite(s.attr, c)
		}
	}
}

func (p *PPU) encodeSprite(attr, color uint8) uint8 {
	if p.CGB {
		return (attr&attrPaletteMask)<<2 | color | 0x20
	}
	pal := uint8(0)
	if attr&0x10 != 0 {
		pal = 1
	}
	src := uint8(srcOBJ0)
	if pal == 1 {
		src = srcOBJ1
	}
	return p.objPalette[pal][color] | src
}

// scanSprites returns up to 10 sprites overlapping the current
// scanline, in ascending OAM order (the hardware's natural priority
// order on DMG; CGB priority is OAM order unconditionally too, absent
// the BG-priority bit).
func (p *PPU) scanSprites(height uint8) []oamEntry {
	var out []oamEntry
	for i := 0; i < 40 && len(out) < 10; i++ {
		base := i * 4
		y := p.OAM[base]
		spriteY := int16(y) - 16
		if int16(p.LY) < spriteY || int16(p.LY) >= spriteY+int16(height) {
			continue
		}
		out = append(out, oamEntry{
			y:    y,
			x:    p.OAM[base+1],
			tile: p.OAM[base+2],
			attr: p.OAM[base+3],
		})
	}
	return out
}

// Package hostsdl is a reference presentation layer for gbcore: it
// implements host.LineDrawer by blitting the core's encoded 160-pixel
// scanlines into an SDL2 streaming texture. The core never imports this
// package or knows SDL exists; a frontend wires a *Presenter into its
// own host.Host implementation (typically by embedding it) to get a
// window on screen with a handful of lines of glue.
package hostsdl

import (
	"fmt"

	"github.com/kestrelsoft/gbcore"
	"github.com/veandco/go-sdl2/sdl"
)

const (
	screenWidth  = 160
	screenHeight = 144
)

// dmgShades is the classic four-shade green-tinted palette used when the
// core is running a DMG title; index is the low 2 bits of a DMG-encoded
// pixel.
var dmgShades = [4][3]uint8{
	{0x9B, 0xBC, 0x0F},
	{0x8B, 0xAC, 0x0F},
	{0x30, 0x62, 0x30},
	{0x0F, 0x38, 0x0F},
}

// Presenter owns an SDL window, renderer and a streaming texture sized
// to the Game Boy's fixed 160x144 frame. It is safe to use as the sole
// LineDrawer behind a host.Host; it keeps no reference to the GameBoy
// beyond what's needed to resolve CGB colors.
type Presenter struct {
	gb       *gbcore.GameBoy
	window   *sdl.Window
	renderer *sdl.Renderer
	texture  *sdl.Texture

	frame [screenHeight * screenWidth * 4]byte
}

// New creates an SDL window scaled by factor and a streaming texture to
// present into it. gb is consulted only for CGB() and the palette
// accessors, never stepped or mutated. Callers must call sdl.Init
// themselves (with at least sdl.INIT_VIDEO) before calling New, and
// Close when done.
func New(gb *gbcore.GameBoy, title string, scale int) (*Presenter, error) {
	if scale < 1 {
		scale = 1
	}
	window, err := sdl.CreateWindow(title, sdl.WINDOWPOS_CENTERED, sdl.WINDOWPOS_CENTERED,
		int32(screenWidth*scale), int32(screenHeight*scale), sdl.WINDOW_SHOWN)
	if err != nil {
		return nil, fmt.Errorf("hostsdl: create window: %w", err)
	}

	renderer, err := sdl.CreateRenderer(window, -1, sdl.RENDERER_ACCELERATED|sdl.RENDERER_PRESENTVSYNC)
	if err != nil {
		window.Destroy()
		return nil, fmt.Errorf("hostsdl: create renderer: %w", err)
	}

	texture, err := renderer.CreateTexture(sdl.PIXELFORMAT_ABGR8888, sdl.TEXTUREACCESS_STREAMING, screenWidth, screenHeight)
	if err != nil {
		renderer.Destroy()
		window.Destroy()
		return nil, fmt.Errorf("hostsdl: create texture: %w", err)
	}

	return &Presenter{gb: gb, window: window, renderer: renderer, texture: texture}, nil
}

// Close releases the texture, renderer and window, in that order.
func (p *Presenter) Close() {
	p.texture.Destroy()
	p.renderer.Destroy()
	p.window.Destroy()
}

// LineDraw implements host.LineDrawer. It decodes the encoded pixel row
// into the presenter's backing RGBA frame; the texture is only updated
// and presented once Present is called, so a host driving several
// LineDraw calls per frame pays the upload cost once.
func (p *Presenter) LineDraw(line uint8, pixels [160]uint8) {
	if int(line) >= screenHeight {
		return
	}
	row := int(line) * screenWidth * 4
	for x, px := range pixels {
		r, g, b := p.resolve(px)
		off := row + x*4
		p.frame[off+0] = r
		p.frame[off+1] = g
		p.frame[off+2] = b
		p.frame[off+3] = 0xFF
	}
}

// resolve maps one encoded pixel byte to 8-bit RGB, branching on whether
// the core is running in CGB mode; see the core's pixel-encoding doc for
// the bit layout in each mode.
func (p *Presenter) resolve(px uint8) (r, g, b uint8) {
	if !p.gb.CGB() {
		return rgbFromShade(dmgShades[px&0x03])
	}

	isObj := px&0x20 != 0
	pal := (px >> 2) & 0x07
	color := px & 0x03
	var rgb555 uint16
	if isObj {
		rgb555 = p.gb.OBJColor555(pal, color)
	} else {
		rgb555 = p.gb.BGColor555(pal, color)
	}
	return rgbFrom555(rgb555)
}

func rgbFromShade(c [3]uint8) (uint8, uint8, uint8) { return c[0], c[1], c[2] }

// rgbFrom555 expands a 5-bit-per-channel RGB555 value (as stored in CGB
// palette RAM, red in the low bits) to 8-bit-per-channel RGB.
func rgbFrom555(v uint16) (r, g, b uint8) {
	r5 := uint8(v & 0x1F)
	g5 := uint8((v >> 5) & 0x1F)
	b5 := uint8((v >> 10) & 0x1F)
	return r5<<3 | r5>>2, g5<<3 | g5>>2, b5<<3 | b5>>2
}

// Present uploads the accumulated frame buffer to the GPU texture and
// draws it to the window, scaled to fill the renderer's current output
// size. A host calls this once per RunFrame, after the core has
// delivered all 144 LineDraw calls for that frame.
func (p *Presenter) Present() error {
	if err := p.texture.Update(nil, p.frame[:], screenWidth*4); err != nil {
		return fmt.Errorf("hostsdl: update texture: %w", err)
	}
	p.renderer.Clear()
	if err := p.renderer.Copy(p.texture, nil, nil); err != nil {
		return fmt.Errorf("hostsdl: copy texture: %w", err)
	}
	p.renderer.Present()
	return nil
}

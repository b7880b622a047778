// Package gbcore is a host-callback-driven Game Boy (DMG/CGB) core: it
// owns no ROM or save-RAM storage of its own and performs no I/O beyond
// the host.Host contract it is given at construction.
package gbcore

import (
	"github.com/kestrelsoft/gbcore/internal/cartridge"
	"github.com/kestrelsoft/gbcore/internal/cpu"
	"github.com/kestrelsoft/gbcore/internal/host"
	"github.com/kestrelsoft/gbcore/internal/interrupts"
	"github.com/kestrelsoft/gbcore/internal/joypad"
	"github.com/kestrelsoft/gbcore/internal/mmu"
	"github.com/kestrelsoft/gbcore/internal/ppu"
	"github.com/kestrelsoft/gbcore/internal/serial"
	"github.com/kestrelsoft/gbcore/internal/timer"
	"github.com/kestrelsoft/gbcore/pkg/log"
)

// Host re-exports the callback contract a caller must implement to
// construct a GameBoy; see the host package doc for the optional
// LineDrawer and SerialPeer capabilities.
type Host = host.Host

// ErrorKind re-exports the domain-fault enum reported through Host.Error.
type ErrorKind = host.ErrorKind

const (
	Unknown       = host.Unknown
	InvalidOpcode = host.InvalidOpcode
	InvalidRead   = host.InvalidRead
	InvalidWrite  = host.InvalidWrite
	HaltForever   = host.HaltForever
)

// Direct holds construction options that don't belong on the Host
// contract itself: rendering shortcuts and an escape hatch for
// host-specific extensions a particular frontend wants attached to a
// GameBoy instance without the core needing to know its type.
type Direct struct {
	// Interlace, when set, renders only every other scanline per frame,
	// alternating. FrameSkip, when set, marks every other completed frame
	// as skipped (see SkippedFrame); the core still renders and delivers
	// every line of a skipped frame. Neither changes other core behaviour
	// (timing, interrupts).
	Interlace bool
	FrameSkip bool

	// Extension is never read by the core; a host may stash an adapter
	// or handle here for its own later retrieval.
	Extension any
}

// Option configures a GameBoy at construction time.
type Option func(*GameBoy)

// WithDirect installs a Direct configuration.
func WithDirect(d Direct) Option {
	return func(g *GameBoy) { g.direct = d }
}

// WithLogger installs a logger for non-fatal diagnostics: a summary of
// the loaded cartridge and RTC seeding. Bank switches and HDMA transfers
// are not logged. The default is log.Nop().
func WithLogger(l log.Logger) Option {
	return func(g *GameBoy) { g.log = l }
}

// GameBoy wires together the CPU, bus, cartridge and peripherals behind
// a single host.Host. It holds no ROM or cart-RAM bytes itself.
type GameBoy struct {
	Host host.Host

	CPU    *cpu.CPU
	MMU    *mmu.MMU
	PPU    *ppu.PPU
	Timer  *timer.Controller
	Serial *serial.Controller
	IRQ    *interrupts.Service
	Cart   *cartridge.Cartridge

	cgb    bool
	direct Direct
	log    log.Logger

	frameCount uint64
	skipFrame  bool
}

// New loads and validates the cartridge header through h, constructs
// the matching MBC, and returns a GameBoy reset to its documented
// post-boot state. An unsupported cartridge type or an invalid header
// checksum is reported as an error with no GameBoy returned and no
// state retained.
func New(h host.Host, opts ...Option) (*GameBoy, error) {
	cart, err := cartridge.Load(h)
	if err != nil {
		return nil, err
	}

	cgb := cart.Header.CGBFlag != cartridge.CGBUnsupported

	g := &GameBoy{Host: h, Cart: cart, cgb: cgb, log: log.Nop()}
	for _, opt := range opts {
		opt(g)
	}
	g.log.Infof("loaded %q: mbc=%v cgb=%v rom_banks=%d ram=%dB", cart.Title(), cart.Header.MBC, cgb, cart.Header.ROMBanks, cart.RAMSize())

	g.IRQ = &interrupts.Service{}
	g.PPU = ppu.New(g.IRQ, cgb)
	g.Timer = timer.New(g.IRQ)
	g.Serial = serial.New(g.IRQ)
	if p, ok := h.(host.SerialPeer); ok {
		g.Serial.SetPeer(p)
	}
	g.MMU = mmu.New(cart, g.PPU, g.Timer, g.Serial, g.IRQ, h, cgb)
	g.CPU = cpu.New(g.MMU, g.IRQ, h)
	g.PPU.Interlace = g.direct.Interlace

	g.Reset()
	return g, nil
}

// SetSerialPeer installs (or clears) the link-cable partner.
func (g *GameBoy) SetSerialPeer(p serial.Peer) { g.Serial.SetPeer(p) }

// SetButtons replaces the eight-button pressed state read back through
// P1.
func (g *GameBoy) SetButtons(buttons uint8) { g.MMU.Joypad.Buttons = buttons }

// Reset clears the CPU's halt/stop state and sets the CPU registers, SP
// and PC (0x0100), IME and IF,
// DIV/TIMA/TMA/TAC and LCDC/STAT/SCY/SCX/LYC/BGP to their documented
// DMG/CGB post-boot values. It does not touch IE, LY or the LCD's
// position within a line, WY/WX/OBP0/OBP1, serial state, memory
// contents or MBC bank selections.
func (g *GameBoy) Reset() {
	g.IRQ.IME = true
	g.IRQ.IF = 0x01

	g.CPU.Halted = false
	g.CPU.Stopped = false
	g.CPU.SP = 0xFFFE
	g.CPU.PC = 0x0100

	if g.cgb {
		g.CPU.Reg.SetAF(0x1180)
		g.CPU.Reg.SetBC(0x0000)
		g.CPU.Reg.SetDE(0x0008)
		g.CPU.Reg.SetHL(0x007C)
		g.Timer.DIV = 0xFF
	} else {
		g.CPU.Reg.SetAF(0x01B0)
		g.CPU.Reg.SetBC(0x0013)
		g.CPU.Reg.SetDE(0x00D8)
		g.CPU.Reg.SetHL(0x014D)
		g.Timer.DIV = 0xAB
	}

	g.Timer.TIMA = 0x00
	g.Timer.TMA = 0x00
	g.Timer.TAC = 0xF8

	g.PPU.WriteLCDC(0x91)
	g.PPU.STAT = 0x85
	g.PPU.SCY = 0x00
	g.PPU.SCX = 0x00
	g.PPU.LYC = 0x00
	g.PPU.WriteBGP(0xFC)
}

// StepCPU executes exactly one instruction boundary (an interrupt
// dispatch or one opcode) and advances every peripheral sharing the
// CPU's cycle domain, in the fixed order timer, serial, LCD, through
// MMU.Tick. It returns the T-cycles consumed.
func (g *GameBoy) StepCPU() uint8 {
	return g.CPU.Step()
}

// RunFrame steps the CPU until the PPU crosses a VBLANK boundary. Under
// the FrameSkip direct option it marks every other frame as skipped via
// SkippedFrame; it does not suppress that frame's LineDraw calls.
func (g *GameBoy) RunFrame() {
	for {
		g.StepCPU()
		if g.PPU.FrameDone() {
			g.frameCount++
			g.skipFrame = g.direct.FrameSkip && g.frameCount%2 == 0
			return
		}
	}
}

// SkippedFrame reports whether the most recently completed RunFrame
// call was nominally skipped under the FrameSkip direct option. The
// core does not itself suppress rendering; a host that wants the
// throughput benefit checks this before presenting the frame.
func (g *GameBoy) SkippedFrame() bool { return g.skipFrame }

// CGB reports whether this instance is running in CGB mode, decided at
// construction from the cartridge header's CGB-support flag.
func (g *GameBoy) CGB() bool { return g.cgb }

// BGColor555/OBJColor555 resolve a CGB-encoded pixel's (palette, color)
// pair to a 15-bit RGB555 value, for a host presenter that wants actual
// colors rather than raw palette indices. Meaningless in DMG mode.
func (g *GameBoy) BGColor555(pal, idx uint8) uint16  { return g.PPU.BGColor555(pal, idx) }
func (g *GameBoy) OBJColor555(pal, idx uint8) uint16 { return g.PPU.OBJColor555(pal, idx) }

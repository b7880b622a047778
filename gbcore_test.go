package gbcore

import (
	"testing"

	"github.com/kestrelsoft/gbcore/internal/cartridge"
	"github.com/kestrelsoft/gbcore/internal/ppu"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testROM builds a minimal MBC0, 2-bank, CGB-unsupported (or, if cgb is
// true, CGB-supported) ROM with a valid header checksum and a program
// starting at the standard entry point 0x0100.
func testROM(cgb bool, program []byte) []byte {
	rom := make([]byte, 0x8000)
	copy(rom[0x0100:], program)

	copy(rom[0x134:0x144], []byte("TESTGAME"))
	if cgb {
		rom[0x143] = 0x80
	} else {
		rom[0x143] = 0x00
	}
	rom[0x147] = 0x00 // MBC0
	rom[0x148] = 0x00 // 2 ROM banks
	rom[0x149] = 0x00 // no RAM
	rom[0x14D] = cartridge.HeaderChecksum(rom)
	return rom
}

type memHost struct {
	rom []byte
	ram [0x2000]byte
}

func (h *memHost) ROMRead(addr uint32) uint8 {
	if int(addr) >= len(h.rom) {
		return 0xFF
	}
	return h.rom[addr]
}
func (h *memHost) CartRAMRead(addr uint32) uint8         { return h.ram[addr] }
func (h *memHost) CartRAMWrite(addr uint32, value uint8) { h.ram[addr] = value }
func (h *memHost) Error(kind ErrorKind, val uint16)      {}

func TestNewRejectsBadChecksum(t *testing.T) {
	rom := testROM(false, nil)
	rom[0x14D] ^= 0xFF
	_, err := New(&memHost{rom: rom})
	require.Error(t, err)
}

func TestNewRejectsUnsupportedCartridgeType(t *testing.T) {
	rom := testROM(false, nil)
	rom[0x147] = 0xFF
	rom[0x14D] = cartridge.HeaderChecksum(rom)
	_, err := New(&memHost{rom: rom})
	require.Error(t, err)
}

func TestResetPostBootStateDMG(t *testing.T) {
	rom := testROM(false, nil)
	g, err := New(&memHost{rom: rom})
	require.NoError(t, err)

	assert.False(t, g.CGB())
	assert.Equal(t, uint16(0x0100), g.CPU.PC)
	assert.Equal(t, uint16(0xFFFE), g.CPU.SP)
	assert.Equal(t, uint16(0x01B0), g.CPU.Reg.AF())
	assert.True(t, g.IRQ.IME)
}

func TestResetPostBootStateCGB(t *testing.T) {
	rom := testROM(true, nil)
	g, err := New(&memHost{rom: rom})
	require.NoError(t, err)

	assert.True(t, g.CGB())
	assert.Equal(t, uint16(0x1180), g.CPU.Reg.AF())
	assert.Equal(t, uint16(0x0000), g.CPU.Reg.BC())
}

func TestStepCPUExecutesOneInstruction(t *testing.T) {
	rom := testROM(false, []byte{0x3C, 0x3C}) // INC A; INC A
	g, err := New(&memHost{rom: rom})
	require.NoError(t, err)

	g.StepCPU()
	assert.Equal(t, uint8(0x02), g.CPU.Reg.A, "0x01B0's A is 0x01 post-boot")
	g.StepCPU()
	assert.Equal(t, uint8(0x03), g.CPU.Reg.A)
}

func TestRunFrameStopsAtVBlankBoundary(t *testing.T) {
	// An infinite JR loop: the PPU reaching VBlank is the only thing
	// that ends RunFrame, regardless of how many instructions that took.
	rom := testROM(false, []byte{0x18, 0xFE}) // JR -2 (spin on itself)
	g, err := New(&memHost{rom: rom})
	require.NoError(t, err)

	g.RunFrame()
	assert.Equal(t, ppu.ModeVBlank, g.PPU.Mode())
	assert.Equal(t, uint8(144), g.PPU.LY, "RunFrame returns as LY enters the first VBLANK line")
}

func TestFrameSkipAlternates(t *testing.T) {
	rom := testROM(false, []byte{0x18, 0xFE})
	g, err := New(&memHost{rom: rom}, WithDirect(Direct{FrameSkip: true}))
	require.NoError(t, err)

	g.RunFrame()
	first := g.SkippedFrame()
	g.RunFrame()
	second := g.SkippedFrame()
	assert.NotEqual(t, first, second)
}

func TestSetButtonsReachesJoypadRegister(t *testing.T) {
	rom := testROM(false, nil)
	g, err := New(&memHost{rom: rom})
	require.NoError(t, err)

	g.SetButtons(0x0F)
	assert.Equal(t, uint8(0x0F), g.MMU.Joypad.Buttons)
}

func TestCartRAMWritesRouteToHost(t *testing.T) {
	rom := testROM(false, nil)
	rom[0x147] = 0x03 // MBC1+RAM+BATTERY
	rom[0x149] = 0x02 // 8KiB RAM
	rom[0x14D] = cartridge.HeaderChecksum(rom)

	h := &memHost{rom: rom}
	g, err := New(h)
	require.NoError(t, err)

	g.MMU.Write(0x0000, 0x0A) // enable cart RAM
	g.MMU.Write(0xA000, 0x55)
	assert.Equal(t, uint8(0x55), h.ram[0])
	assert.Equal(t, uint8(0x55), g.MMU.Read(0xA000))
}

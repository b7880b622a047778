package cartridge

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// validHeader builds a minimal 0x150-byte header window for an MBC1
// ROM-only cartridge with a correct checksum.
func validHeader() []byte {
	raw := make([]byte, 0x150)
	copy(raw[0x134:0x144], []byte("TESTGAME"))
	raw[0x143] = 0x00 // CGB unsupported
	raw[0x147] = 0x01 // MBC1
	raw[0x148] = 0x00 // 2 ROM banks
	raw[0x149] = 0x00 // no RAM
	raw[0x14D] = HeaderChecksum(raw)
	return raw
}

func TestParseHeaderValid(t *testing.T) {
	raw := validHeader()
	h, err := ParseHeader(raw)
	require.NoError(t, err)
	assert.Equal(t, "TESTGAME", h.Title)
	assert.Equal(t, MBC1, h.MBC)
	assert.Equal(t, uint16(2), h.ROMBanks)
}

func TestParseHeaderBadChecksumFails(t *testing.T) {
	raw := validHeader()
	raw[0x14D] ^= 0xFF
	_, err := ParseHeader(raw)
	var cksumErr ErrInvalidChecksum
	assert.ErrorAs(t, err, &cksumErr)
}

func TestParseHeaderUnsupportedMBCFails(t *testing.T) {
	raw := validHeader()
	raw[0x147] = 0xFF // not in mbcTable
	raw[0x14D] = HeaderChecksum(raw)
	_, err := ParseHeader(raw)
	var unsupported ErrUnsupportedCartridge
	assert.ErrorAs(t, err, &unsupported)
}

func TestRAMSizeTable(t *testing.T) {
	for code, want := range map[uint8]uint32{
		0: 0, 1: 2 * 1024, 2: 8 * 1024, 3: 32 * 1024, 4: 128 * 1024, 5: 64 * 1024,
	} {
		raw := validHeader()
		raw[0x149] = code
		raw[0x14D] = HeaderChecksum(raw)
		h, err := ParseHeader(raw)
		require.NoError(t, err)
		assert.Equal(t, want, h.RAMSize, "code 0x%02X", code)
	}
}

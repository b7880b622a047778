package registers

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPairAccessors(t *testing.T) {
	var r File

	r.SetAF(0x1234)
	assert.Equal(t, uint8(0x12), r.A)
	assert.Equal(t, uint16(0x1230), r.AF(), "low nibble of F always reads zero")

	r.SetBC(0xABCD)
	assert.Equal(t, uint16(0xABCD), r.BC())

	r.SetDE(0x0001)
	assert.Equal(t, uint16(0x0001), r.DE())

	r.SetHL(0xFFFF)
	assert.Equal(t, uint16(0xFFFF), r.HL())
}

func TestSetAFMasksLowNibble(t *testing.T) {
	var r File
	for low := uint16(0); low < 16; low++ {
		r.SetAF(0x0000 | low)
		assert.Zero(t, r.F&0x0F)
	}
}

func TestFlagRoundTrip(t *testing.T) {
	var r File
	for _, f := range []Flag{FlagZero, FlagSubtract, FlagHalfCarry, FlagCarry} {
		r.Set(f)
		assert.True(t, r.Test(f))
		r.Clear(f)
		assert.False(t, r.Test(f))
		r.Put(f, true)
		assert.True(t, r.Test(f))
		r.Put(f, false)
		assert.False(t, r.Test(f))
	}
}

func TestFlagsAreIndependent(t *testing.T) {
	var r File
	r.Set(FlagZero)
	r.Set(FlagCarry)
	assert.True(t, r.Test(FlagZero))
	assert.False(t, r.Test(FlagSubtract))
	assert.False(t, r.Test(FlagHalfCarry))
	assert.True(t, r.Test(FlagCarry))
}

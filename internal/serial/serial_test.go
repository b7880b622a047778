package serial

import (
	"testing"

	"github.com/kestrelsoft/gbcore/internal/interrupts"
	"github.com/stretchr/testify/assert"
)

func TestInternalClockNoPartnerFillsFF(t *testing.T) {
	irq := &interrupts.Service{}
	s := New(irq)

	s.SB = 0xAB
	s.WriteSC(0x81) // transfer start, internal clock

	for i := 0; i < 4095; i++ {
		s.Tick(1)
	}
	assert.Equal(t, uint8(0xAB), s.SB, "not yet complete")

	s.Tick(1)
	assert.Equal(t, uint8(0xFF), s.SB)
	assert.NotZero(t, irq.IF&uint8(interrupts.Serial))
	assert.Zero(t, s.SC&0x80, "transfer-start bit clears on completion")
}

func TestExternalClockNoPartnerNeverCompletes(t *testing.T) {
	irq := &interrupts.Service{}
	s := New(irq)
	s.SB = 0x42
	s.WriteSC(0x80) // transfer start, external clock

	for i := 0; i < 25000; i++ { // 100000 cycles
		s.Tick(4)
	}
	assert.Equal(t, uint8(0x42), s.SB)
	assert.Zero(t, irq.IF&uint8(interrupts.Serial))
}

type stubPeer struct {
	txGot uint8
	rx    uint8
	rxOK  bool
}

func (p *stubPeer) SerialTX(b uint8)        { p.txGot = b }
func (p *stubPeer) SerialRX() (uint8, bool) { return p.rx, p.rxOK }

func TestPartnerByteWinsOverInternalFill(t *testing.T) {
	irq := &interrupts.Service{}
	s := New(irq)
	peer := &stubPeer{rx: 0x55, rxOK: true}
	s.SetPeer(peer)

	s.SB = 0x11
	s.WriteSC(0x81)
	assert.Equal(t, uint8(0x11), peer.txGot)

	for i := 0; i < 1024; i++ { // 4096 cycles
		s.Tick(4)
	}
	assert.Equal(t, uint8(0x55), s.SB)
	assert.NotZero(t, irq.IF&uint8(interrupts.Serial))
}

func TestNoTransferNoTick(t *testing.T) {
	irq := &interrupts.Service{}
	s := New(irq)
	for i := 0; i < 25000; i++ { // 100000 cycles
		s.Tick(4)
	}
	assert.Zero(t, s.SB)
	assert.Zero(t, irq.IF)
}

// Package serial implements the single-byte link-cable transfer: SB/SC
// with an internal or external clock and a pluggable partner.
package serial

import "github.com/kestrelsoft/gbcore/internal/interrupts"

// transferCycles is the CPU-domain cycle budget for one 8-bit transfer
// on the internal clock (8192Hz == 4194304/512, eight bits per byte).
const transferCycles = 4096

const (
	scTransferStart = 1 << 7
	scInternalClock = 1 << 0
)

// Peer is the optional link-cable partner; nil means no partner attached.
type Peer interface {
	SerialTX(b uint8)
	SerialRX() (uint8, bool)
}

// Controller owns SB, SC and the transfer cycle accumulator.
type Controller struct {
	SB uint8
	SC uint8

	count  uint16
	active bool
	irq    *interrupts.Service
	peer   Peer
}

// New returns a Controller that raises the serial interrupt through irq.
func New(irq *interrupts.Service) *Controller { return &Controller{irq: irq} }

// SetPeer installs (or clears, with nil) the link-cable partner.
func (s *Controller) SetPeer(p Peer) { s.peer = p }

// WriteSC handles a write to SC, arming a transfer when bit 7 is set.
func (s *Controller) WriteSC(value uint8) {
	s.SC = value
	if value&scTransferStart != 0 {
		s.active = true
		s.count = 0
		if s.peer != nil {
			s.peer.SerialTX(s.SB)
		}
	} else {
		s.active = false
	}
}

// Tick advances the transfer by cycles CPU-domain cycles. Only the
// internal clock (SC bit 0 set) completes without an explicit wall-clock
// driver from the host; an external clock with no partner never
// completes, matching hardware (the console waits for the other side to
// shift bits in).
func (s *Controller) Tick(cycles uint8) {
	if !s.active {
		return
	}
	s.count += uint16(cycles)
	if s.count < transferCycles {
		return
	}

	internal := s.SC&scInternalClock != 0
	if s.peer != nil {
		if rx, ok := s.peer.SerialRX(); ok {
			s.SB = rx
			s.SC &= 0x01
			s.irq.Request(interrupts.Serial)
			s.active = false
			return
		}
	}
	if internal {
		s.SB = 0xFF
		s.SC &= 0x01
		s.irq.Request(interrupts.Serial)
		s.active = false
	}
	// external clock, no partner: SB unchanged, no interrupt, transfer
	// stays pending forever, matching real hardware waiting on the peer.
}

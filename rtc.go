package gbcore

// TickRTC advances the cartridge's real-time clock by one second. A
// host drives this from its own wall-clock timer; the core never ticks
// the RTC on its own, since it has no notion of real time. A no-op on
// any cartridge other than MBC3.
func (g *GameBoy) TickRTC() {
	if rtc := g.Cart.RTC(); rtc != nil {
		rtc.Tick()
	}
}

// SetRTC seeds the cartridge's real-time clock from wall-clock
// components, as a host does once at load time before the first
// TickRTC call. A no-op on any cartridge other than MBC3.
func (g *GameBoy) SetRTC(seconds, minutes, hours uint8, yday uint16) {
	if rtc := g.Cart.RTC(); rtc != nil {
		rtc.Set(seconds, minutes, hours, yday)
		g.log.Debugf("rtc seeded: %02d:%02d:%02d day=%d", hours, minutes, seconds, yday)
	}
}

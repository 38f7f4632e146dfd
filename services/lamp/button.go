package lamp

import (
	"time"

	"lampcode-go/services/hal"
)

// Button confirms a press by requiring the input to read low on first sample
// and again after one settle window. It keeps no state between polls.
//
// The settle wait blocks. The loop has nothing else to do in that window, so
// the delay is accepted rather than scheduled.
type Button struct {
	pin      hal.Pins
	clk      hal.Clock
	debounce time.Duration
}

func NewButton(pin hal.Pins, clk hal.Clock, debounce time.Duration) *Button {
	return &Button{pin: pin, clk: clk, debounce: debounce}
}

// Poll reports a confirmed press. A press shorter than the debounce window is
// dropped as noise.
func (b *Button) Poll() bool {
	if !b.pressed() {
		return false
	}
	b.clk.Delay(b.debounce)
	return b.pressed()
}

// active-low with pull-up
func (b *Button) pressed() bool { return !b.pin.ButtonLevel() }

package config

import (
	"strconv"
	"time"

	"lampcode-go/errcode"
)

// Lamp holds every build-time constant the firmware uses, plus board wiring.
// Nothing here is negotiated at runtime.
type Lamp struct {
	Board string

	LEDPin    int // PWM-capable output driving the LED switch
	ButtonPin int // input with pull-up, low = pressed

	PWMFreqHz      uint32 // carrier; low enough that reduced duty reads as blink
	Ceiling        uint8  // duty value meaning "100%"
	FullBrightness uint8  // duty for ModeOn; other modes shift from it

	Debounce     time.Duration
	StartupPulse time.Duration
	TickPeriod   time.Duration // background wake source while in idle sleep
}

const (
	DefaultCeiling        = 255
	DefaultFullBrightness = 250
	DefaultDebounce       = 100 * time.Millisecond
	DefaultStartupPulse   = 500 * time.Millisecond
	DefaultTickPeriod     = 262 * time.Millisecond // 1 MHz / 1024 / 256
	DefaultPWMFreqHz      = 15                     // 1 MHz / 256 / 256
)

// Default returns the configuration for a Pico with the LED switch on GP15
// (PWM slice 7, channel B) and the button on GP14.
func Default() Lamp {
	return Lamp{
		Board:          "pico",
		LEDPin:         15,
		ButtonPin:      14,
		PWMFreqHz:      DefaultPWMFreqHz,
		Ceiling:        DefaultCeiling,
		FullBrightness: DefaultFullBrightness,
		Debounce:       DefaultDebounce,
		StartupPulse:   DefaultStartupPulse,
		TickPeriod:     DefaultTickPeriod,
	}
}

// Validate reports the first problem found, as an *errcode.E.
func (c Lamp) Validate() error {
	const op = "config"
	switch {
	case c.LEDPin < 0:
		return errcode.New(errcode.UnknownPin, op, "led pin "+strconv.Itoa(c.LEDPin))
	case c.ButtonPin < 0:
		return errcode.New(errcode.UnknownPin, op, "button pin "+strconv.Itoa(c.ButtonPin))
	case c.LEDPin == c.ButtonPin:
		return errcode.New(errcode.PinInUse, op, "led and button share pin "+strconv.Itoa(c.LEDPin))
	case c.Ceiling == 0:
		return errcode.New(errcode.InvalidParams, op, "ceiling is zero")
	case c.FullBrightness > c.Ceiling:
		return errcode.New(errcode.InvalidParams, op, "full brightness above ceiling")
	case c.PWMFreqHz == 0:
		return errcode.New(errcode.InvalidParams, op, "pwm frequency is zero")
	case c.Debounce <= 0:
		return errcode.New(errcode.InvalidParams, op, "debounce must be positive")
	case c.StartupPulse < 0:
		return errcode.New(errcode.InvalidParams, op, "startup pulse is negative")
	case c.TickPeriod <= 0:
		return errcode.New(errcode.InvalidParams, op, "tick period must be positive")
	}
	return nil
}

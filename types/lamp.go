package types

// ------------------------
// Lamp mode
// ------------------------

// Mode is the lighting mode selected by the button.
type Mode uint8

const (
	ModeOff Mode = iota
	ModeOn
	ModeSlowBlink
	ModeFastBlink
	ModeFade

	ModeCount = 5
)

var modeNames = [ModeCount]string{"off", "on", "slow_blink", "fast_blink", "fade"}

func (m Mode) String() string {
	if !m.Valid() {
		return "invalid"
	}
	return modeNames[m]
}

// Valid reports whether m is one of the five defined modes.
func (m Mode) Valid() bool { return m < ModeCount }

// ------------------------
// Power
// ------------------------

// SleepDepth is the low-power state requested at the end of a loop iteration.
type SleepDepth uint8

const (
	SleepIdle SleepDepth = iota // CPU halted, peripheral clocks (PWM) running
	SleepDeep                   // peripherals stopped, pin-change wake only
)

func (d SleepDepth) String() string {
	if d == SleepDeep {
		return "deep"
	}
	return "idle"
}

// ------------------------
// PWM directive
// ------------------------

// Directive is what a mode asks of the PWM driver and power controller.
type Directive struct {
	PWM   bool  // false => PWM disabled entirely (not merely duty 0)
	Duty  uint8 // 0..ceiling; meaningful only when PWM is true
	Sleep SleepDepth
}

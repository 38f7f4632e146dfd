package lamp

import "lampcode-go/types"

// Advance returns the mode after one confirmed button press. Fade wraps to Off.
// Any out-of-range input is treated as past-the-end and also yields Off, so the
// result is always one of the five modes.
func Advance(m types.Mode) types.Mode {
	next := m + 1
	if !next.Valid() {
		return types.ModeOff
	}
	return next
}

// DirectiveFor maps a mode to its PWM and sleep request. Duty cycles derive
// from full by truncating right shift.
func DirectiveFor(m types.Mode, full uint8) types.Directive {
	switch m {
	case types.ModeOn:
		return types.Directive{PWM: true, Duty: full, Sleep: types.SleepIdle}
	case types.ModeSlowBlink:
		return types.Directive{PWM: true, Duty: full >> 3, Sleep: types.SleepIdle}
	case types.ModeFastBlink:
		return types.Directive{PWM: true, Duty: full >> 2, Sleep: types.SleepIdle}
	case types.ModeFade:
		return types.Directive{PWM: true, Duty: full >> 1, Sleep: types.SleepIdle}
	default:
		return types.Directive{PWM: false, Sleep: types.SleepDeep}
	}
}

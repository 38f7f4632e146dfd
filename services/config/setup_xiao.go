//go:build lamp_xiao

package config

// Seeed XIAO RP2040: LED switch on D10 (GP3, slice 1 B), button on D9 (GP4).
var Selected = Lamp{
	Board:          "xiao_rp2040",
	LEDPin:         3,
	ButtonPin:      4,
	PWMFreqHz:      DefaultPWMFreqHz,
	Ceiling:        DefaultCeiling,
	FullBrightness: DefaultFullBrightness,
	Debounce:       DefaultDebounce,
	StartupPulse:   DefaultStartupPulse,
	TickPeriod:     DefaultTickPeriod,
}

// Package hal is the hardware boundary of the lamp. The lamp core depends only
// on these interfaces; backends live in rp2hal (TinyGo) and simhal (host).
package hal

import "time"

// Pins covers the two digital lines the lamp owns.
type Pins interface {
	// ButtonLevel returns the raw logic level of the button input.
	// The input has a pull-up, so false means the button is held down.
	ButtonLevel() bool
	// SetLED drives the LED line directly as a GPIO. Only used before the
	// PWM peripheral takes the pin over.
	SetLED(on bool)
}

// PWMDriver owns the PWM peripheral. Every method touches only PWM registers,
// never the background ticker.
type PWMDriver interface {
	// ConfigurePWM hands the LED pin to the PWM peripheral with the given
	// carrier and duty ceiling, leaving it disabled.
	ConfigurePWM(freqHz uint32, ceiling uint8) error
	// EnablePWM starts the PWM clock with the counter reset to zero so the
	// first period is never truncated.
	EnablePWM()
	// DisablePWM stops the PWM clock, resets the counter and leaves the LED
	// output low.
	DisablePWM()
	// SetDuty writes the compare threshold. It latches at the next period
	// boundary.
	SetDuty(v uint8)
}

// Ticker is the background periodic wake source. Its interrupt does no work.
type Ticker interface {
	StartTicker()
	StopTicker()
}

// SleepController owns sleep-depth selection and the pin-change wake source.
type SleepController interface {
	ArmWakeInterrupt()
	DisarmWakeInterrupt()
	ClearWakeInterrupt()

	DisableInterrupts()
	EnableInterrupts()

	// EnterIdleSleep halts the CPU with peripheral clocks running; returns on
	// any interrupt (pin change or tick).
	EnterIdleSleep()
	// EnterDeepSleep halts the CPU with peripheral clocks gated; returns on
	// pin change only.
	EnterDeepSleep()
}

// Clock provides the blocking delays used by debounce and the boot pulse.
type Clock interface {
	Delay(d time.Duration)
}

// Board is everything the lamp needs from a platform.
type Board interface {
	Pins
	PWMDriver
	Ticker
	SleepController
	Clock

	// Init configures the button input (pull-up) and the LED output (low).
	Init(ledPin, buttonPin int) error
}

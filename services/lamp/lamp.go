// Package lamp is the single-button lamp controller: a five-mode cycle driven
// by debounced presses, rendered by hardware PWM, with the CPU asleep between
// button events.
package lamp

import (
	"context"

	"lampcode-go/errcode"
	"lampcode-go/services/config"
	"lampcode-go/services/hal"
	"lampcode-go/types"
	"lampcode-go/x/logx"
)

// State is everything that survives across loop iterations. Only the loop
// mutates it; interrupt handlers never see it.
type State struct {
	Mode           types.Mode
	FullBrightness uint8
}

// Lamp owns the board and the state for the lifetime of the device.
type Lamp struct {
	hw  hal.Board
	cfg config.Lamp

	st     State
	booted bool

	btn *Button
	pwm *pwmOut
	pwr *Power
}

func New(hw hal.Board, cfg config.Lamp) (*Lamp, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	pwm := &pwmOut{hw: hw}
	return &Lamp{
		hw:  hw,
		cfg: cfg,
		btn: NewButton(hw, hw, cfg.Debounce),
		pwm: pwm,
		pwr: &Power{hw: hw, pwm: pwm},
	}, nil
}

// Boot brings the board up: pins, a visible self-test pulse on the LED, PWM
// configured but stopped, background ticker running, mode Off. Interrupts are
// enabled last.
func (l *Lamp) Boot() error {
	if err := l.hw.Init(l.cfg.LEDPin, l.cfg.ButtonPin); err != nil {
		return errcode.Wrap(errcode.Of(err), "boot", err)
	}

	l.hw.SetLED(true)
	l.hw.Delay(l.cfg.StartupPulse)
	l.hw.SetLED(false)

	if err := l.hw.ConfigurePWM(l.cfg.PWMFreqHz, l.cfg.Ceiling); err != nil {
		return errcode.Wrap(errcode.Of(err), "boot", err)
	}
	l.pwm.disable()
	l.hw.StartTicker()

	l.st = State{Mode: types.ModeOff, FullBrightness: l.cfg.FullBrightness}
	l.booted = true
	l.hw.EnableInterrupts()

	logx.Info("boot", "board", l.cfg.Board, "mode", l.st.Mode.String())
	return nil
}

// Step runs one loop iteration: poll, maybe advance, apply, sleep. Every
// iteration ends in exactly one sleep/wake cycle.
func (l *Lamp) Step() error {
	if !l.booted {
		return errcode.HALNotReady
	}
	if l.btn.Poll() {
		prev := l.st.Mode
		l.st.Mode = Advance(prev)
		logx.Info("mode", "from", prev.String(), "to", l.st.Mode.String())
	}

	d := DirectiveFor(l.st.Mode, l.st.FullBrightness)
	l.pwm.apply(d.PWM, d.Duty)
	l.pwr.Sleep(d.Sleep)
	return nil
}

// Run loops until ctx is cancelled. Firmware passes a context that never is.
func (l *Lamp) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}
		if err := l.Step(); err != nil {
			return err
		}
	}
}

// State returns a copy of the current state.
func (l *Lamp) State() State { return l.st }

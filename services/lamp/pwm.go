package lamp

import "lampcode-go/services/hal"

// pwmOut tracks what has been written to the PWM driver so that reapplying
// the same directive leaves the running waveform alone. Enabling resets the
// hardware counter, so it is only done on an off->on transition.
type pwmOut struct {
	hw   hal.PWMDriver
	on   bool
	duty uint8
}

func (p *pwmOut) apply(on bool, duty uint8) {
	if !on {
		p.disable()
		return
	}
	if !p.on || p.duty != duty {
		p.hw.SetDuty(duty)
		p.duty = duty
	}
	if !p.on {
		p.hw.EnablePWM()
		p.on = true
	}
}

// disable always reaches the hardware; stopping an already stopped
// peripheral is harmless and guarantees the output is low.
func (p *pwmOut) disable() {
	p.hw.DisablePWM()
	p.on = false
}

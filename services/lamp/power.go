package lamp

import (
	"lampcode-go/services/hal"
	"lampcode-go/types"
)

// Power runs one sleep/wake cycle at a requested depth.
type Power struct {
	hw  hal.Board
	pwm *pwmOut
}

// Sleep blocks until the next wake source fires.
//
// Order matters. The wake source is armed before sleeping so an edge cannot
// be missed, and it is cleared and disarmed with interrupts masked so it cannot
// fire again or be counted twice. After deep sleep PWM stays off; the next loop
// iteration re-derives it from the mode.
func (p *Power) Sleep(depth types.SleepDepth) {
	p.hw.ArmWakeInterrupt()

	if depth == types.SleepDeep {
		p.hw.StopTicker()
		p.pwm.disable()
		p.hw.EnterDeepSleep()
	} else {
		p.hw.EnterIdleSleep()
	}

	p.hw.DisableInterrupts()
	p.hw.ClearWakeInterrupt()
	p.hw.DisarmWakeInterrupt()
	if depth == types.SleepDeep {
		p.hw.StartTicker()
	}
	p.hw.EnableInterrupts()
}

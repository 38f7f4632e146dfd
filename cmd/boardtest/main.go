//go:build rp2040

// cmd/boardtest exercises the lamp board without the mode loop: LED pulse,
// every mode's duty in turn, then button level reporting and a deep-sleep wake.
package main

import (
	"machine"
	"time"

	uartx "github.com/jangala-dev/tinygo-uartx/uartx"

	"lampcode-go/services/config"
	"lampcode-go/services/hal/rp2hal"
	"lampcode-go/services/lamp"
	"lampcode-go/types"
	"lampcode-go/x/logx"
)

// ---------- Configuration ----------

const (
	dwellPerMode  = 2 * time.Second
	buttonWatch   = 5 * time.Second
	buttonSampleT = 20 * time.Millisecond

	// Cycles: 0 = loop forever
	cyclesToRun = 0
)

func main() {
	time.Sleep(time.Second)
	if err := uartx.UART0.Configure(uartx.UARTConfig{
		BaudRate: 115_200,
		TX:       machine.UART0_TX_PIN,
		RX:       machine.UART0_RX_PIN,
	}); err == nil {
		logx.Output = uartx.UART0
	}

	cfg := config.Selected
	b := rp2hal.New(cfg.TickPeriod)
	if err := b.Init(cfg.LEDPin, cfg.ButtonPin); err != nil {
		logx.Error("init", "err", err.Error())
		return
	}

	logx.Info("[boardtest] led pulse")
	b.SetLED(true)
	b.Delay(cfg.StartupPulse)
	b.SetLED(false)

	if err := b.ConfigurePWM(cfg.PWMFreqHz, cfg.Ceiling); err != nil {
		logx.Error("pwm", "err", err.Error())
		return
	}

	for cycle := 1; cyclesToRun == 0 || cycle <= cyclesToRun; cycle++ {
		sweepModes(b, cfg)
		watchButton(b)
		deepSleepOnce(b)
	}
}

func sweepModes(b *rp2hal.Board, cfg config.Lamp) {
	for m := types.ModeOn; m < types.ModeCount; m++ {
		d := lamp.DirectiveFor(m, cfg.FullBrightness)
		logx.Info("[boardtest] mode", "name", m.String())
		b.SetDuty(d.Duty)
		b.EnablePWM()
		time.Sleep(dwellPerMode)
	}
	b.DisablePWM()
}

func watchButton(b *rp2hal.Board) {
	logx.Info("[boardtest] press the button")
	last := b.ButtonLevel()
	deadline := time.Now().Add(buttonWatch)
	for time.Now().Before(deadline) {
		if lvl := b.ButtonLevel(); lvl != last {
			state := "released"
			if !lvl {
				state = "pressed"
			}
			logx.Info("[boardtest] button", "state", state)
			last = lvl
		}
		time.Sleep(buttonSampleT)
	}
}

func deepSleepOnce(b *rp2hal.Board) {
	logx.Info("[boardtest] deep sleep, press to wake")
	b.ArmWakeInterrupt()
	b.StopTicker()
	b.EnterDeepSleep()
	b.DisableInterrupts()
	b.ClearWakeInterrupt()
	b.DisarmWakeInterrupt()
	b.EnableInterrupts()
	logx.Info("[boardtest] woke")
}

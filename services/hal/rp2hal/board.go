//go:build rp2040

// Package rp2hal implements hal.Board on the RP2040 with TinyGo.
//
// Sleeping is done by blocking the only goroutine on a channel: with nothing
// runnable the TinyGo scheduler parks the core in wfi/wfe until an interrupt.
// Deep sleep additionally sets SLEEPDEEP and gates peripheral clocks the lamp
// does not need, so only the GPIO bank (and the UART used for logs) stay clocked.
package rp2hal

import (
	"device/rp"
	"machine"
	"runtime/interrupt"
	"runtime/volatile"
	"time"
	"unsafe"

	"lampcode-go/errcode"
	"lampcode-go/services/hal"
	"lampcode-go/x/mathx"
	"lampcode-go/x/timex"
)

var _ hal.Board = (*Board)(nil)

// Cortex-M0+ system registers.
var (
	scbSCR    = (*volatile.Register32)(unsafe.Pointer(uintptr(0xE000ED10)))
	nvicICPR0 = (*volatile.Register32)(unsafe.Pointer(uintptr(0xE000E280)))
)

const scrSleepDeep = 1 << 2

// CLOCKS.SLEEP_EN0 bits gated during deep sleep.
const (
	clkADC      = 1<<1 | 1<<2
	clkI2C      = 1<<6 | 1<<7
	clkPIO      = 1<<12 | 1<<13
	clkPWM      = 1 << 17
	clkSPI      = 1<<24 | 1<<25 | 1<<26 | 1<<27
	deepGateEn0 = clkADC | clkI2C | clkPIO | clkPWM | clkSPI
)

type Board struct {
	led, btn machine.Pin

	pwm     pwmCtrl
	ch      uint8
	ceiling uint8
	duty    uint8
	pwmOn   bool

	tickPeriod time.Duration
	ticker     *time.Ticker

	wake chan struct{} // written only by the pin-change ISR
	irq  interrupt.State
}

// New returns a board whose background ticker runs at tick once started.
func New(tick time.Duration) *Board {
	return &Board{tickPeriod: tick, wake: make(chan struct{}, 1)}
}

// Init configures the button with a pull-up and the LED line as a low output.
// The watchdog is never started, so nothing here needs to disable it.
func (b *Board) Init(ledPin, buttonPin int) error {
	if ledPin < 0 || ledPin > 28 || buttonPin < 0 || buttonPin > 28 {
		return errcode.UnknownPin
	}
	if ledPin == buttonPin {
		return errcode.PinInUse
	}
	b.led, b.btn = machine.Pin(ledPin), machine.Pin(buttonPin)
	b.btn.Configure(machine.PinConfig{Mode: machine.PinInputPullup})
	b.led.Configure(machine.PinConfig{Mode: machine.PinOutput})
	b.led.Low()
	return nil
}

func (b *Board) ButtonLevel() bool { return b.btn.Get() }
func (b *Board) SetLED(on bool)    { b.led.Set(on) }

// ---- PWM ----

func (b *Board) ConfigurePWM(freqHz uint32, ceiling uint8) error {
	if ceiling == 0 {
		return errcode.InvalidParams
	}
	pwm := pwmGroupForPin(int(b.led))
	if err := pwm.Configure(machine.PWMConfig{Period: timex.PeriodFromHz(freqHz)}); err != nil {
		return errcode.Wrap(errcode.Unsupported, "pwm", err)
	}
	ch, err := pwm.Channel(b.led)
	if err != nil {
		return errcode.Wrap(errcode.UnknownPin, "pwm", err)
	}
	b.pwm, b.ch, b.ceiling = pwm, ch, ceiling
	b.DisablePWM()
	return nil
}

func (b *Board) EnablePWM() {
	b.led.Configure(machine.PinConfig{Mode: machine.PinPWM})
	b.pwm.SetCounter(0)
	b.pwm.Set(b.ch, b.level(b.duty))
	b.pwm.Enable(true)
	b.pwmOn = true
}

// DisablePWM hands the pin back to SIO driven low, so a stopped slice can
// never leave the LED latched high.
func (b *Board) DisablePWM() {
	b.pwm.Enable(false)
	b.pwm.SetCounter(0)
	b.led.Configure(machine.PinConfig{Mode: machine.PinOutput})
	b.led.Low()
	b.pwmOn = false
}

// SetDuty writes CC, which the slice latches at the next wrap.
func (b *Board) SetDuty(v uint8) {
	b.duty = v
	if b.pwmOn {
		b.pwm.Set(b.ch, b.level(v))
	}
}

func (b *Board) level(v uint8) uint32 { return mathx.ScaleToTop(v, b.ceiling, b.pwm.Top()) }

// ---- background ticker ----

func (b *Board) StartTicker() {
	if b.ticker == nil {
		b.ticker = time.NewTicker(b.tickPeriod)
	}
}

func (b *Board) StopTicker() {
	if b.ticker != nil {
		b.ticker.Stop()
		b.ticker = nil
	}
}

// nil channel when stopped, so a select on it never fires
func (b *Board) tickC() <-chan time.Time {
	if b.ticker == nil {
		return nil
	}
	return b.ticker.C
}

// ---- wake + sleep ----

func (b *Board) ArmWakeInterrupt() {
	_ = b.btn.SetInterrupt(machine.PinToggle, b.onPinChange)
}

func (b *Board) DisarmWakeInterrupt() {
	var none machine.PinChange
	_ = b.btn.SetInterrupt(none, nil)
}

// ClearWakeInterrupt drops a wake signalled after we already woke, and any
// bank interrupt still pending in the NVIC.
func (b *Board) ClearWakeInterrupt() {
	select {
	case <-b.wake:
	default:
	}
	nvicICPR0.Set(1 << rp.IRQ_IO_IRQ_BANK0)
}

// ISR: signal only.
func (b *Board) onPinChange(machine.Pin) {
	select {
	case b.wake <- struct{}{}:
	default:
	}
}

func (b *Board) DisableInterrupts() { b.irq = interrupt.Disable() }
func (b *Board) EnableInterrupts()  { interrupt.Restore(b.irq) }

func (b *Board) EnterIdleSleep() {
	select {
	case <-b.wake:
	case <-b.tickC():
	}
}

func (b *Board) EnterDeepSleep() {
	saved := rp.CLOCKS.SLEEP_EN0.Get()
	rp.CLOCKS.SLEEP_EN0.Set(saved &^ deepGateEn0)
	scbSCR.SetBits(scrSleepDeep)

	<-b.wake

	scbSCR.ClearBits(scrSleepDeep)
	rp.CLOCKS.SLEEP_EN0.Set(saved)
}

func (b *Board) Delay(d time.Duration) { time.Sleep(d) }

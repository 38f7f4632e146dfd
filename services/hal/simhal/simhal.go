// Package simhal is a host-side hal.Board that records every call against a
// virtual clock. Button activity is scripted as hold windows; sleeps advance
// the clock to the next wake source. Protocol violations are collected as
// faults instead of panicking so tests can report all of them.
package simhal

import (
	"sort"
	"strconv"
	"time"

	"lampcode-go/errcode"
	"lampcode-go/services/hal"
	"lampcode-go/types"
)

var _ hal.Board = (*Board)(nil)

// Op names recorded in the call log.
const (
	OpInit         = "init"
	OpSetLED       = "set_led"
	OpConfigurePWM = "configure_pwm"
	OpEnablePWM    = "enable_pwm"
	OpDisablePWM   = "disable_pwm"
	OpSetDuty      = "set_duty"
	OpStartTicker  = "start_ticker"
	OpStopTicker   = "stop_ticker"
	OpArmWake      = "arm_wake"
	OpDisarmWake   = "disarm_wake"
	OpClearWake    = "clear_wake"
	OpIRQOff       = "irq_off"
	OpIRQOn        = "irq_on"
	OpIdleSleep    = "idle_sleep"
	OpDeepSleep    = "deep_sleep"
	OpDelay        = "delay"
)

// Call is one recorded HAL invocation.
type Call struct {
	Op  string
	Arg int
	At  time.Duration
}

func (c Call) String() string {
	return c.At.String() + " " + c.Op + "(" + strconv.Itoa(c.Arg) + ")"
}

// Hold is a window during which the button reads pressed (low).
type Hold struct {
	From, To time.Duration
}

type Board struct {
	now   time.Duration
	holds []Hold
	calls []Call

	faults []string
	stalls int

	ledPin, buttonPin int
	inited            bool

	led        bool
	configured bool
	ceiling    uint8
	pwmOn      bool
	duty       uint8
	resets     int

	tickPeriod time.Duration
	tickerOn   bool
	nextTick   time.Duration

	wakeArmed   bool
	wakePending bool
	irqOn       bool

	sleeps []types.SleepDepth
}

// New returns a board whose background ticker fires every tick once started.
func New(tick time.Duration) *Board {
	if tick <= 0 {
		tick = time.Second
	}
	return &Board{tickPeriod: tick}
}

// Press schedules a button hold starting at the given virtual time.
func (b *Board) Press(at, dur time.Duration) {
	b.holds = append(b.holds, Hold{From: at, To: at + dur})
	sort.Slice(b.holds, func(i, j int) bool { return b.holds[i].From < b.holds[j].From })
}

// ---- hal.Board ----

func (b *Board) Init(ledPin, buttonPin int) error {
	b.record(OpInit, ledPin)
	if ledPin < 0 || buttonPin < 0 {
		return errcode.UnknownPin
	}
	if ledPin == buttonPin {
		return errcode.PinInUse
	}
	b.ledPin, b.buttonPin, b.inited = ledPin, buttonPin, true
	b.led = false
	return nil
}

func (b *Board) ButtonLevel() bool { return !b.heldAt(b.now) }

func (b *Board) SetLED(on bool) {
	b.record(OpSetLED, boolArg(on))
	if b.configured {
		b.fault("set_led after the pin was handed to PWM")
	}
	b.led = on
}

func (b *Board) ConfigurePWM(freqHz uint32, ceiling uint8) error {
	b.record(OpConfigurePWM, int(freqHz))
	if !b.inited {
		return errcode.HALNotReady
	}
	if freqHz == 0 || ceiling == 0 {
		return errcode.InvalidParams
	}
	b.configured, b.ceiling = true, ceiling
	b.pwmOn, b.led = false, false
	return nil
}

func (b *Board) EnablePWM() {
	b.record(OpEnablePWM, 0)
	if !b.configured {
		b.fault("enable_pwm before configure")
	}
	b.pwmOn = true
	b.resets++
}

func (b *Board) DisablePWM() {
	b.record(OpDisablePWM, 0)
	b.pwmOn = false
	b.resets++
}

func (b *Board) SetDuty(v uint8) {
	b.record(OpSetDuty, int(v))
	if b.configured && v > b.ceiling {
		b.fault("duty " + strconv.Itoa(int(v)) + " above ceiling")
	}
	b.duty = v
}

func (b *Board) StartTicker() {
	b.record(OpStartTicker, 0)
	if !b.tickerOn {
		b.tickerOn = true
		b.nextTick = b.now + b.tickPeriod
	}
}

func (b *Board) StopTicker() {
	b.record(OpStopTicker, 0)
	b.tickerOn = false
}

func (b *Board) ArmWakeInterrupt()    { b.record(OpArmWake, 0); b.wakeArmed = true }
func (b *Board) DisarmWakeInterrupt() { b.record(OpDisarmWake, 0); b.wakeArmed = false }

func (b *Board) ClearWakeInterrupt() {
	b.record(OpClearWake, 0)
	if b.irqOn {
		b.fault("clear_wake with interrupts enabled")
	}
	b.wakePending = false
}

func (b *Board) DisableInterrupts() { b.record(OpIRQOff, 0); b.irqOn = false }
func (b *Board) EnableInterrupts()  { b.record(OpIRQOn, 0); b.irqOn = true }

func (b *Board) EnterIdleSleep() {
	b.record(OpIdleSleep, 0)
	b.checkSleepEntry("idle")
	b.sleeps = append(b.sleeps, types.SleepIdle)
	b.sleepUntilWake(b.tickerOn)
}

func (b *Board) EnterDeepSleep() {
	b.record(OpDeepSleep, 0)
	b.checkSleepEntry("deep")
	if b.pwmOn {
		b.fault("deep sleep with pwm enabled")
	}
	if b.tickerOn {
		b.fault("deep sleep with ticker running")
	}
	b.sleeps = append(b.sleeps, types.SleepDeep)
	b.sleepUntilWake(false)
}

func (b *Board) Delay(d time.Duration) {
	b.record(OpDelay, int(d/time.Millisecond))
	if d > 0 {
		b.now += d
	}
	b.catchUpTicks()
}

// ---- inspection ----

func (b *Board) Now() time.Duration { return b.now }

// Calls returns a copy of the call log.
func (b *Board) Calls() []Call { return append([]Call(nil), b.calls...) }

// Ops returns just the op names of the call log, in order.
func (b *Board) Ops() []string {
	out := make([]string, len(b.calls))
	for i, c := range b.calls {
		out[i] = c.Op
	}
	return out
}

func (b *Board) ResetCalls()                { b.calls = b.calls[:0] }
func (b *Board) Faults() []string           { return append([]string(nil), b.faults...) }
func (b *Board) Sleeps() []types.SleepDepth { return append([]types.SleepDepth(nil), b.sleeps...) }

// Stalls counts sleeps that had no future wake source; the clock did not move.
func (b *Board) Stalls() int { return b.stalls }

// PWM reports the enable state and the last duty written.
func (b *Board) PWM() (on bool, duty uint8) { return b.pwmOn, b.duty }

// CounterResets counts enable/disable operations, each of which zeroes the counter.
func (b *Board) CounterResets() int { return b.resets }

func (b *Board) LED() bool               { return b.led }
func (b *Board) TickerRunning() bool     { return b.tickerOn }
func (b *Board) WakeArmed() bool         { return b.wakeArmed }
func (b *Board) InterruptsEnabled() bool { return b.irqOn }
func (b *Board) WakePending() bool       { return b.wakePending }

// ---- internals ----

func (b *Board) record(op string, arg int) {
	b.calls = append(b.calls, Call{Op: op, Arg: arg, At: b.now})
}

func (b *Board) fault(msg string) {
	b.faults = append(b.faults, b.now.String()+": "+msg)
}

func (b *Board) checkSleepEntry(depth string) {
	if !b.wakeArmed {
		b.fault(depth + " sleep without wake interrupt armed")
	}
	if !b.irqOn {
		b.fault(depth + " sleep with interrupts disabled")
	}
}

func (b *Board) heldAt(t time.Duration) bool {
	for _, h := range b.holds {
		if t >= h.From && t < h.To {
			return true
		}
	}
	return false
}

// nextPinChange returns the first hold edge strictly after now.
func (b *Board) nextPinChange() (time.Duration, bool) {
	var best time.Duration
	found := false
	for _, h := range b.holds {
		for _, e := range [2]time.Duration{h.From, h.To} {
			if e > b.now && (!found || e < best) {
				best, found = e, true
			}
		}
	}
	return best, found
}

func (b *Board) sleepUntilWake(tick bool) {
	edge, haveEdge := b.nextPinChange()
	haveEdge = haveEdge && b.wakeArmed
	switch {
	case haveEdge && (!tick || edge <= b.nextTick):
		b.now = edge
		b.wakePending = true
	case tick:
		b.now = b.nextTick
	default:
		b.stalls++
		return
	}
	b.catchUpTicks()
}

func (b *Board) catchUpTicks() {
	if !b.tickerOn {
		return
	}
	for b.nextTick <= b.now {
		b.nextTick += b.tickPeriod
	}
}

func boolArg(v bool) int {
	if v {
		return 1
	}
	return 0
}

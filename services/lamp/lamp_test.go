package lamp

import (
	"context"
	"errors"
	"os"
	"reflect"
	"testing"
	"time"

	"lampcode-go/errcode"
	"lampcode-go/services/config"
	"lampcode-go/services/hal/simhal"
	"lampcode-go/types"
	"lampcode-go/x/logx"
)

func TestMain(m *testing.M) {
	logx.Quiet = true
	os.Exit(m.Run())
}

// press length inside (debounce, 2*debounce) so one hold is counted once
const hold = 150 * time.Millisecond

func bootedLamp(t *testing.T) (*Lamp, *simhal.Board) {
	t.Helper()
	cfg := config.Default()
	b := simhal.New(cfg.TickPeriod)
	l, err := New(b, cfg)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if err := l.Boot(); err != nil {
		t.Fatalf("Boot: %v", err)
	}
	return l, b
}

func assertNoFaults(t *testing.T, b *simhal.Board) {
	t.Helper()
	if f := b.Faults(); len(f) != 0 {
		t.Fatalf("hardware protocol faults: %v", f)
	}
}

func TestNewRejectsBadConfig(t *testing.T) {
	cfg := config.Default()
	cfg.Ceiling = 0
	if _, err := New(simhal.New(time.Second), cfg); errcode.Of(err) != errcode.InvalidParams {
		t.Fatalf("New() err = %v", err)
	}
}

func TestStepBeforeBoot(t *testing.T) {
	l, err := New(simhal.New(time.Second), config.Default())
	if err != nil {
		t.Fatal(err)
	}
	if err := l.Step(); err != errcode.HALNotReady {
		t.Fatalf("Step() before Boot = %v", err)
	}
}

func TestBootPulseThenOff(t *testing.T) {
	l, b := bootedLamp(t)

	want := []simhal.Call{
		{Op: simhal.OpInit, Arg: 15, At: 0},
		{Op: simhal.OpSetLED, Arg: 1, At: 0},
		{Op: simhal.OpDelay, Arg: 500, At: 0},
		{Op: simhal.OpSetLED, Arg: 0, At: 500 * time.Millisecond},
		{Op: simhal.OpConfigurePWM, Arg: config.DefaultPWMFreqHz, At: 500 * time.Millisecond},
		{Op: simhal.OpDisablePWM, At: 500 * time.Millisecond},
		{Op: simhal.OpStartTicker, At: 500 * time.Millisecond},
		{Op: simhal.OpIRQOn, At: 500 * time.Millisecond},
	}
	if got := b.Calls(); !reflect.DeepEqual(got, want) {
		t.Fatalf("boot calls:\n got %v\nwant %v", got, want)
	}
	if st := l.State(); st.Mode != types.ModeOff || st.FullBrightness != 250 {
		t.Fatalf("state after boot = %+v", st)
	}
	if b.LED() {
		t.Fatal("LED must be off after the self-test pulse")
	}
}

func TestFirstStepEntersDeepSleep(t *testing.T) {
	l, b := bootedLamp(t)
	if err := l.Step(); err != nil {
		t.Fatal(err)
	}
	if got := b.Sleeps(); !reflect.DeepEqual(got, []types.SleepDepth{types.SleepDeep}) {
		t.Fatalf("sleeps = %v", got)
	}
	if on, _ := b.PWM(); on {
		t.Fatal("PWM enabled in Off")
	}
	assertNoFaults(t, b) // ticker stopped and PWM off at sleep entry
}

func TestPressFromOffTurnsOn(t *testing.T) {
	l, b := bootedLamp(t)
	b.Press(time.Second, hold)

	_ = l.Step() // deep sleep, woken by the press edge
	if b.Now() != time.Second {
		t.Fatalf("woke at %v, want 1s", b.Now())
	}
	_ = l.Step()

	if l.State().Mode != types.ModeOn {
		t.Fatalf("mode = %v, want on", l.State().Mode)
	}
	if on, duty := b.PWM(); !on || duty != 250 {
		t.Fatalf("pwm = %v/%d, want on/250", on, duty)
	}
	sleeps := b.Sleeps()
	if sleeps[len(sleeps)-1] != types.SleepIdle {
		t.Fatalf("last sleep = %v, want idle", sleeps[len(sleeps)-1])
	}
	assertNoFaults(t, b)
}

func TestShortPressIgnored(t *testing.T) {
	l, b := bootedLamp(t)
	b.Press(time.Second, 40*time.Millisecond)
	for i := 0; i < 4; i++ {
		_ = l.Step()
	}
	if l.State().Mode != types.ModeOff {
		t.Fatalf("mode = %v, want off", l.State().Mode)
	}
	assertNoFaults(t, b)
}

func TestFivePressesReturnToOff(t *testing.T) {
	l, b := bootedLamp(t)
	for i := 1; i <= 5; i++ {
		b.Press(time.Duration(i)*time.Second, hold)
	}

	var seen []types.Mode
	last := l.State().Mode
	for i := 0; i < 200 && b.Stalls() == 0; i++ {
		if err := l.Step(); err != nil {
			t.Fatal(err)
		}
		if m := l.State().Mode; m != last {
			seen = append(seen, m)
			last = m
		}
		d := DirectiveFor(last, 250)
		if on, duty := b.PWM(); on != d.PWM || (on && duty != d.Duty) {
			t.Fatalf("step %d mode %v: pwm %v/%d does not match %+v", i, last, on, duty, d)
		}
	}

	want := []types.Mode{types.ModeOn, types.ModeSlowBlink, types.ModeFastBlink, types.ModeFade, types.ModeOff}
	if !reflect.DeepEqual(seen, want) {
		t.Fatalf("mode sequence = %v, want %v", seen, want)
	}
	if on, _ := b.PWM(); on {
		t.Fatal("PWM should be disabled after returning to off")
	}
	assertNoFaults(t, b)
}

func TestSteadyModeLeavesWaveformAlone(t *testing.T) {
	l, b := bootedLamp(t)
	b.Press(time.Second, hold)
	_ = l.Step()
	_ = l.Step()
	if l.State().Mode != types.ModeOn {
		t.Fatal("setup: expected mode on")
	}
	b.ResetCalls()
	resets := b.CounterResets()

	for i := 0; i < 10; i++ {
		_ = l.Step() // tick and release wakes, no press
	}
	for _, op := range b.Ops() {
		if op == simhal.OpEnablePWM || op == simhal.OpSetDuty || op == simhal.OpDisablePWM {
			t.Fatalf("steady mode touched the PWM: %v", b.Ops())
		}
	}
	if b.CounterResets() != resets {
		t.Fatal("steady mode reset the PWM counter")
	}
	if n := countOps(b, simhal.OpIdleSleep); n != 10 {
		t.Fatalf("idle sleeps = %d, want one per step", n)
	}
}

func TestRunStopsOnCancel(t *testing.T) {
	l, _ := bootedLamp(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := l.Run(ctx); !errors.Is(err, context.Canceled) {
		t.Fatalf("Run() = %v, want context.Canceled", err)
	}
}

func TestRunPropagatesStepError(t *testing.T) {
	l, err := New(simhal.New(time.Second), config.Default())
	if err != nil {
		t.Fatal(err)
	}
	if err := l.Run(context.Background()); err != errcode.HALNotReady {
		t.Fatalf("Run() = %v, want hal_not_ready", err)
	}
}

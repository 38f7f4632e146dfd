package lamp

import (
	"testing"

	"lampcode-go/types"
)

var allModes = []types.Mode{
	types.ModeOff, types.ModeOn, types.ModeSlowBlink, types.ModeFastBlink, types.ModeFade,
}

func TestAdvanceCycle(t *testing.T) {
	for _, start := range allModes {
		m := start
		for i := 0; i < types.ModeCount; i++ {
			m = Advance(m)
			if !m.Valid() {
				t.Fatalf("Advance produced invalid mode %d from %v", m, start)
			}
		}
		if m != start {
			t.Fatalf("five advances from %v ended at %v", start, m)
		}
	}
}

func TestAdvanceOrder(t *testing.T) {
	want := map[types.Mode]types.Mode{
		types.ModeOff:       types.ModeOn,
		types.ModeOn:        types.ModeSlowBlink,
		types.ModeSlowBlink: types.ModeFastBlink,
		types.ModeFastBlink: types.ModeFade,
		types.ModeFade:      types.ModeOff,
	}
	for from, to := range want {
		if got := Advance(from); got != to {
			t.Fatalf("Advance(%v) = %v, want %v", from, got, to)
		}
	}
}

func TestAdvanceOutOfRange(t *testing.T) {
	for _, m := range []types.Mode{5, 6, 200, 255} {
		if got := Advance(m); got != types.ModeOff {
			t.Fatalf("Advance(%d) = %v, want off", uint8(m), got)
		}
	}
}

func TestDirectiveTable(t *testing.T) {
	cases := []struct {
		mode  types.Mode
		pwm   bool
		duty  uint8
		sleep types.SleepDepth
	}{
		{types.ModeOff, false, 0, types.SleepDeep},
		{types.ModeOn, true, 250, types.SleepIdle},
		{types.ModeFade, true, 125, types.SleepIdle},
		{types.ModeFastBlink, true, 62, types.SleepIdle},
		{types.ModeSlowBlink, true, 31, types.SleepIdle},
	}
	for _, tc := range cases {
		d := DirectiveFor(tc.mode, 250)
		if d.PWM != tc.pwm || d.Sleep != tc.sleep {
			t.Fatalf("%v: got %+v", tc.mode, d)
		}
		if tc.pwm && d.Duty != tc.duty {
			t.Fatalf("%v: duty = %d, want %d", tc.mode, d.Duty, tc.duty)
		}
	}
}

func TestDirectiveOnlyOffDisablesPWM(t *testing.T) {
	for _, full := range []uint8{0, 1, 128, 250, 255} {
		for _, m := range allModes {
			d := DirectiveFor(m, full)
			if (m == types.ModeOff) == d.PWM {
				t.Fatalf("mode %v full %d: PWM=%v", m, full, d.PWM)
			}
			if d.PWM && d.Duty > full {
				t.Fatalf("mode %v full %d: duty %d exceeds full", m, full, d.Duty)
			}
		}
	}
}

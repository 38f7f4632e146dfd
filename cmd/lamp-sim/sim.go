package main

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"

	"lampcode-go/errcode"
	"lampcode-go/services/config"
	"lampcode-go/services/hal/simhal"
	"lampcode-go/services/lamp"
	"lampcode-go/x/logx"
	"lampcode-go/x/timex"
)

type simOptions struct {
	ConfigPath string
	Presses    []string
	MaxSteps   int
	Quiet      bool
	ShowCalls  bool
}

// overlay is the TOML shape; unset keys keep the defaults.
type overlay struct {
	Board          *string `toml:"board"`
	LEDPin         *int    `toml:"led_pin"`
	ButtonPin      *int    `toml:"button_pin"`
	PWMFreqHz      *uint32 `toml:"pwm_freq_hz"`
	Ceiling        *uint8  `toml:"ceiling"`
	FullBrightness *uint8  `toml:"full_brightness"`
	DebounceMs     *uint32 `toml:"debounce_ms"`
	StartupPulseMs *uint32 `toml:"startup_pulse_ms"`
	TickPeriodMs   *uint32 `toml:"tick_period_ms"`
}

func loadConfig(path string) (config.Lamp, error) {
	cfg := config.Default()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}
	return applyOverlay(cfg, data)
}

func applyOverlay(cfg config.Lamp, data []byte) (config.Lamp, error) {
	var ov overlay
	dec := toml.NewDecoder(bytes.NewReader(data)).DisallowUnknownFields()
	if err := dec.Decode(&ov); err != nil {
		return cfg, errcode.Wrap(errcode.InvalidParams, "config", err)
	}
	if ov.Board != nil {
		cfg.Board = *ov.Board
	}
	if ov.LEDPin != nil {
		cfg.LEDPin = *ov.LEDPin
	}
	if ov.ButtonPin != nil {
		cfg.ButtonPin = *ov.ButtonPin
	}
	if ov.PWMFreqHz != nil {
		cfg.PWMFreqHz = *ov.PWMFreqHz
	}
	if ov.Ceiling != nil {
		cfg.Ceiling = *ov.Ceiling
	}
	if ov.FullBrightness != nil {
		cfg.FullBrightness = *ov.FullBrightness
	}
	if ov.DebounceMs != nil {
		cfg.Debounce = timex.Ms(*ov.DebounceMs)
	}
	if ov.StartupPulseMs != nil {
		cfg.StartupPulse = timex.Ms(*ov.StartupPulseMs)
	}
	if ov.TickPeriodMs != nil {
		cfg.TickPeriod = timex.Ms(*ov.TickPeriodMs)
	}
	return cfg, cfg.Validate()
}

// parsePress reads "AT:DURATION", both in time.ParseDuration syntax.
func parsePress(s string) (simhal.Hold, error) {
	at, dur, ok := strings.Cut(s, ":")
	if !ok {
		return simhal.Hold{}, errcode.New(errcode.InvalidParams, "press", "want AT:DURATION, got "+s)
	}
	from, err := time.ParseDuration(at)
	if err != nil {
		return simhal.Hold{}, errcode.Wrap(errcode.InvalidParams, "press", err)
	}
	d, err := time.ParseDuration(dur)
	if err != nil {
		return simhal.Hold{}, errcode.Wrap(errcode.InvalidParams, "press", err)
	}
	if from < 0 || d <= 0 {
		return simhal.Hold{}, errcode.New(errcode.InvalidParams, "press", "negative start or empty hold: "+s)
	}
	return simhal.Hold{From: from, To: from + d}, nil
}

func runSim(stdout, stderr io.Writer, opts simOptions) error {
	cfg, err := loadConfig(opts.ConfigPath)
	if err != nil {
		return err
	}

	board := simhal.New(cfg.TickPeriod)
	for _, p := range opts.Presses {
		h, err := parsePress(p)
		if err != nil {
			return err
		}
		board.Press(h.From, h.To-h.From)
	}

	oldOut, oldQuiet := logx.Output, logx.Quiet
	logx.Output, logx.Quiet = stderr, opts.Quiet
	defer func() { logx.Output, logx.Quiet = oldOut, oldQuiet }()

	l, err := lamp.New(board, cfg)
	if err != nil {
		return err
	}
	if err := l.Boot(); err != nil {
		return err
	}

	steps := 0
	for ; steps < opts.MaxSteps && board.Stalls() == 0; steps++ {
		if err := l.Step(); err != nil {
			return err
		}
	}

	if opts.ShowCalls {
		for _, c := range board.Calls() {
			fmt.Fprintln(stdout, c.String())
		}
	}

	st := l.State()
	on, duty := board.PWM()
	fmt.Fprintf(stdout, "steps=%d clock=%v mode=%s pwm=%t duty=%d sleeps=%d\n",
		steps, board.Now(), st.Mode, on, duty, len(board.Sleeps()))

	if faults := board.Faults(); len(faults) > 0 {
		for _, f := range faults {
			fmt.Fprintln(stdout, "fault:", f)
		}
		return errcode.New(errcode.Error, "sim", fmt.Sprintf("%d protocol faults", len(faults)))
	}
	return nil
}

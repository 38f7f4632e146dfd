// cmd/lamp-sim runs the lamp loop on the simulated board and prints the trace.
package main

import (
	"os"

	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var opts simOptions
	cmd := &cobra.Command{
		Use:   "lamp-sim",
		Short: "Simulate the lamp controller against scripted button presses",
		Long: `Boots the lamp on a recording board with a virtual clock, replays the
given presses and prints the mode trace, final state and any protocol faults.

Presses are AT:DURATION pairs, e.g. --press 1s:150ms --press 2s:150ms.`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSim(cmd.OutOrStdout(), cmd.ErrOrStderr(), opts)
		},
	}
	f := cmd.Flags()
	f.StringVarP(&opts.ConfigPath, "config", "c", "", "TOML file overriding the default lamp configuration")
	f.StringSliceVarP(&opts.Presses, "press", "p", nil, "button hold as AT:DURATION (repeatable)")
	f.IntVar(&opts.MaxSteps, "max-steps", 1000, "upper bound on loop iterations")
	f.BoolVarP(&opts.Quiet, "quiet", "q", false, "suppress per-step log lines")
	f.BoolVar(&opts.ShowCalls, "calls", false, "print the full hardware call log")
	return cmd
}

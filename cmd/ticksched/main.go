// ticksched runs a simulated run-queue under one of the pick-next-task policies.
package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"runqsel/internal/logging"
	"runqsel/internal/sched"
)

var (
	configPath string
	policyName string
	maxTicks   int64
	csvPath    string
	logLevel   string
	logFormat  string
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "ticksched",
		Short: "Tick-driven run-queue simulator",
		Long: `ticksched seeds a run-queue from a YAML config and drives it with a tick
clock, asking the selected policy (rr, priority, cfs) for the next task at
the end of every slice.

Examples:
  ticksched --config config.yml
  ticksched --config config.yml --policy cfs --ticks 200 --csv events.csv
`,
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE:         runSimulation,
	}

	rootCmd.Flags().StringVarP(&configPath, "config", "c", "config.yml", "Path to the YAML config")
	rootCmd.Flags().StringVarP(&policyName, "policy", "p", "", "Scheduling policy, overrides the config (rr|priority|cfs)")
	rootCmd.Flags().Int64Var(&maxTicks, "ticks", 0, "Stop after this many ticks (0 = use config)")
	rootCmd.Flags().StringVar(&csvPath, "csv", "", "Write events as CSV to this path")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "Log level (debug|info|warn|error)")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "text", "Log format (text|json)")

	rootCmd.AddCommand(policiesCmd())
	rootCmd.AddCommand(weightsCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func runSimulation(cmd *cobra.Command, _ []string) error {
	log := logging.NewLogger(logLevel, logFormat)

	cfg, err := sched.Load(configPath)
	if err != nil {
		return err
	}
	if policyName != "" {
		p, err := sched.ParsePolicy(policyName)
		if err != nil {
			return err
		}
		cfg.Policy = p
	}
	if maxTicks > 0 {
		cfg.MaxTicks = maxTicks
	}
	if csvPath != "" {
		cfg.CSV = csvPath
	}
	log.V(1).Info("loaded config", "config", fmt.Sprintf("%+v", cfg))

	s, err := sched.New(cfg, log)
	if err != nil {
		return err
	}
	if cfg.CSV != "" {
		if err := s.EnableCSVLogging(cfg.CSV); err != nil {
			return err
		}
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return s.Run(ctx)
}

func policiesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "policies",
		Short: "List the available scheduling policies",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			for _, p := range sched.Policies() {
				fmt.Fprintln(cmd.OutOrStdout(), p)
			}
		},
	}
}

func weightsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "weights",
		Short: "Print the nice-to-weight table",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%5s %5s %7s\n", "nice", "prio", "weight")
			for nice := sched.MinNice; nice <= sched.MaxNice; nice++ {
				prio := sched.NiceToPrio(nice)
				fmt.Fprintf(out, "%5d %5d %7d\n", nice, prio, sched.WeightOf(prio))
			}
		},
	}
}

package main

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/katalvlaran/diagnoser/internal/config"
	"github.com/katalvlaran/diagnoser/internal/driver"
)

// Exit codes distinguish an input/configuration failure from a completed
// analysis whose verdict was NOT DIAGNOSABLE, so batch callers (CI, a
// shell loop over a directory of NFA files) can branch on $? without
// scraping stdout.
const (
	exitOK             = 0
	exitNotDiagnosable = 1
	exitInputError     = 2
)

var (
	files           []string
	showCycleGraphs bool
	full            bool
	configPath      string
	logLevel        string

	rootCmd = &cobra.Command{
		Use:   "diagnose",
		Short: "Checks diagnosability of a discrete-event system modeled as an NFA with partial observation",
		Long: `diagnose reads one or more NFA definitions (plant automaton, event
partition, transition relation) and decides whether the system is
diagnosable: whether every occurrence of a fault is eventually revealed
by the sequence of observable events, per a bounded number of further
observable transitions.`,
		RunE: runDiagnose,
	}
)

func init() {
	rootCmd.Flags().StringArrayVarP(&files, "file", "f", nil, "NFA definition file (repeatable for batch mode)")
	rootCmd.Flags().BoolVar(&showCycleGraphs, "show-cycle-graphs", false, "log every reported cycle's vertex/event walk")
	rootCmd.Flags().BoolVar(&full, "full", false, "report every indeterminate cycle instead of stopping at the first")
	rootCmd.Flags().StringVar(&configPath, "config", "diagnose.yaml", "path to the optional config sidecar")
	rootCmd.Flags().StringVar(&logLevel, "log-level", "", "override the configured log level (debug/info/warn/error)")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(exitInputError)
	}
}

func runDiagnose(cmd *cobra.Command, args []string) error {
	if len(files) == 0 {
		return fmt.Errorf("at least one --file is required")
	}

	cfg, err := config.Load(configPath,
		config.WithShowCycleGraphs(showCycleGraphs, cmd.Flags().Changed("show-cycle-graphs")),
		config.WithFull(full, cmd.Flags().Changed("full")),
		config.WithLogLevel(logLevel),
	)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(exitInputError)
	}

	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = zerolog.InfoLevel
	}
	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).Level(level).With().Timestamp().Logger()

	exitCode := exitOK
	for _, f := range files {
		rpt, err := driver.Run(log, f, driver.Options{
			Full:            cfg.Full,
			ShowCycleGraphs: cfg.ShowCycleGraphs,
		})
		if err != nil {
			fmt.Fprintf(os.Stderr, "%s: %v\n", f, err)
			exitCode = exitInputError

			continue
		}

		fmt.Printf("%s: %s\n", f, driver.Verdict(rpt))
		if !rpt.Diagnosable && exitCode == exitOK {
			exitCode = exitNotDiagnosable
		}
	}

	if exitCode != exitOK {
		os.Exit(exitCode)
	}

	return nil
}

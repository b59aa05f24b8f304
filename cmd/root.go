// Package cmd wraps the sim/ kernel library in a Cobra CLI, mirroring the
// teacher's own cmd/root.go: a bare root command plus subcommands that
// scaffold a RunConfig and show the report settings a RunConfig resolves to,
// none of it part of the kernel library itself.
package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/robknapen/WISS-Framework/sim/config"
)

var (
	logLevel string

	// config init flags
	initOutPath  string
	initRunID    string
	initStart    string
	initEnd      string
	initPause    string
	initTrace    bool
	initOverride bool

	// report inspect flags
	inspectPath string
)

// rootCmd is the base command for the CLI.
var rootCmd = &cobra.Command{
	Use:   "wiss",
	Short: "WISS deterministic daily-step simulation kernel",
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		level, err := logrus.ParseLevel(logLevel)
		if err != nil {
			logrus.Fatalf("invalid log level: %s", logLevel)
		}
		logrus.SetLevel(level)
	},
}

// configCmd groups config-related subcommands.
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage RunConfig YAML files",
}

// configInitCmd writes a starter RunConfig to disk.
var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a starter RunConfig YAML file",
	Run: func(cmd *cobra.Command, args []string) {
		if _, err := os.Stat(initOutPath); err == nil && !initOverride {
			logrus.Fatalf("config init : %s already exists (use --force to overwrite)", initOutPath)
		}

		cfg := config.Default()
		if initRunID != "" {
			cfg.RunID = initRunID
		}
		if initStart != "" {
			cfg.StartDate = initStart
		}
		if initEnd != "" {
			cfg.EndDate = initEnd
		}
		if initPause != "" {
			cfg.PauseDate = initPause
		}
		cfg.TraceLogging = initTrace

		if err := cfg.Validate(); err != nil {
			logrus.Fatalf("config init : %v", err)
		}
		if err := config.Save(initOutPath, cfg); err != nil {
			logrus.Fatalf("config init : %v", err)
		}
		logrus.Infof("wrote %s", initOutPath)
	},
}

// reportCmd groups report-related subcommands.
var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Inspect the report settings of a RunConfig",
}

// reportInspectCmd validates a RunConfig file and prints the report
// formatting settings it resolves to, without running a simulation
// (there is no kernel-level construct a CLI can drive without a concrete
// module set, which is supplied by the hosting application, not this
// tool).
var reportInspectCmd = &cobra.Command{
	Use:   "inspect",
	Short: "Validate a RunConfig and show its resolved report settings",
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := config.Load(inspectPath)
		if err != nil {
			logrus.Fatalf("report inspect : %v", err)
		}

		rc := cfg.ReportConfig(time.Now())
		fmt.Printf("run_id:         %s\n", cfg.RunID)
		fmt.Printf("start_date:     %s\n", cfg.StartDate)
		fmt.Printf("end_date:       %s\n", cfg.EndDate)
		if cfg.PauseDate != "" {
			fmt.Printf("pause_date:     %s\n", cfg.PauseDate)
		}
		fmt.Printf("trace_logging:  %v\n", cfg.TraceLogging)
		fmt.Printf("report_path:    %s\n", cfg.ReportPath)
		fmt.Printf("separator:      %q\n", rc.Separator)
		fmt.Printf("comment_prefix: %q\n", rc.CommentPrefix)
		fmt.Printf("empty_value:    %q\n", rc.EmptyValue)
	},
}

// Execute runs the CLI root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&logLevel, "log", "info", "Log level (trace, debug, info, warn, error, fatal, panic)")

	configInitCmd.Flags().StringVar(&initOutPath, "out", "run.yaml", "Path to write the RunConfig YAML to")
	configInitCmd.Flags().StringVar(&initRunID, "run-id", "", "Run identifier (defaults to the config.Default() placeholder)")
	configInitCmd.Flags().StringVar(&initStart, "start", "", "Start date, YYYY-MM-DD")
	configInitCmd.Flags().StringVar(&initEnd, "end", "", "End date, YYYY-MM-DD")
	configInitCmd.Flags().StringVar(&initPause, "pause", "", "Pause date, YYYY-MM-DD (optional)")
	configInitCmd.Flags().BoolVar(&initTrace, "trace", false, "Enable trace logging for the run")
	configInitCmd.Flags().BoolVar(&initOverride, "force", false, "Overwrite an existing file at --out")

	reportInspectCmd.Flags().StringVar(&inspectPath, "config", "run.yaml", "Path to the RunConfig YAML to inspect")

	configCmd.AddCommand(configInitCmd)
	reportCmd.AddCommand(reportInspectCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(reportCmd)
}
